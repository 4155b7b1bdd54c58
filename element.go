package dicom

// Header is the (tag, vr, length) triple that precedes every data element
// value on the wire.
type Header struct {
	Tag    Tag
	VR     VR
	Length Length
}

// PixelFragments is the encapsulated-pixel-data composite variant: an
// optional basic offset table plus the ordered compressed fragments that
// follow it (spec.md §3 "Composite Value").
type PixelFragments struct {
	OffsetTable []uint32
	Fragments   [][]byte
}

// HasOffsetTable reports whether an offset table was present (a present but
// empty table is still "present": the first ItemValue arrived before the
// first ItemEnd during decoding, see token.go).
func (p PixelFragments) HasOffsetTable() bool { return p.OffsetTable != nil }

// Truncate keeps only the first limit fragments, per the attribute
// operation Truncate action on encapsulated pixel data (spec.md §4.2).
func (p *PixelFragments) Truncate(limit int) {
	if len(p.Fragments) > limit {
		p.Fragments = p.Fragments[:limit]
	}
}

// compositeKind discriminates CompositeValue's three variants.
type compositeKind int

const (
	compositePrimitive compositeKind = iota
	compositeSequence
	compositePixelSequence
)

// CompositeValue is a data element's value: a primitive, a nested data-set
// sequence, or an encapsulated pixel-fragment sequence (spec.md §3).
type CompositeValue struct {
	kind compositeKind

	primitive PrimitiveValue

	items     []*InMemoryObject
	seqLength Length // recorded declared length, for round-tripping undefined lengths

	pixels PixelFragments
}

// NewPrimitiveComposite wraps a PrimitiveValue as a leaf CompositeValue.
func NewPrimitiveComposite(v PrimitiveValue) CompositeValue {
	return CompositeValue{kind: compositePrimitive, primitive: v}
}

// NewSequenceComposite wraps a nested data-set sequence.
func NewSequenceComposite(items []*InMemoryObject, declaredLength Length) CompositeValue {
	return CompositeValue{kind: compositeSequence, items: items, seqLength: declaredLength}
}

// NewPixelSequenceComposite wraps encapsulated pixel-data fragments.
func NewPixelSequenceComposite(p PixelFragments) CompositeValue {
	return CompositeValue{kind: compositePixelSequence, pixels: p}
}

// IsPrimitive, IsSequence, IsPixelSequence report the stored variant.
func (c CompositeValue) IsPrimitive() bool     { return c.kind == compositePrimitive }
func (c CompositeValue) IsSequence() bool      { return c.kind == compositeSequence }
func (c CompositeValue) IsPixelSequence() bool { return c.kind == compositePixelSequence }

// Primitive returns the leaf value, or a CastValueError-shaped failure via
// ok=false if this composite is a sequence or pixel sequence.
func (c CompositeValue) Primitive() (PrimitiveValue, bool) {
	if c.kind != compositePrimitive {
		return PrimitiveValue{}, false
	}
	return c.primitive, true
}

// Items returns the nested data sets, or ok=false if not a sequence.
func (c CompositeValue) Items() ([]*InMemoryObject, bool) {
	if c.kind != compositeSequence {
		return nil, false
	}
	return c.items, true
}

// PixelFragments returns the pixel fragment data, or ok=false if this
// composite is not a pixel sequence.
func (c CompositeValue) PixelFragments() (PixelFragments, bool) {
	if c.kind != compositePixelSequence {
		return PixelFragments{}, false
	}
	return c.pixels, true
}

// CalculateByteLen returns the value's own encoded byte length, independent
// of whatever length a header declares (spec.md §3 "Data Element": "the
// value knows its own byte length independent of the header's declared
// length").
func (c CompositeValue) CalculateByteLen() Length {
	switch c.kind {
	case compositePrimitive:
		return Length(c.primitive.CalculateByteLen())
	case compositeSequence:
		if c.seqLength.IsUndefined() {
			return UNDEFINED
		}
		var total uint64
		for _, it := range c.items {
			total += 8 + uint64(it.ByteLen())
		}
		return checkedLength(total)
	case compositePixelSequence:
		var total uint64
		total += 8 // first item header (offset table), present even if empty
		total += uint64(len(c.pixels.OffsetTable)) * 4
		for _, f := range c.pixels.Fragments {
			total += 8 + uint64(len(f))
		}
		return checkedLength(total)
	default:
		return 0
	}
}

// DataElement is the (header, value) pair stored by an InMemoryObject.
type DataElement struct {
	Header Header
	Value  CompositeValue
}

// NewDataElement builds a leaf DataElement from a tag, VR and primitive
// value, computing the header length from the value.
func NewDataElement(tag Tag, vr VR, v PrimitiveValue) DataElement {
	cv := NewPrimitiveComposite(v)
	return DataElement{
		Header: Header{Tag: tag, VR: vr, Length: cv.CalculateByteLen()},
		Value:  cv,
	}
}

// GetTag is a convenience accessor mirroring the teacher's flattened element
// API (gillesdemey/go-dicom's Element.Tag).
func (e DataElement) GetTag() Tag { return e.Header.Tag }
