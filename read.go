package dicom

import (
	"io"
	"math"
	"strings"

	"github.com/dcmgo/dicom/dicomio"
)

func float32FromBits(u uint32) float32 { return math.Float32frombits(u) }
func float64FromBits(u uint64) float64 { return math.Float64frombits(u) }

// ReadOptions configures data-set decoding.
type ReadOptions struct {
	ByteOrder dicomio.ByteOrder
	VRKind    dicomio.VRKind
	Dict      Dictionary
}

// ReadDataSet decodes a flat stream of elements (no meta group, no
// preamble) until EOF, in the style of the teacher's element-by-element
// ReadElement loop (gillesdemey/go-dicom's element.go), but returning
// errors rather than panicking.
func ReadDataSet(r io.Reader, opts ReadOptions) (*InMemoryObject, error) {
	dec := dicomio.NewDecoder(r, opts.ByteOrder)
	obj := NewInMemoryObject(opts.Dict)
	for {
		e, err := readElement(dec, opts)
		if err == io.EOF {
			break
		}
		if err != nil {
			return obj, &ReadError{Kind: "ReadElement", Cause: err}
		}
		obj.Put(e)
	}
	return obj, nil
}

func readElement(dec *dicomio.Decoder, opts ReadOptions) (DataElement, error) {
	group := dec.ReadUInt16()
	if dec.Error() == io.EOF {
		return DataElement{}, io.EOF
	}
	elem := dec.ReadUInt16()
	if dec.Error() != nil {
		return DataElement{}, dec.Error()
	}
	tag := NewTag(group, elem)

	var vr VR
	var length Length
	if opts.VRKind == dicomio.ExplicitVR {
		code := dec.ReadString(2)
		var ok bool
		vr, ok = ParseVR(code)
		if !ok {
			vr = UN
		}
		if vr.UsesLongValueLength() {
			dec.ReadUInt16() // reserved
			length = Length(dec.ReadUInt32())
		} else {
			length = Length(dec.ReadUInt16())
		}
	} else {
		vr = vrForImplicit(opts.Dict, tag)
		length = Length(dec.ReadUInt32())
	}
	if dec.Error() != nil {
		return DataElement{}, dec.Error()
	}

	if vr == SQ || (length.IsUndefined() && vr.MayBeEncapsulatedPixelData()) {
		return readSequenceOrPixels(dec, opts, tag, vr, length)
	}

	if length.IsUndefined() {
		return DataElement{}, &ReadError{Kind: "UnexpectedUndefinedLength"}
	}

	raw := dec.ReadBytes(int(length))
	if dec.Error() != nil {
		return DataElement{}, dec.Error()
	}
	val, err := decodePrimitive(vr, raw, dec.ByteOrder())
	if err != nil {
		return DataElement{}, err
	}
	return DataElement{Header: Header{Tag: tag, VR: vr, Length: length}, Value: NewPrimitiveComposite(val)}, nil
}

func vrForImplicit(dict Dictionary, tag Tag) VR {
	if dict != nil {
		if vr, ok := dict.VRByTag(tag); ok {
			return vr
		}
	}
	return UN
}

func readSequenceOrPixels(dec *dicomio.Decoder, opts ReadOptions, tag Tag, vr VR, length Length) (DataElement, error) {
	if vr.MayBeEncapsulatedPixelData() && length.IsUndefined() {
		frags, err := readPixelFragments(dec)
		if err != nil {
			return DataElement{}, err
		}
		return DataElement{Header: Header{Tag: tag, VR: vr, Length: UNDEFINED}, Value: NewPixelSequenceComposite(frags)}, nil
	}

	var items []*InMemoryObject
	if length.IsUndefined() {
		for {
			itemTag, itemLen, err := readItemHeader(dec)
			if err != nil {
				return DataElement{}, err
			}
			if itemTag == TagSequenceDelimitationItem {
				break
			}
			item, err := readItem(dec, opts, itemLen)
			if err != nil {
				return DataElement{}, err
			}
			items = append(items, item)
		}
	} else {
		dec.PushLimit(int64(length))
		for dec.BytesLeftInLimit() > 0 {
			itemTag, itemLen, err := readItemHeader(dec)
			if err != nil {
				return DataElement{}, err
			}
			if itemTag != TagItem {
				return DataElement{}, &ReadError{Kind: "ExpectedItem"}
			}
			item, err := readItem(dec, opts, itemLen)
			if err != nil {
				return DataElement{}, err
			}
			items = append(items, item)
		}
		dec.PopLimit()
	}
	return DataElement{Header: Header{Tag: tag, VR: SQ, Length: length}, Value: NewSequenceComposite(items, length)}, nil
}

func readItemHeader(dec *dicomio.Decoder) (Tag, Length, error) {
	group := dec.ReadUInt16()
	elem := dec.ReadUInt16()
	length := Length(dec.ReadUInt32())
	if dec.Error() != nil {
		return Tag{}, 0, dec.Error()
	}
	return NewTag(group, elem), length, nil
}

func readItem(dec *dicomio.Decoder, opts ReadOptions, length Length) (*InMemoryObject, error) {
	obj := NewInMemoryObject(opts.Dict)
	if length.IsUndefined() {
		for {
			tag, _, err := peekDelimiter(dec)
			if err != nil {
				return nil, err
			}
			if tag == TagItemDelimitationItem {
				dec.ReadUInt32() // consume the zero length field
				break
			}
			e, err := readElementAtCursor(dec, opts, tag)
			if err != nil {
				return nil, err
			}
			obj.Put(e)
		}
	} else {
		dec.PushLimit(int64(length))
		for dec.BytesLeftInLimit() > 0 {
			e, err := readElement(dec, opts)
			if err != nil {
				return nil, err
			}
			obj.Put(e)
		}
		dec.PopLimit()
		obj.SetCachedLength(length)
	}
	return obj, nil
}

// peekDelimiter reads the next tag's group/element to check for an item
// delimiter without an extra buffering layer: the teacher's dicomio has no
// true peek, so this mirrors the asdu/cs104 style of reading the fixed-size
// discriminant up front and branching (rob-gra/go-iecp5).
func peekDelimiter(dec *dicomio.Decoder) (Tag, bool, error) {
	group := dec.ReadUInt16()
	elem := dec.ReadUInt16()
	if dec.Error() != nil {
		return Tag{}, false, dec.Error()
	}
	return NewTag(group, elem), true, nil
}

func readElementAtCursor(dec *dicomio.Decoder, opts ReadOptions, tag Tag) (DataElement, error) {
	var vr VR
	var length Length
	if opts.VRKind == dicomio.ExplicitVR {
		code := dec.ReadString(2)
		var ok bool
		vr, ok = ParseVR(code)
		if !ok {
			vr = UN
		}
		if vr.UsesLongValueLength() {
			dec.ReadUInt16()
			length = Length(dec.ReadUInt32())
		} else {
			length = Length(dec.ReadUInt16())
		}
	} else {
		vr = vrForImplicit(opts.Dict, tag)
		length = Length(dec.ReadUInt32())
	}
	if dec.Error() != nil {
		return DataElement{}, dec.Error()
	}
	if vr == SQ || (length.IsUndefined() && vr.MayBeEncapsulatedPixelData()) {
		return readSequenceOrPixels(dec, opts, tag, vr, length)
	}
	raw := dec.ReadBytes(int(length))
	if dec.Error() != nil {
		return DataElement{}, dec.Error()
	}
	val, err := decodePrimitive(vr, raw, dec.ByteOrder())
	if err != nil {
		return DataElement{}, err
	}
	return DataElement{Header: Header{Tag: tag, VR: vr, Length: length}, Value: NewPrimitiveComposite(val)}, nil
}

func readPixelFragments(dec *dicomio.Decoder) (PixelFragments, error) {
	var frags PixelFragments
	first := true
	for {
		tag, length, err := readItemHeader(dec)
		if err != nil {
			return frags, err
		}
		if tag == TagSequenceDelimitationItem {
			return frags, nil
		}
		if tag != TagItem {
			return frags, &ReadError{Kind: "ExpectedItem"}
		}
		data := dec.ReadBytes(int(length))
		if dec.Error() != nil {
			return frags, dec.Error()
		}
		if first {
			frags.OffsetTable = decodeOffsetTable(data)
			first = false
			continue
		}
		frags.Fragments = append(frags.Fragments, data)
	}
}

func decodePrimitive(vr VR, raw []byte, order dicomio.ByteOrder) (PrimitiveValue, error) {
	switch KindOf(vr) {
	case KindBytes:
		return NewBytes(raw), nil
	case KindU16:
		return NewU16s(decodeU16s(raw, order)...), nil
	case KindI16:
		u := decodeU16s(raw, order)
		out := make([]int16, len(u))
		for i, x := range u {
			out[i] = int16(x)
		}
		return NewI16s(out...), nil
	case KindU32:
		return NewU32s(decodeU32s(raw, order)...), nil
	case KindI32:
		u := decodeU32s(raw, order)
		out := make([]int32, len(u))
		for i, x := range u {
			out[i] = int32(x)
		}
		return NewI32s(out...), nil
	case KindI64:
		u := decodeU64s(raw, order)
		out := make([]int64, len(u))
		for i, x := range u {
			out[i] = int64(x)
		}
		return NewI64s(out...), nil
	case KindU64:
		return NewU64s(decodeU64s(raw, order)...), nil
	case KindF32:
		return NewF32s(decodeF32s(raw, order)...), nil
	case KindF64:
		return NewF64s(decodeF64s(raw, order)...), nil
	case KindTag:
		u := decodeU16s(raw, order)
		tags := make([]Tag, 0, len(u)/2)
		for i := 0; i+1 < len(u); i += 2 {
			tags = append(tags, NewTag(u[i], u[i+1]))
		}
		return NewTags(tags...), nil
	case KindDate:
		return parseMultiValueInto(raw, ParseDate, func(ds []Date) PrimitiveValue { return NewDates(ds...) })
	case KindTime:
		return parseMultiValueInto(raw, ParseTime, func(ts []Time) PrimitiveValue { return NewTimes(ts...) })
	case KindDateTime:
		return parseMultiValueInto(raw, ParseDateTime, func(ds []DateTime) PrimitiveValue { return NewDateTimes(ds...) })
	default:
		text := strings.TrimRight(string(raw), " \x00")
		if vr == UI {
			text = strings.TrimRight(string(raw), "\x00")
		}
		if !strings.Contains(text, `\`) {
			return NewStr(text), nil
		}
		return NewStrs(strings.Split(text, `\`)...), nil
	}
}

func parseMultiValueInto[T any](raw []byte, parse func(string) (T, error), build func([]T) PrimitiveValue) (PrimitiveValue, error) {
	text := strings.TrimRight(string(raw), " \x00")
	parts := strings.Split(text, `\`)
	out := make([]T, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		v, err := parse(p)
		if err != nil {
			return PrimitiveValue{}, err
		}
		out = append(out, v)
	}
	return build(out), nil
}

func decodeU16s(raw []byte, order dicomio.ByteOrder) []uint16 {
	out := make([]uint16, len(raw)/2)
	for i := range out {
		out[i] = order.Uint16(raw[i*2:])
	}
	return out
}

func decodeU32s(raw []byte, order dicomio.ByteOrder) []uint32 {
	out := make([]uint32, len(raw)/4)
	for i := range out {
		out[i] = order.Uint32(raw[i*4:])
	}
	return out
}

func decodeF32s(raw []byte, order dicomio.ByteOrder) []float32 {
	u := decodeU32s(raw, order)
	out := make([]float32, len(u))
	for i, x := range u {
		out[i] = float32FromBits(x)
	}
	return out
}

func decodeU64s(raw []byte, order dicomio.ByteOrder) []uint64 {
	out := make([]uint64, len(raw)/8)
	for i := range out {
		out[i] = order.Uint64(raw[i*8 : i*8+8])
	}
	return out
}

func decodeF64s(raw []byte, order dicomio.ByteOrder) []float64 {
	out := make([]float64, len(raw)/8)
	for i := range out {
		out[i] = float64FromBits(order.Uint64(raw[i*8 : i*8+8]))
	}
	return out
}
