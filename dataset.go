package dicom

import (
	"sort"
)

// InMemoryObject owns a tag-ordered map of data elements (spec.md §4.2). Its
// zero value is not usable; construct with NewInMemoryObject.
type InMemoryObject struct {
	elements map[Tag]DataElement

	// length caches the on-wire byte length when this object was produced
	// by parsing an item with a defined length. Any mutation resets it to
	// Length::UNDEFINED, since recomputing it cheaply under a partial edit
	// isn't possible in general.
	length Length

	// charsetChanged is set when (0008,0005) Specific Character Set is
	// modified; the serializer observes it to force undefined sequence
	// lengths rather than trust potentially-stale cached lengths.
	charsetChanged bool

	dict Dictionary
}

// NewInMemoryObject returns an empty object using dict for keyword lookups.
// A nil dict is valid; name-based lookups then always fail.
func NewInMemoryObject(dict Dictionary) *InMemoryObject {
	return &InMemoryObject{elements: make(map[Tag]DataElement), length: UNDEFINED, dict: dict}
}

// FromElementIter builds an object from an already-materialized element
// slice (order is irrelevant; the map reorders by tag).
func FromElementIter(dict Dictionary, elems []DataElement) *InMemoryObject {
	obj := NewInMemoryObject(dict)
	for _, e := range elems {
		obj.Put(e)
	}
	return obj
}

// CommandFromElementIter is like FromElementIter but also computes and
// inserts the Command Group Length element (0000,0000): the sum of on-wire
// sizes (header + even-padded value length) of every other command-group
// element (group 0x0000, element != 0).
func CommandFromElementIter(dict Dictionary, elems []DataElement) *InMemoryObject {
	obj := FromElementIter(dict, elems)
	var total uint64
	for _, e := range elems {
		if e.Header.Tag.Group == CommandGroup && e.Header.Tag.Element != 0 {
			total += elementWireSize(e)
		}
	}
	obj.Put(NewDataElement(TagCommandGroupLength, UL, NewU32s(uint32(total))))
	return obj
}

// elementWireSize is the header size (8 bytes short form, 12 bytes long
// form under Explicit VR) plus the even-padded value length.
func elementWireSize(e DataElement) uint64 {
	headerLen := uint64(8)
	if e.Header.VR.UsesLongValueLength() {
		headerLen = 12
	}
	return headerLen + uint64(e.Value.CalculateByteLen())
}

// Put inserts or replaces by tag, returning the prior element if any. It
// resets the cached length and sets charsetChanged when the tag is
// Specific Character Set.
func (o *InMemoryObject) Put(e DataElement) (DataElement, bool) {
	prior, existed := o.elements[e.Header.Tag]
	o.elements[e.Header.Tag] = e
	o.length = UNDEFINED
	if e.Header.Tag == TagSpecificCharacterSet {
		o.charsetChanged = true
	}
	return prior, existed
}

// RemoveElement removes by tag, reporting whether anything was removed.
func (o *InMemoryObject) RemoveElement(tag Tag) bool {
	if _, ok := o.elements[tag]; !ok {
		return false
	}
	delete(o.elements, tag)
	o.length = UNDEFINED
	return true
}

// RemoveElementByName removes by dictionary keyword.
func (o *InMemoryObject) RemoveElementByName(name string) (bool, error) {
	tag, err := o.resolveName(name)
	if err != nil {
		return false, err
	}
	return o.RemoveElement(tag), nil
}

// TakeElement removes and returns the element at tag, failing if absent.
func (o *InMemoryObject) TakeElement(tag Tag) (DataElement, error) {
	e, ok := o.elements[tag]
	if !ok {
		return DataElement{}, NoSuchDataElementTag(tag)
	}
	o.RemoveElement(tag)
	return e, nil
}

// Retain keeps only elements satisfying keep, visited in ascending tag
// order. Always resets the cached length, since the predicate may have
// removed nothing but we cannot cheaply tell.
func (o *InMemoryObject) Retain(keep func(DataElement) bool) {
	for _, tag := range o.sortedTags() {
		if !keep(o.elements[tag]) {
			delete(o.elements, tag)
		}
	}
	o.length = UNDEFINED
}

// Element looks up by tag, failing with NoSuchDataElementTag if absent.
func (o *InMemoryObject) Element(tag Tag) (DataElement, error) {
	e, ok := o.elements[tag]
	if !ok {
		return DataElement{}, NoSuchDataElementTag(tag)
	}
	return e, nil
}

// ElementOpt looks up by tag, returning ok=false rather than an error.
func (o *InMemoryObject) ElementOpt(tag Tag) (DataElement, bool) {
	e, ok := o.elements[tag]
	return e, ok
}

// ElementByName looks up by dictionary keyword.
func (o *InMemoryObject) ElementByName(name string) (DataElement, error) {
	tag, err := o.resolveName(name)
	if err != nil {
		return DataElement{}, err
	}
	return o.Element(tag)
}

func (o *InMemoryObject) resolveName(name string) (Tag, error) {
	if o.dict == nil {
		return Tag{}, NoSuchAttributeName(name)
	}
	tag, ok := o.dict.TagByKeyword(name)
	if !ok {
		return Tag{}, NoSuchDataElementAlias(name)
	}
	return tag, nil
}

// UpdateValue borrows the value at tag mutably via fn, then resets the
// cached length. Fails if the tag is absent.
func (o *InMemoryObject) UpdateValue(tag Tag, fn func(*CompositeValue)) error {
	e, ok := o.elements[tag]
	if !ok {
		return NoSuchDataElementTag(tag)
	}
	fn(&e.Value)
	o.elements[tag] = e
	o.length = UNDEFINED
	return nil
}

func (o *InMemoryObject) sortedTags() []Tag {
	tags := make([]Tag, 0, len(o.elements))
	for t := range o.elements {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Compare(tags[j]) < 0
	})
	return tags
}

// Iter returns every element in ascending tag order. This ordering is
// observable and required: it governs both serialization and any
// content-based fingerprinting (checksum.go).
func (o *InMemoryObject) Iter() []DataElement {
	tags := o.sortedTags()
	out := make([]DataElement, len(tags))
	for i, t := range tags {
		out[i] = o.elements[t]
	}
	return out
}

// Tags returns every tag in ascending order.
func (o *InMemoryObject) Tags() []Tag { return o.sortedTags() }

// Len returns the number of elements.
func (o *InMemoryObject) Len() int { return len(o.elements) }

// ByteLen returns the cached on-wire length, or UNDEFINED if unset or stale
// (any Put/Remove/Retain/UpdateValue invalidates it).
func (o *InMemoryObject) ByteLen() Length { return o.length }

// SetCachedLength is used by the parser to record the declared item length
// an object was read from, before any further mutation invalidates it.
func (o *InMemoryObject) SetCachedLength(l Length) { o.length = l }

// CharsetChanged reports whether Specific Character Set has been modified
// since construction.
func (o *InMemoryObject) CharsetChanged() bool { return o.charsetChanged }

// --- private attributes ---

// privateCreatorSlot finds the creator reservation slot (0x10..0xFF) in
// group whose string value equals creator.
func (o *InMemoryObject) privateCreatorSlot(group uint16, creator string) (uint16, bool) {
	for slot := uint16(0x10); slot <= 0xFF; slot++ {
		e, ok := o.elements[NewTag(group, slot)]
		if !ok {
			continue
		}
		if s, _ := e.Value.primitive.ToStr(); s == creator {
			return slot, true
		}
	}
	return 0, false
}

// PrivateElement finds the creator slot in group whose value equals
// creator, then looks up (group, (slot<<8)|element).
func (o *InMemoryObject) PrivateElement(group uint16, creator string, element uint8) (DataElement, error) {
	slot, ok := o.privateCreatorSlot(group, creator)
	if !ok {
		return DataElement{}, &PrivateElementError{Kind: PrivateCreatorNotFound, Group: group}
	}
	tag := NewTag(group, (slot<<8)|uint16(element))
	e, ok := o.elements[tag]
	if !ok {
		return DataElement{}, &PrivateElementError{Kind: ElementNotFound, Group: group}
	}
	return e, nil
}

// PutPrivateElement ensures group is odd, reserves a creator slot for
// creator if none matches yet (first free 0x10..0xFF), and inserts the
// element at (group, (slot<<8)|element).
func (o *InMemoryObject) PutPrivateElement(group uint16, creator string, element uint8, vr VR, value PrimitiveValue) error {
	if group%2 == 0 {
		return &PrivateElementError{Kind: InvalidGroup, Group: group}
	}
	slot, ok := o.privateCreatorSlot(group, creator)
	if !ok {
		found := false
		for candidate := uint16(0x10); candidate <= 0xFF; candidate++ {
			if _, taken := o.elements[NewTag(group, candidate)]; !taken {
				slot, found = candidate, true
				break
			}
		}
		if !found {
			return &PrivateElementError{Kind: NoSpace, Group: group}
		}
		o.Put(NewDataElement(NewTag(group, slot), LO, NewStr(creator)))
	}
	tag := NewTag(group, (slot<<8)|uint16(element))
	o.Put(NewDataElement(tag, vr, value))
	return nil
}
