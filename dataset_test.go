package dicom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryObjectPutAndGet(t *testing.T) {
	obj := NewInMemoryObject(nil)
	e := NewDataElement(TagSOPInstanceUID, UI, NewStr("1.2.3"))
	_, existed := obj.Put(e)
	assert.False(t, existed)

	got, err := obj.Element(TagSOPInstanceUID)
	require.NoError(t, err)
	assert.Equal(t, e, got)
	assert.Equal(t, UNDEFINED, obj.ByteLen())
}

func TestInMemoryObjectElementMissing(t *testing.T) {
	obj := NewInMemoryObject(nil)
	_, err := obj.Element(TagSOPInstanceUID)
	require.Error(t, err)
	var accessErr *AccessError
	assert.ErrorAs(t, err, &accessErr)
}

func TestInMemoryObjectIterOrdersByTag(t *testing.T) {
	obj := NewInMemoryObject(nil)
	obj.Put(NewDataElement(TagPixelData, OB, NewBytes([]byte{1, 2})))
	obj.Put(NewDataElement(TagSOPClassUID, UI, NewStr("1.2")))
	obj.Put(NewDataElement(TagSpecificCharacterSet, CS, NewStr("ISO_IR 100")))

	iter := obj.Iter()
	require.Len(t, iter, 3)
	assert.Equal(t, TagSpecificCharacterSet, iter[0].Header.Tag)
	assert.Equal(t, TagSOPClassUID, iter[1].Header.Tag)
	assert.Equal(t, TagPixelData, iter[2].Header.Tag)
}

func TestInMemoryObjectCharsetChanged(t *testing.T) {
	obj := NewInMemoryObject(nil)
	assert.False(t, obj.CharsetChanged())
	obj.Put(NewDataElement(TagSpecificCharacterSet, CS, NewStr("ISO_IR 100")))
	assert.True(t, obj.CharsetChanged())
}

func TestInMemoryObjectElementByName(t *testing.T) {
	dict := NewMapDictionary()
	dict.Register(TagSOPInstanceUID, "SOPInstanceUID", UI)
	obj := NewInMemoryObject(dict)
	obj.Put(NewDataElement(TagSOPInstanceUID, UI, NewStr("1.2.3")))

	got, err := obj.ElementByName("SOPInstanceUID")
	require.NoError(t, err)
	assert.Equal(t, TagSOPInstanceUID, got.Header.Tag)

	_, err = obj.ElementByName("NoSuchThing")
	assert.Error(t, err)
}

func TestInMemoryObjectTakeRemoveRetain(t *testing.T) {
	obj := NewInMemoryObject(nil)
	obj.Put(NewDataElement(TagSOPClassUID, UI, NewStr("1.2")))
	obj.Put(NewDataElement(TagSOPInstanceUID, UI, NewStr("1.3")))

	taken, err := obj.TakeElement(TagSOPClassUID)
	require.NoError(t, err)
	assert.Equal(t, TagSOPClassUID, taken.Header.Tag)
	assert.Equal(t, 1, obj.Len())

	obj.Put(NewDataElement(TagSOPClassUID, UI, NewStr("1.2")))
	obj.Retain(func(e DataElement) bool { return e.Header.Tag == TagSOPInstanceUID })
	assert.Equal(t, 1, obj.Len())
	_, ok := obj.ElementOpt(TagSOPInstanceUID)
	assert.True(t, ok)
}

func TestPrivateElementRoundTrip(t *testing.T) {
	obj := NewInMemoryObject(nil)
	require.NoError(t, obj.PutPrivateElement(0x0009, "ACME CORP", 0x01, LO, NewStr("secret")))

	got, err := obj.PrivateElement(0x0009, "ACME CORP", 0x01)
	require.NoError(t, err)
	s, err := got.Value.primitive.ToStr()
	require.NoError(t, err)
	assert.Equal(t, "secret", s)
}

func TestPrivateElementRejectsEvenGroup(t *testing.T) {
	obj := NewInMemoryObject(nil)
	err := obj.PutPrivateElement(0x0008, "ACME CORP", 0x01, LO, NewStr("x"))
	require.Error(t, err)
	var pe *PrivateElementError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, InvalidGroup, pe.Kind)
}

func TestPrivateElementNotFound(t *testing.T) {
	obj := NewInMemoryObject(nil)
	_, err := obj.PrivateElement(0x0009, "NOBODY", 0x01)
	require.Error(t, err)
	var pe *PrivateElementError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, PrivateCreatorNotFound, pe.Kind)
}

// TestPrivateElementReservesNextSlot mirrors spec.md S6: with a creator
// already reserved at (0009,0010), reserving a second creator must land on
// the next free slot in the 0x10..0xFF range, not the first free byte
// overall -- (0009,0011), not (0009,0001).
func TestPrivateElementReservesNextSlot(t *testing.T) {
	obj := NewInMemoryObject(nil)
	obj.Put(NewDataElement(NewTag(0x0009, 0x0010), LO, NewStr("CREATOR 1")))

	require.NoError(t, obj.PutPrivateElement(0x0009, "CREATOR 2", 0x01, DS, NewStr("1.0")))

	slotElem, err := obj.Element(NewTag(0x0009, 0x0011))
	require.NoError(t, err)
	name, err := slotElem.Value.primitive.ToStr()
	require.NoError(t, err)
	assert.Equal(t, "CREATOR 2", name)

	got, err := obj.PrivateElement(0x0009, "CREATOR 2", 0x01)
	require.NoError(t, err)
	assert.Equal(t, NewTag(0x0009, 0x1101), got.Header.Tag)
	val, err := got.Value.primitive.ToStr()
	require.NoError(t, err)
	assert.Equal(t, "1.0", val)
}

func TestCommandFromElementIterComputesGroupLength(t *testing.T) {
	elems := []DataElement{
		NewDataElement(NewTag(0x0000, 0x0100), US, NewU16s(1)),
		NewDataElement(NewTag(0x0000, 0x0110), US, NewU16s(7)),
	}
	obj := CommandFromElementIter(nil, elems)
	gl, err := obj.Element(TagCommandGroupLength)
	require.NoError(t, err)
	u32s, err := gl.Value.primitive.UInt32Slice()
	require.NoError(t, err)
	require.Len(t, u32s, 1)
	assert.Equal(t, uint32(8+2+8+2), u32s[0])
}
