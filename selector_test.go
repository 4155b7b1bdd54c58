package dicom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorValueAtFlat(t *testing.T) {
	obj := NewInMemoryObject(nil)
	obj.Put(NewDataElement(TagSOPInstanceUID, UI, NewStr("1.2.3")))

	sel := NewSelector(TagSOPInstanceUID)
	v, err := sel.ValueAt(obj)
	require.NoError(t, err)
	s, err := v.ToStr()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", s)
}

func TestSelectorValueAtMissing(t *testing.T) {
	obj := NewInMemoryObject(nil)
	sel := NewSelector(TagSOPInstanceUID)
	_, err := sel.ValueAt(obj)
	require.Error(t, err)
	var atErr *AtAccessError
	require.ErrorAs(t, err, &atErr)
	assert.Equal(t, MissingSequence, atErr.Kind)
}

func TestSelectorNestedSelector(t *testing.T) {
	seqTag := NewTag(0x0008, 0x1140)
	leafTag := TagSOPInstanceUID

	child := NewInMemoryObject(nil)
	child.Put(NewDataElement(leafTag, UI, NewStr("1.2.3.4")))

	outer := NewInMemoryObject(nil)
	outer.Put(DataElement{
		Header: Header{Tag: seqTag, VR: SQ, Length: UNDEFINED},
		Value:  NewSequenceComposite([]*InMemoryObject{child}, UNDEFINED),
	})

	sel := NewNestedSelector(seqTag, leafTag)
	v, err := sel.ValueAt(outer)
	require.NoError(t, err)
	s, err := v.ToStr()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4", s)
}

func TestSelectorNotASequence(t *testing.T) {
	obj := NewInMemoryObject(nil)
	obj.Put(NewDataElement(TagSOPClassUID, UI, NewStr("1.2")))

	sel := NewNestedSelector(TagSOPClassUID, TagSOPInstanceUID)
	_, err := sel.ValueAt(obj)
	require.Error(t, err)
	var atErr *AtAccessError
	require.ErrorAs(t, err, &atErr)
	assert.Equal(t, NotASequence, atErr.Kind)
}

func TestSelectorUpdateValueAt(t *testing.T) {
	obj := NewInMemoryObject(nil)
	obj.Put(NewDataElement(TagSOPInstanceUID, UI, NewStr("1.2.3")))

	sel := NewSelector(TagSOPInstanceUID)
	err := sel.UpdateValueAt(obj, func(cv *CompositeValue) {
		*cv = NewPrimitiveComposite(NewStr("9.9.9"))
	})
	require.NoError(t, err)

	e, err := obj.Element(TagSOPInstanceUID)
	require.NoError(t, err)
	s, err := e.Value.primitive.ToStr()
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", s)
}
