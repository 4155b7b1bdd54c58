package dicom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOpSetCreatesElement(t *testing.T) {
	obj := NewInMemoryObject(nil)
	err := obj.Apply(AttributeOp{
		Selector:  NewSelector(TagSOPInstanceUID),
		Action:    OpSet,
		VR:        UI,
		Primitive: NewStr("1.2.3"),
	})
	require.NoError(t, err)

	e, err := obj.Element(TagSOPInstanceUID)
	require.NoError(t, err)
	s, err := e.Value.primitive.ToStr()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", s)
}

func TestApplyOpRemoveAbsentIsNoOp(t *testing.T) {
	obj := NewInMemoryObject(nil)
	err := obj.Apply(AttributeOp{Selector: NewSelector(TagSOPInstanceUID), Action: OpRemove})
	require.NoError(t, err)
}

func TestApplyOpRemoveExisting(t *testing.T) {
	obj := NewInMemoryObject(nil)
	obj.Put(NewDataElement(TagSOPInstanceUID, UI, NewStr("1.2.3")))
	err := obj.Apply(AttributeOp{Selector: NewSelector(TagSOPInstanceUID), Action: OpRemove})
	require.NoError(t, err)
	_, ok := obj.ElementOpt(TagSOPInstanceUID)
	assert.False(t, ok)
}

func TestApplyOpSetIfMissingDoesNotOverwrite(t *testing.T) {
	obj := NewInMemoryObject(nil)
	obj.Put(NewDataElement(TagSOPInstanceUID, UI, NewStr("orig")))
	err := obj.Apply(AttributeOp{
		Selector:  NewSelector(TagSOPInstanceUID),
		Action:    OpSetIfMissing,
		VR:        UI,
		Primitive: NewStr("new"),
	})
	require.NoError(t, err)
	e, err := obj.Element(TagSOPInstanceUID)
	require.NoError(t, err)
	s, _ := e.Value.primitive.ToStr()
	assert.Equal(t, "orig", s)
}

func TestApplyOpPushU16CreatesThenAppends(t *testing.T) {
	tag := NewTag(0x0028, 0x0010)
	obj := NewInMemoryObject(nil)
	require.NoError(t, obj.Apply(AttributeOp{Selector: NewSelector(tag), Action: OpPushU16, U16: 512}))
	require.NoError(t, obj.Apply(AttributeOp{Selector: NewSelector(tag), Action: OpPushU16, U16: 512}))

	e, err := obj.Element(tag)
	require.NoError(t, err)
	assert.Equal(t, US, e.Header.VR)
	us, err := e.Value.primitive.UInt16Slice()
	require.NoError(t, err)
	assert.Equal(t, []uint16{512, 512}, us)
}

func TestApplyOpTruncate(t *testing.T) {
	tag := NewTag(0x0028, 0x0010)
	obj := NewInMemoryObject(nil)
	obj.Put(NewDataElement(tag, US, NewU16s(1, 2, 3, 4)))

	require.NoError(t, obj.Apply(AttributeOp{Selector: NewSelector(tag), Action: OpTruncate, Limit: 2}))
	e, err := obj.Element(tag)
	require.NoError(t, err)
	us, err := e.Value.primitive.UInt16Slice()
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2}, us)
}

func TestApplyOpReplaceNoOpWhenAbsent(t *testing.T) {
	obj := NewInMemoryObject(nil)
	err := obj.Apply(AttributeOp{Selector: NewSelector(TagSOPInstanceUID), Action: OpReplace, Primitive: NewStr("x")})
	require.NoError(t, err)
	_, ok := obj.ElementOpt(TagSOPInstanceUID)
	assert.False(t, ok)
}

func TestApplyOpReplaceRejectsSequence(t *testing.T) {
	seqTag := NewTag(0x0008, 0x1140)
	obj := NewInMemoryObject(nil)
	obj.Put(DataElement{
		Header: Header{Tag: seqTag, VR: SQ, Length: UNDEFINED},
		Value:  NewSequenceComposite(nil, UNDEFINED),
	})
	err := obj.Apply(AttributeOp{Selector: NewSelector(seqTag), Action: OpReplace, Primitive: NewStr("x")})
	require.Error(t, err)
	var applyErr *ApplyError
	require.ErrorAs(t, err, &applyErr)
	assert.Equal(t, ApplyIncompatibleTypes, applyErr.Kind)
}

func TestApplyOpEmptyMissingIsError(t *testing.T) {
	obj := NewInMemoryObject(nil)
	err := obj.Apply(AttributeOp{Selector: NewSelector(TagSOPInstanceUID), Action: OpEmpty})
	require.Error(t, err)
}

// TestApplyOpSetNestedSequence mirrors spec.md S3: applying Set at a nested
// selector into an existing sequence item replaces just the leaf value and
// invalidates the outer object's cached length.
func TestApplyOpSetNestedSequence(t *testing.T) {
	regionsTag := NewTag(0x0018, 0x6012)
	leafTag := NewTag(0x0018, 0x6014)

	item := NewInMemoryObject(nil)
	item.Put(NewDataElement(regionsTag, US, NewU16s(1)))
	item.Put(NewDataElement(leafTag, US, NewU16s(2)))

	obj := NewInMemoryObject(nil)
	seqTag := NewTag(0x0018, 0x6011) // SequenceOfUltrasoundRegions
	obj.Put(DataElement{
		Header: Header{Tag: seqTag, VR: SQ, Length: UNDEFINED},
		Value:  NewSequenceComposite([]*InMemoryObject{item}, UNDEFINED),
	})
	obj.SetCachedLength(DefinedLength(100))

	sel := NewStepSelector(
		SelectorStep{Tag: seqTag, Item: 0},
		SelectorStep{Tag: leafTag, Leaf: true},
	)
	require.NoError(t, obj.Apply(AttributeOp{Selector: sel, Action: OpSet, VR: US, Primitive: NewU16s(3)}))

	got, err := sel.ValueAt(obj)
	require.NoError(t, err)
	us, err := got.UInt16Slice()
	require.NoError(t, err)
	assert.Equal(t, []uint16{3}, us)
	assert.True(t, obj.ByteLen().IsUndefined())
}

// TestApplyOpSetRejectsNonSequenceIntermediate guards against silently
// overwriting an existing non-sequence element when a constructive op
// navigates through it.
func TestApplyOpSetRejectsNonSequenceIntermediate(t *testing.T) {
	tag := NewTag(0x0018, 0x6011)
	leafTag := NewTag(0x0018, 0x6014)
	obj := NewInMemoryObject(nil)
	obj.Put(NewDataElement(tag, US, NewU16s(7))) // not a sequence

	sel := NewStepSelector(
		SelectorStep{Tag: tag, Item: 0},
		SelectorStep{Tag: leafTag, Leaf: true},
	)
	err := obj.Apply(AttributeOp{Selector: sel, Action: OpSet, VR: US, Primitive: NewU16s(3)})
	require.Error(t, err)

	e, ok := obj.ElementOpt(tag)
	require.True(t, ok)
	assert.True(t, e.Value.IsPrimitive())
}

// TestApplyOpSetDerivesVRFromValueKind ensures a brand-new element created
// via Set with no explicit VR and no dictionary entry gets a VR matching
// the inserted value's natural kind, not a blanket LO.
func TestApplyOpSetDerivesVRFromValueKind(t *testing.T) {
	tag := NewTag(0x0009, 0x1001)
	obj := NewInMemoryObject(nil)
	require.NoError(t, obj.Apply(AttributeOp{Selector: NewSelector(tag), Action: OpSet, Primitive: NewU32s(42)}))

	e, err := obj.Element(tag)
	require.NoError(t, err)
	assert.Equal(t, UL, e.Header.VR)
}
