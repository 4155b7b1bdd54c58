package dicom

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcmgo/dicom/dicomio"
)

func TestWriteReadDataSetExplicitVRRoundTrip(t *testing.T) {
	obj := NewInMemoryObject(nil)
	obj.Put(NewDataElement(TagSOPClassUID, UI, NewStr("1.2.840.10008.5.1.4.1.1.7")))
	obj.Put(NewDataElement(NewTag(0x0010, 0x0010), PN, NewStr("DOE^JANE")))
	obj.Put(NewDataElement(NewTag(0x0028, 0x0010), US, NewU16s(512)))

	var buf bytes.Buffer
	enc := dicomio.NewEncoder(dicomio.LittleEndian)
	WriteDataSet(enc, obj, WriteOptions{ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR})
	require.NoError(t, enc.Error())
	buf.Write(enc.Bytes())

	got, err := ReadDataSet(&buf, ReadOptions{ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR, Dict: StandardDictionary})
	require.NoError(t, err)

	e, err := got.Element(NewTag(0x0010, 0x0010))
	require.NoError(t, err)
	s, err := e.Value.primitive.ToStr()
	require.NoError(t, err)
	assert.Equal(t, "DOE^JANE", s)

	px, err := got.Element(NewTag(0x0028, 0x0010))
	require.NoError(t, err)
	us, err := px.Value.primitive.UInt16Slice()
	require.NoError(t, err)
	assert.Equal(t, []uint16{512}, us)
}

func TestWriteReadDataSetImplicitVRRoundTrip(t *testing.T) {
	dict := NewMapDictionary()
	dict.Register(TagSOPInstanceUID, "SOPInstanceUID", UI)

	obj := NewInMemoryObject(dict)
	obj.Put(NewDataElement(TagSOPInstanceUID, UI, NewStr("1.2.3")))

	var buf bytes.Buffer
	enc := dicomio.NewEncoder(dicomio.LittleEndian)
	WriteDataSet(enc, obj, WriteOptions{ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ImplicitVR})
	require.NoError(t, enc.Error())
	buf.Write(enc.Bytes())

	got, err := ReadDataSet(&buf, ReadOptions{ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ImplicitVR, Dict: dict})
	require.NoError(t, err)
	e, err := got.Element(TagSOPInstanceUID)
	require.NoError(t, err)
	s, err := e.Value.primitive.ToStr()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", s)
}

func TestWriteReadSequenceRoundTrip(t *testing.T) {
	child := NewInMemoryObject(nil)
	child.Put(NewDataElement(TagSOPInstanceUID, UI, NewStr("1.2.3.4")))

	seqTag := NewTag(0x0008, 0x1140)
	outer := NewInMemoryObject(nil)
	outer.Put(DataElement{
		Header: Header{Tag: seqTag, VR: SQ, Length: UNDEFINED},
		Value:  NewSequenceComposite([]*InMemoryObject{child}, UNDEFINED),
	})

	var buf bytes.Buffer
	enc := dicomio.NewEncoder(dicomio.LittleEndian)
	WriteDataSet(enc, outer, WriteOptions{ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR})
	require.NoError(t, enc.Error())
	buf.Write(enc.Bytes())

	got, err := ReadDataSet(&buf, ReadOptions{ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR, Dict: StandardDictionary})
	require.NoError(t, err)

	e, err := got.Element(seqTag)
	require.NoError(t, err)
	items, ok := e.Value.Items()
	require.True(t, ok)
	require.Len(t, items, 1)
	sop, err := items[0].Element(TagSOPInstanceUID)
	require.NoError(t, err)
	s, err := sop.Value.primitive.ToStr()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4", s)
}

// TestWriteReadDataSet64BitVRsRoundTrip guards SV/UV against being treated
// as text: both are binary 64-bit integer VRs with a long value length.
func TestWriteReadDataSet64BitVRsRoundTrip(t *testing.T) {
	svTag := NewTag(0x0028, 0x0108)
	uvTag := NewTag(0x0028, 0x0109)
	obj := NewInMemoryObject(nil)
	obj.Put(NewDataElement(svTag, SV, NewI64s(-1, 9223372036854775807)))
	obj.Put(NewDataElement(uvTag, UV, NewU64s(1, 18446744073709551615)))

	var buf bytes.Buffer
	enc := dicomio.NewEncoder(dicomio.LittleEndian)
	WriteDataSet(enc, obj, WriteOptions{ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR})
	require.NoError(t, enc.Error())
	buf.Write(enc.Bytes())

	got, err := ReadDataSet(&buf, ReadOptions{ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR, Dict: StandardDictionary})
	require.NoError(t, err)

	sv, err := got.Element(svTag)
	require.NoError(t, err)
	assert.Equal(t, SV, sv.Header.VR)
	i64s, err := sv.Value.primitive.Int64Slice()
	require.NoError(t, err)
	assert.Equal(t, []int64{-1, 9223372036854775807}, i64s)

	uv, err := got.Element(uvTag)
	require.NoError(t, err)
	assert.Equal(t, UV, uv.Header.VR)
	u64s, err := uv.Value.primitive.UInt64Slice()
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 18446744073709551615}, u64s)
}

func TestWriteReadPixelFragmentsRoundTrip(t *testing.T) {
	obj := NewInMemoryObject(nil)
	frags := PixelFragments{
		OffsetTable: []uint32{0},
		Fragments:   [][]byte{{0xAA, 0xBB, 0xCC, 0xDD}},
	}
	obj.Put(DataElement{
		Header: Header{Tag: TagPixelData, VR: OB, Length: UNDEFINED},
		Value:  NewPixelSequenceComposite(frags),
	})

	var buf bytes.Buffer
	enc := dicomio.NewEncoder(dicomio.LittleEndian)
	WriteDataSet(enc, obj, WriteOptions{ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR})
	require.NoError(t, enc.Error())
	buf.Write(enc.Bytes())

	got, err := ReadDataSet(&buf, ReadOptions{ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR, Dict: StandardDictionary})
	require.NoError(t, err)

	e, err := got.Element(TagPixelData)
	require.NoError(t, err)
	gotFrags, ok := e.Value.PixelFragments()
	require.True(t, ok)
	assert.Equal(t, frags.OffsetTable, gotFrags.OffsetTable)
	assert.Equal(t, frags.Fragments, gotFrags.Fragments)
}
