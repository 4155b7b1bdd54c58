package dicom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileMetaTableValidate(t *testing.T) {
	m := &FileMetaTable{}
	require.Error(t, m.Validate())

	m = NewFileMetaTable("1.2.840.10008.5.1.4.1.1.7", "1.2.3", "1.2.840.10008.1.2.1", "1.2.3.4")
	require.NoError(t, m.Validate())
}

func TestFileMetaTableAutoInferFrom(t *testing.T) {
	m := &FileMetaTable{TransferSyntaxUID: "1.2.840.10008.1.2.1", ImplementationClassUID: "1.2.3.4"}
	ds := NewInMemoryObject(nil)
	ds.Put(NewDataElement(TagSOPClassUID, UI, NewStr("1.2.840.10008.5.1.4.1.1.7")))
	ds.Put(NewDataElement(TagSOPInstanceUID, UI, NewStr("1.2.3.99")))

	m.AutoInferFrom(ds)
	assert.Equal(t, "1.2.840.10008.5.1.4.1.1.7", m.MediaStorageSOPClassUID)
	assert.Equal(t, "1.2.3.99", m.MediaStorageSOPInstanceUID)
}

func TestFileMetaTableToElementsAndBack(t *testing.T) {
	m := NewFileMetaTable("1.2.840.10008.5.1.4.1.1.7", "1.2.3", "1.2.840.10008.1.2.1", "1.2.3.4")
	m.ImplementationVersionName = "DCMGO_1_0"

	elems := m.ToElements()
	require.Equal(t, TagFileMetaInformationGroupLength, elems[0].Header.Tag)

	round, err := FileMetaTableFromElements(elems[1:])
	require.NoError(t, err)
	assert.Equal(t, m.MediaStorageSOPClassUID, round.MediaStorageSOPClassUID)
	assert.Equal(t, m.MediaStorageSOPInstanceUID, round.MediaStorageSOPInstanceUID)
	assert.Equal(t, m.TransferSyntaxUID, round.TransferSyntaxUID)
	assert.Equal(t, m.ImplementationClassUID, round.ImplementationClassUID)
	assert.Equal(t, m.ImplementationVersionName, round.ImplementationVersionName)
}

func TestFileMetaTableGroupLengthExcludesItself(t *testing.T) {
	m := NewFileMetaTable("1.2.840.10008.5.1.4.1.1.7", "1.2.3", "1.2.840.10008.1.2.1", "1.2.3.4")
	elems := m.ToElements()
	gl, err := elems[0].Value.primitive.UInt32Slice()
	require.NoError(t, err)

	var total uint64
	for _, e := range elems[1:] {
		total += elementWireSize(e)
	}
	assert.Equal(t, uint32(total), gl[0])
}

func TestDetectPreamble(t *testing.T) {
	withPreamble := make([]byte, 132)
	copy(withPreamble[128:], "DICM")
	assert.Equal(t, PreamblePresent, DetectPreamble(withPreamble))

	noPreamble := []byte("DICM")
	assert.Equal(t, PreambleAbsent, DetectPreamble(noPreamble))

	assert.Equal(t, PreambleAuto, DetectPreamble([]byte{0x01, 0x02}))
}
