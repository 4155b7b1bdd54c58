package dicom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksumDeterministicAcrossConstructionOrder(t *testing.T) {
	a := NewInMemoryObject(nil)
	a.Put(NewDataElement(TagSOPClassUID, UI, NewStr("1.2")))
	a.Put(NewDataElement(TagSOPInstanceUID, UI, NewStr("1.3")))

	b := NewInMemoryObject(nil)
	b.Put(NewDataElement(TagSOPInstanceUID, UI, NewStr("1.3")))
	b.Put(NewDataElement(TagSOPClassUID, UI, NewStr("1.2")))

	assert.Equal(t, a.Checksum(), b.Checksum())
}

func TestChecksumChangesWithContent(t *testing.T) {
	a := NewInMemoryObject(nil)
	a.Put(NewDataElement(TagSOPClassUID, UI, NewStr("1.2")))

	b := NewInMemoryObject(nil)
	b.Put(NewDataElement(TagSOPClassUID, UI, NewStr("1.2.3")))

	assert.NotEqual(t, a.Checksum(), b.Checksum())
}

func TestChecksumEmptyObjectIsStable(t *testing.T) {
	a := NewInMemoryObject(nil)
	b := NewInMemoryObject(nil)
	assert.Equal(t, a.Checksum(), b.Checksum())
}

func TestChecksumStringIsDeterministic(t *testing.T) {
	assert.Equal(t, ChecksumString("1.2.840.10008.1.2.1"), ChecksumString("1.2.840.10008.1.2.1"))
	assert.NotEqual(t, ChecksumString("a"), ChecksumString("b"))
}
