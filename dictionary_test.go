package dicom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDictionaryRegisterAndLookup(t *testing.T) {
	d := NewMapDictionary()
	d.Register(NewTag(0x0010, 0x0010), "PatientName", PN)

	tag, ok := d.TagByKeyword("PatientName")
	require.True(t, ok)
	assert.Equal(t, NewTag(0x0010, 0x0010), tag)

	kw, ok := d.KeywordByTag(NewTag(0x0010, 0x0010))
	require.True(t, ok)
	assert.Equal(t, "PatientName", kw)

	vr, ok := d.VRByTag(NewTag(0x0010, 0x0010))
	require.True(t, ok)
	assert.Equal(t, PN, vr)
}

func TestMapDictionaryMissingLookup(t *testing.T) {
	d := NewMapDictionary()
	_, ok := d.TagByKeyword("Nonexistent")
	assert.False(t, ok)
}

func TestStandardDictionaryCoversWellKnownTags(t *testing.T) {
	tag, ok := StandardDictionary.TagByKeyword("PatientID")
	require.True(t, ok)
	assert.Equal(t, NewTag(0x0010, 0x0020), tag)

	vr, ok := StandardDictionary.VRByTag(TagSOPInstanceUID)
	require.True(t, ok)
	assert.Equal(t, UI, vr)
}
