package dicomio

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoderReadIntegers(t *testing.T) {
	dec := NewDecoder(bytes.NewReader([]byte{0x34, 0x12, 0xEF, 0xCD, 0xAB, 0x89}), LittleEndian)
	assert.Equal(t, uint16(0x1234), dec.ReadUInt16())
	assert.Equal(t, uint32(0x89ABCDEF), dec.ReadUInt32())
	require.NoError(t, dec.Error())
}

func TestDecoderStickyErrorAfterEOF(t *testing.T) {
	dec := NewDecoder(bytes.NewReader([]byte{0x01}), LittleEndian)
	dec.ReadUInt16()
	require.Error(t, dec.Error())
	assert.Equal(t, byte(0), dec.ReadByte())
}

func TestDecoderPushPopLimit(t *testing.T) {
	dec := NewDecoder(bytes.NewReader([]byte{1, 2, 3, 4, 5}), LittleEndian)
	dec.PushLimit(2)
	assert.Equal(t, int64(2), dec.BytesLeftInLimit())
	dec.ReadBytes(2)
	assert.Equal(t, int64(0), dec.BytesLeftInLimit())
	dec.PopLimit()
	assert.Equal(t, int64(-1), dec.BytesLeftInLimit())
	dec.ReadBytes(3)
	require.NoError(t, dec.Error())
}

func TestDecoderLimitExceeded(t *testing.T) {
	dec := NewDecoder(bytes.NewReader([]byte{1, 2, 3, 4, 5}), LittleEndian)
	dec.PushLimit(2)
	dec.ReadBytes(3)
	require.Error(t, dec.Error())
}

func TestPeekBytesReplaysConsumedData(t *testing.T) {
	src := bytes.NewReader([]byte("DICM rest of stream"))
	peeked, rest, err := PeekBytes(src, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("DICM"), peeked)

	all, err := io.ReadAll(rest)
	require.NoError(t, err)
	assert.Equal(t, "DICM rest of stream", string(all))
}
