package dicomio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoderWriteIntegers(t *testing.T) {
	enc := NewEncoder(LittleEndian)
	enc.WriteUInt16(0x1234)
	enc.WriteUInt32(0x89ABCDEF)
	require.NoError(t, enc.Error())
	assert.Equal(t, []byte{0x34, 0x12, 0xEF, 0xCD, 0xAB, 0x89}, enc.Bytes())
}

func TestEncoderBigEndian(t *testing.T) {
	enc := NewEncoder(BigEndian)
	enc.WriteUInt16(0x1234)
	require.NoError(t, enc.Error())
	assert.Equal(t, []byte{0x12, 0x34}, enc.Bytes())
}

func TestEncoderWritePaddedString(t *testing.T) {
	enc := NewEncoder(LittleEndian)
	enc.WritePaddedString("AE1", 8, 0x20)
	require.NoError(t, enc.Error())
	assert.Equal(t, []byte("AE1     "), enc.Bytes())
}

func TestEncoderWritePaddedStringTruncates(t *testing.T) {
	enc := NewEncoder(LittleEndian)
	enc.WritePaddedString("TOOLONGAETITLE", 8, 0x20)
	require.NoError(t, enc.Error())
	assert.Equal(t, []byte("TOOLONGA"), enc.Bytes())
}

func TestEncoderSubEncoderAbsorb(t *testing.T) {
	enc := NewEncoder(BigEndian)
	sub := enc.SubEncoder()
	sub.WriteByte(0xAA)
	sub.WriteByte(0xBB)
	enc.WriteUInt32(uint32(sub.Len()))
	enc.Absorb(sub)
	require.NoError(t, enc.Error())
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x02, 0xAA, 0xBB}, enc.Bytes())
}

func TestEncoderStickyError(t *testing.T) {
	enc := NewEncoder(LittleEndian)
	assert.NoError(t, enc.Error())
	enc.SetError(assert.AnError)
	enc.WriteByte(1)
	assert.Equal(t, assert.AnError, enc.Error())
	assert.Equal(t, 0, enc.Len())
}
