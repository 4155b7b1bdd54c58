package dicomio

import (
	"bytes"
	"math"
)

// Encoder writes primitive wire values to an internal buffer, remembering
// the first error it hits the same way Decoder does. Writing to a buffer
// rather than directly to an io.Writer lets nested chunks (an item inside a
// sequence, a PDU payload inside its frame) be built bottom-up: compute the
// inner bytes first, then prefix the outer length (spec.md §4.5 "construct
// payloads bottom-up").
type Encoder struct {
	buf   bytes.Buffer
	order ByteOrder
	err   error
}

// NewEncoder returns an empty Encoder writing numbers in the given byte
// order.
func NewEncoder(order ByteOrder) *Encoder {
	return &Encoder{order: order}
}

// Error returns the first error encountered, or nil.
func (e *Encoder) Error() error { return e.err }

// SetError records err as the sticky error if one isn't already set.
func (e *Encoder) SetError(err error) {
	if e.err == nil && err != nil {
		e.err = err
	}
}

// ByteOrder returns the encoder's configured byte order.
func (e *Encoder) ByteOrder() ByteOrder { return e.order }

// Bytes returns the accumulated buffer. Callers should check Error() first.
func (e *Encoder) Bytes() []byte { return e.buf.Bytes() }

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int { return e.buf.Len() }

// Reset clears the buffer (but not the sticky error), for reuse across
// independent chunks within the same PDU.
func (e *Encoder) Reset() { e.buf.Reset() }

func (e *Encoder) writeFull(b []byte) {
	if e.err != nil {
		return
	}
	e.buf.Write(b)
}

// WriteByte writes a single byte.
func (e *Encoder) WriteByte(b byte) {
	e.writeFull([]byte{b})
}

// WriteZeros writes n zero bytes, used for the PDU format's reserved
// fields.
func (e *Encoder) WriteZeros(n int) {
	e.writeFull(make([]byte, n))
}

// WriteUInt16 writes a 2-byte unsigned integer.
func (e *Encoder) WriteUInt16(v uint16) {
	var buf [2]byte
	e.order.PutUint16(buf[:], v)
	e.writeFull(buf[:])
}

// WriteUInt32 writes a 4-byte unsigned integer.
func (e *Encoder) WriteUInt32(v uint32) {
	var buf [4]byte
	e.order.PutUint32(buf[:], v)
	e.writeFull(buf[:])
}

// WriteInt16/WriteInt32 are the signed equivalents.
func (e *Encoder) WriteInt16(v int16) { e.WriteUInt16(uint16(v)) }
func (e *Encoder) WriteInt32(v int32) { e.WriteUInt32(uint32(v)) }

// WriteUInt64/WriteInt64 write 8-byte integers.
func (e *Encoder) WriteUInt64(v uint64) {
	var buf [8]byte
	e.order.PutUint64(buf[:], v)
	e.writeFull(buf[:])
}
func (e *Encoder) WriteInt64(v int64) { e.WriteUInt64(uint64(v)) }

// WriteFloat32/WriteFloat64 write IEEE-754 floats.
func (e *Encoder) WriteFloat32(v float32) { e.WriteUInt32(math.Float32bits(v)) }
func (e *Encoder) WriteFloat64(v float64) { e.WriteUInt64(math.Float64bits(v)) }

// WriteBytes writes b verbatim.
func (e *Encoder) WriteBytes(b []byte) { e.writeFull(b) }

// WriteString writes s verbatim (no padding; callers pad before calling).
func (e *Encoder) WriteString(s string) { e.writeFull([]byte(s)) }

// WritePaddedString writes s truncated or zero/space-padded to exactly n
// bytes, as used for 16-byte AE titles (pad 0x20) and other fixed-width
// text fields.
func (e *Encoder) WritePaddedString(s string, n int, pad byte) {
	b := make([]byte, n)
	for i := range b {
		b[i] = pad
	}
	copy(b, s)
	if len(s) > n {
		copy(b, s[:n])
	}
	e.writeFull(b)
}

// SubEncoder returns a fresh Encoder sharing this one's byte order and
// sticky error, for building a nested chunk (an item, a sub-item) whose
// byte length must be known before it can be framed into the parent.
func (e *Encoder) SubEncoder() *Encoder {
	sub := NewEncoder(e.order)
	sub.err = e.err
	return sub
}

// Absorb appends sub's buffer to e and propagates its error, after the
// caller has framed sub's length prefix into e.
func (e *Encoder) Absorb(sub *Encoder) {
	e.SetError(sub.Error())
	e.writeFull(sub.Bytes())
}
