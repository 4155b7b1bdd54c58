package dicomio

import (
	"bytes"
	"fmt"
	"io"
	"math"
)

// Decoder reads primitive wire values from an io.Reader, remembering the
// first error it hits: once err is set, every subsequent Read* call
// becomes a no-op that returns the zero value, so a parser can chain many
// reads and check Error() once at the end (grounded on the teacher's
// buffer.go Decoder, gillesdemey/go-dicom).
type Decoder struct {
	in    io.Reader
	order ByteOrder
	err   error

	// limitStack bounds how many more bytes may be read, for item/sequence
	// boundaries with a defined length; pushed/popped by PushLimit/PopLimit.
	limitStack []int64
	pos        int64
}

// NewDecoder wraps r, reading numbers in the given byte order.
func NewDecoder(r io.Reader, order ByteOrder) *Decoder {
	return &Decoder{in: r, order: order}
}

// Error returns the first error encountered, or nil.
func (d *Decoder) Error() error { return d.err }

// SetError records err as the sticky error if one isn't already set.
func (d *Decoder) SetError(err error) {
	if d.err == nil && err != nil {
		d.err = err
	}
}

// ByteOrder returns the decoder's configured byte order.
func (d *Decoder) ByteOrder() ByteOrder { return d.order }

// PushLimit restricts subsequent reads to at most n more bytes (relative to
// the current position), for decoding a length-prefixed item or sequence.
// Pop with PopLimit when done.
func (d *Decoder) PushLimit(n int64) {
	d.limitStack = append(d.limitStack, d.pos+n)
}

// PopLimit removes the innermost limit pushed by PushLimit.
func (d *Decoder) PopLimit() {
	if len(d.limitStack) > 0 {
		d.limitStack = d.limitStack[:len(d.limitStack)-1]
	}
}

// BytesLeftInLimit reports how many bytes remain before the innermost
// active limit, or -1 if no limit is active.
func (d *Decoder) BytesLeftInLimit() int64 {
	if len(d.limitStack) == 0 {
		return -1
	}
	return d.limitStack[len(d.limitStack)-1] - d.pos
}

func (d *Decoder) checkLimit(n int64) {
	if len(d.limitStack) == 0 {
		return
	}
	if d.pos+n > d.limitStack[len(d.limitStack)-1] {
		d.SetError(fmt.Errorf("dicomio: read of %d bytes would exceed the active length limit", n))
	}
}

func (d *Decoder) readFull(buf []byte) {
	if d.err != nil {
		return
	}
	d.checkLimit(int64(len(buf)))
	if d.err != nil {
		return
	}
	_, err := io.ReadFull(d.in, buf)
	if err != nil {
		d.SetError(err)
		return
	}
	d.pos += int64(len(buf))
}

// ReadByte reads a single byte.
func (d *Decoder) ReadByte() byte {
	var buf [1]byte
	d.readFull(buf[:])
	return buf[0]
}

// ReadUInt16 reads a 2-byte unsigned integer in the decoder's byte order.
func (d *Decoder) ReadUInt16() uint16 {
	var buf [2]byte
	d.readFull(buf[:])
	if d.err != nil {
		return 0
	}
	return d.order.Uint16(buf[:])
}

// ReadUInt32 reads a 4-byte unsigned integer.
func (d *Decoder) ReadUInt32() uint32 {
	var buf [4]byte
	d.readFull(buf[:])
	if d.err != nil {
		return 0
	}
	return d.order.Uint32(buf[:])
}

// ReadInt16/ReadInt32 are the signed equivalents.
func (d *Decoder) ReadInt16() int16 { return int16(d.ReadUInt16()) }
func (d *Decoder) ReadInt32() int32 { return int32(d.ReadUInt32()) }

// ReadUInt64/ReadInt64 read 8-byte integers.
func (d *Decoder) ReadUInt64() uint64 {
	var buf [8]byte
	d.readFull(buf[:])
	if d.err != nil {
		return 0
	}
	return d.order.Uint64(buf[:])
}
func (d *Decoder) ReadInt64() int64 { return int64(d.ReadUInt64()) }

// ReadFloat32/ReadFloat64 read IEEE-754 floats.
func (d *Decoder) ReadFloat32() float32 {
	return math.Float32frombits(d.ReadUInt32())
}
func (d *Decoder) ReadFloat64() float64 {
	return math.Float64frombits(d.ReadUInt64())
}

// ReadBytes reads exactly n bytes.
func (d *Decoder) ReadBytes(n int) []byte {
	buf := make([]byte, n)
	d.readFull(buf)
	return buf
}

// ReadString reads exactly n bytes and returns them as a string verbatim
// (padding, if any, is left for the caller to trim).
func (d *Decoder) ReadString(n int) string {
	return string(d.ReadBytes(n))
}

// PeekBytes reads up to n bytes without consuming them, by buffering
// through a bytes.Reader swap when the underlying reader supports it.
// Limited to use at the very start of a stream (file preamble detection);
// it does not interact with PushLimit/PopLimit.
func PeekBytes(r io.Reader, n int) ([]byte, io.Reader, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return buf[:read], io.MultiReader(bytes.NewReader(buf[:read]), r), err
	}
	return buf[:read], io.MultiReader(bytes.NewReader(buf[:read]), r), nil
}
