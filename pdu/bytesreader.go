package pdu

import (
	"bytes"
	"io"
)

// newByteReader wraps an already-buffered sub-item payload for decoding by
// a fresh dicomio.Decoder, mirroring how the writer builds payloads
// bottom-up with SubEncoder (spec.md §4.5).
func newByteReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}

// isEOFLike reports whether err is the ordinary "ran out of buffered
// payload" condition rather than a genuine malformed-PDU error.
func isEOFLike(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}
