// Package dicomio provides the low-level sticky-error byte codecs shared by
// the data-set reader/writer and the Upper Layer PDU codecs: an Encoder and
// a Decoder that accumulate the first error they hit and make every
// subsequent operation a no-op, so callers can chain a sequence of writes
// or reads and check the error once at the end.
package dicomio

import "encoding/binary"

// ByteOrder selects the wire byte order: DICOM data sets may be Little or
// Big Endian depending on transfer syntax; the Upper Layer protocol is
// always Big Endian.
type ByteOrder = binary.ByteOrder

var (
	LittleEndian = binary.LittleEndian
	BigEndian    = binary.BigEndian
)

// VRKind, used by CodecOptions to select implicit-vs-explicit VR framing,
// is defined here rather than in the core package (dicomio must not depend on the dicom package, to keep the layering the
// teacher uses: dicomio is the pure byte-level substrate).
type VRKind int

const (
	ImplicitVR VRKind = iota
	ExplicitVR
)

// CodecOptions configures how a Decoder/Encoder frames element headers.
type CodecOptions struct {
	ByteOrder ByteOrder
	VRKind    VRKind
}

// DefaultImplicitLittleEndian is the transfer-syntax-less default used when
// decoding a bare data set with no preceding meta group.
var DefaultImplicitLittleEndian = CodecOptions{ByteOrder: LittleEndian, VRKind: ImplicitVR}
