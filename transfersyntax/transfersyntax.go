// Package transfersyntax models the Transfer Syntax Registry as an
// external collaborator (spec.md §1 "out of scope: external collaborators"):
// the core package never embeds the full UID table, it only asks a
// Registry for the byte order, VR framing, and (de)compression Codec that
// go with a UID.
package transfersyntax

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/dcmgo/dicom/dicomio"
)

// Properties describes how a transfer syntax UID frames its data set.
type Properties struct {
	UID          string
	Name         string
	ByteOrder    dicomio.ByteOrder
	VRKind       dicomio.VRKind
	Encapsulated bool // pixel data is stored as encapsulated fragments
	Codec        Codec
}

// Codec compresses/decompresses a transfer syntax's whole encoded data-set
// stream (the bytes after the file meta group).
// Grounded on arloliu/mebo's Compressor/Decompressor/Codec interface
// pattern (internal compression package): a transfer syntax that carries
// no compression (the overwhelming majority) simply has a nil Codec.
type Codec interface {
	Compress(w io.Writer, p []byte) error
	Decompress(r io.Reader) ([]byte, error)
}

// deflateCodec implements Codec for Deflated Explicit VR Little Endian
// (1.2.840.10008.1.2.1.99), using klauspost/compress/flate.
type deflateCodec struct{}

func (deflateCodec) Compress(w io.Writer, p []byte) error {
	fw, err := flate.NewWriter(w, flate.DefaultCompression)
	if err != nil {
		return err
	}
	if _, err := fw.Write(p); err != nil {
		return err
	}
	return fw.Close()
}

func (deflateCodec) Decompress(r io.Reader) ([]byte, error) {
	fr := flate.NewReader(r)
	defer fr.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, fr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Well-known UIDs.
const (
	ImplicitVRLittleEndian         = "1.2.840.10008.1.2"
	ExplicitVRLittleEndian         = "1.2.840.10008.1.2.1"
	DeflatedExplicitVRLittleEndian = "1.2.840.10008.1.2.1.99"
	ExplicitVRBigEndian            = "1.2.840.10008.1.2.2"
	JPEGBaseline                   = "1.2.840.10008.1.2.4.50"
	JPEGLosslessSV1                = "1.2.840.10008.1.2.4.70"
	JPEGLSLossless                 = "1.2.840.10008.1.2.4.80"
	JPEG2000Lossless               = "1.2.840.10008.1.2.4.90"
	JPEG2000                       = "1.2.840.10008.1.2.4.91"
	RLELossless                    = "1.2.840.10008.1.2.5"
)

// Registry resolves a transfer syntax UID to its Properties. The core
// package (and the PDU presentation-context negotiation) depend only on
// this interface.
type Registry interface {
	Lookup(uid string) (Properties, bool)
}

// defaultRegistry is a MapRegistry seeded with the UIDs this package's own
// Codec can exercise, plus the compressed-pixel-data transfer syntaxes as
// encapsulated-but-uncompressed-here entries (their pixel codecs -- JPEG,
// JPEG-LS, JPEG 2000, RLE -- are genuinely out of scope: spec.md's Composite
// Value models encapsulated fragments as opaque bytes, it never decodes
// pixel samples).
var defaultRegistry = buildDefaultRegistry()

func buildDefaultRegistry() *MapRegistry {
	r := NewMapRegistry()
	r.Register(Properties{UID: ImplicitVRLittleEndian, Name: "Implicit VR Little Endian", ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ImplicitVR})
	r.Register(Properties{UID: ExplicitVRLittleEndian, Name: "Explicit VR Little Endian", ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR})
	r.Register(Properties{UID: DeflatedExplicitVRLittleEndian, Name: "Deflated Explicit VR Little Endian", ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR, Codec: deflateCodec{}})
	r.Register(Properties{UID: ExplicitVRBigEndian, Name: "Explicit VR Big Endian", ByteOrder: dicomio.BigEndian, VRKind: dicomio.ExplicitVR})
	r.Register(Properties{UID: JPEGBaseline, Name: "JPEG Baseline", ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR, Encapsulated: true})
	r.Register(Properties{UID: JPEGLosslessSV1, Name: "JPEG Lossless, Nonhierarchical, First-Order Prediction", ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR, Encapsulated: true})
	r.Register(Properties{UID: JPEGLSLossless, Name: "JPEG-LS Lossless", ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR, Encapsulated: true})
	r.Register(Properties{UID: JPEG2000Lossless, Name: "JPEG 2000 Lossless", ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR, Encapsulated: true})
	r.Register(Properties{UID: JPEG2000, Name: "JPEG 2000", ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR, Encapsulated: true})
	r.Register(Properties{UID: RLELossless, Name: "RLE Lossless", ByteOrder: dicomio.LittleEndian, VRKind: dicomio.ExplicitVR, Encapsulated: true})
	return r
}

// Default returns the built-in Registry covering the UIDs listed above.
func Default() Registry { return defaultRegistry }

// MapRegistry is a minimal Registry backed by a map.
type MapRegistry struct {
	byUID map[string]Properties
}

func NewMapRegistry() *MapRegistry {
	return &MapRegistry{byUID: make(map[string]Properties)}
}

func (r *MapRegistry) Register(p Properties) { r.byUID[p.UID] = p }

func (r *MapRegistry) Lookup(uid string) (Properties, bool) {
	p, ok := r.byUID[uid]
	return p, ok
}

// UnsupportedTransferSyntaxError describes a UID that isn't in the registry
// being consulted. Lookup reports a missing UID through its boolean result;
// nothing in this module returns this error type.
type UnsupportedTransferSyntaxError struct {
	UID string
}

func (e *UnsupportedTransferSyntaxError) Error() string {
	return fmt.Sprintf("transfersyntax: unsupported transfer syntax UID %q", e.UID)
}
