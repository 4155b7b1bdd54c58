package dicom

import (
	"github.com/cespare/xxhash/v2"
)

// Checksum returns a content fingerprint of obj, computed over its elements
// in ascending tag order (the same order IntoTokens and Iter use), so that
// two objects with identical data produce identical checksums regardless of
// how they were constructed. Grounded on arloliu/mebo's content-fingerprint
// pattern (internal/hash), which hashes a value's canonical byte
// representation with xxhash rather than a general-purpose cryptographic
// hash, since this is for change detection and deduplication, not security.
func (o *InMemoryObject) Checksum() uint64 {
	d := xxhash.New()
	for _, e := range o.Iter() {
		writeChecksumTagVR(d, e)
		b, err := e.Value.checksumBytes()
		if err != nil {
			continue
		}
		d.Write(b)
	}
	return d.Sum64()
}

func writeChecksumTagVR(d *xxhash.Digest, e DataElement) {
	var hdr [8]byte
	hdr[0] = byte(e.Header.Tag.Group)
	hdr[1] = byte(e.Header.Tag.Group >> 8)
	hdr[2] = byte(e.Header.Tag.Element)
	hdr[3] = byte(e.Header.Tag.Element >> 8)
	name := e.Header.VR.String()
	hdr[4] = name[0]
	if len(name) > 1 {
		hdr[5] = name[1]
	}
	d.Write(hdr[:])
}

// checksumBytes renders a composite value to a stable byte sequence for
// hashing: primitives use ToBytes, sequences recurse into each item's own
// Checksum, and pixel fragments are hashed fragment-by-fragment.
func (c CompositeValue) checksumBytes() ([]byte, error) {
	switch {
	case c.IsPrimitive():
		prim, _ := c.Primitive()
		return prim.ToBytes()
	case c.IsSequence():
		items, _ := c.Items()
		var out []byte
		for _, it := range items {
			sum := it.Checksum()
			var b [8]byte
			for i := 0; i < 8; i++ {
				b[i] = byte(sum >> (8 * i))
			}
			out = append(out, b[:]...)
		}
		return out, nil
	default:
		frags, _ := c.PixelFragments()
		var out []byte
		for _, f := range frags.Fragments {
			out = append(out, f...)
		}
		return out, nil
	}
}

// ChecksumString hashes a single string the same way arloliu/mebo's
// xxhash.Sum64String helper does.
func ChecksumString(s string) uint64 {
	return xxhash.Sum64String(s)
}
