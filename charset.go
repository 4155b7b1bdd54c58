package dicom

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/dcmgo/dicom/dicomlog"
)

// CodingSystem pairs an x/text Encoding with the DICOM defined term it
// corresponds to, used to decode LO/LT/PN/SH/ST/UC/UT values under a
// non-default Specific Character Set (0008,0005).
type CodingSystem struct {
	Term     string
	Encoding encoding.Encoding
}

// codingSystems is the subset of PS3.3 Annex C.12.1.1.2 defined terms this
// package resolves directly; anything else falls back to the ISO IR 6
// default (plain ASCII), matching the teacher's bounded charset.go table
// rather than vendoring the complete registry.
var codingSystems = map[string]CodingSystem{
	"":                 {Term: "ISO_IR 6", Encoding: encoding.Nop},
	"ISO_IR 6":         {Term: "ISO_IR 6", Encoding: encoding.Nop},
	"ISO_IR 100":       {Term: "ISO_IR 100", Encoding: encoding.Nop}, // Latin-1; ASCII superset for our purposes
	"ISO_IR 192":       {Term: "ISO_IR 192", Encoding: unicode.UTF8},
	"GB18030":          {Term: "GB18030", Encoding: simplifiedchinese.GB18030},
	"ISO_IR 13":        {Term: "ISO_IR 13", Encoding: japanese.ShiftJIS},
	"ISO 2022 IR 13":   {Term: "ISO 2022 IR 13", Encoding: japanese.ISO2022JP},
	"ISO 2022 IR 87":   {Term: "ISO 2022 IR 87", Encoding: japanese.ISO2022JP},
	"ISO_IR 149":       {Term: "ISO_IR 149", Encoding: korean.EUCKR},
	"ISO 2022 IR 149":  {Term: "ISO 2022 IR 149", Encoding: korean.EUCKR},
}

// ResolveCodingSystem maps a Specific Character Set defined term to its
// CodingSystem, falling back to ISO_IR 6 (ASCII) when unrecognized.
func ResolveCodingSystem(term string) CodingSystem {
	if cs, ok := codingSystems[term]; ok {
		return cs
	}
	if term != "" {
		dicomlog.Vprintf(1, "dicom: unknown Specific Character Set %q, falling back to ISO_IR 6", term)
	}
	return codingSystems[""]
}

// DecodeText decodes b from the named charset to a Go (UTF-8) string.
func DecodeText(term string, b []byte) (string, error) {
	cs := ResolveCodingSystem(term)
	out, err := cs.Encoding.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// EncodeText encodes s from UTF-8 into the named charset's bytes.
func EncodeText(term string, s string) ([]byte, error) {
	cs := ResolveCodingSystem(term)
	return cs.Encoding.NewEncoder().Bytes([]byte(s))
}

// SpecificCharacterSet reads (0008,0005) from obj, returning nil (the
// default ISO_IR 6 repertoire) if absent. Multi-valued character sets (ISO 2022 escape switching across
// multiple values) are returned as a slice for callers that need ordered
// component selection; most callers want the first value only.
func (o *InMemoryObject) SpecificCharacterSet() []string {
	e, ok := o.ElementOpt(TagSpecificCharacterSet)
	if !ok {
		return nil
	}
	if ss, err := e.Value.primitive.Strings(); err == nil {
		return ss
	}
	if s, err := e.Value.primitive.ToStr(); err == nil && s != "" {
		return []string{s}
	}
	return nil
}
