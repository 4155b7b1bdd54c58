package dicom

import "fmt"

// VR is a DICOM Value Representation: a two-letter code declaring the type
// of an element's value. The set is closed -- 34 codes defined by the
// standard, plus NA for pseudo-elements (items, delimiters) that carry no
// VR of their own.
type VR int

const (
	VRInvalid VR = iota
	AE
	AS
	AT
	CS
	DA
	DS
	DT
	FL
	FD
	IS
	LO
	LT
	OB
	OD
	OF
	OL
	OV
	OW
	PN
	SH
	SL
	SQ
	SS
	ST
	SV
	TM
	UC
	UI
	UL
	UN
	UR
	US
	UT
	UV
	// NA marks a pseudo-element (Item, ItemDelimitationItem,
	// SequenceDelimitationItem) that is always encoded Implicit VR and has
	// no VR of its own on the wire.
	NA
)

var vrNames = [...]string{
	VRInvalid: "??",
	AE:        "AE", AS: "AS", AT: "AT", CS: "CS", DA: "DA", DS: "DS", DT: "DT",
	FL: "FL", FD: "FD", IS: "IS", LO: "LO", LT: "LT", OB: "OB", OD: "OD",
	OF: "OF", OL: "OL", OV: "OV", OW: "OW", PN: "PN", SH: "SH", SL: "SL",
	SQ: "SQ", SS: "SS", ST: "ST", SV: "SV", TM: "TM", UC: "UC", UI: "UI",
	UL: "UL", UN: "UN", UR: "UR", US: "US", UT: "UT", UV: "UV", NA: "NA",
}

var vrByName map[string]VR

func init() {
	vrByName = make(map[string]VR, len(vrNames))
	for vr, name := range vrNames {
		if name != "" {
			vrByName[name] = VR(vr)
		}
	}
}

// String returns the two-letter canonical ASCII form, e.g. "PN", "SQ".
func (vr VR) String() string {
	if int(vr) < 0 || int(vr) >= len(vrNames) || vrNames[vr] == "" {
		return fmt.Sprintf("VR(%d)", int(vr))
	}
	return vrNames[vr]
}

// ParseVR parses a two-letter code into a VR. It returns VRInvalid and
// false if s is not one of the 34 standard codes (or "NA").
func ParseVR(s string) (VR, bool) {
	vr, ok := vrByName[s]
	return vr, ok
}

// IsSequence reports whether vr marks a nested data-set sequence.
func (vr VR) IsSequence() bool { return vr == SQ }

// MayBeEncapsulatedPixelData reports whether vr is one that may carry
// encapsulated (fragmented) pixel data: OB or UN.
func (vr VR) MayBeEncapsulatedPixelData() bool { return vr == OB || vr == UN }

// UsesLongValueLength reports whether, under Explicit VR encoding, this VR
// is followed by two reserved bytes and a 4-byte length instead of a plain
// 2-byte length.
func (vr VR) UsesLongValueLength() bool {
	switch vr {
	case OB, OD, OF, OL, OV, OW, SQ, UN, UC, UR, UT, SV, UV, NA:
		return true
	default:
		return false
	}
}

// Kind classifies the Go representation used to store values of this VR,
// mirroring the teacher's VRKind / dicom-rs's PrimitiveValue variant
// selection.
type Kind int

const (
	KindString Kind = iota
	KindBytes
	KindU16
	KindU32
	KindI16
	KindI32
	KindI64
	KindU64
	KindF32
	KindF64
	KindTag
	KindDate
	KindTime
	KindDateTime
	KindSequence
	KindPixelSequence
)

var kindNames = [...]string{
	KindString: "String", KindBytes: "Bytes", KindU16: "U16", KindU32: "U32",
	KindI16: "I16", KindI32: "I32", KindI64: "I64", KindU64: "U64",
	KindF32: "F32", KindF64: "F64",
	KindTag: "Tag", KindDate: "Date", KindTime: "Time", KindDateTime: "DateTime",
	KindSequence: "Sequence", KindPixelSequence: "PixelSequence",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// KindOf returns the natural Go storage kind for vr.
func KindOf(vr VR) Kind {
	switch vr {
	case AT:
		return KindTag
	case OB, OW, OD, OF, OL, OV, UN:
		return KindBytes
	case UL:
		return KindU32
	case SL:
		return KindI32
	case US:
		return KindU16
	case SS:
		return KindI16
	case SV:
		return KindI64
	case UV:
		return KindU64
	case FL:
		return KindF32
	case FD:
		return KindF64
	case SQ:
		return KindSequence
	case DA:
		return KindDate
	case TM:
		return KindTime
	case DT:
		return KindDateTime
	default:
		return KindString
	}
}

// VRForValueKind returns the natural VR for a PrimitiveValue variant, the
// inverse of KindOf -- used when a constructive attribute operation (Set,
// SetIfMissing) must invent a VR for a brand-new element and the dictionary
// has no entry for the target tag (spec.md §4.2).
func VRForValueKind(k ValueKind) VR {
	switch k {
	case TagsKind:
		return AT
	case U8Kind:
		return UN
	case I16Kind:
		return SS
	case U16Kind:
		return US
	case I32Kind:
		return SL
	case U32Kind:
		return UL
	case I64Kind:
		return SV
	case U64Kind:
		return UV
	case F32Kind:
		return FL
	case F64Kind:
		return FD
	case DateKind:
		return DA
	case TimeKind:
		return TM
	case DateTimeKind:
		return DT
	default:
		return LO
	}
}

// TextPadByte and BinaryPadByte are the two padding bytes used to make an
// odd-length value even: ' ' for text VRs, NUL for everything else.
const (
	TextPadByte   byte = 0x20
	BinaryPadByte byte = 0x00
)

// PadByte returns the byte used to pad vr's encoded value to an even
// length.
func (vr VR) PadByte() byte {
	switch vr {
	case UI:
		return BinaryPadByte
	default:
		if KindOf(vr) == KindString || vr == UI {
			return TextPadByte
		}
		return BinaryPadByte
	}
}
