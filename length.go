package dicom

// Length is a 32-bit value length with 0xFFFFFFFF reserved as the
// "undefined length" sentinel used by sequences and encapsulated pixel
// data that are delimited rather than length-prefixed.
//
// Equality and ordering deliberately violate the usual total-order laws
// when UNDEFINED is involved: two undefined lengths do not compare equal,
// and no ordering comparison against an undefined length holds. This
// mirrors dicom-rs's Length exactly (see original_source/core/src/header.rs)
// and is tested by the property "Length::UNDEFINED == Length::UNDEFINED is
// false" in spec.md §8.
type Length uint32

// UndefinedLength is the raw sentinel value reserved for "no declared
// length"; Length.UNDEFINED wraps it. Arithmetic or comparisons that land
// exactly on this value by accident (rather than by explicit construction)
// indicate a bug in debug builds -- see Length.Add.
const UndefinedLength uint32 = 0xFFFFFFFF

// UNDEFINED is the sentinel Length value.
const UNDEFINED Length = Length(UndefinedLength)

// DefinedLength constructs a Length known to be well-defined. It panics if
// n is the reserved sentinel value, since that would silently create an
// undefined length where the caller believes they have a concrete one.
func DefinedLength(n uint32) Length {
	if n == UndefinedLength {
		panic("dicom: Length: 0xFFFFFFFF is reserved for UNDEFINED")
	}
	return Length(n)
}

// IsUndefined reports whether l is the undefined-length sentinel.
func (l Length) IsUndefined() bool { return l == UNDEFINED }

// Equal implements the DICOM-specific equality: UNDEFINED never equals
// anything, including another UNDEFINED. Use InnerEq for raw bit equality.
func (l Length) Equal(other Length) bool {
	if l.IsUndefined() || other.IsUndefined() {
		return false
	}
	return l == other
}

// InnerEq reports raw (bitwise) equality, ignoring the undefined-sentinel
// semantics. It is the escape hatch spec.md §8 requires for internal tests
// that need to assert UNDEFINED.InnerEq(UNDEFINED) == true.
func (l Length) InnerEq(other Length) bool { return l == other }

// Less reports whether l is strictly less than other. Any comparison
// involving an undefined length is "incomparable" and returns false,
// matching spec.md §3 and §8 (S5).
func (l Length) Less(other Length) bool {
	if l.IsUndefined() || other.IsUndefined() {
		return false
	}
	return l < other
}

// Greater mirrors Less.
func (l Length) Greater(other Length) bool {
	if l.IsUndefined() || other.IsUndefined() {
		return false
	}
	return l > other
}

// LessOrEqual mirrors Less; false whenever either side is undefined (it is
// not the negation of Greater).
func (l Length) LessOrEqual(other Length) bool {
	if l.IsUndefined() || other.IsUndefined() {
		return false
	}
	return l <= other
}

// GreaterOrEqual mirrors Less; false whenever either side is undefined.
func (l Length) GreaterOrEqual(other Length) bool {
	if l.IsUndefined() || other.IsUndefined() {
		return false
	}
	return l >= other
}

// Add returns l+other, or UNDEFINED if either operand is undefined. In
// debug builds (built with the "dicom_debug" tag) a genuine arithmetic
// overflow that happens to land exactly on the sentinel value panics
// instead of silently becoming "undefined" -- see length_debug.go /
// length_release.go.
func (l Length) Add(other Length) Length {
	if l.IsUndefined() || other.IsUndefined() {
		return UNDEFINED
	}
	sum := uint64(l) + uint64(other)
	return checkedLength(sum)
}

// String renders the length for diagnostics.
func (l Length) String() string {
	if l.IsUndefined() {
		return "UNDEFINED"
	}
	return uintToDecimal(uint32(l))
}

func uintToDecimal(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
