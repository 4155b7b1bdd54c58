package dicom

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the variant held by a PrimitiveValue. It mirrors
// dicom-rs's PrimitiveValue enum (original_source/core/src/value/primitive.rs)
// rather than the VR-indexed Kind in vr.go: several VRs share a
// representation (e.g. SS and SL are both "a signed integer variant", but at
// different widths), and Empty/Str/Strs are distinguished by cardinality,
// not VR.
type ValueKind int

const (
	EmptyKind ValueKind = iota
	StrKind
	StrsKind
	TagsKind
	U8Kind
	I16Kind
	U16Kind
	I32Kind
	U32Kind
	I64Kind
	U64Kind
	F32Kind
	F64Kind
	DateKind
	TimeKind
	DateTimeKind
)

var valueKindNames = [...]string{
	EmptyKind: "Empty", StrKind: "Str", StrsKind: "Strs", TagsKind: "Tags",
	U8Kind: "U8", I16Kind: "I16", U16Kind: "U16", I32Kind: "I32", U32Kind: "U32",
	I64Kind: "I64", U64Kind: "U64", F32Kind: "F32", F64Kind: "F64",
	DateKind: "Date", TimeKind: "Time", DateTimeKind: "DateTime",
}

func (k ValueKind) String() string {
	if int(k) < 0 || int(k) >= len(valueKindNames) {
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
	return valueKindNames[k]
}

// PrimitiveValue is the tagged union over every scalar/vector DICOM value,
// per spec.md §3/§4.1. Every variant but Empty and Str holds a slice; Str
// holds exactly one string, reserved for single-valued text VRs, so that
// "one value" and "one-element list" stay distinguishable (multiplicity()
// below depends on this).
type PrimitiveValue struct {
	kind ValueKind

	str      string
	strs     []string
	tags     []Tag
	bytes    []byte
	i16s     []int16
	u16s     []uint16
	i32s     []int32
	u32s     []uint32
	i64s     []int64
	u64s     []uint64
	f32s     []float32
	f64s     []float64
	dates    []Date
	times    []Time
	datetime []DateTime
}

// Empty returns the empty PrimitiveValue (multiplicity 0).
func Empty() PrimitiveValue { return PrimitiveValue{kind: EmptyKind} }

// NewStr builds a single-valued Str.
func NewStr(s string) PrimitiveValue { return PrimitiveValue{kind: StrKind, str: s} }

// NewStrs builds a multi-valued Strs.
func NewStrs(ss ...string) PrimitiveValue {
	return PrimitiveValue{kind: StrsKind, strs: append([]string(nil), ss...)}
}

// NewTags builds a Tags value (VR=AT).
func NewTags(tags ...Tag) PrimitiveValue {
	return PrimitiveValue{kind: TagsKind, tags: append([]Tag(nil), tags...)}
}

// NewBytes builds a U8 value (VR=OB/OW/UN raw bytes).
func NewBytes(b []byte) PrimitiveValue {
	return PrimitiveValue{kind: U8Kind, bytes: append([]byte(nil), b...)}
}

func NewI16s(v ...int16) PrimitiveValue { return PrimitiveValue{kind: I16Kind, i16s: append([]int16(nil), v...)} }
func NewU16s(v ...uint16) PrimitiveValue {
	return PrimitiveValue{kind: U16Kind, u16s: append([]uint16(nil), v...)}
}
func NewI32s(v ...int32) PrimitiveValue { return PrimitiveValue{kind: I32Kind, i32s: append([]int32(nil), v...)} }
func NewU32s(v ...uint32) PrimitiveValue {
	return PrimitiveValue{kind: U32Kind, u32s: append([]uint32(nil), v...)}
}
func NewI64s(v ...int64) PrimitiveValue { return PrimitiveValue{kind: I64Kind, i64s: append([]int64(nil), v...)} }
func NewU64s(v ...uint64) PrimitiveValue {
	return PrimitiveValue{kind: U64Kind, u64s: append([]uint64(nil), v...)}
}
func NewF32s(v ...float32) PrimitiveValue {
	return PrimitiveValue{kind: F32Kind, f32s: append([]float32(nil), v...)}
}
func NewF64s(v ...float64) PrimitiveValue {
	return PrimitiveValue{kind: F64Kind, f64s: append([]float64(nil), v...)}
}
func NewDates(v ...Date) PrimitiveValue { return PrimitiveValue{kind: DateKind, dates: append([]Date(nil), v...)} }
func NewTimes(v ...Time) PrimitiveValue { return PrimitiveValue{kind: TimeKind, times: append([]Time(nil), v...)} }
func NewDateTimes(v ...DateTime) PrimitiveValue {
	return PrimitiveValue{kind: DateTimeKind, datetime: append([]DateTime(nil), v...)}
}

// Kind reports the stored variant.
func (v PrimitiveValue) Kind() ValueKind { return v.kind }

// Multiplicity returns the variant-specific cardinality: 0 for Empty, 1 for
// Str, else the backing slice's length.
func (v PrimitiveValue) Multiplicity() int {
	switch v.kind {
	case EmptyKind:
		return 0
	case StrKind:
		return 1
	case StrsKind:
		return len(v.strs)
	case TagsKind:
		return len(v.tags)
	case U8Kind:
		return len(v.bytes)
	case I16Kind:
		return len(v.i16s)
	case U16Kind:
		return len(v.u16s)
	case I32Kind:
		return len(v.i32s)
	case U32Kind:
		return len(v.u32s)
	case I64Kind:
		return len(v.i64s)
	case U64Kind:
		return len(v.u64s)
	case F32Kind:
		return len(v.f32s)
	case F64Kind:
		return len(v.f64s)
	case DateKind:
		return len(v.dates)
	case TimeKind:
		return len(v.times)
	case DateTimeKind:
		return len(v.datetime)
	default:
		return 0
	}
}

// IsEmpty reports whether the value carries no elements.
func (v PrimitiveValue) IsEmpty() bool { return v.Multiplicity() == 0 }

// ---- typed getters ----
//
// Each getter fails with a *CastValueError when the stored variant does not
// match. Slice-returning getters borrow the internal storage (no copy).

func (v PrimitiveValue) castErr(want ValueKind) error {
	return &CastValueError{Requested: want, Got: v.kind}
}

func (v PrimitiveValue) String() (string, error) {
	if v.kind != StrKind {
		return "", v.castErr(StrKind)
	}
	return v.str, nil
}

func (v PrimitiveValue) Strings() ([]string, error) {
	if v.kind != StrsKind {
		return nil, v.castErr(StrsKind)
	}
	return v.strs, nil
}

func (v PrimitiveValue) TagSlice() ([]Tag, error) {
	if v.kind != TagsKind {
		return nil, v.castErr(TagsKind)
	}
	return v.tags, nil
}

func (v PrimitiveValue) Bytes() ([]byte, error) {
	if v.kind != U8Kind {
		return nil, v.castErr(U8Kind)
	}
	return v.bytes, nil
}

func (v PrimitiveValue) Int16Slice() ([]int16, error) {
	if v.kind != I16Kind {
		return nil, v.castErr(I16Kind)
	}
	return v.i16s, nil
}

func (v PrimitiveValue) UInt16Slice() ([]uint16, error) {
	if v.kind != U16Kind {
		return nil, v.castErr(U16Kind)
	}
	return v.u16s, nil
}

func (v PrimitiveValue) Int32Slice() ([]int32, error) {
	if v.kind != I32Kind {
		return nil, v.castErr(I32Kind)
	}
	return v.i32s, nil
}

func (v PrimitiveValue) UInt32Slice() ([]uint32, error) {
	if v.kind != U32Kind {
		return nil, v.castErr(U32Kind)
	}
	return v.u32s, nil
}

func (v PrimitiveValue) Int64Slice() ([]int64, error) {
	if v.kind != I64Kind {
		return nil, v.castErr(I64Kind)
	}
	return v.i64s, nil
}

func (v PrimitiveValue) UInt64Slice() ([]uint64, error) {
	if v.kind != U64Kind {
		return nil, v.castErr(U64Kind)
	}
	return v.u64s, nil
}

func (v PrimitiveValue) Float32Slice() ([]float32, error) {
	if v.kind != F32Kind {
		return nil, v.castErr(F32Kind)
	}
	return v.f32s, nil
}

func (v PrimitiveValue) Float64Slice() ([]float64, error) {
	if v.kind != F64Kind {
		return nil, v.castErr(F64Kind)
	}
	return v.f64s, nil
}

func (v PrimitiveValue) Dates() ([]Date, error) {
	if v.kind != DateKind {
		return nil, v.castErr(DateKind)
	}
	return v.dates, nil
}

func (v PrimitiveValue) Times() ([]Time, error) {
	if v.kind != TimeKind {
		return nil, v.castErr(TimeKind)
	}
	return v.times, nil
}

func (v PrimitiveValue) DateTimes() ([]DateTime, error) {
	if v.kind != DateTimeKind {
		return nil, v.castErr(DateTimeKind)
	}
	return v.datetime, nil
}

// ---- convert-coerce ----
//
// These attempt a conversion across variants and fail with a
// *ConvertValueError rather than a cast error. Numeric narrowing is
// checked; textual parsing trims surrounding whitespace first; U8 sources
// are read byte-by-byte rather than as a packed little-endian integer.

// ToMultiStr renders every element as a string. Its length always equals
// Multiplicity() (spec.md §8, property 10).
func (v PrimitiveValue) ToMultiStr() []string {
	switch v.kind {
	case EmptyKind:
		return nil
	case StrKind:
		return []string{v.str}
	case StrsKind:
		return append([]string(nil), v.strs...)
	case TagsKind:
		out := make([]string, len(v.tags))
		for i, t := range v.tags {
			out[i] = t.String()
		}
		return out
	case U8Kind:
		out := make([]string, len(v.bytes))
		for i, b := range v.bytes {
			out[i] = strconv.Itoa(int(b))
		}
		return out
	case I16Kind:
		return mapToStr(v.i16s, func(x int16) string { return strconv.FormatInt(int64(x), 10) })
	case U16Kind:
		return mapToStr(v.u16s, func(x uint16) string { return strconv.FormatUint(uint64(x), 10) })
	case I32Kind:
		return mapToStr(v.i32s, func(x int32) string { return strconv.FormatInt(int64(x), 10) })
	case U32Kind:
		return mapToStr(v.u32s, func(x uint32) string { return strconv.FormatUint(uint64(x), 10) })
	case I64Kind:
		return mapToStr(v.i64s, func(x int64) string { return strconv.FormatInt(x, 10) })
	case U64Kind:
		return mapToStr(v.u64s, func(x uint64) string { return strconv.FormatUint(x, 10) })
	case F32Kind:
		return mapToStr(v.f32s, func(x float32) string { return strconv.FormatFloat(float64(x), 'g', -1, 32) })
	case F64Kind:
		return mapToStr(v.f64s, func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) })
	case DateKind:
		return mapToStr(v.dates, func(d Date) string { return d.String() })
	case TimeKind:
		return mapToStr(v.times, func(t Time) string { return t.String() })
	case DateTimeKind:
		return mapToStr(v.datetime, func(dt DateTime) string { return dt.String() })
	default:
		return nil
	}
}

func mapToStr[T any](in []T, f func(T) string) []string {
	out := make([]string, len(in))
	for i, x := range in {
		out[i] = f(x)
	}
	return out
}

// ToStr returns the first/only value as a string with trailing space and
// NUL trimmed; leading whitespace is always preserved.
func (v PrimitiveValue) ToStr() (string, error) {
	ss := v.ToMultiStr()
	if len(ss) == 0 {
		return "", nil
	}
	return strings.TrimRight(ss[0], " \x00"), nil
}

// ToRawStr is like ToStr but preserves all padding.
func (v PrimitiveValue) ToRawStr() (string, error) {
	ss := v.ToMultiStr()
	if len(ss) == 0 {
		return "", nil
	}
	return ss[0], nil
}

// ToMultiStrTrimmed applies ToStr's trimming rule to every element.
func (v PrimitiveValue) ToMultiStrTrimmed() []string {
	ss := v.ToMultiStr()
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimRight(s, " \x00")
	}
	return out
}

// ToBytes renders the value as raw bytes: for U8 this borrows the
// underlying storage; for text variants it's the UTF-8 encoding joined
// with backslashes (mirroring calculate_byte_len's wire layout).
func (v PrimitiveValue) ToBytes() ([]byte, error) {
	if v.kind == U8Kind {
		return v.bytes, nil
	}
	return []byte(strings.Join(v.ToMultiStr(), `\`)), nil
}

func convErr(want, got ValueKind, cause error) error {
	return &ConvertValueError{Requested: want, Original: got, Cause: cause}
}

// ToInt converts the first/only element to T, an integer type, narrowing
// from numeric sources (checked), reading U8 sources byte-by-byte, or
// parsing from text sources.
func ToInt[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64](v PrimitiveValue) (T, error) {
	vals, err := ToMultiInt[T](v)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, convErr(valueKindForInt[T](), v.kind, fmt.Errorf("value is empty"))
	}
	return vals[0], nil
}

func valueKindForInt[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64]() ValueKind {
	var z T
	switch any(z).(type) {
	case int16:
		return I16Kind
	case uint16:
		return U16Kind
	case int32:
		return I32Kind
	case uint32:
		return U32Kind
	case int64:
		return I64Kind
	case uint64:
		return U64Kind
	default:
		return U8Kind
	}
}

// ToMultiInt converts every element to T. U8 sources are reinterpreted
// byte-by-byte (each byte is an independent number, not a packed
// little-endian integer); numeric sources are narrowed with a range check;
// textual sources are trimmed then parsed.
func ToMultiInt[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64](v PrimitiveValue) ([]T, error) {
	want := valueKindForInt[T]()
	switch v.kind {
	case EmptyKind:
		return nil, nil
	case U8Kind:
		out := make([]T, len(v.bytes))
		for i, b := range v.bytes {
			out[i] = T(b)
		}
		return out, nil
	case I16Kind:
		return narrowSlice[T](v.i16s, want, v.kind)
	case U16Kind:
		return narrowSlice[T](v.u16s, want, v.kind)
	case I32Kind:
		return narrowSlice[T](v.i32s, want, v.kind)
	case U32Kind:
		return narrowSlice[T](v.u32s, want, v.kind)
	case I64Kind:
		return narrowSlice[T](v.i64s, want, v.kind)
	case U64Kind:
		return narrowSlice[T](v.u64s, want, v.kind)
	case StrKind, StrsKind:
		ss := v.ToMultiStr()
		out := make([]T, len(ss))
		for i, s := range ss {
			n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				if u, uerr := strconv.ParseUint(strings.TrimSpace(s), 10, 64); uerr == nil {
					out[i] = T(u)
					continue
				}
				return nil, convErr(want, v.kind, &ParseIntegerError{Text: s, Cause: err})
			}
			out[i] = T(n)
		}
		return out, nil
	default:
		return nil, convErr(want, v.kind, fmt.Errorf("no numeric conversion from %v", v.kind))
	}
}

func narrowSlice[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64, S int16 | uint16 | int32 | uint32 | int64 | uint64](in []S, want, got ValueKind) ([]T, error) {
	out := make([]T, len(in))
	for i, x := range in {
		converted := T(x)
		if int64(converted) != int64(x) && uint64(converted) != uint64(x) {
			return nil, convErr(want, got, &NarrowConvertError{Value: x})
		}
		out[i] = converted
	}
	return out, nil
}

// ToFloat32/ToFloat64 and their multi-value counterparts accept F32, F64,
// U8 (byte-by-byte) and text sources; F64 values are cast to float32
// without a range check. The I16/U16/I32/U32/I64/U64 variants are not
// converted and fail with a *ConvertValueError.
func (v PrimitiveValue) ToFloat32() (float32, error) {
	vs, err := v.ToMultiFloat32()
	if err != nil {
		return 0, err
	}
	if len(vs) == 0 {
		return 0, convErr(F32Kind, v.kind, fmt.Errorf("value is empty"))
	}
	return vs[0], nil
}

func (v PrimitiveValue) ToFloat64() (float64, error) {
	vs, err := v.ToMultiFloat64()
	if err != nil {
		return 0, err
	}
	if len(vs) == 0 {
		return 0, convErr(F64Kind, v.kind, fmt.Errorf("value is empty"))
	}
	return vs[0], nil
}

func (v PrimitiveValue) ToMultiFloat32() ([]float32, error) {
	switch v.kind {
	case EmptyKind:
		return nil, nil
	case F32Kind:
		return v.f32s, nil
	case F64Kind:
		out := make([]float32, len(v.f64s))
		for i, x := range v.f64s {
			out[i] = float32(x)
		}
		return out, nil
	case U8Kind:
		out := make([]float32, len(v.bytes))
		for i, b := range v.bytes {
			out[i] = float32(b)
		}
		return out, nil
	case StrKind, StrsKind:
		ss := v.ToMultiStr()
		out := make([]float32, len(ss))
		for i, s := range ss {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
			if err != nil {
				return nil, convErr(F32Kind, v.kind, &ParseFloatError{Text: s, Cause: err})
			}
			out[i] = float32(f)
		}
		return out, nil
	default:
		return nil, convErr(F32Kind, v.kind, fmt.Errorf("no float conversion from %v", v.kind))
	}
}

func (v PrimitiveValue) ToMultiFloat64() ([]float64, error) {
	switch v.kind {
	case EmptyKind:
		return nil, nil
	case F64Kind:
		return v.f64s, nil
	case F32Kind:
		out := make([]float64, len(v.f32s))
		for i, x := range v.f32s {
			out[i] = float64(x)
		}
		return out, nil
	case U8Kind:
		out := make([]float64, len(v.bytes))
		for i, b := range v.bytes {
			out[i] = float64(b)
		}
		return out, nil
	case StrKind, StrsKind:
		ss := v.ToMultiStr()
		out := make([]float64, len(ss))
		for i, s := range ss {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, convErr(F64Kind, v.kind, &ParseFloatError{Text: s, Cause: err})
			}
			out[i] = f
		}
		return out, nil
	default:
		return nil, convErr(F64Kind, v.kind, fmt.Errorf("no float conversion from %v", v.kind))
	}
}

// ToDate/ToMultiDate convert to Date, parsing from text or U8-as-ASCII.
func (v PrimitiveValue) ToDate() (Date, error) {
	ds, err := v.ToMultiDate()
	if err != nil {
		return Date{}, err
	}
	if len(ds) == 0 {
		return Date{}, convErr(DateKind, v.kind, fmt.Errorf("value is empty"))
	}
	return ds[0], nil
}

func (v PrimitiveValue) ToMultiDate() ([]Date, error) {
	switch v.kind {
	case DateKind:
		return v.dates, nil
	case StrKind, StrsKind, U8Kind:
		ss := v.ToMultiStr()
		if v.kind == U8Kind {
			ss = strings.Split(string(v.bytes), `\`)
		}
		out := make([]Date, len(ss))
		for i, s := range ss {
			d, err := ParseDate(strings.TrimSpace(s))
			if err != nil {
				return nil, convErr(DateKind, v.kind, err)
			}
			out[i] = d
		}
		return out, nil
	default:
		return nil, convErr(DateKind, v.kind, fmt.Errorf("no date conversion from %v", v.kind))
	}
}

func (v PrimitiveValue) ToTime() (Time, error) {
	ts, err := v.ToMultiTime()
	if err != nil {
		return Time{}, err
	}
	if len(ts) == 0 {
		return Time{}, convErr(TimeKind, v.kind, fmt.Errorf("value is empty"))
	}
	return ts[0], nil
}

func (v PrimitiveValue) ToMultiTime() ([]Time, error) {
	switch v.kind {
	case TimeKind:
		return v.times, nil
	case StrKind, StrsKind, U8Kind:
		ss := v.ToMultiStr()
		out := make([]Time, len(ss))
		for i, s := range ss {
			t, err := ParseTime(strings.TrimSpace(s))
			if err != nil {
				return nil, convErr(TimeKind, v.kind, err)
			}
			out[i] = t
		}
		return out, nil
	default:
		return nil, convErr(TimeKind, v.kind, fmt.Errorf("no time conversion from %v", v.kind))
	}
}

func (v PrimitiveValue) ToDateTime() (DateTime, error) {
	ds, err := v.ToMultiDateTime()
	if err != nil {
		return DateTime{}, err
	}
	if len(ds) == 0 {
		return DateTime{}, convErr(DateTimeKind, v.kind, fmt.Errorf("value is empty"))
	}
	return ds[0], nil
}

func (v PrimitiveValue) ToMultiDateTime() ([]DateTime, error) {
	switch v.kind {
	case DateTimeKind:
		return v.datetime, nil
	case StrKind, StrsKind, U8Kind:
		ss := v.ToMultiStr()
		out := make([]DateTime, len(ss))
		for i, s := range ss {
			dt, err := ParseDateTime(strings.TrimSpace(s))
			if err != nil {
				return nil, convErr(DateTimeKind, v.kind, err)
			}
			out[i] = dt
		}
		return out, nil
	default:
		return nil, convErr(DateTimeKind, v.kind, fmt.Errorf("no date-time conversion from %v", v.kind))
	}
}

// ---- byte-length contract ----

// CalculateByteLen returns the even-padded on-wire byte length, excluding
// the element header, per spec.md §4.1. Binary numeric variants are
// element-count * element-size; text/temporal variants backslash-delimit
// multiple values and encode to ASCII, rounding the total up to even.
func (v PrimitiveValue) CalculateByteLen() uint32 {
	switch v.kind {
	case EmptyKind:
		return 0
	case StrKind:
		return evenLen(len(v.str))
	case StrsKind:
		return evenLen(joinedLen(v.strs))
	case TagsKind:
		return uint32(len(v.tags)) * 4
	case U8Kind:
		return evenLen(len(v.bytes))
	case I16Kind:
		return uint32(len(v.i16s)) * 2
	case U16Kind:
		return uint32(len(v.u16s)) * 2
	case I32Kind:
		return uint32(len(v.i32s)) * 4
	case U32Kind:
		return uint32(len(v.u32s)) * 4
	case I64Kind:
		return uint32(len(v.i64s)) * 8
	case U64Kind:
		return uint32(len(v.u64s)) * 8
	case F32Kind:
		return uint32(len(v.f32s)) * 4
	case F64Kind:
		return uint32(len(v.f64s)) * 8
	case DateKind:
		return evenLen(joinedLenN(len(v.dates), func(i int) int { return v.dates[i].EncodedLen() }))
	case TimeKind:
		return evenLen(joinedLenN(len(v.times), func(i int) int { return v.times[i].EncodedLen() }))
	case DateTimeKind:
		return evenLen(joinedLenN(len(v.datetime), func(i int) int { return v.datetime[i].EncodedLen() }))
	default:
		return 0
	}
}

func evenLen(n int) uint32 {
	if n%2 != 0 {
		n++
	}
	return uint32(n)
}

func joinedLen(ss []string) int {
	total := 0
	for i, s := range ss {
		if i > 0 {
			total++ // backslash separator
		}
		total += len(s)
	}
	return total
}

func joinedLenN(n int, lenAt func(int) int) int {
	total := 0
	for i := 0; i < n; i++ {
		if i > 0 {
			total++
		}
		total += lenAt(i)
	}
	return total
}

// ---- extension / truncation ----

// ExtendStr appends strings to the value, promoting Empty to Strs and a
// single Str to Strs. Tag, date, time, and date-time variants reject this
// with IncompatibleStringType.
func (v *PrimitiveValue) ExtendStr(ss ...string) error {
	switch v.kind {
	case EmptyKind:
		v.kind, v.strs = StrsKind, append([]string(nil), ss...)
	case StrKind:
		v.kind, v.strs = StrsKind, append([]string{v.str}, ss...)
		v.str = ""
	case StrsKind:
		v.strs = append(v.strs, ss...)
	default:
		return &IncompatibleStringType{Kind: v.kind}
	}
	return nil
}

// ExtendU16 appends uint16s, casting as needed from the current numeric
// variant; Empty promotes to U16.
func (v *PrimitiveValue) ExtendU16(vs ...uint16) error {
	switch v.kind {
	case EmptyKind:
		v.kind, v.u16s = U16Kind, append([]uint16(nil), vs...)
	case U16Kind:
		v.u16s = append(v.u16s, vs...)
	case I16Kind:
		for _, x := range vs {
			v.i16s = append(v.i16s, int16(x))
		}
	case U32Kind:
		for _, x := range vs {
			v.u32s = append(v.u32s, uint32(x))
		}
	case I32Kind:
		for _, x := range vs {
			v.i32s = append(v.i32s, int32(x))
		}
	case U64Kind:
		for _, x := range vs {
			v.u64s = append(v.u64s, uint64(x))
		}
	case I64Kind:
		for _, x := range vs {
			v.i64s = append(v.i64s, int64(x))
		}
	case F32Kind:
		for _, x := range vs {
			v.f32s = append(v.f32s, float32(x))
		}
	case F64Kind:
		for _, x := range vs {
			v.f64s = append(v.f64s, float64(x))
		}
	case U8Kind:
		for _, x := range vs {
			v.bytes = append(v.bytes, byte(x))
		}
	default:
		return &IncompatibleNumberType{Kind: v.kind}
	}
	return nil
}

// ExtendI16 appends int16s, lossily casting into the receiving numeric
// variant's element type.
func (v *PrimitiveValue) ExtendI16(vs ...int16) error {
	switch v.kind {
	case EmptyKind:
		v.kind, v.i16s = I16Kind, append([]int16(nil), vs...)
	case I16Kind:
		v.i16s = append(v.i16s, vs...)
	case U16Kind:
		for _, x := range vs {
			v.u16s = append(v.u16s, uint16(x))
		}
	case I32Kind:
		for _, x := range vs {
			v.i32s = append(v.i32s, int32(x))
		}
	case U32Kind:
		for _, x := range vs {
			v.u32s = append(v.u32s, uint32(x))
		}
	case I64Kind:
		for _, x := range vs {
			v.i64s = append(v.i64s, int64(x))
		}
	case U64Kind:
		for _, x := range vs {
			v.u64s = append(v.u64s, uint64(x))
		}
	case F32Kind:
		for _, x := range vs {
			v.f32s = append(v.f32s, float32(x))
		}
	case F64Kind:
		for _, x := range vs {
			v.f64s = append(v.f64s, float64(x))
		}
	case U8Kind:
		for _, x := range vs {
			v.bytes = append(v.bytes, byte(x))
		}
	default:
		return &IncompatibleNumberType{Kind: v.kind}
	}
	return nil
}

// ExtendU32 appends uint32s, lossily casting into the receiving numeric
// variant's element type.
func (v *PrimitiveValue) ExtendU32(vs ...uint32) error {
	switch v.kind {
	case EmptyKind:
		v.kind, v.u32s = U32Kind, append([]uint32(nil), vs...)
	case U32Kind:
		v.u32s = append(v.u32s, vs...)
	case U16Kind:
		for _, x := range vs {
			v.u16s = append(v.u16s, uint16(x))
		}
	case I16Kind:
		for _, x := range vs {
			v.i16s = append(v.i16s, int16(x))
		}
	case I32Kind:
		for _, x := range vs {
			v.i32s = append(v.i32s, int32(x))
		}
	case U64Kind:
		for _, x := range vs {
			v.u64s = append(v.u64s, uint64(x))
		}
	case I64Kind:
		for _, x := range vs {
			v.i64s = append(v.i64s, int64(x))
		}
	case F32Kind:
		for _, x := range vs {
			v.f32s = append(v.f32s, float32(x))
		}
	case F64Kind:
		for _, x := range vs {
			v.f64s = append(v.f64s, float64(x))
		}
	case U8Kind:
		for _, x := range vs {
			v.bytes = append(v.bytes, byte(x))
		}
	default:
		return &IncompatibleNumberType{Kind: v.kind}
	}
	return nil
}

// ExtendI32 appends int32s, lossily casting into the receiving numeric
// variant's element type.
func (v *PrimitiveValue) ExtendI32(vs ...int32) error {
	switch v.kind {
	case EmptyKind:
		v.kind, v.i32s = I32Kind, append([]int32(nil), vs...)
	case I32Kind:
		v.i32s = append(v.i32s, vs...)
	case U32Kind:
		for _, x := range vs {
			v.u32s = append(v.u32s, uint32(x))
		}
	case U16Kind:
		for _, x := range vs {
			v.u16s = append(v.u16s, uint16(x))
		}
	case I16Kind:
		for _, x := range vs {
			v.i16s = append(v.i16s, int16(x))
		}
	case U64Kind:
		for _, x := range vs {
			v.u64s = append(v.u64s, uint64(x))
		}
	case I64Kind:
		for _, x := range vs {
			v.i64s = append(v.i64s, int64(x))
		}
	case F32Kind:
		for _, x := range vs {
			v.f32s = append(v.f32s, float32(x))
		}
	case F64Kind:
		for _, x := range vs {
			v.f64s = append(v.f64s, float64(x))
		}
	case U8Kind:
		for _, x := range vs {
			v.bytes = append(v.bytes, byte(x))
		}
	default:
		return &IncompatibleNumberType{Kind: v.kind}
	}
	return nil
}

// ExtendF32 appends float32s to an Empty, F32 or F64 value; every other
// variant fails with IncompatibleNumberType.
func (v *PrimitiveValue) ExtendF32(vs ...float32) error {
	switch v.kind {
	case EmptyKind:
		v.kind, v.f32s = F32Kind, append([]float32(nil), vs...)
	case F32Kind:
		v.f32s = append(v.f32s, vs...)
	case F64Kind:
		for _, x := range vs {
			v.f64s = append(v.f64s, float64(x))
		}
	default:
		return &IncompatibleNumberType{Kind: v.kind}
	}
	return nil
}

// ExtendF64 appends float64s to an Empty, F64 or F32 value (lossily cast to
// float32 for F32); every other variant fails with IncompatibleNumberType.
func (v *PrimitiveValue) ExtendF64(vs ...float64) error {
	switch v.kind {
	case EmptyKind:
		v.kind, v.f64s = F64Kind, append([]float64(nil), vs...)
	case F64Kind:
		v.f64s = append(v.f64s, vs...)
	case F32Kind:
		for _, x := range vs {
			v.f32s = append(v.f32s, float32(x))
		}
	default:
		return &IncompatibleNumberType{Kind: v.kind}
	}
	return nil
}

// Truncate shortens the value to at most limit elements. It is a no-op on
// Str and Empty, matching their fixed cardinality.
func (v *PrimitiveValue) Truncate(limit int) {
	switch v.kind {
	case StrsKind:
		if len(v.strs) > limit {
			v.strs = v.strs[:limit]
		}
	case TagsKind:
		if len(v.tags) > limit {
			v.tags = v.tags[:limit]
		}
	case U8Kind:
		if len(v.bytes) > limit {
			v.bytes = v.bytes[:limit]
		}
	case I16Kind:
		if len(v.i16s) > limit {
			v.i16s = v.i16s[:limit]
		}
	case U16Kind:
		if len(v.u16s) > limit {
			v.u16s = v.u16s[:limit]
		}
	case I32Kind:
		if len(v.i32s) > limit {
			v.i32s = v.i32s[:limit]
		}
	case U32Kind:
		if len(v.u32s) > limit {
			v.u32s = v.u32s[:limit]
		}
	case I64Kind:
		if len(v.i64s) > limit {
			v.i64s = v.i64s[:limit]
		}
	case U64Kind:
		if len(v.u64s) > limit {
			v.u64s = v.u64s[:limit]
		}
	case F32Kind:
		if len(v.f32s) > limit {
			v.f32s = v.f32s[:limit]
		}
	case F64Kind:
		if len(v.f64s) > limit {
			v.f64s = v.f64s[:limit]
		}
	case DateKind:
		if len(v.dates) > limit {
			v.dates = v.dates[:limit]
		}
	case TimeKind:
		if len(v.times) > limit {
			v.times = v.times[:limit]
		}
	case DateTimeKind:
		if len(v.datetime) > limit {
			v.datetime = v.datetime[:limit]
		}
	}
}
