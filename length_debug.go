//go:build dicom_debug

package dicom

// checkedLength is the debug-build variant of the overflow check described
// by Length.Add: landing exactly on the UNDEFINED sentinel via arithmetic
// (rather than by explicit construction) is treated as a bug.
func checkedLength(sum uint64) Length {
	if sum > uint64(UndefinedLength) {
		panic("dicom: Length arithmetic overflowed past 0xFFFFFFFF")
	}
	if uint32(sum) == UndefinedLength {
		panic("dicom: Length arithmetic silently produced the UNDEFINED sentinel")
	}
	return Length(uint32(sum))
}
