//go:build !dicom_debug

package dicom

// checkedLength is the release-build variant: it wraps rather than panics.
// See length_debug.go for the debug-build assertion spec.md §3 calls for.
func checkedLength(sum uint64) Length {
	return Length(uint32(sum))
}
