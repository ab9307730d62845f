//go:build !linux

package proc

// NewSource reports that no process source exists for this platform. The
// reporter is Linux-only; other platforms fail at startup validation.
func NewSource() (Source, error) {
	return nil, ErrUnsupported
}
