package types

import (
	"fmt"
	"math"
)

// Bytes is a uint64 wrapper representing a size in bytes.
type Bytes uint64

// siUnits are the decimal scale suffixes, smallest first. Scaling never
// advances past the last entry.
var siUnits = [...]string{"B", "k", "M", "G", "T", "P", "E", "Z"}

// SI returns a human-readable string with automatic decimal (power of 1000)
// unit and one fractional digit: 999 -> "999.0B", 1000 -> "1.0k",
// 1500000 -> "1.5M".
func (b Bytes) SI() string {
	return SIUnit(float64(b))
}

// String renders the same form as SI.
func (b Bytes) String() string { return b.SI() }

// SIUnit scales v by powers of 1000 while its magnitude is at least 1000,
// walking the suffix ladder B through Z, and renders the scaled value with
// one fractional digit.
func SIUnit(v float64) string {
	unit := siUnits[0]
	for _, u := range siUnits {
		unit = u
		if math.Abs(v) < 1000 {
			break
		}
		v /= 1000
	}
	return fmt.Sprintf("%.1f%s", v, unit)
}
