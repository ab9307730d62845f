package types

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes_SI_Boundaries(t *testing.T) {
	cases := []struct {
		in   Bytes
		want string
	}{
		{Bytes(0), "0.0B"},
		{Bytes(1), "1.0B"},
		{Bytes(999), "999.0B"},       // largest unscaled count
		{Bytes(1000), "1.0k"},        // first scaled count
		{Bytes(1001), "1.0k"},
		{Bytes(999999), "1000.0k"},   // %.1f rounds 999.999 up
		{Bytes(1500000), "1.5M"},
		{Bytes(1000000000), "1.0G"},
		{Bytes(1234567890), "1.2G"},
		{Bytes(math.MaxUint64), "18.4E"}, // uint64 tops out inside the E band
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d_%d", i, uint64(tc.in)), func(t *testing.T) {
			require.Equal(t, tc.want, tc.in.SI())
		})
	}
}

func TestSIUnit_LadderStopsAtZ(t *testing.T) {
	// 1e21 lands exactly on the last suffix.
	assert.Equal(t, "1.0Z", SIUnit(1e21))

	// Beyond the ladder the suffix stays pinned to Z.
	for _, v := range []float64{1e24, 1e27, math.MaxFloat64} {
		got := SIUnit(v)
		assert.True(t, strings.HasSuffix(got, "Z"), "SIUnit(%g) = %q", v, got)
	}
}

func TestSIUnit_NegativeMagnitude(t *testing.T) {
	// Scaling follows the magnitude, the sign rides along.
	assert.Equal(t, "-1.5k", SIUnit(-1500))
	assert.Equal(t, "-999.0B", SIUnit(-999))
}

func TestBytes_String(t *testing.T) {
	assert.Equal(t, "1.5M", fmt.Sprintf("%v", Bytes(1500000)))
}
