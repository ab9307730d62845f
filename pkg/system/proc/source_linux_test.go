//go:build linux

package proc

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_SeesSelf(t *testing.T) {
	src, err := NewSource()
	require.NoError(t, err)

	samples, err := src.Snapshot()
	require.NoError(t, err)
	require.NotEmpty(t, samples)

	self := int32(os.Getpid())
	var found *Sample
	for i := range samples {
		if samples[i].PID == self {
			found = &samples[i]
			break
		}
	}
	require.NotNil(t, found, "own pid should be enumerated")
	assert.NotEmpty(t, found.Command)
	assert.NotEmpty(t, found.Owner)
	assert.NotZero(t, found.ResidentBytes)
	assert.GreaterOrEqual(t, found.UserSeconds, 0.0)
	assert.GreaterOrEqual(t, found.SystemSeconds, 0.0)

	t.Logf("self: pid=%d owner=%s command=%s rss=%s", found.PID, found.Owner, found.Command, found.ResidentBytes)
}
