package render

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/captop/captop/pkg/captop"
	"github.com/captop/captop/pkg/system/cgroup"
	"github.com/captop/captop/pkg/system/proc"
)

// steadySource returns the same population every cycle. CPU counters never
// move, so every rate renders as a deterministic 0.0 regardless of how long
// the warmup pause really took.
type steadySource struct{ samples []proc.Sample }

func (s steadySource) Snapshot() ([]proc.Sample, error) { return s.samples, nil }

var dateLine = regexp.MustCompile(`^Date: \d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

func newStats(t *testing.T) *captop.Stats {
	t.Helper()
	src := steadySource{samples: []proc.Sample{
		// 61.2+22.25 cumulative CPU seconds render as runtime 1:23.45
		{PID: 42, Owner: "verylongusername", Command: "cache-server", ResidentBytes: 500_000_000, UserSeconds: 61.2, SystemSeconds: 22.25},
		{PID: 7, Owner: "root", Command: "init", ResidentBytes: 250_000_000},
	}}
	st, err := captop.New(
		cgroup.Limits{MemoryLimitBytes: 1_000_000_000, BuffCacheBytes: 100_000_000},
		src,
		captop.Options{Warmup: time.Millisecond},
	)
	require.NoError(t, err)
	return st
}

func TestReport_Detailed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, newStats(t), Options{Mode: ModeDetailed}))
	out := buf.String()

	assert.NotContains(t, out, "\x1b", "unstyled output must carry no escape codes")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)

	assert.Regexp(t, dateLine, lines[0])
	assert.Equal(t, "MEM: 850.0M/1.0G (85.0%)", lines[1])
	assert.Equal(t, "CPU: 0.0%", lines[2])
	assert.Empty(t, lines[3])
	assert.Equal(t, "  PID USER        MEM  %MEM  %CPU    RUNTIME COMMAND             ", lines[4])
	// rows come out memory-heavy first, owner cut to seven plus marker
	assert.Equal(t, "   42 verylon+ 500.0M  50.0   0.0    1:23.45 cache-server        ", lines[5])
	assert.Equal(t, "    7 root     250.0M  25.0   0.0    0:00.00 init                ", lines[6])
}

func TestReport_DetailedStyled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, newStats(t), Options{Mode: ModeDetailed, Styled: true}))
	out := buf.String()

	// Whether inverse video degrades to plain text depends on the color
	// profile of the test environment; the column names must survive
	// either way.
	for _, col := range []string{"PID", "USER", "MEM", "%MEM", "%CPU", "RUNTIME", "COMMAND"} {
		assert.Contains(t, out, col)
	}
	assert.Contains(t, out, "cache-server")
}

func TestReport_Summary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, newStats(t), Options{Mode: ModeSummary}))
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Regexp(t, dateLine, lines[0])
	assert.Equal(t, "MEM  850.0M/1.0G (85.0%)", lines[1])
	assert.Equal(t, "CPU  0.0%", lines[2])
	assert.NotContains(t, out, "COMMAND", "summary carries no process table")
}

func TestCPURuntime(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00.00"},
		{0.994, "0:00.99"},
		{59.999, "0:59.99"},
		{83.45, "1:23.45"},
		{125, "2:05.00"},
		{3725.5, "62:05.50"}, // minutes keep counting past an hour
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, cpuRuntime(tc.seconds), "seconds=%v", tc.seconds)
	}
}
