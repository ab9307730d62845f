// Package captop implements the sampling engine behind the one-shot
// reporter: a process table keyed by pid that folds successive snapshots
// into per-process and aggregate utilization figures relative to the
// cgroup memory ceiling.
package captop

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/captop/captop/pkg/system/cgroup"
	"github.com/captop/captop/pkg/system/proc"
	"github.com/captop/captop/pkg/system/util"
	"github.com/captop/captop/pkg/types"
)

// DefaultWarmup is the pause between the two startup samples: long enough
// for CPU counters to advance measurably, short enough to feel instant.
const DefaultWarmup = 500 * time.Millisecond

// Stubbed in tests for deterministic intervals.
var (
	now   = time.Now
	sleep = time.Sleep
)

// Options adjust engine construction.
type Options struct {
	// Warmup overrides DefaultWarmup when positive.
	Warmup time.Duration

	// Logger receives per-cycle diagnostics. Nil disables them.
	Logger *zerolog.Logger
}

// Stats tracks the process population between samples and derives the
// utilization figures the presenter prints. It is not safe for concurrent
// use; the reporter is single-threaded end to end.
type Stats struct {
	limits cgroup.Limits
	src    proc.Source
	log    zerolog.Logger

	ts     time.Time
	prevTS time.Time

	used            types.Bytes // resident bytes summed over the last cycle
	totalUser       float64
	totalSystem     float64
	prevTotalUser   float64
	prevTotalSystem float64

	procs map[int32]*Process
	seq   int
}

// New builds an engine over src and immediately primes it: one sample, a
// short warmup pause, then a second sample, so every CPU percentage refers
// to a real interval by the time New returns.
func New(limits cgroup.Limits, src proc.Source, opts Options) (*Stats, error) {
	warmup := opts.Warmup
	if warmup <= 0 {
		warmup = DefaultWarmup
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	s := &Stats{
		limits: limits,
		src:    src,
		log:    log,
		procs:  make(map[int32]*Process),
	}
	if err := s.Sample(); err != nil {
		return nil, fmt.Errorf("first sample: %w", err)
	}
	sleep(warmup)
	if err := s.Sample(); err != nil {
		return nil, fmt.Errorf("second sample: %w", err)
	}
	return s, nil
}

// Sample runs one collection cycle: enumerate the population, fold every
// process into the table, evict pids that disappeared, and rotate the
// aggregate counters. A process that vanished mid-enumeration is already
// absent from the snapshot and simply ages out here.
func (s *Stats) Sample() error {
	samples, err := s.src.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot processes: %w", err)
	}

	s.prevTS = s.ts
	s.ts = now()
	s.prevTotalUser = s.totalUser
	s.prevTotalSystem = s.totalSystem
	s.used = 0
	s.totalUser = 0
	s.totalSystem = 0

	elapsed := s.elapsedSeconds()
	seen := make(map[int32]struct{}, len(samples))
	for _, smp := range samples {
		seen[smp.PID] = struct{}{}
		s.used += smp.ResidentBytes
		s.totalUser += smp.UserSeconds
		s.totalSystem += smp.SystemSeconds

		if rec, ok := s.procs[smp.PID]; ok {
			rec.update(smp, s.limits.MemoryLimitBytes, elapsed)
			continue
		}
		s.procs[smp.PID] = newProcess(smp, s.limits.MemoryLimitBytes, s.seq)
		s.seq++
	}

	evicted := 0
	for pid := range s.procs {
		if _, ok := seen[pid]; !ok {
			delete(s.procs, pid)
			evicted++
		}
	}

	s.log.Debug().
		Int("processes", len(samples)).
		Int("evicted", evicted).
		Float64("elapsed_s", elapsed).
		Str("used", s.used.SI()).
		Msg("sample cycle")
	return nil
}

// elapsedSeconds is the wall-clock span between the two most recent samples.
// Zero before the second sample, and zero again when two samples land on
// the same instant, in which case rate math treats the cycle as carrying no
// new data.
func (s *Stats) elapsedSeconds() float64 {
	if s.prevTS.IsZero() {
		return 0
	}
	return s.ts.Sub(s.prevTS).Seconds()
}

// Timestamp is the wall-clock time of the most recent sample.
func (s *Stats) Timestamp() time.Time { return s.ts }

// MemoryLimit is the cgroup memory ceiling every percentage is relative to.
func (s *Stats) MemoryLimit() types.Bytes {
	return types.Bytes(s.limits.MemoryLimitBytes)
}

// UsedMemory is resident memory summed across all processes plus the
// cgroup's buffer/page-cache charge, as of the last sample.
func (s *Stats) UsedMemory() types.Bytes {
	return s.used + types.Bytes(s.limits.BuffCacheBytes)
}

// MemoryPercent is UsedMemory relative to the cgroup ceiling.
func (s *Stats) MemoryPercent() float64 {
	return util.SafeDiv(float64(s.UsedMemory()), float64(s.limits.MemoryLimitBytes)) * 100
}

// CPUPercent is aggregate CPU utilization over the last interval: the growth
// of the whole population's CPU time divided by elapsed wall-clock time.
// With several busy cores it ranges past 100.
func (s *Stats) CPUPercent() float64 {
	d := (s.totalSystem - s.prevTotalSystem) + (s.totalUser - s.prevTotalUser)
	if d < 0 {
		// population shrank; exited processes took their counters along
		d = 0
	}
	return util.SafeDiv(d, s.elapsedSeconds()) * 100
}

// Processes returns the table ordered for display: memory share first, CPU
// share second, and insertion order for full ties so equal rows never swap
// between runs.
func (s *Stats) Processes() []*Process {
	out := make([]*Process, 0, len(s.procs))
	for _, p := range s.procs {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *Process) int {
		switch {
		case a.PercentMem != b.PercentMem:
			if a.PercentMem > b.PercentMem {
				return -1
			}
			return 1
		case a.PercentCPU != b.PercentCPU:
			if a.PercentCPU > b.PercentCPU {
				return -1
			}
			return 1
		default:
			return cmp.Compare(a.seq, b.seq)
		}
	})
	return out
}
