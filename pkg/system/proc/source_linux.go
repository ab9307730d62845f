//go:build linux

package proc

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/captop/captop/pkg/types"
)

// NewSource returns the platform process source.
func NewSource() (Source, error) {
	return procfsSource{}, nil
}

// procfsSource reads the live process table through gopsutil.
type procfsSource struct{}

func (procfsSource) Snapshot() ([]Sample, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	samples := make([]Sample, 0, len(procs))
	for _, p := range procs {
		smp, ok := read(p)
		if !ok {
			// exited between enumeration and the per-pid reads
			continue
		}
		samples = append(samples, smp)
	}
	if len(samples) == 0 {
		return nil, ErrNoProcesses
	}
	return samples, nil
}

// read gathers one process's fields; ok is false when the process vanished
// (or became unreadable) mid-cycle.
func read(p *process.Process) (Sample, bool) {
	command, err := p.Name()
	if err != nil {
		return Sample{}, false
	}
	owner, err := p.Username()
	if err != nil {
		return Sample{}, false
	}
	mem, err := p.MemoryInfo()
	if err != nil || mem == nil {
		return Sample{}, false
	}
	times, err := p.Times()
	if err != nil || times == nil {
		return Sample{}, false
	}
	return Sample{
		PID:           p.Pid,
		Owner:         owner,
		Command:       command,
		ResidentBytes: types.Bytes(mem.RSS),
		UserSeconds:   times.User,
		SystemSeconds: times.System,
	}, true
}
