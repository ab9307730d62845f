package captop

import (
	"github.com/captop/captop/pkg/system/proc"
	"github.com/captop/captop/pkg/system/util"
	"github.com/captop/captop/pkg/types"
)

// ownerWidth is the display budget for the owner column. Longer names are
// cut to seven characters plus a "+" continuation marker, the convention
// top uses.
const ownerWidth = 8

// Process is one tracked pid: its display fields plus the previous CPU
// counters the next cycle's delta is taken against.
type Process struct {
	PID     int32
	Owner   string
	Command string

	ResidentBytes types.Bytes
	PercentMem    float64
	PercentCPU    float64

	UserSeconds       float64
	SystemSeconds     float64
	prevUserSeconds   float64
	prevSystemSeconds float64

	seq int // insertion order, breaks full sort ties
}

// newProcess seeds a first-sighting record. The CPU percentage stays 0
// until a second observation exists; the memory percentage is meaningful
// immediately because resident size is instantaneous.
func newProcess(smp proc.Sample, limit uint64, seq int) *Process {
	return &Process{
		PID:               smp.PID,
		Owner:             truncateOwner(smp.Owner),
		Command:           smp.Command,
		ResidentBytes:     smp.ResidentBytes,
		PercentMem:        memPercent(smp.ResidentBytes, limit),
		UserSeconds:       smp.UserSeconds,
		SystemSeconds:     smp.SystemSeconds,
		prevUserSeconds:   smp.UserSeconds,
		prevSystemSeconds: smp.SystemSeconds,
		seq:               seq,
	}
}

// update folds a new observation in. A positive elapsed interval rotates
// the CPU baseline and recomputes the CPU share; a zero interval only
// refreshes the instantaneous fields, so the existing baseline and
// percentage survive until real time has passed.
func (p *Process) update(smp proc.Sample, limit uint64, elapsed float64) {
	if elapsed > 0 {
		p.prevUserSeconds = p.UserSeconds
		p.prevSystemSeconds = p.SystemSeconds
	}
	p.UserSeconds = smp.UserSeconds
	p.SystemSeconds = smp.SystemSeconds
	p.ResidentBytes = smp.ResidentBytes
	p.PercentMem = memPercent(smp.ResidentBytes, limit)
	if elapsed > 0 {
		d := util.DeltaSeconds(p.UserSeconds, p.prevUserSeconds) +
			util.DeltaSeconds(p.SystemSeconds, p.prevSystemSeconds)
		p.PercentCPU = d / elapsed * 100
	}
}

// CPUSeconds is cumulative CPU time consumed so far, the RUNTIME column's
// source.
func (p *Process) CPUSeconds() float64 {
	return p.UserSeconds + p.SystemSeconds
}

func memPercent(res types.Bytes, limit uint64) float64 {
	return util.SafeDiv(float64(res), float64(limit)) * 100
}

func truncateOwner(name string) string {
	if len(name) > ownerWidth {
		return name[:ownerWidth-1] + "+"
	}
	return name
}
