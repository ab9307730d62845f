package util

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/captop/captop/pkg/types"
)

// SafeDiv returns n/d, or 0 when the denominator is too small to divide by.
func SafeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}

// DeltaSeconds returns now-prev for a pair of cumulative CPU counters.
// Counters only grow while a pid lives, so a negative delta means the
// baseline was reset and the delta is reported as 0.
func DeltaSeconds(now, prev float64) float64 {
	if now >= prev {
		return now - prev
	}
	return 0
}

// HostInfo describes the machine for diagnostic logging.
type HostInfo struct {
	Hostname string
	Kernel   string
	CPUs     int
	Memory   types.Bytes
}

// Host gathers HostInfo. Fields that cannot be read are left at their zero
// value rather than failing the caller.
func Host() HostInfo {
	h := HostInfo{
		Kernel: kernelRelease(),
		CPUs:   runtime.NumCPU(),
	}
	h.Hostname, _ = os.Hostname()
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		h.Memory = types.Bytes(vm.Total)
	}
	return h
}
