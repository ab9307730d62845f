package proc

import "github.com/captop/captop/pkg/types"

// Sample is one live process as observed by a Source at a single instant.
//
// CPU fields are cumulative seconds since process start and only grow while
// the pid lives; a smaller reading than an earlier one means the pid was
// reused by a new process.
type Sample struct {
	PID           int32
	Owner         string
	Command       string
	ResidentBytes types.Bytes
	UserSeconds   float64
	SystemSeconds float64
}

// Source enumerates the current process population.
type Source interface {
	Snapshot() ([]Sample, error)
}
