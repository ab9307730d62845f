package proc

import "errors"

var (
	// ErrUnsupported indicates the running platform has no process table
	// this package knows how to read.
	ErrUnsupported = errors.New("proc: process sampling requires linux")

	// ErrNoProcesses indicates an enumeration pass saw no processes at all,
	// which cannot happen on a working procfs (the caller itself is one).
	ErrNoProcesses = errors.New("proc: no processes visible")
)
