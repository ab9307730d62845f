// Package proc enumerates the live process population for the reporter.
//
// Overview
//
//   - Source interface:
//     Snapshot() ([]Sample, error)
//
//     Snapshot walks every visible process and returns one Sample per pid:
//     owner, command, resident set size, and cumulative user/system CPU
//     seconds. Samples are point-in-time readings; rate math (deltas over a
//     wall-clock interval) belongs to the caller.
//
//   - Backend:
//     NewSource returns the gopsutil-backed source on Linux. Every other
//     platform gets ErrUnsupported at runtime, which keeps the binary
//     buildable everywhere while the tool itself stays Linux-only.
//
// # Vanished processes
//
// Enumeration and the per-pid reads are not atomic: a process can exit
// after it is listed and before its stat files are read. Such pids are
// skipped for the cycle instead of failing the snapshot.
//
// An empty snapshot is reported as ErrNoProcesses. At minimum the calling
// process itself must be visible, so an empty result means /proc is not
// usable (wrong mount namespace, restrictive hidepid, broken procfs).
//
// Testing guidance
//
//   - The linux test asserts against the test process itself: its pid must
//     appear with a non-empty command and a non-zero resident set.
//   - Consumers should be tested against a scripted Source rather than the
//     live process table.
package proc
