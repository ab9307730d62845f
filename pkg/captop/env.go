package captop

import (
	"errors"
	"fmt"

	"github.com/captop/captop/pkg/system/cgroup"
	"github.com/captop/captop/pkg/system/proc"
)

// Check names identify which environment precondition a Failure belongs to.
const (
	CheckPlatform      = "platform"
	CheckProcessSource = "process-source"
	CheckCgroupMemory  = "cgroup-memory"
)

// Failure is one failed environment check.
type Failure struct {
	Check string
	Err   error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %v", f.Check, f.Err)
}

// EnvConfig points ValidateEnv at the environment under test.
type EnvConfig struct {
	// MemoryStatPath overrides cgroup.DefaultStatPath when non-empty.
	MemoryStatPath string
}

// Environment holds everything a validated engine needs to start.
type Environment struct {
	Limits       cgroup.Limits
	Source       proc.Source
	CgroupDetail string
}

// Stubbed in tests.
var newSource = proc.NewSource

// ValidateEnv probes every precondition and reports all failures together
// rather than stopping at the first, so one run shows the whole distance
// between this environment and a working one.
func ValidateEnv(cfg EnvConfig) (Environment, []Failure) {
	var (
		env   Environment
		fails []Failure
	)

	src, err := newSource()
	switch {
	case errors.Is(err, proc.ErrUnsupported):
		fails = append(fails, Failure{CheckPlatform, err})
	case err != nil:
		fails = append(fails, Failure{CheckProcessSource, err})
	default:
		if _, err := src.Snapshot(); err != nil {
			fails = append(fails, Failure{CheckProcessSource, fmt.Errorf("probe snapshot: %w", err)})
		} else {
			env.Source = src
		}
	}

	// Hierarchy detection is diagnostic context, never a failure by itself;
	// the decisive check is whether memory.stat is readable below.
	if ver, detail, err := cgroup.Detect(); err == nil {
		env.CgroupDetail = fmt.Sprintf("%s: %s", ver, detail)
	}

	path := cfg.MemoryStatPath
	if path == "" {
		path = cgroup.DefaultStatPath
	}
	limits, err := cgroup.ReadLimits(path)
	if err != nil {
		if env.CgroupDetail != "" {
			err = fmt.Errorf("%w (%s)", err, env.CgroupDetail)
		}
		fails = append(fails, Failure{CheckCgroupMemory, err})
	} else {
		env.Limits = limits
	}

	return env, fails
}
