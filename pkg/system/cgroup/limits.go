package cgroup

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultStatPath is where the kernel exposes the v1 memory controller's
// accounting for the cgroup this process belongs to.
const DefaultStatPath = "/sys/fs/cgroup/memory/memory.stat"

// Fields consumed from memory.stat. Values are plain byte counts.
const (
	fieldMemoryLimit = "hierarchical_memory_limit"
	fieldTotalCache  = "total_cache"
)

// Limits carries the memory ceiling and the page-cache charge of the memory
// cgroup, read once at startup. The ceiling is the denominator for every
// memory percentage the reporter prints.
type Limits struct {
	MemoryLimitBytes uint64
	BuffCacheBytes   uint64
}

// ReadLimits reads and parses the memory.stat file at path.
func ReadLimits(path string) (Limits, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("read memory.stat: %w", err)
	}
	return ParseLimits(string(b))
}

// ParseLimits extracts the hierarchical memory limit and the page cache
// charge from memory.stat content. Lines are "<field> <value>" pairs; line
// order and unrelated lines are irrelevant.
func ParseLimits(content string) (Limits, error) {
	limit, err := scanStatField(content, fieldMemoryLimit)
	if err != nil {
		return Limits{}, err
	}
	cache, err := scanStatField(content, fieldTotalCache)
	if err != nil {
		return Limits{}, err
	}
	return Limits{MemoryLimitBytes: limit, BuffCacheBytes: cache}, nil
}

func scanStatField(content, field string) (uint64, error) {
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || fields[0] != field {
			continue
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q", ErrFieldValue, field, fields[1])
		}
		return v, nil
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("scan memory.stat: %w", err)
	}
	return 0, fmt.Errorf("%w: %s", ErrFieldMissing, field)
}
