package cgroup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Version identifies which cgroup hierarchy generation(s) a host mounts.
type Version int

const (
	Unsupported Version = iota // no cgroup mounts visible
	V1                         // legacy multi-hierarchy cgroup v1
	V2                         // unified cgroup v2
	Hybrid                     // both v1 and v2 present
)

func (v Version) String() string {
	switch v {
	case V1:
		return "cgroup v1"
	case V2:
		return "cgroup v2"
	case Hybrid:
		return "cgroup hybrid"
	default:
		return "unsupported"
	}
}

// Detect reports the cgroup generation mounted on this host and a
// human-readable detail string naming the mount points, including where the
// v1 memory controller lives when one is present. The reporter only consumes
// the v1 memory controller; everything else is diagnostic context.
func Detect() (Version, string, error) {
	f, err := os.Open("/proc/self/mountinfo")
	if err != nil {
		return Unsupported, "", fmt.Errorf("open mountinfo: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return parseMountinfo(f)
}

// parseMountinfo scans mountinfo lines for cgroup filesystems.
// Each line carries a " - fstype source superopts" tail; a v1 memory
// controller mount advertises itself through the "memory" super option.
func parseMountinfo(r io.Reader) (Version, string, error) {
	var (
		v1Pts []string
		v2Pts []string
		memPt string
		sc    = bufio.NewScanner(r)
	)
	for sc.Scan() {
		line := sc.Text()
		sep := " - "
		i := strings.LastIndex(line, sep)
		if i < 0 {
			continue
		}
		tail := strings.Fields(line[i+len(sep):])
		if len(tail) < 1 {
			continue
		}

		// Mount point is field 5 of the pre-separator part.
		// Ref: man 5 proc
		pre := strings.Fields(line[:i])
		if len(pre) < 5 {
			continue
		}
		mountPoint := pre[4]

		switch tail[0] {
		case "cgroup2":
			v2Pts = append(v2Pts, mountPoint)
		case "cgroup":
			v1Pts = append(v1Pts, mountPoint)
			if memPt == "" && len(tail) >= 3 && hasOption(tail[2], "memory") {
				memPt = mountPoint
			}
		}
	}
	if err := sc.Err(); err != nil {
		return Unsupported, "", fmt.Errorf("scan mountinfo: %w", err)
	}

	switch {
	case len(v1Pts) > 0 && len(v2Pts) > 0:
		return Hybrid, fmt.Sprintf("cgroup2 on %s; cgroup v1 on %s%s",
			strings.Join(v2Pts, ","), strings.Join(v1Pts, ","), memDetail(memPt)), nil
	case len(v2Pts) > 0:
		return V2, fmt.Sprintf("cgroup2 on %s", strings.Join(v2Pts, ",")), nil
	case len(v1Pts) > 0:
		return V1, fmt.Sprintf("cgroup v1 on %s%s", strings.Join(v1Pts, ","), memDetail(memPt)), nil
	default:
		return Unsupported, "no cgroup mounts found", nil
	}
}

func memDetail(pt string) string {
	if pt == "" {
		return "; no memory controller"
	}
	return "; memory controller on " + pt
}

// hasOption reports whether a comma-separated option list contains opt.
// Exact element match, so v2's "memory_recursiveprot" never counts as the
// v1 "memory" controller.
func hasOption(list, opt string) bool {
	for _, o := range strings.Split(list, ",") {
		if o == opt {
			return true
		}
	}
	return false
}
