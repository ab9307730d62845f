//go:build !linux

package util

import "runtime"

func kernelRelease() string {
	return runtime.GOOS
}
