package cgroup

import "errors"

var (
	ErrFieldMissing = errors.New("cgroup: required memory.stat field not found")
	ErrFieldValue   = errors.New("cgroup: memory.stat field value is not an unsigned integer")
)
