package toolchain

import "errors"

var (
	ErrToolNotFound = errors.New("tool not found")
	ErrToolFailed   = errors.New("tool exited with an error")
	ErrToolTimeout  = errors.New("tool timed out")
)
