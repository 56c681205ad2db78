package engine

import "errors"

var (
	ErrInvalidCapacity  = errors.New("capacity out of range")
	ErrInvalidInterval  = errors.New("interval out of range")
	ErrUnknownSortField = errors.New("unknown sort field")
)
