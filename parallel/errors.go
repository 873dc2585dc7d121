package parallel

import "errors"

// Configuration errors, reported before any work starts.
var (
	ErrInvalidRange     = errors.New("invalid range")
	ErrInvalidWorkers   = errors.New("invalid number of workers")
	ErrInvalidThreshold = errors.New("invalid threshold")
)
