package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUpstreamUnreachable = errors.New("upstream unreachable")
	ErrUpstreamMalformed   = errors.New("upstream payload malformed")
	ErrContractViolation   = errors.New("upstream contract violation")
)

// UpstreamStatusError carries a non-2xx upstream status that is passed through to the caller.
type UpstreamStatusError struct {
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream responded with status %d", e.StatusCode)
}

// EmbeddedError is an error message the upstream returned inside a 2xx body.
type EmbeddedError struct {
	Message string
}

func (e *EmbeddedError) Error() string {
	return "upstream error: " + e.Message
}
