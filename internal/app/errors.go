// Package app assembles the suggestion stack: configuration, logging,
// document state, the computation engine, and the coordinator.
package app

import (
	"errors"
	"fmt"

	"github.com/dshills/suggest/internal/log"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNotRunning indicates the application is not running.
	ErrNotRunning = errors.New("application not running")

	// ErrInitialization indicates an initialization failure.
	ErrInitialization = errors.New("initialization failed")

	// ErrNoSurface indicates no presentation surface was provided.
	ErrNoSurface = errors.New("no presentation surface")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "start", "reload")
	Target string // Target of the operation (e.g., config path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// logSink routes unexpected failures to the logger. It implements
// suggest.ErrorSink.
type logSink struct {
	logger *log.Logger
}

func (s *logSink) OnUnexpectedError(err error) {
	s.logger.Error("unexpected error: %v", err)
}
