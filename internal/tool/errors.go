package tool

import (
	"errors"
	"fmt"
)

// ErrUnknownTool is returned by Registry.Invoke when the requested
// name is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// ExecutionError wraps a failure inside a tool executor.
type ExecutionError struct {
	Tool string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("tool %q failed: %v", e.Tool, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
