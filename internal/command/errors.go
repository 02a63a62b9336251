package command

import (
	"errors"
	"fmt"
)

// ErrInvalidDescriptor is returned by NewRegistry for a malformed command table.
var ErrInvalidDescriptor = errors.New("command: invalid descriptor")

type UnknownCommandError struct {
	ID ID
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.ID)
}

type MissingParameterError struct {
	Command ID
	Param   string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("command %s: missing required parameter %q", e.Command, e.Param)
}

type InvalidParameterError struct {
	Command ID
	Param   string
	Value   string
	Reason  string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("command %s: invalid value %q for parameter %q: %s", e.Command, e.Value, e.Param, e.Reason)
}

// UnresolvedPlaceholderError means a path still held a {placeholder} after
// substitution. Such a request is never signed or sent.
type UnresolvedPlaceholderError struct {
	Command ID
	Path    string
}

func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("command %s: unresolved placeholder in path %q", e.Command, e.Path)
}

// IsInvocationError reports whether err means the command was malformed
// rather than rejected by the exchange.
func IsInvocationError(err error) bool {
	var (
		unknown    *UnknownCommandError
		missing    *MissingParameterError
		invalid    *InvalidParameterError
		unresolved *UnresolvedPlaceholderError
	)
	return errors.As(err, &unknown) || errors.As(err, &missing) ||
		errors.As(err, &invalid) || errors.As(err, &unresolved)
}
