package commands

import (
	"fmt"
	"time"
)

// Command is a validated request issued by an interface layer
type Command interface {
	Validate() error
	GetType() string
}

// CommandResult is the machine-readable outcome of a command
type CommandResult struct {
	Success       bool                   `json:"success"`
	Command       string                 `json:"command"`
	Message       string                 `json:"message"`
	Data          interface{}            `json:"data,omitempty"`
	Errors        []string               `json:"errors,omitempty"`
	Warnings      []string               `json:"warnings,omitempty"`
	ExecutionTime time.Duration          `json:"execution_time"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// NewSuccessResult creates a successful result for cmd
func NewSuccessResult(cmd Command, message string, data interface{}) *CommandResult {
	return &CommandResult{
		Success: true,
		Command: cmd.GetType(),
		Message: message,
		Data:    data,
	}
}

// NewErrorResult creates a failed result for cmd carrying err
func NewErrorResult(cmd Command, message string, err error) *CommandResult {
	return &CommandResult{
		Success: false,
		Command: cmd.GetType(),
		Message: message,
		Errors:  []string{err.Error()},
	}
}

// AddWarning adds a warning to the command result
func (r *CommandResult) AddWarning(warning string) {
	r.Warnings = append(r.Warnings, warning)
}

// SetMetadata adds metadata to the command result
func (r *CommandResult) SetMetadata(key string, value interface{}) {
	if r.Metadata == nil {
		r.Metadata = make(map[string]interface{})
	}
	r.Metadata[key] = value
}

// CommandError represents a command-specific error
type CommandError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrCodeValidation marks rejected command parameters
const ErrCodeValidation = "VALIDATION_ERROR"

// NewValidationError creates a validation error
func NewValidationError(message string) CommandError {
	return CommandError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// Prepare validates cmd and reports a failure as a result as well, so
// callers printing machine-readable output have something to print
func Prepare(cmd Command) (*CommandResult, error) {
	if err := cmd.Validate(); err != nil {
		return NewErrorResult(cmd, fmt.Sprintf("invalid %s command", cmd.GetType()), err), err
	}
	return nil, nil
}
