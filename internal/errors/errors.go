// Package errors defines the failure taxonomy for pbdev bootstrap runs.
//
// Every failure a run can hit falls into one of four categories: a required
// tool is missing, the user declined an offered installation, the host has no
// supported package manager for a system dependency, or an external command
// step returned non-zero. All of them are fatal and map to exit code 1; none
// are retried.
package errors

import (
	"errors"
	"fmt"
)

// Category classifies a fatal bootstrap failure.
type Category int

const (
	CategoryMissingTool Category = iota
	CategoryDeclinedInstall
	CategoryUnsupportedEnvironment
	CategoryStepFailure
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryMissingTool:
		return "missing-tool"
	case CategoryDeclinedInstall:
		return "declined-install"
	case CategoryUnsupportedEnvironment:
		return "unsupported-environment"
	case CategoryStepFailure:
		return "step-failure"
	default:
		return "unknown"
	}
}

// BootstrapError is the only error type pbdev surfaces to the terminal. It
// carries the failure category, the tool or step it concerns, and an optional
// wrapped cause from the failing command.
type BootstrapError struct {
	Category Category
	Subject  string
	Message  string
	Cause    error
}

func (e *BootstrapError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Category, e.Subject, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Category, e.Subject, e.Message)
}

func (e *BootstrapError) Unwrap() error {
	return e.Cause
}

// MissingTool reports a required tool that could not be resolved and for
// which no installation can be offered.
func MissingTool(tool, hint string) *BootstrapError {
	return &BootstrapError{
		Category: CategoryMissingTool,
		Subject:  tool,
		Message:  hint,
	}
}

// DeclinedInstall reports that the user refused an offered installation of a
// required tool.
func DeclinedInstall(tool string) *BootstrapError {
	return &BootstrapError{
		Category: CategoryDeclinedInstall,
		Subject:  tool,
		Message:  "required tool installation declined",
	}
}

// UnsupportedEnvironment reports that no known package manager was found for
// a system-level dependency.
func UnsupportedEnvironment(pkg, hint string) *BootstrapError {
	return &BootstrapError{
		Category: CategoryUnsupportedEnvironment,
		Subject:  pkg,
		Message:  hint,
	}
}

// StepFailure wraps a non-zero exit from an external command step. The
// remaining steps of the sequence must not run.
func StepFailure(step string, cause error) *BootstrapError {
	return &BootstrapError{
		Category: CategoryStepFailure,
		Subject:  step,
		Message:  "command failed",
		Cause:    cause,
	}
}

// IsCategory reports whether err is a BootstrapError of the given category.
func IsCategory(err error, c Category) bool {
	var be *BootstrapError
	if errors.As(err, &be) {
		return be.Category == c
	}
	return false
}

// ExitCode maps an error to the process exit status. Success is 0; every
// bootstrap failure is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
