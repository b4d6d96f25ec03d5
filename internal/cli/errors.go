// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - CLI error types, display, and exit code mapping.
//
// Exit codes are part of the scripting contract:
//
//	0  success
//	1  generic error
//	2  usage error (bad flag or argument)
//	3  configuration error
//	4  authentication error (missing or rejected API key)
//	5  generation error (LLM call or response parsing failed)
//	6  render error
//	7  not found

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/pathforge/internal/config"
	"github.com/jeranaias/pathforge/internal/groq"
	"github.com/jeranaias/pathforge/internal/plan"
	"github.com/jeranaias/pathforge/internal/render"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess         = 0
	ExitGenericError    = 1
	ExitUsageError      = 2
	ExitConfigError     = 3
	ExitAuthError       = 4
	ExitGenerationError = 5
	ExitRenderError     = 6
	ExitNotFound        = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents an error during command execution.
type CommandError struct {
	Command string // Command that failed (e.g., "generate")
	Action  string // Action being performed (e.g., "render")
	Reason  string // Human-readable reason
	Err     error  // Underlying error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Action:  action,
		Reason:  reason,
		Err:     err,
	}
}

// ValidationError represents invalid user input.
type ValidationError struct {
	Field   string // Field that failed validation (e.g., "topic")
	Value   string // Invalid value provided
	Reason  string // Why validation failed
	Example string // Example of valid usage
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s", e.Field)
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// NewValidationError creates a new validation error.
func NewValidationError(field, value, reason, example string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Reason:  reason,
		Example: example,
	}
}

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Type string // Resource type (e.g., "config key", "file")
	Name string // Resource name
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Type, e.Name)
}

// NewNotFoundError creates a new not-found error.
func NewNotFoundError(resourceType, name string) *NotFoundError {
	return &NotFoundError{
		Type: resourceType,
		Name: name,
	}
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError prints an error to stderr with appropriate styling.
func DisplayError(err error) {
	if err == nil {
		return
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+vErr.Error())
		if vErr.Example != "" {
			fmt.Fprintln(os.Stderr, DimStyle.Render("Example: "+vErr.Example))
		}
		return
	}

	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())

	// Actionable hints for the common setup failures.
	switch {
	case errors.Is(err, groq.ErrNotConfigured):
		fmt.Fprintln(os.Stderr, DimStyle.Render("Hint: set GROQ_API_KEY or run: pathforge config set llm.api_key YOUR_KEY"))
	case errors.Is(err, groq.ErrAuthFailed):
		fmt.Fprintln(os.Stderr, DimStyle.Render("Hint: the configured API key was rejected; check llm.api_key"))
	case errors.Is(err, render.ErrUnknownTheme):
		fmt.Fprintln(os.Stderr, DimStyle.Render("Hint: run: pathforge themes"))
	}
}

// DisplayErrorJSON prints an error as a JSON response envelope.
func DisplayErrorJSON(err error, command string) {
	if err == nil {
		return
	}
	NewJSONErrorResponse(command, err).Print()
}

// =============================================================================
// ERROR HANDLING
// =============================================================================

// HandleError displays an error and returns the exit code for it.
func HandleError(err error, args Args) int {
	if err == nil {
		return ExitSuccess
	}

	if args.JSON {
		DisplayErrorJSON(err, commandName(args.Cmd))
	} else {
		DisplayError(err)
	}

	return GetExitCode(err)
}

// HandleErrorAndExit displays an error and exits with the mapped code.
// A nil error is a no-op so handlers can be wrapped unconditionally.
func HandleErrorAndExit(err error, args Args) {
	if err == nil {
		return
	}
	os.Exit(HandleError(err, args))
}

// GetExitCode maps an error to its exit code. Typed and sentinel errors
// are checked before the string fallback so wrapped causes keep their
// category.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return ExitUsageError
	}

	var nfErr *NotFoundError
	if errors.As(err, &nfErr) {
		return ExitNotFound
	}

	if errors.Is(err, groq.ErrNotConfigured) || errors.Is(err, groq.ErrAuthFailed) {
		return ExitAuthError
	}

	// A bad theme name is bad input, not a rendering failure.
	if errors.Is(err, render.ErrUnknownTheme) {
		return ExitUsageError
	}

	if plan.IsGenerationFailed(err) {
		return ExitGenerationError
	}

	var cfgErrs config.ValidateErrors
	if errors.As(err, &cfgErrs) {
		return ExitConfigError
	}
	var cfgErr config.ValidationError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Action {
		case "render":
			return ExitRenderError
		case "load config", "save config":
			return ExitConfigError
		}
		return ExitGenericError
	}

	// String fallback for errors that arrive unwrapped.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not found"):
		return ExitNotFound
	case strings.Contains(msg, "config"):
		return ExitConfigError
	case strings.Contains(msg, "render"):
		return ExitRenderError
	case strings.Contains(msg, "unknown flag"), strings.Contains(msg, "usage"):
		return ExitUsageError
	}

	return ExitGenericError
}
