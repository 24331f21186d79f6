package errors

import (
	"context"
	"errors"
)

// ErrorSeverity indicates the severity of an error for UI presentation.
type ErrorSeverity int

const (
	SeverityInfo    ErrorSeverity = iota // User should know, not blocking
	SeverityWarning                      // Degraded functionality
	SeverityError                        // Operation failed, can retry
	SeverityFatal                        // Application must exit
)

// ErrorAction represents a user action that can be taken in response to an error.
type ErrorAction struct {
	Label   string
	Handler func()
}

// UIError wraps an error with UI-friendly presentation metadata.
type UIError struct {
	Err      error
	Severity ErrorSeverity
	Title    string        // Short user-facing title
	Message  string        // Detailed user-facing message
	Recovery []string      // Suggested actions (bullet points)
	Actions  []ErrorAction // Buttons for user actions
	Details  string        // Technical details (collapsed by default)
}

func (e UIError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Title
}

// Unwrap returns the underlying error.
func (e UIError) Unwrap() error {
	return e.Err
}

// ClassifyError converts a standard error into a UIError with appropriate
// severity, title, message, and recovery suggestions.
func ClassifyError(err error) *UIError {
	if err == nil {
		return nil
	}

	var uiErr *UIError
	if errors.As(err, &uiErr) {
		return uiErr
	}

	// Missing files are reported with the exact text of the SSL tab
	var missing *MissingFileError
	if errors.As(err, &missing) {
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Error",
			Message:  missing.Error(),
			Recovery: []string{"Choose an existing file or clear the field"},
			Details:  missing.Path,
		}
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Connection Timeout",
			Message:  "The server took too long to respond.",
			Recovery: []string{"Try again", "Increase the connection timeout"},
			Actions:  []ErrorAction{{Label: "Retry"}, {Label: "Edit Connection"}},
		}

	case errors.Is(err, context.Canceled):
		return &UIError{
			Err:      err,
			Severity: SeverityInfo,
			Title:    "Cancelled",
			Message:  "The operation was cancelled.",
			Recovery: []string{},
		}

	case errors.Is(err, ErrUserCancelled):
		return &UIError{
			Err:      err,
			Severity: SeverityInfo,
			Title:    "Cancelled",
			Message:  "Operation cancelled by user.",
			Recovery: []string{},
		}

	case errors.Is(err, ErrTLSConfig):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Invalid SSL Settings",
			Message:  "The SSL files could not be loaded.",
			Recovery: []string{
				"Check the CA file contains PEM certificates",
				"Check the PEM file contains a certificate and a private key",
				"Check the passphrase of an encrypted key",
			},
			Actions: []ErrorAction{{Label: "Edit Connection"}},
			Details: err.Error(),
		}

	case errors.Is(err, ErrConnectionFailed):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Connection Failed",
			Message:  "Unable to connect to the server.",
			Recovery: []string{
				"Check that the server is running",
				"Verify the address and port",
				"Check your network connection",
			},
			Actions: []ErrorAction{{Label: "Retry"}, {Label: "Edit Connection"}},
			Details: err.Error(),
		}

	case errors.Is(err, ErrProbeUnsupported):
		return &UIError{
			Err:      err,
			Severity: SeverityWarning,
			Title:    "Test Not Supported",
			Message:  "The server answered but offers no way to verify the connection.",
			Recovery: []string{"The connection itself may still work"},
		}

	case errors.Is(err, ErrNotFound):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Not Found",
			Message:  "The saved connection no longer exists.",
			Recovery: []string{"Reload the connection list"},
			Details:  err.Error(),
		}

	case errors.Is(err, ErrTimeout):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Operation Timeout",
			Message:  "The operation timed out.",
			Recovery: []string{"Try again", "Increase the connection timeout"},
			Actions:  []ErrorAction{{Label: "Retry"}},
		}
	}

	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Validation Error",
			Message:  validationErr.Message,
			Recovery: []string{"Correct the field value and try again"},
			Details:  validationErr.Error(),
		}
	}

	return &UIError{
		Err:      err,
		Severity: SeverityError,
		Title:    "Unexpected Error",
		Message:  "An unexpected error occurred.",
		Recovery: []string{"Try again"},
		Details:  err.Error(),
	}
}
