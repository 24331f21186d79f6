package errors

import "errors"

// Sentinel errors for common failure modes.
var (
	ErrConnectionFailed = errors.New("connection failed")
	ErrTLSConfig        = errors.New("invalid SSL configuration")
	ErrProbeUnsupported = errors.New("server supports neither health checks nor reflection")
	ErrNotFound         = errors.New("not found")
	ErrUserCancelled    = errors.New("user cancelled operation")
	ErrTimeout          = errors.New("operation timed out")
)

// ValidationError represents a field validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// MissingFileError reports a referenced file that does not exist on disk.
// Label names the file's role, e.g. "CA".
type MissingFileError struct {
	Label string
	Path  string
}

func (e *MissingFileError) Error() string {
	return "Error: " + e.Label + " file does not exist"
}
