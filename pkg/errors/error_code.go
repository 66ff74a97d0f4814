package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeMissingParameter     ErrorCode = 102
	ErrCodeUnsupportedFormat    ErrorCode = 103

	// Destination errors (200-299)
	ErrCodeWriterCreationFailed ErrorCode = 200
	ErrCodeWriteFailed          ErrorCode = 201
	ErrCodeCloseFailed          ErrorCode = 202
	ErrCodeWriterClosed         ErrorCode = 203
	ErrCodeInvalidDestination   ErrorCode = 204

	// Task errors (300-399)
	ErrCodeTaskSetupFailed  ErrorCode = 300
	ErrCodeTaskCommitFailed ErrorCode = 301
	ErrCodeTaskAbortFailed  ErrorCode = 302
	ErrCodeInputReadFailed  ErrorCode = 303
)
