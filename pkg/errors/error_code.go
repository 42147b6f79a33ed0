package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Argument and validation errors (100-199)
	ErrCodeInvalidArgument      ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeMissingField         ErrorCode = 102
	ErrCodeInvalidAddress       ErrorCode = 103
	ErrCodeInvalidAmount        ErrorCode = 104
	ErrCodeInvalidExpiry        ErrorCode = 105
	ErrCodeInvalidStatus        ErrorCode = 106
	ErrCodeVersionMismatch      ErrorCode = 107

	// Storage errors (200-299)
	ErrCodeStoreUnavailable ErrorCode = 200
	ErrCodeQueryFailed      ErrorCode = 201
	ErrCodeTradeNotFound    ErrorCode = 202

	// Collaborator errors (300-399)
	ErrCodeSubmissionFailed   ErrorCode = 300
	ErrCodeBalanceFetchFailed ErrorCode = 301
)
