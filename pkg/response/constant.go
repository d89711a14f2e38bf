package response

const (
	// MessageSuccess is the message for successful responses.
	MessageSuccess = "Success"

	// DefaultErrorMessage hides internal details from callers.
	DefaultErrorMessage = "Internal server error"

	// InternalServerErrorCode marks unexpected failures.
	InternalServerErrorCode = 500
)
