package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"

	// Server errors (5xx)
	CodeInternalError    = "INTERNAL_ERROR"
	CodeModelUnavailable = "MODEL_UNAVAILABLE"
)
