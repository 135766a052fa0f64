package predictor

import "errors"

var (
	// ErrUnavailable indicates the prediction service could not be reached.
	ErrUnavailable = errors.New("forecast service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("forecast request timed out")

	// ErrBadStatus indicates the service answered with a non-2xx status.
	ErrBadStatus = errors.New("forecast service returned an error status")

	// ErrInvalidResponse indicates the response body could not be decoded.
	ErrInvalidResponse = errors.New("invalid forecast response")
)
