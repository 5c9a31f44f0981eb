package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Input errors, shown to the user as a dialog
	ErrInvalidURL      = fmt.Errorf("invalid YouTube URL")
	ErrTitleNotFound   = fmt.Errorf("video title not found")
	ErrMissingArgument = fmt.Errorf("missing required argument")

	// Upstream errors, shown inline as the result
	ErrAuthFailed         = fmt.Errorf("authentication failed")
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
)
