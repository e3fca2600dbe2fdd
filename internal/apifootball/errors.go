package apifootball

import "fmt"

// APIError represents a failed provider request
type APIError struct {
	Endpoint   string // API endpoint path
	StatusCode int    // HTTP status, 0 for transport errors
	Message    string // Error message
	Err        error  // Underlying error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("apifootball %s: %s (%v)", e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("apifootball %s: %s", e.Endpoint, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
