package client

import "fmt"

// APIError is a failure the remote gateway reported: a non-2xx status, or a
// 2xx envelope with success=false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("gateway returned status %d: %s", e.StatusCode, e.Message)
}

// HTTPStatus feeds the apply executor's failure classification.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}
