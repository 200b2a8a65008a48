package validation

import (
	"fmt"
	"net/http"
	"strings"
)

// FailedMessage is the only top-level message a validation failure carries.
const FailedMessage = "Validation failed"

// Issue is a single violated constraint.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error is the payload returned to clients when a request fails validation.
// It is serialized as-is into the 400 response body.
type Error struct {
	Message string  `json:"error"`
	Issues  []Issue `json:"issues"`
}

func newError(issues []Issue) *Error {
	return &Error{Message: FailedMessage, Issues: issues}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Issues) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Path, issue.Message))
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, ", "))
}

// StatusCode is fixed regardless of which constraint failed.
func (e *Error) StatusCode() int {
	return http.StatusBadRequest
}

// InvalidBody builds the failure returned when the request body is not
// decodable at all.
func InvalidBody() *Error {
	return newError([]Issue{{Path: "", Message: "Request body must be valid JSON"}})
}
