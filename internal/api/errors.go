package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// StatusError is returned for any non-2xx response. Body holds the raw text
// the backend sent, which is for logs, not for end users.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d - %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// HasJSONBody reports whether the backend answered with a JSON document
// rather than plain text or a truncated body.
func (e *StatusError) HasJSONBody() bool {
	return json.Valid([]byte(e.Body))
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
