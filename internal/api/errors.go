package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// RequestError wraps a transport-level failure: the request never
// produced an HTTP response.
type RequestError struct {
	Method string
	Path   string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// StatusError is a non-2xx HTTP response. Message is suitable for
// display to the user: for 4xx it is the server-supplied message when
// one exists, for 5xx it is always the generic fallback.
type StatusError struct {
	Status  int
	Method  string
	Path    string
	Message string
	Body    []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

// IsAuthError reports whether err is a 401 response.
func IsAuthError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusUnauthorized
}

// IsValidationError reports whether err is a non-auth 4xx response.
func IsValidationError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) &&
		se.Status >= 400 && se.Status < 500 &&
		se.Status != http.StatusUnauthorized
}

// IsServerError reports whether err is a 5xx response.
func IsServerError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status >= 500
}

// IsNetworkError reports whether err is a transport failure with no
// HTTP response.
func IsNetworkError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}

// UserMessage extracts a message safe to show the user. Validation
// failures surface the server's wording verbatim; anything else falls
// back to a generic message.
func UserMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" && se.Status < 500 {
		return se.Message
	}
	if IsNetworkError(err) {
		return "Could not reach the server. Check your connection."
	}
	return "Something went wrong. Please try again."
}

// errorBody is the message-bearing shape of backend error responses.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// extractMessage pulls a human-readable message out of an error
// response body, falling back to the HTTP status text.
func extractMessage(status int, body []byte) string {
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		if eb.Error != "" {
			return eb.Error
		}
		if eb.Message != "" {
			return eb.Message
		}
	}
	if status >= 500 {
		return "Server error. Please try again later."
	}
	return http.StatusText(status)
}
