package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is the uniform error representation for a failed exchange call,
// whether the failure happened on the network or was reported by the API.
// StatusCode is 0 when no HTTP response was received.
type APIError struct {
	StatusCode int             `json:"statusCode,omitempty"`
	Code       string          `json:"code,omitempty"`
	Message    string          `json:"message"`
	Raw        json.RawMessage `json:"raw,omitempty"`
}

// NewTransportError wraps a network level failure (DNS, reset, timeout).
func NewTransportError(err error) *APIError {
	return &APIError{Message: err.Error()}
}

// NewHTTPError normalizes a non-2xx response. A JSON body of the form
// {"code": ..., "message": ...} is decoded; anything else becomes the message.
func NewHTTPError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	trimmed := bytes.TrimSpace(body)
	if json.Valid(trimmed) {
		apiErr.Raw = json.RawMessage(trimmed)

		var payload struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			apiErr.Code = payload.Code
			apiErr.Message = payload.Message
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(trimmed))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}
	return apiErr
}

func (e *APIError) HasStatus() bool {
	return e.StatusCode != 0
}

func (e *APIError) Error() string {
	if !e.HasStatus() {
		return fmt.Sprintf("exchange request failed: %s", e.Message)
	}
	if e.Code == "" {
		return fmt.Sprintf("exchange responded with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("exchange responded with status %d (code: %s, message: %s)", e.StatusCode, e.Code, e.Message)
}
