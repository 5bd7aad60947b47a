package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents a non-2xx response from the grading service.
type APIError struct {
	StatusCode int
	Detail     string
	URL        string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("etis: API error %d (URL: %s)", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("etis: API error %d: %s (URL: %s)", e.StatusCode, e.Detail, e.URL)
}

// IsNotFound checks if the error indicates a missing export or endpoint.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error indicates rejected credentials.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsBadRequest checks if the error indicates the service rejected the request.
func IsBadRequest(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}
	return false
}

// parseDetail extracts a message from a FastAPI error body. The detail is a
// string for raised errors and a list of objects for validation errors.
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		return detail
	}

	var items []struct {
		Msg string `json:"msg"`
		Loc []any  `json:"loc"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil && len(items) > 0 {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			msg := item.Msg
			if len(item.Loc) > 0 {
				msg = fmt.Sprintf("%v: %s", item.Loc[len(item.Loc)-1], item.Msg)
			}
			msgs = append(msgs, msg)
		}
		return strings.Join(msgs, "; ")
	}

	return string(payload.Detail)
}
