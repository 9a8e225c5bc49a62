package quandl

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthorized = errors.New("quandl: unauthorized")
	ErrNotFound     = errors.New("quandl: dataset not found")
	ErrRateLimited  = errors.New("quandl: rate limited")
	ErrTransport    = errors.New("quandl: transport failure")
)

// APIError is a non-200 answer from the API.
// Code and Message come from the "quandl_error" body when present.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("quandl: status %d: %s %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("quandl: unexpected status code: %d", e.StatusCode)
}

// Is classifies the error by status and provider code.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		// QEAx: authentication, QEPx: permission
		return e.StatusCode == 401 || e.StatusCode == 403 ||
			strings.HasPrefix(e.Code, "QEA") || strings.HasPrefix(e.Code, "QEP")
	case ErrNotFound:
		return e.StatusCode == 404 || e.Code == "QECx02"
	case ErrRateLimited:
		return e.StatusCode == 429 || strings.HasPrefix(e.Code, "QELx")
	}
	return false
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"quandl_error"`
}
