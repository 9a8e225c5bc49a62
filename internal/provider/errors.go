package provider

import "errors"

// Error classes surfaced by providers. Match with errors.Is; the provider's own
// error stays wrapped alongside the class.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrNotFound       = errors.New("series not found")
	ErrNetwork        = errors.New("network error")
	ErrRateLimited    = errors.New("rate limited")
	ErrInvalidRequest = errors.New("invalid request")
)
