package ports

import "errors"

// ErrNotConfigured is returned in place of an adapter call when the host did
// not wire the adapter. Callers treat it like any other adapter failure.
var ErrNotConfigured = errors.New("adapter not configured")
