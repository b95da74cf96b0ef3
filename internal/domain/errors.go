package domain

import "errors"

// Sentinel errors for domain-level error discrimination. Services wrap these
// with %w so handlers can pick an HTTP status without inspecting message text.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
)
