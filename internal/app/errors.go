package app

import "fmt"

// Application-level errors surfaced to callers as hard failures. I/O-side
// failures (push, profile resolution) are deliberately absent: those are
// logged and degraded at the boundary, never propagated out of the core.
var (
	ErrUnauthorized       = fmt.Errorf("user identity is missing or not resolvable")
	ErrAdminNotAuthorized = fmt.Errorf("performing user is not authorized as an admin")
	ErrInvalidDate        = fmt.Errorf("malformed vote date")
	ErrInvalidChoice      = fmt.Errorf("vote choice must be yes or no")
	ErrInvalidWindow      = fmt.Errorf("voting window days must be within 1..31")
	ErrNoActiveGroup      = fmt.Errorf("no active group is registered")
)
