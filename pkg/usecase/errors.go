package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrCaseNotFound = errors.New("case not found")

	// Status errors
	ErrInvalidTransition = errors.New("status transition not allowed for role")
	ErrMissingReason     = errors.New("change reason is required")

	// Message errors
	ErrEmptyMessage = errors.New("message body is empty")
)

// Context keys for error values
const (
	CaseIDKey  = "case_id"
	ActorIDKey = "actor_id"
	RoleKey    = "role"
)
