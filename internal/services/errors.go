package services

import "errors"

// Sentinel errors returned by the services. Handlers translate them to HTTP
// statuses at the boundary; messages shown to clients live in the handlers.
var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrNotFound             = errors.New("not found")
	ErrTitleContentRequired = errors.New("title and content are required")
	ErrPlanLimit            = errors.New("free plan note limit reached")
	ErrAdminRequired        = errors.New("admin access required")
)
