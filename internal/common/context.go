package common

import (
	"context"

	"github.com/google/uuid"

	"notable/internal/models"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	TenantIDKey contextKey = "tenant_id"
	RoleKey     contextKey = "role"
)

// WithIdentity returns a context carrying the trusted identity derived from a
// verified token. Handlers must read tenant and user scope from here, never
// from the request body.
func WithIdentity(ctx context.Context, userID, tenantID uuid.UUID, role models.Role) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, TenantIDKey, tenantID)
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetTenantIDFromContext extracts the tenant ID from the request context
func GetTenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return tenantID, ok
}

// GetRoleFromContext extracts the user role from the request context
func GetRoleFromContext(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(RoleKey).(models.Role)
	return role, ok
}
