package callcontext

import (
	"context"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey int

const (
	tenantKeyKey contextKey = iota
)

// WithTenantKey returns a new context carrying the authenticated tenant key
func WithTenantKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, tenantKeyKey, key)
}

// TenantKey retrieves the tenant key from the context.
// Returns empty string if none is present.
func TenantKey(ctx context.Context) string {
	if key, ok := ctx.Value(tenantKeyKey).(string); ok {
		return key
	}
	return ""
}

// HasTenantKey checks if the context carries a tenant key
func HasTenantKey(ctx context.Context) bool {
	_, ok := ctx.Value(tenantKeyKey).(string)
	return ok
}
