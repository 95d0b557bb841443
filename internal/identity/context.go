// Package identity carries the authenticated caller through request contexts.
package identity

import (
	"context"

	"github.com/aquametric/aquatrack/internal/principal"
)

// CallerContextKey is the request context key for the calling principal.
type CallerContextKey struct{}

// WithCaller stores the calling principal in the context.
func WithCaller(ctx context.Context, caller principal.Principal) context.Context {
	return context.WithValue(ctx, CallerContextKey{}, caller)
}

// CallerFromContext returns the calling principal from context, if set.
func CallerFromContext(ctx context.Context) (principal.Principal, bool) {
	if ctx == nil {
		return "", false
	}
	value := ctx.Value(CallerContextKey{})
	switch typed := value.(type) {
	case principal.Principal:
		return typed, !typed.IsZero()
	case string:
		parsed, err := principal.Parse(typed)
		if err != nil {
			return "", false
		}
		return parsed, true
	}
	return "", false
}
