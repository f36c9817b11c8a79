package httpapi

import (
	"context"

	"github.com/scorepadhq/scorepad/internal/domain/identity"
)

type contextKey string

const principalContextKey contextKey = "auth_principal"

func withPrincipal(ctx context.Context, p identity.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (identity.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(identity.Principal)
	return p, ok
}
