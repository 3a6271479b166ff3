package service

import (
	"context"

	"github.com/alexanderramin/basekit/internal/domain"
)

type actorKey struct{}

// WithActor records the login of the user performing the request.
func WithActor(ctx context.Context, login string) context.Context {
	return context.WithValue(ctx, actorKey{}, login)
}

// ActorFrom returns the acting login, falling back to the default user.
func ActorFrom(ctx context.Context) string {
	if login, ok := ctx.Value(actorKey{}).(string); ok && login != "" {
		return login
	}
	return domain.DefaultUserLogin
}
