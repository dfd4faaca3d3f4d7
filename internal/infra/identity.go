package infra

import "context"

// SystemActor is stamped on audit fields when no authenticated actor is
// attached to the request.
const SystemActor = "System"

type ActorProvider interface {
	CurrentActor(ctx context.Context) string
}

type actorKey struct{}

// WithActor attaches an actor identifier (typically the user's email) to the
// context.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ContextActorProvider reads the actor off the request context, falling back
// to the System sentinel.
type ContextActorProvider struct{}

func (ContextActorProvider) CurrentActor(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return SystemActor
}

var _ ActorProvider = ContextActorProvider{}
