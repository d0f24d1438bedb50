package model

import (
	"context"

	"github.com/hita/aedip-telemedicina/pkg/domain/types"
)

// Actor is the pre-resolved identity and role on whose behalf an operation
// runs. Resolution happens upstream (session, gateway headers); the core
// never re-derives it.
type Actor struct {
	ID   string
	Role types.Role
}

// IsCoordinator reports whether the actor holds the coordinator role
func (a Actor) IsCoordinator() bool {
	return a.Role == types.RoleCoordinator
}

type actorCtxKey struct{}

// ContextWithActor returns a context carrying the actor
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}

// ActorFromContext extracts the actor from the context. The second return
// value is false when no actor was attached.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey{}).(Actor)
	return actor, ok
}
