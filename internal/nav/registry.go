package nav

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Anchor is anything with a pose that strategies can steer relative to.
type Anchor interface {
	WorldPosition() mgl64.Vec3
	Rotation() mgl64.Quat
}

// Registry indexes the actors currently present in the simulation. Leaders are
// resolved through it on every tick, so removing an actor is immediately
// visible to everyone following it.
type Registry struct {
	actors map[uuid.UUID]Anchor
}

func NewRegistry() *Registry {
	return &Registry{actors: make(map[uuid.UUID]Anchor)}
}

// Add registers (or replaces) the anchor for id.
func (r *Registry) Add(id uuid.UUID, a Anchor) {
	r.actors[id] = a
}

func (r *Registry) Remove(id uuid.UUID) {
	delete(r.actors, id)
}

// Lookup returns the anchor for id, if present.
func (r *Registry) Lookup(id uuid.UUID) (Anchor, bool) {
	a, ok := r.actors[id]
	return a, ok
}

func (r *Registry) Len() int { return len(r.actors) }
