package sim

import "errors"

// Registry limits.
const (
	MaxEntities = 512
	MaxBalls    = 2
)

// Sentinel errors returned by Registry.Add. Both are non-fatal: the add is
// dropped and the registry keeps what it already holds.
var (
	ErrRegistryFull = errors.New("sim: registry full")
	ErrTooManyBalls = errors.New("sim: too many balls")
	ErrSealed       = errors.New("sim: registry sealed")
)

// EntityID is a stable index into a Registry. IDs follow storage order.
type EntityID int

// Registry is a bounded arena of entities plus an index of the balls.
// Entities are only appended during level load; once sealed the counts are
// frozen and only block teams and ball motion change.
type Registry struct {
	entities    []Entity
	balls       []EntityID
	maxEntities int
	maxBalls    int
	sealed      bool
}

// NewRegistry creates a registry with the default limits.
func NewRegistry() *Registry {
	return NewRegistryWithLimits(MaxEntities, MaxBalls)
}

// NewRegistryWithLimits creates a registry with custom limits.
// Non-positive limits fall back to the defaults.
func NewRegistryWithLimits(maxEntities, maxBalls int) *Registry {
	if maxEntities <= 0 {
		maxEntities = MaxEntities
	}
	if maxBalls <= 0 {
		maxBalls = MaxBalls
	}
	return &Registry{
		entities:    make([]Entity, 0, maxEntities),
		balls:       make([]EntityID, 0, maxBalls),
		maxEntities: maxEntities,
		maxBalls:    maxBalls,
	}
}

// Add appends an entity in storage order and returns its ID.
// A ball that would exceed the ball limit is not stored at all.
func (r *Registry) Add(e Entity) (EntityID, error) {
	if r.sealed {
		return -1, ErrSealed
	}
	if len(r.entities) >= r.maxEntities {
		return -1, ErrRegistryFull
	}
	if e.kind == KindBall && len(r.balls) >= r.maxBalls {
		return -1, ErrTooManyBalls
	}

	id := EntityID(len(r.entities))
	r.entities = append(r.entities, e.clone())
	if e.kind == KindBall {
		r.balls = append(r.balls, id)
	}
	return id, nil
}

// Seal freezes the entity and ball counts.
func (r *Registry) Seal() {
	r.sealed = true
}

// Sealed reports whether Seal was called.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Len returns the number of stored entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// BallCount returns the number of tracked balls.
func (r *Registry) BallCount() int {
	return len(r.balls)
}

// Balls returns the IDs of the tracked balls in spawn order.
func (r *Registry) Balls() []EntityID {
	out := make([]EntityID, len(r.balls))
	copy(out, r.balls)
	return out
}

// Get returns a copy of the entity with the given ID.
func (r *Registry) Get(id EntityID) (Entity, bool) {
	if id < 0 || int(id) >= len(r.entities) {
		return Entity{}, false
	}
	return r.entities[id].clone(), true
}

// Each calls fn for every entity in storage order with a copy of it.
func (r *Registry) Each(fn func(id EntityID, e Entity)) {
	for i := range r.entities {
		fn(EntityID(i), r.entities[i].clone())
	}
}

// at returns the live entity for in-package mutation.
func (r *Registry) at(id EntityID) *Entity {
	return &r.entities[id]
}

// Tally counts blocks per team.
type Tally struct {
	Light int
	Dark  int
	None  int
}

// Total returns the number of blocks counted.
func (t Tally) Total() int {
	return t.Light + t.Dark + t.None
}

// Tally counts the current owner of every block.
func (r *Registry) Tally() Tally {
	var t Tally
	for i := range r.entities {
		e := &r.entities[i]
		if e.kind != KindBlock {
			continue
		}
		switch e.team {
		case TeamLight:
			t.Light++
		case TeamDark:
			t.Dark++
		default:
			t.None++
		}
	}
	return t
}
