package systems

import (
	"math"
	"sort"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lemilonkh/ecolia/components"
)

// Resource is a read-only view of a live plant.
type Resource struct {
	ID      uint32
	Pos     r3.Vec
	Variant string
}

// ResourceField holds the live plants as ECS entities.
// Consumed plants are removed from the world, not flagged.
type ResourceField struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Transform, components.Plant]
	filter *ecs.Filter2[components.Transform, components.Plant]
	byID   map[uint32]ecs.Entity
	nextID uint32
}

// NewResourceField creates an empty field backed by world.
func NewResourceField(world *ecs.World) *ResourceField {
	return &ResourceField{
		world:  world,
		mapper: ecs.NewMap2[components.Transform, components.Plant](world),
		filter: ecs.NewFilter2[components.Transform, components.Plant](world),
		byID:   make(map[uint32]ecs.Entity),
	}
}

// Spawn creates a plant and returns its id.
func (f *ResourceField) Spawn(pos r3.Vec, variant string) uint32 {
	f.nextID++
	tr := components.Transform{Pos: pos}
	plant := components.Plant{ID: f.nextID, Variant: variant}
	f.byID[f.nextID] = f.mapper.NewEntity(&tr, &plant)
	return f.nextID
}

// Remove deletes a plant. Removing an unknown or already removed id is a no-op
// and returns false.
func (f *ResourceField) Remove(id uint32) bool {
	e, ok := f.byID[id]
	if !ok {
		return false
	}
	delete(f.byID, id)
	if f.world.Alive(e) {
		f.world.RemoveEntity(e)
	}
	return true
}

// Count returns the number of live plants.
func (f *ResourceField) Count() int {
	return len(f.byID)
}

// Get returns the plant with the given id.
func (f *ResourceField) Get(id uint32) (Resource, bool) {
	e, ok := f.byID[id]
	if !ok {
		return Resource{}, false
	}
	tr, plant := f.mapper.Get(e)
	return Resource{ID: plant.ID, Pos: tr.Pos, Variant: plant.Variant}, true
}

// All returns every live plant ordered by id.
func (f *ResourceField) All() []Resource {
	out := make([]Resource, 0, len(f.byID))
	query := f.filter.Query()
	for query.Next() {
		tr, plant := query.Get()
		out = append(out, Resource{ID: plant.ID, Pos: tr.Pos, Variant: plant.Variant})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ConsumeAt removes the plant closest to point if it lies within epsSq.
func (f *ResourceField) ConsumeAt(point r3.Vec, epsSq float64) (uint32, bool) {
	best := math.Inf(1)
	var id uint32
	for _, r := range f.All() {
		if d := distSq(r.Pos, point); d < epsSq && d < best {
			best = d
			id = r.ID
		}
	}
	if id == 0 {
		return 0, false
	}
	return id, f.Remove(id)
}
