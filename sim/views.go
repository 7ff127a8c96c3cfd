package sim

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lemilonkh/ecolia/components"
	"github.com/lemilonkh/ecolia/systems"
)

// CreatureView is the per-creature state a renderer or inspector reads.
type CreatureView struct {
	ID       uint32
	Species  string
	Position r3.Vec
	Facing   float64 // radians about Up
	Forward  r3.Vec  // unit travel direction
	State    components.State
	Slot     components.AnimationSlot
	Vitality components.Vitality
	Speed    float64
	Target   components.Target
	Wait     components.WaitTimer
}

// PlaybackSpeed is the animation rate multiplier, which tracks energy.
func (v CreatureView) PlaybackSpeed() float64 {
	return v.Vitality.Energy()
}

// Creatures returns a view of every creature in spawn order, Dead ones included.
func (s *Simulation) Creatures() []CreatureView {
	views := make([]CreatureView, 0, len(s.creatures))
	for _, e := range s.creatures {
		views = append(views, s.view(e))
	}
	return views
}

// Creature returns the view of one creature by id.
func (s *Simulation) Creature(id uint32) (CreatureView, bool) {
	e, ok := s.byID[id]
	if !ok {
		return CreatureView{}, false
	}
	return s.view(e), true
}

func (s *Simulation) view(e ecs.Entity) CreatureView {
	tr, vel, vit, beh, tgt, cr, _ := s.creatureMapper.Get(e)
	return CreatureView{
		ID:       cr.ID,
		Species:  cr.Species,
		Position: tr.Pos,
		Facing:   tr.Facing,
		Forward:  tr.Forward(),
		State:    beh.State,
		Slot:     beh.State.Slot(),
		Vitality: *vit,
		Speed:    vel.Speed(),
		Target:   *tgt,
		Wait:     beh.Wait,
	}
}

// Plants returns every plant ordered by id.
func (s *Simulation) Plants() []systems.Resource {
	return s.field.All()
}

// PlantCount returns the number of plants on the stage.
func (s *Simulation) PlantCount() int {
	return s.field.Count()
}

// CreatureCount returns the number of creatures, Dead ones included.
func (s *Simulation) CreatureCount() int {
	return len(s.creatures)
}

// NearestCreature returns the id of the creature closest to pos within radius.
// Ties go to the lower id.
func (s *Simulation) NearestCreature(pos r3.Vec, radius float64) (uint32, bool) {
	if s.gridDirty {
		s.rebuildGrid()
	}
	return s.grid.Nearest(pos, radius)
}

func (s *Simulation) rebuildGrid() {
	s.grid.Clear()
	for _, e := range s.creatures {
		tr, _, _, _, _, cr, _ := s.creatureMapper.Get(e)
		s.grid.Insert(cr.ID, tr.Pos)
	}
	s.gridDirty = false
}
