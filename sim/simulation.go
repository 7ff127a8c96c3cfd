// Package sim advances the creature and plant world one tick at a time.
package sim

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lemilonkh/ecolia/components"
	"github.com/lemilonkh/ecolia/config"
	"github.com/lemilonkh/ecolia/systems"
	"github.com/lemilonkh/ecolia/telemetry"
)

const gridCellsPerSide = 16

// Options configures a Simulation beyond the YAML config.
type Options struct {
	Seed     int64
	LogStats bool // log window stats via slog

	// Output receives CSV rows on every window flush; nil disables it.
	Output *telemetry.OutputManager

	// StatsCallback is invoked with each flushed window.
	StatsCallback func(telemetry.WindowStats)
}

// Simulation holds the complete world state and sequences each tick.
type Simulation struct {
	cfg    *config.Config
	params systems.Params
	rules  systems.HealthRules
	stage  r3.Box

	world *ecs.World
	rng   *rand.Rand

	creatureMapper *ecs.Map7[
		components.Transform,
		components.Velocity,
		components.Vitality,
		components.Behavior,
		components.Target,
		components.Creature,
		components.Rng,
	]

	// Creatures in spawn order; Dead creatures stay in the world
	creatures []ecs.Entity
	byID      map[uint32]ecs.Entity
	nextID    uint32

	field   *systems.ResourceField
	spawner *systems.Spawner

	// Creature positions for picking; rebuilt lazily after movement
	grid      *systems.SpatialGrid
	gridDirty bool

	parallel *parallelState

	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool

	tick    int32
	elapsed float64
}

// New creates a simulation and seeds the initial creatures and plants.
func New(cfg *config.Config, opts Options) *Simulation {
	world := ecs.NewWorld()
	root := rand.New(rand.NewSource(opts.Seed))
	stage := systems.Stage(cfg.Stage.Size)

	s := &Simulation{
		cfg:    cfg,
		params: systems.NewParams(cfg),
		rules:  systems.NewHealthRules(cfg.Health),
		stage:  stage,
		world:  world,
		rng:    root,
		creatureMapper: ecs.NewMap7[
			components.Transform,
			components.Velocity,
			components.Vitality,
			components.Behavior,
			components.Target,
			components.Creature,
			components.Rng,
		](world),
		byID:          make(map[uint32]ecs.Entity),
		field:         systems.NewResourceField(world),
		grid:          systems.NewSpatialGrid(stage, cfg.Stage.Size/gridCellsPerSide),
		parallel:      newParallelState(cfg.Parallel),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.DT),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:        opts.Output,
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
	}
	s.spawner = systems.NewSpawner(cfg.Resource.RespawnInterval, stage, cfg.Resource.Variants, components.NewRng(root).Rand)

	s.spawnInitialPopulation()
	return s
}

// Tick advances the simulation by the configured fixed step.
func (s *Simulation) Tick() {
	s.Step(s.cfg.Physics.DT)
}

// Step advances the simulation by dt seconds.
func (s *Simulation) Step(dt float64) {
	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseDecision)
	s.updateDecisions(dt)

	s.perf.StartPhase(telemetry.PhaseMotion)
	s.updateMotion(dt)
	s.gridDirty = true

	s.perf.StartPhase(telemetry.PhaseSpawner)
	if n := s.spawner.Update(s.field, dt); n > 0 {
		s.collector.RecordSpawned(n)
	}

	s.tick++
	s.elapsed += dt

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()

	s.perf.EndTick()
}

// updateDecisions runs wait timers, target acquisition, steering and arrival
// for every creature in spawn order. Field removals are visible to every
// later creature in the same tick.
func (s *Simulation) updateDecisions(dt float64) {
	for _, e := range s.creatures {
		tr, vel, vit, beh, tgt, cr, rng := s.creatureMapper.Get(e)
		if beh.State == components.StateDead {
			continue
		}

		d := systems.Decide(systems.Actor{
			Transform: tr,
			Velocity:  vel,
			Vitality:  vit,
			Behavior:  beh,
			Target:    tgt,
			Rng:       rng.Rand,
		}, s.field, s.params, dt)

		s.recordDecision(cr, d)
	}
}

func (s *Simulation) recordDecision(cr *components.Creature, d systems.Decision) {
	if d.Acquired {
		s.collector.RecordAcquisition(d.Choice.Policy == systems.PolicyNearest)
		if d.Choice.Removed > 0 {
			s.collector.RecordStaleRemoved(d.Choice.Removed)
		}
	}
	if d.Retry {
		s.collector.RecordRetry()
	}
	if d.Arrived {
		s.collector.RecordArrival()
		slog.Debug("creature arrived", "id", cr.ID, "species", cr.Species, "tick", s.tick)
	}
	if d.Consumed {
		s.collector.RecordConsumed()
	}
}

// recordOutcome logs and counts a vitality transition.
func (s *Simulation) recordOutcome(cr *components.Creature, out systems.Outcome) {
	switch out {
	case systems.OutcomeExhausted:
		s.collector.RecordExhaustion()
		slog.Debug("creature exhausted", "id", cr.ID, "species", cr.Species, "tick", s.tick)
	case systems.OutcomeDied:
		s.collector.RecordDeath()
		slog.Info("creature died", "id", cr.ID, "species", cr.Species, "tick", s.tick)
	}
}

// Config returns the configuration the simulation runs with.
func (s *Simulation) Config() *config.Config {
	return s.cfg
}

// TickCount returns the number of completed ticks.
func (s *Simulation) TickCount() int32 {
	return s.tick
}

// Elapsed returns simulated seconds since start.
func (s *Simulation) Elapsed() float64 {
	return s.elapsed
}

// Stage returns the bounded area.
func (s *Simulation) Stage() r3.Box {
	return s.stage
}

// PerfStats returns timing over the recent ticks.
func (s *Simulation) PerfStats() telemetry.PerfStats {
	return s.perf.Stats()
}

// RecordFrame records a rendered frame for FPS reporting.
func (s *Simulation) RecordFrame() {
	s.perf.RecordFrame()
}
