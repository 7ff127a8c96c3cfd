package telemetry

import (
	"math"

	"github.com/lemilonkh/ecolia/components"
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	windowStartTick     int32

	acquiredNearest int
	acquiredRandom  int
	retries         int
	arrivals        int
	plantsSpawned   int
	plantsConsumed  int
	staleRemoved    int
	plantsRemoved   int
	exhaustions     int
	deaths          int
}

// NewCollector creates a collector whose windows last windowDurationSec of
// simulated time at dt seconds per tick.
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticks := int32(math.Round(windowDurationSec / dt))
	if ticks < 1 {
		ticks = 1
	}
	return &Collector{windowDurationTicks: ticks}
}

// RecordAcquisition records a target choice by policy.
func (c *Collector) RecordAcquisition(nearest bool) {
	if nearest {
		c.acquiredNearest++
	} else {
		c.acquiredRandom++
	}
}

// RecordRetry records an acquisition that found nothing to pick.
func (c *Collector) RecordRetry() { c.retries++ }

// RecordArrival records a Running -> Eating transition.
func (c *Collector) RecordArrival() { c.arrivals++ }

// RecordSpawned records plants created by the spawner or placement.
func (c *Collector) RecordSpawned(n int) { c.plantsSpawned += n }

// RecordConsumed records a plant eaten on arrival.
func (c *Collector) RecordConsumed() { c.plantsConsumed++ }

// RecordStaleRemoved records plants dropped by a nearest scan.
func (c *Collector) RecordStaleRemoved(n int) { c.staleRemoved += n }

// RecordRemoved records plants deleted through the control intake.
func (c *Collector) RecordRemoved() { c.plantsRemoved++ }

// RecordExhaustion records a Running -> Idle transition.
func (c *Collector) RecordExhaustion() { c.exhaustions++ }

// RecordDeath records a transition to Dead.
func (c *Collector) RecordDeath() { c.deaths++ }

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Snapshot is the world state sampled at the end of a window.
type Snapshot struct {
	SimTime  float64 // simulated seconds elapsed
	States   [6]int  // indexed by components.State
	Plants   int
	Energies []float64
	Hungers  []float64
	Thirsts  []float64
	Healths  []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, snap Snapshot) WindowStats {
	var share float64
	if total := c.acquiredNearest + c.acquiredRandom; total > 0 {
		share = float64(c.acquiredNearest) / float64(total)
	}

	energy := ComputeDistribution(snap.Energies)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      snap.SimTime,

		Idle:     snap.States[components.StateIdle],
		Running:  snap.States[components.StateRunning],
		Eating:   snap.States[components.StateEating],
		Drinking: snap.States[components.StateDrinking],
		Dead:     snap.States[components.StateDead],
		Plants:   snap.Plants,

		AcquiredNearest: c.acquiredNearest,
		AcquiredRandom:  c.acquiredRandom,
		NearestShare:    share,
		Retries:         c.retries,
		Arrivals:        c.arrivals,

		PlantsSpawned:  c.plantsSpawned,
		PlantsConsumed: c.plantsConsumed,
		StaleRemoved:   c.staleRemoved,
		PlantsRemoved:  c.plantsRemoved,

		Exhaustions: c.exhaustions,
		Deaths:      c.deaths,

		EnergyMean: energy.Mean,
		EnergyP10:  energy.P10,
		EnergyP50:  energy.P50,
		EnergyP90:  energy.P90,
		HungerMean: ComputeDistribution(snap.Hungers).Mean,
		ThirstMean: ComputeDistribution(snap.Thirsts).Mean,
		HealthMean: ComputeDistribution(snap.Healths).Mean,
	}
	for s, n := range snap.States {
		if components.State(s) != components.StateDead {
			stats.Alive += n
		}
	}

	c.windowStartTick = currentTick
	c.acquiredNearest = 0
	c.acquiredRandom = 0
	c.retries = 0
	c.arrivals = 0
	c.plantsSpawned = 0
	c.plantsConsumed = 0
	c.staleRemoved = 0
	c.plantsRemoved = 0
	c.exhaustions = 0
	c.deaths = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
