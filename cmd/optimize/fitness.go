package main

import (
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/lemilonkh/ecolia/config"
	"github.com/lemilonkh/ecolia/sim"
	"github.com/lemilonkh/ecolia/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32                   // ticks until every creature died (or maxTicks)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return math.Inf(1)
	}

	// Seeds share nothing but the read-only config
	results := make([]seedResult, len(fe.seeds))
	var g errgroup.Group
	for i, seed := range fe.seeds {
		g.Go(func() error {
			r := fe.runSimulation(cfg, seed)
			quality := computeQuality(r.windowStats)
			results[i] = seedResult{
				fitness: computeFitness(r, quality, cfg.Physics.DT),
				quality: quality,
			}
			return nil
		})
	}
	_ = g.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless run until every creature is dead
// or maxTicks is reached.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) *runResult {
	result := &runResult{}

	s := sim.New(cfg, sim.Options{
		Seed: seed,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})

	for s.TickCount() < fe.maxTicks {
		s.Tick()
		if s.TickCount()%60 == 0 && allDead(s) {
			result.survivalTicks = s.TickCount()
			return result
		}
	}

	result.survivalTicks = fe.maxTicks
	return result
}

func allDead(s *sim.Simulation) bool {
	for _, c := range s.Creatures() {
		if c.State.Alive() {
			return false
		}
	}
	return true
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalSec × (1.0 + quality))
func computeFitness(r *runResult, quality, dt float64) float64 {
	survival := float64(r.survivalTicks) * dt
	return -(survival * (1.0 + quality))
}

// Quality component weights.
const (
	qualityWeightEnergy    = 0.40
	qualityWeightStability = 0.30
	qualityWeightForaging  = 0.30

	qualityWarmupWindows = 1 // skip first N windows (warmup)
)

// computeQuality scores a run in [0, 1] from its window stats.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var energySum, forageSum float64
	var count int
	plants := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.Alive == 0 {
			continue
		}
		count++
		plants = append(plants, float64(w.Plants))

		// Median energy near 0.6 keeps creatures moving at a good pace
		energySum += math.Exp(-math.Pow((w.EnergyP50-0.6)/0.2, 2))

		// Meals per living creature per window
		perCreature := float64(w.Arrivals) / float64(w.Alive)
		forageSum += 1.0 - math.Exp(-perCreature/2.0)
	}
	if count == 0 {
		return 0
	}

	stabilityScore := 0.0
	if len(plants) >= 2 {
		mean, std := stat.MeanStdDev(plants, nil)
		if mean > 0 {
			cv := std / mean
			stabilityScore = math.Exp(-cv * cv)
		}
	}

	quality := qualityWeightEnergy*energySum/float64(count) +
		qualityWeightStability*stabilityScore +
		qualityWeightForaging*forageSum/float64(count)

	return min(max(quality, 0), 1)
}
