package sim

import (
	"runtime"

	"github.com/mlange-42/ark/ecs"
	"golang.org/x/sync/errgroup"

	"github.com/lemilonkh/ecolia/components"
	"github.com/lemilonkh/ecolia/config"
	"github.com/lemilonkh/ecolia/systems"
)

// motionJob captures one creature's state for the motion phase.
type motionJob struct {
	Entity  ecs.Entity
	State   systems.MotionState
	Outcome systems.Outcome
}

// parallelState holds buffers reused across ticks.
type parallelState struct {
	jobs       []motionJob
	threshold  int
	numWorkers int
}

func newParallelState(cfg config.ParallelConfig) *parallelState {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &parallelState{
		jobs:       make([]motionJob, 0, 64),
		threshold:  cfg.Threshold,
		numWorkers: workers,
	}
}

// updateMotion integrates position and vitality for every living creature.
// Each creature only touches its own copy, so the compute step may fan out;
// results are written back in spawn order.
func (s *Simulation) updateMotion(dt float64) {
	p := s.parallel

	// Phase A: snapshot (single-threaded)
	p.jobs = p.jobs[:0]
	for _, e := range s.creatures {
		tr, vel, vit, beh, _, _, _ := s.creatureMapper.Get(e)
		if beh.State == components.StateDead {
			continue
		}
		p.jobs = append(p.jobs, motionJob{
			Entity: e,
			State: systems.MotionState{
				Transform: *tr,
				Velocity:  *vel,
				Vitality:  *vit,
				Behavior:  *beh,
			},
		})
	}

	n := len(p.jobs)
	if n == 0 {
		return
	}

	// Phase B: compute
	if n < p.threshold || p.numWorkers < 2 {
		s.computeChunk(0, n, dt)
	} else {
		s.computeParallel(n, dt)
	}

	// Phase C: apply (single-threaded, preserves determinism)
	for i := range p.jobs {
		job := &p.jobs[i]
		tr, vel, vit, beh, _, cr, _ := s.creatureMapper.Get(job.Entity)
		*tr = job.State.Transform
		*vel = job.State.Velocity
		*vit = job.State.Vitality
		*beh = job.State.Behavior
		s.recordOutcome(cr, job.Outcome)
	}
}

// computeParallel splits the jobs into one chunk per worker.
func (s *Simulation) computeParallel(n int, dt float64) {
	workers := s.parallel.numWorkers
	chunkSize := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			s.computeChunk(start, end, dt)
			return nil
		})
	}
	_ = g.Wait()
}

// computeChunk advances jobs [i0, i1).
func (s *Simulation) computeChunk(i0, i1 int, dt float64) {
	for i := i0; i < i1; i++ {
		job := &s.parallel.jobs[i]
		job.Outcome = systems.Advance(&job.State, s.params, s.rules, dt)
	}
}
