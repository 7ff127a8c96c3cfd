package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_PhasesTracked(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseDecision)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseMotion)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	for _, phase := range []string{PhaseDecision, PhaseMotion} {
		if stats.PhaseAvg[phase] <= 0 {
			t.Errorf("expected %s phase to be tracked", phase)
		}
	}
	if _, ok := stats.PhaseAvg[PhaseSpawner]; ok {
		t.Error("spawner phase never ran and should be absent")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 12; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSpawner)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v > max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()

	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("empty collector should report zeros, got %+v", stats)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("maps should be initialized")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 2 * time.Millisecond,
		PhasePct:        map[string]float64{PhaseMotion: 40, PhaseDecision: 55},
	}

	row := s.ToCSV(120)

	if row.WindowEnd != 120 || row.AvgTickUS != 2000 {
		t.Errorf("unexpected row header fields: %+v", row)
	}
	if row.MotionPct != 40 || row.DecisionPct != 55 || row.SpawnerPct != 0 {
		t.Errorf("unexpected phase shares: %+v", row)
	}
}
