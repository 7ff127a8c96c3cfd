package telemetry

import (
	"testing"

	"github.com/lemilonkh/ecolia/components"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0, 0.1)

	if c.WindowDurationTicks() != 10 {
		t.Fatalf("window = %d ticks, want 10", c.WindowDurationTicks())
	}
	if c.ShouldFlush(9) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(10) {
		t.Error("should flush at the window end")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0, 0.1)
	for i := 0; i < 6; i++ {
		c.RecordAcquisition(true)
	}
	for i := 0; i < 4; i++ {
		c.RecordAcquisition(false)
	}
	c.RecordArrival()
	c.RecordConsumed()
	c.RecordSpawned(3)
	c.RecordStaleRemoved(2)
	c.RecordRemoved()
	c.RecordDeath()

	var snap Snapshot
	snap.SimTime = 1.0
	snap.States[components.StateRunning] = 4
	snap.States[components.StateEating] = 1
	snap.States[components.StateDead] = 1
	snap.Plants = 21
	snap.Energies = []float64{0.2, 0.4}

	s := c.Flush(10, snap)

	if s.Alive != 5 || s.Dead != 1 || s.Running != 4 {
		t.Errorf("unexpected population: %+v", s)
	}
	if s.NearestShare != 0.6 {
		t.Errorf("nearest share = %v, want 0.6", s.NearestShare)
	}
	if s.PlantsSpawned != 3 || s.PlantsConsumed != 1 || s.StaleRemoved != 2 || s.PlantsRemoved != 1 || s.Deaths != 1 {
		t.Errorf("unexpected events: %+v", s)
	}
	if s.SimTimeSec != 1.0 {
		t.Errorf("sim time = %v, want 1.0", s.SimTimeSec)
	}

	next := c.Flush(20, Snapshot{})
	if next.WindowStartTick != 10 || next.AcquiredNearest != 0 || next.PlantsRemoved != 0 || next.Deaths != 0 {
		t.Errorf("counters should reset after flush: %+v", next)
	}
}

func TestCollectorSimTimeFromSnapshot(t *testing.T) {
	c := NewCollector(1.0, 0.1)

	// Ticks of varying length: the window reports elapsed time, not ticks*dt
	s := c.Flush(10, Snapshot{SimTime: 2.75})
	if s.SimTimeSec != 2.75 {
		t.Errorf("sim time = %v, want 2.75", s.SimTimeSec)
	}
}
