package sim

import (
	"log/slog"

	"github.com/lemilonkh/ecolia/telemetry"
)

// flushTelemetry closes the current stats window once enough ticks passed.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}

	stats := s.collector.Flush(s.tick, s.sample())

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}
	if s.logStats {
		stats.LogStats()
	}

	if s.output != nil {
		if err := s.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := s.output.WritePerf(s.perf.Stats(), s.tick); err != nil {
			slog.Error("failed to write perf stats", "error", err)
		}
	}
}

// sample gathers state counts and vitality levels of living creatures.
func (s *Simulation) sample() telemetry.Snapshot {
	snap := telemetry.Snapshot{SimTime: s.elapsed, Plants: s.field.Count()}
	for _, e := range s.creatures {
		_, _, vit, beh, _, _, _ := s.creatureMapper.Get(e)
		snap.States[beh.State]++
		if beh.State.Alive() {
			snap.Energies = append(snap.Energies, vit.Energy())
			snap.Hungers = append(snap.Hungers, vit.Hunger())
			snap.Thirsts = append(snap.Thirsts, vit.Thirst())
			snap.Healths = append(snap.Healths, vit.Health())
		}
	}
	return snap
}
