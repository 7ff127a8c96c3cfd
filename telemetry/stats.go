package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Alive    int `csv:"alive"`
	Idle     int `csv:"idle"`
	Running  int `csv:"running"`
	Eating   int `csv:"eating"`
	Drinking int `csv:"drinking"`
	Dead     int `csv:"dead"`
	Plants   int `csv:"plants"`

	// Foraging during window
	AcquiredNearest int     `csv:"acquired_nearest"`
	AcquiredRandom  int     `csv:"acquired_random"`
	NearestShare    float64 `csv:"nearest_share"`
	Retries         int     `csv:"retries"`
	Arrivals        int     `csv:"arrivals"`

	// Plant turnover during window
	PlantsSpawned  int `csv:"plants_spawned"`
	PlantsConsumed int `csv:"plants_consumed"`
	StaleRemoved   int `csv:"stale_removed"`
	PlantsRemoved  int `csv:"plants_removed"`

	// Vitality transitions during window
	Exhaustions int `csv:"exhaustions"`
	Deaths      int `csv:"deaths"`

	// Vitality distribution over living creatures (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`
	HungerMean float64 `csv:"hunger_mean"`
	ThirstMean float64 `csv:"thirst_mean"`
	HealthMean float64 `csv:"health_mean"`
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeDistribution returns mean, standard deviation and empirical
// quantiles of values. An empty sample yields zeros.
func ComputeDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var d Distribution
	if len(sorted) > 1 {
		d.Mean, d.Std = stat.MeanStdDev(sorted, nil)
	} else {
		d.Mean = sorted[0]
	}
	d.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	d.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	d.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("alive", s.Alive),
		slog.Int("idle", s.Idle),
		slog.Int("running", s.Running),
		slog.Int("eating", s.Eating),
		slog.Int("drinking", s.Drinking),
		slog.Int("dead", s.Dead),
		slog.Int("plants", s.Plants),
		slog.Int("acquired_nearest", s.AcquiredNearest),
		slog.Int("acquired_random", s.AcquiredRandom),
		slog.Float64("nearest_share", s.NearestShare),
		slog.Int("retries", s.Retries),
		slog.Int("arrivals", s.Arrivals),
		slog.Int("plants_spawned", s.PlantsSpawned),
		slog.Int("plants_consumed", s.PlantsConsumed),
		slog.Int("stale_removed", s.StaleRemoved),
		slog.Int("plants_removed", s.PlantsRemoved),
		slog.Int("exhaustions", s.Exhaustions),
		slog.Int("deaths", s.Deaths),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("hunger_mean", s.HungerMean),
		slog.Float64("thirst_mean", s.ThirstMean),
		slog.Float64("health_mean", s.HealthMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
