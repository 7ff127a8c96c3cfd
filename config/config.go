// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Stage     StageConfig     `yaml:"stage"`
	Creatures CreaturesConfig `yaml:"creatures"`
	Vitality  VitalityConfig  `yaml:"vitality"`
	Timers    TimersConfig    `yaml:"timers"`
	Foraging  ForagingConfig  `yaml:"foraging"`
	Health    HealthConfig    `yaml:"health"`
	Resource  ResourceConfig  `yaml:"resource"`
	Parallel  ParallelConfig  `yaml:"parallel"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the graphical front-end.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds the fixed simulation step.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // seconds per tick
}

// StageConfig holds the bounded area the creatures live in.
// The stage is a square on the XZ plane from (0,0) to (Size,Size).
type StageConfig struct {
	Size float64 `yaml:"size"`
}

// CreaturesConfig holds creature roster and movement parameters.
type CreaturesConfig struct {
	Species       []string `yaml:"species"`
	PerSpecies    int      `yaml:"per_species"`
	BaseVelocity  float64  `yaml:"base_velocity"`  // world units per second at full energy
	ArrivalRadius float64  `yaml:"arrival_radius"` // distance at which a target counts as reached
}

// VitalityConfig holds per-activity rate constants (per second).
type VitalityConfig struct {
	RunEnergyDrain  float64 `yaml:"run_energy_drain"`
	RunHungerDrain  float64 `yaml:"run_hunger_drain"`
	RunThirstDrain  float64 `yaml:"run_thirst_drain"`
	EatEnergyGain   float64 `yaml:"eat_energy_gain"`
	EatDuration     float64 `yaml:"eat_duration"` // hunger consumed per second of eating
	DrinkEnergyGain float64 `yaml:"drink_energy_gain"`
	DrinkDuration   float64 `yaml:"drink_duration"` // thirst consumed per second of drinking
	RestEnergyGain  float64 `yaml:"rest_energy_gain"`
}

// TimersConfig holds wait timer durations in seconds.
type TimersConfig struct {
	EatWait   float64 `yaml:"eat_wait"`
	DrinkWait float64 `yaml:"drink_wait"`
	RestWait  float64 `yaml:"rest_wait"`
}

// ForagingConfig holds target acquisition parameters.
type ForagingConfig struct {
	PClosest          float64 `yaml:"p_closest"`           // probability of the nearest-plant scan
	ConsumedEpsilonSq float64 `yaml:"consumed_epsilon_sq"` // squared distance at which a plant matches a target
}

// HealthConfig holds health depletion rule parameters.
type HealthConfig struct {
	ExhaustionDamage  float64 `yaml:"exhaustion_damage"`  // health lost per second at zero energy (0 = off)
	DehydrationDamage float64 `yaml:"dehydration_damage"` // health lost per second at zero thirst (0 = off)
}

// ResourceConfig holds plant population parameters.
type ResourceConfig struct {
	InitialCount    int      `yaml:"initial_count"`
	RespawnInterval float64  `yaml:"respawn_interval"` // seconds between spawner firings
	Variants        []string `yaml:"variants"`
}

// ParallelConfig holds motion phase parallelism parameters.
type ParallelConfig struct {
	Threshold int `yaml:"threshold"` // minimum live creatures before fanning out
	Workers   int `yaml:"workers"`   // 0 = GOMAXPROCS
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ArrivalRadiusSq float64        // Creatures.ArrivalRadius squared
	TicksPerSecond  float64        // 1 / Physics.DT
	VariantIndex    map[string]int // name -> index for variant lookup
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.RefreshDerived()

	return cfg, nil
}

// Validate checks that all values are usable by the simulation.
func (c *Config) Validate() error {
	switch {
	case c.Physics.DT <= 0:
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	case c.Stage.Size <= 0:
		return fmt.Errorf("stage.size must be positive, got %v", c.Stage.Size)
	case c.Creatures.BaseVelocity < 0:
		return fmt.Errorf("creatures.base_velocity must not be negative, got %v", c.Creatures.BaseVelocity)
	case c.Creatures.ArrivalRadius <= 0:
		return fmt.Errorf("creatures.arrival_radius must be positive, got %v", c.Creatures.ArrivalRadius)
	case c.Foraging.PClosest < 0 || c.Foraging.PClosest > 1:
		return fmt.Errorf("foraging.p_closest must be in [0,1], got %v", c.Foraging.PClosest)
	case c.Resource.RespawnInterval <= 0:
		return fmt.Errorf("resource.respawn_interval must be positive, got %v", c.Resource.RespawnInterval)
	case c.Resource.InitialCount < 0:
		return fmt.Errorf("resource.initial_count must not be negative, got %d", c.Resource.InitialCount)
	case len(c.Resource.Variants) == 0:
		return fmt.Errorf("resource.variants must list at least one variant")
	case c.Timers.EatWait < 0 || c.Timers.DrinkWait < 0:
		return fmt.Errorf("timers must not be negative")
	case c.Timers.RestWait <= 0:
		return fmt.Errorf("timers.rest_wait must be positive, got %v", c.Timers.RestWait)
	case c.Health.ExhaustionDamage < 0 || c.Health.DehydrationDamage < 0:
		return fmt.Errorf("health damage rates must not be negative")
	case c.Creatures.PerSpecies < 0:
		return fmt.Errorf("creatures.per_species must not be negative, got %d", c.Creatures.PerSpecies)
	}
	return c.Vitality.validate()
}

func (v VitalityConfig) validate() error {
	rates := []struct {
		name  string
		value float64
	}{
		{"run_energy_drain", v.RunEnergyDrain},
		{"run_hunger_drain", v.RunHungerDrain},
		{"run_thirst_drain", v.RunThirstDrain},
		{"eat_energy_gain", v.EatEnergyGain},
		{"eat_duration", v.EatDuration},
		{"drink_energy_gain", v.DrinkEnergyGain},
		{"drink_duration", v.DrinkDuration},
		{"rest_energy_gain", v.RestEnergyGain},
	}
	for _, r := range rates {
		if r.value < 0 {
			return fmt.Errorf("vitality.%s must not be negative, got %v", r.name, r.value)
		}
	}
	return nil
}

// RefreshDerived recomputes Derived. Call it after editing a loaded config.
func (c *Config) RefreshDerived() {
	c.Derived.ArrivalRadiusSq = c.Creatures.ArrivalRadius * c.Creatures.ArrivalRadius
	c.Derived.TicksPerSecond = 1 / c.Physics.DT

	c.Derived.VariantIndex = make(map[string]int, len(c.Resource.Variants))
	for i, v := range c.Resource.Variants {
		c.Derived.VariantIndex[v] = i
	}
}

// Clone returns a deep copy, used when tuning parameters per evaluation.
func (c *Config) Clone() *Config {
	out := *c
	out.Creatures.Species = append([]string(nil), c.Creatures.Species...)
	out.Resource.Variants = append([]string(nil), c.Resource.Variants...)
	out.RefreshDerived()
	return &out
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
