package systems

import (
	"github.com/lemilonkh/ecolia/components"
	"github.com/lemilonkh/ecolia/config"
)

// HealthRule decides how much health a creature loses in one step.
type HealthRule interface {
	Damage(v components.Vitality, s components.State, dt float64) float64
}

// ExhaustionRule drains health while energy sits at zero.
type ExhaustionRule struct {
	Rate float64 // health per second
}

func (r ExhaustionRule) Damage(v components.Vitality, _ components.State, dt float64) float64 {
	if v.Energy() > 0 {
		return 0
	}
	return r.Rate * dt
}

// DehydrationRule drains health while thirst sits at zero.
type DehydrationRule struct {
	Rate float64 // health per second
}

func (r DehydrationRule) Damage(v components.Vitality, _ components.State, dt float64) float64 {
	if v.Thirst() > 0 {
		return 0
	}
	return r.Rate * dt
}

// HealthRules applies several rules in order.
type HealthRules []HealthRule

// NewHealthRules builds the enabled rules from config.
// A rule with a zero rate is left out.
func NewHealthRules(cfg config.HealthConfig) HealthRules {
	var rules HealthRules
	if cfg.ExhaustionDamage > 0 {
		rules = append(rules, ExhaustionRule{Rate: cfg.ExhaustionDamage})
	}
	if cfg.DehydrationDamage > 0 {
		rules = append(rules, DehydrationRule{Rate: cfg.DehydrationDamage})
	}
	return rules
}

// Apply sums the damage of every rule into v and reports whether health hit zero.
func (rs HealthRules) Apply(v *components.Vitality, s components.State, dt float64) bool {
	var total float64
	for _, r := range rs {
		total += r.Damage(*v, s, dt)
	}
	if total == 0 {
		return v.Health() == 0
	}
	return v.ApplyDamage(total)
}
