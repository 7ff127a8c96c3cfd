package systems

import "github.com/lemilonkh/ecolia/components"

// VitalityRates are per-second rate constants for each activity.
type VitalityRates struct {
	RunEnergyDrain float64
	RunHungerDrain float64
	RunThirstDrain float64

	EatEnergyGain  float64
	EatHungerDrain float64

	DrinkEnergyGain  float64
	DrinkThirstDrain float64

	RestEnergyGain float64
}

// Outcome reports a transition caused by a vitality update.
type Outcome uint8

const (
	OutcomeNone      Outcome = iota
	OutcomeExhausted         // Running -> Idle, resting
	OutcomeDied              // any -> Dead
)

// UpdateVitality applies the activity rule for the creature's current state.
// speed is the magnitude of the velocity that moved the creature this step.
// Running creatures that hit zero energy drop to Idle and rest for restWait.
func UpdateVitality(v *components.Vitality, b *components.Behavior, speed float64, r VitalityRates, restWait, dt float64) Outcome {
	switch b.State {
	case components.StateDead:
		return OutcomeNone

	case components.StateRunning:
		if speed > 0 {
			v.AddEnergy(-r.RunEnergyDrain * dt)
			v.AddHunger(-r.RunHungerDrain * dt)
			v.AddThirst(-r.RunThirstDrain * dt)
		}
		if v.Energy() == 0 {
			b.Rest(restWait)
			return OutcomeExhausted
		}

	case components.StateEating:
		v.AddEnergy(r.EatEnergyGain * dt)
		v.AddHunger(-r.EatHungerDrain * dt)

	case components.StateDrinking:
		v.AddEnergy(r.DrinkEnergyGain * dt)
		v.AddThirst(-r.DrinkThirstDrain * dt)

	case components.StateIdle:
		if b.Resting() {
			v.AddEnergy(r.RestEnergyGain * dt)
		}
	}
	return OutcomeNone
}
