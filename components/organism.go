package components

// Vitality holds the four bounded need quantities of a creature.
// Every write goes through a clamping setter so values stay in [0,1].
type Vitality struct {
	health float64
	energy float64
	hunger float64
	thirst float64
}

// NewVitality returns a vitality with each value clamped to [0,1].
func NewVitality(health, energy, hunger, thirst float64) Vitality {
	var v Vitality
	v.SetHealth(health)
	v.SetEnergy(energy)
	v.SetHunger(hunger)
	v.SetThirst(thirst)
	return v
}

// FullVitality returns a creature's starting vitality.
func FullVitality() Vitality {
	return Vitality{health: 1, energy: 1, hunger: 1, thirst: 1}
}

func (v Vitality) Health() float64 { return v.health }
func (v Vitality) Energy() float64 { return v.energy }
func (v Vitality) Hunger() float64 { return v.hunger }
func (v Vitality) Thirst() float64 { return v.thirst }

func (v *Vitality) SetHealth(x float64) { v.health = ClampUnit(x) }
func (v *Vitality) SetEnergy(x float64) { v.energy = ClampUnit(x) }
func (v *Vitality) SetHunger(x float64) { v.hunger = ClampUnit(x) }
func (v *Vitality) SetThirst(x float64) { v.thirst = ClampUnit(x) }

// AddEnergy shifts energy by d and clamps.
func (v *Vitality) AddEnergy(d float64) { v.SetEnergy(v.energy + d) }

// AddHunger shifts hunger by d and clamps.
func (v *Vitality) AddHunger(d float64) { v.SetHunger(v.hunger + d) }

// AddThirst shifts thirst by d and clamps.
func (v *Vitality) AddThirst(d float64) { v.SetThirst(v.thirst + d) }

// ApplyDamage lowers health by amount and reports whether health is now zero.
// Negative amounts heal.
func (v *Vitality) ApplyDamage(amount float64) bool {
	v.SetHealth(v.health - amount)
	return v.health == 0
}

// ClampUnit restricts x to [0,1].
func ClampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Behavior is the creature's single active state plus its wait timer.
// The timer is armed only in waiting states: Eating, Drinking, and Idle while resting.
type Behavior struct {
	State State
	Wait  WaitTimer
}

// Waiting reports whether the creature is in a stationary activity.
func (b Behavior) Waiting() bool {
	return b.Wait.Armed
}

// Resting reports whether the creature is recovering from exhaustion.
func (b Behavior) Resting() bool {
	return b.State == StateIdle && b.Wait.Armed
}

// Enter switches to s and arms the wait timer for d seconds when s waits.
// Entering a non-waiting state disarms the timer.
func (b *Behavior) Enter(s State, d float64) {
	b.State = s
	if s.Waits() {
		b.Wait.Arm(d)
	} else {
		b.Wait.Disarm()
	}
}

// Rest switches to Idle with the wait timer armed for d seconds.
func (b *Behavior) Rest(d float64) {
	b.State = StateIdle
	b.Wait.Arm(d)
}

// Die moves the creature to the terminal state.
func (b *Behavior) Die() {
	b.State = StateDead
	b.Wait.Disarm()
}

// WaitTimer is a one-shot countdown in seconds.
type WaitTimer struct {
	Remaining float64
	Armed     bool
}

// timerEpsilon absorbs float drift from repeated dt subtraction.
const timerEpsilon = 1e-9

// Arm starts the countdown.
func (t *WaitTimer) Arm(d float64) {
	t.Remaining = d
	t.Armed = true
}

// Disarm clears the countdown.
func (t *WaitTimer) Disarm() {
	t.Remaining = 0
	t.Armed = false
}

// Tick advances the countdown and reports whether it has expired.
// An expired timer stays armed at zero until disarmed.
func (t *WaitTimer) Tick(dt float64) bool {
	if !t.Armed {
		return false
	}
	t.Remaining -= dt
	if t.Remaining <= timerEpsilon {
		t.Remaining = 0
		return true
	}
	return false
}
