package components

// State is a creature's behavior state. Exactly one is active at a time.
type State uint8

const (
	StateIdle      State = iota // Waiting for a target or resting
	StateRunning                // Heading toward Target
	StateEating                 // Stationary, wait timer armed
	StateDrinking               // Stationary, wait timer armed
	StateAttacking              // Reserved
	StateDead                   // Terminal
)

// String returns the display name for a State.
func (s State) String() string {
	names := StateNames()
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// StateNames returns the display names for all states.
// The order matches the State constants.
func StateNames() []string {
	return []string{"Idle", "Running", "Eating", "Drinking", "Attacking", "Dead"}
}

// StateCount returns the number of states.
func StateCount() int {
	return len(StateNames())
}

// Waits reports whether entering s arms a wait timer.
func (s State) Waits() bool {
	return s == StateEating || s == StateDrinking
}

// AnimationSlot is the logical clip a renderer plays for a state.
type AnimationSlot uint8

const (
	SlotIdle AnimationSlot = iota
	SlotRunning
	SlotEating
	SlotFallback
)

// String returns the display name for an AnimationSlot.
func (a AnimationSlot) String() string {
	switch a {
	case SlotIdle:
		return "Idle"
	case SlotRunning:
		return "Running"
	case SlotEating:
		return "Eating"
	default:
		return "Fallback"
	}
}

// Slot maps a state to its animation slot.
func (s State) Slot() AnimationSlot {
	switch s {
	case StateIdle:
		return SlotIdle
	case StateRunning:
		return SlotRunning
	case StateEating:
		return SlotEating
	default:
		return SlotFallback
	}
}

// Alive reports whether s is any state other than Dead.
func (s State) Alive() bool {
	return s != StateDead
}
