package mode

import "github.com/holla2040/boilerctl/internal/fault"

// State is the controller's complete persistent state, carried across
// cycles for the lifetime of the process. It is mutated only inside
// Evaluate; nothing else touches it concurrently.
type State struct {
	Mode Mode

	LastWater float64
	LastSteam float64

	HeaterOn bool
	Emptying bool

	PumpOpen      []bool
	PumpCommanded []bool

	WMinBand float64
	WMaxBand float64

	Fault fault.State
}

// NewState returns a fresh State for n pumps, in mode WAITING.
func NewState(n int) *State {
	return &State{
		Mode:          Waiting,
		PumpOpen:      make([]bool, n),
		PumpCommanded: make([]bool, n),
		Fault:         fault.NewState(n),
	}
}
