// Package fault implements the failure/repair detector: transmission-failure
// checking, pump/controller/sensor fault classification, the imminent-failure
// predicate, and repair-acknowledgement dispatch. It keeps the primitive
// fault flags as the single source of truth — the mode state machine derives
// its mode from these flags rather than mirroring them.
package fault

// State holds every orthogonal fault flag the detector tracks. The per-pump
// slices are indexed the same way as the plant's pump indices.
type State struct {
	WaterSensorFailed bool
	SteamSensorFailed bool
	PumpFailed        []bool
	CtrlFailed        []bool
}

// NewState returns a clean State for n pumps, all flags clear.
func NewState(n int) State {
	return State{
		PumpFailed: make([]bool, n),
		CtrlFailed: make([]bool, n),
	}
}

// AnyFault reports whether any fault flag — sensor or per-pump — is set.
func (s State) AnyFault() bool {
	if s.WaterSensorFailed || s.SteamSensorFailed {
		return true
	}
	for i := range s.PumpFailed {
		if s.PumpFailed[i] || s.CtrlFailed[i] {
			return true
		}
	}
	return false
}

// NonSensorFault reports whether any pump or controller fault is set,
// ignoring the two sensor flags — used by the mode machine to decide whether
// a pump/controller fault already explains an out-of-band water reading.
func (s State) NonSensorFault() bool {
	for i := range s.PumpFailed {
		if s.PumpFailed[i] || s.CtrlFailed[i] {
			return true
		}
	}
	return false
}
