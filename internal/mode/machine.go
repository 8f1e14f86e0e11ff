// Package mode implements the ordered-guard cycle dispatcher: the six-mode
// state machine, wired to the fault detector and pump planner, that decides
// what a single tick does. Evaluate is the whole decision; nothing in this
// package performs I/O beyond reading the inbox and writing the outbox.
package mode

import (
	"github.com/holla2040/boilerctl/internal/boilerconfig"
	"github.com/holla2040/boilerctl/internal/fault"
	"github.com/holla2040/boilerctl/internal/message"
	"github.com/holla2040/boilerctl/internal/physics"
	"github.com/holla2040/boilerctl/internal/pump"
)

// Evaluate runs one cycle's worth of guarded transitions and per-mode
// action against st, reading in and appending to out. Guards are evaluated
// in the fixed order the table specifies; later guards can override
// transitions made by earlier ones within the same cycle.
func Evaluate(cfg *boilerconfig.Config, st *State, in message.Inbox, out *message.Outbox) {
	n := cfg.PumpCount()

	if st.Mode == EmergencyStop {
		triggerEmergencyStop(st, out)
		return
	}

	if fault.TransmissionFailure(in, n) {
		triggerEmergencyStop(st, out)
		return
	}

	levelMsg, _ := in.OnlyMatch(message.KindLevel)
	steamMsg, _ := in.OnlyMatch(message.KindSteam)
	w := *levelMsg.Payload.Value
	s := *steamMsg.Payload.Value

	if r, ok := fault.FindRepair(in); ok {
		out.Send(fault.Apply(&st.Fault, r))
		// A repair only clears the one flag it names; any other
		// pre-existing fault must still keep the mode out of NORMAL, or
		// classify below would never get a chance to re-raise it.
		switch {
		case !st.Fault.AnyFault():
			st.Mode = Normal
		case st.Fault.WaterSensorFailed:
			st.Mode = Rescue
		default:
			st.Mode = Degraded
		}
	}

	switch st.Mode {
	case Normal:
		classify(cfg, st, in, out, w, s)
	case Degraded, Rescue:
		// The full pump/controller classification table only applies while
		// NORMAL is actively regulating against a predicted band; but a
		// sensor can still go physically out of range while already
		// degraded or rescuing, and that must still be caught so the
		// imminent-failure guard below can see it.
		checkNewSensorFaults(cfg, st, out, w, s)
	}

	effectiveWater := w
	if st.Fault.WaterSensorFailed {
		effectiveWater = st.LastWater
	}
	if fault.ImminentFailure(st.Fault.WaterSensorFailed, st.Fault.SteamSensorFailed,
		effectiveWater, cfg.MinSafe, cfg.MaxSafe, st.Mode == Waiting, st.HeaterOn) {
		triggerEmergencyStop(st, out)
		return
	}

	switch st.Mode {
	case Waiting:
		runWaiting(cfg, st, in, out, w, s)
	case Ready:
		runReady(st, in, out)
	case Normal:
		runNormal(cfg, st, out, w, s)
	case Degraded:
		runDegraded(cfg, st, out, w, s)
	case Rescue:
		runRescue(cfg, st, out, s)
	}

	if st.Mode != EmergencyStop {
		if !st.Fault.WaterSensorFailed {
			st.LastWater = w
		}
		if !st.Fault.SteamSensorFailed {
			st.LastSteam = s
		}
	}
}

// classify runs the pump/controller fault classification table against the
// last commanded state, followed by the steam- and water-sensor failure
// predicates. Only the first fault found in the scan is acted on, per
// §4.3's "one fault message per tick" rule.
func classify(cfg *boilerconfig.Config, st *State, in message.Inbox, out *message.Outbox, w, s float64) {
	n := cfg.PumpCount()
	// A zero-value band means the planner hasn't predicted one yet (the
	// first classification after entering NORMAL): treat the reading as
	// within band rather than falsely blaming the water sensor or a pump.
	within := (st.WMinBand == 0 && st.WMaxBand == 0) || physics.WithinBand(w, st.WMinBand, st.WMaxBand, 0.8, 1.2)

	reportedPump := make([]bool, n)
	reportedCtrl := make([]bool, n)
	for _, m := range in.AllMatches(message.KindPumpState) {
		reportedPump[*m.Payload.Index] = *m.Payload.On
	}
	for _, m := range in.AllMatches(message.KindPumpControlState) {
		reportedCtrl[*m.Payload.Index] = *m.Payload.On
	}

	found := false
	for i := 0; i < n && !found; i++ {
		switch fault.ClassifyPump(reportedPump[i], reportedCtrl[i], st.PumpCommanded[i], within) {
		case fault.PumpBroken:
			st.Fault.PumpFailed[i] = true
			out.Send(message.PumpFailureDetection(i))
			found = true
		case fault.CtrlLied:
			st.Fault.CtrlFailed[i] = true
			out.Send(message.PumpControlFailureDetection(i))
			found = true
		}
	}

	if !found && fault.SteamSensorFailed(s, st.LastSteam, cfg.MaxSteam) {
		st.Fault.SteamSensorFailed = true
		out.Send(message.SteamFailureDetection())
		found = true
	}

	if found {
		st.Mode = Degraded
		return
	}

	explained := st.Fault.NonSensorFault()
	if fault.WaterSensorFailed(w, cfg.Capacity, within, st.HeaterOn, explained) {
		st.Fault.WaterSensorFailed = true
		out.Send(message.LevelFailureDetection())
		st.Mode = Rescue
	}
}

// checkNewSensorFaults catches a sensor going physically out of range while
// the controller is already DEGRADED or RESCUE-ing, where the NORMAL-only
// predicted-band classification table in classify doesn't run. It only sets
// flags and emits detection messages; it never transitions the mode itself
// (the guard table defines transitions out of NORMAL, not out of DEGRADED or
// RESCUE) — the imminent-failure guard that follows will force EMERGENCY_STOP
// once both sensors are down, which is the only transition this situation
// requires.
func checkNewSensorFaults(cfg *boilerconfig.Config, st *State, out *message.Outbox, w, s float64) {
	if !st.Fault.SteamSensorFailed && fault.SteamSensorFailed(s, st.LastSteam, cfg.MaxSteam) {
		st.Fault.SteamSensorFailed = true
		out.Send(message.SteamFailureDetection())
	}
	if !st.Fault.WaterSensorFailed && (w < 0 || w > cfg.Capacity) {
		st.Fault.WaterSensorFailed = true
		out.Send(message.LevelFailureDetection())
	}
}

func runWaiting(cfg *boilerconfig.Config, st *State, in message.Inbox, out *message.Outbox, w, s float64) {
	out.Send(message.ModeMsg(st.Mode.ToMessage()))

	_, waiting := in.OnlyMatch(message.KindBoilerWaiting)
	sensorFault := st.Fault.WaterSensorFailed || st.Fault.SteamSensorFailed

	switch {
	case waiting && s == 0 && !sensorFault:
		switch {
		case w < cfg.MinNormal:
			plan := planCount(cfg, st, w, s)
			applyPlan(cfg, st, out, plan)
		case w > cfg.MaxNormal:
			openValve(st, out)
		}
		if w > cfg.MinNormal && w < cfg.MaxNormal {
			st.Mode = Ready
		}
	case s != 0 || sensorFault:
		triggerEmergencyStop(st, out)
	}
}

func runReady(st *State, in message.Inbox, out *message.Outbox) {
	out.Send(message.ProgramReady())
	if _, ok := in.OnlyMatch(message.KindPhysicalUnitsReady); ok {
		st.HeaterOn = true
		st.Mode = Normal
		// The last prediction may date from a WAITING fill several ticks
		// ago; clear it so classify's zero-band rule covers the first
		// NORMAL tick.
		st.WMinBand, st.WMaxBand = 0, 0
		out.Send(message.ModeMsg(st.Mode.ToMessage()))
	}
}

func runNormal(cfg *boilerconfig.Config, st *State, out *message.Outbox, w, s float64) {
	out.Send(message.ModeMsg(st.Mode.ToMessage()))
	plan := planCount(cfg, st, w, s)
	applyPlan(cfg, st, out, plan)
}

func runDegraded(cfg *boilerconfig.Config, st *State, out *message.Outbox, w, s float64) {
	out.Send(message.ModeMsg(st.Mode.ToMessage()))
	sForPlan := s
	if st.Fault.SteamSensorFailed {
		sForPlan = physics.EstimateSteam(st.LastWater, w, cfg.Period().Seconds(), openThroughput(cfg, st.PumpOpen), cfg.MaxSteam)
	}
	plan := planCount(cfg, st, w, sForPlan)
	applyPlan(cfg, st, out, plan)
}

func runRescue(cfg *boilerconfig.Config, st *State, out *message.Outbox, s float64) {
	out.Send(message.ModeMsg(st.Mode.ToMessage()))
	plan := planCount(cfg, st, st.LastWater, s)
	applyPlan(cfg, st, out, plan)
	st.LastWater = physics.EstimateWater(st.LastWater, s, cfg.Period().Seconds(), openThroughput(cfg, st.PumpOpen))
}

func planCount(cfg *boilerconfig.Config, st *State, w, s float64) pump.Plan {
	return pump.ChooseCount(w, s, cfg.MinNormal, cfg.MaxNormal, cfg.MaxSteam,
		cfg.Period().Seconds(), availableThroughput(cfg, st.Fault.PumpFailed))
}

func applyPlan(cfg *boilerconfig.Config, st *State, out *message.Outbox, plan pump.Plan) {
	toOpen, toClose := pump.Select(st.PumpOpen, st.Fault.PumpFailed, plan.Count)
	for _, i := range toOpen {
		st.PumpOpen[i] = true
		st.PumpCommanded[i] = true
		out.Send(message.OpenPump(i))
	}
	for _, i := range toClose {
		st.PumpOpen[i] = false
		st.PumpCommanded[i] = false
		out.Send(message.ClosePump(i))
	}
	st.WMinBand = plan.MinBand
	st.WMaxBand = plan.MaxBand
}

func openValve(st *State, out *message.Outbox) {
	if !st.Emptying {
		out.Send(message.Valve())
		st.Emptying = true
	}
}

func closeAllPumps(st *State, out *message.Outbox) {
	for i, open := range st.PumpOpen {
		if open {
			st.PumpOpen[i] = false
			out.Send(message.ClosePump(i))
		}
		st.PumpCommanded[i] = false
	}
}

func triggerEmergencyStop(st *State, out *message.Outbox) {
	st.Mode = EmergencyStop
	st.HeaterOn = false
	closeAllPumps(st, out)
	openValve(st, out)
	for i := 0; i < 3; i++ {
		out.Send(message.ModeMsg(st.Mode.ToMessage()))
	}
}

func availableThroughput(cfg *boilerconfig.Config, failed []bool) []float64 {
	out := make([]float64, 0, cfg.PumpCount())
	for i := 0; i < cfg.PumpCount(); i++ {
		if !failed[i] {
			out = append(out, cfg.Throughput(i))
		}
	}
	return out
}

func openThroughput(cfg *boilerconfig.Config, open []bool) float64 {
	total := 0.0
	for i, o := range open {
		if o {
			total += cfg.Throughput(i)
		}
	}
	return total
}
