package fault

import "github.com/holla2040/boilerctl/internal/message"

// PumpDiagnosis names which component a pump's fault classification blames.
type PumpDiagnosis int

const (
	Healthy PumpDiagnosis = iota
	CtrlLied
	PumpBroken
)

// ClassifyPump implements the §4.3 classification table: compare what the
// pump and its controller reported against what the controller last
// commanded, and whether the water reading currently falls within the
// predicted band.
func ClassifyPump(pumpReported, ctrlReported, commanded, within bool) PumpDiagnosis {
	pumpMatches := pumpReported == commanded
	ctrlMatches := ctrlReported == commanded

	switch {
	case pumpMatches && ctrlMatches:
		return Healthy
	case pumpMatches && !ctrlMatches && within:
		return CtrlLied
	default:
		// pump == commanded but water out of band (controller lied
		// coincidentally, pump actually failed), or pump != commanded
		// regardless of what the controller said: both cases blame the pump.
		return PumpBroken
	}
}

// SteamSensorFailed implements §4.3's steam sensor failure predicate: an
// out-of-range reading, or a reading that decreased since last tick (steam
// production cannot physically drop within a single period).
func SteamSensorFailed(s, lastSteam, maxSteam float64) bool {
	return s < 0 || s > maxSteam || s < lastSteam
}

// WaterSensorFailed implements §4.3's water sensor failure predicate: an
// out-of-range reading, or — while the boiler is heating and no pump/
// controller fault already explains it — a reading outside the predicted
// band.
func WaterSensorFailed(w, capacity float64, withinPredictedBand, heaterOn, explainedByPumpFault bool) bool {
	if w < 0 || w > capacity {
		return true
	}
	return heaterOn && !withinPredictedBand && !explainedByPumpFault
}

// ImminentFailure implements §4.3's imminent-failure predicate that forces
// EMERGENCY_STOP. effectiveWater is lastWater when the level sensor has
// failed, or the current reading otherwise.
func ImminentFailure(waterSensorFailed, steamSensorFailed bool, effectiveWater, safeLo, safeHi float64, isWaiting, heaterOn bool) bool {
	if waterSensorFailed && steamSensorFailed {
		return true
	}
	if effectiveWater > safeHi && !isWaiting {
		return true
	}
	if effectiveWater < safeLo && heaterOn {
		return true
	}
	return false
}

// TransmissionFailure implements §4.3's transmission-failure check: any
// missing/duplicated sensor message, or a pump/controller-state message
// count that doesn't match n, is fatal for the tick.
func TransmissionFailure(in message.Inbox, n int) bool {
	if _, ok := in.OnlyMatch(message.KindLevel); !ok {
		return true
	}
	if _, ok := in.OnlyMatch(message.KindSteam); !ok {
		return true
	}
	if len(in.AllMatches(message.KindPumpState)) != n {
		return true
	}
	if len(in.AllMatches(message.KindPumpControlState)) != n {
		return true
	}
	return false
}

// RepairKind identifies which component a repair message names.
type RepairKind int

const (
	RepairNone RepairKind = iota
	RepairPump
	RepairController
	RepairSteam
	RepairLevel
)

// Repair is the first matching repair notification found in the inbox, in
// the priority order §4.3 specifies: pump, controller, steam, level.
type Repair struct {
	Kind  RepairKind
	Index int // meaningful only for RepairPump/RepairController
}

// FindRepair scans the inbox for the first repair message in priority
// order. Only one repair is handled per tick.
func FindRepair(in message.Inbox) (Repair, bool) {
	if msgs := in.AllMatches(message.KindPumpRepaired); len(msgs) > 0 {
		return Repair{Kind: RepairPump, Index: *msgs[0].Payload.Index}, true
	}
	if msgs := in.AllMatches(message.KindPumpControlRepaired); len(msgs) > 0 {
		return Repair{Kind: RepairController, Index: *msgs[0].Payload.Index}, true
	}
	if _, ok := in.OnlyMatch(message.KindSteamRepaired); ok {
		return Repair{Kind: RepairSteam}, true
	}
	if _, ok := in.OnlyMatch(message.KindLevelRepaired); ok {
		return Repair{Kind: RepairLevel}, true
	}
	return Repair{}, false
}

// Apply clears the flag named by a Repair and returns the acknowledgement
// message to send.
func Apply(s *State, r Repair) message.Message {
	switch r.Kind {
	case RepairPump:
		s.PumpFailed[r.Index] = false
		return message.PumpRepairedAck(r.Index)
	case RepairController:
		s.CtrlFailed[r.Index] = false
		return message.PumpControlRepairedAck(r.Index)
	case RepairSteam:
		s.SteamSensorFailed = false
		return message.SteamRepairedAck()
	case RepairLevel:
		s.WaterSensorFailed = false
		return message.LevelRepairedAck()
	default:
		return message.Message{}
	}
}
