// Package message defines the tagged messages exchanged between the boiler
// controller and the plant each cycle, plus the mailbox helpers the decision
// engine uses to read and write them.
package message

// Kind tags a Message with the semantics of its Param.
type Kind string

// Plant -> controller message kinds.
const (
	KindLevel              Kind = "LEVEL_v"
	KindSteam              Kind = "STEAM_v"
	KindPumpState          Kind = "PUMP_STATE_n_b"
	KindPumpControlState   Kind = "PUMP_CONTROL_STATE_n_b"
	KindBoilerWaiting      Kind = "STEAM_BOILER_WAITING"
	KindPhysicalUnitsReady Kind = "PHYSICAL_UNITS_READY"
	KindPumpRepaired       Kind = "PUMP_REPAIRED_n"
	KindPumpControlRepaired Kind = "PUMP_CONTROL_REPAIRED_n"
	KindLevelRepaired      Kind = "LEVEL_REPAIRED"
	KindSteamRepaired      Kind = "STEAM_REPAIRED"
)

// Controller -> plant message kinds.
const (
	KindMode                         Kind = "MODE_m"
	KindProgramReady                 Kind = "PROGRAM_READY"
	KindOpenPump                     Kind = "OPEN_PUMP_n"
	KindClosePump                    Kind = "CLOSE_PUMP_n"
	KindValve                        Kind = "VALVE"
	KindPumpFailureDetection         Kind = "PUMP_FAILURE_DETECTION_n"
	KindPumpControlFailureDetection  Kind = "PUMP_CONTROL_FAILURE_DETECTION_n"
	KindSteamFailureDetection        Kind = "STEAM_FAILURE_DETECTION"
	KindLevelFailureDetection        Kind = "LEVEL_FAILURE_DETECTION"
	KindPumpRepairedAck              Kind = "PUMP_REPAIRED_ACKNOWLEDGEMENT_n"
	KindPumpControlRepairedAck       Kind = "PUMP_CONTROL_REPAIRED_ACKNOWLEDGEMENT_n"
	KindSteamRepairedAck             Kind = "STEAM_REPAIRED_ACKNOWLEDGEMENT"
	KindLevelRepairedAck             Kind = "LEVEL_REPAIRED_ACKNOWLEDGEMENT"
)

// Mode mirrors mode.Mode without creating an import cycle between message and
// mode; mode.Mode converts to this type with its ToMessage method.
type Mode string

const (
	ModeInitialisation  Mode = "INITIALISATION"
	ModeReady           Mode = "READY"
	ModeNormal          Mode = "NORMAL"
	ModeDegraded        Mode = "DEGRADED"
	ModeRescue          Mode = "RESCUE"
	ModeEmergencyStop   Mode = "EMERGENCY_STOP"
)
