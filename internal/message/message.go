package message

import (
	"time"

	"github.com/google/uuid"
)

// Envelope carries traceability metadata for a Message, the same shape the
// teacher's protocol package attaches to every wire message, kept here purely
// for logging/event-bus purposes — the decision engine never inspects it.
type Envelope struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
}

// NewEnvelope stamps a fresh UUIDv4 and the current UTC time.
func NewEnvelope() Envelope {
	return Envelope{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC().UnixNano(),
	}
}

// Payload holds the (at most one) typed parameter a Kind may carry.
type Payload struct {
	Index *int     `json:"index,omitempty"`
	Value *float64 `json:"value,omitempty"`
	On    *bool    `json:"on,omitempty"`
	Mode  Mode     `json:"mode,omitempty"`
}

// Message is a single tagged entry in an inbox or outbox.
type Message struct {
	Envelope Envelope `json:"envelope"`
	Kind     Kind     `json:"kind"`
	Payload  Payload  `json:"payload,omitempty"`
}

func withIndex(kind Kind, i int) Message {
	return Message{Envelope: NewEnvelope(), Kind: kind, Payload: Payload{Index: &i}}
}

func withValue(kind Kind, v float64) Message {
	return Message{Envelope: NewEnvelope(), Kind: kind, Payload: Payload{Value: &v}}
}

func withIndexBool(kind Kind, i int, on bool) Message {
	return Message{Envelope: NewEnvelope(), Kind: kind, Payload: Payload{Index: &i, On: &on}}
}

func withMode(kind Kind, m Mode) Message {
	return Message{Envelope: NewEnvelope(), Kind: kind, Payload: Payload{Mode: m}}
}

func bare(kind Kind) Message {
	return Message{Envelope: NewEnvelope(), Kind: kind}
}

// --- Plant -> controller constructors (used by tests and the plant simulator) ---

func Level(v float64) Message            { return withValue(KindLevel, v) }
func Steam(v float64) Message             { return withValue(KindSteam, v) }
func PumpState(i int, on bool) Message    { return withIndexBool(KindPumpState, i, on) }
func PumpControlState(i int, on bool) Message {
	return withIndexBool(KindPumpControlState, i, on)
}
func BoilerWaiting() Message      { return bare(KindBoilerWaiting) }
func PhysicalUnitsReady() Message { return bare(KindPhysicalUnitsReady) }
func PumpRepaired(i int) Message  { return withIndex(KindPumpRepaired, i) }
func PumpControlRepaired(i int) Message {
	return withIndex(KindPumpControlRepaired, i)
}
func LevelRepaired() Message { return bare(KindLevelRepaired) }
func SteamRepaired() Message { return bare(KindSteamRepaired) }

// --- Controller -> plant constructors ---

func ModeMsg(m Mode) Message  { return withMode(KindMode, m) }
func ProgramReady() Message   { return bare(KindProgramReady) }
func OpenPump(i int) Message  { return withIndex(KindOpenPump, i) }
func ClosePump(i int) Message { return withIndex(KindClosePump, i) }
func Valve() Message          { return bare(KindValve) }
func PumpFailureDetection(i int) Message {
	return withIndex(KindPumpFailureDetection, i)
}
func PumpControlFailureDetection(i int) Message {
	return withIndex(KindPumpControlFailureDetection, i)
}
func SteamFailureDetection() Message { return bare(KindSteamFailureDetection) }
func LevelFailureDetection() Message { return bare(KindLevelFailureDetection) }
func PumpRepairedAck(i int) Message  { return withIndex(KindPumpRepairedAck, i) }
func PumpControlRepairedAck(i int) Message {
	return withIndex(KindPumpControlRepairedAck, i)
}
func SteamRepairedAck() Message { return bare(KindSteamRepairedAck) }
func LevelRepairedAck() Message { return bare(KindLevelRepairedAck) }
