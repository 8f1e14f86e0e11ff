package fault

import (
	"testing"

	"github.com/holla2040/boilerctl/internal/message"
)

func TestClassifyPumpHealthy(t *testing.T) {
	if got := ClassifyPump(true, true, true, true); got != Healthy {
		t.Errorf("ClassifyPump() = %v, want Healthy", got)
	}
	if got := ClassifyPump(false, false, false, true); got != Healthy {
		t.Errorf("ClassifyPump() = %v, want Healthy", got)
	}
}

func TestClassifyPumpCtrlLied(t *testing.T) {
	// Pump did what was commanded, controller reported otherwise, water
	// still within the predicted band: the controller's report was wrong.
	got := ClassifyPump(true, false, true, true)
	if got != CtrlLied {
		t.Errorf("ClassifyPump() = %v, want CtrlLied", got)
	}
}

func TestClassifyPumpBrokenWhenOutOfBandDespiteMatch(t *testing.T) {
	// Pump matches commanded but its controller does not, and water has
	// drifted out of the predicted band: the pump must actually be
	// malfunctioning and the controller's divergence is coincidental.
	got := ClassifyPump(true, false, true, false)
	if got != PumpBroken {
		t.Errorf("ClassifyPump() = %v, want PumpBroken", got)
	}
}

func TestClassifyPumpBrokenWhenPumpDisagrees(t *testing.T) {
	got := ClassifyPump(false, true, true, true)
	if got != PumpBroken {
		t.Errorf("ClassifyPump() = %v, want PumpBroken", got)
	}
}

func TestSteamSensorFailed(t *testing.T) {
	cases := []struct {
		name               string
		s, lastSteam, max  float64
		want               bool
	}{
		{"negative", -1, 0, 10, true},
		{"above max", 11, 0, 10, true},
		{"decreased", 4, 5, 10, true},
		{"healthy rise", 6, 5, 10, false},
		{"healthy steady", 5, 5, 10, false},
	}
	for _, c := range cases {
		if got := SteamSensorFailed(c.s, c.lastSteam, c.max); got != c.want {
			t.Errorf("%s: SteamSensorFailed() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestWaterSensorFailedOutOfRange(t *testing.T) {
	if !WaterSensorFailed(-1, 1000, true, true, false) {
		t.Error("negative water should fail the sensor")
	}
	if !WaterSensorFailed(1001, 1000, true, true, false) {
		t.Error("water above capacity should fail the sensor")
	}
}

func TestWaterSensorFailedOutOfBandWhileHeating(t *testing.T) {
	if !WaterSensorFailed(500, 1000, false, true, false) {
		t.Error("out-of-band reading while heating and unexplained should fail the sensor")
	}
}

func TestWaterSensorHealthyWhenExplainedByPumpFault(t *testing.T) {
	if WaterSensorFailed(500, 1000, false, true, true) {
		t.Error("out-of-band reading already explained by a pump fault should not also fail the sensor")
	}
}

func TestWaterSensorHealthyWhenNotHeating(t *testing.T) {
	if WaterSensorFailed(500, 1000, false, false, false) {
		t.Error("out-of-band reading while not heating should not fail the sensor")
	}
}

func TestImminentFailureDoubleSensorLoss(t *testing.T) {
	if !ImminentFailure(true, true, 500, 100, 900, false, true) {
		t.Error("losing both sensors should be imminent failure")
	}
}

func TestImminentFailureOverSafeHi(t *testing.T) {
	if !ImminentFailure(false, false, 950, 100, 900, false, true) {
		t.Error("water above safety-hi while not waiting should be imminent failure")
	}
}

func TestImminentFailureOverSafeHiWhileWaitingIsSafe(t *testing.T) {
	if ImminentFailure(false, false, 950, 100, 900, true, false) {
		t.Error("exceeding safety-hi while WAITING (unfilled boiler) should not trip")
	}
}

func TestImminentFailureUnderSafeLoWhileHeating(t *testing.T) {
	if !ImminentFailure(false, false, 50, 100, 900, false, true) {
		t.Error("water below safety-lo while heating should be imminent failure")
	}
}

func TestImminentFailureUnderSafeLoNotHeatingIsSafe(t *testing.T) {
	if ImminentFailure(false, false, 50, 100, 900, false, false) {
		t.Error("water below safety-lo while not heating should not trip")
	}
}

func TestImminentFailureHealthy(t *testing.T) {
	if ImminentFailure(false, false, 500, 100, 900, false, true) {
		t.Error("nominal readings should not be imminent failure")
	}
}

func buildInbox(n int, withLevel, withSteam bool, pumpStates, ctrlStates int) message.Inbox {
	var msgs []message.Message
	if withLevel {
		msgs = append(msgs, message.Level(500))
	}
	if withSteam {
		msgs = append(msgs, message.Steam(8))
	}
	for i := 0; i < pumpStates; i++ {
		msgs = append(msgs, message.PumpState(i%n, true))
	}
	for i := 0; i < ctrlStates; i++ {
		msgs = append(msgs, message.PumpControlState(i%n, true))
	}
	return message.NewInbox(msgs)
}

func TestTransmissionFailureHealthy(t *testing.T) {
	in := buildInbox(4, true, true, 4, 4)
	if TransmissionFailure(in, 4) {
		t.Error("complete, well-formed inbox should not be a transmission failure")
	}
}

func TestTransmissionFailureMissingLevel(t *testing.T) {
	in := buildInbox(4, false, true, 4, 4)
	if !TransmissionFailure(in, 4) {
		t.Error("missing level message should be a transmission failure")
	}
}

func TestTransmissionFailureDuplicatedSteam(t *testing.T) {
	msgs := []message.Message{message.Level(500), message.Steam(8), message.Steam(8)}
	for i := 0; i < 4; i++ {
		msgs = append(msgs, message.PumpState(i, true), message.PumpControlState(i, true))
	}
	in := message.NewInbox(msgs)
	if !TransmissionFailure(in, 4) {
		t.Error("duplicated steam message should be a transmission failure")
	}
}

func TestTransmissionFailureWrongPumpStateCount(t *testing.T) {
	in := buildInbox(4, true, true, 3, 4)
	if !TransmissionFailure(in, 4) {
		t.Error("pump state count mismatch should be a transmission failure")
	}
}

func TestFindRepairPriorityOrder(t *testing.T) {
	msgs := []message.Message{
		message.LevelRepaired(),
		message.SteamRepaired(),
		message.PumpControlRepaired(2),
		message.PumpRepaired(1),
	}
	in := message.NewInbox(msgs)
	r, ok := FindRepair(in)
	if !ok {
		t.Fatal("expected a repair to be found")
	}
	if r.Kind != RepairPump || r.Index != 1 {
		t.Errorf("FindRepair() = %+v, want pump repair for index 1 (highest priority)", r)
	}
}

func TestFindRepairNoneFound(t *testing.T) {
	in := message.NewInbox([]message.Message{message.Level(500)})
	if _, ok := FindRepair(in); ok {
		t.Error("expected no repair to be found")
	}
}

func TestApplyClearsPumpFlagAndAcks(t *testing.T) {
	s := NewState(4)
	s.PumpFailed[2] = true
	ack := Apply(&s, Repair{Kind: RepairPump, Index: 2})
	if s.PumpFailed[2] {
		t.Error("PumpFailed[2] should be cleared after Apply")
	}
	if ack.Kind != message.KindPumpRepairedAck || *ack.Payload.Index != 2 {
		t.Errorf("Apply() ack = %+v, want PumpRepairedAck(2)", ack)
	}
}

func TestApplyClearsSteamSensorFlagAndAcks(t *testing.T) {
	s := NewState(4)
	s.SteamSensorFailed = true
	ack := Apply(&s, Repair{Kind: RepairSteam})
	if s.SteamSensorFailed {
		t.Error("SteamSensorFailed should be cleared after Apply")
	}
	if ack.Kind != message.KindSteamRepairedAck {
		t.Errorf("Apply() ack.Kind = %v, want KindSteamRepairedAck", ack.Kind)
	}
}
