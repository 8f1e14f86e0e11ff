package plantsim

import (
	"testing"

	"github.com/holla2040/boilerctl/internal/boilerconfig"
	"github.com/holla2040/boilerctl/internal/message"
)

func testConfig() *boilerconfig.Config {
	return &boilerconfig.Config{
		PumpCapacity: []float64{10, 10, 10, 10},
		Capacity:     1000,
		MinNormal:    400,
		MaxNormal:    600,
		MinSafe:      100,
		MaxSafe:      900,
		MaxSteam:     10,
	}
}

func TestNewPlantStartsEmptyAndWaiting(t *testing.T) {
	p := NewPlant(testConfig(), 1)
	if p.water != 0 || p.steam != 0 {
		t.Errorf("water=%v steam=%v, want 0,0", p.water, p.steam)
	}

	in := p.Step(nil)
	if _, ok := in.OnlyMatch(message.KindBoilerWaiting); !ok {
		t.Error("expected STEAM_BOILER_WAITING while water and steam are both zero")
	}
}

func TestStepOpensPumpsRaisesWater(t *testing.T) {
	p := NewPlant(testConfig(), 1)
	cfg := testConfig()
	cfg.CyclePeriod = 5_000_000_000 // 5s, matches Period() default

	cmds := []message.Message{
		message.OpenPump(0), message.OpenPump(1), message.OpenPump(2), message.OpenPump(3),
	}
	in := p.Step(cmds)

	lvl, ok := in.OnlyMatch(message.KindLevel)
	if !ok {
		t.Fatal("expected a single LEVEL_v reading")
	}
	if *lvl.Payload.Value <= 0 {
		t.Errorf("water level = %v after opening all pumps, want > 0", *lvl.Payload.Value)
	}

	states := in.AllMatches(message.KindPumpState)
	if len(states) != 4 {
		t.Fatalf("got %d PUMP_STATE_n_b messages, want 4", len(states))
	}
	for i, m := range states {
		if *m.Payload.Index != i || !*m.Payload.On {
			t.Errorf("pump %d: state = %+v, want open", i, m)
		}
	}
}

func TestClosePumpStopsFill(t *testing.T) {
	p := NewPlant(testConfig(), 2)
	p.Step([]message.Message{message.OpenPump(0)})
	in := p.Step([]message.Message{message.ClosePump(0)})

	states := in.AllMatches(message.KindPumpState)
	if *states[0].Payload.On {
		t.Error("pump 0 should report closed after CLOSE_PUMP")
	}
}

func TestBrokenPumpIgnoresCommands(t *testing.T) {
	p := NewPlant(testConfig(), 3)
	p.BreakPump(1)

	in := p.Step([]message.Message{message.OpenPump(0), message.OpenPump(1)})
	states := in.AllMatches(message.KindPumpState)
	if !*states[0].Payload.On {
		t.Error("pump 0 should have opened")
	}
	if *states[1].Payload.On {
		t.Error("pump 1 is broken and should not have opened")
	}
}

func TestBrokenControllerEchoesCommandedNotReal(t *testing.T) {
	p := NewPlant(testConfig(), 4)
	p.BreakPump(2)
	p.BreakController(2)

	in := p.Step([]message.Message{message.OpenPump(2)})

	pumpStates := in.AllMatches(message.KindPumpState)
	ctrlStates := in.AllMatches(message.KindPumpControlState)
	if *pumpStates[2].Payload.On {
		t.Error("physical pump 2 is stuck and should report closed")
	}
	if !*ctrlStates[2].Payload.On {
		t.Error("lying controller 2 should echo the commanded (open) state")
	}
}

func TestBrokenWaterSensorReportsOutOfRange(t *testing.T) {
	cfg := testConfig()
	p := NewPlant(cfg, 5)
	p.BreakWaterSensor()

	in := p.Step(nil)
	lvl, _ := in.OnlyMatch(message.KindLevel)
	if *lvl.Payload.Value <= cfg.Capacity {
		t.Errorf("broken water sensor should report above capacity, got %v", *lvl.Payload.Value)
	}
}

func TestBrokenSteamSensorReportsOutOfRange(t *testing.T) {
	p := NewPlant(testConfig(), 6)
	p.BreakSteamSensor()

	in := p.Step(nil)
	steam, _ := in.OnlyMatch(message.KindSteam)
	if *steam.Payload.Value >= 0 {
		t.Errorf("broken steam sensor should report negative, got %v", *steam.Payload.Value)
	}
}

func TestValveEmptiesWater(t *testing.T) {
	p := NewPlant(testConfig(), 7)
	p.Step([]message.Message{message.OpenPump(0), message.OpenPump(1), message.OpenPump(2), message.OpenPump(3)})
	before := p.Water()

	p.Step([]message.Message{message.Valve()})
	if p.Water() >= before {
		t.Errorf("water = %v after VALVE, want less than %v", p.Water(), before)
	}
}

func TestMarkPhysicalUnitsReadyIncludesMessage(t *testing.T) {
	p := NewPlant(testConfig(), 8)
	p.MarkPhysicalUnitsReady()

	in := p.Step(nil)
	if _, ok := in.OnlyMatch(message.KindPhysicalUnitsReady); !ok {
		t.Error("expected PHYSICAL_UNITS_READY after MarkPhysicalUnitsReady")
	}
}
