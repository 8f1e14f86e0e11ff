// Package plantsim is a boiler plant simulator for demonstration and manual
// testing. It holds the "real" water level and steam draw the controller
// never sees directly, evolves them one cycle at a time under the pump
// commands the controller issues, and renders sensor readings — with
// optional injected pump, controller, and sensor faults — as the same
// message.Message wire types the controller consumes.
package plantsim

import (
	"math/rand"

	"github.com/holla2040/boilerctl/internal/boilerconfig"
	"github.com/holla2040/boilerctl/internal/message"
)

// Plant simulates one boiler's physical state between controller ticks.
type Plant struct {
	cfg *boilerconfig.Config
	rng *rand.Rand

	water float64
	steam float64

	pumpOpen  []bool // physical valve state
	commanded []bool // last OPEN_PUMP/CLOSE_PUMP target, honored or not

	pumpBroken []bool // pump ignores its valve command, stays stuck
	ctrlBroken []bool // pump's controller reports commanded, not real, state

	waterSensorBroken bool
	steamSensorBroken bool

	physicalUnitsReady bool
	emptying           bool
}

// NewPlant creates a plant starting empty and cold, the boiler-waiting
// state. seed controls the steam-demand random walk so a demo run can be
// replayed.
func NewPlant(cfg *boilerconfig.Config, seed int64) *Plant {
	n := cfg.PumpCount()
	return &Plant{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(seed)),
		pumpOpen:   make([]bool, n),
		commanded:  make([]bool, n),
		pumpBroken: make([]bool, n),
		ctrlBroken: make([]bool, n),
	}
}

// BreakPump marks pump i as stuck: OPEN_PUMP/CLOSE_PUMP no longer move it.
func (p *Plant) BreakPump(i int) { p.pumpBroken[i] = true }

// BreakController marks pump i's controller as lying: it echoes the last
// commanded state instead of the pump's real (possibly stuck) one.
func (p *Plant) BreakController(i int) { p.ctrlBroken[i] = true }

// BreakWaterSensor makes the level reading report an out-of-range value
// from here on.
func (p *Plant) BreakWaterSensor() { p.waterSensorBroken = true }

// BreakSteamSensor makes the steam reading report an out-of-range value
// from here on.
func (p *Plant) BreakSteamSensor() { p.steamSensorBroken = true }

// MarkPhysicalUnitsReady causes the next readings to include
// PHYSICAL_UNITS_READY, simulating the plant's warm-up sequence finishing.
func (p *Plant) MarkPhysicalUnitsReady() { p.physicalUnitsReady = true }

// Water returns the plant's true (not sensor-reported) water level, for
// demo/debug display.
func (p *Plant) Water() float64 { return p.water }

// Steam returns the plant's true steam draw.
func (p *Plant) Steam() float64 { return p.steam }

// Step applies the commands the controller sent in the previous tick's
// outbox, advances the physical state by one cycle period, and returns the
// inbox the controller should read next.
func (p *Plant) Step(commands []message.Message) message.Inbox {
	for _, m := range commands {
		switch m.Kind {
		case message.KindOpenPump:
			i := *m.Payload.Index
			p.commanded[i] = true
			if !p.pumpBroken[i] {
				p.pumpOpen[i] = true
			}
		case message.KindClosePump:
			i := *m.Payload.Index
			p.commanded[i] = false
			if !p.pumpBroken[i] {
				p.pumpOpen[i] = false
			}
		case message.KindValve:
			p.emptying = true
		}
	}

	periodSeconds := p.cfg.Period().Seconds()
	throughput := 0.0
	for i, open := range p.pumpOpen {
		if open {
			throughput += p.cfg.Throughput(i)
		}
	}

	p.steam = p.nextSteamDemand()
	drain := p.steam
	if p.emptying {
		drain += p.cfg.TotalThroughput()
	}
	p.water += periodSeconds * (throughput - drain)
	if p.water < 0 {
		p.water = 0
	}
	if p.water > p.cfg.Capacity {
		p.water = p.cfg.Capacity
	}
	if p.emptying && p.water <= 0 {
		p.emptying = false
	}

	return message.NewInbox(p.readings())
}

// nextSteamDemand random-walks the steam draw within [0, 0.9*maxSteam], the
// same bounded-drift idiom as a temperature curve settling toward a set
// point rather than a free random walk.
func (p *Plant) nextSteamDemand() float64 {
	delta := (p.rng.Float64() - 0.5) * p.cfg.MaxSteam * 0.2
	s := p.steam + delta
	if s < 0 {
		s = 0
	}
	if max := p.cfg.MaxSteam * 0.9; s > max {
		s = max
	}
	return s
}

func (p *Plant) readings() []message.Message {
	msgs := make([]message.Message, 0, 2*len(p.pumpOpen)+3)

	if p.waterSensorBroken {
		msgs = append(msgs, message.Level(p.cfg.Capacity+1))
	} else {
		msgs = append(msgs, message.Level(p.water))
	}
	if p.steamSensorBroken {
		msgs = append(msgs, message.Steam(-1))
	} else {
		msgs = append(msgs, message.Steam(p.steam))
	}

	if p.water == 0 && p.steam == 0 {
		msgs = append(msgs, message.BoilerWaiting())
	}
	if p.physicalUnitsReady {
		msgs = append(msgs, message.PhysicalUnitsReady())
	}

	for i, open := range p.pumpOpen {
		msgs = append(msgs, message.PumpState(i, open))
		if p.ctrlBroken[i] {
			msgs = append(msgs, message.PumpControlState(i, p.commanded[i]))
		} else {
			msgs = append(msgs, message.PumpControlState(i, open))
		}
	}
	return msgs
}
