// Package controller is the cycle driver: the entry point a host simulator
// calls once per tick. It owns persistent mode/fault/pump state for the
// process lifetime and delegates the actual decision to mode.Evaluate.
package controller

import (
	"fmt"
	"log"
	"time"

	"github.com/holla2040/boilerctl/internal/boilerconfig"
	"github.com/holla2040/boilerctl/internal/message"
	"github.com/holla2040/boilerctl/internal/mode"
	"github.com/holla2040/boilerctl/internal/shiftreport"
)

// Publisher receives one shiftreport.Entry per completed cycle, feeding an
// optional observability side channel (eventbus.Bus). A Controller with a
// nil Publisher runs identically, just quieter.
type Publisher interface {
	Publish(entry shiftreport.Entry)
}

// Controller is the boiler's cyclic decision engine, constructed once in
// mode WAITING and driven by repeated Tick calls for the life of the
// process.
type Controller struct {
	cfg   *boilerconfig.Config
	state *mode.State
	tick  int

	Recorder  *shiftreport.Recorder
	Publisher Publisher
}

// New returns a Controller in mode WAITING for the given (already-validated)
// Config.
func New(cfg *boilerconfig.Config) *Controller {
	return &Controller{
		cfg:   cfg,
		state: mode.NewState(cfg.PumpCount()),
	}
}

// Tick runs one cycle: reads in, appends to out, and advances persistent
// state. Pure with respect to in: it is never mutated.
func (c *Controller) Tick(in message.Inbox, out *message.Outbox) {
	mode.Evaluate(c.cfg, c.state, in, out)
	c.tick++

	entry := shiftreport.Entry{
		Tick:      c.tick,
		Timestamp: time.Now().UTC(),
		Mode:      c.state.Mode.String(),
		Water:     c.state.LastWater,
		Steam:     c.state.LastSteam,
		Faults:    activeFaults(c.state),
	}
	c.Recorder.Append(entry)
	if c.Publisher != nil {
		c.Publisher.Publish(entry)
	}

	log.Printf("cycle: tick=%d mode=%s water=%.2f steam=%.2f faults=%v",
		c.tick, entry.Mode, entry.Water, entry.Steam, entry.Faults)
}

// Status returns a human-readable description of the current mode, for
// debug display only.
func (c *Controller) Status() string {
	return fmt.Sprintf("boiler controller: tick=%d mode=%s", c.tick, c.state.Mode)
}

func activeFaults(st *mode.State) []string {
	var faults []string
	if st.Fault.WaterSensorFailed {
		faults = append(faults, "water_sensor")
	}
	if st.Fault.SteamSensorFailed {
		faults = append(faults, "steam_sensor")
	}
	for i, failed := range st.Fault.PumpFailed {
		if failed {
			faults = append(faults, fmt.Sprintf("pump[%d]", i))
		}
	}
	for i, failed := range st.Fault.CtrlFailed {
		if failed {
			faults = append(faults, fmt.Sprintf("ctrl[%d]", i))
		}
	}
	return faults
}
