// Command boilerctl-sim is a small standalone demonstrator: it wires an
// in-memory plant simulator to the boiler controller and runs it for a
// fixed number of cycles, printing one line per tick and optionally
// rendering the recorded shift report to a PDF.
//
// Usage:
//
//	boilerctl-sim --config boiler.yaml --ticks 50 --pdf shift.pdf
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/holla2040/boilerctl/internal/boilerconfig"
	"github.com/holla2040/boilerctl/internal/controller"
	"github.com/holla2040/boilerctl/internal/message"
	"github.com/holla2040/boilerctl/internal/plantsim"
	"github.com/holla2040/boilerctl/internal/shiftreport"
)

func main() {
	configPath := flag.String("config", "", "path to boiler config YAML")
	ticks := flag.Int("ticks", 50, "number of cycles to run")
	pdfPath := flag.String("pdf", "", "write the shift report PDF here (optional)")
	seed := flag.Int64("seed", 1, "steam-demand random walk seed")
	breakPump := flag.Int("break-pump", -1, "index of a pump to stick open/closed (optional)")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "boilerctl-sim: --config is required")
		os.Exit(1)
	}

	cfg, err := boilerconfig.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "boilerctl-sim: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *ticks, *seed, *breakPump, *pdfPath); err != nil {
		fmt.Fprintf(os.Stderr, "boilerctl-sim: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *boilerconfig.Config, ticks int, seed int64, breakPump int, pdfPath string) error {
	plant := plantsim.NewPlant(cfg, seed)
	if breakPump >= 0 && breakPump < cfg.PumpCount() {
		plant.BreakPump(breakPump)
	}

	ctrl := controller.New(cfg)
	ctrl.Recorder = shiftreport.NewRecorder(ticks)

	var commands []message.Message
	readyAnnounced := false

	for i := 0; i < ticks; i++ {
		in := plant.Step(commands)

		// Once the water level has settled, signal the plant's warm-up is
		// done so the controller can leave READY for NORMAL.
		if !readyAnnounced {
			if lvl, ok := in.OnlyMatch(message.KindLevel); ok &&
				*lvl.Payload.Value > cfg.MinNormal && *lvl.Payload.Value < cfg.MaxNormal {
				plant.MarkPhysicalUnitsReady()
				readyAnnounced = true
			}
		}

		var out message.Outbox
		ctrl.Tick(in, &out)
		commands = out.Messages()

		log.Printf("tick %3d: %s (water=%.1f steam=%.2f)", i+1, ctrl.Status(), plant.Water(), plant.Steam())
	}

	if pdfPath == "" {
		return nil
	}

	f, err := os.Create(pdfPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", pdfPath, err)
	}
	defer f.Close()

	return shiftreport.RenderPDF(f, ctrl.Recorder.Snapshot())
}
