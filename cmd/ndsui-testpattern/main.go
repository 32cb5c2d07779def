// Command ndsui-testpattern runs the frontend against a synthetic core that
// draws a test pattern instead of emulating a DS. It exercises layout,
// touch routing, the overlay, save slots and audio without a real core.
package main

import (
	"flag"
	"log"

	"github.com/user-none/ndsui/standalone"
)

func main() {
	romPath := flag.String("rom", "", "ROM to load at startup instead of showing the picker")
	direct := flag.Bool("direct", false, "run -rom without the settings screen or saved preferences")
	flag.Parse()

	core := newPatternCore()
	if *direct {
		if *romPath == "" {
			log.Fatal("ndsui-testpattern: -direct requires -rom")
		}
		if err := standalone.RunDirect(core, *romPath); err != nil {
			log.Fatalf("ndsui-testpattern: %v", err)
		}
		return
	}
	if err := standalone.Run(core, *romPath); err != nil {
		log.Fatalf("ndsui-testpattern: %v", err)
	}
}
