// Command nesgo runs the emulator core against a ROM file, presenting
// it through whichever graphics backend --backend names. Grounded on
// RNG999-gones/cmd/gones/main.go's flag-then-dispatch shape, rebuilt on
// kong instead of that repo's stdlib flag+JSON-config combination.
package main

import (
	"log"

	"github.com/alecthomas/kong"

	"github.com/nesgo/nesgo/internal/app"
	"github.com/nesgo/nesgo/internal/config"
)

func main() {
	var cfg config.Config
	kong.Parse(&cfg,
		kong.Name("nesgo"),
		kong.Description("A cycle-stepped NES emulator core."),
		kong.UsageOnError(),
	)

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("nesgo: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("nesgo: %v", err)
	}
}
