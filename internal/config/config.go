// Package config defines the command-line surface for the nesgo
// executable, parsed by github.com/alecthomas/kong. Grounded on
// richardwooding-nostalgiza's own kong-based CLI for an ebiten NES tool;
// generalized from RNG999-gones's own flag+JSON combination
// (internal/app/config.go) down to the flat flag set this core actually
// needs, since save states, audio and key remapping are out of scope.
package config

// Config is the full set of flags nesgo accepts. kong fills it in from
// os.Args; cmd/nesgo hands the result straight to internal/app.
type Config struct {
	ROM     string `arg:"" type:"existingfile" help:"Path to an iNES (.nes) ROM file."`
	Palette string `help:"Path to a .pal palette asset (64 RGB triplets). Uses the built-in NES palette if omitted." type:"path"`
	Backend string `help:"Graphics backend to run." enum:"ebiten,headless,terminal" default:"ebiten"`
	Scale   int    `help:"Integer window scale factor (ebiten backend only)." default:"3"`
	Debug   bool   `help:"Enable verbose diagnostic logging."`
	Frames  int    `help:"Headless backend: run N frames then exit. 0 runs until interrupted." default:"0"`
}
