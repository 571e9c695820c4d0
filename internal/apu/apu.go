// Package apu is a minimal stand-in for the 2A03's audio unit: the core
// in scope here never produces sound, but the CPU bus still needs
// 0x4000-0x4013/0x4015 to behave like real (if silent) hardware rather
// than open bus.
package apu

// APU absorbs register writes and returns 0 on reads, matching "stub:
// reads 0, writes ignored". Kept as its own type (rather than inlining
// the no-op into the bus) so a full implementation has a natural home
// later without disturbing the bus's address decode.
type APU struct {
	lastWrite uint8
}

func New() *APU { return &APU{} }

func (a *APU) Read(addr uint16) uint8 { return 0 }

func (a *APU) Write(addr uint16, value uint8) { a.lastWrite = value }

// Status reports the $4015 read value (stubbed to 0: no channel ever
// reports length-counter activity).
func (a *APU) Status() uint8 { return 0 }
