// Package bus implements the CPU-facing system bus that ties the CPU,
// PPU, APU stub, controllers and cartridge together: the 0x0000-0xFFFF
// address decode table, the 3-PPU-dots-per-CPU-access clock coupling,
// and OAM DMA's CPU-stalling 513/514-cycle transfer.
//
// Grounded on RNG999-gones/internal/bus.go for the address-decode shape,
// generalized to the per-access PPU tick that repo's bulk-stepped PPU
// never needed.
package bus

import (
	"github.com/nesgo/nesgo/internal/apu"
	"github.com/nesgo/nesgo/internal/cartridge"
	"github.com/nesgo/nesgo/internal/input"
	"github.com/nesgo/nesgo/internal/palette"
	"github.com/nesgo/nesgo/internal/ppu"
)

// cartAdapter narrows *cartridge.Cartridge to ppu.CartridgeBus, converting
// cartridge.Mirror to the PPU package's own copy of the enum (ppu does
// not import internal/cartridge).
type cartAdapter struct {
	cart *cartridge.Cartridge
}

func (a cartAdapter) ReadCHR(addr uint16) uint8      { return a.cart.ReadCHR(addr) }
func (a cartAdapter) WriteCHR(addr uint16, v uint8)  { a.cart.WriteCHR(addr, v) }
func (a cartAdapter) Mirror() ppu.Mirror {
	switch a.cart.Mirror() {
	case cartridge.MirrorVertical:
		return ppu.MirrorVertical
	case cartridge.MirrorFourScreen:
		return ppu.MirrorFourScreen
	default:
		return ppu.MirrorHorizontal
	}
}

// Bus is the CPU's view of the whole machine. It implements cpu.Bus.
type Bus struct {
	ram  [2048]uint8
	cart *cartridge.Cartridge
	ppu  *ppu.PPU
	apu  *apu.APU
	pads [2]*input.Controller

	openBus uint8

	totalCycles uint64
	nmiLatch    bool

	dmaHalt bool
	dmaPage uint8
}

// New wires a freshly loaded cartridge and palette table into a complete
// bus: PPU memory, the PPU itself, the APU stub and both controller ports.
func New(cart *cartridge.Cartridge, pal *palette.Table) *Bus {
	mem := ppu.NewMemory(cartAdapter{cart: cart})
	b := &Bus{
		cart: cart,
		ppu:  ppu.New(mem, pal),
		apu:  apu.New(),
		pads: [2]*input.Controller{{}, {}},
	}
	return b
}

// PPU exposes the wired PPU for the graphics backend to pull frames from.
func (b *Bus) PPU() *ppu.PPU { return b.ppu }

// Controller exposes port 0 or 1 for the input backend to feed button
// state into. player must be 0 or 1.
func (b *Bus) Controller(player int) *input.Controller { return b.pads[player] }

// TotalCycles reports the number of real CPU cycles the bus has driven,
// including any time spent stalled during OAM DMA. The CPU's own cycle
// counter only reflects cycles spent on ordinary instruction execution;
// this is the authoritative wall-clock cycle count the 3x PPU-dot
// invariant is defined against.
func (b *Bus) TotalCycles() uint64 { return b.totalCycles }

// Read8 implements cpu.Bus. If OAM DMA was triggered by an earlier write
// to 0x4014, the whole 513/514-cycle transfer runs here, before the
// read the CPU actually asked for completes — matching real hardware's
// "DMA stalls the CPU at its next read" behavior.
func (b *Bus) Read8(addr uint16) uint8 {
	if b.dmaHalt {
		b.runOAMDMA()
	}
	return b.busRead(addr)
}

// Write8 implements cpu.Bus.
func (b *Bus) Write8(addr uint16, value uint8) {
	b.busWrite(addr, value)
}

// PollNMI implements cpu.Bus: reports and clears an NMI edge observed by
// any tick since the last call.
func (b *Bus) PollNMI() bool {
	v := b.nmiLatch
	b.nmiLatch = false
	return v
}

// PollIRQ implements cpu.Bus. The APU stub never asserts IRQ.
func (b *Bus) PollIRQ() bool { return false }

// tick advances the PPU by exactly three dots — the 1:3 CPU:PPU clock
// ratio — and counts one CPU cycle's worth of elapsed time.
func (b *Bus) tick() {
	b.ppu.Step()
	b.ppu.Step()
	b.ppu.Step()
	if b.ppu.TakeNMI() {
		b.nmiLatch = true
	}
	b.totalCycles++
}

func (b *Bus) busRead(addr uint16) uint8 {
	b.tick()
	var value uint8
	switch {
	case addr < 0x2000:
		value = b.ram[addr&0x07FF]
	case addr < 0x4000:
		value = b.ppu.ReadRegister(addr)
	case addr == 0x4014:
		value = b.openBus
	case addr >= 0x4000 && addr <= 0x4013:
		value = b.apu.Read(addr)
	case addr == 0x4015:
		value = b.apu.Status()
	case addr == 0x4016:
		value = (b.pads[0].Read() & 0x01) | (b.openBus &^ 0x01)
	case addr == 0x4017:
		value = (b.pads[1].Read() & 0x01) | (b.openBus &^ 0x01)
	case addr < 0x8000:
		value = b.openBus
	default:
		value = b.cart.ReadPRG(addr)
	}
	b.openBus = value
	return value
}

func (b *Bus) busWrite(addr uint16, value uint8) {
	b.tick()
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = value
	case addr < 0x4000:
		b.ppu.WriteRegister(addr, value)
	case addr == 0x4014:
		b.dmaPage = value
		b.dmaHalt = true
	case addr >= 0x4000 && addr <= 0x4013:
		b.apu.Write(addr, value)
	case addr == 0x4015:
		b.apu.Write(addr, value)
	case addr == 0x4016:
		b.pads[0].Write(value)
		b.pads[1].Write(value)
	case addr == 0x4017:
		b.apu.Write(addr, value)
	case addr < 0x8000:
		// open bus: no backing store
	default:
		b.cart.WritePRG(addr, value)
	}
	b.openBus = value
}

// runOAMDMA executes the 256-byte OAM transfer triggered by a write to
// 0x4014: a leading alignment cycle (a no-op read,
// doubled if the transfer starts on an odd CPU cycle), then 256
// read/write pairs copying dmaPage*0x100+i into OAMDATA in order. Writing
// through the OAMDATA register path (rather than poking OAM directly)
// reproduces real hardware's behavior of starting at the current OAMADDR
// and wrapping through all 256 bytes regardless of where it started.
func (b *Bus) runOAMDMA() {
	b.dmaHalt = false
	startedOnOddCycle := b.totalCycles%2 == 1

	b.tick() // leading alignment cycle: a no-op read
	if startedOnOddCycle {
		b.tick() // one extra cycle to align to an even boundary
	}

	for i := 0; i < 256; i++ {
		addr := uint16(b.dmaPage)<<8 | uint16(i)
		value := b.busRead(addr)
		b.busWrite(0x2004, value)
	}
}
