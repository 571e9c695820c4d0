package cartridge

// NewTestROM builds a minimal 32 KiB PRG / 8 KiB CHR NROM cartridge for
// tests: prg is copied starting at PRG offset 0 (CPU address 0x8000), and
// the reset vector (0xFFFC/0xFFFD) is set to resetVector. Adapted from the
// teacher's TestROMBuilder, trimmed to the fluent surface this module's
// tests actually exercise.
func NewTestROM(prg []uint8, resetVector uint16) *Cartridge {
	full := make([]uint8, 32*1024)
	copy(full, prg)
	full[0x7FFC] = uint8(resetVector)
	full[0x7FFD] = uint8(resetVector >> 8)
	full[0x7FFA] = uint8(resetVector) // NMI vector defaults alongside reset
	full[0x7FFB] = uint8(resetVector >> 8)
	full[0x7FFE] = uint8(resetVector) // IRQ/BRK vector
	full[0x7FFF] = uint8(resetVector >> 8)
	return New(full, nil, MirrorHorizontal)
}

// WithVector overrides one NMI/reset/IRQ vector of a test ROM built by
// NewTestROM. addr is the CPU address (0x8000-0xFFFF) of the vector low byte.
func (c *Cartridge) WithVector(addr uint16, value uint16) *Cartridge {
	off := addr - 0x8000
	c.prgROM[off] = uint8(value)
	c.prgROM[off+1] = uint8(value >> 8)
	return c
}

// Poke writes a byte directly into PRG ROM at a CPU address, for assembling
// test programs byte-by-byte without round-tripping through iNES bytes.
func (c *Cartridge) Poke(addr uint16, value uint8) {
	off := (addr - 0x8000) % uint16(len(c.prgROM))
	c.prgROM[off] = value
}

// PokeCHR writes a byte directly into CHR memory (ROM or RAM), for seeding
// pattern-table tiles in PPU tests.
func (c *Cartridge) PokeCHR(addr uint16, value uint8) {
	c.chrROM[int(addr)%len(c.chrROM)] = value
}
