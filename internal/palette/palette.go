// Package palette loads the 64-entry NES system color table from a .pal
// asset (192 bytes, RGB triplets in order). This is an external
// collaborator: the PPU never reads a file, it is only ever handed a
// *Table.
package palette

import (
	"fmt"
	"os"
)

// Table is an immutable 64-entry RGB lookup table shared by reference
// across the PPU's lifetime.
type Table [64][3]uint8

// Load reads a 192-byte .pal file (64 RGB triplets) from disk.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	return FromBytes(data)
}

// FromBytes decodes a 192-byte palette buffer.
func FromBytes(data []uint8) (*Table, error) {
	if len(data) < 192 {
		return nil, fmt.Errorf("palette: need 192 bytes, got %d", len(data))
	}
	var t Table
	for i := 0; i < 64; i++ {
		t[i][0] = data[i*3]
		t[i][1] = data[i*3+1]
		t[i][2] = data[i*3+2]
	}
	return &t, nil
}

// RGB returns the packed 0x00RRGGBB value for a 6-bit system color index.
func (t *Table) RGB(index uint8) uint32 {
	c := t[index&0x3F]
	return uint32(c[0])<<16 | uint32(c[1])<<8 | uint32(c[2])
}

// Default is the canonical 2C02 palette (commonly distributed as
// "2C02G_wiki.pal" / "ntscpalette.pal"), used when no --palette flag is
// given. Values from the widely-used FCEUX/Mesen default table.
var Default = &Table{
	{0x62, 0x62, 0x62}, {0x00, 0x1F, 0xB2}, {0x24, 0x04, 0xC8}, {0x52, 0x00, 0xB2},
	{0x73, 0x00, 0x76}, {0x80, 0x00, 0x24}, {0x73, 0x0B, 0x00}, {0x52, 0x28, 0x00},
	{0x24, 0x44, 0x00}, {0x00, 0x57, 0x00}, {0x00, 0x5C, 0x00}, {0x00, 0x53, 0x24},
	{0x00, 0x3C, 0x76}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xAB, 0xAB, 0xAB}, {0x0D, 0x57, 0xFF}, {0x4B, 0x30, 0xFF}, {0x8A, 0x13, 0xFF},
	{0xBC, 0x08, 0xD6}, {0xD2, 0x12, 0x69}, {0xC7, 0x2E, 0x00}, {0x9D, 0x54, 0x00},
	{0x60, 0x7B, 0x00}, {0x20, 0x98, 0x00}, {0x00, 0xA3, 0x00}, {0x00, 0x99, 0x42},
	{0x00, 0x7D, 0xB4}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xFF, 0xFF, 0xFF}, {0x53, 0xAE, 0xFF}, {0x90, 0x85, 0xFF}, {0xD3, 0x65, 0xFF},
	{0xFF, 0x57, 0xFF}, {0xFF, 0x5D, 0xCF}, {0xFF, 0x77, 0x57}, {0xFA, 0x9E, 0x00},
	{0xBD, 0xC7, 0x00}, {0x7A, 0xE7, 0x00}, {0x43, 0xF6, 0x11}, {0x26, 0xEF, 0x7E},
	{0x2C, 0xD5, 0xF6}, {0x4E, 0x4E, 0x4E}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xFF, 0xFF, 0xFF}, {0xB6, 0xE1, 0xFF}, {0xCE, 0xD1, 0xFF}, {0xE9, 0xC3, 0xFF},
	{0xFF, 0xBC, 0xFF}, {0xFF, 0xBD, 0xF4}, {0xFF, 0xC6, 0xC3}, {0xFF, 0xD5, 0x9A},
	{0xE9, 0xE6, 0x81}, {0xCE, 0xF4, 0x81}, {0xB6, 0xFB, 0x9A}, {0xA9, 0xFA, 0xC3},
	{0xA9, 0xF0, 0xF4}, {0xB8, 0xB8, 0xB8}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
}
