package vm

import (
	"errors"
	"fmt"
)

var (
	ErrAddressOutOfRange = errors.New("address out of range")
	ErrProgramTooLarge   = errors.New("program too large")
)

// MaxProgramSize is the room left for a program image above ProgramStart.
const MaxProgramSize = MemorySize - int(ProgramStart)

// FontSize is the number of bytes in a single font glyph.
const FontSize = 5

// Glyphs for the hex digits 0-F, 4 pixels wide and 5 rows high.
var chip8Font = []uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat 4K address space of the machine.
type Memory [MemorySize]uint8

// Read returns the byte at addr.
func (m *Memory) Read(addr uint16) (uint8, error) {
	if int(addr) >= len(m) {
		return 0, fmt.Errorf("read 0x%04x: %w", addr, ErrAddressOutOfRange)
	}
	return m[addr], nil
}

// Write stores v at addr.
func (m *Memory) Write(addr uint16, v uint8) error {
	if int(addr) >= len(m) {
		return fmt.Errorf("write 0x%04x: %w", addr, ErrAddressOutOfRange)
	}
	m[addr] = v
	return nil
}

// Slice returns the n bytes starting at addr. The returned slice aliases
// the memory, writes through it are visible to the machine.
func (m *Memory) Slice(addr uint16, n int) ([]uint8, error) {
	end := int(addr) + n
	if n < 0 || end > len(m) {
		return nil, fmt.Errorf("access 0x%04x..0x%04x: %w", addr, end, ErrAddressOutOfRange)
	}
	return m[addr:end], nil
}

func (m *Memory) clear() {
	for i := range m {
		m[i] = 0
	}
}

func (m *Memory) loadFont() {
	copy(m[0:], chip8Font)
}

func (m *Memory) loadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%d bytes exceeds %d: %w", len(program), MaxProgramSize, ErrProgramTooLarge)
	}
	copy(m[ProgramStart:], program)
	return nil
}
