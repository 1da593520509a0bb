package vm

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestALUFlags(t *testing.T) {
	tests := []struct {
		name   string
		word   uint16
		vx, vy uint8
		result uint8
		flag   uint8
	}{
		{"add no carry", 0x8124, 0x10, 0x20, 0x30, 0},
		{"add exactly 255", 0x8124, 0xFF, 0x00, 0xFF, 0},
		{"add carry", 0x8124, 0xFF, 0x01, 0x00, 1},
		{"add carry wraps", 0x8124, 0x80, 0x90, 0x10, 1},
		{"sub no borrow", 0x8125, 0x30, 0x10, 0x20, 1},
		{"sub equal", 0x8125, 0x10, 0x10, 0x00, 1},
		{"sub borrow", 0x8125, 0x10, 0x30, 0xE0, 0},
		{"shr lsb set", 0x8126, 0x05, 0x00, 0x02, 1},
		{"shr lsb clear", 0x8126, 0x04, 0x00, 0x02, 0},
		{"subn no borrow", 0x8127, 0x10, 0x30, 0x20, 1},
		{"subn borrow", 0x8127, 0x30, 0x10, 0xE0, 0},
		{"shl msb set", 0x812E, 0x81, 0x00, 0x02, 1},
		{"shl msb clear", 0x812E, 0x41, 0x00, 0x82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine := newTestVM(t, tt.word)
			machine.Registers.V[1] = tt.vx
			machine.Registers.V[2] = tt.vy
			machine.Registers.V[0xF] = 0xAA

			cycle(t, machine, 1)

			assert.Equal(t, tt.result, machine.Registers.V[1])
			assert.Equal(t, tt.flag, machine.Registers.V[0xF])
			assert.Equal(t, ProgramStart+2, machine.Registers.PC)
		})
	}
}

func TestLogicOps(t *testing.T) {
	tests := []struct {
		name   string
		word   uint16
		result uint8
	}{
		{"ld", 0x8120, 0x0F},
		{"or", 0x8121, 0x3F},
		{"and", 0x8122, 0x0C},
		{"xor", 0x8123, 0x33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine := newTestVM(t, tt.word)
			machine.Registers.V[1] = 0x3C
			machine.Registers.V[2] = 0x0F

			cycle(t, machine, 1)

			assert.Equal(t, tt.result, machine.Registers.V[1])
		})
	}
}

func TestFlagRegisterAsDestination(t *testing.T) {
	machine := newTestVM(t, 0x8F14)
	machine.Registers.V[0xF] = 0xFF
	machine.Registers.V[1] = 0x02

	cycle(t, machine, 1)

	assert.Equal(t, uint8(1), machine.Registers.V[0xF])
}

func TestSkipDelta(t *testing.T) {
	tests := []struct {
		name  string
		word  uint16
		setup func(vm *VM)
		delta uint16
	}{
		{"se imm taken", 0x3142, func(vm *VM) { vm.Registers.V[1] = 0x42 }, 4},
		{"se imm not taken", 0x3142, func(vm *VM) { vm.Registers.V[1] = 0x41 }, 2},
		{"sne imm taken", 0x4142, func(vm *VM) { vm.Registers.V[1] = 0x41 }, 4},
		{"sne imm not taken", 0x4142, func(vm *VM) { vm.Registers.V[1] = 0x42 }, 2},
		{"se reg taken", 0x5120, func(vm *VM) { vm.Registers.V[1], vm.Registers.V[2] = 7, 7 }, 4},
		{"se reg not taken", 0x5120, func(vm *VM) { vm.Registers.V[1], vm.Registers.V[2] = 7, 8 }, 2},
		{"sne reg taken", 0x9120, func(vm *VM) { vm.Registers.V[1], vm.Registers.V[2] = 7, 8 }, 4},
		{"sne reg not taken", 0x9120, func(vm *VM) { vm.Registers.V[1], vm.Registers.V[2] = 7, 7 }, 2},
		{"skp taken", 0xE19E, func(vm *VM) { vm.Registers.V[1] = 0xA; vm.Keyboard.Keys[0xA] = true }, 4},
		{"skp not taken", 0xE19E, func(vm *VM) { vm.Registers.V[1] = 0xA }, 2},
		{"sknp taken", 0xE1A1, func(vm *VM) { vm.Registers.V[1] = 0xA }, 4},
		{"sknp not taken", 0xE1A1, func(vm *VM) { vm.Registers.V[1] = 0xA; vm.Keyboard.Keys[0xA] = true }, 2},
		{"ld imm", 0x6142, func(vm *VM) {}, 2},
		{"add imm", 0x7142, func(vm *VM) {}, 2},
		{"ld i", 0xA123, func(vm *VM) {}, 2},
		{"sys", 0x0123, func(vm *VM) {}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine := newTestVM(t, tt.word)
			tt.setup(machine)

			cycle(t, machine, 1)

			assert.Equal(t, ProgramStart+tt.delta, machine.Registers.PC)
		})
	}
}

func TestImmediates(t *testing.T) {
	machine := newTestVM(t, 0x61F0, 0x7120, 0xA321)

	cycle(t, machine, 1)
	assert.Equal(t, uint8(0xF0), machine.Registers.V[1])

	cycle(t, machine, 1)
	assert.Equal(t, uint8(0x10), machine.Registers.V[1])
	assert.Equal(t, uint8(0), machine.Registers.V[0xF])

	cycle(t, machine, 1)
	assert.Equal(t, uint16(0x321), machine.Registers.I)
}

func TestJumps(t *testing.T) {
	machine := newTestVM(t, 0x1208)
	cycle(t, machine, 1)
	assert.Equal(t, uint16(0x208), machine.Registers.PC)

	machine = newTestVM(t, 0xB300)
	machine.Registers.V[0] = 0x10
	cycle(t, machine, 1)
	assert.Equal(t, uint16(0x310), machine.Registers.PC)
}

func TestCallReturn(t *testing.T) {
	// 0x200: call 0x206
	// 0x202: ld v1, 1
	// 0x204: jp 0x204
	// 0x206: ret
	machine := newTestVM(t, 0x2206, 0x6101, 0x1204, 0x00EE)

	cycle(t, machine, 1)
	assert.Equal(t, uint16(0x206), machine.Registers.PC)
	assert.Equal(t, 1, machine.Stack.Depth())

	cycle(t, machine, 1)
	assert.Equal(t, uint16(0x202), machine.Registers.PC)
	assert.Equal(t, 0, machine.Stack.Depth())

	cycle(t, machine, 1)
	assert.Equal(t, uint8(1), machine.Registers.V[1])
}

func TestReturnWithEmptyStack(t *testing.T) {
	machine := newTestVM(t, 0x00EE)

	err := machine.Cycle()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
}

func TestCallOverflow(t *testing.T) {
	// 0x200: call 0x200
	machine := newTestVM(t, 0x2200)
	cycle(t, machine, StackSize)

	err := machine.Cycle()
	assert.True(t, errors.Is(err, ErrStackOverflow))
}

func TestDrawCollision(t *testing.T) {
	// ld i, 0x000 (glyph 0); drw v1, v2, 5; drw v1, v2, 5
	machine := newTestVM(t, 0xA000, 0xD125, 0xD125)
	machine.Registers.V[1] = 10
	machine.Registers.V[2] = 4

	cycle(t, machine, 2)
	assert.Equal(t, uint8(0), machine.Registers.V[0xF])
	assert.True(t, machine.Display.Pixel(10, 4))
	assert.True(t, machine.Display.Pixel(13, 4))
	assert.False(t, machine.Display.Pixel(14, 4))
	assert.False(t, machine.Display.Pixel(11, 5))
	assert.True(t, machine.TakeDrawFlag())

	cycle(t, machine, 1)
	assert.Equal(t, uint8(1), machine.Registers.V[0xF])
	assert.Equal(t, Framebuffer{}, machine.Display)
}

func TestDrawWraps(t *testing.T) {
	machine := newTestVM(t, 0xA000, 0xD121)
	machine.Registers.V[1] = 62
	machine.Registers.V[2] = 31

	cycle(t, machine, 2)

	assert.True(t, machine.Display[31][62])
	assert.True(t, machine.Display[31][63])
	assert.True(t, machine.Display[31][0])
	assert.True(t, machine.Display[31][1])
	assert.False(t, machine.Display[31][2])
}

func TestDrawOutOfMemory(t *testing.T) {
	machine := newTestVM(t, 0xAFFE, 0xD125)

	cycle(t, machine, 1)
	err := machine.Cycle()
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
}

func TestClearScreen(t *testing.T) {
	machine := newTestVM(t, 0x00E0)
	machine.Display[3][3] = true
	machine.TakeDrawFlag()

	cycle(t, machine, 1)

	assert.Equal(t, Framebuffer{}, machine.Display)
	assert.True(t, machine.TakeDrawFlag())
	assert.False(t, machine.TakeDrawFlag())
}

func TestRandomIsMasked(t *testing.T) {
	words := make([]uint16, 64)
	for i := range words {
		words[i] = 0xC10F
	}
	machine := newTestVM(t, words...)

	for range words {
		cycle(t, machine, 1)
		assert.Equal(t, uint8(0), machine.Registers.V[1]&0xF0)
	}
}

func TestRandomIsSeeded(t *testing.T) {
	a := newTestVM(t, 0xC1FF, 0xC1FF, 0xC1FF)
	b := newTestVM(t, 0xC1FF, 0xC1FF, 0xC1FF)

	for i := 0; i < 3; i++ {
		cycle(t, a, 1)
		cycle(t, b, 1)
		assert.Equal(t, a.Registers.V[1], b.Registers.V[1])
	}
}

func TestTimerRegisters(t *testing.T) {
	// ld dt, v1; ld st, v1; ld v2, dt
	machine := newTestVM(t, 0xF115, 0xF118, 0xF207)
	machine.Registers.V[1] = 10

	cycle(t, machine, 1)
	assert.Equal(t, uint8(9), machine.Registers.DelayTimer)

	cycle(t, machine, 1)
	assert.Equal(t, uint8(9), machine.Registers.SoundTimer)
	assert.Equal(t, uint8(8), machine.Registers.DelayTimer)

	cycle(t, machine, 1)
	assert.Equal(t, uint8(8), machine.Registers.V[2])
}

func TestAddI(t *testing.T) {
	machine := newTestVM(t, 0xF11E)
	machine.Registers.I = 0xFFF
	machine.Registers.V[1] = 0x02
	machine.Registers.V[0xF] = 0x55

	cycle(t, machine, 1)

	assert.Equal(t, uint16(0x1001), machine.Registers.I)
	assert.Equal(t, uint8(0x55), machine.Registers.V[0xF])
}

func TestFontAddress(t *testing.T) {
	machine := newTestVM(t, 0xF129)
	machine.Registers.V[1] = 0xB

	cycle(t, machine, 1)

	assert.Equal(t, uint16(0xB*FontSize), machine.Registers.I)
}

func TestBCD(t *testing.T) {
	machine := newTestVM(t, 0xF133)
	machine.Registers.V[1] = 156
	machine.Registers.I = 0x300

	cycle(t, machine, 1)

	assert.Equal(t, []uint8{1, 5, 6}, machine.Memory[0x300:0x303])
	assert.Equal(t, uint16(0x300), machine.Registers.I)
}

func TestStoreLoad(t *testing.T) {
	// ld [i], v3; ld i, 0x400; ld v3, [i]
	machine := newTestVM(t, 0xF355, 0xA400, 0xF365)
	machine.Registers.I = 0x300
	copy(machine.Registers.V[:], []uint8{1, 2, 3, 4, 5})
	copy(machine.Memory[0x400:], []uint8{9, 8, 7, 6, 5})

	cycle(t, machine, 1)
	assert.Equal(t, []uint8{1, 2, 3, 4, 0}, machine.Memory[0x300:0x305])
	assert.Equal(t, uint16(0x300), machine.Registers.I)

	cycle(t, machine, 2)
	assert.Equal(t, []uint8{9, 8, 7, 6, 5}, machine.Registers.V[:5])
	assert.Equal(t, uint16(0x400), machine.Registers.I)
}

func TestWaitForKey(t *testing.T) {
	// ld v5, k; ld v1, 1
	machine := newTestVM(t, 0xF50A, 0x6101)

	cycle(t, machine, 1)
	assert.True(t, machine.WaitingForKeyboard())
	assert.Equal(t, Nibble(5), machine.KeyboardRegister())
	assert.Equal(t, ProgramStart+2, machine.Registers.PC)

	// Cycle is never blocked by the wait.
	cycle(t, machine, 1)
	assert.Equal(t, uint8(1), machine.Registers.V[1])
	assert.True(t, machine.WaitingForKeyboard())
}
