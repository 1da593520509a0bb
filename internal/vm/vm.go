package vm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

const (
	MemorySize    = 4096
	StackSize     = 16
	RegisterCount = 16
	ScreenWidth   = 64
	ScreenHeight  = 32
	KeyCount      = 16

	ProgramStart    = uint16(0x200)
	InstructionSize = 2
)

var (
	ErrNotInitialized = errors.New("vm is not initialized")
	ErrNotLoaded      = errors.New("no program loaded")
)

type state uint8

const (
	stateIdle state = iota
	stateReady
	stateRunning
)

type VM struct {
	Memory    Memory
	Registers Registers
	Stack     Stack
	Display   Framebuffer
	Keyboard  Keyboard

	drawFlag bool // Indicates the display changed since the last TakeDrawFlag
	rng      *rand.Rand
	state    state
}

type Option func(*VM)

// WithRand sets the random source consumed by Cxkk.
func WithRand(rng *rand.Rand) Option {
	return func(vm *VM) {
		vm.rng = rng
	}
}

// NewRand returns a generator for WithRand. A zero seed picks one from the
// current time.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

func New(opts ...Option) *VM {
	vm := &VM{}
	for _, opt := range opts {
		opt(vm)
	}

	if vm.rng == nil {
		vm.rng = NewRand(0)
	}

	return vm
}

// Initialize resets the machine and loads the built-in font.
func (vm *VM) Initialize() {
	slog.Debug("clear memory", "n", len(vm.Memory))
	vm.Memory.clear()

	slog.Debug("clear registers", "n", len(vm.Registers.V))
	vm.Registers.reset()

	slog.Debug("clear stack", "n", StackSize)
	vm.Stack.reset()

	slog.Debug("clear keypad", "n", KeyCount)
	vm.Keyboard.reset()

	// Clear the display
	vm.Display.Clear()
	vm.drawFlag = true

	slog.Debug("load font", "at", fmt.Sprintf("0x%04x", 0), "n", len(chip8Font))
	vm.Memory.loadFont()

	vm.state = stateReady
}

// LoadProgram copies a program image into memory at ProgramStart.
func (vm *VM) LoadProgram(program []byte) error {
	if vm.state == stateIdle {
		return ErrNotInitialized
	}

	if err := vm.Memory.loadProgram(program); err != nil {
		return fmt.Errorf("load program: %w", err)
	}
	slog.Info("load program", "at", fmt.Sprintf("0x%04x", ProgramStart), "n", len(program))

	vm.state = stateRunning
	return nil
}

// Cycle executes a single instruction and then ticks both timers.
func (vm *VM) Cycle() error {
	switch vm.state {
	case stateIdle:
		return ErrNotInitialized
	case stateReady:
		return ErrNotLoaded
	}

	if err := vm.step(); err != nil {
		return err
	}

	vm.Registers.tickTimers()
	return nil
}

func (vm *VM) step() error {
	pc := vm.Registers.PC

	opcode, err := Fetch(&vm.Memory, pc)
	if err != nil {
		return err
	}

	instr, err := Decode(opcode)
	if err != nil {
		return fmt.Errorf("at 0x%04x: %w", pc, err)
	}

	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		slog.Debug(
			"exec",
			"pc", fmt.Sprintf("0x%04x", pc),
			"opcode", opcode.String(),
			"instr", instr.String(),
		)
	}

	if err := vm.execute(instr); err != nil {
		return fmt.Errorf("%s at 0x%04x: %w", instr, pc, err)
	}

	return nil
}

// WaitingForKeyboard reports whether an Fx0A is waiting for a key press.
func (vm *VM) WaitingForKeyboard() bool {
	return vm.Keyboard.Waiting
}

// KeyboardRegister returns the register an Fx0A key press is delivered to.
func (vm *VM) KeyboardRegister() Nibble {
	return vm.Keyboard.Register
}

// SetKeys replaces the keyboard latch. When a key press is awaited and a
// key went down since the previous call, the key is stored into the target
// register and the wait ends.
func (vm *VM) SetKeys(keys [KeyCount]bool) {
	key, pressed := vm.Keyboard.Update(keys)
	if !vm.Keyboard.Waiting || !pressed {
		return
	}

	slog.Debug("key delivered", "key", int(key), "register", fmt.Sprintf("v%x", vm.Keyboard.Register))
	vm.Registers.Set(vm.Keyboard.Register, uint8(key))
	vm.Keyboard.Waiting = false
}

// TakeDrawFlag reports whether the display changed since the last call and
// resets the flag.
func (vm *VM) TakeDrawFlag() bool {
	dirty := vm.drawFlag
	vm.drawFlag = false
	return dirty
}
