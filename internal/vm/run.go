package vm

import (
	"fmt"
	"log/slog"
)

// HAL is the hardware the driver loop talks to: input, display and frame
// pacing.
type HAL interface {
	ReadInput(keyDown func(Key), keyUp func(Key)) error
	Draw(fb *Framebuffer) error
	WaitForNextFrame() error
}

// Run boots program and drives the machine one cycle per frame until the
// HAL or the machine returns an error.
func (vm *VM) Run(hal HAL, program []byte) error {
	vm.Initialize()
	if err := vm.LoadProgram(program); err != nil {
		return err
	}

	var keys [KeyCount]bool
	keyDown := func(k Key) { keys[k&0x0F] = true }
	keyUp := func(k Key) { keys[k&0x0F] = false }

	for {
		if err := hal.ReadInput(keyDown, keyUp); err != nil {
			return err
		}
		vm.SetKeys(keys)

		halted, err := vm.runStep()
		if err != nil {
			return err
		}

		if err := vm.present(hal); err != nil {
			return err
		}

		if halted {
			slog.Info("program halted", "pc", fmt.Sprintf("0x%04x", vm.Registers.PC))
			return vm.waitForReboot(hal)
		}

		if err := hal.WaitForNextFrame(); err != nil {
			return err
		}
	}
}

// runStep executes one cycle unless a key press is awaited. A jump to
// itself is reported as halted.
func (vm *VM) runStep() (bool, error) {
	if vm.WaitingForKeyboard() {
		return false, nil
	}

	pc := vm.Registers.PC
	if err := vm.Cycle(); err != nil {
		return false, err
	}

	return vm.Registers.PC == pc, nil
}

func (vm *VM) present(hal HAL) error {
	if !vm.TakeDrawFlag() {
		return nil
	}
	return hal.Draw(&vm.Display)
}

func (vm *VM) waitForReboot(hal HAL) error {
	for {
		if err := hal.WaitForNextFrame(); err != nil {
			return err
		}

		if err := hal.ReadInput(func(_ Key) {}, func(_ Key) {}); err != nil {
			return err
		}
	}
}
