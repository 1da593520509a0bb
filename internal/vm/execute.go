package vm

import "fmt"

func (vm *VM) execute(in Instruction) error {
	regs := &vm.Registers
	x, y := in.X(), in.Y()

	switch in.Op {
	case OpSys:
		// Machine code routines of the original hardware are not emulated.
		regs.Advance()

	case OpCls:
		vm.Display.Clear()
		vm.drawFlag = true
		regs.Advance()

	case OpRet:
		pc, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		regs.PC = pc

	case OpJp:
		regs.PC = in.NNN()

	case OpCall:
		if err := vm.Stack.Push(regs.PC + InstructionSize); err != nil {
			return err
		}
		regs.PC = in.NNN()

	case OpSeImm:
		skipIf(regs, regs.Get(x) == in.KK())

	case OpSneImm:
		skipIf(regs, regs.Get(x) != in.KK())

	case OpSeReg:
		skipIf(regs, regs.Get(x) == regs.Get(y))

	case OpSneReg:
		skipIf(regs, regs.Get(x) != regs.Get(y))

	case OpLdImm:
		regs.Set(x, in.KK())
		regs.Advance()

	case OpAddImm:
		regs.Set(x, regs.Get(x)+in.KK())
		regs.Advance()

	case OpLdReg, OpOr, OpAnd, OpXor, OpAdd, OpSub, OpShr, OpSubn, OpShl:
		vm.executeALU(in.Op, x, y)
		regs.Advance()

	case OpLdI:
		regs.I = in.NNN()
		regs.Advance()

	case OpJpV0:
		regs.PC = in.NNN() + uint16(regs.Get(0))

	case OpRnd:
		regs.Set(x, uint8(vm.rng.IntN(256))&in.KK())
		regs.Advance()

	case OpDrw:
		sprite, err := vm.Memory.Slice(regs.I, int(in.N()))
		if err != nil {
			return err
		}
		collision := vm.Display.DrawSprite(regs.Get(x), regs.Get(y), sprite)
		regs.SetFlag(collision)
		vm.drawFlag = true
		regs.Advance()

	case OpSkp:
		skipIf(regs, vm.Keyboard.Pressed(regs.Get(x)))

	case OpSknp:
		skipIf(regs, !vm.Keyboard.Pressed(regs.Get(x)))

	case OpLdVxDT:
		regs.Set(x, regs.DelayTimer)
		regs.Advance()

	case OpLdKey:
		// The driver delivers the key and clears the flag, see SetKeys.
		vm.Keyboard.waitFor(x)
		regs.Advance()

	case OpLdDTVx:
		regs.DelayTimer = regs.Get(x)
		regs.Advance()

	case OpLdSTVx:
		regs.SoundTimer = regs.Get(x)
		regs.Advance()

	case OpAddI:
		regs.I += uint16(regs.Get(x))
		regs.Advance()

	case OpLdFont:
		regs.I = uint16(regs.Get(x)) * FontSize
		regs.Advance()

	case OpLdBCD:
		dst, err := vm.Memory.Slice(regs.I, 3)
		if err != nil {
			return err
		}
		v := regs.Get(x)
		dst[0] = v / 100
		dst[1] = (v / 10) % 10
		dst[2] = v % 10
		regs.Advance()

	case OpStore:
		dst, err := vm.Memory.Slice(regs.I, int(x)+1)
		if err != nil {
			return err
		}
		copy(dst, regs.V[:x+1])
		regs.Advance()

	case OpLoad:
		src, err := vm.Memory.Slice(regs.I, int(x)+1)
		if err != nil {
			return err
		}
		copy(regs.V[:x+1], src)
		regs.Advance()

	default:
		return fmt.Errorf("%w %s", ErrUnknownOpcode, in.Opcode)
	}

	return nil
}

// executeALU runs the 8xy_ register-register operations. Flags are written
// after the result so VF holds the flag even when it is the destination.
func (vm *VM) executeALU(op Op, x, y Nibble) {
	regs := &vm.Registers
	vx, vy := regs.Get(x), regs.Get(y)

	switch op {
	case OpLdReg:
		regs.Set(x, vy)

	case OpOr:
		regs.Set(x, vx|vy)

	case OpAnd:
		regs.Set(x, vx&vy)

	case OpXor:
		regs.Set(x, vx^vy)

	case OpAdd:
		sum := uint16(vx) + uint16(vy)
		regs.Set(x, uint8(sum))
		regs.SetFlag(sum > 0xFF)

	case OpSub:
		regs.Set(x, vx-vy)
		regs.SetFlag(vx >= vy)

	case OpShr:
		regs.Set(x, vx>>1)
		regs.SetFlag(vx&0x01 != 0)

	case OpSubn:
		regs.Set(x, vy-vx)
		regs.SetFlag(vy >= vx)

	case OpShl:
		regs.Set(x, vx<<1)
		regs.SetFlag(vx&0x80 != 0)
	}
}

func skipIf(regs *Registers, cond bool) {
	if cond {
		regs.Skip()
	} else {
		regs.Advance()
	}
}
