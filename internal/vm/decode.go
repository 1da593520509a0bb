package vm

import (
	"errors"
	"fmt"
)

var ErrUnknownOpcode = errors.New("unknown opcode")

// Op identifies one of the machine operations.
type Op uint8

const (
	OpSys    Op = iota // 0nnn - machine code routine, ignored
	OpCls              // 00E0 - clear the screen
	OpRet              // 00EE - return from subroutine
	OpJp               // 1nnn - jump to nnn
	OpCall             // 2nnn - call subroutine at nnn
	OpSeImm            // 3xkk - skip if Vx == kk
	OpSneImm           // 4xkk - skip if Vx != kk
	OpSeReg            // 5xy0 - skip if Vx == Vy
	OpLdImm            // 6xkk - Vx = kk
	OpAddImm           // 7xkk - Vx += kk
	OpLdReg            // 8xy0 - Vx = Vy
	OpOr               // 8xy1 - Vx |= Vy
	OpAnd              // 8xy2 - Vx &= Vy
	OpXor              // 8xy3 - Vx ^= Vy
	OpAdd              // 8xy4 - Vx += Vy, VF = carry
	OpSub              // 8xy5 - Vx -= Vy, VF = not borrow
	OpShr              // 8xy6 - Vx >>= 1, VF = shifted out bit
	OpSubn             // 8xy7 - Vx = Vy - Vx, VF = not borrow
	OpShl              // 8xyE - Vx <<= 1, VF = shifted out bit
	OpSneReg           // 9xy0 - skip if Vx != Vy
	OpLdI              // Annn - I = nnn
	OpJpV0             // Bnnn - jump to nnn + V0
	OpRnd              // Cxkk - Vx = random & kk
	OpDrw              // Dxyn - draw n byte sprite at (Vx, Vy)
	OpSkp              // Ex9E - skip if key Vx pressed
	OpSknp             // ExA1 - skip if key Vx not pressed
	OpLdVxDT           // Fx07 - Vx = delay timer
	OpLdKey            // Fx0A - wait for key into Vx
	OpLdDTVx           // Fx15 - delay timer = Vx
	OpLdSTVx           // Fx18 - sound timer = Vx
	OpAddI             // Fx1E - I += Vx
	OpLdFont           // Fx29 - I = glyph address of Vx
	OpLdBCD            // Fx33 - BCD of Vx to I, I+1, I+2
	OpStore            // Fx55 - V0..Vx to memory at I
	OpLoad             // Fx65 - memory at I to V0..Vx
)

var opNames = [...]string{
	OpSys:    "sys",
	OpCls:    "cls",
	OpRet:    "ret",
	OpJp:     "jp",
	OpCall:   "call",
	OpSeImm:  "se",
	OpSneImm: "sne",
	OpSeReg:  "se",
	OpLdImm:  "ld",
	OpAddImm: "add",
	OpLdReg:  "ld",
	OpOr:     "or",
	OpAnd:    "and",
	OpXor:    "xor",
	OpAdd:    "add",
	OpSub:    "sub",
	OpShr:    "shr",
	OpSubn:   "subn",
	OpShl:    "shl",
	OpSneReg: "sne",
	OpLdI:    "ld",
	OpJpV0:   "jp",
	OpRnd:    "rnd",
	OpDrw:    "drw",
	OpSkp:    "skp",
	OpSknp:   "sknp",
	OpLdVxDT: "ld",
	OpLdKey:  "ld",
	OpLdDTVx: "ld",
	OpLdSTVx: "ld",
	OpAddI:   "add",
	OpLdFont: "ld",
	OpLdBCD:  "ld",
	OpStore:  "ld",
	OpLoad:   "ld",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Instruction is a decoded opcode.
type Instruction struct {
	Op     Op
	Opcode Opcode
}

func (in Instruction) X() Nibble    { return in.Opcode.X() }
func (in Instruction) Y() Nibble    { return in.Opcode.Y() }
func (in Instruction) N() Nibble    { return in.Opcode.N() }
func (in Instruction) KK() uint8    { return in.Opcode.KK() }
func (in Instruction) NNN() uint16  { return in.Opcode.NNN() }
func (in Instruction) Word() uint16 { return in.Opcode.Word() }

// String renders the instruction as an assembler style mnemonic.
func (in Instruction) String() string {
	x, y := in.X(), in.Y()

	switch in.Op {
	case OpCls, OpRet:
		return in.Op.String()
	case OpSys, OpJp, OpCall:
		return fmt.Sprintf("%s 0x%03x", in.Op, in.NNN())
	case OpSeImm, OpSneImm, OpLdImm, OpAddImm:
		return fmt.Sprintf("%s v%x, %d", in.Op, x, in.KK())
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAdd, OpSub, OpSubn:
		return fmt.Sprintf("%s v%x, v%x", in.Op, x, y)
	case OpShr, OpShl, OpSkp, OpSknp:
		return fmt.Sprintf("%s v%x", in.Op, x)
	case OpLdI:
		return fmt.Sprintf("ld i, 0x%03x", in.NNN())
	case OpJpV0:
		return fmt.Sprintf("jp v0, 0x%03x", in.NNN())
	case OpRnd:
		return fmt.Sprintf("rnd v%x, 0x%02x", x, in.KK())
	case OpDrw:
		return fmt.Sprintf("drw v%x, v%x, %d", x, y, in.N())
	case OpLdVxDT:
		return fmt.Sprintf("ld v%x, dt", x)
	case OpLdKey:
		return fmt.Sprintf("ld v%x, k", x)
	case OpLdDTVx:
		return fmt.Sprintf("ld dt, v%x", x)
	case OpLdSTVx:
		return fmt.Sprintf("ld st, v%x", x)
	case OpAddI:
		return fmt.Sprintf("add i, v%x", x)
	case OpLdFont:
		return fmt.Sprintf("ld f, v%x", x)
	case OpLdBCD:
		return fmt.Sprintf("ld b, v%x", x)
	case OpStore:
		return fmt.Sprintf("ld [i], v%x", x)
	case OpLoad:
		return fmt.Sprintf("ld v%x, [i]", x)
	}

	return fmt.Sprintf("unknown %s", in.Opcode)
}

// Decode maps an opcode to its operation.
func Decode(op Opcode) (Instruction, error) {
	in := Instruction{Opcode: op}

	switch op[0] {
	case 0x0:
		switch {
		case op == Opcode{0x0, 0x0, 0xE, 0x0}:
			in.Op = OpCls
		case op == Opcode{0x0, 0x0, 0xE, 0xE}:
			in.Op = OpRet
		default:
			in.Op = OpSys
		}
		return in, nil

	case 0x1:
		in.Op = OpJp
		return in, nil

	case 0x2:
		in.Op = OpCall
		return in, nil

	case 0x3:
		in.Op = OpSeImm
		return in, nil

	case 0x4:
		in.Op = OpSneImm
		return in, nil

	case 0x5:
		if op[3] == 0x0 {
			in.Op = OpSeReg
			return in, nil
		}

	case 0x6:
		in.Op = OpLdImm
		return in, nil

	case 0x7:
		in.Op = OpAddImm
		return in, nil

	case 0x8:
		if alu, ok := decodeALU(op[3]); ok {
			in.Op = alu
			return in, nil
		}

	case 0x9:
		if op[3] == 0x0 {
			in.Op = OpSneReg
			return in, nil
		}

	case 0xA:
		in.Op = OpLdI
		return in, nil

	case 0xB:
		in.Op = OpJpV0
		return in, nil

	case 0xC:
		in.Op = OpRnd
		return in, nil

	case 0xD:
		in.Op = OpDrw
		return in, nil

	case 0xE:
		switch op.KK() {
		case 0x9E:
			in.Op = OpSkp
			return in, nil
		case 0xA1:
			in.Op = OpSknp
			return in, nil
		}

	case 0xF:
		if misc, ok := decodeMisc(op.KK()); ok {
			in.Op = misc
			return in, nil
		}
	}

	return Instruction{}, fmt.Errorf("%w %s", ErrUnknownOpcode, op)
}

// decodeALU resolves 8xy_ by its last nibble.
func decodeALU(n Nibble) (Op, bool) {
	switch n {
	case 0x0:
		return OpLdReg, true
	case 0x1:
		return OpOr, true
	case 0x2:
		return OpAnd, true
	case 0x3:
		return OpXor, true
	case 0x4:
		return OpAdd, true
	case 0x5:
		return OpSub, true
	case 0x6:
		return OpShr, true
	case 0x7:
		return OpSubn, true
	case 0xE:
		return OpShl, true
	}
	return 0, false
}

// decodeMisc resolves Fx__ by its low byte.
func decodeMisc(kk uint8) (Op, bool) {
	switch kk {
	case 0x07:
		return OpLdVxDT, true
	case 0x0A:
		return OpLdKey, true
	case 0x15:
		return OpLdDTVx, true
	case 0x18:
		return OpLdSTVx, true
	case 0x1E:
		return OpAddI, true
	case 0x29:
		return OpLdFont, true
	case 0x33:
		return OpLdBCD, true
	case 0x55:
		return OpStore, true
	case 0x65:
		return OpLoad, true
	}
	return 0, false
}
