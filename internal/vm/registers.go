package vm

// FlagRegister is VF, the carry/borrow/collision flag.
const FlagRegister = Nibble(0xF)

// Registers holds the CPU visible registers.
type Registers struct {
	V [RegisterCount]uint8 // V registers (V0-VF)

	I  uint16 // Index register
	PC uint16 // Program counter

	DelayTimer uint8
	SoundTimer uint8
}

// Get returns Vx.
func (r *Registers) Get(x Nibble) uint8 {
	return r.V[x&0x0F]
}

// Set assigns Vx.
func (r *Registers) Set(x Nibble, v uint8) {
	r.V[x&0x0F] = v
}

// SetFlag writes 1 or 0 to VF.
func (r *Registers) SetFlag(set bool) {
	if set {
		r.V[FlagRegister] = 1
	} else {
		r.V[FlagRegister] = 0
	}
}

// Advance moves PC to the next instruction.
func (r *Registers) Advance() {
	r.PC += InstructionSize
}

// Skip moves PC past the next instruction.
func (r *Registers) Skip() {
	r.PC += 2 * InstructionSize
}

// tickTimers decrements both timers towards zero.
func (r *Registers) tickTimers() {
	if r.DelayTimer > 0 {
		r.DelayTimer--
	}
	if r.SoundTimer > 0 {
		r.SoundTimer--
	}
}

func (r *Registers) reset() {
	*r = Registers{PC: ProgramStart}
}
