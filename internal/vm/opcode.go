package vm

import "fmt"

// Opcode is a 2 byte instruction word split into four nibbles, most
// significant first.
type Opcode [4]Nibble

// Fetch reads the instruction word at pc.
func Fetch(mem *Memory, pc uint16) (Opcode, error) {
	bs, err := mem.Slice(pc, InstructionSize)
	if err != nil {
		return Opcode{}, fmt.Errorf("fetch: %w", err)
	}

	n0, n1 := SplitByte(bs[0])
	n2, n3 := SplitByte(bs[1])
	return Opcode{n0, n1, n2, n3}, nil
}

// Word returns the opcode as a 16-bit value.
func (op Opcode) Word() uint16 {
	return MergeWord(op[0], op[1], op[2], op[3])
}

// X returns the first register operand.
func (op Opcode) X() Nibble { return op[1] }

// Y returns the second register operand.
func (op Opcode) Y() Nibble { return op[2] }

// N returns the 4-bit immediate.
func (op Opcode) N() Nibble { return op[3] }

// KK returns the 8-bit immediate.
func (op Opcode) KK() uint8 { return MergeByte(op[2], op[3]) }

// NNN returns the 12-bit address.
func (op Opcode) NNN() uint16 { return MergeAddr(op[1], op[2], op[3]) }

func (op Opcode) String() string {
	return fmt.Sprintf("0x%04X", op.Word())
}
