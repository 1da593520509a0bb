package vm

// Nibble is a 4-bit value in the range 0x0-0xF.
type Nibble uint8

// SplitByte returns the high and low nibbles of b.
func SplitByte(b uint8) (hi, lo Nibble) {
	return Nibble(b >> 4), Nibble(b & 0x0F)
}

// MergeByte packs two nibbles into a byte, hi first.
func MergeByte(hi, lo Nibble) uint8 {
	return uint8(hi&0x0F)<<4 | uint8(lo&0x0F)
}

// MergeWord packs four nibbles into a 16-bit word, most significant first.
func MergeWord(n0, n1, n2, n3 Nibble) uint16 {
	return uint16(MergeByte(n0, n1))<<8 | uint16(MergeByte(n2, n3))
}

// MergeAddr packs three nibbles into a 12-bit address.
func MergeAddr(n1, n2, n3 Nibble) uint16 {
	return MergeWord(0, n1, n2, n3)
}
