package vm

type Key uint8

const (
	Key0 = Key(iota)
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// Keyboard is the 16 key input latch together with a pending "wait for
// key" request.
type Keyboard struct {
	Keys [KeyCount]bool

	// Waiting is set by Fx0A and cleared once a key press is delivered
	// into Register.
	Waiting  bool
	Register Nibble
}

// Pressed reports whether key k is held down. Only the low nibble of k is
// significant.
func (kb *Keyboard) Pressed(k uint8) bool {
	return kb.Keys[k&0x0F]
}

// Update replaces the latch with keys and returns the highest numbered key
// that went from released to pressed.
func (kb *Keyboard) Update(keys [KeyCount]bool) (Key, bool) {
	var (
		key     Key
		pressed bool
	)

	for i, down := range keys {
		if down && !kb.Keys[i] {
			key = Key(i)
			pressed = true
		}
	}

	kb.Keys = keys
	return key, pressed
}

func (kb *Keyboard) waitFor(x Nibble) {
	kb.Waiting = true
	kb.Register = x
}

func (kb *Keyboard) reset() {
	*kb = Keyboard{}
}
