package internal

// NumKeys is the number of keys on the hex keypad.
const NumKeys = 16

// Keypad holds the pressed state of the 16 hex keys 0x0-0xF.
// It is written by the input layer and read by the VM.
type Keypad [NumKeys]bool

// Press marks the key as pressed
func (k *Keypad) Press(key uint8) {
	k[key&0xF] = true
}

// Release marks the key as released
func (k *Keypad) Release(key uint8) {
	k[key&0xF] = false
}

// Pressed returns whether the key is held down
func (k *Keypad) Pressed(key uint8) bool {
	return k[key&0xF]
}

// FirstPressed returns the lowest numbered key that is held down.
func (k *Keypad) FirstPressed() (uint8, bool) {
	for i := uint8(0x0); i <= 0xF; i++ {
		if k[i] {
			return i, true
		}
	}
	return 0, false
}

// ReleaseAll marks every key as released
func (k *Keypad) ReleaseAll() {
	*k = Keypad{}
}
