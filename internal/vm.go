package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 VM constants
const (
	totalMemory    = 0x1000
	addrMask       = totalMemory - 1
	pcStartAddr    = 0x200
	fontStartAddr  = 0x050
	fontGlyphSize  = 5
	stackSize      = 16
	maxProgramSize = totalMemory - pcStartAddr
)

// C8VM is an emulated CHIP-8 VM
type C8VM struct {
	regV       [16]uint8          // 16 general purpose 8-bit registers, VF doubles as the flag register
	regI       uint16             // 16-bit register that is generally used to store memory addresses
	delayTimer uint8              // Delay timer
	soundTimer uint8              // Sound timer
	pc         uint16             // Program counter
	sp         uint8              // Stack pointer
	stack      [stackSize]uint16  // A stack of 16 16-bit values
	memory     [totalMemory]uint8 // 4 KB global memory

	drawFlag bool // Set whenever the framebuffer changed

	pixels Framebuffer  // 64 px x 32 px display
	keypad *Keypad      // Owned by the input layer, only read here
	rng    RandomSource // Source for RND Vx, kk
	logger *log.Logger  // Optional step tracer
}

// Option configures a C8VM on creation.
type Option func(*C8VM)

// WithKeypad makes the VM read key state from the given keypad. The caller
// keeps ownership and updates it between steps.
func WithKeypad(k *Keypad) Option {
	return func(vm *C8VM) {
		vm.keypad = k
	}
}

// WithRandomSource replaces the default random byte source.
func WithRandomSource(r RandomSource) Option {
	return func(vm *C8VM) {
		vm.rng = r
	}
}

// WithLogger enables debug tracing of every executed instruction.
func WithLogger(logger *log.Logger) Option {
	return func(vm *C8VM) {
		vm.logger = logger
	}
}

var fontset = [...]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// NewC8VM creates a new instance of an emulated CHIP-8 VM
func NewC8VM(opts ...Option) *C8VM {
	vm := &C8VM{}
	for _, opt := range opts {
		opt(vm)
	}
	if vm.keypad == nil {
		vm.keypad = &Keypad{}
	}
	if vm.rng == nil {
		vm.rng = NewMathRandomSource()
	}
	vm.Reset()
	return vm
}

// Reset brings the VM back to its power-on state. The keypad, random source
// and logger are kept.
func (vm *C8VM) Reset() {
	vm.regV = [16]uint8{}
	vm.regI = 0
	vm.delayTimer = 0
	vm.soundTimer = 0
	vm.sp = 0
	vm.stack = [stackSize]uint16{}
	vm.memory = [totalMemory]uint8{}
	vm.pixels.Clear()
	vm.drawFlag = false

	copy(vm.memory[fontStartAddr:], fontset[:])
	vm.pc = pcStartAddr
}

// Load copies a raw program image into the VM's memory at 0x200
func (vm *C8VM) Load(rom []byte) error {
	if len(rom) > maxProgramSize {
		return fmt.Errorf("%w: %d bytes, at most %d allowed", ErrProgramTooLarge, len(rom), maxProgramSize)
	}
	program := vm.memory[pcStartAddr:]
	n := copy(program, rom)
	clear(program[n:])
	return nil
}

// LoadProgram loads a given CHIP-8 program into the VM's memory
func (vm *C8VM) LoadProgram(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	if err := vm.Load(data); err != nil {
		return fmt.Errorf("loading program %s: %w", filename, err)
	}
	return nil
}

// Pixels returns the framebuffer
func (vm *C8VM) Pixels() *Framebuffer {
	return &vm.pixels
}

// Keypad returns the keypad the VM reads from
func (vm *C8VM) Keypad() *Keypad {
	return vm.keypad
}

// IsDrawFlagSet returns whether the framebuffer changed since the flag was last unset
func (vm *C8VM) IsDrawFlagSet() bool {
	return vm.drawFlag
}

// UnsetDrawFlag unsets the draw flag
func (vm *C8VM) UnsetDrawFlag() {
	vm.drawFlag = false
}

// DelayTimer returns the value of DT
func (vm *C8VM) DelayTimer() uint8 {
	return vm.delayTimer
}

// SoundTimer returns the value of ST
func (vm *C8VM) SoundTimer() uint8 {
	return vm.soundTimer
}

// PC returns the program counter
func (vm *C8VM) PC() uint16 {
	return vm.pc
}

// I returns the index register
func (vm *C8VM) I() uint16 {
	return vm.regI
}

// SP returns the stack pointer
func (vm *C8VM) SP() uint8 {
	return vm.sp
}

// Register returns the value of Vx. Only the low nibble of x is used.
func (vm *C8VM) Register(x uint8) uint8 {
	return vm.regV[x&0xF]
}

// Memory returns the byte stored at addr, wrapped into the 4 KB address space.
func (vm *C8VM) Memory(addr uint16) uint8 {
	return vm.memory[addr&addrMask]
}

func (vm *C8VM) decrementTimers() {
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
	if vm.soundTimer > 0 {
		vm.soundTimer--
	}
}
