package internal

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestArithmeticFlags(t *testing.T) {
	vm := NewC8VM()
	assert.NoError(t, vm.Load([]byte{0x81, 0x24, 0x83, 0x45, 0x85, 0x67}))

	for a := 0; a <= 0xFF; a++ {
		for b := 0; b <= 0xFF; b++ {
			vm.pc = 0x200
			vm.regV[1], vm.regV[2] = uint8(a), uint8(b)
			vm.regV[3], vm.regV[4] = uint8(a), uint8(b)
			vm.regV[5], vm.regV[6] = uint8(a), uint8(b)

			step(t, vm, 1)
			if vm.Register(1) != uint8(a+b) || vm.Register(0xF) != flag(a+b > 0xFF) {
				t.Fatalf("8xy4 with %d+%d: got V1=%d VF=%d", a, b, vm.Register(1), vm.Register(0xF))
			}

			step(t, vm, 1)
			if vm.Register(3) != uint8(a-b) || vm.Register(0xF) != flag(a > b) {
				t.Fatalf("8xy5 with %d-%d: got V3=%d VF=%d", a, b, vm.Register(3), vm.Register(0xF))
			}

			step(t, vm, 1)
			if vm.Register(5) != uint8(b-a) || vm.Register(0xF) != flag(b > a) {
				t.Fatalf("8xy7 with %d-%d: got V5=%d VF=%d", b, a, vm.Register(5), vm.Register(0xF))
			}
		}
	}
}

func TestLogicOps(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		want   uint8
	}{
		{"LD", 0x8120, 0x3C},
		{"OR", 0x8121, 0xFC},
		{"AND", 0x8122, 0x0C},
		{"XOR", 0x8123, 0xF0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, tt.opcode)
			vm.regV[1] = 0xCC
			vm.regV[2] = 0x3C
			vm.regV[0xF] = 0x55

			step(t, vm, 1)
			assert.Equal(t, tt.want, vm.Register(1))
			assert.Equal(t, uint8(0x3C), vm.Register(2))
			assert.Equal(t, uint8(0x55), vm.Register(0xF))
		})
	}
}

func TestShifts(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		value  uint8
		want   uint8
		flag   uint8
	}{
		{"SHR odd", 0x8106, 0x81, 0x40, 1},
		{"SHR even", 0x8106, 0x80, 0x40, 0},
		{"SHL high bit", 0x810E, 0x81, 0x02, 1},
		{"SHL no high bit", 0x810E, 0x41, 0x82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, tt.opcode)
			vm.regV[1] = tt.value
			vm.regV[2] = 0xFF // Vy is ignored

			step(t, vm, 1)
			assert.Equal(t, tt.want, vm.Register(1))
			assert.Equal(t, tt.flag, vm.Register(0xF))
		})
	}
}

func TestFlagRegisterAsOperand(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vf     uint8
		v1     uint8
		wantVF uint8
	}{
		// The flag overwrites the arithmetic result stored in VF.
		{"ADD VF, V1 with carry", 0x8F14, 200, 100, 1},
		{"ADD VF, V1 without carry", 0x8F14, 1, 2, 0},
		{"SUB VF, V1", 0x8F15, 10, 3, 1},
		{"SUBN VF, V1", 0x8F17, 10, 3, 0},
		{"SHR VF", 0x8F06, 0x03, 0, 1},
		{"SHL VF", 0x8F0E, 0x40, 0, 0},
		// Vy = VF is read before the flag is written.
		{"ADD V1, VF", 0x81F4, 0x10, 0xF8, 1},
		{"SUB V1, VF", 0x81F5, 0x20, 0x10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, tt.opcode)
			vm.regV[0xF] = tt.vf
			vm.regV[1] = tt.v1

			step(t, vm, 1)
			assert.Equal(t, tt.wantVF, vm.Register(0xF))
		})
	}

	vm := newTestVM(t, 0x81F4)
	vm.regV[0xF] = 0x10
	vm.regV[1] = 0xF8
	step(t, vm, 1)
	assert.Equal(t, uint8(0x08), vm.Register(1))
}

func TestJumps(t *testing.T) {
	vm := newTestVM(t, 0x1ABC)
	step(t, vm, 1)
	assert.Equal(t, uint16(0xABC), vm.PC())

	vm = newTestVM(t, 0xB300)
	vm.regV[0] = 0x21
	step(t, vm, 1)
	assert.Equal(t, uint16(0x321), vm.PC())

	// The program counter stays inside the 4 KB address space.
	vm = newTestVM(t, 0xBFFF)
	vm.regV[0] = 0xFF
	step(t, vm, 1)
	assert.Equal(t, uint16(0x0FE), vm.PC())

	vm = NewC8VM()
	vm.memory[0xFFE], vm.memory[0xFFF] = 0x60, 0x01
	vm.pc = 0xFFE
	step(t, vm, 1)
	assert.Equal(t, uint16(0x000), vm.PC())
}

func TestCallAndReturn(t *testing.T) {
	vm := newTestVM(t,
		0x2206, // 0x200: CALL 0x206
		0x6105, // 0x202: LD V1, 5
		0x1204, // 0x204: JP 0x204
		0x6207, // 0x206: LD V2, 7
		0x00EE, // 0x208: RET
	)

	step(t, vm, 1)
	assert.Equal(t, uint16(0x206), vm.PC())
	assert.Equal(t, uint8(1), vm.SP())
	assert.Equal(t, uint16(0x202), vm.stack[0])

	step(t, vm, 3)
	assert.Equal(t, uint16(0x204), vm.PC())
	assert.Equal(t, uint8(0), vm.SP())
	assert.Equal(t, uint8(5), vm.Register(1))
	assert.Equal(t, uint8(7), vm.Register(2))
}

func TestStackOverflow(t *testing.T) {
	vm := newTestVM(t, 0x2200) // CALL itself forever
	vm.delayTimer = 50
	step(t, vm, stackSize)
	assert.Equal(t, uint8(stackSize), vm.SP())

	err := vm.Step()
	assert.True(t, errors.Is(err, ErrStackOverflow))

	var stepErr *StepError
	assert.True(t, errors.As(err, &stepErr))
	assert.Equal(t, uint16(0x200), stepErr.Addr)
	assert.Equal(t, uint16(0x2200), stepErr.Opcode)
	assert.Equal(t, uint16(0x200), vm.PC())
	assert.Equal(t, uint8(stackSize), vm.SP())
	assert.Equal(t, uint8(50-stackSize), vm.DelayTimer())
}

func TestStackUnderflow(t *testing.T) {
	vm := newTestVM(t, 0x00EE)

	err := vm.Step()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.ErrorContains(t, err, "stack underflow")
	assert.Equal(t, uint16(0x200), vm.PC())
	assert.Equal(t, uint8(0), vm.SP())
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		v1, v2 uint8
		skip   bool
	}{
		{"SE byte equal", 0x3142, 0x42, 0, true},
		{"SE byte not equal", 0x3142, 0x41, 0, false},
		{"SNE byte equal", 0x4142, 0x42, 0, false},
		{"SNE byte not equal", 0x4142, 0x41, 0, true},
		{"SE reg equal", 0x5120, 9, 9, true},
		{"SE reg not equal", 0x5120, 9, 8, false},
		{"SNE reg equal", 0x9120, 9, 9, false},
		{"SNE reg not equal", 0x9120, 9, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, tt.opcode)
			vm.regV[1], vm.regV[2] = tt.v1, tt.v2

			step(t, vm, 1)
			want := uint16(0x202)
			if tt.skip {
				want = 0x204
			}
			assert.Equal(t, want, vm.PC())
		})
	}
}

func TestKeySkips(t *testing.T) {
	keys := &Keypad{}
	vm := NewC8VM(WithKeypad(keys))
	assert.NoError(t, vm.Load([]byte{0xE1, 0x9E, 0xE1, 0xA1}))
	vm.regV[1] = 0xA

	step(t, vm, 1) // key up, SKP does not skip
	assert.Equal(t, uint16(0x202), vm.PC())
	step(t, vm, 1) // key up, SKNP skips
	assert.Equal(t, uint16(0x206), vm.PC())

	keys.Press(0xA)
	vm.pc = 0x200
	step(t, vm, 1)
	assert.Equal(t, uint16(0x204), vm.PC())
	vm.pc = 0x202
	step(t, vm, 1)
	assert.Equal(t, uint16(0x204), vm.PC())
}

func TestWaitForKey(t *testing.T) {
	keys := &Keypad{}
	vm := NewC8VM(WithKeypad(keys))
	assert.NoError(t, vm.Load([]byte{0xF3, 0x0A}))
	vm.delayTimer = 10

	step(t, vm, 5)
	assert.Equal(t, uint16(0x200), vm.PC())
	assert.Equal(t, uint8(5), vm.DelayTimer(), "timers keep running while waiting")

	keys.Press(0xC)
	keys.Press(0x7)
	step(t, vm, 1)
	assert.Equal(t, uint16(0x202), vm.PC())
	assert.Equal(t, uint8(0x7), vm.Register(3))
}

func TestTimers(t *testing.T) {
	vm := newTestVM(t,
		0x6114, // LD V1, 20
		0xF115, // LD DT, V1
		0xF118, // LD ST, V1
		0x1206, // JP 0x206
	)
	step(t, vm, 3)
	assert.Equal(t, uint8(18), vm.DelayTimer())
	assert.Equal(t, uint8(19), vm.SoundTimer())

	step(t, vm, 18)
	assert.Equal(t, uint8(0), vm.DelayTimer())
	assert.Equal(t, uint8(1), vm.SoundTimer())

	step(t, vm, 5)
	assert.Equal(t, uint8(0), vm.DelayTimer())
	assert.Equal(t, uint8(0), vm.SoundTimer())
}

func TestReadDelayTimer(t *testing.T) {
	vm := newTestVM(t, 0xF407)
	vm.delayTimer = 33
	step(t, vm, 1)
	assert.Equal(t, uint8(33), vm.Register(4))
	assert.Equal(t, uint8(32), vm.DelayTimer())
}

func TestRandom(t *testing.T) {
	vm := NewC8VM(WithRandomSource(fixedRandom(0xA5)))
	assert.NoError(t, vm.Load([]byte{0xC2, 0x0F, 0xC3, 0xFF}))
	step(t, vm, 2)
	assert.Equal(t, uint8(0x05), vm.Register(2))
	assert.Equal(t, uint8(0xA5), vm.Register(3))
}

func TestIndexInstructions(t *testing.T) {
	vm := newTestVM(t, 0xA123, 0xF51E)
	vm.regV[5] = 0x10
	vm.regV[0xF] = 0x99
	step(t, vm, 1)
	assert.Equal(t, uint16(0x123), vm.I())
	step(t, vm, 1)
	assert.Equal(t, uint16(0x133), vm.I())
	assert.Equal(t, uint8(0x99), vm.Register(0xF), "Fx1E does not set VF")

	vm = newTestVM(t, 0xF01E)
	vm.regI = 0xFFFF
	vm.regV[0] = 2
	step(t, vm, 1)
	assert.Equal(t, uint16(1), vm.I())
}

func TestFontLocation(t *testing.T) {
	for digit := uint8(0); digit <= 0xF; digit++ {
		vm := newTestVM(t, 0xF629)
		vm.regV[6] = digit
		step(t, vm, 1)
		assert.Equal(t, uint16(fontStartAddr)+5*uint16(digit), vm.I())
		assert.Equal(t, fontset[5*int(digit)], vm.Memory(vm.I()))
	}
}

func TestBCD(t *testing.T) {
	vm := NewC8VM()
	assert.NoError(t, vm.Load([]byte{0xF2, 0x33}))

	for v := 0; v <= 0xFF; v++ {
		vm.pc = 0x200
		vm.regV[2] = uint8(v)
		vm.regI = 0x300
		step(t, vm, 1)

		h, tens, o := vm.Memory(0x300), vm.Memory(0x301), vm.Memory(0x302)
		if 100*int(h)+10*int(tens)+int(o) != v || h > 9 || tens > 9 || o > 9 {
			t.Fatalf("BCD of %d: got %d %d %d", v, h, tens, o)
		}
		assert.Equal(t, uint8(v), vm.Register(2))
	}
}

func TestStoreAndLoadRegisters(t *testing.T) {
	vm := newTestVM(t,
		0xA400, // LD I, 0x400
		0xF755, // LD [I], V7
		0x6000, // LD V0, 0
		0x6700, // LD V7, 0
		0xF765, // LD V7, [I]
	)
	for i := range 16 {
		vm.regV[i] = uint8(0x10 + i)
	}
	want := vm.regV

	step(t, vm, 2)
	for i := range 8 {
		assert.Equal(t, uint8(0x10+i), vm.Memory(0x400+uint16(i)))
	}
	assert.Equal(t, uint8(0), vm.Memory(0x408), "only V0 through Vx are stored")

	step(t, vm, 3)
	assert.Equal(t, want, vm.regV)
	assert.Equal(t, uint16(0x400), vm.I())
}

func TestMemoryThroughIndexWraps(t *testing.T) {
	vm := newTestVM(t, 0xF155)
	vm.regI = 0xFFF
	vm.regV[0], vm.regV[1] = 0xAA, 0xBB
	step(t, vm, 1)
	assert.Equal(t, uint8(0xAA), vm.Memory(0xFFF))
	assert.Equal(t, uint8(0xBB), vm.Memory(0x000))
}
