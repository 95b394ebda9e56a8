package internal

import (
	"github.com/retroenv/retrogolib/log"
)

// Step executes exactly one instruction and then decrements both timers.
// The program counter is advanced past the instruction before it executes.
// On a stack fault a *StepError is returned and the VM is left at the
// faulting instruction without ticking the timers. The program counter is
// kept inside the 12-bit address space.
func (vm *C8VM) Step() error {
	addr := vm.pc
	word := uint16(vm.memory[addr&addrMask])<<8 | uint16(vm.memory[(addr+1)&addrMask]) // 16-bit instruction opcode
	vm.pc += 2

	ins := Decode(word)
	if vm.logger != nil {
		vm.logger.Debug("Step",
			log.Hex("pc", addr),
			log.Hex("opcode", word),
			log.String("instruction", Disassemble(word)))
	}

	if err := vm.execute(ins); err != nil {
		vm.pc = addr & addrMask
		return &StepError{Addr: addr, Opcode: word, Err: err}
	}

	vm.pc &= addrMask
	vm.decrementTimers()
	return nil
}

func (vm *C8VM) execute(ins Instruction) error {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpCLS: // CLS
		vm.pixels.Clear()
		vm.drawFlag = true

	case OpRET: // RET
		if vm.sp == 0 {
			return ErrStackUnderflow
		}
		vm.sp--
		vm.pc = vm.stack[vm.sp]

	case OpJP: // JP nnn
		vm.pc = ins.NNN

	case OpCALL: // CALL nnn
		if int(vm.sp) >= stackSize {
			return ErrStackOverflow
		}
		vm.stack[vm.sp] = vm.pc
		vm.sp++
		vm.pc = ins.NNN

	case OpSEByte: // SE Vx, kk
		vm.skipIf(vm.regV[x] == ins.KK)

	case OpSNEByte: // SNE Vx, kk
		vm.skipIf(vm.regV[x] != ins.KK)

	case OpSEReg: // SE Vx, Vy
		vm.skipIf(vm.regV[x] == vm.regV[y])

	case OpLDByte: // LD Vx, kk
		vm.regV[x] = ins.KK

	case OpADDByte: // ADD Vx, kk
		vm.regV[x] += ins.KK

	case OpLDReg: // LD Vx, Vy
		vm.regV[x] = vm.regV[y]

	case OpOR: // OR Vx, Vy
		vm.regV[x] |= vm.regV[y]

	case OpAND: // AND Vx, Vy
		vm.regV[x] &= vm.regV[y]

	case OpXOR: // XOR Vx, Vy
		vm.regV[x] ^= vm.regV[y]

	// VF is written after the result so that it holds the flag even when
	// x or y is 0xF.
	case OpADDReg: // ADD Vx, Vy
		sum := uint16(vm.regV[x]) + uint16(vm.regV[y])
		vm.regV[x] = uint8(sum)
		vm.regV[0xF] = flag(sum > 0xFF)

	case OpSUB: // SUB Vx, Vy
		vx, vy := vm.regV[x], vm.regV[y]
		vm.regV[x] = vx - vy
		vm.regV[0xF] = flag(vx > vy)

	case OpSHR: // SHR Vx
		vx := vm.regV[x]
		vm.regV[x] = vx >> 1
		vm.regV[0xF] = vx & 0x01

	case OpSUBN: // SUBN Vx, Vy
		vx, vy := vm.regV[x], vm.regV[y]
		vm.regV[x] = vy - vx
		vm.regV[0xF] = flag(vy > vx)

	case OpSHL: // SHL Vx
		vx := vm.regV[x]
		vm.regV[x] = vx << 1
		vm.regV[0xF] = vx >> 7

	case OpSNEReg: // SNE Vx, Vy
		vm.skipIf(vm.regV[x] != vm.regV[y])

	case OpLDI: // LD I, nnn
		vm.regI = ins.NNN

	case OpJPV0: // JP V0, nnn
		vm.pc = ins.NNN + uint16(vm.regV[0])

	case OpRND: // RND Vx, kk
		vm.regV[x] = vm.rng.Byte() & ins.KK

	case OpDRW: // DRW Vx, Vy, n
		var sprite [15]uint8
		for row := uint16(0); row < uint16(ins.N); row++ {
			sprite[row] = vm.memory[(vm.regI+row)&addrMask]
		}
		vx, vy := vm.regV[x], vm.regV[y]
		vm.regV[0xF] = 0
		if vm.pixels.drawSprite(vx, vy, sprite[:ins.N]) {
			vm.regV[0xF] = 1
		}
		vm.drawFlag = true

	case OpSKP: // SKP Vx
		vm.skipIf(vm.keypad.Pressed(vm.regV[x]))

	case OpSKNP: // SKNP Vx
		vm.skipIf(!vm.keypad.Pressed(vm.regV[x]))

	case OpLDVxDT: // LD Vx, DT
		vm.regV[x] = vm.delayTimer

	case OpLDVxK: // LD Vx, K
		// Wait by executing this instruction again on the next step.
		if key, ok := vm.keypad.FirstPressed(); ok {
			vm.regV[x] = key
		} else {
			vm.pc -= 2
		}

	case OpLDDTVx: // LD DT, Vx
		vm.delayTimer = vm.regV[x]

	case OpLDSTVx: // LD ST, Vx
		vm.soundTimer = vm.regV[x]

	case OpADDI: // ADD I, Vx
		vm.regI += uint16(vm.regV[x])

	case OpLDF: // LD F, Vx
		vm.regI = fontStartAddr + fontGlyphSize*uint16(vm.regV[x])

	case OpLDB: // LD B, Vx
		vx := vm.regV[x]
		vm.memory[vm.regI&addrMask] = vx / 100
		vm.memory[(vm.regI+1)&addrMask] = (vx / 10) % 10
		vm.memory[(vm.regI+2)&addrMask] = vx % 10

	case OpLDIVx: // LD [I], Vx
		for i := uint16(0); i <= uint16(x); i++ {
			vm.memory[(vm.regI+i)&addrMask] = vm.regV[i]
		}

	case OpLDVxI: // LD Vx, [I]
		for i := uint16(0); i <= uint16(x); i++ {
			vm.regV[i] = vm.memory[(vm.regI+i)&addrMask]
		}

	case OpUnknown:
		if vm.logger != nil {
			vm.logger.Debug("Ignoring unknown opcode", log.Hex("opcode", ins.Word))
		}
	}
	return nil
}

func (vm *C8VM) skipIf(cond bool) {
	if cond {
		vm.pc += 2
	}
}

func flag(set bool) uint8 {
	if set {
		return 1
	}
	return 0
}
