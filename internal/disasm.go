package internal

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Disassemble returns the assembly form of an opcode, for example
// "add V1, V2". Words that are not instructions are shown as data.
func Disassemble(word uint16) string {
	name := mnemonic(word)
	if name == "" {
		return fmt.Sprintf(".word $%04X", word)
	}
	if params := operands(Decode(word)); params != "" {
		return name + " " + params
	}
	return name
}

// mnemonic looks up the instruction name in the CHIP-8 opcode table.
func mnemonic(word uint16) string {
	for _, op := range chip8.Opcodes[int(word>>12)] {
		if op.Instruction != nil && op.Info.Mask&word == op.Info.Value {
			return op.Instruction.Name
		}
	}
	return ""
}

func operands(ins Instruction) string {
	switch ins.Op {
	case OpJP, OpCALL:
		return fmt.Sprintf("$%03X", ins.NNN)
	case OpJPV0:
		return fmt.Sprintf("V0, $%03X", ins.NNN)
	case OpSEByte, OpSNEByte, OpLDByte, OpADDByte, OpRND:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.KK)
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR, OpADDReg, OpSUB, OpSUBN:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case OpSHR, OpSHL, OpSKP, OpSKNP:
		return fmt.Sprintf("V%X", ins.X)
	case OpLDI:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case OpDRW:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)
	case OpLDVxDT:
		return fmt.Sprintf("V%X, DT", ins.X)
	case OpLDVxK:
		return fmt.Sprintf("V%X, K", ins.X)
	case OpLDDTVx:
		return fmt.Sprintf("DT, V%X", ins.X)
	case OpLDSTVx:
		return fmt.Sprintf("ST, V%X", ins.X)
	case OpADDI:
		return fmt.Sprintf("I, V%X", ins.X)
	case OpLDF:
		return fmt.Sprintf("F, V%X", ins.X)
	case OpLDB:
		return fmt.Sprintf("B, V%X", ins.X)
	case OpLDIVx:
		return fmt.Sprintf("[I], V%X", ins.X)
	case OpLDVxI:
		return fmt.Sprintf("V%X, [I]", ins.X)
	}
	return ""
}
