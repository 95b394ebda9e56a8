package internal

// Op identifies a decoded CHIP-8 instruction.
type Op uint8

// All instructions of the base CHIP-8 instruction set.
const (
	OpUnknown Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEByte     // 3xkk
	OpSNEByte    // 4xkk
	OpSEReg      // 5xy0
	OpLDByte     // 6xkk
	OpADDByte    // 7xkk
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDIVx      // Fx55
	OpLDVxI      // Fx65
)

var opNames = [...]string{
	OpUnknown: "????",
	OpCLS:     "00E0",
	OpRET:     "00EE",
	OpJP:      "1nnn",
	OpCALL:    "2nnn",
	OpSEByte:  "3xkk",
	OpSNEByte: "4xkk",
	OpSEReg:   "5xy0",
	OpLDByte:  "6xkk",
	OpADDByte: "7xkk",
	OpLDReg:   "8xy0",
	OpOR:      "8xy1",
	OpAND:     "8xy2",
	OpXOR:     "8xy3",
	OpADDReg:  "8xy4",
	OpSUB:     "8xy5",
	OpSHR:     "8xy6",
	OpSUBN:    "8xy7",
	OpSHL:     "8xyE",
	OpSNEReg:  "9xy0",
	OpLDI:     "Annn",
	OpJPV0:    "Bnnn",
	OpRND:     "Cxkk",
	OpDRW:     "Dxyn",
	OpSKP:     "Ex9E",
	OpSKNP:    "ExA1",
	OpLDVxDT:  "Fx07",
	OpLDVxK:   "Fx0A",
	OpLDDTVx:  "Fx15",
	OpLDSTVx:  "Fx18",
	OpADDI:    "Fx1E",
	OpLDF:     "Fx29",
	OpLDB:     "Fx33",
	OpLDIVx:   "Fx55",
	OpLDVxI:   "Fx65",
}

// String returns the opcode pattern of the instruction, for example "8xy4".
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return opNames[OpUnknown]
}

// Instruction is a decoded 16-bit opcode.
type Instruction struct {
	Op   Op
	Word uint16 // raw opcode

	X   uint8  // the lower 4 bits of the high byte of the instruction
	Y   uint8  // the upper 4 bits of the low byte of the instruction
	N   uint8  // the lowest 4 bits of the instruction
	KK  uint8  // the lowest 8 bits of the instruction
	NNN uint16 // the lowest 12 bits of the instruction
}

// Decode splits an opcode into its fields and identifies the instruction.
// Words that match no instruction decode to OpUnknown.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		X:    uint8((word >> 8) & 0x000F),
		Y:    uint8((word >> 4) & 0x000F),
		N:    uint8(word & 0x000F),
		KK:   uint8(word & 0x00FF),
		NNN:  word & 0x0FFF,
	}
	ins.Op = decodeOp(word, ins.N, ins.KK)
	return ins
}

func decodeOp(word uint16, n, kk uint8) Op {
	switch word & 0xF000 { // Compare against the first 4 bits of the instruction only
	case 0x0000:
		switch word {
		case 0x00E0:
			return OpCLS
		case 0x00EE:
			return OpRET
		}
	case 0x1000:
		return OpJP
	case 0x2000:
		return OpCALL
	case 0x3000:
		return OpSEByte
	case 0x4000:
		return OpSNEByte
	case 0x5000:
		if n == 0x0 {
			return OpSEReg
		}
	case 0x6000:
		return OpLDByte
	case 0x7000:
		return OpADDByte
	case 0x8000:
		switch n {
		case 0x0:
			return OpLDReg
		case 0x1:
			return OpOR
		case 0x2:
			return OpAND
		case 0x3:
			return OpXOR
		case 0x4:
			return OpADDReg
		case 0x5:
			return OpSUB
		case 0x6:
			return OpSHR
		case 0x7:
			return OpSUBN
		case 0xE:
			return OpSHL
		}
	case 0x9000:
		if n == 0x0 {
			return OpSNEReg
		}
	case 0xA000:
		return OpLDI
	case 0xB000:
		return OpJPV0
	case 0xC000:
		return OpRND
	case 0xD000:
		return OpDRW
	case 0xE000:
		switch kk {
		case 0x9E:
			return OpSKP
		case 0xA1:
			return OpSKNP
		}
	case 0xF000:
		switch kk {
		case 0x07:
			return OpLDVxDT
		case 0x0A:
			return OpLDVxK
		case 0x15:
			return OpLDDTVx
		case 0x18:
			return OpLDSTVx
		case 0x1E:
			return OpADDI
		case 0x29:
			return OpLDF
		case 0x33:
			return OpLDB
		case 0x55:
			return OpLDIVx
		case 0x65:
			return OpLDVxI
		}
	}
	return OpUnknown
}
