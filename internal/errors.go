package internal

import (
	"errors"
	"fmt"
)

// Errors reported by the VM.
var (
	ErrProgramTooLarge = errors.New("program size exceeds the maximum size")
	ErrStackOverflow   = errors.New("stack overflow")
	ErrStackUnderflow  = errors.New("stack underflow")
)

// StepError describes an instruction that could not be executed. The program
// counter is left pointing at the faulting instruction.
type StepError struct {
	Addr   uint16 // address of the faulting instruction
	Opcode uint16
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("executing %04X (%s) at 0x%03X: %v", e.Opcode, Disassemble(e.Opcode), e.Addr, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
