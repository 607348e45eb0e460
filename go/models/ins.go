package models

import (
	"fmt"
)

type Ins interface {
	Addr() uint64
	Bytes() []byte
	Mnemonic() string
	OpStr() string
}

// Instruction is one decoded unit. A cpu model fills in Size, the
// classification flags and the disassembly text.
type Instruction struct {
	Address uint64
	// raw bytes presented to the decoder, trimmed to Size once decoded
	Opcode []byte
	Size   uint32
	Arch   ArchTag
	Thumb  bool

	// jumps, conditional or not
	Branch bool
	// anything that can leave straight-line execution: branch, call, return, trap
	ControlFlow bool

	mnemonic string
	opStr    string
}

// NewInstruction copies opcode, so the caller may reuse its buffer.
func NewInstruction(addr uint64, opcode []byte) *Instruction {
	buf := make([]byte, len(opcode))
	copy(buf, opcode)
	return &Instruction{
		Address: addr,
		Opcode:  buf,
		Size:    uint32(len(buf)),
	}
}

// SetDecoded records a decode result.
func (i *Instruction) SetDecoded(size uint32, mnemonic, opStr string) {
	if int(size) < len(i.Opcode) {
		i.Opcode = i.Opcode[:size]
	}
	i.Size = size
	i.mnemonic = mnemonic
	i.opStr = opStr
}

func (i *Instruction) Addr() uint64     { return i.Address }
func (i *Instruction) Bytes() []byte    { return i.Opcode }
func (i *Instruction) Mnemonic() string { return i.mnemonic }
func (i *Instruction) OpStr() string    { return i.opStr }

func (i *Instruction) NextAddress() uint64 {
	return i.Address + uint64(i.Size)
}

func (i *Instruction) Disassembly() string {
	if i.opStr == "" {
		return i.mnemonic
	}
	return i.mnemonic + " " + i.opStr
}

func (i *Instruction) String() string {
	return fmt.Sprintf("%#x: %s", i.Address, i.Disassembly())
}
