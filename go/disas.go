package archcore

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mgutz/ansi"
	"github.com/pkg/errors"

	"github.com/lunixbochs/archcore/go/models"
)

// bytes presented to the decoder per instruction
const OPCODE_WINDOW = 16

// Disassemble decodes inst in place with the active model.
func (a *Architecture) Disassemble(inst *models.Instruction) error {
	c, err := a.active()
	if err != nil {
		return errors.Wrap(err, "Architecture.Disassemble()")
	}
	return c.Disassemble(inst)
}

// DisassembleN decodes up to count instructions starting at addr. It stops
// early, without error, at the first address with no concrete value.
func (a *Architecture) DisassembleN(addr uint64, count uint) ([]*models.Instruction, error) {
	if _, err := a.active(); err != nil {
		return nil, errors.Wrap(err, "Architecture.DisassembleN()")
	}
	var out []*models.Instruction
	for uint(len(out)) < count {
		inst, err := a.step(addr)
		if err != nil {
			return nil, err
		} else if inst == nil {
			return out, nil
		}
		out = append(out, inst)
		addr = inst.NextAddress()
	}
	return out, nil
}

// DisassembleBlock decodes from addr until undefined memory or a control
// flow instruction, which is included.
func (a *Architecture) DisassembleBlock(addr uint64) ([]*models.Instruction, error) {
	if _, err := a.active(); err != nil {
		return nil, errors.Wrap(err, "Architecture.DisassembleBlock()")
	}
	var out []*models.Instruction
	for {
		inst, err := a.step(addr)
		if err != nil {
			return nil, err
		} else if inst == nil {
			return out, nil
		}
		out = append(out, inst)
		if inst.ControlFlow {
			return out, nil
		}
		addr = inst.NextAddress()
	}
}

// step decodes one instruction at addr, or returns nil if addr is undefined.
func (a *Architecture) step(addr uint64) (*models.Instruction, error) {
	if !a.cpu.IsConcreteMemoryValueDefined(addr, 1) {
		return nil, nil
	}
	window := a.cpu.ConcreteMemoryAreaValue(addr, OPCODE_WINDOW, true)
	inst := models.NewInstruction(addr, window)
	if err := a.cpu.Disassemble(inst); err != nil {
		return nil, err
	}
	if inst.Size == 0 {
		return nil, errors.Wrapf(models.ErrZeroSizeInstruction, "at %#x", addr)
	}
	return inst, nil
}

// Listing formats instructions one per line, with their bytes right aligned
// to the widest instruction. color highlights control flow.
func Listing(insts []*models.Instruction, color bool) []string {
	var width uint32
	for _, ins := range insts {
		if ins.Size > width {
			width = ins.Size
		}
	}
	out := make([]string, 0, len(insts))
	for _, ins := range insts {
		pad := strings.Repeat(" ", int(width-ins.Size)*2)
		data := pad + hex.EncodeToString(ins.Bytes())
		line := fmt.Sprintf("0x%x: %s %s", ins.Address, data, ins.Disassembly())
		if color && ins.ControlFlow {
			line = ansi.Color(line, "yellow+b")
		}
		out = append(out, line)
	}
	return out
}

// Disas returns a listing of up to count instructions at addr.
func (a *Architecture) Disas(addr uint64, count uint) (string, error) {
	insts, err := a.DisassembleN(addr, count)
	if err != nil {
		return "", err
	}
	return strings.Join(Listing(insts, false), "\n"), nil
}
