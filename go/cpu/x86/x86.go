package x86

import (
	"github.com/pkg/errors"
	"golang.org/x/arch/x86/x86asm"

	dec "github.com/lunixbochs/archcore/go/cpu"
	"github.com/lunixbochs/archcore/go/models"
	"github.com/lunixbochs/archcore/go/models/cpu"
)

var tables = map[int]*cpu.RegTable{
	32: newRegTable(32),
	64: newRegTable(64),
}

// Builder makes x86 (Mode 32) or x86-64 (Mode 64) cpu models.
type Builder struct {
	Mode int
}

func (b *Builder) New(hooks *cpu.Hooks) (cpu.Cpu, error) {
	table, ok := tables[b.Mode]
	if !ok {
		return nil, errors.Errorf("unsupported x86 mode: %d", b.Mode)
	}
	arch := models.ARCH_X86
	if b.Mode == 64 {
		arch = models.ARCH_X86_64
	}
	c := &X86Cpu{mode: b.Mode}
	c.Base = cpu.NewBase(c, arch, table, models.LE_ENDIANNESS, hooks)
	c.dec = dec.NewDecoder(c.decode)
	return c, nil
}

type X86Cpu struct {
	*cpu.Base
	mode int
	dec  *dec.Decoder
}

func (c *X86Cpu) Disassemble(inst *models.Instruction) error {
	inst.Arch = c.Arch()
	inst.Thumb = false
	return c.dec.Decode(inst)
}

func (c *X86Cpu) decode(code []byte, addr uint64) (*dec.Decoded, error) {
	in, err := x86asm.Decode(code, c.mode)
	if err != nil {
		return nil, err
	}
	mnemonic, opStr := dec.SplitText(x86asm.IntelSyntax(in, addr, nil))
	branch, flow := classify(in.Op)
	return &dec.Decoded{
		Size:        uint32(in.Len),
		Mnemonic:    mnemonic,
		OpStr:       opStr,
		Branch:      branch,
		ControlFlow: flow,
	}, nil
}

func (c *X86Cpu) Clear() {
	c.Base.Clear()
	c.dec.Reset()
}

var branches = map[x86asm.Op]bool{
	x86asm.JA: true, x86asm.JAE: true, x86asm.JB: true, x86asm.JBE: true,
	x86asm.JCXZ: true, x86asm.JE: true, x86asm.JECXZ: true, x86asm.JG: true,
	x86asm.JGE: true, x86asm.JL: true, x86asm.JLE: true, x86asm.JMP: true,
	x86asm.JNE: true, x86asm.JNO: true, x86asm.JNP: true, x86asm.JNS: true,
	x86asm.JO: true, x86asm.JP: true, x86asm.JRCXZ: true, x86asm.JS: true,
	x86asm.LJMP: true, x86asm.LOOP: true, x86asm.LOOPE: true, x86asm.LOOPNE: true,
}

// calls, returns, traps and halts
var controlFlow = map[x86asm.Op]bool{
	x86asm.CALL: true, x86asm.LCALL: true,
	x86asm.RET: true, x86asm.LRET: true,
	x86asm.IRET: true, x86asm.IRETD: true, x86asm.IRETQ: true,
	x86asm.INT: true, x86asm.INTO: true, x86asm.ICEBP: true,
	x86asm.SYSCALL: true, x86asm.SYSENTER: true, x86asm.SYSEXIT: true, x86asm.SYSRET: true,
	x86asm.HLT: true, x86asm.UD0: true, x86asm.UD1: true, x86asm.UD2: true,
}

func classify(op x86asm.Op) (branch, flow bool) {
	branch = branches[op]
	return branch, branch || controlFlow[op]
}
