package arm64

import (
	"golang.org/x/arch/arm64/arm64asm"

	dec "github.com/lunixbochs/archcore/go/cpu"
	"github.com/lunixbochs/archcore/go/models"
	"github.com/lunixbochs/archcore/go/models/cpu"
)

var table = newRegTable()

type Builder struct{}

func (b *Builder) New(hooks *cpu.Hooks) (cpu.Cpu, error) {
	c := &Arm64Cpu{}
	c.Base = cpu.NewBase(c, models.ARCH_AARCH64, table, models.LE_ENDIANNESS, hooks)
	c.dec = dec.NewDecoder(decode)
	return c, nil
}

type Arm64Cpu struct {
	*cpu.Base
	dec *dec.Decoder
}

func (c *Arm64Cpu) Disassemble(inst *models.Instruction) error {
	inst.Arch = c.Arch()
	inst.Thumb = false
	return c.dec.Decode(inst)
}

func (c *Arm64Cpu) Clear() {
	c.Base.Clear()
	c.dec.Reset()
}

// every instruction is 4 bytes
func decode(code []byte, addr uint64) (*dec.Decoded, error) {
	in, err := arm64asm.Decode(code)
	if err != nil {
		return nil, err
	}
	mnemonic, opStr := dec.SplitText(arm64asm.GNUSyntax(in))
	return &dec.Decoded{
		Size:        4,
		Mnemonic:    mnemonic,
		OpStr:       opStr,
		Branch:      branches[in.Op],
		ControlFlow: branches[in.Op] || controlFlow[in.Op],
	}, nil
}

// B covers b.cond
var branches = map[arm64asm.Op]bool{
	arm64asm.B: true, arm64asm.BR: true,
	arm64asm.CBZ: true, arm64asm.CBNZ: true,
	arm64asm.TBZ: true, arm64asm.TBNZ: true,
}

var controlFlow = map[arm64asm.Op]bool{
	arm64asm.BL: true, arm64asm.BLR: true,
	arm64asm.RET: true, arm64asm.ERET: true, arm64asm.DRPS: true,
	arm64asm.SVC: true, arm64asm.HVC: true, arm64asm.SMC: true,
	arm64asm.BRK: true, arm64asm.HLT: true,
}
