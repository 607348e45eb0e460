package arm

import (
	"strings"

	"golang.org/x/arch/arm/armasm"

	dec "github.com/lunixbochs/archcore/go/cpu"
	"github.com/lunixbochs/archcore/go/models"
	"github.com/lunixbochs/archcore/go/models/cpu"
)

var table = newRegTable()

type Builder struct{}

func (b *Builder) New(hooks *cpu.Hooks) (cpu.Cpu, error) {
	c := &ArmCpu{}
	c.Base = cpu.NewBase(c, models.ARCH_ARM32, table, models.LE_ENDIANNESS, hooks)
	c.arm = dec.NewDecoder(decoder(armasm.ModeARM))
	c.thumbDec = dec.NewDecoder(thumbDecode)
	return c, nil
}

type ArmCpu struct {
	*cpu.Base
	thumb    bool
	arm      *dec.Decoder
	thumbDec *dec.Decoder
}

func (c *ArmCpu) IsThumb() bool       { return c.thumb }
func (c *ArmCpu) SetThumb(state bool) { c.thumb = state }

func (c *ArmCpu) Disassemble(inst *models.Instruction) error {
	inst.Arch = c.Arch()
	inst.Thumb = c.thumb
	if c.thumb {
		return c.thumbDec.Decode(inst)
	}
	return c.arm.Decode(inst)
}

func (c *ArmCpu) Clear() {
	c.Base.Clear()
	c.thumb = false
	c.arm.Reset()
	c.thumbDec.Reset()
}

func decoder(mode armasm.Mode) dec.DecodeFunc {
	return func(code []byte, addr uint64) (*dec.Decoded, error) {
		in, err := armasm.Decode(code, mode)
		if err != nil {
			return nil, err
		}
		mnemonic, opStr := dec.SplitText(armasm.GNUSyntax(in))
		branch, flow := classify(in)
		return &dec.Decoded{
			Size:        uint32(in.Len),
			Mnemonic:    mnemonic,
			OpStr:       opStr,
			Branch:      branch,
			ControlFlow: flow,
		}, nil
	}
}

// opName strips the condition and flag-setting suffixes: "ADD.S.EQ" -> "ADD"
func opName(op armasm.Op) string {
	name := op.String()
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}

var branches = map[string]bool{
	"B": true, "BX": true, "BXJ": true,
}

var calls = map[string]bool{
	"BL": true, "BLX": true, "SVC": true, "BKPT": true,
}

// these name pc as an operand without writing it
var readsFirstArg = map[string]bool{
	"CMP": true, "CMN": true, "TST": true, "TEQ": true, "PUSH": true,
}

func classify(in armasm.Inst) (branch, flow bool) {
	name := opName(in.Op)
	if branches[name] {
		return true, true
	}
	return false, calls[name] || writesPC(name, in)
}

func writesPC(name string, in armasm.Inst) bool {
	if strings.HasPrefix(name, "STR") || strings.HasPrefix(name, "STM") || readsFirstArg[name] {
		return false
	}
	if name == "POP" || strings.HasPrefix(name, "LDM") {
		for _, arg := range in.Args {
			if list, ok := arg.(armasm.RegList); ok && list&(1<<15) != 0 {
				return true
			}
		}
		return false
	}
	reg, ok := in.Args[0].(armasm.Reg)
	return ok && reg == armasm.PC
}
