package cpu

import (
	"github.com/lunixbochs/archcore/go/models"
)

// a small 32-bit model used by the package tests
const (
	tR0 models.RegId = 0x10 + iota
	tR0L
	tR0H
	tW0
	tZero
	tPC
	tSP
	tFlags
	tZF
)

var testRegs = []*models.Register{
	{Id: tR0, Name: "r0", High: 31, Low: 0, Parent: tR0},
	{Id: tR0L, Name: "r0l", High: 7, Low: 0, Parent: tR0},
	{Id: tR0H, Name: "r0h", High: 15, Low: 8, Parent: tR0},
	{Id: tW0, Name: "w0", High: 15, Low: 0, Parent: tR0, ZeroExtend: true},
	{Id: tZero, Name: "zero", High: 31, Low: 0, Parent: tZero, Immutable: true},
	{Id: tPC, Name: "pc", High: 31, Low: 0, Parent: tPC},
	{Id: tSP, Name: "sp", High: 31, Low: 0, Parent: tSP},
	{Id: tFlags, Name: "flags", High: 31, Low: 0, Parent: tFlags},
	{Id: tZF, Name: "zf", High: 6, Low: 6, Parent: tFlags},
}

var testTable = NewRegTable(testRegs, []models.RegId{tZF}, tPC, tSP, 4)

type testCpu struct {
	*Base
	decoded int
}

type testBuilder struct{}

func (testBuilder) New(hooks *Hooks) (Cpu, error) {
	c := &testCpu{}
	c.Base = NewBase(c, models.ARCH_X86, testTable, models.LE_ENDIANNESS, hooks)
	return c, nil
}

// every byte decodes as a one byte instruction; 0xc3 is control flow
func (c *testCpu) Disassemble(inst *models.Instruction) error {
	c.decoded++
	inst.Arch = c.Arch()
	inst.ControlFlow = len(inst.Opcode) > 0 && inst.Opcode[0] == 0xc3
	inst.SetDecoded(1, "db", "")
	return nil
}

func newTestCpu() (*testCpu, *Hooks) {
	hooks := NewHooks()
	c, _ := testBuilder{}.New(hooks)
	return c.(*testCpu), hooks
}
