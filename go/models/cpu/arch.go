package cpu

import (
	"testing"

	"github.com/lunixbochs/archcore/go/models"
)

type Builder interface {
	New(hooks *Hooks) (Cpu, error)
}

// Arch binds an architecture tag to the builder of its cpu model.
type Arch struct {
	Tag  models.ArchTag
	Name string
	Bits int
	Cpu  Builder
}

func (a *Arch) String() string {
	return a.Name
}

func (a *Arch) SmokeTest(t *testing.T) {
	c, err := a.Cpu.New(NewHooks())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if c.Arch() != a.Tag {
		t.Fatalf("%s: cpu reports arch %v", a.Name, c.Arch())
	}
	if c.GprBitSize() != uint32(a.Bits) {
		t.Fatalf("%s: gpr is %d bits, expected %d", a.Name, c.GprBitSize(), a.Bits)
	}
	sp := c.StackPointer()
	if err := c.SetConcreteRegisterValue(sp, models.NewUint512(0x1000), false); err != nil {
		t.Fatal(err)
	}
	val, err := c.ConcreteRegisterValue(sp, false)
	if err != nil {
		t.Fatal(err)
	}
	if val.Uint64() != 0x1000 {
		t.Fatal(a.Name + " failed to read/write stack pointer")
	}
	c.Clear()
	if val, _ := c.ConcreteRegisterValue(sp, false); !val.IsZero() {
		t.Fatal(a.Name + " stack pointer survived Clear()")
	}
}

// TestDisas decodes code back to back and expects it to decode exactly.
func (a *Arch) TestDisas(t *testing.T, code []byte) {
	c, err := a.Cpu.New(NewHooks())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	var addr uint64 = 0x1000
	for off := 0; off < len(code); {
		inst := models.NewInstruction(addr+uint64(off), code[off:])
		if err := c.Disassemble(inst); err != nil {
			t.Fatalf("%s: %v", a.Name, err)
		}
		if inst.Size == 0 {
			t.Fatalf("%s: zero-size instruction at %#x", a.Name, inst.Address)
		}
		t.Log(inst)
		off += int(inst.Size)
		if off > len(code) {
			t.Fatalf("%s: decode ran past the end of code", a.Name)
		}
	}
}

func (a *Arch) BenchRegs(b *testing.B) {
	c, err := a.Cpu.New(NewHooks())
	if err != nil {
		b.Fatal(err)
	}
	defer c.Close()
	regs := c.ParentRegisters()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg := regs[i%len(regs)]
		c.SetConcreteRegisterValue(reg, models.NewUint512(uint64(i)&0xff), false)
		c.ConcreteRegisterValue(reg, false)
	}
}
