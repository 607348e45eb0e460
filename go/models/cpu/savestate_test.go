package cpu

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"

	"github.com/lunixbochs/archcore/go/models"
)

func TestSaveRestore(t *testing.T) {
	c, _ := newTestCpu()
	c.SetConcreteRegisterValue(reg(t, tR0), models.NewUint512(0x11223344), false)
	c.SetConcreteRegisterValue(c.ProgramCounter(), models.NewUint512(0x1000), false)
	c.SetConcreteMemoryAreaValue(0x1ffe, asdf, false)
	c.SetConcreteMemoryAreaValue(0x8000, []byte{0xc3}, false)
	c.SetMemoryExclusiveAccess(true)

	data, err := Save(c)
	if err != nil {
		t.Fatal(err)
	}
	c2, _ := newTestCpu()
	c2.SetConcreteMemoryValue(0x9000, 1, false)
	if err := Restore(c2, data); err != nil {
		t.Fatal(err)
	}
	if val, _ := c2.ConcreteRegisterValue(reg(t, tR0H), false); val.Uint64() != 0x33 {
		t.Fatalf("r0h = %s", val)
	}
	if val, _ := c2.ConcreteRegisterValue(c2.ProgramCounter(), false); val.Uint64() != 0x1000 {
		t.Fatalf("pc = %s", val)
	}
	if tmp := c2.ConcreteMemoryAreaValue(0x1ffe, 4, false); !bytes.Equal(tmp, asdf) {
		t.Fatalf("memory = %q", tmp)
	}
	if c2.IsConcreteMemoryValueDefined(0x9000, 1) {
		t.Fatal("restore kept old memory")
	}
	if !c2.IsMemoryExclusiveAccess() {
		t.Fatal("exclusive flag not restored")
	}
	if len(c2.ConcreteMemoryRegions()) != 2 {
		t.Fatalf("regions: %v", c2.ConcreteMemoryRegions())
	}
}

func TestRestoreCorrupt(t *testing.T) {
	c, _ := newTestCpu()
	c.SetConcreteMemoryAreaValue(0x1000, asdf, false)
	data, err := Save(c)
	if err != nil {
		t.Fatal(err)
	}
	bad := append([]byte(nil), data...)
	bad[len(bad)-1] ^= 0xff
	if err := Restore(c, bad); !errors.Is(err, ErrBadSnapshot) {
		t.Fatalf("corrupt body: %v", err)
	}
	if err := Restore(c, data[:10]); !errors.Is(err, ErrBadSnapshot) {
		t.Fatalf("short header: %v", err)
	}
	bad = append([]byte(nil), data...)
	bad[0] = 'X'
	if err := Restore(c, bad); !errors.Is(err, ErrBadSnapshot) {
		t.Fatalf("bad magic: %v", err)
	}
	// failed restores leave state alone
	if tmp := c.ConcreteMemoryAreaValue(0x1000, 4, false); !bytes.Equal(tmp, asdf) {
		t.Fatal("failed restore changed memory")
	}
}
