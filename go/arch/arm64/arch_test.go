package arm64

import (
	"testing"
)

// mov x1, #100; subs x1, x1, #1; b.ne .-4; ret
var testCode = []byte{
	0x81, 0x0c, 0x80, 0xd2,
	0x21, 0x04, 0x00, 0xf1,
	0xe1, 0xff, 0xff, 0x54,
	0xc0, 0x03, 0x5f, 0xd6,
}

func TestArm64(t *testing.T)          { Arch.SmokeTest(t) }
func TestArm64Disas(t *testing.T)     { Arch.TestDisas(t, testCode) }
func BenchmarkArm64Regs(b *testing.B) { Arch.BenchRegs(b) }
