package arm64

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/archcore/go/models"
	"github.com/lunixbochs/archcore/go/models/cpu"
)

func newCpu(t *testing.T) cpu.Cpu {
	c, err := (&Builder{}).New(cpu.NewHooks())
	require.NoError(t, err)
	return c
}

func TestDisassemble(t *testing.T) {
	table := []struct {
		code        string
		mnemonic    string
		branch      bool
		controlFlow bool
	}{
		{"1f2003d5", "nop", false, false},
		{"00040091", "add", false, false},
		{"c0035fd6", "ret", false, true},
		{"00000014", "b", true, true},
		{"00000054", "b.eq", true, true},
		{"00000094", "bl", false, true},
		{"010000d4", "svc", false, true},
		{"000000b4", "cbz", true, true},
	}
	for _, tc := range table {
		t.Run(tc.code, func(t *testing.T) {
			c := newCpu(t)
			code, err := hex.DecodeString(tc.code)
			require.NoError(t, err)
			inst := models.NewInstruction(0x1000, append(code, 0x1f, 0x20, 0x03, 0xd5))
			require.NoError(t, c.Disassemble(inst))
			assert.Equal(t, uint32(4), inst.Size)
			assert.Equal(t, code, inst.Bytes())
			assert.Equal(t, tc.mnemonic, inst.Mnemonic())
			assert.Equal(t, tc.branch, inst.Branch)
			assert.Equal(t, tc.controlFlow, inst.ControlFlow)
			assert.Equal(t, models.ARCH_AARCH64, inst.Arch)
		})
	}
}

func TestDisassembleShort(t *testing.T) {
	c := newCpu(t)
	assert.Error(t, c.Disassemble(models.NewInstruction(0, []byte{0x1f, 0x20})))
}

func TestZeroRegister(t *testing.T) {
	c := newCpu(t)
	xzr, err := c.RegisterByName("xzr")
	require.NoError(t, err)
	wzr, err := c.RegisterByName("wzr")
	require.NoError(t, err)
	require.NoError(t, c.SetConcreteRegisterValue(xzr, models.NewUint512(42), false))
	require.NoError(t, c.SetConcreteRegisterValue(wzr, models.NewUint512(42), false))
	val, err := c.ConcreteRegisterValue(xzr, false)
	require.NoError(t, err)
	assert.True(t, val.IsZero())
}

func TestWRegisters(t *testing.T) {
	c := newCpu(t)
	x1, err := c.Register(X1)
	require.NoError(t, err)
	w1, err := c.Register(W1)
	require.NoError(t, err)
	require.NoError(t, c.SetConcreteRegisterValue(x1, models.NewUint512(0xffffffffffffffff), false))
	require.NoError(t, c.SetConcreteRegisterValue(w1, models.NewUint512(2), false))
	val, err := c.ConcreteRegisterValue(x1, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), val.Uint64())

	parent, err := c.ParentRegister(W1)
	require.NoError(t, err)
	assert.Equal(t, x1, parent)
	assert.Equal(t, uint32(64), c.GprBitSize())
	assert.True(t, c.IsFlag(N))
}
