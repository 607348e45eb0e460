package arm

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
		text        string
		branch      bool
		controlFlow bool
	}{
		{"0100a0e3", "mov", "mov r0, #1", false, false},
		{"010080e2", "add", "add r0, r0, #1", false, false},
		{"1eff2fe1", "bx", "bx lr", true, true},
		{"1080bde8", "pop", "pop {r4, pc}", false, true},
		{"0ef0a0e1", "mov", "mov pc, lr", false, true},
		{"feffffea", "b", "", true, true},
		{"0000000a", "beq", "", true, true},
	}
	for _, tc := range table {
		t.Run(tc.code, func(t *testing.T) {
			c := newCpu(t)
			code, err := hex.DecodeString(tc.code)
			require.NoError(t, err)
			inst := models.NewInstruction(0x1000, append(code, 0, 0, 0, 0))
			require.NoError(t, c.Disassemble(inst))
			assert.Equal(t, uint32(4), inst.Size)
			assert.Equal(t, code, inst.Bytes())
			assert.Equal(t, tc.mnemonic, inst.Mnemonic())
			if tc.text != "" {
				assert.Equal(t, tc.text, inst.Disassembly())
			}
			assert.Equal(t, tc.branch, inst.Branch)
			assert.Equal(t, tc.controlFlow, inst.ControlFlow)
			assert.False(t, inst.Thumb)
		})
	}
}

func TestThumb(t *testing.T) {
	c := newCpu(t)
	assert.False(t, c.IsThumb())
	c.SetThumb(true)
	assert.True(t, c.IsThumb())

	inst := models.NewInstruction(0x1000, []byte{0x00, 0xbf, 0, 0})
	require.NoError(t, c.Disassemble(inst))
	assert.True(t, inst.Thumb)
	assert.Equal(t, uint32(2), inst.Size)
	assert.Equal(t, "nop", inst.Disassembly())

	c.Clear()
	assert.False(t, c.IsThumb())
}

func TestDisassembleThumb(t *testing.T) {
	table := []struct {
		code        string
		size        uint32
		text        string
		branch      bool
		controlFlow bool
	}{
		{"0120", 2, "movs r0, #1", false, false},
		{"8818", 2, "adds r0, r1, r2", false, false},
		{"4900", 2, "lsls r1, r1, #1", false, false},
		{"0838", 2, "subs r0, #8", false, false},
		{"4840", 2, "eors r0, r1", false, false},
		{"0868", 2, "ldr r0, [r1]", false, false},
		{"0190", 2, "str r0, [sp, #4]", false, false},
		{"7047", 2, "bx lr", true, true},
		{"8047", 2, "blx r0", false, true},
		{"f746", 2, "mov pc, lr", false, true},
		{"10b5", 2, "push {r4, lr}", false, false},
		{"10bd", 2, "pop {r4, pc}", false, true},
		{"30bc", 2, "pop {r4, r5}", false, false},
		{"00df", 2, "svc #0", false, true},
		{"01be", 2, "bkpt #1", false, true},
		{"fee7", 2, "b .+0x0", true, true},
		{"00d0", 2, "beq .+0x4", true, true},
		{"08b1", 2, "cbz r0, .+0x6", true, true},
		{"00f000f8", 4, "bl .+0x4", false, true},
		{"fff7feff", 4, "bl .+0x0", false, true},
	}
	for _, tc := range table {
		t.Run(tc.code, func(t *testing.T) {
			c := newCpu(t)
			c.SetThumb(true)
			code, err := hex.DecodeString(tc.code)
			require.NoError(t, err)
			inst := models.NewInstruction(0x1000, append(code, 0, 0, 0, 0))
			require.NoError(t, c.Disassemble(inst))
			assert.Equal(t, tc.size, inst.Size)
			assert.Equal(t, code, inst.Bytes())
			assert.Equal(t, tc.text, inst.Disassembly())
			assert.Equal(t, tc.branch, inst.Branch)
			assert.Equal(t, tc.controlFlow, inst.ControlFlow)
			assert.True(t, inst.Thumb)
		})
	}
}

func TestThumbDecodeError(t *testing.T) {
	c := newCpu(t)
	c.SetThumb(true)
	for _, code := range [][]byte{
		{0x00},                   // truncated
		{0x00, 0xf0, 0x00},       // truncated bl pair
		{0x08, 0xbf, 0, 0},       // it block
		{0x90, 0xe8, 0x03, 0x00}, // 32-bit ldm
	} {
		inst := models.NewInstruction(0x1000, code)
		assert.Error(t, c.Disassemble(inst), "%x", code)
	}
}

func TestRegisters(t *testing.T) {
	c := newCpu(t)
	assert.Equal(t, uint32(4), c.GprSize())
	assert.Equal(t, "pc", c.ProgramCounter().Name)
	assert.Equal(t, "sp", c.StackPointer().Name)
	assert.True(t, c.IsFlag(Z))
	assert.False(t, c.IsRegister(Z))

	q1, err := c.RegisterByName("q1")
	require.NoError(t, err)
	s5, err := c.RegisterByName("s5")
	require.NoError(t, err)
	d3, err := c.RegisterByName("d3")
	require.NoError(t, err)

	parent, err := c.ParentRegister(s5.Id)
	require.NoError(t, err)
	assert.Equal(t, q1, parent)

	require.NoError(t, c.SetConcreteRegisterValue(s5, models.NewUint512(0xdeadbeef), false))
	val, err := c.ConcreteRegisterValue(q1, false)
	require.NoError(t, err)
	assert.Equal(t, models.NewUint512(0xdeadbeef).Lsh(32), val)

	val, err = c.ConcreteRegisterValue(d3, false)
	require.NoError(t, err)
	assert.True(t, val.IsZero())

	_, err = c.RegisterByName("s32")
	assert.ErrorIs(t, err, models.ErrUnknownRegister)
}
