package x86

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/archcore/go/models"
	"github.com/lunixbochs/archcore/go/models/cpu"
)

func newCpu(t *testing.T, mode int) cpu.Cpu {
	c, err := (&Builder{Mode: mode}).New(cpu.NewHooks())
	require.NoError(t, err)
	return c
}

func TestDisassemble(t *testing.T) {
	table := []struct {
		mode        int
		code        string
		size        uint32
		text        string
		branch      bool
		controlFlow bool
	}{
		{64, "48c7c001000000", 7, "mov rax, 0x1", false, false},
		{64, "4889d8", 3, "mov rax, rbx", false, false},
		{64, "90", 1, "nop", false, false},
		{64, "c3", 1, "ret", false, true},
		{64, "e800000000", 5, "call 0x1005", false, true},
		{64, "ebfe", 2, "jmp 0x1000", true, true},
		{64, "0f05", 2, "syscall", false, true},
		{32, "b801000000", 5, "mov eax, 0x1", false, false},
		{32, "89d8", 2, "mov eax, ebx", false, false},
	}
	for _, tc := range table {
		t.Run(tc.code, func(t *testing.T) {
			c := newCpu(t, tc.mode)
			code, err := hex.DecodeString(tc.code)
			require.NoError(t, err)
			// trailing bytes must not be consumed
			inst := models.NewInstruction(0x1000, append(code, 0x90, 0x90))
			require.NoError(t, c.Disassemble(inst))
			assert.Equal(t, tc.size, inst.Size)
			assert.Equal(t, code, inst.Bytes())
			assert.Equal(t, tc.text, inst.Disassembly())
			assert.Equal(t, tc.branch, inst.Branch)
			assert.Equal(t, tc.controlFlow, inst.ControlFlow)
			assert.Equal(t, c.Arch(), inst.Arch)
		})
	}
}

func TestDisassembleTruncated(t *testing.T) {
	c := newCpu(t, 64)
	inst := models.NewInstruction(0x1000, []byte{0x48, 0xc7})
	assert.Error(t, c.Disassemble(inst))
	assert.Error(t, c.Disassemble(models.NewInstruction(0, nil)))
}

func TestDisassembleCache(t *testing.T) {
	c := newCpu(t, 64)
	inst := models.NewInstruction(0x1000, []byte{0xc3, 0, 0})
	require.NoError(t, c.Disassemble(inst))
	// same address, different bytes
	inst = models.NewInstruction(0x1000, []byte{0x90, 0, 0})
	require.NoError(t, c.Disassemble(inst))
	assert.Equal(t, "nop", inst.Mnemonic())
	assert.False(t, inst.ControlFlow)
}

func TestRegisters64(t *testing.T) {
	c := newCpu(t, 64)
	assert.Equal(t, uint32(8), c.GprSize())
	assert.Equal(t, "rip", c.ProgramCounter().Name)
	assert.Equal(t, "rsp", c.StackPointer().Name)

	rax, err := c.RegisterByName("rax")
	require.NoError(t, err)
	eax, err := c.Register(EAX)
	require.NoError(t, err)
	ah, err := c.Register(AH)
	require.NoError(t, err)

	require.NoError(t, c.SetConcreteRegisterValue(rax, models.NewUint512(0x1122334455667788), false))
	val, err := c.ConcreteRegisterValue(ah, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x77), val.Uint64())

	// 32-bit writes zero the upper half
	require.NoError(t, c.SetConcreteRegisterValue(eax, models.NewUint512(1), false))
	val, err = c.ConcreteRegisterValue(rax, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), val.Uint64())

	parent, err := c.ParentRegister(R9B)
	require.NoError(t, err)
	assert.Equal(t, "r9", parent.Name)

	assert.True(t, c.IsFlag(ZF))
	assert.False(t, c.IsRegister(ZF))
	assert.True(t, c.IsRegisterValid(ZF))
	assert.True(t, c.IsRegister(XMM15))
}

func TestRegisters32(t *testing.T) {
	c := newCpu(t, 32)
	assert.Equal(t, uint32(4), c.GprSize())
	assert.Equal(t, "eip", c.ProgramCounter().Name)
	assert.Equal(t, "esp", c.StackPointer().Name)
	assert.False(t, c.IsRegisterValid(RAX))
	assert.False(t, c.IsRegisterValid(SIL))
	assert.False(t, c.IsRegisterValid(R8))
	assert.False(t, c.IsRegisterValid(XMM8))

	eflags, err := c.Register(EFLAGS)
	require.NoError(t, err)
	zf, err := c.Register(ZF)
	require.NoError(t, err)
	require.NoError(t, c.SetConcreteRegisterValue(zf, models.NewUint512(1), false))
	val, err := c.ConcreteRegisterValue(eflags, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x40), val.Uint64())
}

func TestBadMode(t *testing.T) {
	_, err := (&Builder{Mode: 16}).New(nil)
	assert.Error(t, err)
}
