package x86

import (
	"fmt"

	"github.com/lunixbochs/archcore/go/models"
	"github.com/lunixbochs/archcore/go/models/cpu"
)

type gpr struct {
	q, d, w, b, h models.RegId
}

var gprs = []gpr{
	{RAX, EAX, AX, AL, AH},
	{RBX, EBX, BX, BL, BH},
	{RCX, ECX, CX, CL, CH},
	{RDX, EDX, DX, DL, DH},
	{RDI, EDI, DI, DIL, 0},
	{RSI, ESI, SI, SIL, 0},
	{RBP, EBP, BP, BPL, 0},
	{RSP, ESP, SP, SPL, 0},
	{R8, R8D, R8W, R8B, 0},
	{R9, R9D, R9W, R9B, 0},
	{R10, R10D, R10W, R10B, 0},
	{R11, R11D, R11W, R11B, 0},
	{R12, R12D, R12W, R12B, 0},
	{R13, R13D, R13W, R13B, 0},
	{R14, R14D, R14W, R14B, 0},
	{R15, R15D, R15W, R15B, 0},
}

var gprNames = map[models.RegId]string{
	RAX: "rax", EAX: "eax", AX: "ax", AL: "al", AH: "ah",
	RBX: "rbx", EBX: "ebx", BX: "bx", BL: "bl", BH: "bh",
	RCX: "rcx", ECX: "ecx", CX: "cx", CL: "cl", CH: "ch",
	RDX: "rdx", EDX: "edx", DX: "dx", DL: "dl", DH: "dh",
	RDI: "rdi", EDI: "edi", DI: "di", DIL: "dil",
	RSI: "rsi", ESI: "esi", SI: "si", SIL: "sil",
	RBP: "rbp", EBP: "ebp", BP: "bp", BPL: "bpl",
	RSP: "rsp", ESP: "esp", SP: "sp", SPL: "spl",
}

// eflags bit positions
var flagBits = []struct {
	id   models.RegId
	name string
	bit  uint32
}{
	{CF, "cf", 0},
	{PF, "pf", 2},
	{AF, "af", 4},
	{ZF, "zf", 6},
	{SF, "sf", 7},
	{TF, "tf", 8},
	{IF, "if", 9},
	{DF, "df", 10},
	{OF, "of", 11},
}

var segments = []struct {
	id   models.RegId
	name string
}{
	{CS, "cs"}, {DS, "ds"}, {ES, "es"}, {FS, "fs"}, {GS, "gs"}, {SS, "ss"},
}

func regName(id models.RegId, idx int, suffix string) string {
	if name, ok := gprNames[id]; ok {
		return name
	}
	return fmt.Sprintf("r%d%s", idx, suffix)
}

// newRegTable builds the register table for a 32 or 64-bit model.
func newRegTable(mode int) *cpu.RegTable {
	var regs []*models.Register
	add := func(id models.RegId, name string, high, low uint32, parent models.RegId) *models.Register {
		r := &models.Register{Id: id, Name: name, High: high, Low: low, Parent: parent}
		regs = append(regs, r)
		return r
	}
	count, vectors := 8, 8
	top := uint32(31)
	if mode == 64 {
		count, vectors = 16, 16
		top = 63
	}
	for i, g := range gprs[:count] {
		parent := g.d
		if mode == 64 {
			parent = g.q
			add(g.q, regName(g.q, i, ""), 63, 0, parent)
			add(g.d, regName(g.d, i, "d"), 31, 0, parent).ZeroExtend = true
		} else {
			add(g.d, regName(g.d, i, "d"), 31, 0, parent)
		}
		add(g.w, regName(g.w, i, "w"), 15, 0, parent)
		// sil, dil, bpl and spl need a rex prefix
		if mode == 64 || g.h != 0 {
			add(g.b, regName(g.b, i, "b"), 7, 0, parent)
		}
		if g.h != 0 {
			add(g.h, regName(g.h, i, ""), 15, 8, parent)
		}
	}
	pc := EIP
	if mode == 64 {
		pc = RIP
		add(RIP, "rip", 63, 0, RIP)
	} else {
		add(EIP, "eip", 31, 0, EIP)
	}
	add(EFLAGS, "eflags", top, 0, EFLAGS)
	var flags []models.RegId
	for _, f := range flagBits {
		add(f.id, f.name, f.bit, f.bit, EFLAGS)
		flags = append(flags, f.id)
	}
	for _, s := range segments {
		add(s.id, s.name, 15, 0, s.id)
	}
	for i := 0; i < vectors; i++ {
		ymm := YMM0 + models.RegId(i)
		add(ymm, fmt.Sprintf("ymm%d", i), 255, 0, ymm)
		add(XMM0+models.RegId(i), fmt.Sprintf("xmm%d", i), 127, 0, ymm)
	}
	sp := ESP
	if mode == 64 {
		sp = RSP
	}
	return cpu.NewRegTable(regs, flags, pc, sp, uint32(mode/8))
}
