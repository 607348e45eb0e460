package arm64

import (
	"fmt"

	"github.com/lunixbochs/archcore/go/models"
	"github.com/lunixbochs/archcore/go/models/cpu"
)

func newRegTable() *cpu.RegTable {
	var regs []*models.Register
	add := func(id models.RegId, name string, high, low uint32, parent models.RegId) *models.Register {
		r := &models.Register{Id: id, Name: name, High: high, Low: low, Parent: parent}
		regs = append(regs, r)
		return r
	}
	for i := 0; i < 31; i++ {
		x := X0 + models.RegId(i)
		add(x, fmt.Sprintf("x%d", i), 63, 0, x)
		add(W0+models.RegId(i), fmt.Sprintf("w%d", i), 31, 0, x).ZeroExtend = true
	}
	add(SP, "sp", 63, 0, SP)
	add(WSP, "wsp", 31, 0, SP).ZeroExtend = true
	add(PC, "pc", 63, 0, PC)
	add(XZR, "xzr", 63, 0, XZR).Immutable = true
	add(WZR, "wzr", 31, 0, XZR).Immutable = true
	add(NZCV, "nzcv", 31, 0, NZCV)
	flags := []models.RegId{N, Z, C, V}
	for i, name := range []string{"n", "z", "c", "v"} {
		bit := uint32(31 - i)
		add(flags[i], name, bit, bit, NZCV)
	}
	for i := 0; i < 32; i++ {
		q := Q0 + models.RegId(i)
		add(q, fmt.Sprintf("q%d", i), 127, 0, q)
		add(D0+models.RegId(i), fmt.Sprintf("d%d", i), 63, 0, q)
		add(S0+models.RegId(i), fmt.Sprintf("s%d", i), 31, 0, q)
	}
	return cpu.NewRegTable(regs, flags, PC, SP, 8)
}
