package arm

import (
	"fmt"

	"github.com/lunixbochs/archcore/go/models"
	"github.com/lunixbochs/archcore/go/models/cpu"
)

func newRegTable() *cpu.RegTable {
	var regs []*models.Register
	add := func(id models.RegId, name string, high, low uint32, parent models.RegId) {
		regs = append(regs, &models.Register{Id: id, Name: name, High: high, Low: low, Parent: parent})
	}
	for i := 0; i < 13; i++ {
		id := R0 + models.RegId(i)
		add(id, fmt.Sprintf("r%d", i), 31, 0, id)
	}
	add(SP, "sp", 31, 0, SP)
	add(LR, "lr", 31, 0, LR)
	add(PC, "pc", 31, 0, PC)
	add(APSR, "apsr", 31, 0, APSR)
	flags := []models.RegId{N, Z, C, V}
	for i, name := range []string{"n", "z", "c", "v"} {
		bit := uint32(31 - i)
		add(flags[i], name, bit, bit, APSR)
	}
	// s2n and s2n+1 alias dn, d2n and d2n+1 alias qn
	for i := 0; i < 16; i++ {
		q := Q0 + models.RegId(i)
		add(q, fmt.Sprintf("q%d", i), 127, 0, q)
		for j := 0; j < 2; j++ {
			d := 2*i + j
			low := uint32(j * 64)
			add(D0+models.RegId(d), fmt.Sprintf("d%d", d), low+63, low, q)
			if i < 8 {
				for k := 0; k < 2; k++ {
					s := 2*d + k
					slow := low + uint32(k*32)
					add(S0+models.RegId(s), fmt.Sprintf("s%d", s), slow+31, slow, q)
				}
			}
		}
	}
	return cpu.NewRegTable(regs, flags, PC, SP, 4)
}
