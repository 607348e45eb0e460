package cpu

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/lunixbochs/archcore/go/models"
)

// RegTable is the immutable register description of one cpu model.
type RegTable struct {
	regs    map[models.RegId]*models.Register
	byName  map[string]*models.Register
	flags   map[models.RegId]bool
	parents models.RegList
	pc, sp  *models.Register
	gprSize uint32
}

// NewRegTable indexes regs. Flags must also appear in regs. Duplicate ids or
// names, or a pc/sp/parent id missing from regs, are programming errors and panic.
func NewRegTable(regs []*models.Register, flags []models.RegId, pc, sp models.RegId, gprSize uint32) *RegTable {
	t := &RegTable{
		regs:    make(map[models.RegId]*models.Register, len(regs)),
		byName:  make(map[string]*models.Register, len(regs)),
		flags:   make(map[models.RegId]bool, len(flags)),
		gprSize: gprSize,
	}
	for _, r := range regs {
		if _, ok := t.regs[r.Id]; ok {
			panic(fmt.Sprintf("duplicate register id %d (%s)", r.Id, r.Name))
		}
		if _, ok := t.byName[r.Name]; ok {
			panic("duplicate register name " + r.Name)
		}
		t.regs[r.Id] = r
		t.byName[r.Name] = r
	}
	for _, r := range regs {
		parent, ok := t.regs[r.Parent]
		if !ok || !parent.IsParent() || r.High > parent.High {
			panic("bad parent for register " + r.Name)
		}
		if r.IsParent() {
			t.parents = append(t.parents, r)
		}
	}
	sort.Sort(t.parents)
	for _, id := range flags {
		if _, ok := t.regs[id]; !ok {
			panic(fmt.Sprintf("flag %d not in register table", id))
		}
		t.flags[id] = true
	}
	if t.pc = t.regs[pc]; t.pc == nil {
		panic("program counter not in register table")
	}
	if t.sp = t.regs[sp]; t.sp == nil {
		panic("stack pointer not in register table")
	}
	return t
}

func (t *RegTable) IsFlag(id models.RegId) bool {
	return t.flags[id]
}

func (t *RegTable) IsRegister(id models.RegId) bool {
	_, ok := t.regs[id]
	return ok && !t.flags[id]
}

func (t *RegTable) IsRegisterValid(id models.RegId) bool {
	return t.IsFlag(id) || t.IsRegister(id)
}

func (t *RegTable) NumberOfRegisters() uint32 {
	return uint32(len(t.regs))
}

func (t *RegTable) GprSize() uint32 {
	return t.gprSize
}

func (t *RegTable) GprBitSize() uint32 {
	return t.gprSize * 8
}

// AllRegisters returns a fresh map; the descriptors themselves are shared.
func (t *RegTable) AllRegisters() map[models.RegId]*models.Register {
	out := make(map[models.RegId]*models.Register, len(t.regs))
	for id, r := range t.regs {
		out[id] = r
	}
	return out
}

func (t *RegTable) ParentRegisters() models.RegList {
	return append(models.RegList(nil), t.parents...)
}

func (t *RegTable) ProgramCounter() *models.Register {
	return t.pc
}

func (t *RegTable) StackPointer() *models.Register {
	return t.sp
}

func (t *RegTable) Register(id models.RegId) (*models.Register, error) {
	if r, ok := t.regs[id]; ok {
		return r, nil
	}
	return nil, errors.Wrapf(models.ErrUnknownRegister, "register id %d", id)
}

func (t *RegTable) RegisterByName(name string) (*models.Register, error) {
	if r, ok := t.byName[name]; ok {
		return r, nil
	}
	return nil, errors.Wrapf(models.ErrUnknownRegister, "register %q", name)
}

func (t *RegTable) ParentRegister(id models.RegId) (*models.Register, error) {
	r, err := t.Register(id)
	if err != nil {
		return nil, err
	}
	return t.regs[r.Parent], nil
}
