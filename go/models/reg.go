package models

import (
	"fmt"

	"github.com/lunixbochs/fvbommel-util/sortorder"
)

// RegId is unique across every supported architecture, so a register from one
// cpu model never resolves in another model's table.
type RegId uint32

const ID_REG_INVALID RegId = 0

// first id of each architecture family
const (
	REG_X86_BASE     RegId = 0x100
	REG_ARM32_BASE   RegId = 0x400
	REG_AARCH64_BASE RegId = 0x800
)

// Register describes a register slice [High..Low] of its Parent register.
// Descriptors are owned by a cpu model's register table and must not be modified.
type Register struct {
	Id     RegId
	Name   string
	High   uint32
	Low    uint32
	Parent RegId

	// writes are ignored (zero registers)
	Immutable bool
	// writes clear the rest of the parent register
	ZeroExtend bool
}

func (r *Register) BitSize() uint32 {
	return r.High - r.Low + 1
}

// Size returns the register width in bytes, rounded up.
func (r *Register) Size() uint32 {
	return (r.BitSize() + 7) / 8
}

func (r *Register) IsParent() bool {
	return r.Parent == r.Id
}

func (r *Register) MaxValue() Uint512 {
	return Mask512(r.BitSize())
}

func (r *Register) String() string {
	return fmt.Sprintf("%s:%d bv[%d..%d]", r.Name, r.BitSize(), r.High, r.Low)
}

// RegList sorts registers by natural name order (r2 before r10).
type RegList []*Register

func (r RegList) Len() int           { return len(r) }
func (r RegList) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }
func (r RegList) Less(i, j int) bool { return sortorder.NaturalLess(r[i].Name, r[j].Name) }

func (r RegList) Names() []string {
	names := make([]string, len(r))
	for i, reg := range r {
		names[i] = reg.Name
	}
	return names
}
