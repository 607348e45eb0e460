package cpu

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/archcore/go/models"
)

// Regs holds concrete register values. Only parent registers have storage;
// sub-registers are bit slices of their parent.
type Regs struct {
	table *RegTable
	vals  map[models.RegId]models.Uint512
}

func NewRegs(table *RegTable) *Regs {
	return &Regs{
		table: table,
		vals:  make(map[models.RegId]models.Uint512),
	}
}

func (r *Regs) lookup(reg *models.Register) (*models.Register, error) {
	if reg == nil {
		return nil, errors.Wrap(models.ErrUnknownRegister, "nil register")
	}
	return r.table.Register(reg.Id)
}

func (r *Regs) RegRead(reg *models.Register) (models.Uint512, error) {
	desc, err := r.lookup(reg)
	if err != nil {
		return models.Uint512{}, err
	}
	if desc.Immutable {
		return models.Uint512{}, nil
	}
	return r.vals[desc.Parent].Rsh(uint(desc.Low)).And(desc.MaxValue()), nil
}

func (r *Regs) RegWrite(reg *models.Register, val models.Uint512) error {
	desc, err := r.lookup(reg)
	if err != nil {
		return err
	}
	if !val.Fits(desc.BitSize()) {
		return errors.Wrapf(models.ErrValueTooLarge, "%s = %s", desc.Name, val)
	}
	if desc.Immutable {
		return nil
	}
	parent := r.vals[desc.Parent]
	if desc.ZeroExtend {
		parent = models.Uint512{}
	} else {
		parent = parent.AndNot(desc.MaxValue().Lsh(uint(desc.Low)))
	}
	r.vals[desc.Parent] = parent.Or(val.Lsh(uint(desc.Low)))
	return nil
}

func (r *Regs) Reset() {
	r.vals = make(map[models.RegId]models.Uint512)
}
