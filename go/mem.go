package archcore

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/lunixbochs/archcore/go/models"
	"github.com/lunixbochs/archcore/go/models/cpu"
)

func (a *Architecture) ConcreteMemoryValue(addr uint64, execCallbacks bool) (byte, error) {
	c, err := a.active()
	if err != nil {
		return 0, errors.Wrap(err, "Architecture.ConcreteMemoryValue()")
	}
	return c.ConcreteMemoryValue(addr, execCallbacks), nil
}

func (a *Architecture) ConcreteMemoryAccessValue(mem models.MemoryAccess, execCallbacks bool) (models.Uint512, error) {
	c, err := a.active()
	if err != nil {
		return models.Uint512{}, errors.Wrap(err, "Architecture.ConcreteMemoryAccessValue()")
	}
	return c.ConcreteMemoryAccessValue(mem, execCallbacks)
}

func (a *Architecture) ConcreteMemoryAreaValue(addr, size uint64, execCallbacks bool) ([]byte, error) {
	c, err := a.active()
	if err != nil {
		return nil, errors.Wrap(err, "Architecture.ConcreteMemoryAreaValue()")
	}
	return c.ConcreteMemoryAreaValue(addr, size, execCallbacks), nil
}

func (a *Architecture) ConcreteRegisterValue(reg *models.Register, execCallbacks bool) (models.Uint512, error) {
	c, err := a.active()
	if err != nil {
		return models.Uint512{}, errors.Wrap(err, "Architecture.ConcreteRegisterValue()")
	}
	return c.ConcreteRegisterValue(reg, execCallbacks)
}

func (a *Architecture) SetConcreteMemoryValue(addr uint64, value byte, execCallbacks bool) error {
	c, err := a.active()
	if err != nil {
		return errors.Wrap(err, "Architecture.SetConcreteMemoryValue()")
	}
	c.SetConcreteMemoryValue(addr, value, execCallbacks)
	return nil
}

func (a *Architecture) SetConcreteMemoryAccessValue(mem models.MemoryAccess, value models.Uint512, execCallbacks bool) error {
	c, err := a.active()
	if err != nil {
		return errors.Wrap(err, "Architecture.SetConcreteMemoryAccessValue()")
	}
	return c.SetConcreteMemoryAccessValue(mem, value, execCallbacks)
}

func (a *Architecture) SetConcreteMemoryAreaValue(addr uint64, values []byte, execCallbacks bool) error {
	c, err := a.active()
	if err != nil {
		return errors.Wrap(err, "Architecture.SetConcreteMemoryAreaValue()")
	}
	c.SetConcreteMemoryAreaValue(addr, values, execCallbacks)
	return nil
}

func (a *Architecture) SetConcreteRegisterValue(reg *models.Register, value models.Uint512, execCallbacks bool) error {
	c, err := a.active()
	if err != nil {
		return errors.Wrap(err, "Architecture.SetConcreteRegisterValue()")
	}
	return c.SetConcreteRegisterValue(reg, value, execCallbacks)
}

func (a *Architecture) IsConcreteMemoryValueDefined(addr, size uint64) (bool, error) {
	c, err := a.active()
	if err != nil {
		return false, errors.Wrap(err, "Architecture.IsConcreteMemoryValueDefined()")
	}
	return c.IsConcreteMemoryValueDefined(addr, size), nil
}

func (a *Architecture) IsConcreteMemoryAccessDefined(mem models.MemoryAccess) (bool, error) {
	return a.IsConcreteMemoryValueDefined(mem.Address, uint64(mem.Size))
}

func (a *Architecture) ClearConcreteMemoryValue(addr, size uint64) error {
	c, err := a.active()
	if err != nil {
		return errors.Wrap(err, "Architecture.ClearConcreteMemoryValue()")
	}
	c.ClearConcreteMemoryValue(addr, size)
	return nil
}

func (a *Architecture) ClearConcreteMemoryAccess(mem models.MemoryAccess) error {
	return a.ClearConcreteMemoryValue(mem.Address, uint64(mem.Size))
}

func (a *Architecture) ConcreteMemoryRegions() ([]cpu.Region, error) {
	c, err := a.active()
	if err != nil {
		return nil, errors.Wrap(err, "Architecture.ConcreteMemoryRegions()")
	}
	return c.ConcreteMemoryRegions(), nil
}

// Save snapshots the concrete state of the active model.
func (a *Architecture) Save() ([]byte, error) {
	c, err := a.active()
	if err != nil {
		return nil, errors.Wrap(err, "Architecture.Save()")
	}
	return cpu.Save(c)
}

// Restore loads a snapshot taken by Save on the same architecture.
func (a *Architecture) Restore(data []byte) error {
	c, err := a.active()
	if err != nil {
		return errors.Wrap(err, "Architecture.Restore()")
	}
	if err := cpu.Restore(c, data); err != nil {
		return err
	}
	log.WithFields(log.Fields{"arch": a.arch, "bytes": len(data)}).Debug("snapshot restored")
	return nil
}
