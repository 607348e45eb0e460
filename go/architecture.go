package archcore

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/lunixbochs/archcore/go/arch"
	"github.com/lunixbochs/archcore/go/models"
	"github.com/lunixbochs/archcore/go/models/cpu"
)

// Architecture owns at most one cpu model and forwards the architecture
// dependent operations to it. The zero value has no architecture selected.
// An Architecture is not safe for concurrent use; use one per analysis.
type Architecture struct {
	arch  models.ArchTag
	cpu   cpu.Cpu
	hooks *cpu.Hooks

	// resolves tags to cpu builders
	getArch func(models.ArchTag) (*cpu.Arch, error)
}

func NewArchitecture() *Architecture {
	return &Architecture{}
}

func (a *Architecture) active() (cpu.Cpu, error) {
	if a.cpu == nil {
		return nil, models.ErrNoArchitecture
	}
	return a.cpu, nil
}

// Hooks returns the callback registry. It persists across SetArch.
func (a *Architecture) Hooks() *cpu.Hooks {
	if a.hooks == nil {
		a.hooks = cpu.NewHooks()
	}
	return a.hooks
}

// SetArch builds the cpu model for tag and makes it active, releasing the
// previous model. On failure the previous model stays active.
func (a *Architecture) SetArch(tag models.ArchTag) error {
	getArch := a.getArch
	if getArch == nil {
		getArch = arch.GetArch
	}
	desc, err := getArch(tag)
	if err != nil {
		return errors.Wrap(err, "Architecture.SetArch()")
	}
	c, err := desc.Cpu.New(a.Hooks())
	if err != nil || c == nil {
		// the registry may point at a half-built model
		a.hooks.Attach(a.cpu)
		return errors.Wrap(models.AllocationFailure(err), "Architecture.SetArch()")
	}
	old := a.cpu
	a.cpu, a.arch = c, tag
	if old != nil {
		log.Debugf("replacing %v cpu with %v", old.Arch(), tag)
		if err := old.Close(); err != nil {
			log.Warnf("closing %v cpu: %v", old.Arch(), err)
		}
		// Close may detach the registry from the new model
		a.hooks.Attach(c)
	}
	log.WithFields(log.Fields{
		"arch":      tag,
		"registers": c.NumberOfRegisters(),
	}).Debug("architecture selected")
	return nil
}

func (a *Architecture) Arch() models.ArchTag {
	return a.arch
}

func (a *Architecture) IsValid() bool {
	return a.arch != models.ARCH_INVALID
}

// ClearArch resets the concrete state of the active model. The model and
// its tag are kept.
func (a *Architecture) ClearArch() error {
	c, err := a.active()
	if err != nil {
		return errors.Wrap(err, "Architecture.ClearArch()")
	}
	c.Clear()
	log.WithField("arch", a.arch).Debug("architecture cleared")
	return nil
}

// Cpu returns the active model.
func (a *Architecture) Cpu() (cpu.Cpu, error) {
	c, err := a.active()
	return c, errors.Wrap(err, "Architecture.Cpu()")
}

func (a *Architecture) Endianness() (models.Endianness, error) {
	c, err := a.active()
	if err != nil {
		return 0, errors.Wrap(err, "Architecture.Endianness()")
	}
	return c.Endianness(), nil
}

// total queries, false or zero with no architecture

func (a *Architecture) IsFlag(id models.RegId) bool {
	return a.cpu != nil && a.cpu.IsFlag(id)
}

func (a *Architecture) IsRegister(id models.RegId) bool {
	return a.cpu != nil && a.cpu.IsRegister(id)
}

func (a *Architecture) IsRegisterValid(id models.RegId) bool {
	return a.cpu != nil && a.cpu.IsRegisterValid(id)
}

func (a *Architecture) IsThumb() bool {
	return a.cpu != nil && a.cpu.IsThumb()
}

func (a *Architecture) IsMemoryExclusiveAccess() bool {
	return a.cpu != nil && a.cpu.IsMemoryExclusiveAccess()
}

func (a *Architecture) SetThumb(state bool) {
	if a.cpu != nil {
		a.cpu.SetThumb(state)
	}
}

func (a *Architecture) SetMemoryExclusiveAccess(state bool) {
	if a.cpu != nil {
		a.cpu.SetMemoryExclusiveAccess(state)
	}
}

func (a *Architecture) NumberOfRegisters() uint32 {
	if a.cpu == nil {
		return 0
	}
	return a.cpu.NumberOfRegisters()
}

func (a *Architecture) GprSize() uint32 {
	if a.cpu == nil {
		return 0
	}
	return a.cpu.GprSize()
}

func (a *Architecture) GprBitSize() uint32 {
	if a.cpu == nil {
		return 0
	}
	return a.cpu.GprBitSize()
}

// register table lookups, ErrNoArchitecture with no architecture

func (a *Architecture) AllRegisters() (map[models.RegId]*models.Register, error) {
	c, err := a.active()
	if err != nil {
		return nil, errors.Wrap(err, "Architecture.AllRegisters()")
	}
	return c.AllRegisters(), nil
}

func (a *Architecture) ParentRegisters() (models.RegList, error) {
	c, err := a.active()
	if err != nil {
		return nil, errors.Wrap(err, "Architecture.ParentRegisters()")
	}
	return c.ParentRegisters(), nil
}

func (a *Architecture) ProgramCounter() (*models.Register, error) {
	c, err := a.active()
	if err != nil {
		return nil, errors.Wrap(err, "Architecture.ProgramCounter()")
	}
	return c.ProgramCounter(), nil
}

func (a *Architecture) StackPointer() (*models.Register, error) {
	c, err := a.active()
	if err != nil {
		return nil, errors.Wrap(err, "Architecture.StackPointer()")
	}
	return c.StackPointer(), nil
}

func (a *Architecture) Register(id models.RegId) (*models.Register, error) {
	c, err := a.active()
	if err != nil {
		return nil, errors.Wrap(err, "Architecture.Register()")
	}
	return c.Register(id)
}

func (a *Architecture) RegisterByName(name string) (*models.Register, error) {
	c, err := a.active()
	if err != nil {
		return nil, errors.Wrap(err, "Architecture.RegisterByName()")
	}
	return c.RegisterByName(name)
}

func (a *Architecture) ParentRegister(id models.RegId) (*models.Register, error) {
	c, err := a.active()
	if err != nil {
		return nil, errors.Wrap(err, "Architecture.ParentRegister()")
	}
	return c.ParentRegister(id)
}
