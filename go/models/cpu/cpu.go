package cpu

import (
	"github.com/lunixbochs/archcore/go/models"
)

// This interface abstracts the capabilities the architecture layer requires of
// a cpu model. Concrete accessors take execCallbacks, which only decides
// whether registered hooks fire.
type Cpu interface {
	Arch() models.ArchTag
	Endianness() models.Endianness

	// modes
	IsThumb() bool
	SetThumb(state bool)
	IsMemoryExclusiveAccess() bool
	SetMemoryExclusiveAccess(state bool)

	// register table
	IsFlag(id models.RegId) bool
	IsRegister(id models.RegId) bool
	IsRegisterValid(id models.RegId) bool
	NumberOfRegisters() uint32
	GprSize() uint32
	GprBitSize() uint32
	AllRegisters() map[models.RegId]*models.Register
	ParentRegisters() models.RegList
	ProgramCounter() *models.Register
	StackPointer() *models.Register
	Register(id models.RegId) (*models.Register, error)
	RegisterByName(name string) (*models.Register, error)
	ParentRegister(id models.RegId) (*models.Register, error)

	// decode
	Disassemble(inst *models.Instruction) error

	// concrete memory
	ConcreteMemoryValue(addr uint64, execCallbacks bool) byte
	ConcreteMemoryAccessValue(mem models.MemoryAccess, execCallbacks bool) (models.Uint512, error)
	ConcreteMemoryAreaValue(addr, size uint64, execCallbacks bool) []byte
	SetConcreteMemoryValue(addr uint64, value byte, execCallbacks bool)
	SetConcreteMemoryAccessValue(mem models.MemoryAccess, value models.Uint512, execCallbacks bool) error
	SetConcreteMemoryAreaValue(addr uint64, values []byte, execCallbacks bool)
	IsConcreteMemoryValueDefined(addr, size uint64) bool
	ClearConcreteMemoryValue(addr, size uint64)
	ConcreteMemoryRegions() []Region

	// concrete registers
	ConcreteRegisterValue(reg *models.Register, execCallbacks bool) (models.Uint512, error)
	SetConcreteRegisterValue(reg *models.Register, value models.Uint512, execCallbacks bool) error

	// reset concrete state to power-on defaults
	Clear()
	// release concrete state; the model is not used afterwards
	Close() error
}
