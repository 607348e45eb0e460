package cpu

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/archcore/go/models"
)

// Base implements the concrete state shared by all cpu models: register
// table lookups, register values, sparse memory and callback dispatch.
// A model embeds *Base and adds Disassemble (and thumb support where needed).
type Base struct {
	*RegTable
	Mem   *Mem
	Regs  *Regs
	Hooks *Hooks

	self      Cpu
	arch      models.ArchTag
	endian    models.Endianness
	exclusive bool
}

// NewBase attaches hooks to self, the model embedding the returned Base.
func NewBase(self Cpu, arch models.ArchTag, table *RegTable, endian models.Endianness, hooks *Hooks) *Base {
	hooks.Attach(self)
	return &Base{
		RegTable: table,
		Mem:      NewMem(),
		Regs:     NewRegs(table),
		Hooks:    hooks,
		self:     self,
		arch:     arch,
		endian:   endian,
	}
}

func (b *Base) Arch() models.ArchTag          { return b.arch }
func (b *Base) Endianness() models.Endianness { return b.endian }

// thumb only exists on arm
func (b *Base) IsThumb() bool       { return false }
func (b *Base) SetThumb(state bool) {}

func (b *Base) IsMemoryExclusiveAccess() bool       { return b.exclusive }
func (b *Base) SetMemoryExclusiveAccess(state bool) { b.exclusive = state }

func (b *Base) ConcreteMemoryValue(addr uint64, execCallbacks bool) byte {
	if execCallbacks {
		b.Hooks.OnMemRead(models.NewMemoryAccess(addr, 1))
	}
	var p [1]byte
	b.Mem.MemReadInto(p[:], addr)
	return p[0]
}

func (b *Base) ConcreteMemoryAccessValue(mem models.MemoryAccess, execCallbacks bool) (models.Uint512, error) {
	if !mem.Valid() {
		return models.Uint512{}, errors.Wrapf(models.ErrInvalidMemoryAccess, "%s", mem)
	}
	if execCallbacks {
		b.Hooks.OnMemRead(mem)
	}
	p := b.Mem.MemRead(mem.Address, uint64(mem.Size))
	return UnpackUint(b.endian.ByteOrder(), int(mem.Size), p)
}

// ConcreteMemoryAreaValue reads byte by byte, so callbacks see each byte.
func (b *Base) ConcreteMemoryAreaValue(addr, size uint64, execCallbacks bool) []byte {
	if !execCallbacks || b.Hooks.count(HOOK_MEM_READ) == 0 {
		return b.Mem.MemRead(addr, size)
	}
	out := make([]byte, size)
	for i := range out {
		out[i] = b.ConcreteMemoryValue(addr+uint64(i), true)
	}
	return out
}

func (b *Base) SetConcreteMemoryValue(addr uint64, value byte, execCallbacks bool) {
	if execCallbacks {
		b.Hooks.OnMemWrite(models.NewMemoryAccess(addr, 1), models.NewUint512(uint64(value)))
	}
	b.Mem.MemWrite(addr, []byte{value})
}

func (b *Base) SetConcreteMemoryAccessValue(mem models.MemoryAccess, value models.Uint512, execCallbacks bool) error {
	if !mem.Valid() {
		return errors.Wrapf(models.ErrInvalidMemoryAccess, "%s", mem)
	}
	p, err := PackUint(b.endian.ByteOrder(), int(mem.Size), nil, value)
	if err != nil {
		return err
	}
	if execCallbacks {
		b.Hooks.OnMemWrite(mem, value)
	}
	b.Mem.MemWrite(mem.Address, p)
	return nil
}

func (b *Base) SetConcreteMemoryAreaValue(addr uint64, values []byte, execCallbacks bool) {
	if !execCallbacks || b.Hooks.count(HOOK_MEM_WRITE) == 0 {
		b.Mem.MemWrite(addr, values)
		return
	}
	for i, v := range values {
		b.SetConcreteMemoryValue(addr+uint64(i), v, true)
	}
}

func (b *Base) IsConcreteMemoryValueDefined(addr, size uint64) bool {
	return b.Mem.IsDefined(addr, size)
}

func (b *Base) ClearConcreteMemoryValue(addr, size uint64) {
	b.Mem.MemClear(addr, size)
}

func (b *Base) ConcreteMemoryRegions() []Region {
	return b.Mem.Regions()
}

func (b *Base) ConcreteRegisterValue(reg *models.Register, execCallbacks bool) (models.Uint512, error) {
	desc, err := b.Regs.lookup(reg)
	if err != nil {
		return models.Uint512{}, err
	}
	if execCallbacks {
		b.Hooks.OnRegRead(desc)
	}
	return b.Regs.RegRead(desc)
}

func (b *Base) SetConcreteRegisterValue(reg *models.Register, value models.Uint512, execCallbacks bool) error {
	desc, err := b.Regs.lookup(reg)
	if err != nil {
		return err
	}
	if !value.Fits(desc.BitSize()) {
		return errors.Wrapf(models.ErrValueTooLarge, "%s = %s", desc.Name, value)
	}
	if execCallbacks {
		b.Hooks.OnRegWrite(desc, value)
	}
	return b.Regs.RegWrite(desc, value)
}

// Clear resets registers, memory and modes. Callbacks stay registered.
func (b *Base) Clear() {
	b.Mem.Reset()
	b.Regs.Reset()
	b.exclusive = false
}

// Close drops concrete state and detaches the callback registry if it still
// points at this model.
func (b *Base) Close() error {
	b.Clear()
	if b.Hooks != nil && b.Hooks.cpu == b.self {
		b.Hooks.Attach(nil)
	}
	return nil
}
