package models

import (
	"fmt"
)

// MemoryAccess describes a concrete memory request. It is not storage.
type MemoryAccess struct {
	Address uint64
	Size    uint32
}

func NewMemoryAccess(addr uint64, size uint32) MemoryAccess {
	return MemoryAccess{Address: addr, Size: size}
}

func (m MemoryAccess) BitSize() uint32 {
	return m.Size * 8
}

// Valid reports whether Size is one of the supported access widths.
func (m MemoryAccess) Valid() bool {
	switch m.Size {
	case 1, 2, 4, 8, 16, 32, 64:
		return true
	}
	return false
}

func (m MemoryAccess) String() string {
	return fmt.Sprintf("[@%#x]:%d bv[%d..0]", m.Address, m.BitSize(), m.BitSize()-1)
}
