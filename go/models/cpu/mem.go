package cpu

import (
	"fmt"
)

// Region is a run of defined concrete memory.
type Region struct {
	Addr uint64
	Data []byte
}

func (r Region) String() string {
	return fmt.Sprintf("0x%x-0x%x", r.Addr, r.Addr+uint64(len(r.Data)))
}

// Mem is a sparse concrete memory model. Storage is allocated a page at a
// time on first write; nothing ever needs mapping. Addresses wrap at 2^64.
type Mem struct {
	pages Pages
}

func NewMem() *Mem {
	return &Mem{}
}

func (m *Mem) page(addr uint64, create bool) *Page {
	if pg := m.pages.Find(addr); pg != nil || !create {
		return pg
	}
	pg := newPage(addr)
	m.pages = m.pages.insert(pg)
	return pg
}

// MemReadInto fills p from addr. Undefined bytes read as zero.
func (m *Mem) MemReadInto(p []byte, addr uint64) {
	for len(p) > 0 {
		n := PAGE_SIZE - int(addr&(PAGE_SIZE-1))
		if n > len(p) {
			n = len(p)
		}
		if pg := m.page(addr, false); pg != nil {
			pg.Read(addr, p[:n])
		} else {
			for i := range p[:n] {
				p[i] = 0
			}
		}
		p = p[n:]
		addr += uint64(n)
	}
}

func (m *Mem) MemRead(addr, size uint64) []byte {
	p := make([]byte, size)
	m.MemReadInto(p, addr)
	return p
}

// MemWrite stores p at addr and marks those bytes defined.
func (m *Mem) MemWrite(addr uint64, p []byte) {
	for len(p) > 0 {
		n := PAGE_SIZE - int(addr&(PAGE_SIZE-1))
		if n > len(p) {
			n = len(p)
		}
		m.page(addr, true).Write(addr, p[:n])
		p = p[n:]
		addr += uint64(n)
	}
}

// IsDefined reports whether every byte of [addr, addr+size) has a concrete value.
func (m *Mem) IsDefined(addr, size uint64) bool {
	for size > 0 {
		n := PAGE_SIZE - addr&(PAGE_SIZE-1)
		if n > size {
			n = size
		}
		pg := m.page(addr, false)
		if pg == nil || !pg.AllDefined(uint(addr-pg.Addr), uint(n)) {
			return false
		}
		size -= n
		addr += n
	}
	return true
}

// MemClear undefines [addr, addr+size) and drops pages left empty.
func (m *Mem) MemClear(addr, size uint64) {
	var empty []*Page
	for _, pg := range m.pages {
		if off, n, ok := pg.Intersect(addr, size); ok {
			pg.Clear(off, n)
			if pg.Empty() {
				empty = append(empty, pg)
			}
		}
	}
	for _, pg := range empty {
		m.pages = m.pages.remove(pg)
	}
}

func (m *Mem) Reset() {
	m.pages = nil
}

// Regions returns the defined memory in address order, merging runs that
// continue across page boundaries.
func (m *Mem) Regions() []Region {
	var out []Region
	for _, pg := range m.pages {
		for _, run := range pg.Runs() {
			addr := pg.Addr + uint64(run[0])
			data := pg.Data[run[0] : run[0]+run[1]]
			if last := len(out) - 1; last >= 0 && out[last].Addr+uint64(len(out[last].Data)) == addr {
				out[last].Data = append(out[last].Data, data...)
				continue
			}
			out = append(out, Region{Addr: addr, Data: append([]byte(nil), data...)})
		}
	}
	return out
}

func (m *Mem) String() string {
	return m.pages.String()
}
