package cpu

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Page is one PAGE_SIZE-aligned block of concrete memory. Bytes that were
// never written (or were cleared) are undefined and read as zero.
type Page struct {
	Addr    uint64
	Data    []byte
	defined *bitset.BitSet
}

func newPage(addr uint64) *Page {
	return &Page{
		Addr:    addr &^ (PAGE_SIZE - 1),
		Data:    make([]byte, PAGE_SIZE),
		defined: bitset.New(PAGE_SIZE),
	}
}

func (p *Page) String() string {
	return fmt.Sprintf("0x%x-0x%x (%d defined)", p.Addr, p.Addr+PAGE_SIZE, p.defined.Count())
}

func (p *Page) Contains(addr uint64) bool {
	return addr >= p.Addr && addr-p.Addr < PAGE_SIZE
}

// start = max(s1, s2), end = min(e1, e2), ok = end > start
// Offsets are relative to the page. size may wrap around the address space.
func (p *Page) Intersect(addr, size uint64) (uint, uint, bool) {
	if size == 0 {
		return 0, 0, false
	}
	start, end := p.Addr, p.Addr+PAGE_SIZE-1
	last := addr + size - 1
	if last < addr {
		last = ^uint64(0)
	}
	if start < addr {
		start = addr
	}
	if end > last {
		end = last
	}
	if end < start {
		return 0, 0, false
	}
	return uint(start - p.Addr), uint(end-start) + 1, true
}

func (p *Page) Defined(addr uint64) bool {
	return p.defined.Test(uint(addr - p.Addr))
}

// AllDefined reports whether every byte in [off, off+n) is defined.
func (p *Page) AllDefined(off, n uint) bool {
	next, ok := p.defined.NextClear(off)
	return !ok || next >= off+n
}

func (p *Page) Write(addr uint64, b []byte) {
	off := uint(addr - p.Addr)
	n := copy(p.Data[off:], b)
	for i := off; i < off+uint(n); i++ {
		p.defined.Set(i)
	}
}

func (p *Page) Read(addr uint64, b []byte) int {
	return copy(b, p.Data[addr-p.Addr:])
}

func (p *Page) Clear(off, n uint) {
	for i := off; i < off+n && i < PAGE_SIZE; i++ {
		p.defined.Clear(i)
		p.Data[i] = 0
	}
}

func (p *Page) Empty() bool {
	return p.defined.None()
}

// Runs returns the defined byte ranges of the page as (offset, length) pairs.
func (p *Page) Runs() [][2]uint {
	var runs [][2]uint
	for i, ok := p.defined.NextSet(0); ok && i < PAGE_SIZE; i, ok = p.defined.NextSet(i) {
		end, more := p.defined.NextClear(i)
		if !more || end > PAGE_SIZE {
			end = PAGE_SIZE
		}
		runs = append(runs, [2]uint{i, end - i})
		i = end
	}
	return runs
}

type Pages []*Page

func (p Pages) Len() int           { return len(p) }
func (p Pages) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
func (p Pages) Less(i, j int) bool { return p[i].Addr < p[j].Addr }

func (p Pages) String() string {
	s := make([]string, len(p))
	for i, v := range p {
		s[i] = v.String()
	}
	return strings.Join(s, "\n")
}

// binary search to find index of the page containing addr, if any, else -1
func (p Pages) bsearch(addr uint64) int {
	l := 0
	r := len(p) - 1
	for l <= r {
		mid := (l + r) / 2
		e := p[mid]
		if addr >= e.Addr {
			if addr-e.Addr < PAGE_SIZE {
				return mid
			}
			l = mid + 1
		} else {
			r = mid - 1
		}
	}
	return -1
}

func (p Pages) Find(addr uint64) *Page {
	i := p.bsearch(addr)
	if i >= 0 {
		return p[i]
	}
	return nil
}

// insert keeps the list sorted
func (p Pages) insert(pg *Page) Pages {
	i := sort.Search(len(p), func(i int) bool { return p[i].Addr >= pg.Addr })
	p = append(p, nil)
	copy(p[i+1:], p[i:])
	p[i] = pg
	return p
}

func (p Pages) remove(pg *Page) Pages {
	for i, v := range p {
		if v == pg {
			return append(p[:i], p[i+1:]...)
		}
	}
	return p
}
