package cpu

import (
	"fmt"
	"strings"

	"github.com/mgutz/ansi"

	"github.com/lunixbochs/archcore/go/models"
)

// StatusDiff tracks general purpose register values between calls to Changes.
type StatusDiff struct {
	Cpu     Cpu
	oldRegs map[models.RegId]uint64
}

var chSame = ansi.ColorCode("default:default")
var chNew = ansi.ColorCode("default+bu:default")

func colorPad(s, color string, pad int) string {
	length := len(s)
	s = color + s + ansi.Reset
	if length < pad {
		s = strings.Repeat(" ", pad-length) + s
	}
	return s
}

type ChangeMask struct {
	Old, New string
	Changed  bool
}

type Change struct {
	Old, New uint64
	Id       models.RegId
	Name     string
}

func (c *Change) Changed() bool {
	return c.Old != c.New
}

// Mask splits the hex rendering of New into runs that match or differ from Old.
func (c *Change) Mask(digits int) []ChangeMask {
	s1, s2 := fmt.Sprintf("%0*x", digits, c.New), fmt.Sprintf("%0*x", digits, c.Old)
	pos := 0
	matching := true
	var masks []ChangeMask
	for i := range s1 {
		if (s1[i] == s2[i]) != matching {
			if i > pos {
				masks = append(masks, ChangeMask{
					New:     s1[pos:i],
					Old:     s2[pos:i],
					Changed: !matching,
				})
				pos = i
			}
			matching = !matching
		}
	}
	if pos < len(s1) {
		masks = append(masks, ChangeMask{
			New:     s1[pos:],
			Old:     s2[pos:],
			Changed: !matching,
		})
	}
	return masks
}

func (c *Change) String(digits int, color bool) string {
	lineStart := fmt.Sprintf(" %6s 0x", c.Name)
	if !c.Changed() {
		return fmt.Sprintf("%s%0*x", lineStart, digits, c.New)
	}
	if !color {
		return fmt.Sprintf("+%s%0*x", lineStart, digits, c.New)
	}
	out := []string{fmt.Sprintf(" %s 0x", colorPad(c.Name, chNew, 6))}
	for _, mask := range c.Mask(digits) {
		col := chSame
		if mask.Changed {
			col = chNew
		}
		out = append(out, col+mask.New)
	}
	out = append(out, ansi.Reset)
	return strings.Join(out, "")
}

type Changes struct {
	Digits  int
	Changes []*Change
}

// String lays the changes out column-wise, four to a row.
func (cs *Changes) String(color bool) string {
	var out []string
	printRow := func(changes []*Change, cols int) {
		if len(changes) < cols && len(changes) > 0 {
			padLen := cs.Digits + len(" regnam 0x ")
			out = append(out, strings.Repeat(" ", padLen*(cols-len(changes))))
		}
		for _, c := range changes {
			out = append(out, c.String(cs.Digits, color), " ")
		}
		if len(changes) > 0 {
			out = append(out, "\n")
		}
	}
	changes := cs.Changes
	cols := 4
	rows := len(changes) / cols
	lastRow := changes[rows*cols:]
	row := make([]*Change, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			row[j] = changes[j*rows+i]
		}
		printRow(row, cols)
	}
	if rows == 0 {
		cols = 0
	}
	printRow(lastRow, cols)
	return strings.Join(out, "")
}

func (cs *Changes) Changed() []*Change {
	var ret []*Change
	for _, c := range cs.Changes {
		if c.Changed() {
			ret = append(ret, c)
		}
	}
	return ret
}

func (cs *Changes) Count() int {
	return len(cs.Changed())
}

func (cs *Changes) Find(id models.RegId) *Change {
	for _, c := range cs.Changes {
		if c.Id == id {
			return c
		}
	}
	return nil
}

// Changes compares the current parent registers no wider than a general
// purpose register against the values seen by the previous call.
func (s *StatusDiff) Changes(onlyChanged bool) *Changes {
	gpr := s.Cpu.GprBitSize()
	var cs []*Change
	regs := make(map[models.RegId]uint64)
	for _, reg := range s.Cpu.ParentRegisters() {
		if reg.BitSize() > gpr {
			continue
		}
		val, err := s.Cpu.ConcreteRegisterValue(reg, false)
		if err != nil {
			continue
		}
		regs[reg.Id] = val.Uint64()
		change := &Change{Old: s.oldRegs[reg.Id], New: val.Uint64(), Id: reg.Id, Name: reg.Name}
		if !onlyChanged || change.Changed() {
			cs = append(cs, change)
		}
	}
	s.oldRegs = regs
	return &Changes{Digits: int(gpr / 4), Changes: cs}
}
