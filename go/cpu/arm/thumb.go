package arm

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	dec "github.com/lunixbochs/archcore/go/cpu"
)

// Thumb code is decoded one halfword at a time, by instruction format.
// Covers the 16-bit ARMv4T-ARMv7-M encodings and the 32-bit bl/blx pair.

var thumbRegNames = [16]string{
	"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
	"r8", "r9", "r10", "r11", "r12", "sp", "lr", "pc",
}

var thumbConds = [16]string{
	"eq", "ne", "cs", "cc", "mi", "pl", "vs", "vc",
	"hi", "ls", "ge", "lt", "gt", "le", "", "",
}

var thumbAluOps = [16]string{
	"ands", "eors", "lsls", "lsrs", "asrs", "adcs", "sbcs", "rors",
	"tst", "negs", "cmp", "cmn", "orrs", "muls", "bics", "mvns",
}

var thumbRegOffsetOps = [8]string{
	"str", "strh", "strb", "ldrsb", "ldr", "ldrh", "ldrb", "ldrsh",
}

var errThumbUndefined = errors.New("undefined thumb instruction")

func reg(n uint16) string { return thumbRegNames[n&15] }

func lo3(hw uint16, shift uint) uint16 { return (hw >> shift) & 7 }

func regList(list uint16, extra string) string {
	var names []string
	for i := uint16(0); i < 8; i++ {
		if list&(1<<i) != 0 {
			names = append(names, reg(i))
		}
	}
	if extra != "" {
		names = append(names, extra)
	}
	return "{" + strings.Join(names, ", ") + "}"
}

func memOperand(base string, off uint16) string {
	if off == 0 {
		return "[" + base + "]"
	}
	return fmt.Sprintf("[%s, #%d]", base, off)
}

// pcRel formats a branch target relative to the instruction address.
func pcRel(off int32) string {
	return fmt.Sprintf(".%+#x", off+4)
}

func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}

func thumbDecode(code []byte, addr uint64) (*dec.Decoded, error) {
	if len(code) < 2 {
		return nil, errors.New("truncated instruction")
	}
	hw := binary.LittleEndian.Uint16(code)
	d := &dec.Decoded{Size: 2}
	var text string
	switch {
	case hw>>11 == 0x1d || hw>>11 == 0x1e || hw>>11 == 0x1f:
		return thumbDecode32(code, hw)

	case hw>>11 == 3:
		// add/subtract register or imm3
		op := "adds"
		if hw&(1<<9) != 0 {
			op = "subs"
		}
		rn := reg(lo3(hw, 6))
		if hw&(1<<10) != 0 {
			rn = fmt.Sprintf("#%d", lo3(hw, 6))
		}
		text = fmt.Sprintf("%s %s, %s, %s", op, reg(lo3(hw, 0)), reg(lo3(hw, 3)), rn)

	case hw>>13 == 0:
		// shift by immediate
		off := (hw >> 6) & 0x1f
		rd, rm := reg(lo3(hw, 0)), reg(lo3(hw, 3))
		switch (hw >> 11) & 3 {
		case 0:
			if off == 0 {
				text = fmt.Sprintf("movs %s, %s", rd, rm)
			} else {
				text = fmt.Sprintf("lsls %s, %s, #%d", rd, rm, off)
			}
		case 1, 2:
			if off == 0 {
				off = 32
			}
			op := "lsrs"
			if (hw>>11)&3 == 2 {
				op = "asrs"
			}
			text = fmt.Sprintf("%s %s, %s, #%d", op, rd, rm, off)
		}

	case hw>>13 == 1:
		ops := [4]string{"movs", "cmp", "adds", "subs"}
		text = fmt.Sprintf("%s %s, #%d", ops[(hw>>11)&3], reg(lo3(hw, 8)), hw&0xff)

	case hw>>10 == 0x10:
		text = fmt.Sprintf("%s %s, %s", thumbAluOps[(hw>>6)&15], reg(lo3(hw, 0)), reg(lo3(hw, 3)))

	case hw>>10 == 0x11:
		// hi register operations and branch exchange
		rd := lo3(hw, 0) | (hw>>4)&8
		rm := (hw >> 3) & 15
		switch (hw >> 8) & 3 {
		case 0:
			text = fmt.Sprintf("add %s, %s", reg(rd), reg(rm))
			d.ControlFlow = rd == 15
		case 1:
			text = fmt.Sprintf("cmp %s, %s", reg(rd), reg(rm))
		case 2:
			if rd == 8 && rm == 8 {
				text = "nop"
			} else {
				text = fmt.Sprintf("mov %s, %s", reg(rd), reg(rm))
			}
			d.ControlFlow = rd == 15
		case 3:
			if hw&(1<<7) != 0 {
				text = "blx " + reg(rm)
				d.ControlFlow = true
			} else {
				text = "bx " + reg(rm)
				d.Branch = true
			}
		}

	case hw>>11 == 9:
		text = fmt.Sprintf("ldr %s, %s", reg(lo3(hw, 8)), memOperand("pc", (hw&0xff)*4))

	case hw>>12 == 5:
		op := thumbRegOffsetOps[(hw>>9)&7]
		text = fmt.Sprintf("%s %s, [%s, %s]", op, reg(lo3(hw, 0)), reg(lo3(hw, 3)), reg(lo3(hw, 6)))

	case hw>>13 == 3:
		// load/store with immediate offset, word or byte
		off := (hw >> 6) & 0x1f
		op := "str"
		if hw&(1<<12) != 0 {
			op += "b"
		} else {
			off *= 4
		}
		if hw&(1<<11) != 0 {
			op = "ld" + op[2:]
		}
		text = fmt.Sprintf("%s %s, %s", op, reg(lo3(hw, 0)), memOperand(reg(lo3(hw, 3)), off))

	case hw>>12 == 8:
		op := "strh"
		if hw&(1<<11) != 0 {
			op = "ldrh"
		}
		text = fmt.Sprintf("%s %s, %s", op, reg(lo3(hw, 0)), memOperand(reg(lo3(hw, 3)), ((hw>>6)&0x1f)*2))

	case hw>>12 == 9:
		op := "str"
		if hw&(1<<11) != 0 {
			op = "ldr"
		}
		text = fmt.Sprintf("%s %s, %s", op, reg(lo3(hw, 8)), memOperand("sp", (hw&0xff)*4))

	case hw>>12 == 0xa:
		base := "pc"
		if hw&(1<<11) != 0 {
			base = "sp"
		}
		text = fmt.Sprintf("add %s, %s, #%d", reg(lo3(hw, 8)), base, (hw&0xff)*4)

	case hw>>12 == 0xb:
		return thumbMisc(hw, d)

	case hw>>12 == 0xc:
		op := "stmia"
		if hw&(1<<11) != 0 {
			op = "ldmia"
		}
		text = fmt.Sprintf("%s %s!, %s", op, reg(lo3(hw, 8)), regList(hw&0xff, ""))

	case hw>>12 == 0xd:
		cond := (hw >> 8) & 15
		switch cond {
		case 14:
			text = fmt.Sprintf("udf #%d", hw&0xff)
		case 15:
			text = fmt.Sprintf("svc #%d", hw&0xff)
			d.ControlFlow = true
		default:
			off := signExtend(uint32(hw&0xff), 8) * 2
			text = fmt.Sprintf("b%s %s", thumbConds[cond], pcRel(off))
			d.Branch = true
		}

	case hw>>11 == 0x1c:
		off := signExtend(uint32(hw&0x7ff), 11) * 2
		text = "b " + pcRel(off)
		d.Branch = true

	default:
		return nil, errThumbUndefined
	}
	d.Mnemonic, d.OpStr = dec.SplitText(text)
	return d, nil
}

// thumbMisc decodes the 1011 group: stack adjust, push/pop, extend, hints.
func thumbMisc(hw uint16, d *dec.Decoded) (*dec.Decoded, error) {
	var text string
	switch {
	case hw>>8 == 0xb0:
		op := "add"
		if hw&(1<<7) != 0 {
			op = "sub"
		}
		text = fmt.Sprintf("%s sp, #%d", op, (hw&0x7f)*4)

	case hw&0xf500 == 0xb100:
		// compare and branch on (non-)zero
		op := "cbz"
		if hw&(1<<11) != 0 {
			op = "cbnz"
		}
		off := int32((hw>>2)&0x3e | (hw>>3)&0x40)
		text = fmt.Sprintf("%s %s, %s", op, reg(lo3(hw, 0)), pcRel(off))
		d.Branch = true

	case hw>>8 == 0xb2:
		ops := [4]string{"sxth", "sxtb", "uxth", "uxtb"}
		text = fmt.Sprintf("%s %s, %s", ops[(hw>>6)&3], reg(lo3(hw, 0)), reg(lo3(hw, 3)))

	case hw&0xf600 == 0xb400:
		if hw&(1<<11) == 0 {
			extra := ""
			if hw&(1<<8) != 0 {
				extra = "lr"
			}
			text = "push " + regList(hw&0xff, extra)
		} else {
			extra := ""
			if hw&(1<<8) != 0 {
				extra = "pc"
				d.ControlFlow = true
			}
			text = "pop " + regList(hw&0xff, extra)
		}

	case hw&0xffe8 == 0xb660:
		op := "cpsie"
		if hw&(1<<4) != 0 {
			op = "cpsid"
		}
		var flags string
		for i, f := range []string{"f", "i", "a"} {
			if hw&(1<<uint(i)) != 0 {
				flags = f + flags
			}
		}
		text = op + " " + flags

	case hw>>8 == 0xba:
		ops := [4]string{"rev", "rev16", "", "revsh"}
		op := ops[(hw>>6)&3]
		if op == "" {
			return nil, errThumbUndefined
		}
		text = fmt.Sprintf("%s %s, %s", op, reg(lo3(hw, 0)), reg(lo3(hw, 3)))

	case hw>>8 == 0xbe:
		text = fmt.Sprintf("bkpt #%d", hw&0xff)
		d.ControlFlow = true

	case hw>>8 == 0xbf:
		if hw&0xf != 0 {
			return nil, errors.New("unsupported thumb instruction: it")
		}
		hints := [5]string{"nop", "yield", "wfe", "wfi", "sev"}
		hint := int(hw>>4) & 15
		if hint >= len(hints) {
			return nil, errThumbUndefined
		}
		text = hints[hint]

	default:
		return nil, errThumbUndefined
	}
	d.Mnemonic, d.OpStr = dec.SplitText(text)
	return d, nil
}

// thumbDecode32 decodes the bl/blx pair; other 32-bit encodings are unsupported.
func thumbDecode32(code []byte, hi uint16) (*dec.Decoded, error) {
	if len(code) < 4 {
		return nil, errors.New("truncated instruction")
	}
	lo := binary.LittleEndian.Uint16(code[2:])
	if hi>>11 != 0x1e || (lo>>11 != 0x1f && lo>>11 != 0x1d) {
		return nil, errors.Errorf("unsupported 32-bit thumb instruction %#04x %#04x", hi, lo)
	}
	off := signExtend(uint32(hi&0x7ff)<<12|uint32(lo&0x7ff)<<1, 23)
	op := "bl"
	if lo>>11 == 0x1d {
		op = "blx"
	}
	return &dec.Decoded{
		Size:        4,
		Mnemonic:    op,
		OpStr:       pcRel(off),
		ControlFlow: true,
	}, nil
}
