package cpu

import (
	"bytes"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/lunixbochs/archcore/go/models"
)

// Decoded is the result of decoding one instruction.
type Decoded struct {
	Size        uint32
	Mnemonic    string
	OpStr       string
	Branch      bool
	ControlFlow bool
}

// DecodeFunc decodes the first instruction of code, located at addr.
type DecodeFunc func(code []byte, addr uint64) (*Decoded, error)

// entries kept before the cache is dropped
const discacheMax = 0x10000

type discacheEntry struct {
	mem []byte
	dec *Decoded
}

type discache struct {
	sync.RWMutex
	cache map[uint64]*discacheEntry
}

func (d *discache) Get(addr uint64, mem []byte) *Decoded {
	d.RLock()
	defer d.RUnlock()

	if ent, ok := d.cache[addr]; ok {
		// the entry only covers the bytes the instruction used
		if len(mem) >= len(ent.mem) && bytes.Equal(mem[:len(ent.mem)], ent.mem) {
			return ent.dec
		}
	}
	return nil
}

func (d *discache) Put(addr uint64, mem []byte, dec *Decoded) {
	d.Lock()
	defer d.Unlock()

	if d.cache == nil || len(d.cache) >= discacheMax {
		d.cache = make(map[uint64]*discacheEntry)
	}
	d.cache[addr] = &discacheEntry{
		mem: append([]byte(nil), mem[:dec.Size]...),
		dec: dec,
	}
}

func (d *discache) Reset() {
	d.Lock()
	d.cache = nil
	d.Unlock()
}

// Decoder wraps a DecodeFunc with a decode cache keyed by address and bytes.
type Decoder struct {
	decode DecodeFunc
	dc     discache
}

func NewDecoder(fn DecodeFunc) *Decoder {
	return &Decoder{decode: fn}
}

// Decode fills in the size, text and classification of inst.
func (d *Decoder) Decode(inst *models.Instruction) error {
	dec := d.dc.Get(inst.Address, inst.Opcode)
	if dec == nil {
		var err error
		if dec, err = d.decode(inst.Opcode, inst.Address); err != nil {
			return errors.Wrapf(err, "decode failed at %#x", inst.Address)
		}
		if dec.Size > 0 && int(dec.Size) <= len(inst.Opcode) {
			d.dc.Put(inst.Address, inst.Opcode, dec)
		}
	}
	inst.Branch = dec.Branch
	inst.ControlFlow = dec.ControlFlow || dec.Branch
	inst.SetDecoded(dec.Size, dec.Mnemonic, dec.OpStr)
	return nil
}

func (d *Decoder) Reset() {
	d.dc.Reset()
}

// SplitText splits decoder output into mnemonic and operands.
func SplitText(text string) (string, string) {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, ' '); i >= 0 {
		return strings.ToLower(text[:i]), strings.TrimSpace(text[i+1:])
	}
	return strings.ToLower(text), ""
}
