package models

import (
	"encoding/binary"
	"math/big"
	"math/bits"
)

// Uint512 is a fixed-width concrete value, wide enough for the largest
// vector register. Words are stored least significant first.
type Uint512 [8]uint64

func NewUint512(v uint64) Uint512 {
	return Uint512{v}
}

// Mask512 returns a value with the low n bits set.
func Mask512(n uint32) Uint512 {
	var r Uint512
	if n >= 512 {
		for i := range r {
			r[i] = ^uint64(0)
		}
		return r
	}
	words, rem := n/64, n%64
	for i := uint32(0); i < words; i++ {
		r[i] = ^uint64(0)
	}
	if rem != 0 {
		r[words] = (uint64(1) << rem) - 1
	}
	return r
}

func (u Uint512) Uint64() uint64 { return u[0] }

func (u Uint512) IsZero() bool { return u == Uint512{} }

func (u Uint512) And(v Uint512) Uint512 {
	for i := range u {
		u[i] &= v[i]
	}
	return u
}

func (u Uint512) Or(v Uint512) Uint512 {
	for i := range u {
		u[i] |= v[i]
	}
	return u
}

func (u Uint512) AndNot(v Uint512) Uint512 {
	for i := range u {
		u[i] &^= v[i]
	}
	return u
}

func (u Uint512) Lsh(n uint) Uint512 {
	var r Uint512
	if n >= 512 {
		return r
	}
	words, shift := int(n/64), n%64
	for i := 7; i >= words; i-- {
		v := u[i-words] << shift
		if shift != 0 && i-words-1 >= 0 {
			v |= u[i-words-1] >> (64 - shift)
		}
		r[i] = v
	}
	return r
}

func (u Uint512) Rsh(n uint) Uint512 {
	var r Uint512
	if n >= 512 {
		return r
	}
	words, shift := int(n/64), n%64
	for i := 0; i+words < 8; i++ {
		v := u[i+words] >> shift
		if shift != 0 && i+words+1 < 8 {
			v |= u[i+words+1] << (64 - shift)
		}
		r[i] = v
	}
	return r
}

// BitLen returns the minimum number of bits needed to hold u.
func (u Uint512) BitLen() int {
	for i := 7; i >= 0; i-- {
		if u[i] != 0 {
			return i*64 + bits.Len64(u[i])
		}
	}
	return 0
}

// Fits reports whether u can be stored in n bits.
func (u Uint512) Fits(n uint32) bool {
	return u.BitLen() <= int(n)
}

func (u Uint512) Cmp(v Uint512) int {
	for i := 7; i >= 0; i-- {
		switch {
		case u[i] < v[i]:
			return -1
		case u[i] > v[i]:
			return 1
		}
	}
	return 0
}

// Bytes encodes the low size bytes of u in the given order.
func (u Uint512) Bytes(size int, order binary.ByteOrder) []byte {
	var le [64]byte
	for i, w := range u {
		binary.LittleEndian.PutUint64(le[i*8:], w)
	}
	if size > len(le) {
		size = len(le)
	}
	out := make([]byte, size)
	copy(out, le[:size])
	if order == binary.BigEndian {
		reverse(out)
	}
	return out
}

// Uint512FromBytes decodes up to 64 bytes in the given order.
func Uint512FromBytes(p []byte, order binary.ByteOrder) Uint512 {
	var le [64]byte
	if len(p) > len(le) {
		p = p[:len(le)]
	}
	copy(le[:], p)
	if order == binary.BigEndian {
		reverse(le[:len(p)])
	}
	var u Uint512
	for i := range u {
		u[i] = binary.LittleEndian.Uint64(le[i*8:])
	}
	return u
}

func (u Uint512) Big() *big.Int {
	return new(big.Int).SetBytes(u.Bytes(64, binary.BigEndian))
}

func (u Uint512) String() string {
	return "0x" + u.Big().Text(16)
}

func reverse(p []byte) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}
