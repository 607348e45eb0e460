package cpu

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/golang/snappy"
	"github.com/pkg/errors"

	"github.com/lunixbochs/archcore/go/models"
)

// snapshot format:
//
// header (struc, big endian)
// [4]byte("ACST"), uint32(format version), uint32(arch tag), uint8(mode flags)
// uint32(crc32 of compressed body), uint64(length of compressed body)
// remainder is snappy-compressed
//
// -- uncompressed body --
// uint64(number of parent registers)
// 1..num: uint32(register id), [64]byte(little endian value)
// uint64(number of defined memory regions)
// 1..num: uint64(addr), uint64(len), <raw bytes of len>

const (
	SAVESTATE_VERSION = 1

	stateThumb     = 1 << 0
	stateExclusive = 1 << 1
)

const stateMagic = "ACST"

var ErrBadSnapshot = errors.New("bad snapshot")

type stateHeader struct {
	Magic   string `struc:"[4]byte"`
	Version uint32
	Arch    uint32
	Flags   uint8
	Crc     uint32
	Length  uint64
}

type stateCount struct {
	Count uint64
}

type stateReg struct {
	Id    uint32
	Value []byte `struc:"[64]byte"`
}

type stateRegion struct {
	Addr uint64
	Size int `struc:"uint64,sizeof=Data"`
	Data []byte
}

// Save serializes the concrete state of c without firing callbacks.
func Save(c Cpu) ([]byte, error) {
	var body bytes.Buffer
	s := models.StrucStream{Stream: &body, Order: binary.BigEndian}

	regs := c.ParentRegisters()
	if err := s.Pack(&stateCount{uint64(len(regs))}); err != nil {
		return nil, err
	}
	for _, reg := range regs {
		val, err := c.ConcreteRegisterValue(reg, false)
		if err != nil {
			return nil, err
		}
		if err := s.Pack(&stateReg{uint32(reg.Id), val.Bytes(64, binary.LittleEndian)}); err != nil {
			return nil, err
		}
	}

	regions := c.ConcreteMemoryRegions()
	if err := s.Pack(&stateCount{uint64(len(regions))}); err != nil {
		return nil, err
	}
	for _, r := range regions {
		if err := s.Pack(&stateRegion{Addr: r.Addr, Data: r.Data}); err != nil {
			return nil, err
		}
	}

	data := snappy.Encode(nil, body.Bytes())
	hdr := &stateHeader{
		Magic:   stateMagic,
		Version: SAVESTATE_VERSION,
		Arch:    uint32(c.Arch()),
		Crc:     crc32.ChecksumIEEE(data),
		Length:  uint64(len(data)),
	}
	if c.IsThumb() {
		hdr.Flags |= stateThumb
	}
	if c.IsMemoryExclusiveAccess() {
		hdr.Flags |= stateExclusive
	}
	var final bytes.Buffer
	s = models.StrucStream{Stream: &final, Order: binary.BigEndian}
	if err := s.Pack(hdr); err != nil {
		return nil, err
	}
	final.Write(data)
	return final.Bytes(), nil
}

// Restore replaces the concrete state of c with a snapshot taken by Save.
// The snapshot is fully validated before c is touched.
func Restore(c Cpu, data []byte) error {
	var hdr stateHeader
	r := bytes.NewReader(data)
	s := models.StrucStream{Stream: &readOnly{r}, Order: binary.BigEndian}
	if err := s.Unpack(&hdr); err != nil {
		return errors.Wrap(ErrBadSnapshot, err.Error())
	}
	switch {
	case hdr.Magic != stateMagic:
		return errors.Wrap(ErrBadSnapshot, "wrong magic")
	case hdr.Version != SAVESTATE_VERSION:
		return errors.Wrapf(ErrBadSnapshot, "unsupported version %d", hdr.Version)
	case models.ArchTag(hdr.Arch) != c.Arch():
		return errors.Wrapf(ErrBadSnapshot, "snapshot is for %s, cpu is %s", models.ArchTag(hdr.Arch), c.Arch())
	case uint64(r.Len()) != hdr.Length:
		return errors.Wrapf(ErrBadSnapshot, "body is %d bytes, expected %d", r.Len(), hdr.Length)
	}
	comp := data[len(data)-r.Len():]
	if crc32.ChecksumIEEE(comp) != hdr.Crc {
		return errors.Wrap(ErrBadSnapshot, "checksum mismatch")
	}
	raw, err := snappy.Decode(nil, comp)
	if err != nil {
		return errors.Wrap(ErrBadSnapshot, err.Error())
	}

	type regVal struct {
		reg *models.Register
		val models.Uint512
	}
	s = models.StrucStream{Stream: &readOnly{bytes.NewReader(raw)}, Order: binary.BigEndian}
	var count stateCount
	if err := s.Unpack(&count); err != nil {
		return errors.Wrap(ErrBadSnapshot, err.Error())
	}
	var regs []regVal
	for i := uint64(0); i < count.Count; i++ {
		var sr stateReg
		if err := s.Unpack(&sr); err != nil {
			return errors.Wrap(ErrBadSnapshot, err.Error())
		}
		reg, err := c.Register(models.RegId(sr.Id))
		if err != nil {
			return err
		}
		val := models.Uint512FromBytes(sr.Value, binary.LittleEndian)
		if !val.Fits(reg.BitSize()) {
			return errors.Wrapf(ErrBadSnapshot, "value too large for %s", reg.Name)
		}
		regs = append(regs, regVal{reg, val})
	}
	if err := s.Unpack(&count); err != nil {
		return errors.Wrap(ErrBadSnapshot, err.Error())
	}
	var regions []stateRegion
	for i := uint64(0); i < count.Count; i++ {
		var sr stateRegion
		if err := s.Unpack(&sr); err != nil {
			return errors.Wrap(ErrBadSnapshot, err.Error())
		}
		regions = append(regions, sr)
	}

	c.Clear()
	for _, rv := range regs {
		if err := c.SetConcreteRegisterValue(rv.reg, rv.val, false); err != nil {
			return err
		}
	}
	for _, region := range regions {
		c.SetConcreteMemoryAreaValue(region.Addr, region.Data, false)
	}
	c.SetThumb(hdr.Flags&stateThumb != 0)
	c.SetMemoryExclusiveAccess(hdr.Flags&stateExclusive != 0)
	return nil
}

// StrucStream wants an io.ReadWriter.
type readOnly struct {
	*bytes.Reader
}

func (r *readOnly) Write(p []byte) (int, error) {
	return 0, errors.New("read-only stream")
}
