package cpu

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"

	"github.com/lunixbochs/archcore/go/models"
)

func TestPackUint(t *testing.T) {
	p, err := PackUint(binary.LittleEndian, 4, nil, models.NewUint512(0x11223344))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(p, []byte{0x44, 0x33, 0x22, 0x11}) {
		t.Fatalf("little endian pack: %x", p)
	}
	p, err = PackUint(binary.BigEndian, 2, make([]byte, 8), models.NewUint512(0x1122))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(p, []byte{0x11, 0x22}) {
		t.Fatalf("big endian pack: %x", p)
	}
	wide := models.NewUint512(1).Lsh(200)
	p, err = PackUint(binary.LittleEndian, 32, nil, wide)
	if err != nil {
		t.Fatal(err)
	}
	if p[25] != 1 {
		t.Fatalf("wide pack: %x", p)
	}
	if back, _ := UnpackUint(binary.LittleEndian, 32, p); back != wide {
		t.Fatalf("wide unpack: %s", back)
	}
}

func TestPackUintErrors(t *testing.T) {
	if _, err := PackUint(binary.LittleEndian, 3, nil, models.Uint512{}); !errors.Is(err, models.ErrInvalidMemoryAccess) {
		t.Fatalf("size 3: %v", err)
	}
	if _, err := PackUint(binary.LittleEndian, 1, nil, models.NewUint512(0x100)); !errors.Is(err, models.ErrValueTooLarge) {
		t.Fatalf("too large: %v", err)
	}
	if _, err := PackUint(binary.LittleEndian, 8, make([]byte, 4), models.Uint512{}); err == nil {
		t.Fatal("short buffer accepted")
	}
	if _, err := UnpackUint(binary.LittleEndian, 8, make([]byte, 4)); err == nil {
		t.Fatal("short buffer accepted")
	}
}
