package models

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ArchTag identifies the instruction set of the active cpu model.
type ArchTag int

const (
	ARCH_INVALID ArchTag = iota
	ARCH_AARCH64
	ARCH_ARM32
	ARCH_X86
	ARCH_X86_64
)

var archNames = map[ArchTag]string{
	ARCH_INVALID: "invalid",
	ARCH_AARCH64: "aarch64",
	ARCH_ARM32:   "arm32",
	ARCH_X86:     "x86",
	ARCH_X86_64:  "x86_64",
}

// alternate spellings accepted by ParseArch
var archAliases = map[string]ArchTag{
	"aarch64": ARCH_AARCH64,
	"arm64":   ARCH_AARCH64,
	"arm":     ARCH_ARM32,
	"arm32":   ARCH_ARM32,
	"x86":     ARCH_X86,
	"i386":    ARCH_X86,
	"386":     ARCH_X86,
	"x86_64":  ARCH_X86_64,
	"x86-64":  ARCH_X86_64,
	"x64":     ARCH_X86_64,
	"amd64":   ARCH_X86_64,
}

func (a ArchTag) String() string {
	if name, ok := archNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ArchTag(%d)", int(a))
}

// ParseArch maps an architecture name to its tag.
func ParseArch(name string) (ArchTag, error) {
	if tag, ok := archAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return tag, nil
	}
	return ARCH_INVALID, errors.Wrapf(ErrUnsupportedArchitecture, "unknown arch %q", name)
}

type Endianness int

const (
	LE_ENDIANNESS Endianness = iota + 1
	BE_ENDIANNESS
)

func (e Endianness) ByteOrder() binary.ByteOrder {
	if e == BE_ENDIANNESS {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (e Endianness) String() string {
	switch e {
	case LE_ENDIANNESS:
		return "little"
	case BE_ENDIANNESS:
		return "big"
	}
	return "unknown"
}
