package models

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArch(t *testing.T) {
	table := []struct {
		name string
		tag  ArchTag
	}{
		{"x86", ARCH_X86},
		{"i386", ARCH_X86},
		{"x86_64", ARCH_X86_64},
		{"AMD64", ARCH_X86_64},
		{" x64 ", ARCH_X86_64},
		{"arm", ARCH_ARM32},
		{"arm64", ARCH_AARCH64},
		{"aarch64", ARCH_AARCH64},
	}
	for _, tc := range table {
		tag, err := ParseArch(tc.name)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.tag, tag, tc.name)
	}
	tag, err := ParseArch("mips")
	assert.Equal(t, ARCH_INVALID, tag)
	assert.ErrorIs(t, err, ErrUnsupportedArchitecture)
	assert.ErrorIs(t, err, ErrArchitecture)
}

func TestArchString(t *testing.T) {
	assert.Equal(t, "aarch64", ARCH_AARCH64.String())
	assert.Equal(t, "invalid", ARCH_INVALID.String())
	assert.Equal(t, "ArchTag(42)", ArchTag(42).String())
	for tag, name := range archNames {
		if tag == ARCH_INVALID {
			continue
		}
		parsed, err := ParseArch(name)
		require.NoError(t, err)
		assert.Equal(t, tag, parsed)
	}
}

func TestEndianness(t *testing.T) {
	assert.Equal(t, binary.ByteOrder(binary.LittleEndian), LE_ENDIANNESS.ByteOrder())
	assert.Equal(t, binary.ByteOrder(binary.BigEndian), BE_ENDIANNESS.ByteOrder())
	assert.Equal(t, "little", LE_ENDIANNESS.String())
	assert.Equal(t, "unknown", Endianness(0).String())
}
