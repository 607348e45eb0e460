package arch

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/lunixbochs/archcore/go/arch/arm"
	"github.com/lunixbochs/archcore/go/arch/arm64"
	"github.com/lunixbochs/archcore/go/arch/x86"
	"github.com/lunixbochs/archcore/go/arch/x86_64"
	"github.com/lunixbochs/archcore/go/models"
	"github.com/lunixbochs/archcore/go/models/cpu"
)

var archMap = map[models.ArchTag]*cpu.Arch{
	models.ARCH_AARCH64: arm64.Arch,
	models.ARCH_ARM32:   arm.Arch,
	models.ARCH_X86:     x86.Arch,
	models.ARCH_X86_64:  x86_64.Arch,
}

func GetArch(tag models.ArchTag) (*cpu.Arch, error) {
	a, ok := archMap[tag]
	if !ok {
		return nil, errors.Wrapf(models.ErrUnsupportedArchitecture, "arch %v", tag)
	}
	return a, nil
}

func GetArchByName(name string) (*cpu.Arch, error) {
	tag, err := models.ParseArch(name)
	if err != nil {
		return nil, err
	}
	return GetArch(tag)
}

// Archs lists the supported architectures by tag.
func Archs() []*cpu.Arch {
	out := make([]*cpu.Arch, 0, len(archMap))
	for _, a := range archMap {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}
