package arm64

import (
	"github.com/lunixbochs/archcore/go/cpu/arm64"
	"github.com/lunixbochs/archcore/go/models"
	"github.com/lunixbochs/archcore/go/models/cpu"
)

var Arch = &cpu.Arch{
	Tag:  models.ARCH_AARCH64,
	Name: "aarch64",
	Bits: 64,
	Cpu:  &arm64.Builder{},
}
