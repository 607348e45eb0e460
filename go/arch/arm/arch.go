package arm

import (
	"github.com/lunixbochs/archcore/go/cpu/arm"
	"github.com/lunixbochs/archcore/go/models"
	"github.com/lunixbochs/archcore/go/models/cpu"
)

var Arch = &cpu.Arch{
	Tag:  models.ARCH_ARM32,
	Name: "arm32",
	Bits: 32,
	Cpu:  &arm.Builder{},
}
