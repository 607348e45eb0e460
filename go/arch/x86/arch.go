package x86

import (
	"github.com/lunixbochs/archcore/go/cpu/x86"
	"github.com/lunixbochs/archcore/go/models"
	"github.com/lunixbochs/archcore/go/models/cpu"
)

var Arch = &cpu.Arch{
	Tag:  models.ARCH_X86,
	Name: "x86",
	Bits: 32,
	Cpu:  &x86.Builder{Mode: 32},
}
