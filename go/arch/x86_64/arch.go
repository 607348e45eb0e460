package x86_64

import (
	"github.com/lunixbochs/archcore/go/cpu/x86"
	"github.com/lunixbochs/archcore/go/models"
	"github.com/lunixbochs/archcore/go/models/cpu"
)

var Arch = &cpu.Arch{
	Tag:  models.ARCH_X86_64,
	Name: "x86_64",
	Bits: 64,
	Cpu:  &x86.Builder{Mode: 64},
}
