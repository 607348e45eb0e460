package main

import (
	"github.com/lunixbochs/archcore/go/cmd"

	_ "github.com/lunixbochs/archcore/go/cmd/dis"
	_ "github.com/lunixbochs/archcore/go/cmd/regs"
)

func main() { cmd.Main() }
