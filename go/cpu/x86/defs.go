package x86

import (
	"github.com/lunixbochs/archcore/go/models"
)

// register ids, shared by the 32-bit and 64-bit models
const (
	RAX = models.REG_X86_BASE + iota
	RBX
	RCX
	RDX
	RDI
	RSI
	RBP
	RSP
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
	EAX
	EBX
	ECX
	EDX
	EDI
	ESI
	EBP
	ESP
	R8D
	R9D
	R10D
	R11D
	R12D
	R13D
	R14D
	R15D
	AX
	BX
	CX
	DX
	DI
	SI
	BP
	SP
	R8W
	R9W
	R10W
	R11W
	R12W
	R13W
	R14W
	R15W
	AL
	BL
	CL
	DL
	DIL
	SIL
	BPL
	SPL
	R8B
	R9B
	R10B
	R11B
	R12B
	R13B
	R14B
	R15B
	AH
	BH
	CH
	DH
	RIP
	EIP
	EFLAGS
	CS
	DS
	ES
	FS
	GS
	SS
	YMM0
	YMM1
	YMM2
	YMM3
	YMM4
	YMM5
	YMM6
	YMM7
	YMM8
	YMM9
	YMM10
	YMM11
	YMM12
	YMM13
	YMM14
	YMM15
	XMM0
	XMM1
	XMM2
	XMM3
	XMM4
	XMM5
	XMM6
	XMM7
	XMM8
	XMM9
	XMM10
	XMM11
	XMM12
	XMM13
	XMM14
	XMM15
	AF
	CF
	DF
	IF
	OF
	PF
	SF
	TF
	ZF
)
