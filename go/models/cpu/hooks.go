package cpu

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/archcore/go/models"
)

type Hook interface{}

// callback signatures accepted by HookAdd
type (
	MemReadCb  func(Cpu, models.MemoryAccess)
	MemWriteCb func(Cpu, models.MemoryAccess, models.Uint512)
	RegReadCb  func(Cpu, *models.Register)
	RegWriteCb func(Cpu, *models.Register, models.Uint512)
)

// start > end matches everything. Memory hooks match on address, register
// hooks on register id.
type hookInfo struct {
	htype int
	start uint64
	end   uint64
}

func (h *hookInfo) Type() int {
	return h.htype
}

func (h *hookInfo) Contains(addr uint64) bool {
	return h.start > h.end || addr >= h.start && addr <= h.end
}

type hinfo interface {
	Type() int
}

type memReadHook struct {
	hookInfo
	cb MemReadCb
}

type memWriteHook struct {
	hookInfo
	cb MemWriteCb
}

type regReadHook struct {
	hookInfo
	cb RegReadCb
}

type regWriteHook struct {
	hookInfo
	cb RegWriteCb
}

// Hooks is the callback registry of a cpu model. A registry outlives the
// model it is attached to, so callbacks survive an architecture change.
type Hooks struct {
	cpu Cpu
	// set while a callback runs; nested accesses do not dispatch
	busy bool

	memRead  []*memReadHook
	memWrite []*memWriteHook
	regRead  []*regReadHook
	regWrite []*regWriteHook
}

func NewHooks() *Hooks {
	return &Hooks{}
}

// Attach sets the cpu passed to callbacks.
func (h *Hooks) Attach(c Cpu) {
	if h != nil {
		h.cpu = c
	}
}

func toCb[T any](cb interface{}) (T, error) {
	v, ok := cb.(T)
	if !ok {
		var zero T
		return zero, errors.Errorf("wrong callback type %T for hook", cb)
	}
	return v, nil
}

func (h *Hooks) HookAdd(htype int, cb interface{}, start uint64, end uint64) (Hook, error) {
	info := hookInfo{htype, start, end}
	var hook interface{}
	switch htype {
	case HOOK_MEM_READ:
		fn, err := toCb[func(Cpu, models.MemoryAccess)](cb)
		if err != nil {
			return nil, err
		}
		hh := &memReadHook{info, fn}
		h.memRead, hook = append(h.memRead, hh), hh

	case HOOK_MEM_WRITE:
		fn, err := toCb[func(Cpu, models.MemoryAccess, models.Uint512)](cb)
		if err != nil {
			return nil, err
		}
		hh := &memWriteHook{info, fn}
		h.memWrite, hook = append(h.memWrite, hh), hh

	case HOOK_REG_READ:
		fn, err := toCb[func(Cpu, *models.Register)](cb)
		if err != nil {
			return nil, err
		}
		hh := &regReadHook{info, fn}
		h.regRead, hook = append(h.regRead, hh), hh

	case HOOK_REG_WRITE:
		fn, err := toCb[func(Cpu, *models.Register, models.Uint512)](cb)
		if err != nil {
			return nil, err
		}
		hh := &regWriteHook{info, fn}
		h.regWrite, hook = append(h.regWrite, hh), hh

	default:
		return nil, errors.Errorf("unknown hook type %d", htype)
	}
	return hook, nil
}

func without[T comparable](list []T, hh Hook) []T {
	var tmp []T
	for _, v := range list {
		if Hook(v) != hh {
			tmp = append(tmp, v)
		}
	}
	return tmp
}

func (h *Hooks) HookDel(hh Hook) error {
	info, ok := hh.(hinfo)
	if !ok {
		return errors.Errorf("not a hook: %T", hh)
	}
	switch info.Type() {
	case HOOK_MEM_READ:
		h.memRead = without(h.memRead, hh)
	case HOOK_MEM_WRITE:
		h.memWrite = without(h.memWrite, hh)
	case HOOK_REG_READ:
		h.regRead = without(h.regRead, hh)
	case HOOK_REG_WRITE:
		h.regWrite = without(h.regWrite, hh)
	}
	return nil
}

func (h *Hooks) enter() bool {
	if h == nil || h.busy {
		return false
	}
	h.busy = true
	return true
}

func (h *Hooks) leave() {
	h.busy = false
}

func (h *Hooks) OnMemRead(mem models.MemoryAccess) {
	if h.count(HOOK_MEM_READ) == 0 || !h.enter() {
		return
	}
	defer h.leave()
	for _, v := range h.memRead {
		if v.Contains(mem.Address) {
			v.cb(h.cpu, mem)
		}
	}
}

func (h *Hooks) OnMemWrite(mem models.MemoryAccess, val models.Uint512) {
	if h.count(HOOK_MEM_WRITE) == 0 || !h.enter() {
		return
	}
	defer h.leave()
	for _, v := range h.memWrite {
		if v.Contains(mem.Address) {
			v.cb(h.cpu, mem, val)
		}
	}
}

func (h *Hooks) OnRegRead(reg *models.Register) {
	if h.count(HOOK_REG_READ) == 0 || !h.enter() {
		return
	}
	defer h.leave()
	for _, v := range h.regRead {
		if v.Contains(uint64(reg.Id)) {
			v.cb(h.cpu, reg)
		}
	}
}

func (h *Hooks) OnRegWrite(reg *models.Register, val models.Uint512) {
	if h.count(HOOK_REG_WRITE) == 0 || !h.enter() {
		return
	}
	defer h.leave()
	for _, v := range h.regWrite {
		if v.Contains(uint64(reg.Id)) {
			v.cb(h.cpu, reg, val)
		}
	}
}

func (h *Hooks) count(htype int) int {
	if h == nil {
		return 0
	}
	switch htype {
	case HOOK_MEM_READ:
		return len(h.memRead)
	case HOOK_MEM_WRITE:
		return len(h.memWrite)
	case HOOK_REG_READ:
		return len(h.regRead)
	case HOOK_REG_WRITE:
		return len(h.regWrite)
	}
	return 0
}
