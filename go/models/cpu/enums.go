package cpu

// hook types. HookAdd takes exactly one per call.
const (
	// before a concrete memory value is read
	HOOK_MEM_READ = 1

	// before a concrete memory value is written
	HOOK_MEM_WRITE = 2

	// before a concrete register value is read
	HOOK_REG_READ = 4

	// before a concrete register value is written
	HOOK_REG_WRITE = 8
)

const PAGE_SIZE = 0x1000
