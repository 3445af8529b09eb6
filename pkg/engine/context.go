// Package engine implements the runtime core of the yzg execution engine:
// the node tree (C3), the process-wide Context (C4), the frame/ABI (C5),
// and the iterator protocol that drives for-loops (C6). These four
// components are kept in one package because they are, by design,
// tightly coupled — every node's Eval takes the Context, every call
// pushes and pops a Context-owned frame, and the for-node composes
// Context-visible iterators. Splitting them across packages would only
// introduce an artificial interface boundary spec.md never asks for.
package engine

import (
	"fmt"

	"github.com/yzg-lang/yzg/pkg/cell"
	"github.com/yzg-lang/yzg/pkg/enginelog"
	"github.com/yzg-lang/yzg/pkg/region"
)

// StopFlag is the bitset spec.md §4.1 defines as the engine's sole
// mechanism for non-local control flow.
type StopFlag uint32

const (
	StopBreak StopFlag = 1 << iota
	StopReturn
	StopThrow
	StopTerminate
)

// NullOffset is the sentinel a pointer/string/block cell carries when it
// represents "null". Region offsets are always >= 0, so -1 is available.
const NullOffset int64 = -1

// Config carries the build-time knobs spec.md §6 calls out.
type Config struct {
	RegionSize      int
	StackSize       int
	MaxForIterators int
	StackWalk       bool
	// PanicOnThrow switches ThrowError from flag-based unwinding to a real
	// Go panic, matching the build-time "exception mode" knob in spec.md §6.
	// Program semantics are identical either way; only the propagation
	// mechanism differs.
	PanicOnThrow bool
}

// DefaultConfig mirrors the teacher's defaults (spec.md §3: "a configured
// size, default a few MiB") and the spec's default arity cap.
func DefaultConfig() Config {
	return Config{
		RegionSize:      4 * 1024 * 1024,
		StackSize:       1 * 1024 * 1024,
		MaxForIterators: 16,
		StackWalk:       true,
	}
}

// frameRecord is the engine's live bookkeeping for one call/invoke frame:
// the Prologue of spec.md §3/§5 plus the region offsets needed to address
// locals and the argument array. It is kept in a Go slice (the "native"
// call stack) alongside the region's own PushStack/PopStack accounting,
// which exists purely to enforce the byte-budget and alignment invariants
// spec.md §8 tests for.
type frameRecord struct {
	base     int // region offset returned by PushStack; locals live above this
	bytes    uint32
	argsBase int64 // region offset of the argument cell array, or NullOffset
	argCount int
	result   cell.Cell
	debug    *FuncInfo
	line     int32
}

// Context is the process-wide execution state spec.md §3/§4.1 describes.
type Context struct {
	cfg Config
	reg *region.Region

	globals   []GlobalVariable
	functions []SimFunction
	blocks    []BlockDescriptor

	stopFlags StopFlag
	exception string
	hasExc    bool

	frames []frameRecord

	// OnCall is the optional per-call hook spec.md §4.5 describes ("when"
	// hooks): invoked once after the prologue is written, before the body
	// runs. Nil-checked, never required.
	OnCall func(fnIndex int, args []cell.Cell)

	toOut      func(string)
	toErr      func(string)
	breakPoint func(col, line int)
}

// NewContext constructs a context with a region of the configured size.
// Out-of-memory during construction is fatal, per spec.md §6.
func NewContext(cfg Config) *Context {
	if cfg.MaxForIterators <= 0 {
		cfg.MaxForIterators = 16
	}
	ctx := &Context{
		cfg: cfg,
		reg: region.New(cfg.RegionSize, cfg.StackSize),
	}
	ctx.toOut = func(msg string) { enginelog.Logger().Info(msg) }
	ctx.toErr = func(msg string) { enginelog.Logger().Error(msg) }
	ctx.breakPoint = func(col, line int) {}
	return ctx
}

// MaxForIterators returns the configured cap on for-loop arity (spec.md §6).
func (c *Context) MaxForIterators() int { return c.cfg.MaxForIterators }

//-----------------------------------------------------------------------------
// Program construction (called by the front-end collaborator / builder,
// before SimEnd). spec.md §4.1 describes these as part of Context's public
// contract: allocate, allocateName, makeNode, and the descriptor tables.
//-----------------------------------------------------------------------------

// AllocateName interns a name in the region's arena.
func (c *Context) AllocateName(name string) int64 {
	off, err := c.reg.AllocateName(name)
	if err != nil {
		panic(fmt.Sprintf("engine: out of memory interning name %q: %v", name, err))
	}
	return int64(off)
}

// AllocateBytes reserves n bytes of arena storage (e.g. for an array
// literal's backing data) and returns its offset. Like AllocateName,
// running out of memory here is fatal.
func (c *Context) AllocateBytes(n int) int64 {
	off, err := c.reg.Allocate(n)
	if err != nil {
		panic(fmt.Sprintf("engine: out of memory allocating %d bytes: %v", n, err))
	}
	return int64(off)
}

// DefineFunction registers a function descriptor and returns its index.
func (c *Context) DefineFunction(fn SimFunction) int {
	c.functions = append(c.functions, fn)
	return len(c.functions) - 1
}

// DefineGlobal registers a global variable descriptor and returns its index.
func (c *Context) DefineGlobal(g GlobalVariable) int {
	c.globals = append(c.globals, g)
	return len(c.globals) - 1
}

// DefineBlock registers a block descriptor (produced by a make-block node
// at setup time isn't required in this Go port — blocks may also be
// pre-registered directly by the builder) and returns its index.
func (c *Context) DefineBlock(b BlockDescriptor) int {
	c.blocks = append(c.blocks, b)
	return len(c.blocks) - 1
}

func (c *Context) Block(idx int) *BlockDescriptor {
	if idx < 0 || idx >= len(c.blocks) {
		return nil
	}
	return &c.blocks[idx]
}

// SimEnd freezes the arena: everything allocated so far is now immutable
// program (spec.md §4.1).
func (c *Context) SimEnd() { c.reg.SimEnd() }

// Restart resets run-time state without discarding the compiled program
// (spec.md §4.1).
func (c *Context) Restart() {
	c.reg.Restart()
	c.frames = c.frames[:0]
	c.stopFlags = 0
	c.exception = ""
	c.hasExc = false
	for i := range c.globals {
		c.globals[i].Value = cell.Zero
	}
}

//-----------------------------------------------------------------------------
// Lookups
//-----------------------------------------------------------------------------

func (c *Context) FindFunction(name string) int {
	for i, f := range c.functions {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (c *Context) FindVariable(name string) int {
	for i, g := range c.globals {
		if g.Name == name {
			return i
		}
	}
	return -1
}

// GetVariable reads the i-th global's value cell, bounds-checked.
func (c *Context) GetVariable(i int) cell.Cell {
	if i < 0 || i >= len(c.globals) {
		panic("engine: variable index out of range")
	}
	return c.globals[i].Value
}

func (c *Context) SetVariable(i int, v cell.Cell) {
	if i < 0 || i >= len(c.globals) {
		panic("engine: variable index out of range")
	}
	c.globals[i].Value = v
}

func (c *Context) FunctionCount() int { return len(c.functions) }
func (c *Context) VariableCount() int { return len(c.globals) }

// RunInitScript evaluates each global's init node, writing into its cell.
// Applying it twice from a fresh Restart produces the same globals as
// applying it once (spec.md §8, "Init determinism").
func (c *Context) RunInitScript() {
	for i := range c.globals {
		if c.globals[i].Init == nil {
			continue
		}
		c.globals[i].Value = c.globals[i].Init.Eval(c)
		if c.stopFlags&StopThrow != 0 {
			return
		}
	}
}

//-----------------------------------------------------------------------------
// Stop flags and exceptions
//-----------------------------------------------------------------------------

func (c *Context) SetFlag(f StopFlag)      { c.stopFlags |= f }
func (c *Context) ClearFlag(f StopFlag)    { c.stopFlags &^= f }
func (c *Context) HasFlag(f StopFlag) bool { return c.stopFlags&f != 0 }
func (c *Context) StopFlags() StopFlag     { return c.stopFlags }

// Stopped reports whether any flag that must halt further observable
// child evaluation is set (spec.md §8, "Stop-flag monotonicity").
func (c *Context) Stopped() bool { return c.stopFlags != 0 }

// ThrowError records an exception message and sets the throw flag. No
// stack unwinding occurs at this point — the interpreter is expected to
// check the flag between every child evaluation from here on
// (spec.md §4.1).
func (c *Context) ThrowError(message string) {
	c.exception = message
	c.hasExc = true
	c.stopFlags |= StopThrow
	if c.cfg.PanicOnThrow {
		panic(engineThrow{message: message})
	}
}

// engineThrow is the payload used only when Config.PanicOnThrow selects
// the host-language-panic exception mode described in spec.md §6. The top
// of Call/Invoke recovers it and converts it back into the same
// flag-based observable state, so program semantics are unaffected.
type engineThrow struct{ message string }

// GetException returns the in-flight exception message, or ("", false)
// when the throw flag is not set.
func (c *Context) GetException() (string, bool) {
	if !c.hasExc {
		return "", false
	}
	return c.exception, true
}

func (c *Context) clearException() {
	c.exception = ""
	c.hasExc = false
	c.stopFlags &^= StopThrow
}

//-----------------------------------------------------------------------------
// Host hooks
//-----------------------------------------------------------------------------

// SetHostHooks overrides the default to_out/to_err/breakPoint hooks. Any
// nil argument leaves the corresponding hook unchanged.
func (c *Context) SetHostHooks(toOut, toErr func(string), breakPoint func(col, line int)) {
	if toOut != nil {
		c.toOut = toOut
	}
	if toErr != nil {
		c.toErr = toErr
	}
	if breakPoint != nil {
		c.breakPoint = breakPoint
	}
}

func (c *Context) ToOut(msg string)         { c.toOut(msg) }
func (c *Context) ToErr(msg string)         { c.toErr(msg) }
func (c *Context) BreakPoint(col, line int) { c.breakPoint(col, line) }

// StackWalk iterates frames from the current call stack, most-recent
// first, invoking to_err with each frame's debug line info
// (spec.md §4.1, §7).
func (c *Context) StackWalk() {
	if !c.cfg.StackWalk {
		return
	}
	for i := len(c.frames) - 1; i >= 0; i-- {
		f := c.frames[i]
		name := "<anonymous>"
		if f.debug != nil {
			name = f.debug.Name
		}
		c.toErr(fmt.Sprintf("%s at line %d", name, f.line))
	}
}

//-----------------------------------------------------------------------------
// Region-backed cell storage — locals and argument arrays live as raw
// bytes in the region's stack sub-buffer (spec.md §4.3 role 3 / §4.4).
//-----------------------------------------------------------------------------

func (c *Context) readCell(off int64) cell.Cell {
	var out cell.Cell
	copy(out[:], c.reg.Bytes(int(off), cell.Size))
	return out
}

func (c *Context) writeCell(off int64, v cell.Cell) {
	copy(c.reg.Bytes(int(off), cell.Size), v[:])
}

func (c *Context) readBytes(off int64, n int) []byte {
	return c.reg.Bytes(int(off), n)
}

// currentFrame returns the active frame record, or nil if the call stack
// is empty (top-level init-script evaluation).
func (c *Context) currentFrame() *frameRecord {
	if len(c.frames) == 0 {
		return nil
	}
	return &c.frames[len(c.frames)-1]
}
