package engine

import "github.com/yzg-lang/yzg/pkg/cell"

// Local slots live in the current frame's region of the region's stack
// sub-buffer, packed at each value's natural width rather than padded to
// a full Cell — see pkg/engine/memory.go. Argument slots are full Cells
// in a separately pushed argument array (see below). Offset is
// relative to the frame base; absolute addressing happens here, at the
// one place that knows about frames, so every other node stays frame-
// agnostic.

func (c *Context) localAddr(offset int64) int64 {
	f := c.currentFrame()
	if f == nil {
		panic("engine: local access with no active frame")
	}
	return int64(f.base) + offset
}

//-----------------------------------------------------------------------------
// LocalGet — reads a frame-local slot by value.
//-----------------------------------------------------------------------------

// LocalGetNode reads a local slot of a known logical type. Typ selects
// both the natural width used for the raw fast-path reads and how Eval
// boxes the result into a Cell.
type LocalGetNode struct {
	Base
	Offset int64
	Typ    cell.Type
}

func NewLocalGet(offset int64, typ cell.Type, at LineInfo) *LocalGetNode {
	n := &LocalGetNode{Offset: offset, Typ: typ}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *LocalGetNode) Eval(ctx *Context) cell.Cell {
	addr := ctx.localAddr(n.Offset)
	switch n.Typ {
	case cell.TBool:
		return cell.FromBool(ctx.rawBool(addr))
	case cell.TInt32:
		return cell.FromInt32(ctx.rawInt32(addr))
	case cell.TUInt32:
		return cell.FromUInt32(ctx.rawUInt32(addr))
	case cell.TInt64:
		return cell.FromInt64(ctx.rawInt64(addr))
	case cell.TUInt64:
		return cell.FromUInt64(ctx.rawUInt64(addr))
	case cell.TFloat32:
		return cell.FromFloat32(ctx.rawFloat32(addr))
	case cell.TPointer, cell.TString, cell.TBlock:
		return cell.FromInt64(ctx.rawPtr(addr))
	default:
		// Vectors, ranges: these are stored as a full boxed Cell even in
		// frame-local slots, since none of their lanes individually need
		// the fast-path treatment the scalar types get.
		return ctx.readCell(addr)
	}
}

func (n *LocalGetNode) EvalBool(ctx *Context) bool     { return ctx.rawBool(ctx.localAddr(n.Offset)) }
func (n *LocalGetNode) EvalInt32(ctx *Context) int32   { return ctx.rawInt32(ctx.localAddr(n.Offset)) }
func (n *LocalGetNode) EvalUInt32(ctx *Context) uint32 { return ctx.rawUInt32(ctx.localAddr(n.Offset)) }
func (n *LocalGetNode) EvalInt64(ctx *Context) int64   { return ctx.rawInt64(ctx.localAddr(n.Offset)) }
func (n *LocalGetNode) EvalUInt64(ctx *Context) uint64 { return ctx.rawUInt64(ctx.localAddr(n.Offset)) }
func (n *LocalGetNode) EvalFloat32(ctx *Context) float32 {
	return ctx.rawFloat32(ctx.localAddr(n.Offset))
}
func (n *LocalGetNode) EvalPtr(ctx *Context) int64 { return ctx.rawPtr(ctx.localAddr(n.Offset)) }

// LocalRefNode yields the address of a local slot rather than its value —
// the "ref" family spec.md §4.2 describes for by-reference parameter and
// capture passing.
type LocalRefNode struct {
	Base
	Offset int64
}

func NewLocalRef(offset int64, at LineInfo) *LocalRefNode {
	n := &LocalRefNode{Offset: offset}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *LocalRefNode) Eval(ctx *Context) cell.Cell {
	return cell.FromInt64(ctx.localAddr(n.Offset))
}
func (n *LocalRefNode) EvalPtr(ctx *Context) int64 { return ctx.localAddr(n.Offset) }

// LocalRefToValueNode treats the local slot itself as holding a pointer,
// and reads through it once more to fetch the pointee (spec.md §4.2,
// "ref-to-value" indirection, e.g. a block body reading the variable
// whose address a closure stored in the slot).
type LocalRefToValueNode struct {
	Base
	Offset int64
	Typ    cell.Type
}

func NewLocalRefToValue(offset int64, typ cell.Type, at LineInfo) *LocalRefToValueNode {
	n := &LocalRefToValueNode{Offset: offset, Typ: typ}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *LocalRefToValueNode) target(ctx *Context) int64 {
	return ctx.rawPtr(ctx.localAddr(n.Offset))
}

func (n *LocalRefToValueNode) Eval(ctx *Context) cell.Cell {
	addr := n.target(ctx)
	switch n.Typ {
	case cell.TBool:
		return cell.FromBool(ctx.rawBool(addr))
	case cell.TInt32:
		return cell.FromInt32(ctx.rawInt32(addr))
	case cell.TUInt32:
		return cell.FromUInt32(ctx.rawUInt32(addr))
	case cell.TInt64:
		return cell.FromInt64(ctx.rawInt64(addr))
	case cell.TUInt64:
		return cell.FromUInt64(ctx.rawUInt64(addr))
	case cell.TFloat32:
		return cell.FromFloat32(ctx.rawFloat32(addr))
	case cell.TPointer, cell.TString, cell.TBlock:
		return cell.FromInt64(ctx.rawPtr(addr))
	default:
		return ctx.readCell(addr)
	}
}

func (n *LocalRefToValueNode) EvalInt32(ctx *Context) int32 { return ctx.rawInt32(n.target(ctx)) }
func (n *LocalRefToValueNode) EvalFloat32(ctx *Context) float32 {
	return ctx.rawFloat32(n.target(ctx))
}

//-----------------------------------------------------------------------------
// InitLocal — zeroes a freshly-entered local slot (spec.md §3).
//-----------------------------------------------------------------------------

type InitLocalNode struct {
	Base
	Offset int64
	Bytes  int
}

func NewInitLocal(offset int64, width int, at LineInfo) *InitLocalNode {
	n := &InitLocalNode{Offset: offset, Bytes: width}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *InitLocalNode) Eval(ctx *Context) cell.Cell {
	ctx.zeroSpan(ctx.localAddr(n.Offset), n.Bytes)
	return cell.Zero
}

//-----------------------------------------------------------------------------
// Argument array access — ABI argument cells are always full 16-byte
// Cells (spec.md §4.4, "the argument array is N cells wide"), unlike
// locals, because a caller does not statically know every callee's
// parameter widths the way it knows its own locals.
//-----------------------------------------------------------------------------

type ArgumentGetNode struct {
	Base
	Index int
}

func NewArgumentGet(index int, at LineInfo) *ArgumentGetNode {
	n := &ArgumentGetNode{Index: index}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *ArgumentGetNode) argAddr(ctx *Context) int64 {
	f := ctx.currentFrame()
	if f == nil || f.argsBase == NullOffset || n.Index >= f.argCount {
		panic("engine: argument index out of range")
	}
	return f.argsBase + int64(n.Index)*cell.Size
}

func (n *ArgumentGetNode) Eval(ctx *Context) cell.Cell {
	return ctx.readCell(n.argAddr(ctx))
}

// ArgumentRefNode yields the address of argument i's cell, used to pass
// arguments through by reference to a nested block (spec.md §4.9).
type ArgumentRefNode struct {
	Base
	Index int
}

func NewArgumentRef(index int, at LineInfo) *ArgumentRefNode {
	n := &ArgumentRefNode{Index: index}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *ArgumentRefNode) argAddr(ctx *Context) int64 {
	f := ctx.currentFrame()
	if f == nil || f.argsBase == NullOffset || n.Index >= f.argCount {
		panic("engine: argument index out of range")
	}
	return f.argsBase + int64(n.Index)*cell.Size
}

func (n *ArgumentRefNode) Eval(ctx *Context) cell.Cell { return cell.FromInt64(n.argAddr(ctx)) }
func (n *ArgumentRefNode) EvalPtr(ctx *Context) int64  { return n.argAddr(ctx) }

// BlockArgumentGetNode reads argument i of a block invocation by
// following a captured pointer-to-arguments-cell stored at a known
// offset in the enclosing frame — the nested block-argument access
// pattern spec.md §4.9 describes.
type BlockArgumentGetNode struct {
	Base
	CapturedOffset int64
	Index          int
}

func NewBlockArgumentGet(capturedOffset int64, index int, at LineInfo) *BlockArgumentGetNode {
	n := &BlockArgumentGetNode{CapturedOffset: capturedOffset, Index: index}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *BlockArgumentGetNode) Eval(ctx *Context) cell.Cell {
	argsPtr := ctx.rawPtr(ctx.localAddr(n.CapturedOffset))
	return ctx.readCell(argsPtr + int64(n.Index)*cell.Size)
}

//-----------------------------------------------------------------------------
// Globals — the descriptor's Value cell is the storage; spec.md §3 notes
// that for large aggregates the cell itself holds a pointer elsewhere in
// the region, but that indirection is the front end's concern, not the
// node's.
//-----------------------------------------------------------------------------

type GlobalGetNode struct {
	Base
	Index int
}

func NewGlobalGet(index int, at LineInfo) *GlobalGetNode {
	n := &GlobalGetNode{Index: index}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *GlobalGetNode) Eval(ctx *Context) cell.Cell { return ctx.GetVariable(n.Index) }

type GlobalSetNode struct {
	Base
	Index int
	Value Node
}

func NewGlobalSet(index int, value Node, at LineInfo) *GlobalSetNode {
	n := &GlobalSetNode{Index: index, Value: value}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *GlobalSetNode) Eval(ctx *Context) cell.Cell {
	v := n.Value.Eval(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	ctx.SetVariable(n.Index, v)
	return v
}
