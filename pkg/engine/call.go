package engine

import "github.com/yzg-lang/yzg/pkg/cell"

// closureRecordSize is the width of the small region-allocated record a
// block value points to: the block's descriptor index plus the address
// it captured at make-block time (NullOffset if it captured nothing).
const closureRecordSize = 16

func (c *Context) allocClosureRecord(blockIdx int, capturedAddr int64) int64 {
	off, err := c.reg.Allocate(closureRecordSize)
	if err != nil {
		c.ThrowError("out of memory allocating closure")
		return NullOffset
	}
	c.setRawInt64(int64(off), int64(blockIdx))
	c.setRawInt64(int64(off)+8, capturedAddr)
	return int64(off)
}

func (c *Context) closureBlockIndex(rec int64) int { return int(c.rawInt64(rec)) }
func (c *Context) closureCaptured(rec int64) int64 { return c.rawInt64(rec + 8) }

//-----------------------------------------------------------------------------
// MakeBlock / ClosureBlock — block values (spec.md §4.9).
//-----------------------------------------------------------------------------

// MakeBlockNode produces a block value with no captured state — used for
// blocks that only ever see their own arguments.
type MakeBlockNode struct {
	Base
	BlockIndex int
}

func NewMakeBlock(blockIndex int, at LineInfo) *MakeBlockNode {
	n := &MakeBlockNode{BlockIndex: blockIndex}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *MakeBlockNode) Eval(ctx *Context) cell.Cell {
	rec := ctx.allocClosureRecord(n.BlockIndex, NullOffset)
	return cell.FromInt64(rec)
}
func (n *MakeBlockNode) EvalPtr(ctx *Context) int64 {
	return ctx.allocClosureRecord(n.BlockIndex, NullOffset)
}

// ClosureBlockNode produces a block value that additionally captures one
// address (typically a LocalRefNode over an enclosing local) so the block
// body can read or write through it when invoked (spec.md §4.9). The
// address is stored as-is: one that points at an enclosing frame's local
// is valid only while that frame is still on the stack.
type ClosureBlockNode struct {
	Base
	BlockIndex int
	Capture    Node // evaluated with EvalPtr
}

func NewClosureBlock(blockIndex int, capture Node, at LineInfo) *ClosureBlockNode {
	n := &ClosureBlockNode{BlockIndex: blockIndex, Capture: capture}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *ClosureBlockNode) Eval(ctx *Context) cell.Cell {
	addr := n.Capture.EvalPtr(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	rec := ctx.allocClosureRecord(n.BlockIndex, addr)
	return cell.FromInt64(rec)
}

//-----------------------------------------------------------------------------
// Call / Invoke nodes
//-----------------------------------------------------------------------------

// CallNode calls a statically-known function by index, spec.md §4.5's
// direct-call form.
type CallNode struct {
	Base
	FnIndex int
	Args    []Node
}

func NewCall(fnIndex int, args []Node, at LineInfo) *CallNode {
	n := &CallNode{FnIndex: fnIndex, Args: args}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *CallNode) Eval(ctx *Context) cell.Cell {
	argVals, ok := evalArgs(ctx, n.Args)
	if !ok {
		return cell.Zero
	}
	return ctx.Call(n.FnIndex, argVals)
}

// InvokeNode calls a block value (spec.md §4.5's indirect-call form):
// BlockValue evaluates to a closure record pointer produced by MakeBlock
// or ClosureBlock.
type InvokeNode struct {
	Base
	BlockValue Node
	Args       []Node
}

func NewInvoke(blockValue Node, args []Node, at LineInfo) *InvokeNode {
	n := &InvokeNode{BlockValue: blockValue, Args: args}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *InvokeNode) Eval(ctx *Context) cell.Cell {
	rec := n.BlockValue.EvalPtr(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	argVals, ok := evalArgs(ctx, n.Args)
	if !ok {
		return cell.Zero
	}
	return ctx.Invoke(rec, argVals)
}

func evalArgs(ctx *Context, args []Node) ([]cell.Cell, bool) {
	if len(args) == 0 {
		return nil, true
	}
	vals := make([]cell.Cell, len(args))
	for i, a := range args {
		if ctx.Stopped() {
			return nil, false
		}
		vals[i] = a.Eval(ctx)
	}
	if ctx.Stopped() {
		return nil, false
	}
	return vals, true
}

//-----------------------------------------------------------------------------
// Context.Call / Context.Invoke — the frame/ABI machinery (spec.md §4.4,
// §4.5): push the argument array, push the frame, run the body, capture
// the result, pop in reverse order. Every exit path pops exactly what it
// pushed, regardless of whether the body returned, threw, or broke.
//-----------------------------------------------------------------------------

func (c *Context) pushArgs(args []cell.Cell) (int64, bool) {
	if len(args) == 0 {
		return NullOffset, true
	}
	off, err := c.reg.PushStack(len(args) * cell.Size)
	if err != nil {
		c.ThrowError("stack overflow")
		return NullOffset, false
	}
	argsOff := int64(off)
	for i, a := range args {
		c.writeCell(argsOff+int64(i)*cell.Size, a)
	}
	return argsOff, true
}

func (c *Context) popArgs(argsOff int64, n int) {
	if argsOff == NullOffset {
		return
	}
	c.reg.PopStack(n * cell.Size)
}

// Call invokes the function at fnIndex with the given fully-evaluated
// argument cells, per the calling convention in spec.md §4.4/§4.5.
func (c *Context) Call(fnIndex int, args []cell.Cell) cell.Cell {
	if fnIndex < 0 || fnIndex >= len(c.functions) {
		panic("engine: call to undefined function")
	}
	fn := &c.functions[fnIndex]

	argsOff, ok := c.pushArgs(args)
	if !ok {
		return cell.Zero
	}

	frameOff, err := c.reg.PushStack(int(fn.RequiredFrameBytes))
	if err != nil {
		c.popArgs(argsOff, len(args))
		c.ThrowError("stack overflow")
		return cell.Zero
	}

	line := int32(0)
	if fn.Debug != nil {
		line = int32(fn.Debug.At.Line)
	}
	c.frames = append(c.frames, frameRecord{
		base: frameOff, bytes: fn.RequiredFrameBytes,
		argsBase: argsOff, argCount: len(args),
		debug: fn.Debug, line: line,
	})

	if c.OnCall != nil {
		c.OnCall(fnIndex, args)
	}

	c.runBody(fn.Body)

	result := c.frames[len(c.frames)-1].result
	c.frames = c.frames[:len(c.frames)-1]
	c.reg.PopStack(int(fn.RequiredFrameBytes))
	c.popArgs(argsOff, len(args))

	// A return only escapes as far as the function that issued it; the
	// caller resumes evaluating its own children normally unless some
	// other flag (throw/terminate) is also set.
	c.ClearFlag(StopReturn)
	return result
}

// Invoke calls a block value produced by MakeBlock/ClosureBlock. It is
// Call's sibling for the indirect-call path: the block's descriptor
// supplies the body and frame size exactly as a SimFunction does. Before
// the body runs, the new frame's CapturedOffset slot receives the
// closure's captured address (read through LocalRefToValueNode) or, for a
// block that captured nothing, the argument array's address (read through
// BlockArgumentGetNode).
func (c *Context) Invoke(closureRecord int64, args []cell.Cell) cell.Cell {
	if closureRecord == NullOffset {
		c.ThrowError("invoke of a null block")
		return cell.Zero
	}
	blockIdx := c.closureBlockIndex(closureRecord)
	captured := c.closureCaptured(closureRecord)
	bd := c.Block(blockIdx)
	if bd == nil {
		panic("engine: invoke of an undefined block")
	}

	argsOff, ok := c.pushArgs(args)
	if !ok {
		return cell.Zero
	}

	frameOff, err := c.reg.PushStack(int(bd.FrameBytes))
	if err != nil {
		c.popArgs(argsOff, len(args))
		c.ThrowError("stack overflow")
		return cell.Zero
	}

	c.frames = append(c.frames, frameRecord{
		base: frameOff, bytes: bd.FrameBytes,
		argsBase: argsOff, argCount: len(args),
	})

	if bd.CapturedOffset >= 0 {
		target := int64(bd.CapturedOffset)
		if captured != NullOffset {
			c.setRawPtr(c.localAddr(target), captured)
		} else if argsOff != NullOffset {
			c.setRawPtr(c.localAddr(target), argsOff)
		}
	}

	c.runBody(bd.Body)

	result := c.frames[len(c.frames)-1].result
	c.frames = c.frames[:len(c.frames)-1]
	c.reg.PopStack(int(bd.FrameBytes))
	c.popArgs(argsOff, len(args))

	c.ClearFlag(StopReturn)
	return result
}

// runBody evaluates a function/block body, recovering the engineThrow
// panic used by Config.PanicOnThrow's exception mode. ThrowError has
// already set the observable flag-based state before panicking, so
// recovering here just stops the Go-level unwind; program semantics are
// identical to the flag-only mode (spec.md §6).
func (c *Context) runBody(body Node) {
	if !c.cfg.PanicOnThrow {
		body.Eval(c)
		return
	}
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(engineThrow); ok {
					return
				}
				panic(r)
			}
		}()
		body.Eval(c)
	}()
}

// runTry is runBody's sibling for TryCatchNode: a try body is its own
// recovery boundary, not just the function/block boundary, so a throw
// under Config.PanicOnThrow still reaches the catch clause instead of
// unwinding past it (spec.md §6's two exception modes must be
// observationally identical). ThrowError has already set the flag-based
// state before panicking, so recovering here just stops the Go-level
// unwind and lets TryCatchNode's normal StopThrow check take over.
func (c *Context) runTry(try Node) cell.Cell {
	if !c.cfg.PanicOnThrow {
		return try.Eval(c)
	}
	var v cell.Cell
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(engineThrow); ok {
					return
				}
				panic(r)
			}
		}()
		v = try.Eval(c)
	}()
	return v
}
