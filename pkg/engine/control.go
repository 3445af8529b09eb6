package engine

import "github.com/yzg-lang/yzg/pkg/cell"

// BlockNode evaluates a fixed sequence of statement nodes in order,
// checking the stop-flag bitset between every pair (spec.md §4.1: "every
// composite node must check flags between child evaluations"). Its value
// is whichever child's value last ran; a block used purely for statements
// is simply never read for its value.
type BlockNode struct {
	Base
	Stmts []Node
}

func NewBlock(stmts []Node, at LineInfo) *BlockNode {
	n := &BlockNode{Stmts: stmts}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *BlockNode) Eval(ctx *Context) cell.Cell {
	var last cell.Cell
	for _, s := range n.Stmts {
		if ctx.Stopped() {
			return cell.Zero
		}
		last = s.Eval(ctx)
	}
	return last
}

// LetBlockNode runs a fixed set of local-initializer statements before
// its body, matching a `let` block's scoping: initializers always run in
// order and always complete (or stop) before the body is reached.
type LetBlockNode struct {
	Base
	Inits []Node
	Body  Node
}

func NewLetBlock(inits []Node, body Node, at LineInfo) *LetBlockNode {
	n := &LetBlockNode{Inits: inits, Body: body}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *LetBlockNode) Eval(ctx *Context) cell.Cell {
	for _, init := range n.Inits {
		if ctx.Stopped() {
			return cell.Zero
		}
		init.Eval(ctx)
	}
	if ctx.Stopped() {
		return cell.Zero
	}
	return n.Body.Eval(ctx)
}

//-----------------------------------------------------------------------------
// If / While
//-----------------------------------------------------------------------------

type IfNode struct {
	Base
	Cond Node
	Then Node
	Else Node // nil for a one-armed if
}

func NewIf(cond, thenN, elseN Node, at LineInfo) *IfNode {
	n := &IfNode{Cond: cond, Then: thenN, Else: elseN}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *IfNode) Eval(ctx *Context) cell.Cell {
	cond := n.Cond.EvalBool(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	if cond {
		return n.Then.Eval(ctx)
	}
	if n.Else != nil {
		return n.Else.Eval(ctx)
	}
	return cell.Zero
}

// WhileNode loops while Cond is true, clearing StopBreak on exit (a break
// only ever escapes its nearest enclosing loop — spec.md §4.6) but
// leaving StopReturn/StopThrow/StopTerminate set for the caller to see.
type WhileNode struct {
	Base
	Cond Node
	Body Node
}

func NewWhile(cond, body Node, at LineInfo) *WhileNode {
	n := &WhileNode{Cond: cond, Body: body}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *WhileNode) Eval(ctx *Context) cell.Cell {
	for {
		if ctx.Stopped() {
			break
		}
		cond := n.Cond.EvalBool(ctx)
		if ctx.Stopped() || !cond {
			break
		}
		n.Body.Eval(ctx)
		if ctx.HasFlag(StopBreak) {
			ctx.ClearFlag(StopBreak)
			break
		}
		if ctx.Stopped() {
			break
		}
	}
	return cell.Zero
}

//-----------------------------------------------------------------------------
// Break / Return / Yield
//-----------------------------------------------------------------------------

// BreakNode sets StopBreak; the nearest enclosing loop or for-node clears
// it once it has unwound to that point (spec.md §4.6).
type BreakNode struct{ Base }

func NewBreak(at LineInfo) *BreakNode {
	n := &BreakNode{}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *BreakNode) Eval(ctx *Context) cell.Cell {
	ctx.SetFlag(StopBreak)
	return cell.Zero
}

// ReturnNode evaluates its operand (if any), stores it as the current
// frame's result cell, and sets StopReturn. Every enclosing block/if/
// while/for must see the flag and stop evaluating further children
// (spec.md §4.5).
type ReturnNode struct {
	Base
	Value Node // nil for a bare `return`
}

func NewReturn(value Node, at LineInfo) *ReturnNode {
	n := &ReturnNode{Value: value}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *ReturnNode) Eval(ctx *Context) cell.Cell {
	var v cell.Cell
	if n.Value != nil {
		v = n.Value.Eval(ctx)
		if ctx.HasFlag(StopThrow) {
			ctx.SetFlag(StopReturn)
			return cell.Zero
		}
	}
	if f := ctx.currentFrame(); f != nil {
		f.result = v
	}
	ctx.SetFlag(StopReturn)
	return v
}

// YieldNode hands a value back to the driving for-loop's body without
// unwinding the function itself — used by generator-style iteration
// bodies (spec.md §4.6). In this tree-walking port a yield behaves like
// an expression statement: the for-node's iterator protocol, not a
// stop-flag, is what actually drives resumption.
type YieldNode struct {
	Base
	Value Node
}

func NewYield(value Node, at LineInfo) *YieldNode {
	n := &YieldNode{Value: value}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *YieldNode) Eval(ctx *Context) cell.Cell { return n.Value.Eval(ctx) }

//-----------------------------------------------------------------------------
// Try / Catch
//-----------------------------------------------------------------------------

// TryCatchNode runs Try; if it stops on StopThrow, the exception is
// cleared, the exception message is written into CatchOffset as an
// interned-name pointer, and Catch runs instead. Any other stop flag
// (break/return/terminate) propagates through untouched (spec.md §4.8).
type TryCatchNode struct {
	Base
	Try         Node
	CatchOffset int64 // frame offset receiving the exception message pointer; -1 if unused
	Catch       Node
}

func NewTryCatch(try Node, catchOffset int64, catch Node, at LineInfo) *TryCatchNode {
	n := &TryCatchNode{Try: try, CatchOffset: catchOffset, Catch: catch}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *TryCatchNode) Eval(ctx *Context) cell.Cell {
	v := ctx.runTry(n.Try)
	if !ctx.HasFlag(StopThrow) {
		return v
	}
	msg, _ := ctx.GetException()
	ctx.clearException()
	if n.CatchOffset >= 0 {
		off := ctx.AllocateName(msg)
		ctx.setRawPtr(ctx.localAddr(n.CatchOffset), off)
	}
	return n.Catch.Eval(ctx)
}
