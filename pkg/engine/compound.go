package engine

import "github.com/yzg-lang/yzg/pkg/cell"

// applyBinOp applies a policy-layer operator to two already-evaluated
// cells, without re-evaluating whatever expression produced them. It
// reuses BinaryOpNode's own per-type dispatch (by wrapping the operands in
// throwaway ConstantNodes) rather than duplicating that switch here, so
// compound-assignment and increment/decrement get exactly the same
// operator semantics — including integer div/mod-by-zero throws — as a
// fresh binary expression would.
func applyBinOp(ctx *Context, op BinOp, typ cell.Type, a, b cell.Cell) cell.Cell {
	tmp := &BinaryOpNode{Op: op, Left: &ConstantNode{Value: a}, Right: &ConstantNode{Value: b}, Typ: typ}
	tmp.Base = Base{Self: tmp}
	return tmp.Eval(ctx)
}

// oneCell boxes the literal 1 at the given logical type, the fixed
// "amount" increment/decrement always adds or subtracts (spec.md §4.7).
func oneCell(typ cell.Type) cell.Cell {
	switch typ {
	case cell.TInt32:
		return cell.FromInt32(1)
	case cell.TUInt32:
		return cell.FromUInt32(1)
	case cell.TInt64:
		return cell.FromInt64(1)
	case cell.TUInt64:
		return cell.FromUInt64(1)
	case cell.TFloat32:
		return cell.FromFloat32(1)
	default:
		panic("engine: increment/decrement on an unsupported type")
	}
}

// CompoundAssignNode implements the `+=`, `-=`, `*=`, ... family
// (spec.md §4.7, §3): Dest's address is evaluated exactly once, then the
// operator is applied to the value currently there and Rhs, and the
// result is written back through that same address. This is what a
// composed Assign(dest, BinaryOp(Get(dest), rhs)) cannot provide once Dest
// is anything other than a bare local — it would evaluate Dest's address
// expression twice.
type CompoundAssignNode struct {
	Base
	Dest Node
	Rhs  Node
	Op   BinOp
	Typ  cell.Type
}

func NewCompoundAssign(dest, rhs Node, op BinOp, typ cell.Type, at LineInfo) *CompoundAssignNode {
	n := &CompoundAssignNode{Dest: dest, Rhs: rhs, Op: op, Typ: typ}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *CompoundAssignNode) Eval(ctx *Context) cell.Cell {
	addr := n.Dest.EvalPtr(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	cur := readTyped(ctx, addr, n.Typ)
	rhs := n.Rhs.Eval(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	result := applyBinOp(ctx, n.Op, n.Typ, cur, rhs)
	if ctx.Stopped() {
		return cell.Zero
	}
	writeTyped(ctx, addr, n.Typ, result)
	return result
}

// IncDecNode implements pre/post increment and decrement (spec.md §4.7):
// Dest's address is evaluated once, the operator (always OpAdd or OpSub)
// is applied against the literal 1, and the result is written back. Pre
// returns the new value; post returns the value Dest held beforehand.
type IncDecNode struct {
	Base
	Dest Node
	Op   BinOp // OpAdd (increment) or OpSub (decrement)
	Typ  cell.Type
	Pre  bool
}

func NewIncDec(dest Node, op BinOp, typ cell.Type, pre bool, at LineInfo) *IncDecNode {
	n := &IncDecNode{Dest: dest, Op: op, Typ: typ, Pre: pre}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *IncDecNode) Eval(ctx *Context) cell.Cell {
	addr := n.Dest.EvalPtr(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	old := readTyped(ctx, addr, n.Typ)
	newVal := applyBinOp(ctx, n.Op, n.Typ, old, oneCell(n.Typ))
	if ctx.Stopped() {
		return cell.Zero
	}
	writeTyped(ctx, addr, n.Typ, newVal)
	if n.Pre {
		return newVal
	}
	return old
}
