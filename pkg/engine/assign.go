package engine

import "github.com/yzg-lang/yzg/pkg/cell"

// AssignNode implements the scalar "copy-value" assignment family
// (spec.md §4.2): evaluate an address (Dest) and a value (Value), write
// the value's natural-width bytes at that address, and yield the
// assigned value, matching C's assignment-expression semantics.
type AssignNode struct {
	Base
	Dest  Node
	Value Node
	Typ   cell.Type
}

func NewAssign(dest, value Node, typ cell.Type, at LineInfo) *AssignNode {
	n := &AssignNode{Dest: dest, Value: value, Typ: typ}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *AssignNode) Eval(ctx *Context) cell.Cell {
	addr := n.Dest.EvalPtr(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	v := n.Value.Eval(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	writeTyped(ctx, addr, n.Typ, v)
	return v
}

func writeTyped(ctx *Context, addr int64, typ cell.Type, v cell.Cell) {
	switch typ {
	case cell.TBool:
		ctx.setRawBool(addr, cell.ToBool(v))
	case cell.TInt32:
		ctx.setRawInt32(addr, cell.ToInt32(v))
	case cell.TUInt32:
		ctx.setRawUInt32(addr, cell.ToUInt32(v))
	case cell.TInt64:
		ctx.setRawInt64(addr, cell.ToInt64(v))
	case cell.TUInt64:
		ctx.setRawUInt64(addr, cell.ToUInt64(v))
	case cell.TFloat32:
		ctx.setRawFloat32(addr, cell.ToFloat32(v))
	case cell.TPointer, cell.TString, cell.TBlock:
		ctx.setRawPtr(addr, cell.ToInt64(v))
	default:
		ctx.writeCell(addr, v)
	}
}

// CopyRefValueNode copies a fixed-size aggregate from one address to
// another — spec.md §4.2's by-reference struct-assignment form, used
// when a value's representation is wider than one Cell and lives behind
// a pointer on both sides.
type CopyRefValueNode struct {
	Base
	Dest  Node
	Src   Node
	Bytes int
}

func NewCopyRefValue(dest, src Node, bytes int, at LineInfo) *CopyRefValueNode {
	n := &CopyRefValueNode{Dest: dest, Src: src, Bytes: bytes}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *CopyRefValueNode) Eval(ctx *Context) cell.Cell {
	dst := n.Dest.EvalPtr(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	src := n.Src.EvalPtr(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	copy(ctx.readBytes(dst, n.Bytes), ctx.readBytes(src, n.Bytes))
	return cell.FromInt64(dst)
}

// MoveRefValueNode is CopyRefValue plus zeroing the source afterward,
// matching move semantics: the destination takes ownership and the
// source is left in its zero state rather than aliasing the same bytes.
type MoveRefValueNode struct {
	Base
	Dest  Node
	Src   Node
	Bytes int
}

func NewMoveRefValue(dest, src Node, bytes int, at LineInfo) *MoveRefValueNode {
	n := &MoveRefValueNode{Dest: dest, Src: src, Bytes: bytes}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *MoveRefValueNode) Eval(ctx *Context) cell.Cell {
	dst := n.Dest.EvalPtr(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	src := n.Src.EvalPtr(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	copy(ctx.readBytes(dst, n.Bytes), ctx.readBytes(src, n.Bytes))
	ctx.zeroSpan(src, n.Bytes)
	return cell.FromInt64(dst)
}
