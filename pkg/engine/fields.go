package engine

import "github.com/yzg-lang/yzg/pkg/cell"

// FieldDerefNode reads a field at a fixed byte offset from an addressable
// base (spec.md §4.2's struct field access). Base must evaluate to an
// address (its EvalPtr path) rather than a value.
type FieldDerefNode struct {
	Base
	Target Node
	Offset int64
	Typ    cell.Type
}

func NewFieldDeref(target Node, offset int64, typ cell.Type, at LineInfo) *FieldDerefNode {
	n := &FieldDerefNode{Target: target, Offset: offset, Typ: typ}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *FieldDerefNode) fieldAddr(ctx *Context) int64 {
	return n.Target.EvalPtr(ctx) + n.Offset
}

func (n *FieldDerefNode) Eval(ctx *Context) cell.Cell {
	addr := n.fieldAddr(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	return readTyped(ctx, addr, n.Typ)
}

func (n *FieldDerefNode) EvalPtr(ctx *Context) int64 { return n.fieldAddr(ctx) }

func readTyped(ctx *Context, addr int64, typ cell.Type) cell.Cell {
	switch typ {
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

// PointerFieldDerefNode is FieldDeref through one extra level of
// indirection: Target evaluates to a pointer cell, which must itself be
// dereferenced before the field offset is applied (spec.md §4.2,
// pointer-typed struct member access, e.g. `p->field`).
type PointerFieldDerefNode struct {
	Base
	Target Node
	Offset int64
	Typ    cell.Type
}

func NewPointerFieldDeref(target Node, offset int64, typ cell.Type, at LineInfo) *PointerFieldDerefNode {
	n := &PointerFieldDerefNode{Target: target, Offset: offset, Typ: typ}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *PointerFieldDerefNode) fieldAddr(ctx *Context) int64 {
	p := n.Target.EvalPtr(ctx)
	if ctx.Stopped() {
		return NullOffset
	}
	if p == NullOffset {
		ctx.ThrowError("dereferencing null pointer")
		return NullOffset
	}
	return p + n.Offset
}

func (n *PointerFieldDerefNode) Eval(ctx *Context) cell.Cell {
	addr := n.fieldAddr(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	return readTyped(ctx, addr, n.Typ)
}

func (n *PointerFieldDerefNode) EvalPtr(ctx *Context) int64 { return n.fieldAddr(ctx) }

// SafePointerFieldDerefNode is the null-coalescing "?." member-access
// form: a null base short-circuits to the zero cell rather than throwing
// (spec.md §4.2).
type SafePointerFieldDerefNode struct {
	Base
	Target Node
	Offset int64
	Typ    cell.Type
}

func NewSafePointerFieldDeref(target Node, offset int64, typ cell.Type, at LineInfo) *SafePointerFieldDerefNode {
	n := &SafePointerFieldDerefNode{Target: target, Offset: offset, Typ: typ}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *SafePointerFieldDerefNode) Eval(ctx *Context) cell.Cell {
	p := n.Target.EvalPtr(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	if p == NullOffset {
		return cell.Zero
	}
	return readTyped(ctx, p+n.Offset, n.Typ)
}

func (n *SafePointerFieldDerefNode) EvalPtr(ctx *Context) int64 {
	p := n.Target.EvalPtr(ctx)
	if ctx.Stopped() || p == NullOffset {
		return NullOffset
	}
	return p + n.Offset
}

//-----------------------------------------------------------------------------
// Index ("at") — array element access with a bounds check (spec.md §4.2,
// §7: out-of-range indexing throws rather than reading past the array).
//-----------------------------------------------------------------------------

type IndexNode struct {
	Base
	Array    Node
	Index    Node
	ElemSize int64
	Len      int64 // element count; used for the bounds check
	Typ      cell.Type
}

func NewIndex(array, index Node, elemSize, length int64, typ cell.Type, at LineInfo) *IndexNode {
	n := &IndexNode{Array: array, Index: index, ElemSize: elemSize, Len: length, Typ: typ}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *IndexNode) elemAddr(ctx *Context) int64 {
	base := n.Array.EvalPtr(ctx)
	if ctx.Stopped() {
		return NullOffset
	}
	idx := int64(n.Index.EvalInt32(ctx))
	if ctx.Stopped() {
		return NullOffset
	}
	if idx < 0 || idx >= n.Len {
		ctx.ThrowError("index out of range")
		return NullOffset
	}
	return base + idx*n.ElemSize
}

func (n *IndexNode) Eval(ctx *Context) cell.Cell {
	addr := n.elemAddr(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	return readTyped(ctx, addr, n.Typ)
}

func (n *IndexNode) EvalPtr(ctx *Context) int64 { return n.elemAddr(ctx) }

//-----------------------------------------------------------------------------
// RefToValue / PointerToRef — the generic (non-local-slot) forms of the
// indirection nodes getset.go defines for locals specifically.
//-----------------------------------------------------------------------------

// RefToValueNode dereferences an arbitrary address expression, the
// general form of LocalRefToValueNode for addresses that are not a
// fixed frame offset (e.g. the result of a field or index expression).
type RefToValueNode struct {
	Base
	Addr Node
	Typ  cell.Type
}

func NewRefToValue(addr Node, typ cell.Type, at LineInfo) *RefToValueNode {
	n := &RefToValueNode{Addr: addr, Typ: typ}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *RefToValueNode) Eval(ctx *Context) cell.Cell {
	a := n.Addr.EvalPtr(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	return readTyped(ctx, a, n.Typ)
}

// PointerToRefNode is the identity reinterpretation that marks a pointer
// cell as usable in ref position (spec.md §4.2): it evaluates its operand
// and passes the same region offset through unchanged.
type PointerToRefNode struct {
	Base
	Target Node
}

func NewPointerToRef(target Node, at LineInfo) *PointerToRefNode {
	n := &PointerToRefNode{Target: target}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *PointerToRefNode) Eval(ctx *Context) cell.Cell { return n.Target.Eval(ctx) }
func (n *PointerToRefNode) EvalPtr(ctx *Context) int64  { return n.Target.EvalPtr(ctx) }

//-----------------------------------------------------------------------------
// Null coalescing
//-----------------------------------------------------------------------------

// NullCoalescingNode evaluates Left; if it is a null pointer, evaluates
// and returns Right instead (spec.md §4.2, `a ?? b`).
type NullCoalescingNode struct {
	Base
	Left  Node
	Right Node
}

func NewNullCoalescing(left, right Node, at LineInfo) *NullCoalescingNode {
	n := &NullCoalescingNode{Left: left, Right: right}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *NullCoalescingNode) Eval(ctx *Context) cell.Cell {
	p := n.Left.EvalPtr(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	if p != NullOffset {
		return cell.FromInt64(p)
	}
	return n.Right.Eval(ctx)
}

func (n *NullCoalescingNode) EvalPtr(ctx *Context) int64 {
	p := n.Left.EvalPtr(ctx)
	if ctx.Stopped() {
		return NullOffset
	}
	if p != NullOffset {
		return p
	}
	return n.Right.EvalPtr(ctx)
}
