package engine

import (
	"github.com/yzg-lang/yzg/pkg/cell"
	"github.com/yzg-lang/yzg/pkg/policy"
)

// BinOp enumerates the operator kinds the policy layer implements per
// logical type (spec.md §4.7). And/Or are deliberately absent — they are
// short-circuiting and get their own node kinds below rather than going
// through the uniform eager-evaluate-both-operands path every other
// binary operator takes.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

// BinaryOpNode applies a policy-layer operator to two operands of the
// same logical type, re-boxing the result. Division/modulo by zero on an
// integer type throws (spec.md §4.7); float division by zero follows
// IEEE-754 and never throws.
type BinaryOpNode struct {
	Base
	Op          BinOp
	Left, Right Node
	Typ         cell.Type
}

func NewBinaryOp(op BinOp, left, right Node, typ cell.Type, at LineInfo) *BinaryOpNode {
	n := &BinaryOpNode{Op: op, Left: left, Right: right, Typ: typ}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *BinaryOpNode) Eval(ctx *Context) cell.Cell {
	switch n.Typ {
	case cell.TInt32:
		return n.evalInt32(ctx)
	case cell.TUInt32:
		return n.evalUInt32(ctx)
	case cell.TInt64:
		return n.evalInt64(ctx)
	case cell.TUInt64:
		return n.evalUInt64(ctx)
	case cell.TFloat32:
		return n.evalFloat32(ctx)
	case cell.TBool:
		return n.evalBool(ctx)
	case cell.TInt2, cell.TInt3, cell.TInt4, cell.TUInt2, cell.TUInt3, cell.TUInt4,
		cell.TFloat2, cell.TFloat3, cell.TFloat4:
		return n.evalVector(ctx)
	default:
		panic("engine: binary op on an unsupported type")
	}
}

func (n *BinaryOpNode) EvalInt32(ctx *Context) int32 {
	if n.Typ == cell.TInt32 {
		return cell.ToInt32(n.evalInt32(ctx))
	}
	return n.Base.EvalInt32(ctx)
}

func (n *BinaryOpNode) EvalFloat32(ctx *Context) float32 {
	if n.Typ == cell.TFloat32 {
		return cell.ToFloat32(n.evalFloat32(ctx))
	}
	return n.Base.EvalFloat32(ctx)
}

func (n *BinaryOpNode) EvalBool(ctx *Context) bool {
	if n.Typ == cell.TBool || isComparison(n.Op) {
		return cell.ToBool(n.Eval(ctx))
	}
	return n.Base.EvalBool(ctx)
}

func isComparison(op BinOp) bool {
	return op == OpEq || op == OpNe || op == OpLt || op == OpLe || op == OpGt || op == OpGe
}

func (n *BinaryOpNode) operands(ctx *Context) (cell.Cell, cell.Cell, bool) {
	l := n.Left.Eval(ctx)
	if ctx.Stopped() {
		return cell.Zero, cell.Zero, false
	}
	r := n.Right.Eval(ctx)
	if ctx.Stopped() {
		return cell.Zero, cell.Zero, false
	}
	return l, r, true
}

func (n *BinaryOpNode) evalInt32(ctx *Context) cell.Cell {
	lc, rc, ok := n.operands(ctx)
	if !ok {
		return cell.Zero
	}
	a, b := cell.ToInt32(lc), cell.ToInt32(rc)
	switch n.Op {
	case OpAdd:
		return cell.FromInt32(policy.AddInt32(a, b))
	case OpSub:
		return cell.FromInt32(policy.SubInt32(a, b))
	case OpMul:
		return cell.FromInt32(policy.MulInt32(a, b))
	case OpDiv:
		v, err := policy.DivInt32(a, b)
		if err != nil {
			ctx.ThrowError(err.Error())
			return cell.Zero
		}
		return cell.FromInt32(v)
	case OpMod:
		v, err := policy.ModInt32(a, b)
		if err != nil {
			ctx.ThrowError(err.Error())
			return cell.Zero
		}
		return cell.FromInt32(v)
	case OpBitAnd:
		return cell.FromInt32(policy.AndInt32(a, b))
	case OpBitOr:
		return cell.FromInt32(policy.OrInt32(a, b))
	case OpBitXor:
		return cell.FromInt32(policy.XorInt32(a, b))
	case OpShl:
		return cell.FromInt32(policy.ShlInt32(a, uint32(b)))
	case OpShr:
		return cell.FromInt32(policy.ShrInt32(a, uint32(b)))
	case OpEq:
		return cell.FromBool(policy.EqInt32(a, b))
	case OpNe:
		return cell.FromBool(policy.NeInt32(a, b))
	case OpLt:
		return cell.FromBool(policy.LtInt32(a, b))
	case OpLe:
		return cell.FromBool(policy.LeInt32(a, b))
	case OpGt:
		return cell.FromBool(policy.GtInt32(a, b))
	case OpGe:
		return cell.FromBool(policy.GeInt32(a, b))
	}
	panic("engine: unknown int32 operator")
}

func (n *BinaryOpNode) evalUInt32(ctx *Context) cell.Cell {
	lc, rc, ok := n.operands(ctx)
	if !ok {
		return cell.Zero
	}
	a, b := cell.ToUInt32(lc), cell.ToUInt32(rc)
	switch n.Op {
	case OpAdd:
		return cell.FromUInt32(policy.AddUInt32(a, b))
	case OpSub:
		return cell.FromUInt32(policy.SubUInt32(a, b))
	case OpMul:
		return cell.FromUInt32(policy.MulUInt32(a, b))
	case OpDiv:
		v, err := policy.DivUInt32(a, b)
		if err != nil {
			ctx.ThrowError(err.Error())
			return cell.Zero
		}
		return cell.FromUInt32(v)
	case OpMod:
		v, err := policy.ModUInt32(a, b)
		if err != nil {
			ctx.ThrowError(err.Error())
			return cell.Zero
		}
		return cell.FromUInt32(v)
	case OpBitAnd:
		return cell.FromUInt32(policy.AndUInt32(a, b))
	case OpBitOr:
		return cell.FromUInt32(policy.OrUInt32(a, b))
	case OpBitXor:
		return cell.FromUInt32(policy.XorUInt32(a, b))
	case OpShl:
		return cell.FromUInt32(policy.ShlUInt32(a, b))
	case OpShr:
		return cell.FromUInt32(policy.ShrUInt32(a, b))
	case OpEq:
		return cell.FromBool(policy.EqUInt32(a, b))
	case OpNe:
		return cell.FromBool(policy.NeUInt32(a, b))
	case OpLt:
		return cell.FromBool(policy.LtUInt32(a, b))
	case OpLe:
		return cell.FromBool(policy.LeUInt32(a, b))
	case OpGt:
		return cell.FromBool(policy.GtUInt32(a, b))
	case OpGe:
		return cell.FromBool(policy.GeUInt32(a, b))
	}
	panic("engine: unknown uint32 operator")
}

func (n *BinaryOpNode) evalInt64(ctx *Context) cell.Cell {
	lc, rc, ok := n.operands(ctx)
	if !ok {
		return cell.Zero
	}
	a, b := cell.ToInt64(lc), cell.ToInt64(rc)
	switch n.Op {
	case OpAdd:
		return cell.FromInt64(policy.AddInt64(a, b))
	case OpSub:
		return cell.FromInt64(policy.SubInt64(a, b))
	case OpMul:
		return cell.FromInt64(policy.MulInt64(a, b))
	case OpDiv:
		v, err := policy.DivInt64(a, b)
		if err != nil {
			ctx.ThrowError(err.Error())
			return cell.Zero
		}
		return cell.FromInt64(v)
	case OpMod:
		v, err := policy.ModInt64(a, b)
		if err != nil {
			ctx.ThrowError(err.Error())
			return cell.Zero
		}
		return cell.FromInt64(v)
	case OpBitAnd:
		return cell.FromInt64(policy.AndInt64(a, b))
	case OpBitOr:
		return cell.FromInt64(policy.OrInt64(a, b))
	case OpBitXor:
		return cell.FromInt64(policy.XorInt64(a, b))
	case OpShl:
		return cell.FromInt64(policy.ShlInt64(a, uint32(b)))
	case OpShr:
		return cell.FromInt64(policy.ShrInt64(a, uint32(b)))
	case OpEq:
		return cell.FromBool(policy.EqInt64(a, b))
	case OpNe:
		return cell.FromBool(policy.NeInt64(a, b))
	case OpLt:
		return cell.FromBool(policy.LtInt64(a, b))
	case OpLe:
		return cell.FromBool(policy.LeInt64(a, b))
	case OpGt:
		return cell.FromBool(policy.GtInt64(a, b))
	case OpGe:
		return cell.FromBool(policy.GeInt64(a, b))
	}
	panic("engine: unknown int64 operator")
}

func (n *BinaryOpNode) evalUInt64(ctx *Context) cell.Cell {
	lc, rc, ok := n.operands(ctx)
	if !ok {
		return cell.Zero
	}
	a, b := cell.ToUInt64(lc), cell.ToUInt64(rc)
	switch n.Op {
	case OpAdd:
		return cell.FromUInt64(policy.AddUInt64(a, b))
	case OpSub:
		return cell.FromUInt64(policy.SubUInt64(a, b))
	case OpMul:
		return cell.FromUInt64(policy.MulUInt64(a, b))
	case OpDiv:
		v, err := policy.DivUInt64(a, b)
		if err != nil {
			ctx.ThrowError(err.Error())
			return cell.Zero
		}
		return cell.FromUInt64(v)
	case OpMod:
		v, err := policy.ModUInt64(a, b)
		if err != nil {
			ctx.ThrowError(err.Error())
			return cell.Zero
		}
		return cell.FromUInt64(v)
	case OpBitAnd:
		return cell.FromUInt64(policy.AndUInt64(a, b))
	case OpBitOr:
		return cell.FromUInt64(policy.OrUInt64(a, b))
	case OpBitXor:
		return cell.FromUInt64(policy.XorUInt64(a, b))
	case OpShl:
		return cell.FromUInt64(policy.ShlUInt64(a, uint32(b)))
	case OpShr:
		return cell.FromUInt64(policy.ShrUInt64(a, uint32(b)))
	case OpEq:
		return cell.FromBool(policy.EqUInt64(a, b))
	case OpNe:
		return cell.FromBool(policy.NeUInt64(a, b))
	case OpLt:
		return cell.FromBool(policy.LtUInt64(a, b))
	case OpLe:
		return cell.FromBool(policy.LeUInt64(a, b))
	case OpGt:
		return cell.FromBool(policy.GtUInt64(a, b))
	case OpGe:
		return cell.FromBool(policy.GeUInt64(a, b))
	}
	panic("engine: unknown uint64 operator")
}

func (n *BinaryOpNode) evalFloat32(ctx *Context) cell.Cell {
	lc, rc, ok := n.operands(ctx)
	if !ok {
		return cell.Zero
	}
	a, b := cell.ToFloat32(lc), cell.ToFloat32(rc)
	switch n.Op {
	case OpAdd:
		return cell.FromFloat32(policy.AddFloat32(a, b))
	case OpSub:
		return cell.FromFloat32(policy.SubFloat32(a, b))
	case OpMul:
		return cell.FromFloat32(policy.MulFloat32(a, b))
	case OpDiv:
		return cell.FromFloat32(policy.DivFloat32(a, b))
	case OpEq:
		return cell.FromBool(policy.EqFloat32(a, b))
	case OpNe:
		return cell.FromBool(policy.NeFloat32(a, b))
	case OpLt:
		return cell.FromBool(policy.LtFloat32(a, b))
	case OpLe:
		return cell.FromBool(policy.LeFloat32(a, b))
	case OpGt:
		return cell.FromBool(policy.GtFloat32(a, b))
	case OpGe:
		return cell.FromBool(policy.GeFloat32(a, b))
	}
	panic("engine: unknown float32 operator")
}

func (n *BinaryOpNode) evalBool(ctx *Context) cell.Cell {
	lc, rc, ok := n.operands(ctx)
	if !ok {
		return cell.Zero
	}
	a, b := cell.ToBool(lc), cell.ToBool(rc)
	switch n.Op {
	case OpEq:
		return cell.FromBool(policy.EqBool(a, b))
	case OpNe:
		return cell.FromBool(policy.NeBool(a, b))
	}
	panic("engine: unknown bool operator")
}

func (n *BinaryOpNode) evalVector(ctx *Context) cell.Cell {
	lc, rc, ok := n.operands(ctx)
	if !ok {
		return cell.Zero
	}
	switch n.Typ {
	case cell.TInt2:
		a, b := cell.ToInt2(lc), cell.ToInt2(rc)
		return vecResultInt2(n.Op, a, b, ctx)
	case cell.TInt3:
		a, b := cell.ToInt3(lc), cell.ToInt3(rc)
		return vecResultInt3(n.Op, a, b, ctx)
	case cell.TInt4:
		a, b := cell.ToInt4(lc), cell.ToInt4(rc)
		return vecResultInt4(n.Op, a, b, ctx)
	case cell.TUInt2:
		a, b := cell.ToUInt2(lc), cell.ToUInt2(rc)
		return vecResultUInt2(n.Op, a, b, ctx)
	case cell.TUInt3:
		a, b := cell.ToUInt3(lc), cell.ToUInt3(rc)
		return vecResultUInt3(n.Op, a, b, ctx)
	case cell.TUInt4:
		a, b := cell.ToUInt4(lc), cell.ToUInt4(rc)
		return vecResultUInt4(n.Op, a, b, ctx)
	case cell.TFloat2:
		a, b := cell.ToFloat2(lc), cell.ToFloat2(rc)
		return vecResultFloat2(n.Op, a, b, ctx)
	case cell.TFloat3:
		a, b := cell.ToFloat3(lc), cell.ToFloat3(rc)
		return vecResultFloat3(n.Op, a, b, ctx)
	case cell.TFloat4:
		a, b := cell.ToFloat4(lc), cell.ToFloat4(rc)
		return vecResultFloat4(n.Op, a, b, ctx)
	}
	panic("engine: unreachable vector type")
}

func vecResultInt2(op BinOp, a, b cell.Int2, ctx *Context) cell.Cell {
	switch op {
	case OpAdd:
		return cell.FromInt2(policy.AddInt2(a, b))
	case OpSub:
		return cell.FromInt2(policy.SubInt2(a, b))
	case OpMul:
		return cell.FromInt2(policy.MulInt2(a, b))
	}
	ctx.ThrowError("unsupported vector operator")
	return cell.Zero
}

func vecResultInt3(op BinOp, a, b cell.Int3, ctx *Context) cell.Cell {
	switch op {
	case OpAdd:
		return cell.FromInt3(policy.AddInt3(a, b))
	case OpSub:
		return cell.FromInt3(policy.SubInt3(a, b))
	case OpMul:
		return cell.FromInt3(policy.MulInt3(a, b))
	}
	ctx.ThrowError("unsupported vector operator")
	return cell.Zero
}

func vecResultInt4(op BinOp, a, b cell.Int4, ctx *Context) cell.Cell {
	switch op {
	case OpAdd:
		return cell.FromInt4(policy.AddInt4(a, b))
	case OpSub:
		return cell.FromInt4(policy.SubInt4(a, b))
	case OpMul:
		return cell.FromInt4(policy.MulInt4(a, b))
	}
	ctx.ThrowError("unsupported vector operator")
	return cell.Zero
}

func vecResultUInt2(op BinOp, a, b cell.UInt2, ctx *Context) cell.Cell {
	switch op {
	case OpAdd:
		return cell.FromUInt2(policy.AddUInt2(a, b))
	case OpSub:
		return cell.FromUInt2(policy.SubUInt2(a, b))
	case OpMul:
		return cell.FromUInt2(policy.MulUInt2(a, b))
	}
	ctx.ThrowError("unsupported vector operator")
	return cell.Zero
}

func vecResultUInt3(op BinOp, a, b cell.UInt3, ctx *Context) cell.Cell {
	switch op {
	case OpAdd:
		return cell.FromUInt3(policy.AddUInt3(a, b))
	case OpSub:
		return cell.FromUInt3(policy.SubUInt3(a, b))
	case OpMul:
		return cell.FromUInt3(policy.MulUInt3(a, b))
	}
	ctx.ThrowError("unsupported vector operator")
	return cell.Zero
}

func vecResultUInt4(op BinOp, a, b cell.UInt4, ctx *Context) cell.Cell {
	switch op {
	case OpAdd:
		return cell.FromUInt4(policy.AddUInt4(a, b))
	case OpSub:
		return cell.FromUInt4(policy.SubUInt4(a, b))
	case OpMul:
		return cell.FromUInt4(policy.MulUInt4(a, b))
	}
	ctx.ThrowError("unsupported vector operator")
	return cell.Zero
}

func vecResultFloat2(op BinOp, a, b cell.Float2, ctx *Context) cell.Cell {
	switch op {
	case OpAdd:
		return cell.FromFloat2(policy.AddFloat2(a, b))
	case OpSub:
		return cell.FromFloat2(policy.SubFloat2(a, b))
	case OpMul:
		return cell.FromFloat2(policy.MulFloat2(a, b))
	}
	ctx.ThrowError("unsupported vector operator")
	return cell.Zero
}

func vecResultFloat3(op BinOp, a, b cell.Float3, ctx *Context) cell.Cell {
	switch op {
	case OpAdd:
		return cell.FromFloat3(policy.AddFloat3(a, b))
	case OpSub:
		return cell.FromFloat3(policy.SubFloat3(a, b))
	case OpMul:
		return cell.FromFloat3(policy.MulFloat3(a, b))
	}
	ctx.ThrowError("unsupported vector operator")
	return cell.Zero
}

func vecResultFloat4(op BinOp, a, b cell.Float4, ctx *Context) cell.Cell {
	switch op {
	case OpAdd:
		return cell.FromFloat4(policy.AddFloat4(a, b))
	case OpSub:
		return cell.FromFloat4(policy.SubFloat4(a, b))
	case OpMul:
		return cell.FromFloat4(policy.MulFloat4(a, b))
	}
	ctx.ThrowError("unsupported vector operator")
	return cell.Zero
}

//-----------------------------------------------------------------------------
// VectorScale — the vector-by-scalar arithmetic variant (spec.md §4.7:
// "Vector-by-scalar arithmetic is elementwise"). Int vectors scale by a
// TInt32 scalar, float vectors by a TFloat32 scalar; unsigned vectors are
// not scaled (the node throws "unsupported vector scale"). There is no
// vector-by-vector division or modulo equivalent, just this one extra
// shape alongside the vector-by-vector Add/Sub/Mul above.
//-----------------------------------------------------------------------------

// VectorScaleNode multiplies every lane of Vector by Scalar. Typ names the
// vector's own logical type (e.g. cell.TFloat3); Scalar's type follows
// from Typ's element kind, not from Typ itself.
type VectorScaleNode struct {
	Base
	Vector Node
	Scalar Node
	Typ    cell.Type
}

func NewVectorScale(vector, scalar Node, typ cell.Type, at LineInfo) *VectorScaleNode {
	n := &VectorScaleNode{Vector: vector, Scalar: scalar, Typ: typ}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *VectorScaleNode) Eval(ctx *Context) cell.Cell {
	vec := n.Vector.Eval(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	scalar := n.Scalar.Eval(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	switch n.Typ {
	case cell.TInt2:
		return cell.FromInt2(policy.ScaleInt2(cell.ToInt2(vec), cell.ToInt32(scalar)))
	case cell.TInt3:
		return cell.FromInt3(policy.ScaleInt3(cell.ToInt3(vec), cell.ToInt32(scalar)))
	case cell.TInt4:
		return cell.FromInt4(policy.ScaleInt4(cell.ToInt4(vec), cell.ToInt32(scalar)))
	case cell.TFloat2:
		return cell.FromFloat2(policy.ScaleFloat2(cell.ToFloat2(vec), cell.ToFloat32(scalar)))
	case cell.TFloat3:
		return cell.FromFloat3(policy.ScaleFloat3(cell.ToFloat3(vec), cell.ToFloat32(scalar)))
	case cell.TFloat4:
		return cell.FromFloat4(policy.ScaleFloat4(cell.ToFloat4(vec), cell.ToFloat32(scalar)))
	default:
		// Unsigned vectors have no Scale family in pkg/policy (see
		// DESIGN.md) — the front end never emits this node for them.
		ctx.ThrowError("unsupported vector scale")
		return cell.Zero
	}
}

//-----------------------------------------------------------------------------
// Short-circuit And/Or — distinct node kinds, not policy-delegated
// (spec.md §4.7: "short-circuit and/or as distinct node kinds").
//-----------------------------------------------------------------------------

type AndNode struct {
	Base
	Left, Right Node
}

func NewAnd(left, right Node, at LineInfo) *AndNode {
	n := &AndNode{Left: left, Right: right}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *AndNode) Eval(ctx *Context) cell.Cell { return cell.FromBool(n.EvalBool(ctx)) }

func (n *AndNode) EvalBool(ctx *Context) bool {
	l := n.Left.EvalBool(ctx)
	if ctx.Stopped() || !l {
		return false
	}
	return n.Right.EvalBool(ctx)
}

type OrNode struct {
	Base
	Left, Right Node
}

func NewOr(left, right Node, at LineInfo) *OrNode {
	n := &OrNode{Left: left, Right: right}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *OrNode) Eval(ctx *Context) cell.Cell { return cell.FromBool(n.EvalBool(ctx)) }

func (n *OrNode) EvalBool(ctx *Context) bool {
	l := n.Left.EvalBool(ctx)
	if ctx.Stopped() || l {
		return l
	}
	return n.Right.EvalBool(ctx)
}
