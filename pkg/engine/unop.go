package engine

import (
	"github.com/yzg-lang/yzg/pkg/cell"
	"github.com/yzg-lang/yzg/pkg/policy"
)

type UnOp int

const (
	OpNeg UnOp = iota // arithmetic negation
	OpBitNot          // bitwise complement
	OpLogNot          // boolean not
)

// UnaryOpNode applies a policy-layer unary operator to one operand.
type UnaryOpNode struct {
	Base
	Op      UnOp
	Operand Node
	Typ     cell.Type
}

func NewUnaryOp(op UnOp, operand Node, typ cell.Type, at LineInfo) *UnaryOpNode {
	n := &UnaryOpNode{Op: op, Operand: operand, Typ: typ}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *UnaryOpNode) Eval(ctx *Context) cell.Cell {
	switch n.Typ {
	case cell.TInt32:
		v := n.Operand.EvalInt32(ctx)
		if ctx.Stopped() {
			return cell.Zero
		}
		if n.Op == OpNeg {
			return cell.FromInt32(policy.NegInt32(v))
		}
		return cell.FromInt32(policy.NotInt32(v))
	case cell.TUInt32:
		v := n.Operand.EvalUInt32(ctx)
		if ctx.Stopped() {
			return cell.Zero
		}
		return cell.FromUInt32(policy.NotUInt32(v)) // unsigned has no Neg
	case cell.TInt64:
		v := n.Operand.EvalInt64(ctx)
		if ctx.Stopped() {
			return cell.Zero
		}
		if n.Op == OpNeg {
			return cell.FromInt64(policy.NegInt64(v))
		}
		return cell.FromInt64(policy.NotInt64(v))
	case cell.TUInt64:
		v := n.Operand.EvalUInt64(ctx)
		if ctx.Stopped() {
			return cell.Zero
		}
		return cell.FromUInt64(policy.NotUInt64(v))
	case cell.TFloat32:
		v := n.Operand.EvalFloat32(ctx)
		if ctx.Stopped() {
			return cell.Zero
		}
		return cell.FromFloat32(policy.NegFloat32(v))
	case cell.TBool:
		v := n.Operand.EvalBool(ctx)
		if ctx.Stopped() {
			return cell.Zero
		}
		return cell.FromBool(policy.NotBool(v))
	}
	panic("engine: unary op on an unsupported type")
}

func (n *UnaryOpNode) EvalBool(ctx *Context) bool {
	if n.Typ == cell.TBool {
		return cell.ToBool(n.Eval(ctx))
	}
	return n.Base.EvalBool(ctx)
}
