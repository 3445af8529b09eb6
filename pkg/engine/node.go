package engine

import "github.com/yzg-lang/yzg/pkg/cell"

// Node is the uniform interface every tree node implements (spec.md §3,
// component C3). Eval is the boxed path, always correct for any node;
// the typed fast paths let a caller that already knows the expected
// result type skip the cast bridge on the way out. Every concrete node
// kind must make its typed path "observationally equivalent to calling
// Eval and then casting the cell" (spec.md §3) — composite nodes that
// override a fast path for performance re-implement that same equivalence
// rather than relying on the default forwarding.
type Node interface {
	Eval(ctx *Context) cell.Cell

	EvalBool(ctx *Context) bool
	EvalInt32(ctx *Context) int32
	EvalUInt32(ctx *Context) uint32
	EvalInt64(ctx *Context) int64
	EvalUInt64(ctx *Context) uint64
	EvalFloat32(ctx *Context) float32

	// EvalPtr returns a region offset (or NullOffset). Used for pointer,
	// string, and block-handle results alike, mirroring the cast bridge's
	// deliberate aliasing of those three logical types (spec.md §3).
	EvalPtr(ctx *Context) int64

	Line() LineInfo
}

// Base is embedded by every concrete node and supplies the default typed
// fast paths by forwarding through Eval and the cast bridge — the same
// "virtual default calls the derived eval()" shape the original node
// hierarchy uses. Self must be set to the embedding node itself (usually
// in that node's constructor) so the forwarding calls reach the most
// derived Eval. A concrete node overrides any EvalXxx method it can
// compute more directly; everything else falls through to here.
type Base struct {
	At   LineInfo
	Self Node
}

func (b *Base) Line() LineInfo { return b.At }

func (b *Base) EvalBool(ctx *Context) bool       { return cell.ToBool(b.Self.Eval(ctx)) }
func (b *Base) EvalInt32(ctx *Context) int32     { return cell.ToInt32(b.Self.Eval(ctx)) }
func (b *Base) EvalUInt32(ctx *Context) uint32   { return cell.ToUInt32(b.Self.Eval(ctx)) }
func (b *Base) EvalInt64(ctx *Context) int64     { return cell.ToInt64(b.Self.Eval(ctx)) }
func (b *Base) EvalUInt64(ctx *Context) uint64   { return cell.ToUInt64(b.Self.Eval(ctx)) }
func (b *Base) EvalFloat32(ctx *Context) float32 { return cell.ToFloat32(b.Self.Eval(ctx)) }

func (b *Base) EvalPtr(ctx *Context) int64 {
	v := b.Self.Eval(ctx)
	off := cell.ToInt64(v)
	return off
}

//-----------------------------------------------------------------------------
// Constant
//-----------------------------------------------------------------------------

// ConstantNode always evaluates to the same cell, fixed at build time.
type ConstantNode struct {
	Base
	Value cell.Cell
}

func NewConstant(value cell.Cell, at LineInfo) *ConstantNode {
	n := &ConstantNode{Value: value}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *ConstantNode) Eval(ctx *Context) cell.Cell { return n.Value }

func (n *ConstantNode) EvalBool(ctx *Context) bool       { return cell.ToBool(n.Value) }
func (n *ConstantNode) EvalInt32(ctx *Context) int32     { return cell.ToInt32(n.Value) }
func (n *ConstantNode) EvalUInt32(ctx *Context) uint32   { return cell.ToUInt32(n.Value) }
func (n *ConstantNode) EvalInt64(ctx *Context) int64     { return cell.ToInt64(n.Value) }
func (n *ConstantNode) EvalUInt64(ctx *Context) uint64   { return cell.ToUInt64(n.Value) }
func (n *ConstantNode) EvalFloat32(ctx *Context) float32 { return cell.ToFloat32(n.Value) }
func (n *ConstantNode) EvalPtr(ctx *Context) int64       { return cell.ToInt64(n.Value) }

// NewConstantInt32 etc. are small conveniences used heavily by pkg/program
// and tests; they all funnel through NewConstant.

func NewConstantInt32(v int32, at LineInfo) *ConstantNode   { return NewConstant(cell.FromInt32(v), at) }
func NewConstantUInt32(v uint32, at LineInfo) *ConstantNode { return NewConstant(cell.FromUInt32(v), at) }
func NewConstantInt64(v int64, at LineInfo) *ConstantNode   { return NewConstant(cell.FromInt64(v), at) }
func NewConstantUInt64(v uint64, at LineInfo) *ConstantNode { return NewConstant(cell.FromUInt64(v), at) }
func NewConstantFloat32(v float32, at LineInfo) *ConstantNode {
	return NewConstant(cell.FromFloat32(v), at)
}
func NewConstantBool(v bool, at LineInfo) *ConstantNode { return NewConstant(cell.FromBool(v), at) }
func NewConstantPtr(off int64, at LineInfo) *ConstantNode {
	return NewConstant(cell.FromInt64(off), at)
}
