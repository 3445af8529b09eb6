package engine

import (
	"strconv"

	"github.com/yzg-lang/yzg/pkg/cell"
)

// CastNode performs a numeric conversion between logical types (spec.md
// §4.7's cast family): the value changes representation, e.g. int32 42
// becomes float32 42.0.
type CastNode struct {
	Base
	Operand  Node
	From, To cell.Type
}

func NewCast(operand Node, from, to cell.Type, at LineInfo) *CastNode {
	n := &CastNode{Operand: operand, From: from, To: to}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *CastNode) Eval(ctx *Context) cell.Cell {
	v := n.Operand.Eval(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	return convertNumeric(v, n.From, n.To)
}

func convertNumeric(v cell.Cell, from, to cell.Type) cell.Cell {
	if from == to {
		return v
	}
	var asF64 float64
	switch from {
	case cell.TInt32:
		asF64 = float64(cell.ToInt32(v))
	case cell.TUInt32:
		asF64 = float64(cell.ToUInt32(v))
	case cell.TInt64:
		asF64 = float64(cell.ToInt64(v))
	case cell.TUInt64:
		asF64 = float64(cell.ToUInt64(v))
	case cell.TFloat32:
		asF64 = float64(cell.ToFloat32(v))
	case cell.TBool:
		if cell.ToBool(v) {
			asF64 = 1
		}
	default:
		panic("engine: cast from an unsupported type")
	}
	switch to {
	case cell.TInt32:
		return cell.FromInt32(int32(asF64))
	case cell.TUInt32:
		return cell.FromUInt32(uint32(asF64))
	case cell.TInt64:
		return cell.FromInt64(int64(asF64))
	case cell.TUInt64:
		return cell.FromUInt64(uint64(asF64))
	case cell.TFloat32:
		return cell.FromFloat32(float32(asF64))
	case cell.TBool:
		return cell.FromBool(asF64 != 0)
	}
	panic("engine: cast to an unsupported type")
}

// LexicalCastNode reinterprets a value's bit pattern as a different
// logical type without numeric conversion (spec.md §4.7: a lexical cast
// between, say, int32 and float32 keeps the bits and changes only how
// later nodes interpret them). Since Cell already stores every logical
// type at the same 16-byte width, a lexical cast is simply passing the
// cell through unchanged — the From type is recorded for documentation
// and builder-side checking, not used at eval time.
type LexicalCastNode struct {
	Base
	Operand Node
	From, To cell.Type
}

func NewLexicalCast(operand Node, from, to cell.Type, at LineInfo) *LexicalCastNode {
	n := &LexicalCastNode{Operand: operand, From: from, To: to}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *LexicalCastNode) Eval(ctx *Context) cell.Cell { return n.Operand.Eval(ctx) }

// VectorConstructorNode builds a 2/3/4-lane vector cell from scalar
// component expressions (spec.md §4.7's vector-constructor form).
type VectorConstructorNode struct {
	Base
	Components []Node
	Typ        cell.Type // target vector type; determines lane count and element kind
}

func NewVectorConstructor(components []Node, typ cell.Type, at LineInfo) *VectorConstructorNode {
	n := &VectorConstructorNode{Components: components, Typ: typ}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *VectorConstructorNode) Eval(ctx *Context) cell.Cell {
	vals := make([]cell.Cell, len(n.Components))
	for i, c := range n.Components {
		if ctx.Stopped() {
			return cell.Zero
		}
		vals[i] = c.Eval(ctx)
	}
	if ctx.Stopped() {
		return cell.Zero
	}
	switch n.Typ {
	case cell.TInt2:
		return cell.FromInt2(cell.Int2{X: cell.ToInt32(vals[0]), Y: cell.ToInt32(vals[1])})
	case cell.TInt3:
		return cell.FromInt3(cell.Int3{X: cell.ToInt32(vals[0]), Y: cell.ToInt32(vals[1]), Z: cell.ToInt32(vals[2])})
	case cell.TInt4:
		return cell.FromInt4(cell.Int4{
			X: cell.ToInt32(vals[0]), Y: cell.ToInt32(vals[1]),
			Z: cell.ToInt32(vals[2]), W: cell.ToInt32(vals[3]),
		})
	case cell.TUInt2:
		return cell.FromUInt2(cell.UInt2{X: cell.ToUInt32(vals[0]), Y: cell.ToUInt32(vals[1])})
	case cell.TUInt3:
		return cell.FromUInt3(cell.UInt3{X: cell.ToUInt32(vals[0]), Y: cell.ToUInt32(vals[1]), Z: cell.ToUInt32(vals[2])})
	case cell.TUInt4:
		return cell.FromUInt4(cell.UInt4{
			X: cell.ToUInt32(vals[0]), Y: cell.ToUInt32(vals[1]),
			Z: cell.ToUInt32(vals[2]), W: cell.ToUInt32(vals[3]),
		})
	case cell.TFloat2:
		return cell.FromFloat2(cell.Float2{X: cell.ToFloat32(vals[0]), Y: cell.ToFloat32(vals[1])})
	case cell.TFloat3:
		return cell.FromFloat3(cell.Float3{X: cell.ToFloat32(vals[0]), Y: cell.ToFloat32(vals[1]), Z: cell.ToFloat32(vals[2])})
	case cell.TFloat4:
		return cell.FromFloat4(cell.Float4{
			X: cell.ToFloat32(vals[0]), Y: cell.ToFloat32(vals[1]),
			Z: cell.ToFloat32(vals[2]), W: cell.ToFloat32(vals[3]),
		})
	}
	panic("engine: vector constructor with an unsupported target type")
}

// NewAllocNode ("new") reserves Bytes fresh bytes in the region's
// run-time scratch area and yields a pointer to them, zero-initialized.
// Unlike the node/name arena, this allocation is reclaimed the next time
// Context.Restart runs (spec.md §4.3, role 2).
type NewAllocNode struct {
	Base
	Bytes int
}

func NewNewAlloc(bytes int, at LineInfo) *NewAllocNode {
	n := &NewAllocNode{Bytes: bytes}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *NewAllocNode) Eval(ctx *Context) cell.Cell {
	off, err := ctx.reg.Allocate(n.Bytes)
	if err != nil {
		ctx.ThrowError("out of memory")
		return cell.Zero
	}
	ctx.zeroSpan(int64(off), n.Bytes)
	return cell.FromInt64(int64(off))
}

func (n *NewAllocNode) EvalPtr(ctx *Context) int64 { return cell.ToInt64(n.Eval(ctx)) }

// DebugNode prints its operand's value through the host's to_out hook
// and passes the value through unchanged, the engine's one built-in
// inspection primitive (spec.md §4.1's host-hook surface).
type DebugNode struct {
	Base
	Operand Node
	Typ     cell.Type
	Label   string
}

func NewDebug(operand Node, typ cell.Type, label string, at LineInfo) *DebugNode {
	n := &DebugNode{Operand: operand, Typ: typ, Label: label}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *DebugNode) Eval(ctx *Context) cell.Cell {
	v := n.Operand.Eval(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	ctx.ToOut(n.Label + "=" + formatCell(v, n.Typ))
	return v
}

func formatCell(v cell.Cell, typ cell.Type) string {
	switch typ {
	case cell.TBool:
		if cell.ToBool(v) {
			return "true"
		}
		return "false"
	case cell.TInt32:
		return strconv.FormatInt(int64(cell.ToInt32(v)), 10)
	case cell.TUInt32:
		return strconv.FormatUint(uint64(cell.ToUInt32(v)), 10)
	case cell.TInt64:
		return strconv.FormatInt(cell.ToInt64(v), 10)
	case cell.TUInt64:
		return strconv.FormatUint(cell.ToUInt64(v), 10)
	case cell.TFloat32:
		return strconv.FormatFloat(float64(cell.ToFloat32(v)), 'g', -1, 32)
	default:
		return typ.String()
	}
}

// AssertNode throws if its boolean operand evaluates to false, the
// engine's one built-in contract-checking primitive (spec.md §4.1).
type AssertNode struct {
	Base
	Cond    Node
	Message string
}

func NewAssert(cond Node, message string, at LineInfo) *AssertNode {
	n := &AssertNode{Cond: cond, Message: message}
	n.Base = Base{At: at, Self: n}
	return n
}

func (n *AssertNode) Eval(ctx *Context) cell.Cell {
	ok := n.Cond.EvalBool(ctx)
	if ctx.Stopped() {
		return cell.Zero
	}
	if !ok {
		msg := n.Message
		if msg == "" {
			msg = "assertion failed"
		}
		ctx.ThrowError(msg)
	}
	return cell.Zero
}
