package engine

import "github.com/yzg-lang/yzg/pkg/cell"

// iteratorStateSize is the number of per-activation bytes ForNode reserves
// on the region's stack for each iterator it drives — wide enough for the
// widest cursor any concrete iterator below needs (an int64 array index).
const iteratorStateSize = 8

// Iterator is the protocol spec.md §4.6 defines for driving a for-loop:
// First seats the iterator on its first element (returning false for an
// empty sequence), Next advances and reports whether a further element
// exists, Close releases anything First acquired. A for-node composing N
// iterators calls First on all N before running the body once, then calls
// Next on all N between iterations; every iterator whose First returned
// true is guaranteed exactly one Close, whether the loop runs to
// exhaustion or exits early via break, return, or throw.
//
// Concrete iterators below are immutable descriptors — From/To/Step,
// array base/length, and so on — rather than the cursor itself. Per
// spec.md §4.6 the cursor is per-activation state the engine supplies, not
// something a node can own: a for-loop's node sits in the shared, frozen
// program graph and can be re-entered (a recursive function whose body
// contains the loop runs the same ForNode on more than one stack at once),
// so the cursor lives in the state block ForNode allocates on the region's
// stack for the duration of one Eval call and passes to every method here.
type Iterator interface {
	First(ctx *Context, state int64) bool
	Next(ctx *Context, state int64) bool
	Close(ctx *Context, state int64)
	Current(ctx *Context, state int64) cell.Cell
}

// ArrayIterator walks a fixed-size array of ElemSize-byte elements at
// natural width, starting at BaseAddr in the region. Its state slot holds
// the current index as an int64.
type ArrayIterator struct {
	BaseAddr int64
	ElemSize int64
	Len      int64
	Typ      cell.Type
}

func NewArrayIterator(baseAddr, elemSize, length int64, typ cell.Type) *ArrayIterator {
	return &ArrayIterator{BaseAddr: baseAddr, ElemSize: elemSize, Len: length, Typ: typ}
}

func (a *ArrayIterator) First(ctx *Context, state int64) bool {
	ctx.setRawInt64(state, 0)
	return 0 < a.Len
}

func (a *ArrayIterator) Next(ctx *Context, state int64) bool {
	idx := ctx.rawInt64(state) + 1
	ctx.setRawInt64(state, idx)
	return idx < a.Len
}

func (a *ArrayIterator) Close(ctx *Context, state int64) {}

func (a *ArrayIterator) Current(ctx *Context, state int64) cell.Cell {
	idx := ctx.rawInt64(state)
	return readTyped(ctx, a.BaseAddr+idx*a.ElemSize, a.Typ)
}

// RangeIterator walks an inclusive-from/exclusive-to signed int32 range
// with a fixed step, the iterator behind `for i in from..to`. Its state
// slot holds the current value as an int32.
type RangeIterator struct {
	From, To, Step int32
}

func NewRangeIterator(from, to int32, step int32) *RangeIterator {
	if step == 0 {
		step = 1
	}
	return &RangeIterator{From: from, To: to, Step: step}
}

func (r *RangeIterator) inBounds(v int32) bool {
	if r.Step > 0 {
		return v < r.To
	}
	return v > r.To
}

func (r *RangeIterator) First(ctx *Context, state int64) bool {
	ctx.setRawInt32(state, r.From)
	return r.inBounds(r.From)
}

func (r *RangeIterator) Next(ctx *Context, state int64) bool {
	cur := ctx.rawInt32(state) + r.Step
	ctx.setRawInt32(state, cur)
	return r.inBounds(cur)
}

func (r *RangeIterator) Close(ctx *Context, state int64) {}

func (r *RangeIterator) Current(ctx *Context, state int64) cell.Cell {
	return cell.FromInt32(ctx.rawInt32(state))
}

// URangeIterator is RangeIterator's unsigned-lane counterpart. Its state
// slot holds the current value as a uint32.
type URangeIterator struct {
	From, To uint32
	Step     int32 // signed so a descending walk can still be expressed
}

func NewURangeIterator(from, to uint32, step int32) *URangeIterator {
	if step == 0 {
		step = 1
	}
	return &URangeIterator{From: from, To: to, Step: step}
}

func (r *URangeIterator) inBounds(v uint32) bool {
	if r.Step > 0 {
		return v < r.To
	}
	return v > r.To
}

func (r *URangeIterator) First(ctx *Context, state int64) bool {
	ctx.setRawUInt32(state, r.From)
	return r.inBounds(r.From)
}

func (r *URangeIterator) Next(ctx *Context, state int64) bool {
	cur := uint32(int64(ctx.rawUInt32(state)) + int64(r.Step))
	ctx.setRawUInt32(state, cur)
	return r.inBounds(cur)
}

func (r *URangeIterator) Close(ctx *Context, state int64) {}

func (r *URangeIterator) Current(ctx *Context, state int64) cell.Cell {
	return cell.FromUInt32(ctx.rawUInt32(state))
}
