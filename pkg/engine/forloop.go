package engine

import "github.com/yzg-lang/yzg/pkg/cell"

// MaxForIterators is the hard compile-time cap on for-loop arity
// (spec.md §4.6, "an N-ary for-loop iterator protocol", supplemented per
// SPEC_FULL.md with a concrete ceiling). Context.MaxForIterators may
// configure a lower runtime cap; it can never exceed this constant.
const MaxForIterators = 16

// ForNode composes 1..N iterators in lockstep, driving each loop
// variable's frame slot from the matching iterator's Current() value.
// The six-phase algorithm spec.md §4.6 describes is: test every
// iterator's First before running the body at all; bind; run the body;
// check stop flags; advance every iterator's Next; loop. Every phase
// that can fail (a false First/Next, or a stop flag appearing mid-phase)
// unwinds to Close exactly the iterators that were successfully First-ed.
type ForNode struct {
	Base
	Iterators []Iterator
	Offsets   []int64
	Types     []cell.Type
	Body      Node
}

// NewFor validates arity against both the hard ceiling and the context's
// configured cap before building the node — the "builder-side
// validation" SPEC_FULL.md calls for.
func NewFor(ctx *Context, iterators []Iterator, offsets []int64, types []cell.Type, body Node, at LineInfo) *ForNode {
	if len(iterators) == 0 {
		panic("engine: for-loop with no iterators")
	}
	if len(iterators) > MaxForIterators {
		panic("engine: for-loop arity exceeds the hard ceiling")
	}
	if cap := ctx.MaxForIterators(); cap > 0 && len(iterators) > cap {
		panic("engine: for-loop arity exceeds the configured cap")
	}
	if len(offsets) != len(iterators) || len(types) != len(iterators) {
		panic("engine: for-loop iterator/offset/type count mismatch")
	}
	n := &ForNode{Iterators: iterators, Offsets: offsets, Types: types, Body: body}
	n.Base = Base{At: at, Self: n}
	return n
}

// stateAddr returns the region address of iterator i's per-activation
// cursor slot within the state block starting at base.
func (n *ForNode) stateAddr(base int, i int) int64 {
	return int64(base) + int64(i)*iteratorStateSize
}

func (n *ForNode) closeIterators(ctx *Context, base int, count int) {
	for i := 0; i < count; i++ {
		n.Iterators[i].Close(ctx, n.stateAddr(base, i))
	}
}

// Eval allocates a fresh per-activation cursor block on the region's stack
// before running the six-phase algorithm, and releases it on every exit
// path. Allocating it here — rather than reading it off n.Iterators, which
// is shared, frozen program state — is what keeps a recursive re-entry of
// this same ForNode from corrupting an outer activation's position in the
// loop (spec.md §4.6, §2-C2).
func (n *ForNode) Eval(ctx *Context) cell.Cell {
	total := len(n.Iterators) * iteratorStateSize
	base, err := ctx.reg.PushStack(total)
	if err != nil {
		ctx.ThrowError("stack overflow")
		return cell.Zero
	}

	opened := 0
	allReady := true
	for i, it := range n.Iterators {
		ok := it.First(ctx, n.stateAddr(base, i))
		if ok {
			opened++
		}
		if !ok || ctx.Stopped() {
			allReady = false
			break
		}
	}
	if !allReady {
		n.closeIterators(ctx, base, opened)
		ctx.reg.PopStack(total)
		return cell.Zero
	}

	for {
		if ctx.Stopped() {
			break
		}
		for i, off := range n.Offsets {
			writeTyped(ctx, ctx.localAddr(off), n.Types[i], n.Iterators[i].Current(ctx, n.stateAddr(base, i)))
		}

		n.Body.Eval(ctx)

		if ctx.HasFlag(StopBreak) {
			ctx.ClearFlag(StopBreak)
			break
		}
		if ctx.Stopped() {
			break
		}

		advanced := true
		for i, it := range n.Iterators {
			if !it.Next(ctx, n.stateAddr(base, i)) || ctx.Stopped() {
				advanced = false
				break
			}
		}
		if !advanced {
			break
		}
	}

	n.closeIterators(ctx, base, len(n.Iterators))
	ctx.reg.PopStack(total)
	return cell.Zero
}
