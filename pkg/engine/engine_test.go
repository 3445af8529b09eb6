package engine

import (
	"testing"

	"github.com/yzg-lang/yzg/pkg/cell"
)

var at0 = LineInfo{File: "test", Line: 1}

func newTestContext() *Context {
	cfg := DefaultConfig()
	cfg.RegionSize = 64 * 1024
	cfg.StackSize = 16 * 1024
	return NewContext(cfg)
}

// A constant function body: `function answer() { return 42; }`
func TestEndToEndConstantReturn(t *testing.T) {
	ctx := newTestContext()
	body := NewReturn(NewConstantInt32(42, at0), at0)
	fn := ctx.DefineFunction(SimFunction{Name: "answer", Body: body, RequiredFrameBytes: 0})
	ctx.SimEnd()

	got := cell.ToInt32(ctx.Call(fn, nil))
	if got != 42 {
		t.Fatalf("answer() = %d, want 42", got)
	}
	if _, ok := ctx.GetException(); ok {
		t.Fatalf("unexpected exception")
	}
}

// `function divide(a, b) { return a / b; }` called with b == 0 throws.
func TestEndToEndDivisionByZero(t *testing.T) {
	ctx := newTestContext()
	body := NewReturn(
		NewBinaryOp(OpDiv, NewArgumentGet(0, at0), NewArgumentGet(1, at0), cell.TInt32, at0),
		at0,
	)
	fn := ctx.DefineFunction(SimFunction{Name: "divide", Body: body, RequiredFrameBytes: 0})
	ctx.SimEnd()

	ctx.Call(fn, []cell.Cell{cell.FromInt32(10), cell.FromInt32(0)})
	msg, ok := ctx.GetException()
	if !ok {
		t.Fatalf("expected an exception, got none")
	}
	if msg != "divide by zero" {
		t.Fatalf("exception = %q, want %q", msg, "divide by zero")
	}
}

// Indexing past the end of a fixed array throws "index out of range"
// rather than reading past it.
func TestEndToEndArrayBounds(t *testing.T) {
	ctx := newTestContext()

	arrOff := ctx.AllocateBytes(12) // 3 int32 slots
	for i, v := range []int32{1, 2, 3} {
		ctx.setRawInt32(arrOff+int64(i*4), v)
	}

	body := NewReturn(
		NewIndex(NewConstantPtr(arrOff, at0), NewArgumentGet(0, at0), 4, 3, cell.TInt32, at0),
		at0,
	)
	fn := ctx.DefineFunction(SimFunction{Name: "at", Body: body, RequiredFrameBytes: 0})
	ctx.SimEnd()

	if got := cell.ToInt32(ctx.Call(fn, []cell.Cell{cell.FromInt32(1)})); got != 2 {
		t.Fatalf("at(1) = %d, want 2", got)
	}
	if _, ok := ctx.GetException(); ok {
		t.Fatalf("unexpected exception on in-bounds access")
	}

	ctx.Call(fn, []cell.Cell{cell.FromInt32(5)})
	msg, ok := ctx.GetException()
	if !ok || msg != "index out of range" {
		t.Fatalf("exception = (%q, %v), want (\"index out of range\", true)", msg, ok)
	}
}

// `for i in 0..3, j in 10..13 { total = total + i + j; }` drives two
// iterators in lockstep and closes both exactly once.
func TestEndToEndForLoopTwoIteratorsLockstep(t *testing.T) {
	ctx := newTestContext()

	totalOff := int64(0)
	iOff := int64(4)
	jOff := int64(8)

	counting := &countingIterator{inner: NewRangeIterator(10, 13, 1)}

	body := NewBlock([]Node{
		NewInitLocal(totalOff, 4, at0),
		NewAssign(NewLocalRef(totalOff, at0), NewConstantInt32(0, at0), cell.TInt32, at0),
		NewFor(
			ctx,
			[]Iterator{NewRangeIterator(0, 3, 1), counting},
			[]int64{iOff, jOff},
			[]cell.Type{cell.TInt32, cell.TInt32},
			NewAssign(
				NewLocalRef(totalOff, at0),
				NewBinaryOp(OpAdd,
					NewBinaryOp(OpAdd, NewLocalGet(totalOff, cell.TInt32, at0), NewLocalGet(iOff, cell.TInt32, at0), cell.TInt32, at0),
					NewLocalGet(jOff, cell.TInt32, at0),
					cell.TInt32, at0),
				cell.TInt32, at0),
			at0,
		),
		NewReturn(NewLocalGet(totalOff, cell.TInt32, at0), at0),
	}, at0)

	fn := ctx.DefineFunction(SimFunction{Name: "lockstep", Body: body, RequiredFrameBytes: 16})
	ctx.SimEnd()

	got := cell.ToInt32(ctx.Call(fn, nil))
	want := int32((0 + 10) + (1 + 11) + (2 + 12))
	if got != want {
		t.Fatalf("lockstep() = %d, want %d", got, want)
	}
	if counting.closes != 1 {
		t.Fatalf("iterator closed %d times, want exactly 1", counting.closes)
	}
}

type countingIterator struct {
	inner  Iterator
	closes int
}

func (c *countingIterator) First(ctx *Context, state int64) bool { return c.inner.First(ctx, state) }
func (c *countingIterator) Next(ctx *Context, state int64) bool  { return c.inner.Next(ctx, state) }
func (c *countingIterator) Current(ctx *Context, state int64) cell.Cell {
	return c.inner.Current(ctx, state)
}
func (c *countingIterator) Close(ctx *Context, state int64) {
	c.closes++
	c.inner.Close(ctx, state)
}

// `try { throw "boom"; } catch (e) { return 7; }` swallows the throw.
func TestEndToEndTryCatchSwallowsThrow(t *testing.T) {
	ctx := newTestContext()

	thrower := &throwNode{Message: "boom"}
	thrower.Base = Base{At: at0, Self: thrower}
	tryBody := NewBlock([]Node{thrower}, at0)
	catchBody := NewReturn(NewConstantInt32(7, at0), at0)

	body := NewReturn(NewTryCatch(tryBody, -1, catchBody, at0), at0)
	fn := ctx.DefineFunction(SimFunction{Name: "swallow", Body: body, RequiredFrameBytes: 0})
	ctx.SimEnd()

	got := cell.ToInt32(ctx.Call(fn, nil))
	if got != 7 {
		t.Fatalf("swallow() = %d, want 7", got)
	}
	if _, ok := ctx.GetException(); ok {
		t.Fatalf("exception should have been cleared by catch")
	}
}

// throwNode is a tiny test-only node that throws unconditionally.
type throwNode struct {
	Base
	Message string
}

func (n *throwNode) Eval(ctx *Context) cell.Cell {
	ctx.ThrowError(n.Message)
	return cell.Zero
}

// `while (true) { while (true) { break; } break; }` — an inner break
// only escapes its own loop.
func TestEndToEndBreakInsideNestedWhile(t *testing.T) {
	ctx := newTestContext()

	counterOff := int64(0)
	inner := NewWhile(NewConstantBool(true, at0), NewBreak(at0), at0)
	outerBody := NewBlock([]Node{
		inner,
		NewAssign(NewLocalRef(counterOff, at0),
			NewBinaryOp(OpAdd, NewLocalGet(counterOff, cell.TInt32, at0), NewConstantInt32(1, at0), cell.TInt32, at0),
			cell.TInt32, at0),
		NewBreak(at0),
	}, at0)
	outer := NewWhile(NewConstantBool(true, at0), outerBody, at0)

	body := NewBlock([]Node{
		NewInitLocal(counterOff, 4, at0),
		NewAssign(NewLocalRef(counterOff, at0), NewConstantInt32(0, at0), cell.TInt32, at0),
		outer,
		NewReturn(NewLocalGet(counterOff, cell.TInt32, at0), at0),
	}, at0)

	fn := ctx.DefineFunction(SimFunction{Name: "nested", Body: body, RequiredFrameBytes: 16})
	ctx.SimEnd()

	got := cell.ToInt32(ctx.Call(fn, nil))
	if got != 1 {
		t.Fatalf("nested() = %d, want 1 (outer loop body ran exactly once)", got)
	}
}

// Restart clears an in-flight exception and rewinds the stack.
func TestRestartClearsExceptionAndStack(t *testing.T) {
	ctx := newTestContext()
	body := NewReturn(
		NewBinaryOp(OpDiv, NewConstantInt32(1, at0), NewConstantInt32(0, at0), cell.TInt32, at0),
		at0,
	)
	fn := ctx.DefineFunction(SimFunction{Name: "boom", Body: body, RequiredFrameBytes: 0})
	ctx.SimEnd()

	ctx.Call(fn, nil)
	if _, ok := ctx.GetException(); !ok {
		t.Fatalf("expected an exception before restart")
	}
	ctx.Restart()
	if _, ok := ctx.GetException(); ok {
		t.Fatalf("exception should be cleared after Restart")
	}
	if len(ctx.frames) != 0 {
		t.Fatalf("frames should be empty after Restart")
	}
}
