package engine

import (
	"testing"

	"github.com/yzg-lang/yzg/pkg/cell"
)

// A two-field struct { x int32; y int32 } accessed through FieldDeref and
// PointerFieldDeref/SafePointerFieldDeref.
func TestFieldDerefReadsAtOffset(t *testing.T) {
	ctx := newTestContext()
	structOff := ctx.AllocateBytes(8)
	ctx.setRawInt32(structOff, 11)
	ctx.setRawInt32(structOff+4, 22)

	body := NewReturn(
		NewFieldDeref(NewConstantPtr(structOff, at0), 4, cell.TInt32, at0),
		at0,
	)
	fn := ctx.DefineFunction(SimFunction{Name: "y", Body: body})
	ctx.SimEnd()

	if got := cell.ToInt32(ctx.Call(fn, nil)); got != 22 {
		t.Fatalf("y() = %d, want 22", got)
	}
}

func TestPointerFieldDerefThrowsOnNull(t *testing.T) {
	ctx := newTestContext()
	body := NewReturn(
		NewPointerFieldDeref(NewConstantPtr(NullOffset, at0), 4, cell.TInt32, at0),
		at0,
	)
	fn := ctx.DefineFunction(SimFunction{Name: "deref", Body: body})
	ctx.SimEnd()

	ctx.Call(fn, nil)
	msg, ok := ctx.GetException()
	if !ok || msg != "dereferencing null pointer" {
		t.Fatalf("exception = (%q, %v), want (\"dereferencing null pointer\", true)", msg, ok)
	}
}

func TestSafePointerFieldDerefReturnsZeroOnNull(t *testing.T) {
	ctx := newTestContext()
	body := NewReturn(
		NewSafePointerFieldDeref(NewConstantPtr(NullOffset, at0), 4, cell.TInt32, at0),
		at0,
	)
	fn := ctx.DefineFunction(SimFunction{Name: "safeDeref", Body: body})
	ctx.SimEnd()

	got := cell.ToInt32(ctx.Call(fn, nil))
	if got != 0 {
		t.Fatalf("safeDeref() = %d, want 0", got)
	}
	if _, ok := ctx.GetException(); ok {
		t.Fatalf("safe deref of a null pointer must not throw")
	}
}

// `a ?? b` with a null left side falls through to the right side.
func TestNullCoalescingFallsThroughOnNull(t *testing.T) {
	ctx := newTestContext()
	fallback := ctx.AllocateBytes(4)
	ctx.setRawInt32(fallback, 99)

	body := NewReturn(
		NewFieldDeref(
			NewNullCoalescing(NewConstantPtr(NullOffset, at0), NewConstantPtr(fallback, at0), at0),
			0, cell.TInt32, at0,
		),
		at0,
	)
	fn := ctx.DefineFunction(SimFunction{Name: "coalesce", Body: body})
	ctx.SimEnd()

	if got := cell.ToInt32(ctx.Call(fn, nil)); got != 99 {
		t.Fatalf("coalesce() = %d, want 99", got)
	}
}

// CopyRefValue copies a 3-int32 struct wholesale; MoveRefValue also zeroes
// the source afterward.
func TestCopyAndMoveRefValue(t *testing.T) {
	ctx := newTestContext()
	src := ctx.AllocateBytes(12)
	dst := ctx.AllocateBytes(12)
	for i, v := range []int32{1, 2, 3} {
		ctx.setRawInt32(src+int64(i*4), v)
	}

	copyBody := NewCopyRefValue(NewConstantPtr(dst, at0), NewConstantPtr(src, at0), 12, at0)
	copyFn := ctx.DefineFunction(SimFunction{Name: "cp", Body: copyBody})
	ctx.SimEnd()

	ctx.Call(copyFn, nil)
	for i, want := range []int32{1, 2, 3} {
		if got := ctx.rawInt32(dst + int64(i*4)); got != want {
			t.Fatalf("dst[%d] = %d, want %d", i, got, want)
		}
	}
	for i, want := range []int32{1, 2, 3} {
		if got := ctx.rawInt32(src + int64(i*4)); got != want {
			t.Fatalf("src[%d] = %d after copy, want unchanged %d", i, got, want)
		}
	}

	ctx2 := newTestContext()
	src2 := ctx2.AllocateBytes(12)
	dst2 := ctx2.AllocateBytes(12)
	for i, v := range []int32{4, 5, 6} {
		ctx2.setRawInt32(src2+int64(i*4), v)
	}
	moveBody := NewMoveRefValue(NewConstantPtr(dst2, at0), NewConstantPtr(src2, at0), 12, at0)
	moveFn := ctx2.DefineFunction(SimFunction{Name: "mv", Body: moveBody})
	ctx2.SimEnd()

	ctx2.Call(moveFn, nil)
	for i, want := range []int32{4, 5, 6} {
		if got := ctx2.rawInt32(dst2 + int64(i*4)); got != want {
			t.Fatalf("dst2[%d] = %d, want %d", i, got, want)
		}
	}
	for i := 0; i < 3; i++ {
		if got := ctx2.rawInt32(src2 + int64(i*4)); got != 0 {
			t.Fatalf("src2[%d] = %d after move, want zeroed", i, got)
		}
	}
}

// A block with no capture, made and invoked directly.
func TestMakeBlockAndInvoke(t *testing.T) {
	ctx := newTestContext()
	blockBody := NewReturn(
		NewBinaryOp(OpAdd, NewArgumentGet(0, at0), NewConstantInt32(1, at0), cell.TInt32, at0),
		at0,
	)
	blockIdx := ctx.DefineBlock(BlockDescriptor{Body: blockBody, CapturedOffset: -1})

	callerBody := NewReturn(
		NewInvoke(NewMakeBlock(blockIdx, at0), []Node{NewConstantInt32(41, at0)}, at0),
		at0,
	)
	fn := ctx.DefineFunction(SimFunction{Name: "caller", Body: callerBody})
	ctx.SimEnd()

	if got := cell.ToInt32(ctx.Call(fn, nil)); got != 42 {
		t.Fatalf("caller() = %d, want 42", got)
	}
}

// ClosureBlock captures an outer local's address; the block reads through
// that captured pointer with LocalRefToValue to see the caller's live value.
func TestClosureBlockCapturesOuterLocal(t *testing.T) {
	ctx := newTestContext()
	capturedOff := int64(0)

	blockBody := NewReturn(
		NewBinaryOp(OpMul,
			NewLocalRefToValue(capturedOff, cell.TInt32, at0),
			NewConstantInt32(2, at0),
			cell.TInt32, at0),
		at0,
	)
	blockIdx := ctx.DefineBlock(BlockDescriptor{Body: blockBody, CapturedOffset: int(capturedOff), FrameBytes: 16})

	outerLocalOff := int64(8)
	callerBody := NewBlock([]Node{
		NewInitLocal(outerLocalOff, 4, at0),
		NewAssign(NewLocalRef(outerLocalOff, at0), NewConstantInt32(21, at0), cell.TInt32, at0),
		NewReturn(
			NewInvoke(NewClosureBlock(blockIdx, NewLocalRef(outerLocalOff, at0), at0), nil, at0),
			at0,
		),
	}, at0)
	fn := ctx.DefineFunction(SimFunction{Name: "closureCaller", Body: callerBody, RequiredFrameBytes: 16})
	ctx.SimEnd()

	if got := cell.ToInt32(ctx.Call(fn, nil)); got != 42 {
		t.Fatalf("closureCaller() = %d, want 42", got)
	}
}

func TestInvokeOfNullBlockThrows(t *testing.T) {
	ctx := newTestContext()
	body := NewReturn(NewInvoke(NewConstantPtr(NullOffset, at0), nil, at0), at0)
	fn := ctx.DefineFunction(SimFunction{Name: "invokeNull", Body: body})
	ctx.SimEnd()

	ctx.Call(fn, nil)
	msg, ok := ctx.GetException()
	if !ok || msg != "invoke of a null block" {
		t.Fatalf("exception = (%q, %v), want (\"invoke of a null block\", true)", msg, ok)
	}
}

// Cast, LexicalCast, VectorConstructor, NewAlloc, Debug, Assert.
func TestCastInt32ToFloat32(t *testing.T) {
	ctx := newTestContext()
	body := NewReturn(NewCast(NewConstantInt32(7, at0), cell.TInt32, cell.TFloat32, at0), at0)
	fn := ctx.DefineFunction(SimFunction{Name: "cast", Body: body})
	ctx.SimEnd()

	got := cell.ToFloat32(ctx.Call(fn, nil))
	if got != 7.0 {
		t.Fatalf("cast() = %v, want 7.0", got)
	}
}

func TestLexicalCastPassesThroughUnchanged(t *testing.T) {
	ctx := newTestContext()
	body := NewReturn(NewLexicalCast(NewConstantInt32(-1, at0), cell.TInt32, cell.TUInt32, at0), at0)
	fn := ctx.DefineFunction(SimFunction{Name: "bits", Body: body})
	ctx.SimEnd()

	got := cell.ToUInt32(ctx.Call(fn, nil))
	if got != 0xFFFFFFFF {
		t.Fatalf("bits() = %#x, want 0xFFFFFFFF", got)
	}
}

func TestVectorConstructorBuildsInt3(t *testing.T) {
	ctx := newTestContext()
	body := NewReturn(
		NewVectorConstructor(
			[]Node{NewConstantInt32(1, at0), NewConstantInt32(2, at0), NewConstantInt32(3, at0)},
			cell.TInt3, at0,
		),
		at0,
	)
	fn := ctx.DefineFunction(SimFunction{Name: "vec3", Body: body})
	ctx.SimEnd()

	got := cell.ToInt3(ctx.Call(fn, nil))
	want := cell.Int3{X: 1, Y: 2, Z: 3}
	if got != want {
		t.Fatalf("vec3() = %+v, want %+v", got, want)
	}
}

func TestNewAllocReturnsZeroedMemory(t *testing.T) {
	ctx := newTestContext()
	body := NewReturn(
		NewFieldDeref(NewNewAlloc(4, at0), 0, cell.TInt32, at0),
		at0,
	)
	fn := ctx.DefineFunction(SimFunction{Name: "alloc", Body: body})
	ctx.SimEnd()

	if got := cell.ToInt32(ctx.Call(fn, nil)); got != 0 {
		t.Fatalf("alloc() = %d, want 0 (freshly allocated memory must be zeroed)", got)
	}
}

func TestDebugPassesValueThroughAndLogs(t *testing.T) {
	ctx := newTestContext()
	var logged string
	ctx.SetHostHooks(func(msg string) { logged = msg }, nil, nil)

	body := NewReturn(NewDebug(NewConstantInt32(5, at0), cell.TInt32, "x", at0), at0)
	fn := ctx.DefineFunction(SimFunction{Name: "dbg", Body: body})
	ctx.SimEnd()

	got := cell.ToInt32(ctx.Call(fn, nil))
	if got != 5 {
		t.Fatalf("dbg() = %d, want 5", got)
	}
	if logged != "x=5" {
		t.Fatalf("logged = %q, want %q", logged, "x=5")
	}
}

func TestAssertThrowsOnFalseCondition(t *testing.T) {
	ctx := newTestContext()
	body := NewAssert(NewConstantBool(false, at0), "invariant violated", at0)
	fn := ctx.DefineFunction(SimFunction{Name: "assertFails", Body: body})
	ctx.SimEnd()

	ctx.Call(fn, nil)
	msg, ok := ctx.GetException()
	if !ok || msg != "invariant violated" {
		t.Fatalf("exception = (%q, %v), want (\"invariant violated\", true)", msg, ok)
	}
}

func TestAssertDoesNotThrowOnTrueCondition(t *testing.T) {
	ctx := newTestContext()
	body := NewAssert(NewConstantBool(true, at0), "unreachable", at0)
	fn := ctx.DefineFunction(SimFunction{Name: "assertOk", Body: body})
	ctx.SimEnd()

	ctx.Call(fn, nil)
	if _, ok := ctx.GetException(); ok {
		t.Fatalf("assert with a true condition must not throw")
	}
}

// ArrayIterator drives a for-loop over a raw array exactly like
// RangeIterator does over a numeric range.
func TestArrayIteratorDrivesForLoop(t *testing.T) {
	ctx := newTestContext()
	arrOff := ctx.AllocateBytes(12)
	for i, v := range []int32{10, 20, 30} {
		ctx.setRawInt32(arrOff+int64(i*4), v)
	}

	totalOff := int64(0)
	elemOff := int64(4)
	body := NewBlock([]Node{
		NewInitLocal(totalOff, 4, at0),
		NewAssign(NewLocalRef(totalOff, at0), NewConstantInt32(0, at0), cell.TInt32, at0),
		NewFor(
			ctx,
			[]Iterator{NewArrayIterator(arrOff, 4, 3, cell.TInt32)},
			[]int64{elemOff},
			[]cell.Type{cell.TInt32},
			NewAssign(
				NewLocalRef(totalOff, at0),
				NewBinaryOp(OpAdd, NewLocalGet(totalOff, cell.TInt32, at0), NewLocalGet(elemOff, cell.TInt32, at0), cell.TInt32, at0),
				cell.TInt32, at0,
			),
			at0,
		),
		NewReturn(NewLocalGet(totalOff, cell.TInt32, at0), at0),
	}, at0)
	fn := ctx.DefineFunction(SimFunction{Name: "sumArray", Body: body, RequiredFrameBytes: 16})
	ctx.SimEnd()

	if got := cell.ToInt32(ctx.Call(fn, nil)); got != 60 {
		t.Fatalf("sumArray() = %d, want 60", got)
	}
}

// BlockArgumentGet reads through a captured arguments pointer rather than
// a captured single address.
func TestBlockArgumentGetReadsThroughCapturedArgs(t *testing.T) {
	ctx := newTestContext()
	capturedOff := int64(0)

	blockBody := NewReturn(NewBlockArgumentGet(capturedOff, 0, at0), at0)
	blockIdx := ctx.DefineBlock(BlockDescriptor{Body: blockBody, CapturedOffset: int(capturedOff), FrameBytes: 16})

	callerBody := NewReturn(
		NewInvoke(NewMakeBlock(blockIdx, at0), []Node{NewConstantInt32(77, at0)}, at0),
		at0,
	)
	fn := ctx.DefineFunction(SimFunction{Name: "readsArgs", Body: callerBody, RequiredFrameBytes: 16})
	ctx.SimEnd()

	if got := cell.ToInt32(ctx.Call(fn, nil)); got != 77 {
		t.Fatalf("readsArgs() = %d, want 77", got)
	}
}
