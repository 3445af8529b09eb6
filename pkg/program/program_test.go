package program

import (
	"testing"

	"github.com/yzg-lang/yzg/pkg/cell"
	"github.com/yzg-lang/yzg/pkg/engine"
)

var at0 = engine.LineInfo{File: "test", Line: 1}

// A function built entirely through the builder API: `function double(n)
// { return n * 2; }`.
func TestBuilderDefinesAndRunsAFunction(t *testing.T) {
	b := New(engine.DefaultConfig())
	frame := NewFrame()

	body := engine.NewReturn(
		engine.NewBinaryOp(engine.OpMul, engine.NewArgumentGet(0, at0), engine.NewConstantInt32(2, at0), cell.TInt32, at0),
		at0,
	)
	fn := b.DefineFunction("double", body, frame, 1)
	b.Finish()

	got := cell.ToInt32(b.Ctx.Call(fn, []cell.Cell{cell.FromInt32(21)}))
	if got != 42 {
		t.Fatalf("double(21) = %d, want 42", got)
	}
}

// Frame.Reserve packs locals at natural width and 16-aligns the total.
func TestFrameReservesNaturalWidthAndAligns(t *testing.T) {
	f := NewFrame()
	boolOff := f.ReserveTyped(cell.TBool)
	intOff := f.ReserveTyped(cell.TInt32)
	ptrOff := f.ReserveTyped(cell.TPointer)

	if boolOff != 0 {
		t.Fatalf("boolOff = %d, want 0", boolOff)
	}
	if intOff != 1 {
		t.Fatalf("intOff = %d, want 1 (packed right after the 1-byte bool)", intOff)
	}
	if ptrOff != 5 {
		t.Fatalf("ptrOff = %d, want 5", ptrOff)
	}
	// total used = 1 + 4 + 8 = 13, rounded up to 16
	if got := f.Bytes(); got != 16 {
		t.Fatalf("Bytes() = %d, want 16", got)
	}
}

func TestWidthOfMatchesNaturalSizes(t *testing.T) {
	cases := []struct {
		typ  cell.Type
		want int
	}{
		{cell.TBool, 1},
		{cell.TInt32, 4},
		{cell.TUInt32, 4},
		{cell.TFloat32, 4},
		{cell.TInt64, 8},
		{cell.TUInt64, 8},
		{cell.TPointer, 8},
		{cell.TString, 8},
		{cell.TBlock, 8},
		{cell.TInt4, cell.Size},
	}
	for _, c := range cases {
		if got := WidthOf(c.typ); got != c.want {
			t.Errorf("WidthOf(%v) = %d, want %d", c.typ, got, c.want)
		}
	}
}

// DefineGlobal's initializer runs through RunInitScript.
func TestBuilderDefinesGlobalWithInitializer(t *testing.T) {
	b := New(engine.DefaultConfig())
	idx := b.DefineGlobal("answer", engine.NewConstantInt32(42, at0), 1)
	b.Finish()

	b.Ctx.RunInitScript()
	if got := cell.ToInt32(b.Ctx.GetVariable(idx)); got != 42 {
		t.Fatalf("answer = %d, want 42", got)
	}
}
