// Package program is the in-memory program-builder API that stands in
// for a front end (there is no lexer/parser/typechecker in this engine —
// see SPEC_FULL.md §1). Callers assemble a program by constructing
// pkg/engine node trees directly and registering them through a Builder,
// the same way a compiler's code generator would emit into the engine's
// Context rather than textual source.
package program

import (
	"github.com/yzg-lang/yzg/pkg/cell"
	"github.com/yzg-lang/yzg/pkg/engine"
)

// Builder accumulates functions, globals, and blocks against one
// Context, then freezes the arena with Finish.
type Builder struct {
	Ctx *engine.Context
}

func New(cfg engine.Config) *Builder {
	return &Builder{Ctx: engine.NewContext(cfg)}
}

// Frame accumulates local-variable offsets for one function or block
// body, in declaration order, at each value's natural width.
type Frame struct {
	next int64
}

func NewFrame() *Frame { return &Frame{} }

// Reserve allocates width bytes for one local and returns its offset.
func (f *Frame) Reserve(width int) int64 {
	off := f.next
	f.next += int64(width)
	return off
}

// ReserveTyped reserves a slot sized for typ's natural width.
func (f *Frame) ReserveTyped(typ cell.Type) int64 { return f.Reserve(WidthOf(typ)) }

func alignFrameBytes(n int64) uint32 {
	aligned := (n + 15) &^ 15
	return uint32(aligned)
}

// Bytes returns the 16-aligned frame size PushStack will request.
func (f *Frame) Bytes() uint32 { return alignFrameBytes(f.next) }

// WidthOf returns a logical type's natural storage width in a frame slot
// — the packing scalar fast-path nodes rely on (pkg/engine/memory.go).
// Vectors and ranges are stored as a full boxed Cell even when local,
// since none of their lanes gets individual fast-path treatment.
func WidthOf(t cell.Type) int {
	switch t {
	case cell.TBool:
		return 1
	case cell.TInt32, cell.TUInt32, cell.TFloat32:
		return 4
	case cell.TInt64, cell.TUInt64:
		return 8
	case cell.TPointer, cell.TString, cell.TBlock:
		return 8
	default:
		return cell.Size
	}
}

// DefineFunction registers a named function with the frame layout its
// body was built against.
func (b *Builder) DefineFunction(name string, body engine.Node, frame *Frame, line int) int {
	return b.Ctx.DefineFunction(engine.SimFunction{
		Name:               name,
		Body:               body,
		RequiredFrameBytes: frame.Bytes(),
		Debug:              &engine.FuncInfo{Name: name, At: engine.LineInfo{Line: line}},
	})
}

// DefineGlobal registers a named global with an optional initializer node.
func (b *Builder) DefineGlobal(name string, init engine.Node, line int) int {
	return b.Ctx.DefineGlobal(engine.GlobalVariable{
		Name:  name,
		Size:  cell.Size,
		Debug: &engine.VarInfo{Name: name, At: engine.LineInfo{Line: line}},
		Init:  init,
	})
}

// DefineBlock registers a block value's body and frame layout.
// capturedOffset is the frame offset (within the block's own frame) that
// receives either its argument-array pointer or a closure's captured
// address at invoke time; pass -1 if the block reads neither.
func (b *Builder) DefineBlock(body engine.Node, frame *Frame, capturedOffset int) int {
	return b.Ctx.DefineBlock(engine.BlockDescriptor{
		Body:           body,
		CapturedOffset: capturedOffset,
		FrameBytes:     frame.Bytes(),
	})
}

// Finish freezes the arena; no more Define* calls are valid afterward.
func (b *Builder) Finish() { b.Ctx.SimEnd() }
