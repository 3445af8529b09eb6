package engine

import "github.com/yzg-lang/yzg/pkg/cell"

// LineInfo pins a node to a source location for diagnostics (spec.md §3,
// "Nodes carry a source location for diagnostics").
type LineInfo struct {
	File string
	Line int
}

// VarInfo and FuncInfo are the debug records global variables and
// functions carry a pointer to (spec.md §3's GlobalVariable/SimFunction
// descriptors). They are opaque to the engine beyond StackWalk formatting.
type VarInfo struct {
	Name string
	At   LineInfo
}

type FuncInfo struct {
	Name string
	At   LineInfo
}

// GlobalVariable is the descriptor spec.md §3 defines: name, storage
// cell, the number of bytes to zero on (re-)init, debug info, and the
// node that computes the initial value.
type GlobalVariable struct {
	Name  string
	Value cell.Cell
	Size  uint32
	Debug *VarInfo
	Init  Node
}

// SimFunction is the function descriptor spec.md §3 defines.
type SimFunction struct {
	Name             string
	Body             Node
	RequiredFrameBytes uint32
	Debug            *FuncInfo
}

// BlockDescriptor packages a block body plus the frame offset it captured
// at make-block time (spec.md §4.9). Invoke unpacks one of these; closures
// are block descriptors plus opaque annotation data.
type BlockDescriptor struct {
	Body           Node
	CapturedOffset int
	FrameBytes     uint32
	Annotation     any
}
