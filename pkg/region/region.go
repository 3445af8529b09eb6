// Package region implements the engine's linear memory region (spec
// component C2): one contiguous byte buffer that simultaneously serves as
// a node-name arena, run-time scratch space, and the call stack.
//
// Go's garbage collector already owns the node tree itself (pkg/engine
// node values are ordinary Go values — see the design note in spec.md §9 on
// choosing a target language's own allocation story over literally
// replicating a placement-new arena). What a Go port of this engine can
// still usefully bump-allocate, and where the spec's testable alignment
// and stack-reset invariants actually bite, is byte-addressed storage:
// interned name strings and the frame/argument-array stack that every
// call and for-loop iteration touches. That is what Region owns.
package region

import (
	"errors"
	"fmt"
)

// Align is the alignment, in bytes, every allocation must satisfy
// (spec.md §4.3: "every allocation returns 16-byte aligned memory").
const Align = 16

// ErrOutOfMemory is returned when the arena/scratch portion of the region
// is exhausted. Per spec.md §4.1 this is fatal, not a recoverable throw.
var ErrOutOfMemory = errors.New("region: out of memory")

// ErrStackOverflow is returned when a stack push would cross into the
// arena/scratch portion of the region. Per spec.md §7 this is a normal
// throw ("stack overflow"), not a hard abort.
var ErrStackOverflow = errors.New("region: stack overflow")

func align16(n int) int {
	return (n + Align - 1) &^ (Align - 1)
}

// Region owns one contiguous buffer, partitioned by three moving offsets:
// base (0), execBase (set once by SimEnd), and top (the bump pointer) —
// plus a descending stack pointer inside a fixed-size sub-buffer at the
// high end of the same buffer.
type Region struct {
	buf       []byte
	execBase  int
	top       int
	stackBase int // start of the dedicated stack sub-buffer; top must never cross it
	stackTop  int // descends from len(buf) toward stackBase
}

// New allocates a region of the given total size with a stack sub-buffer
// of stackSize bytes carved out of its high end.
func New(size, stackSize int) *Region {
	if size <= 0 {
		size = 4 * 1024 * 1024
	}
	if stackSize <= 0 || stackSize > size {
		stackSize = size / 4
	}
	r := &Region{
		buf:       make([]byte, size),
		stackBase: size - stackSize,
	}
	r.stackTop = len(r.buf)
	return r
}

// Base is always zero; kept as a named accessor to mirror spec.md's base
// pointer terminology in call sites.
func (r *Region) Base() int { return 0 }

// ExecBase returns the high-water mark recorded by the last SimEnd call.
func (r *Region) ExecBase() int { return r.execBase }

// Top returns the current bump pointer.
func (r *Region) Top() int { return r.top }

// StackTop returns the current stack pointer (descends on push).
func (r *Region) StackTop() int { return r.stackTop }

// StackBase returns the address below which the stack sub-buffer starts.
func (r *Region) StackBase() int { return r.stackBase }

// Len returns the total size of the backing buffer.
func (r *Region) Len() int { return len(r.buf) }

// Allocate bumps top by a 16-aligned size and returns the offset of the
// new allocation. It is the node-arena / name-pool / scratch allocator
// (spec.md §4.1, §4.3 roles 1 and 2).
func (r *Region) Allocate(size int) (int, error) {
	aligned := align16(size)
	if r.top+aligned > r.stackBase {
		return 0, ErrOutOfMemory
	}
	off := r.top
	r.top += aligned
	return off, nil
}

// AllocateName copies a null-terminated byte sequence for s into the
// arena and returns its offset. Interning is not required to be
// idempotent (spec.md §4.1).
func (r *Region) AllocateName(s string) (int, error) {
	off, err := r.Allocate(len(s) + 1)
	if err != nil {
		return 0, err
	}
	copy(r.buf[off:], s)
	r.buf[off+len(s)] = 0
	return off, nil
}

// Reallocate grows an allocation in place if it was the most recent one,
// or allocates fresh and copies otherwise.
func (r *Region) Reallocate(old, oldSize, newSize int) (int, error) {
	if old+align16(oldSize) == r.top {
		// Most recent allocation: grow (or shrink) the bump pointer in place.
		delta := align16(newSize) - align16(oldSize)
		if r.top+delta > r.stackBase {
			return 0, ErrOutOfMemory
		}
		r.top += delta
		return old, nil
	}
	fresh, err := r.Allocate(newSize)
	if err != nil {
		return 0, err
	}
	n := oldSize
	if newSize < n {
		n = newSize
	}
	copy(r.buf[fresh:], r.buf[old:old+n])
	return fresh, nil
}

// Bytes returns a slice view over [off, off+size) of the backing buffer.
// Callers must not retain the slice past a Restart.
func (r *Region) Bytes(off, size int) []byte {
	return r.buf[off : off+size]
}

// SimEnd records the current top as the execution base: everything below
// is now immutable program (nodes, names); restart never rewinds past it.
func (r *Region) SimEnd() {
	r.execBase = r.top
}

// Restart resets run-time state: top rewinds to execBase (discarding
// scratch allocations made during execution) and the stack pointer resets
// to the top of the buffer. Idempotent: Restart() twice == Restart() once
// (spec.md §8, "Restart idempotence").
func (r *Region) Restart() {
	r.top = r.execBase
	r.stackTop = len(r.buf)
}

// PushStack descends the stack pointer by a 16-aligned size and returns
// the offset of the new frame. Returns ErrStackOverflow if the frame
// would drop stackTop below the stack sub-buffer's base, or below the
// current bump pointer (the stack must never cross into the arena).
func (r *Region) PushStack(size int) (int, error) {
	aligned := align16(size)
	newTop := r.stackTop - aligned
	if newTop < r.stackBase || newTop < r.top {
		return 0, ErrStackOverflow
	}
	r.stackTop = newTop
	return newTop, nil
}

// PopStack restores the stack pointer by the same 16-aligned size a prior
// PushStack consumed. Callers are responsible for pairing push/pop sizes;
// this mirrors the caller-saves-stackTop discipline in spec.md §4.4.
func (r *Region) PopStack(size int) {
	r.stackTop += align16(size)
}

func (r *Region) String() string {
	return fmt.Sprintf("region{len=%d execBase=%d top=%d stackBase=%d stackTop=%d}",
		len(r.buf), r.execBase, r.top, r.stackBase, r.stackTop)
}
