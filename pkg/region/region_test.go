package region

import "testing"

func TestAllocateIsAligned(t *testing.T) {
	r := New(4096, 1024)
	off, err := r.Allocate(5)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if off%Align != 0 {
		t.Fatalf("Allocate returned unaligned offset %d", off)
	}
	next, err := r.Allocate(1)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if next%Align != 0 {
		t.Fatalf("second Allocate returned unaligned offset %d", next)
	}
}

func TestSimEndFreezesArena(t *testing.T) {
	r := New(4096, 1024)
	r.Allocate(32)
	r.SimEnd()
	if r.ExecBase() != r.Top() {
		t.Fatalf("ExecBase=%d want Top=%d after SimEnd", r.ExecBase(), r.Top())
	}
}

func TestRestartRewindsScratchNotArena(t *testing.T) {
	r := New(4096, 1024)
	r.Allocate(32) // program
	r.SimEnd()
	execBase := r.ExecBase()

	r.Allocate(64) // runtime scratch
	if r.Top() == execBase {
		t.Fatal("expected top to move past execBase after scratch allocation")
	}

	r.Restart()
	if r.Top() != execBase {
		t.Fatalf("Restart did not rewind top to execBase: top=%d execBase=%d", r.Top(), execBase)
	}
}

func TestRestartIsIdempotent(t *testing.T) {
	r := New(4096, 1024)
	r.Allocate(16)
	r.SimEnd()
	r.Allocate(16)
	r.PushStack(32)

	r.Restart()
	top1, stack1 := r.Top(), r.StackTop()
	r.Restart()
	top2, stack2 := r.Top(), r.StackTop()

	if top1 != top2 || stack1 != stack2 {
		t.Fatalf("Restart not idempotent: (%d,%d) != (%d,%d)", top1, stack1, top2, stack2)
	}
}

func TestPushPopStackBalances(t *testing.T) {
	r := New(4096, 2048)
	initial := r.StackTop()

	off, err := r.PushStack(40)
	if err != nil {
		t.Fatalf("PushStack: %v", err)
	}
	if off%Align != 0 {
		t.Fatalf("PushStack returned unaligned offset %d", off)
	}
	if r.StackTop() >= initial {
		t.Fatal("PushStack did not descend the stack pointer")
	}

	r.PopStack(40)
	if r.StackTop() != initial {
		t.Fatalf("stack pointer not restored: got %d want %d", r.StackTop(), initial)
	}
}

func TestStackOverflowThrowsNotPanics(t *testing.T) {
	r := New(256, 64)
	_, err := r.PushStack(1000)
	if err != ErrStackOverflow {
		t.Fatalf("PushStack over-large frame: got %v, want ErrStackOverflow", err)
	}
}

func TestStackCannotCrossIntoArena(t *testing.T) {
	r := New(512, 256)
	// The stack sub-buffer is the top 256 bytes; a 304-byte frame would have
	// to reach below its base into the arena/scratch area.
	r.Allocate(200)
	_, err := r.PushStack(300)
	if err != ErrStackOverflow {
		t.Fatalf("expected stack/arena collision to overflow, got %v", err)
	}
}

func TestAllocateOutOfMemory(t *testing.T) {
	r := New(128, 64)
	_, err := r.Allocate(1000)
	if err != ErrOutOfMemory {
		t.Fatalf("got %v, want ErrOutOfMemory", err)
	}
}

func TestAllocateNameNullTerminated(t *testing.T) {
	r := New(4096, 1024)
	off, err := r.AllocateName("hello")
	if err != nil {
		t.Fatalf("AllocateName: %v", err)
	}
	got := r.Bytes(off, 6)
	if string(got[:5]) != "hello" || got[5] != 0 {
		t.Fatalf("AllocateName content = %q", got)
	}
}

func TestReallocateGrowsInPlaceForLastAllocation(t *testing.T) {
	r := New(4096, 1024)
	off, _ := r.Allocate(16)
	topAfterFirst := r.Top()

	grown, err := r.Reallocate(off, 16, 64)
	if err != nil {
		t.Fatalf("Reallocate: %v", err)
	}
	if grown != off {
		t.Fatalf("Reallocate did not grow in place: got offset %d want %d", grown, off)
	}
	if r.Top() <= topAfterFirst {
		t.Fatal("Reallocate in place did not move top forward")
	}
}

func TestReallocateCopiesWhenNotLastAllocation(t *testing.T) {
	r := New(4096, 1024)
	first, _ := r.Allocate(16)
	copy(r.Bytes(first, 16), []byte("0123456789abcdef"))
	second, _ := r.Allocate(16) // first is no longer the most recent allocation
	_ = second

	grown, err := r.Reallocate(first, 16, 32)
	if err != nil {
		t.Fatalf("Reallocate: %v", err)
	}
	if grown == first {
		t.Fatal("expected Reallocate to move the allocation, not grow in place")
	}
	if string(r.Bytes(grown, 16)) != "0123456789abcdef" {
		t.Fatalf("Reallocate lost original contents: %q", r.Bytes(grown, 16))
	}
}
