package region

// Property-based tests for the spec.md §8 invariants "Alignment" and
// "Restart idempotence", grounded on zurustar-son-et's gopter-based
// property tests for its own VM.

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPropertyAllocationsAreAlwaysAligned(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("every Allocate() offset is 16-byte aligned", prop.ForAll(
		func(sizes []int) bool {
			r := New(1<<20, 1<<16)
			for _, s := range sizes {
				size := 1 + (s % 256)
				off, err := r.Allocate(size)
				if err != nil {
					return true // out of memory is not an alignment violation
				}
				if off%Align != 0 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int()),
	))

	properties.TestingRun(t)
}

func TestPropertyRestartIsIdempotentUnderArbitraryUse(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("Restart then Restart equals Restart once", prop.ForAll(
		func(scratch int, frame int) bool {
			r := New(1<<20, 1<<16)
			r.Allocate(64)
			r.SimEnd()
			r.Allocate(1 + scratch%4096)
			r.PushStack(1 + frame%2048)

			r.Restart()
			top1, stack1 := r.Top(), r.StackTop()
			r.Restart()
			top2, stack2 := r.Top(), r.StackTop()

			return top1 == top2 && stack1 == stack2
		},
		gen.IntRange(0, 1<<20),
		gen.IntRange(0, 1<<20),
	))

	properties.TestingRun(t)
}
