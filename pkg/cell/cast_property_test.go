package cell

// Property-based tests for the cast bridge round-trip law spec.md §8
// requires: cast<T>::to(cast<T>::from(x)) == x for every representable x.
// Grounded on zurustar-son-et's pkg/vm/*_property_test.go style of
// expressing "for all x" invariants with gopter instead of fixed cases.

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPropertyInt32RoundTrips(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("int32 cast round-trips", prop.ForAll(
		func(v int32) bool {
			return ToInt32(FromInt32(v)) == v
		},
		gen.Int32(),
	))

	properties.TestingRun(t)
}

func TestPropertyUInt64RoundTrips(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("uint64 cast round-trips", prop.ForAll(
		func(v uint64) bool {
			return ToUInt64(FromUInt64(v)) == v
		},
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestPropertyBoolRoundTrips(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("bool cast round-trips", prop.ForAll(
		func(v bool) bool {
			return ToBool(FromBool(v)) == v
		},
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestPropertyFloat32RoundTrips(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("float32 cast round-trips (excluding NaN)", prop.ForAll(
		func(v float32) bool {
			return ToFloat32(FromFloat32(v)) == v
		},
		gen.Float32().SuchThat(func(v float32) bool { return v == v }), // exclude NaN
	))

	properties.TestingRun(t)
}
