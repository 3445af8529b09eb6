// Package policy implements the per-type operator families spec.md §4.7
// calls out: arithmetic, bitwise, comparison, shift, and unary operators
// for each numeric logical type the engine supports. Each policy is a
// plain set of functions over Go's native numeric types — the node layer
// (pkg/engine) extracts operands through the cast bridge, calls the
// matching policy function, and re-boxes the result, exactly as spec.md
// describes the node/policy split. Compound-assignment and increment/
// decrement are not separate policy functions: pkg/engine's
// CompoundAssignNode and IncDecNode apply these same arithmetic/bitwise
// functions in place, once the destination address has been evaluated.
package policy

import "errors"

// ErrDivideByZero is returned by integer Div/Mod when the divisor is
// zero. spec.md §4.7 requires this to surface as a throw ("divide by
// zero"), never as undefined behaviour.
var ErrDivideByZero = errors.New("divide by zero")

//-----------------------------------------------------------------------------
// Int32
//-----------------------------------------------------------------------------

func AddInt32(a, b int32) int32 { return a + b }
func SubInt32(a, b int32) int32 { return a - b }
func MulInt32(a, b int32) int32 { return a * b }

func DivInt32(a, b int32) (int32, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

func ModInt32(a, b int32) (int32, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a % b, nil
}

func AndInt32(a, b int32) int32 { return a & b }
func OrInt32(a, b int32) int32  { return a | b }
func XorInt32(a, b int32) int32 { return a ^ b }

// Shift counts are taken modulo the operand width (spec.md §4.7).
func ShlInt32(a int32, n uint32) int32 { return a << (n % 32) }
func ShrInt32(a int32, n uint32) int32 { return a >> (n % 32) }

func EqInt32(a, b int32) bool { return a == b }
func NeInt32(a, b int32) bool { return a != b }
func LtInt32(a, b int32) bool { return a < b }
func LeInt32(a, b int32) bool { return a <= b }
func GtInt32(a, b int32) bool { return a > b }
func GeInt32(a, b int32) bool { return a >= b }

func NegInt32(a int32) int32 { return -a }
func NotInt32(a int32) int32 { return ^a }

//-----------------------------------------------------------------------------
// UInt32
//-----------------------------------------------------------------------------

func AddUInt32(a, b uint32) uint32 { return a + b }
func SubUInt32(a, b uint32) uint32 { return a - b }
func MulUInt32(a, b uint32) uint32 { return a * b }

func DivUInt32(a, b uint32) (uint32, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

func ModUInt32(a, b uint32) (uint32, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a % b, nil
}

func AndUInt32(a, b uint32) uint32 { return a & b }
func OrUInt32(a, b uint32) uint32  { return a | b }
func XorUInt32(a, b uint32) uint32 { return a ^ b }

func ShlUInt32(a uint32, n uint32) uint32 { return a << (n % 32) }
func ShrUInt32(a uint32, n uint32) uint32 { return a >> (n % 32) }

func EqUInt32(a, b uint32) bool { return a == b }
func NeUInt32(a, b uint32) bool { return a != b }
func LtUInt32(a, b uint32) bool { return a < b }
func LeUInt32(a, b uint32) bool { return a <= b }
func GtUInt32(a, b uint32) bool { return a > b }
func GeUInt32(a, b uint32) bool { return a >= b }

func NotUInt32(a uint32) uint32 { return ^a }

//-----------------------------------------------------------------------------
// Int64
//-----------------------------------------------------------------------------

func AddInt64(a, b int64) int64 { return a + b }
func SubInt64(a, b int64) int64 { return a - b }
func MulInt64(a, b int64) int64 { return a * b }

func DivInt64(a, b int64) (int64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

func ModInt64(a, b int64) (int64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a % b, nil
}

func AndInt64(a, b int64) int64 { return a & b }
func OrInt64(a, b int64) int64  { return a | b }
func XorInt64(a, b int64) int64 { return a ^ b }

func ShlInt64(a int64, n uint32) int64 { return a << (n % 64) }
func ShrInt64(a int64, n uint32) int64 { return a >> (n % 64) }

func EqInt64(a, b int64) bool { return a == b }
func NeInt64(a, b int64) bool { return a != b }
func LtInt64(a, b int64) bool { return a < b }
func LeInt64(a, b int64) bool { return a <= b }
func GtInt64(a, b int64) bool { return a > b }
func GeInt64(a, b int64) bool { return a >= b }

func NegInt64(a int64) int64 { return -a }
func NotInt64(a int64) int64 { return ^a }

//-----------------------------------------------------------------------------
// UInt64
//-----------------------------------------------------------------------------

func AddUInt64(a, b uint64) uint64 { return a + b }
func SubUInt64(a, b uint64) uint64 { return a - b }
func MulUInt64(a, b uint64) uint64 { return a * b }

func DivUInt64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

func ModUInt64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a % b, nil
}

func AndUInt64(a, b uint64) uint64 { return a & b }
func OrUInt64(a, b uint64) uint64  { return a | b }
func XorUInt64(a, b uint64) uint64 { return a ^ b }

func ShlUInt64(a uint64, n uint32) uint64 { return a << (uint64(n) % 64) }
func ShrUInt64(a uint64, n uint32) uint64 { return a >> (uint64(n) % 64) }

func EqUInt64(a, b uint64) bool { return a == b }
func NeUInt64(a, b uint64) bool { return a != b }
func LtUInt64(a, b uint64) bool { return a < b }
func LeUInt64(a, b uint64) bool { return a <= b }
func GtUInt64(a, b uint64) bool { return a > b }
func GeUInt64(a, b uint64) bool { return a >= b }

func NotUInt64(a uint64) uint64 { return ^a }

//-----------------------------------------------------------------------------
// Float32 — IEEE-754 semantics throughout, including division by zero
// (spec.md §4.7: infinity/NaN, not an exception).
//-----------------------------------------------------------------------------

func AddFloat32(a, b float32) float32 { return a + b }
func SubFloat32(a, b float32) float32 { return a - b }
func MulFloat32(a, b float32) float32 { return a * b }
func DivFloat32(a, b float32) float32 { return a / b }

func EqFloat32(a, b float32) bool { return a == b }
func NeFloat32(a, b float32) bool { return a != b }
func LtFloat32(a, b float32) bool { return a < b }
func LeFloat32(a, b float32) bool { return a <= b }
func GtFloat32(a, b float32) bool { return a > b }
func GeFloat32(a, b float32) bool { return a >= b }

func NegFloat32(a float32) float32 { return -a }

//-----------------------------------------------------------------------------
// Bool
//-----------------------------------------------------------------------------

func NotBool(a bool) bool { return !a }
func EqBool(a, b bool) bool { return a == b }
func NeBool(a, b bool) bool { return a != b }
