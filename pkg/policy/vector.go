package policy

import "github.com/yzg-lang/yzg/pkg/cell"

// Vector policies cover elementwise arithmetic for vector-by-vector and
// vector-by-scalar operands (spec.md §4.7: "Vector-by-scalar arithmetic is
// elementwise; vector-by-vector arithmetic requires equal lane counts at
// compile time"). Bitwise/shift/comparison families are not defined for
// vectors — the front end never emits them, and nothing in this engine's
// scope needs them.

func AddInt2(a, b cell.Int2) cell.Int2 { return cell.Int2{X: a.X + b.X, Y: a.Y + b.Y} }
func SubInt2(a, b cell.Int2) cell.Int2 { return cell.Int2{X: a.X - b.X, Y: a.Y - b.Y} }
func MulInt2(a, b cell.Int2) cell.Int2 { return cell.Int2{X: a.X * b.X, Y: a.Y * b.Y} }

func AddInt3(a, b cell.Int3) cell.Int3 {
	return cell.Int3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}
func SubInt3(a, b cell.Int3) cell.Int3 {
	return cell.Int3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}
func MulInt3(a, b cell.Int3) cell.Int3 {
	return cell.Int3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

func AddInt4(a, b cell.Int4) cell.Int4 {
	return cell.Int4{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z, W: a.W + b.W}
}
func SubInt4(a, b cell.Int4) cell.Int4 {
	return cell.Int4{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z, W: a.W - b.W}
}
func MulInt4(a, b cell.Int4) cell.Int4 {
	return cell.Int4{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z, W: a.W * b.W}
}

func ScaleInt2(a cell.Int2, s int32) cell.Int2 { return cell.Int2{X: a.X * s, Y: a.Y * s} }
func ScaleInt3(a cell.Int3, s int32) cell.Int3 {
	return cell.Int3{X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}
func ScaleInt4(a cell.Int4, s int32) cell.Int4 {
	return cell.Int4{X: a.X * s, Y: a.Y * s, Z: a.Z * s, W: a.W * s}
}

func AddFloat2(a, b cell.Float2) cell.Float2 { return cell.Float2{X: a.X + b.X, Y: a.Y + b.Y} }
func SubFloat2(a, b cell.Float2) cell.Float2 { return cell.Float2{X: a.X - b.X, Y: a.Y - b.Y} }
func MulFloat2(a, b cell.Float2) cell.Float2 { return cell.Float2{X: a.X * b.X, Y: a.Y * b.Y} }

func AddFloat3(a, b cell.Float3) cell.Float3 {
	return cell.Float3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}
func SubFloat3(a, b cell.Float3) cell.Float3 {
	return cell.Float3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}
func MulFloat3(a, b cell.Float3) cell.Float3 {
	return cell.Float3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

func AddFloat4(a, b cell.Float4) cell.Float4 {
	return cell.Float4{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z, W: a.W + b.W}
}
func SubFloat4(a, b cell.Float4) cell.Float4 {
	return cell.Float4{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z, W: a.W - b.W}
}
func MulFloat4(a, b cell.Float4) cell.Float4 {
	return cell.Float4{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z, W: a.W * b.W}
}

func ScaleFloat2(a cell.Float2, s float32) cell.Float2 { return cell.Float2{X: a.X * s, Y: a.Y * s} }
func ScaleFloat3(a cell.Float3, s float32) cell.Float3 {
	return cell.Float3{X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}
func ScaleFloat4(a cell.Float4, s float32) cell.Float4 {
	return cell.Float4{X: a.X * s, Y: a.Y * s, Z: a.Z * s, W: a.W * s}
}

func AddUInt2(a, b cell.UInt2) cell.UInt2 { return cell.UInt2{X: a.X + b.X, Y: a.Y + b.Y} }
func SubUInt2(a, b cell.UInt2) cell.UInt2 { return cell.UInt2{X: a.X - b.X, Y: a.Y - b.Y} }
func MulUInt2(a, b cell.UInt2) cell.UInt2 { return cell.UInt2{X: a.X * b.X, Y: a.Y * b.Y} }

func AddUInt3(a, b cell.UInt3) cell.UInt3 {
	return cell.UInt3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}
func SubUInt3(a, b cell.UInt3) cell.UInt3 {
	return cell.UInt3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}
func MulUInt3(a, b cell.UInt3) cell.UInt3 {
	return cell.UInt3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

func AddUInt4(a, b cell.UInt4) cell.UInt4 {
	return cell.UInt4{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z, W: a.W + b.W}
}
func SubUInt4(a, b cell.UInt4) cell.UInt4 {
	return cell.UInt4{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z, W: a.W - b.W}
}
func MulUInt4(a, b cell.UInt4) cell.UInt4 {
	return cell.UInt4{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z, W: a.W * b.W}
}
