package cell

import "unsafe"

// Int2/Int3/Int4, UInt2/UInt3/UInt4 and Float2/Float3/Float4 are the
// fixed-lane vector logical types spec.md §3 requires the cast bridge to
// support. A 4-lane int/uint vector exactly fills a Cell; 2 and 3-lane
// vectors leave the remaining bytes zeroed, matching "unused lanes are
// zero" (spec.md §3).

type Int2 struct{ X, Y int32 }
type Int3 struct{ X, Y, Z int32 }
type Int4 struct{ X, Y, Z, W int32 }

type UInt2 struct{ X, Y uint32 }
type UInt3 struct{ X, Y, Z uint32 }
type UInt4 struct{ X, Y, Z, W uint32 }

type Float2 struct{ X, Y float32 }
type Float3 struct{ X, Y, Z float32 }
type Float4 struct{ X, Y, Z, W float32 }

func FromInt2(v Int2) Cell {
	var c Cell
	*(*Int2)(unsafe.Pointer(&c[0])) = v
	return c
}
func ToInt2(c Cell) Int2 { return *(*Int2)(unsafe.Pointer(&c[0])) }

func FromInt3(v Int3) Cell {
	var c Cell
	*(*Int3)(unsafe.Pointer(&c[0])) = v
	return c
}
func ToInt3(c Cell) Int3 { return *(*Int3)(unsafe.Pointer(&c[0])) }

func FromInt4(v Int4) Cell {
	var c Cell
	*(*Int4)(unsafe.Pointer(&c[0])) = v
	return c
}
func ToInt4(c Cell) Int4 { return *(*Int4)(unsafe.Pointer(&c[0])) }

func FromUInt2(v UInt2) Cell {
	var c Cell
	*(*UInt2)(unsafe.Pointer(&c[0])) = v
	return c
}
func ToUInt2(c Cell) UInt2 { return *(*UInt2)(unsafe.Pointer(&c[0])) }

func FromUInt3(v UInt3) Cell {
	var c Cell
	*(*UInt3)(unsafe.Pointer(&c[0])) = v
	return c
}
func ToUInt3(c Cell) UInt3 { return *(*UInt3)(unsafe.Pointer(&c[0])) }

func FromUInt4(v UInt4) Cell {
	var c Cell
	*(*UInt4)(unsafe.Pointer(&c[0])) = v
	return c
}
func ToUInt4(c Cell) UInt4 { return *(*UInt4)(unsafe.Pointer(&c[0])) }

func FromFloat2(v Float2) Cell {
	var c Cell
	*(*Float2)(unsafe.Pointer(&c[0])) = v
	return c
}
func ToFloat2(c Cell) Float2 { return *(*Float2)(unsafe.Pointer(&c[0])) }

func FromFloat3(v Float3) Cell {
	var c Cell
	*(*Float3)(unsafe.Pointer(&c[0])) = v
	return c
}
func ToFloat3(c Cell) Float3 { return *(*Float3)(unsafe.Pointer(&c[0])) }

func FromFloat4(v Float4) Cell {
	var c Cell
	*(*Float4)(unsafe.Pointer(&c[0])) = v
	return c
}
func ToFloat4(c Cell) Float4 { return *(*Float4)(unsafe.Pointer(&c[0])) }
