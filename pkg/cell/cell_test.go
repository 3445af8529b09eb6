package cell

import "testing"

func TestFromToInt32(t *testing.T) {
	c := FromInt32(-42)
	if got := ToInt32(c); got != -42 {
		t.Fatalf("ToInt32(FromInt32(-42)) = %d, want -42", got)
	}
}

func TestFromToFloat32(t *testing.T) {
	c := FromFloat32(3.5)
	if got := ToFloat32(c); got != 3.5 {
		t.Fatalf("ToFloat32(FromFloat32(3.5)) = %v, want 3.5", got)
	}
}

func TestFromToBool(t *testing.T) {
	if ToBool(FromBool(true)) != true {
		t.Fatal("ToBool(FromBool(true)) = false")
	}
	if ToBool(FromBool(false)) != false {
		t.Fatal("ToBool(FromBool(false)) = true")
	}
}

func TestZeroCellIsAllTypesZero(t *testing.T) {
	if ToInt32(Zero) != 0 {
		t.Fatal("zero cell decodes as non-zero int32")
	}
	if ToBool(Zero) != false {
		t.Fatal("zero cell decodes as non-zero bool")
	}
	if ToInt64(Zero) != 0 {
		t.Fatal("zero cell decodes as a non-zero int64 (pointer/string/block offset)")
	}
}

func TestCellWidthIs16Bytes(t *testing.T) {
	var c Cell
	if len(c) != Size {
		t.Fatalf("Cell width = %d, want %d", len(c), Size)
	}
}
