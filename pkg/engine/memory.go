package engine

import "unsafe"

// Raw, natural-width reads/writes into the region's byte buffer. Globals
// (in their descriptor) and call arguments (in the argument array) are
// boxed as full 16-byte Cells (C1), but a frame's local slots are packed
// at each value's natural width — this is what lets the typed fast paths
// skip the cast bridge the way spec.md §3 describes ("per-value-type
// specialisations exist so integer/float reads don't pay the cast
// bridge"): LocalGetNode.EvalInt32 reads 4 raw bytes directly, while the
// boxed Eval path additionally packs those 4 bytes into a 16-byte Cell.

func (c *Context) rawBool(off int64) bool {
	return c.reg.Bytes(int(off), 1)[0] != 0
}

func (c *Context) setRawBool(off int64, v bool) {
	b := byte(0)
	if v {
		b = 1
	}
	c.reg.Bytes(int(off), 1)[0] = b
}

func (c *Context) rawInt32(off int64) int32 {
	buf := c.reg.Bytes(int(off), 4)
	return *(*int32)(unsafe.Pointer(&buf[0]))
}

func (c *Context) setRawInt32(off int64, v int32) {
	buf := c.reg.Bytes(int(off), 4)
	*(*int32)(unsafe.Pointer(&buf[0])) = v
}

func (c *Context) rawUInt32(off int64) uint32 {
	buf := c.reg.Bytes(int(off), 4)
	return *(*uint32)(unsafe.Pointer(&buf[0]))
}

func (c *Context) setRawUInt32(off int64, v uint32) {
	buf := c.reg.Bytes(int(off), 4)
	*(*uint32)(unsafe.Pointer(&buf[0])) = v
}

func (c *Context) rawInt64(off int64) int64 {
	buf := c.reg.Bytes(int(off), 8)
	return *(*int64)(unsafe.Pointer(&buf[0]))
}

func (c *Context) setRawInt64(off int64, v int64) {
	buf := c.reg.Bytes(int(off), 8)
	*(*int64)(unsafe.Pointer(&buf[0])) = v
}

func (c *Context) rawUInt64(off int64) uint64 {
	buf := c.reg.Bytes(int(off), 8)
	return *(*uint64)(unsafe.Pointer(&buf[0]))
}

func (c *Context) setRawUInt64(off int64, v uint64) {
	buf := c.reg.Bytes(int(off), 8)
	*(*uint64)(unsafe.Pointer(&buf[0])) = v
}

func (c *Context) rawFloat32(off int64) float32 {
	buf := c.reg.Bytes(int(off), 4)
	return *(*float32)(unsafe.Pointer(&buf[0]))
}

func (c *Context) setRawFloat32(off int64, v float32) {
	buf := c.reg.Bytes(int(off), 4)
	*(*float32)(unsafe.Pointer(&buf[0])) = v
}

// Pointers, strings, and block handles are all represented in raw local
// storage as an 8-byte region offset (NullOffset when null) rather than a
// literal machine address — see the Context doc comment on NullOffset.

func (c *Context) rawPtr(off int64) int64 {
	return c.rawInt64(off)
}

func (c *Context) setRawPtr(off int64, v int64) {
	c.setRawInt64(off, v)
}

// zeroSpan clears n bytes starting at off, used by InitLocal (spec.md §3).
func (c *Context) zeroSpan(off int64, n int) {
	buf := c.reg.Bytes(int(off), n)
	for i := range buf {
		buf[i] = 0
	}
}
