package unreal

import (
	"encoding/binary"
	"math"
)

// Encoder appends primitive values to a growing buffer using a session
// byte order.
type Encoder struct {
	buf   []byte
	order binary.ByteOrder
}

// NewEncoder returns an empty encoder. A nil order means little endian.
func NewEncoder(order binary.ByteOrder) *Encoder {
	if order == nil {
		order = binary.LittleEndian
	}
	return &Encoder{buf: make([]byte, 0, 4096), order: order}
}

func (e *Encoder) ByteOrder() binary.ByteOrder { return e.order }

func (e *Encoder) BigEndian() bool { return e.order == binary.BigEndian }

// Bytes returns the encoded output. The slice aliases the encoder buffer.
func (e *Encoder) Bytes() []byte { return e.buf }

// Len is the number of bytes written so far.
func (e *Encoder) Len() int { return len(e.buf) }

// Raw appends b unchanged.
func (e *Encoder) Raw(b []byte) { e.buf = append(e.buf, b...) }

// Fixed-width integers and floats are written in the session byte order.

func (e *Encoder) U8(v uint8) { e.buf = append(e.buf, v) }
func (e *Encoder) I8(v int8)  { e.U8(uint8(v)) }

func (e *Encoder) U16(v uint16) {
	var b [2]byte
	e.order.PutUint16(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) I16(v int16) { e.U16(uint16(v)) }

func (e *Encoder) U32(v uint32) {
	var b [4]byte
	e.order.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) I32(v int32) { e.U32(uint32(v)) }

func (e *Encoder) U64(v uint64) {
	var b [8]byte
	e.order.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) I64(v int64) { e.U64(uint64(v)) }

func (e *Encoder) F32(v float32) { e.U32(math.Float32bits(v)) }

// Bool encodes false as 0 and true as 1.
func (e *Encoder) Bool(v bool) {
	if v {
		e.U32(1)
		return
	}
	e.U32(0)
}

// PutLen writes a u32 element count.
func (e *Encoder) PutLen(n int) { e.U32(uint32(n)) }

// LastU32 returns the last four bytes written, read in the session order.
func (e *Encoder) LastU32() (uint32, bool) {
	if len(e.buf) < 4 {
		return 0, false
	}
	return e.order.Uint32(e.buf[len(e.buf)-4:]), true
}
