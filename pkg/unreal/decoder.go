// Package unreal implements the binary value encoding shared by the Mass
// Effect trilogy save formats: fixed-width little or big endian scalars,
// length-prefixed strings, sequences and maps, and the struct layouts built
// from them.
package unreal

import (
	"encoding/binary"
	"math"
)

// Decoder reads primitive values from a Cursor using a session byte order.
type Decoder struct {
	cur   *Cursor
	order binary.ByteOrder
}

// NewDecoder returns a little endian decoder over buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{cur: NewCursor(buf), order: binary.LittleEndian}
}

// Cursor exposes the underlying position for version guards that rewind.
func (d *Decoder) Cursor() *Cursor { return d.cur }

func (d *Decoder) ByteOrder() binary.ByteOrder { return d.order }

// SetByteOrder switches the session byte order. Version guards call it once
// after identifying the platform.
func (d *Decoder) SetByteOrder(order binary.ByteOrder) { d.order = order }

// BigEndian reports whether the session decodes big endian values.
func (d *Decoder) BigEndian() bool { return d.order == binary.BigEndian }

// Errorf returns a *DataError positioned at the current offset.
func (d *Decoder) Errorf(err error, format string, args ...any) error {
	return dataErrf(d.cur.buf, d.cur.pos, err, format, args...)
}

func (d *Decoder) read(n int) ([]byte, error) {
	return d.cur.Read(n)
}

// Bytes returns a copy of the next n bytes.
func (d *Decoder) Bytes(n int) ([]byte, error) {
	b, err := d.read(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// The fixed-width readers below return ErrUnexpectedEOF as a *DataError
// when the buffer runs out.

func (d *Decoder) U8() (uint8, error) {
	b, err := d.read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) I8() (int8, error) {
	v, err := d.U8()
	return int8(v), err
}

func (d *Decoder) U16() (uint16, error) {
	b, err := d.read(2)
	if err != nil {
		return 0, err
	}
	return d.order.Uint16(b), nil
}

func (d *Decoder) I16() (int16, error) {
	v, err := d.U16()
	return int16(v), err
}

func (d *Decoder) U32() (uint32, error) {
	b, err := d.read(4)
	if err != nil {
		return 0, err
	}
	return d.order.Uint32(b), nil
}

func (d *Decoder) I32() (int32, error) {
	v, err := d.U32()
	return int32(v), err
}

func (d *Decoder) U64() (uint64, error) {
	b, err := d.read(8)
	if err != nil {
		return 0, err
	}
	return d.order.Uint64(b), nil
}

func (d *Decoder) I64() (int64, error) {
	v, err := d.U64()
	return int64(v), err
}

func (d *Decoder) F32() (float32, error) {
	v, err := d.U32()
	return math.Float32frombits(v), err
}

// Bool decodes a 32-bit boolean. Any nonzero value is true.
func (d *Decoder) Bool() (bool, error) {
	v, err := d.U32()
	return v != 0, err
}

// Len decodes a u32 element count and rejects counts that cannot fit in
// the remaining input given a minimum element size.
func (d *Decoder) Len(minElem int) (int, error) {
	off := d.cur.pos
	n, err := d.U32()
	if err != nil {
		return 0, err
	}
	if minElem > 0 && uint64(n)*uint64(minElem) > uint64(d.cur.Remaining()) {
		return 0, dataErrf(d.cur.buf, off, ErrUnexpectedEOF, "length %d exceeds remaining input", n)
	}
	return int(n), nil
}

// Version reads a leading i32 version marker. The marker is accepted in
// little endian; when allowBigEndian is set it is also accepted byte
// swapped, which switches the session to big endian.
func (d *Decoder) Version(want int32, allowBigEndian bool) (int32, error) {
	off := d.cur.pos
	b, err := d.read(4)
	if err != nil {
		return 0, err
	}
	switch {
	case int32(binary.LittleEndian.Uint32(b)) == want:
		d.order = binary.LittleEndian
	case allowBigEndian && int32(binary.BigEndian.Uint32(b)) == want:
		d.order = binary.BigEndian
	default:
		return 0, dataErrf(d.cur.buf, off, ErrVersionMismatch, "want version %d, got %d", want, int32(binary.LittleEndian.Uint32(b)))
	}
	return want, nil
}
