package unreal

import (
	"encoding/binary"
	"fmt"
)

// Unmarshaler is implemented by schema types that decode their own field
// sequence.
type Unmarshaler interface {
	UnmarshalUnreal(d *Decoder) error
}

// Marshaler is implemented by schema types that encode their own field
// sequence.
type Marshaler interface {
	MarshalUnreal(e *Encoder) error
}

// Pointer constrains PT to a pointer to T that implements both directions.
type Pointer[T any] interface {
	*T
	Unmarshaler
	Marshaler
}

// Unmarshal decodes v from data using the given byte order. Unconsumed
// input is an error.
func Unmarshal(data []byte, order binary.ByteOrder, v Unmarshaler) error {
	rest, err := UnmarshalOrder(data, order, v)
	if err != nil {
		return err
	}
	if rest != 0 {
		return dataErrf(data, len(data)-rest, ErrTrailingData, "%d bytes left after decode", rest)
	}
	return nil
}

// UnmarshalOrder decodes v and reports how many bytes were left over.
func UnmarshalOrder(data []byte, order binary.ByteOrder, v Unmarshaler) (int, error) {
	d := NewDecoder(data)
	if order != nil {
		d.SetByteOrder(order)
	}
	if err := v.UnmarshalUnreal(d); err != nil {
		return 0, err
	}
	return d.cur.Remaining(), nil
}

// Marshal encodes v with the given byte order.
func Marshal(order binary.ByteOrder, v Marshaler) ([]byte, error) {
	e := NewEncoder(order)
	if err := v.MarshalUnreal(e); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// DecodeStruct decodes one value of a schema type.
func DecodeStruct[T any, PT Pointer[T]](d *Decoder) (T, error) {
	var v T
	err := PT(&v).UnmarshalUnreal(d)
	return v, err
}

// EncodeStruct encodes one value of a schema type.
func EncodeStruct[T any, PT Pointer[T]](e *Encoder, v T) error {
	return PT(&v).MarshalUnreal(e)
}

// DecodeSeq decodes a u32 length prefix followed by that many elements.
func DecodeSeq[T any](d *Decoder, minElem int, dec func(*Decoder) (T, error)) ([]T, error) {
	n, err := d.Len(minElem)
	if err != nil {
		return nil, err
	}
	s := make([]T, 0, min(n, d.cur.Remaining()))
	for i := 0; i < n; i++ {
		v, err := dec(d)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		s = append(s, v)
	}
	return s, nil
}

// EncodeSeq writes len(s) followed by each element.
func EncodeSeq[T any](e *Encoder, s []T, enc func(*Encoder, T) error) error {
	e.PutLen(len(s))
	for i, v := range s {
		if err := enc(e, v); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// DecodeSlice decodes a sequence of schema values.
func DecodeSlice[T any, PT Pointer[T]](d *Decoder) ([]T, error) {
	return DecodeSeq(d, 1, DecodeStruct[T, PT])
}

// EncodeSlice encodes a sequence of schema values.
func EncodeSlice[T any, PT Pointer[T]](e *Encoder, s []T) error {
	e.PutLen(len(s))
	for i := range s {
		if err := PT(&s[i]).MarshalUnreal(e); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// DecodeI32s, DecodeU32s, DecodeF32s and DecodeStrings read a u32 count
// followed by that many elements.
func DecodeI32s(d *Decoder) ([]int32, error) {
	return DecodeSeq(d, 4, (*Decoder).I32)
}

func DecodeU32s(d *Decoder) ([]uint32, error) {
	return DecodeSeq(d, 4, (*Decoder).U32)
}

func DecodeF32s(d *Decoder) ([]float32, error) {
	return DecodeSeq(d, 4, (*Decoder).F32)
}

func DecodeStrings(d *Decoder) ([]string, error) {
	return DecodeSeq(d, 4, (*Decoder).Str)
}

// EncodeI32s writes the count and elements DecodeI32s reads.
func EncodeI32s(e *Encoder, s []int32) {
	e.PutLen(len(s))
	for _, v := range s {
		e.I32(v)
	}
}

// EncodeU32s is the u32 form of EncodeI32s.
func EncodeU32s(e *Encoder, s []uint32) {
	e.PutLen(len(s))
	for _, v := range s {
		e.U32(v)
	}
}

// EncodeF32s is the f32 form of EncodeI32s.
func EncodeF32s(e *Encoder, s []float32) {
	e.PutLen(len(s))
	for _, v := range s {
		e.F32(v)
	}
}

// EncodeStrings fails on the first string Str cannot encode.
func EncodeStrings(e *Encoder, s []string) error {
	return EncodeSeq(e, s, (*Encoder).Str)
}

// PutI32 adapts Encoder.I32 to the element function shape used by
// EncodeSeq and EncodeMap.
func PutI32(e *Encoder, v int32) error {
	e.I32(v)
	return nil
}

// PutU32, PutF32 and PutBool are the matching adapters for their Encoder
// methods.
func PutU32(e *Encoder, v uint32) error {
	e.U32(v)
	return nil
}

func PutF32(e *Encoder, v float32) error {
	e.F32(v)
	return nil
}

func PutBool(e *Encoder, v bool) error {
	e.Bool(v)
	return nil
}
