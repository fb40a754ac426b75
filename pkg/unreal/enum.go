package unreal

import "fmt"

// DecodeEnum8 decodes a u8 discriminant and checks it against the number of
// variants.
func DecodeEnum8[T ~uint8](d *Decoder, variants int) (T, error) {
	off := d.cur.pos
	v, err := d.U8()
	if err != nil {
		return 0, err
	}
	if int(v) >= variants {
		return 0, dataErrf(d.cur.buf, off, ErrInvalidDiscriminant, "%T discriminant %d of %d", T(0), v, variants)
	}
	return T(v), nil
}

// DecodeEnum32 is DecodeEnum8 for u32 discriminants.
func DecodeEnum32[T ~uint32](d *Decoder, variants int) (T, error) {
	off := d.cur.pos
	v, err := d.U32()
	if err != nil {
		return 0, err
	}
	if uint64(v) >= uint64(variants) {
		return 0, dataErrf(d.cur.buf, off, ErrInvalidDiscriminant, "%T discriminant %d of %d", T(0), v, variants)
	}
	return T(v), nil
}

// Variants maps a discriminant to the decoder of the fields that follow
// it, for enums whose variants carry data. The discriminant is a u32 tag
// for plain enums or a name for records dispatched on their class.
type Variants[K comparable, V any] map[K]func(*Decoder) (V, error)

// DecodeTagged decodes the fields of the variant selected by a tag the
// caller has already read.
func (vs Variants[K, V]) DecodeTagged(d *Decoder, off int, tag K) (V, error) {
	var zero V
	dec, ok := vs[tag]
	if !ok {
		return zero, dataErrf(d.cur.buf, off, ErrInvalidDiscriminant, "variant %v", tag)
	}
	v, err := dec(d)
	if err != nil {
		return zero, fmt.Errorf("variant %v: %w", tag, err)
	}
	return v, nil
}

// DecodeVariant reads a u32 discriminant and the variant's fields.
func DecodeVariant[V any](d *Decoder, vs Variants[uint32, V]) (uint32, V, error) {
	off := d.cur.pos
	tag, err := d.U32()
	if err != nil {
		var zero V
		return 0, zero, err
	}
	v, err := vs.DecodeTagged(d, off, tag)
	return tag, v, err
}
