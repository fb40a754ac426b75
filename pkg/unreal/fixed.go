package unreal

import (
	"fmt"

	"github.com/go-restruct/restruct"
)

// DecodeFixed unpacks a fixed-size record of size bytes into a T whose
// fields are plain integers and byte arrays.
func DecodeFixed[T any](d *Decoder, size int) (T, error) {
	var v T
	b, err := d.read(size)
	if err != nil {
		return v, err
	}
	if err := restruct.Unpack(b, d.order, &v); err != nil {
		return v, fmt.Errorf("unpack %T: %w", v, err)
	}
	return v, nil
}

// EncodeFixed packs v in the session byte order.
func EncodeFixed[T any](e *Encoder, v T) error {
	b, err := restruct.Pack(e.order, &v)
	if err != nil {
		return fmt.Errorf("pack %T: %w", v, err)
	}
	e.Raw(b)
	return nil
}
