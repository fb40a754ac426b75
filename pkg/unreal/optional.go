package unreal

// DecodeOptional implements the two-step optional field: the containing
// struct has just decoded a 32-bit presence flag, so the decoder steps back
// over it, rereads it, and decodes the payload only when it is set.
func DecodeOptional[T any, PT Pointer[T]](d *Decoder) (*T, error) {
	d.cur.Rewind(4)
	present, err := d.Bool()
	if err != nil || !present {
		return nil, err
	}
	v, err := DecodeStruct[T, PT](d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// EncodeOptional mirrors DecodeOptional: the payload is written only when
// the last four bytes already emitted, the presence flag, are nonzero.
func EncodeOptional[T any, PT Pointer[T]](e *Encoder, v *T) error {
	flag, ok := e.LastU32()
	if !ok {
		return dataErrf(nil, e.Len(), ErrMissingPayload, "optional field has no preceding flag")
	}
	if flag == 0 {
		return nil
	}
	if v == nil {
		return dataErrf(nil, e.Len(), ErrMissingPayload, "flag is set")
	}
	return PT(v).MarshalUnreal(e)
}
