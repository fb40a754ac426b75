package unreal

// Dummy is an opaque run of bytes carried through unchanged.
type Dummy []byte

// ReadDummy reads n opaque bytes.
func (d *Decoder) ReadDummy(n int) (Dummy, error) {
	return d.Bytes(n)
}

// Blob reads a run of opaque bytes whose length comes from another field.
func (d *Decoder) Blob(n uint32) ([]byte, error) {
	if uint64(n) > uint64(d.cur.Remaining()) {
		return nil, d.Errorf(ErrUnexpectedEOF, "blob of %d bytes", n)
	}
	return d.Bytes(int(n))
}

// Put writes the bytes back. The caller is responsible for the length, so
// a Dummy of the wrong size corrupts the layout that follows it.
func (b Dummy) Put(e *Encoder) {
	e.Raw(b)
}
