// Package backup keeps compressed copies of save files in a bbolt database.
// Each copy is stored once per distinct content; a snapshot entry records
// where and when it was taken.
package backup

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// blobMagic opens every packed save.
var blobMagic = [4]byte{'M', 'E', 'B', 'K'}

// BlobVersion is the blob layout written by Pack.
const BlobVersion uint16 = 1

// HeaderSize is the encoded size of a Header.
const HeaderSize = 4 + 2 + 2 + 8 + 8 + 8

// ErrBadHeader is returned when a blob does not start with a usable header.
var ErrBadHeader = errors.New("bad blob header")

// Header precedes the zstd frame of every stored blob.
type Header struct {
	Version  uint16
	Flags    uint16 // reserved, zero
	Size     uint64 // save bytes
	Packed   uint64 // zstd frame bytes
	Checksum uint64 // xxhash64 of the save
}

// NewHeader describes a save of size bytes packed into a frame of packed
// bytes.
func NewHeader(size, packed, checksum uint64) *Header {
	return &Header{Version: BlobVersion, Size: size, Packed: packed, Checksum: checksum}
}

// Validate rejects headers Unpack cannot act on.
func (h *Header) Validate() error {
	switch {
	case h.Version != BlobVersion:
		return fmt.Errorf("%w: version %d", ErrBadHeader, h.Version)
	case h.Flags != 0:
		return fmt.Errorf("%w: flags %#x", ErrBadHeader, h.Flags)
	case h.Size == 0 || h.Packed == 0:
		return fmt.Errorf("%w: empty payload", ErrBadHeader)
	}
	return nil
}

// AppendBinary appends the encoded header to b.
func (h *Header) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, blobMagic[:]...)
	b = binary.LittleEndian.AppendUint16(b, h.Version)
	b = binary.LittleEndian.AppendUint16(b, h.Flags)
	b = binary.LittleEndian.AppendUint64(b, h.Size)
	b = binary.LittleEndian.AppendUint64(b, h.Packed)
	b = binary.LittleEndian.AppendUint64(b, h.Checksum)
	return b, nil
}

// MarshalBinary returns the HeaderSize encoding of h.
func (h *Header) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, HeaderSize))
}

// UnmarshalBinary reads the header from the front of data and validates it.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d bytes, need %d", ErrBadHeader, len(data), HeaderSize)
	}
	if [4]byte(data[:4]) != blobMagic {
		return fmt.Errorf("%w: magic %x", ErrBadHeader, data[:4])
	}
	le := binary.LittleEndian
	*h = Header{
		Version:  le.Uint16(data[4:]),
		Flags:    le.Uint16(data[6:]),
		Size:     le.Uint64(data[8:]),
		Packed:   le.Uint64(data[16:]),
		Checksum: le.Uint64(data[24:]),
	}
	return h.Validate()
}
