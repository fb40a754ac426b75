package backup

import (
	"errors"
	"fmt"

	"github.com/DataDog/zstd"
	"github.com/cespare/xxhash/v2"
)

const (
	// DefaultCompressionLevel is the default compression level for stored saves.
	DefaultCompressionLevel = zstd.DefaultCompression
)

// ErrCorrupt is returned when a stored blob does not decode to the save it
// was made from.
var ErrCorrupt = errors.New("corrupt backup blob")

// Sum returns the content id of a save.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Pack compresses data behind a blob header.
func Pack(data []byte, level int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("pack: empty save")
	}
	compressed, err := zstd.CompressLevel(nil, data, level)
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	buf, err := NewHeader(uint64(len(data)), uint64(len(compressed)), Sum(data)).AppendBinary(make([]byte, 0, HeaderSize+len(compressed)))
	if err != nil {
		return nil, err
	}
	return append(buf, compressed...), nil
}

// Unpack reverses Pack and verifies size and checksum.
func Unpack(blob []byte) ([]byte, error) {
	return unpack(nil, blob)
}

func unpack(ctx zstd.Ctx, blob []byte) ([]byte, error) {
	var h Header
	if err := h.UnmarshalBinary(blob); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	payload := blob[HeaderSize:]
	if uint64(len(payload)) != h.Packed {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrCorrupt, len(payload), h.Packed)
	}
	dst := make([]byte, h.Size)
	var (
		out []byte
		err error
	)
	if ctx != nil {
		out, err = ctx.Decompress(dst, payload)
	} else {
		out, err = zstd.Decompress(dst, payload)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if uint64(len(out)) != h.Size {
		return nil, fmt.Errorf("%w: inflated to %d bytes, want %d", ErrCorrupt, len(out), h.Size)
	}
	if Sum(out) != h.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	return out, nil
}
