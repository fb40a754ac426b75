// Package container implements the two framing layers that wrap save
// payloads: the zip archive used by ME1 and the chunked zlib stream used by
// ME1 Legendary.
package container

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/goopsie/trilogySaveTools/pkg/checksum"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

// ErrDecompression is returned when a compressed payload does not inflate
// to its declared size.
var ErrDecompression = errors.New("decompression failed")

// ChunkedMagic identifies a chunked zlib stream (C1 83 2A 9E on disk).
const ChunkedMagic uint32 = 0x9E2A83C1

// maxPrealloc caps the payload buffer reserved from header sizes.
const maxPrealloc = 16 << 20

// DefaultBlockSize is the uncompressed size of every chunk but the last.
const DefaultBlockSize uint32 = 0x20000

// FooterSize is the checksum, compression flag and uncompressed size that
// close a chunked stream.
const FooterSize = 12

// ChunkHeader is a (compressed, uncompressed) size pair.
type ChunkHeader struct {
	CompressedSize   uint32
	UncompressedSize uint32
}

// ChunkedFrame describes a chunked stream as read from disk. Only Magic,
// BlockSize and CompressionFlag are carried into the next encode; the
// sizes and checksum are recomputed.
type ChunkedFrame struct {
	Magic           uint32
	BlockSize       uint32
	Summary         ChunkHeader
	Chunks          []ChunkHeader
	Checksum        uint32
	CompressionFlag uint32
	FooterSize      uint32
}

// IsChunked reports whether data starts with the chunked stream magic.
func IsChunked(data []byte) bool {
	return len(data) >= 4 && uint32(data[0])|uint32(data[1])<<8|uint32(data[2])<<16|uint32(data[3])<<24 == ChunkedMagic
}

// DecodeChunked parses a chunked stream and returns its frame and the
// concatenated uncompressed payload.
func DecodeChunked(data []byte) (*ChunkedFrame, []byte, error) {
	d := unreal.NewDecoder(data)
	f := &ChunkedFrame{}
	var err error

	if f.Magic, err = d.U32(); err != nil {
		return nil, nil, fmt.Errorf("read magic: %w", err)
	}
	if f.Magic != ChunkedMagic {
		return nil, nil, d.Errorf(unreal.ErrVersionMismatch, "chunked magic %08x", f.Magic)
	}
	if f.BlockSize, err = d.U32(); err != nil {
		return nil, nil, fmt.Errorf("read block size: %w", err)
	}
	if f.BlockSize == 0 {
		return nil, nil, d.Errorf(ErrDecompression, "zero block size")
	}
	if f.Summary, err = readChunkHeader(d); err != nil {
		return nil, nil, fmt.Errorf("read summary: %w", err)
	}

	// Chunk headers run until one is shorter than a block. A payload that is
	// an exact multiple of the block size has no short chunk, so the
	// declared total also ends the list.
	var total uint64
	for {
		h, err := readChunkHeader(d)
		if err != nil {
			return nil, nil, fmt.Errorf("read chunk header %d: %w", len(f.Chunks), err)
		}
		f.Chunks = append(f.Chunks, h)
		total += uint64(h.UncompressedSize)
		if h.UncompressedSize < f.BlockSize || total >= uint64(f.Summary.UncompressedSize) {
			break
		}
	}
	if total != uint64(f.Summary.UncompressedSize) {
		return nil, nil, d.Errorf(ErrDecompression, "chunks hold %d bytes, header declares %d", total, f.Summary.UncompressedSize)
	}

	// The declared size is untrusted until the chunks inflate to it.
	payload := make([]byte, 0, min(total, maxPrealloc))
	for i, h := range f.Chunks {
		compressed, err := d.Blob(h.CompressedSize)
		if err != nil {
			return nil, nil, fmt.Errorf("read chunk %d: %w", i, err)
		}
		payload, err = inflate(payload, compressed, h.UncompressedSize)
		if err != nil {
			return nil, nil, fmt.Errorf("chunk %d: %w", i, err)
		}
	}
	glog.V(2).Infof("chunked stream: %d chunks, %d bytes", len(f.Chunks), len(payload))

	if f.Checksum, err = d.U32(); err != nil {
		return nil, nil, fmt.Errorf("read checksum: %w", err)
	}
	if f.CompressionFlag, err = d.U32(); err != nil {
		return nil, nil, fmt.Errorf("read compression flag: %w", err)
	}
	if f.FooterSize, err = d.U32(); err != nil {
		return nil, nil, fmt.Errorf("read footer size: %w", err)
	}
	if rest := d.Cursor().Remaining(); rest != 0 {
		return nil, nil, d.Errorf(unreal.ErrTrailingData, "%d bytes after footer", rest)
	}
	return f, payload, nil
}

func readChunkHeader(d *unreal.Decoder) (h ChunkHeader, err error) {
	if h.CompressedSize, err = d.U32(); err != nil {
		return h, err
	}
	h.UncompressedSize, err = d.U32()
	return h, err
}

func inflate(dst, compressed []byte, size uint32) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	defer r.Close()

	start := len(dst)
	buf := bytes.NewBuffer(dst)
	n, err := io.Copy(buf, io.LimitReader(r, int64(size)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	if n != int64(size) {
		return nil, fmt.Errorf("%w: inflated %d bytes, declared %d", ErrDecompression, n, size)
	}
	return buf.Bytes()[:start+int(n)], nil
}

// ChunkedOption configures EncodeChunked.
type ChunkedOption func(*chunkedConfig)

type chunkedConfig struct {
	blockSize       uint32
	compressionFlag uint32
	level           int
}

// WithBlockSize sets the chunk size. Zero keeps the default.
func WithBlockSize(n uint32) ChunkedOption {
	return func(c *chunkedConfig) {
		if n != 0 {
			c.blockSize = n
		}
	}
}

// WithCompressionFlag sets the footer's compression flag.
func WithCompressionFlag(flag uint32) ChunkedOption {
	return func(c *chunkedConfig) {
		c.compressionFlag = flag
	}
}

// WithCompressionLevel sets the zlib level.
func WithCompressionLevel(level int) ChunkedOption {
	return func(c *chunkedConfig) {
		c.level = level
	}
}

// Options returns the options that reproduce f's layout.
func (f *ChunkedFrame) Options() []ChunkedOption {
	return []ChunkedOption{WithBlockSize(f.BlockSize), WithCompressionFlag(f.CompressionFlag)}
}

// EncodeChunked compresses payload into a chunked stream. Every header,
// the footer size and the embedded checksum are computed from payload.
func EncodeChunked(payload []byte, opts ...ChunkedOption) ([]byte, error) {
	cfg := chunkedConfig{
		blockSize:       DefaultBlockSize,
		compressionFlag: 1,
		level:           zlib.DefaultCompression,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var pieces [][]byte
	for off := 0; off < len(payload); off += int(cfg.blockSize) {
		pieces = append(pieces, payload[off:min(off+int(cfg.blockSize), len(payload))])
	}
	if len(pieces) == 0 {
		pieces = [][]byte{{}}
	}

	chunks := make([]ChunkHeader, len(pieces))
	compressed := make([][]byte, len(pieces))
	var totalCompressed uint32
	for i, p := range pieces {
		var buf bytes.Buffer
		w, err := zlib.NewWriterLevel(&buf, cfg.level)
		if err != nil {
			return nil, fmt.Errorf("create zlib writer: %w", err)
		}
		if _, err := w.Write(p); err != nil {
			return nil, fmt.Errorf("compress chunk %d: %w", i, err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("compress chunk %d: %w", i, err)
		}
		compressed[i] = buf.Bytes()
		chunks[i] = ChunkHeader{CompressedSize: uint32(buf.Len()), UncompressedSize: uint32(len(p))}
		totalCompressed += uint32(buf.Len())
	}
	glog.V(2).Infof("chunked stream: encoded %d chunks, %d -> %d bytes", len(chunks), len(payload), totalCompressed)

	e := unreal.NewEncoder(nil)
	e.U32(ChunkedMagic)
	e.U32(cfg.blockSize)
	e.U32(totalCompressed)
	e.U32(uint32(len(payload)))
	for _, h := range chunks {
		e.U32(h.CompressedSize)
		e.U32(h.UncompressedSize)
	}
	for _, c := range compressed {
		e.Raw(c)
	}
	e.U32(0)
	e.U32(cfg.compressionFlag)
	e.U32(uint32(len(payload)))

	out := e.Bytes()
	if err := checksum.Embed(out, FooterSize, checksum.BZIP2(out[:len(out)-FooterSize])); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyChunked checks the checksum embedded in a chunked stream.
func VerifyChunked(data []byte) error {
	return checksum.VerifyEmbedded(data, FooterSize, checksum.BZIP2)
}
