package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/rand"
	"testing"

	"github.com/goopsie/trilogySaveTools/pkg/checksum"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

func testPayload(n int) []byte {
	rng := rand.New(rand.NewSource(int64(n)))
	data := make([]byte, n)
	for i := range data {
		// Mix of runs and noise so chunks compress unevenly.
		if i%64 < 40 {
			data[i] = byte(i / 64)
		} else {
			data[i] = byte(rng.Intn(256))
		}
	}
	return data
}

func TestChunked(t *testing.T) {
	sizes := []struct {
		name  string
		size  int
		block uint32
	}{
		{"Empty", 0, 1024},
		{"Small", 100, 1024},
		{"Partial", 3000, 1024},
		{"ExactMultiple", 4096, 1024},
		{"DefaultBlock", 300000, 0},
	}
	for _, tt := range sizes {
		t.Run(tt.name, func(t *testing.T) {
			payload := testPayload(tt.size)
			data, err := EncodeChunked(payload, WithBlockSize(tt.block))
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if !IsChunked(data) {
				t.Fatal("missing magic")
			}
			if err := VerifyChunked(data); err != nil {
				t.Fatalf("verify: %v", err)
			}

			frame, got, err := DecodeChunked(data)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Fatalf("payload mismatch: got %d bytes, want %d", len(got), len(payload))
			}
			if int(frame.Summary.UncompressedSize) != tt.size || int(frame.FooterSize) != tt.size {
				t.Errorf("sizes: summary %d, footer %d, want %d", frame.Summary.UncompressedSize, frame.FooterSize, tt.size)
			}
			var sum uint32
			for _, c := range frame.Chunks {
				sum += c.CompressedSize
			}
			if sum != frame.Summary.CompressedSize {
				t.Errorf("summary compressed %d, chunks total %d", frame.Summary.CompressedSize, sum)
			}

			again, err := EncodeChunked(got, frame.Options()...)
			if err != nil {
				t.Fatalf("re-encode: %v", err)
			}
			if !bytes.Equal(again, data) {
				t.Error("second encode differs from first")
			}
		})
	}
}

func TestChunkedSentinel(t *testing.T) {
	payload := testPayload(2500)
	data, err := EncodeChunked(payload, WithBlockSize(1000))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	frame, _, err := DecodeChunked(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(frame.Chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(frame.Chunks))
	}
	if frame.Chunks[2].UncompressedSize != 500 {
		t.Errorf("last chunk %d bytes, want 500", frame.Chunks[2].UncompressedSize)
	}
}

func TestChunkedCorruption(t *testing.T) {
	payload := testPayload(5000)
	data, err := EncodeChunked(payload, WithBlockSize(2048))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	t.Run("ChecksumDetectsPayloadFlip", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[len(bad)/2] ^= 0x01
		if err := VerifyChunked(bad); !errors.Is(err, checksum.ErrChecksumMismatch) {
			t.Errorf("expected checksum mismatch, got %v", err)
		}
	})

	t.Run("ChecksumCoversHeaders", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[5] ^= 0x01
		if err := VerifyChunked(bad); !errors.Is(err, checksum.ErrChecksumMismatch) {
			t.Errorf("expected checksum mismatch, got %v", err)
		}
	})

	t.Run("StoredChecksumIgnoredOnEncode", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		binary.LittleEndian.PutUint32(bad[len(bad)-FooterSize:], 0xDEADBEEF)
		_, got, err := DecodeChunked(bad)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		again, err := EncodeChunked(got, WithBlockSize(2048))
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if !bytes.Equal(again, data) {
			t.Error("re-encode did not restore the checksum")
		}
	})

	t.Run("DeclaredSizeMismatch", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		// First chunk header's uncompressed size.
		binary.LittleEndian.PutUint32(bad[20:], 2047)
		if _, _, err := DecodeChunked(bad); !errors.Is(err, ErrDecompression) {
			t.Errorf("expected decompression error, got %v", err)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		if _, _, err := DecodeChunked(data[:len(data)-20]); !errors.Is(err, unreal.ErrUnexpectedEOF) {
			t.Errorf("expected EOF, got %v", err)
		}
	})

	t.Run("HugeDeclaredSize", func(t *testing.T) {
		var hdr []byte
		for _, v := range []uint32{ChunkedMagic, 0x20000, 1, 0xFFFFFFF0, 1, 0xFFFFFFF0} {
			hdr = binary.LittleEndian.AppendUint32(hdr, v)
		}
		if _, _, err := DecodeChunked(hdr); !errors.Is(err, unreal.ErrUnexpectedEOF) {
			t.Errorf("expected EOF, got %v", err)
		}
	})

	t.Run("BadMagic", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[0] = 0
		if _, _, err := DecodeChunked(bad); !errors.Is(err, unreal.ErrVersionMismatch) {
			t.Errorf("expected version mismatch, got %v", err)
		}
	})
}

func TestZip(t *testing.T) {
	frame := &ZipFrame{Prefix: [8]byte{1, 2, 3, 4, 5, 6, 7, 8}, Gap: []byte("gap bytes")}
	entries := []ZipEntry{
		{Name: "player.sav", Data: testPayload(4000)},
		{Name: "state.sav", Data: testPayload(900)},
	}

	data, err := frame.Bytes(entries)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := binary.LittleEndian.Uint32(data[8:]); got != uint32(12+len(frame.Gap)) {
		t.Errorf("zip offset %d", got)
	}

	gotFrame, gotEntries, err := SplitZip(data)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if gotFrame.Prefix != frame.Prefix || !bytes.Equal(gotFrame.Gap, frame.Gap) {
		t.Errorf("frame mismatch: %+v", gotFrame)
	}
	if len(gotEntries) != 2 {
		t.Fatalf("got %d entries", len(gotEntries))
	}
	if _, ok := Lookup(gotEntries, "WorldSavePackage.sav"); ok {
		t.Error("absent entry fabricated")
	}
	for _, want := range entries {
		got, ok := Lookup(gotEntries, want.Name)
		if !ok || !bytes.Equal(got, want.Data) {
			t.Errorf("entry %s mismatch", want.Name)
		}
	}

	again, err := gotFrame.Bytes(gotEntries)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if !bytes.Equal(again, data) {
		t.Error("rebuild is not stable")
	}

	t.Run("NotAZip", func(t *testing.T) {
		bad := append([]byte(nil), data[:12+len(frame.Gap)]...)
		bad = append(bad, "not a zip archive at all"...)
		if _, _, err := SplitZip(bad); !errors.Is(err, ErrDecompression) {
			t.Errorf("expected decompression error, got %v", err)
		}
	})

	t.Run("OffsetPastEnd", func(t *testing.T) {
		bad := append([]byte(nil), data[:12]...)
		binary.LittleEndian.PutUint32(bad[8:], 1000)
		if _, _, err := SplitZip(bad); !errors.Is(err, unreal.ErrUnexpectedEOF) {
			t.Errorf("expected EOF, got %v", err)
		}
	})
}
