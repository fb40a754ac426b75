package unreal

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeString(t *testing.T, order binary.ByteOrder, s string) []byte {
	t.Helper()
	e := NewEncoder(order)
	require.NoError(t, e.Str(s))
	return e.Bytes()
}

func TestStringEncode(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, []byte{0, 0, 0, 0}, encodeString(t, binary.LittleEndian, ""))
	})

	t.Run("SingleByte", func(t *testing.T) {
		assert.Equal(t, []byte{4, 0, 0, 0, 'A', 'B', 'C', 0}, encodeString(t, binary.LittleEndian, "ABC"))
	})

	t.Run("Latin1", func(t *testing.T) {
		assert.Equal(t, []byte{2, 0, 0, 0, 0xE9, 0}, encodeString(t, binary.LittleEndian, "é"))
	})

	t.Run("Cp1252Specials", func(t *testing.T) {
		assert.Equal(t, []byte{2, 0, 0, 0, 0x80, 0}, encodeString(t, binary.LittleEndian, "€"))
	})

	t.Run("Wide", func(t *testing.T) {
		b := encodeString(t, binary.LittleEndian, "Ωx")
		assert.Equal(t, []byte{0xFD, 0xFF, 0xFF, 0xFF, 0xA9, 0x03, 'x', 0, 0, 0}, b)
	})

	t.Run("WideBigEndian", func(t *testing.T) {
		b := encodeString(t, binary.BigEndian, "Ω")
		assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFE, 0x03, 0xA9, 0, 0}, b)
	})

	t.Run("SurrogatePair", func(t *testing.T) {
		b := encodeString(t, binary.LittleEndian, "😀")
		assert.Equal(t, []byte{0xFD, 0xFF, 0xFF, 0xFF, 0x3D, 0xD8, 0x00, 0xDE, 0, 0}, b)
	})

	t.Run("C1ControlIsWide", func(t *testing.T) {
		b := encodeString(t, binary.LittleEndian, "\u0080")
		assert.Equal(t, []byte{0xFE, 0xFF, 0xFF, 0xFF, 0x80, 0x00, 0, 0}, b)
		assert.False(t, IsSingleByte("\u0080"))
		assert.True(t, IsSingleByte("\u0081"))
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		e := NewEncoder(binary.LittleEndian)
		assert.ErrorIs(t, e.Str("\xff"), ErrEncoding)
	})
}

func TestStringRoundTrip(t *testing.T) {
	inputs := []string{"", "Shepard", "Jane Shepard", "Ça va", "€‚ƒ„…", "Ωmega", "日本語", "😀 ok", "\u0080"}
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		for _, s := range inputs {
			b := encodeString(t, order, s)
			d := NewDecoder(b)
			d.SetByteOrder(order)
			got, err := d.Str()
			require.NoError(t, err, "%q", s)
			assert.Equal(t, s, got)
			assert.Equal(t, b, encodeString(t, order, got), "re-encode of %q", s)
		}
	}
}

func TestStringDecodeIdempotent(t *testing.T) {
	t.Run("SingleBytePathStays", func(t *testing.T) {
		raw := []byte{6, 0, 0, 0, 0x80, 0x92, 0xE9, 0x81, 'a', 0}
		d := NewDecoder(raw)
		s, err := d.Str()
		require.NoError(t, err)
		assert.True(t, IsSingleByte(s))
		assert.Equal(t, raw, encodeString(t, binary.LittleEndian, s))
	})

	t.Run("UndefinedBytes", func(t *testing.T) {
		for _, c := range []byte{0x81, 0x8D, 0x8F, 0x90, 0x9D} {
			raw := []byte{3, 0, 0, 0, c, 'a', 0}
			s, err := NewDecoder(raw).Str()
			require.NoError(t, err)
			assert.Equal(t, string([]rune{rune(c), 'a'}), s)
			assert.Equal(t, raw, encodeString(t, binary.LittleEndian, s), "byte %#x", c)
		}
	})

	t.Run("EveryByte", func(t *testing.T) {
		raw := []byte{0, 1, 0, 0}
		for c := 1; c < 256; c++ {
			raw = append(raw, byte(c))
		}
		raw = append(raw, 0)
		s, err := NewDecoder(raw).Str()
		require.NoError(t, err)
		assert.NotContains(t, s, "\uFFFD")
		assert.Equal(t, raw, encodeString(t, binary.LittleEndian, s))
	})

	t.Run("WideAsciiIsNarrowedOnEncode", func(t *testing.T) {
		raw := []byte{0xFE, 0xFF, 0xFF, 0xFF, 'h', 0, 0, 0}
		d := NewDecoder(raw)
		s, err := d.Str()
		require.NoError(t, err)
		assert.Equal(t, "h", s)
		assert.Equal(t, []byte{2, 0, 0, 0, 'h', 0}, encodeString(t, binary.LittleEndian, s))
	})
}

func TestStringDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"Truncated", []byte{10, 0, 0, 0, 'a'}, ErrUnexpectedEOF},
		{"WideTruncated", []byte{0xF6, 0xFF, 0xFF, 0xFF, 'a', 0}, ErrUnexpectedEOF},
		{"MinLength", []byte{0x00, 0x00, 0x00, 0x80}, ErrUnexpectedEOF},
		{"Unterminated", []byte{2, 0, 0, 0, 'a', 'b'}, ErrEncoding},
		{"WideUnterminated", []byte{0xFF, 0xFF, 0xFF, 0xFF, 'a', 0}, ErrEncoding},
		{"LoneSurrogate", []byte{0xFE, 0xFF, 0xFF, 0xFF, 0x00, 0xD8, 0, 0}, ErrEncoding},
		{"LoneLowSurrogate", []byte{0xFE, 0xFF, 0xFF, 0xFF, 0x00, 0xDC, 0, 0}, ErrEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder(tt.data).Str()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStringScenarios(t *testing.T) {
	t.Run("SingleByteAB", func(t *testing.T) {
		raw := []byte{0x03, 0, 0, 0, 0x41, 0x42, 0x00}
		s, err := NewDecoder(raw).Str()
		require.NoError(t, err)
		assert.Equal(t, "AB", s)
		assert.Equal(t, raw, encodeString(t, binary.LittleEndian, s))
	})

	t.Run("WideABChangesPath", func(t *testing.T) {
		raw := []byte{0xFD, 0xFF, 0xFF, 0xFF, 0x41, 0x00, 0x42, 0x00, 0x00, 0x00}
		s, err := NewDecoder(raw).Str()
		require.NoError(t, err)
		assert.Equal(t, "AB", s)
		assert.NotEqual(t, raw, encodeString(t, binary.LittleEndian, s))
	})

	t.Run("WideOutsideCodepageIsStable", func(t *testing.T) {
		raw := []byte{0xFD, 0xFF, 0xFF, 0xFF, 0x41, 0x00, 0x00, 0x01, 0x00, 0x00}
		s, err := NewDecoder(raw).Str()
		require.NoError(t, err)
		assert.Equal(t, "AĀ", s)
		assert.Equal(t, raw, encodeString(t, binary.LittleEndian, s))
	})
}
