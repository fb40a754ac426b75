package unreal

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func utf16Encoding(order binary.ByteOrder) encoding.Encoding {
	if order == binary.BigEndian {
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	}
	return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
}

// Str decodes a length-prefixed string. A negative length counts UTF-16
// code units, a positive one counts Windows-1252 bytes; both include the
// terminating NUL.
func (d *Decoder) Str() (string, error) {
	off := d.cur.pos
	n, err := d.I32()
	if err != nil {
		return "", err
	}
	switch {
	case n == 0:
		return "", nil
	case n < 0:
		units := -int64(n)
		if units > int64(d.cur.Remaining()/2) {
			return "", dataErrf(d.cur.buf, off, ErrUnexpectedEOF, "utf-16 string of %d units", units)
		}
		b, _ := d.read(int(units) * 2)
		return decodeUTF16(b, d.order, d.cur.buf, off)
	default:
		b, err := d.read(int(n))
		if err != nil {
			return "", err
		}
		if b[len(b)-1] != 0 {
			return "", dataErrf(d.cur.buf, off, ErrEncoding, "unterminated string")
		}
		return decodeCP1252(b[:len(b)-1]), nil
	}
}

// The five bytes Windows-1252 leaves undefined decode to the C1 control
// with the same value, as browsers do, so every byte string round trips.
func cp1252Undefined(b byte) bool {
	return b == 0x81 || b == 0x8D || b == 0x8F || b == 0x90 || b == 0x9D
}

func decodeCP1252(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		if cp1252Undefined(c) {
			sb.WriteRune(rune(c))
			continue
		}
		sb.WriteRune(charmap.Windows1252.DecodeByte(c))
	}
	return sb.String()
}

// encodeCP1252 is the inverse of decodeCP1252. It reports false when a
// rune has no single-byte form.
func encodeCP1252(s string) ([]byte, bool) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r < 0x100 && cp1252Undefined(byte(r)) {
			out = append(out, byte(r))
			continue
		}
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			return nil, false
		}
		out = append(out, c)
	}
	return out, true
}

func decodeUTF16(b []byte, order binary.ByteOrder, data []byte, off int) (string, error) {
	units := len(b) / 2
	if order.Uint16(b[len(b)-2:]) != 0 {
		return "", dataErrf(data, off, ErrEncoding, "unterminated string")
	}
	// x/text substitutes lone surrogates, so they are rejected up front.
	for i := 0; i < units-1; i++ {
		u := order.Uint16(b[2*i:])
		switch {
		case u >= 0xD800 && u < 0xDC00:
			if i+1 >= units-1 {
				return "", dataErrf(data, off, ErrEncoding, "unpaired surrogate")
			}
			next := order.Uint16(b[2*i+2:])
			if next < 0xDC00 || next >= 0xE000 {
				return "", dataErrf(data, off, ErrEncoding, "unpaired surrogate")
			}
			i++
		case u >= 0xDC00 && u < 0xE000:
			return "", dataErrf(data, off, ErrEncoding, "unpaired surrogate")
		}
	}
	s, err := utf16Encoding(order).NewDecoder().Bytes(b[:len(b)-2])
	if err != nil {
		return "", dataErrf(data, off, ErrEncoding, "utf-16: %v", err)
	}
	return string(s), nil
}

// Str encodes s. Strings representable in Windows-1252 use the single byte
// form; anything else is written as UTF-16 in the session byte order.
// C1 controls other than the five undefined bytes take the UTF-16 form.
func (e *Encoder) Str(s string) error {
	if s == "" {
		e.I32(0)
		return nil
	}
	if !utf8.ValidString(s) {
		return dataErrf(nil, len(e.buf), ErrEncoding, "string is not valid utf-8")
	}
	if b, ok := encodeCP1252(s); ok {
		e.I32(int32(len(b) + 1))
		e.Raw(b)
		e.U8(0)
		return nil
	}
	b, err := utf16Encoding(e.order).NewEncoder().Bytes([]byte(s))
	if err != nil {
		return dataErrf(nil, len(e.buf), ErrEncoding, "utf-16: %v", err)
	}
	e.I32(-int32(len(b)/2 + 1))
	e.Raw(b)
	e.U16(0)
	return nil
}

// IsSingleByte reports whether s encodes in the Windows-1252 form.
func IsSingleByte(s string) bool {
	_, ok := encodeCP1252(s)
	return ok
}
