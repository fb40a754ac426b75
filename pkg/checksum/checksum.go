// Package checksum computes and verifies the CRC-32 values that protect the
// save formats.
package checksum

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/snksoft/crc"
)

// ErrChecksumMismatch is returned by the Verify functions.
var ErrChecksumMismatch = errors.New("checksum mismatch")

var ccittTable = func() [256]uint32 {
	var t [256]uint32
	for i := range t {
		c := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if c&0x80000000 != 0 {
				c = c<<1 ^ 0x04C11DB7
			} else {
				c <<= 1
			}
		}
		t[i] = c
	}
	return t
}()

// CCITT32 is the checksum appended to ME2 and ME3 saves: polynomial
// 0x04C11DB7 processed MSB first, initial value and final xor 0xFFFFFFFF.
func CCITT32(data []byte) uint32 {
	c := uint32(0xFFFFFFFF)
	for _, b := range data {
		c = c<<8 ^ ccittTable[byte(c>>24)^b]
	}
	return ^c
}

var bzip2 = crc.NewTable(&crc.Parameters{
	Width:      32,
	Polynomial: 0x04C11DB7,
	Init:       0xFFFFFFFF,
	ReflectIn:  false,
	ReflectOut: false,
	FinalXor:   0xFFFFFFFF,
})

// BZIP2 is CRC-32/BZIP2, embedded in ME1 Legendary saves.
func BZIP2(data []byte) uint32 {
	return uint32(bzip2.CalculateCRC(data))
}

// Append appends sum to buf in the given byte order.
func Append(buf []byte, order binary.ByteOrder, sum uint32) []byte {
	var b [4]byte
	order.PutUint32(b[:], sum)
	return append(buf, b[:]...)
}

// Embed writes sum little endian at len(buf)-fromEnd.
func Embed(buf []byte, fromEnd int, sum uint32) error {
	off := len(buf) - fromEnd
	if off < 0 || fromEnd < 4 {
		return fmt.Errorf("embed checksum: offset %d out of range", off)
	}
	binary.LittleEndian.PutUint32(buf[off:], sum)
	return nil
}

// VerifyTrailing checks a checksum stored in the last four bytes of data
// against fn over everything before it.
func VerifyTrailing(data []byte, order binary.ByteOrder, fn func([]byte) uint32) error {
	if len(data) < 4 {
		return fmt.Errorf("verify checksum: %d bytes: %w", len(data), ErrChecksumMismatch)
	}
	body := data[:len(data)-4]
	stored := order.Uint32(data[len(body):])
	if got := fn(body); got != stored {
		return fmt.Errorf("stored %08x, computed %08x: %w", stored, got, ErrChecksumMismatch)
	}
	return nil
}

// VerifyEmbedded checks a little endian checksum stored at
// len(data)-fromEnd against fn over everything before it.
func VerifyEmbedded(data []byte, fromEnd int, fn func([]byte) uint32) error {
	off := len(data) - fromEnd
	if off < 0 || fromEnd < 4 {
		return fmt.Errorf("verify checksum: %d bytes: %w", len(data), ErrChecksumMismatch)
	}
	stored := binary.LittleEndian.Uint32(data[off:])
	if got := fn(data[:off]); got != stored {
		return fmt.Errorf("stored %08x, computed %08x: %w", stored, got, ErrChecksumMismatch)
	}
	return nil
}
