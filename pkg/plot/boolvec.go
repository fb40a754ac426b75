// Package plot holds the plot state shapes shared by the save formats: the
// packed boolean table, integer and float tables, the quest journal and the
// codex.
package plot

import (
	"math/bits"

	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

// BoolVec is a bit vector packed LSB first into 32-bit words. Bit i lives in
// word i/32 at position i%32. Its length is always a whole number of words.
type BoolVec struct {
	words []uint32
}

// FromWords copies packed words into a new vector.
func FromWords(words []uint32) BoolVec {
	return BoolVec{words: append([]uint32(nil), words...)}
}

// Words returns a copy of the packed words.
func (v BoolVec) Words() []uint32 {
	return append([]uint32(nil), v.words...)
}

// Len returns the number of addressable bits.
func (v BoolVec) Len() int {
	return len(v.words) * 32
}

// Get reports bit i. Bits past the end read as false.
func (v BoolVec) Get(i int) bool {
	if i < 0 || i >= v.Len() {
		return false
	}
	return v.words[i/32]&(1<<(i%32)) != 0
}

// Set assigns bit i, growing the vector by whole zero words when i is past
// the end. Clearing a bit past the end does not grow it. Ids at or above
// MaxIndex never grow it.
func (v *BoolVec) Set(i int, b bool) {
	if i < 0 || (i >= MaxIndex && i >= v.Len()) {
		return
	}
	if i >= v.Len() {
		if !b {
			return
		}
		v.Resize(i + 1)
	}
	if b {
		v.words[i/32] |= 1 << (i % 32)
	} else {
		v.words[i/32] &^= 1 << (i % 32)
	}
}

// Resize sets the length to n bits rounded up to a whole word. Bits beyond
// n in the last word are cleared.
func (v *BoolVec) Resize(n int) {
	words := (n + 31) / 32
	switch {
	case words > len(v.words):
		v.words = append(v.words, make([]uint32, words-len(v.words))...)
	case words < len(v.words):
		v.words = v.words[:words]
	}
	if rem := n % 32; rem != 0 && words > 0 {
		v.words[words-1] &= 1<<rem - 1
	}
}

// Count returns the number of set bits.
func (v BoolVec) Count() int {
	n := 0
	for _, w := range v.words {
		n += bits.OnesCount32(w)
	}
	return n
}

func (v *BoolVec) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	v.words, err = unreal.DecodeU32s(d)
	return err
}

func (v *BoolVec) MarshalUnreal(e *unreal.Encoder) error {
	unreal.EncodeU32s(e, v.words)
	return nil
}
