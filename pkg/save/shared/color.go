package shared

import (
	"fmt"

	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

// LinearColor is an RGBA color with float components, nominally 0 to 1.
type LinearColor struct {
	R, G, B, A float32
}

func (c *LinearColor) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	for _, f := range []*float32{&c.R, &c.G, &c.B, &c.A} {
		if *f, err = d.F32(); err != nil {
			return err
		}
	}
	return nil
}

func (c *LinearColor) MarshalUnreal(e *unreal.Encoder) error {
	e.F32(c.R)
	e.F32(c.G)
	e.F32(c.B)
	e.F32(c.A)
	return nil
}

func (c LinearColor) String() string {
	return fmt.Sprintf("RGBA(%.3f, %.3f, %.3f, %.3f)", c.R, c.G, c.B, c.A)
}

// Hex returns the color as #RRGGBBAA with components clamped to 0..1.
func (c LinearColor) Hex() string {
	r := uint8(clamp(c.R, 0, 1) * 255)
	g := uint8(clamp(c.G, 0, 1) * 255)
	b := uint8(clamp(c.B, 0, 1) * 255)
	a := uint8(clamp(c.A, 0, 1) * 255)
	return fmt.Sprintf("#%02X%02X%02X%02X", r, g, b, a)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
