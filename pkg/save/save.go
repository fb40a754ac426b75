// Package save detects the layout of a Mass Effect trilogy save file,
// decodes it into the matching game schema and encodes it back.
package save

import (
	"errors"
	"fmt"

	"github.com/golang/glog"

	"github.com/goopsie/trilogySaveTools/pkg/checksum"
	"github.com/goopsie/trilogySaveTools/pkg/container"
	"github.com/goopsie/trilogySaveTools/pkg/save/me1"
	"github.com/goopsie/trilogySaveTools/pkg/save/me1le"
	"github.com/goopsie/trilogySaveTools/pkg/save/me2"
	"github.com/goopsie/trilogySaveTools/pkg/save/me3"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

var (
	ErrUnexpectedEOF       = unreal.ErrUnexpectedEOF
	ErrEncoding            = unreal.ErrEncoding
	ErrInvalidDiscriminant = unreal.ErrInvalidDiscriminant
	ErrVersionMismatch     = unreal.ErrVersionMismatch
	ErrDecompression       = container.ErrDecompression
	ErrChecksumMismatch    = checksum.ErrChecksumMismatch

	// ErrUnsupportedFile is returned when no format accepts the input.
	ErrUnsupportedFile = errors.New("unsupported file")
	// ErrMissingGame is returned for a Save whose Format field has no
	// matching game value.
	ErrMissingGame = errors.New("save has no game data for its format")
)

// Save is a decoded save file. Exactly one of the game fields is set,
// matching Format.
type Save struct {
	Format Format

	ME1      *me1.SaveGame
	ME1LE    *me1le.SaveGame
	ME1LEPS4 *me1le.SaveData
	ME2      *me2.SaveGame
	ME2LE    *me2.SaveGame
	ME3      *me3.SaveGame
}

// Validate reports ErrMissingGame when the game field selected by Format
// is nil, and ErrUnsupportedFile for an unknown Format.
func (s *Save) Validate() error {
	var ok bool
	switch s.Format {
	case ME1:
		ok = s.ME1 != nil
	case ME1LE:
		ok = s.ME1LE != nil
	case ME1LEPS4:
		ok = s.ME1LEPS4 != nil
	case ME2:
		ok = s.ME2 != nil
	case ME2LE:
		ok = s.ME2LE != nil
	case ME3:
		ok = s.ME3 != nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, s.Format)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingGame, s.Format)
	}
	return nil
}

// Option configures Deserialize.
type Option func(*options)

type options struct {
	format    Format
	preferred Format
	fileName  string
	strict    bool
}

// WithFormat skips detection and decodes data as f.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithFileName lets the file extension pick the first format to try.
func WithFileName(name string) Option {
	return func(o *options) {
		o.fileName = name
	}
}

// WithPreferredFormat tries f first but still falls back to detection.
// A file name hint takes precedence.
func WithPreferredFormat(f Format) Option {
	return func(o *options) {
		o.preferred = f
	}
}

// WithStrictChecksum makes a stored checksum that does not match the data
// an error. Saves without a checksum are unaffected.
func WithStrictChecksum(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// Deserialize decodes a save file. Unless a format is forced, each format
// is tried in a fixed order and the first full parse wins.
func Deserialize(data []byte, opts ...Option) (*Save, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.format != Unknown {
		s, err := decode(o.format, data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", o.format, err)
		}
		return o.verify(s, data)
	}

	preferred := formatForExtension(o.fileName)
	if preferred == Unknown {
		preferred = o.preferred
	}
	var causes []error
	for _, f := range candidates(preferred) {
		s, err := decode(f, data)
		if err != nil {
			glog.V(1).Infof("not %s: %v", f, err)
			causes = append(causes, fmt.Errorf("%s: %w", f, err))
			continue
		}
		glog.V(1).Infof("detected %s", f)
		return o.verify(s, data)
	}
	return nil, fmt.Errorf("%w: %w", ErrUnsupportedFile, errors.Join(causes...))
}

func decode(f Format, data []byte) (s *Save, err error) {
	s = &Save{Format: f}
	switch f {
	case ME1:
		s.ME1, err = me1.Unmarshal(data)
	case ME1LE:
		s.ME1LE, err = me1le.Unmarshal(data)
	case ME1LEPS4:
		s.ME1LEPS4, err = me1le.UnmarshalPS4(data)
	case ME2:
		s.ME2, err = me2.Unmarshal(data, me2.Vanilla)
	case ME2LE:
		s.ME2LE, err = me2.Unmarshal(data, me2.Legendary)
	case ME3:
		s.ME3, err = me3.Unmarshal(data)
	default:
		return nil, fmt.Errorf("no decoder for %s", f)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (o *options) verify(s *Save, data []byte) (*Save, error) {
	if !o.strict {
		return s, nil
	}
	if err := VerifyChecksum(s, data); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Format, err)
	}
	return s, nil
}

// VerifyChecksum checks the checksum stored in data, the encoded form of
// s. Formats without a checksum always pass.
func VerifyChecksum(s *Save, data []byte) error {
	if err := s.Validate(); err != nil {
		return err
	}
	switch s.Format {
	case ME1LE:
		return me1le.VerifyChecksum(data)
	case ME2:
		return me2.VerifyChecksum(data, s.ME2.Xbox360)
	case ME2LE:
		return me2.VerifyChecksum(data, false)
	case ME3:
		return me3.VerifyChecksum(data, s.ME3.Xbox360)
	}
	return nil
}

// Serialize encodes s, recomputing every length, offset and checksum.
func Serialize(s *Save) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	var (
		b   []byte
		err error
	)
	switch s.Format {
	case ME1:
		b, err = s.ME1.Marshal()
	case ME1LE:
		b, err = s.ME1LE.Marshal()
	case ME1LEPS4:
		b, err = s.ME1LEPS4.MarshalPS4()
	case ME2:
		b, err = s.ME2.Marshal()
	case ME2LE:
		b, err = s.ME2LE.Marshal()
	case ME3:
		b, err = s.ME3.Marshal()
	default:
		return nil, fmt.Errorf("serialize: %w: %s", ErrUnsupportedFile, s.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", s.Format, err)
	}
	return b, nil
}

// ConvertPlatform switches an ME2 or ME3 save between the PC and Xbox 360
// byte orders. Serialize then writes the other platform's file.
func (s *Save) ConvertPlatform(xbox360 bool) error {
	if err := s.Validate(); err != nil {
		return err
	}
	switch s.Format {
	case ME2:
		s.ME2.Xbox360 = xbox360
	case ME3:
		s.ME3.Xbox360 = xbox360
	default:
		return fmt.Errorf("%s saves exist on a single platform", s.Format)
	}
	return nil
}

// Xbox360 reports whether the save uses the big-endian Xbox 360 layout.
func (s *Save) Xbox360() bool {
	switch {
	case s.Format == ME2 && s.ME2 != nil:
		return s.ME2.Xbox360
	case s.Format == ME3 && s.ME3 != nil:
		return s.ME3.Xbox360
	}
	return false
}
