package unreal

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnexpectedEOF       = errors.New("unexpected end of data")
	ErrEncoding            = errors.New("invalid string encoding")
	ErrInvalidDiscriminant = errors.New("invalid enum discriminant")
	ErrVersionMismatch     = errors.New("version mismatch")
	ErrTrailingData        = errors.New("trailing data")
	ErrMissingPayload      = errors.New("presence flag set without payload")
)

// DataError describes a failure at a known offset of a buffer being decoded.
type DataError struct {
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func (e *DataError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Msg)
	if e.Err != nil {
		if e.Msg != "" {
			buf.WriteString(": ")
		}
		buf.WriteString(e.Err.Error())
	}
	fmt.Fprintf(&buf, " at offset 0x%x", e.Off)
	if len(e.Data) > 0 {
		lo := max(e.Off-16, 0)
		hi := min(e.Off+16, len(e.Data))
		if lo < hi {
			buf.WriteString(" near ")
			buf.WriteString(hex.EncodeToString(e.Data[lo:hi]))
		}
	}
	return buf.String()
}

func dataErrf(data []byte, off int, err error, format string, args ...any) error {
	return &DataError{Data: data, Off: off, Err: err, Msg: fmt.Sprintf(format, args...)}
}
