package save

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a save layout.
type Format uint8

const (
	Unknown Format = iota
	ME1
	ME1LE
	ME1LEPS4
	ME2
	ME2LE
	ME3
)

var formatNames = [...]string{"unknown", "ME1", "ME1LE", "ME1LE-PS4", "ME2", "ME2LE", "ME3"}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// ParseFormat accepts the names returned by Format.String, in any case.
func ParseFormat(s string) (Format, error) {
	for i, name := range formatNames[1:] {
		if strings.EqualFold(name, s) {
			return Format(i + 1), nil
		}
	}
	return Unknown, fmt.Errorf("unknown save format %q", s)
}

// detectionOrder is the order in which formats are tried when none is
// forced. Formats with a magic number or version marker come before the
// ones that can only be recognized by a full parse.
var detectionOrder = []Format{ME1LE, ME2, ME2LE, ME3, ME1LEPS4, ME1}

// formatForExtension maps a file extension to the format it most likely
// holds.
func formatForExtension(name string) Format {
	switch ext := filepath.Ext(name); {
	case strings.EqualFold(ext, ".MassEffectSave"):
		return ME1
	case strings.EqualFold(ext, ".ps4sav"):
		return ME1LEPS4
	}
	return Unknown
}

// candidates returns detectionOrder with the preferred format moved to the
// front.
func candidates(preferred Format) []Format {
	if preferred == Unknown {
		return detectionOrder
	}
	out := []Format{preferred}
	for _, f := range detectionOrder {
		if f != preferred {
			out = append(out, f)
		}
	}
	return out
}
