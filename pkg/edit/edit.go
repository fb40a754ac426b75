// Package edit changes fields of a decoded save through short text labels
// such as "plot.bool[1234]=true" or "player.credits=500000", so that
// front ends do not need to know each game's schema.
package edit

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goopsie/trilogySaveTools/pkg/plot"
	"github.com/goopsie/trilogySaveTools/pkg/save"
	"github.com/goopsie/trilogySaveTools/pkg/save/me2"
	"github.com/goopsie/trilogySaveTools/pkg/save/me3"
)

var (
	// ErrUnknownLabel is returned for labels no format understands.
	ErrUnknownLabel = errors.New("unknown label")
	// ErrNotAvailable is returned for labels the save's format does not store.
	ErrNotAvailable = errors.New("not available for this format")
	// ErrIndexRange is returned for plot ids at or above plot.MaxIndex.
	ErrIndexRange = errors.New("plot index out of range")
)

// Edit assigns Value to the field named by Label.
type Edit struct {
	Label string
	Value string
}

func (e Edit) String() string { return e.Label + "=" + e.Value }

// Parse splits "label=value".
func Parse(expr string) (Edit, error) {
	label, value, ok := strings.Cut(expr, "=")
	label = strings.TrimSpace(label)
	if !ok || label == "" {
		return Edit{}, fmt.Errorf("edit %q: want label=value", expr)
	}
	return Edit{Label: strings.ToLower(label), Value: strings.TrimSpace(value)}, nil
}

// ParseAll parses every expression.
func ParseAll(exprs []string) ([]Edit, error) {
	edits := make([]Edit, 0, len(exprs))
	for _, expr := range exprs {
		e, err := Parse(expr)
		if err != nil {
			return nil, err
		}
		edits = append(edits, e)
	}
	return edits, nil
}

var plotLabel = regexp.MustCompile(`^(plot|me1plot)\.(bool|int|float)\[(\d+)\]$`)

// Apply performs the edits in order and stops at the first failure. Edits
// before the failing one stay applied.
func Apply(s *save.Save, edits ...Edit) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for _, e := range edits {
		if err := apply(s, e); err != nil {
			return fmt.Errorf("%s: %w", e, err)
		}
	}
	return nil
}

func apply(s *save.Save, e Edit) error {
	if m := plotLabel.FindStringSubmatch(e.Label); m != nil {
		vars, err := plotTable(s, m[1])
		if err != nil {
			return err
		}
		return setPlot(vars, m[2], m[3], e.Value)
	}
	if e.Label == "difficulty" {
		return setDifficulty(s, e.Value)
	}
	if field, ok := strings.CutPrefix(e.Label, "player."); ok {
		p, err := playerOf(s)
		if err != nil {
			return err
		}
		return p.set(field, e.Value)
	}
	return ErrUnknownLabel
}

// Get returns the current value of the field named by label, formatted as
// Apply accepts it.
func Get(s *save.Save, label string) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	label = strings.ToLower(strings.TrimSpace(label))
	if m := plotLabel.FindStringSubmatch(label); m != nil {
		vars, err := plotTable(s, m[1])
		if err != nil {
			return "", err
		}
		i, err := plotIndex(m[3])
		if err != nil {
			return "", err
		}
		switch m[2] {
		case "bool":
			return strconv.FormatBool(vars.Bool(i)), nil
		case "int":
			v, _ := vars.Int(i)
			return strconv.FormatInt(int64(v), 10), nil
		default:
			v, _ := vars.Float(i)
			return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
		}
	}
	if label == "difficulty" {
		switch s.Format {
		case save.ME2:
			return s.ME2.Difficulty.String(), nil
		case save.ME2LE:
			return s.ME2LE.Difficulty.String(), nil
		case save.ME3:
			return s.ME3.Difficulty.String(), nil
		}
		return "", ErrNotAvailable
	}
	if field, ok := strings.CutPrefix(label, "player."); ok {
		p, err := playerOf(s)
		if err != nil {
			return "", err
		}
		return p.get(field)
	}
	return "", ErrUnknownLabel
}

func plotTable(s *save.Save, table string) (plot.Variables, error) {
	if table == "me1plot" {
		switch s.Format {
		case save.ME2:
			return &s.ME2.ME1Plot, nil
		case save.ME2LE:
			return &s.ME2LE.ME1Plot, nil
		case save.ME3:
			return &s.ME3.ME1Plot, nil
		}
		return nil, ErrNotAvailable
	}
	switch s.Format {
	case save.ME1:
		return &s.ME1.State.Plot, nil
	case save.ME1LE:
		return &s.ME1LE.Data.Plot, nil
	case save.ME1LEPS4:
		return &s.ME1LEPS4.Plot, nil
	case save.ME2:
		return &s.ME2.Plot, nil
	case save.ME2LE:
		return &s.ME2LE.Plot, nil
	case save.ME3:
		return &s.ME3.Plot, nil
	}
	return nil, ErrNotAvailable
}

func plotIndex(index string) (int, error) {
	i, err := strconv.Atoi(index)
	if err != nil || i >= plot.MaxIndex {
		return 0, fmt.Errorf("%w: %s", ErrIndexRange, index)
	}
	return i, nil
}

func setPlot(vars plot.Variables, kind, index, value string) error {
	i, err := plotIndex(index)
	if err != nil {
		return err
	}
	switch kind {
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		vars.SetBool(i, b)
	case "int":
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return err
		}
		vars.SetInt(i, int32(n))
	case "float":
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return err
		}
		vars.SetFloat(i, float32(f))
	}
	return nil
}

func setDifficulty(s *save.Save, value string) error {
	switch s.Format {
	case save.ME2, save.ME2LE:
		d, err := me2.ParseDifficulty(value)
		if err != nil {
			return err
		}
		if s.Format == save.ME2 {
			s.ME2.Difficulty = d
		} else {
			s.ME2LE.Difficulty = d
		}
	case save.ME3:
		d, err := me3.ParseDifficulty(value)
		if err != nil {
			return err
		}
		s.ME3.Difficulty = d
	default:
		return ErrNotAvailable
	}
	return nil
}
