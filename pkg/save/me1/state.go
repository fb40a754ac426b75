package me1

import (
	"fmt"

	"github.com/goopsie/trilogySaveTools/pkg/plot"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

// State is the state.sav entry. Only the base level name and the plot
// table are decoded; the rest of the entry is kept as raw bytes.
type State struct {
	Prefix        unreal.Dummy
	BaseLevelName string
	Unknown       unreal.Dummy
	Plot          plot.Table
	Rest          []byte
}

func (s *State) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if s.Prefix, err = d.ReadDummy(12); err != nil {
		return err
	}
	if s.BaseLevelName, err = d.Str(); err != nil {
		return fmt.Errorf("base level name: %w", err)
	}
	if s.Unknown, err = d.ReadDummy(24); err != nil {
		return err
	}
	if err = s.Plot.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	s.Rest = append([]byte(nil), d.Cursor().ReadToEnd()...)
	return nil
}

func (s *State) MarshalUnreal(e *unreal.Encoder) error {
	if len(s.Prefix) != 12 || len(s.Unknown) != 24 {
		return fmt.Errorf("state: opaque fields have the wrong size")
	}
	s.Prefix.Put(e)
	if err := e.Str(s.BaseLevelName); err != nil {
		return fmt.Errorf("base level name: %w", err)
	}
	s.Unknown.Put(e)
	if err := s.Plot.MarshalUnreal(e); err != nil {
		return err
	}
	e.Raw(s.Rest)
	return nil
}
