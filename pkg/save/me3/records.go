package me3

import (
	"fmt"
	"strings"

	"github.com/goopsie/trilogySaveTools/pkg/save/shared"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

type Difficulty uint8

const (
	Narrative Difficulty = iota
	Casual
	Normal
	Hardcore
	Insanity
	difficulties
)

var difficultyNames = [...]string{"Narrative", "Casual", "Normal", "Hardcore", "Insanity"}

func (d Difficulty) String() string {
	if d < difficulties {
		return difficultyNames[d]
	}
	return fmt.Sprintf("Difficulty(%d)", uint8(d))
}

func ParseDifficulty(s string) (Difficulty, error) {
	for i, name := range difficultyNames {
		if strings.EqualFold(name, s) {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

// ConversationMode is how dialogue choices are made.
type ConversationMode uint8

const (
	AllDecisions ConversationMode = iota
	MajorDecisions
	NoDecisions
	conversationModes
)

func (m ConversationMode) String() string {
	switch m {
	case AllDecisions:
		return "AllDecisions"
	case MajorDecisions:
		return "MajorDecisions"
	case NoDecisions:
		return "NoDecisions"
	}
	return fmt.Sprintf("ConversationMode(%d)", uint8(m))
}

type Placeable struct {
	Guid          unreal.Guid
	IsDestroyed   bool
	IsDeactivated bool
}

// decodePlaceableState reads a one-byte No/Yes enum.
func decodePlaceableState(d *unreal.Decoder) (bool, error) {
	v, err := unreal.DecodeEnum8[uint8](d, 2)
	return v == 1, err
}

func putPlaceableState(e *unreal.Encoder, v bool) {
	if v {
		e.U8(1)
	} else {
		e.U8(0)
	}
}

func (p *Placeable) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if err = p.Guid.UnmarshalUnreal(d); err != nil {
		return err
	}
	if p.IsDestroyed, err = decodePlaceableState(d); err != nil {
		return err
	}
	p.IsDeactivated, err = decodePlaceableState(d)
	return err
}

func (p *Placeable) MarshalUnreal(e *unreal.Encoder) error {
	if err := p.Guid.MarshalUnreal(e); err != nil {
		return err
	}
	putPlaceableState(e, p.IsDestroyed)
	putPlaceableState(e, p.IsDeactivated)
	return nil
}

type DependentDlc struct {
	ID            int32
	Name          string
	CanonicalName string
}

func (dlc *DependentDlc) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if dlc.ID, err = d.I32(); err != nil {
		return err
	}
	if dlc.Name, err = d.Str(); err != nil {
		return err
	}
	dlc.CanonicalName, err = d.Str()
	return err
}

func (dlc *DependentDlc) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(dlc.ID)
	if err := e.Str(dlc.Name); err != nil {
		return err
	}
	return e.Str(dlc.CanonicalName)
}

type LevelTreasure struct {
	LevelName string
	Credits   int32
	XP        int32
	Items     []string
}

func (t *LevelTreasure) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if t.LevelName, err = d.Str(); err != nil {
		return err
	}
	if t.Credits, err = d.I32(); err != nil {
		return err
	}
	if t.XP, err = d.I32(); err != nil {
		return err
	}
	t.Items, err = unreal.DecodeStrings(d)
	return err
}

func (t *LevelTreasure) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(t.LevelName); err != nil {
		return err
	}
	e.I32(t.Credits)
	e.I32(t.XP)
	return unreal.EncodeStrings(e, t.Items)
}

type MarkerIcon uint8

const (
	MarkerNone MarkerIcon = iota
	MarkerAttack
	MarkerSupply
	MarkerAlert
	markerIcons
)

type ObjectiveMarker struct {
	MarkerOwnedData string
	MarkerOffset    shared.Vector
	MarkerLabel     int32
	BoneToAttachTo  string
	MarkerIconType  MarkerIcon
}

func (m *ObjectiveMarker) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if m.MarkerOwnedData, err = d.Str(); err != nil {
		return err
	}
	if err = m.MarkerOffset.UnmarshalUnreal(d); err != nil {
		return err
	}
	if m.MarkerLabel, err = d.I32(); err != nil {
		return err
	}
	if m.BoneToAttachTo, err = d.Str(); err != nil {
		return err
	}
	m.MarkerIconType, err = unreal.DecodeEnum8[MarkerIcon](d, int(markerIcons))
	return err
}

func (m *ObjectiveMarker) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(m.MarkerOwnedData); err != nil {
		return err
	}
	if err := m.MarkerOffset.MarshalUnreal(e); err != nil {
		return err
	}
	e.I32(m.MarkerLabel)
	if err := e.Str(m.BoneToAttachTo); err != nil {
		return err
	}
	e.U8(uint8(m.MarkerIconType))
	return nil
}
