package shared

import (
	"fmt"

	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

type CombatAppearance uint8

const (
	AppearanceParts CombatAppearance = iota
	AppearanceFull
	combatAppearances
)

func (a CombatAppearance) String() string {
	switch a {
	case AppearanceParts:
		return "Parts"
	case AppearanceFull:
		return "Full"
	}
	return fmt.Sprintf("CombatAppearance(%d)", uint8(a))
}

// Appearance is the armor and face selection of ME2 and ME3 characters.
type Appearance struct {
	CombatAppearance CombatAppearance
	CasualID         int32
	FullBodyID       int32
	TorsoID          int32
	ShoulderID       int32
	ArmID            int32
	LegID            int32
	SpecularID       int32
	Tint1ID          int32
	Tint2ID          int32
	Tint3ID          int32
	PatternID        int32
	PatternColorID   int32
	HelmetID         int32
	HasHeadMorph     bool
	HeadMorph        *HeadMorph
}

func (a *Appearance) ids() []*int32 {
	return []*int32{
		&a.CasualID, &a.FullBodyID, &a.TorsoID, &a.ShoulderID, &a.ArmID, &a.LegID,
		&a.SpecularID, &a.Tint1ID, &a.Tint2ID, &a.Tint3ID, &a.PatternID,
		&a.PatternColorID, &a.HelmetID,
	}
}

func (a *Appearance) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if a.CombatAppearance, err = unreal.DecodeEnum8[CombatAppearance](d, int(combatAppearances)); err != nil {
		return err
	}
	for _, id := range a.ids() {
		if *id, err = d.I32(); err != nil {
			return err
		}
	}
	if a.HasHeadMorph, err = d.Bool(); err != nil {
		return err
	}
	if a.HeadMorph, err = unreal.DecodeOptional[HeadMorph](d); err != nil {
		return fmt.Errorf("head morph: %w", err)
	}
	return nil
}

func (a *Appearance) MarshalUnreal(e *unreal.Encoder) error {
	e.U8(uint8(a.CombatAppearance))
	for _, id := range a.ids() {
		e.I32(*id)
	}
	e.Bool(a.HasHeadMorph)
	if err := unreal.EncodeOptional(e, a.HeadMorph); err != nil {
		return fmt.Errorf("head morph: %w", err)
	}
	return nil
}

// SetHeadMorph replaces the head morph; nil removes it.
func (a *Appearance) SetHeadMorph(h *HeadMorph) {
	a.HeadMorph = h
	a.HasHeadMorph = h != nil
}
