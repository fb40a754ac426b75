package me2

import (
	"github.com/goopsie/trilogySaveTools/pkg/save/shared"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

type Henchman struct {
	Tag            string
	Powers         []Power
	CharacterLevel int32
	TalentPoints   int32
	WeaponLoadout  shared.WeaponLoadout
	MappedPower    string
}

func (h *Henchman) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if h.Tag, err = d.Str(); err != nil {
		return err
	}
	if h.Powers, err = unreal.DecodeSlice[Power](d); err != nil {
		return err
	}
	if h.CharacterLevel, err = d.I32(); err != nil {
		return err
	}
	if h.TalentPoints, err = d.I32(); err != nil {
		return err
	}
	if err = h.WeaponLoadout.UnmarshalUnreal(d); err != nil {
		return err
	}
	h.MappedPower, err = d.Str()
	return err
}

func (h *Henchman) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(h.Tag); err != nil {
		return err
	}
	if err := unreal.EncodeSlice(e, h.Powers); err != nil {
		return err
	}
	e.I32(h.CharacterLevel)
	e.I32(h.TalentPoints)
	if err := h.WeaponLoadout.MarshalUnreal(e); err != nil {
		return err
	}
	return e.Str(h.MappedPower)
}

type Planet struct {
	ID        int32
	Visited   bool
	ScanSites []shared.Vector2d
}

func (p *Planet) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if p.ID, err = d.I32(); err != nil {
		return err
	}
	if p.Visited, err = d.Bool(); err != nil {
		return err
	}
	p.ScanSites, err = unreal.DecodeSlice[shared.Vector2d](d)
	return err
}

func (p *Planet) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(p.ID)
	e.Bool(p.Visited)
	return unreal.EncodeSlice(e, p.ScanSites)
}

type GalaxyMap struct {
	Planets []Planet
}

func (g *GalaxyMap) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	g.Planets, err = unreal.DecodeSlice[Planet](d)
	return err
}

func (g *GalaxyMap) MarshalUnreal(e *unreal.Encoder) error {
	return unreal.EncodeSlice(e, g.Planets)
}

type DependentDlc struct {
	ID   int32
	Name string
}

func (dlc *DependentDlc) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if dlc.ID, err = d.I32(); err != nil {
		return err
	}
	dlc.Name, err = d.Str()
	return err
}

func (dlc *DependentDlc) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(dlc.ID)
	return e.Str(dlc.Name)
}

// ImportBonus records what an imported ME1 character granted. Only
// Legendary saves store it.
type ImportBonus struct {
	ImportedME1Level int32
	StartingME2Level int32
	BonusXP          float32
	BonusCredits     float32
	BonusResources   float32
	BonusParagon     float32
	BonusRenegade    float32
}

func (b *ImportBonus) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if b.ImportedME1Level, err = d.I32(); err != nil {
		return err
	}
	if b.StartingME2Level, err = d.I32(); err != nil {
		return err
	}
	for _, f := range b.floats() {
		if *f, err = d.F32(); err != nil {
			return err
		}
	}
	return nil
}

func (b *ImportBonus) floats() []*float32 {
	return []*float32{&b.BonusXP, &b.BonusCredits, &b.BonusResources, &b.BonusParagon, &b.BonusRenegade}
}

func (b *ImportBonus) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(b.ImportedME1Level)
	e.I32(b.StartingME2Level)
	for _, f := range b.floats() {
		e.F32(*f)
	}
	return nil
}
