package me3

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
	WeaponMods     []WeaponMod
	Grenades       int32
	Weapons        []Weapon
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
	if h.MappedPower, err = d.Str(); err != nil {
		return err
	}
	if h.WeaponMods, err = unreal.DecodeSlice[WeaponMod](d); err != nil {
		return err
	}
	if h.Grenades, err = d.I32(); err != nil {
		return err
	}
	h.Weapons, err = unreal.DecodeSlice[Weapon](d)
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
	if err := e.Str(h.MappedPower); err != nil {
		return err
	}
	if err := unreal.EncodeSlice(e, h.WeaponMods); err != nil {
		return err
	}
	e.I32(h.Grenades)
	return unreal.EncodeSlice(e, h.Weapons)
}

type Planet struct {
	ID            int32
	Visited       bool
	ScanSites     []shared.Vector2d
	ShowAsScanned bool
}

func (p *Planet) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if p.ID, err = d.I32(); err != nil {
		return err
	}
	if p.Visited, err = d.Bool(); err != nil {
		return err
	}
	if p.ScanSites, err = unreal.DecodeSlice[shared.Vector2d](d); err != nil {
		return err
	}
	p.ShowAsScanned, err = d.Bool()
	return err
}

func (p *Planet) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(p.ID)
	e.Bool(p.Visited)
	if err := unreal.EncodeSlice(e, p.ScanSites); err != nil {
		return err
	}
	e.Bool(p.ShowAsScanned)
	return nil
}

type System struct {
	ID               int32
	ReaperAlertLevel float32
	ReaperDetected   bool
}

func (s *System) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if s.ID, err = d.I32(); err != nil {
		return err
	}
	if s.ReaperAlertLevel, err = d.F32(); err != nil {
		return err
	}
	s.ReaperDetected, err = d.Bool()
	return err
}

func (s *System) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(s.ID)
	e.F32(s.ReaperAlertLevel)
	e.Bool(s.ReaperDetected)
	return nil
}

type GalaxyMap struct {
	Planets []Planet
	Systems []System
}

func (g *GalaxyMap) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if g.Planets, err = unreal.DecodeSlice[Planet](d); err != nil {
		return err
	}
	g.Systems, err = unreal.DecodeSlice[System](d)
	return err
}

func (g *GalaxyMap) MarshalUnreal(e *unreal.Encoder) error {
	if err := unreal.EncodeSlice(e, g.Planets); err != nil {
		return err
	}
	return unreal.EncodeSlice(e, g.Systems)
}
