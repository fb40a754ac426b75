package me2

import (
	"fmt"

	"github.com/goopsie/trilogySaveTools/pkg/save/shared"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

type Player struct {
	IsFemale           bool
	ClassName          string
	Level              int32
	CurrentXP          float32
	FirstName          string
	LocalizedLastName  int32
	Origin             shared.Origin
	Notoriety          shared.Notoriety
	TalentPoints       int32
	MappedPower1       string
	MappedPower2       string
	MappedPower3       string
	Appearance         shared.Appearance
	Powers             []Power
	Weapons            []Weapon
	WeaponsLoadout     shared.WeaponLoadout
	Hotkeys            []Hotkey
	Credits            int32
	Medigel            int32
	Eezo               int32
	Iridium            int32
	Palladium          int32
	Platinum           int32
	SurveyDrones       int32
	CurrentFuel        float32
	FaceCode           string
	LocalizedClassName int32
}

func (p *Player) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if p.IsFemale, err = d.Bool(); err != nil {
		return err
	}
	if p.ClassName, err = d.Str(); err != nil {
		return err
	}
	if p.Level, err = d.I32(); err != nil {
		return err
	}
	if p.CurrentXP, err = d.F32(); err != nil {
		return err
	}
	if p.FirstName, err = d.Str(); err != nil {
		return err
	}
	if p.LocalizedLastName, err = d.I32(); err != nil {
		return err
	}
	if p.Origin, err = shared.DecodeOrigin(d); err != nil {
		return err
	}
	if p.Notoriety, err = shared.DecodeNotoriety(d); err != nil {
		return err
	}
	if p.TalentPoints, err = d.I32(); err != nil {
		return err
	}
	for _, s := range []*string{&p.MappedPower1, &p.MappedPower2, &p.MappedPower3} {
		if *s, err = d.Str(); err != nil {
			return err
		}
	}
	if err = p.Appearance.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("appearance: %w", err)
	}
	if p.Powers, err = unreal.DecodeSlice[Power](d); err != nil {
		return fmt.Errorf("powers: %w", err)
	}
	if p.Weapons, err = unreal.DecodeSlice[Weapon](d); err != nil {
		return fmt.Errorf("weapons: %w", err)
	}
	if err = p.WeaponsLoadout.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("weapons loadout: %w", err)
	}
	if p.Hotkeys, err = unreal.DecodeSlice[Hotkey](d); err != nil {
		return fmt.Errorf("hotkeys: %w", err)
	}
	for _, v := range p.resources() {
		if *v, err = d.I32(); err != nil {
			return err
		}
	}
	if p.CurrentFuel, err = d.F32(); err != nil {
		return err
	}
	if p.FaceCode, err = d.Str(); err != nil {
		return err
	}
	p.LocalizedClassName, err = d.I32()
	return err
}

func (p *Player) resources() []*int32 {
	return []*int32{&p.Credits, &p.Medigel, &p.Eezo, &p.Iridium, &p.Palladium, &p.Platinum, &p.SurveyDrones}
}

func (p *Player) MarshalUnreal(e *unreal.Encoder) error {
	e.Bool(p.IsFemale)
	if err := e.Str(p.ClassName); err != nil {
		return err
	}
	e.I32(p.Level)
	e.F32(p.CurrentXP)
	if err := e.Str(p.FirstName); err != nil {
		return err
	}
	e.I32(p.LocalizedLastName)
	e.U8(uint8(p.Origin))
	e.U8(uint8(p.Notoriety))
	e.I32(p.TalentPoints)
	for _, s := range []string{p.MappedPower1, p.MappedPower2, p.MappedPower3} {
		if err := e.Str(s); err != nil {
			return err
		}
	}
	if err := p.Appearance.MarshalUnreal(e); err != nil {
		return fmt.Errorf("appearance: %w", err)
	}
	if err := unreal.EncodeSlice(e, p.Powers); err != nil {
		return fmt.Errorf("powers: %w", err)
	}
	if err := unreal.EncodeSlice(e, p.Weapons); err != nil {
		return fmt.Errorf("weapons: %w", err)
	}
	if err := p.WeaponsLoadout.MarshalUnreal(e); err != nil {
		return err
	}
	if err := unreal.EncodeSlice(e, p.Hotkeys); err != nil {
		return fmt.Errorf("hotkeys: %w", err)
	}
	for _, v := range p.resources() {
		e.I32(*v)
	}
	e.F32(p.CurrentFuel)
	if err := e.Str(p.FaceCode); err != nil {
		return err
	}
	e.I32(p.LocalizedClassName)
	return nil
}

type Power struct {
	Name              string
	Rank              float32
	PowerClassName    string
	WheelDisplayIndex int32
}

func (p *Power) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if p.Name, err = d.Str(); err != nil {
		return err
	}
	if p.Rank, err = d.F32(); err != nil {
		return err
	}
	if p.PowerClassName, err = d.Str(); err != nil {
		return err
	}
	p.WheelDisplayIndex, err = d.I32()
	return err
}

func (p *Power) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(p.Name); err != nil {
		return err
	}
	e.F32(p.Rank)
	if err := e.Str(p.PowerClassName); err != nil {
		return err
	}
	e.I32(p.WheelDisplayIndex)
	return nil
}

type Weapon struct {
	ClassName     string
	AmmoUsedCount int32
	AmmoTotal     int32
	CurrentWeapon bool
	LastWeapon    bool
	AmmoPowerName string
}

func (w *Weapon) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if w.ClassName, err = d.Str(); err != nil {
		return err
	}
	if w.AmmoUsedCount, err = d.I32(); err != nil {
		return err
	}
	if w.AmmoTotal, err = d.I32(); err != nil {
		return err
	}
	if w.CurrentWeapon, err = d.Bool(); err != nil {
		return err
	}
	if w.LastWeapon, err = d.Bool(); err != nil {
		return err
	}
	w.AmmoPowerName, err = d.Str()
	return err
}

func (w *Weapon) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(w.ClassName); err != nil {
		return err
	}
	e.I32(w.AmmoUsedCount)
	e.I32(w.AmmoTotal)
	e.Bool(w.CurrentWeapon)
	e.Bool(w.LastWeapon)
	return e.Str(w.AmmoPowerName)
}

type Hotkey struct {
	PawnName string
	PowerID  int32
}

func (h *Hotkey) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if h.PawnName, err = d.Str(); err != nil {
		return err
	}
	h.PowerID, err = d.I32()
	return err
}

func (h *Hotkey) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(h.PawnName); err != nil {
		return err
	}
	e.I32(h.PowerID)
	return nil
}
