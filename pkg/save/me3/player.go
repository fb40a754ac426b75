package me3

import (
	"fmt"

	"github.com/goopsie/trilogySaveTools/pkg/save/shared"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

type Player struct {
	IsFemale            bool
	ClassName           string
	IsCombatPawn        bool
	IsInjuredPawn       bool
	UseCasualAppearance bool
	Level               int32
	CurrentXP           float32
	FirstName           string
	LocalizedLastName   int32
	Origin              shared.Origin
	Notoriety           shared.Notoriety
	TalentPoints        int32
	MappedPower1        string
	MappedPower2        string
	MappedPower3        string
	Appearance          shared.Appearance
	EmissiveID          int32
	Powers              []Power
	WarAssets           *unreal.OrderedMap[int32, int32]
	Weapons             []Weapon
	WeaponsMods         []WeaponMod
	WeaponsLoadout      shared.WeaponLoadout
	PrimaryWeapon       string
	SecondaryWeapon     string
	LoadoutWeaponGroup  []int32
	Hotkeys             []Hotkey
	CurrentHealth       float32
	Credits             int32
	Medigel             int32
	Eezo                int32
	Iridium             int32
	Palladium           int32
	Platinum            int32
	SurveyDrones        int32
	CurrentFuel         float32
	Grenades            int32
	FaceCode            string
	LocalizedClassName  int32
	CharacterGuid       unreal.Dummy
}

func (p *Player) resources() []*int32 {
	return []*int32{&p.Credits, &p.Medigel, &p.Eezo, &p.Iridium, &p.Palladium, &p.Platinum, &p.SurveyDrones}
}

func (p *Player) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if p.IsFemale, err = d.Bool(); err != nil {
		return err
	}
	if p.ClassName, err = d.Str(); err != nil {
		return err
	}
	for _, b := range []*bool{&p.IsCombatPawn, &p.IsInjuredPawn, &p.UseCasualAppearance} {
		if *b, err = d.Bool(); err != nil {
			return err
		}
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
	if p.EmissiveID, err = d.I32(); err != nil {
		return err
	}
	if p.Powers, err = unreal.DecodeSlice[Power](d); err != nil {
		return fmt.Errorf("powers: %w", err)
	}
	if p.WarAssets, err = unreal.DecodeMap(d, (*unreal.Decoder).I32, (*unreal.Decoder).I32); err != nil {
		return fmt.Errorf("war assets: %w", err)
	}
	if p.Weapons, err = unreal.DecodeSlice[Weapon](d); err != nil {
		return fmt.Errorf("weapons: %w", err)
	}
	if p.WeaponsMods, err = unreal.DecodeSlice[WeaponMod](d); err != nil {
		return fmt.Errorf("weapon mods: %w", err)
	}
	if err = p.WeaponsLoadout.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("weapons loadout: %w", err)
	}
	if p.PrimaryWeapon, err = d.Str(); err != nil {
		return err
	}
	if p.SecondaryWeapon, err = d.Str(); err != nil {
		return err
	}
	if p.LoadoutWeaponGroup, err = unreal.DecodeI32s(d); err != nil {
		return err
	}
	if p.Hotkeys, err = unreal.DecodeSlice[Hotkey](d); err != nil {
		return fmt.Errorf("hotkeys: %w", err)
	}
	if p.CurrentHealth, err = d.F32(); err != nil {
		return err
	}
	for _, v := range p.resources() {
		if *v, err = d.I32(); err != nil {
			return err
		}
	}
	if p.CurrentFuel, err = d.F32(); err != nil {
		return err
	}
	if p.Grenades, err = d.I32(); err != nil {
		return err
	}
	if p.FaceCode, err = d.Str(); err != nil {
		return err
	}
	if p.LocalizedClassName, err = d.I32(); err != nil {
		return err
	}
	p.CharacterGuid, err = d.ReadDummy(16)
	return err
}

func (p *Player) MarshalUnreal(e *unreal.Encoder) error {
	e.Bool(p.IsFemale)
	if err := e.Str(p.ClassName); err != nil {
		return err
	}
	e.Bool(p.IsCombatPawn)
	e.Bool(p.IsInjuredPawn)
	e.Bool(p.UseCasualAppearance)
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
	e.I32(p.EmissiveID)
	if err := unreal.EncodeSlice(e, p.Powers); err != nil {
		return fmt.Errorf("powers: %w", err)
	}
	if err := unreal.EncodeMap(e, p.WarAssets, unreal.PutI32, unreal.PutI32); err != nil {
		return err
	}
	if err := unreal.EncodeSlice(e, p.Weapons); err != nil {
		return fmt.Errorf("weapons: %w", err)
	}
	if err := unreal.EncodeSlice(e, p.WeaponsMods); err != nil {
		return fmt.Errorf("weapon mods: %w", err)
	}
	if err := p.WeaponsLoadout.MarshalUnreal(e); err != nil {
		return err
	}
	if err := e.Str(p.PrimaryWeapon); err != nil {
		return err
	}
	if err := e.Str(p.SecondaryWeapon); err != nil {
		return err
	}
	unreal.EncodeI32s(e, p.LoadoutWeaponGroup)
	if err := unreal.EncodeSlice(e, p.Hotkeys); err != nil {
		return fmt.Errorf("hotkeys: %w", err)
	}
	e.F32(p.CurrentHealth)
	for _, v := range p.resources() {
		e.I32(*v)
	}
	e.F32(p.CurrentFuel)
	e.I32(p.Grenades)
	if err := e.Str(p.FaceCode); err != nil {
		return err
	}
	e.I32(p.LocalizedClassName)
	if len(p.CharacterGuid) != 16 {
		return fmt.Errorf("character guid: %d bytes, want 16", len(p.CharacterGuid))
	}
	p.CharacterGuid.Put(e)
	return nil
}

type Power struct {
	Name              string
	Rank              float32
	EvolvedChoices    [6]int32
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
	for i := range p.EvolvedChoices {
		if p.EvolvedChoices[i], err = d.I32(); err != nil {
			return err
		}
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
	for _, c := range p.EvolvedChoices {
		e.I32(c)
	}
	if err := e.Str(p.PowerClassName); err != nil {
		return err
	}
	e.I32(p.WheelDisplayIndex)
	return nil
}

type Weapon struct {
	ClassName          string
	AmmoUsedCount      int32
	AmmoTotal          int32
	CurrentWeapon      bool
	WasLastWeapon      bool
	AmmoPowerName      string
	AmmoPowerSourceTag string
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
	if w.WasLastWeapon, err = d.Bool(); err != nil {
		return err
	}
	if w.AmmoPowerName, err = d.Str(); err != nil {
		return err
	}
	w.AmmoPowerSourceTag, err = d.Str()
	return err
}

func (w *Weapon) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(w.ClassName); err != nil {
		return err
	}
	e.I32(w.AmmoUsedCount)
	e.I32(w.AmmoTotal)
	e.Bool(w.CurrentWeapon)
	e.Bool(w.WasLastWeapon)
	if err := e.Str(w.AmmoPowerName); err != nil {
		return err
	}
	return e.Str(w.AmmoPowerSourceTag)
}

type WeaponMod struct {
	WeaponClassName     string
	WeaponModClassNames []string
}

func (m *WeaponMod) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if m.WeaponClassName, err = d.Str(); err != nil {
		return err
	}
	m.WeaponModClassNames, err = unreal.DecodeStrings(d)
	return err
}

func (m *WeaponMod) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(m.WeaponClassName); err != nil {
		return err
	}
	return unreal.EncodeStrings(e, m.WeaponModClassNames)
}

type Hotkey struct {
	PawnName  string
	PowerName string
}

func (h *Hotkey) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if h.PawnName, err = d.Str(); err != nil {
		return err
	}
	h.PowerName, err = d.Str()
	return err
}

func (h *Hotkey) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(h.PawnName); err != nil {
		return err
	}
	return e.Str(h.PowerName)
}
