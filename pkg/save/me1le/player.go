package me1le

import (
	"fmt"

	"github.com/goopsie/trilogySaveTools/pkg/save/shared"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

// ItemLevel is the roman-numeral tier of an item; zero means no tier.
type ItemLevel uint8

const (
	LevelNone ItemLevel = iota
	LevelI
	LevelII
	LevelIII
	LevelIV
	LevelV
	LevelVI
	LevelVII
	LevelVIII
	LevelIX
	LevelX
	itemLevels
)

var itemLevelNames = [...]string{"None", "I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}

func (l ItemLevel) String() string {
	if l < itemLevels {
		return itemLevelNames[l]
	}
	return fmt.Sprintf("ItemLevel(%d)", uint8(l))
}

type ItemMod struct {
	ItemID            int32
	ItemLevel         ItemLevel
	ManufacturerID    int32
	PlotConditionalID int32
}

func (m *ItemMod) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if m.ItemID, err = d.I32(); err != nil {
		return err
	}
	if m.ItemLevel, err = unreal.DecodeEnum8[ItemLevel](d, int(itemLevels)); err != nil {
		return err
	}
	if m.ManufacturerID, err = d.I32(); err != nil {
		return err
	}
	m.PlotConditionalID, err = d.I32()
	return err
}

func (m *ItemMod) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(m.ItemID)
	e.U8(uint8(m.ItemLevel))
	e.I32(m.ManufacturerID)
	e.I32(m.PlotConditionalID)
	return nil
}

type Item struct {
	ItemID            int32
	ItemLevel         ItemLevel
	ManufacturerID    int32
	PlotConditionalID int32
	NewItem           bool
	Junk              bool
	AttachedMods      []ItemMod
}

func (it *Item) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if it.ItemID, err = d.I32(); err != nil {
		return err
	}
	if it.ItemLevel, err = unreal.DecodeEnum8[ItemLevel](d, int(itemLevels)); err != nil {
		return fmt.Errorf("item %d: %w", it.ItemID, err)
	}
	if it.ManufacturerID, err = d.I32(); err != nil {
		return err
	}
	if it.PlotConditionalID, err = d.I32(); err != nil {
		return err
	}
	if it.NewItem, err = d.Bool(); err != nil {
		return err
	}
	if it.Junk, err = d.Bool(); err != nil {
		return err
	}
	it.AttachedMods, err = unreal.DecodeSlice[ItemMod](d)
	return err
}

func (it *Item) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(it.ItemID)
	e.U8(uint8(it.ItemLevel))
	e.I32(it.ManufacturerID)
	e.I32(it.PlotConditionalID)
	e.Bool(it.NewItem)
	e.Bool(it.Junk)
	return unreal.EncodeSlice(e, it.AttachedMods)
}

type SimpleTalent struct {
	TalentID    int32
	CurrentRank int32
}

func (t *SimpleTalent) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if t.TalentID, err = d.I32(); err != nil {
		return err
	}
	t.CurrentRank, err = d.I32()
	return err
}

func (t *SimpleTalent) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(t.TalentID)
	e.I32(t.CurrentRank)
	return nil
}

type ComplexTalent struct {
	TalentID          int32
	CurrentRank       int32
	MaxRank           int32
	LevelOffset       int32
	LevelsPerRank     int32
	VisualOrder       int32
	PrereqTalentIDs   []int32
	PrereqTalentRanks []int32
}

func (t *ComplexTalent) fixed() []*int32 {
	return []*int32{&t.TalentID, &t.CurrentRank, &t.MaxRank, &t.LevelOffset, &t.LevelsPerRank, &t.VisualOrder}
}

func (t *ComplexTalent) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	for _, f := range t.fixed() {
		if *f, err = d.I32(); err != nil {
			return err
		}
	}
	if t.PrereqTalentIDs, err = unreal.DecodeI32s(d); err != nil {
		return err
	}
	t.PrereqTalentRanks, err = unreal.DecodeI32s(d)
	return err
}

func (t *ComplexTalent) MarshalUnreal(e *unreal.Encoder) error {
	for _, f := range t.fixed() {
		e.I32(*f)
	}
	unreal.EncodeI32s(e, t.PrereqTalentIDs)
	unreal.EncodeI32s(e, t.PrereqTalentRanks)
	return nil
}

type Inventory struct {
	Equipment  []Item
	QuickSlots []Item
	Items      []Item
	BuyPack    []Item
}

func (inv *Inventory) lists() []*[]Item {
	return []*[]Item{&inv.Equipment, &inv.QuickSlots, &inv.Items, &inv.BuyPack}
}

func (inv *Inventory) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	for _, l := range inv.lists() {
		if *l, err = unreal.DecodeSlice[Item](d); err != nil {
			return err
		}
	}
	return nil
}

func (inv *Inventory) MarshalUnreal(e *unreal.Encoder) error {
	for _, l := range inv.lists() {
		if err := unreal.EncodeSlice(e, *l); err != nil {
			return err
		}
	}
	return nil
}

type Hotkey struct {
	Pawn  int32
	Event int32
}

func (h *Hotkey) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if h.Pawn, err = d.I32(); err != nil {
		return err
	}
	h.Event, err = d.I32()
	return err
}

func (h *Hotkey) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(h.Pawn)
	e.I32(h.Event)
	return nil
}

// Player is Shepard's record. The five bytes after HelmetShown have no
// known meaning and are carried through unchanged.
type Player struct {
	IsFemale              bool
	LocalizedClassName    int32
	PlayerClass           uint8
	Level                 int32
	CurrentXP             float32
	FirstName             string
	LocalizedLastName     int32
	Origin                shared.Origin
	Notoriety             shared.Notoriety
	SpecializationBonusID int32
	SpectreRank           uint8
	TalentPoints          int32
	TalentPoolPoints      int32
	MappedTalent          string
	HasHeadMorph          bool
	HeadMorph             *shared.HeadMorph
	SimpleTalents         []SimpleTalent
	ComplexTalents        []ComplexTalent
	Inventory             Inventory
	Credits               int32
	Medigel               int32
	Grenades              float32
	Omnigel               float32
	FaceCode              string
	ArmorOverridden       bool
	AutoLevelUpTemplateID int32
	HealthPerLevel        float32
	Stability             float32
	Race                  uint8
	Toxic                 float32
	Stamina               int32
	Focus                 int32
	Precision             int32
	Coordination          int32
	AttributePrimary      uint8
	AttributeSecondary    uint8
	SkillCharm            float32
	SkillIntimidate       float32
	SkillHaggle           float32
	Health                float32
	Shield                float32
	XPLevel               int32
	IsDriving             bool
	GameOptions           []int32
	HelmetShown           bool
	Unknown               unreal.Dummy
	LastPower             string
	HealthMax             float32
	Hotkeys               []Hotkey
	PrimaryWeapon         string
	SecondaryWeapon       string
}

const playerUnknownSize = 5

func (p *Player) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if p.IsFemale, err = d.Bool(); err != nil {
		return err
	}
	if p.LocalizedClassName, err = d.I32(); err != nil {
		return err
	}
	if p.PlayerClass, err = d.U8(); err != nil {
		return err
	}
	if p.Level, err = d.I32(); err != nil {
		return err
	}
	if p.CurrentXP, err = d.F32(); err != nil {
		return err
	}
	if p.FirstName, err = d.Str(); err != nil {
		return fmt.Errorf("first name: %w", err)
	}
	if p.LocalizedLastName, err = d.I32(); err != nil {
		return err
	}
	if p.Origin, err = shared.DecodeOrigin(d); err != nil {
		return fmt.Errorf("origin: %w", err)
	}
	if p.Notoriety, err = shared.DecodeNotoriety(d); err != nil {
		return fmt.Errorf("notoriety: %w", err)
	}
	if p.SpecializationBonusID, err = d.I32(); err != nil {
		return err
	}
	if p.SpectreRank, err = d.U8(); err != nil {
		return err
	}
	if p.TalentPoints, err = d.I32(); err != nil {
		return err
	}
	if p.TalentPoolPoints, err = d.I32(); err != nil {
		return err
	}
	if p.MappedTalent, err = d.Str(); err != nil {
		return err
	}
	if p.HasHeadMorph, err = d.Bool(); err != nil {
		return err
	}
	if p.HeadMorph, err = unreal.DecodeOptional[shared.HeadMorph](d); err != nil {
		return fmt.Errorf("head morph: %w", err)
	}
	if p.SimpleTalents, err = unreal.DecodeSlice[SimpleTalent](d); err != nil {
		return fmt.Errorf("simple talents: %w", err)
	}
	if p.ComplexTalents, err = unreal.DecodeSlice[ComplexTalent](d); err != nil {
		return fmt.Errorf("complex talents: %w", err)
	}
	if err = p.Inventory.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("inventory: %w", err)
	}
	if p.Credits, err = d.I32(); err != nil {
		return err
	}
	if p.Medigel, err = d.I32(); err != nil {
		return err
	}
	if p.Grenades, err = d.F32(); err != nil {
		return err
	}
	if p.Omnigel, err = d.F32(); err != nil {
		return err
	}
	if p.FaceCode, err = d.Str(); err != nil {
		return err
	}
	if p.ArmorOverridden, err = d.Bool(); err != nil {
		return err
	}
	if p.AutoLevelUpTemplateID, err = d.I32(); err != nil {
		return err
	}
	if p.HealthPerLevel, err = d.F32(); err != nil {
		return err
	}
	if p.Stability, err = d.F32(); err != nil {
		return err
	}
	if p.Race, err = d.U8(); err != nil {
		return err
	}
	if p.Toxic, err = d.F32(); err != nil {
		return err
	}
	for _, v := range p.attributes() {
		if *v, err = d.I32(); err != nil {
			return err
		}
	}
	if p.AttributePrimary, err = d.U8(); err != nil {
		return err
	}
	if p.AttributeSecondary, err = d.U8(); err != nil {
		return err
	}
	for _, v := range p.skills() {
		if *v, err = d.F32(); err != nil {
			return err
		}
	}
	if p.XPLevel, err = d.I32(); err != nil {
		return err
	}
	if p.IsDriving, err = d.Bool(); err != nil {
		return err
	}
	if p.GameOptions, err = unreal.DecodeI32s(d); err != nil {
		return fmt.Errorf("game options: %w", err)
	}
	if p.HelmetShown, err = d.Bool(); err != nil {
		return err
	}
	if p.Unknown, err = d.ReadDummy(playerUnknownSize); err != nil {
		return err
	}
	if p.LastPower, err = d.Str(); err != nil {
		return err
	}
	if p.HealthMax, err = d.F32(); err != nil {
		return err
	}
	if p.Hotkeys, err = unreal.DecodeSlice[Hotkey](d); err != nil {
		return fmt.Errorf("hotkeys: %w", err)
	}
	if p.PrimaryWeapon, err = d.Str(); err != nil {
		return err
	}
	p.SecondaryWeapon, err = d.Str()
	return err
}

func (p *Player) attributes() []*int32 {
	return []*int32{&p.Stamina, &p.Focus, &p.Precision, &p.Coordination}
}

func (p *Player) skills() []*float32 {
	return []*float32{&p.SkillCharm, &p.SkillIntimidate, &p.SkillHaggle, &p.Health, &p.Shield}
}

func (p *Player) MarshalUnreal(e *unreal.Encoder) error {
	e.Bool(p.IsFemale)
	e.I32(p.LocalizedClassName)
	e.U8(p.PlayerClass)
	e.I32(p.Level)
	e.F32(p.CurrentXP)
	if err := e.Str(p.FirstName); err != nil {
		return fmt.Errorf("first name: %w", err)
	}
	e.I32(p.LocalizedLastName)
	e.U8(uint8(p.Origin))
	e.U8(uint8(p.Notoriety))
	e.I32(p.SpecializationBonusID)
	e.U8(p.SpectreRank)
	e.I32(p.TalentPoints)
	e.I32(p.TalentPoolPoints)
	if err := e.Str(p.MappedTalent); err != nil {
		return err
	}
	e.Bool(p.HasHeadMorph)
	if err := unreal.EncodeOptional(e, p.HeadMorph); err != nil {
		return fmt.Errorf("head morph: %w", err)
	}
	if err := unreal.EncodeSlice(e, p.SimpleTalents); err != nil {
		return err
	}
	if err := unreal.EncodeSlice(e, p.ComplexTalents); err != nil {
		return err
	}
	if err := p.Inventory.MarshalUnreal(e); err != nil {
		return fmt.Errorf("inventory: %w", err)
	}
	e.I32(p.Credits)
	e.I32(p.Medigel)
	e.F32(p.Grenades)
	e.F32(p.Omnigel)
	if err := e.Str(p.FaceCode); err != nil {
		return err
	}
	e.Bool(p.ArmorOverridden)
	e.I32(p.AutoLevelUpTemplateID)
	e.F32(p.HealthPerLevel)
	e.F32(p.Stability)
	e.U8(p.Race)
	e.F32(p.Toxic)
	for _, v := range p.attributes() {
		e.I32(*v)
	}
	e.U8(p.AttributePrimary)
	e.U8(p.AttributeSecondary)
	for _, v := range p.skills() {
		e.F32(*v)
	}
	e.I32(p.XPLevel)
	e.Bool(p.IsDriving)
	unreal.EncodeI32s(e, p.GameOptions)
	e.Bool(p.HelmetShown)
	if len(p.Unknown) != playerUnknownSize {
		return fmt.Errorf("player: unknown block is %d bytes, want %d", len(p.Unknown), playerUnknownSize)
	}
	p.Unknown.Put(e)
	if err := e.Str(p.LastPower); err != nil {
		return err
	}
	e.F32(p.HealthMax)
	if err := unreal.EncodeSlice(e, p.Hotkeys); err != nil {
		return err
	}
	if err := e.Str(p.PrimaryWeapon); err != nil {
		return err
	}
	return e.Str(p.SecondaryWeapon)
}

// SetHeadMorph replaces the head morph; nil removes it.
func (p *Player) SetHeadMorph(h *shared.HeadMorph) {
	p.HeadMorph = h
	p.HasHeadMorph = h != nil
}
