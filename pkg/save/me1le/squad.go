package me1le

import (
	"fmt"

	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

type Henchman struct {
	Tag                   string
	SimpleTalents         []SimpleTalent
	ComplexTalents        []ComplexTalent
	Equipment             []Item
	QuickSlots            []Item
	TalentPoints          int32
	TalentPoolPoints      int32
	AutoLevelUpTemplateID int32
	LocalizedLastName     int32
	LocalizedClassName    int32
	ClassBase             uint8
	HealthPerLevel        float32
	StabilityCurrent      float32
	Gender                uint8
	Race                  uint8
	ToxicCurrent          float32
	Stamina               int32
	Focus                 int32
	Precision             int32
	Coordination          int32
	AttributePrimary      uint8
	AttributeSecondary    uint8
	HealthCurrent         float32
	ShieldCurrent         float32
	Level                 int32
	HelmetShown           bool
	CurrentQuickSlot      uint8
	HealthMax             float32
}

func (h *Henchman) ints() []*int32 {
	return []*int32{&h.TalentPoints, &h.TalentPoolPoints, &h.AutoLevelUpTemplateID, &h.LocalizedLastName, &h.LocalizedClassName}
}

func (h *Henchman) attributes() []*int32 {
	return []*int32{&h.Stamina, &h.Focus, &h.Precision, &h.Coordination}
}

func (h *Henchman) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if h.Tag, err = d.Str(); err != nil {
		return err
	}
	if h.SimpleTalents, err = unreal.DecodeSlice[SimpleTalent](d); err != nil {
		return fmt.Errorf("%s: simple talents: %w", h.Tag, err)
	}
	if h.ComplexTalents, err = unreal.DecodeSlice[ComplexTalent](d); err != nil {
		return fmt.Errorf("%s: complex talents: %w", h.Tag, err)
	}
	if h.Equipment, err = unreal.DecodeSlice[Item](d); err != nil {
		return fmt.Errorf("%s: equipment: %w", h.Tag, err)
	}
	if h.QuickSlots, err = unreal.DecodeSlice[Item](d); err != nil {
		return fmt.Errorf("%s: quick slots: %w", h.Tag, err)
	}
	for _, v := range h.ints() {
		if *v, err = d.I32(); err != nil {
			return err
		}
	}
	if h.ClassBase, err = d.U8(); err != nil {
		return err
	}
	if h.HealthPerLevel, err = d.F32(); err != nil {
		return err
	}
	if h.StabilityCurrent, err = d.F32(); err != nil {
		return err
	}
	if h.Gender, err = d.U8(); err != nil {
		return err
	}
	if h.Race, err = d.U8(); err != nil {
		return err
	}
	if h.ToxicCurrent, err = d.F32(); err != nil {
		return err
	}
	for _, v := range h.attributes() {
		if *v, err = d.I32(); err != nil {
			return err
		}
	}
	if h.AttributePrimary, err = d.U8(); err != nil {
		return err
	}
	if h.AttributeSecondary, err = d.U8(); err != nil {
		return err
	}
	if h.HealthCurrent, err = d.F32(); err != nil {
		return err
	}
	if h.ShieldCurrent, err = d.F32(); err != nil {
		return err
	}
	if h.Level, err = d.I32(); err != nil {
		return err
	}
	if h.HelmetShown, err = d.Bool(); err != nil {
		return err
	}
	if h.CurrentQuickSlot, err = d.U8(); err != nil {
		return err
	}
	h.HealthMax, err = d.F32()
	return err
}

func (h *Henchman) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(h.Tag); err != nil {
		return err
	}
	if err := unreal.EncodeSlice(e, h.SimpleTalents); err != nil {
		return err
	}
	if err := unreal.EncodeSlice(e, h.ComplexTalents); err != nil {
		return err
	}
	if err := unreal.EncodeSlice(e, h.Equipment); err != nil {
		return err
	}
	if err := unreal.EncodeSlice(e, h.QuickSlots); err != nil {
		return err
	}
	for _, v := range h.ints() {
		e.I32(*v)
	}
	e.U8(h.ClassBase)
	e.F32(h.HealthPerLevel)
	e.F32(h.StabilityCurrent)
	e.U8(h.Gender)
	e.U8(h.Race)
	e.F32(h.ToxicCurrent)
	for _, v := range h.attributes() {
		e.I32(*v)
	}
	e.U8(h.AttributePrimary)
	e.U8(h.AttributeSecondary)
	e.F32(h.HealthCurrent)
	e.F32(h.ShieldCurrent)
	e.I32(h.Level)
	e.Bool(h.HelmetShown)
	e.U8(h.CurrentQuickSlot)
	e.F32(h.HealthMax)
	return nil
}
