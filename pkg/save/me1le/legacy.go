package me1le

import (
	"fmt"

	"github.com/goopsie/trilogySaveTools/pkg/save/shared"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

// NoExport is the world state that follows the file name in normal saves:
// the save objects of every visited map and the Mako.
type NoExport struct {
	LegacyMaps *unreal.OrderedMap[string, Map]
	Mako       Mako
}

func (n *NoExport) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if n.LegacyMaps, err = unreal.DecodeMap(d, (*unreal.Decoder).Str, unreal.DecodeStruct[Map]); err != nil {
		return fmt.Errorf("legacy maps: %w", err)
	}
	if err = n.Mako.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("mako: %w", err)
	}
	return nil
}

func (n *NoExport) MarshalUnreal(e *unreal.Encoder) error {
	if err := unreal.EncodeMap(e, n.LegacyMaps, (*unreal.Encoder).Str, unreal.EncodeStruct[Map]); err != nil {
		return fmt.Errorf("legacy maps: %w", err)
	}
	return n.Mako.MarshalUnreal(e)
}

type Mako struct {
	FirstName         string
	LocalizedLastName int32
	HealthCurrent     float32
	ShieldCurrent     float32
}

func (m *Mako) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if m.FirstName, err = d.Str(); err != nil {
		return err
	}
	if m.LocalizedLastName, err = d.I32(); err != nil {
		return err
	}
	if m.HealthCurrent, err = d.F32(); err != nil {
		return err
	}
	m.ShieldCurrent, err = d.F32()
	return err
}

func (m *Mako) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(m.FirstName); err != nil {
		return err
	}
	e.I32(m.LocalizedLastName)
	e.F32(m.HealthCurrent)
	e.F32(m.ShieldCurrent)
	return nil
}

// Map holds the save objects of one map, keyed by level name, and the
// map's world object.
type Map struct {
	Levels *unreal.OrderedMap[string, Level]
	World  *BaseObject
}

func (m *Map) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if m.Levels, err = unreal.DecodeMap(d, (*unreal.Decoder).Str, unreal.DecodeStruct[Level]); err != nil {
		return fmt.Errorf("levels: %w", err)
	}
	if m.World, err = decodeRef(d); err != nil {
		return fmt.Errorf("world: %w", err)
	}
	return nil
}

func (m *Map) MarshalUnreal(e *unreal.Encoder) error {
	if err := unreal.EncodeMap(e, m.Levels, (*unreal.Encoder).Str, unreal.EncodeStruct[Level]); err != nil {
		return fmt.Errorf("levels: %w", err)
	}
	return encodeRef(e, m.World)
}

type Level struct {
	Objects []BaseObject
	Actors  []string
}

func (l *Level) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if l.Objects, err = unreal.DecodeSlice[BaseObject](d); err != nil {
		return fmt.Errorf("objects: %w", err)
	}
	l.Actors, err = unreal.DecodeStrings(d)
	return err
}

func (l *Level) MarshalUnreal(e *unreal.Encoder) error {
	if err := unreal.EncodeSlice(e, l.Objects); err != nil {
		return fmt.Errorf("objects: %w", err)
	}
	return unreal.EncodeStrings(e, l.Actors)
}

// Object is the class-specific payload of a BaseObject. The concrete type
// is one of the pointer types registered in objectClasses.
type Object interface {
	MarshalUnreal(e *unreal.Encoder) error
}

// objectClasses selects the payload decoder from the object's class name.
// It is filled in init because the payloads refer back to BaseObject.
var objectClasses unreal.Variants[string, Object]

func init() {
	objectClasses = unreal.Variants[string, Object]{
		"BioPawnBehaviorSaveObject":         decodeObject[PawnBehavior],
		"BioPawnSaveObject":                 decodeObject[Pawn],
		"BioBaseSquadSaveObject":            decodeObject[BaseSquad],
		"BioShopSaveObject":                 decodeObject[Shop],
		"BioInventorySaveObject":            decodeObject[InventoryObject],
		"BioItemXModdableSaveObject":        decodeObject[ItemObject],
		"BioItemXModSaveObject":             decodeObject[ItemModObject],
		"BioArtPlaceableBehaviorSaveObject": decodeObject[ArtPlaceableBehavior],
		"BioArtPlaceableSaveObject":         decodeObject[ArtPlaceable],
		"BioVehicleBehaviorSaveObject":      decodeObject[VehicleBehavior],
		"BioVehicleSaveObject":              decodeObject[Vehicle],
		"BioWorldInfoSaveObject":            decodeObject[World],
	}
}

func decodeObject[T any, PT unreal.Pointer[T]](d *unreal.Decoder) (Object, error) {
	v, err := unreal.DecodeStruct[T, PT](d)
	if err != nil {
		return nil, err
	}
	return PT(&v), nil
}

// BaseObject is one saved actor or component. Its class name selects the
// payload type.
type BaseObject struct {
	ClassName  string
	OwnerName  string
	OwnerClass *string
	Object     Object
}

func (o *BaseObject) String() string { return o.OwnerName }

func (o *BaseObject) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	off := d.Cursor().Pos()
	if o.ClassName, err = d.Str(); err != nil {
		return err
	}
	if o.OwnerName, err = d.Str(); err != nil {
		return err
	}
	hasClass, err := d.Bool()
	if err != nil {
		return err
	}
	if hasClass {
		class, err := d.Str()
		if err != nil {
			return err
		}
		o.OwnerClass = &class
	}
	if o.Object, err = objectClasses.DecodeTagged(d, off, o.ClassName); err != nil {
		return fmt.Errorf("%s: %w", o.OwnerName, err)
	}
	return nil
}

func (o *BaseObject) MarshalUnreal(e *unreal.Encoder) error {
	if _, ok := objectClasses[o.ClassName]; !ok || o.Object == nil {
		return fmt.Errorf("%s: no %q payload", o.OwnerName, o.ClassName)
	}
	if err := e.Str(o.ClassName); err != nil {
		return err
	}
	if err := e.Str(o.OwnerName); err != nil {
		return err
	}
	e.Bool(o.OwnerClass != nil)
	if o.OwnerClass != nil {
		if err := e.Str(*o.OwnerClass); err != nil {
			return err
		}
	}
	if err := o.Object.MarshalUnreal(e); err != nil {
		return fmt.Errorf("%s: %w", o.OwnerName, err)
	}
	return nil
}

// decodeRef reads an optional object: a presence flag, then the object
// when the flag is set.
func decodeRef(d *unreal.Decoder) (*BaseObject, error) {
	if _, err := d.Bool(); err != nil {
		return nil, err
	}
	return unreal.DecodeOptional[BaseObject](d)
}

func encodeRef(e *unreal.Encoder, o *BaseObject) error {
	e.Bool(o != nil)
	return unreal.EncodeOptional(e, o)
}

// ObjectRef is an optional object stored as a list element.
type ObjectRef struct {
	Object *BaseObject
}

func (r *ObjectRef) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	r.Object, err = decodeRef(d)
	return err
}

func (r *ObjectRef) MarshalUnreal(e *unreal.Encoder) error {
	return encodeRef(e, r.Object)
}

func decodeBools(d *unreal.Decoder, dst ...*bool) (err error) {
	for _, b := range dst {
		if *b, err = d.Bool(); err != nil {
			return err
		}
	}
	return nil
}

func encodeBools(e *unreal.Encoder, src ...bool) {
	for _, b := range src {
		e.Bool(b)
	}
}

// ActorState is the movement block shared by pawns and vehicles.
type ActorState struct {
	Location          shared.Vector
	Rotation          shared.Rotator
	Velocity          shared.Vector
	Acceleration      shared.Vector
	ScriptInitialized bool
	Hidden            bool
	Stasis            bool
}

func (a *ActorState) UnmarshalUnreal(d *unreal.Decoder) error {
	if err := a.Location.UnmarshalUnreal(d); err != nil {
		return err
	}
	if err := a.Rotation.UnmarshalUnreal(d); err != nil {
		return err
	}
	if err := a.Velocity.UnmarshalUnreal(d); err != nil {
		return err
	}
	if err := a.Acceleration.UnmarshalUnreal(d); err != nil {
		return err
	}
	return decodeBools(d, &a.ScriptInitialized, &a.Hidden, &a.Stasis)
}

func (a *ActorState) MarshalUnreal(e *unreal.Encoder) error {
	if err := a.Location.MarshalUnreal(e); err != nil {
		return err
	}
	if err := a.Rotation.MarshalUnreal(e); err != nil {
		return err
	}
	if err := a.Velocity.MarshalUnreal(e); err != nil {
		return err
	}
	if err := a.Acceleration.MarshalUnreal(e); err != nil {
		return err
	}
	encodeBools(e, a.ScriptInitialized, a.Hidden, a.Stasis)
	return nil
}

// BehaviorState opens every behavior object.
type BehaviorState struct {
	IsDead            bool
	GeneratedTreasure bool
	ChallengeScaled   bool
	Owner             *BaseObject
}

func (b *BehaviorState) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if err = decodeBools(d, &b.IsDead, &b.GeneratedTreasure, &b.ChallengeScaled); err != nil {
		return err
	}
	if b.Owner, err = decodeRef(d); err != nil {
		return fmt.Errorf("owner: %w", err)
	}
	return nil
}

func (b *BehaviorState) MarshalUnreal(e *unreal.Encoder) error {
	encodeBools(e, b.IsDead, b.GeneratedTreasure, b.ChallengeScaled)
	return encodeRef(e, b.Owner)
}

// PawnStats is the fixed run of pawn behavior fields after the first name.
type PawnStats struct {
	LocalizedLastName int32
	HealthMax         float32
	HealthRegenRate   float32
	RadarRange        float32
	Level             int32
	HealthPerLevel    float32
	StabilityCurrent  float32
	Gender            uint8
	Race              uint8
	ToxicCurrent      float32
	Stamina           int32
	Focus             int32
	Precision         int32
	Coordination      int32
	QuickSlotCurrent  uint8
}

// PawnProgress is the fixed run of pawn behavior fields after the squad
// and inventory references.
type PawnProgress struct {
	Unknown                [3]byte
	Experience             int32
	TalentPoints           int32
	TalentPoolPoints       int32
	AttributePrimary       uint8
	AttributeSecondary     uint8
	ClassBase              uint8
	LocalizedClassName     int32
	AutoLevelUpTemplateID  int32
	SpectreRank            uint8
	BackgroundOrigin       uint8
	BackgroundNotoriety    uint8
	SpecializationBonusID  uint8
	SkillCharm             float32
	SkillIntimidate        float32
	SkillHaggle            float32
	Audibility             float32
	Blindness              float32
	DamageDurationMult     float32
	Deafness               float32
	UnlootableGrenadeCount int32
}

const (
	pawnStatsSize    = 51
	pawnProgressSize = 62
)

type PawnBehavior struct {
	BehaviorState
	HealthCurrent             float32
	ShieldCurrent             float32
	FirstName                 string
	Stats                     PawnStats
	Squad                     *BaseObject
	Inventory                 *BaseObject
	Progress                  PawnProgress
	HeadGearVisiblePreference bool
	SimpleTalents             []SimpleTalent
	ComplexTalents            []ComplexTalent
	QuickSlots                []ObjectRef
	Equipment                 []ObjectRef
}

func (p *PawnBehavior) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if err = p.BehaviorState.UnmarshalUnreal(d); err != nil {
		return err
	}
	if p.HealthCurrent, err = d.F32(); err != nil {
		return err
	}
	if p.ShieldCurrent, err = d.F32(); err != nil {
		return err
	}
	if p.FirstName, err = d.Str(); err != nil {
		return err
	}
	if p.Stats, err = unreal.DecodeFixed[PawnStats](d, pawnStatsSize); err != nil {
		return err
	}
	if p.Squad, err = decodeRef(d); err != nil {
		return fmt.Errorf("squad: %w", err)
	}
	if p.Inventory, err = decodeRef(d); err != nil {
		return fmt.Errorf("inventory: %w", err)
	}
	if p.Progress, err = unreal.DecodeFixed[PawnProgress](d, pawnProgressSize); err != nil {
		return err
	}
	if p.HeadGearVisiblePreference, err = d.Bool(); err != nil {
		return err
	}
	if p.SimpleTalents, err = unreal.DecodeSlice[SimpleTalent](d); err != nil {
		return fmt.Errorf("simple talents: %w", err)
	}
	if p.ComplexTalents, err = unreal.DecodeSlice[ComplexTalent](d); err != nil {
		return fmt.Errorf("complex talents: %w", err)
	}
	if p.QuickSlots, err = unreal.DecodeSlice[ObjectRef](d); err != nil {
		return fmt.Errorf("quick slots: %w", err)
	}
	if p.Equipment, err = unreal.DecodeSlice[ObjectRef](d); err != nil {
		return fmt.Errorf("equipment: %w", err)
	}
	return nil
}

func (p *PawnBehavior) MarshalUnreal(e *unreal.Encoder) error {
	if err := p.BehaviorState.MarshalUnreal(e); err != nil {
		return err
	}
	e.F32(p.HealthCurrent)
	e.F32(p.ShieldCurrent)
	if err := e.Str(p.FirstName); err != nil {
		return err
	}
	if err := unreal.EncodeFixed(e, p.Stats); err != nil {
		return err
	}
	if err := encodeRef(e, p.Squad); err != nil {
		return fmt.Errorf("squad: %w", err)
	}
	if err := encodeRef(e, p.Inventory); err != nil {
		return fmt.Errorf("inventory: %w", err)
	}
	if err := unreal.EncodeFixed(e, p.Progress); err != nil {
		return err
	}
	e.Bool(p.HeadGearVisiblePreference)
	if err := unreal.EncodeSlice(e, p.SimpleTalents); err != nil {
		return err
	}
	if err := unreal.EncodeSlice(e, p.ComplexTalents); err != nil {
		return err
	}
	if err := unreal.EncodeSlice(e, p.QuickSlots); err != nil {
		return fmt.Errorf("quick slots: %w", err)
	}
	if err := unreal.EncodeSlice(e, p.Equipment); err != nil {
		return fmt.Errorf("equipment: %w", err)
	}
	return nil
}

type Pawn struct {
	ActorState
	GrimeLevel                float32
	GrimeDirtLevel            float32
	TalkedToCount             int32
	HeadGearVisiblePreference bool
}

func (p *Pawn) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if err = p.ActorState.UnmarshalUnreal(d); err != nil {
		return err
	}
	if p.GrimeLevel, err = d.F32(); err != nil {
		return err
	}
	if p.GrimeDirtLevel, err = d.F32(); err != nil {
		return err
	}
	if p.TalkedToCount, err = d.I32(); err != nil {
		return err
	}
	p.HeadGearVisiblePreference, err = d.Bool()
	return err
}

func (p *Pawn) MarshalUnreal(e *unreal.Encoder) error {
	if err := p.ActorState.MarshalUnreal(e); err != nil {
		return err
	}
	e.F32(p.GrimeLevel)
	e.F32(p.GrimeDirtLevel)
	e.I32(p.TalkedToCount)
	e.Bool(p.HeadGearVisiblePreference)
	return nil
}

type BaseSquad struct {
	Inventory *BaseObject
}

func (s *BaseSquad) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	s.Inventory, err = decodeRef(d)
	return err
}

func (s *BaseSquad) MarshalUnreal(e *unreal.Encoder) error {
	return encodeRef(e, s.Inventory)
}

type Shop struct {
	LastPlayerLevel int32
	IsInitialized   bool
	Inventory       []ObjectRef
}

func (s *Shop) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if s.LastPlayerLevel, err = d.I32(); err != nil {
		return err
	}
	if s.IsInitialized, err = d.Bool(); err != nil {
		return err
	}
	s.Inventory, err = unreal.DecodeSlice[ObjectRef](d)
	return err
}

func (s *Shop) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(s.LastPlayerLevel)
	e.Bool(s.IsInitialized)
	return unreal.EncodeSlice(e, s.Inventory)
}

type PlotItem struct {
	LocalizedName     int32
	LocalizedDesc     int32
	ExportID          int32
	BasePrice         int32
	ShopGuiImageID    int32
	PlotConditionalID int32
}

func (p *PlotItem) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	*p, err = unreal.DecodeFixed[PlotItem](d, 24)
	return err
}

func (p *PlotItem) MarshalUnreal(e *unreal.Encoder) error {
	return unreal.EncodeFixed(e, *p)
}

// InventoryObject is the saved inventory of a container or squad.
type InventoryObject struct {
	Items     []BaseObject
	PlotItems []PlotItem
	Credits   int32
	Grenades  int32
	Medigel   float32
	Omnigel   float32
}

func (inv *InventoryObject) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if inv.Items, err = unreal.DecodeSlice[BaseObject](d); err != nil {
		return fmt.Errorf("items: %w", err)
	}
	if inv.PlotItems, err = unreal.DecodeSlice[PlotItem](d); err != nil {
		return fmt.Errorf("plot items: %w", err)
	}
	if inv.Credits, err = d.I32(); err != nil {
		return err
	}
	if inv.Grenades, err = d.I32(); err != nil {
		return err
	}
	if inv.Medigel, err = d.F32(); err != nil {
		return err
	}
	inv.Omnigel, err = d.F32()
	return err
}

func (inv *InventoryObject) MarshalUnreal(e *unreal.Encoder) error {
	if err := unreal.EncodeSlice(e, inv.Items); err != nil {
		return fmt.Errorf("items: %w", err)
	}
	if err := unreal.EncodeSlice(e, inv.PlotItems); err != nil {
		return err
	}
	e.I32(inv.Credits)
	e.I32(inv.Grenades)
	e.F32(inv.Medigel)
	e.F32(inv.Omnigel)
	return nil
}

type ModdableSlotSpec struct {
	TypeID int32
	Mods   []ObjectRef
}

func (s *ModdableSlotSpec) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if s.TypeID, err = d.I32(); err != nil {
		return err
	}
	s.Mods, err = unreal.DecodeSlice[ObjectRef](d)
	return err
}

func (s *ModdableSlotSpec) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(s.TypeID)
	return unreal.EncodeSlice(e, s.Mods)
}

// itemHeader opens both moddable items and mods.
type itemHeader struct {
	ItemID            int32
	ItemLevel         ItemLevel
	ManufacturerID    int32
	PlotConditionalID int32
}

func (h *itemHeader) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if h.ItemID, err = d.I32(); err != nil {
		return err
	}
	if h.ItemLevel, err = unreal.DecodeEnum8[ItemLevel](d, int(itemLevels)); err != nil {
		return fmt.Errorf("item %d: %w", h.ItemID, err)
	}
	if h.ManufacturerID, err = d.I32(); err != nil {
		return err
	}
	h.PlotConditionalID, err = d.I32()
	return err
}

func (h *itemHeader) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(h.ItemID)
	e.U8(uint8(h.ItemLevel))
	e.I32(h.ManufacturerID)
	e.I32(h.PlotConditionalID)
	return nil
}

type ItemObject struct {
	itemHeader
	SlotSpecs []ModdableSlotSpec
}

func (it *ItemObject) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if err = it.itemHeader.UnmarshalUnreal(d); err != nil {
		return err
	}
	it.SlotSpecs, err = unreal.DecodeSlice[ModdableSlotSpec](d)
	return err
}

func (it *ItemObject) MarshalUnreal(e *unreal.Encoder) error {
	if err := it.itemHeader.MarshalUnreal(e); err != nil {
		return err
	}
	return unreal.EncodeSlice(e, it.SlotSpecs)
}

type ItemModObject struct {
	itemHeader
	TypeID int32
}

func (m *ItemModObject) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if err = m.itemHeader.UnmarshalUnreal(d); err != nil {
		return err
	}
	m.TypeID, err = d.I32()
	return err
}

func (m *ItemModObject) MarshalUnreal(e *unreal.Encoder) error {
	if err := m.itemHeader.MarshalUnreal(e); err != nil {
		return err
	}
	e.I32(m.TypeID)
	return nil
}

type ArtPlaceableBehavior struct {
	BehaviorState
	Health              float32
	CurrentHealth       float32
	Enabled             bool
	CurrentFSMStateName string
	IsDestroyed         bool
	State0              string
	State1              string
	UseCase             uint8
	UseCaseOverride     bool
	PlayerOnly          bool
	SkillDifficulty     uint8
	Inventory           *BaseObject
	SkillGameFailed     bool
	SkillGameXPAwarded  bool
}

func (a *ArtPlaceableBehavior) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if err = a.BehaviorState.UnmarshalUnreal(d); err != nil {
		return err
	}
	if a.Health, err = d.F32(); err != nil {
		return err
	}
	if a.CurrentHealth, err = d.F32(); err != nil {
		return err
	}
	if a.Enabled, err = d.Bool(); err != nil {
		return err
	}
	if a.CurrentFSMStateName, err = d.Str(); err != nil {
		return err
	}
	if a.IsDestroyed, err = d.Bool(); err != nil {
		return err
	}
	if a.State0, err = d.Str(); err != nil {
		return err
	}
	if a.State1, err = d.Str(); err != nil {
		return err
	}
	if a.UseCase, err = d.U8(); err != nil {
		return err
	}
	if err = decodeBools(d, &a.UseCaseOverride, &a.PlayerOnly); err != nil {
		return err
	}
	if a.SkillDifficulty, err = d.U8(); err != nil {
		return err
	}
	if a.Inventory, err = decodeRef(d); err != nil {
		return fmt.Errorf("inventory: %w", err)
	}
	return decodeBools(d, &a.SkillGameFailed, &a.SkillGameXPAwarded)
}

func (a *ArtPlaceableBehavior) MarshalUnreal(e *unreal.Encoder) error {
	if err := a.BehaviorState.MarshalUnreal(e); err != nil {
		return err
	}
	e.F32(a.Health)
	e.F32(a.CurrentHealth)
	e.Bool(a.Enabled)
	if err := e.Str(a.CurrentFSMStateName); err != nil {
		return err
	}
	e.Bool(a.IsDestroyed)
	if err := e.Str(a.State0); err != nil {
		return err
	}
	if err := e.Str(a.State1); err != nil {
		return err
	}
	e.U8(a.UseCase)
	encodeBools(e, a.UseCaseOverride, a.PlayerOnly)
	e.U8(a.SkillDifficulty)
	if err := encodeRef(e, a.Inventory); err != nil {
		return fmt.Errorf("inventory: %w", err)
	}
	encodeBools(e, a.SkillGameFailed, a.SkillGameXPAwarded)
	return nil
}

// ArtPlaceable payloads are not decoded.
type ArtPlaceable struct {
	Unknown unreal.Dummy
}

const artPlaceableSize = 60

func (a *ArtPlaceable) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	a.Unknown, err = d.ReadDummy(artPlaceableSize)
	return err
}

func (a *ArtPlaceable) MarshalUnreal(e *unreal.Encoder) error {
	if len(a.Unknown) != artPlaceableSize {
		return fmt.Errorf("art placeable block is %d bytes, want %d", len(a.Unknown), artPlaceableSize)
	}
	a.Unknown.Put(e)
	return nil
}

type VehicleBehavior struct {
	ActorType              string
	PowertrainEnabled      bool
	VehicleFunctionEnabled bool
	Owner                  *BaseObject
}

func (v *VehicleBehavior) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if v.ActorType, err = d.Str(); err != nil {
		return err
	}
	if err = decodeBools(d, &v.PowertrainEnabled, &v.VehicleFunctionEnabled); err != nil {
		return err
	}
	if v.Owner, err = decodeRef(d); err != nil {
		return fmt.Errorf("owner: %w", err)
	}
	return nil
}

func (v *VehicleBehavior) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(v.ActorType); err != nil {
		return err
	}
	encodeBools(e, v.PowertrainEnabled, v.VehicleFunctionEnabled)
	return encodeRef(e, v.Owner)
}

const vehicleUnknownSize = 16

type Vehicle struct {
	ActorState
	HealthCurrent     float32
	ShieldCurrent     float32
	FirstName         string
	LocalizedLastName int32
	Unknown           unreal.Dummy
}

func (v *Vehicle) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if err = v.ActorState.UnmarshalUnreal(d); err != nil {
		return err
	}
	if v.HealthCurrent, err = d.F32(); err != nil {
		return err
	}
	if v.ShieldCurrent, err = d.F32(); err != nil {
		return err
	}
	if v.FirstName, err = d.Str(); err != nil {
		return err
	}
	if v.LocalizedLastName, err = d.I32(); err != nil {
		return err
	}
	v.Unknown, err = d.ReadDummy(vehicleUnknownSize)
	return err
}

func (v *Vehicle) MarshalUnreal(e *unreal.Encoder) error {
	if err := v.ActorState.MarshalUnreal(e); err != nil {
		return err
	}
	e.F32(v.HealthCurrent)
	e.F32(v.ShieldCurrent)
	if err := e.Str(v.FirstName); err != nil {
		return err
	}
	e.I32(v.LocalizedLastName)
	if len(v.Unknown) != vehicleUnknownSize {
		return fmt.Errorf("vehicle block is %d bytes, want %d", len(v.Unknown), vehicleUnknownSize)
	}
	v.Unknown.Put(e)
	return nil
}

type WorldStreamingState struct {
	Name    string
	Enabled uint8
}

func (s *WorldStreamingState) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if s.Name, err = d.Str(); err != nil {
		return err
	}
	s.Enabled, err = d.U8()
	return err
}

func (s *WorldStreamingState) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(s.Name); err != nil {
		return err
	}
	e.U8(s.Enabled)
	return nil
}

// World is the per-map world info object: galaxy map scans, journal and
// codex UI state, and loot waiting to be picked up.
type World struct {
	StreamingStates               []WorldStreamingState
	DestinationAreaMap            string
	Destination                   shared.Vector
	CinematicsSeen                []string
	ScannedClusters               []int32
	ScannedSystems                []int32
	ScannedPlanets                []int32
	JournalSortMethod             uint8
	JournalShowingMissions        bool
	JournalLastSelectedMission    int32
	JournalLastSelectedAssignment int32
	CodexShowingPrimary           bool
	CodexLastSelectedPrimary      int32
	CodexLastSelectedSecondary    int32
	CurrentTipID                  int32
	OverrideTip                   int32
	BrowserAlerts                 [8]byte
	PendingLoot                   *BaseObject
}

func (w *World) scans() []*[]int32 {
	return []*[]int32{&w.ScannedClusters, &w.ScannedSystems, &w.ScannedPlanets}
}

func (w *World) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if w.StreamingStates, err = unreal.DecodeSlice[WorldStreamingState](d); err != nil {
		return fmt.Errorf("streaming states: %w", err)
	}
	if w.DestinationAreaMap, err = d.Str(); err != nil {
		return err
	}
	if err = w.Destination.UnmarshalUnreal(d); err != nil {
		return err
	}
	if w.CinematicsSeen, err = unreal.DecodeStrings(d); err != nil {
		return fmt.Errorf("cinematics: %w", err)
	}
	for _, s := range w.scans() {
		if *s, err = unreal.DecodeI32s(d); err != nil {
			return fmt.Errorf("scans: %w", err)
		}
	}
	if w.JournalSortMethod, err = d.U8(); err != nil {
		return err
	}
	if w.JournalShowingMissions, err = d.Bool(); err != nil {
		return err
	}
	if w.JournalLastSelectedMission, err = d.I32(); err != nil {
		return err
	}
	if w.JournalLastSelectedAssignment, err = d.I32(); err != nil {
		return err
	}
	if w.CodexShowingPrimary, err = d.Bool(); err != nil {
		return err
	}
	for _, v := range []*int32{&w.CodexLastSelectedPrimary, &w.CodexLastSelectedSecondary, &w.CurrentTipID, &w.OverrideTip} {
		if *v, err = d.I32(); err != nil {
			return err
		}
	}
	alerts, err := d.Bytes(len(w.BrowserAlerts))
	if err != nil {
		return err
	}
	copy(w.BrowserAlerts[:], alerts)
	if w.PendingLoot, err = decodeRef(d); err != nil {
		return fmt.Errorf("pending loot: %w", err)
	}
	return nil
}

func (w *World) MarshalUnreal(e *unreal.Encoder) error {
	if err := unreal.EncodeSlice(e, w.StreamingStates); err != nil {
		return err
	}
	if err := e.Str(w.DestinationAreaMap); err != nil {
		return err
	}
	if err := w.Destination.MarshalUnreal(e); err != nil {
		return err
	}
	if err := unreal.EncodeStrings(e, w.CinematicsSeen); err != nil {
		return err
	}
	for _, s := range w.scans() {
		unreal.EncodeI32s(e, *s)
	}
	e.U8(w.JournalSortMethod)
	e.Bool(w.JournalShowingMissions)
	e.I32(w.JournalLastSelectedMission)
	e.I32(w.JournalLastSelectedAssignment)
	e.Bool(w.CodexShowingPrimary)
	e.I32(w.CodexLastSelectedPrimary)
	e.I32(w.CodexLastSelectedSecondary)
	e.I32(w.CurrentTipID)
	e.I32(w.OverrideTip)
	e.Raw(w.BrowserAlerts[:])
	return encodeRef(e, w.PendingLoot)
}
