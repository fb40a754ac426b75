// Package shared holds the schema records common to several games: world
// positions, timestamps, streaming levels, appearance and head morphs.
package shared

import (
	"fmt"

	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

type SaveTimeStamp struct {
	SecondsSinceMidnight int32
	Day                  int32
	Month                int32
	Year                 int32
}

func (t *SaveTimeStamp) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if t.SecondsSinceMidnight, err = d.I32(); err != nil {
		return err
	}
	if t.Day, err = d.I32(); err != nil {
		return err
	}
	if t.Month, err = d.I32(); err != nil {
		return err
	}
	t.Year, err = d.I32()
	return err
}

func (t *SaveTimeStamp) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(t.SecondsSinceMidnight)
	e.I32(t.Day)
	e.I32(t.Month)
	e.I32(t.Year)
	return nil
}

func (t SaveTimeStamp) String() string {
	s := t.SecondsSinceMidnight
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", t.Year, t.Month, t.Day, s/3600, s/60%60, s%60)
}

type Vector struct {
	X, Y, Z float32
}

func (v *Vector) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if v.X, err = d.F32(); err != nil {
		return err
	}
	if v.Y, err = d.F32(); err != nil {
		return err
	}
	v.Z, err = d.F32()
	return err
}

func (v *Vector) MarshalUnreal(e *unreal.Encoder) error {
	e.F32(v.X)
	e.F32(v.Y)
	e.F32(v.Z)
	return nil
}

type Vector2d struct {
	X, Y float32
}

func (v *Vector2d) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if v.X, err = d.F32(); err != nil {
		return err
	}
	v.Y, err = d.F32()
	return err
}

func (v *Vector2d) MarshalUnreal(e *unreal.Encoder) error {
	e.F32(v.X)
	e.F32(v.Y)
	return nil
}

type Rotator struct {
	Pitch, Yaw, Roll int32
}

func (r *Rotator) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if r.Pitch, err = d.I32(); err != nil {
		return err
	}
	if r.Yaw, err = d.I32(); err != nil {
		return err
	}
	r.Roll, err = d.I32()
	return err
}

func (r *Rotator) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(r.Pitch)
	e.I32(r.Yaw)
	e.I32(r.Roll)
	return nil
}

type Level struct {
	Name            string
	ShouldBeLoaded  bool
	ShouldBeVisible bool
}

func (l *Level) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if l.Name, err = d.Str(); err != nil {
		return err
	}
	if l.ShouldBeLoaded, err = d.Bool(); err != nil {
		return err
	}
	l.ShouldBeVisible, err = d.Bool()
	return err
}

func (l *Level) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(l.Name); err != nil {
		return err
	}
	e.Bool(l.ShouldBeLoaded)
	e.Bool(l.ShouldBeVisible)
	return nil
}

type StreamingState struct {
	Name     string
	IsActive bool
}

func (s *StreamingState) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if s.Name, err = d.Str(); err != nil {
		return err
	}
	s.IsActive, err = d.Bool()
	return err
}

func (s *StreamingState) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(s.Name); err != nil {
		return err
	}
	e.Bool(s.IsActive)
	return nil
}

type KismetRecord struct {
	Guid  unreal.Guid
	Value bool
}

func (k *KismetRecord) UnmarshalUnreal(d *unreal.Decoder) error {
	if err := k.Guid.UnmarshalUnreal(d); err != nil {
		return err
	}
	v, err := d.Bool()
	k.Value = v
	return err
}

func (k *KismetRecord) MarshalUnreal(e *unreal.Encoder) error {
	if err := k.Guid.MarshalUnreal(e); err != nil {
		return err
	}
	e.Bool(k.Value)
	return nil
}

type Door struct {
	Guid         unreal.Guid
	CurrentState uint8
	OldState     uint8
}

func (r *Door) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if err = r.Guid.UnmarshalUnreal(d); err != nil {
		return err
	}
	if r.CurrentState, err = d.U8(); err != nil {
		return err
	}
	r.OldState, err = d.U8()
	return err
}

func (r *Door) MarshalUnreal(e *unreal.Encoder) error {
	if err := r.Guid.MarshalUnreal(e); err != nil {
		return err
	}
	e.U8(r.CurrentState)
	e.U8(r.OldState)
	return nil
}

type EndGameState uint32

const (
	NotFinished EndGameState = iota
	OutInABlazeOfGlory
	LivedToFightAgain
	endGameStates
)

func (s EndGameState) String() string {
	switch s {
	case NotFinished:
		return "NotFinished"
	case OutInABlazeOfGlory:
		return "OutInABlazeOfGlory"
	case LivedToFightAgain:
		return "LivedToFightAgain"
	}
	return fmt.Sprintf("EndGameState(%d)", uint32(s))
}

func DecodeEndGameState(d *unreal.Decoder) (EndGameState, error) {
	return unreal.DecodeEnum32[EndGameState](d, int(endGameStates))
}

type Origin uint8

const (
	OriginNone Origin = iota
	Spacer
	Colonist
	Earthborn
	origins
)

var originNames = [...]string{"None", "Spacer", "Colonist", "Earthborn"}

func (o Origin) String() string {
	if o < origins {
		return originNames[o]
	}
	return fmt.Sprintf("Origin(%d)", uint8(o))
}

func DecodeOrigin(d *unreal.Decoder) (Origin, error) {
	return unreal.DecodeEnum8[Origin](d, int(origins))
}

type Notoriety uint8

const (
	NotorietyNone Notoriety = iota
	Survivor
	Warhero
	Ruthless
	notorieties
)

var notorietyNames = [...]string{"None", "Survivor", "Warhero", "Ruthless"}

func (n Notoriety) String() string {
	if n < notorieties {
		return notorietyNames[n]
	}
	return fmt.Sprintf("Notoriety(%d)", uint8(n))
}

func DecodeNotoriety(d *unreal.Decoder) (Notoriety, error) {
	return unreal.DecodeEnum8[Notoriety](d, int(notorieties))
}

// WeaponLoadout is the class name equipped in each weapon slot.
type WeaponLoadout struct {
	AssaultRifle  string
	Shotgun       string
	SniperRifle   string
	SubmachineGun string
	Pistol        string
	HeavyWeapon   string
}

func (w *WeaponLoadout) slots() []*string {
	return []*string{&w.AssaultRifle, &w.Shotgun, &w.SniperRifle, &w.SubmachineGun, &w.Pistol, &w.HeavyWeapon}
}

func (w *WeaponLoadout) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	for _, s := range w.slots() {
		if *s, err = d.Str(); err != nil {
			return err
		}
	}
	return nil
}

func (w *WeaponLoadout) MarshalUnreal(e *unreal.Encoder) error {
	for _, s := range w.slots() {
		if err := e.Str(*s); err != nil {
			return err
		}
	}
	return nil
}
