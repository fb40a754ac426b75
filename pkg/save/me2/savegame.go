// Package me2 implements the Mass Effect 2 save layout for the original PC
// and Xbox 360 releases and for the Legendary Edition.
package me2

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/goopsie/trilogySaveTools/pkg/checksum"
	"github.com/goopsie/trilogySaveTools/pkg/plot"
	"github.com/goopsie/trilogySaveTools/pkg/save/shared"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

// Edition selects the accepted version marker and the fields that differ
// between releases.
type Edition uint8

const (
	Vanilla   Edition = iota // version 29, PC or Xbox 360
	Legendary                // version 30, PC only
)

func (ed Edition) Version() int32 {
	if ed == Legendary {
		return 30
	}
	return 29
}

func (ed Edition) String() string {
	if ed == Legendary {
		return "ME2LE"
	}
	return "ME2"
}

type Difficulty uint8

const (
	Casual Difficulty = iota
	Normal
	Veteran
	Hardcore
	Insanity
	difficulties
)

var difficultyNames = [...]string{"Casual", "Normal", "Veteran", "Hardcore", "Insanity"}

func (d Difficulty) String() string {
	if d < difficulties {
		return difficultyNames[d]
	}
	return fmt.Sprintf("Difficulty(%d)", uint8(d))
}

// ParseDifficulty accepts the names returned by Difficulty.String, in any
// case.
func ParseDifficulty(s string) (Difficulty, error) {
	for i, name := range difficultyNames {
		if strings.EqualFold(name, s) {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

// SaveGame is a decoded ME2 save. ImportBonus is only stored by the
// Legendary edition.
type SaveGame struct {
	Edition Edition
	Xbox360 bool

	DebugName         string
	SecondsPlayed     float32
	Disc              int32
	BaseLevelName     string
	Difficulty        Difficulty
	EndGameState      shared.EndGameState
	Timestamp         shared.SaveTimeStamp
	Location          shared.Vector
	Rotation          shared.Rotator
	CurrentLoadingTip int32
	Levels            []shared.Level
	StreamingStates   []shared.StreamingState
	KismetRecords     []shared.KismetRecord
	Doors             []shared.Door
	Pawns             []unreal.Guid
	Player            Player
	ImportBonus       ImportBonus
	Squad             []Henchman
	Plot              plot.Table
	Journal           plot.QuestJournal
	Codex             plot.Codex
	ME1Plot           plot.Table
	GalaxyMap         GalaxyMap
	DependentDlcs     []DependentDlc
}

func (s *SaveGame) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if _, err = d.Version(s.Edition.Version(), s.Edition == Vanilla); err != nil {
		return err
	}
	s.Xbox360 = d.BigEndian()

	if s.DebugName, err = d.Str(); err != nil {
		return fmt.Errorf("debug name: %w", err)
	}
	if s.SecondsPlayed, err = d.F32(); err != nil {
		return err
	}
	if s.Disc, err = d.I32(); err != nil {
		return err
	}
	if s.BaseLevelName, err = d.Str(); err != nil {
		return fmt.Errorf("base level name: %w", err)
	}
	if s.Difficulty, err = unreal.DecodeEnum8[Difficulty](d, int(difficulties)); err != nil {
		return fmt.Errorf("difficulty: %w", err)
	}
	if s.EndGameState, err = shared.DecodeEndGameState(d); err != nil {
		return fmt.Errorf("end game state: %w", err)
	}
	if err = s.Timestamp.UnmarshalUnreal(d); err != nil {
		return err
	}
	if err = s.Location.UnmarshalUnreal(d); err != nil {
		return err
	}
	if err = s.Rotation.UnmarshalUnreal(d); err != nil {
		return err
	}
	if s.CurrentLoadingTip, err = d.I32(); err != nil {
		return err
	}
	if s.Levels, err = unreal.DecodeSlice[shared.Level](d); err != nil {
		return fmt.Errorf("levels: %w", err)
	}
	if s.StreamingStates, err = unreal.DecodeSlice[shared.StreamingState](d); err != nil {
		return fmt.Errorf("streaming states: %w", err)
	}
	if s.KismetRecords, err = unreal.DecodeSlice[shared.KismetRecord](d); err != nil {
		return fmt.Errorf("kismet records: %w", err)
	}
	if s.Doors, err = unreal.DecodeSlice[shared.Door](d); err != nil {
		return fmt.Errorf("doors: %w", err)
	}
	if s.Pawns, err = unreal.DecodeGuids(d); err != nil {
		return fmt.Errorf("pawns: %w", err)
	}
	if err = s.Player.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	if s.Edition == Legendary {
		if err = s.ImportBonus.UnmarshalUnreal(d); err != nil {
			return fmt.Errorf("import bonus: %w", err)
		}
	}
	if s.Squad, err = unreal.DecodeSlice[Henchman](d); err != nil {
		return fmt.Errorf("squad: %w", err)
	}
	if err = s.Plot.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	if err = s.Journal.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	if err = s.Codex.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("codex: %w", err)
	}
	if err = s.ME1Plot.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("me1 plot: %w", err)
	}
	if err = s.GalaxyMap.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("galaxy map: %w", err)
	}
	if s.DependentDlcs, err = unreal.DecodeSlice[DependentDlc](d); err != nil {
		return fmt.Errorf("dependent dlcs: %w", err)
	}
	return nil
}

func (s *SaveGame) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(s.Edition.Version())
	if err := e.Str(s.DebugName); err != nil {
		return err
	}
	e.F32(s.SecondsPlayed)
	e.I32(s.Disc)
	if err := e.Str(s.BaseLevelName); err != nil {
		return err
	}
	e.U8(uint8(s.Difficulty))
	e.U32(uint32(s.EndGameState))
	if err := s.Timestamp.MarshalUnreal(e); err != nil {
		return err
	}
	if err := s.Location.MarshalUnreal(e); err != nil {
		return err
	}
	if err := s.Rotation.MarshalUnreal(e); err != nil {
		return err
	}
	e.I32(s.CurrentLoadingTip)
	if err := unreal.EncodeSlice(e, s.Levels); err != nil {
		return fmt.Errorf("levels: %w", err)
	}
	if err := unreal.EncodeSlice(e, s.StreamingStates); err != nil {
		return fmt.Errorf("streaming states: %w", err)
	}
	if err := unreal.EncodeSlice(e, s.KismetRecords); err != nil {
		return err
	}
	if err := unreal.EncodeSlice(e, s.Doors); err != nil {
		return err
	}
	if err := unreal.EncodeGuids(e, s.Pawns); err != nil {
		return err
	}
	if err := s.Player.MarshalUnreal(e); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	if s.Edition == Legendary {
		if err := s.ImportBonus.MarshalUnreal(e); err != nil {
			return err
		}
	}
	if err := unreal.EncodeSlice(e, s.Squad); err != nil {
		return fmt.Errorf("squad: %w", err)
	}
	if err := s.Plot.MarshalUnreal(e); err != nil {
		return err
	}
	if err := s.Journal.MarshalUnreal(e); err != nil {
		return err
	}
	if err := s.Codex.MarshalUnreal(e); err != nil {
		return err
	}
	if err := s.ME1Plot.MarshalUnreal(e); err != nil {
		return err
	}
	if err := s.GalaxyMap.MarshalUnreal(e); err != nil {
		return err
	}
	if err := unreal.EncodeSlice(e, s.DependentDlcs); err != nil {
		return fmt.Errorf("dependent dlcs: %w", err)
	}
	return nil
}

// ByteOrder is big endian for Xbox 360 saves.
func (s *SaveGame) ByteOrder() binary.ByteOrder {
	if s.Xbox360 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Unmarshal decodes a complete save file of the given edition, including
// its trailing checksum, which is not verified.
func Unmarshal(data []byte, ed Edition) (*SaveGame, error) {
	s := &SaveGame{Edition: ed}
	rest, err := unreal.UnmarshalOrder(data, nil, s)
	if err != nil {
		return nil, err
	}
	if rest != 4 {
		return nil, &unreal.DataError{Data: data, Off: len(data) - rest, Err: unreal.ErrTrailingData,
			Msg: fmt.Sprintf("%d bytes after save data, want a 4-byte checksum", rest)}
	}
	return s, nil
}

// Marshal encodes the save and appends its checksum.
func (s *SaveGame) Marshal() ([]byte, error) {
	order := s.ByteOrder()
	if s.Xbox360 && s.Edition == Legendary {
		return nil, fmt.Errorf("%s saves have no Xbox 360 layout", s.Edition)
	}
	b, err := unreal.Marshal(order, s)
	if err != nil {
		return nil, err
	}
	return checksum.Append(b, order, checksum.CCITT32(b)), nil
}

// VerifyChecksum checks the trailing checksum of an encoded save.
func VerifyChecksum(data []byte, xbox360 bool) error {
	order := binary.ByteOrder(binary.LittleEndian)
	if xbox360 {
		order = binary.BigEndian
	}
	return checksum.VerifyTrailing(data, order, checksum.CCITT32)
}
