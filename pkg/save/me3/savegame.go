// Package me3 implements the Mass Effect 3 save layout for PC and Xbox 360.
package me3

import (
	"encoding/binary"
	"fmt"

	"github.com/goopsie/trilogySaveTools/pkg/checksum"
	"github.com/goopsie/trilogySaveTools/pkg/plot"
	"github.com/goopsie/trilogySaveTools/pkg/save/shared"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

const Version int32 = 59

type SaveGame struct {
	Xbox360 bool

	DebugName                    string
	SecondsPlayed                float32
	Disc                         int32
	BaseLevelName                string
	BaseLevelNameDisplayOverride string
	Difficulty                   Difficulty
	EndGameState                 shared.EndGameState
	Timestamp                    shared.SaveTimeStamp
	Location                     shared.Vector
	Rotation                     shared.Rotator
	CurrentLoadingTip            int32
	Levels                       []shared.Level
	StreamingStates              []shared.StreamingState
	KismetRecords                []shared.KismetRecord
	Doors                        []shared.Door
	Placeables                   []Placeable
	Pawns                        []unreal.Guid
	Player                       Player
	Squad                        []Henchman
	Plot                         plot.MapTable
	Journal                      plot.GoalJournal
	Codex                        plot.Codex
	ME1Plot                      plot.Table
	PlayerVariables              *unreal.OrderedMap[string, int32]
	GalaxyMap                    GalaxyMap
	DependentDlcs                []DependentDlc
	Treasures                    []LevelTreasure
	UseModules                   []unreal.Guid
	ConversationMode             ConversationMode
	ObjectiveMarkers             []ObjectiveMarker
	SavedObjectiveText           int32
}

func (s *SaveGame) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if _, err = d.Version(Version, true); err != nil {
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
	if s.BaseLevelNameDisplayOverride, err = d.Str(); err != nil {
		return fmt.Errorf("base level name override: %w", err)
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
	if s.Placeables, err = unreal.DecodeSlice[Placeable](d); err != nil {
		return fmt.Errorf("placeables: %w", err)
	}
	if s.Pawns, err = unreal.DecodeGuids(d); err != nil {
		return fmt.Errorf("pawns: %w", err)
	}
	if err = s.Player.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("player: %w", err)
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
	if s.PlayerVariables, err = unreal.DecodeMap(d, (*unreal.Decoder).Str, (*unreal.Decoder).I32); err != nil {
		return fmt.Errorf("player variables: %w", err)
	}
	if err = s.GalaxyMap.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("galaxy map: %w", err)
	}
	if s.DependentDlcs, err = unreal.DecodeSlice[DependentDlc](d); err != nil {
		return fmt.Errorf("dependent dlcs: %w", err)
	}
	if s.Treasures, err = unreal.DecodeSlice[LevelTreasure](d); err != nil {
		return fmt.Errorf("treasures: %w", err)
	}
	if s.UseModules, err = unreal.DecodeGuids(d); err != nil {
		return fmt.Errorf("use modules: %w", err)
	}
	if s.ConversationMode, err = unreal.DecodeEnum8[ConversationMode](d, int(conversationModes)); err != nil {
		return fmt.Errorf("conversation mode: %w", err)
	}
	if s.ObjectiveMarkers, err = unreal.DecodeSlice[ObjectiveMarker](d); err != nil {
		return fmt.Errorf("objective markers: %w", err)
	}
	s.SavedObjectiveText, err = d.I32()
	return err
}

func (s *SaveGame) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(Version)
	if err := e.Str(s.DebugName); err != nil {
		return err
	}
	e.F32(s.SecondsPlayed)
	e.I32(s.Disc)
	if err := e.Str(s.BaseLevelName); err != nil {
		return err
	}
	if err := e.Str(s.BaseLevelNameDisplayOverride); err != nil {
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
	if err := unreal.EncodeSlice(e, s.Placeables); err != nil {
		return err
	}
	if err := unreal.EncodeGuids(e, s.Pawns); err != nil {
		return err
	}
	if err := s.Player.MarshalUnreal(e); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	if err := unreal.EncodeSlice(e, s.Squad); err != nil {
		return fmt.Errorf("squad: %w", err)
	}
	if err := s.Plot.MarshalUnreal(e); err != nil {
		return fmt.Errorf("plot: %w", err)
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
	if err := unreal.EncodeMap(e, s.PlayerVariables, (*unreal.Encoder).Str, unreal.PutI32); err != nil {
		return fmt.Errorf("player variables: %w", err)
	}
	if err := s.GalaxyMap.MarshalUnreal(e); err != nil {
		return err
	}
	if err := unreal.EncodeSlice(e, s.DependentDlcs); err != nil {
		return fmt.Errorf("dependent dlcs: %w", err)
	}
	if err := unreal.EncodeSlice(e, s.Treasures); err != nil {
		return fmt.Errorf("treasures: %w", err)
	}
	if err := unreal.EncodeGuids(e, s.UseModules); err != nil {
		return err
	}
	e.U8(uint8(s.ConversationMode))
	if err := unreal.EncodeSlice(e, s.ObjectiveMarkers); err != nil {
		return fmt.Errorf("objective markers: %w", err)
	}
	e.I32(s.SavedObjectiveText)
	return nil
}

// ByteOrder is big endian for Xbox 360 saves.
func (s *SaveGame) ByteOrder() binary.ByteOrder {
	if s.Xbox360 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Unmarshal decodes a complete save file including its trailing checksum,
// which is not verified.
func Unmarshal(data []byte) (*SaveGame, error) {
	s := &SaveGame{}
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

// Marshal encodes the save in its platform byte order and appends the
// checksum in that order.
func (s *SaveGame) Marshal() ([]byte, error) {
	order := s.ByteOrder()
	b, err := unreal.Marshal(order, s)
	if err != nil {
		return nil, err
	}
	return checksum.Append(b, order, checksum.CCITT32(b)), nil
}

// VerifyChecksum checks the trailing CRC of an ME3 file.
func VerifyChecksum(data []byte, xbox360 bool) error {
	order := binary.ByteOrder(binary.LittleEndian)
	if xbox360 {
		order = binary.BigEndian
	}
	return checksum.VerifyTrailing(data, order, checksum.CCITT32)
}
