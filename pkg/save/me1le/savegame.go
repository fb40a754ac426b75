// Package me1le implements the Mass Effect 1 Legendary Edition save layout.
// PC saves wrap the save data in a chunked zlib stream; PS4 saves store it
// uncompressed.
package me1le

import (
	"encoding/binary"
	"fmt"

	"github.com/golang/glog"

	"github.com/goopsie/trilogySaveTools/pkg/container"
	"github.com/goopsie/trilogySaveTools/pkg/plot"
	"github.com/goopsie/trilogySaveTools/pkg/save/shared"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

const Version int32 = 50

// SaveData is the decoded save body shared by the PC and PS4 files.
//
// NoExport holds the world state that follows the file name in normal
// saves. Character export saves end at the file name and leave it nil.
type SaveData struct {
	CharacterID   string
	CreatedDate   shared.SaveTimeStamp
	Plot          plot.Table
	Timestamp     shared.SaveTimeStamp
	SecondsPlayed int32
	Player        Player
	BaseLevelName string
	MapName       string
	ParentMapName string
	Location      shared.Vector
	Rotation      shared.Rotator
	Squad         []Henchman
	DisplayName   string
	FileName      string
	NoExport      *NoExport
}

// IsExport reports whether the save is a character export.
func (s *SaveData) IsExport() bool { return s.NoExport == nil }

func (s *SaveData) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if _, err = d.Version(Version, false); err != nil {
		return err
	}
	if s.CharacterID, err = d.Str(); err != nil {
		return fmt.Errorf("character id: %w", err)
	}
	if err = s.CreatedDate.UnmarshalUnreal(d); err != nil {
		return err
	}
	if err = s.Plot.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	if err = s.Timestamp.UnmarshalUnreal(d); err != nil {
		return err
	}
	if s.SecondsPlayed, err = d.I32(); err != nil {
		return err
	}
	if err = s.Player.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	for _, name := range s.names() {
		if *name, err = d.Str(); err != nil {
			return err
		}
	}
	if err = s.Location.UnmarshalUnreal(d); err != nil {
		return err
	}
	if err = s.Rotation.UnmarshalUnreal(d); err != nil {
		return err
	}
	if s.Squad, err = unreal.DecodeSlice[Henchman](d); err != nil {
		return fmt.Errorf("squad: %w", err)
	}
	if s.DisplayName, err = d.Str(); err != nil {
		return err
	}
	if s.FileName, err = d.Str(); err != nil {
		return err
	}
	if d.Cursor().Remaining() == 0 {
		s.NoExport = nil
		return nil
	}
	s.NoExport = &NoExport{}
	if err = s.NoExport.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("world state: %w", err)
	}
	return nil
}

func (s *SaveData) names() []*string {
	return []*string{&s.BaseLevelName, &s.MapName, &s.ParentMapName}
}

func (s *SaveData) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(Version)
	if err := e.Str(s.CharacterID); err != nil {
		return fmt.Errorf("character id: %w", err)
	}
	if err := s.CreatedDate.MarshalUnreal(e); err != nil {
		return err
	}
	if err := s.Plot.MarshalUnreal(e); err != nil {
		return err
	}
	if err := s.Timestamp.MarshalUnreal(e); err != nil {
		return err
	}
	e.I32(s.SecondsPlayed)
	if err := s.Player.MarshalUnreal(e); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	for _, name := range s.names() {
		if err := e.Str(*name); err != nil {
			return err
		}
	}
	if err := s.Location.MarshalUnreal(e); err != nil {
		return err
	}
	if err := s.Rotation.MarshalUnreal(e); err != nil {
		return err
	}
	if err := unreal.EncodeSlice(e, s.Squad); err != nil {
		return fmt.Errorf("squad: %w", err)
	}
	if err := e.Str(s.DisplayName); err != nil {
		return err
	}
	if err := e.Str(s.FileName); err != nil {
		return err
	}
	if s.NoExport != nil {
		if err := s.NoExport.MarshalUnreal(e); err != nil {
			return fmt.Errorf("world state: %w", err)
		}
	}
	return nil
}

// UnmarshalPS4 decodes an uncompressed PS4 save.
func UnmarshalPS4(data []byte) (*SaveData, error) {
	s := &SaveData{}
	if err := unreal.Unmarshal(data, binary.LittleEndian, s); err != nil {
		return nil, err
	}
	return s, nil
}

// MarshalPS4 encodes s as an uncompressed PS4 save. PS4 saves carry no
// checksum.
func (s *SaveData) MarshalPS4() ([]byte, error) {
	return unreal.Marshal(binary.LittleEndian, s)
}

// SaveGame is a PC save: the save data plus the layout of the chunked
// stream it was read from.
type SaveGame struct {
	Frame *container.ChunkedFrame
	Data  SaveData
}

// Unmarshal decodes a PC save. The embedded checksum is not verified.
func Unmarshal(data []byte) (*SaveGame, error) {
	if !container.IsChunked(data) {
		return nil, &unreal.DataError{Data: data, Err: unreal.ErrVersionMismatch, Msg: "missing chunked stream magic"}
	}
	frame, payload, err := container.DecodeChunked(data)
	if err != nil {
		return nil, err
	}
	s := &SaveGame{Frame: frame}
	if err := unreal.Unmarshal(payload, binary.LittleEndian, &s.Data); err != nil {
		return nil, fmt.Errorf("save data: %w", err)
	}
	glog.V(2).Infof("me1le: %q, export=%t, %d chunks", s.Data.DisplayName, s.Data.IsExport(), len(frame.Chunks))
	return s, nil
}

// Marshal re-encodes the save with the block size and compression flag it
// was read with, and embeds a fresh checksum.
func (s *SaveGame) Marshal() ([]byte, error) {
	payload, err := unreal.Marshal(binary.LittleEndian, &s.Data)
	if err != nil {
		return nil, err
	}
	var opts []container.ChunkedOption
	if s.Frame != nil {
		opts = s.Frame.Options()
	}
	return container.EncodeChunked(payload, opts...)
}

// VerifyChecksum checks the checksum embedded in a PC save.
func VerifyChecksum(data []byte) error {
	return container.VerifyChunked(data)
}
