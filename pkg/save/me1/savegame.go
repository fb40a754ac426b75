// Package me1 implements the original Mass Effect PC save: a zip archive
// holding the player package, the world state and, for normal saves, the
// world save package.
package me1

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"github.com/goopsie/trilogySaveTools/pkg/container"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

// Archive entry names.
const (
	PlayerEntry = "player.sav"
	StateEntry  = "state.sav"
	WorldEntry  = "WorldSavePackage.sav"
)

// ErrMissingEntry is returned when a required archive entry is absent.
var ErrMissingEntry = errors.New("missing archive entry")

var defaultEntries = []string{PlayerEntry, StateEntry, WorldEntry}

// SaveGame is a decoded ME1 save. WorldSavePackage is kept as raw bytes
// and is nil for character exports. Entries with other names are carried
// in Other.
type SaveGame struct {
	Frame            *container.ZipFrame
	Player           Package
	State            State
	WorldSavePackage []byte
	Other            []container.ZipEntry
}

// Unmarshal decodes a complete .MassEffectSave file.
func Unmarshal(data []byte) (*SaveGame, error) {
	frame, entries, err := container.SplitZip(data)
	if err != nil {
		return nil, err
	}
	s := &SaveGame{Frame: frame}
	seen := map[string]bool{}
	for _, entry := range entries {
		seen[entry.Name] = true
		switch entry.Name {
		case PlayerEntry:
			err = unreal.Unmarshal(entry.Data, binary.LittleEndian, &s.Player)
		case StateEntry:
			err = unreal.Unmarshal(entry.Data, binary.LittleEndian, &s.State)
		case WorldEntry:
			s.WorldSavePackage = entry.Data
		default:
			s.Other = append(s.Other, entry)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name, err)
		}
	}
	for _, name := range []string{PlayerEntry, StateEntry} {
		if !seen[name] {
			return nil, fmt.Errorf("%w: %s", ErrMissingEntry, name)
		}
	}
	return s, nil
}

// IsExport reports whether the save is a character export.
func (s *SaveGame) IsExport() bool { return s.WorldSavePackage == nil }

// Marshal re-encodes every entry and rebuilds the archive in the entry
// order it was read with.
func (s *SaveGame) Marshal() ([]byte, error) {
	player, err := unreal.Marshal(binary.LittleEndian, &s.Player)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", PlayerEntry, err)
	}
	state, err := unreal.Marshal(binary.LittleEndian, &s.State)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StateEntry, err)
	}

	frame := s.Frame
	if frame == nil {
		frame = &container.ZipFrame{Names: defaultEntries}
	}
	names := frame.Names
	if s.WorldSavePackage != nil && !slices.Contains(names, WorldEntry) {
		names = append(append([]string(nil), names...), WorldEntry)
	}

	entries := make([]container.ZipEntry, 0, len(names))
	for _, name := range names {
		switch name {
		case PlayerEntry:
			entries = append(entries, container.ZipEntry{Name: name, Data: player})
		case StateEntry:
			entries = append(entries, container.ZipEntry{Name: name, Data: state})
		case WorldEntry:
			if s.WorldSavePackage != nil {
				entries = append(entries, container.ZipEntry{Name: name, Data: s.WorldSavePackage})
			}
		default:
			if data, ok := container.Lookup(s.Other, name); ok {
				entries = append(entries, container.ZipEntry{Name: name, Data: data})
			}
		}
	}
	return frame.Bytes(entries)
}
