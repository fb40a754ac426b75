package me1le

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goopsie/trilogySaveTools/pkg/checksum"
	"github.com/goopsie/trilogySaveTools/pkg/container"
	"github.com/goopsie/trilogySaveTools/pkg/plot"
	"github.com/goopsie/trilogySaveTools/pkg/save/shared"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

func sampleItem(id int32, level ItemLevel) Item {
	return Item{
		ItemID:         id,
		ItemLevel:      level,
		ManufacturerID: 12,
		NewItem:        true,
		AttachedMods:   []ItemMod{{ItemID: 900, ItemLevel: LevelIII, ManufacturerID: 3}},
	}
}

func sampleData() *SaveData {
	s := &SaveData{
		CharacterID:   "Shepard_00",
		CreatedDate:   shared.SaveTimeStamp{SecondsSinceMidnight: 10, Day: 14, Month: 5, Year: 2021},
		Plot:          plot.Table{Booleans: plot.FromWords([]uint32{0b101, 0}), Integers: []int32{1, 2}, Floats: []float32{0.5}},
		Timestamp:     shared.SaveTimeStamp{SecondsSinceMidnight: 7200, Day: 15, Month: 5, Year: 2021},
		SecondsPlayed: 3600,
		Player: Player{
			IsFemale:      true,
			PlayerClass:   2,
			Level:         60,
			CurrentXP:     1.5e6,
			FirstName:     "Jane",
			Origin:        shared.Spacer,
			Notoriety:     shared.Survivor,
			TalentPoints:  3,
			MappedTalent:  "Singularity",
			SimpleTalents: []SimpleTalent{{TalentID: 1, CurrentRank: 12}},
			ComplexTalents: []ComplexTalent{{
				TalentID:          7,
				CurrentRank:       4,
				MaxRank:           12,
				PrereqTalentIDs:   []int32{1},
				PrereqTalentRanks: []int32{3},
			}},
			Inventory: Inventory{
				Equipment:  []Item{sampleItem(100, LevelX)},
				QuickSlots: []Item{},
				Items:      []Item{sampleItem(101, LevelNone)},
				BuyPack:    []Item{},
			},
			Credits:     9000000,
			Medigel:     10,
			Omnigel:     250,
			FaceCode:    "",
			Race:        1,
			Stamina:     2,
			GameOptions: []int32{0, 1, 1},
			HelmetShown: true,
			Unknown:     unreal.Dummy{1, 2, 3, 4, 5},
			LastPower:   "Lift",
			HealthMax:   800,
			Hotkeys:     []Hotkey{{Pawn: 0, Event: 3}},
		},
		BaseLevelName: "BIOA_NOR",
		MapName:       "BIOA_NOR10",
		ParentMapName: "",
		Location:      shared.Vector{X: 100, Y: -50, Z: 12},
		Squad: []Henchman{{
			Tag:       "hench_quarian",
			Equipment: []Item{sampleItem(200, LevelV)},
			Level:     60,
			Gender:    1,
			HealthMax: 600,
		}},
		DisplayName: "Normandy",
		FileName:    "ME1Le00_QuickSave",
		NoExport:    sampleWorld(),
	}
	s.Player.SetHeadMorph(&shared.HeadMorph{
		HairMesh:          "HMF_HIR_PROShort",
		MorphFeatures:     unreal.NewOrderedMap[string, float32](),
		OffsetBones:       unreal.NewOrderedMap[string, shared.Vector](),
		Lod0Vertices:      []shared.Vector{{X: 1, Y: 2, Z: 3}},
		ScalarParameters:  unreal.NewOrderedMap[string, float32](),
		VectorParameters:  unreal.NewOrderedMap[string, shared.LinearColor](),
		TextureParameters: unreal.NewOrderedMap[string, string](),
	})
	s.Player.HeadMorph.MorphFeatures.Set("mouth", 0.25)
	return s
}

func TestRoundTrip(t *testing.T) {
	t.Run("PC", func(t *testing.T) {
		in := &SaveGame{Data: *sampleData()}
		data, err := in.Marshal()
		require.NoError(t, err)
		require.True(t, container.IsChunked(data))
		require.NoError(t, VerifyChecksum(data))

		out, err := Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, container.DefaultBlockSize, out.Frame.BlockSize)
		assert.Equal(t, "Jane", out.Data.Player.FirstName)
		assert.Equal(t, LevelX, out.Data.Player.Inventory.Equipment[0].ItemLevel)
		assert.False(t, out.Data.IsExport())
		require.NotNil(t, out.Data.Player.HeadMorph)

		again, err := out.Marshal()
		require.NoError(t, err)
		assert.True(t, bytes.Equal(data, again), "re-encode differs")
	})

	t.Run("PS4", func(t *testing.T) {
		data, err := sampleData().MarshalPS4()
		require.NoError(t, err)
		assert.Equal(t, uint32(Version), binary.LittleEndian.Uint32(data))

		out, err := UnmarshalPS4(data)
		require.NoError(t, err)
		again, err := out.MarshalPS4()
		require.NoError(t, err)
		assert.Equal(t, data, again)
	})

	t.Run("Export", func(t *testing.T) {
		in := sampleData()
		in.NoExport = nil
		data, err := in.MarshalPS4()
		require.NoError(t, err)

		out, err := UnmarshalPS4(data)
		require.NoError(t, err)
		assert.True(t, out.IsExport())
		assert.Nil(t, out.NoExport)
	})

	t.Run("SmallBlocks", func(t *testing.T) {
		in := &SaveGame{Data: *sampleData(), Frame: &container.ChunkedFrame{BlockSize: 64, CompressionFlag: 1}}
		data, err := in.Marshal()
		require.NoError(t, err)

		out, err := Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, uint32(64), out.Frame.BlockSize)
		assert.Greater(t, len(out.Frame.Chunks), 1)

		again, err := out.Marshal()
		require.NoError(t, err)
		assert.Equal(t, data, again)
	})
}

func TestDecodeErrors(t *testing.T) {
	payload, err := sampleData().MarshalPS4()
	require.NoError(t, err)

	t.Run("NotChunked", func(t *testing.T) {
		_, err := Unmarshal(payload)
		assert.ErrorIs(t, err, unreal.ErrVersionMismatch)
	})

	t.Run("WrongVersion", func(t *testing.T) {
		bad := append([]byte(nil), payload...)
		binary.LittleEndian.PutUint32(bad, 29)
		_, err := UnmarshalPS4(bad)
		assert.ErrorIs(t, err, unreal.ErrVersionMismatch)
	})

	t.Run("Truncated", func(t *testing.T) {
		in := sampleData()
		in.NoExport = nil
		data, err := in.MarshalPS4()
		require.NoError(t, err)
		_, err = UnmarshalPS4(data[:len(data)-3])
		assert.ErrorIs(t, err, unreal.ErrUnexpectedEOF)
	})

	t.Run("CorruptChecksum", func(t *testing.T) {
		data, err := (&SaveGame{Data: *sampleData()}).Marshal()
		require.NoError(t, err)
		data[len(data)-container.FooterSize] ^= 0x01
		assert.ErrorIs(t, VerifyChecksum(data), checksum.ErrChecksumMismatch)
		_, err = Unmarshal(data)
		assert.NoError(t, err)
	})

	t.Run("BadItemLevel", func(t *testing.T) {
		e := unreal.NewEncoder(nil)
		e.I32(1)
		e.U8(11)
		var it Item
		err := it.UnmarshalUnreal(unreal.NewDecoder(e.Bytes()))
		assert.ErrorIs(t, err, unreal.ErrInvalidDiscriminant)
	})
}

func TestPlayerUnknownBlock(t *testing.T) {
	s := sampleData()
	s.Player.Unknown = unreal.Dummy{1, 2}
	_, err := s.MarshalPS4()
	assert.Error(t, err)
}
