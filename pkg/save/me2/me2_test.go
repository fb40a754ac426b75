package me2

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goopsie/trilogySaveTools/pkg/checksum"
	"github.com/goopsie/trilogySaveTools/pkg/plot"
	"github.com/goopsie/trilogySaveTools/pkg/save/shared"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

func sampleHeadMorph() *shared.HeadMorph {
	h := &shared.HeadMorph{
		HairMesh:          "BIOG_HMF_HIR_PRO.Hair_Short02",
		AccessoryMesh:     []string{"acc_01"},
		MorphFeatures:     unreal.NewOrderedMap[string, float32](),
		OffsetBones:       unreal.NewOrderedMap[string, shared.Vector](),
		Lod0Vertices:      []shared.Vector{{X: 1, Y: 2, Z: 3}, {X: -1, Y: 0.5, Z: 9}},
		ScalarParameters:  unreal.NewOrderedMap[string, float32](),
		VectorParameters:  unreal.NewOrderedMap[string, shared.LinearColor](),
		TextureParameters: unreal.NewOrderedMap[string, string](),
	}
	h.MorphFeatures.Set("nose_width", 0.4)
	h.MorphFeatures.Set("jaw", -0.2)
	h.OffsetBones.Set("jaw_bone", shared.Vector{X: 0.1})
	h.ScalarParameters.Set("HAIR_Brightness", 1.5)
	h.VectorParameters.Set("SkinTone", shared.LinearColor{R: 0.8, G: 0.6, B: 0.5, A: 1})
	h.TextureParameters.Set("HED_Scalp", "BIOG_HMF_HED_PROMorph_R.Scalp")
	return h
}

func sampleSave(ed Edition) *SaveGame {
	guid := unreal.Guid{Data1: 0xAABBCCDD, Data2: 1, Data3: 2, Data4: [8]byte{1, 2, 3, 4, 5, 6, 7, 8}}
	s := &SaveGame{
		Edition:           ed,
		DebugName:         "",
		SecondsPlayed:     12345.5,
		Disc:              1,
		BaseLevelName:     "BioP_Nor",
		Difficulty:        Insanity,
		EndGameState:      shared.LivedToFightAgain,
		Timestamp:         shared.SaveTimeStamp{SecondsSinceMidnight: 3661, Day: 4, Month: 5, Year: 2021},
		Location:          shared.Vector{X: 1, Y: 2, Z: 3},
		Rotation:          shared.Rotator{Pitch: 0, Yaw: 16384, Roll: 0},
		CurrentLoadingTip: 7,
		Levels:            []shared.Level{{Name: "BioA_Nor", ShouldBeLoaded: true, ShouldBeVisible: true}},
		StreamingStates:   []shared.StreamingState{{Name: "Nor_Cabin", IsActive: true}},
		KismetRecords:     []shared.KismetRecord{{Guid: guid, Value: true}},
		Doors:             []shared.Door{{Guid: guid, CurrentState: 1, OldState: 2}},
		Pawns:             []unreal.Guid{guid},
		Player: Player{
			IsFemale:          true,
			ClassName:         "SFXGame.SFXPawn_PlayerAdept",
			Level:             30,
			CurrentXP:         1234,
			FirstName:         "Jane",
			LocalizedLastName: 125303,
			Origin:            shared.Spacer,
			Notoriety:         shared.Warhero,
			MappedPower1:      "Warp",
			Appearance: shared.Appearance{
				CombatAppearance: shared.AppearanceFull,
				HelmetID:         3,
				HasHeadMorph:     true,
				HeadMorph:        sampleHeadMorph(),
			},
			Powers:         []Power{{Name: "Warp", Rank: 4, PowerClassName: "SFXPower_Warp", WheelDisplayIndex: 1}},
			Weapons:        []Weapon{{ClassName: "SFXWeapon_Pistol", AmmoTotal: 60, CurrentWeapon: true}},
			WeaponsLoadout: shared.WeaponLoadout{Pistol: "SFXWeapon_Pistol"},
			Hotkeys:        []Hotkey{{PawnName: "hench_garrus", PowerID: 3}},
			Credits:        100000,
			SurveyDrones:   30,
			CurrentFuel:    0.75,
			FaceCode:       "ABC.123",
		},
		Squad: []Henchman{{Tag: "hench_garrus", CharacterLevel: 30, MappedPower: "Overload"}},
		Plot: plot.Table{
			Booleans: plot.FromWords([]uint32{0b101, 0}),
			Integers: []int32{1, 2},
			Floats:   []float32{0.5},
		},
		Journal: plot.QuestJournal{
			QuestProgressCounter: 2,
			QuestProgress:        []plot.Quest{{QuestCounter: 1, QuestUpdated: true, History: []int32{3}}},
			QuestIDs:             []int32{9},
		},
		Codex:         plot.Codex{Entries: []plot.CodexEntry{{Pages: []plot.CodexPage{{Page: 1, IsNew: true}}}}, IDs: []int32{4}},
		ME1Plot:       plot.Table{Booleans: plot.FromWords([]uint32{1})},
		GalaxyMap:     GalaxyMap{Planets: []Planet{{ID: 5, Visited: true, ScanSites: []shared.Vector2d{{X: 0.1, Y: 0.2}}}}},
		DependentDlcs: []DependentDlc{{ID: 1, Name: "DLC_HEN_VT"}},
	}
	if ed == Legendary {
		s.ImportBonus = ImportBonus{ImportedME1Level: 60, StartingME2Level: 5, BonusCredits: 100000}
	}
	return s
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		edition Edition
		xbox    bool
	}{
		{"VanillaPC", Vanilla, false},
		{"VanillaXbox360", Vanilla, true},
		{"Legendary", Legendary, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleSave(tt.edition)
			in.Xbox360 = tt.xbox

			data, err := in.Marshal()
			require.NoError(t, err)
			require.NoError(t, VerifyChecksum(data, tt.xbox))

			out, err := Unmarshal(data, tt.edition)
			require.NoError(t, err)
			assert.Equal(t, tt.xbox, out.Xbox360)
			assert.Equal(t, in.Player.FirstName, out.Player.FirstName)
			assert.Equal(t, in.ImportBonus, out.ImportBonus)
			require.NotNil(t, out.Player.Appearance.HeadMorph)
			assert.Equal(t, in.Player.Appearance.HeadMorph.MorphFeatures.Keys(), out.Player.Appearance.HeadMorph.MorphFeatures.Keys())

			again, err := out.Marshal()
			require.NoError(t, err)
			assert.True(t, bytes.Equal(data, again), "re-encode differs")
		})
	}
}

func TestPlatformConversion(t *testing.T) {
	pc := sampleSave(Vanilla)
	pcData, err := pc.Marshal()
	require.NoError(t, err)

	pc.Xbox360 = true
	xbData, err := pc.Marshal()
	require.NoError(t, err)
	assert.Len(t, xbData, len(pcData))
	assert.Equal(t, []byte{0, 0, 0, 29}, xbData[:4])
	require.NoError(t, VerifyChecksum(xbData, true))

	back, err := Unmarshal(xbData, Vanilla)
	require.NoError(t, err)
	back.Xbox360 = false
	again, err := back.Marshal()
	require.NoError(t, err)
	assert.Equal(t, pcData, again)
}

func TestVersionGuards(t *testing.T) {
	le, err := sampleSave(Legendary).Marshal()
	require.NoError(t, err)
	_, err = Unmarshal(le, Vanilla)
	assert.ErrorIs(t, err, unreal.ErrVersionMismatch)

	vanilla, err := sampleSave(Vanilla).Marshal()
	require.NoError(t, err)
	_, err = Unmarshal(vanilla, Legendary)
	assert.ErrorIs(t, err, unreal.ErrVersionMismatch)

	xb := sampleSave(Legendary)
	xb.Xbox360 = true
	_, err = xb.Marshal()
	assert.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	data, err := sampleSave(Vanilla).Marshal()
	require.NoError(t, err)

	t.Run("Truncated", func(t *testing.T) {
		_, err := Unmarshal(data[:len(data)/2], Vanilla)
		assert.ErrorIs(t, err, unreal.ErrUnexpectedEOF)
	})

	t.Run("MissingChecksum", func(t *testing.T) {
		_, err := Unmarshal(data[:len(data)-4], Vanilla)
		assert.ErrorIs(t, err, unreal.ErrTrailingData)
	})

	t.Run("BadDifficulty", func(t *testing.T) {
		// version, empty debug name, seconds played, disc, base level name
		off := 4 + 4 + 4 + 4 + (4 + len("BioP_Nor") + 1)
		bad := append([]byte(nil), data...)
		bad[off] = 9
		_, err := Unmarshal(bad, Vanilla)
		assert.ErrorIs(t, err, unreal.ErrInvalidDiscriminant)
	})

	t.Run("CorruptChecksum", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[len(bad)-1] ^= 0xFF
		assert.True(t, errors.Is(VerifyChecksum(bad, false), checksum.ErrChecksumMismatch))
		_, err := Unmarshal(bad, Vanilla)
		assert.NoError(t, err)
	})
}

func TestEditChangesOnlyField(t *testing.T) {
	s := sampleSave(Vanilla)
	before, err := s.Marshal()
	require.NoError(t, err)

	s.Player.Credits = 999999
	after, err := s.Marshal()
	require.NoError(t, err)
	require.Len(t, after, len(before))

	var diff []int
	for i := range before[:len(before)-4] {
		if before[i] != after[i] {
			diff = append(diff, i)
		}
	}
	require.NotEmpty(t, diff)
	assert.LessOrEqual(t, diff[len(diff)-1]-diff[0], 3)
	assert.Equal(t, uint32(999999), binary.LittleEndian.Uint32(after[diff[0]:]))
}
