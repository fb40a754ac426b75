package me3

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goopsie/trilogySaveTools/pkg/plot"
	"github.com/goopsie/trilogySaveTools/pkg/save/shared"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

func sampleSave() *SaveGame {
	guid := unreal.Guid{Data1: 1, Data2: 2, Data3: 3, Data4: [8]byte{4, 5, 6, 7, 8, 9, 10, 11}}
	warAssets := unreal.NewOrderedMap[int32, int32]()
	warAssets.Set(42, 100)
	warAssets.Set(7, 25)
	vars := unreal.NewOrderedMap[string, int32]()
	vars.Set("ShepardIsAlive", 1)

	s := &SaveGame{
		DebugName:                    "",
		SecondsPlayed:                500,
		BaseLevelName:                "BioP_Nor",
		BaseLevelNameDisplayOverride: "Normandy SR-2",
		Difficulty:                   Hardcore,
		EndGameState:                 shared.NotFinished,
		Timestamp:                    shared.SaveTimeStamp{Day: 1, Month: 2, Year: 2012},
		Levels:                       []shared.Level{{Name: "BioD_Nor_100", ShouldBeLoaded: true}},
		KismetRecords:                []shared.KismetRecord{{Guid: guid}},
		Placeables:                   []Placeable{{Guid: guid, IsDestroyed: true}},
		Pawns:                        []unreal.Guid{guid},
		Player: Player{
			IsFemale:           false,
			ClassName:          "SFXGame.SFXPawn_PlayerSoldier",
			Level:              60,
			FirstName:          "John",
			Origin:             shared.Earthborn,
			Notoriety:          shared.Ruthless,
			Appearance:         shared.Appearance{CombatAppearance: shared.AppearanceParts},
			Powers:             []Power{{Name: "Adrenaline", Rank: 6, EvolvedChoices: [6]int32{1, 0, 2, 0, 1, 0}}},
			WarAssets:          warAssets,
			Weapons:            []Weapon{{ClassName: "SFXWeapon_AssaultRifle_Avenger", AmmoPowerSourceTag: "squad"}},
			WeaponsMods:        []WeaponMod{{WeaponClassName: "SFXWeapon_AssaultRifle_Avenger", WeaponModClassNames: []string{"Scope", "Barrel"}}},
			LoadoutWeaponGroup: []int32{1, 2},
			Hotkeys:            []Hotkey{{PawnName: "hench_liara", PowerName: "Singularity"}},
			Grenades:           3,
			FaceCode:           "M3.Face",
			CharacterGuid:      make(unreal.Dummy, 16),
		},
		Squad: []Henchman{{Tag: "hench_liara", Grenades: 2, Weapons: []Weapon{{ClassName: "SFXWeapon_Pistol"}}}},
		Journal: plot.GoalJournal{
			QuestProgress: []plot.GoalQuest{{QuestCounter: 1, ActiveGoal: 4, History: []int32{1, 2}}},
		},
		PlayerVariables:    vars,
		GalaxyMap:          GalaxyMap{Systems: []System{{ID: 3, ReaperAlertLevel: 0.5, ReaperDetected: true}}},
		DependentDlcs:      []DependentDlc{{ID: 3000, Name: "DLC_CON_END", CanonicalName: "Extended Cut"}},
		Treasures:          []LevelTreasure{{LevelName: "BioD_Cit", Credits: 500, Items: []string{"SFXGameContent.SFXWeapon"}}},
		UseModules:         []unreal.Guid{guid},
		ConversationMode:   MajorDecisions,
		ObjectiveMarkers:   []ObjectiveMarker{{MarkerOwnedData: "owner", MarkerIconType: MarkerSupply}},
		SavedObjectiveText: 12,
	}
	s.Plot.SetBool(10, true)
	s.Plot.SetInt(900, 3)
	s.Plot.SetFloat(5, 1.25)
	return s
}

func TestRoundTrip(t *testing.T) {
	for _, xbox := range []bool{false, true} {
		in := sampleSave()
		in.Xbox360 = xbox

		data, err := in.Marshal()
		require.NoError(t, err)
		require.NoError(t, VerifyChecksum(data, xbox))

		out, err := Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, xbox, out.Xbox360)
		assert.Equal(t, "Normandy SR-2", out.BaseLevelNameDisplayOverride)
		assert.Equal(t, []int32{42, 7}, out.Player.WarAssets.Keys())
		assert.True(t, out.Placeables[0].IsDestroyed)
		assert.False(t, out.Placeables[0].IsDeactivated)
		v, ok := out.Plot.Int(900)
		assert.True(t, ok)
		assert.Equal(t, int32(3), v)
		assert.Equal(t, MarkerSupply, out.ObjectiveMarkers[0].MarkerIconType)

		again, err := out.Marshal()
		require.NoError(t, err)
		assert.True(t, bytes.Equal(data, again), "xbox=%v re-encode differs", xbox)
	}
}

func TestCrossPlatform(t *testing.T) {
	s := sampleSave()
	pc, err := s.Marshal()
	require.NoError(t, err)
	s.Xbox360 = true
	xb, err := s.Marshal()
	require.NoError(t, err)
	assert.NotEqual(t, pc, xb)

	fromXb, err := Unmarshal(xb)
	require.NoError(t, err)
	fromXb.Xbox360 = false
	back, err := fromXb.Marshal()
	require.NoError(t, err)
	assert.Equal(t, pc, back)
}

func TestDecodeErrors(t *testing.T) {
	data, err := sampleSave().Marshal()
	require.NoError(t, err)

	t.Run("WrongVersion", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[0] = 29
		_, err := Unmarshal(bad)
		assert.ErrorIs(t, err, unreal.ErrVersionMismatch)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := Unmarshal(data[:100])
		assert.ErrorIs(t, err, unreal.ErrUnexpectedEOF)
	})

	t.Run("ExtraBytes", func(t *testing.T) {
		_, err := Unmarshal(append(append([]byte(nil), data...), 0, 0, 0, 0))
		assert.ErrorIs(t, err, unreal.ErrTrailingData)
	})

	t.Run("ShortCharacterGuid", func(t *testing.T) {
		s := sampleSave()
		s.Player.CharacterGuid = unreal.Dummy{1, 2}
		_, err := s.Marshal()
		assert.Error(t, err)
	})
}
