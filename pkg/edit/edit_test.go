package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goopsie/trilogySaveTools/pkg/plot"
	"github.com/goopsie/trilogySaveTools/pkg/save"
	"github.com/goopsie/trilogySaveTools/pkg/save/me1"
	"github.com/goopsie/trilogySaveTools/pkg/save/me1le"
	"github.com/goopsie/trilogySaveTools/pkg/save/me2"
	"github.com/goopsie/trilogySaveTools/pkg/save/me3"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

func me2Save() *save.Save {
	g := &me2.SaveGame{Edition: me2.Vanilla, Difficulty: me2.Normal}
	g.Player.FirstName = "Jane"
	g.Plot.Booleans = plot.FromWords([]uint32{0b101, 0})
	return &save.Save{Format: save.ME2, ME2: g}
}

func TestParse(t *testing.T) {
	tests := []struct {
		expr    string
		want    Edit
		wantErr bool
	}{
		{"plot.bool[12]=true", Edit{"plot.bool[12]", "true"}, false},
		{" Player.Credits = 500 ", Edit{"player.credits", "500"}, false},
		{"player.name=", Edit{"player.name", ""}, false},
		{"player.name=a=b", Edit{"player.name", "a=b"}, false},
		{"credits", Edit{}, true},
		{"=5", Edit{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Parse(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyPlot(t *testing.T) {
	s := me2Save()
	edits, err := ParseAll([]string{
		"plot.bool[1]=true",
		"plot.bool[40]=true",
		"plot.bool[2]=false",
		"plot.int[3]=-7",
		"plot.float[0]=2.5",
		"me1plot.bool[100]=true",
	})
	require.NoError(t, err)
	require.NoError(t, Apply(s, edits...))

	p := &s.ME2.Plot
	assert.Equal(t, []uint32{0b011, 1 << 8}, p.Booleans.Words())
	assert.Equal(t, []int32{0, 0, 0, -7}, p.Integers)
	assert.Equal(t, []float32{2.5}, p.Floats)
	assert.True(t, s.ME2.ME1Plot.Bool(100))

	got, err := Get(s, "plot.int[3]")
	require.NoError(t, err)
	assert.Equal(t, "-7", got)
	got, err = Get(s, "plot.float[0]")
	require.NoError(t, err)
	assert.Equal(t, "2.5", got)
	got, err = Get(s, "plot.bool[40]")
	require.NoError(t, err)
	assert.Equal(t, "true", got)
}

func TestApplyME3SparsePlot(t *testing.T) {
	g := &me3.SaveGame{}
	s := &save.Save{Format: save.ME3, ME3: g}
	require.NoError(t, Apply(s, Edit{"plot.int[10000]", "3"}, Edit{"difficulty", "insanity"}))

	v, ok := g.Plot.Integers.Get(10000)
	assert.True(t, ok)
	assert.Equal(t, int32(3), v)
	assert.Equal(t, 1, g.Plot.Integers.Len())
	assert.Equal(t, me3.Insanity, g.Difficulty)
}

func TestPlotIndexRange(t *testing.T) {
	g := &me3.SaveGame{}
	s := &save.Save{Format: save.ME3, ME3: g}
	require.NoError(t, Apply(s, Edit{"plot.int[1]", "7"}))

	for _, label := range []string{"plot.int[4294967297]", "plot.float[1048576]", "plot.bool[3000000000]", "plot.int[99999999999999999999]"} {
		t.Run(label, func(t *testing.T) {
			assert.ErrorIs(t, Apply(s, Edit{label, "99"}), ErrIndexRange)
			_, err := Get(s, label)
			assert.ErrorIs(t, err, ErrIndexRange)
		})
	}

	v, ok := g.Plot.Int(1)
	assert.True(t, ok)
	assert.Equal(t, int32(7), v)
	assert.Equal(t, 1, g.Plot.Integers.Len())
	assert.Nil(t, g.Plot.Floats)
	assert.Zero(t, g.Plot.Booleans.Len())

	require.NoError(t, Apply(s, Edit{"plot.int[1048575]", "1"}))
}

func TestApplyPlayer(t *testing.T) {
	s := me2Save()
	require.NoError(t, Apply(s,
		Edit{"player.credits", "999999"},
		Edit{"player.name", "Shepard"},
		Edit{"player.female", "false"},
		Edit{"player.xp", "1250.5"},
		Edit{"player.talent_points", "4"},
		Edit{"difficulty", "Insanity"},
	))
	p := s.ME2.Player
	assert.Equal(t, int32(999999), p.Credits)
	assert.Equal(t, "Shepard", p.FirstName)
	assert.False(t, p.IsFemale)
	assert.Equal(t, float32(1250.5), p.CurrentXP)
	assert.Equal(t, int32(4), p.TalentPoints)
	assert.Equal(t, me2.Insanity, s.ME2.Difficulty)

	got, err := Get(s, "player.credits")
	require.NoError(t, err)
	assert.Equal(t, "999999", got)
	got, err = Get(s, "difficulty")
	require.NoError(t, err)
	assert.Equal(t, "Insanity", got)
}

func TestApplyME1LE(t *testing.T) {
	d := &me1le.SaveData{}
	d.Player.Unknown = make(unreal.Dummy, 5)
	s := &save.Save{Format: save.ME1LEPS4, ME1LEPS4: d}
	require.NoError(t, Apply(s, Edit{"player.level", "60"}, Edit{"plot.bool[5]", "1"}))
	assert.Equal(t, int32(60), d.Player.Level)
	assert.True(t, d.Plot.Bool(5))

	assert.ErrorIs(t, Apply(s, Edit{"difficulty", "Casual"}), ErrNotAvailable)
	assert.ErrorIs(t, Apply(s, Edit{"me1plot.bool[1]", "true"}), ErrNotAvailable)
}

func TestApplyErrors(t *testing.T) {
	s := me2Save()
	tests := []struct {
		name string
		edit Edit
		want error
	}{
		{"UnknownLabel", Edit{"shields", "1"}, ErrUnknownLabel},
		{"UnknownPlayerField", Edit{"player.paragon", "1"}, ErrUnknownLabel},
		{"BadIndex", Edit{"plot.bool[x]", "true"}, ErrUnknownLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Apply(s, tt.edit), tt.want)
		})
	}

	assert.Error(t, Apply(s, Edit{"plot.bool[1]", "maybe"}))
	assert.Error(t, Apply(s, Edit{"player.credits", "lots"}))
	assert.Error(t, Apply(s, Edit{"difficulty", "Nightmare"}))

	me1Save := &save.Save{Format: save.ME1, ME1: &me1.SaveGame{}}
	assert.ErrorIs(t, Apply(me1Save, Edit{"player.credits", "1"}), ErrNotAvailable)

	empty := &save.Save{Format: save.ME3}
	assert.ErrorIs(t, Apply(empty, Edit{"plot.int[1]", "1"}), save.ErrMissingGame)
	_, err := Get(empty, "difficulty")
	assert.ErrorIs(t, err, save.ErrMissingGame)
}

func TestEditedSaveSerializes(t *testing.T) {
	s := me2Save()
	before, err := save.Serialize(s)
	require.NoError(t, err)

	require.NoError(t, Apply(s, Edit{"plot.bool[3]", "true"}))
	after, err := save.Serialize(s)
	require.NoError(t, err)
	require.Len(t, after, len(before))

	back, err := save.Deserialize(after, save.WithStrictChecksum(true))
	require.NoError(t, err)
	assert.True(t, back.ME2.Plot.Bool(3))
	assert.True(t, back.ME2.Plot.Bool(0))
}
