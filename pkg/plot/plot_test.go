package plot

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

func TestBoolVec(t *testing.T) {
	t.Run("Addressing", func(t *testing.T) {
		v := FromWords([]uint32{0b101, 0})
		assert.Equal(t, 64, v.Len())
		assert.True(t, v.Get(0))
		assert.False(t, v.Get(1))
		assert.True(t, v.Get(2))
		for i := 3; i < 64; i++ {
			assert.False(t, v.Get(i), "bit %d", i)
		}
		assert.Equal(t, 2, v.Count())
	})

	t.Run("SetWithinLength", func(t *testing.T) {
		v := FromWords([]uint32{0b101, 0})
		v.Set(40, true)
		assert.Equal(t, []uint32{0b101, 1 << 8}, v.Words())
	})

	t.Run("GrowsByWholeWords", func(t *testing.T) {
		v := FromWords([]uint32{0b101, 0})
		v.Set(70, true)
		assert.Equal(t, 96, v.Len())
		assert.Equal(t, []uint32{0b101, 0, 1 << 6}, v.Words())
	})

	t.Run("ClearPastEndDoesNotGrow", func(t *testing.T) {
		v := FromWords([]uint32{1})
		v.Set(100, false)
		assert.Equal(t, 32, v.Len())
		assert.False(t, v.Get(100))
	})

	t.Run("ResizeClearsTail", func(t *testing.T) {
		v := FromWords([]uint32{0xFFFFFFFF, 0xFFFFFFFF})
		v.Resize(36)
		assert.Equal(t, []uint32{0xFFFFFFFF, 0xF}, v.Words())
		v.Resize(0)
		assert.Equal(t, 0, v.Len())
	})

	t.Run("Codec", func(t *testing.T) {
		for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
			v := FromWords([]uint32{0b101, 0})
			v.Set(64, true)
			b, err := unreal.Marshal(order, &v)
			require.NoError(t, err)
			assert.Len(t, b, 4+12)

			var out BoolVec
			require.NoError(t, unreal.Unmarshal(b, order, &out))
			assert.Equal(t, v.Words(), out.Words())
		}
	})
}

func TestTable(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		in := &Table{
			Booleans: FromWords([]uint32{7}),
			Integers: []int32{1, -2, 3},
			Floats:   []float32{0.5},
		}
		b, err := unreal.Marshal(binary.LittleEndian, in)
		require.NoError(t, err)
		var out Table
		require.NoError(t, unreal.Unmarshal(b, binary.LittleEndian, &out))
		assert.Equal(t, in, &out)
	})

	t.Run("Extend", func(t *testing.T) {
		var tbl Table
		tbl.SetInt(3, 9)
		tbl.SetFloat(1, 2.5)
		assert.Equal(t, []int32{0, 0, 0, 9}, tbl.Integers)
		v, ok := tbl.Float(1)
		assert.True(t, ok)
		assert.Equal(t, float32(2.5), v)
		_, ok = tbl.Int(10)
		assert.False(t, ok)
	})

	t.Run("IndexBounds", func(t *testing.T) {
		var tbl Table
		tbl.SetInt(MaxIndex, 1)
		tbl.SetFloat(-1, 1)
		tbl.SetBool(MaxIndex, true)
		assert.Empty(t, tbl.Integers)
		assert.Empty(t, tbl.Floats)
		assert.Zero(t, tbl.Booleans.Len())

		var m MapTable
		m.SetInt(1, 7)
		m.SetInt(1<<32+1, 99)
		m.SetFloat(MaxIndex, 2)
		v, ok := m.Int(1)
		assert.True(t, ok)
		assert.Equal(t, int32(7), v)
		assert.Equal(t, 1, m.Integers.Len())
		assert.Nil(t, m.Floats)
		_, ok = m.Int(1<<32 + 1)
		assert.False(t, ok)
	})

	t.Run("MapTable", func(t *testing.T) {
		var in MapTable
		in.SetBool(3, true)
		in.SetInt(1500, 2)
		in.SetInt(12, 7)
		in.SetFloat(8, 0.25)

		b, err := unreal.Marshal(binary.BigEndian, &in)
		require.NoError(t, err)
		var out MapTable
		require.NoError(t, unreal.Unmarshal(b, binary.BigEndian, &out))
		assert.True(t, out.Bool(3))
		assert.Equal(t, []int32{1500, 12}, out.Integers.Keys())
		v, ok := out.Int(12)
		assert.True(t, ok)
		assert.Equal(t, int32(7), v)
	})
}

func TestJournalCodex(t *testing.T) {
	j := &QuestJournal{
		QuestProgressCounter: 4,
		QuestProgress: []Quest{
			{QuestCounter: 1, QuestUpdated: true, History: []int32{10, 11}},
			{QuestCounter: 2},
		},
		QuestIDs: []int32{100, 200},
	}
	c := &Codex{
		Entries: []CodexEntry{{Pages: []CodexPage{{Page: 3, IsNew: true}}}, {}},
		IDs:     []int32{5, 6},
	}

	e := unreal.NewEncoder(binary.LittleEndian)
	require.NoError(t, j.MarshalUnreal(e))
	require.NoError(t, c.MarshalUnreal(e))

	d := unreal.NewDecoder(e.Bytes())
	var gotJ QuestJournal
	var gotC Codex
	require.NoError(t, gotJ.UnmarshalUnreal(d))
	require.NoError(t, gotC.UnmarshalUnreal(d))
	assert.Equal(t, 0, d.Cursor().Remaining())
	assert.Equal(t, j.QuestProgress[0], gotJ.QuestProgress[0])
	assert.Equal(t, c.Entries[0], gotC.Entries[0])

	g := &GoalJournal{QuestProgress: []GoalQuest{{QuestCounter: 1, ActiveGoal: 2, History: []int32{}}}}
	b, err := unreal.Marshal(binary.LittleEndian, g)
	require.NoError(t, err)
	assert.Len(t, b, 4+4+(4+4+4+4)+4)
}
