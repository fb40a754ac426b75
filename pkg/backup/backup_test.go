package backup

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader(t *testing.T) {
	t.Run("MarshalUnmarshal", func(t *testing.T) {
		original := NewHeader(1024, 512, 0xdeadbeefcafe)

		data, err := original.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, data, HeaderSize)
		assert.Equal(t, "MEBK", string(data[:4]))

		decoded := &Header{}
		require.NoError(t, decoded.UnmarshalBinary(data))
		assert.Equal(t, *original, *decoded)
	})

	t.Run("InvalidMagic", func(t *testing.T) {
		data, err := NewHeader(1024, 512, 1).MarshalBinary()
		require.NoError(t, err)
		data[0] = 'Z'
		assert.ErrorIs(t, (&Header{}).UnmarshalBinary(data), ErrBadHeader)
	})

	t.Run("InvalidVersion", func(t *testing.T) {
		h := NewHeader(1024, 512, 1)
		h.Version = 2
		assert.ErrorIs(t, h.Validate(), ErrBadHeader)
	})

	t.Run("ReservedFlags", func(t *testing.T) {
		h := NewHeader(1024, 512, 1)
		h.Flags = 1
		assert.ErrorIs(t, h.Validate(), ErrBadHeader)
	})

	t.Run("ZeroLength", func(t *testing.T) {
		assert.Error(t, NewHeader(0, 512, 1).Validate())
	})

	t.Run("Short", func(t *testing.T) {
		assert.ErrorIs(t, (&Header{}).UnmarshalBinary(make([]byte, HeaderSize-1)), ErrBadHeader)
	})

	t.Run("PackWritesHeader", func(t *testing.T) {
		save := bytes.Repeat([]byte{0x2a}, 4096)
		blob, err := Pack(save, DefaultCompressionLevel)
		require.NoError(t, err)

		var h Header
		require.NoError(t, h.UnmarshalBinary(blob))
		want, err := NewHeader(uint64(len(save)), uint64(len(blob)-HeaderSize), Sum(save)).MarshalBinary()
		require.NoError(t, err)
		assert.Equal(t, want, blob[:HeaderSize])
		assert.Equal(t, BlobVersion, h.Version)
	})
}

func TestPackUnpack(t *testing.T) {
	original := bytes.Repeat([]byte("Shepard. Commander Shepard. "), 200)

	t.Run("RoundTrip", func(t *testing.T) {
		blob, err := Pack(original, DefaultCompressionLevel)
		require.NoError(t, err)
		assert.Less(t, len(blob), len(original))

		decoded, err := Unpack(blob)
		require.NoError(t, err)
		assert.Equal(t, original, decoded)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := Pack(nil, DefaultCompressionLevel)
		assert.Error(t, err)
	})

	t.Run("Truncated", func(t *testing.T) {
		blob, err := Pack(original, DefaultCompressionLevel)
		require.NoError(t, err)
		_, err = Unpack(blob[:len(blob)-1])
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("ChecksumMismatch", func(t *testing.T) {
		blob, err := Pack(original, DefaultCompressionLevel)
		require.NoError(t, err)
		blob[24] ^= 0xff
		_, err = Unpack(blob)
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func openStore(t *testing.T) *Store {
	t.Helper()
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s, err := Open(filepath.Join(t.TempDir(), "backups.db"),
		WithCompressionLevel(1),
		WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore(t *testing.T) {
	s := openStore(t)
	a := []byte("first save contents")
	b := []byte("second save contents")

	e1, err := s.Put("Shepard_01.pcsav", a, "ME2", "")
	require.NoError(t, err)
	e2, err := s.Put("Shepard_01.pcsav", b, "ME2", "before edit")
	require.NoError(t, err)
	e3, err := s.Put("Other.pcsav", a, "ME2", "")
	require.NoError(t, err)

	assert.Equal(t, uint64(1), e1.Seq)
	assert.Equal(t, e1.Blob, e3.Blob)
	assert.NotEqual(t, e1.Blob, e2.Blob)
	assert.Equal(t, len(a), e1.Size)

	t.Run("List", func(t *testing.T) {
		got, err := s.List("Shepard_01.pcsav")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, e2.Seq, got[0].Seq)
		assert.Equal(t, "before edit", got[0].Note)
		assert.True(t, got[0].Time.Equal(e2.Time))

		all, err := s.List("")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		paths, err := s.Paths()
		require.NoError(t, err)
		assert.Equal(t, []string{"Other.pcsav", "Shepard_01.pcsav"}, paths)
	})

	t.Run("Get", func(t *testing.T) {
		e, data, err := s.Get(e2.Seq)
		require.NoError(t, err)
		assert.Equal(t, b, data)
		assert.Equal(t, "ME2", e.Format)

		_, _, err = s.Get(99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPrune(t *testing.T) {
	s := openStore(t)
	for i := 0; i < 4; i++ {
		_, err := s.Put("a.sav", []byte{byte(i), 1, 2, 3}, "", "")
		require.NoError(t, err)
	}
	_, err := s.Put("b.sav", []byte{0, 1, 2, 3}, "", "")
	require.NoError(t, err)

	removed, err := s.Prune(2)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	left, err := s.List("a.sav")
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, uint64(4), left[0].Seq)
	assert.Equal(t, uint64(3), left[1].Seq)

	// b.sav shares its content with the pruned first snapshot of a.sav.
	_, data, err := s.Get(5)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 3}, data)

	removed, err = s.Prune(0)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	all, err := s.List("")
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = s.Prune(-1)
	assert.Error(t, err)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backups.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Put("x.sav", []byte("payload"), "ME3", "")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	e, data, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "x.sav", e.Path)
	assert.Equal(t, []byte("payload"), data)

	e2, err := s.Put("x.sav", []byte("payload 2"), "ME3", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), e2.Seq)
}
