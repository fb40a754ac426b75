package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goopsie/trilogySaveTools/pkg/plot"
	"github.com/goopsie/trilogySaveTools/pkg/save"
	"github.com/goopsie/trilogySaveTools/pkg/save/me2"
)

// setup writes an ME2 save and a config whose backup dir lives under a
// temp dir. It returns the save path and the config path.
func setup(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	g := &me2.SaveGame{Edition: me2.Vanilla, Difficulty: me2.Normal}
	g.Player.FirstName = "Jane"
	g.Player.IsFemale = true
	g.Player.Level = 12
	g.BaseLevelName = "BioP_Nor"
	g.Plot.Booleans = plot.FromWords([]uint32{0b101})
	data, err := save.Serialize(&save.Save{Format: save.ME2, ME2: g})
	require.NoError(t, err)

	path := filepath.Join(dir, "Shepard_01.pcsav")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	ini := filepath.Join(dir, "test.ini")
	src := fmt.Sprintf("[backup]\ndir = %s\nkeep = 5\n", filepath.Join(dir, "backups"))
	require.NoError(t, os.WriteFile(ini, []byte(src), 0o644))
	return path, ini
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInfo(t *testing.T) {
	path, ini := setup(t)
	out, err := run(t, "--config", ini, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ME2")
	assert.Contains(t, out, "Jane (female)")
	assert.Contains(t, out, "BioP_Nor")
	assert.Contains(t, out, "Normal")
}

func TestCheck(t *testing.T) {
	path, ini := setup(t)
	out, err := run(t, "--config", ini, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "(exact)")

	bad := filepath.Join(filepath.Dir(path), "junk.pcsav")
	require.NoError(t, os.WriteFile(bad, []byte("not a save"), 0o644))
	out, err = run(t, "--config", ini, "check", path, bad)
	assert.Error(t, err)
	assert.Contains(t, out, "FAIL "+bad)
}

func TestEditPlotAndBackup(t *testing.T) {
	path, ini := setup(t)
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = run(t, "--config", ini, "edit", path, "--set", "plot.bool[1]=true")
	require.NoError(t, err)

	out, err := run(t, "--config", ini, "plot", path, "--bool", "1")
	require.NoError(t, err)
	assert.Equal(t, "plot.bool[1] = true\n", out)

	out, err = run(t, "--config", ini, "backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "before edit")
	assert.Contains(t, out, "Shepard_01.pcsav")

	restored := filepath.Join(filepath.Dir(path), "restored.pcsav")
	_, err = run(t, "--config", ini, "backup", "restore", "1", "-o", restored)
	require.NoError(t, err)
	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestMorphWithoutHeadMorph(t *testing.T) {
	path, ini := setup(t)
	_, err := run(t, "--config", ini, "morph", "export", path, filepath.Join(t.TempDir(), "face.yaml"))
	assert.Error(t, err)
}

func TestIsSaveFile(t *testing.T) {
	assert.True(t, isSaveFile("Shepard_01.pcsav"))
	assert.True(t, isSaveFile("Save.MASSEFFECTSAVE"))
	assert.True(t, isSaveFile("slot.ps4sav"))
	assert.False(t, isSaveFile("notes.txt"))
	assert.False(t, isSaveFile("Shepard_01.pcsav.123.tmp"))
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	old := watchSettle
	watchSettle = 20 * time.Millisecond
	t.Cleanup(func() { watchSettle = old })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	seen := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, dir, func(path string) { seen <- path })
	}()

	path := filepath.Join(dir, "Shepard_02.pcsav")
	require.Eventually(t, func() bool {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			return false
		}
		select {
		case got := <-seen:
			return got == path
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
