package file_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/crema/internal/adapters/file"
	"github.com/aretw0/crema/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Read(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"p"}`), 0644))

	s := file.New("")
	data, err := s.Read(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"p"}`, string(data))

	_, err = s.Read(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, file.ErrNotFound)
}

func TestStore_OutputPath(t *testing.T) {
	dir := t.TempDir()
	s := file.New("")

	assert.Equal(t, filepath.Join(file.DefaultOutputDir, "shot.json"), s.OutputPath("in/shot.json", ""))
	assert.Equal(t, filepath.Join(dir, "shot.json"), s.OutputPath("in/shot.json", dir))
	assert.Equal(t, filepath.Join("out", "shot.json"), s.OutputPath("in/shot.json", "out/"))
	assert.Equal(t, "renamed.json", s.OutputPath("in/shot.json", "renamed.json"))

	assert.Equal(t, filepath.Join("custom", "shot.json"), file.New("custom").OutputPath("shot.json", ""))
}

func TestStore_SaveAtomic(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	dest := filepath.Join(dir, "shot.json")
	s := file.New(dir)

	doc := &domain.TargetProfile{Label: "Shot", Type: domain.ProfileTypePro, Temperature: 93, Phases: []domain.Phase{}}
	require.NoError(t, s.Save(dest, doc))

	// Overwrite works and leaves no temp files behind.
	doc.Label = "Shot v2"
	require.NoError(t, s.Save(dest, doc))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	raw, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"label\": \"Shot v2\"")

	var back domain.TargetProfile
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, *doc, back)

	assert.Error(t, s.Save("", doc))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.JSON", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0755))

	files, err := file.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.JSON"), filepath.Join(dir, "b.json")}, files)

	_, err = file.Discover(t.TempDir())
	assert.ErrorIs(t, err, file.ErrNoProfiles)

	_, err = file.Discover(filepath.Join(dir, "nope"))
	assert.ErrorIs(t, err, file.ErrNotFound)
}
