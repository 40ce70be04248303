package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aayushbajaj/jexi/pkg/ingredients"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "nature.txt", "forest\n")
	writeFile(t, dir, "animals.txt", "raven\n")
	writeFile(t, dir, DefaultOutput, "old\n")
	writeFile(t, dir, "notes.md", "ignored\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.txt"), 0700))

	entries, err := Discover(dir, DefaultOutput)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "animals.txt", entries[0].Name)
	assert.Equal(t, "nature.txt", entries[1].Name)
	assert.Equal(t, filepath.Join(dir, "nature.txt"), entries[1].Path)
}

func TestDiscoverNothing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultOutput, "old\n")

	_, err := Discover(dir, DefaultOutput)
	require.ErrorIs(t, err, ErrNoDictionaries)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	// A combining acute accent after "cafe" must normalise to the composed form.
	path := writeFile(t, dir, "words.txt", "quantum\r\n7\n\n   \n!\ncafe\u0301\n two words\n")

	items, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"quantum", "7", "!", "caf\u00e9", " two words"}, items)
	assert.True(t, ingredients.IsWord(items[3]), "normalised entry should classify as a word")
}

func TestLoadEmpty(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.txt", "\n\n")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrEmptyDictionary)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultPantryIsUsable(t *testing.T) {
	items := Default()
	require.NotEmpty(t, items)

	p := ingredients.Classify(items)
	assert.NotEmpty(t, p.Words)
	assert.NotEmpty(t, p.Numbers)
	assert.NotEmpty(t, p.Specials)
	assert.Equal(t, len(items), p.Len(), "every embedded entry should classify")
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultOutput)
	require.NoError(t, Save(path, []string{"Quantum-7", "!forest42"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Quantum-7\n!forest42", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
