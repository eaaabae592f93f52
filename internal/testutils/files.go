package testutils

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-sheet-store/internal/entities/dnd5e"
)

// TestCharactersDir is the storage directory used with in-memory filesystems
const TestCharactersDir = "/data/dnd-beyond-desktop/characters"

// WriteRecordFile writes raw record content as <dir>/<name>, bypassing the store
func WriteRecordFile(t *testing.T, fs afero.Fs, dir, name, content string) string {
	t.Helper()

	require.NoError(t, fs.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	return path
}

// ReadRecordFile decodes <dir>/<id>.json straight from the filesystem
func ReadRecordFile(t *testing.T, fs afero.Fs, dir, id string) *dnd5e.Character {
	t.Helper()

	data, err := afero.ReadFile(fs, filepath.Join(dir, id+".json"))
	require.NoError(t, err)

	var char dnd5e.Character
	require.NoError(t, json.Unmarshal(data, &char))
	return &char
}
