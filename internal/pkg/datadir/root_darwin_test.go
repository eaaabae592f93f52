package datadir_test

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-sheet-store/internal/pkg/datadir"
)

func TestResolveUsesApplicationSupport(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	dir, err := datadir.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Library", "Application Support", datadir.DefaultAppID, datadir.CharactersDir), dir)
}
