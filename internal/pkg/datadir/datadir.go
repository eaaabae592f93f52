// Package datadir resolves the per-user directory that holds character records
package datadir

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// DefaultAppID is the application directory under the per-user data root
	DefaultAppID = "dnd-beyond-desktop"

	// CharactersDir is the sub-directory holding one file per character
	CharactersDir = "characters"
)

// Resolve returns <data root>/<appID>/characters, where the data root is the
// platform's per-user application data directory: the roaming AppData folder
// on Windows, ~/Library/Application Support on macOS and $XDG_DATA_HOME or
// ~/.local/share elsewhere.
func Resolve(appID string) (string, error) {
	root, err := platformDataRoot()
	if err != nil {
		return "", err
	}
	return ResolveFrom(root, appID)
}

// ResolveFrom builds the characters directory under an explicit data root
func ResolveFrom(dataRoot, appID string) (string, error) {
	if strings.TrimSpace(dataRoot) == "" {
		return "", fmt.Errorf("no per-user data directory available")
	}
	if appID == "" {
		appID = DefaultAppID
	}
	if strings.ContainsAny(appID, `/\`) || appID == "." || appID == ".." {
		return "", fmt.Errorf("invalid app id %q", appID)
	}

	root, err := filepath.Abs(dataRoot)
	if err != nil {
		return "", fmt.Errorf("resolve data directory %s: %w", dataRoot, err)
	}

	return filepath.Join(root, appID, CharactersDir), nil
}

