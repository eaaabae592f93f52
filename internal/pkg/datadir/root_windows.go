package datadir

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// platformDataRoot is the roaming AppData known folder, not the LocalAppData
// folder xdg.DataHome resolves to on Windows.
func platformDataRoot() (string, error) {
	root, err := windows.KnownFolderPath(windows.FOLDERID_RoamingAppData, windows.KF_FLAG_DEFAULT)
	if err != nil {
		return "", fmt.Errorf("locate roaming app data folder: %w", err)
	}
	return root, nil
}
