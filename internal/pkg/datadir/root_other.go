//go:build !windows

package datadir

import "github.com/adrg/xdg"

func platformDataRoot() (string, error) {
	return xdg.DataHome, nil
}
