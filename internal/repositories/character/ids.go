package character

import (
	"strings"

	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
)

const (
	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
)

// ValidateID rejects IDs that cannot safely name a single record file.
// The ID becomes a file name, so anything that could leave the storage
// directory is refused.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.InvalidArgument(errCharacterIDEmpty)
	}
	if id == "." || id == ".." {
		return errors.InvalidArgumentf("character ID %q is reserved", id)
	}
	if strings.ContainsAny(id, "/\\\x00") {
		return errors.InvalidArgumentf("character ID %q must not contain path separators", id)
	}
	return nil
}

// FileName returns the record file name for an ID
func FileName(id string) string {
	return id + FileExtension
}

// IDFromFileName strips the record extension. ok is false for other files
// and for names whose ID ValidateID would refuse, so every listed record can
// also be fetched and deleted.
func IDFromFileName(name string) (string, bool) {
	if !strings.HasSuffix(name, FileExtension) {
		return "", false
	}
	id := strings.TrimSuffix(name, FileExtension)
	return id, ValidateID(id) == nil
}
