// Package character provides the interface for character record persistence
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/KirkDiggler/rpg-sheet-store/internal/repositories/character Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-sheet-store/internal/entities/dnd5e"
)

// FileExtension is the suffix of every record file
const FileExtension = ".json"

// Repository defines the interface for character persistence.
// Implementations hold no cache: every call goes to the backing store, and
// nothing serializes concurrent writers to the same ID (last writer wins).
type Repository interface {
	// List returns every stored character
	// Returns an empty list when nothing has been stored yet
	// Returns a storage error naming the record if any record cannot be read,
	// unless ListInput.SkipCorrupt is set
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Get retrieves a character by ID
	// Returns errors.InvalidArgument for empty/invalid IDs
	// Returns errors.NotFound if character doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save creates or wholesale overwrites the record for the character's ID
	// Returns errors.InvalidArgument for a nil character or invalid ID
	// Returns a storage error if the record cannot be encoded or written
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete removes the record for an ID; deleting a missing record succeeds
	// Returns errors.InvalidArgument for empty/invalid IDs
	// Returns a storage error only if removal itself fails
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Location describes where records live, for display and export
	Location() string
}

// ListInput defines the input for listing characters
type ListInput struct {
	// SkipCorrupt reports unreadable records in ListOutput.Skipped instead of
	// failing the whole listing
	SkipCorrupt bool
}

// ListOutput defines the output for listing characters
type ListOutput struct {
	Characters []*dnd5e.Character
	Skipped    []SkippedRecord
}

// SkippedRecord is a record left out of a lenient listing
type SkippedRecord struct {
	ID   string
	Path string
	Err  error
}

// GetInput defines the input for getting a character
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *dnd5e.Character
}

// SaveInput defines the input for saving a character
type SaveInput struct {
	Character *dnd5e.Character
}

// SaveOutput defines the output for saving a character
type SaveOutput struct {
	// Path is the file or key the record was written to
	Path string
}

// DeleteInput defines the input for deleting a character
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a character
type DeleteOutput struct {
	// Existed is false when there was nothing to delete
	Existed bool
}
