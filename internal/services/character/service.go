// Package character defines the interface for character sheet operations
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/KirkDiggler/rpg-sheet-store/internal/services/character Service

import (
	"context"
	"io"

	"github.com/KirkDiggler/rpg-sheet-store/internal/entities/dnd5e"
)

// Service defines the operations the presentation layer can call
type Service interface {
	// Record operations
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	SaveCharacter(ctx context.Context, input *SaveCharacterInput) (*SaveCharacterOutput, error)
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// Storage location, for display and export
	GetStorageDirectory(ctx context.Context, input *GetStorageDirectoryInput) (*GetStorageDirectoryOutput, error)

	// Bulk transfer
	ExportCharacters(ctx context.Context, input *ExportCharactersInput) (*ExportCharactersOutput, error)
	ImportCharacters(ctx context.Context, input *ImportCharactersInput) (*ImportCharactersOutput, error)
}

// Format is a bundle serialization format
type Format string

// Supported bundle formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format
var Formats = []string{string(FormatJSON), string(FormatYAML)}

// Bundle is the export/import document holding many characters
type Bundle struct {
	Characters []*dnd5e.Character `json:"characters" yaml:"characters"`
}

// ListCharactersInput defines the request for listing characters
type ListCharactersInput struct {
	// SkipCorrupt leaves unreadable records out instead of failing
	SkipCorrupt bool
}

// ListCharactersOutput defines the response for listing characters
type ListCharactersOutput struct {
	Characters []*dnd5e.Character
	// Skipped holds the records left out by a lenient listing
	Skipped []SkippedCharacter
}

// SkippedCharacter is an unreadable record left out of a listing
type SkippedCharacter struct {
	ID     string
	Path   string
	Reason string
}

// GetCharacterInput defines the request for getting a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the response for getting a character
type GetCharacterOutput struct {
	Character *dnd5e.Character
}

// SaveCharacterInput defines the request for saving a character.
// The full record is written; there is no partial update.
type SaveCharacterInput struct {
	Character *dnd5e.Character
}

// SaveCharacterOutput defines the response for saving a character
type SaveCharacterOutput struct {
	Path string
}

// CreateCharacterInput defines the request for creating a new character
type CreateCharacterInput struct {
	// Character.ID may be empty; one is generated
	Character *dnd5e.Character
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	Character *dnd5e.Character
	Path      string
}

// DeleteCharacterInput defines the request for deleting a character
type DeleteCharacterInput struct {
	CharacterID string
}

// DeleteCharacterOutput defines the response for deleting a character
type DeleteCharacterOutput struct {
	Existed bool
}

// GetStorageDirectoryInput defines the request for the storage location
type GetStorageDirectoryInput struct{}

// GetStorageDirectoryOutput defines the response for the storage location
type GetStorageDirectoryOutput struct {
	Path string
}

// ExportCharactersInput defines the request for exporting every character
type ExportCharactersInput struct {
	Format Format
	Writer io.Writer
}

// ExportCharactersOutput defines the response for exporting characters
type ExportCharactersOutput struct {
	Count int
}

// ImportCharactersInput defines the request for importing a bundle
type ImportCharactersInput struct {
	Format Format
	Reader io.Reader
}

// ImportCharactersOutput defines the response for importing a bundle
type ImportCharactersOutput struct {
	CharacterIDs []string
}
