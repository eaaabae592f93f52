// Package character implements the character orchestrator
package character

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-sheet-store/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
	"github.com/KirkDiggler/rpg-sheet-store/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/rpg-sheet-store/internal/repositories/character"
	"github.com/KirkDiggler/rpg-sheet-store/internal/services/character"
)

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	// IDGenerator names new characters; defaults to UUIDs
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}

	return vb.Build()
}

// Orchestrator implements the character.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	idGenerator   idgen.Generator
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	gen := cfg.IDGenerator
	if gen == nil {
		gen = idgen.NewUUID("")
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		idGenerator:   gen,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ character.Service = (*Orchestrator)(nil)

// ListCharacters returns every stored character
func (o *Orchestrator) ListCharacters(
	ctx context.Context,
	input *character.ListCharactersInput,
) (*character.ListCharactersOutput, error) {
	if input == nil {
		input = &character.ListCharactersInput{}
	}

	output, err := o.characterRepo.List(ctx, characterrepo.ListInput{SkipCorrupt: input.SkipCorrupt})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list characters")
	}

	skipped := make([]character.SkippedCharacter, 0, len(output.Skipped))
	for _, record := range output.Skipped {
		skipped = append(skipped, character.SkippedCharacter{
			ID:     record.ID,
			Path:   record.Path,
			Reason: record.Err.Error(),
		})
	}

	return &character.ListCharactersOutput{
		Characters: output.Characters,
		Skipped:    skipped,
	}, nil
}

// GetCharacter retrieves one character by ID
func (o *Orchestrator) GetCharacter(
	ctx context.Context,
	input *character.GetCharacterInput,
) (*character.GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	output, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get character %s", input.CharacterID)
	}

	return &character.GetCharacterOutput{Character: output.Character}, nil
}

// SaveCharacter writes the full record, replacing whatever was stored for its ID
func (o *Orchestrator) SaveCharacter(
	ctx context.Context,
	input *character.SaveCharacterInput,
) (*character.SaveCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	output, err := o.characterRepo.Save(ctx, characterrepo.SaveInput{Character: input.Character})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save character %s", input.Character.ID)
	}

	slog.InfoContext(ctx, "character saved",
		"character_id", input.Character.ID,
		"path", output.Path)

	return &character.SaveCharacterOutput{Path: output.Path}, nil
}

// CreateCharacter stores a character that must not exist yet, generating an
// ID when none is given.
func (o *Orchestrator) CreateCharacter(
	ctx context.Context,
	input *character.CreateCharacterInput,
) (*character.CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	char := input.Character.Clone()
	if char.ID == "" {
		char.ID = o.idGenerator.Generate()
	}
	if char.Alignment == "" {
		char.Alignment = dnd5e.AlignmentNeutral
	}
	char.Normalize()

	_, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: char.ID})
	switch {
	case err == nil:
		return nil, errors.AlreadyExistsf("character with ID %s already exists", char.ID)
	case !errors.IsNotFound(err):
		return nil, errors.Wrapf(err, "failed to check for existing character %s", char.ID)
	}

	output, err := o.characterRepo.Save(ctx, characterrepo.SaveInput{Character: char})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create character %s", char.ID)
	}

	slog.InfoContext(ctx, "character created",
		"character_id", char.ID,
		"path", output.Path)

	return &character.CreateCharacterOutput{
		Character: char,
		Path:      output.Path,
	}, nil
}

// DeleteCharacter removes a character; a missing character is not an error
func (o *Orchestrator) DeleteCharacter(
	ctx context.Context,
	input *character.DeleteCharacterInput,
) (*character.DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	output, err := o.characterRepo.Delete(ctx, characterrepo.DeleteInput{ID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete character %s", input.CharacterID)
	}

	slog.InfoContext(ctx, "character deleted",
		"character_id", input.CharacterID,
		"existed", output.Existed)

	return &character.DeleteCharacterOutput{Existed: output.Existed}, nil
}

// GetStorageDirectory reports where records are kept
func (o *Orchestrator) GetStorageDirectory(
	_ context.Context,
	_ *character.GetStorageDirectoryInput,
) (*character.GetStorageDirectoryOutput, error) {
	return &character.GetStorageDirectoryOutput{Path: o.characterRepo.Location()}, nil
}
