package character

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
	characterrepo "github.com/KirkDiggler/rpg-sheet-store/internal/repositories/character"
	"github.com/KirkDiggler/rpg-sheet-store/internal/services/character"
)

// ExportCharacters writes every stored character to the writer as one bundle,
// ordered by ID. A single unreadable record fails the export.
func (o *Orchestrator) ExportCharacters(
	ctx context.Context,
	input *character.ExportCharactersInput,
) (*character.ExportCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.Writer == nil {
		vb.RequiredField("writer")
	}
	validateFormat(vb, input.Format)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	listed, err := o.characterRepo.List(ctx, characterrepo.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list characters for export")
	}

	bundle := character.Bundle{Characters: listed.Characters}
	sort.Slice(bundle.Characters, func(i, j int) bool {
		return bundle.Characters[i].ID < bundle.Characters[j].ID
	})

	if err := encodeBundle(input.Writer, input.Format, &bundle); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "characters exported",
		"format", string(input.Format),
		"count", len(bundle.Characters))

	return &character.ExportCharactersOutput{Count: len(bundle.Characters)}, nil
}

// ImportCharacters saves every character in a bundle, overwriting records
// with the same ID. Nothing is written unless the whole bundle is valid.
func (o *Orchestrator) ImportCharacters(
	ctx context.Context,
	input *character.ImportCharactersInput,
) (*character.ImportCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.Reader == nil {
		vb.RequiredField("reader")
	}
	validateFormat(vb, input.Format)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	bundle, err := decodeBundle(input.Reader, input.Format)
	if err != nil {
		return nil, err
	}

	for i, char := range bundle.Characters {
		if char == nil {
			return nil, errors.InvalidArgumentf("bundle entry %d is empty", i)
		}
		if err := characterrepo.ValidateID(char.ID); err != nil {
			return nil, errors.Wrapf(err, "bundle entry %d", i)
		}
	}

	ids := make([]string, 0, len(bundle.Characters))
	for _, char := range bundle.Characters {
		if _, err := o.characterRepo.Save(ctx, characterrepo.SaveInput{Character: char}); err != nil {
			return nil, errors.Wrapf(err, "failed to import character %s", char.ID)
		}
		ids = append(ids, char.ID)
	}

	slog.InfoContext(ctx, "characters imported",
		"format", string(input.Format),
		"count", len(ids))

	return &character.ImportCharactersOutput{CharacterIDs: ids}, nil
}

func validateFormat(vb *errors.ValidationBuilder, format character.Format) {
	if format == "" {
		vb.RequiredField("format")
		return
	}
	errors.ValidateEnum("format", string(format), character.Formats, vb)
}

func encodeBundle(w io.Writer, format character.Format, bundle *character.Bundle) error {
	switch format {
	case character.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(bundle); err != nil {
			return errors.WrapWithCode(err, errors.CodeInternal, "failed to encode yaml bundle")
		}
		if err := enc.Close(); err != nil {
			return errors.WrapWithCode(err, errors.CodeInternal, "failed to flush yaml bundle")
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(bundle); err != nil {
			return errors.WrapWithCode(err, errors.CodeInternal, "failed to encode json bundle")
		}
	}
	return nil
}

func decodeBundle(r io.Reader, format character.Format) (*character.Bundle, error) {
	var bundle character.Bundle
	switch format {
	case character.FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&bundle); err != nil && err != io.EOF {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode yaml bundle")
		}
	default:
		if err := json.NewDecoder(r).Decode(&bundle); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode json bundle")
		}
	}
	return &bundle, nil
}
