// Package v1 handles the sheet.v1 gRPC service interface
package v1

import (
	"context"
	"encoding/json"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/KirkDiggler/rpg-sheet-store/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
	"github.com/KirkDiggler/rpg-sheet-store/internal/services/character"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	CharacterService character.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.CharacterService == nil {
		return errors.InvalidArgument("character service is required")
	}
	return nil
}

// Handler implements the CharacterStore gRPC service
type Handler struct {
	characterService character.Service
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		characterService: cfg.CharacterService,
	}, nil
}

var _ CharacterStoreServer = (*Handler)(nil)

// ListCharacters returns every stored character, each as a Struct
func (h *Handler) ListCharacters(
	ctx context.Context,
	_ *emptypb.Empty,
) (*structpb.ListValue, error) {
	output, err := h.characterService.ListCharacters(ctx, &character.ListCharactersInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	values := make([]*structpb.Value, 0, len(output.Characters))
	for _, char := range output.Characters {
		s, err := ToStruct(char)
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		values = append(values, structpb.NewStructValue(s))
	}

	return &structpb.ListValue{Values: values}, nil
}

// GetCharacter returns one character
func (h *Handler) GetCharacter(
	ctx context.Context,
	req *wrapperspb.StringValue,
) (*structpb.Struct, error) {
	if req.GetValue() == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("character id is required"))
	}

	output, err := h.characterService.GetCharacter(ctx, &character.GetCharacterInput{
		CharacterID: req.GetValue(),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	s, err := ToStruct(output.Character)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return s, nil
}

// SaveCharacter writes the full record carried by the Struct
func (h *Handler) SaveCharacter(
	ctx context.Context,
	req *structpb.Struct,
) (*emptypb.Empty, error) {
	char, err := FromStruct(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	if _, err := h.characterService.SaveCharacter(ctx, &character.SaveCharacterInput{
		Character: char,
	}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &emptypb.Empty{}, nil
}

// DeleteCharacter removes a character; deleting a missing one succeeds
func (h *Handler) DeleteCharacter(
	ctx context.Context,
	req *wrapperspb.StringValue,
) (*emptypb.Empty, error) {
	if req.GetValue() == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("character id is required"))
	}

	if _, err := h.characterService.DeleteCharacter(ctx, &character.DeleteCharacterInput{
		CharacterID: req.GetValue(),
	}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &emptypb.Empty{}, nil
}

// GetStorageDirectory reports where records are kept
func (h *Handler) GetStorageDirectory(
	ctx context.Context,
	_ *emptypb.Empty,
) (*wrapperspb.StringValue, error) {
	output, err := h.characterService.GetStorageDirectory(ctx, &character.GetStorageDirectoryInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return wrapperspb.String(output.Path), nil
}

// ToStruct converts a character to the Struct form of its JSON record
func ToStruct(char *dnd5e.Character) (*structpb.Struct, error) {
	if char == nil {
		return nil, errors.InvalidArgument("character cannot be nil")
	}

	data, err := json.Marshal(char)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to encode character")
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to encode character")
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to encode character")
	}
	return s, nil
}

// FromStruct converts a Struct back to a character, applying the same
// defaults as reading a stored record.
func FromStruct(s *structpb.Struct) (*dnd5e.Character, error) {
	if s == nil {
		return nil, errors.InvalidArgument("character cannot be nil")
	}

	data, err := s.MarshalJSON()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode character")
	}

	var char dnd5e.Character
	if err := json.Unmarshal(data, &char); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode character")
	}
	return &char, nil
}
