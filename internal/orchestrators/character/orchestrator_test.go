package character_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-sheet-store/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
	"github.com/KirkDiggler/rpg-sheet-store/internal/orchestrators/character"
	"github.com/KirkDiggler/rpg-sheet-store/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/rpg-sheet-store/internal/repositories/character"
	characterrepomock "github.com/KirkDiggler/rpg-sheet-store/internal/repositories/character/mock"
	charactersvc "github.com/KirkDiggler/rpg-sheet-store/internal/services/character"
	"github.com/KirkDiggler/rpg-sheet-store/internal/testutils/builders"
)

const testStorageDir = "/data/dnd-beyond-desktop/characters"

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockCharRepo *characterrepomock.MockRepository
	orchestrator *character.Orchestrator
	ctx          context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCharRepo = characterrepomock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	orchestrator, err := character.New(&character.Config{
		CharacterRepo: s.mockCharRepo,
		IDGenerator:   idgen.NewSequential("char"),
	})
	s.Require().NoError(err)
	s.orchestrator = orchestrator
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) TestNewValidation() {
	s.Run("nil config", func() {
		_, err := character.New(nil)
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("missing repository", func() {
		_, err := character.New(&character.Config{})
		s.True(errors.IsInvalidArgument(err))
		s.Contains(err.Error(), "CharacterRepo: is required")
	})

	s.Run("id generator defaults", func() {
		orchestrator, err := character.New(&character.Config{CharacterRepo: s.mockCharRepo})
		s.NoError(err)
		s.NotNil(orchestrator)
	})
}

func (s *OrchestratorTestSuite) TestListCharacters() {
	s.Run("returns repository records", func() {
		chars := []*dnd5e.Character{
			builders.NewCharacterBuilder().WithID("a").Build(),
			builders.NewCharacterBuilder().WithID("b").Build(),
		}
		s.mockCharRepo.EXPECT().
			List(s.ctx, characterrepo.ListInput{}).
			Return(&characterrepo.ListOutput{Characters: chars}, nil)

		output, err := s.orchestrator.ListCharacters(s.ctx, nil)

		s.Require().NoError(err)
		s.Equal(chars, output.Characters)
		s.Empty(output.Skipped)
	})

	s.Run("lenient listing reports skipped paths", func() {
		decodeErr := errors.Serialization(errors.New(errors.CodeInternal, "unexpected end of JSON input"), "decode", testStorageDir+"/bad.json")
		s.mockCharRepo.EXPECT().
			List(s.ctx, characterrepo.ListInput{SkipCorrupt: true}).
			Return(&characterrepo.ListOutput{
				Characters: []*dnd5e.Character{},
				Skipped: []characterrepo.SkippedRecord{{
					ID:   "bad",
					Path: testStorageDir + "/bad.json",
					Err:  decodeErr,
				}},
			}, nil)

		output, err := s.orchestrator.ListCharacters(s.ctx, &charactersvc.ListCharactersInput{SkipCorrupt: true})

		s.Require().NoError(err)
		s.Empty(output.Characters)
		s.Equal([]charactersvc.SkippedCharacter{{
			ID:     "bad",
			Path:   testStorageDir + "/bad.json",
			Reason: decodeErr.Error(),
		}}, output.Skipped)
		s.Contains(output.Skipped[0].Reason, "failed to decode "+testStorageDir+"/bad.json")
		s.Contains(output.Skipped[0].Reason, "unexpected end of JSON input")
	})

	s.Run("storage failure keeps its kind", func() {
		s.mockCharRepo.EXPECT().
			List(s.ctx, characterrepo.ListInput{}).
			Return(nil, errors.DirectoryAccess(errors.New(errors.CodeInternal, "permission denied"), "read directory", testStorageDir))

		output, err := s.orchestrator.ListCharacters(s.ctx, &charactersvc.ListCharactersInput{})

		s.Nil(output)
		s.Equal(errors.KindDirectoryAccess, errors.GetKind(err))
		s.Contains(err.Error(), "failed to list characters")
	})
}

func (s *OrchestratorTestSuite) TestGetCharacter() {
	s.Run("requires an id", func() {
		_, err := s.orchestrator.GetCharacter(s.ctx, &charactersvc.GetCharacterInput{})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("found", func() {
		char := builders.NewCharacterBuilder().WithID("abc").Build()
		s.mockCharRepo.EXPECT().
			Get(s.ctx, characterrepo.GetInput{ID: "abc"}).
			Return(&characterrepo.GetOutput{Character: char}, nil)

		output, err := s.orchestrator.GetCharacter(s.ctx, &charactersvc.GetCharacterInput{CharacterID: "abc"})

		s.Require().NoError(err)
		s.Equal(char, output.Character)
	})

	s.Run("not found", func() {
		s.mockCharRepo.EXPECT().
			Get(s.ctx, characterrepo.GetInput{ID: "ghost"}).
			Return(nil, errors.NotFound("character with ID ghost not found"))

		_, err := s.orchestrator.GetCharacter(s.ctx, &charactersvc.GetCharacterInput{CharacterID: "ghost"})

		s.True(errors.IsNotFound(err))
	})
}

func (s *OrchestratorTestSuite) TestSaveCharacter() {
	s.Run("requires a character", func() {
		_, err := s.orchestrator.SaveCharacter(s.ctx, &charactersvc.SaveCharacterInput{})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("passes the whole record through", func() {
		char := builders.NewCharacterBuilder().WithID("abc").WithName("Fenn").Build()
		s.mockCharRepo.EXPECT().
			Save(s.ctx, characterrepo.SaveInput{Character: char}).
			Return(&characterrepo.SaveOutput{Path: testStorageDir + "/abc.json"}, nil)

		output, err := s.orchestrator.SaveCharacter(s.ctx, &charactersvc.SaveCharacterInput{Character: char})

		s.Require().NoError(err)
		s.Equal(testStorageDir+"/abc.json", output.Path)
	})

	s.Run("write failure", func() {
		char := builders.NewCharacterBuilder().WithID("abc").Build()
		s.mockCharRepo.EXPECT().
			Save(s.ctx, characterrepo.SaveInput{Character: char}).
			Return(nil, errors.FileIO(errors.New(errors.CodeInternal, "disk full"), "write", testStorageDir+"/abc.json"))

		_, err := s.orchestrator.SaveCharacter(s.ctx, &charactersvc.SaveCharacterInput{Character: char})

		s.Equal(errors.KindFileIO, errors.GetKind(err))
		s.Equal(testStorageDir+"/abc.json", errors.GetPath(err))
	})
}

func (s *OrchestratorTestSuite) TestCreateCharacter() {
	s.Run("generates an id and defaults", func() {
		input := &dnd5e.Character{Name: "Fresh"}

		s.mockCharRepo.EXPECT().
			Get(s.ctx, characterrepo.GetInput{ID: "char_1"}).
			Return(nil, errors.NotFound("character with ID char_1 not found"))
		s.mockCharRepo.EXPECT().
			Save(s.ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, in characterrepo.SaveInput) (*characterrepo.SaveOutput, error) {
				s.Equal("char_1", in.Character.ID)
				return &characterrepo.SaveOutput{Path: testStorageDir + "/char_1.json"}, nil
			})

		output, err := s.orchestrator.CreateCharacter(s.ctx, &charactersvc.CreateCharacterInput{Character: input})

		s.Require().NoError(err)
		s.Equal("char_1", output.Character.ID)
		s.Equal("Fresh", output.Character.Name)
		s.Equal(dnd5e.AlignmentNeutral, output.Character.Alignment)
		s.NotNil(output.Character.Equipment)
		s.Equal(testStorageDir+"/char_1.json", output.Path)

		// The caller's value is left alone
		s.Empty(input.ID)
		s.Empty(input.Alignment)
		s.Nil(input.Equipment)
	})

	s.Run("keeps a caller supplied id", func() {
		char := builders.NewCharacterBuilder().WithID("chosen").WithAlignment("Chaotic Good").Build()

		s.mockCharRepo.EXPECT().
			Get(s.ctx, characterrepo.GetInput{ID: "chosen"}).
			Return(nil, errors.NotFound("character with ID chosen not found"))
		s.mockCharRepo.EXPECT().
			Save(s.ctx, characterrepo.SaveInput{Character: char}).
			Return(&characterrepo.SaveOutput{Path: testStorageDir + "/chosen.json"}, nil)

		output, err := s.orchestrator.CreateCharacter(s.ctx, &charactersvc.CreateCharacterInput{Character: char})

		s.Require().NoError(err)
		s.Equal(char, output.Character)
		s.Equal("Chaotic Good", output.Character.Alignment)
	})

	s.Run("refuses to overwrite", func() {
		char := builders.NewCharacterBuilder().WithID("taken").Build()

		s.mockCharRepo.EXPECT().
			Get(s.ctx, characterrepo.GetInput{ID: "taken"}).
			Return(&characterrepo.GetOutput{Character: char}, nil)

		_, err := s.orchestrator.CreateCharacter(s.ctx, &charactersvc.CreateCharacterInput{Character: char})

		s.True(errors.IsAlreadyExists(err))
	})

	s.Run("unreadable existing record", func() {
		char := builders.NewCharacterBuilder().WithID("broken").Build()

		s.mockCharRepo.EXPECT().
			Get(s.ctx, characterrepo.GetInput{ID: "broken"}).
			Return(nil, errors.Serialization(errors.New(errors.CodeInternal, "eof"), "decode", testStorageDir+"/broken.json"))

		_, err := s.orchestrator.CreateCharacter(s.ctx, &charactersvc.CreateCharacterInput{Character: char})

		s.True(errors.IsDataLoss(err))
	})

	s.Run("requires a character", func() {
		_, err := s.orchestrator.CreateCharacter(s.ctx, &charactersvc.CreateCharacterInput{})
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *OrchestratorTestSuite) TestDeleteCharacter() {
	s.Run("requires an id", func() {
		_, err := s.orchestrator.DeleteCharacter(s.ctx, &charactersvc.DeleteCharacterInput{})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("missing record is not an error", func() {
		s.mockCharRepo.EXPECT().
			Delete(s.ctx, characterrepo.DeleteInput{ID: "ghost"}).
			Return(&characterrepo.DeleteOutput{Existed: false}, nil)

		output, err := s.orchestrator.DeleteCharacter(s.ctx, &charactersvc.DeleteCharacterInput{CharacterID: "ghost"})

		s.Require().NoError(err)
		s.False(output.Existed)
	})

	s.Run("existing record", func() {
		s.mockCharRepo.EXPECT().
			Delete(s.ctx, characterrepo.DeleteInput{ID: "abc"}).
			Return(&characterrepo.DeleteOutput{Existed: true}, nil)

		output, err := s.orchestrator.DeleteCharacter(s.ctx, &charactersvc.DeleteCharacterInput{CharacterID: "abc"})

		s.Require().NoError(err)
		s.True(output.Existed)
	})
}

func (s *OrchestratorTestSuite) TestGetStorageDirectory() {
	s.mockCharRepo.EXPECT().Location().Return(testStorageDir)

	output, err := s.orchestrator.GetStorageDirectory(s.ctx, &charactersvc.GetStorageDirectoryInput{})

	s.Require().NoError(err)
	s.Equal(testStorageDir, output.Path)
}
