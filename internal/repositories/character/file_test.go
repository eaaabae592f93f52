package character_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
	character "github.com/KirkDiggler/rpg-sheet-store/internal/repositories/character"
	"github.com/KirkDiggler/rpg-sheet-store/internal/testutils"
	"github.com/KirkDiggler/rpg-sheet-store/internal/testutils/builders"
)

type FileRepositoryTestSuite struct {
	suite.Suite
	fs   afero.Fs
	dir  string
	repo character.Repository
	ctx  context.Context
}

func TestFileRepositorySuite(t *testing.T) {
	suite.Run(t, new(FileRepositoryTestSuite))
}

func (s *FileRepositoryTestSuite) SetupTest() {
	s.fs = afero.NewMemMapFs()
	s.dir = testutils.TestCharactersDir
	repo, err := character.NewFile(&character.FileConfig{Dir: s.dir, Fs: s.fs})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *FileRepositoryTestSuite) TestNewFileValidation() {
	_, err := character.NewFile(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = character.NewFile(&character.FileConfig{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *FileRepositoryTestSuite) TestLocation() {
	s.Equal(s.dir, s.repo.Location())
}

func (s *FileRepositoryTestSuite) TestSaveCreatesDirectoryAndNamesFileByID() {
	exists, err := afero.DirExists(s.fs, s.dir)
	s.Require().NoError(err)
	s.Require().False(exists)

	output, err := s.repo.Save(s.ctx, character.SaveInput{
		Character: builders.NewCharacterBuilder().WithID("abc").Build(),
	})
	s.Require().NoError(err)
	s.Equal(filepath.Join(s.dir, "abc.json"), output.Path)

	exists, err = afero.Exists(s.fs, filepath.Join(s.dir, "abc.json"))
	s.Require().NoError(err)
	s.True(exists)

	names := s.fileNames()
	s.Equal([]string{"abc.json"}, names)
}

func (s *FileRepositoryTestSuite) TestSaveWritesPrettyJSON() {
	_, err := s.repo.Save(s.ctx, character.SaveInput{
		Character: builders.NewCharacterBuilder().WithID("abc").Build(),
	})
	s.Require().NoError(err)

	data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, "abc.json"))
	s.Require().NoError(err)
	s.Contains(string(data), "{\n  \"id\": \"abc\",\n  \"name\": \"Test Hero\"")
	s.NotContains(string(data), "null")
}

func (s *FileRepositoryTestSuite) TestListIgnoresOtherEntries() {
	_, err := s.repo.Save(s.ctx, character.SaveInput{
		Character: builders.NewCharacterBuilder().WithID("real").Build(),
	})
	s.Require().NoError(err)

	testutils.WriteRecordFile(s.T(), s.fs, s.dir, "notes.txt", "not a record")
	testutils.WriteRecordFile(s.T(), s.fs, s.dir, "backup.json.bak", "{")
	testutils.WriteRecordFile(s.T(), s.fs, s.dir, ".json", "{")
	testutils.WriteRecordFile(s.T(), s.fs, s.dir, " .json", `{"name": "Blank"}`)
	testutils.WriteRecordFile(s.T(), s.fs, s.dir, "..json", "{}")
	s.Require().NoError(s.fs.MkdirAll(filepath.Join(s.dir, "nested.json"), 0o755))

	output, err := s.repo.List(s.ctx, character.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(output.Characters, 1)
	s.Equal("real", output.Characters[0].ID)
}

func (s *FileRepositoryTestSuite) TestFileNameIsAuthoritativeForID() {
	testutils.WriteRecordFile(s.T(), s.fs, s.dir, "no-id.json", `{"name": "Anon"}`)
	testutils.WriteRecordFile(s.T(), s.fs, s.dir, "renamed.json", `{"id": "original", "name": "Moved"}`)

	output, err := s.repo.List(s.ctx, character.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(output.Characters, 2)

	ids := []string{output.Characters[0].ID, output.Characters[1].ID}
	s.ElementsMatch([]string{"no-id", "renamed"}, ids)
}

func (s *FileRepositoryTestSuite) TestSaveDoesNotMutateInput() {
	char := builders.NewCharacterBuilder().WithID("abc").Build()
	char.Equipment = nil

	_, err := s.repo.Save(s.ctx, character.SaveInput{Character: char})
	s.Require().NoError(err)
	s.Nil(char.Equipment)

	stored := testutils.ReadRecordFile(s.T(), s.fs, s.dir, "abc")
	s.Equal([]string{}, stored.Equipment)
}

func (s *FileRepositoryTestSuite) TestReadOnlyFilesystem() {
	_, err := s.repo.Save(s.ctx, character.SaveInput{
		Character: builders.NewCharacterBuilder().WithID("abc").Build(),
	})
	s.Require().NoError(err)

	readOnly, err := character.NewFile(&character.FileConfig{
		Dir: s.dir,
		Fs:  afero.NewReadOnlyFs(s.fs),
	})
	s.Require().NoError(err)

	s.Run("list still works", func() {
		output, err := readOnly.List(s.ctx, character.ListInput{})
		s.Require().NoError(err)
		s.Len(output.Characters, 1)
	})

	s.Run("save fails creating the directory", func() {
		_, err := readOnly.Save(s.ctx, character.SaveInput{
			Character: builders.NewCharacterBuilder().WithID("new").Build(),
		})
		s.Require().Error(err)
		s.Equal(errors.KindDirectoryAccess, errors.GetKind(err))
		s.Equal(s.dir, errors.GetPath(err))
	})

	s.Run("delete fails removing the file", func() {
		_, err := readOnly.Delete(s.ctx, character.DeleteInput{ID: "abc"})
		s.Require().Error(err)
		s.Equal(errors.KindFileIO, errors.GetKind(err))
		s.Equal(filepath.Join(s.dir, "abc.json"), errors.GetPath(err))
	})
}

func (s *FileRepositoryTestSuite) fileNames() []string {
	entries, err := afero.ReadDir(s.fs, s.dir)
	s.Require().NoError(err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

// OSFileRepositoryTestSuite covers failures only a real filesystem produces
type OSFileRepositoryTestSuite struct {
	suite.Suite
	root string
	ctx  context.Context
}

func TestOSFileRepositorySuite(t *testing.T) {
	suite.Run(t, new(OSFileRepositoryTestSuite))
}

func (s *OSFileRepositoryTestSuite) SetupTest() {
	s.root = s.T().TempDir()
	s.ctx = context.Background()
}

func (s *OSFileRepositoryTestSuite) newRepo(dir string) character.Repository {
	repo, err := character.NewFile(&character.FileConfig{Dir: dir})
	s.Require().NoError(err)
	return repo
}

func (s *OSFileRepositoryTestSuite) TestRelativeDirectoryIsMadeAbsolute() {
	rel := filepath.Join("rel", "chars")
	expected, err := filepath.Abs(rel)
	s.Require().NoError(err)

	repo := s.newRepo(rel)

	s.True(filepath.IsAbs(repo.Location()))
	s.Equal(expected, repo.Location())
}

func (s *OSFileRepositoryTestSuite) TestCreatesNestedDirectories() {
	dir := filepath.Join(s.root, "share", "dnd-beyond-desktop", "characters")
	repo := s.newRepo(dir)

	_, err := repo.Save(s.ctx, character.SaveInput{
		Character: builders.NewCharacterBuilder().WithID("abc").Build(),
	})
	s.Require().NoError(err)
	s.FileExists(filepath.Join(dir, "abc.json"))
}

func (s *OSFileRepositoryTestSuite) TestStorageDirectoryIsAFile() {
	dir := filepath.Join(s.root, "characters")
	s.Require().NoError(os.WriteFile(dir, []byte("oops"), 0o600))
	repo := s.newRepo(dir)

	_, err := repo.List(s.ctx, character.ListInput{})
	s.Require().Error(err)
	s.Equal(errors.KindDirectoryAccess, errors.GetKind(err))
	s.Contains(err.Error(), dir)

	_, err = repo.Save(s.ctx, character.SaveInput{
		Character: builders.NewCharacterBuilder().WithID("abc").Build(),
	})
	s.Require().Error(err)
	s.Equal(errors.KindDirectoryAccess, errors.GetKind(err))
}

func (s *OSFileRepositoryTestSuite) TestRecordPathIsADirectory() {
	dir := filepath.Join(s.root, "characters")
	blocked := filepath.Join(dir, "blocked.json")
	s.Require().NoError(os.MkdirAll(filepath.Join(blocked, "inner"), 0o755))
	repo := s.newRepo(dir)

	_, err := repo.Save(s.ctx, character.SaveInput{
		Character: builders.NewCharacterBuilder().WithID("blocked").Build(),
	})
	s.Require().Error(err)
	s.Equal(errors.KindFileIO, errors.GetKind(err))
	s.Equal(blocked, errors.GetPath(err))

	_, err = repo.Delete(s.ctx, character.DeleteInput{ID: "blocked"})
	s.Require().Error(err)
	s.Equal(errors.KindFileIO, errors.GetKind(err))

	// Directories never show up as records
	output, err := repo.List(s.ctx, character.ListInput{})
	s.Require().NoError(err)
	s.Empty(output.Characters)
}
