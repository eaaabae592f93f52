package character

import (
	"context"
	"encoding/json"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/KirkDiggler/rpg-sheet-store/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

type fileRepository struct {
	fs  afero.Afero
	dir string
}

// FileConfig contains configuration for the file-per-record character repository.
type FileConfig struct {
	// Dir is the storage directory; it is created on first save
	Dir string
	// Fs defaults to the operating system filesystem
	Fs afero.Fs
}

// Validate validates the FileConfig.
func (cfg *FileConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Dir == "" {
		return errors.InvalidArgument("storage directory cannot be empty")
	}
	return nil
}

// NewFile creates a repository that keeps each character in <Dir>/<id>.json.
// A relative Dir is made absolute against the working directory.
func NewFile(cfg *FileConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fsys := cfg.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, errors.DirectoryAccess(err, "resolve directory", cfg.Dir)
	}

	return &fileRepository{
		fs:  afero.Afero{Fs: fsys},
		dir: dir,
	}, nil
}

func (r *fileRepository) Location() string {
	return r.dir
}

func (r *fileRepository) path(id string) string {
	return filepath.Join(r.dir, FileName(id))
}

func (r *fileRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	entries, err := r.fs.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Nothing saved yet
			slog.DebugContext(ctx, "storage directory does not exist yet",
				"dir", r.dir)
			return &ListOutput{Characters: []*dnd5e.Character{}}, nil
		}
		return nil, errors.DirectoryAccess(err, "read directory", r.dir)
	}

	output := &ListOutput{Characters: make([]*dnd5e.Character, 0, len(entries))}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok := IDFromFileName(entry.Name())
		if !ok {
			continue
		}

		path := filepath.Join(r.dir, entry.Name())
		char, err := r.read(ctx, id, path)
		if err != nil {
			if !input.SkipCorrupt {
				slog.ErrorContext(ctx, "aborting character listing on unreadable record",
					"path", path,
					"error", err.Error())
				return nil, err
			}
			slog.WarnContext(ctx, "skipping unreadable character record",
				"path", path,
				"error", err.Error())
			output.Skipped = append(output.Skipped, SkippedRecord{ID: id, Path: path, Err: err})
			continue
		}
		output.Characters = append(output.Characters, char)
	}

	slog.DebugContext(ctx, "listed characters",
		"dir", r.dir,
		"count", len(output.Characters),
		"skipped", len(output.Skipped))

	return output, nil
}

func (r *fileRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := ValidateID(input.ID); err != nil {
		return nil, err
	}

	path := r.path(input.ID)
	char, err := r.read(ctx, input.ID, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFoundf("character with ID %s not found", input.ID).
				WithMeta("path", path)
		}
		return nil, err
	}

	return &GetOutput{Character: char}, nil
}

// read loads one record. The file name is authoritative for the ID.
func (r *fileRepository) read(ctx context.Context, id, path string) (*dnd5e.Character, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, errors.FileIO(err, "read", path)
	}

	var char dnd5e.Character
	if err := json.Unmarshal(data, &char); err != nil {
		return nil, errors.Serialization(err, "decode", path)
	}

	if char.ID != id {
		if char.ID != "" {
			slog.WarnContext(ctx, "record ID does not match file name, using file name",
				"path", path,
				"record_id", char.ID)
		}
		char.ID = id
	}

	return &char, nil
}

func (r *fileRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if err := ValidateID(input.Character.ID); err != nil {
		return nil, err
	}

	if err := r.fs.MkdirAll(r.dir, dirPerm); err != nil {
		return nil, errors.DirectoryAccess(err, "create directory", r.dir)
	}

	path := r.path(input.Character.ID)
	data, err := json.MarshalIndent(input.Character, "", "  ")
	if err != nil {
		return nil, errors.Serialization(err, "encode", path)
	}

	// Plain overwrite: a crash mid-write can leave a truncated record
	if err := r.fs.WriteFile(path, data, filePerm); err != nil {
		return nil, errors.FileIO(err, "write", path)
	}

	slog.DebugContext(ctx, "saved character",
		"character_id", input.Character.ID,
		"path", path,
		"bytes", len(data))

	return &SaveOutput{Path: path}, nil
}

func (r *fileRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := ValidateID(input.ID); err != nil {
		return nil, err
	}

	path := r.path(input.ID)
	if err := r.fs.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.DebugContext(ctx, "character already absent",
				"character_id", input.ID,
				"path", path)
			return &DeleteOutput{Existed: false}, nil
		}
		return nil, errors.FileIO(err, "delete", path)
	}

	slog.DebugContext(ctx, "deleted character",
		"character_id", input.ID,
		"path", path)

	return &DeleteOutput{Existed: true}, nil
}
