package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheet-store/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
	"github.com/KirkDiggler/rpg-sheet-store/internal/services/character"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var skipCorrupt bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every stored character",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}

			output, err := svc.ListCharacters(cmd.Context(), &character.ListCharactersInput{
				SkipCorrupt: skipCorrupt,
			})
			if err != nil {
				return err
			}

			for _, skipped := range output.Skipped {
				slog.WarnContext(cmd.Context(), "skipped unreadable record",
					"path", skipped.Path,
					"reason", skipped.Reason)
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %s\n", skipped.Path, skipped.Reason)
			}

			if len(output.Characters) == 0 {
				_, err := fmt.Fprintln(opts.out, "No characters stored.")
				return err
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "NAME", "RACE", "CLASS", "LEVEL", "HP")
			for _, char := range output.Characters {
				t.Row(char.ID, char.Name, char.Race, char.Class,
					strconv.Itoa(int(char.Level)), hitPoints(char))
			}

			_, err = fmt.Fprintln(opts.out, t.String())
			return err
		},
	}

	cmd.Flags().BoolVar(&skipCorrupt, "skip-corrupt", false, "Leave out unreadable records instead of failing")
	return cmd
}

func hitPoints(char *dnd5e.Character) string {
	if char.MaxHitPoints == nil {
		return strconv.Itoa(int(char.HitPoints))
	}
	return fmt.Sprintf("%d/%d", char.HitPoints, *char.MaxHitPoints)
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one character record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}

			output, err := svc.GetCharacter(cmd.Context(), &character.GetCharacterInput{CharacterID: args[0]})
			if err != nil {
				return err
			}

			return writeJSON(opts.out, output.Character)
		},
	}
}

func newSaveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save [file|-]",
		Short: "Save a full character record, replacing any record with the same ID",
		Long: `Reads one JSON character record from a file, or from stdin when the
argument is "-" or omitted, and writes it to the store.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := "-"
			if len(args) == 1 {
				src = args[0]
			}

			char, err := readRecord(opts.in, src)
			if err != nil {
				return err
			}

			svc, err := opts.service()
			if err != nil {
				return err
			}

			output, err := svc.SaveCharacter(cmd.Context(), &character.SaveCharacterInput{Character: char})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(opts.out, output.Path)
			return err
		},
	}
}

func newNewCmd(opts *rootOptions) *cobra.Command {
	var (
		char  dnd5e.Character
		level int
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a character with a generated ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}

			char.Level = int32(level)
			output, err := svc.CreateCharacter(cmd.Context(), &character.CreateCharacterInput{Character: &char})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(opts.out, output.Character.ID)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&char.ID, "id", "", "Character ID (generated when empty)")
	flags.StringVar(&char.Name, "name", "", "Character name (required)")
	flags.StringVar(&char.Race, "race", "", "Race")
	flags.StringVar(&char.Class, "class", "", "Class")
	flags.StringVar(&char.Background, "background", "", "Background")
	flags.StringVar(&char.Alignment, "alignment", dnd5e.AlignmentNeutral, "Alignment")
	flags.IntVar(&level, "level", 1, "Character level")
	_ = cmd.MarkFlagRequired("name") // nolint:errcheck // safe to ignore in init

	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a character; deleting a missing character succeeds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}

			output, err := svc.DeleteCharacter(cmd.Context(), &character.DeleteCharacterInput{CharacterID: args[0]})
			if err != nil {
				return err
			}

			msg := "deleted " + args[0]
			if !output.Existed {
				msg = "no character " + args[0] + ", nothing to delete"
			}
			_, err = fmt.Fprintln(opts.out, msg)
			return err
		},
	}
}

func newDirCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Print where character records are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}

			output, err := svc.GetStorageDirectory(cmd.Context(), &character.GetStorageDirectoryInput{})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(opts.out, output.Path)
			return err
		},
	}
}

// readRecord decodes one JSON character from a file, or stdin for "-"
func readRecord(stdin io.Reader, src string) (*dnd5e.Character, error) {
	var r io.Reader = stdin
	if src != "-" {
		f, err := os.Open(src)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to open "+src)
		}
		defer func() {
			_ = f.Close() // nolint:errcheck // read-only
		}()
		r = f
	}

	var char dnd5e.Character
	if err := json.NewDecoder(r).Decode(&char); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode character record")
	}
	return &char, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
