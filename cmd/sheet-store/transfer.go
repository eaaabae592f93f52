package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
	"github.com/KirkDiggler/rpg-sheet-store/internal/services/character"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every character to one JSON or YAML bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err := svc.ExportCharacters(cmd.Context(), &character.ExportCharactersInput{
					Format: character.Format(format),
					Writer: opts.out,
				})
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return errors.FileIO(err, "create", out)
			}

			output, err := svc.ExportCharacters(cmd.Context(), &character.ExportCharactersInput{
				Format: character.Format(format),
				Writer: f,
			})
			if closeErr := f.Close(); err == nil && closeErr != nil {
				return errors.FileIO(closeErr, "write", out)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "exported %d characters to %s\n", output.Count, out)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(character.FormatJSON), "Bundle format: json or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Save every character in a bundle, replacing records with the same ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]

			var r io.Reader = opts.in
			if src != "-" {
				f, err := os.Open(src)
				if err != nil {
					return errors.FileIO(err, "open", src)
				}
				defer func() {
					_ = f.Close() // nolint:errcheck // read-only
				}()
				r = f
			}

			if format == "" {
				format = formatFromPath(src)
			}

			svc, err := opts.service()
			if err != nil {
				return err
			}

			output, err := svc.ImportCharacters(cmd.Context(), &character.ImportCharactersInput{
				Format: character.Format(format),
				Reader: r,
			})
			if err != nil {
				return err
			}

			for _, id := range output.CharacterIDs {
				if _, err := fmt.Fprintln(opts.out, id); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Bundle format: json or yaml (default from file extension)")
	return cmd
}

// formatFromPath picks yaml for .yaml/.yml files and json otherwise
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return string(character.FormatYAML)
	default:
		return string(character.FormatJSON)
	}
}
