package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheet-store/internal/services/character"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var (
		remove bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Find records that cannot be read, optionally deleting them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}

			output, err := svc.ListCharacters(cmd.Context(), &character.ListCharactersInput{SkipCorrupt: true})
			if err != nil {
				return err
			}

			fmt.Fprintf(opts.out, "Checked %d records, found %d unreadable\n",
				len(output.Characters)+len(output.Skipped), len(output.Skipped))
			if len(output.Skipped) == 0 {
				return nil
			}

			for _, skipped := range output.Skipped {
				fmt.Fprintf(opts.out, "  - %s: %s\n", skipped.Path, skipped.Reason)
			}

			if !remove {
				return nil
			}

			if !yes {
				fmt.Fprint(opts.out, "Delete these records? (yes/no): ")
				answer, _ := bufio.NewReader(opts.in).ReadString('\n')
				if strings.TrimSpace(answer) != "yes" {
					fmt.Fprintln(opts.out, "Aborted, no changes made")
					return nil
				}
			}

			for _, skipped := range output.Skipped {
				if _, err := svc.DeleteCharacter(cmd.Context(), &character.DeleteCharacterInput{
					CharacterID: skipped.ID,
				}); err != nil {
					return err
				}
				fmt.Fprintf(opts.out, "Deleted %s\n", skipped.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "delete", false, "Delete unreadable records")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask before deleting")
	return cmd
}
