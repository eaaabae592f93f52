package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheet-store/internal/config"
	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
	"github.com/KirkDiggler/rpg-sheet-store/internal/watcher"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print record changes made by any process until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.cfg.Backend != config.BackendFile {
				return errors.FailedPrecondition("watch is only available for the file backend")
			}

			dir, err := opts.storageDir()
			if err != nil {
				return err
			}

			w, err := watcher.New(&watcher.Config{Dir: dir})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := w.Start(ctx); err != nil {
				return err
			}
			defer w.Stop()

			for change := range w.Changes() {
				if _, err := fmt.Fprintf(opts.out, "%s\t%s\t%s\n", change.Op, change.ID, change.Path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
