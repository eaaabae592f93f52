package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheet-store/cmd/sheet-store/client"
	"github.com/KirkDiggler/rpg-sheet-store/internal/config"
	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
	characterorchestrator "github.com/KirkDiggler/rpg-sheet-store/internal/orchestrators/character"
	"github.com/KirkDiggler/rpg-sheet-store/internal/pkg/datadir"
	"github.com/KirkDiggler/rpg-sheet-store/internal/redis"
	characterrepo "github.com/KirkDiggler/rpg-sheet-store/internal/repositories/character"
	"github.com/KirkDiggler/rpg-sheet-store/internal/services/character"
)

// rootOptions carries the global flags and the resolved configuration
type rootOptions struct {
	dataDir   string
	appID     string
	logLevel  string
	backend   string
	redisAddr string

	cfg *config.Config
	in  io.Reader
	out io.Writer
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	opts := &rootOptions{in: in, out: out}

	cmd := &cobra.Command{
		Use:   "sheet-store",
		Short: "Local character sheet store",
		Long: `sheet-store keeps D&D 5e character sheets as one JSON file per character
in the per-user application data directory.`,
		SilenceUsage:      true,
		PersistentPreRunE: opts.setup,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.dataDir, "data-dir", "", "Storage directory (default: <user data dir>/<app-id>/characters)")
	flags.StringVar(&opts.appID, "app-id", datadir.DefaultAppID, "Application directory name under the user data dir")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.backend, "backend", string(config.BackendFile), "Storage backend: file or redis")
	flags.StringVar(&opts.redisAddr, "redis-addr", "localhost:6379", "Redis address for the redis backend")

	cmd.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newSaveCmd(opts),
		newNewCmd(opts),
		newDeleteCmd(opts),
		newDirCmd(opts),
		newCheckCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newWatchCmd(opts),
		newServerCmd(opts),
		client.ClientCmd,
	)

	return cmd
}

// setup loads SHEET_* settings, applies explicit flags over them, and
// installs the default logger.
func (o *rootOptions) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("app-id") {
		cfg.AppID = o.appID
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("backend") {
		cfg.Backend = config.Backend(o.backend)
	}
	if flags.Changed("redis-addr") {
		cfg.RedisAddr = o.redisAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	o.cfg = cfg
	return nil
}

// storageDir is the explicit --data-dir or the platform location. Failing to
// find the platform location is fatal; there is no fallback.
func (o *rootOptions) storageDir() (string, error) {
	if o.dataDir != "" {
		return o.dataDir, nil
	}

	dir, err := datadir.Resolve(o.cfg.AppID)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeFailedPrecondition, "cannot determine storage directory")
	}
	return dir, nil
}

func (o *rootOptions) repository() (characterrepo.Repository, error) {
	switch o.cfg.Backend {
	case config.BackendRedis:
		client, err := redis.NewClient(o.cfg.RedisAddr, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis client")
		}
		return characterrepo.NewRedis(&characterrepo.RedisConfig{
			Client: client,
			Addr:   o.cfg.RedisAddr,
		})
	default:
		dir, err := o.storageDir()
		if err != nil {
			return nil, err
		}
		return characterrepo.NewFile(&characterrepo.FileConfig{Dir: dir})
	}
}

func (o *rootOptions) service() (character.Service, error) {
	repo, err := o.repository()
	if err != nil {
		return nil, err
	}

	return characterorchestrator.New(&characterorchestrator.Config{
		CharacterRepo: repo,
	})
}
