package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/sandeepkv93/selesai/internal/celebrate"
	"github.com/sandeepkv93/selesai/internal/items"
	"github.com/sandeepkv93/selesai/internal/logging"
	"github.com/sandeepkv93/selesai/internal/storage"
	"github.com/sandeepkv93/selesai/internal/update"
	"github.com/spf13/cobra"
)

type session struct {
	cfg     update.RuntimeConfig
	logger  zerolog.Logger
	closers []io.Closer
	kv      storage.KV
	gateway *storage.Gateway
	store   *items.Store
}

type rootFlags struct {
	statePath   string
	backend     string
	logFile     string
	logLevel    string
	noAnimation bool
	verbose     bool
}

func NewRootCmd(version string) *cobra.Command {
	flags := &rootFlags{}
	s := &session{}

	root := &cobra.Command{
		Use:   "selesai",
		Short: "selesai - a small checklist for the terminal",
		Long: `selesai keeps a single list of notes you can check off.

Run without arguments for the interactive list, or use the subcommands to
script it. The list is stored locally and shared between both.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open(cmd, flags)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, s)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.statePath, "state", "", "state file (default ~/.selesai/state.json)")
	pf.StringVar(&flags.backend, "backend", "", "storage backend: json or sqlite")
	pf.StringVar(&flags.logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.BoolVar(&flags.noAnimation, "no-animation", false, "disable list and celebration animations")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log to stderr (subcommands only)")

	root.AddCommand(newAddCmd(s))
	root.AddCommand(newToggleCmd(s))
	root.AddCommand(newRemoveCmd(s))
	root.AddCommand(newListCmd(s))
	root.AddCommand(newResetCmd(s))
	return root
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func resolveConfig(cmd *cobra.Command, flags *rootFlags) (update.RuntimeConfig, error) {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	changed := cmd.Flags().Changed

	if changed("backend") {
		b := storage.Backend(flags.backend)
		if !b.IsValid() {
			return cfg, fmt.Errorf("unknown backend %q (want json or sqlite)", flags.backend)
		}
		if cfg.StatePath == update.DefaultStatePath(cfg.Backend) {
			cfg.StatePath = update.DefaultStatePath(b)
		}
		cfg.Backend = b
	}
	if changed("state") && flags.statePath != "" {
		cfg.StatePath = flags.statePath
	}
	if changed("log-file") {
		cfg.LogFile = flags.logFile
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if flags.noAnimation {
		cfg.Animations = false
	}
	if flags.verbose && !changed("log-level") {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func (s *session) open(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}
	s.cfg = cfg

	opts := logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel}
	// The TUI owns the terminal, so stderr logging is for subcommands.
	if flags.verbose && cmd != cmd.Root() {
		opts.Console = cmd.ErrOrStderr()
	}
	logger, closer, err := logging.New(opts)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	s.logger = logger
	s.closers = append(s.closers, closer)

	kv, err := storage.Open(cfg.Backend, cfg.StatePath)
	if err != nil {
		return fmt.Errorf("open %s state: %w", cfg.Backend, err)
	}
	s.kv = kv
	s.closers = append(s.closers, kv)

	s.gateway = storage.NewGateway(kv, storage.DefaultKey, logger)
	s.store = items.New(s.gateway, celebrate.NewTrigger(nil), logger)
	s.store.Hydrate(context.Background())

	logger.Debug().
		Str("command", cmd.Name()).
		Str("backend", string(cfg.Backend)).
		Str("state", cfg.StatePath).
		Msg("session opened")
	return nil
}

func (s *session) close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}
