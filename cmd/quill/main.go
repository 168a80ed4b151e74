package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xonecas/quill/internal/config"
	"github.com/xonecas/quill/internal/constants"
	"github.com/xonecas/quill/internal/editor"
	"github.com/xonecas/quill/internal/store"
	"github.com/xonecas/quill/internal/terminal"
	"github.com/xonecas/quill/internal/tui"
)

type options struct {
	configPath string
	backend    string
	logFile    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          constants.Name + " [file]",
		Short:        "A small terminal text editor",
		Version:      constants.Version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), opts, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/quill/config.toml)")
	f.StringVar(&opts.backend, "backend", "", "terminal front end: bubbletea or tcell")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	return cmd
}

func run(out io.Writer, opts options, args []string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	sessions := openSessions(cfg.Session)
	defer sessions.Close()

	ed := editor.New(editor.Options{
		QuitTimes: cfg.Editor.QuitTimesOrDefault(),
		Sessions:  sessions,
	})
	if len(args) == 1 {
		ed.Load(args[0])
	}

	log.Info().Str("backend", cfg.UI.Backend).Msg("starting")
	if cfg.UI.Backend == config.BackendTcell {
		err = runTcell(ed, cfg.UI)
	} else {
		err = tui.Run(ed, tui.Styles{StatusFg: cfg.UI.StatusFg, StatusBg: cfg.UI.StatusBg})
	}
	if err != nil {
		log.Error().Err(err).Msg("editor exited with error")
		return err
	}
	fmt.Fprintln(out, constants.Goodbye)
	return nil
}

// loadConfig reads the configuration with the command-line flags taking
// precedence over the file and the environment.
func loadConfig(opts options) (*config.Config, error) {
	return config.Load(opts.configPath, func(cfg *config.Config) {
		if opts.backend != "" {
			cfg.UI.Backend = opts.backend
		}
		if opts.logFile != "" {
			cfg.Log.Path = opts.logFile
		}
	})
}

// runTcell drives the editor on a tcell screen. The terminal is restored on
// every exit path.
func runTcell(ed *editor.Editor, ui config.UIConfig) error {
	scr, err := terminal.NewScreen()
	if err != nil {
		return err
	}
	scr.SetColors(ui.StatusFg, ui.StatusBg)
	return terminal.With(scr, func() error {
		return ed.Run(scr, scr)
	})
}

// setupLogging points the global logger at the configured file. Stdout
// belongs to the editor, so without a file logs are discarded.
func setupLogging(lc config.LogConfig) (func(), error) {
	if lc.Path == "" {
		log.Logger = zerolog.New(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(lc.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger().Level(lc.ZerologLevel())
	return func() { _ = f.Close() }, nil
}

// openSessions opens the caret store. Failure only costs the feature, so it
// is logged and a nil store is returned.
func openSessions(sc config.SessionConfig) *store.Store {
	if !sc.Enabled {
		return nil
	}
	path, err := sc.PathOrDefault()
	if err != nil {
		log.Warn().Err(err).Msg("no session directory")
		return nil
	}
	s, err := store.Open(path, sc.TTL())
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to open session store")
		return nil
	}
	return s
}
