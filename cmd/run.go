package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/toeicz/internal/app"
	"github.com/abhisek/toeicz/internal/config"
	"github.com/abhisek/toeicz/internal/history"
	"github.com/abhisek/toeicz/internal/narration"
	"github.com/abhisek/toeicz/internal/questionbank"
	"github.com/abhisek/toeicz/internal/screen"
	"github.com/abhisek/toeicz/internal/session"
	"github.com/abhisek/toeicz/internal/store"
)

// env holds everything a command needs after configuration is resolved.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
	repo   *history.Repo
	bank   *questionbank.Bank
	engine *session.Engine

	logOut  io.Writer
	logFile *os.File
}

// logFileName is written next to the database while the TUI runs.
const logFileName = "toeicz.log"

// logSink opens the writer an env logs to, given the resolved DB path.
// A non-nil file is closed with the env.
type logSink func(dbPath string) (io.Writer, *os.File, error)

func toStderr(string) (io.Writer, *os.File, error) {
	return os.Stderr, nil, nil
}

// toLogFile appends to logFileName beside the database. The TUI owns the
// terminal, so nothing may reach stderr while it is on screen.
func toLogFile(dbPath string) (io.Writer, *os.File, error) {
	path := filepath.Join(filepath.Dir(dbPath), logFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f, nil
}

// openEnv loads config, opens the store and the question bank, and
// builds the session engine. Logs go to stderr.
func openEnv(cmd *cobra.Command) (*env, error) {
	return openEnvWith(cmd, toStderr)
}

func openEnvWith(cmd *cobra.Command, sink logSink) (*env, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	bank, err := questionbank.Load(cfg.Bank)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	out, logFile, err := sink(dbPath)
	if err != nil {
		return nil, err
	}
	logger := cfg.NewLogger(out)

	st, err := store.Open(dbPath)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", "path", dbPath, "bank", bank.Version)

	repo := history.NewRepo(st.KV(), history.WithLogger(logger))
	engine := session.NewEngine(bank, repo,
		session.WithSize(cfg.SessionSize),
		session.WithLocation(loc),
		session.WithLogger(logger),
	)

	return &env{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		repo:    repo,
		bank:    bank,
		engine:  engine,
		logOut:  out,
		logFile: logFile,
	}, nil
}

func (e *env) Close() error {
	err := e.store.Close()
	if e.logFile != nil {
		e.logFile.Close()
	}
	return err
}

// narrator builds a narrator over the configured or detected TTS program.
func (e *env) narrator() (*narration.Narrator, error) {
	rate, err := e.cfg.SpeechRate()
	if err != nil {
		return nil, err
	}
	backend := narration.Detect(e.cfg.Speech.Command, e.cfg.Speech.Voice, e.logger)
	return narration.New(backend, rate, e.logger), nil
}

// openAppEnv is openEnv for the TUI: logs go to a file beside the
// database for as long as the program runs.
func openAppEnv(cmd *cobra.Command) (*env, error) {
	return openEnvWith(cmd, toLogFile)
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, opts app.Options) error {
	e, err := openAppEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	n, err := e.narrator()
	if err != nil {
		return err
	}

	opts.Deps = screen.Deps{
		Engine:   e.engine,
		Narrator: n,
		Logger:   e.logger,
	}
	return app.Run(opts)
}
