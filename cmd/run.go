package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/cyberlab/internal/app"
	"github.com/abhisek/cyberlab/internal/config"
	"github.com/abhisek/cyberlab/internal/logging"
	"github.com/abhisek/cyberlab/internal/navigator"
	"github.com/abhisek/cyberlab/internal/progress"
	"github.com/abhisek/cyberlab/internal/store"
)

// runApp loads content and progress, opens the history store, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file.
	log, closer, err := logging.OpenFile(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	tracker := progress.NewTracker(progress.NewFileBackend(cfg.ProgressFile), progress.WithLogger(log))
	engineOpts := []navigator.Option{navigator.WithLogger(log)}

	var history store.AttemptRepo
	if st := openHistory(cfg, log); st != nil {
		defer st.Close()
		history = st.AttemptRepo()
		engineOpts = append(engineOpts, navigator.WithHistory(history))
	}

	engine := navigator.New(cat, tracker, engineOpts...)
	found, err := engine.Start()
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"exercises":     cat.Len(),
		"progress_file": cfg.ProgressFile,
		"resumed":       found,
	}).Info("starting")

	return app.Run(app.Options{Engine: engine, History: history})
}

// openHistory opens the attempt history store. History is diagnostic, so
// failures are logged and the app runs without it.
func openHistory(cfg config.Config, log logrus.FieldLogger) *store.Store {
	if !cfg.HistoryEnabled {
		return nil
	}
	if err := config.EnsureDir(cfg.HistoryDB); err != nil {
		log.WithError(err).Warn("attempt history disabled")
		return nil
	}
	st, err := store.Open(cfg.HistoryDB)
	if err != nil {
		log.WithError(fmt.Errorf("open store: %w", err)).Warn("attempt history disabled")
		return nil
	}
	return st
}

// stderrLogger is the logger for sub-commands.
func stderrLogger(cmd *cobra.Command, cfg config.Config) (*logrus.Logger, error) {
	return logging.New(cfg.LogLevel, cmd.ErrOrStderr())
}
