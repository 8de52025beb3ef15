package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mixdeck/trackdb/internal/config"
	"github.com/mixdeck/trackdb/internal/database"
	"github.com/mixdeck/trackdb/internal/logging"
	"github.com/mixdeck/trackdb/internal/usecase"
)

var rootOpts struct {
	dbPath     string
	configPath string
	logLevel   string
}

var rootCmd = &cobra.Command{
	Use:           "trackdb",
	Short:         "trackdb - a track library for DJ software",
	Long:          "trackdb keeps track metadata and cue points in SQLite and follows files across renames and moves.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.dbPath, "db", "", "Path of the library database (default: data dir)")
	rootCmd.PersistentFlags().StringVar(&rootOpts.configPath, "config", "", "Path of the YAML config file")
	rootCmd.PersistentFlags().StringVar(&rootOpts.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newReconcileCmd())
}

// session is one opened library plus the resources behind it.
type session struct {
	lib    *usecase.Library
	db     *database.Context
	logger *zap.Logger
}

func openSession() (*session, error) {
	cfg, err := config.Load(rootOpts.configPath)
	if err != nil {
		return nil, err
	}
	if rootOpts.dbPath != "" {
		cfg.Database.Path = rootOpts.dbPath
	}
	if rootOpts.logLevel != "" {
		cfg.Logging.Level = rootOpts.logLevel
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	dbCtx, err := database.CreateDatabase(cfg.Database.Path)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	logger.Debug("opened library", zap.String("db", cfg.Database.Path))

	return &session{
		lib:    usecase.NewLibrary(dbCtx, cfg.Library, nil, logger),
		db:     dbCtx,
		logger: logger,
	}, nil
}

func (s *session) Close() {
	_ = database.CloseDatabase(s.db)
	_ = s.logger.Sync()
}
