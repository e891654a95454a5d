package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"viaggio/internal/config"
	"viaggio/internal/db"
	"viaggio/internal/logging"
	"viaggio/internal/progress"

	"github.com/spf13/viper"
)

// session bundles what every command needs: configuration, the log, the
// database and the loaded completion state.
type session struct {
	cfg      *config.Config
	logger   *logging.Logger
	database *sql.DB
	tracker  *progress.Tracker
}

// openSession loads the config (a positional source argument overrides
// itinerary.source) and opens the log, database and tracker.
func openSession(ctx context.Context, args []string) (*session, error) {
	if len(args) > 0 {
		viper.Set("itinerary.source", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	database, err := db.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	tracker := progress.NewTracker(db.NewKV(database), cfg.Progress.Key, logger)
	if err := tracker.Load(ctx); err != nil {
		database.Close()
		logger.Close()
		return nil, err
	}

	return &session{cfg: cfg, logger: logger, database: database, tracker: tracker}, nil
}

// Close releases the database and the log.
func (s *session) Close() error {
	dbErr := s.database.Close()
	logErr := s.logger.Close()
	if dbErr != nil {
		return dbErr
	}
	return logErr
}
