package cmd

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/taigaclone/pagesmoke/db"
)

// setupLogger logs JSON lines or console output to out. Commands that print results to stdout pass os.Stderr.
func setupLogger(logFormat string, out io.Writer) *zerolog.Logger {
	var logWriter io.Writer
	if logFormat == "json" {
		logWriter = out
	} else {
		logWriter = zerolog.ConsoleWriter{Out: out}
	}

	logger := zerolog.New(logWriter).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger

	return &logger
}

// setupPGXConnPool connects to databaseURL and ensures the run history tables exist. It exits on failure.
func setupPGXConnPool(ctx context.Context, databaseURL string, logger *zerolog.Logger) *pgxpool.Pool {
	dbpool, err := db.NewPool(ctx, databaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	err = db.Migrate(ctx, dbpool)
	if err != nil {
		dbpool.Close()
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	return dbpool
}
