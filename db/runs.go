package db

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype/zeronull"
	"github.com/jackc/pgxutil"
	"github.com/taigaclone/pagesmoke/smoke"
)

// Beginner is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Run struct {
	ID         uuid.UUID
	BaseURL    string
	Driver     string
	StartedAt  time.Time
	FinishedAt time.Time
	Passed     int32
	Failed     int32
}

type CaseResult struct {
	Position   int32
	Name       string
	Passed     bool
	StepsRun   int32
	Error      zeronull.Text
	DurationMS int64
}

// RecordRun stores report and its case results in one transaction and returns the new run ID.
func RecordRun(ctx context.Context, db Beginner, report *smoke.Report) (uuid.UUID, error) {
	runID, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, err
	}

	err = pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		err := pgxutil.InsertRow(ctx, tx, "smoke_runs", map[string]any{
			"id":          runID,
			"base_url":    report.BaseURL,
			"driver":      report.Driver,
			"started_at":  report.StartedAt,
			"finished_at": report.FinishedAt,
			"passed":      report.Passed(),
			"failed":      report.Failed(),
		})
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for i, cr := range report.Results {
			var errText string
			if cr.Err != nil {
				errText = cr.Err.Error()
			}

			err := pgxutil.InsertRow(ctx, tx, "smoke_case_results", map[string]any{
				"run_id":      runID,
				"position":    i,
				"name":        cr.Name,
				"passed":      cr.Passed(),
				"steps_run":   cr.StepsRun,
				"error":       zeronull.Text(errText),
				"duration_ms": cr.Duration.Milliseconds(),
			})
			if err != nil {
				return fmt.Errorf("insert result for case %q: %w", cr.Name, err)
			}
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return runID, nil
}

// ListRuns returns up to limit runs, newest first.
func ListRuns(ctx context.Context, db pgxutil.DB, limit int) ([]*Run, error) {
	return pgxutil.Select(ctx, db,
		`select id, base_url, driver, started_at, finished_at, passed, failed
from smoke_runs
order by started_at desc
limit $1`,
		[]any{limit},
		pgx.RowToAddrOfStructByPos[Run],
	)
}

// ListCaseResults returns the case results of a run in the order the cases ran.
func ListCaseResults(ctx context.Context, db pgxutil.DB, runID uuid.UUID) ([]*CaseResult, error) {
	return pgxutil.Select(ctx, db,
		`select position, name, passed, steps_run, error, duration_ms
from smoke_case_results
where run_id = $1
order by position`,
		[]any{runID},
		pgx.RowToAddrOfStructByPos[CaseResult],
	)
}
