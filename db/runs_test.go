package db_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/testdb"
	"github.com/stretchr/testify/require"
	"github.com/taigaclone/pagesmoke/db"
	"github.com/taigaclone/pagesmoke/smoke"
	"github.com/taigaclone/pagesmoke/test/testutil"
)

var TestDBManager *testdb.Manager

func TestMain(m *testing.M) {
	TestDBManager = testutil.InitTestDBManager(m)
	os.Exit(m.Run())
}

func newReport(startedAt time.Time, results ...*smoke.CaseResult) *smoke.Report {
	return &smoke.Report{
		BaseURL:    smoke.DefaultBaseURL,
		Driver:     smoke.DriverRod,
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(3 * time.Second),
		Results:    results,
	}
}

func TestRecordRun(t *testing.T) {
	ctx := context.Background()
	conn := testutil.AcquireConn(t, ctx, TestDBManager)

	startedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	report := newReport(startedAt,
		&smoke.CaseResult{Name: "landing_page_loads", StepsRun: 1, Duration: 250 * time.Millisecond},
		&smoke.CaseResult{Name: "dashboard_page_accessible", StepsRun: 1, Err: errors.New("url has suffix: mismatch"), Duration: 90 * time.Millisecond},
	)

	runID, err := db.RecordRun(ctx, conn, report)
	require.NoError(t, err)

	runs, err := db.ListRuns(ctx, conn, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, runID, runs[0].ID)
	require.Equal(t, smoke.DefaultBaseURL, runs[0].BaseURL)
	require.Equal(t, smoke.DriverRod, runs[0].Driver)
	require.True(t, startedAt.Equal(runs[0].StartedAt))
	require.EqualValues(t, 1, runs[0].Passed)
	require.EqualValues(t, 1, runs[0].Failed)

	results, err := db.ListCaseResults(ctx, conn, runID)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "landing_page_loads", results[0].Name)
	require.True(t, results[0].Passed)
	require.Empty(t, results[0].Error)
	require.EqualValues(t, 250, results[0].DurationMS)
	require.Equal(t, "dashboard_page_accessible", results[1].Name)
	require.False(t, results[1].Passed)
	require.EqualValues(t, "url has suffix: mismatch", results[1].Error)
}

func TestListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	conn := testutil.AcquireConn(t, ctx, TestDBManager)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		id, err := db.RecordRun(ctx, conn, newReport(base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
		ids = append(ids, id.String())
	}

	runs, err := db.ListRuns(ctx, conn, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, ids[2], runs[0].ID.String())
	require.Equal(t, ids[1], runs[1].ID.String())
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	conn := testutil.AcquireConn(t, ctx, TestDBManager)

	require.NoError(t, db.Migrate(ctx, conn))
	require.NoError(t, db.Migrate(ctx, conn))
}
