package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/testdb"
	"github.com/taigaclone/pagesmoke/db"
)

// InitTestDBManager performs the standard initialization of a *testdb.Manager. It requires a *testing.M to
// ensure it is only called by TestMain. It returns nil when DATABASE_URL is not set so database tests can skip. If
// something else fails it calls os.Exit(1).
func InitTestDBManager(*testing.M) *testdb.Manager {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil
	}

	testConnConfig, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		fmt.Println("failed to init testdb.Manager: parse DATABASE_URL:", err)
		os.Exit(1)
	}

	manager := &testdb.Manager{
		ResetDB: func(ctx context.Context, conn *pgx.Conn) error {
			err := db.Migrate(ctx, conn)
			if err != nil {
				return err
			}
			_, err = conn.Exec(ctx, `truncate smoke_runs cascade`)
			return err
		},
		MakeConnConfig: func(t testing.TB, connConfig *pgx.ConnConfig) *pgx.ConnConfig {
			newConnConfig := testConnConfig.Copy()
			newConnConfig.Database = connConfig.Database
			return newConnConfig
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	err = manager.Connect(ctx, "")
	if err != nil {
		fmt.Println("failed to init testdb.Manager:", err)
		os.Exit(1)
	}

	return manager
}

// AcquireConn skips t when manager is nil. Otherwise it acquires a reset test database and returns a connection to
// it with the db package's types registered.
func AcquireConn(t *testing.T, ctx context.Context, manager *testdb.Manager) *pgx.Conn {
	t.Helper()

	if manager == nil {
		t.Skip("DATABASE_URL is not set")
	}

	tdb := manager.AcquireDB(t, ctx)
	conn := tdb.Connect(t, ctx)
	db.RegisterTypes(conn)

	err := db.Migrate(ctx, conn)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return conn
}
