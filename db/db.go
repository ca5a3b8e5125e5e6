// Package db stores smoke run history in PostgreSQL.
package db

import (
	"context"
	"fmt"

	pgxuuid "github.com/jackc/pgx-gofrs-uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgxutil"
)

// NewPool connects to databaseURL with UUID support registered on every connection.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		RegisterTypes(conn)
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return pool, nil
}

// RegisterTypes registers the types the package scans and encodes on conn.
func RegisterTypes(conn *pgx.Conn) {
	pgxuuid.Register(conn.TypeMap())
}

const schemaSQL = `create table if not exists smoke_runs (
	id uuid primary key,
	base_url text not null,
	driver text not null,
	started_at timestamptz not null,
	finished_at timestamptz not null,
	passed int not null,
	failed int not null
);

create table if not exists smoke_case_results (
	run_id uuid not null references smoke_runs on delete cascade,
	position int not null,
	name text not null,
	passed boolean not null,
	steps_run int not null,
	error text,
	duration_ms bigint not null,
	primary key (run_id, position)
);

create index if not exists smoke_runs_started_at_idx on smoke_runs (started_at desc);`

// Migrate creates the run history tables when they do not exist.
func Migrate(ctx context.Context, db pgxutil.DB) error {
	_, err := db.Exec(ctx, schemaSQL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	return nil
}
