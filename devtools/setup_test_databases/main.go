// Command setup_test_databases prepares the PostgreSQL databases the db package tests acquire through testdb.
//
// It connects with the standard PG* environment variables, recreates a migrated template database, and clones it
// once per concurrent test process.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/jackc/envconf"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
	"github.com/taigaclone/pagesmoke/db"
)

var setupEnvconf = envconf.New()

var rootCmd = &cobra.Command{
	Use:   "setup_test_databases",
	Short: "Creates the run history test databases",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		ctx := context.Background()

		templateName := setupEnvconf.Value("TEST_PGDATABASE")
		if !strings.HasSuffix(templateName, "_test") {
			return fmt.Errorf("test database name %q must end with _test", templateName)
		}

		count := runtime.NumCPU()
		if s := setupEnvconf.Value("TEST_DATABASE_COUNT"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("parse TEST_DATABASE_COUNT: %w", err)
			}
			count = n
		}

		adminConn, err := pgx.Connect(ctx, "")
		if err != nil {
			return fmt.Errorf("connect to development database: %w", err)
		}
		defer adminConn.Close(ctx)

		err = recreateDatabase(ctx, adminConn, templateName, "")
		if err != nil {
			return err
		}

		clones := make([]string, count)
		for i := range clones {
			clones[i] = fmt.Sprintf("%s_%d", templateName, i)
		}

		err = prepareTemplate(ctx, templateName, clones)
		if err != nil {
			return err
		}

		for _, name := range clones {
			err = recreateDatabase(ctx, adminConn, name, templateName)
			if err != nil {
				return err
			}
		}

		fmt.Printf("Created %d test databases from %s\n", len(clones), templateName)
		return nil
	},
}

// recreateDatabase drops name and creates it again, optionally from template.
func recreateDatabase(ctx context.Context, conn *pgx.Conn, name, template string) error {
	_, err := conn.Exec(ctx, fmt.Sprintf("drop database if exists %s with (force)", pgx.Identifier{name}.Sanitize()))
	if err != nil {
		return fmt.Errorf("drop database %q: %w", name, err)
	}

	sql := fmt.Sprintf("create database %s", pgx.Identifier{name}.Sanitize())
	if template != "" {
		sql += fmt.Sprintf(" template = %s", pgx.Identifier{template}.Sanitize())
	}
	_, err = conn.Exec(ctx, sql)
	if err != nil {
		return fmt.Errorf("create database %q: %w", name, err)
	}

	return nil
}

// prepareTemplate migrates the template database and registers clones with testdb.
func prepareTemplate(ctx context.Context, templateName string, clones []string) error {
	config, err := pgx.ParseConfig("")
	if err != nil {
		return fmt.Errorf("parse connection config: %w", err)
	}
	config.Database = templateName

	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("connect to %q: %w", templateName, err)
	}
	defer conn.Close(ctx)

	err = db.Migrate(ctx, conn)
	if err != nil {
		return err
	}

	_, err = conn.Exec(ctx, `create schema testdb;
create table testdb.databases (name text primary key, acquirer_pid int);`)
	if err != nil {
		return fmt.Errorf("create testdb schema: %w", err)
	}

	for _, name := range clones {
		_, err = conn.Exec(ctx, `insert into testdb.databases (name) values ($1)`, name)
		if err != nil {
			return fmt.Errorf("register %q with testdb: %w", name, err)
		}
	}

	return nil
}

func init() {
	setupEnvconf.Register(envconf.Item{Name: "TEST_PGDATABASE", Default: "pagesmoke_test", Description: "Name of the template test database. Must end with _test."})
	setupEnvconf.Register(envconf.Item{Name: "TEST_DATABASE_COUNT", Default: "", Description: "Number of test databases to create. Defaults to the number of CPUs."})
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
