package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/envconf"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/taigaclone/pagesmoke/db"
	"github.com/taigaclone/pagesmoke/smoke"
)

var runEnvconf = envconf.New()

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the smoke suite against the application",
	Args:  cobra.NoArgs,

	Run: func(cmd *cobra.Command, args []string) {
		suitePath, _ := cmd.Flags().GetString("suite")
		logFormat, _ := cmd.Flags().GetString("log-format")

		logger := setupLogger(logFormat, cmd.ErrOrStderr())

		ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
		defer stop()
		ctx = logger.WithContext(ctx)

		driver := runEnvconf.Value("SMOKE_DRIVER")
		cfg, err := sessionConfigFromEnv()
		if err != nil {
			logger.Fatal().Err(err).Msg("Invalid configuration")
		}

		suite, err := loadSuite(suitePath, runEnvconf.Value("SMOKE_BASE_URL"))
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to load suite")
		}

		report, err := runSuite(ctx, driver, cfg, suite)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to start browser session")
		}

		err = report.Write(cmd.OutOrStdout())
		if err != nil {
			logger.Error().Err(err).Msg("Failed to write report")
		}

		if databaseURL := runEnvconf.Value("DATABASE_URL"); databaseURL != "" {
			recordReport(ctx, databaseURL, report, logger)
		}

		if report.Failed() > 0 {
			os.Exit(1)
		}
	},
}

func sessionConfigFromEnv() (smoke.SessionConfig, error) {
	cfg := smoke.DefaultSessionConfig()

	headless, err := strconv.ParseBool(runEnvconf.Value("SMOKE_HEADLESS"))
	if err != nil {
		return cfg, fmt.Errorf("parse SMOKE_HEADLESS: %w", err)
	}
	cfg.Headless = headless

	cfg.ReadyTimeout, err = time.ParseDuration(runEnvconf.Value("SMOKE_READY_TIMEOUT"))
	if err != nil {
		return cfg, fmt.Errorf("parse SMOKE_READY_TIMEOUT: %w", err)
	}

	cfg.PollInterval, err = time.ParseDuration(runEnvconf.Value("SMOKE_POLL_INTERVAL"))
	if err != nil {
		return cfg, fmt.Errorf("parse SMOKE_POLL_INTERVAL: %w", err)
	}

	cfg.ControlURL = runEnvconf.Value("SMOKE_BROWSER_URL")

	return cfg, nil
}

// loadSuite reads the suite file at path, or returns the default suite when path is empty.
func loadSuite(path, baseURL string) (*smoke.Suite, error) {
	if path == "" {
		base, err := smoke.ParseBaseURL(baseURL)
		if err != nil {
			return nil, err
		}
		return smoke.DefaultSuite(base), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	suite, err := smoke.LoadSuite(f, baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return suite, nil
}

// runSuite holds one browser session for the whole suite and closes it before returning.
func runSuite(ctx context.Context, driver string, cfg smoke.SessionConfig, suite *smoke.Suite) (*smoke.Report, error) {
	browser, err := smoke.Open(ctx, driver, cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		err := browser.Close()
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("Failed to close browser session")
		}
	}()

	if driver == "" {
		driver = smoke.DriverRod
	}
	runner := &smoke.Runner{Browser: browser, Driver: driver}

	return runner.Run(ctx, suite), nil
}

func recordReport(ctx context.Context, databaseURL string, report *smoke.Report, logger *zerolog.Logger) {
	dbpool := setupPGXConnPool(ctx, databaseURL, logger)
	defer dbpool.Close()

	runID, err := db.RecordRun(ctx, dbpool, report)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to record run")
		return
	}

	logger.Info().Str("run_id", runID.String()).Msg("Recorded run")
}

func init() {
	runEnvconf.Register(envconf.Item{Name: "SMOKE_BASE_URL", Default: smoke.DefaultBaseURL, Description: "Origin of the application under test"})
	runEnvconf.Register(envconf.Item{Name: "SMOKE_DRIVER", Default: smoke.DriverRod, Description: "Browser driver: rod or playwright"})
	runEnvconf.Register(envconf.Item{Name: "SMOKE_HEADLESS", Default: "true", Description: "Run the browser without a window"})
	runEnvconf.Register(envconf.Item{Name: "SMOKE_READY_TIMEOUT", Default: smoke.DefaultReadyTimeout.String(), Description: "How long to wait for each page body"})
	runEnvconf.Register(envconf.Item{Name: "SMOKE_POLL_INTERVAL", Default: smoke.DefaultPollInterval.String(), Description: "How often to check for the page body"})
	runEnvconf.Register(envconf.Item{Name: "SMOKE_BROWSER_URL", Default: "", Description: "DevTools URL of a running browser to use instead of launching one"})
	runEnvconf.Register(envconf.Item{Name: "DATABASE_URL", Default: "", Description: "PostgreSQL connection string. When set each run is recorded."})

	long := &strings.Builder{}
	long.WriteString("Run the smoke suite against the application.\n\nConfigure with the following environment variables:\n\n")
	for _, item := range runEnvconf.Items() {
		long.WriteString(fmt.Sprintf("  %s\n    Default: %s\n    %s\n\n", item.Name, item.Default, item.Description))
	}
	runCmd.Long = long.String()

	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("suite", "", "YAML suite file. Runs the built-in suite when empty.")
	runCmd.Flags().String("log-format", "console", "Log format (json or console)")
}
