package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/envconf"
	"github.com/spf13/cobra"
	"github.com/taigaclone/pagesmoke/db"
)

var historyEnvconf = envconf.New()

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded smoke runs",
	Args:  cobra.MaximumNArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		logger := setupLogger("console", cmd.ErrOrStderr())
		ctx := context.Background()

		databaseURL := historyEnvconf.Value("DATABASE_URL")
		if databaseURL == "" {
			logger.Fatal().Msg("DATABASE_URL is required")
		}
		dbpool := setupPGXConnPool(ctx, databaseURL, logger)
		defer dbpool.Close()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		defer w.Flush()

		if len(args) == 1 {
			runID, err := uuid.FromString(args[0])
			if err != nil {
				logger.Fatal().Err(err).Msg("Invalid run ID")
			}

			results, err := db.ListCaseResults(ctx, dbpool, runID)
			if err != nil {
				logger.Fatal().Err(err).Msg("Failed to list case results")
			}
			writeCaseResults(w, results)
			return
		}

		runs, err := db.ListRuns(ctx, dbpool, limit)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to list runs")
		}
		writeRuns(w, runs)
	},
}

func writeRuns(w io.Writer, runs []*db.Run) {
	fmt.Fprintln(w, "ID\tSTARTED\tDURATION\tDRIVER\tBASE URL\tRESULT")
	for _, r := range runs {
		result := color.GreenString("%d passed", r.Passed)
		if r.Failed > 0 {
			result = color.RedString("%d passed, %d failed", r.Passed, r.Failed)
		}
		fmt.Fprintf(w, "%s\t%s\t%v\t%s\t%s\t%s\n",
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond),
			r.Driver,
			r.BaseURL,
			result,
		)
	}
}

func writeCaseResults(w io.Writer, results []*db.CaseResult) {
	fmt.Fprintln(w, "CASE\tSTEPS\tDURATION\tRESULT")
	for _, cr := range results {
		result := color.GreenString("✓")
		if !cr.Passed {
			result = color.RedString("✗ %s", strings.ReplaceAll(string(cr.Error), "\n", " "))
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%s\n", cr.Name, cr.StepsRun, time.Duration(cr.DurationMS)*time.Millisecond, result)
	}
}

func init() {
	historyEnvconf.Register(envconf.Item{Name: "DATABASE_URL", Default: "", Description: "The PostgreSQL connection string"})

	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to list")
}
