package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5/pgtype/zeronull"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/taigaclone/pagesmoke/db"
	"github.com/taigaclone/pagesmoke/smoke"
)

func TestLoadSuiteDefault(t *testing.T) {
	suite, err := loadSuite("", "http://localhost:3000/")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3000", suite.BaseURL)
	require.Equal(t, len(smoke.DefaultSuite(suite.BaseURL).Cases), len(suite.Cases))

	_, err = loadSuite("", "localhost")
	require.Error(t, err)
}

func TestLoadSuiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	err := os.WriteFile(path, []byte(`cases:
  - name: dashboard_page_accessible
    steps:
      - route: /dashboard
        expect: {url_suffix: /dashboard}
`), 0o644)
	require.NoError(t, err)

	suite, err := loadSuite(path, "http://localhost:3000")
	require.NoError(t, err)
	require.Len(t, suite.Cases, 1)

	_, err = loadSuite(filepath.Join(t.TempDir(), "missing.yaml"), "http://localhost:3000")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteCaseResults(t *testing.T) {
	color.NoColor = true

	buf := &bytes.Buffer{}
	writeCaseResults(buf, []*db.CaseResult{
		{Name: "landing_page_loads", Passed: true, StepsRun: 1, DurationMS: 40},
		{Name: "backlog_page_loads", StepsRun: 0, Error: zeronull.Text("wait for body at http://localhost:3000/backlog: timed out after 10s"), DurationMS: 10000},
	})

	require.Equal(t, `CASE	STEPS	DURATION	RESULT
landing_page_loads	1	40ms	✓
backlog_page_loads	0	10s	✗ wait for body at http://localhost:3000/backlog: timed out after 10s
`, buf.String())
}

func TestSetupLoggerWritesToGivenOutput(t *testing.T) {
	prev := zerolog.DefaultContextLogger
	t.Cleanup(func() { zerolog.DefaultContextLogger = prev })

	logs := &bytes.Buffer{}
	logger := setupLogger("json", logs)
	logger.Info().Str("case", "landing_page_loads").Msg("case passed")

	require.Contains(t, logs.String(), `"level":"info"`)
	require.Contains(t, logs.String(), `"case":"landing_page_loads"`)
	require.Same(t, logger, zerolog.DefaultContextLogger)

	logs.Reset()
	setupLogger("console", logs).Warn().Msg("Failed to close browser session")
	require.Contains(t, logs.String(), "Failed to close browser session")
	require.NotContains(t, logs.String(), `"level"`)
}
