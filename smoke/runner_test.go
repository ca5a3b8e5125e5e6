package smoke_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taigaclone/pagesmoke/smoke"
)

const testBaseURL = "http://app.test"

type fakeBrowser struct {
	pages   map[string]*smoke.Snapshot
	visited []string
	closed  int
}

func (b *fakeBrowser) Visit(ctx context.Context, url string) (*smoke.Snapshot, error) {
	b.visited = append(b.visited, url)
	snapshot, ok := b.pages[url]
	if !ok {
		return nil, &smoke.TimeoutError{Op: "wait for body at " + url, Timeout: smoke.DefaultReadyTimeout}
	}
	return snapshot, nil
}

func (b *fakeBrowser) Close() error {
	b.closed++
	return nil
}

// newFakeApp serves every default route as a page that stays where it was requested.
func newFakeApp() *fakeBrowser {
	b := &fakeBrowser{pages: make(map[string]*smoke.Snapshot)}
	for _, route := range smoke.DefaultRoutes {
		url := route.URL(testBaseURL)
		b.pages[url] = &smoke.Snapshot{
			URL:    url,
			Title:  "Taiga Clone",
			Text:   "Agile Project Management",
			Source: "<html><body>Agile Project Management. Project Settings</body></html>",
		}
	}
	return b
}

func findResult(t *testing.T, report *smoke.Report, name string) *smoke.CaseResult {
	t.Helper()
	for _, cr := range report.Results {
		if cr.Name == name {
			return cr
		}
	}
	t.Fatalf("no result for case %q", name)
	return nil
}

func TestDefaultSuitePassesAgainstHealthyApp(t *testing.T) {
	browser := newFakeApp()
	runner := &smoke.Runner{Browser: browser, Driver: "fake"}
	suite := smoke.DefaultSuite(testBaseURL)

	report := runner.Run(context.Background(), suite)

	require.Len(t, report.Results, len(suite.Cases))
	for _, cr := range report.Results {
		require.NoError(t, cr.Err, cr.Name)
	}
	require.Equal(t, len(suite.Cases), report.Passed())
	require.Equal(t, 0, report.Failed())
	require.Equal(t, "fake", report.Driver)
	require.Equal(t, testBaseURL, report.BaseURL)
	require.False(t, report.FinishedAt.Before(report.StartedAt))
}

func TestDefaultSuiteCoversEveryRoute(t *testing.T) {
	browser := newFakeApp()
	runner := &smoke.Runner{Browser: browser}
	runner.Run(context.Background(), smoke.DefaultSuite(testBaseURL))

	for _, route := range smoke.DefaultRoutes {
		require.Contains(t, browser.visited, route.URL(testBaseURL))
	}
}

func TestRedirectFailsExactNavigation(t *testing.T) {
	browser := newFakeApp()
	browser.pages[testBaseURL+"/dashboard"] = &smoke.Snapshot{
		URL:    testBaseURL + "/login",
		Title:  "Sign in",
		Source: "<body>Sign in</body>",
	}
	runner := &smoke.Runner{Browser: browser}

	report := runner.Run(context.Background(), smoke.DefaultSuite(testBaseURL))

	navigate := findResult(t, report, "user_can_navigate_multiple_pages")
	var assertionErr *smoke.AssertionError
	require.ErrorAs(t, navigate.Err, &assertionErr)
	require.Equal(t, testBaseURL+"/login", assertionErr.Actual)
	require.Equal(t, 2, navigate.StepsRun)

	require.Error(t, findResult(t, report, "dashboard_page_accessible").Err)

	// The redirect stays on the origin.
	require.NoError(t, findResult(t, report, "routes_are_accessible/dashboard").Err)
	require.NoError(t, findResult(t, report, "backlog_page_loads").Err)
}

func TestFailingCaseDoesNotStopLaterCases(t *testing.T) {
	browser := newFakeApp()
	delete(browser.pages, testBaseURL+"/login")
	runner := &smoke.Runner{Browser: browser}
	suite := smoke.DefaultSuite(testBaseURL)

	report := runner.Run(context.Background(), suite)

	require.Len(t, report.Results, len(suite.Cases))
	login := findResult(t, report, "routes_are_accessible/login")
	var timeoutErr *smoke.TimeoutError
	require.ErrorAs(t, login.Err, &timeoutErr)
	require.Equal(t, 0, login.StepsRun)
	require.Equal(t, 1, report.Failed())
}

func TestSequentialNavigationIsOrderIndependent(t *testing.T) {
	orders := [][]smoke.Route{
		{"/story-review", "/backlog", "/dashboard"},
		{"/dashboard", "/story-review", "/backlog"},
		{"/backlog", "/dashboard", "/story-review"},
	}

	for _, order := range orders {
		browser := newFakeApp()
		c := smoke.Case{Name: "sequence"}
		for _, route := range order {
			c.Steps = append(c.Steps, smoke.Step{Route: route, Check: smoke.URLHasSuffix(string(route))})
		}
		runner := &smoke.Runner{Browser: browser}

		report := runner.Run(context.Background(), &smoke.Suite{BaseURL: testBaseURL, Cases: []smoke.Case{c}})

		require.NoError(t, report.Results[0].Err, order)
		require.Equal(t, len(order), report.Results[0].StepsRun)
		require.Len(t, browser.visited, len(order))
	}
}

func TestCanceledRunDoesNotVisit(t *testing.T) {
	browser := newFakeApp()
	runner := &smoke.Runner{Browser: browser}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	suite := smoke.DefaultSuite(testBaseURL)
	report := runner.Run(ctx, suite)

	require.Empty(t, browser.visited)
	require.Len(t, report.Results, len(suite.Cases))
	for _, cr := range report.Results {
		require.True(t, errors.Is(cr.Err, context.Canceled))
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	b, err := smoke.Open(context.Background(), "selenium", smoke.DefaultSessionConfig())
	require.ErrorIs(t, err, smoke.ErrUnknownDriver)
	require.Nil(t, b)
}

func TestDefaultSessionConfig(t *testing.T) {
	cfg := smoke.DefaultSessionConfig()
	require.True(t, cfg.Headless)
	require.Equal(t, []string{"start-maximized", "disable-notifications", "disable-infobars"}, cfg.Flags)
	require.Equal(t, smoke.DefaultReadyTimeout, cfg.ReadyTimeout)
	require.Equal(t, smoke.DefaultPollInterval, cfg.PollInterval)

	cfg.Flags[0] = "kiosk"
	require.Equal(t, "start-maximized", smoke.DefaultStartupFlags[0])
}
