package httpz_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/taigaclone/pagesmoke/httpz"
	"github.com/taigaclone/pagesmoke/smoke"
)

func startServer(t *testing.T) *httptest.Server {
	logger := zerolog.Nop()
	handler, err := httpz.NewHandler(&logger)
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestEveryRouteServesAPage(t *testing.T) {
	server := startServer(t)

	for _, route := range smoke.DefaultRoutes {
		t.Run(string(route), func(t *testing.T) {
			status, body := get(t, route.URL(server.URL))
			require.Equal(t, http.StatusOK, status)
			require.Contains(t, body, "<body>")
			require.Regexp(t, `<title>[^<]+</title>`, body)
			require.Contains(t, body, `href="`+string(route)+`"`)
		})
	}
}

func TestPageText(t *testing.T) {
	server := startServer(t)

	for _, tt := range []struct {
		route smoke.Route
		text  []string
	}{
		{"/", []string{"Agile", "Project", "Welcome to Taiga Clone"}},
		{"/login", []string{"Sign in"}},
		{"/register", []string{"Create Your Organization"}},
		{"/dashboard", []string{"<h1>Dashboard</h1>", "Recent Activity"}},
		{"/backlog", []string{"Product Backlog"}},
		{"/settings", []string{"Project Settings", "Notification Preferences"}},
		{"/story-review", []string{"Story Review", "Generated Stories"}},
	} {
		_, body := get(t, tt.route.URL(server.URL))
		for _, text := range tt.text {
			require.Contains(t, body, text, tt.route)
		}
	}
}

func TestActiveNavItem(t *testing.T) {
	server := startServer(t)

	_, body := get(t, server.URL+"/backlog")
	require.Contains(t, body, `<a href="/backlog" aria-current="page">Backlog</a>`)
	require.Equal(t, 1, strings.Count(body, "aria-current"))
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	server := startServer(t)

	status, body := get(t, server.URL+"/releases")
	require.Equal(t, http.StatusNotFound, status)
	require.Contains(t, body, "Page not found")
}

func TestPagesPassDefaultSuiteContentChecks(t *testing.T) {
	server := startServer(t)

	_, body := get(t, server.URL+"/")
	require.NoError(t, smoke.ContentContainsAny("Agile", "Project").Verify(&smoke.Snapshot{Source: body}))

	_, body = get(t, server.URL+"/settings")
	require.NoError(t, smoke.ContentContainsAny("Settings").Verify(&smoke.Snapshot{Source: body}))
}
