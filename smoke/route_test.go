package smoke_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taigaclone/pagesmoke/smoke"
	"pgregory.net/rapid"
)

func TestRouteURL(t *testing.T) {
	require.Equal(t, "http://localhost:3000/", smoke.Route("/").URL("http://localhost:3000"))
	require.Equal(t, "http://localhost:3000/", smoke.Route("/").URL("http://localhost:3000/"))
	require.Equal(t, "http://localhost:3000/story-review", smoke.Route("/story-review").URL("http://localhost:3000"))
	require.Equal(t, "http://localhost:3000/backlog", smoke.Route("backlog").URL("http://localhost:3000/"))
}

func TestRouteURLProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		host := rapid.StringMatching(`[a-z]{1,12}(\.[a-z]{2,5})?`).Draw(rt, "host")
		port := rapid.IntRange(1, 65535).Draw(rt, "port")
		base := "http://" + host + ":" + strconv.Itoa(port)
		slash := rapid.Bool().Draw(rt, "trailingSlash")
		configured := base
		if slash {
			configured += "/"
		}
		route := smoke.Route("/" + rapid.StringMatching(`([a-z\-]{1,20}(/[a-z\-]{1,10}){0,2})?`).Draw(rt, "path"))

		u := route.URL(configured)
		if !strings.HasPrefix(u, base+"/") {
			rt.Fatalf("%q does not start with %q", u, base+"/")
		}
		if !strings.HasSuffix(u, string(route)) {
			rt.Fatalf("%q does not end with %q", u, route)
		}
		if strings.Contains(strings.TrimPrefix(u, "http://"), "//") {
			rt.Fatalf("%q has an empty path segment", u)
		}
	})
}

func TestDefaultRoutesStayOnOrigin(t *testing.T) {
	for _, route := range smoke.DefaultRoutes {
		require.True(t, strings.HasPrefix(route.URL(smoke.DefaultBaseURL), smoke.DefaultBaseURL), route)
	}
}

func TestParseBaseURL(t *testing.T) {
	base, err := smoke.ParseBaseURL("http://localhost:3000/")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3000", base)

	base, err = smoke.ParseBaseURL("https://board.example.com")
	require.NoError(t, err)
	require.Equal(t, "https://board.example.com", base)

	for _, s := range []string{"localhost:3000", "ftp://localhost", "http://", "http://localhost:3000/?a=b", "::"} {
		_, err := smoke.ParseBaseURL(s)
		require.Error(t, err, s)
	}
}
