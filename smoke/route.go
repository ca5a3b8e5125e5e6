package smoke

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the origin the application is served from in development.
const DefaultBaseURL = "http://localhost:3000"

// Route is a path on the tested application's origin.
type Route string

// DefaultRoutes is every page the application exposes without interaction.
var DefaultRoutes = []Route{
	"/",
	"/login",
	"/register",
	"/dashboard",
	"/backlog",
	"/settings",
	"/story-review",
}

// URL returns the absolute URL of r on the origin base.
func (r Route) URL(base string) string {
	path := string(r)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(base, "/") + path
}

// ParseBaseURL validates s as an http or https origin and returns it without a trailing slash.
func ParseBaseURL(s string) (string, error) {
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse base URL %q: %w", s, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("base URL %q: scheme must be http or https", s)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base URL %q: missing host", s)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("base URL %q: must not have a query or fragment", s)
	}

	return strings.TrimRight(s, "/"), nil
}
