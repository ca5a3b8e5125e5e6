package smoke

import (
	"fmt"
	"net/url"
	"strings"
)

// Snapshot is what a ready page looked like right after navigation.
type Snapshot struct {
	URL    string
	Title  string
	Text   string
	Source string
}

// Check is a single assertion over a Snapshot.
type Check struct {
	Name   string
	Verify func(s *Snapshot) error
}

// URLEquals requires the page URL to be exactly want. Any redirect fails it.
func URLEquals(want string) Check {
	return Check{
		Name: "url equals",
		Verify: func(s *Snapshot) error {
			if s.URL != want {
				return &AssertionError{Check: "url equals", Expected: fmt.Sprintf("%q", want), Actual: s.URL}
			}
			return nil
		},
	}
}

// SameOrigin requires the page URL to have base's scheme and host. Any path on that origin passes, so redirects within
// the application do too.
func SameOrigin(base string) Check {
	want, parseErr := url.Parse(base)
	origin := base
	if parseErr == nil {
		origin = want.Scheme + "://" + want.Host
	}

	return Check{
		Name: "same origin",
		Verify: func(s *Snapshot) error {
			if parseErr != nil {
				return fmt.Errorf("same origin: parse base %q: %w", base, parseErr)
			}
			got, err := url.Parse(s.URL)
			if err != nil || got.Scheme != want.Scheme || !strings.EqualFold(got.Host, want.Host) {
				return &AssertionError{Check: "same origin", Expected: fmt.Sprintf("origin %q", origin), Actual: s.URL}
			}
			return nil
		},
	}
}

func URLHasPrefix(prefix string) Check {
	return Check{
		Name: "url has prefix",
		Verify: func(s *Snapshot) error {
			if !strings.HasPrefix(s.URL, prefix) {
				return &AssertionError{Check: "url has prefix", Expected: fmt.Sprintf("prefix %q", prefix), Actual: s.URL}
			}
			return nil
		},
	}
}

func URLHasSuffix(suffix string) Check {
	return Check{
		Name: "url has suffix",
		Verify: func(s *Snapshot) error {
			if !strings.HasSuffix(s.URL, suffix) {
				return &AssertionError{Check: "url has suffix", Expected: fmt.Sprintf("suffix %q", suffix), Actual: s.URL}
			}
			return nil
		},
	}
}

// ContentContainsAny requires at least one of substrs to appear in the page source or, when the source is
// unavailable, in the body text.
func ContentContainsAny(substrs ...string) Check {
	return Check{
		Name: "content contains",
		Verify: func(s *Snapshot) error {
			content := s.Source
			if content == "" {
				content = s.Text
			}
			for _, sub := range substrs {
				if strings.Contains(content, sub) {
					return nil
				}
			}
			return &AssertionError{
				Check:    "content contains",
				Expected: fmt.Sprintf("any of %q", substrs),
				Actual:   abbreviate(content, 120),
			}
		},
	}
}

// TitlePresent requires the page to have a non-empty title.
func TitlePresent() Check {
	return Check{
		Name: "title present",
		Verify: func(s *Snapshot) error {
			if strings.TrimSpace(s.Title) == "" {
				return &AssertionError{Check: "title present", Expected: "non-empty title", Actual: s.Title}
			}
			return nil
		},
	}
}

// AnyOf passes when at least one of checks passes. It counts as one assertion; when all fail the error lists every
// failure.
func AnyOf(checks ...Check) Check {
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.Name
	}
	name := "any of (" + strings.Join(names, ", ") + ")"

	return Check{
		Name: name,
		Verify: func(s *Snapshot) error {
			var failures []string
			for _, c := range checks {
				err := c.Verify(s)
				if err == nil {
					return nil
				}
				failures = append(failures, err.Error())
			}
			return &AssertionError{Check: name, Expected: "at least one to pass", Actual: strings.Join(failures, "; ")}
		},
	}
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
