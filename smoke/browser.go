// Package smoke drives a browser through an application's pages and asserts that each one renders.
//
// A run owns one Browser for its whole lifetime. Every navigation waits, bounded by SessionConfig.ReadyTimeout, for
// the document body to exist before a single Check is applied to the resulting Snapshot.
package smoke

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultReadyTimeout = 10 * time.Second
	DefaultPollInterval = 500 * time.Millisecond
)

// Driver names accepted by Open.
const (
	DriverRod        = "rod"
	DriverPlaywright = "playwright"
)

// DefaultStartupFlags are the Chromium switches every session is started with.
var DefaultStartupFlags = []string{
	"start-maximized",
	"disable-notifications",
	"disable-infobars",
}

// readySelector is the element whose presence marks a navigation as ready to query.
const readySelector = "body"

// Browser is a single long-lived browser automation session.
type Browser interface {
	// Visit loads url, waits for the page to be ready, and returns what it observed.
	Visit(ctx context.Context, url string) (*Snapshot, error)

	// Close releases the session. Calls after the first return the first result.
	Close() error
}

// SessionConfig configures how a Browser is started.
type SessionConfig struct {
	Headless bool

	// Flags are Chromium command line switches without the leading dashes.
	Flags []string

	ReadyTimeout time.Duration
	PollInterval time.Duration

	// ControlURL connects to an already running browser's DevTools endpoint instead of launching one.
	ControlURL string
}

func DefaultSessionConfig() SessionConfig {
	flags := make([]string, len(DefaultStartupFlags))
	copy(flags, DefaultStartupFlags)

	return SessionConfig{
		Headless:     true,
		Flags:        flags,
		ReadyTimeout: DefaultReadyTimeout,
		PollInterval: DefaultPollInterval,
	}
}

func (cfg SessionConfig) withDefaults() SessionConfig {
	if cfg.ReadyTimeout <= 0 {
		cfg.ReadyTimeout = DefaultReadyTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	return cfg
}

// Open starts a Browser using the named driver.
func Open(ctx context.Context, driver string, cfg SessionConfig) (Browser, error) {
	switch driver {
	case DriverRod, "":
		s, err := NewSession(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPlaywright:
		s, err := NewPlaywrightSession(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

func readyOp(url string) string {
	return fmt.Sprintf("wait for %s at %s", readySelector, url)
}
