package smoke

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"
)

// PlaywrightSession is a Browser backed by Playwright's Chromium.
type PlaywrightSession struct {
	cfg      SessionConfig
	pw       *playwright.Playwright
	browser  playwright.Browser
	page     playwright.Page
	launched bool

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

// NewPlaywrightSession starts the Playwright driver and launches Chromium with cfg.Flags, or attaches to
// cfg.ControlURL over CDP when set.
func NewPlaywrightSession(ctx context.Context, cfg SessionConfig) (*PlaywrightSession, error) {
	cfg = cfg.withDefaults()

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	s := &PlaywrightSession{cfg: cfg, pw: pw}

	if cfg.ControlURL != "" {
		s.browser, err = pw.Chromium.ConnectOverCDP(cfg.ControlURL)
	} else {
		args := make([]string, len(cfg.Flags))
		for i, f := range cfg.Flags {
			args[i] = "--" + f
		}
		s.browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(cfg.Headless),
			Args:     args,
		})
		s.launched = err == nil
	}
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	s.page, err = s.browser.NewPage()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("driver", DriverPlaywright).
		Bool("headless", cfg.Headless).
		Strs("flags", cfg.Flags).
		Bool("launched", s.launched).
		Msg("browser session started")

	return s, nil
}

func (s *PlaywrightSession) Visit(ctx context.Context, url string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateCommit,
		Timeout:   playwright.Float(float64(s.cfg.ReadyTimeout.Milliseconds())),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return nil, &TimeoutError{Op: readyOp(url), Timeout: s.cfg.ReadyTimeout}
		}
		return nil, fmt.Errorf("navigate to %s: %w", url, err)
	}

	body := s.page.Locator(readySelector)
	err = Poll(ctx, readyOp(url), s.cfg.ReadyTimeout, s.cfg.PollInterval, func(ctx context.Context) (bool, error) {
		n, err := body.Count()
		if err != nil {
			return false, err
		}
		return n > 0, nil
	})
	if err != nil {
		return nil, err
	}

	title, err := s.page.Title()
	if err != nil {
		return nil, fmt.Errorf("page title for %s: %w", url, err)
	}

	source, err := s.page.Content()
	if err != nil {
		return nil, fmt.Errorf("page source for %s: %w", url, err)
	}

	text, err := body.First().InnerText()
	if err != nil {
		return nil, fmt.Errorf("body text for %s: %w", url, err)
	}

	zerolog.Ctx(ctx).Debug().Str("url", url).Str("current_url", s.page.URL()).Msg("page ready")

	return &Snapshot{
		URL:    s.page.URL(),
		Title:  title,
		Text:   text,
		Source: source,
	}, nil
}

// Close closes the page, the browser when this session launched it, and the Playwright driver.
func (s *PlaywrightSession) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		var errs []error
		if s.page != nil {
			if err := s.page.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close page: %w", err))
			}
		}
		if s.launched {
			if err := s.browser.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close browser: %w", err))
			}
		}
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
		s.closeErr = errors.Join(errs...)
	})

	return s.closeErr
}
