package smoke

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
)

// Session is a Browser backed by Chromium over the DevTools protocol.
type Session struct {
	cfg      SessionConfig
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

// NewSession launches Chromium with cfg.Flags, or connects to cfg.ControlURL when set, and opens the page every
// Visit navigates.
func NewSession(ctx context.Context, cfg SessionConfig) (*Session, error) {
	cfg = cfg.withDefaults()
	s := &Session{cfg: cfg}

	controlURL := cfg.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(cfg.Headless)
		for _, f := range cfg.Flags {
			l = l.Set(flags.Flag(f))
		}

		var err error
		controlURL, err = l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch browser: %w", err)
		}
		s.launcher = l
	}

	s.browser = rod.New().ControlURL(controlURL)
	err := s.browser.Connect()
	if err != nil {
		s.cleanupLauncher()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	s.page, err = s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("driver", DriverRod).
		Bool("headless", cfg.Headless).
		Strs("flags", cfg.Flags).
		Bool("launched", s.launcher != nil).
		Msg("browser session started")

	return s, nil
}

func (s *Session) Visit(ctx context.Context, url string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	page := s.page.Context(ctx)
	navPage := page.Timeout(s.cfg.ReadyTimeout)
	err := navPage.Navigate(url)
	navPage.CancelTimeout()
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{Op: readyOp(url), Timeout: s.cfg.ReadyTimeout}
		}
		return nil, fmt.Errorf("navigate to %s: %w", url, err)
	}

	var body *rod.Element
	err = Poll(ctx, readyOp(url), s.cfg.ReadyTimeout, s.cfg.PollInterval, func(ctx context.Context) (bool, error) {
		has, el, err := page.Context(ctx).Has(readySelector)
		if err != nil {
			return false, err
		}
		body = el
		return has, nil
	})
	if err != nil {
		return nil, err
	}

	info, err := page.Info()
	if err != nil {
		return nil, fmt.Errorf("page info for %s: %w", url, err)
	}

	source, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("page source for %s: %w", url, err)
	}

	text, err := body.Context(ctx).Text()
	if err != nil {
		return nil, fmt.Errorf("body text for %s: %w", url, err)
	}

	zerolog.Ctx(ctx).Debug().Str("url", url).Str("current_url", info.URL).Msg("page ready")

	return &Snapshot{
		URL:    info.URL,
		Title:  info.Title,
		Text:   text,
		Source: source,
	}, nil
}

// Close closes the page and, when the session launched the browser, the browser itself. A session connected
// through ControlURL leaves the browser running.
func (s *Session) Close() error {
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
		if s.launcher != nil {
			if err := s.browser.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close browser: %w", err))
			}
			s.cleanupLauncher()
		}
		s.closeErr = errors.Join(errs...)
	})

	return s.closeErr
}

func (s *Session) cleanupLauncher() {
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
	}
}
