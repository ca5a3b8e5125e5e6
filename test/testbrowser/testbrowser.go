// Package testbrowser shares one smoke browser session between the tests of a package.
//
// The manager is created in TestMain before any test runs and closed after m.Run returns. Tests borrow the session
// with Acquire, which serializes borrowers so the session is only ever driven by one test at a time.
package testbrowser

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taigaclone/pagesmoke/smoke"
)

type ManagerConfig struct {
	// Driver is passed to smoke.Open. Empty selects rod.
	Driver string

	// Session defaults to smoke.DefaultSessionConfig when zero.
	Session *smoke.SessionConfig
}

type Manager struct {
	browser smoke.Browser
	mu      sync.Mutex

	holderMu sync.Mutex
	holder   testing.TB
}

func NewManager(cfg ManagerConfig) (*Manager, error) {
	sessionConfig := smoke.DefaultSessionConfig()
	if cfg.Session != nil {
		sessionConfig = *cfg.Session
	}

	browser, err := smoke.Open(context.Background(), cfg.Driver, sessionConfig)
	if err != nil {
		return nil, err
	}

	return &Manager{browser: browser}, nil
}

// Acquire blocks until no other test holds the session and returns a Page bound to t. The session is released when
// t completes. A test that already holds the session fails instead of waiting on itself.
func (m *Manager) Acquire(t testing.TB) *Page {
	t.Helper()

	m.holderMu.Lock()
	reentered := m.holder == t
	m.holderMu.Unlock()
	if reentered {
		t.Fatalf("testbrowser: %s already holds the browser session", t.Name())
		return nil
	}

	m.mu.Lock()
	m.setHolder(t)
	t.Cleanup(func() {
		m.setHolder(nil)
		m.mu.Unlock()
	})

	return &Page{t: t, browser: m.browser}
}

func (m *Manager) setHolder(t testing.TB) {
	m.holderMu.Lock()
	m.holder = t
	m.holderMu.Unlock()
}

// Browser returns the shared session for callers that drive it directly, such as a smoke.Runner. Callers must hold
// it through Acquire.
func (m *Manager) Browser() smoke.Browser {
	return m.browser
}

// Close releases the session. It is safe to call more than once.
func (m *Manager) Close() error {
	return m.browser.Close()
}

// Page drives the shared session on behalf of one test. Failures stop the test.
type Page struct {
	t       testing.TB
	browser smoke.Browser

	// Current is the snapshot of the last visit.
	Current *smoke.Snapshot
}

// MustVisit loads url and waits for it to be ready.
func (p *Page) MustVisit(url string) *Page {
	p.t.Helper()

	snapshot, err := p.browser.Visit(context.Background(), url)
	require.NoError(p.t, err, "visit %s", url)
	p.Current = snapshot

	return p
}

// Expect applies check to the current snapshot.
func (p *Page) Expect(check smoke.Check) *Page {
	p.t.Helper()

	require.NotNil(p.t, p.Current, "Expect called before MustVisit")
	require.NoError(p.t, check.Verify(p.Current), check.Name)

	return p
}

// HasContent requires text in the current page source.
func (p *Page) HasContent(text string) *Page {
	p.t.Helper()

	return p.Expect(smoke.ContentContainsAny(text))
}
