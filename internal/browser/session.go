package browser

import (
	"context"
	"sync"
	"sync/atomic"

	"leadscout/internal/config"
	"leadscout/internal/logging"
)

// Factory opens a Page. The returned func closes it.
type Factory func(cfg config.BrowserConfig) (Page, func(), error)

// Session owns the process-wide browser page. One logical browser operation
// is in flight at a time: Acquire holds the session lock until the returned
// release func runs, so concurrent callers serialize instead of racing on
// navigation.
type Session struct {
	mu      sync.Mutex
	cfg     config.BrowserConfig
	factory Factory
	page    Page
	closeFn func()
	// Kept outside mu so platform code can flip it mid-operation while
	// holding the acquired session lock.
	loggedIn atomic.Bool
}

// NewSession builds a Session around a page factory. The page itself is
// created lazily on first Acquire.
func NewSession(cfg config.BrowserConfig, factory Factory) *Session {
	return &Session{cfg: cfg, factory: factory}
}

// Acquire returns the shared page, starting the browser if needed. The caller
// must call release when its logical operation completes.
func (s *Session) Acquire(ctx context.Context) (Page, func(), error) {
	s.mu.Lock()
	if s.page == nil {
		page, closeFn, err := s.factory(s.cfg)
		if err != nil {
			s.mu.Unlock()
			return nil, nil, err
		}
		s.page = page
		s.closeFn = closeFn
		logging.Info("browser_started", map[string]any{"userDataDir": s.cfg.UserDataDir, "headless": s.cfg.Headless})
	}
	return s.page, s.mu.Unlock, nil
}

// SetLoggedIn records the login flag. Best effort: it goes stale if the user
// logs out in the browser directly; there is no detection mechanism for that.
func (s *Session) SetLoggedIn(v bool) { s.loggedIn.Store(v) }

// LoggedIn reports the best-effort login flag.
func (s *Session) LoggedIn() bool { return s.loggedIn.Load() }

// Close shuts the browser down. The profile directory survives, so cookies
// and the platform login do too.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closeFn != nil {
		s.closeFn()
	}
	s.page = nil
	s.closeFn = nil
	s.loggedIn.Store(false)
}
