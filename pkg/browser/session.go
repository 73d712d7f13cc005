package browser

import (
	"errors"
	"fmt"
	"io"

	"github.com/playwright-community/playwright-go"

	"github.com/amtsnh/playwrightFramework/pkg/config"
	"github.com/amtsnh/playwrightFramework/pkg/logging"
)

var (
	// ErrNoSession is returned when an operation runs without an
	// established browsing session or page
	ErrNoSession = errors.New("no active browsing session")

	// ErrNoSuchPage is returned when a page index does not refer to an
	// open page
	ErrNoSuchPage = errors.New("page index out of range")

	// ErrNoPopup is returned when no popup window appears within the
	// configured bound
	ErrNoPopup = errors.New("timed out waiting for popup window")
)

// Target identifies the page an element operation acts against.
type Target struct {
	// Popup selects the captured popup window instead of a numbered tab
	Popup bool

	// Index selects an open tab by position when Popup is false
	Index int
}

// Session represents an active browsing session. It owns page routing
// (tabs and the popup slot), the readiness protocol, and the logging
// and masking shared by every element handle created against it.
//
// Sessions are used sequentially from a single goroutine; the popup
// slot is deliberately unsynchronized.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext

	// primary is the first page of the session; popup events are
	// captured from it
	primary playwright.Page

	// popup holds the first popup window captured since the last
	// ClearPopup, nil when none has appeared
	popup playwright.Page

	cfg    config.Config
	log    *logging.Logger
	masker *logging.Masker
}

func newSession(cfg config.Config) *Session {
	log, err := logging.NewLogger("browser")
	if err != nil {
		log.Warnf("file logging unavailable: %v", err)
	}

	masker, err := logging.NewMasker(cfg.RedactPatterns)
	if err != nil {
		log.Warnf("invalid redact_patterns, falling back to defaults: %v", err)
		masker, _ = logging.NewMasker(config.DefaultConfig().RedactPatterns)
	}

	return &Session{
		cfg:    cfg,
		log:    log,
		masker: masker,
	}
}

// Start launches a Chromium browser and returns a session bound to a
// fresh context and page. The session owns the launched resources and
// releases them in Close.
func Start(cfg config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Install and run Playwright quietly
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &cfg.Headless,
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  cfg.ViewportWidth,
			Height: cfg.ViewportHeight,
		},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.SetDefaultTimeout(cfg.ActionTimeout)

	s := newSession(cfg)
	s.pw = pw
	s.browser = browser
	s.context = context
	s.primary = page
	s.capturePopups()

	s.log.Infof("session started (headless=%v)", cfg.Headless)
	return s, nil
}

// Attach wraps an externally managed browser context and primary page.
// The session routes pages, waits and logs exactly as a launched
// session does, but Close never touches resources it did not launch.
func Attach(context playwright.BrowserContext, primary playwright.Page, cfg config.Config) *Session {
	s := newSession(cfg)
	s.context = context
	s.primary = primary
	if primary != nil {
		s.capturePopups()
	}
	return s
}

// capturePopups records the first popup opened from the primary page.
// Later popups are ignored until the slot is cleared.
func (s *Session) capturePopups() {
	s.primary.OnPopup(func(p playwright.Page) {
		if s.popup == nil {
			s.popup = p
			s.log.Infof("captured popup window")
		}
	})
}

// Page resolves the page an operation should act against.
//
// For Target{Popup: true} the captured popup is returned; when none has
// been captured yet the call blocks until a popup opens from the
// primary page, bounded by the configured popup timeout. The first
// popup wins and is reused by every later resolution until ClearPopup.
//
// For tab targets the index refers to the session's current page list;
// an out-of-range index is an error, never clamped.
func (s *Session) Page(t Target) (playwright.Page, error) {
	if s == nil {
		return nil, ErrNoSession
	}

	if t.Popup {
		return s.waitPopup()
	}

	pages := s.Pages()
	if len(pages) == 0 {
		return nil, ErrNoSession
	}
	if t.Index < 0 || t.Index >= len(pages) {
		return nil, fmt.Errorf("%w: index %d with %d open pages", ErrNoSuchPage, t.Index, len(pages))
	}
	return pages[t.Index], nil
}

func (s *Session) waitPopup() (playwright.Page, error) {
	if s.popup != nil {
		return s.popup, nil
	}
	if s.primary == nil {
		return nil, ErrNoSession
	}

	// The triggering action has already happened by the time an element
	// operation targets the popup, so the callback has nothing to do.
	page, err := s.primary.ExpectPopup(func() error { return nil }, playwright.PageExpectPopupOptions{
		Timeout: playwright.Float(s.cfg.PopupTimeout),
	})
	if err != nil {
		return nil, fmt.Errorf("%w after %.0fms", ErrNoPopup, s.cfg.PopupTimeout)
	}

	if s.popup == nil {
		s.popup = page
	}
	return s.popup, nil
}

// Pages returns the open pages of the session in creation order.
func (s *Session) Pages() []playwright.Page {
	if s == nil {
		return nil
	}
	if s.context != nil {
		return s.context.Pages()
	}
	if s.primary != nil {
		return []playwright.Page{s.primary}
	}
	return nil
}

// Primary returns the first page of the session.
func (s *Session) Primary() playwright.Page {
	if s == nil {
		return nil
	}
	return s.primary
}

// Popup returns the captured popup window, or nil when none has been
// captured.
func (s *Session) Popup() playwright.Page {
	if s == nil {
		return nil
	}
	return s.popup
}

// ClearPopup releases the captured popup so the next popup window can
// be captured.
func (s *Session) ClearPopup() {
	if s == nil {
		return
	}
	s.popup = nil
}

// Config returns the session configuration.
func (s *Session) Config() config.Config {
	if s == nil {
		return config.Config{}
	}
	return s.cfg
}

// Logger returns the session logger.
func (s *Session) Logger() *logging.Logger {
	if s == nil {
		return nil
	}
	return s.log
}

// Masker returns the redaction masker for logged values.
func (s *Session) Masker() *logging.Masker {
	if s == nil {
		return nil
	}
	return s.masker
}

// Close releases the resources the session launched itself. Attached
// sessions leave their externally owned context untouched.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}

	if s.pw == nil {
		// Attached session: nothing to tear down
		return s.log.Close()
	}

	if s.primary != nil {
		_ = s.primary.Close() // Ignore errors, continue cleanup
	}
	if s.context != nil {
		_ = s.context.Close()
	}
	if s.browser != nil {
		_ = s.browser.Close()
	}

	err := s.pw.Stop()
	s.log.Close()
	if err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}
