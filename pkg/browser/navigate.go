package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful
	// Valid values: "load", "domcontentloaded", "networkidle"
	WaitUntil string

	// Timeout in milliseconds (0 means the configured default)
	Timeout float64
}

// Navigate loads the given URL in the primary page.
func (s *Session) Navigate(url string, opts ...NavigateOptions) error {
	if s == nil || s.primary == nil {
		return ErrNoSession
	}

	var o NavigateOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.WaitUntil == "" {
		o.WaitUntil = s.cfg.NavigationWaitUntil
	}

	// Build Playwright navigation options
	playwrightOpts := playwright.PageGotoOptions{}

	if o.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(o.WaitUntil)
		playwrightOpts.WaitUntil = &waitUntil
	}

	if o.Timeout > 0 {
		playwrightOpts.Timeout = &o.Timeout
	}

	if _, err := s.primary.Goto(url, playwrightOpts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	s.log.Infof("navigated to %s", s.primary.URL())
	return nil
}

// Reload reloads the primary page and waits for it to become ready
// again.
func (s *Session) Reload() error {
	if s == nil || s.primary == nil {
		return ErrNoSession
	}

	if _, err := s.primary.Reload(); err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}

	return s.WaitReady(s.primary)
}

// WaitForURLOptions configures URL waits.
type WaitForURLOptions struct {
	// Timeout in milliseconds (0 means the configured popup/URL bound)
	Timeout float64
}

// WaitForURL blocks until the primary page URL matches the given
// pattern (an exact URL or an engine glob such as "**/orders/*").
func (s *Session) WaitForURL(pattern string, opts ...WaitForURLOptions) error {
	if s == nil || s.primary == nil {
		return ErrNoSession
	}

	timeout := s.cfg.PopupTimeout
	if len(opts) > 0 && opts[0].Timeout > 0 {
		timeout = opts[0].Timeout
	}

	err := s.primary.WaitForURL(pattern, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(timeout),
	})
	if err != nil {
		return fmt.Errorf("url wait for %q failed: %w", pattern, err)
	}

	return nil
}
