package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// loadStates is the fixed order of load-state waits performed after the
// settle pause.
var loadStates = []*playwright.LoadState{
	playwright.LoadStateLoad,
	playwright.LoadStateDomcontentloaded,
	playwright.LoadStateNetworkidle,
}

// WaitReady blocks until the page is safe to interact with: a fixed
// settle pause followed by waits for the load, domcontentloaded and
// networkidle states, in that order. Every element operation that
// touches the page runs this first.
func (s *Session) WaitReady(page playwright.Page) error {
	if s == nil || page == nil {
		return ErrNoSession
	}

	if s.cfg.ReadinessDelay > 0 {
		page.WaitForTimeout(s.cfg.ReadinessDelay)
	}

	for _, state := range loadStates {
		err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
			State:   state,
			Timeout: playwright.Float(s.cfg.ActionTimeout),
		})
		if err != nil {
			return fmt.Errorf("page not ready (%s): %w", *state, err)
		}
	}

	return nil
}
