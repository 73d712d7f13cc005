// Package browser manages browsing sessions for the element layer.
//
// A Session bundles everything element handles need to act against a
// live browser: the page list of a context, the captured popup window,
// the readiness protocol, navigation helpers, and the shared logger and
// value masker.
//
// # Session Lifecycle
//
// Sessions come in two flavors:
//
//  1. Launched: Start installs and runs Playwright, launches Chromium,
//     and creates a context and page. Close tears all of it down.
//  2. Attached: Attach wraps a context and page owned by the caller.
//     Close leaves external resources untouched.
//
// # Page Routing
//
// Element operations name their page through a Target: either a tab by
// index, or the popup window. The first popup opened from the primary
// page is captured and reused by every later popup-targeted operation
// until ClearPopup releases the slot. Resolving the popup target before
// any popup exists blocks until one appears, bounded by the configured
// popup timeout.
//
// # Readiness
//
// WaitReady is the readiness gate run before every page interaction: a
// fixed settle pause, then waits for the load, domcontentloaded and
// networkidle states in that order.
//
// # Example Usage
//
//	cfg := config.DefaultConfig()
//	session, err := browser.Start(cfg)
//	if err != nil {
//		return err
//	}
//	defer session.Close()
//
//	if err := session.Navigate("https://example.com"); err != nil {
//		return err
//	}
//
//	text, err := session.VisibleText()
package browser
