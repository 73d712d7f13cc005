// Package element provides fluent, chainable element handles for page
// object style browser automation on top of Playwright.
//
// A Handle pairs an immutable base selector with an optional narrowing
// cursor. Chained calls such as Find, Nth, Contains or Sibling refine
// the cursor; a terminal action such as Click, SetValue or Text acts
// on whatever the chain resolved and then drops the cursor, so the
// same handle can start a fresh chain from its base selector.
//
// # Narrowing and Reset
//
// Handles move between two states:
//
//  1. Base: no cursor, the handle stands for its base selector.
//  2. Narrowed: a cursor holds the refined locator plus a concrete
//     CSS path and XPath resolved from the live page.
//
// Every terminal action returns the handle to Base, whether it
// succeeded or failed. A narrowing step that cannot run (for example
// because the page is not ready) records its error on the handle; the
// next terminal action surfaces it and clears it.
//
// # Page Routing
//
// Options carry routing next to the description: PageIndex selects a
// tab among the session's open pages and Popup sends every action to
// the session's captured popup window instead. Routing is fixed at
// construction and shared by all chains on the handle.
//
// # Readiness
//
// Before each narrowing step and each terminal action the handle runs
// the session's readiness wait: a settle delay followed by the load,
// domcontentloaded and networkidle states in order. Slow pages are
// absorbed here rather than in per-call sleeps.
//
// # Tables
//
// Table extends Handle with row and column addressing, header lookup
// and multi-target row matching. Row matching compares normalized
// targets against per-cell texts, case-insensitive, with exact and
// containment modes; see MatchedRowIndices for the index space it
// reports.
//
// # Example Usage
//
//	sess, err := browser.Start(config.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer sess.Close()
//
//	save := element.New(sess, "#toolbar button", element.Options{Description: "save button"})
//	if err := save.HasText("Save").Click(); err != nil {
//	    return err
//	}
//
//	orders := element.NewTable(sess, "#orders", element.Options{Description: "orders table"})
//	idx, err := orders.MatchedRowIndex([]string{"Order' 1042", "shipped"})
//	if err != nil || idx < 0 {
//	    return err
//	}
//	if err := orders.ClickRowLink(idx, element.RowLinkOptions{Name: "Details"}); err != nil {
//	    return err
//	}
package element
