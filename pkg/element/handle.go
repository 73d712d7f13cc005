package element

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/amtsnh/playwrightFramework/pkg/browser"
)

// cursor is the narrowed state of a handle. A nil cursor means the
// handle sits at its base selector. Every narrowing step allocates a
// fresh cursor, so handles never share narrowing state.
type cursor struct {
	loc playwright.Locator

	// selector is the concrete CSS path of the resolved element, or a
	// descriptive chain while the narrowing has not resolved one
	selector string

	// xpath is set when a narrowing resolves a concrete element
	xpath string
}

// Handle is a stateful reference to an element on a page. It carries a
// base selector that survives every action plus an optional narrowing
// built by chained refinement calls (Find, Nth, HasText, ...). Terminal
// actions consume the narrowing and return the handle to its base
// state, so a page object field can be reused action after action.
//
// Handles are not safe for concurrent use; test flows drive them
// sequentially.
type Handle struct {
	sess *browser.Session

	base   string
	desc   string
	target browser.Target

	cur *cursor

	// err records the first failure of a narrowing step; the next
	// terminal action surfaces it
	err error
}

// New creates a handle bound to the given session and base selector.
func New(sess *browser.Session, selector string, opts ...Options) *Handle {
	h := &Handle{
		sess: sess,
		base: selector,
		desc: "element",
	}
	if len(opts) > 0 {
		o := opts[0]
		if o.Description != "" {
			h.desc = o.Description
		}
		h.target = browser.Target{Popup: o.Popup, Index: o.PageIndex}
	}
	return h
}

// Selector returns the base selector.
func (h *Handle) Selector() string { return h.base }

// Effective returns the selector of the current narrowing, or the base
// selector when no narrowing is active.
func (h *Handle) Effective() string {
	if h.cur != nil {
		return h.cur.selector
	}
	return h.base
}

// XPath returns the XPath computed when the current narrowing resolved
// a concrete element, or "" at the base state.
func (h *Handle) XPath() string {
	if h.cur != nil {
		return h.cur.xpath
	}
	return ""
}

// Description returns the log label of the handle.
func (h *Handle) Description() string { return h.desc }

// Err returns the error recorded by a failed narrowing step, if any.
// The same error is surfaced by the next terminal action.
func (h *Handle) Err() error { return h.err }

// SetLocator replaces the base selector and drops any narrowing. The
// optional second argument renames the handle.
func (h *Handle) SetLocator(selector string, description ...string) *Handle {
	h.base = selector
	if len(description) > 0 && description[0] != "" {
		h.desc = description[0]
	}
	h.reset()
	return h
}

// Current returns the handle unchanged. It exists so chains can state
// explicitly that they act on the current narrowing.
func (h *Handle) Current() *Handle { return h }

// reset returns the handle to its base state.
func (h *Handle) reset() {
	h.cur = nil
	h.err = nil
}

// page resolves the page this handle is routed to.
func (h *Handle) page() (playwright.Page, error) {
	if h.sess == nil {
		return nil, browser.ErrNoSession
	}
	return h.sess.Page(h.target)
}

// scope returns the engine locator for the current state.
func (h *Handle) scope(pg playwright.Page) playwright.Locator {
	if h.cur != nil {
		return h.cur.loc
	}
	return pg.Locator(h.base)
}

// begin performs the page resolution and readiness wait shared by every
// narrowing step. It reports false when the chain has already failed or
// the page cannot be resolved; the recorded error surfaces at the next
// terminal action.
func (h *Handle) begin() (playwright.Page, bool) {
	if h.err != nil {
		return nil, false
	}
	pg, err := h.page()
	if err != nil {
		h.err = err
		return nil, false
	}
	if err := h.sess.WaitReady(pg); err != nil {
		h.err = err
		return nil, false
	}
	return pg, true
}

// narrow installs a fresh cursor pointing at loc, then tries to resolve
// the concrete selector and XPath of the match.
func (h *Handle) narrow(loc playwright.Locator, described string) *Handle {
	c := &cursor{loc: loc, selector: described}
	h.cur = c
	h.resolveDescriptor(c)
	return h
}

// resolveDescriptor computes the CSS path and XPath of the narrowed
// element when one currently exists. A zero-match narrowing keeps its
// descriptive selector; the terminal action will fail on it.
func (h *Handle) resolveDescriptor(c *cursor) {
	count, err := c.loc.Count()
	if err != nil || count == 0 {
		return
	}

	first := c.loc.First()
	if css, err := evalString(first, jsCSSPath, nil); err == nil && css != "" {
		c.selector = css
	}
	if xp, err := evalString(first, jsXPath, nil); err == nil {
		c.xpath = xp
	}
}

// resolveForAction resolves the page and scope for a terminal action,
// running the readiness wait first.
func (h *Handle) resolveForAction() (playwright.Page, playwright.Locator, error) {
	if h.err != nil {
		return nil, nil, h.err
	}
	pg, err := h.page()
	if err != nil {
		return nil, nil, err
	}
	if err := h.sess.WaitReady(pg); err != nil {
		return nil, nil, err
	}
	return pg, h.scope(pg), nil
}

// fail wraps err with the action context and logs it. Callers return
// the result directly; the deferred reset runs afterwards, so the
// selector recorded here is the one that failed.
func (h *Handle) fail(op string, err error) error {
	actionErr := &ActionError{
		Op:          op,
		Description: h.desc,
		Selector:    h.Effective(),
		Err:         err,
	}
	if log := h.sess.Logger(); log != nil {
		log.Errorf("%s %q (%s) failed: %v", op, h.desc, actionErr.Selector, err)
	}
	return actionErr
}

// logAction writes the single log line for a performed action. Values
// for elements whose description matches a redaction pattern are
// masked.
func (h *Handle) logAction(op, value string) {
	log := h.sess.Logger()
	if log == nil {
		return
	}
	if value != "" {
		log.Infof("%s %q value=%q", op, h.desc, h.sess.Masker().Mask(h.desc, value))
	} else {
		log.Infof("%s %q", op, h.desc)
	}
}

// evalString evaluates expr against the element and returns the string
// result.
func evalString(loc playwright.Locator, expr string, arg interface{}) (string, error) {
	v, err := loc.Evaluate(expr, arg)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string result, got %T", v)
	}
	return s, nil
}

// chain joins selector fragments into a readable descriptor.
func chain(parts ...string) string {
	return strings.Join(parts, " >> ")
}
