package element

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// timeout returns the configured action timeout, ready to hand to the
// engine option structs. Only valid after a successful resolve.
func (h *Handle) timeout() *float64 {
	return playwright.Float(h.sess.Config().ActionTimeout)
}

func (h *Handle) infof(format string, args ...interface{}) {
	if h.sess == nil {
		return
	}
	if log := h.sess.Logger(); log != nil {
		log.Infof(format, args...)
	}
}

func (h *Handle) debugf(format string, args ...interface{}) {
	if h.sess == nil {
		return
	}
	if log := h.sess.Logger(); log != nil {
		log.Debugf(format, args...)
	}
}

// Click clicks the element.
func (h *Handle) Click(opts ...ClickOptions) error {
	defer h.reset()
	var o ClickOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	_, loc, err := h.resolveForAction()
	if err != nil {
		return h.fail("click", err)
	}

	clickOpts := playwright.LocatorClickOptions{Timeout: h.timeout()}
	if o.Force {
		clickOpts.Force = playwright.Bool(true)
	}
	if err := loc.Click(clickOpts); err != nil {
		return h.fail("click", err)
	}
	h.logAction("click", "")
	return nil
}

// DblClick double-clicks the element.
func (h *Handle) DblClick(opts ...ClickOptions) error {
	defer h.reset()
	var o ClickOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	_, loc, err := h.resolveForAction()
	if err != nil {
		return h.fail("double click", err)
	}

	dblOpts := playwright.LocatorDblclickOptions{Timeout: h.timeout()}
	if o.Force {
		dblOpts.Force = playwright.Bool(true)
	}
	if err := loc.Dblclick(dblOpts); err != nil {
		return h.fail("double click", err)
	}
	h.logAction("double click", "")
	return nil
}

// Check ticks a checkbox or radio button. A control whose disabled
// property reads true is left alone and the call succeeds.
func (h *Handle) Check(opts ...CheckOptions) error {
	defer h.reset()
	var o CheckOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	_, loc, err := h.resolveForAction()
	if err != nil {
		return h.fail("check", err)
	}

	if disabled, derr := evalString(loc, jsProperty, "disabled"); derr == nil && disabled == "true" {
		h.infof("skipping check of disabled %q (%s)", h.desc, h.Effective())
		return nil
	}

	checkOpts := playwright.LocatorCheckOptions{Timeout: h.timeout()}
	if o.Force {
		checkOpts.Force = playwright.Bool(true)
	}
	if err := loc.Check(checkOpts); err != nil {
		return h.fail("check", err)
	}
	h.logAction("check", "")
	return nil
}

// Uncheck clears a checkbox. Disabled controls are skipped the same
// way Check skips them.
func (h *Handle) Uncheck(opts ...CheckOptions) error {
	defer h.reset()
	var o CheckOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	_, loc, err := h.resolveForAction()
	if err != nil {
		return h.fail("uncheck", err)
	}

	if disabled, derr := evalString(loc, jsProperty, "disabled"); derr == nil && disabled == "true" {
		h.infof("skipping uncheck of disabled %q (%s)", h.desc, h.Effective())
		return nil
	}

	uncheckOpts := playwright.LocatorUncheckOptions{Timeout: h.timeout()}
	if o.Force {
		uncheckOpts.Force = playwright.Bool(true)
	}
	if err := loc.Uncheck(uncheckOpts); err != nil {
		return h.fail("uncheck", err)
	}
	h.logAction("uncheck", "")
	return nil
}

// Clear empties an input or textarea.
func (h *Handle) Clear() error {
	defer h.reset()
	_, loc, err := h.resolveForAction()
	if err != nil {
		return h.fail("clear", err)
	}
	if err := loc.Clear(playwright.LocatorClearOptions{Timeout: h.timeout()}); err != nil {
		return h.fail("clear", err)
	}
	h.logAction("clear", "")
	return nil
}

// SetValue replaces the element's value in one shot.
func (h *Handle) SetValue(value string, opts ...SetValueOptions) error {
	defer h.reset()
	var o SetValueOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	_, loc, err := h.resolveForAction()
	if err != nil {
		return h.fail("set value", err)
	}

	fillOpts := playwright.LocatorFillOptions{Timeout: h.timeout()}
	if o.Force {
		fillOpts.Force = playwright.Bool(true)
	}
	if err := loc.Fill(value, fillOpts); err != nil {
		return h.fail("set value", err)
	}
	h.logAction("set value", value)
	return nil
}

// Type types text into the element one key at a time.
func (h *Handle) Type(text string, opts ...TypeOptions) error {
	return h.PressSequentially(text, opts...)
}

// PressSequentially sends individual keystrokes for each character,
// pausing Delay milliseconds between them when set.
func (h *Handle) PressSequentially(text string, opts ...TypeOptions) error {
	defer h.reset()
	var o TypeOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	_, loc, err := h.resolveForAction()
	if err != nil {
		return h.fail("type", err)
	}

	typeOpts := playwright.LocatorPressSequentiallyOptions{Timeout: h.timeout()}
	if o.Delay > 0 {
		typeOpts.Delay = playwright.Float(o.Delay)
	}
	if err := loc.PressSequentially(text, typeOpts); err != nil {
		return h.fail("type", err)
	}
	h.logAction("type", text)
	return nil
}

// Press sends a single key or chord, such as "Enter" or "Control+a".
func (h *Handle) Press(key string) error {
	defer h.reset()
	_, loc, err := h.resolveForAction()
	if err != nil {
		return h.fail("press", err)
	}
	if err := loc.Press(key, playwright.LocatorPressOptions{Timeout: h.timeout()}); err != nil {
		return h.fail("press", err)
	}
	h.logAction("press", key)
	return nil
}

// SelectByText selects dropdown options by their visible labels.
func (h *Handle) SelectByText(labels ...string) error {
	defer h.reset()
	_, loc, err := h.resolveForAction()
	if err != nil {
		return h.fail("select", err)
	}
	values := playwright.SelectOptionValues{Labels: &labels}
	if _, err := loc.SelectOption(values, playwright.LocatorSelectOptionOptions{Timeout: h.timeout()}); err != nil {
		return h.fail("select", err)
	}
	h.logAction("select", strings.Join(labels, ", "))
	return nil
}

// SelectByIndex selects dropdown options by zero-based position.
func (h *Handle) SelectByIndex(indexes ...int) error {
	defer h.reset()
	_, loc, err := h.resolveForAction()
	if err != nil {
		return h.fail("select", err)
	}
	values := playwright.SelectOptionValues{Indexes: &indexes}
	if _, err := loc.SelectOption(values, playwright.LocatorSelectOptionOptions{Timeout: h.timeout()}); err != nil {
		return h.fail("select", err)
	}
	h.logAction("select", fmt.Sprintf("indexes %v", indexes))
	return nil
}

// UploadFiles attaches local files to a file input.
func (h *Handle) UploadFiles(paths ...string) error {
	defer h.reset()
	_, loc, err := h.resolveForAction()
	if err != nil {
		return h.fail("upload", err)
	}

	files := make([]playwright.InputFile, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return h.fail("upload", fmt.Errorf("reading %s: %w", p, err))
		}
		mimeType := mime.TypeByExtension(filepath.Ext(p))
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		files = append(files, playwright.InputFile{
			Name:     filepath.Base(p),
			MimeType: mimeType,
			Buffer:   data,
		})
	}

	if err := loc.SetInputFiles(files); err != nil {
		return h.fail("upload", err)
	}
	h.logAction("upload", strings.Join(paths, ", "))
	return nil
}

// Text returns the element's inner text with surrounding whitespace
// trimmed.
func (h *Handle) Text() (string, error) {
	defer h.reset()
	_, loc, err := h.resolveForAction()
	if err != nil {
		return "", h.fail("read text", err)
	}
	t, err := loc.InnerText(playwright.LocatorInnerTextOptions{Timeout: h.timeout()})
	if err != nil {
		return "", h.fail("read text", err)
	}
	text := strings.TrimSpace(t)
	h.logAction("read text", text)
	return text, nil
}

// AllTexts returns the trimmed inner text of every match, pausing the
// configured read delay between elements so late-rendering cells are
// picked up.
func (h *Handle) AllTexts() ([]string, error) {
	defer h.reset()
	pg, loc, err := h.resolveForAction()
	if err != nil {
		return nil, h.fail("read texts", err)
	}

	n, err := loc.Count()
	if err != nil {
		return nil, h.fail("read texts", err)
	}

	delay := h.sess.Config().TextReadDelay
	texts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 && delay > 0 {
			pg.WaitForTimeout(delay)
		}
		t, err := loc.Nth(i).InnerText(playwright.LocatorInnerTextOptions{Timeout: h.timeout()})
		if err != nil {
			return nil, h.fail("read texts", err)
		}
		texts = append(texts, strings.TrimSpace(t))
	}
	h.debugf("read %d texts of %q", n, h.desc)
	return texts, nil
}

// Property reads a DOM property as a string. Absent properties come
// back empty.
func (h *Handle) Property(name string) (string, error) {
	defer h.reset()
	_, loc, err := h.resolveForAction()
	if err != nil {
		return "", h.fail("read property", err)
	}
	v, err := evalString(loc, jsProperty, name)
	if err != nil {
		return "", h.fail("read property", err)
	}
	h.logAction(fmt.Sprintf("read property %s", name), v)
	return v, nil
}

// Attribute reads an HTML attribute value.
func (h *Handle) Attribute(name string) (string, error) {
	defer h.reset()
	_, loc, err := h.resolveForAction()
	if err != nil {
		return "", h.fail("read attribute", err)
	}
	v, err := loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{Timeout: h.timeout()})
	if err != nil {
		return "", h.fail("read attribute", err)
	}
	h.logAction(fmt.Sprintf("read attribute %s", name), v)
	return v, nil
}

// CSS reads a computed style property, such as "background-color".
func (h *Handle) CSS(property string) (string, error) {
	defer h.reset()
	_, loc, err := h.resolveForAction()
	if err != nil {
		return "", h.fail("read css", err)
	}
	v, err := evalString(loc, jsComputedStyle, property)
	if err != nil {
		return "", h.fail("read css", err)
	}
	h.logAction(fmt.Sprintf("read css %s", property), v)
	return v, nil
}

// IsVisible reports whether the element is currently visible. Missing
// elements report false without error.
func (h *Handle) IsVisible() (bool, error) {
	defer h.reset()
	_, loc, err := h.resolveForAction()
	if err != nil {
		return false, h.fail("visibility check", err)
	}
	visible, err := loc.IsVisible()
	if err != nil {
		return false, h.fail("visibility check", err)
	}
	h.debugf("visibility check of %q: %v", h.desc, visible)
	return visible, nil
}

// IsEnabled reports whether the element accepts input.
func (h *Handle) IsEnabled() (bool, error) {
	defer h.reset()
	_, loc, err := h.resolveForAction()
	if err != nil {
		return false, h.fail("enabled check", err)
	}
	enabled, err := loc.IsEnabled()
	if err != nil {
		return false, h.fail("enabled check", err)
	}
	h.debugf("enabled check of %q: %v", h.desc, enabled)
	return enabled, nil
}

// Exists reports whether at least one element matches. Zero matches is
// a normal answer, not an error.
func (h *Handle) Exists() (bool, error) {
	n, err := h.Count()
	return n > 0, err
}

// Count returns how many elements currently match.
func (h *Handle) Count() (int, error) {
	defer h.reset()
	_, loc, err := h.resolveForAction()
	if err != nil {
		return 0, h.fail("count", err)
	}
	n, err := loc.Count()
	if err != nil {
		return 0, h.fail("count", err)
	}
	h.debugf("counted %d matches of %q", n, h.desc)
	return n, nil
}

// All fans the current match set out into independent handles, one per
// element. Each handle carries its own concrete selector where one can
// be resolved, so later actions on one do not disturb the others.
func (h *Handle) All(opts ...AllOptions) ([]*Handle, error) {
	defer h.reset()
	var o AllOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	_, loc, err := h.resolveForAction()
	if err != nil {
		return nil, h.fail("enumerate", err)
	}
	if o.HasText != "" {
		loc = loc.Filter(playwright.LocatorFilterOptions{HasText: containsPattern(o.HasText)})
	}

	n, err := loc.Count()
	if err != nil {
		return nil, h.fail("enumerate", err)
	}

	items := make([]*Handle, 0, n)
	for i := 0; i < n; i++ {
		sel := chain(h.Effective(), fmt.Sprintf("nth=%d", i))
		if css, cerr := evalString(loc.Nth(i), jsCSSPath, nil); cerr == nil && css != "" {
			sel = css
		}
		items = append(items, New(h.sess, sel, Options{
			Description: fmt.Sprintf("%s [%d]", h.desc, i),
			Popup:       h.target.Popup,
			PageIndex:   h.target.Index,
		}))
	}
	h.debugf("enumerated %d matches of %q", n, h.desc)
	return items, nil
}
