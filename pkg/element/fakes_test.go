package element

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/playwright-community/playwright-go"

	"github.com/amtsnh/playwrightFramework/pkg/browser"
	"github.com/amtsnh/playwrightFramework/pkg/config"
)

// fakeEl is one simulated DOM element. The locator fakes resolve
// selectors against the children map and record actions on the element
// they land on.
type fakeEl struct {
	inner      string
	css        string
	xpath      string
	childTexts []string

	props  map[string]string
	attrs  map[string]string
	styles map[string]string

	children map[string][]*fakeEl
	siblings []*fakeEl
	parent   *fakeEl

	clicks    int
	dblclicks int
	checks    int
	unchecks  int
	cleared   int
	fills     []string
	typed     []string
	pressed   []string
	selected  []string
}

func newEl(inner string) *fakeEl {
	return &fakeEl{
		inner:    inner,
		props:    map[string]string{},
		attrs:    map[string]string{},
		styles:   map[string]string{},
		children: map[string][]*fakeEl{},
	}
}

func (e *fakeEl) addChild(selector string, children ...*fakeEl) *fakeEl {
	e.children[selector] = append(e.children[selector], children...)
	return e
}

// fakeLoc stands in for a playwright locator over a set of fakeEl. A
// probe locator is the child-text filter built by ChildHasText; it
// matches nothing itself and only carries the compiled pattern.
// embeddedLocator renames the embedded interface field so fakeLoc can
// define its own Locator method without colliding with the field name.
type embeddedLocator = playwright.Locator

type fakeLoc struct {
	embeddedLocator

	els     []*fakeEl
	probe   bool
	probeRe *regexp.Regexp
}

func (l *fakeLoc) Count() (int, error) { return len(l.els), nil }

func (l *fakeLoc) Nth(index int) playwright.Locator {
	if index < 0 || index >= len(l.els) {
		return &fakeLoc{}
	}
	return &fakeLoc{els: l.els[index : index+1]}
}

func (l *fakeLoc) First() playwright.Locator { return l.Nth(0) }

func (l *fakeLoc) Locator(selectorOrLocator interface{}, options ...playwright.LocatorLocatorOptions) playwright.Locator {
	selector, _ := selectorOrLocator.(string)
	out := &fakeLoc{}
	switch selector {
	case "xpath=..":
		for _, el := range l.els {
			if el.parent != nil {
				out.els = append(out.els, el.parent)
			}
		}
	case "xpath=following-sibling::*":
		for _, el := range l.els {
			out.els = append(out.els, el.siblings...)
		}
	default:
		for _, el := range l.els {
			out.els = append(out.els, el.children[selector]...)
		}
	}
	return out
}

func (l *fakeLoc) Filter(options ...playwright.LocatorFilterOptions) playwright.Locator {
	if len(options) == 0 {
		return l
	}
	o := options[0]

	if l.probe {
		re, _ := o.HasText.(*regexp.Regexp)
		return &fakeLoc{probe: true, probeRe: re}
	}

	out := &fakeLoc{}
	if re, ok := o.HasText.(*regexp.Regexp); ok {
		for _, el := range l.els {
			if re.MatchString(el.inner) {
				out.els = append(out.els, el)
			}
		}
		return out
	}
	if probe, ok := o.Has.(*fakeLoc); ok && probe.probeRe != nil {
		for _, el := range l.els {
			for _, text := range el.childTexts {
				if probe.probeRe.MatchString(text) {
					out.els = append(out.els, el)
					break
				}
			}
		}
		return out
	}
	return l
}

func (l *fakeLoc) And(locator playwright.Locator) playwright.Locator {
	other, ok := locator.(*fakeLoc)
	if !ok {
		return &fakeLoc{}
	}
	members := map[*fakeEl]bool{}
	for _, el := range other.els {
		members[el] = true
	}
	out := &fakeLoc{}
	for _, el := range l.els {
		if members[el] {
			out.els = append(out.els, el)
		}
	}
	return out
}

func (l *fakeLoc) Evaluate(expression string, arg interface{}, options ...playwright.LocatorEvaluateOptions) (interface{}, error) {
	el, err := l.resolve("evaluate")
	if err != nil {
		return nil, err
	}
	switch expression {
	case jsCSSPath:
		return el.css, nil
	case jsXPath:
		return el.xpath, nil
	case jsProperty:
		name, _ := arg.(string)
		return el.props[name], nil
	case jsComputedStyle:
		prop, _ := arg.(string)
		return el.styles[prop], nil
	}
	return nil, fmt.Errorf("unexpected expression %q", expression)
}

func (l *fakeLoc) Click(options ...playwright.LocatorClickOptions) error {
	el, err := l.resolve("click")
	if err != nil {
		return err
	}
	el.clicks++
	return nil
}

func (l *fakeLoc) Dblclick(options ...playwright.LocatorDblclickOptions) error {
	el, err := l.resolve("dblclick")
	if err != nil {
		return err
	}
	el.dblclicks++
	return nil
}

func (l *fakeLoc) Check(options ...playwright.LocatorCheckOptions) error {
	el, err := l.resolve("check")
	if err != nil {
		return err
	}
	el.checks++
	return nil
}

func (l *fakeLoc) Uncheck(options ...playwright.LocatorUncheckOptions) error {
	el, err := l.resolve("uncheck")
	if err != nil {
		return err
	}
	el.unchecks++
	return nil
}

func (l *fakeLoc) Clear(options ...playwright.LocatorClearOptions) error {
	el, err := l.resolve("clear")
	if err != nil {
		return err
	}
	el.cleared++
	return nil
}

func (l *fakeLoc) Fill(value string, options ...playwright.LocatorFillOptions) error {
	el, err := l.resolve("fill")
	if err != nil {
		return err
	}
	el.fills = append(el.fills, value)
	return nil
}

func (l *fakeLoc) PressSequentially(text string, options ...playwright.LocatorPressSequentiallyOptions) error {
	el, err := l.resolve("type")
	if err != nil {
		return err
	}
	el.typed = append(el.typed, text)
	return nil
}

func (l *fakeLoc) Press(key string, options ...playwright.LocatorPressOptions) error {
	el, err := l.resolve("press")
	if err != nil {
		return err
	}
	el.pressed = append(el.pressed, key)
	return nil
}

func (l *fakeLoc) SelectOption(values playwright.SelectOptionValues, options ...playwright.LocatorSelectOptionOptions) ([]string, error) {
	el, err := l.resolve("select")
	if err != nil {
		return nil, err
	}
	if values.Labels != nil {
		el.selected = append(el.selected, *values.Labels...)
	}
	if values.Indexes != nil {
		for _, i := range *values.Indexes {
			el.selected = append(el.selected, fmt.Sprintf("#%d", i))
		}
	}
	return el.selected, nil
}

func (l *fakeLoc) InnerText(options ...playwright.LocatorInnerTextOptions) (string, error) {
	el, err := l.resolve("inner text")
	if err != nil {
		return "", err
	}
	return el.inner, nil
}

func (l *fakeLoc) AllInnerTexts() ([]string, error) {
	texts := make([]string, len(l.els))
	for i, el := range l.els {
		texts[i] = el.inner
	}
	return texts, nil
}

func (l *fakeLoc) GetAttribute(name string, options ...playwright.LocatorGetAttributeOptions) (string, error) {
	el, err := l.resolve("attribute")
	if err != nil {
		return "", err
	}
	return el.attrs[name], nil
}

func (l *fakeLoc) resolve(op string) (*fakeEl, error) {
	if len(l.els) == 0 {
		return nil, errors.New(op + ": no element matches")
	}
	return l.els[0], nil
}

// fakePage serves locator lookups from a selector map and satisfies
// the readiness waits without doing anything.
type fakePage struct {
	playwright.Page

	roots map[string][]*fakeEl
}

func (p *fakePage) Locator(selector string, options ...playwright.PageLocatorOptions) playwright.Locator {
	if selector == "xpath=child::*" {
		return &fakeLoc{probe: true}
	}
	return &fakeLoc{els: p.roots[selector]}
}

func (p *fakePage) OnPopup(fn func(playwright.Page)) {}

func (p *fakePage) WaitForTimeout(timeout float64) {}

func (p *fakePage) WaitForLoadState(options ...playwright.PageWaitForLoadStateOptions) error {
	return nil
}

// fixture wires a fake page into a real session so handles run the
// full resolve, wait and reset path.
type fixture struct {
	page *fakePage
	sess *browser.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ReadinessDelay = 0
	cfg.TextReadDelay = 0
	page := &fakePage{roots: map[string][]*fakeEl{}}
	return &fixture{page: page, sess: browser.Attach(nil, page, cfg)}
}

func (f *fixture) mount(selector string, els ...*fakeEl) {
	f.page.roots[selector] = append(f.page.roots[selector], els...)
}
