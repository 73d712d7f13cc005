package element

import (
	"fmt"
	"regexp"

	"github.com/playwright-community/playwright-go"
)

// In-page scripts used to resolve the concrete selector of a narrowed
// element and to read element state.
const (
	// jsCSSPath builds a concrete CSS path for an element, stopping at
	// the nearest ancestor with an id.
	jsCSSPath = `el => {
	const parts = [];
	let node = el;
	while (node && node.nodeType === Node.ELEMENT_NODE) {
		if (node.id) {
			parts.unshift('#' + CSS.escape(node.id));
			break;
		}
		let part = node.nodeName.toLowerCase();
		let sibling = node, nth = 1;
		while ((sibling = sibling.previousElementSibling)) {
			if (sibling.nodeName === node.nodeName) nth++;
		}
		if (nth > 1) part += ':nth-of-type(' + nth + ')';
		parts.unshift(part);
		node = node.parentElement;
	}
	return parts.join(' > ');
}`

	// jsXPath builds an absolute XPath for an element.
	jsXPath = `el => {
	const parts = [];
	let node = el;
	while (node && node.nodeType === Node.ELEMENT_NODE) {
		let nth = 1, sibling = node;
		while ((sibling = sibling.previousElementSibling)) {
			if (sibling.nodeName === node.nodeName) nth++;
		}
		parts.unshift(node.nodeName.toLowerCase() + '[' + nth + ']');
		node = node.parentElement;
	}
	return '/' + parts.join('/');
}`

	// jsProperty reads a DOM property and stringifies it; absent
	// properties come back as "".
	jsProperty = `(el, name) => {
	const v = el[name];
	return v === undefined || v === null ? '' : String(v);
}`

	// jsComputedStyle reads a computed CSS property value.
	jsComputedStyle = `(el, prop) => getComputedStyle(el).getPropertyValue(prop)`
)

// containsPattern matches elements whose text contains the literal
// value, case preserved.
func containsPattern(text string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(text))
}

// exactPattern matches elements whose whole trimmed text equals the
// literal value.
func exactPattern(text string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*` + regexp.QuoteMeta(text) + `\s*$`)
}

func textPattern(text string, exact bool) *regexp.Regexp {
	if exact {
		return exactPattern(text)
	}
	return containsPattern(text)
}

// Find narrows to a descendant of the current scope. With HasText set
// the matches are filtered by contained text first and TextIndex picks
// among the filtered set; otherwise Index picks among the raw matches.
func (h *Handle) Find(selector string, opts ...FindOptions) *Handle {
	var o FindOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	pg, ok := h.begin()
	if !ok {
		return h
	}

	loc := h.scope(pg).Locator(selector)
	described := chain(h.Effective(), selector)

	if o.HasText != "" {
		loc = loc.Filter(playwright.LocatorFilterOptions{HasText: containsPattern(o.HasText)}).Nth(o.TextIndex)
		described = fmt.Sprintf("%s :text(%q)", described, o.HasText)
		if o.TextIndex > 0 {
			described = fmt.Sprintf("%s >> nth=%d", described, o.TextIndex)
		}
	} else {
		loc = loc.Nth(o.Index)
		if o.Index > 0 {
			described = fmt.Sprintf("%s >> nth=%d", described, o.Index)
		}
	}

	return h.narrow(loc, described)
}

// Nth narrows to the index-th element of the current match set.
func (h *Handle) Nth(index int) *Handle {
	pg, ok := h.begin()
	if !ok {
		return h
	}

	loc := h.scope(pg).Nth(index)
	return h.narrow(loc, fmt.Sprintf("%s >> nth=%d", h.Effective(), index))
}

// Parent narrows to the direct parent of the current element.
func (h *Handle) Parent() *Handle {
	pg, ok := h.begin()
	if !ok {
		return h
	}

	loc := h.scope(pg).Locator("xpath=..")
	return h.narrow(loc, chain(h.Effective(), "xpath=.."))
}

// Sibling narrows to a following sibling of the current element that
// matches the given selector.
func (h *Handle) Sibling(selector string, opts ...SiblingOptions) *Handle {
	var o SiblingOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	pg, ok := h.begin()
	if !ok {
		return h
	}

	loc := h.scope(pg).Locator("xpath=following-sibling::*").And(pg.Locator(selector)).Nth(o.Index)
	described := fmt.Sprintf("%s >> following-sibling(%s)", h.Effective(), selector)
	if o.Index > 0 {
		described = fmt.Sprintf("%s >> nth=%d", described, o.Index)
	}
	return h.narrow(loc, described)
}

// Contains narrows to the index-th match whose text contains the given
// value.
func (h *Handle) Contains(text string, opts ...ContainsOptions) *Handle {
	var o ContainsOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	pg, ok := h.begin()
	if !ok {
		return h
	}

	loc := h.scope(pg).Filter(playwright.LocatorFilterOptions{HasText: containsPattern(text)}).Nth(o.Index)
	described := fmt.Sprintf("%s :text(%q)", h.Effective(), text)
	if o.Index > 0 {
		described = fmt.Sprintf("%s >> nth=%d", described, o.Index)
	}
	return h.narrow(loc, described)
}

// HasText narrows to the index-th match whose text contains the value,
// or equals it when Exact is set.
func (h *Handle) HasText(text string, opts ...HasTextOptions) *Handle {
	var o HasTextOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	pg, ok := h.begin()
	if !ok {
		return h
	}

	loc := h.scope(pg).Filter(playwright.LocatorFilterOptions{HasText: textPattern(text, o.Exact)}).Nth(o.Index)
	mode := "text"
	if o.Exact {
		mode = "text-is"
	}
	described := fmt.Sprintf("%s :%s(%q)", h.Effective(), mode, text)
	if o.Index > 0 {
		described = fmt.Sprintf("%s >> nth=%d", described, o.Index)
	}
	return h.narrow(loc, described)
}

// ChildHasText narrows to the matches that have a direct child whose
// text contains the value (or equals it when Exact is set). The result
// can still cover several elements; chain Nth or Find to single one
// out.
func (h *Handle) ChildHasText(text string, opts ...ChildHasTextOptions) *Handle {
	var o ChildHasTextOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	pg, ok := h.begin()
	if !ok {
		return h
	}

	probe := pg.Locator("xpath=child::*").Filter(playwright.LocatorFilterOptions{HasText: textPattern(text, o.Exact)})
	loc := h.scope(pg).Filter(playwright.LocatorFilterOptions{Has: probe})
	return h.narrow(loc, fmt.Sprintf("%s :has-child(%q)", h.Effective(), text))
}
