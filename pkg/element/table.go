package element

import (
	"fmt"
	"strings"

	"github.com/amtsnh/playwrightFramework/pkg/browser"
	"github.com/playwright-community/playwright-go"
)

const (
	defaultRowSelector  = "tr"
	defaultLinkSelector = "a"
	cellSelector        = "td"
	headerSelector      = "th"
)

// Table layers row and column aware operations on top of Handle. Rows
// are addressed by a configurable row selector, cells always by td.
type Table struct {
	*Handle
}

// NewTable builds a table handle rooted at the given selector.
func NewTable(sess *browser.Session, selector string, opts ...Options) *Table {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Description == "" {
		o.Description = "table"
	}
	return &Table{Handle: New(sess, selector, o)}
}

// MatchOptions tunes the text-split row matchers.
type MatchOptions struct {
	// Exact requires full-cell equality instead of containment.
	Exact bool
	// RowSelector overrides the row selector, tr by default.
	RowSelector string
}

// MetaMatchOptions tunes the cell-element row matchers.
type MetaMatchOptions struct {
	// Exact requires full-cell equality instead of containment.
	Exact bool
	// RowSelector overrides the row selector, tr by default.
	RowSelector string
	// MinColumns is the narrowest row still counted as data. Rows with
	// fewer cells are skipped. Defaults to 2.
	MinColumns int
}

// RowOptions tunes the structural row operations.
type RowOptions struct {
	// RowSelector overrides the row selector, tr by default.
	RowSelector string
}

// HeaderIndexOptions tunes the header lookup.
type HeaderIndexOptions struct {
	// Exact requires full equality with the header text instead of
	// containment.
	Exact bool
}

// RowLinkOptions selects which link inside a row gets clicked.
type RowLinkOptions struct {
	// Name filters candidate links by contained text. Takes precedence
	// over LinkIndex.
	Name string
	// LinkIndex picks among the row's links, counting from 1. Zero
	// means the first link.
	LinkIndex int
	// LinkSelector overrides the link selector, a by default.
	LinkSelector string
	// RowSelector overrides the row selector, tr by default.
	RowSelector string
}

// MatchedRowLinkOptions combines row matching with link selection.
type MatchedRowLinkOptions struct {
	// Exact requires full-cell equality when matching the row.
	Exact bool
	// Name filters candidate links by contained text.
	Name string
	// LinkIndex picks among the row's links, counting from 1.
	LinkIndex int
	// LinkSelector overrides the link selector, a by default.
	LinkSelector string
	// RowSelector overrides the row selector, tr by default.
	RowSelector string
}

// MetaRowLinkOptions combines cell-element row matching with link
// selection.
type MetaRowLinkOptions struct {
	// Exact requires full-cell equality when matching the row.
	Exact bool
	// Name filters candidate links by contained text.
	Name string
	// LinkIndex picks among the row's links, counting from 1.
	LinkIndex int
	// LinkSelector overrides the link selector, a by default.
	LinkSelector string
	// RowSelector overrides the row selector, tr by default.
	RowSelector string
	// MinColumns is the narrowest row still counted as data.
	MinColumns int
}

func selectorOr(selector, fallback string) string {
	if selector == "" {
		return fallback
	}
	return selector
}

// Row narrows to the index-th row element under the current scope.
func (t *Table) Row(index int, opts ...RowOptions) *Table {
	var o RowOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	t.Handle.Find(selectorOr(o.RowSelector, defaultRowSelector), FindOptions{Index: index})
	return t
}

// TableAt narrows to the index-th table element under the current
// scope, for pages nesting several tables inside one container.
func (t *Table) TableAt(index int) *Table {
	t.Handle.Find("table", FindOptions{Index: index})
	return t
}

// CellWithText narrows to the first cell containing the given text.
func (t *Table) CellWithText(text string) *Table {
	t.Handle.Find(cellSelector, FindOptions{HasText: text})
	return t
}

// CellText reads the trimmed text of one cell. Row and column indices
// are structural positions and must be in range.
func (t *Table) CellText(row, col int, opts ...RowOptions) (string, error) {
	var o RowOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	h := t.Handle
	defer h.reset()

	_, scope, err := h.resolveForAction()
	if err != nil {
		return "", h.fail("read cell", err)
	}

	rows := scope.Locator(selectorOr(o.RowSelector, defaultRowSelector))
	n, err := rows.Count()
	if err != nil {
		return "", h.fail("read cell", err)
	}
	if row < 0 || row >= n {
		return "", h.fail("read cell", fmt.Errorf("%w: row %d of %d", ErrNotFound, row, n))
	}

	cells := rows.Nth(row).Locator(cellSelector)
	m, err := cells.Count()
	if err != nil {
		return "", h.fail("read cell", err)
	}
	if col < 0 || col >= m {
		return "", h.fail("read cell", fmt.Errorf("%w: column %d of %d", ErrNotFound, col, m))
	}

	text, err := cells.Nth(col).InnerText(playwright.LocatorInnerTextOptions{Timeout: h.timeout()})
	if err != nil {
		return "", h.fail("read cell", err)
	}
	return strings.TrimSpace(text), nil
}

// RowTexts reads the trimmed cell texts of one row, in column order.
func (t *Table) RowTexts(row int, opts ...RowOptions) ([]string, error) {
	var o RowOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	h := t.Handle
	defer h.reset()

	_, scope, err := h.resolveForAction()
	if err != nil {
		return nil, h.fail("read row", err)
	}

	rows := scope.Locator(selectorOr(o.RowSelector, defaultRowSelector))
	n, err := rows.Count()
	if err != nil {
		return nil, h.fail("read row", err)
	}
	if row < 0 || row >= n {
		return nil, h.fail("read row", fmt.Errorf("%w: row %d of %d", ErrNotFound, row, n))
	}

	cells, err := rows.Nth(row).Locator(cellSelector).AllInnerTexts()
	if err != nil {
		return nil, h.fail("read row", err)
	}
	return trimAll(cells), nil
}

// ColumnTexts reads the trimmed text of column col across every row.
// Rows without such a cell, header rows included, are skipped.
func (t *Table) ColumnTexts(col int, opts ...RowOptions) ([]string, error) {
	var o RowOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	h := t.Handle
	defer h.reset()

	_, scope, err := h.resolveForAction()
	if err != nil {
		return nil, h.fail("read column", err)
	}

	rows := scope.Locator(selectorOr(o.RowSelector, defaultRowSelector))
	n, err := rows.Count()
	if err != nil {
		return nil, h.fail("read column", err)
	}

	var values []string
	for i := 0; i < n; i++ {
		cells := rows.Nth(i).Locator(cellSelector)
		m, err := cells.Count()
		if err != nil {
			return nil, h.fail("read column", err)
		}
		if col < 0 || col >= m {
			continue
		}
		text, err := cells.Nth(col).InnerText(playwright.LocatorInnerTextOptions{Timeout: h.timeout()})
		if err != nil {
			return nil, h.fail("read column", err)
		}
		values = append(values, strings.TrimSpace(text))
	}
	h.debugf("read %d values of column %d in %q", len(values), col, h.desc)
	return values, nil
}

// HeaderNames reads the trimmed header cell texts in document order.
func (t *Table) HeaderNames() ([]string, error) {
	h := t.Handle
	defer h.reset()

	_, scope, err := h.resolveForAction()
	if err != nil {
		return nil, h.fail("read headers", err)
	}

	headers, err := scope.Locator(headerSelector).AllInnerTexts()
	if err != nil {
		return nil, h.fail("read headers", err)
	}
	return trimAll(headers), nil
}

// HeaderIndex returns the position of the named header column, or -1
// when no header matches. The name is compared trimmed and
// case-insensitive, by containment unless Exact is set.
func (t *Table) HeaderIndex(name string, opts ...HeaderIndexOptions) (int, error) {
	var o HeaderIndexOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	headers, err := t.HeaderNames()
	if err != nil {
		return -1, err
	}
	return headerIndex(headers, name, o.Exact), nil
}

// RowCount returns how many row elements the table currently has. An
// absent table root counts as zero rows rather than an error.
func (t *Table) RowCount(opts ...RowOptions) (int, error) {
	var o RowOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	h := t.Handle
	defer h.reset()

	_, scope, err := h.resolveForAction()
	if err != nil {
		return 0, h.fail("count rows", err)
	}

	roots, err := scope.Count()
	if err != nil {
		return 0, h.fail("count rows", err)
	}
	if roots == 0 {
		return 0, nil
	}

	n, err := scope.Locator(selectorOr(o.RowSelector, defaultRowSelector)).Count()
	if err != nil {
		return 0, h.fail("count rows", err)
	}
	return n, nil
}

// MatchedRowIndex returns the position of the first data row whose
// cells satisfy every target, or -1 when none does. See
// MatchedRowIndices for the matching rules and index space.
func (t *Table) MatchedRowIndex(targets []string, opts ...MatchOptions) (int, error) {
	indices, err := t.MatchedRowIndices(targets, opts...)
	if err != nil {
		return -1, err
	}
	if len(indices) == 0 {
		return -1, nil
	}
	return indices[0], nil
}

// MatchedRowIndices returns the positions of every data row whose
// cells satisfy all targets. Each row's aggregate text is split into
// cells on tabs and newlines; rows yielding one cell or fewer do not
// count as data and the returned positions are relative to the rows
// that remain. A target prefixed up to a single quote compares only
// the text after the quote, so "Status' shipped" matches cells against
// "shipped".
func (t *Table) MatchedRowIndices(targets []string, opts ...MatchOptions) ([]int, error) {
	var o MatchOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	h := t.Handle
	defer h.reset()

	_, scope, err := h.resolveForAction()
	if err != nil {
		return nil, h.fail("match rows", err)
	}

	rowTexts, err := scope.Locator(selectorOr(o.RowSelector, defaultRowSelector)).AllInnerTexts()
	if err != nil {
		return nil, h.fail("match rows", err)
	}

	indices := matchRowIndices(rowTexts, targets, o.Exact)
	h.debugf("matched %d of %d rows in %q against %v", len(indices), len(rowTexts), h.desc, targets)
	return indices, nil
}

// MetaMatchedRowIndex is MatchedRowIndex with cells enumerated as
// elements. Returns -1 when no row matches.
func (t *Table) MetaMatchedRowIndex(targets []string, opts ...MetaMatchOptions) (int, error) {
	indices, err := t.MetaMatchedRowIndices(targets, opts...)
	if err != nil {
		return -1, err
	}
	if len(indices) == 0 {
		return -1, nil
	}
	return indices[0], nil
}

// MetaMatchedRowIndices matches rows the way MatchedRowIndices does
// but reads each row's td elements instead of splitting aggregate
// text, and skips rows narrower than MinColumns. Positions are again
// relative to the rows that survive the cutoff.
func (t *Table) MetaMatchedRowIndices(targets []string, opts ...MetaMatchOptions) ([]int, error) {
	var o MetaMatchOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	h := t.Handle
	defer h.reset()

	_, scope, err := h.resolveForAction()
	if err != nil {
		return nil, h.fail("match rows", err)
	}

	rows := scope.Locator(selectorOr(o.RowSelector, defaultRowSelector))
	cellRows, err := collectCellRows(rows)
	if err != nil {
		return nil, h.fail("match rows", err)
	}

	indices := metaMatchIndices(cellRows, targets, o.Exact, o.MinColumns)
	h.debugf("matched %d of %d rows in %q against %v", len(indices), len(cellRows), h.desc, targets)
	return indices, nil
}

// ColumnValueExists reports whether any cell under the current scope
// matches the value, trimmed and case-insensitive. Zero matches is a
// normal answer, not an error.
func (t *Table) ColumnValueExists(value string, opts ...MatchOptions) (bool, error) {
	var o MatchOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	h := t.Handle
	defer h.reset()

	_, scope, err := h.resolveForAction()
	if err != nil {
		return false, h.fail("find cell value", err)
	}

	cells, err := scope.Locator(cellSelector).AllInnerTexts()
	if err != nil {
		return false, h.fail("find cell value", err)
	}

	want := normalizeTarget(value)
	for _, cell := range cells {
		if cellMatches(cell, want, o.Exact) {
			return true, nil
		}
	}
	return false, nil
}

// ClickRowLink clicks a link inside the rowIndex-th data row. The
// index counts data rows the way MatchedRowIndices does, so the two
// compose directly.
func (t *Table) ClickRowLink(rowIndex int, opts ...RowLinkOptions) error {
	var o RowLinkOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	h := t.Handle
	defer h.reset()

	_, scope, err := h.resolveForAction()
	if err != nil {
		return h.fail("click row link", err)
	}

	rows := scope.Locator(selectorOr(o.RowSelector, defaultRowSelector))
	rowTexts, err := rows.AllInnerTexts()
	if err != nil {
		return h.fail("click row link", err)
	}

	raw := rawRowIndex(rowTexts, rowIndex)
	if raw < 0 {
		return h.fail("click row link", fmt.Errorf("%w: data row %d", ErrNotFound, rowIndex))
	}
	return t.clickLink(rows.Nth(raw), o.Name, o.LinkSelector, o.LinkIndex, "click row link")
}

// ClickMatchedRowLink finds the first data row satisfying all targets
// and clicks a link inside it.
func (t *Table) ClickMatchedRowLink(targets []string, opts ...MatchedRowLinkOptions) error {
	var o MatchedRowLinkOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	h := t.Handle
	defer h.reset()

	_, scope, err := h.resolveForAction()
	if err != nil {
		return h.fail("click matched row link", err)
	}

	rows := scope.Locator(selectorOr(o.RowSelector, defaultRowSelector))
	rowTexts, err := rows.AllInnerTexts()
	if err != nil {
		return h.fail("click matched row link", err)
	}

	indices := matchRowIndices(rowTexts, targets, o.Exact)
	if len(indices) == 0 {
		return h.fail("click matched row link", fmt.Errorf("%w: no row matching %v", ErrNotFound, targets))
	}

	raw := rawRowIndex(rowTexts, indices[0])
	if raw < 0 {
		return h.fail("click matched row link", fmt.Errorf("%w: no row matching %v", ErrNotFound, targets))
	}
	return t.clickLink(rows.Nth(raw), o.Name, o.LinkSelector, o.LinkIndex, "click matched row link")
}

// ClickMetaRowLink clicks a link inside the rowIndex-th data row,
// counting rows by their td cells the way MetaMatchedRowIndices does,
// so indices reported there feed back directly.
func (t *Table) ClickMetaRowLink(rowIndex int, opts ...MetaRowLinkOptions) error {
	var o MetaRowLinkOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	h := t.Handle
	defer h.reset()

	_, scope, err := h.resolveForAction()
	if err != nil {
		return h.fail("click meta row link", err)
	}

	rows := scope.Locator(selectorOr(o.RowSelector, defaultRowSelector))
	cellRows, err := collectCellRows(rows)
	if err != nil {
		return h.fail("click meta row link", err)
	}

	raw := rawMetaRowIndex(cellRows, rowIndex, o.MinColumns)
	if raw < 0 {
		return h.fail("click meta row link", fmt.Errorf("%w: data row %d", ErrNotFound, rowIndex))
	}
	return t.clickLink(rows.Nth(raw), o.Name, o.LinkSelector, o.LinkIndex, "click meta row link")
}

// ClickMetaMatchedRowLink finds the first row satisfying all targets
// using cell-element matching and clicks a link inside it.
func (t *Table) ClickMetaMatchedRowLink(targets []string, opts ...MetaRowLinkOptions) error {
	var o MetaRowLinkOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	h := t.Handle
	defer h.reset()

	_, scope, err := h.resolveForAction()
	if err != nil {
		return h.fail("click meta matched row link", err)
	}

	rows := scope.Locator(selectorOr(o.RowSelector, defaultRowSelector))
	cellRows, err := collectCellRows(rows)
	if err != nil {
		return h.fail("click meta matched row link", err)
	}

	indices := metaMatchIndices(cellRows, targets, o.Exact, o.MinColumns)
	if len(indices) == 0 {
		return h.fail("click meta matched row link", fmt.Errorf("%w: no row matching %v", ErrNotFound, targets))
	}

	raw := rawMetaRowIndex(cellRows, indices[0], o.MinColumns)
	if raw < 0 {
		return h.fail("click meta matched row link", fmt.Errorf("%w: no row matching %v", ErrNotFound, targets))
	}
	return t.clickLink(rows.Nth(raw), o.Name, o.LinkSelector, o.LinkIndex, "click meta matched row link")
}

// collectCellRows reads the td texts of every row as separate cell
// elements, the meta counterpart of splitting aggregate row text.
func collectCellRows(rows playwright.Locator) ([][]string, error) {
	n, err := rows.Count()
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		cells, err := rows.Nth(i).Locator(cellSelector).AllInnerTexts()
		if err != nil {
			return nil, err
		}
		out = append(out, cells)
	}
	return out, nil
}

// clickLink clicks exactly one link inside the row: the first one
// whose text contains name when set, the linkIndex-th counting from 1
// when positive, the first otherwise.
func (t *Table) clickLink(row playwright.Locator, name, selector string, linkIndex int, op string) error {
	h := t.Handle
	links := row.Locator(selectorOr(selector, defaultLinkSelector))

	var link playwright.Locator
	switch {
	case name != "":
		link = links.Filter(playwright.LocatorFilterOptions{HasText: containsPattern(name)}).First()
	case linkIndex > 0:
		link = links.Nth(linkIndex - 1)
	default:
		link = links.First()
	}

	if err := link.Click(playwright.LocatorClickOptions{Timeout: h.timeout()}); err != nil {
		return h.fail(op, err)
	}
	h.logAction(op, "")
	return nil
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
