package element

import "strings"

// quoteMarker separates a human label from the value to match inside a
// row target, as in "Status' shipped".
const quoteMarker = "'"

// defaultMinColumns is the narrowest row the meta matchers still treat
// as a data row.
const defaultMinColumns = 2

// normalizeTarget returns the comparable part of a match target. When
// the target carries a quote marker only the text after the first one
// is compared; otherwise the whole target is, trimmed either way.
func normalizeTarget(target string) string {
	if i := strings.Index(target, quoteMarker); i >= 0 {
		return strings.TrimSpace(target[i+len(quoteMarker):])
	}
	return strings.TrimSpace(target)
}

func normalizeTargets(targets []string) []string {
	out := make([]string, len(targets))
	for i, t := range targets {
		out[i] = normalizeTarget(t)
	}
	return out
}

// splitRowCells splits a row's aggregate inner text into cells on tabs
// and newlines. Trailing empty cells are dropped, interior ones kept.
func splitRowCells(raw string) []string {
	cells := strings.Split(strings.ReplaceAll(raw, "\n", "\t"), "\t")
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// cellMatches compares one cell against one target, trimmed and
// case-insensitive. Exact requires full equality, otherwise the cell
// only has to contain the target.
func cellMatches(cell, target string, exact bool) bool {
	c := strings.ToLower(strings.TrimSpace(cell))
	t := strings.ToLower(strings.TrimSpace(target))
	if exact {
		return c == t
	}
	return strings.Contains(c, t)
}

// rowMatches reports whether every target is matched by at least one
// cell of the row. No targets matches any row.
func rowMatches(cells, targets []string, exact bool) bool {
	for _, target := range targets {
		found := false
		for _, cell := range cells {
			if cellMatches(cell, target, exact) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchRowIndices returns the positions of the rows matching all
// targets. Rows that split into one cell or fewer are treated as
// headers or separators and skipped, and the returned indices count
// positions within the remaining data rows.
func matchRowIndices(rows []string, targets []string, exact bool) []int {
	wanted := normalizeTargets(targets)
	var indices []int
	kept := 0
	for _, raw := range rows {
		cells := splitRowCells(raw)
		if len(cells) <= 1 {
			continue
		}
		if rowMatches(cells, wanted, exact) {
			indices = append(indices, kept)
		}
		kept++
	}
	return indices
}

// metaMatchIndices is the cell-list counterpart of matchRowIndices:
// rows arrive already split into cells and ones narrower than
// minColumns are skipped. Indices count positions within the rows that
// remain.
func metaMatchIndices(rows [][]string, targets []string, exact bool, minColumns int) []int {
	if minColumns <= 0 {
		minColumns = defaultMinColumns
	}
	wanted := normalizeTargets(targets)
	var indices []int
	kept := 0
	for _, cells := range rows {
		if len(cells) < minColumns {
			continue
		}
		if rowMatches(cells, wanted, exact) {
			indices = append(indices, kept)
		}
		kept++
	}
	return indices
}

// headerIndex returns the position of the named column among the
// header cells, or -1 when no header matches. Comparison is trimmed
// and case-insensitive, by containment unless exact is set.
func headerIndex(headers []string, name string, exact bool) int {
	for i, hdr := range headers {
		if cellMatches(hdr, name, exact) {
			return i
		}
	}
	return -1
}

// rawRowIndex maps a position among data rows back to the structural
// row index, skipping the same rows matchRowIndices skips. Returns -1
// when dataIndex runs past the data rows.
func rawRowIndex(rowTexts []string, dataIndex int) int {
	if dataIndex < 0 {
		return -1
	}
	kept := 0
	for i, raw := range rowTexts {
		if len(splitRowCells(raw)) <= 1 {
			continue
		}
		if kept == dataIndex {
			return i
		}
		kept++
	}
	return -1
}

// rawMetaRowIndex is rawRowIndex for cell-list rows, honoring the same
// minColumns cutoff as metaMatchIndices.
func rawMetaRowIndex(rows [][]string, dataIndex, minColumns int) int {
	if minColumns <= 0 {
		minColumns = defaultMinColumns
	}
	if dataIndex < 0 {
		return -1
	}
	kept := 0
	for i, cells := range rows {
		if len(cells) < minColumns {
			continue
		}
		if kept == dataIndex {
			return i
		}
		kept++
	}
	return -1
}
