package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// VisibleText returns the rendered text of the primary page with
// scripts, styles and other non-rendered elements removed. Lines are
// trimmed and blank lines dropped, which keeps assertions on page copy
// independent of markup layout.
func (s *Session) VisibleText() (string, error) {
	if s == nil || s.primary == nil {
		return "", ErrNoSession
	}

	if err := s.WaitReady(s.primary); err != nil {
		return "", err
	}

	content, err := s.primary.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}

	return visibleText(content)
}

// visibleText extracts rendered text from raw HTML.
func visibleText(rawHTML string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var builder strings.Builder
	collectText(doc, &builder)
	return collapseLines(builder.String()), nil
}

// collectText walks the node tree appending text content, skipping
// elements that never render.
func collectText(n *html.Node, builder *strings.Builder) {
	if n.Type == html.CommentNode {
		return
	}

	if n.Type == html.ElementNode && isHiddenElement(strings.ToLower(n.Data)) {
		return
	}

	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			builder.WriteString(text)
			builder.WriteString(" ")
		}
		return
	}

	if n.Type == html.ElementNode && isLineBreaking(strings.ToLower(n.Data)) {
		builder.WriteString("\n")
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, builder)
	}
}

// collapseLines trims every line and drops blank ones
func collapseLines(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

// isHiddenElement returns true for elements whose content never renders
func isHiddenElement(tagName string) bool {
	hidden := map[string]bool{
		"head":     true,
		"script":   true,
		"style":    true,
		"noscript": true,
		"iframe":   true,
		"embed":    true,
		"object":   true,
		"template": true,
		"svg":      true,
	}
	return hidden[tagName]
}

// isLineBreaking returns true for elements that start a new line of text
func isLineBreaking(tagName string) bool {
	blocks := map[string]bool{
		"div":        true,
		"p":          true,
		"section":    true,
		"article":    true,
		"header":     true,
		"footer":     true,
		"nav":        true,
		"main":       true,
		"aside":      true,
		"h1":         true,
		"h2":         true,
		"h3":         true,
		"h4":         true,
		"h5":         true,
		"h6":         true,
		"ul":         true,
		"ol":         true,
		"li":         true,
		"table":      true,
		"tr":         true,
		"td":         true,
		"th":         true,
		"form":       true,
		"fieldset":   true,
		"blockquote": true,
		"pre":        true,
		"br":         true,
		"hr":         true,
	}
	return blocks[tagName]
}
