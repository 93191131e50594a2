package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelector = "p, li, h1, h2, h3, h4, h5, h6, tr, dt, dd, blockquote, pre"

// FromHTML extracts the visible text of an HTML resume. Block elements end up on their own
// lines and list items keep a "- " bullet.
func FromHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, template, svg, head").Remove()

	root := doc.Find("main").First()
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	var lines []string
	blocks := root.Find(blockSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		// Nested blocks are emitted by their innermost element
		return s.Find(blockSelector).Length() == 0
	})
	blocks.Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		switch {
		case goquery.NodeName(s) == "li":
			text = "- " + text
		case strings.HasPrefix(goquery.NodeName(s), "h"):
			lines = append(lines, "")
		}
		lines = append(lines, text)
	})

	if len(lines) == 0 {
		// Markup without block elements
		for _, line := range strings.Split(root.Text(), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
