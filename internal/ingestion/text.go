// Package ingestion turns raw resume files into clean text for the extractor.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	inlineSpace   = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	excessBlank   = regexp.MustCompile(`\n\n\n+`)
	bulletMarkers = []string{"- ", "* ", "• ", "· ", "▪ ", "‣ "}
)

// CleanText normalizes line endings and whitespace while keeping headings, bullets and
// paragraph breaks. Runs of blank lines collapse to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = excessBlank.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	// Bullets keep their nesting depth, everything else is flush left
	if isBulletLine(trimmed) {
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		return strings.Repeat(" ", indent) + inlineSpace.ReplaceAllString(trimmed, " ")
	}
	return inlineSpace.ReplaceAllString(trimmed, " ")
}

func isBulletLine(trimmed string) bool {
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// Normalize applies NFKC normalization and drops control characters other than newlines and
// tabs. Ligatures and full-width characters from PDF converters become plain text.
func Normalize(content string) string {
	content = norm.NFKC.String(content)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' {
			return r
		}
		if unicode.IsControl(r) || r == '\ufeff' || r == '\u200b' {
			return -1
		}
		return r
	}, content)
}

// Prepare runs Normalize then CleanText
func Prepare(content string) string {
	return CleanText(Normalize(content))
}

// Document is the cleaned text of one file with its metadata
type Document struct {
	Text     string
	Metadata *Metadata
}

// Load reads a resume file and returns its cleaned text. HTML files are reduced to their
// visible text; every other extension is read as plain text.
func Load(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	format := FormatText
	text := string(content)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		format = FormatHTML
		if text, err = FromHTML(text); err != nil {
			return nil, err
		}
	case ".md", ".markdown":
		format = FormatMarkdown
	}

	cleaned := Prepare(text)
	return &Document{
		Text:     cleaned,
		Metadata: NewMetadata(cleaned, path, format),
	}, nil
}
