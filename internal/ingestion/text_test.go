package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"line endings", "Line 1\r\nLine 2\rLine 3", "Line 1\nLine 2\nLine 3"},
		{"inline whitespace", "Senior    Engineer\t\tAcme", "Senior Engineer Acme"},
		{"blank line runs", "Experience\n\n\n\n\nEducation", "Experience\n\nEducation"},
		{"whitespace only lines", "A\n   \t\nB", "A\n\nB"},
		{"nested bullets keep indent", "- Go\n    - gRPC  services", "- Go\n    - gRPC services"},
		{"unicode bullets", "Skills\n  • Led   migration", "Skills\n  • Led migration"},
		{"paragraph indentation dropped", "    Summary text", "Summary text"},
		{"non-breaking spaces", "Jane\u00a0\u00a0Doe", "Jane Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(CleanText(input)))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "efficient office", Normalize("e\ufb03cient o\ufb03ce"))
	assert.Equal(t, "Docker", Normalize("\uff24\uff4f\uff43\uff4b\uff45\uff52"))
	assert.Equal(t, "ab\ncd", Normalize("a\x00b\n\ufeffc\u200bd"))
}

func TestLoad_Text(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane   Doe\r\n\r\n\r\n\r\nGo developer"), 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nGo developer", doc.Text)
	assert.Equal(t, FormatText, doc.Metadata.Format)
	assert.Equal(t, path, doc.Metadata.Source)
	assert.Len(t, doc.Metadata.Hash, 64)
	assert.Len(t, doc.Metadata.ShortHash(), 12)
	assert.Equal(t, len([]rune(doc.Text)), doc.Metadata.Chars)
}

func TestLoad_HTML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.HTML")
	html := `<html><head><title>x</title></head><body><h1>Jane Doe</h1><ul><li>Go</li><li>Kubernetes</li></ul></body></html>`
	require.NoError(t, os.WriteFile(path, []byte(html), 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, doc.Metadata.Format)
	assert.Equal(t, "Jane Doe\n- Go\n- Kubernetes", doc.Text)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "file not found"))
}
