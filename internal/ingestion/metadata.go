package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Source formats recognized by Load
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Metadata describes an ingested resume file
type Metadata struct {
	Source    string `json:"source,omitempty"`
	Format    string `json:"format"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned text
	Chars     int    `json:"chars"`
}

// NewMetadata creates metadata for cleaned content with the current timestamp
func NewMetadata(content, source, format string) *Metadata {
	return &Metadata{
		Source:    source,
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Chars:     len([]rune(content)),
	}
}

// ShortHash returns the first 12 hex digits of the content hash
func (m *Metadata) ShortHash() string {
	if len(m.Hash) < 12 {
		return m.Hash
	}
	return m.Hash[:12]
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
