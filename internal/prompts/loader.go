// Package prompts holds the oracle prompt fragments. They are embedded at compile time and
// parsed once as text/template definitions.
package prompts

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"text/template"
)

//go:embed extraction.json
var extractionJSON []byte

type set struct {
	raw  map[string]string
	tmpl *template.Template
}

var load = sync.OnceValues(func() (*set, error) {
	var raw map[string]string
	if err := json.Unmarshal(extractionJSON, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse embedded prompts: %w", err)
	}

	root := template.New("prompts").Option("missingkey=error")
	for key, body := range raw {
		if _, err := root.New(key).Parse(body); err != nil {
			return nil, fmt.Errorf("failed to parse prompt %q: %w", key, err)
		}
	}
	return &set{raw: raw, tmpl: root}, nil
})

// Text returns the unrendered prompt stored under key
func Text(key string) (string, error) {
	s, err := load()
	if err != nil {
		return "", err
	}
	body, ok := s.raw[key]
	if !ok {
		return "", fmt.Errorf("prompt %q not found", key)
	}
	return body, nil
}

// MustText is Text for keys known to be embedded. It panics on a missing key.
func MustText(key string) string {
	body, err := Text(key)
	if err != nil {
		panic(err)
	}
	return body
}

// Render executes the prompt under key with data
func Render(key string, data any) (string, error) {
	s, err := load()
	if err != nil {
		return "", err
	}
	t := s.tmpl.Lookup(key)
	if t == nil {
		return "", fmt.Errorf("prompt %q not found", key)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %q: %w", key, err)
	}
	return buf.String(), nil
}

// Keys lists the embedded prompt keys in sorted order
func Keys() []string {
	s, err := load()
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(s.raw))
	for k := range s.raw {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
