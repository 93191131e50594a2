package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-engine/internal/schemas"
)

// LoadError represents an error reading or validating a taxonomy override file
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("taxonomy load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("taxonomy load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load reads a JSON override file and merges it over the seed tables.
// An empty path returns the seed taxonomy.
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read file %s", path), Cause: err}
	}

	if err := schemas.Validate(schemas.Taxonomy, content); err != nil {
		return nil, &LoadError{Message: "schema validation failed", Cause: err}
	}

	var override Tables
	if err := json.Unmarshal(content, &override); err != nil {
		return nil, &LoadError{Message: "failed to unmarshal JSON", Cause: err}
	}

	return New(Merge(DefaultTables(), override)), nil
}

// Merge overlays override on base. Categories are matched by name: a named category in the
// override replaces the seed one, unknown names are appended. Tables that the override
// provides replace the seed table entirely.
func Merge(base, override Tables) Tables {
	merged := base

	if len(override.Categories) > 0 {
		merged.Categories = make([]Category, 0, len(base.Categories)+len(override.Categories))
		replaced := make(map[string]Category, len(override.Categories))
		for _, c := range override.Categories {
			replaced[c.Name] = c
		}
		for _, c := range base.Categories {
			if r, ok := replaced[c.Name]; ok {
				merged.Categories = append(merged.Categories, r)
				delete(replaced, c.Name)
				continue
			}
			merged.Categories = append(merged.Categories, c)
		}
		for _, c := range override.Categories {
			if _, ok := replaced[c.Name]; ok {
				merged.Categories = append(merged.Categories, c)
			}
		}
	}
	if override.Alternatives != nil {
		merged.Alternatives = override.Alternatives
	}
	if override.Synonyms != nil {
		merged.Synonyms = override.Synonyms
	}
	if override.Aliases != nil {
		merged.Aliases = override.Aliases
	}
	if override.CriticalSkills != nil {
		merged.CriticalSkills = override.CriticalSkills
	}
	if override.ImportantSkills != nil {
		merged.ImportantSkills = override.ImportantSkills
	}
	if override.CityAliases != nil {
		merged.CityAliases = override.CityAliases
	}
	return merged
}
