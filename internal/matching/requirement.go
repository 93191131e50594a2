package matching

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RequirementError reports a requirement that is neither a skill list nor a job description
type RequirementError struct {
	Message string
	Cause   error
}

func (e *RequirementError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid requirement: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid requirement: %s", e.Message)
}

func (e *RequirementError) Unwrap() error {
	return e.Cause
}

// Requirement is either an explicit list of required skills or a free-text job description
type Requirement struct {
	skills      []string
	description string
	isText      bool
}

// FromSkills builds a requirement from an explicit skill list
func FromSkills(skills ...string) Requirement {
	return Requirement{skills: skills}
}

// FromJobDescription builds a requirement from job description text
func FromJobDescription(text string) Requirement {
	return Requirement{description: text, isText: true}
}

// IsText reports whether the requirement is a job description
func (r Requirement) IsText() bool {
	return r.isText
}

// Skills returns the explicit skill list, or nil for a job description
func (r Requirement) Skills() []string {
	return r.skills
}

// Description returns the job description text, or "" for a skill list
func (r Requirement) Description() string {
	return r.description
}

// UnmarshalJSON accepts a JSON array of strings or a JSON string
func (r *Requirement) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &RequirementError{Message: "empty value"}
	}

	switch trimmed[0] {
	case '[':
		var skills []string
		if err := json.Unmarshal(trimmed, &skills); err != nil {
			return &RequirementError{Message: "skill list must contain only strings", Cause: err}
		}
		*r = FromSkills(skills...)
		return nil
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return &RequirementError{Message: "malformed job description", Cause: err}
		}
		*r = FromJobDescription(text)
		return nil
	default:
		return &RequirementError{Message: fmt.Sprintf("expected an array of skills or a job description, got %s", describeJSON(trimmed))}
	}
}

// MarshalJSON writes the requirement back in the shape it was given
func (r Requirement) MarshalJSON() ([]byte, error) {
	if r.isText {
		return json.Marshal(r.description)
	}
	if r.skills == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.skills)
}

func describeJSON(data []byte) string {
	switch {
	case data[0] == '{':
		return "object"
	case bytes.Equal(data, []byte("null")):
		return "null"
	case bytes.Equal(data, []byte("true")) || bytes.Equal(data, []byte("false")):
		return "boolean"
	case strings.ContainsRune("-0123456789", rune(data[0])):
		return "number"
	default:
		return "invalid JSON"
	}
}
