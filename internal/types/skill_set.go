package types

import "strings"

// SkillSet groups free-form skill strings into six fixed categories.
// Strings are kept as authored by the extractor until canonicalized.
type SkillSet struct {
	Technical  []string `json:"technical"`
	Frameworks []string `json:"frameworks"`
	Languages  []string `json:"languages"`
	Tools      []string `json:"tools"`
	Databases  []string `json:"databases"`
	Cloud      []string `json:"cloud"`
}

// Normalize replaces nil categories with empty slices and drops blank entries
func (s *SkillSet) Normalize() {
	for _, list := range s.lists() {
		*list = compact(*list)
	}
}

// All returns every skill across the six categories, in category order
func (s SkillSet) All() []string {
	all := make([]string, 0, s.Count())
	for _, list := range s.lists() {
		all = append(all, *list...)
	}
	return all
}

// Count returns the number of skills across all six categories
func (s SkillSet) Count() int {
	return len(s.Technical) + len(s.Frameworks) + len(s.Languages) +
		len(s.Tools) + len(s.Databases) + len(s.Cloud)
}

// Map applies fn to every category and returns the resulting set
func (s SkillSet) Map(fn func([]string) []string) SkillSet {
	return SkillSet{
		Technical:  fn(s.Technical),
		Frameworks: fn(s.Frameworks),
		Languages:  fn(s.Languages),
		Tools:      fn(s.Tools),
		Databases:  fn(s.Databases),
		Cloud:      fn(s.Cloud),
	}
}

func (s *SkillSet) lists() []*[]string {
	return []*[]string{&s.Technical, &s.Frameworks, &s.Languages, &s.Tools, &s.Databases, &s.Cloud}
}

// compact trims entries and drops blank ones, never returning nil
func compact(list []string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
