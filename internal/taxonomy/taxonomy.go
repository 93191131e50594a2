// Package taxonomy holds the static skill vocabulary and the lookup tables that matching and
// ranking consult. A Taxonomy is built once at startup and shared read-only.
package taxonomy

import "strings"

// Category names of the seed taxonomy
const (
	Frontend = "frontend"
	Backend  = "backend"
	Database = "database"
	Cloud    = "cloud"
	AIML     = "ai_ml"
	Mobile   = "mobile"
)

// Category is a named set of lower-cased canonical tokens
type Category struct {
	Name   string   `json:"name"`
	Tokens []string `json:"tokens"`
}

// Taxonomy is the immutable configuration value passed into every matching component.
// Callers must not mutate the slices or maps it exposes.
type Taxonomy struct {
	categories      []Category
	alternatives    map[string][]string
	synonyms        map[string][]string
	aliases         map[string]string
	criticalSkills  []string
	importantSkills []string
	cityAliases     [][]string

	byToken map[string][]string
	tokens  []string
}

// Tables is the serializable form of a Taxonomy, used for defaults and file overrides
type Tables struct {
	Categories      []Category          `json:"categories,omitempty"`
	Alternatives    map[string][]string `json:"alternatives,omitempty"`
	Synonyms        map[string][]string `json:"synonyms,omitempty"`
	Aliases         map[string]string   `json:"aliases,omitempty"`
	CriticalSkills  []string            `json:"critical_skills,omitempty"`
	ImportantSkills []string            `json:"important_skills,omitempty"`
	CityAliases     [][]string          `json:"city_aliases,omitempty"`
}

// New builds a Taxonomy from tables, lower-casing every token and key
func New(t Tables) *Taxonomy {
	tx := &Taxonomy{
		categories:      make([]Category, 0, len(t.Categories)),
		alternatives:    lowerTable(t.Alternatives),
		synonyms:        lowerTable(t.Synonyms),
		aliases:         make(map[string]string, len(t.Aliases)),
		criticalSkills:  lowerList(t.CriticalSkills),
		importantSkills: lowerList(t.ImportantSkills),
		cityAliases:     make([][]string, 0, len(t.CityAliases)),
		byToken:         make(map[string][]string),
	}

	seen := make(map[string]bool)
	for _, c := range t.Categories {
		cat := Category{Name: strings.ToLower(strings.TrimSpace(c.Name)), Tokens: lowerList(c.Tokens)}
		tx.categories = append(tx.categories, cat)
		for _, token := range cat.Tokens {
			tx.byToken[token] = append(tx.byToken[token], cat.Name)
			if !seen[token] {
				seen[token] = true
				tx.tokens = append(tx.tokens, token)
			}
		}
	}
	for k, v := range t.Aliases {
		tx.aliases[strings.ToLower(strings.TrimSpace(k))] = strings.ToLower(strings.TrimSpace(v))
	}
	for _, group := range t.CityAliases {
		tx.cityAliases = append(tx.cityAliases, lowerList(group))
	}
	return tx
}

// Categories returns the categories in iteration order
func (t *Taxonomy) Categories() []Category {
	return t.categories
}

// TokensFor returns the tokens of the named category, or nil when unknown
func (t *Taxonomy) TokensFor(category string) []string {
	for _, c := range t.categories {
		if c.Name == category {
			return c.Tokens
		}
	}
	return nil
}

// CategoriesContaining returns the categories that list token verbatim (case-insensitive)
func (t *Taxonomy) CategoriesContaining(token string) []string {
	return t.byToken[strings.ToLower(strings.TrimSpace(token))]
}

// AllTokens returns every distinct token in category iteration order
func (t *Taxonomy) AllTokens() []string {
	return t.tokens
}

// Contains reports whether token is a canonical taxonomy token
func (t *Taxonomy) Contains(token string) bool {
	_, ok := t.byToken[strings.ToLower(strings.TrimSpace(token))]
	return ok
}

// Alternatives returns the substitution table
func (t *Taxonomy) Alternatives() map[string][]string {
	return t.alternatives
}

// Synonyms returns the synonym table; a key and its values form one synonym group
func (t *Taxonomy) Synonyms() map[string][]string {
	return t.synonyms
}

// Alias returns the canonical token for a known alias
func (t *Taxonomy) Alias(s string) (string, bool) {
	canonical, ok := t.aliases[s]
	return canonical, ok
}

// Aliases returns the alias table mapping surface forms to canonical tokens
func (t *Taxonomy) Aliases() map[string]string {
	return t.aliases
}

// CriticalSkills returns the skills whose absence is rated Critical
func (t *Taxonomy) CriticalSkills() []string {
	return t.criticalSkills
}

// ImportantSkills returns the skills whose absence is rated Important
func (t *Taxonomy) ImportantSkills() []string {
	return t.importantSkills
}

// CityAliases returns groups of names that denote the same city
func (t *Taxonomy) CityAliases() [][]string {
	return t.cityAliases
}

func lowerList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func lowerTable(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[strings.ToLower(strings.TrimSpace(k))] = lowerList(v)
	}
	return out
}
