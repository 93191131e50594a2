// Package skills compares and canonicalizes skill names against the taxonomy.
package skills

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jonathan/resume-engine/internal/taxonomy"
	"github.com/jonathan/resume-engine/internal/types"
)

// Similarity tiers returned by Canonicalizer.Similarity
const (
	SimilarityExact     = 100
	SimilaritySubstring = 80
	SimilaritySynonym   = 70
	SimilarityNone      = 0
)

// DefaultMaxAlternatives caps FindAlternatives when no explicit limit is given
const DefaultMaxAlternatives = 3

// minContainedTokenLen is the shortest taxonomy token Canonicalize will find inside a longer string
const minContainedTokenLen = 3

// Canonicalizer answers skill equivalence questions using a shared taxonomy
type Canonicalizer struct {
	tax *taxonomy.Taxonomy
}

// NewCanonicalizer creates a canonicalizer over tax. A nil taxonomy uses the seed defaults.
func NewCanonicalizer(tax *taxonomy.Taxonomy) *Canonicalizer {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Canonicalizer{tax: tax}
}

// Taxonomy returns the taxonomy the canonicalizer was built with
func (c *Canonicalizer) Taxonomy() *taxonomy.Taxonomy {
	return c.tax
}

// Matches reports whether a and b are equal ignoring case, or either contains the other.
// Empty strings never match.
func Matches(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// MatchesAny reports whether skill matches any entry of list
func MatchesAny(skill string, list []string) bool {
	for _, s := range list {
		if Matches(skill, s) {
			return true
		}
	}
	return false
}

// FindAlternatives returns up to maxCount configured alternatives for missing that the
// candidate already has. maxCount <= 0 uses DefaultMaxAlternatives.
func (c *Canonicalizer) FindAlternatives(missing string, candidateSkills []string, maxCount int) []string {
	if maxCount <= 0 {
		maxCount = DefaultMaxAlternatives
	}

	found := make([]string, 0, maxCount)
	alternatives := c.tax.Alternatives()[strings.ToLower(strings.TrimSpace(missing))]
	for _, alt := range alternatives {
		if len(found) == maxCount {
			break
		}
		if MatchesAny(alt, candidateSkills) {
			found = append(found, alt)
		}
	}
	return found
}

// Similarity grades how closely a candidate skill covers a required one:
// 100 exact, 80 substring either way, 70 same synonym group, 0 otherwise.
func (c *Canonicalizer) Similarity(candidate, required string) int {
	cand := strings.ToLower(strings.TrimSpace(candidate))
	req := strings.ToLower(strings.TrimSpace(required))
	if cand == "" || req == "" {
		return SimilarityNone
	}
	if cand == req {
		return SimilarityExact
	}
	if strings.Contains(cand, req) || strings.Contains(req, cand) {
		return SimilaritySubstring
	}
	if c.SameSynonymGroup(cand, req) {
		return SimilaritySynonym
	}
	return SimilarityNone
}

// SameSynonymGroup reports whether a and b both belong to one synonym group.
// A group is a synonym key together with its listed values.
func (c *Canonicalizer) SameSynonymGroup(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	for key, values := range c.tax.Synonyms() {
		if inGroup(a, key, values) && inGroup(b, key, values) {
			return true
		}
	}
	return false
}

func inGroup(s, key string, values []string) bool {
	if s == key {
		return true
	}
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}

// Canonicalize maps a raw skill name to its taxonomy token. known is false when no alias,
// token or contained token applies, in which case the cleaned input is returned.
func (c *Canonicalizer) Canonicalize(s string) (token string, known bool) {
	cleaned := clean(s)
	if cleaned == "" {
		return "", false
	}
	if canonical, ok := c.tax.Alias(cleaned); ok {
		return canonical, true
	}
	if c.tax.Contains(cleaned) {
		return cleaned, true
	}

	best := ""
	for _, t := range c.tax.AllTokens() {
		if len(t) < minContainedTokenLen || len(t) <= len(best) {
			continue
		}
		if strings.Contains(cleaned, t) {
			best = t
		}
	}
	if best != "" {
		return best, true
	}
	return cleaned, false
}

// CanonicalizeList canonicalizes every entry and drops duplicates, keeping first occurrence order
func (c *Canonicalizer) CanonicalizeList(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, s := range list {
		token, _ := c.Canonicalize(s)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		out = append(out, token)
	}
	return out
}

// CanonicalizeSet canonicalizes each category of set independently
func (c *Canonicalizer) CanonicalizeSet(set types.SkillSet) types.SkillSet {
	return set.Map(c.CanonicalizeList)
}

func clean(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}
