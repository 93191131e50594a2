// Package matching compares a candidate's skills with a requirement set and explains the gaps.
package matching

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/resume-engine/internal/skills"
	"github.com/jonathan/resume-engine/internal/taxonomy"
	"github.com/jonathan/resume-engine/internal/types"
)

const (
	maxStrengthAreas    = 3
	maxImprovementAreas = 5
	maxRecommendations  = 4
	minStrengthSkills   = 3
	weakCategoryRate    = 0.5
	minWeakCategorySize = 2
)

// Analyzer computes MatchResults against a shared taxonomy
type Analyzer struct {
	canon *skills.Canonicalizer
	tax   *taxonomy.Taxonomy
}

// NewAnalyzer creates an analyzer. A nil canonicalizer uses the seed taxonomy.
func NewAnalyzer(canon *skills.Canonicalizer) *Analyzer {
	if canon == nil {
		canon = skills.NewCanonicalizer(nil)
	}
	return &Analyzer{
		canon: canon,
		tax:   canon.Taxonomy(),
	}
}

// RequiredSkills resolves a requirement to a list of skills. Job descriptions are scanned for
// taxonomy tokens in category iteration order.
func (a *Analyzer) RequiredSkills(req Requirement) []string {
	if !req.IsText() {
		out := make([]string, 0, len(req.Skills()))
		for _, s := range req.Skills() {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}

	text := strings.ToLower(req.Description())
	found := make([]string, 0)
	for _, token := range a.tax.AllTokens() {
		if strings.Contains(text, token) {
			found = append(found, token)
		}
	}
	return found
}

// CalculateSkillMatch scores candidate against req
func (a *Analyzer) CalculateSkillMatch(candidate types.SkillSet, req Requirement) types.MatchResult {
	candidate.Normalize()
	required := a.RequiredSkills(req)
	flat := lowerAll(candidate.All())

	result := types.MatchResult{
		MatchedSkills:     []types.MatchedSkill{},
		MissingSkills:     []types.MissingSkill{},
		CategoryBreakdown: map[string]types.CategoryStats{},
	}

	matched := make(map[string]bool, len(required))
	similaritySum := 0
	for _, skill := range required {
		if found, ok := a.findCandidateSkill(skill, flat); ok {
			similarity := a.canon.Similarity(found, skill)
			similaritySum += similarity
			matched[skill] = true
			result.MatchedSkills = append(result.MatchedSkills, types.MatchedSkill{
				Skill:          skill,
				Required:       true,
				CandidateLevel: CandidateLevel(skill, candidate),
				RequiredLevel:  types.LevelRequired,
				Similarity:     similarity,
			})
			continue
		}
		result.MissingSkills = append(result.MissingSkills, types.MissingSkill{
			Skill:        skill,
			Importance:   a.Importance(skill),
			Alternatives: a.canon.FindAlternatives(skill, flat, skills.DefaultMaxAlternatives),
		})
	}

	result.MatchPercentage = MatchPercentage(len(result.MatchedSkills), len(required))
	result.CategoryBreakdown = a.categoryBreakdown(required, matched)
	strengths := a.strengthAreas(candidate)
	result.StrengthAreas = a.titles(strengths)
	result.ImprovementAreas = a.improvementAreas(result.CategoryBreakdown, result.MissingSkills)
	result.Recommendations = a.recommendations(result.MissingSkills, result.StrengthAreas, flat)
	result.FitScore = FitScore(similaritySum, len(required), candidate)
	return result
}

// findCandidateSkill returns the first candidate skill that matches required, falling back to the
// first candidate skill sharing its synonym group
func (a *Analyzer) findCandidateSkill(required string, candidate []string) (string, bool) {
	for _, c := range candidate {
		if skills.Matches(c, required) {
			return c, true
		}
	}
	for _, c := range candidate {
		if a.canon.SameSynonymGroup(c, required) {
			return c, true
		}
	}
	return "", false
}

// CandidateLevel grades proficiency by how many of technical, frameworks and tools mention skill
func CandidateLevel(skill string, candidate types.SkillSet) string {
	count := 0
	for _, list := range [][]string{candidate.Technical, candidate.Frameworks, candidate.Tools} {
		if skills.MatchesAny(skill, list) {
			count++
		}
	}
	switch {
	case count >= 2:
		return types.LevelAdvanced
	case count == 1:
		return types.LevelIntermediate
	default:
		return types.LevelBeginner
	}
}

// Importance rates a missing skill against the critical and important lists
func (a *Analyzer) Importance(skill string) string {
	lower := strings.ToLower(skill)
	if containsAny(lower, a.tax.CriticalSkills()) {
		return types.ImportanceCritical
	}
	if containsAny(lower, a.tax.ImportantSkills()) {
		return types.ImportanceImportant
	}
	return types.ImportanceNiceToHave
}

// MatchPercentage returns matched/total as a rounded percentage, 0 when nothing is required
func MatchPercentage(matched, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(matched) / float64(total) * 100))
}

// FitScore combines the average similarity of required skills with the breadth of the candidate's skills
func FitScore(similaritySum, totalRequired int, candidate types.SkillSet) types.FitScore {
	technical := 100
	if totalRequired > 0 {
		technical = min(100, int(math.Round(float64(similaritySum)/float64(totalRequired))))
	}
	experience := BreadthScore(distinctCount(candidate.Technical, candidate.Frameworks, candidate.Tools, candidate.Databases))
	return types.FitScore{
		Technical:  technical,
		Experience: experience,
		Overall:    int(math.Round(float64(technical+experience) / 2)),
	}
}

// BreadthScore maps a distinct skill count to a 20-100 score
func BreadthScore(count int) int {
	switch {
	case count >= 15:
		return 100
	case count >= 10:
		return 80
	case count >= 5:
		return 60
	default:
		return max(20, count*10)
	}
}

func (a *Analyzer) categoryBreakdown(required []string, matched map[string]bool) map[string]types.CategoryStats {
	breakdown := make(map[string]types.CategoryStats)
	for _, cat := range a.tax.Categories() {
		stats := types.CategoryStats{}
		for _, skill := range required {
			if !skills.MatchesAny(skill, cat.Tokens) {
				continue
			}
			stats.Total++
			if matched[skill] {
				stats.Matched++
			}
		}
		if stats.Total > 0 {
			breakdown[cat.Name] = stats
		}
	}
	return breakdown
}

// strengthAreas returns category names where the candidate has at least three matching skills
func (a *Analyzer) strengthAreas(candidate types.SkillSet) []string {
	pool := distinct(candidate.Technical, candidate.Frameworks, candidate.Tools)
	areas := make([]string, 0, maxStrengthAreas)
	for _, cat := range a.tax.Categories() {
		if len(areas) == maxStrengthAreas {
			break
		}
		count := 0
		for _, s := range pool {
			if skills.MatchesAny(s, cat.Tokens) {
				count++
			}
		}
		if count >= minStrengthSkills {
			areas = append(areas, cat.Name)
		}
	}
	return areas
}

func (a *Analyzer) improvementAreas(breakdown map[string]types.CategoryStats, missing []types.MissingSkill) []string {
	areas := make([]string, 0, maxImprovementAreas)
	for _, cat := range a.tax.Categories() {
		if len(areas) == maxImprovementAreas {
			return areas
		}
		stats, ok := breakdown[cat.Name]
		if !ok || stats.Total < minWeakCategorySize {
			continue
		}
		if float64(stats.Matched)/float64(stats.Total) < weakCategoryRate {
			areas = append(areas, a.displayName(cat.Name))
		}
	}
	for _, m := range missing {
		if len(areas) == maxImprovementAreas {
			break
		}
		if m.Importance == types.ImportanceCritical {
			areas = append(areas, "Learn "+m.Skill)
		}
	}
	return areas
}

func (a *Analyzer) titles(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = a.displayName(n)
	}
	return out
}

func (a *Analyzer) displayName(category string) string {
	// Casers carry state and are not shared between goroutines
	return cases.Title(language.English).String(strings.ReplaceAll(category, "_", " "))
}

func lowerAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func distinct(lists ...[]string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, list := range lists {
		for _, s := range lowerAll(list) {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

func distinctCount(lists ...[]string) int {
	return len(distinct(lists...))
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}
