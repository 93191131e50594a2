// Package ranking scores candidate profiles against search criteria and orders result sets.
package ranking

import (
	"math"
	"strings"

	"github.com/jonathan/resume-engine/internal/skills"
	"github.com/jonathan/resume-engine/internal/taxonomy"
	"github.com/jonathan/resume-engine/internal/types"
)

// Term weights out of 100
const (
	skillsWeight       = 40.0
	requirementsWeight = 30.0
	locationWeight     = 10.0
	baseQualityPoints  = 20.0
)

// Scorer computes RankingScores using the taxonomy's city aliases
type Scorer struct {
	tax *taxonomy.Taxonomy
}

// NewScorer creates a scorer. A nil taxonomy uses the seed defaults.
func NewScorer(tax *taxonomy.Taxonomy) *Scorer {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Scorer{tax: tax}
}

// Score rates profile for the extracted skills, requirements and filters
func (s *Scorer) Score(profile types.CandidateProfile, wantedSkills, requirements []string, filters types.SearchFilters) types.RankingScore {
	score := types.RankingScore{
		Skills:       SkillsScore(profile.Skills.All(), wantedSkills),
		Requirements: RequirementsScore(profile, requirements),
		Experience:   ExperienceScore(profile.Experience, filters.Experience),
		Location:     s.LocationScore(profile.Location, filters.Location),
	}

	raw := score.Skills + score.Requirements + score.Experience + score.Location
	if raw == 0 {
		score.BaseQuality = BaseQualityScore(profile)
		raw = score.BaseQuality
	}
	score.Score = math.Min(1, math.Max(0, raw/100))
	return score
}

// SkillsScore awards up to 40 points for the share of wanted skills the profile has
func SkillsScore(profileSkills, wanted []string) float64 {
	if len(wanted) == 0 {
		return 0
	}
	matched := 0
	for _, w := range wanted {
		if skills.MatchesAny(w, profileSkills) {
			matched++
		}
	}
	return float64(matched) / float64(len(wanted)) * skillsWeight
}

// RequirementsScore awards up to 30 points for requirements found in the profile's title,
// highlights or AI tags
func RequirementsScore(profile types.CandidateProfile, requirements []string) float64 {
	total := 0
	matched := 0
	haystack := requirementHaystack(profile)
	for _, req := range requirements {
		req = strings.ToLower(strings.TrimSpace(req))
		if req == "" {
			continue
		}
		total++
		for _, field := range haystack {
			if strings.Contains(field, req) {
				matched++
				break
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total) * requirementsWeight
}

func requirementHaystack(profile types.CandidateProfile) []string {
	fields := make([]string, 0, 1+len(profile.Highlights)+len(profile.AIDomains)+len(profile.AIFrameworks))
	fields = append(fields, strings.ToLower(profile.Title))
	for _, list := range [][]string{profile.Highlights, profile.AIDomains, profile.AIFrameworks} {
		for _, s := range list {
			fields = append(fields, strings.ToLower(s))
		}
	}
	return fields
}

// ExperienceScore awards up to 20 points for closeness to the wanted years. No target scores 0.
func ExperienceScore(years float64, target *float64) float64 {
	if target == nil {
		return 0
	}
	diff := math.Abs(years - *target)
	switch {
	case diff <= 2:
		return 20
	case diff <= 4:
		return 15
	case diff <= 6:
		return 10
	case years >= 0.7**target:
		return 5
	default:
		return 0
	}
}

// LocationScore awards 10 points when the locations agree directly or through a city alias
func (s *Scorer) LocationScore(profileLocation, wanted string) float64 {
	p := strings.ToLower(strings.TrimSpace(profileLocation))
	w := strings.ToLower(strings.TrimSpace(wanted))
	if p == "" || w == "" {
		return 0
	}
	if p == w {
		return locationWeight
	}
	pg, pok := cityGroup(s.tax, p)
	wg, wok := cityGroup(s.tax, w)
	if pok && wok && pg == wg {
		return locationWeight
	}
	return 0
}

// cityGroup returns the index of the alias group named in location
func cityGroup(tax *taxonomy.Taxonomy, location string) (int, bool) {
	for i, group := range tax.CityAliases() {
		for _, alias := range group {
			if containsWord(location, alias) {
				return i, true
			}
		}
	}
	return 0, false
}

// BaseQualityScore rates profile completeness when no search criterion applies
func BaseQualityScore(profile types.CandidateProfile) float64 {
	score := 0.0
	for _, present := range []bool{
		profile.Skills.Count() > 0,
		len(profile.Highlights) > 0,
		len(profile.AIFrameworks) > 0,
		len(profile.AIDomains) > 0,
		profile.Experience > 0,
	} {
		if present {
			score += baseQualityPoints
		}
	}
	return score
}
