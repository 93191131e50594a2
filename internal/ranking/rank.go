package ranking

import (
	"sort"

	"github.com/jonathan/resume-engine/internal/types"
)

// RankedCandidate is a profile with its relevance for one search
type RankedCandidate struct {
	Profile types.CandidateProfile `json:"profile"`
	Score   types.RankingScore     `json:"score"`
}

// Rank scores every profile against intent and returns them by descending score.
// Profiles with equal scores keep their input order.
func (s *Scorer) Rank(profiles []types.CandidateProfile, intent types.SearchIntent) []RankedCandidate {
	ranked := make([]RankedCandidate, 0, len(profiles))
	for _, p := range profiles {
		ranked = append(ranked, RankedCandidate{
			Profile: p,
			Score:   s.Score(p, intent.Skills, intent.Requirements, intent.Filters),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Score > ranked[j].Score.Score
	})
	return ranked
}
