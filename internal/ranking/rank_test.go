package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-engine/internal/types"
)

func TestRank_OrdersByScoreDescending(t *testing.T) {
	s := NewScorer(nil)
	profiles := []types.CandidateProfile{
		{Name: "frontend", Skills: types.SkillSet{Frameworks: []string{"react"}}},
		{Name: "backend", Skills: types.SkillSet{Languages: []string{"go", "python"}}},
		{Name: "empty"},
	}

	ranked := s.Rank(profiles, types.SearchIntent{Skills: []string{"go", "python"}})

	require.Len(t, ranked, 3)
	assert.Equal(t, "backend", ranked[0].Profile.Name)
	assert.Equal(t, 0.4, ranked[0].Score.Score)
}

func TestRank_StableForTies(t *testing.T) {
	s := NewScorer(nil)
	profiles := []types.CandidateProfile{
		{Name: "a", Skills: types.SkillSet{Languages: []string{"rust"}}},
		{Name: "b"},
		{Name: "c", Skills: types.SkillSet{Languages: []string{"java"}}},
	}

	ranked := s.Rank(profiles, types.SearchIntent{Skills: []string{"python"}})

	require.Len(t, ranked, 3)
	// a and c both score base quality 0.2, b scores 0
	assert.Equal(t, []string{"a", "c", "b"}, names(ranked))
}

func TestRank_Empty(t *testing.T) {
	ranked := NewScorer(nil).Rank(nil, types.SearchIntent{})
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func names(ranked []RankedCandidate) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Profile.Name
	}
	return out
}
