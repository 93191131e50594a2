package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-engine/internal/types"
)

func floatPtr(f float64) *float64 { return &f }

func sampleProfile() types.CandidateProfile {
	return types.CandidateProfile{
		Name:     "Priya Nair",
		Title:    "Machine Learning Lead",
		Location: "Bengaluru, India",
		Skills: types.SkillSet{
			Languages:  []string{"python", "go"},
			Frameworks: []string{"pytorch", "react"},
		},
		Highlights:   []string{"Shipped an LLM search assistant", "Led a team of 5"},
		AIFrameworks: []string{"pytorch"},
		AIDomains:    []string{"nlp", "llm"},
		Experience:   7.5,
	}
}

func TestSkillsScore(t *testing.T) {
	tests := []struct {
		name    string
		profile []string
		wanted  []string
		want    float64
	}{
		{"no wanted skills", []string{"python"}, nil, 0},
		{"all matched", []string{"python", "react"}, []string{"Python", "React"}, 40},
		{"partial", []string{"python", "react"}, []string{"python", "react", "rust"}, 80.0 / 3},
		{"substring counts", []string{"postgresql"}, []string{"sql"}, 40},
		{"none matched", []string{"python"}, []string{"rust"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SkillsScore(tt.profile, tt.wanted), 1e-9)
		})
	}
}

func TestRequirementsScore(t *testing.T) {
	p := sampleProfile()

	assert.Equal(t, 0.0, RequirementsScore(p, nil))
	assert.Equal(t, 0.0, RequirementsScore(p, []string{" ", ""}))
	assert.Equal(t, 30.0, RequirementsScore(p, []string{"machine learning"}), "title")
	assert.Equal(t, 30.0, RequirementsScore(p, []string{"Search Assistant"}), "highlight")
	assert.Equal(t, 30.0, RequirementsScore(p, []string{"NLP"}), "ai domain")
	assert.Equal(t, 15.0, RequirementsScore(p, []string{"pytorch", "fintech"}))
}

func TestExperienceScore(t *testing.T) {
	tests := []struct {
		years  float64
		target *float64
		want   float64
	}{
		{5, nil, 0},
		{5, floatPtr(5), 20},
		{3, floatPtr(5), 20},
		{9, floatPtr(5), 15},
		{1, floatPtr(5), 15},
		{11, floatPtr(5), 10},
		{20, floatPtr(5), 5},
		{14, floatPtr(20), 10},
		{7, floatPtr(10), 15},
		{0, floatPtr(7), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExperienceScore(tt.years, tt.target), "years=%v target=%v", tt.years, tt.target)
	}
}

func TestExperienceScore_SeventyPercentBand(t *testing.T) {
	// diff > 6 with years >= 0.7 * target
	assert.Equal(t, 5.0, ExperienceScore(22, floatPtr(30)))
	assert.Equal(t, 0.0, ExperienceScore(20, floatPtr(30)))
}

func TestLocationScore(t *testing.T) {
	s := NewScorer(nil)

	tests := []struct {
		profile string
		wanted  string
		want    float64
	}{
		{"Bengaluru", "", 0},
		{"", "Bangalore", 0},
		{"Pune", "pune", 10},
		{"Bengaluru, India", "Bangalore", 10},
		{"Bombay", "Mumbai", 10},
		{"NYC", "New York", 10},
		{"Chennai", "Mumbai", 0},
		{"Pune", "Mumbai", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.LocationScore(tt.profile, tt.wanted), "%q vs %q", tt.profile, tt.wanted)
	}
}

func TestBaseQualityScore(t *testing.T) {
	assert.Equal(t, 0.0, BaseQualityScore(types.CandidateProfile{}))
	assert.Equal(t, 100.0, BaseQualityScore(sampleProfile()))

	p := sampleProfile()
	p.AIDomains = nil
	p.Experience = 0
	assert.Equal(t, 60.0, BaseQualityScore(p))
}

func TestScore(t *testing.T) {
	s := NewScorer(nil)
	p := sampleProfile()

	got := s.Score(p, []string{"python", "pytorch"}, []string{"llm"}, types.SearchFilters{
		Experience: floatPtr(6),
		Location:   "Bangalore",
	})

	assert.Equal(t, 40.0, got.Skills)
	assert.Equal(t, 30.0, got.Requirements)
	assert.Equal(t, 20.0, got.Experience)
	assert.Equal(t, 10.0, got.Location)
	assert.Equal(t, 0.0, got.BaseQuality)
	assert.Equal(t, 1.0, got.Score)
}

func TestScore_NoCriteriaUsesBaseQuality(t *testing.T) {
	s := NewScorer(nil)
	p := sampleProfile()
	p.AIFrameworks = nil

	got := s.Score(p, nil, nil, types.SearchFilters{})

	assert.Equal(t, 80.0, got.BaseQuality)
	assert.InDelta(t, 0.8, got.Score, 1e-9)
}

func TestScore_CriteriaWithNoHitsUsesBaseQuality(t *testing.T) {
	s := NewScorer(nil)

	got := s.Score(types.CandidateProfile{}, []string{"rust"}, []string{"fintech"}, types.SearchFilters{Location: "Pune"})

	assert.Equal(t, 0.0, got.Score)
	assert.Equal(t, 0.0, got.BaseQuality)
}

func TestContainsWord(t *testing.T) {
	assert.True(t, containsWord("based in sf, ca", "sf"))
	assert.True(t, containsWord("new york city", "new york"))
	assert.False(t, containsWord("transfer", "sf"))
	assert.False(t, containsWord("mongodb", "go"))
	assert.False(t, containsWord("anything", ""))
	assert.False(t, containsWord("node.js developer", "js"))
	assert.True(t, containsWord("knows react.", "react"))
	assert.True(t, containsWord("ci/cd pipelines", "ci/cd"))
}
