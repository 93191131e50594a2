package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-engine/internal/pipeline"
	"github.com/jonathan/resume-engine/internal/ranking"
	"github.com/jonathan/resume-engine/internal/types"
)

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "short\n  • bullet with a multi-byte rune\n"+strings.Repeat("x", 120))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDocument(&types.ResumeDocument{
		PersonalInfo: types.PersonalInfo{Name: "Jane Doe"},
		Skills:       types.SkillSet{Languages: []string{"Go"}},
		Confidence:   0.49,
		Extraction:   types.ExtractionInfo{Status: types.ExtractionOK},
	})
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "49%")
	assert.NotContains(t, output, "fell back")
}

func TestPrintDocument_Degraded(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDocument(types.EmptyResume("", "oracle_error"))

	assert.Contains(t, buf.String(), "fell back (oracle_error)")
}

func TestPrintDocument_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDocument(nil)
	assert.Empty(t, buf.String())
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(types.CandidateProfile{
		Name:         "Priya",
		Title:        "ML Lead",
		Experience:   7.5,
		Seniority:    "senior",
		Skills:       types.SkillSet{Languages: []string{"python"}},
		AIFrameworks: []string{"pytorch"},
	})
	output := buf.String()

	assert.Contains(t, output, "7.5 years (senior)")
	assert.Contains(t, output, "python")
	assert.Contains(t, output, "pytorch")
}

func TestPrintMatch(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatch(types.MatchResult{
		MatchPercentage:  60,
		MatchedSkills:    []types.MatchedSkill{{Skill: "react", Similarity: 100}},
		MissingSkills:    []types.MissingSkill{{Skill: "docker", Importance: "Important", Alternatives: []string{"podman"}}},
		ImprovementAreas: []string{"Cloud"},
		FitScore:         types.FitScore{Technical: 54, Experience: 30, Overall: 42},
	})
	output := buf.String()

	assert.Contains(t, output, "SKILL MATCH")
	assert.Contains(t, output, "60%")
	assert.Contains(t, output, "react (100)")
	assert.Contains(t, output, "docker [Important] ~ podman")
	assert.Contains(t, output, "overall 42")
}

func TestPrintIntent(t *testing.T) {
	years := 5.0
	var buf bytes.Buffer
	NewPrinter(&buf).PrintIntent(ranking.ParsedQuery{
		Source: ranking.SourceFallback,
		Intent: types.SearchIntent{Skills: []string{"go"}, Filters: types.SearchFilters{Experience: &years, Location: "mumbai"}},
	})
	output := buf.String()

	assert.Contains(t, output, "fallback")
	assert.Contains(t, output, "5.0 years")
	assert.Contains(t, output, "mumbai")
}

func TestPrintRanking(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	ranked := make([]ranking.RankedCandidate, 7)
	ranked[0] = ranking.RankedCandidate{
		Profile: types.CandidateProfile{Name: "near"},
		Score:   types.RankingScore{Score: 0.5, Skills: 40, Location: 10},
	}
	ranked[1] = ranking.RankedCandidate{
		Profile: types.CandidateProfile{Name: "far"},
		Score:   types.RankingScore{Score: 0.2, BaseQuality: 20},
	}
	p.PrintRanking(ranked)
	output := buf.String()

	assert.Contains(t, output, "#1  near  0.50")
	assert.Contains(t, output, "skills 40")
	assert.Contains(t, output, "base quality 20")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintRanking_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRanking(nil)
	assert.Empty(t, buf.String())
}

func TestPrintBatch(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintBatch([]pipeline.BatchResult{
		{ID: "a", Status: pipeline.StatusOK, Match: &types.MatchResult{MatchPercentage: 75}},
		{ID: "b", Status: pipeline.StatusFailed, Error: "extraction fell back: oracle_error"},
	})
	output := buf.String()

	assert.Contains(t, output, "✓ a  match 75%")
	assert.Contains(t, output, "✗ b")
	assert.Contains(t, output, "1 ok, 1 failed")
}
