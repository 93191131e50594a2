package matching

import (
	"fmt"

	"github.com/jonathan/resume-engine/internal/skills"
	"github.com/jonathan/resume-engine/internal/types"
)

// crossSell suggests a complementary skill to candidates who have Has but lack Suggest
type crossSell struct {
	Has     string
	Suggest string
	Message string
}

var crossSells = []crossSell{
	{Has: "react", Suggest: "next.js", Message: "Consider learning Next.js to build on your React experience"},
	{Has: "javascript", Suggest: "typescript", Message: "Consider adopting TypeScript to strengthen your JavaScript work"},
}

func (a *Analyzer) recommendations(missing []types.MissingSkill, strengths []string, candidate []string) []string {
	recs := make([]string, 0, maxRecommendations)

	for _, m := range missing {
		if m.Importance == types.ImportanceCritical {
			recs = append(recs, formatFocus(m.Skill))
			break
		}
	}

	if len(strengths) > 0 {
		recs = append(recs, fmt.Sprintf("Highlight your %s expertise prominently", strengths[0]))
	}

	for _, cs := range crossSells {
		if len(recs) == maxRecommendations {
			break
		}
		if skills.MatchesAny(cs.Has, candidate) && !skills.MatchesAny(cs.Suggest, candidate) {
			recs = append(recs, cs.Message)
		}
	}
	return recs
}

func formatFocus(skill string) string {
	return fmt.Sprintf("Focus on learning %s, a critical skill for this role", skill)
}
