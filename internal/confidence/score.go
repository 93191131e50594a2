// Package confidence grades how complete an extracted resume is.
// The rubric is a heuristic for surfacing thin extractions, not a quality judgement.
package confidence

import (
	"math"

	"github.com/jonathan/resume-engine/internal/types"
)

const (
	pointsPerContactField   = 5
	pointsPerSkill          = 2
	maxSkillPoints          = 25
	pointsExperience        = 15
	pointsExperienceBullets = 10
	pointsEducation         = 10
	pointsEducationDegree   = 5
	pointsProjects          = 10
	pointsSummary           = 5
	minSummaryLength        = 50
	maxPoints               = 100
)

// Breakdown holds the points awarded by each part of the rubric
type Breakdown struct {
	PersonalInfo int `json:"personal_info"`
	Skills       int `json:"skills"`
	Experience   int `json:"experience"`
	Education    int `json:"education"`
	Projects     int `json:"projects"`
	Summary      int `json:"summary"`
}

// Total returns the sum of all parts
func (b Breakdown) Total() int {
	return b.PersonalInfo + b.Skills + b.Experience + b.Education + b.Projects + b.Summary
}

// Score returns the confidence of doc in [0, 1]
func Score(doc *types.ResumeDocument) float64 {
	if doc == nil {
		return 0
	}
	return FromBreakdown(Explain(doc))
}

// FromBreakdown converts rubric points to a [0, 1] confidence
func FromBreakdown(b Breakdown) float64 {
	return math.Min(1, float64(b.Total())/maxPoints)
}

// Explain scores each part of doc separately
func Explain(doc *types.ResumeDocument) Breakdown {
	if doc == nil {
		return Breakdown{}
	}
	return Breakdown{
		PersonalInfo: PersonalInfoPoints(doc.PersonalInfo),
		Skills:       SkillPoints(doc.Skills),
		Experience:   ExperiencePoints(doc.Experience),
		Education:    EducationPoints(doc.Education),
		Projects:     ProjectPoints(doc.Projects),
		Summary:      SummaryPoints(doc.Summary),
	}
}

// PersonalInfoPoints awards 5 points each for name, email, phone and location
func PersonalInfoPoints(info types.PersonalInfo) int {
	points := 0
	for _, field := range []string{info.Name, info.Email, info.Phone, info.Location} {
		if field != "" {
			points += pointsPerContactField
		}
	}
	return points
}

// SkillPoints awards 2 points per skill across all categories, capped at 25
func SkillPoints(set types.SkillSet) int {
	return min(set.Count()*pointsPerSkill, maxSkillPoints)
}

// ExperiencePoints awards 15 points for any experience and 10 more when an entry has bullets
func ExperiencePoints(experience []types.WorkExperience) int {
	if len(experience) == 0 {
		return 0
	}
	points := pointsExperience
	for _, exp := range experience {
		if len(exp.Description) > 0 {
			points += pointsExperienceBullets
			break
		}
	}
	return points
}

// EducationPoints awards 10 points for any education and 5 more when an entry names both
// degree and institution
func EducationPoints(education []types.Education) int {
	if len(education) == 0 {
		return 0
	}
	points := pointsEducation
	for _, edu := range education {
		if edu.Degree != "" && edu.Institution != "" {
			points += pointsEducationDegree
			break
		}
	}
	return points
}

// ProjectPoints awards 10 points for any project
func ProjectPoints(projects []types.Project) int {
	if len(projects) == 0 {
		return 0
	}
	return pointsProjects
}

// SummaryPoints awards 5 points for a summary longer than 50 characters
func SummaryPoints(summary string) int {
	if len([]rune(summary)) > minSummaryLength {
		return pointsSummary
	}
	return 0
}
