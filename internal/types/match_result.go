package types

// Importance levels for missing skills
const (
	ImportanceCritical   = "Critical"
	ImportanceImportant  = "Important"
	ImportanceNiceToHave = "Nice to have"
)

// Candidate proficiency levels
const (
	LevelAdvanced     = "Advanced"
	LevelIntermediate = "Intermediate"
	LevelBeginner     = "Beginner"
	LevelRequired     = "Required"
)

// MatchResult explains how a candidate's skills compare to a requirement set
type MatchResult struct {
	MatchPercentage   int                      `json:"match_percentage"`
	MatchedSkills     []MatchedSkill           `json:"matched_skills"`
	MissingSkills     []MissingSkill           `json:"missing_skills"`
	CategoryBreakdown map[string]CategoryStats `json:"category_breakdown"`
	StrengthAreas     []string                 `json:"strength_areas"`
	ImprovementAreas  []string                 `json:"improvement_areas"`
	Recommendations   []string                 `json:"recommendations"`
	FitScore          FitScore                 `json:"fit_score"`
}

// MatchedSkill is a required skill the candidate has
type MatchedSkill struct {
	Skill          string `json:"skill"`
	Required       bool   `json:"required"`
	CandidateLevel string `json:"candidate_level"`
	RequiredLevel  string `json:"required_level"`
	Similarity     int    `json:"similarity"`
}

// MissingSkill is a required skill the candidate lacks
type MissingSkill struct {
	Skill        string   `json:"skill"`
	Importance   string   `json:"importance"`
	Alternatives []string `json:"alternatives"`
}

// CategoryStats counts required and matched skills within one taxonomy category
type CategoryStats struct {
	Matched int `json:"matched"`
	Total   int `json:"total"`
}

// FitScore is a 0-100 composite of technical match and skill breadth
type FitScore struct {
	Technical  int `json:"technical"`
	Experience int `json:"experience"`
	Overall    int `json:"overall"`
}
