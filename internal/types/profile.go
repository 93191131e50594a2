package types

// CandidateProfile is the canonical, comparable view of a candidate used by ranking and matching
type CandidateProfile struct {
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	Skills       SkillSet `json:"skills"`
	Highlights   []string `json:"highlights"`
	AIFrameworks []string `json:"ai_frameworks"`
	AIDomains    []string `json:"ai_domains"`
	Experience   float64  `json:"experience"`
	Seniority    string   `json:"seniority"`
	Confidence   float64  `json:"confidence"`
}

// SearchIntent is a natural-language search query reduced to matchable criteria
type SearchIntent struct {
	Skills       []string      `json:"skills"`
	Requirements []string      `json:"requirements"`
	Filters      SearchFilters `json:"filters"`
}

// SearchFilters are the optional constraints derived from a query
type SearchFilters struct {
	Experience *float64 `json:"experience,omitempty"`
	Location   string   `json:"location,omitempty"`
}

// RankingScore is the relevance of one profile for a search, with the weighted parts kept for explainability
type RankingScore struct {
	Score        float64 `json:"score"`
	Skills       float64 `json:"skills"`
	Requirements float64 `json:"requirements"`
	Experience   float64 `json:"experience"`
	Location     float64 `json:"location"`
	BaseQuality  float64 `json:"base_quality,omitempty"`
}
