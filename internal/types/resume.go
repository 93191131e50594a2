// Package types provides type definitions for structured data used throughout the resume engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Extraction statuses reported on a ResumeDocument
const (
	ExtractionOK       = "ok"
	ExtractionFallback = "fallback"
)

// ResumeDocument is the canonical structured form of a single resume.
// It is produced once per parse request and not mutated afterwards.
type ResumeDocument struct {
	PersonalInfo   PersonalInfo     `json:"personal_info"`
	Summary        string           `json:"summary"`
	Skills         SkillSet         `json:"skills"`
	Experience     []WorkExperience `json:"experience"`
	Education      []Education      `json:"education"`
	Projects       []Project        `json:"projects"`
	Certifications []Certification  `json:"certifications"`
	ExtractedText  string           `json:"extracted_text"`
	Confidence     float64          `json:"confidence"`
	Extraction     ExtractionInfo   `json:"extraction"`
}

// PersonalInfo holds candidate contact details
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// WorkExperience is one entry of the work history timeline.
// When Current is true the end date is treated as "now" regardless of EndDate.
type WorkExperience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     string   `json:"location"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date,omitempty"`
	Current      bool     `json:"current"`
	Description  []string `json:"description"`
	Technologies []string `json:"technologies"`
}

// Education represents a degree or program
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// Project represents a personal or professional project
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
}

// Certification represents a professional certification
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date,omitempty"`
}

// ExtractionInfo records how the document was produced
type ExtractionInfo struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Degraded reports whether the document is the empty fallback produced after an oracle failure.
func (d *ResumeDocument) Degraded() bool {
	return d.Extraction.Status == ExtractionFallback
}

// Normalize replaces nil lists with empty ones and drops blank list entries, so the document
// always serializes the same shape.
func (d *ResumeDocument) Normalize() {
	d.Skills.Normalize()
	if d.Experience == nil {
		d.Experience = []WorkExperience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	for i := range d.Experience {
		d.Experience[i].Description = compact(d.Experience[i].Description)
		d.Experience[i].Technologies = compact(d.Experience[i].Technologies)
	}
	for i := range d.Projects {
		d.Projects[i].Technologies = compact(d.Projects[i].Technologies)
	}
}

// EmptyResume returns a well-formed document with every field empty.
func EmptyResume(extractedText, reason string) *ResumeDocument {
	doc := &ResumeDocument{
		ExtractedText: extractedText,
		Extraction:    ExtractionInfo{Status: ExtractionFallback, Reason: reason},
	}
	doc.Normalize()
	return doc
}
