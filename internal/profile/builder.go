// Package profile reduces a structured resume to the canonical CandidateProfile used for
// matching and ranking.
package profile

import (
	"slices"
	"strings"

	"github.com/jonathan/resume-engine/internal/experience"
	"github.com/jonathan/resume-engine/internal/skills"
	"github.com/jonathan/resume-engine/internal/taxonomy"
	"github.com/jonathan/resume-engine/internal/types"
)

const maxHighlights = 20

// Builder turns resume documents into candidate profiles
type Builder struct {
	canon *skills.Canonicalizer
	inf   *experience.Inferencer
}

// NewBuilder creates a builder. Nil arguments use the seed taxonomy and the wall clock.
func NewBuilder(canon *skills.Canonicalizer, inf *experience.Inferencer) *Builder {
	if canon == nil {
		canon = skills.NewCanonicalizer(nil)
	}
	if inf == nil {
		inf = experience.NewInferencer()
	}
	return &Builder{canon: canon, inf: inf}
}

// Build derives the profile of doc. doc is only read, so nil lists and blank entries are
// skipped here rather than normalized away.
func (b *Builder) Build(doc *types.ResumeDocument) types.CandidateProfile {
	if doc == nil {
		doc = types.EmptyResume("", "")
	}

	canonical := b.canon.CanonicalizeSet(doc.Skills)
	summary := b.inf.Infer(doc.Experience)
	aiTokens := b.canon.Taxonomy().TokensFor(taxonomy.AIML)

	return types.CandidateProfile{
		Name:         strings.TrimSpace(doc.PersonalInfo.Name),
		Title:        Title(doc.Experience),
		Location:     strings.TrimSpace(doc.PersonalInfo.Location),
		Skills:       canonical,
		Highlights:   Highlights(doc),
		AIFrameworks: aiFrameworks(canonical, aiTokens),
		AIDomains:    aiDomains(doc, aiTokens),
		Experience:   summary.Years,
		Seniority:    string(summary.Seniority),
		Confidence:   doc.Confidence,
	}
}

// Title returns the position of the current role, or of the first listed role
func Title(experiences []types.WorkExperience) string {
	for _, exp := range experiences {
		if exp.Current || experience.IsPresent(exp.EndDate) {
			return strings.TrimSpace(exp.Position)
		}
	}
	if len(experiences) > 0 {
		return strings.TrimSpace(experiences[0].Position)
	}
	return ""
}

// Highlights collects project names and experience bullets, capped at 20 entries
func Highlights(doc *types.ResumeDocument) []string {
	out := make([]string, 0, maxHighlights)
	add := func(s string) bool {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
		return len(out) < maxHighlights
	}

	for _, p := range doc.Projects {
		if !add(p.Name) {
			return out
		}
	}
	for _, exp := range doc.Experience {
		for _, line := range exp.Description {
			if !add(line) {
				return out
			}
		}
	}
	return out
}

// aiFrameworks returns the canonical skills that are AI/ML tokens. Containment is not enough
// here: "c" would match "scikit-learn".
func aiFrameworks(set types.SkillSet, aiTokens []string) []string {
	out := make([]string, 0)
	seen := make(map[string]bool)
	for _, s := range set.All() {
		if !seen[s] && slices.Contains(aiTokens, strings.ToLower(s)) {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// aiDomains returns the AI/ML tokens mentioned anywhere in the resume narrative
func aiDomains(doc *types.ResumeDocument, aiTokens []string) []string {
	var sb strings.Builder
	sb.WriteString(doc.Summary)
	for _, exp := range doc.Experience {
		sb.WriteString("\n")
		sb.WriteString(exp.Position)
		for _, line := range exp.Description {
			sb.WriteString("\n")
			sb.WriteString(line)
		}
	}
	for _, p := range doc.Projects {
		sb.WriteString("\n")
		sb.WriteString(p.Description)
	}
	text := strings.ToLower(sb.String())

	out := make([]string, 0)
	for _, token := range aiTokens {
		if strings.Contains(text, token) {
			out = append(out, token)
		}
	}
	return out
}
