// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-engine/internal/pipeline"
	"github.com/jonathan/resume-engine/internal/ranking"
	"github.com/jonathan/resume-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to exactly width runes
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		return string(runes[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// writeList writes up to limit items as bullets followed by an overflow line
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s\n", heading)
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintDocument outputs a summary of an extracted resume
func (p *Printer) PrintDocument(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:        %s\n", orDash(doc.PersonalInfo.Name))
	fmt.Fprintf(&sb, "Location:    %s\n", orDash(doc.PersonalInfo.Location))
	fmt.Fprintf(&sb, "Skills:      %d\n", doc.Skills.Count())
	fmt.Fprintf(&sb, "Experience:  %d roles\n", len(doc.Experience))
	fmt.Fprintf(&sb, "Education:   %d entries\n", len(doc.Education))
	fmt.Fprintf(&sb, "Projects:    %d\n", len(doc.Projects))
	fmt.Fprintf(&sb, "Confidence:  %.0f%%\n", doc.Confidence*100)
	if doc.Degraded() {
		fmt.Fprintf(&sb, "\n⚠ Extraction fell back (%s)\n", doc.Extraction.Reason)
	}

	p.printBox("EXTRACTED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs a candidate profile
func (p *Printer) PrintProfile(profile types.CandidateProfile) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:       %s\n", orDash(profile.Name))
	fmt.Fprintf(&sb, "Title:      %s\n", orDash(profile.Title))
	fmt.Fprintf(&sb, "Experience: %.1f years (%s)\n", profile.Experience, profile.Seniority)
	sb.WriteString("\n")
	writeList(&sb, "Skills:", profile.Skills.All(), maxItemsToShow*2)
	writeList(&sb, "AI/ML:", append(append([]string{}, profile.AIFrameworks...), profile.AIDomains...), maxItemsToShow)

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatch outputs a skill match analysis
func (p *Printer) PrintMatch(result types.MatchResult) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Match:      %d%%\n", result.MatchPercentage)
	fmt.Fprintf(&sb, "Fit score:  technical %d, experience %d, overall %d\n",
		result.FitScore.Technical, result.FitScore.Experience, result.FitScore.Overall)
	sb.WriteString("\n")

	matched := make([]string, 0, len(result.MatchedSkills))
	for _, m := range result.MatchedSkills {
		matched = append(matched, fmt.Sprintf("%s (%d)", m.Skill, m.Similarity))
	}
	writeList(&sb, "Matched:", matched, maxItemsToShow)

	missing := make([]string, 0, len(result.MissingSkills))
	for _, m := range result.MissingSkills {
		line := fmt.Sprintf("%s [%s]", m.Skill, m.Importance)
		if len(m.Alternatives) > 0 {
			line += " ~ " + strings.Join(m.Alternatives, ", ")
		}
		missing = append(missing, line)
	}
	writeList(&sb, "Missing:", missing, maxItemsToShow)
	writeList(&sb, "Strengths:", result.StrengthAreas, maxItemsToShow)
	writeList(&sb, "Improve:", result.ImprovementAreas, maxItemsToShow)
	writeList(&sb, "Recommendations:", result.Recommendations, maxItemsToShow)

	p.printBox("SKILL MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIntent outputs a parsed search intent
func (p *Printer) PrintIntent(parsed ranking.ParsedQuery) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Source:     %s\n", parsed.Source)
	if parsed.Intent.Filters.Experience != nil {
		fmt.Fprintf(&sb, "Experience: %.1f years\n", *parsed.Intent.Filters.Experience)
	}
	if parsed.Intent.Filters.Location != "" {
		fmt.Fprintf(&sb, "Location:   %s\n", parsed.Intent.Filters.Location)
	}
	writeList(&sb, "Skills:", parsed.Intent.Skills, maxItemsToShow*2)
	writeList(&sb, "Requirements:", parsed.Intent.Requirements, maxItemsToShow)

	p.printBox("SEARCH INTENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs the top ranked candidates with their score components
func (p *Printer) PrintRanking(ranked []ranking.RankedCandidate) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Candidates ranked: %d\n\n", len(ranked))
	count := min(len(ranked), maxItemsToShow)
	for i, r := range ranked[:count] {
		fmt.Fprintf(&sb, "#%d  %s  %.2f\n", i+1, orDash(r.Profile.Name), r.Score.Score)
		s := r.Score
		if s.BaseQuality > 0 {
			fmt.Fprintf(&sb, "    base quality %.0f\n", s.BaseQuality)
		} else {
			fmt.Fprintf(&sb, "    skills %.0f  req %.0f  exp %.0f  loc %.0f\n", s.Skills, s.Requirements, s.Experience, s.Location)
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(ranked) > maxItemsToShow {
		fmt.Fprintf(&sb, "\n... and %d more\n", len(ranked)-maxItemsToShow)
	}

	p.printBox("RANKED CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatch outputs one line per batch item
func (p *Printer) PrintBatch(results []pipeline.BatchResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	failed := 0
	for _, r := range results {
		mark := "✓"
		detail := ""
		if r.Status == pipeline.StatusFailed {
			mark = "✗"
			failed++
			detail = r.Error
		} else if r.Match != nil {
			detail = fmt.Sprintf("match %d%%", r.Match.MatchPercentage)
		} else if r.Profile != nil {
			detail = fmt.Sprintf("%.1f years", r.Profile.Experience)
		}
		fmt.Fprintf(&sb, "%s %s  %s\n", mark, r.ID, detail)
	}
	fmt.Fprintf(&sb, "\n%d ok, %d failed", len(results)-failed, failed)

	p.printBox("BATCH RESULTS", sb.String())
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
