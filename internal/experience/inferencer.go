// Package experience derives total years of experience and a seniority tier from a work history.
package experience

import (
	"math"
	"strings"
	"time"

	"github.com/jonathan/resume-engine/internal/types"
)

// Level is a seniority tier
type Level string

// Seniority tiers, lowest first
const (
	Junior    Level = "junior"
	Mid       Level = "mid"
	Senior    Level = "senior"
	Lead      Level = "lead"
	Principal Level = "principal"
)

var (
	leadershipTitles = []string{"lead", "manager", "principal"}
	leadershipDuties = []string{"team", "mentor"}
)

// Inferencer computes durations against an injectable clock
type Inferencer struct {
	now func() time.Time
}

// Option configures an Inferencer
type Option func(*Inferencer)

// WithClock pins the time used for ongoing roles
func WithClock(now func() time.Time) Option {
	return func(i *Inferencer) {
		i.now = now
	}
}

// NewInferencer creates an inferencer using the wall clock unless overridden
func NewInferencer(opts ...Option) *Inferencer {
	i := &Inferencer{now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Summary is the result of inferring a work history
type Summary struct {
	Years     float64 `json:"years"`
	Seniority Level   `json:"seniority"`
}

// Infer computes total years and seniority together
func (i *Inferencer) Infer(experiences []types.WorkExperience) Summary {
	years := i.TotalYears(experiences)
	return Summary{Years: years, Seniority: Seniority(years, experiences)}
}

// TotalYears sums the months of every entry and returns years rounded to one decimal.
// Entries with unparseable dates contribute nothing.
func (i *Inferencer) TotalYears(experiences []types.WorkExperience) float64 {
	total := 0
	for _, exp := range experiences {
		total += i.Months(exp)
	}
	return math.Round(float64(total)/12*10) / 10
}

// Months returns the length of one entry in months
func (i *Inferencer) Months(exp types.WorkExperience) int {
	start, ok := ParseDate(exp.StartDate)
	if !ok {
		return 0
	}

	var end YearMonth
	if exp.Current || IsPresent(exp.EndDate) {
		now := i.now()
		end = YearMonth{Year: now.Year(), Month: int(now.Month())}
	} else if end, ok = ParseDate(exp.EndDate); !ok {
		return 0
	}

	return start.MonthsUntil(end)
}

// HasLeadership reports whether any role title or description signals people leadership
func HasLeadership(experiences []types.WorkExperience) bool {
	for _, exp := range experiences {
		if containsAny(strings.ToLower(exp.Position), leadershipTitles) {
			return true
		}
		for _, line := range exp.Description {
			if containsAny(strings.ToLower(line), leadershipDuties) {
				return true
			}
		}
	}
	return false
}

// Seniority maps years and leadership signals to a tier. Leadership only escalates
// candidates in the two highest year bands.
func Seniority(years float64, experiences []types.WorkExperience) Level {
	return SeniorityFor(years, HasLeadership(experiences))
}

// SeniorityFor applies the tier rules to precomputed inputs
func SeniorityFor(years float64, hasLeadership bool) Level {
	switch {
	case years >= 8 && hasLeadership:
		return Principal
	case years >= 6 && hasLeadership:
		return Lead
	case years >= 4:
		return Senior
	case years >= 2:
		return Mid
	default:
		return Junior
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
