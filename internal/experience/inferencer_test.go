package experience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-engine/internal/types"
)

func pinnedClock(year int, month time.Month) Option {
	return WithClock(func() time.Time {
		return time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
	})
}

func TestTotalYears_CurrentAndPastRoles(t *testing.T) {
	inf := NewInferencer(pinnedClock(2024, time.June))

	experiences := []types.WorkExperience{
		{StartDate: "2022-01", Current: true},
		{StartDate: "2020-06", EndDate: "2021-12"},
	}

	// 29 + 18 = 47 months
	assert.Equal(t, 3.9, inf.TotalYears(experiences))
}

func TestTotalYears_CurrentOverridesLiteralEndDate(t *testing.T) {
	inf := NewInferencer(pinnedClock(2024, time.June))

	got := inf.TotalYears([]types.WorkExperience{{StartDate: "2023-06", EndDate: "2023-07", Current: true}})
	assert.Equal(t, 1.0, got)
}

func TestMonths(t *testing.T) {
	inf := NewInferencer(pinnedClock(2024, time.June))

	tests := []struct {
		name string
		exp  types.WorkExperience
		want int
	}{
		{"iso months", types.WorkExperience{StartDate: "2020-01", EndDate: "2021-01"}, 12},
		{"full dates", types.WorkExperience{StartDate: "2020-01-31", EndDate: "2020-03-01"}, 2},
		{"slash year first", types.WorkExperience{StartDate: "2019/03", EndDate: "2019/09"}, 6},
		{"slash month first", types.WorkExperience{StartDate: "03/2019", EndDate: "09/2019"}, 6},
		{"year only", types.WorkExperience{StartDate: "2018", EndDate: "2020"}, 24},
		{"month names", types.WorkExperience{StartDate: "jan 2020", EndDate: "March 2020"}, 2},
		{"present marker", types.WorkExperience{StartDate: "2024-01", EndDate: "Present"}, 5},
		{"negative span clamps", types.WorkExperience{StartDate: "2022-05", EndDate: "2021-01"}, 0},
		{"unparseable start", types.WorkExperience{StartDate: "sometime", EndDate: "2021-01"}, 0},
		{"unparseable end", types.WorkExperience{StartDate: "2020-01", EndDate: "later"}, 0},
		{"missing end not current", types.WorkExperience{StartDate: "2020-01"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inf.Months(tt.exp))
		})
	}
}

func TestTotalYears_MonotonicInEndDate(t *testing.T) {
	inf := NewInferencer(pinnedClock(2024, time.June))

	prev := -1.0
	for _, end := range []string{"2019-12", "2020-01", "2020-06", "2021-01", "2023-11"} {
		got := inf.TotalYears([]types.WorkExperience{{StartDate: "2020-01", EndDate: end}})
		assert.GreaterOrEqual(t, got, prev, "end %s", end)
		prev = got
	}
}

func TestSeniorityFor(t *testing.T) {
	tests := []struct {
		years      float64
		leadership bool
		want       Level
	}{
		{9, true, Principal},
		{9, false, Senior},
		{8, true, Principal},
		{7, true, Lead},
		{6, true, Lead},
		{5, true, Senior},
		{4, false, Senior},
		{3.9, true, Mid},
		{2, false, Mid},
		{1.9, true, Junior},
		{0, false, Junior},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SeniorityFor(tt.years, tt.leadership), "years=%v leadership=%v", tt.years, tt.leadership)
	}
}

func TestHasLeadership(t *testing.T) {
	assert.True(t, HasLeadership([]types.WorkExperience{{Position: "Engineering Manager"}}))
	assert.True(t, HasLeadership([]types.WorkExperience{{Position: "Tech Lead"}}))
	assert.True(t, HasLeadership([]types.WorkExperience{{Position: "Engineer", Description: []string{"Mentored two interns"}}}))
	assert.True(t, HasLeadership([]types.WorkExperience{{Description: []string{"Grew the TEAM to 8"}}}))
	assert.False(t, HasLeadership([]types.WorkExperience{{Position: "Engineer", Description: []string{"Built APIs"}}}))
	assert.False(t, HasLeadership(nil))
}

func TestInfer(t *testing.T) {
	inf := NewInferencer(pinnedClock(2024, time.June))

	got := inf.Infer([]types.WorkExperience{
		{Position: "Staff Engineer", StartDate: "2015-06", Current: true, Description: []string{"Led platform team"}},
	})

	assert.Equal(t, 9.0, got.Years)
	assert.Equal(t, Principal, got.Seniority)
}
