package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-engine/internal/taxonomy"
	"github.com/jonathan/resume-engine/internal/types"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"equal ignoring case", "React", "react", true},
		{"candidate contains required", "React Native", "react", true},
		{"required contains candidate", "go", "Golang", true},
		{"no overlap", "java", "python", false},
		{"empty left", "", "react", false},
		{"empty right", "react", "", false},
		{"whitespace only", "  ", "react", false},
		{"substring collision", "mongo", "go", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.a, tt.b))
			assert.Equal(t, tt.want, Matches(tt.b, tt.a), "Matches must be symmetric")
		})
	}
}

func TestSimilarity(t *testing.T) {
	c := NewCanonicalizer(taxonomy.Default())

	tests := []struct {
		name      string
		candidate string
		required  string
		want      int
	}{
		{"exact", "Python", "python", SimilarityExact},
		{"substring", "react native", "react", SimilaritySubstring},
		{"synonym values", "typescript", "js", SimilaritySynonym},
		{"synonym key and value", "javascript", "typescript", SimilaritySynonym},
		{"kubernetes k8s", "k8s", "kubernetes", SimilaritySynonym},
		{"unrelated", "java", "python", SimilarityNone},
		{"empty", "", "python", SimilarityNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Similarity(tt.candidate, tt.required))
		})
	}
}

func TestFindAlternatives(t *testing.T) {
	c := NewCanonicalizer(taxonomy.Default())

	t.Run("returns alternatives the candidate has in table order", func(t *testing.T) {
		got := c.FindAlternatives("React", []string{"Angular", "Vue.js", "Go"}, 3)
		assert.Equal(t, []string{"vue", "angular"}, got)
	})

	t.Run("respects the cap", func(t *testing.T) {
		got := c.FindAlternatives("react", []string{"vue", "angular", "svelte"}, 2)
		assert.Equal(t, []string{"vue", "angular"}, got)
	})

	t.Run("default cap", func(t *testing.T) {
		got := c.FindAlternatives("react", []string{"vue", "angular", "svelte"}, 0)
		assert.Len(t, got, DefaultMaxAlternatives)
	})

	t.Run("no configured alternatives", func(t *testing.T) {
		got := c.FindAlternatives("cobol", []string{"fortran"}, 3)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestCanonicalize(t *testing.T) {
	c := NewCanonicalizer(nil)

	tests := []struct {
		in        string
		wantToken string
		wantKnown bool
	}{
		{"Golang", "go", true},
		{"  ReactJS ", "react", true},
		{"K8s", "kubernetes", true},
		{"PostgreSQL", "postgresql", true},
		{"Amazon AWS Lambda", "aws", true},
		{"Ｄｏｃｋｅｒ", "docker", true},
		{"React Native", "react native", true},
		{"Spring Boot   Framework", "spring", true},
		{"COBOL", "cobol", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			token, known := c.Canonicalize(tt.in)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantKnown, known)
		})
	}
}

func TestCanonicalizeSet_DeduplicatesPerCategory(t *testing.T) {
	c := NewCanonicalizer(taxonomy.Default())

	set := types.SkillSet{
		Languages:  []string{"Golang", "go", "JS"},
		Frameworks: []string{"React.js", "reactjs"},
		Tools:      []string{"Go"},
	}

	got := c.CanonicalizeSet(set)

	assert.Equal(t, []string{"go", "javascript"}, got.Languages)
	assert.Equal(t, []string{"react"}, got.Frameworks)
	assert.Equal(t, []string{"go"}, got.Tools)
	assert.NotNil(t, got.Cloud)
}
