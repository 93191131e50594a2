package parsing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-engine/internal/llm"
	"github.com/jonathan/resume-engine/internal/metrics"
	"github.com/jonathan/resume-engine/internal/types"
)

type stubClient struct {
	response   string
	err        error
	calls      int
	lastPrompt string
	lastTier   llm.ModelTier
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	s.lastTier = tier
	return s.response, s.err
}

func (s *stubClient) Close() error { return nil }

const sampleResume = `Jane Doe
jane@example.com | +1 555 0100 | Austin, TX

Senior Software Engineer, Acme (2019-03 - Present)
- Built payment APIs in Go`

const sampleJSON = `{
  "personal_info": {"name": "Jane Doe", "email": "jane@example.com", "phone": "+1 555 0100", "location": "Austin, TX"},
  "summary": "",
  "skills": {"languages": ["Go"], "cloud": ["AWS"]},
  "experience": [{"company": "Acme", "position": "Senior Software Engineer", "start_date": "2019-03", "current": true, "description": ["Built payment APIs in Go"]}],
  "education": null,
  "extracted_text": "oracle must not set this",
  "confidence": 0.99
}`

func newTestExtractor(client llm.Client) *Extractor {
	return NewExtractor(client, WithLogger(zap.NewNop()), WithMetrics(metrics.New()))
}

func TestExtract_Success(t *testing.T) {
	client := &stubClient{response: sampleJSON}
	doc := newTestExtractor(client).Extract(context.Background(), sampleResume)

	require.NotNil(t, doc)
	assert.False(t, doc.Degraded())
	assert.Equal(t, types.ExtractionOK, doc.Extraction.Status)
	assert.Equal(t, "Jane Doe", doc.PersonalInfo.Name)
	assert.Equal(t, []string{"Go"}, doc.Skills.Languages)
	assert.NotNil(t, doc.Skills.Technical)
	assert.NotNil(t, doc.Education)
	assert.Equal(t, sampleResume, doc.ExtractedText)

	// 20 contact + 4 skills + 25 experience
	assert.InDelta(t, 0.49, doc.Confidence, 1e-9)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, llm.TierStandard, client.lastTier)
	assert.Contains(t, client.lastPrompt, "Built payment APIs in Go")
}

func TestExtract_RepairsWrappedAndTruncatedOutput(t *testing.T) {
	client := &stubClient{response: "Here is the JSON:\n```json\n{\"personal_info\": {\"name\": \"Jane Doe\"}, \"skills\": {\"languages\": [\"Go\", \"Rust\",\n```"}
	doc := newTestExtractor(client).Extract(context.Background(), sampleResume)

	assert.False(t, doc.Degraded())
	assert.Equal(t, "Jane Doe", doc.PersonalInfo.Name)
	assert.Equal(t, []string{"Go", "Rust"}, doc.Skills.Languages)
}

func TestExtract_Fallbacks(t *testing.T) {
	tests := []struct {
		name   string
		client llm.Client
		text   string
		reason string
	}{
		{"oracle error", &stubClient{err: errors.New("deadline exceeded")}, sampleResume, ReasonOracleError},
		{"breaker open", &stubClient{err: fmt.Errorf("wrapped: %w", llm.ErrBreakerOpen)}, sampleResume, ReasonBreakerOpen},
		{"not json", &stubClient{response: "I cannot help with that."}, sampleResume, ReasonInvalidJSON},
		{"schema mismatch", &stubClient{response: `{"skills": "Go, Rust"}`}, sampleResume, ReasonSchemaMismatch},
		{"wrong experience shape", &stubClient{response: `{"experience": {"company": "Acme"}}`}, sampleResume, ReasonSchemaMismatch},
		{"empty input", &stubClient{response: sampleJSON}, "  \n\t ", ReasonEmptyInput},
		{"no client", nil, sampleResume, ReasonOracleUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newTestExtractor(tt.client).Extract(context.Background(), tt.text)

			require.NotNil(t, doc)
			assert.True(t, doc.Degraded())
			assert.Equal(t, tt.reason, doc.Extraction.Reason)
			assert.Equal(t, 0.0, doc.Confidence)
			assert.NotNil(t, doc.Experience)
			assert.NotNil(t, doc.Skills.Languages)
			assert.Empty(t, doc.PersonalInfo.Name)
		})
	}
}

func TestExtract_EmptyInputSkipsOracle(t *testing.T) {
	client := &stubClient{response: sampleJSON}
	newTestExtractor(client).Extract(context.Background(), "")
	assert.Zero(t, client.calls)
}

func TestExtract_BreakerOpenIsFallbackWithoutRetry(t *testing.T) {
	inner := &stubClient{err: errors.New("503")}
	client := llm.NewBreakerClient(inner, llm.BreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		MinRequests:      1,
		FailureThreshold: 1,
	}, zap.NewNop())
	extractor := newTestExtractor(client)

	first := extractor.Extract(context.Background(), sampleResume)
	assert.Equal(t, ReasonOracleError, first.Extraction.Reason)

	second := extractor.Extract(context.Background(), sampleResume)
	assert.Equal(t, ReasonBreakerOpen, second.Extraction.Reason)
	assert.Equal(t, 1, inner.calls)
}

func TestWithTier(t *testing.T) {
	client := &stubClient{response: sampleJSON}
	NewExtractor(client, WithTier(llm.TierAdvanced)).Extract(context.Background(), sampleResume)
	assert.Equal(t, llm.TierAdvanced, client.lastTier)
}

func TestHasOracle(t *testing.T) {
	var nilExtractor *Extractor
	assert.False(t, nilExtractor.HasOracle())
	assert.False(t, NewExtractor(nil).HasOracle())
	assert.True(t, NewExtractor(&stubClient{}).HasOracle())
}
