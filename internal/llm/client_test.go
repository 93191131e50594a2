package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultConfig(), "")
	assert.ErrorContains(t, err, "API key is required")
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "carrier-pigeon"}, "key")
	assert.ErrorContains(t, err, "unsupported LLM provider")
}

func TestResponseText(t *testing.T) {
	text := func(parts ...genai.Part) *genai.Candidate {
		return &genai.Candidate{Content: &genai.Content{Parts: parts}, FinishReason: genai.FinishReasonStop}
	}

	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr string
	}{
		{name: "nil response", resp: nil, wantErr: "no candidates"},
		{
			name: "blocked prompt",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety},
			},
			wantErr: "prompt blocked",
		},
		{
			name:    "no content",
			resp:    &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			wantErr: "no content",
		},
		{
			name: "safety stop",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content:      &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`)}},
				FinishReason: genai.FinishReasonSafety,
			}}},
			wantErr: "generation stopped",
		},
		{
			name:    "no text parts",
			resp:    &genai.GenerateContentResponse{Candidates: []*genai.Candidate{text(genai.Blob{MIMEType: "image/png"})}},
			wantErr: "no text parts",
		},
		{
			name: "joined parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{text(genai.Text(`{"a":`), genai.Text(`1}`))}},
			want: `{"a":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := responseText(tt.resp)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
