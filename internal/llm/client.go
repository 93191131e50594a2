package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over oracle providers
type Client interface {
	// GenerateJSON returns the provider's JSON answer to prompt using the model of tier
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// errEmptyResponse is returned when the provider answers without any text
var errEmptyResponse = errors.New("empty oracle response")

// NewClient creates a client for the configured provider
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// GeminiClient answers prompts with Google Gemini models in JSON mode
type GeminiClient struct {
	genai  *genai.Client
	config *Config
}

// NewGeminiClient connects to Gemini with apiKey
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{genai: c, config: config}, nil
}

// model returns the JSON-mode model configured for tier
func (c *GeminiClient) model(tier ModelTier) (*genai.GenerativeModel, string, error) {
	name := c.config.GetModel(tier)
	if name == "" {
		return nil, "", fmt.Errorf("no model configured for tier %s", tier)
	}
	m := c.genai.GenerativeModel(name)
	m.SetTemperature(c.config.Temperature)
	m.SetCandidateCount(1)
	m.ResponseMIMEType = "application/json"
	return m, name, nil
}

// GenerateJSON sends prompt to the tier's model and returns the answer with any code fence removed.
// The configured timeout applies on top of ctx.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	m, name, err := c.model(tier)
	if err != nil {
		return "", err
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", name, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return CleanJSONBlock(text), nil
}

// Close releases the underlying connection
func (c *GeminiClient) Close() error {
	if c.genai == nil {
		return nil
	}
	return c.genai.Close()
}

// responseText concatenates the text parts of the first candidate. A candidate stopped for
// safety or recitation is an error even when it carries partial text.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no candidates", errEmptyResponse)
	}

	cand := resp.Candidates[0]
	switch cand.FinishReason {
	case genai.FinishReasonSafety, genai.FinishReasonRecitation:
		return "", fmt.Errorf("generation stopped: %s", cand.FinishReason)
	}
	if cand.Content == nil {
		return "", fmt.Errorf("%w: no content (finish reason %s)", errEmptyResponse, cand.FinishReason)
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: no text parts", errEmptyResponse)
	}
	return sb.String(), nil
}
