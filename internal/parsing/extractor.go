// Package parsing turns cleaned resume text into a structured ResumeDocument by driving the
// extraction oracle. Oracle failures never reach the caller: they produce an empty document
// marked as a fallback.
package parsing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-engine/internal/confidence"
	"github.com/jonathan/resume-engine/internal/ingestion"
	"github.com/jonathan/resume-engine/internal/llm"
	"github.com/jonathan/resume-engine/internal/logger"
	"github.com/jonathan/resume-engine/internal/metrics"
	"github.com/jonathan/resume-engine/internal/schemas"
	"github.com/jonathan/resume-engine/internal/types"
)

// Extractor structures resumes with a single oracle call per document
type Extractor struct {
	client  llm.Client
	tier    llm.ModelTier
	log     *zap.Logger
	metrics *metrics.Recorder
	schema  llm.ExtractionSchema
}

// Option configures an Extractor
type Option func(*Extractor)

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(e *Extractor) { e.log = logger.OrNop(log) }
}

// WithMetrics sets the metrics recorder
func WithMetrics(m *metrics.Recorder) Option {
	return func(e *Extractor) { e.metrics = m }
}

// WithTier selects the model tier used for extraction
func WithTier(tier llm.ModelTier) Option {
	return func(e *Extractor) { e.tier = tier }
}

// NewExtractor creates an extractor. A nil client makes every extraction fall back.
func NewExtractor(client llm.Client, opts ...Option) *Extractor {
	e := &Extractor{
		client: client,
		tier:   llm.TierStandard,
		log:    zap.NewNop(),
		schema: llm.ResumeSchema(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HasOracle reports whether an oracle client is configured
func (e *Extractor) HasOracle() bool {
	return e != nil && e.client != nil
}

// Extract returns a schema-valid document for text. On any failure the document is empty,
// has zero confidence and carries the fallback reason in its extraction info.
func (e *Extractor) Extract(ctx context.Context, text string) *types.ResumeDocument {
	cleaned := ingestion.Prepare(text)

	doc, err := e.structure(ctx, cleaned)
	if err != nil {
		reason := Reason(err)
		e.log.Warn("resume extraction fell back to empty document",
			zap.String("reason", reason),
			zap.Error(err))
		e.metrics.IncFallback(e.schema.Name, reason)
		return types.EmptyResume(cleaned, reason)
	}

	doc.ExtractedText = cleaned
	doc.Confidence = confidence.Score(doc)
	doc.Extraction = types.ExtractionInfo{Status: types.ExtractionOK}
	e.log.Debug("resume extracted",
		zap.String("name", doc.PersonalInfo.Name),
		zap.Int("skills", doc.Skills.Count()),
		zap.Int("experience", len(doc.Experience)),
		zap.Float64("confidence", doc.Confidence))
	return doc
}

func (e *Extractor) structure(ctx context.Context, cleaned string) (*types.ResumeDocument, error) {
	if cleaned == "" {
		return nil, errEmptyInput
	}
	if e.client == nil {
		return nil, &OracleError{Message: "no oracle client configured"}
	}

	prompt, err := llm.BuildExtractionPrompt(e.schema, cleaned)
	if err != nil {
		return nil, &OracleError{Message: "failed to build prompt", Cause: err}
	}

	raw, err := e.call(ctx, prompt)
	if err != nil {
		return nil, err
	}

	repaired, err := llm.RepairJSON(raw)
	if err != nil {
		return nil, &ParseError{Message: "oracle returned malformed JSON", Cause: err}
	}

	if err := schemas.Validate(schemas.Resume, []byte(repaired)); err != nil {
		return nil, &ParseError{Message: "oracle output does not match the resume schema", Cause: err}
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal([]byte(repaired), &doc); err != nil {
		return nil, &ParseError{Message: "failed to decode resume", Cause: err}
	}
	doc.Normalize()
	return &doc, nil
}

func (e *Extractor) call(ctx context.Context, prompt string) (string, error) {
	e.log.Debug("calling oracle",
		zap.String(logger.FieldSchema, e.schema.Name),
		zap.String("tier", string(e.tier)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, logger.PreviewLimit)))

	start := time.Now()
	raw, err := e.client.GenerateJSON(ctx, prompt, e.tier)
	elapsed := time.Since(start)
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, llm.ErrBreakerOpen) {
			outcome = metrics.OutcomeRejected
		}
		e.metrics.ObserveOracleCall(e.schema.Name, outcome, elapsed)
		return "", &OracleError{Message: "extraction request failed", Cause: err}
	}

	e.metrics.ObserveOracleCall(e.schema.Name, metrics.OutcomeOK, elapsed)
	e.log.Debug("oracle responded",
		zap.Duration("elapsed", elapsed),
		zap.String("response_preview", logger.TruncateForLog(raw, logger.PreviewLimit)))
	return raw, nil
}
