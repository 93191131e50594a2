// Package pipeline runs documents through extraction, profiling and matching, one document
// per worker, without letting one document's failure affect the others.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-engine/internal/logger"
	"github.com/jonathan/resume-engine/internal/matching"
	"github.com/jonathan/resume-engine/internal/metrics"
	"github.com/jonathan/resume-engine/internal/parsing"
	"github.com/jonathan/resume-engine/internal/profile"
	"github.com/jonathan/resume-engine/internal/types"
)

// Item statuses
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// DefaultConcurrency bounds in-flight documents when Options.Concurrency is unset
const DefaultConcurrency = 4

// Item is one document to process
type Item struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text" validate:"required"`
}

// BatchResult is the outcome for one item, at the item's input position
type BatchResult struct {
	ID       string                  `json:"id"`
	Status   string                  `json:"status"`
	Error    string                  `json:"error,omitempty"`
	Document *types.ResumeDocument   `json:"document,omitempty"`
	Profile  *types.CandidateProfile `json:"profile,omitempty"`
	Match    *types.MatchResult      `json:"match,omitempty"`
	Millis   int64                   `json:"duration_ms"`
}

// ProgressEvent reports a finished item
type ProgressEvent struct {
	ID     string `json:"id"`
	Index  int    `json:"index"`
	Status string `json:"status"`
}

// ProgressCallback is called once per finished item, possibly from several goroutines
type ProgressCallback func(event ProgressEvent)

// Options configures a batch run
type Options struct {
	Concurrency int
	// Requirement, when set, is matched against every successfully extracted profile
	Requirement *matching.Requirement
	OnProgress  ProgressCallback
}

// Processor holds the components shared read-only by every worker
type Processor struct {
	extractor *parsing.Extractor
	builder   *profile.Builder
	analyzer  *matching.Analyzer
	log       *zap.Logger
	metrics   *metrics.Recorder
}

// NewProcessor wires a processor from its components
func NewProcessor(extractor *parsing.Extractor, builder *profile.Builder, analyzer *matching.Analyzer, log *zap.Logger, m *metrics.Recorder) *Processor {
	if builder == nil {
		builder = profile.NewBuilder(nil, nil)
	}
	if analyzer == nil {
		analyzer = matching.NewAnalyzer(nil)
	}
	return &Processor{
		extractor: extractor,
		builder:   builder,
		analyzer:  analyzer,
		log:       logger.OrNop(log),
		metrics:   m,
	}
}

// RunBatch processes items concurrently and returns one result per item in input order.
// It returns an error only when ctx is cancelled before every item was attempted.
func (p *Processor) RunBatch(ctx context.Context, items []Item, opts Options) ([]BatchResult, error) {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]BatchResult, len(items))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range items {
		g.Go(func() error {
			results[i] = p.Process(gCtx, item, opts.Requirement)
			if opts.OnProgress != nil {
				opts.OnProgress(ProgressEvent{ID: results[i].ID, Index: i, Status: results[i].Status})
			}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Status == StatusFailed {
			failed++
		}
	}
	p.log.Info("batch finished",
		zap.Int("items", len(items)),
		zap.Int("failed", failed),
		zap.Int("concurrency", limit))

	return results, ctx.Err()
}

// Process runs one item. Failures are reported in the result, never returned.
func (p *Processor) Process(ctx context.Context, item Item, req *matching.Requirement) (result BatchResult) {
	start := time.Now()
	result.ID = item.ID
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	defer func() {
		result.Millis = time.Since(start).Milliseconds()
		p.metrics.IncBatchItem(result.Status)
	}()

	log := p.log.With(zap.String(logger.FieldDocument, result.ID))

	if err := ctx.Err(); err != nil {
		result.Status = StatusFailed
		result.Error = err.Error()
		return result
	}
	if p.extractor == nil {
		result.Status = StatusFailed
		result.Error = "no extractor configured"
		return result
	}

	doc := p.extractor.Extract(ctx, item.Text)
	result.Document = doc
	if doc.Degraded() {
		result.Status = StatusFailed
		result.Error = fmt.Sprintf("extraction fell back: %s", doc.Extraction.Reason)
		log.Warn("batch item degraded", zap.String("reason", doc.Extraction.Reason))
		return result
	}

	prof := p.builder.Build(doc)
	result.Profile = &prof
	if req != nil {
		match := p.analyzer.CalculateSkillMatch(prof.Skills, *req)
		result.Match = &match
		p.metrics.IncMatch()
	}

	result.Status = StatusOK
	log.Debug("batch item processed",
		zap.Float64("confidence", doc.Confidence),
		zap.Float64("years", prof.Experience))
	return result
}
