package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/resume-engine/internal/config"
	"github.com/jonathan/resume-engine/internal/experience"
	"github.com/jonathan/resume-engine/internal/llm"
	"github.com/jonathan/resume-engine/internal/logger"
	"github.com/jonathan/resume-engine/internal/matching"
	"github.com/jonathan/resume-engine/internal/metrics"
	"github.com/jonathan/resume-engine/internal/observability"
	"github.com/jonathan/resume-engine/internal/parsing"
	"github.com/jonathan/resume-engine/internal/pipeline"
	"github.com/jonathan/resume-engine/internal/profile"
	"github.com/jonathan/resume-engine/internal/ranking"
	"github.com/jonathan/resume-engine/internal/skills"
	"github.com/jonathan/resume-engine/internal/taxonomy"
)

// app holds the components shared by every command
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Recorder
	client  llm.Client
	printer *observability.Printer

	canon       *skills.Canonicalizer
	builder     *profile.Builder
	analyzer    *matching.Analyzer
	scorer      *ranking.Scorer
	extractor   *parsing.Extractor
	queryParser *ranking.QueryParser
	processor   *pipeline.Processor
}

// newApp loads configuration and wires the engine. With requireOracle set, a missing API key
// is an error; otherwise the oracle is simply left out.
func newApp(ctx context.Context, requireOracle bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiKeyFlag != "" {
		cfg.LLM.APIKey = apiKeyFlag
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	tax, err := taxonomy.Load(cfg.Taxonomy.Path)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		metrics: metrics.New(),
		printer: observability.NewPrinter(os.Stderr),
		canon:   skills.NewCanonicalizer(tax),
	}

	if cfg.LLM.APIKey == "" {
		if requireOracle {
			return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
		}
	} else {
		oracleCfg := cfg.OracleConfig()
		client, err := llm.NewClient(ctx, oracleCfg, cfg.LLM.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create oracle client: %w", err)
		}
		a.client = llm.NewBreakerClient(client, oracleCfg.Breaker, log)
	}

	a.builder = profile.NewBuilder(a.canon, experience.NewInferencer())
	a.analyzer = matching.NewAnalyzer(a.canon)
	a.scorer = ranking.NewScorer(tax)
	a.extractor = parsing.NewExtractor(a.client, parsing.WithLogger(log), parsing.WithMetrics(a.metrics))
	a.queryParser = ranking.NewQueryParser(a.client, tax, log, a.metrics)
	a.processor = pipeline.NewProcessor(a.extractor, a.builder, a.analyzer, log, a.metrics)
	return a, nil
}

// Close releases the oracle client and flushes the logger
func (a *app) Close() {
	if a.client != nil {
		if err := a.client.Close(); err != nil {
			a.log.Warn("failed to close oracle client", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

// writeJSON writes v as indented JSON to path, or to w when path is empty
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// readJSON decodes the JSON file at path into v
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
