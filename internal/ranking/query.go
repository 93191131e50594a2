package ranking

import (
	"context"
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-engine/internal/llm"
	"github.com/jonathan/resume-engine/internal/logger"
	"github.com/jonathan/resume-engine/internal/metrics"
	"github.com/jonathan/resume-engine/internal/parsing"
	"github.com/jonathan/resume-engine/internal/schemas"
	"github.com/jonathan/resume-engine/internal/taxonomy"
	"github.com/jonathan/resume-engine/internal/types"
)

// Intent sources
const (
	SourceOracle   = "oracle"
	SourceFallback = "fallback"
)

var yearsPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\b`)

// ParsedQuery is a search intent and how it was obtained
type ParsedQuery struct {
	Intent types.SearchIntent `json:"intent"`
	Source string             `json:"source"`
	Reason string             `json:"reason,omitempty"`
}

// QueryParser turns free-text recruiter queries into SearchIntents
type QueryParser struct {
	client  llm.Client
	tax     *taxonomy.Taxonomy
	log     *zap.Logger
	metrics *metrics.Recorder
	schema  llm.ExtractionSchema
}

// NewQueryParser creates a parser. A nil client always uses the deterministic parse.
func NewQueryParser(client llm.Client, tax *taxonomy.Taxonomy, log *zap.Logger, m *metrics.Recorder) *QueryParser {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &QueryParser{
		client:  client,
		tax:     tax,
		log:     logger.OrNop(log),
		metrics: m,
		schema:  llm.SearchIntentSchema(),
	}
}

// Parse extracts a search intent from query, asking the oracle first
func (p *QueryParser) Parse(ctx context.Context, query string) ParsedQuery {
	intent, err := p.fromOracle(ctx, query)
	if err == nil {
		return ParsedQuery{Intent: intent, Source: SourceOracle}
	}

	reason := parsing.Reason(err)
	p.log.Info("search query parsed without oracle",
		zap.String("reason", reason),
		zap.Error(err))
	p.metrics.IncFallback(p.schema.Name, reason)
	return ParsedQuery{Intent: p.Fallback(query), Source: SourceFallback, Reason: reason}
}

func (p *QueryParser) fromOracle(ctx context.Context, query string) (types.SearchIntent, error) {
	var intent types.SearchIntent
	if strings.TrimSpace(query) == "" {
		return intent, &parsing.OracleError{Message: "empty query"}
	}
	if p.client == nil {
		return intent, &parsing.OracleError{Message: "no oracle client configured"}
	}

	prompt, err := llm.BuildExtractionPrompt(p.schema, query)
	if err != nil {
		return intent, &parsing.OracleError{Message: "failed to build prompt", Cause: err}
	}

	start := time.Now()
	raw, err := p.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		p.metrics.ObserveOracleCall(p.schema.Name, metrics.OutcomeError, time.Since(start))
		return intent, &parsing.OracleError{Message: "search intent request failed", Cause: err}
	}
	p.metrics.ObserveOracleCall(p.schema.Name, metrics.OutcomeOK, time.Since(start))

	repaired, err := llm.RepairJSON(raw)
	if err != nil {
		return intent, &parsing.ParseError{Message: "oracle returned malformed JSON", Cause: err}
	}
	if err := schemas.Validate(schemas.SearchIntent, []byte(repaired)); err != nil {
		return intent, &parsing.ParseError{Message: "oracle output does not match the search intent schema", Cause: err}
	}
	if err := json.Unmarshal([]byte(repaired), &intent); err != nil {
		return intent, &parsing.ParseError{Message: "failed to decode search intent", Cause: err}
	}
	return normalizeIntent(intent), nil
}

// Fallback parses query without the oracle: taxonomy tokens and aliases become skills,
// an "N+ years" phrase becomes the experience filter and a known city becomes the location.
func (p *QueryParser) Fallback(query string) types.SearchIntent {
	text := strings.ToLower(query)
	intent := types.SearchIntent{
		Skills:       p.scanSkills(text),
		Requirements: []string{},
	}

	if m := yearsPattern.FindStringSubmatch(text); m != nil {
		if years, err := strconv.ParseFloat(m[1], 64); err == nil {
			intent.Filters.Experience = &years
		}
	}

	for _, group := range p.tax.CityAliases() {
		if len(group) == 0 {
			continue
		}
		if anyWord(text, group) {
			intent.Filters.Location = group[0]
			break
		}
	}
	return intent
}

func (p *QueryParser) scanSkills(text string) []string {
	found := []string{}
	seen := map[string]bool{}
	add := func(token string) {
		if !seen[token] {
			seen[token] = true
			found = append(found, token)
		}
	}

	for _, token := range p.tax.AllTokens() {
		if containsWord(text, token) {
			add(token)
		}
	}

	aliases := p.tax.Aliases()
	keys := make([]string, 0, len(aliases))
	for alias := range aliases {
		keys = append(keys, alias)
	}
	sort.Strings(keys)
	for _, alias := range keys {
		if containsWord(text, alias) {
			add(aliases[alias])
		}
	}
	return found
}

func anyWord(text string, words []string) bool {
	for _, w := range words {
		if containsWord(text, w) {
			return true
		}
	}
	return false
}

func normalizeIntent(intent types.SearchIntent) types.SearchIntent {
	intent.Skills = trimList(intent.Skills)
	intent.Requirements = trimList(intent.Requirements)
	intent.Filters.Location = strings.TrimSpace(intent.Filters.Location)
	return intent
}

func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
