package server

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-engine/internal/ingestion"
	"github.com/jonathan/resume-engine/internal/logger"
	"github.com/jonathan/resume-engine/internal/matching"
	"github.com/jonathan/resume-engine/internal/pipeline"
	"github.com/jonathan/resume-engine/internal/ranking"
	"github.com/jonathan/resume-engine/internal/types"
)

// ParseRequest is the body of POST /v1/resumes/parse
type ParseRequest struct {
	Text   string `json:"text" validate:"required,max=200000"`
	Format string `json:"format,omitempty" validate:"omitempty,oneof=text html markdown"`
}

// ParseResponse is the structured resume and its derived profile
type ParseResponse struct {
	Document *types.ResumeDocument  `json:"document"`
	Profile  types.CandidateProfile `json:"profile"`
}

// MatchRequest is the body of POST /v1/match. Requirement is a skill array or a job description.
type MatchRequest struct {
	Skills      *types.SkillSet       `json:"skills" validate:"required"`
	Requirement *matching.Requirement `json:"requirement" validate:"required"`
}

// RankRequest is the body of POST /v1/rank. Intent wins over Query when both are given.
type RankRequest struct {
	Query    string                   `json:"query,omitempty" validate:"max=2000"`
	Intent   *types.SearchIntent      `json:"intent,omitempty"`
	Profiles []types.CandidateProfile `json:"profiles" validate:"required,min=1,max=1000"`
}

// RankResponse is the ranked result set with the intent it was ranked against
type RankResponse struct {
	Intent  types.SearchIntent        `json:"intent"`
	Source  string                    `json:"source"`
	Results []ranking.RankedCandidate `json:"results"`
}

// SearchRequest is the body of POST /v1/search/parse
type SearchRequest struct {
	Query string `json:"query" validate:"required,max=2000"`
}

// BatchRequest is the body of POST /v1/batch and /v1/batch/stream
type BatchRequest struct {
	Items       []pipeline.Item       `json:"items" validate:"required,min=1,max=100,dive"`
	Requirement *matching.Requirement `json:"requirement,omitempty"`
}

// BatchResponse holds one result per item in request order
type BatchResponse struct {
	Results []pipeline.BatchResult `json:"results"`
}

func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if s.deps.Extractor == nil {
		s.fail(w, r, &ErrUnavailable{Component: "resume extraction"})
		return
	}

	text := req.Text
	if strings.EqualFold(req.Format, ingestion.FormatHTML) {
		extracted, err := ingestion.FromHTML(text)
		if err != nil {
			s.fail(w, r, &ErrValidation{Field: "text", Message: err.Error()})
			return
		}
		text = extracted
	}

	doc := s.deps.Extractor.Extract(r.Context(), text)
	s.jsonResponse(w, http.StatusOK, ParseResponse{
		Document: doc,
		Profile:  s.deps.Builder.Build(doc),
	})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	candidate := s.deps.Canonicalizer.CanonicalizeSet(*req.Skills)
	result := s.deps.Analyzer.CalculateSkillMatch(candidate, *req.Requirement)
	s.deps.Metrics.IncMatch()
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	var resp RankResponse
	switch {
	case req.Intent != nil:
		resp.Intent = *req.Intent
		resp.Source = "request"
	case strings.TrimSpace(req.Query) != "":
		parsed := s.deps.QueryParser.Parse(r.Context(), req.Query)
		resp.Intent = parsed.Intent
		resp.Source = parsed.Source
	default:
		s.fail(w, r, &ErrValidation{Field: "query", Message: "query or intent is required"})
		return
	}

	resp.Results = s.deps.Scorer.Rank(req.Profiles, resp.Intent)
	s.deps.Metrics.IncRanking()
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleParseSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.deps.QueryParser.Parse(r.Context(), req.Query))
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if s.deps.Processor == nil {
		s.fail(w, r, &ErrUnavailable{Component: "batch processing"})
		return
	}

	results, err := s.deps.Processor.RunBatch(r.Context(), req.Items, pipeline.Options{
		Concurrency: s.concurrency,
		Requirement: req.Requirement,
	})
	if err != nil {
		s.log.Warn("batch interrupted",
			zap.String(logger.FieldRequestID, RequestID(r.Context())),
			zap.Error(err))
	}
	s.jsonResponse(w, http.StatusOK, BatchResponse{Results: results})
}

// handleBatchStream runs a batch and streams an "item" event per finished document, then a
// "complete" event with every result
func (s *Server) handleBatchStream(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if s.deps.Processor == nil {
		s.fail(w, r, &ErrUnavailable{Component: "batch processing"})
		return
	}

	stream, err := newEventStream(w)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	results, err := s.deps.Processor.RunBatch(r.Context(), req.Items, pipeline.Options{
		Concurrency: s.concurrency,
		Requirement: req.Requirement,
		OnProgress: func(event pipeline.ProgressEvent) {
			if err := stream.send("item", event); err != nil {
				s.log.Debug("failed to write progress event", zap.Error(err))
			}
		},
	})
	if err != nil {
		// the client went away; the error event is best effort
		_ = stream.send("error", map[string]string{"error": err.Error()})
		return
	}
	if err := stream.send("complete", BatchResponse{Results: results}); err != nil {
		s.log.Debug("failed to write complete event", zap.Error(err))
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"oracle": s.deps.Extractor.HasOracle(),
	})
}
