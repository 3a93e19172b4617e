// Package server exposes the resonance engine over HTTP. It owns request
// validation, feedback persistence, and metric recording; all scoring lives
// in the engine.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/formianlabs/resonance/internal/config"
	"github.com/formianlabs/resonance/internal/dimension"
	"github.com/formianlabs/resonance/internal/feedback"
	"github.com/formianlabs/resonance/internal/metrics"
	"github.com/formianlabs/resonance/internal/resonance"
)

// Server wires the engine and feedback recorder behind the HTTP API.
type Server struct {
	cfg      *config.Config
	engine   *resonance.Engine
	recorder *feedback.Recorder
	validate *validator.Validate
	logger   *log.Logger
}

type analyzeRequest struct {
	UserPrompt     string `json:"user_prompt" validate:"required"`
	AIResponse     string `json:"ai_response"`
	ConversationID string `json:"conversation_id"`
}

type feedbackRequest struct {
	UserRating      string          `json:"user_rating" validate:"required,oneof=great good mediocre bad terrible"`
	UserComments    string          `json:"user_comments"`
	UserEmail       string          `json:"user_email" validate:"omitempty,email"`
	UserPrompt      string          `json:"user_prompt"`
	AIResponse      string          `json:"ai_response"`
	AnalysisResults json.RawMessage `json:"analysis_results"`
}

type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func New(cfg *config.Config, engine *resonance.Engine, recorder *feedback.Recorder, logger *log.Logger) *Server {
	return &Server{
		cfg:      cfg,
		engine:   engine,
		recorder: recorder,
		validate: validator.New(),
		logger:   logger,
	}
}

// Routes builds the HTTP mux.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/feedback", s.handleFeedback)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	if s.cfg.Metrics.Enabled {
		mux.Handle("GET "+s.cfg.Metrics.Endpoint, promhttp.Handler())
	}
	return mux
}

// Start runs the HTTP server until it fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
	s.logger.Printf("listening on http://%s", addr)
	return srv.ListenAndServe()
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.New().String()
	metrics.RequestsTotal.Inc()

	var req analyzeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body", requestID)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.sendError(w, http.StatusBadRequest, "user prompt is required", requestID)
		return
	}

	result, err := s.engine.Analyze(r.Context(), resonance.Request{
		Prompt:         req.UserPrompt,
		Response:       req.AIResponse,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		if errors.Is(err, resonance.ErrEmptyPrompt) {
			s.sendError(w, http.StatusBadRequest, err.Error(), requestID)
			return
		}
		s.logger.Printf("analyze failed (request %s): %v", requestID, err)
		s.sendError(w, http.StatusInternalServerError, "analysis failed", requestID)
		return
	}

	s.recordMetrics(result, time.Since(start))
	s.sendJSON(w, http.StatusOK, analyzeResponseBody(result))
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()

	var req feedbackRequest
	if err := s.decode(w, r, &req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body", requestID)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.sendError(w, http.StatusBadRequest, fmt.Sprintf("invalid feedback: %v", err), requestID)
		return
	}

	submissionID, err := s.recorder.Submit(feedback.Record{
		UserRating:   req.UserRating,
		UserComments: req.UserComments,
		UserEmail:    req.UserEmail,
		Interaction: feedback.Interaction{
			UserPrompt:      req.UserPrompt,
			AIResponse:      req.AIResponse,
			AnalysisResults: req.AnalysisResults,
		},
	})
	if err != nil {
		s.logger.Printf("feedback submit failed (request %s): %v", requestID, err)
		s.sendError(w, http.StatusInternalServerError, "failed to submit feedback", requestID)
		return
	}

	metrics.RecordFeedback(req.UserRating)
	s.sendJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"submission_id": submissionID,
		"message":       "Thank you for your feedback! It has been submitted successfully.",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "resonance"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"metrics_enabled": s.cfg.Metrics.Enabled,
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxRequestSize)
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// analyzeResponseBody flattens a composite result into the wire shape:
// top-level scores plus the nested detailed_analysis breakdown.
func analyzeResponseBody(result *resonance.Composite) map[string]any {
	breakdown := make(map[string]any, len(result.Breakdown))
	for key, dim := range result.Breakdown {
		breakdown[key+"_details"] = dim
	}
	return map[string]any{
		"success":             true,
		"resonance_index":     result.ResonanceIndex,
		"alignment_modulator": result.Alignment.Score,
		"user_intent_pattern": map[string]any{
			"detected":   result.Alignment.Intent,
			"confidence": result.Alignment.Confidence,
		},
		"dimension_scores": result.DimensionScores,
		"detailed_analysis": map[string]any{
			"interpretation":      result.Interpretations,
			"component_breakdown": breakdown,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
}

func (s *Server) recordMetrics(result *resonance.Composite, elapsed time.Duration) {
	metrics.LatencyHistogram.Observe(elapsed.Seconds())
	metrics.IndexScore.Observe(result.ResonanceIndex)
	for key, score := range result.DimensionScores {
		metrics.RecordDimensionScore(key, score)
	}
	metrics.RecordDimensionScore(dimension.KeyAlignment, result.Alignment.Score)
	metrics.RecordIntent(result.Alignment.Intent)
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Printf("failed to write response: %v", err)
	}
}

func (s *Server) sendError(w http.ResponseWriter, status int, message, requestID string) {
	s.sendJSON(w, status, errorResponse{Success: false, Error: message, RequestID: requestID})
}
