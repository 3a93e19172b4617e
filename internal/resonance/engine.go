// Package resonance combines the seven dimension analyzers into the
// composite Resonance Index for one user-prompt / AI-response exchange.
package resonance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/formianlabs/resonance/internal/conversation"
	"github.com/formianlabs/resonance/internal/dimension"
)

// ErrEmptyPrompt is returned when the caller supplies no user prompt.
// Callers surface it as a client error; no partial analysis is attempted.
var ErrEmptyPrompt = errors.New("user prompt is required")

// DefaultConversationID keys exchanges that arrive without an explicit
// conversation.
const DefaultConversationID = "default"

// Aggregation weights per dimension. They sum to exactly 1.0.
var Weights = map[string]float64{
	dimension.KeyInput:       0.25,
	dimension.KeyAnchors:     0.20,
	dimension.KeyProcess:     0.20,
	dimension.KeySync:        0.15,
	dimension.KeyProgression: 0.10,
	dimension.KeySafety:      0.10,
}

// dimensionOrder fixes the order of scores and interpretations in results.
var dimensionOrder = []string{
	dimension.KeyInput,
	dimension.KeyAnchors,
	dimension.KeyProcess,
	dimension.KeySync,
	dimension.KeyProgression,
	dimension.KeySafety,
}

// Request is one exchange to score. Response may be empty; History fallback
// constants apply then. ConversationID selects the history window.
type Request struct {
	Prompt         string
	Response       string
	ConversationID string
}

// Alignment is the modulator portion of a composite result.
type Alignment struct {
	Score      float64 `json:"score"`
	Intent     string  `json:"detected"`
	Confidence float64 `json:"confidence"`
}

// Composite is the full scoring result for one exchange.
type Composite struct {
	ResonanceIndex  float64                     `json:"resonance_index"`
	DimensionScores map[string]float64          `json:"dimension_scores"`
	Alignment       Alignment                   `json:"alignment"`
	Interpretations []string                    `json:"interpretations"`
	Breakdown       map[string]dimension.Result `json:"breakdown"`
}

// Engine runs every analyzer over an exchange and aggregates the results.
// It owns no history itself; windows live behind the conversation.Store.
type Engine struct {
	dimensions []dimension.Analyzer
	alignment  *dimension.AlignmentAnalyzer
	store      conversation.Store
	logger     *log.Logger
}

func NewEngine(store conversation.Store, logger *log.Logger) *Engine {
	return &Engine{
		dimensions: []dimension.Analyzer{
			dimension.NewInputAnalyzer(),
			dimension.NewAnchorAnalyzer(),
			dimension.NewProcessAnalyzer(),
			dimension.NewSyncAnalyzer(),
			dimension.NewProgressionAnalyzer(),
			dimension.NewSafetyAnalyzer(),
		},
		alignment: dimension.NewAlignmentAnalyzer(),
		store:     store,
		logger:    logger,
	}
}

// Analyze scores one exchange. With a response present it runs all seven
// analyzers and appends a turn to the conversation window; without one it
// applies the documented fallback constants (CAI=0, PAS=0, SAS=CPS=CSS=0.5,
// AM=1.0 with precision_seeker at confidence 0.5).
func (e *Engine) Analyze(ctx context.Context, req Request) (*Composite, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = DefaultConversationID
	}
	hasResponse := strings.TrimSpace(req.Response) != ""

	ectx := &dimension.Context{
		Prompt:        req.Prompt,
		Response:      req.Response,
		PromptWords:   len(strings.Fields(req.Prompt)),
		ResponseWords: len(strings.Fields(req.Response)),
	}

	if hasResponse {
		history, err := e.store.Window(ctx, conversationID)
		if err != nil {
			return nil, fmt.Errorf("load conversation window: %w", err)
		}
		ectx.History = history
	}

	results := make(map[string]dimension.Result, len(dimensionOrder)+1)
	for _, analyzer := range e.dimensions {
		switch {
		case analyzer.Key() == dimension.KeyInput:
			results[analyzer.Key()] = analyzer.Evaluate(ectx)
		case hasResponse:
			results[analyzer.Key()] = analyzer.Evaluate(ectx)
		default:
			results[analyzer.Key()] = fallbackResult(analyzer.Key())
		}
	}

	var alignment dimension.Result
	if hasResponse {
		alignment = e.alignment.Evaluate(ectx)
	} else {
		alignment = dimension.Result{
			Score:          1.0,
			Interpretation: "Baseline alignment",
			Details: dimension.AlignmentDetails{
				Intent:     dimension.IntentPrecisionSeeker,
				Confidence: 0.5,
			},
		}
	}
	results[dimension.KeyAlignment] = alignment

	if hasResponse {
		turn := dimension.Turn{
			UserPrompt: req.Prompt,
			AIResponse: req.Response,
			CPSLevel:   achievedLevel(results[dimension.KeyProgression]),
		}
		// The result is already computed; a failed append loses history
		// context for later turns but does not invalidate this score.
		if err := e.store.Append(ctx, conversationID, turn); err != nil {
			e.logger.Printf("append conversation turn: %v", err)
		}
	}

	return assemble(results), nil
}

func fallbackResult(key string) dimension.Result {
	switch key {
	case dimension.KeyAnchors, dimension.KeyProcess:
		return dimension.Result{Score: 0.0, Interpretation: "No AI response provided"}
	default:
		return dimension.Result{Score: 0.5, Interpretation: "Insufficient data for analysis"}
	}
}

func achievedLevel(result dimension.Result) int {
	if details, ok := result.Details.(dimension.ProgressionDetails); ok {
		return details.AchievedLevel
	}
	return 1
}

func assemble(results map[string]dimension.Result) *Composite {
	amResult := results[dimension.KeyAlignment]
	amDetails, _ := amResult.Details.(dimension.AlignmentDetails)

	weighted := 0.0
	scores := make(map[string]float64, len(dimensionOrder))
	interpretations := make([]string, 0, len(dimensionOrder)+1)
	for _, key := range dimensionOrder {
		result := results[key]
		weighted += result.Score * Weights[key]
		scores[key] = round3(result.Score)
		interpretations = append(interpretations,
			fmt.Sprintf("%s: %s", strings.ToUpper(key), result.Interpretation))
	}
	interpretations = append(interpretations, fmt.Sprintf("AM: %s", amResult.Interpretation))

	return &Composite{
		ResonanceIndex:  round3(weighted * amResult.Score),
		DimensionScores: scores,
		Alignment: Alignment{
			Score:      amResult.Score,
			Intent:     amDetails.Intent,
			Confidence: amDetails.Confidence,
		},
		Interpretations: interpretations,
		Breakdown:       results,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
