package dimension

import (
	"math"
	"strings"
)

// InputAnalyzer scores the Input Alignment Index (IAI): how clear, specific
// and well-structured the user prompt is. It reads the prompt only.
type InputAnalyzer struct{}

// Keyword tables and sub-component weights. Kept declarative so the taxonomy
// can be tuned without touching control flow.
var (
	inputContextKeywords  = []string{"for", "about", "context", "because", "since", "given"}
	inputConcreteWords    = []string{"specific", "exact", "precise", "concrete", "detailed"}
	inputParameterWords   = []string{"number", "count", "length", "size", "time", "budget"}
	inputOrganizerWords   = []string{"first", "second", "then", "finally", "step"}
	inputClarityIndicator = []string{"please", "clearly", "specifically"}
)

const (
	inputWeightContext     = 0.20
	inputWeightSpecificity = 0.25
	inputWeightLanguage    = 0.20
	inputWeightStructure   = 0.15
	inputWeightSufficiency = 0.10
	inputWeightTone        = 0.10

	inputOptimalMinWords = 20
	inputOptimalMaxWords = 150
)

// InputDetails is the per-component breakdown attached to the IAI result.
type InputDetails struct {
	Components    map[string]float64 `json:"components"`
	WordCount     int                `json:"word_count"`
	SentenceCount int                `json:"sentence_count"`
}

func NewInputAnalyzer() *InputAnalyzer { return &InputAnalyzer{} }

func (a *InputAnalyzer) Key() string { return KeyInput }

func (a *InputAnalyzer) Evaluate(ctx *Context) Result {
	prompt := ctx.Prompt
	words := wordCount(prompt)
	sentences := len(splitSentences(prompt))

	components := map[string]float64{
		"context_completeness":    a.scoreContext(prompt),
		"specificity_level":       a.scoreSpecificity(prompt),
		"language_quality":        a.scoreLanguage(words, sentences),
		"structure_quality":       a.scoreStructure(prompt),
		"information_sufficiency": a.scoreSufficiency(words),
		"tone_sentiment":          a.scoreTone(prompt),
	}

	score := components["context_completeness"]*inputWeightContext +
		components["specificity_level"]*inputWeightSpecificity +
		components["language_quality"]*inputWeightLanguage +
		components["structure_quality"]*inputWeightStructure +
		components["information_sufficiency"]*inputWeightSufficiency +
		components["tone_sentiment"]*inputWeightTone
	score = math.Min(score, 1.0)

	return Result{
		Score:          score,
		Interpretation: a.interpret(score),
		Details: InputDetails{
			Components:    components,
			WordCount:     words,
			SentenceCount: sentences,
		},
	}
}

// Three context markers give full credit.
func (a *InputAnalyzer) scoreContext(prompt string) float64 {
	markers := countPresent(strings.ToLower(prompt), inputContextKeywords)
	return math.Min(float64(markers)/3.0, 1.0)
}

func (a *InputAnalyzer) scoreSpecificity(prompt string) float64 {
	lower := strings.ToLower(prompt)
	concrete := countPresent(lower, inputConcreteWords)
	params := countPresent(lower, inputParameterWords)
	specificity := (float64(concrete)*0.7 + float64(params)*0.3) / 5.0
	return math.Min(specificity, 1.0)
}

// Readability heuristic: average words per sentence, bucketed.
func (a *InputAnalyzer) scoreLanguage(words, sentences int) float64 {
	if words == 0 {
		return 0.0
	}
	avg := float64(words) / math.Max(float64(sentences), 1)
	switch {
	case avg < 5:
		return 0.3 // too fragmented
	case avg <= 20:
		return 0.8
	case avg <= 30:
		return 0.5
	default:
		return 0.2 // too verbose
	}
}

func (a *InputAnalyzer) scoreStructure(prompt string) float64 {
	organizers := countPresent(strings.ToLower(prompt), inputOrganizerWords)
	score := math.Min(float64(organizers)/3.0, 0.8)
	if strings.Contains(prompt, "?") {
		score += 0.2
	}
	return math.Min(score, 1.0)
}

func (a *InputAnalyzer) scoreSufficiency(words int) float64 {
	switch {
	case words < 5:
		return 0.1 // severely insufficient
	case words < inputOptimalMinWords:
		return 0.3 + (float64(words)/inputOptimalMinWords)*0.3
	case words <= inputOptimalMaxWords:
		span := float64(inputOptimalMaxWords - inputOptimalMinWords)
		return 0.6 + (float64(words-inputOptimalMinWords)/span)*0.3
	default:
		return 0.9 // very detailed, possibly verbose
	}
}

func (a *InputAnalyzer) scoreTone(prompt string) float64 {
	indicators := countPresent(strings.ToLower(prompt), inputClarityIndicator)
	bonus := math.Min(float64(indicators)*0.2, 0.4)
	return math.Min(0.6+bonus, 1.0)
}

func (a *InputAnalyzer) interpret(score float64) string {
	switch {
	case score >= 0.8:
		return "Excellent input alignment - highly specific and well-structured"
	case score >= 0.6:
		return "Good input alignment - clear with sufficient context"
	case score >= 0.4:
		return "Moderate input alignment - could benefit from more specificity"
	default:
		return "Poor input alignment - vague or insufficient context"
	}
}
