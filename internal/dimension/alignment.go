package dimension

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// AlignmentAnalyzer computes the Alignment Modulator (AM): a multiplier in
// [0.8,1.2] reflecting how well the response style fits the detected user
// intent pattern.
type AlignmentAnalyzer struct {
	intents []intentPattern
	styles  []responseStyle
}

// User intent patterns (UIP).
const (
	IntentPrecisionSeeker   = "precision_seeker"
	IntentStrategicExplorer = "strategic_explorer"
	IntentCoCreationPartner = "co_creation_partner"
)

const (
	alignmentFloor   = 0.8
	alignmentCeiling = 1.2

	// precision seekers lose credit past this length
	alignmentVerboseWords = 300
	alignmentConciseWords = 150
)

type intentPattern struct {
	name      string
	keywords  []*regexp.Regexp
	preferred []string
}

type responseStyle struct {
	name     string
	patterns []*regexp.Regexp
}

// Intent taxonomy. Preferred styles without a detector contribute 0.0 to the
// style match; the normalizer still divides by the full preferred-list
// length, so each intent's reachable match ceiling stays below 1.0.
var alignmentIntentTable = []struct {
	name      string
	keywords  []string
	preferred []string
}{
	{
		name:      IntentPrecisionSeeker,
		keywords:  []string{"exact", "define", "list", "specifically", "no fluff", "correct", "only", "step-by-step"},
		preferred: []string{"concise", "structured", "bounded", "bullet points"},
	},
	{
		name:      IntentStrategicExplorer,
		keywords:  []string{"framework", "model", "system", "big picture", "how does this fit", "map", "concept"},
		preferred: []string{"framework", "analogy", "structured", "overview"},
	},
	{
		name:      IntentCoCreationPartner,
		keywords:  []string{"let's", "build", "together", "collaborate", "your input", "what do you think"},
		preferred: []string{"interactive", "iterative", "suggestive", "questioning"},
	},
}

var alignmentStyleTable = []struct {
	name  string
	exprs []string
}{
	{"concise", nil}, // length-based, no patterns
	{"structured", []string{`\n\d+\.`, `\n- `, `first`, `next`, `finally`}},
	{"interactive", []string{`\?`, `your input`, `collaborate`}},
	{"framework", []string{`like a`, `similar to`, `framework`, `model`}},
}

// AlignmentDetails is the breakdown attached to the AM result.
type AlignmentDetails struct {
	Intent     string             `json:"detected"`
	Confidence float64            `json:"confidence"`
	StyleScore map[string]float64 `json:"ai_response_style"`
}

func NewAlignmentAnalyzer() *AlignmentAnalyzer {
	a := &AlignmentAnalyzer{}
	for _, entry := range alignmentIntentTable {
		a.intents = append(a.intents, intentPattern{
			name:      entry.name,
			keywords:  compileKeywords("intent_"+entry.name, entry.keywords),
			preferred: entry.preferred,
		})
	}
	for _, entry := range alignmentStyleTable {
		a.styles = append(a.styles, responseStyle{
			name:     entry.name,
			patterns: compilePatterns("style_"+entry.name, entry.exprs),
		})
	}
	return a
}

func (a *AlignmentAnalyzer) Key() string { return KeyAlignment }

func (a *AlignmentAnalyzer) Evaluate(ctx *Context) Result {
	intent, confidence := a.detectIntent(ctx.Prompt)
	styleScores := a.styleScores(ctx.Response)
	score := a.modulator(intent, styleScores, ctx.Response)

	return Result{
		Score:          round3(score),
		Interpretation: a.interpret(score, intent.name),
		Details: AlignmentDetails{
			Intent:     intent.name,
			Confidence: round3(confidence),
			StyleScore: styleScores,
		},
	}
}

// detectIntent picks the intent with the most keyword hits; ties and empty
// matches default to precision_seeker. Three hits give full confidence.
func (a *AlignmentAnalyzer) detectIntent(prompt string) (intentPattern, float64) {
	lower := strings.ToLower(prompt)
	best := a.intents[0]
	bestScore := 0
	for _, intent := range a.intents {
		score := countRegexHits(intent.keywords, lower)
		if score > bestScore {
			best, bestScore = intent, score
		}
	}
	confidence := math.Min(float64(bestScore)/3.0, 1.0)
	return best, confidence
}

func (a *AlignmentAnalyzer) styleScores(response string) map[string]float64 {
	lower := strings.ToLower(response)
	scores := make(map[string]float64, len(a.styles))
	for _, style := range a.styles {
		score := 0.0
		if style.name == "concise" && wordCount(response) <= alignmentConciseWords {
			score += 0.5
		}
		for _, re := range style.patterns {
			if re.MatchString(lower) {
				score += 0.3
			}
		}
		scores[style.name] = math.Min(score, 1.0)
	}
	return scores
}

func (a *AlignmentAnalyzer) modulator(intent intentPattern, styleScores map[string]float64, response string) float64 {
	match := 0.0
	for _, preferred := range intent.preferred {
		match += styleScores[preferred]
	}
	match = math.Min(match/float64(len(intent.preferred)), 1.0)

	score := 1.0
	switch {
	case match >= 0.8:
		score = 1.2
	case match >= 0.6:
		score = 1.1
	case match >= 0.4:
		score = 1.0
	case match >= 0.2:
		score = 0.9
	default:
		score = 0.8
	}

	words := wordCount(response)
	if intent.name == IntentPrecisionSeeker && words > alignmentVerboseWords {
		score -= 0.1
	}
	if intent.name == IntentCoCreationPartner && styleScores["interactive"] > 0.5 {
		score += 0.1
	}

	return math.Max(alignmentFloor, math.Min(score, alignmentCeiling))
}

func (a *AlignmentAnalyzer) interpret(score float64, intent string) string {
	switch {
	case score >= 1.15:
		return fmt.Sprintf("Excellent alignment - AI perfectly matched %s intent", intent)
	case score >= 1.05:
		return fmt.Sprintf("Good alignment - AI understood %s requirements", intent)
	case score >= 0.95:
		return fmt.Sprintf("Neutral alignment - Basic %s understanding", intent)
	case score >= 0.85:
		return fmt.Sprintf("Slight misalignment - Some %s style mismatches", intent)
	default:
		return fmt.Sprintf("Significant misalignment - Poor %s style matching", intent)
	}
}
