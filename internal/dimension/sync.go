package dimension

import (
	"math"
	"regexp"
	"strings"
)

// SyncAnalyzer scores the Synchronization Alignment Score (SAS): the degree
// of stylistic and intentional harmony between the user prompt and the AI
// response. It is the only dimension that compares the two texts directly.
type SyncAnalyzer struct {
	styles []styleFamily
}

type styleFamily struct {
	name     string
	patterns []*regexp.Regexp
}

const (
	syncWeightStyle       = 0.35
	syncWeightGoal        = 0.25
	syncWeightExpectation = 0.20
	syncWeightDepth       = 0.20
)

// Style taxonomy. Order matters: ties on the dominant style resolve to the
// earliest family.
var syncStyleTable = []struct {
	name  string
	exprs []string
}{
	{"formal", []string{
		`(?i)\b(?:therefore|however|furthermore|consequently|accordingly)\b`,
		`(?i)[a-z]+ly\b`,
		`in conclusion`, `in summary`, `it is evident`,
	}},
	{"informal", []string{
		`(?i)\b(?:hey|hi|hello|thanks|cheers|awesome|great|perfect)\b`,
		`let's`, `we'll`, `we're`, `i'm`, `you're`,
		`!\s*$`,
		`:\)|:D|;\)`,
	}},
	{"direct", []string{
		`^[a-z][^.!?]*:`, // leading label only, not mid-text lines
		`(?i)\b(?:yes|no|exactly|precisely|correct|incorrect)\b`,
		`\d+\.\s+`, `-\s+`,
		`key points?`, `main idea`, `bottom line`,
	}},
	{"narrative", []string{
		`[^.!?]{30,}`,
		`story`, `example`, `scenario`, `imagine`,
		`for instance`, `to illustrate`, `in other words`,
	}},
	{"data_driven", []string{
		`\d+%`, `\d+\.\d+`, `statistics?`, `data`,
		`research`, `study`, `analysis`, `metrics`,
		`chart`, `graph`, `table`, `figure`,
	}},
}

var (
	syncGoalKeywords = []string{
		"goal", "objective", "target", "aim", "purpose",
		"want", "need", "looking for", "trying to",
		"achieve", "accomplish", "solve", "fix",
	}
	syncGoalAcknowledgement = []string{
		"your goal", "your objective", "what you want",
		"to achieve", "to accomplish", "as you requested",
	}
	syncExpectationWords = []string{
		"list", "bullet", "summary", "detailed", "brief",
		"simple", "complex", "step by step", "example",
		"explain", "define", "compare", "analyze",
	}
)

// SyncDetails is the breakdown attached to the SAS result.
type SyncDetails struct {
	Components map[string]float64 `json:"component_scores"`
	UserStyle  map[string]float64 `json:"user_style"`
	AIStyle    map[string]float64 `json:"ai_style"`
}

func NewSyncAnalyzer() *SyncAnalyzer {
	a := &SyncAnalyzer{}
	for _, entry := range syncStyleTable {
		a.styles = append(a.styles, styleFamily{
			name:     entry.name,
			patterns: compilePatterns("style_"+entry.name, entry.exprs),
		})
	}
	return a
}

func (a *SyncAnalyzer) Key() string { return KeySync }

func (a *SyncAnalyzer) Evaluate(ctx *Context) Result {
	userStyle := a.styleVector(ctx.Prompt)
	aiStyle := a.styleVector(ctx.Response)

	components := map[string]float64{
		"style_sync":       a.styleSync(userStyle, aiStyle),
		"goal_sync":        a.goalSync(ctx.Prompt, ctx.Response),
		"expectation_sync": a.expectationSync(ctx.Prompt, ctx.Response),
		"depth_sync":       a.depthSync(ctx.Prompt, ctx.Response),
	}

	score := components["style_sync"]*syncWeightStyle +
		components["goal_sync"]*syncWeightGoal +
		components["expectation_sync"]*syncWeightExpectation +
		components["depth_sync"]*syncWeightDepth

	return Result{
		Score:          round3(score),
		Interpretation: a.interpret(score),
		Details: SyncDetails{
			Components: components,
			UserStyle:  userStyle,
			AIStyle:    aiStyle,
		},
	}
}

// styleVector measures each style family's intensity: 0.1 per pattern match,
// capped at 1.0 per family.
func (a *SyncAnalyzer) styleVector(text string) map[string]float64 {
	lower := strings.ToLower(text)
	vector := make(map[string]float64, len(a.styles))
	for _, fam := range a.styles {
		score := 0.0
		for _, re := range fam.patterns {
			score += float64(len(re.FindAllString(lower, -1))) * 0.1
		}
		vector[fam.name] = math.Min(score, 1.0)
	}
	return vector
}

func (a *SyncAnalyzer) dominantStyle(vector map[string]float64) (string, float64) {
	best, bestScore := "", -1.0
	for _, fam := range a.styles {
		if vector[fam.name] > bestScore {
			best, bestScore = fam.name, vector[fam.name]
		}
	}
	return best, bestScore
}

func (a *SyncAnalyzer) styleSync(userStyle, aiStyle map[string]float64) float64 {
	score := 0.0

	userDominant, userIntensity := a.dominantStyle(userStyle)
	aiDominant, _ := a.dominantStyle(aiStyle)
	if userDominant == aiDominant && userIntensity > 0.3 {
		score += 0.4
	}

	similarity := 0.0
	for _, fam := range a.styles {
		similarity += (1.0 - math.Abs(userStyle[fam.name]-aiStyle[fam.name])) * 0.2
	}
	score += math.Min(similarity, 0.6)

	return math.Min(score, 1.0)
}

func (a *SyncAnalyzer) goalSync(prompt, response string) float64 {
	promptLower := strings.ToLower(prompt)
	if countPresent(promptLower, syncGoalKeywords) == 0 {
		return 0.7 // no explicit goals to track
	}
	if countPresent(strings.ToLower(response), syncGoalAcknowledgement) > 0 {
		return 0.9
	}
	return 0.6
}

func (a *SyncAnalyzer) expectationSync(prompt, response string) float64 {
	promptLower := strings.ToLower(prompt)
	responseLower := strings.ToLower(response)
	responseWords := wordCount(responseLower)

	matches := 0
	for _, word := range syncExpectationWords {
		if !strings.Contains(promptLower, word) {
			continue
		}
		switch word {
		case "list", "bullet":
			if strings.Contains(responseLower, "\n- ") || strings.Contains(responseLower, "\n* ") {
				matches++
			}
		case "summary", "brief":
			if responseWords < 150 {
				matches++
			}
		case "detailed", "complex":
			if responseWords > 200 {
				matches++
			}
		default:
			if strings.Contains(responseLower, word) {
				matches++
			}
		}
	}

	if matches > 0 {
		return math.Min(0.5+float64(matches)*0.2, 1.0)
	}
	return 0.7
}

// depthSync compares response length against an ideal derived from the
// prompt length tier.
func (a *SyncAnalyzer) depthSync(prompt, response string) float64 {
	promptWords := wordCount(prompt)
	responseWords := wordCount(response)

	ideal := 200.0
	switch {
	case promptWords < 10:
		ideal = 50.0
	case promptWords < 30:
		ideal = 100.0
	}

	ratio := float64(responseWords) / ideal
	switch {
	case ratio >= 0.7 && ratio <= 1.3:
		return 0.9
	case ratio >= 0.4 && ratio <= 1.6:
		return 0.7
	default:
		return 0.4
	}
}

func (a *SyncAnalyzer) interpret(score float64) string {
	switch {
	case score >= 0.8:
		return "Excellent synchronization - AI perfectly matched your style"
	case score >= 0.6:
		return "Good synchronization - AI understood your approach"
	case score >= 0.4:
		return "Moderate synchronization - some style mismatches"
	case score >= 0.2:
		return "Poor synchronization - significant style differences"
	default:
		return "Very poor synchronization - complete style mismatch"
	}
}
