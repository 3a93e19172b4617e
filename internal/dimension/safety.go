package dimension

import (
	"fmt"
	"regexp"
	"strings"
)

// SafetyAnalyzer scores the Cognitive Safety Scale (CSS): the level of trust
// and psychological safety an exchange supports. It reads both texts plus
// the derived word-count metadata.
type SafetyAnalyzer struct {
	positive      []*regexp.Regexp
	negative      []*regexp.Regexp
	collaborative []*regexp.Regexp
	empowerment   []*regexp.Regexp
}

// Sub-score blend and verbosity thresholds.
const (
	safetyWeightAI      = 0.6
	safetyWeightComfort = 0.3
	safetyWeightContext = 0.1

	safetyVerbosityRatio   = 5.0
	safetyConcisenessRatio = 0.5
)

var (
	safetyPositiveTable = []string{
		`does this make sense`, `please clarify`, `let me know`,
		`your thoughts`, `what do you think`, `feel free to ask`,
		`i want to ensure`, `correct me if i'm wrong`, `am i understanding`,
		`we can adjust`, `your feedback`, `how does that sound`,
		`comfortable with`, `happy to explain`, `take your time`,
	}
	safetyNegativeTable = []string{
		`obviously`, `clearly`, `everyone knows`,
		`you should know`, `basic knowledge`, `simple concept`,
		`easy to understand`, `no excuse for not knowing`,
		`if you can't understand this`, `even a child could`,
	}
	safetyCollaborativeTable = []string{
		`let's`, `we can`, `we should`, `our`, `together`,
		`collaborate`, `partner`, `jointly`, `build with`,
		`work together`, `team effort`,
	}
	safetyEmpowermentTable = []string{
		`you can`, `you have the ability`, `your expertise`,
		`build on your knowledge`, `apply this to`, `generalize`,
		`expand this concept`, `future applications`,
	}

	safetyComfortableWords = []string{
		"confident", "comfortable", "clear", "understand",
		"excited", "interested", "curious", "ready",
	}
	safetyUncomfortableWords = []string{
		"confused", "frustrated", "overwhelmed", "lost",
		"complicated", "difficult", "hard", "struggling",
	}

	safetyLevelNames = []string{
		"Cognitive Lockdown",
		"Safety Testing",
		"Consequence-Free Scrutiny",
		"Co-Creative Partnership",
		"Cognitive Expansion",
	}
	safetyLevelDescriptions = []string{
		"user may feel overwhelmed or unable to proceed",
		"cautious engagement with basic trust established",
		"comfortable exploration without fear",
		"active collaboration with shared ownership",
		"empowered to apply learning broadly",
	}
)

// SafetyDetails is the breakdown attached to the CSS result.
type SafetyDetails struct {
	Level           int      `json:"css_level"`
	LevelName       string   `json:"level_name"`
	AISafety        float64  `json:"ai_safety_score"`
	UserComfort     float64  `json:"user_comfort_level"`
	ContextScore    float64  `json:"context_score"`
	PositiveSignals []string `json:"positive_signals_found"`
	NegativeSignals []string `json:"negative_signals_found"`
}

func NewSafetyAnalyzer() *SafetyAnalyzer {
	return &SafetyAnalyzer{
		positive:      compilePatterns("safety_positive", safetyPositiveTable),
		negative:      compilePatterns("safety_negative", safetyNegativeTable),
		collaborative: compilePatterns("safety_collaborative", safetyCollaborativeTable),
		empowerment:   compilePatterns("safety_empowerment", safetyEmpowermentTable),
	}
}

func (a *SafetyAnalyzer) Key() string { return KeySafety }

func (a *SafetyAnalyzer) Evaluate(ctx *Context) Result {
	aiSafety := a.scoreAISafety(ctx.Response)
	userComfort := a.scoreUserComfort(ctx.Prompt)
	context := a.scoreContext(ctx.ResponseWords, ctx.PromptWords)

	level := a.level(aiSafety, userComfort, context)
	score := float64(level) / 5.0

	responseLower := strings.ToLower(ctx.Response)
	return Result{
		Score:          round3(score),
		Interpretation: a.interpret(level, score),
		Details: SafetyDetails{
			Level:           level,
			LevelName:       safetyLevelNames[level-1],
			AISafety:        aiSafety,
			UserComfort:     userComfort,
			ContextScore:    context,
			PositiveSignals: findSignals(a.positive, responseLower),
			NegativeSignals: findSignals(a.negative, responseLower),
		},
	}
}

// scoreAISafety starts neutral and moves with signal matches: +0.1 per
// positive, +0.08 per collaborative, +0.07 per empowerment, -0.15 per
// negative. Clamped to [0,1].
func (a *SafetyAnalyzer) scoreAISafety(response string) float64 {
	lower := strings.ToLower(response)
	score := 0.5
	score += float64(countRegexHits(a.positive, lower)) * 0.1
	score += float64(countRegexHits(a.collaborative, lower)) * 0.08
	score += float64(countRegexHits(a.empowerment, lower)) * 0.07
	score -= float64(countRegexHits(a.negative, lower)) * 0.15
	return clamp01(score)
}

func (a *SafetyAnalyzer) scoreUserComfort(prompt string) float64 {
	lower := strings.ToLower(prompt)
	score := 0.5
	score += float64(countPresent(lower, safetyComfortableWords)) * 0.1
	score -= float64(countPresent(lower, safetyUncomfortableWords)) * 0.15
	return clamp01(score)
}

// scoreContext penalizes responses that dwarf the prompt and mildly rewards
// conciseness.
func (a *SafetyAnalyzer) scoreContext(responseWords, promptWords int) float64 {
	score := 0.7
	if promptWords > 0 && responseWords > 0 {
		ratio := float64(responseWords) / float64(promptWords)
		if ratio > safetyVerbosityRatio {
			score -= 0.2
		} else if ratio < safetyConcisenessRatio {
			score += 0.1
		}
	}
	return clamp01(score)
}

func (a *SafetyAnalyzer) level(aiSafety, userComfort, context float64) int {
	combined := aiSafety*safetyWeightAI + userComfort*safetyWeightComfort + context*safetyWeightContext
	switch {
	case combined >= 0.8:
		return 5
	case combined >= 0.7:
		return 4
	case combined >= 0.6:
		return 3
	case combined >= 0.4:
		return 2
	default:
		return 1
	}
}

func findSignals(patterns []*regexp.Regexp, textLower string) []string {
	found := []string{}
	for _, re := range patterns {
		if m := re.FindString(textLower); m != "" {
			found = append(found, m)
		}
	}
	return found
}

func (a *SafetyAnalyzer) interpret(level int, score float64) string {
	qualifier := "Low "
	switch {
	case score >= 0.8:
		qualifier = "High "
	case score >= 0.6:
		qualifier = "Good "
	case score >= 0.4:
		qualifier = "Moderate "
	}
	return fmt.Sprintf("%s%s - %s (Level %d)",
		qualifier, strings.ToLower(safetyLevelNames[level-1]), safetyLevelDescriptions[level-1], level)
}
