package dimension

import (
	"fmt"
	"regexp"
	"strings"
)

// ProgressionAnalyzer scores the Cognitive Progression Scale (CPS): which of
// five collaboration levels an exchange reaches. It is the only analyzer
// that reads conversation history, and only the last three turns of it.
type ProgressionAnalyzer struct {
	levels []progressionLevel
}

type progressionLevel struct {
	number      int
	name        string
	userMatch   []*regexp.Regexp
	aiMatch     []*regexp.Regexp
	userSource  []string
	aiSource    []string
	description string
}

const (
	progressionMaxLevel    = 5
	progressionHistoryLook = 3 // turns of history consulted
)

// Level taxonomy: disjoint keyword sets per level for prompts and responses.
var progressionLevelTable = []struct {
	name        string
	description string
	user        []string
	ai          []string
}{
	{
		name:        "Awareness",
		description: "Basic information exchange - answering fundamental questions",
		user: []string{
			"what is", "define", "explain", "tell me about",
			"what does", "how does", "why is", "when should",
		},
		ai: []string{
			"definition", "explanation", "introduction", "overview",
			"basic concept", "fundamental", "simple terms",
		},
	},
	{
		name:        "Exploration",
		description: "Exploring possibilities - comparing options and examples",
		user: []string{
			"options", "examples", "compare", "different ways",
			"alternatives", "possibilities", "what are some",
			"show me", "give me examples",
		},
		ai: []string{
			"options include", "examples are", "compare and contrast",
			"different approaches", "several ways", "alternatives",
			"for instance", "such as",
		},
	},
	{
		name:        "Application",
		description: "Practical application - providing actionable steps and methods",
		user: []string{
			"how to", "apply", "steps", "implement", "process",
			"method", "procedure", "guide", "tutorial",
			"walk me through", "show me how",
		},
		ai: []string{
			"step by step", "first then", "process involves",
			"implementation guide", "actionable steps", "methodology",
			"to apply this", "practical approach",
		},
	},
	{
		name:        "Co-Creation",
		description: "Collaborative development - building solutions together",
		user: []string{
			"let's", "we can", "we should", "build together",
			"collaborate", "partner", "your input", "what do you think",
			"our", "together", "jointly", "work with me",
		},
		ai: []string{
			"let's", "we can", "we should", "together we",
			"collaboratively", "partnership", "your thoughts",
			"what are your ideas", "how shall we", "shall we",
		},
	},
	{
		name:        "Expansion",
		description: "Creative expansion - generalizing knowledge to new domains",
		user: []string{
			"could also", "apply to", "broader use", "generalize",
			"other applications", "beyond this", "what if",
			"how else", "future implications", "long-term",
		},
		ai: []string{
			"broader implications", "can be applied to", "generalizes to",
			"other contexts", "future applications", "extending this",
			"similar principles", "across domains",
		},
	},
}

// ProgressionDetails is the breakdown attached to the CPS result.
type ProgressionDetails struct {
	AchievedLevel    int      `json:"achieved_level"`
	LevelName        string   `json:"level_name"`
	UserLevel        int      `json:"user_detected_level"`
	AILevel          int      `json:"ai_detected_level"`
	UserKeywords     []string `json:"user_keywords_found"`
	ResponseKeywords []string `json:"ai_keywords_found"`
}

func NewProgressionAnalyzer() *ProgressionAnalyzer {
	a := &ProgressionAnalyzer{}
	for i, entry := range progressionLevelTable {
		family := fmt.Sprintf("cps_level_%d", i+1)
		a.levels = append(a.levels, progressionLevel{
			number:      i + 1,
			name:        entry.name,
			description: entry.description,
			userMatch:   compileKeywords(family+"_user", entry.user),
			aiMatch:     compileKeywords(family+"_ai", entry.ai),
			userSource:  entry.user,
			aiSource:    entry.ai,
		})
	}
	return a
}

func (a *ProgressionAnalyzer) Key() string { return KeyProgression }

func (a *ProgressionAnalyzer) Evaluate(ctx *Context) Result {
	userLevel := a.detectUserLevel(ctx.Prompt)
	aiLevel := a.detectAILevel(ctx.Response)
	achieved := a.achievedLevel(userLevel, aiLevel, ctx.History)

	score := float64(achieved) / float64(progressionMaxLevel)
	level := a.levels[achieved-1]

	return Result{
		Score:          round3(score),
		Interpretation: a.interpret(achieved, score),
		Details: ProgressionDetails{
			AchievedLevel:    achieved,
			LevelName:        level.name,
			UserLevel:        userLevel,
			AILevel:          aiLevel,
			UserKeywords:     a.keywordsFound(ctx.Prompt, userLevel),
			ResponseKeywords: a.keywordsFound(ctx.Response, aiLevel),
		},
	}
}

// detectUserLevel weights matches by score*(1+0.1*level), a mild bias toward
// crediting higher levels. Defaults to 1 when nothing matches.
func (a *ProgressionAnalyzer) detectUserLevel(prompt string) int {
	lower := strings.ToLower(prompt)
	best, bestScore, total := 1, 0.0, 0
	for _, level := range a.levels {
		matches := countRegexHits(level.userMatch, lower)
		total += matches
		weighted := float64(matches) * (1 + float64(level.number)*0.1)
		if weighted > bestScore {
			best, bestScore = level.number, weighted
		}
	}
	if total == 0 {
		return 1
	}
	return best
}

// detectAILevel uses raw match counts. Defaults to 2 when nothing matches.
func (a *ProgressionAnalyzer) detectAILevel(response string) int {
	lower := strings.ToLower(response)
	best, bestScore, total := 1, 0, 0
	for _, level := range a.levels {
		matches := countRegexHits(level.aiMatch, lower)
		total += matches
		if matches > bestScore {
			best, bestScore = level.number, matches
		}
	}
	if total == 0 {
		return 2
	}
	return best
}

// achievedLevel applies the progression bonus: exceeding the ceiling of the
// last three turns lifts the base level by one, capped at 5. The floor at the
// user's own level applies after the bonus, so the two are coupled.
func (a *ProgressionAnalyzer) achievedLevel(userLevel, aiLevel int, history []Turn) int {
	base := max(userLevel, aiLevel)

	if len(history) > 0 {
		recent := history
		if len(recent) > progressionHistoryLook {
			recent = recent[len(recent)-progressionHistoryLook:]
		}
		ceiling := 1
		for _, turn := range recent {
			if turn.CPSLevel > ceiling {
				ceiling = turn.CPSLevel
			}
		}
		if base > ceiling {
			base = min(base+1, progressionMaxLevel)
		}
	}

	return min(max(base, userLevel), progressionMaxLevel)
}

func (a *ProgressionAnalyzer) keywordsFound(text string, levelNum int) []string {
	lower := strings.ToLower(text)
	level := a.levels[levelNum-1]
	found := []string{}
	for i, re := range level.userMatch {
		if re.MatchString(lower) {
			found = append(found, level.userSource[i])
		}
	}
	for i, re := range level.aiMatch {
		if re.MatchString(lower) {
			found = append(found, level.aiSource[i])
		}
	}
	return found
}

func countRegexHits(patterns []*regexp.Regexp, text string) int {
	n := 0
	for _, re := range patterns {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

func (a *ProgressionAnalyzer) interpret(achieved int, score float64) string {
	qualifier := "Basic "
	switch {
	case score >= 0.8:
		qualifier = "Advanced "
	case score >= 0.6:
		qualifier = "Solid "
	case score >= 0.4:
		qualifier = "Developing "
	}
	level := a.levels[achieved-1]
	return fmt.Sprintf("%s%s (Level %d: %s)", qualifier, level.description, achieved, level.name)
}
