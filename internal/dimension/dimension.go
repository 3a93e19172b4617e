package dimension

import (
	"log"
	"math"
	"os"
	"regexp"
	"strings"
)

// Context carries everything a dimension analyzer may read. Analyzers never
// mutate it and never feed each other; the only cross-exchange input is the
// History window.
type Context struct {
	Prompt   string
	Response string

	// History holds prior completed exchanges, oldest first. Only the
	// progression analyzer consults it, and only the last three turns.
	History []Turn

	// Derived metadata, populated once by the caller.
	PromptWords   int
	ResponseWords int
}

// Turn is one completed exchange kept in a conversation window.
type Turn struct {
	UserPrompt string `json:"user_prompt"`
	AIResponse string `json:"ai_response"`
	CPSLevel   int    `json:"cps_level"`
}

// Result is the output of a single dimension analyzer. Score is in [0,1]
// for the six dimensions and [0.8,1.2] for the alignment modulator.
type Result struct {
	Score          float64 `json:"score"`
	Interpretation string  `json:"interpretation"`
	Details        any     `json:"details,omitempty"`
}

// Analyzer is the uniform capability every dimension implements. Evaluation
// is pure and total over well-formed text: no I/O, no error path.
type Analyzer interface {
	Key() string
	Evaluate(ctx *Context) Result
}

// Dimension keys, as they appear in dimension_scores.
const (
	KeyInput       = "iai"
	KeyAnchors     = "cai"
	KeyProcess     = "pas"
	KeySync        = "sas"
	KeyProgression = "cps"
	KeySafety      = "css"
	KeyAlignment   = "am"
)

// patternLog receives non-fatal pattern compile failures. A malformed
// template is skipped, never aborts an analyzer.
var patternLog = log.New(os.Stderr, "[dimension] ", log.LstdFlags)

// compilePatterns compiles a pattern table, logging and dropping any entry
// that fails to compile.
func compilePatterns(family string, exprs []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			patternLog.Printf("skipping %s pattern %q: %v", family, expr, err)
			continue
		}
		compiled = append(compiled, re)
	}
	return compiled
}

// compileKeywords turns plain keywords into word-boundary matchers, with the
// same skip-on-failure policy.
func compileKeywords(family string, keywords []string) []*regexp.Regexp {
	exprs := make([]string, len(keywords))
	for i, kw := range keywords {
		exprs[i] = `\b` + regexp.QuoteMeta(kw) + `\b`
	}
	return compilePatterns(family, exprs)
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// splitSentences splits on terminating punctuation and drops empty pieces.
func splitSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

// countPresent counts how many keywords occur at least once as a substring
// of the (already lowercased) text.
func countPresent(textLower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(textLower, kw) {
			n++
		}
	}
	return n
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(v, 1.0))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
