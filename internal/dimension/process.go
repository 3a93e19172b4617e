package dimension

import (
	"math"
	"regexp"
	"strings"
)

// ProcessAnalyzer scores the Process Alignment Score (PAS): how well a
// response chunks information, uses structure, invites collaboration and
// keeps a conversational rhythm. It reads the response only.
type ProcessAnalyzer struct {
	listMarkers []*regexp.Regexp
	headings    []*regexp.Regexp
	anyList     *regexp.Regexp
}

const (
	processWeightChunking      = 0.30
	processWeightStructure     = 0.25
	processWeightCollaboration = 0.25
	processWeightRhythm        = 0.20
)

var (
	processSequencingWords = []string{"first", "next", "then", "finally", "step", "phase"}
	processCollabPhrases   = []string{
		"let's", "we can", "we should", "our", "together", "collaborate",
		"what do you think", "how about", "your thoughts", "partner",
		"does this make sense", "shall we", "would you like", "build with",
	}
	processStructuralLabels = []string{"table:", "chart:", "diagram:", "summary:"}
	processPauseIndicators  = []string{"...", "—", "briefly", "in summary", "to recap"}

	processListMarkerTable = []string{`\n- `, `\n\* `, `\n\d+\.`}
	processHeadingTable    = []string{`(?m)^#+`, `(?m)^[A-Z][^.!?\n]*:`}

	processParagraphSplit = regexp.MustCompile(`\n\n+`)
)

// ProcessDetails is the per-component breakdown attached to the PAS result.
type ProcessDetails struct {
	Components map[string]float64 `json:"component_scores"`
}

func NewProcessAnalyzer() *ProcessAnalyzer {
	return &ProcessAnalyzer{
		listMarkers: compilePatterns("process_list", processListMarkerTable),
		headings:    compilePatterns("process_heading", processHeadingTable),
		anyList:     regexp.MustCompile(`\n\d+\.|\n- |\n\* `),
	}
}

func (a *ProcessAnalyzer) Key() string { return KeyProcess }

func (a *ProcessAnalyzer) Evaluate(ctx *Context) Result {
	response := ctx.Response

	components := map[string]float64{
		"chunking":      a.scoreChunking(response),
		"structure":     a.scoreStructure(response),
		"collaboration": a.scoreCollaboration(response),
		"rhythm":        a.scoreRhythm(response),
	}

	score := components["chunking"]*processWeightChunking +
		components["structure"]*processWeightStructure +
		components["collaboration"]*processWeightCollaboration +
		components["rhythm"]*processWeightRhythm

	return Result{
		Score:          round3(score),
		Interpretation: a.interpret(score),
		Details:        ProcessDetails{Components: components},
	}
}

func (a *ProcessAnalyzer) scoreChunking(text string) float64 {
	score := 0.0

	if len(processParagraphSplit.Split(text, -1)) > 1 {
		score += 0.3
	}

	seq := countPresent(strings.ToLower(text), processSequencingWords)
	score += math.Min(float64(seq)*0.15, 0.3)

	lists := 0
	for _, re := range a.listMarkers {
		lists += len(re.FindAllString(text, -1))
	}
	score += math.Min(float64(lists)*0.1, 0.4)

	return math.Min(score, 1.0)
}

func (a *ProcessAnalyzer) scoreStructure(text string) float64 {
	score := 0.0

	for _, re := range a.headings {
		if re.MatchString(text) {
			score += 0.4
			break
		}
	}

	switch lists := len(a.anyList.FindAllString(text, -1)); {
	case lists >= 2:
		score += 0.4
	case lists == 1:
		score += 0.2
	}

	if countPresent(strings.ToLower(text), processStructuralLabels) > 0 {
		score += 0.2
	}

	return math.Min(score, 1.0)
}

// Discrete ladder: three distinct collaborative phrases reach full score.
func (a *ProcessAnalyzer) scoreCollaboration(text string) float64 {
	switch n := countPresent(strings.ToLower(text), processCollabPhrases); {
	case n >= 3:
		return 1.0
	case n == 2:
		return 0.7
	case n == 1:
		return 0.4
	default:
		return 0.1
	}
}

func (a *ProcessAnalyzer) scoreRhythm(text string) float64 {
	score := 0.0

	score += math.Min(float64(strings.Count(text, "?"))*0.2, 0.4)

	pauses := 0
	for _, ind := range processPauseIndicators {
		pauses += strings.Count(text, ind)
	}
	score += math.Min(float64(pauses)*0.15, 0.3)

	// Sentence length variation between 2x and 5x reads as natural pacing.
	if raw := sentenceSplit.Split(text, -1); len(raw) >= 3 {
		minLen, maxLen := 0, 0
		for _, s := range raw {
			n := len(strings.TrimSpace(s))
			if n == 0 {
				continue
			}
			if minLen == 0 || n < minLen {
				minLen = n
			}
			if n > maxLen {
				maxLen = n
			}
		}
		if minLen > 0 {
			variation := float64(maxLen) / float64(minLen)
			if variation >= 2 && variation <= 5 {
				score += 0.3
			}
		}
	}

	return math.Min(score, 1.0)
}

func (a *ProcessAnalyzer) interpret(score float64) string {
	switch {
	case score >= 0.8:
		return "Excellent process alignment - natural, collaborative flow"
	case score >= 0.6:
		return "Good process alignment - structured and engaging"
	case score >= 0.4:
		return "Moderate process alignment - functional but could be smoother"
	case score >= 0.2:
		return "Poor process alignment - disjointed or inefficient"
	default:
		return "Very poor process alignment - jarring and difficult to follow"
	}
}
