package dimension

import (
	"fmt"
	"regexp"
	"strings"
)

// AnchorAnalyzer scores the Conceptual Anchoring Index (CAI): the presence of
// boundary, analogy and hypothesis anchors in an AI response. Matching runs
// sentence by sentence over the lowercased text.
type AnchorAnalyzer struct {
	families []anchorFamily
}

type anchorFamily struct {
	name     string
	patterns []*regexp.Regexp
}

const (
	anchorBoundary   = "boundary_anchors"
	anchorAnalogy    = "analogy_anchors"
	anchorHypothesis = "hypothesis_anchors"
)

// Anchor template tables. Each template captures the anchored clause up to
// the next clause or sentence boundary.
var anchorPatternTable = map[string][]string{
	anchorBoundary: {
		`(?:this is|we are|focus(?:ing)?|concentrat(?:ing|e)) (?:on|about) ([^.!?,]+)`,
		`(?:not about|excluding|without|ignore) ([^.!?,]+)`,
		`(?:scope is|limited to|specifically) ([^.!?,]+)`,
		`(?:rather than|instead of) ([^.!?,]+)`,
		`(?:this isn't about|this is not about) ([^.!?,]+)`,
	},
	anchorAnalogy: {
		`(?:like|similar to|comparable to) (?:a |an )?([^.!?,]+)`,
		`(?:think of|imagine|picture) (?:it as |this as )?(?:a |an )?([^.!?,]+)`,
		`(?:as if|as though) ([^.!?,]+)`,
		`(?:analogous to|akin to) ([^.!?,]+)`,
		`(?:metaphor|analogy) (?:of|for) ([^.!?,]+)`,
	},
	anchorHypothesis: {
		`(?:if|when) ([^.!?,]+),? (?:then )?([^.!?,]+)`,
		`(?:might|could|would|should) ([^.!?,]+) (?:if|when) ([^.!?,]+)`,
		`(?:hypothesis|theory|assumption):? ([^.!?,]+)`,
		`(?:we can test|let's test|test this by) ([^.!?,]+)`,
		`(?:suppose|assuming) ([^.!?,]+)`,
	},
}

var anchorBannedVagueTerms = []string{"this thing", "that stuff", "something"}

var (
	anchorSpaces       = regexp.MustCompile(`\s+`)
	anchorLeadFiller   = regexp.MustCompile(`^(?:and|or|but|so|then|also)\s+`)
	anchorTrailFiller  = regexp.MustCompile(`\s+(?:and|or|but|so|then|also)$`)
	anchorFamilyOrder  = []string{anchorBoundary, anchorAnalogy, anchorHypothesis}
	anchorScoreLadder  = []float64{0.0, 0.25, 0.5, 0.75, 1.0}
	anchorSentencePrev = 100 // chars of sentence context kept per anchor
)

// FoundAnchor is one validated anchor with its sentence context.
type FoundAnchor struct {
	Text     string `json:"text"`
	Type     string `json:"type"`
	Sentence string `json:"sentence"`
}

// AnchorDetails is the breakdown attached to the CAI result.
type AnchorDetails struct {
	Anchors     map[string][]FoundAnchor `json:"anchors_found"`
	TotalValid  int                      `json:"total_valid_anchors"`
	FamilyCount map[string]int           `json:"anchor_breakdown"`
}

func NewAnchorAnalyzer() *AnchorAnalyzer {
	a := &AnchorAnalyzer{}
	for _, name := range anchorFamilyOrder {
		a.families = append(a.families, anchorFamily{
			name:     name,
			patterns: compilePatterns(name, anchorPatternTable[name]),
		})
	}
	return a
}

func (a *AnchorAnalyzer) Key() string { return KeyAnchors }

func (a *AnchorAnalyzer) Evaluate(ctx *Context) Result {
	sentences := splitSentences(strings.ToLower(ctx.Response))

	found := make(map[string][]FoundAnchor, len(a.families))
	total := 0
	for _, fam := range a.families {
		found[fam.name] = []FoundAnchor{}
		for _, pattern := range fam.patterns {
			for _, sentence := range sentences {
				// The whole match, trigger phrase included, is what gets
				// cleaned, validated and recorded. The trigger words count
				// toward the specificity minimum.
				for _, match := range pattern.FindAllString(sentence, -1) {
					text := cleanAnchorText(match)
					if !validAnchor(text, fam.name) {
						continue
					}
					found[fam.name] = append(found[fam.name], FoundAnchor{
						Text:     text,
						Type:     fam.name,
						Sentence: truncateSentence(sentence),
					})
					total++
				}
			}
		}
	}

	score := anchorScoreLadder[len(anchorScoreLadder)-1]
	if total < len(anchorScoreLadder) {
		score = anchorScoreLadder[total]
	}

	counts := map[string]int{
		"boundary_count":   len(found[anchorBoundary]),
		"analogy_count":    len(found[anchorAnalogy]),
		"hypothesis_count": len(found[anchorHypothesis]),
	}

	return Result{
		Score:          score,
		Interpretation: a.interpret(score, total, counts),
		Details: AnchorDetails{
			Anchors:     found,
			TotalValid:  total,
			FamilyCount: counts,
		},
	}
}

func cleanAnchorText(text string) string {
	text = strings.TrimSpace(anchorSpaces.ReplaceAllString(text, " "))
	text = anchorLeadFiller.ReplaceAllString(text, "")
	text = anchorTrailFiller.ReplaceAllString(text, "")
	return text
}

func validAnchor(text, family string) bool {
	words := strings.Fields(text)
	if len(words) < 1 {
		return false
	}
	for _, banned := range anchorBannedVagueTerms {
		if strings.Contains(text, banned) {
			return false
		}
	}
	switch family {
	case anchorAnalogy:
		// An analogy needs at least one substantive word.
		meaningful := 0
		for _, w := range words {
			if len(w) > 2 {
				meaningful++
			}
		}
		if meaningful < 1 {
			return false
		}
	case anchorHypothesis:
		if len(words) < 2 {
			return false
		}
	}
	return true
}

func truncateSentence(s string) string {
	if len(s) > anchorSentencePrev {
		return s[:anchorSentencePrev] + "..."
	}
	return s
}

func (a *AnchorAnalyzer) interpret(score float64, total int, counts map[string]int) string {
	breakdown := fmt.Sprintf("boundary=%d analogy=%d hypothesis=%d",
		counts["boundary_count"], counts["analogy_count"], counts["hypothesis_count"])
	switch {
	case score == 0:
		return "No conceptual anchors detected - response lacks structure"
	case score <= 0.25:
		return fmt.Sprintf("Minimal anchoring (%d anchor)", total)
	case score <= 0.5:
		return fmt.Sprintf("Basic anchoring (%d anchors: %s)", total, breakdown)
	case score <= 0.75:
		return fmt.Sprintf("Good anchoring (%d anchors: %s)", total, breakdown)
	default:
		return fmt.Sprintf("Excellent anchoring (%d+ anchors: %s)", total, breakdown)
	}
}
