package dimension

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalSync(t *testing.T) {
	analyzer := NewSyncAnalyzer()

	// No goal language in the prompt gives the neutral score.
	assert.InDelta(t, 0.7, analyzer.goalSync("Tell me about whales.", "Whales are mammals."), 1e-9)

	// Goal stated and acknowledged.
	assert.InDelta(t, 0.9, analyzer.goalSync(
		"My goal is a faster pipeline.",
		"To achieve that, start with the slowest stage."), 1e-9)

	// Goal stated but ignored.
	assert.InDelta(t, 0.6, analyzer.goalSync(
		"My goal is a faster pipeline.",
		"Pipelines have stages."), 1e-9)
}

func TestExpectationSync(t *testing.T) {
	analyzer := NewSyncAnalyzer()

	// "list" request honored with bullet formatting.
	assert.InDelta(t, 0.7, analyzer.expectationSync(
		"Give me a list of options.",
		"Here you go:\n- one\n- two"), 1e-9)

	// "brief" request honored with a short response.
	assert.InDelta(t, 0.7, analyzer.expectationSync(
		"Keep it brief.",
		"Done."), 1e-9)

	// No expectation words in the prompt gives the neutral score.
	assert.InDelta(t, 0.7, analyzer.expectationSync(
		"Tell me about whales.",
		"Whales are mammals."), 1e-9)

	// Expectation stated but not honored.
	assert.InDelta(t, 0.7, analyzer.expectationSync(
		"Give me a list of options.",
		"There are several options available."), 1e-9)

	// Two honored expectations stack.
	assert.InDelta(t, 0.9, analyzer.expectationSync(
		"Give me a brief list.",
		"Two picks:\n- alpha\n- beta"), 1e-9)
}

func TestDepthSyncTiers(t *testing.T) {
	analyzer := NewSyncAnalyzer()

	shortPrompt := "Explain goroutines" // ideal 50 words
	nearIdeal := strings.Repeat("word ", 50)
	loose := strings.Repeat("word ", 30)
	wayOff := strings.Repeat("word ", 500)

	assert.InDelta(t, 0.9, analyzer.depthSync(shortPrompt, nearIdeal), 1e-9)
	assert.InDelta(t, 0.7, analyzer.depthSync(shortPrompt, loose), 1e-9)
	assert.InDelta(t, 0.4, analyzer.depthSync(shortPrompt, wayOff), 1e-9)

	// A 30+ word prompt moves the ideal to 200 words.
	longPrompt := strings.Repeat("word ", 35)
	assert.InDelta(t, 0.9, analyzer.depthSync(longPrompt, strings.Repeat("word ", 200)), 1e-9)
}

func TestStyleVectorAndSync(t *testing.T) {
	analyzer := NewSyncAnalyzer()

	dataText := "The study shows 40% growth. The data and analysis back the research."
	vector := analyzer.styleVector(dataText)
	assert.Greater(t, vector["data_driven"], 0.3)

	// Matching dominant styles with real intensity earns the dominance bonus
	// on top of the similarity term.
	sync := analyzer.styleSync(vector, vector)
	assert.InDelta(t, 1.0, sync, 1e-9)
}

func TestDirectStyleLabelAnchorsToTextStart(t *testing.T) {
	analyzer := NewSyncAnalyzer()

	// A leading label reads as direct style.
	leading := analyzer.styleVector("Answer: definitely yes")
	assert.InDelta(t, 0.2, leading["direct"], 1e-9)

	// The same label mid-text, after a sentence boundary, does not.
	midText := analyzer.styleVector("It depends.\nAnswer: yes")
	assert.InDelta(t, 0.1, midText["direct"], 1e-9)
}

func TestStyleSyncMismatch(t *testing.T) {
	analyzer := NewSyncAnalyzer()

	user := map[string]float64{"formal": 1.0, "informal": 0, "direct": 0, "narrative": 0, "data_driven": 0}
	ai := map[string]float64{"formal": 0, "informal": 1.0, "direct": 0, "narrative": 0, "data_driven": 0}

	// Similarity term only: three aligned zeros plus two full mismatches.
	assert.InDelta(t, 0.6, analyzer.styleSync(user, ai), 1e-9)
}

func TestSyncEvaluateDetails(t *testing.T) {
	analyzer := NewSyncAnalyzer()
	result := analyzer.Evaluate(&Context{
		Prompt:   "My goal is to compare two caching strategies, briefly.",
		Response: "To achieve that, compare hit rates first.",
	})

	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 1.0)

	details, ok := result.Details.(SyncDetails)
	require.True(t, ok)
	assert.Len(t, details.Components, 4)
	assert.Len(t, details.UserStyle, 5)
	assert.Len(t, details.AIStyle, 5)
}
