package dimension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressionDefaults(t *testing.T) {
	analyzer := NewProgressionAnalyzer()

	result := analyzer.Evaluate(&Context{Prompt: "zzz", Response: "zzz"})
	details, ok := result.Details.(ProgressionDetails)
	require.True(t, ok)

	assert.Equal(t, 1, details.UserLevel)
	assert.Equal(t, 2, details.AILevel)
	assert.Equal(t, 2, details.AchievedLevel)
	assert.InDelta(t, 0.4, result.Score, 1e-9)
	assert.Equal(t, "Exploration", details.LevelName)
}

func TestProgressionLevelDetection(t *testing.T) {
	analyzer := NewProgressionAnalyzer()

	tests := []struct {
		prompt   string
		response string
		achieved int
	}{
		{"What is a monad?", "Here is a definition and a short overview.", 1},
		{"Show me some options and examples.", "Options include A and B, for instance C.", 2},
		{"Walk me through the steps to implement this.", "Step by step: the process involves three parts.", 3},
		{"Let's build together, what do you think?", "We can start now. Shall we sketch the plan?", 4},
		{"How else could this apply to other domains, what if we generalize?", "Similar principles hold across domains, extending this further.", 5},
	}
	for _, tc := range tests {
		result := analyzer.Evaluate(&Context{Prompt: tc.prompt, Response: tc.response})
		details := result.Details.(ProgressionDetails)
		assert.Equal(t, tc.achieved, details.AchievedLevel, tc.prompt)
		assert.InDelta(t, float64(tc.achieved)/5.0, result.Score, 1e-9)
	}
}

func TestProgressionBonus(t *testing.T) {
	analyzer := NewProgressionAnalyzer()

	history := []Turn{{CPSLevel: 2}, {CPSLevel: 2}, {CPSLevel: 2}}
	result := analyzer.Evaluate(&Context{
		Prompt:   "How to implement this process?",
		Response: "Step by step, the process involves three stages.",
		History:  history,
	})
	details := result.Details.(ProgressionDetails)

	// Level 3 exchange above a level-2 ceiling earns the +1 bonus.
	assert.Equal(t, 3, details.UserLevel)
	assert.Equal(t, 3, details.AILevel)
	assert.Equal(t, 4, details.AchievedLevel)
	assert.InDelta(t, 0.8, result.Score, 1e-9)
}

func TestProgressionBonusCapsAtFive(t *testing.T) {
	analyzer := NewProgressionAnalyzer()

	history := []Turn{{CPSLevel: 4}}
	result := analyzer.Evaluate(&Context{
		Prompt:   "What if we generalize this beyond this project?",
		Response: "Extending this, similar principles apply across domains.",
		History:  history,
	})
	details := result.Details.(ProgressionDetails)
	assert.Equal(t, 5, details.AchievedLevel)
}

func TestProgressionNoBonusAtCeiling(t *testing.T) {
	analyzer := NewProgressionAnalyzer()

	// Matching the recent ceiling does not lift the level.
	history := []Turn{{CPSLevel: 3}}
	result := analyzer.Evaluate(&Context{
		Prompt:   "How to implement this process?",
		Response: "Step by step, the process involves three stages.",
		History:  history,
	})
	details := result.Details.(ProgressionDetails)
	assert.Equal(t, 3, details.AchievedLevel)
}

func TestProgressionHistoryWindow(t *testing.T) {
	analyzer := NewProgressionAnalyzer()

	// A level-5 turn outside the last three turns is not the ceiling.
	history := []Turn{{CPSLevel: 5}, {CPSLevel: 1}, {CPSLevel: 1}, {CPSLevel: 1}}
	result := analyzer.Evaluate(&Context{
		Prompt:   "How to implement this process?",
		Response: "Step by step, the process involves three stages.",
		History:  history,
	})
	details := result.Details.(ProgressionDetails)
	assert.Equal(t, 4, details.AchievedLevel)
}

func TestProgressionKeywordsFound(t *testing.T) {
	analyzer := NewProgressionAnalyzer()

	result := analyzer.Evaluate(&Context{
		Prompt:   "Walk me through the steps to implement this.",
		Response: "Step by step, to apply this, follow the process involves part.",
	})
	details := result.Details.(ProgressionDetails)
	assert.Contains(t, details.UserKeywords, "steps")
	assert.Contains(t, details.UserKeywords, "implement")
	assert.Contains(t, details.ResponseKeywords, "step by step")
	assert.Contains(t, details.ResponseKeywords, "to apply this")
}
