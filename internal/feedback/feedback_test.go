package feedback

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(t *testing.T) (*Recorder, string) {
	t.Helper()
	dir := t.TempDir()
	recorder, err := NewRecorder(dir, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = recorder.Close() })
	return recorder, dir
}

func TestSubmitWritesBothFiles(t *testing.T) {
	recorder, dir := newTestRecorder(t)

	id, err := recorder.Submit(Record{
		UserRating:   "good",
		UserComments: "helpful",
		Interaction:  Interaction{UserPrompt: "p", AIResponse: "r"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	files, err := filepath.Glob(filepath.Join(dir, "feedback_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], id[:8])

	var record Record
	payload, err := os.ReadFile(files[0])
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(payload, &record))
	assert.Equal(t, "good", record.UserRating)
	assert.Equal(t, id, record.SubmissionID)
	assert.Equal(t, "anonymous@example.com", record.UserEmail)
	assert.False(t, record.Timestamp.IsZero())
}

func TestSubmitTruncatesInteraction(t *testing.T) {
	recorder, dir := newTestRecorder(t)

	_, err := recorder.Submit(Record{
		UserRating: "great",
		Interaction: Interaction{
			UserPrompt: strings.Repeat("p", 600),
			AIResponse: strings.Repeat("r", 1500),
		},
	})
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join(dir, "feedback_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	var record Record
	payload, err := os.ReadFile(files[0])
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(payload, &record))
	assert.Len(t, record.Interaction.UserPrompt, 500)
	assert.Len(t, record.Interaction.AIResponse, 1000)
}

func TestSubmitAppendsRollingLog(t *testing.T) {
	recorder, dir := newTestRecorder(t)

	for i := 0; i < 3; i++ {
		_, err := recorder.Submit(Record{UserRating: "good"})
		require.NoError(t, err)
	}
	require.NoError(t, recorder.Close())

	f, err := os.Open(filepath.Join(dir, "user_feedback.jsonl"))
	require.NoError(t, err)
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var record Record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
		assert.Equal(t, "good", record.UserRating)
		lines++
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, 3, lines)
}

func TestSubmitKeepsProvidedIdentity(t *testing.T) {
	recorder, _ := newTestRecorder(t)

	id, err := recorder.Submit(Record{
		SubmissionID: "fixed-id-12345",
		UserRating:   "mediocre",
		UserEmail:    "user@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id-12345", id)
}
