// Package feedback persists user feedback about scored exchanges: one JSON
// file per submission plus a rolling JSONL append log.
package feedback

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	maxPromptChars   = 500
	maxResponseChars = 1000
)

// Interaction captures the exchange a piece of feedback refers to. Texts are
// truncated before persisting.
type Interaction struct {
	UserPrompt      string `json:"user_prompt"`
	AIResponse      string `json:"ai_response"`
	AnalysisResults any    `json:"analysis_results"`
}

// Record is one feedback submission.
type Record struct {
	Timestamp    time.Time   `json:"timestamp"`
	SubmissionID string      `json:"submission_id"`
	UserRating   string      `json:"user_rating"` // great, good, mediocre, bad, terrible
	UserComments string      `json:"user_comments"`
	UserEmail    string      `json:"user_email"`
	Interaction  Interaction `json:"interaction_data"`
}

// Recorder appends feedback records to a rolling JSONL log and writes each
// submission to its own file in the feedback directory.
type Recorder struct {
	mu       sync.Mutex
	dir      string
	rolling  *os.File
	encoder  *json.Encoder
	fallback *log.Logger
}

// NewRecorder opens (creating if needed) the feedback directory and the
// rolling log file inside it.
func NewRecorder(dir, rollingName string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create feedback dir: %w", err)
	}
	if rollingName == "" {
		rollingName = "user_feedback.jsonl"
	}
	rolling, err := os.OpenFile(filepath.Join(dir, rollingName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open rolling feedback log: %w", err)
	}
	return &Recorder{
		dir:      dir,
		rolling:  rolling,
		encoder:  json.NewEncoder(rolling),
		fallback: log.New(os.Stderr, "[feedback] ", log.LstdFlags),
	}, nil
}

// Submit truncates the interaction texts, stamps the record, and writes both
// the per-submission file and the rolling log entry. The per-submission file
// name carries the timestamp plus a short unique suffix.
func (r *Recorder) Submit(record Record) (string, error) {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	if record.SubmissionID == "" {
		record.SubmissionID = uuid.New().String()
	}
	if record.UserEmail == "" {
		record.UserEmail = "anonymous@example.com"
	}
	record.Interaction.UserPrompt = truncate(record.Interaction.UserPrompt, maxPromptChars)
	record.Interaction.AIResponse = truncate(record.Interaction.AIResponse, maxResponseChars)

	name := fmt.Sprintf("feedback_%s_%s.json",
		record.Timestamp.Format("20060102_150405"), record.SubmissionID[:8])
	path := filepath.Join(r.dir, name)

	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode feedback: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write feedback file: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.encoder.Encode(record); err != nil {
		r.fallback.Printf("failed to append rolling feedback entry: %v", err)
	}
	return record.SubmissionID, nil
}

// Close closes the rolling log file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rolling.Close()
}

func truncate(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
