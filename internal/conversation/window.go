// Package conversation owns the bounded per-conversation history windows
// consulted by the progression analyzer. Windows are keyed by conversation
// ID; there is no process-global history.
package conversation

import (
	"context"
	"sync"

	"github.com/formianlabs/resonance/internal/dimension"
)

// MaxTurns bounds every window: oldest turns are evicted FIFO beyond this.
const MaxTurns = 10

// Store is a keyed conversation window. Implementations must make the
// read-then-append sequence safe under concurrent requests for the same key.
type Store interface {
	// Window returns up to MaxTurns turns for the conversation, oldest first.
	Window(ctx context.Context, conversationID string) ([]dimension.Turn, error)
	// Append records a completed exchange and truncates the window to the
	// last MaxTurns entries.
	Append(ctx context.Context, conversationID string, turn dimension.Turn) error
}

// MemoryStore keeps windows in process memory. Suitable for a single
// instance; use RedisStore when windows must survive restarts or be shared.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string][]dimension.Turn
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string][]dimension.Turn)}
}

func (s *MemoryStore) Window(_ context.Context, conversationID string) ([]dimension.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	window := s.windows[conversationID]
	out := make([]dimension.Turn, len(window))
	copy(out, window)
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, conversationID string, turn dimension.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	window := append(s.windows[conversationID], turn)
	if len(window) > MaxTurns {
		window = window[len(window)-MaxTurns:]
	}
	s.windows[conversationID] = window
	return nil
}
