package conversation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formianlabs/resonance/internal/dimension"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	window, err := store.Window(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, window)

	turn := dimension.Turn{UserPrompt: "p", AIResponse: "r", CPSLevel: 3}
	require.NoError(t, store.Append(ctx, "conv", turn))

	window, err = store.Window(ctx, "conv")
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, turn, window[0])
}

func TestMemoryStoreEvictsOldestBeyondMaxTurns(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < MaxTurns+1; i++ {
		turn := dimension.Turn{UserPrompt: fmt.Sprintf("prompt-%d", i), CPSLevel: i%5 + 1}
		require.NoError(t, store.Append(ctx, "conv", turn))
	}

	window, err := store.Window(ctx, "conv")
	require.NoError(t, err)
	require.Len(t, window, MaxTurns)
	assert.Equal(t, "prompt-1", window[0].UserPrompt)
	assert.Equal(t, fmt.Sprintf("prompt-%d", MaxTurns), window[MaxTurns-1].UserPrompt)
}

func TestMemoryStoreIsolatesConversations(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "a", dimension.Turn{UserPrompt: "a1"}))
	require.NoError(t, store.Append(ctx, "b", dimension.Turn{UserPrompt: "b1"}))

	windowA, err := store.Window(ctx, "a")
	require.NoError(t, err)
	windowB, err := store.Window(ctx, "b")
	require.NoError(t, err)

	require.Len(t, windowA, 1)
	require.Len(t, windowB, 1)
	assert.Equal(t, "a1", windowA[0].UserPrompt)
	assert.Equal(t, "b1", windowB[0].UserPrompt)
}

func TestMemoryStoreWindowIsACopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "conv", dimension.Turn{UserPrompt: "original"}))

	window, err := store.Window(ctx, "conv")
	require.NoError(t, err)
	window[0].UserPrompt = "mutated"

	again, err := store.Window(ctx, "conv")
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].UserPrompt)
}
