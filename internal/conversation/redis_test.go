package conversation

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formianlabs/resonance/internal/dimension"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "test"), mr
}

func TestRedisStoreRoundtrip(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	window, err := store.Window(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, window)

	turn := dimension.Turn{UserPrompt: "p", AIResponse: "r", CPSLevel: 4}
	require.NoError(t, store.Append(ctx, "conv", turn))

	window, err = store.Window(ctx, "conv")
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, turn, window[0])
}

func TestRedisStoreTrimsToMaxTurns(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	for i := 0; i < MaxTurns+5; i++ {
		turn := dimension.Turn{UserPrompt: fmt.Sprintf("prompt-%d", i)}
		require.NoError(t, store.Append(ctx, "conv", turn))
	}

	window, err := store.Window(ctx, "conv")
	require.NoError(t, err)
	require.Len(t, window, MaxTurns)
	assert.Equal(t, "prompt-5", window[0].UserPrompt)
}

func TestRedisStoreKeyPrefix(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "conv", dimension.Turn{UserPrompt: "p"}))
	assert.True(t, mr.Exists("test:window:conv"))

	defaulted := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")
	require.NoError(t, defaulted.Append(ctx, "conv", dimension.Turn{UserPrompt: "p"}))
	assert.True(t, mr.Exists("resonance:window:conv"))
}

func TestRedisStoreRejectsCorruptTurn(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	_, err := mr.Push("test:window:conv", "not json")
	require.NoError(t, err)

	_, err = store.Window(ctx, "conv")
	assert.Error(t, err)
}
