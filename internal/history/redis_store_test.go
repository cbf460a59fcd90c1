package history

import (
	"context"
	"errors"
	"os"
	"probpick/internal/models"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set PROBPICK_TEST_REDIS to a redis:// url to run against a live server.
func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	dsn := os.Getenv("PROBPICK_TEST_REDIS")
	if dsn == "" {
		t.Skip("PROBPICK_TEST_REDIS not set")
	}
	store, err := NewRedisStore(context.Background(), dsn, "probpick-test:"+uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = store.Clear(context.Background())
		store.Close()
	})
	return store
}

func TestRedisStore_AppendLoadClear(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, testRecord(1000)))
	require.NoError(t, store.Append(ctx, testRecord(1001)))

	h, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, h.Len())
	assert.Equal(t, 1001, h.Problems[1].ProblemID)

	err = store.Append(ctx, testRecord(1000))
	assert.True(t, errors.Is(err, models.ErrAlreadySelected))

	n, err := store.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// ids are released together with the list
	require.NoError(t, store.Append(ctx, testRecord(1000)))
}

func TestNewRedisStore_BadDsn(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "not-a-url", "k")
	assert.True(t, errors.Is(err, models.ErrPersistence))
}
