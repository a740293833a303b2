package storage

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockd/inventory-ledger/internal/core/domain"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func cleanJournal(ctx context.Context, client *redis.Client, itemName string) {
	client.Del(ctx, journalKeyPrefix+itemName)
	client.Del(ctx, callsKeyPrefix+string(domain.AdjustmentOrder))
	client.Del(ctx, callsKeyPrefix+string(domain.AdjustmentRestock))
}

func TestAppendAndHistory(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	journal := NewRedisJournal(client)
	cleanJournal(ctx, client, "test-item")

	first := domain.Adjustment{
		ID: "adj-1", ItemName: "test-item", Kind: domain.AdjustmentRestock,
		Delta: 10, Resulting: 10, AppliedAt: time.Now().UTC().Truncate(time.Second),
	}
	second := domain.Adjustment{
		ID: "adj-2", ItemName: "test-item", Kind: domain.AdjustmentOrder,
		Delta: -3, Resulting: 7, AppliedAt: time.Now().UTC().Truncate(time.Second),
	}

	require.NoError(t, journal.Append(ctx, first))
	require.NoError(t, journal.Append(ctx, second))

	history, err := journal.History(ctx, "test-item", 10)

	require.NoError(t, err)
	require.Len(t, history, 2)
	// newest first
	assert.Equal(t, "adj-2", history[0].ID)
	assert.Equal(t, -3, history[0].Delta)
	assert.Equal(t, "adj-1", history[1].ID)
	assert.Equal(t, 10, history[1].Resulting)
}

func TestHistory_Limit(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	journal := NewRedisJournal(client)
	cleanJournal(ctx, client, "test-item")

	for i := 0; i < 5; i++ {
		adj := domain.Adjustment{
			ID: fmt.Sprintf("adj-%d", i), ItemName: "test-item",
			Kind: domain.AdjustmentOrder, Delta: -1, Resulting: 5 - i,
			AppliedAt: time.Now(),
		}
		require.NoError(t, journal.Append(ctx, adj))
	}

	history, err := journal.History(ctx, "test-item", 2)

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "adj-4", history[0].ID)
	assert.Equal(t, "adj-3", history[1].ID)
}

func TestHistory_EmptyItem(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	journal := NewRedisJournal(client)
	cleanJournal(ctx, client, "nonexistent")

	history, err := journal.History(ctx, "nonexistent", 10)

	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCallCount(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	journal := NewRedisJournal(client)
	cleanJournal(ctx, client, "test-item")

	count, err := journal.CallCount(ctx, domain.AdjustmentOrder)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count, "missing counter reads as zero")

	for i := 0; i < 3; i++ {
		adj := domain.Adjustment{
			ID: fmt.Sprintf("adj-%d", i), ItemName: "test-item",
			Kind: domain.AdjustmentOrder, Delta: -1, Resulting: 3 - i,
			AppliedAt: time.Now(),
		}
		require.NoError(t, journal.Append(ctx, adj))
	}

	count, err = journal.CallCount(ctx, domain.AdjustmentOrder)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = journal.CallCount(ctx, domain.AdjustmentRestock)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestAppend_Concurrent(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	journal := NewRedisJournal(client)
	cleanJournal(ctx, client, "concurrent-item")

	total := 50
	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			adj := domain.Adjustment{
				ID: fmt.Sprintf("adj-%d", i), ItemName: "concurrent-item",
				Kind: domain.AdjustmentOrder, Delta: -1, AppliedAt: time.Now(),
			}
			assert.NoError(t, journal.Append(ctx, adj))
		}(i)
	}
	wg.Wait()

	history, err := journal.History(ctx, "concurrent-item", total)
	require.NoError(t, err)
	assert.Len(t, history, total)

	count, err := journal.CallCount(ctx, domain.AdjustmentOrder)
	require.NoError(t, err)
	assert.Equal(t, int64(total), count)
}
