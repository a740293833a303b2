package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/stockd/inventory-ledger/internal/core/domain"
)

const (
	journalKeyPrefix = "journal:"
	callsKeyPrefix   = "calls:"

	// journal lists are capped; History never needs more than this
	journalMaxLen = 1000
)

type RedisJournal struct {
	client *redis.Client
}

func NewRedisJournal(client *redis.Client) *RedisJournal {
	return &RedisJournal{client: client}
}

func (r *RedisJournal) Append(ctx context.Context, adj domain.Adjustment) error {
	payload, err := json.Marshal(adj)
	if err != nil {
		return fmt.Errorf("marshal adjustment: %w", err)
	}

	journalKey := journalKeyPrefix + adj.ItemName
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, journalKey, payload)
		pipe.LTrim(ctx, journalKey, -journalMaxLen, -1)
		pipe.Incr(ctx, callsKeyPrefix+string(adj.Kind))
		return nil
	})
	if err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}

	return nil
}

func (r *RedisJournal) History(ctx context.Context, itemName string, limit int) ([]domain.Adjustment, error) {
	if limit <= 0 || limit > journalMaxLen {
		limit = journalMaxLen
	}

	raw, err := r.client.LRange(ctx, journalKeyPrefix+itemName, int64(-limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("range journal: %w", err)
	}

	// list order is oldest first; return newest first
	history := make([]domain.Adjustment, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var adj domain.Adjustment
		if err := json.Unmarshal([]byte(raw[i]), &adj); err != nil {
			return nil, fmt.Errorf("decode journal entry: %w", err)
		}
		history = append(history, adj)
	}

	return history, nil
}

func (r *RedisJournal) CallCount(ctx context.Context, kind domain.AdjustmentKind) (int64, error) {
	count, err := r.client.Get(ctx, callsKeyPrefix+string(kind)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get call count: %w", err)
	}
	return count, nil
}
