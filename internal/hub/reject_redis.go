// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plinth-app/plinth/internal/platform/constants"
)

// rejectionTTL keeps stale keys from accumulating. Two days is enough:
// any record older than that is stale by date anyway.
const rejectionTTL = 48 * time.Hour

// RedisRejectionStore persists rejection counters in Redis.
//
// Records survive process restarts, which closes the "counter resets on
// redeploy" hole of the in-memory store.
type RedisRejectionStore struct {
	client *redis.Client
}

// NewRedisRejectionStore creates a Redis-backed rejection store.
func NewRedisRejectionStore(client *redis.Client) *RedisRejectionStore {
	return &RedisRejectionStore{client: client}
}

// Get returns the stored record for a user, or nil when none exists.
func (store *RedisRejectionStore) Get(context context.Context, userID string) (*RejectionRecord, error) {
	raw, err := store.client.Get(context, store.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_rejection_get_failed: %w", err)
	}

	var record RejectionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		// Corrupt value: treat as absent, same policy as the onboarding blob.
		return nil, nil
	}

	return &record, nil
}

// Put overwrites the stored record for a user.
func (store *RedisRejectionStore) Put(context context.Context, userID string, record *RejectionRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("redis_rejection_marshal_failed: %w", err)
	}

	if err := store.client.Set(context, store.key(userID), payload, rejectionTTL).Err(); err != nil {
		return fmt.Errorf("redis_rejection_put_failed: %w", err)
	}

	return nil
}

func (store *RedisRejectionStore) key(userID string) string {
	return constants.RedisPrefixBriefRejections + userID
}
