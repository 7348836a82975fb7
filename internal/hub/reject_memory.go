// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package hub

import (
	"context"
	"sync"
)

// MemoryRejectionStore keeps rejection counters in process memory.
//
// State is lost on restart. That matches the soft-rate-limit purpose of
// the counter; deployments that want durability configure the Redis
// store instead.
type MemoryRejectionStore struct {
	mu      sync.Mutex
	records map[string]*RejectionRecord
}

// NewMemoryRejectionStore creates an empty in-memory rejection store.
func NewMemoryRejectionStore() *MemoryRejectionStore {
	return &MemoryRejectionStore{records: make(map[string]*RejectionRecord)}
}

// Get returns a copy of the stored record, or nil when none exists.
func (store *MemoryRejectionStore) Get(_ context.Context, userID string) (*RejectionRecord, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	record, ok := store.records[userID]
	if !ok {
		return nil, nil
	}

	// Copy so callers cannot mutate shared state outside the lock.
	clone := *record
	clone.RejectedTopics = append([]string(nil), record.RejectedTopics...)
	return &clone, nil
}

// Put overwrites the stored record for a user.
func (store *MemoryRejectionStore) Put(_ context.Context, userID string, record *RejectionRecord) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	clone := *record
	clone.RejectedTopics = append([]string(nil), record.RejectedTopics...)
	store.records[userID] = &clone
	return nil
}
