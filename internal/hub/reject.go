// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package hub

import (
	"context"
	"time"
)

// # Rejection Tracking

// RejectionRecord is the stored per-user, per-day rejection counter.
//
// Date is a calendar-day string (YYYY-MM-DD); a record whose date differs
// from the current day is stale and treated as absent by readers.
type RejectionRecord struct {
	Date           string   `json:"date"`
	RejectedTopics []string `json:"rejected_topics"`
	Count          int      `json:"count"`
}

// RejectionStore persists per-user daily rejection counters.
//
// Implementations: an in-process map (default, non-durable) and a Redis
// backend (durable across restarts) selected when REDIS_URL is set.
type RejectionStore interface {

	/*
		Get returns the stored rejection record for a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *RejectionRecord: The stored record, nil when none exists
		  - error: Backend connectivity failures
	*/
	Get(context context.Context, userID string) (*RejectionRecord, error)

	/*
		Put stores (overwrites) the rejection record for a user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - record: *RejectionRecord

		Returns:
		  - error: Backend connectivity failures
	*/
	Put(context context.Context, userID string, record *RejectionRecord) error
}

// DayKey formats a time as the calendar-day key used in rejection records.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
