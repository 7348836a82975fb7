// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

/*
Package hub implements the Daily Creative Hub: the personalized brief
bundle a user sees on "today", standalone brief generation, and the
per-day brief-rejection counter.

# Personalization Model

Every payload here is a pure function of the user's onboarding profile
(or its absence). Users without a profile receive a parallel
"getting started" payload with placeholder strings and zeroed metrics
rather than an error.
*/
package hub

// # Domain Entities

// Brief is a generated content suggestion bundle for one topic.
type Brief struct {
	Topic                string   `json:"topic"`
	Angle                string   `json:"angle"`
	Hook                 string   `json:"hook"`
	SupportingClaims     []string `json:"supporting_claims"`
	Rationale            string   `json:"rationale"`
	ReinforcementTargets []string `json:"reinforcement_targets"`
}

// MemorySummary is the compact memory snapshot embedded in the today bundle.
type MemorySummary struct {
	TrackedTerritories int      `json:"tracked_territories"`
	StrongestTerritory string   `json:"strongest_territory"`
	NeedsReinforcement []string `json:"needs_reinforcement"`
}

// FocusMetrics are the coarse progress numbers shown alongside the brief.
type FocusMetrics struct {
	TerritoryCount int    `json:"territory_count"`
	CoreIdeaCount  int    `json:"core_idea_count"`
	WeeklyGoal     int    `json:"weekly_goal"`
	Message        string `json:"message"`
}

// TodayBundle is the full Daily Creative Hub payload.
type TodayBundle struct {
	Personalized bool          `json:"personalized"`
	Date         string        `json:"date"`
	Brief        Brief         `json:"brief"`
	Memory       MemorySummary `json:"memory"`
	Focus        FocusMetrics  `json:"focus"`
}

// RejectionState is the per-day rejection snapshot returned to the client.
type RejectionState struct {
	RejectedTopics        []string `json:"rejected_topics"`
	RejectionsToday       int      `json:"rejections_today"`
	AlternativesRemaining int      `json:"alternatives_remaining"`
}

// # Field Identifiers

const (
	FieldTopic         = "topic"
	FieldCount         = "count"
	FieldExcludeTopics = "exclude_topics"
)
