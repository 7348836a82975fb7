// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package hub

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/plinth-app/plinth/internal/platform/apperr"
	"github.com/plinth-app/plinth/internal/platform/constants"
	"github.com/plinth-app/plinth/internal/users/onboarding"
)

// # Contracts

// ProfileSource loads a user's onboarding profile. A nil profile with a
// nil error means the user has not onboarded.
type ProfileSource interface {
	Get(context context.Context, userID string) (onboarding.Profile, error)
}

// # Template Caps

const (
	maxSupportingClaims     = 3
	maxReinforcementTargets = 3
	defaultBriefCount       = 3
)

// # Service

// Service builds hub payloads and tracks brief rejections.
type Service struct {
	profiles   ProfileSource
	rejections RejectionStore
	logger     *slog.Logger

	// now is injectable so day-rollover behavior is testable.
	now func() time.Time
}

// NewService creates a hub Service with its dependencies.
func NewService(profiles ProfileSource, rejections RejectionStore, logger *slog.Logger) *Service {
	return &Service{
		profiles:   profiles,
		rejections: rejections,
		logger:     logger.With(slog.String("service", "hub")),
		now:        time.Now,
	}
}

/*
Today compiles the Daily Creative Hub bundle for a user.

Description: Total over "has onboarded / has not" — a user without a
profile receives the getting-started bundle with zeroed metrics, never
an error.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *TodayBundle: Personalized or getting-started payload
  - error: apperr.NotFound (account vanished) or database failures
*/
func (service *Service) Today(context context.Context, userID string) (*TodayBundle, error) {
	profile, err := service.profiles.Get(context, userID)
	if err != nil {
		return nil, err
	}

	date := DayKey(service.now())

	if profile == nil {
		return &TodayBundle{
			Personalized: false,
			Date:         date,
			Brief:        gettingStartedBrief(),
			Memory: MemorySummary{
				TrackedTerritories: 0,
				StrongestTerritory: "",
				NeedsReinforcement: []string{},
			},
			Focus: FocusMetrics{
				TerritoryCount: 0,
				CoreIdeaCount:  0,
				WeeklyGoal:     0,
				Message:        "Complete onboarding to unlock your personalized daily brief.",
			},
		}, nil
	}

	territories := profile.Territories()

	return &TodayBundle{
		Personalized: true,
		Date:         date,
		Brief:        buildBrief(profile, 0, nil),
		Memory:       buildMemorySummary(territories),
		Focus: FocusMetrics{
			TerritoryCount: len(territories),
			CoreIdeaCount:  len(profile.CoreIdeas()),
			WeeklyGoal:     3,
			Message:        fmt.Sprintf("Stay consistent in %s this week.", profile.PositioningTarget()),
		},
	}, nil
}

/*
Briefs generates one or more standalone briefs.

Description: Topics cycle through the user's territories, skipping any
listed in excludeTopics. Count is clamped to [1, MaxBriefCount].

Parameters:
  - context: context.Context
  - userID: string
  - count: int (0 means the default of 3)
  - excludeTopics: []string (previously rejected topics)

Returns:
  - []Brief: Generated briefs, personalized when a profile exists
  - error: Database failures only
*/
func (service *Service) Briefs(context context.Context, userID string, count int, excludeTopics []string) ([]Brief, error) {
	profile, err := service.profiles.Get(context, userID)
	if err != nil {
		return nil, err
	}

	if count <= 0 {
		count = defaultBriefCount
	}
	if count > constants.MaxBriefCount {
		count = constants.MaxBriefCount
	}

	if profile == nil {
		briefs := make([]Brief, count)
		for i := range briefs {
			briefs[i] = gettingStartedBrief()
		}
		return briefs, nil
	}

	excluded := make(map[string]bool, len(excludeTopics))
	for _, topic := range excludeTopics {
		excluded[topic] = true
	}

	briefs := make([]Brief, count)
	for i := range briefs {
		briefs[i] = buildBrief(profile, i, excluded)
	}

	return briefs, nil
}

/*
RejectBrief records that the user rejected a brief topic today.

Description: Enforces the daily cap. The counter resets whenever the
stored day differs from the current day.

Parameters:
  - context: context.Context
  - userID: string
  - topic: string (must be non-empty)

Returns:
  - *RejectionState: Updated snapshot after recording
  - error: apperr.ValidationError on empty topic or when the cap is reached
*/
func (service *Service) RejectBrief(context context.Context, userID, topic string) (*RejectionState, error) {
	if topic == "" {
		return nil, apperr.ValidationError("Missing 'topic' in request body")
	}

	today := DayKey(service.now())

	record, err := service.rejections.Get(context, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if record == nil || record.Date != today {
		record = &RejectionRecord{Date: today, RejectedTopics: []string{}}
	}

	if record.Count >= constants.MaxBriefRejectionsPerDay {
		return nil, apperr.ValidationError(
			fmt.Sprintf("Maximum %d alternative briefs per day reached", constants.MaxBriefRejectionsPerDay))
	}

	if !containsTopic(record.RejectedTopics, topic) {
		record.RejectedTopics = append(record.RejectedTopics, topic)
	}
	record.Count++

	if err := service.rejections.Put(context, userID, record); err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.DebugContext(context, "brief rejected",
		slog.String("user_id", userID),
		slog.Int("rejections_today", record.Count))

	return stateFromRecord(record), nil
}

/*
Rejections returns today's rejection snapshot for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *RejectionState: Zero state when nothing was rejected today
  - error: Backend failures only
*/
func (service *Service) Rejections(context context.Context, userID string) (*RejectionState, error) {
	record, err := service.rejections.Get(context, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if record == nil || record.Date != DayKey(service.now()) {
		return &RejectionState{
			RejectedTopics:        []string{},
			RejectionsToday:       0,
			AlternativesRemaining: constants.MaxBriefRejectionsPerDay,
		}, nil
	}

	return stateFromRecord(record), nil
}

// # Payload Builders

// buildBrief interpolates the user's profile into the brief template.
// index selects which territory the topic cycles to.
func buildBrief(profile onboarding.Profile, index int, excluded map[string]bool) Brief {
	positioning := profile.PositioningTarget()
	topics := availableTopics(profile, excluded)

	topic := positioning
	if len(topics) > 0 {
		topic = topics[index%len(topics)]
	}

	claims := prefix(profile.CoreIdeas(), maxSupportingClaims)
	if len(claims) == 0 {
		claims = []string{fmt.Sprintf("You have a distinct point of view on %s.", topic)}
	}

	return Brief{
		Topic:                topic,
		Angle:                fmt.Sprintf("A practitioner's perspective on %s", topic),
		Hook:                 fmt.Sprintf("Most takes on %s miss what practitioners actually see.", topic),
		SupportingClaims:     claims,
		Rationale:            fmt.Sprintf("Reinforce your positioning in %s", positioning),
		ReinforcementTargets: prefix(profile.Territories(), maxReinforcementTargets),
	}
}

// gettingStartedBrief is the placeholder brief for users with no profile.
func gettingStartedBrief() Brief {
	return Brief{
		Topic:                "Getting started with your content strategy",
		Angle:                "Why defining your territories comes before writing anything",
		Hook:                 "You can't build authority on topics you haven't chosen yet.",
		SupportingClaims:     []string{"Complete onboarding to receive personalized briefs."},
		Rationale:            fmt.Sprintf("Reinforce your positioning in %s", onboarding.DefaultPositioning),
		ReinforcementTargets: []string{},
	}
}

func buildMemorySummary(territories []string) MemorySummary {
	summary := MemorySummary{
		TrackedTerritories: len(territories),
		NeedsReinforcement: prefix(territories, maxReinforcementTargets),
	}
	if len(territories) > 0 {
		summary.StrongestTerritory = territories[0]
	}
	return summary
}

// # Helpers

func availableTopics(profile onboarding.Profile, excluded map[string]bool) []string {
	territories := profile.Territories()
	if len(excluded) == 0 {
		return territories
	}

	topics := make([]string, 0, len(territories))
	for _, territory := range territories {
		if !excluded[territory] {
			topics = append(topics, territory)
		}
	}
	return topics
}

func prefix(values []string, max int) []string {
	if len(values) > max {
		values = values[:max]
	}
	// Normalize nil to an empty slice so JSON renders [] instead of null.
	if values == nil {
		values = []string{}
	}
	return values
}

func containsTopic(topics []string, topic string) bool {
	for _, existing := range topics {
		if existing == topic {
			return true
		}
	}
	return false
}

func stateFromRecord(record *RejectionRecord) *RejectionState {
	remaining := constants.MaxBriefRejectionsPerDay - record.Count
	if remaining < 0 {
		remaining = 0
	}
	return &RejectionState{
		RejectedTopics:        record.RejectedTopics,
		RejectionsToday:       record.Count,
		AlternativesRemaining: remaining,
	}
}
