// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

/*
Package onboarding owns the calibration questionnaire answers that drive
every personalized surface in Plinth.

It defines the core domain types (Profile, Flags) and the fallback rules
that downstream response builders rely on.

# Architecture

The profile is deliberately a weakly-typed mapping: the questionnaire
evolves faster than the backend, any mapping is accepted and stored
verbatim, and every consumer must treat every field as optional. The
accessor methods on [Profile] are the single place where the documented
fallback chain lives.
*/
package onboarding

import "encoding/json"

// # Known Profile Keys

// Keys observed in questionnaire submissions. None are mandatory.
const (
	KeyPositioningTarget   = "positioning_target"
	KeyContentTerritories  = "content_territories"
	KeyCoreIdeas           = "core_ideas"
	KeyAudienceDescription = "audience_description"
	KeyVoiceStyle          = "voice_style"
	KeyIntegrityBoundaries = "integrity_boundaries"
)

// # Placeholder Defaults

const (
	// DefaultPositioning is the placeholder used before a positioning
	// target has been captured.
	DefaultPositioning = "your area of expertise"

	// DefaultAudience is the placeholder audience descriptor.
	DefaultAudience = "your audience"

	// DefaultVoiceStyle is the placeholder tone descriptor.
	DefaultVoiceStyle = "clear and direct"
)

// # Domain Entities

// Profile is a user's free-form onboarding mapping.
//
// A nil Profile means the user has not onboarded; the presence of a
// non-empty Profile alone gates "personalized" vs "default" behavior
// application-wide.
type Profile map[string]any

// Flags tracks the coarse onboarding milestones.
//
// # Note
//
// The flags are written by CompleteOnboarding and surfaced on the session
// endpoints, but personalization gates on the presence of the stored
// profile, not on these flags.
type Flags struct {
	CompletedQuestionnaire bool `json:"completed_questionnaire"`
	SelectedTone           bool `json:"selected_tone"`
	ReviewedBrief          bool `json:"reviewed_brief"`
}

// # Fallback Accessors

// PositioningTarget returns the user's positioning statement, or the
// fixed placeholder when absent or blank.
func (p Profile) PositioningTarget() string {
	if value := p.stringValue(KeyPositioningTarget); value != "" {
		return value
	}
	return DefaultPositioning
}

// Territories returns the user's content territories.
//
// # Fallback Chain
//
// content_territories → core_ideas → empty list. Downstream builders
// must tolerate an empty result rather than fail.
func (p Profile) Territories() []string {
	if territories := p.stringList(KeyContentTerritories); len(territories) > 0 {
		return territories
	}
	return p.stringList(KeyCoreIdeas)
}

// CoreIdeas returns the user's core idea list (possibly empty).
func (p Profile) CoreIdeas() []string {
	return p.stringList(KeyCoreIdeas)
}

// AudienceDescription returns the audience descriptor, or the fixed
// placeholder when absent.
func (p Profile) AudienceDescription() string {
	if value := p.stringValue(KeyAudienceDescription); value != "" {
		return value
	}
	return DefaultAudience
}

// VoiceStyle returns the voice/tone descriptor, or the fixed placeholder.
func (p Profile) VoiceStyle() string {
	if value := p.stringValue(KeyVoiceStyle); value != "" {
		return value
	}
	return DefaultVoiceStyle
}

// IntegrityBoundaries returns the user's stated boundaries (possibly empty).
func (p Profile) IntegrityBoundaries() []string {
	return p.stringList(KeyIntegrityBoundaries)
}

// # JSON Bridge

// ParseProfile decodes a stored JSON blob into a Profile.
//
// # Corruption Policy
//
// Corrupt or empty stored JSON is treated as absence, not as an error:
// the second return value is false and the caller serves the degraded
// default payload. Diagnosability is traded for availability here.
func ParseProfile(raw string) (Profile, bool) {
	if raw == "" {
		return nil, false
	}

	var profile Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, false
	}

	if len(profile) == 0 {
		return nil, false
	}

	return profile, true
}

// # Internal Helpers

// stringValue extracts a non-empty string value for key, or "".
func (p Profile) stringValue(key string) string {
	if p == nil {
		return ""
	}
	value, ok := p[key].(string)
	if !ok {
		return ""
	}
	return value
}

// stringList extracts a list of strings for key. Non-string elements are
// skipped; a scalar or missing value yields nil.
func (p Profile) stringList(key string) []string {
	if p == nil {
		return nil
	}

	raw, ok := p[key].([]any)
	if !ok {
		return nil
	}

	var values []string
	for _, element := range raw {
		if s, ok := element.(string); ok && s != "" {
			values = append(values, s)
		}
	}
	return values
}
