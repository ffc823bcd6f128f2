// Package models defines data structures and domain types.
package models

// Column names shared by the vertical datasets. Not every dataset carries
// every column; each strategy declares the subset it needs.
const (
	ColEventType         = "event_type"
	ColSessionID         = "session_id"
	ColUserID            = "user_id"
	ColClientTS          = "client_ts"
	ColProgression01     = "progression_01"
	ColProgression02     = "progression_02"
	ColCurrency          = "currency"
	ColAmount            = "amount"
	ColItemType          = "item_type"
	ColWeaponID          = "weapon_id"
	ColMapID             = "map_id"
	ColKills             = "kills"
	ColDeaths            = "deaths"
	ColAdPlacement       = "ad_placement"
	ColAdAction          = "ad_action"
	ColCustomizationType = "customization_type"
	ColMatchPhase        = "match_phase"
	ColSessionLength     = "session_length"
	ColScore             = "score"
	ColAgeGroup          = "age_group"
)

// Event type values used as row predicates.
const (
	EventProgression      = "progression"
	EventResource         = "resource"
	EventAd               = "ad"
	EventHint             = "hint"
	EventChallenge        = "challenge"
	EventTopic            = "topic"
	EventBusiness         = "business"
	EventGuildInteraction = "guild_interaction"
	EventCustomization    = "customization"
	EventSessionStart     = "session_start"
	EventSessionEnd       = "session_end"
)
