// Package container parses an exported GTM container document — tags,
// triggers, and variables, each a flat key/value parameter list — and
// exposes indexed, read-only accessors over it. It is the engine's
// GTM container model (C1).
package container

import "ga4oracle/gtm"

// TriggerType is a closed enum over the trigger kinds the engine
// understands. Unknown values read from a container fall through to
// TriggerUnknown rather than growing the type hierarchy.
type TriggerType string

const (
	TriggerClick          TriggerType = "CLICK"
	TriggerLinkClick       TriggerType = "LINK_CLICK"
	TriggerJustLinks       TriggerType = "JUST_LINKS"
	TriggerAllElements     TriggerType = "ALL_ELEMENTS"
	TriggerCustomEvent     TriggerType = "CUSTOM_EVENT"
	TriggerPageview        TriggerType = "PAGEVIEW"
	TriggerDomReady        TriggerType = "DOM_READY"
	TriggerHistoryChange   TriggerType = "HISTORY_CHANGE"
	TriggerScrollDepth     TriggerType = "SCROLL_DEPTH"
	TriggerVisibility      TriggerType = "VISIBILITY"
	TriggerTimer           TriggerType = "TIMER"
	TriggerYoutubeVideo    TriggerType = "YOUTUBE_VIDEO"
	TriggerUnknown         TriggerType = "UNKNOWN"
)

func toTriggerType(raw string) TriggerType {
	switch TriggerType(raw) {
	case TriggerClick, TriggerLinkClick, TriggerJustLinks, TriggerAllElements,
		TriggerCustomEvent, TriggerPageview, TriggerDomReady, TriggerHistoryChange,
		TriggerScrollDepth, TriggerVisibility, TriggerTimer, TriggerYoutubeVideo:
		return TriggerType(raw)
	default:
		return TriggerUnknown
	}
}

// Trigger is a predicate over page signals: DOM clicks, dataLayer
// events, URL patterns, timers. Filters reuse the GTM client's own
// Condition/Parameter shapes since the container export carries them
// in exactly that form.
type Trigger struct {
	ID               string
	Name             string
	Type             TriggerType
	Filter           []gtm.Condition
	AutoEventFilter  []gtm.Condition
	CustomEventName  string
	CSSSelector      string
	// Synthetic marks a trigger injected at analysis time by a gating
	// stage (brand swap, video auto-inclusion, forced auto-inclusion)
	// rather than one read from the export.
	Synthetic bool
}

// Tag binds an EventName to a set of firing triggers. Parameters
// carries the tag's own fixed parameter list (e.g. GA4 event
// parameters configured directly on the tag) — distinct from a GTM
// variable looked up by name, which a parameter value only
// references.
type Tag struct {
	ID               string
	Name             string
	EventName        string
	FiringTriggerIDs []string
	Parameters       []gtm.Parameter
}

// Variable is a named GTM variable: a type plus an optional source
// expression (e.g. a data layer variable name, or a constant value).
type Variable struct {
	ID    string
	Name  string
	Type  string
	Param gtm.Parameter
}

// EventPageMappingSource records which knowledge source contributed an
// EventPageMapping, used to resolve disagreements in the gating engine.
type EventPageMappingSource string

const (
	SourceGTM        EventPageMappingSource = "gtm"
	SourceGuide      EventPageMappingSource = "guide"
	SourceGA4Standard EventPageMappingSource = "ga4Standard"
	SourceEdgeCase   EventPageMappingSource = "edgeCase"
)

// EventPageMapping records, for one event, which page types its GTM
// triggers constrain it to, and how confident that inference is.
type EventPageMapping struct {
	EventName            string
	AllowedPageTypes      []string // empty + AllPages=true means "all pages"
	AllPages              bool
	Source                EventPageMappingSource
	Confidence             int
	TriggerPageConditions []string
}
