package gating

import (
	"regexp"
	"strings"

	"ga4oracle/container"
	"ga4oracle/pagecontext"
	"ga4oracle/specstore"
)

// validEventName mirrors GA4's own event-name constraints: starts with
// a letter, only letters/digits/underscores, at most 40 characters.
var validEventName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{0,39}$`)

// reservedEventPrefix matches GTM/GA4-internal pseudo-events that are
// never real, testable analytics events.
var reservedEventPrefix = regexp.MustCompile(`^(?:gtm\.|google_|ga_|firebase_|_)`)

// gtmVariableReference matches an unresolved GTM template variable
// masquerading as an event name, e.g. "{{Event Name}}".
var gtmVariableReference = regexp.MustCompile(`^\{\{.*\}\}$`)

// stageSyntax rejects structurally invalid or reserved event names
// before any container/guide lookup is attempted.
func stageSyntax(eventName string) (blocked bool, reason string) {
	if gtmVariableReference.MatchString(eventName) {
		return true, "event name is an unresolved GTM variable, not a real event"
	}
	if reservedEventPrefix.MatchString(eventName) {
		return true, "reserved GTM/GA4-internal event name"
	}
	if !validEventName.MatchString(eventName) {
		return true, "event name does not satisfy GA4 naming rules"
	}
	return false, ""
}

// stageBrandSwap applies the site's brand-page event substitution
// before the event set is finalized: on the trigger page type, the
// blocked event is removed and the replacement is injected as a
// synthetic custom-event trigger, so every later stage sees the
// substituted set rather than the original.
func stageBrandSwap(working *container.Working, site specstore.SiteConfig, pageType pagecontext.PageType) {
	swap := site.BrandEventSwap
	if swap == nil {
		return
	}
	if swap.PageTypeTrigger != "" && string(pageType) != swap.PageTypeTrigger {
		return
	}
	working.RemoveEvent(swap.BlockedEvent)
	working.InjectSyntheticTrigger(swap.ReplacementEvent, "brand-swap:"+swap.ReplacementEvent,
		"brand event swap: "+swap.BlockedEvent+" -> "+swap.ReplacementEvent)
}

// stageEdgeCase consults the site's static edge-case registry. A
// disabled edge case, or one restricted to page types that exclude
// the current page, blocks the event outright.
func stageEdgeCase(eventName string, site specstore.SiteConfig, pageType pagecontext.PageType) (blocked bool, reason string) {
	edge, ok := site.EdgeCases[eventName]
	if !ok {
		return false, ""
	}
	if edge.Disabled {
		return true, "edge case disabled: " + edge.Description
	}
	if len(edge.AllowedPageTypes) > 0 && !containsPageType(edge.AllowedPageTypes, pageType) {
		return true, "edge case restricts " + eventName + " to " + strings.Join(edge.AllowedPageTypes, ",")
	}
	return false, ""
}

// gtmConfidenceThreshold is the floor at which the container's own
// trigger-derived page mapping is trusted outright over the
// development guide, per the pinned GTM-vs-guide conflict policy.
const gtmConfidenceThreshold = 65

// guideIsExplicit reports whether the guide actually states a page
// constraint for this event, as opposed to an absent/unparsed entry.
func guideIsExplicit(def *specstore.ParsedEventDefinition) bool {
	return def != nil && (def.AllPages || len(def.AllowedPageTypes) > 0)
}

// resolveGtmGuideConflict picks which source's page-type constraint
// governs this event, per the pinned policy: the site's
// GTM-inference-unreliable override always defers to an explicit
// guide entry; otherwise GTM wins whenever its mapping confidence
// clears gtmConfidenceThreshold, and an explicit guide entry wins
// below that; with neither available, GTM's mapping is used anyway
// since it is still the best evidence on hand.
func resolveGtmGuideConflict(
	mapping container.EventPageMapping,
	guideDef *specstore.ParsedEventDefinition,
	unreliable bool,
) (allPages bool, allowedPageTypes []string, source string) {
	if unreliable && guideIsExplicit(guideDef) {
		return guideDef.AllPages, guideDef.AllowedPageTypes, "development guide (GTM inference flagged unreliable)"
	}
	if mapping.Confidence >= gtmConfidenceThreshold {
		return mapping.AllPages, mapping.AllowedPageTypes, "container trigger filters"
	}
	if guideIsExplicit(guideDef) {
		return guideDef.AllPages, guideDef.AllowedPageTypes, "development guide"
	}
	return mapping.AllPages, mapping.AllowedPageTypes, "container trigger filters (low confidence, no guide entry)"
}

// stagePageCompatibility checks the current page type against the
// event's page constraint, resolved per resolveGtmGuideConflict.
func stagePageCompatibility(
	mapping container.EventPageMapping,
	guideDef *specstore.ParsedEventDefinition,
	site specstore.SiteConfig,
	pageType pagecontext.PageType,
) (blocked bool, reason string) {
	unreliable := containsString(site.GTMInferenceUnreliable, mapping.EventName)
	allPages, allowedPageTypes, source := resolveGtmGuideConflict(mapping, guideDef, unreliable)

	if allPages || len(allowedPageTypes) == 0 {
		return false, ""
	}
	if !containsPageType(allowedPageTypes, pageType) {
		return true, source + " restricts event to " + strings.Join(allowedPageTypes, ",")
	}
	return false, ""
}

func containsPageType(types []string, pt pagecontext.PageType) bool {
	for _, t := range types {
		if strings.EqualFold(t, string(pt)) {
			return true
		}
	}
	return false
}

func containsString(xs []string, x string) bool {
	for _, s := range xs {
		if s == x {
			return true
		}
	}
	return false
}
