package container

import "ga4oracle/gtm"

// Export mirrors the JSON shape of a downloaded GTM container export:
// containerVersion.{tag, trigger, variable} arrays, each tag.parameter[]
// entry a {type, key, value|list|map} record. This is the on-disk
// format; FromLiveVersion builds the same shape from a live API
// response so both paths feed the same parser.
type Export struct {
	ContainerVersion struct {
		Tag      []ExportTag      `json:"tag"`
		Trigger  []ExportTrigger  `json:"trigger"`
		Variable []ExportVariable `json:"variable"`
	} `json:"containerVersion"`
}

type ExportTag struct {
	TagID             string         `json:"tagId"`
	Name              string         `json:"name"`
	Type              string         `json:"type"`
	FiringTriggerID   []string       `json:"firingTriggerId"`
	BlockingTriggerID []string       `json:"blockingTriggerId,omitempty"`
	Parameter         []gtm.Parameter `json:"parameter,omitempty"`
}

type ExportTrigger struct {
	TriggerID         string          `json:"triggerId"`
	Name              string          `json:"name"`
	Type              string          `json:"type"`
	Filter            []gtm.Condition `json:"filter,omitempty"`
	AutoEventFilter   []gtm.Condition `json:"autoEventFilter,omitempty"`
	CustomEventFilter []gtm.Condition `json:"customEventFilter,omitempty"`
	Parameter         []gtm.Parameter `json:"parameter,omitempty"`
}

type ExportVariable struct {
	VariableID string         `json:"variableId"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Parameter  []gtm.Parameter `json:"parameter,omitempty"`
}

// eventNameOf returns the tag's bound event name, read from its
// "eventName" parameter (GA4 event tags). A tag with no such parameter
// yields "", whatever its tag name says.
func eventNameOf(t ExportTag) string {
	for _, p := range t.Parameter {
		if p.Key == "eventName" {
			return p.Value
		}
	}
	return ""
}

func cssSelectorOf(trig ExportTrigger) (string, bool) {
	if toTriggerType(trig.Type) == TriggerCustomEvent {
		return "", false
	}
	for _, p := range trig.Parameter {
		if p.Key == "selectorId" || p.Key == "cssSelector" {
			return p.Value, p.Value != ""
		}
	}
	return "", false
}

func customEventNameOf(trig ExportTrigger) string {
	for _, c := range trig.CustomEventFilter {
		for _, p := range c.Parameter {
			if p.Key == "arg1" {
				return p.Value
			}
		}
	}
	return ""
}
