package container

import (
	"regexp"
	"strings"

	"ga4oracle/gtm"
)

var pageTypeVariableName = regexp.MustCompile(`(?i)page.?type|content.?group`)

// urlVariableName matches the built-in variables GTM uses to expose
// the current URL/path to a trigger's regex filters.
var urlVariableName = regexp.MustCompile(`(?i)page\s*url|page\s*path`)

// URLPatternResolver maps a URL regex pattern (as authored in a GTM
// trigger filter) to the page type it implies, using the page-type
// detector's own URL-pattern table. EventPageMappings treats a
// resolver-less pattern as contributing no page constraint.
type URLPatternResolver func(pattern string) (pageType string, ok bool)

// EventPageMappings inspects each event's firing triggers' filters and
// derives an allowed-page-types constraint plus a confidence score:
// equality on a page-type/content-group variable scores highest,
// regex-on-URL scores next, and bare presence with no page constraint
// scores lowest ("admitted on all pages").
func (m *Model) EventPageMappings(resolveURL URLPatternResolver) map[string]EventPageMapping {
	result := make(map[string]EventPageMapping, len(m.eventToTriggers))

	for _, eventName := range m.EventNames() {
		mapping := EventPageMapping{
			EventName: eventName,
			Source:    SourceGTM,
		}

		pageTypes := map[string]bool{}
		urlConditions := []string{}
		bestConfidence := 0

		for _, t := range m.TriggersOf(eventName) {
			for _, c := range append(append([]gtm.Condition{}, t.Filter...), t.AutoEventFilter...) {
				pt, isPageTypeEquality := pageTypeEqualityTarget(c)
				if isPageTypeEquality {
					pageTypes[pt] = true
					if 90 > bestConfidence {
						bestConfidence = 90
					}
					continue
				}
				if pattern, isURLRegex := urlRegexTarget(c); isURLRegex {
					urlConditions = append(urlConditions, pattern)
					if resolveURL != nil {
						if resolved, ok := resolveURL(pattern); ok {
							pageTypes[resolved] = true
						}
					}
					if 70 > bestConfidence {
						bestConfidence = 70
					}
				}
			}
		}

		if bestConfidence == 0 {
			bestConfidence = 30
			mapping.AllPages = true
		}

		for pt := range pageTypes {
			mapping.AllowedPageTypes = append(mapping.AllowedPageTypes, pt)
		}
		mapping.TriggerPageConditions = urlConditions
		mapping.Confidence = bestConfidence

		result[eventName] = mapping
	}

	return result
}

// pageTypeEqualityTarget reports whether a condition is an equality
// comparison against a page-type/content-group variable, and if so the
// literal page type value it asserts.
func pageTypeEqualityTarget(c gtm.Condition) (string, bool) {
	if !strings.EqualFold(c.Type, "equals") {
		return "", false
	}
	var arg0, arg1 string
	for _, p := range c.Parameter {
		switch p.Key {
		case "arg0":
			arg0 = p.Value
		case "arg1":
			arg1 = p.Value
		}
	}
	if !pageTypeVariableName.MatchString(arg0) {
		return "", false
	}
	return strings.ToUpper(strings.TrimSpace(arg1)), arg1 != ""
}

// urlRegexTarget reports whether a condition is a regex match against
// a URL/path variable, and if so the regex pattern.
func urlRegexTarget(c gtm.Condition) (string, bool) {
	if !strings.EqualFold(c.Type, "matchRegex") {
		return "", false
	}
	var arg0, arg1 string
	for _, p := range c.Parameter {
		switch p.Key {
		case "arg0":
			arg0 = p.Value
		case "arg1":
			arg1 = p.Value
		}
	}
	if !urlVariableName.MatchString(arg0) {
		return "", false
	}
	return arg1, arg1 != ""
}
