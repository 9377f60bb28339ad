// Package predictor classifies each documented GA4 parameter by how
// its value should be derived, then derives a concrete predicted
// value for it (C5). Classification and value derivation are kept
// separate: classification is pure and deterministic from the
// parameter's metadata alone, while derivation additionally consults
// the page context, the container, and observation history.
package predictor

import (
	"strings"

	"ga4oracle/specstore"
)

// ParameterClass is how a parameter's value is expected to be sourced
// at test time. Classification tries each class in a fixed priority
// order against the parameter's ExtractionHint and takes the first one
// that matches. The parameter's name (GA4Key) is not consulted, so a
// parameter with no recognised hint classifies as DYNAMIC.
type ParameterClass string

const (
	// ClassURLVariable is read directly off the current page's URL
	// (query param, path segment) — product id, search term.
	ClassURLVariable ParameterClass = "URL_VARIABLE"
	// ClassConstant never varies: a fixed string the site always
	// sends (e.g. a currency code, a platform identifier).
	ClassConstant ParameterClass = "CONSTANT"
	// ClassEventFixed is fixed for a given event by the container's
	// own tag/variable wiring (a literal GTM variable value).
	ClassEventFixed ParameterClass = "EVENT_FIXED"
	// ClassURLFixed is derived from the URL's host, not its query —
	// site_country/site_language/site_env.
	ClassURLFixed ParameterClass = "URL_FIXED"
	// ClassUserAction is read from the DOM element the user
	// interacted with (a data attribute, link text).
	ClassUserAction ParameterClass = "USER_ACTION"
	// ClassContentGroupBased derives from the page's classified
	// content group / page type.
	ClassContentGroupBased ParameterClass = "CONTENT_GROUP_BASED"
	// ClassPageContext is any other page-context-derived value not
	// covered by a more specific class.
	ClassPageContext ParameterClass = "PAGE_CONTEXT"
	// ClassDynamic is the fallback when nothing else classifies the
	// parameter: derivation falls back to observation history.
	ClassDynamic ParameterClass = "DYNAMIC"
)

// classificationOrder is the priority in which classes are attempted;
// Classify returns the first class whose heuristic matches.
var classificationOrder = []ParameterClass{
	ClassURLVariable,
	ClassConstant,
	ClassEventFixed,
	ClassURLFixed,
	ClassUserAction,
	ClassContentGroupBased,
	ClassPageContext,
}

var urlVariableHints = []string{"product_id", "search_term", "view_event_code", "query_param", "url_param"}
var constantHints = []string{"constant:", "fixed_value:"}
var eventFixedHints = []string{"gtm_variable:", "tag_parameter:"}
var urlFixedHints = []string{"site_country", "site_language", "site_env", "host_pattern"}
var userActionHints = []string{"data_attribute:", "dom_attribute:", "element_text"}
var contentGroupHints = []string{"page_type", "content_group"}

// Classify determines how a parameter's value should be derived.
func Classify(def specstore.ParameterDefinition) ParameterClass {
	hint := strings.ToLower(def.ExtractionHint)

	for _, c := range classificationOrder {
		if matchesHint(c, hint) {
			return c
		}
	}
	return ClassDynamic
}

func matchesHint(class ParameterClass, hint string) bool {
	var candidates []string
	switch class {
	case ClassURLVariable:
		candidates = urlVariableHints
	case ClassConstant:
		candidates = constantHints
	case ClassEventFixed:
		candidates = eventFixedHints
	case ClassURLFixed:
		candidates = urlFixedHints
	case ClassUserAction:
		candidates = userActionHints
	case ClassContentGroupBased:
		candidates = contentGroupHints
	case ClassPageContext:
		return strings.Contains(hint, "page_context")
	}
	for _, c := range candidates {
		if strings.Contains(hint, c) {
			return true
		}
	}
	return false
}
