package predictor

import (
	"context"
	"fmt"
	"strings"

	"ga4oracle/container"
	"ga4oracle/feedback"
	"ga4oracle/pagecontext"
	"ga4oracle/specstore"
)

// PredictedValue is one parameter's derived value plus the reasoning
// trail a QA engineer would want when sanity-checking a prediction.
type PredictedValue struct {
	GA4Key     string
	Class      ParameterClass
	Value      string
	Resolved   bool
	Derivation string
}

// Context bundles everything value derivation may need to consult.
type Context struct {
	EventName string
	PageCtx   pagecontext.PageContext
	Variables map[string]string // resolved GTM variable name -> value, for EVENT_FIXED
	Cache     feedback.Cache
}

// Derive resolves a concrete value for one parameter definition,
// trying the strategy implied by its classification and falling back
// to observation history, then to an explicit unresolved marker,
// rather than guessing.
func Derive(ctx context.Context, def specstore.ParameterDefinition, input Context) PredictedValue {
	class := Classify(def)
	pv := PredictedValue{GA4Key: def.GA4Key, Class: class}

	switch class {
	case ClassURLVariable:
		if v, ok := fromURLVariable(def, input.PageCtx); ok {
			pv.Value, pv.Resolved = v, true
			pv.Derivation = "read from page URL"
			return pv
		}
	case ClassConstant:
		if v, ok := fromConstantHint(def); ok {
			pv.Value, pv.Resolved = v, true
			pv.Derivation = "fixed value from extraction hint"
			return pv
		}
	case ClassEventFixed:
		if v, ok := fromEventFixed(def, input.Variables); ok {
			pv.Value, pv.Resolved = v, true
			pv.Derivation = "resolved GTM variable"
			return pv
		}
	case ClassURLFixed:
		if v, ok := fromURLFixed(def, input.PageCtx); ok {
			pv.Value, pv.Resolved = v, true
			pv.Derivation = "derived from page host"
			return pv
		}
	case ClassContentGroupBased:
		pv.Value = string(input.PageCtx.PageType)
		pv.Resolved = input.PageCtx.PageType != "" && input.PageCtx.PageType != pagecontext.PageOthers
		pv.Derivation = "page content group"
		if pv.Resolved {
			return pv
		}
	case ClassUserAction, ClassPageContext:
		// Neither has a value available without a live DOM read; fall
		// through to history.
	}

	if input.Cache != nil {
		if v, ok := fromHistory(ctx, input.Cache, input.EventName, def.GA4Key); ok {
			pv.Value, pv.Resolved = v, true
			pv.Derivation = "most recent observed value"
			return pv
		}
	}

	pv.Value = ""
	pv.Resolved = false
	pv.Derivation = "unresolved: no derivation strategy produced a value"
	return pv
}

func fromURLVariable(def specstore.ParameterDefinition, pc pagecontext.PageContext) (string, bool) {
	hint := strings.ToLower(def.ExtractionHint)
	switch {
	case strings.Contains(hint, "product_id"):
		return pc.ProductID, pc.ProductID != ""
	case strings.Contains(hint, "search_term"):
		return pc.SearchTerm, pc.SearchTerm != ""
	case strings.Contains(hint, "view_event_code"):
		return pc.ViewEventCode, pc.ViewEventCode != ""
	}
	return "", false
}

func fromConstantHint(def specstore.ParameterDefinition) (string, bool) {
	hint := def.ExtractionHint
	for _, prefix := range []string{"constant:", "fixed_value:"} {
		if idx := strings.Index(strings.ToLower(hint), prefix); idx >= 0 {
			return strings.TrimSpace(hint[idx+len(prefix):]), true
		}
	}
	return "", false
}

func fromEventFixed(def specstore.ParameterDefinition, variables map[string]string) (string, bool) {
	hint := def.ExtractionHint
	for _, prefix := range []string{"gtm_variable:", "tag_parameter:"} {
		idx := strings.Index(strings.ToLower(hint), prefix)
		if idx < 0 {
			continue
		}
		varName := strings.TrimSpace(hint[idx+len(prefix):])
		if v, ok := variables[varName]; ok {
			return v, true
		}
	}
	return "", false
}

func fromURLFixed(def specstore.ParameterDefinition, pc pagecontext.PageContext) (string, bool) {
	hint := strings.ToLower(def.ExtractionHint)
	switch {
	case strings.Contains(hint, "site_country"):
		return pc.SiteCountry, pc.SiteCountry != ""
	case strings.Contains(hint, "site_language"):
		return pc.SiteLanguage, pc.SiteLanguage != ""
	case strings.Contains(hint, "site_env"):
		return pc.SiteEnv, pc.SiteEnv != ""
	}
	return "", false
}

func fromHistory(ctx context.Context, cache feedback.Cache, eventName, parameter string) (string, bool) {
	history, err := cache.History(ctx, eventName, parameter)
	if err != nil || len(history) == 0 {
		return "", false
	}
	return history[len(history)-1].Value, true
}

// DeriveEventFixedFromTag extracts fixed parameter values configured
// directly on the event's own tag(s) — the source fromEventFixed
// consults via input.Variables, built once per analysis rather than
// per parameter. The "eventName" key itself is never a candidate
// value; every other template parameter on the tag is a literal value
// set at tag-configuration time (as opposed to a reference resolved
// from a separate GTM variable, which the container export represents
// the same way but this engine doesn't re-resolve).
func DeriveEventFixedFromTag(tags []container.Tag) map[string]string {
	values := make(map[string]string)
	for _, tag := range tags {
		for _, p := range tag.Parameters {
			if p.Key == "" || p.Key == "eventName" {
				continue
			}
			values[p.Key] = fmt.Sprint(p.Value)
		}
	}
	return values
}
