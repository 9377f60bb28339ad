package gating

import (
	"context"
	"strings"
	"testing"

	"ga4oracle/container"
	"ga4oracle/pagecontext"
	"ga4oracle/specstore"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestProperty_DeterministicForIdenticalInputs checks P-DET: the same
// container, site config, and page context always yield the same
// verdict set — Decide carries no hidden mutable state across calls.
func TestProperty_DeterministicForIdenticalInputs(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	pageTypes := []pagecontext.PageType{
		pagecontext.PageMain, pagecontext.PageProductDetail, pagecontext.PageCart, pagecontext.PageOrder,
	}

	properties.Property("repeated Decide calls over the same inputs agree", prop.ForAll(
		func(idx int) bool {
			model, err := container.Parse([]byte(sampleExport))
			if err != nil {
				return false
			}
			store, err := specstore.Load("", "", "")
			if err != nil {
				return false
			}
			engine := NewEngine(store)
			pageType := pageTypes[idx%len(pageTypes)]

			first, err := engine.Decide(context.Background(), container.NewWorking(model), specstore.SiteConfig{},
				pagecontext.PageContext{PageType: pageType}, nil, nil)
			if err != nil {
				return false
			}
			second, err := engine.Decide(context.Background(), container.NewWorking(model), specstore.SiteConfig{},
				pagecontext.PageContext{PageType: pageType}, nil, nil)
			if err != nil {
				return false
			}

			if len(first.Events) != len(second.Events) {
				return false
			}
			for name, r1 := range first.Events {
				r2, ok := second.Events[name]
				if !ok || r1.Verdict != r2.Verdict || r1.Stage != r2.Stage {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}

// TestProperty_GTMVariableNameAlwaysBlockedWithReason checks Property
// 2: any event name of the form "{{...}}" — an unresolved GTM template
// variable masquerading as an event — is always blocked at Stage 0
// with a reason that names it as a GTM variable, never evaluated any
// further.
func TestProperty_GTMVariableNameAlwaysBlockedWithReason(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("\"{{...}}\" event names are blocked at syntax with a GTM-variable reason", prop.ForAll(
		func(inner string) bool {
			name := "{{" + inner + "}}"
			blocked, reason := stageSyntax(name)
			return blocked && strings.Contains(reason, "GTM variable")
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// TestProperty_BlockedNeverBecomesCanFireWithoutPage checks a
// monotonicity invariant: an event blocked for a structural reason
// (wrong page type, disabled edge case, missing trigger, invalid
// syntax) never flips to CAN_FIRE just because no page/vision was
// supplied — the absence of UI-verification inputs can only ever
// leave a verdict at UNKNOWN/NO_UI, never manufacture an admission.
func TestProperty_BlockedNeverBecomesCanFireWithoutPage(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("page_compatibility/edge_case/syntax/trigger_presence blocks are stable", prop.ForAll(
		func(seed int) bool {
			model, err := container.Parse([]byte(sampleExport))
			if err != nil {
				return false
			}
			store, err := specstore.Load("", "", "")
			if err != nil {
				return false
			}
			engine := NewEngine(store)

			result, err := engine.Decide(context.Background(), container.NewWorking(model), specstore.SiteConfig{},
				pagecontext.PageContext{PageType: pagecontext.PageMain}, nil, nil)
			if err != nil {
				return false
			}

			r, ok := result.Events["add_to_cart"]
			if !ok {
				return false
			}
			structuralStages := map[string]bool{
				"syntax": true, "edge_case": true, "page_compatibility": true, "trigger_presence": true,
			}
			if structuralStages[r.Stage] && r.Verdict == VerdictCanFire {
				return false
			}
			return true
		},
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}
