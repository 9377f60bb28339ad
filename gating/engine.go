package gating

import (
	"context"

	"ga4oracle/browserpage"
	"ga4oracle/container"
	"ga4oracle/pagecontext"
	"ga4oracle/specstore"
	"ga4oracle/vision"
)

// Engine runs the twelve-stage admission pipeline against a mined
// container and the specification store. It holds no per-analysis
// state; callers build one Working overlay per analysis and pass it
// to Decide.
type Engine struct {
	Store *specstore.Store
}

// NewEngine builds a gating Engine backed by a loaded specification
// store.
func NewEngine(store *specstore.Store) *Engine {
	return &Engine{Store: store}
}

// Decide runs every event documented by the container or the
// specification store through the admission pipeline for one page,
// optionally confirming UI presence via page and vis when a CSS
// selector can't settle the question on its own.
func (e *Engine) Decide(
	ctx context.Context,
	working *container.Working,
	site specstore.SiteConfig,
	pageCtx pagecontext.PageContext,
	page browserpage.Page,
	vis vision.Service,
) (Result, error) {
	// Stage 5: brand event swap. Mutates the working overlay before the
	// event set is finalized, so every later stage already sees the
	// substituted set.
	stageBrandSwap(working, site, pageCtx.PageType)

	// Stage 6: video auto-inclusion. Also mutates the working overlay
	// ahead of event-set finalization, for the same reason.
	stageVideoAutoInclusion(ctx, working, page)

	eventNames := dedupeEventNames(working, e.Store)

	results := make(map[string]*EventResult, len(eventNames))
	mappings := working.EventPageMappings(nil)

	for _, eventName := range eventNames {
		result := newResult(eventName)
		results[eventName] = result

		if blocked, reason := stageSyntax(eventName); blocked {
			result.settle(VerdictBlocked, "syntax", 100, reason)
			continue
		}

		guideDef, _ := e.Store.EventDefinition(eventName)

		if blocked, reason := stageEdgeCase(eventName, site, pageCtx.PageType); blocked {
			result.settle(VerdictBlocked, "edge_case", 95, reason)
			continue
		}

		mapping := mappings[eventName]
		if blocked, reason := stagePageCompatibility(mapping, guideDef, site, pageCtx.PageType); blocked {
			result.settle(VerdictBlocked, "page_compatibility", 85, reason)
			continue
		}

		triggers := working.TriggersOf(eventName)
		if len(triggers) == 0 {
			result.settle(VerdictBlocked, "trigger_presence", 90, "no trigger wired to this event in the container")
			continue
		}

		if guideDef != nil && guideDef.AutoFire {
			result.settle(VerdictCanFire, "auto_include", 80, "event is configured to auto-fire; UI verification skipped")
			continue
		}

		if working.HasCustomEventTrigger(eventName) {
			result.settle(VerdictCanFire, "custom_event_bypass", 85,
				"container wires this event via an explicit CUSTOM_EVENT trigger")
			continue
		}

		trigger := triggers[0]
		selector, hasSelector := container.ExtractCSSSelector(trigger)

		if hasSelector {
			present, checked, err := stageDOMVerification(ctx, page, selector)
			if err != nil {
				result.note("dom verification error: " + err.Error())
			}
			if checked {
				if present {
					result.settle(VerdictCanFire, "dom_verification", 90, "selector "+selector+" present on page")
				} else {
					result.settle(degradeOnMissingSelector(guideDef), "dom_verification", 60, "selector "+selector+" not found on page")
				}
				continue
			}
		}

		// No selector, or no page to check it against: fall through to
		// vision inference if available.
		present, err := stageVisionInference(ctx, page, vis, uiDescriptionFor(eventName, trigger, guideDef))
		if err != nil {
			result.note("vision inference unavailable: " + err.Error())
			result.settle(degradedVerdictOnVisionFailure(guideDef), "vision_inference", 20, "vision inference unavailable: "+err.Error())
			continue
		}
		if present {
			result.settle(VerdictCanFire, "vision_inference", 75, "vision model confirmed required UI present")
		} else {
			result.settle(degradeOnMissingSelector(guideDef), "vision_inference", 70, "vision model found required UI absent")
		}
	}

	// Stage 9: linked-event propagation.
	applyLinkedEventPromotion(results, site.LinkedEventRules)

	// Stage 10: forced auto-inclusion. Runs unconditionally, after
	// every other stage, so a forced name with no container tag and no
	// guide entry still ends up in canFire.
	stageForcedAutoInclusion(working, results, site.ForcedAutoInclude)

	// Stage 11: contextual vision inference.
	stageContextualVisionInference(results, pageCtx.PageType)

	return Result{
		PageContext:         pageCtx,
		Events:              results,
		DanglingTriggerRefs: working.DanglingTriggerRefs(),
	}, nil
}

// youtubeIframeSelector is the DOM signal Stage 6 looks for before
// auto-including the video events GA4's own enhanced measurement
// can't be relied on to report for embeds outside YouTube.
const youtubeIframeSelector = `iframe[src*="youtube"]`

// videoAutoIncludeEvents are admitted whenever a YouTube iframe is
// present on the page. Non-YouTube video embeds don't get this
// treatment: the platform's own auto-tracking only instruments
// YouTube players, so there's no equivalent signal to key off for
// anything else.
var videoAutoIncludeEvents = []string{"video_start", "video_progress"}

// stageVideoAutoInclusion ensures video_start/video_progress have a
// trigger to evaluate whenever the page embeds at least one YouTube
// player, injecting a synthetic CUSTOM_EVENT trigger for either event
// that doesn't already have one wired in the container.
func stageVideoAutoInclusion(ctx context.Context, working *container.Working, page browserpage.Page) {
	if page == nil {
		return
	}
	count, err := page.QuerySelectorAll(ctx, youtubeIframeSelector)
	if err != nil || count == 0 {
		return
	}
	for _, name := range videoAutoIncludeEvents {
		if len(working.TriggersOf(name)) == 0 {
			working.InjectSyntheticTrigger(name, "video-auto-include:"+name,
				"youtube iframe detected on page")
		}
	}
}

// stageForcedAutoInclusion admits every site-forced event name
// unconditionally, regardless of whether the container or the
// development guide ever mentioned it. These events are emitted by
// client-side heuristics (time-on-page, scroll depth) this engine
// doesn't simulate, so there's nothing upstream to verify against.
func stageForcedAutoInclusion(working *container.Working, results map[string]*EventResult, forced []string) {
	for _, name := range forced {
		result, ok := results[name]
		if !ok {
			if len(working.TriggersOf(name)) == 0 {
				working.InjectSyntheticTrigger(name, "forced-auto-include:"+name,
					"forced auto-include: emitted by client-side heuristics, not simulated")
			}
			result = newResult(name)
			result.Synthetic = true
			results[name] = result
		}
		result.settle(VerdictCanFire, "forced_auto_include", 80, "event is configured for unconditional auto-inclusion")
	}
}

// stageContextualVisionInference applies the engine's one hard-coded
// cross-event rule: on PRODUCT_DETAIL, a confirmed begin_checkout is
// strong evidence that add_to_cart's UI exists too, even when Stage 7/8
// couldn't confirm it directly — the button may open a cart drawer
// rather than anything the selector/vision prompt was looking for.
func stageContextualVisionInference(results map[string]*EventResult, pageType pagecontext.PageType) {
	if pageType != pagecontext.PageProductDetail {
		return
	}
	checkout, ok := results["begin_checkout"]
	if !ok || checkout.Verdict != VerdictCanFire {
		return
	}
	addToCart, ok := results["add_to_cart"]
	if !ok || addToCart.Verdict == VerdictCanFire {
		return
	}
	if addToCart.Stage != "dom_verification" && addToCart.Stage != "vision_inference" {
		return
	}
	addToCart.settle(VerdictCanFire, "contextual_vision_inference", 65, "the buy button likely opens a cart drawer")
}

// degradeOnMissingSelector chooses NO_UI over BLOCKED when a selector
// or vision check comes back negative: the container still wires the
// event for this page, only the UI to trigger it wasn't found.
func degradeOnMissingSelector(def *specstore.ParsedEventDefinition) Verdict {
	return VerdictNoUI
}

// applyLinkedEventPromotion runs after every per-event stage: a linked
// event that was left at NO_UI or BLOCKED is promoted back to its
// primary event's verdict when the primary was confirmed CAN_FIRE,
// since the two fire in the same user interaction and the primary's
// confirmation is strong enough evidence for both.
func applyLinkedEventPromotion(results map[string]*EventResult, rules []specstore.LinkedEventRule) {
	for _, rule := range rules {
		primary, ok := results[rule.Primary]
		if !ok || primary.Verdict != VerdictCanFire {
			continue
		}
		linked, ok := results[rule.Linked]
		if !ok || linked.Verdict == VerdictCanFire {
			continue
		}
		linked.settle(VerdictCanFire, "linked_event_promotion", primary.Confidence-5, "promoted via linked-event rule: "+rule.Reason)
	}
}

// dedupeEventNames merges the container's own tag-derived event names
// with every event the development guide documents, so a guide entry
// with no matching tag still surfaces as a trigger_presence BLOCKED
// verdict instead of silently never being checked.
func dedupeEventNames(working *container.Working, store *specstore.Store) []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range working.EventNames() {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for _, n := range store.GuideEventNames() {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	return names
}
