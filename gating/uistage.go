package gating

import (
	"context"
	"encoding/json"
	"fmt"

	"ga4oracle/browserpage"
	"ga4oracle/container"
	"ga4oracle/specstore"
	"ga4oracle/vision"
)

// visionPromptTemplate asks the model a single yes/no question about whether
// the UI a gated event depends on is visible in the screenshot, and
// requires a strict JSON reply so ExtractJSON's balanced-brace scan
// always finds exactly one answer.
const visionPromptTemplate = `You are looking at a screenshot of a web page. ` +
	`Determine whether the following UI is visible and interactable: %s. ` +
	`Respond with only a JSON object: {"uiPresent": true or false, "reason": "short explanation"}.`

type visionAnswer struct {
	UIPresent bool   `json:"uiPresent"`
	Reason    string `json:"reason"`
}

// stageDOMVerification confirms, via a live CSS selector count, that
// the element a trigger depends on is present. A custom-event trigger
// with no selector to check is left for stageVisionInference to
// settle, unless it's exempted earlier by a forced-auto-include or
// custom-event bypass.
func stageDOMVerification(ctx context.Context, page browserpage.Page, selector string) (present bool, checked bool, err error) {
	if page == nil || selector == "" {
		return false, false, nil
	}
	count, err := page.QuerySelectorAll(ctx, selector)
	if err != nil {
		return false, true, fmt.Errorf("dom verification: %w", err)
	}
	return count > 0, true, nil
}

// stageVisionInference is the pipeline's last resort: when no CSS
// selector settled the question, ask the vision model whether the
// required UI is visible in a screenshot.
func stageVisionInference(ctx context.Context, page browserpage.Page, vis vision.Service, description string) (present bool, err error) {
	if page == nil || vis == nil {
		return false, fmt.Errorf("gating: no screenshot/vision service available for contextual inference")
	}
	screenshot, err := page.Screenshot(ctx)
	if err != nil {
		return false, fmt.Errorf("gating: capture screenshot: %w", err)
	}

	raw, err := vis.Analyze(ctx, screenshot, fmt.Sprintf(visionPromptTemplate, description))
	if err != nil {
		return false, fmt.Errorf("gating: vision analysis: %w", err)
	}

	jsonPart, err := vision.ExtractJSON(raw)
	if err != nil {
		return false, fmt.Errorf("gating: parse vision response: %w", err)
	}

	var answer visionAnswer
	if err := json.Unmarshal([]byte(jsonPart), &answer); err != nil {
		return false, fmt.Errorf("gating: decode vision answer: %w", err)
	}
	return answer.UIPresent, nil
}

// degradedVerdictOnVisionFailure applies the Stage 8 vision-failure
// table: an AutoFire event never reaches vision inference in the first
// place, so every event degraded here — RequiresUserAction or with no
// guide entry at all — degrades to NO_UI (not BLOCKED), since the
// container wiring itself was never in question, only whether a tester
// could find the UI to trigger it.
func degradedVerdictOnVisionFailure(def *specstore.ParsedEventDefinition) Verdict {
	return VerdictNoUI
}

// uiDescriptionFor builds the natural-language description handed to
// the vision prompt for a trigger lacking an extractable selector.
func uiDescriptionFor(eventName string, t container.Trigger, def *specstore.ParsedEventDefinition) string {
	if def != nil && def.RequiredUI != "" {
		return def.RequiredUI
	}
	if def != nil && def.UserActionType != "" {
		return fmt.Sprintf("the element a %s interaction for %q would target", def.UserActionType, eventName)
	}
	return fmt.Sprintf("the UI element that triggers the %q event", eventName)
}
