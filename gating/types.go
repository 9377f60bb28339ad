// Package gating implements the twelve-stage event admission
// pipeline (C4): given a mined GTM container, the specification
// store, and the current page's detected context, it decides which
// events can fire, which would fire without the UI a tester needs to
// trigger them, and which cannot fire on this page at all.
package gating

import (
	"ga4oracle/errs"
	"ga4oracle/pagecontext"
)

// Verdict is the final admission state of one event on one page.
type Verdict string

const (
	// VerdictCanFire means the event fires and its required UI (if
	// any) was confirmed present.
	VerdictCanFire Verdict = "CAN_FIRE"
	// VerdictNoUI means the event would fire per the container's
	// wiring, but the UI element it depends on could not be confirmed
	// present — a tester following the guide would not find it to
	// click.
	VerdictNoUI Verdict = "NO_UI"
	// VerdictBlocked means the event cannot fire on this page at all
	// (wrong page type, disabled edge case, syntax-invalid name).
	VerdictBlocked Verdict = "BLOCKED"
	// VerdictUnknown is the verdict every EventResult starts with
	// (newResult), before any stage has settled it.
	VerdictUnknown Verdict = "UNKNOWN"
)

// EventResult is one event's outcome after all twelve stages.
type EventResult struct {
	EventName  string
	Verdict    Verdict
	Confidence int
	Stage      string // the stage that produced the final verdict
	Reasons    []string
	Synthetic  bool // true if this event only exists via a stage-injected trigger
}

// Result is the full pipeline output for one page analysis.
type Result struct {
	PageContext         pagecontext.PageContext
	Events              map[string]*EventResult
	ConsistencyWarnings []errs.ConsistencyWarning
	DanglingTriggerRefs []string
}

func newResult(eventName string) *EventResult {
	return &EventResult{EventName: eventName, Verdict: VerdictUnknown}
}

func (r *EventResult) settle(v Verdict, stage string, confidence int, reason string) {
	r.Verdict = v
	r.Stage = stage
	r.Confidence = confidence
	r.Reasons = append(r.Reasons, reason)
}

func (r *EventResult) note(reason string) {
	r.Reasons = append(r.Reasons, reason)
}
