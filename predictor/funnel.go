package predictor

import (
	"fmt"

	"ga4oracle/errs"
)

// funnelTrackedSeverity classifies how strictly a funnel-tracked
// parameter must agree across the events of one session: item
// identity fields must be byte-identical wherever they recur (a
// changed item_id across view_item -> add_to_cart -> purchase means
// the funnel is tracking the wrong item), while price is expected to
// legitimately vary with currency conversion or promotions and only
// warrants a warning.
var funnelTrackedSeverity = map[string]string{
	"item_id":    "CRITICAL",
	"item_name":  "CRITICAL",
	"item_brand": "CRITICAL",
	"price":      "WARNING",
}

// PredictedEvent is the minimal shape CheckFunnelConsistency needs:
// one event's resolved parameter values, keyed by GA4 key.
type PredictedEvent struct {
	EventName string
	Values    map[string]string
}

// CheckFunnelConsistency compares funnel-tracked parameter values
// across a session's predicted events and reports disagreements.
// item_id/item_name/item_brand disagreements are CRITICAL — they
// indicate the tracking itself is broken, not just a price drift.
func CheckFunnelConsistency(events []PredictedEvent) []errs.ConsistencyWarning {
	var warnings []errs.ConsistencyWarning

	for key, severity := range funnelTrackedSeverity {
		firstValue := ""
		firstEvent := ""
		for _, e := range events {
			v, ok := e.Values[key]
			if !ok || v == "" {
				continue
			}
			normalized := Normalize(key, v)
			if firstValue == "" {
				firstValue = normalized
				firstEvent = e.EventName
				continue
			}
			if normalized != firstValue {
				warnings = append(warnings, errs.ConsistencyWarning{
					Stage:   severity,
					Subject: key,
					Detail: fmt.Sprintf("%s=%q on %s disagrees with %s=%q on %s",
						key, v, e.EventName, key, firstValue, firstEvent),
				})
			}
		}
	}

	return warnings
}
