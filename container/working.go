package container

// Working is a per-analysis mutable overlay on top of a frozen Model.
// Gating stages 5/6/10 inject synthetic CUSTOM_EVENT triggers (brand
// event swap, video auto-inclusion, forced auto-inclusion); those
// mutations must never touch the shared, concurrently-read Model, so
// each analysis gets its own Working copy instead.
type Working struct {
	base            *Model
	extraTriggers   map[string][]Trigger // eventName -> synthetic triggers
	removedEvents   map[string]bool
	addedEventNames []string
}

// NewWorking opens a working copy of model for one analysis.
func NewWorking(model *Model) *Working {
	return &Working{
		base:          model,
		extraTriggers: make(map[string][]Trigger),
		removedEvents: make(map[string]bool),
	}
}

// EventNames returns the base model's events plus any injected by this
// analysis, minus any removed by this analysis (e.g. Stage 5's brand
// swap removing select_item).
func (w *Working) EventNames() []string {
	names := make([]string, 0, len(w.base.tags))
	for _, n := range w.base.EventNames() {
		if !w.removedEvents[n] {
			names = append(names, n)
		}
	}
	for _, n := range w.addedEventNames {
		names = append(names, n)
	}
	return names
}

// TriggersOf returns the base model's triggers for eventName plus any
// synthetic triggers injected during this analysis.
func (w *Working) TriggersOf(eventName string) []Trigger {
	triggers := w.base.TriggersOf(eventName)
	if extra, ok := w.extraTriggers[eventName]; ok {
		triggers = append(triggers, extra...)
	}
	return triggers
}

// HasCustomEventTrigger checks both the base model's triggers and any
// synthetic ones injected for this analysis.
func (w *Working) HasCustomEventTrigger(eventName string) bool {
	if w.base.HasCustomEventTrigger(eventName) {
		return true
	}
	for _, t := range w.extraTriggers[eventName] {
		if t.Type == TriggerCustomEvent {
			return true
		}
	}
	return false
}

// InjectSyntheticTrigger appends a synthetic CUSTOM_EVENT trigger to an
// event for this analysis only. If the event did not previously exist
// in the base model, it is added to EventNames().
func (w *Working) InjectSyntheticTrigger(eventName, triggerID, reason string) {
	if _, existed := w.base.eventToTriggers[eventName]; !existed {
		if !contains(w.addedEventNames, eventName) {
			w.addedEventNames = append(w.addedEventNames, eventName)
		}
	}
	w.extraTriggers[eventName] = append(w.extraTriggers[eventName], Trigger{
		ID:        triggerID,
		Name:      reason,
		Type:      TriggerCustomEvent,
		Synthetic: true,
	})
}

// RemoveEvent drops an event from this analysis's admit candidates
// (Stage 5's brand-page swap removing select_item).
func (w *Working) RemoveEvent(eventName string) {
	w.removedEvents[eventName] = true
}

// EventPageMappings delegates to the frozen base model — brand swaps
// and other injected triggers don't carry their own page-type
// evidence, so synthetic events fall back to AllPages via the zero
// value the caller sees for a missing map entry.
func (w *Working) EventPageMappings(resolveURL URLPatternResolver) map[string]EventPageMapping {
	return w.base.EventPageMappings(resolveURL)
}

// DanglingTriggerRefs delegates to the frozen base model.
func (w *Working) DanglingTriggerRefs() []string {
	return w.base.DanglingTriggerRefs()
}

func contains(xs []string, x string) bool {
	for _, s := range xs {
		if s == x {
			return true
		}
	}
	return false
}
