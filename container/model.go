package container

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sync"

	"ga4oracle/errs"
	"ga4oracle/gtm"

	tagmanager "google.golang.org/api/tagmanager/v2"
)

// gtmInternalVariable matches event names that are actually unresolved
// GTM template variables, e.g. "{{Event Name}}" — syntactically
// rejected as events, not parsed as tags (Stage 0 of the gating
// engine enforces this again at decision time; parsing enforces it
// once at load time so the indices never carry a bogus event).
var gtmInternalVariable = regexp.MustCompile(`^\{\{.*\}\}$`)

// Model is the frozen, read-only index over a parsed container. It is
// built once at startup and never mutated; per-analysis synthetic
// triggers are layered on top via a Working copy (see working.go).
type Model struct {
	mu sync.RWMutex // guards nothing mutable today; reserved so a future
	// hot-reload of the container doesn't have to change every caller.

	tags            []Tag
	triggerByID     map[string]Trigger
	eventToTriggers map[string][]string // eventName -> triggerIDs
	variableByName  map[string]Variable

	danglingTriggerRefs []string // tagID -> missing triggerID, reported not fatal
}

// Parse builds a Model from a container export. A tag with no event
// name is skipped with a warning; dangling trigger references are
// reported in Model.DanglingTriggerRefs but do not abort parsing.
// Malformed input is a fatal ConfigError.
func Parse(raw []byte) (*Model, error) {
	if err := validateExportShape(raw); err != nil {
		return nil, err
	}

	var export Export
	if err := json.Unmarshal(raw, &export); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrConfig, "corrupt container: "+err.Error())
	}
	return fromExport(export)
}

func fromExport(export Export) (*Model, error) {
	m := &Model{
		triggerByID:     make(map[string]Trigger, len(export.ContainerVersion.Trigger)),
		eventToTriggers: make(map[string][]string),
		variableByName:  make(map[string]Variable, len(export.ContainerVersion.Variable)),
	}

	for _, v := range export.ContainerVersion.Variable {
		var p gtm.Parameter
		if len(v.Parameter) > 0 {
			p = v.Parameter[0]
		}
		m.variableByName[v.Name] = Variable{ID: v.VariableID, Name: v.Name, Type: v.Type, Param: p}
	}

	for _, t := range export.ContainerVersion.Trigger {
		selector, _ := cssSelectorOf(t)
		trig := Trigger{
			ID:              t.TriggerID,
			Name:            t.Name,
			Type:            toTriggerType(t.Type),
			Filter:          t.Filter,
			AutoEventFilter: t.AutoEventFilter,
			CustomEventName: customEventNameOf(t),
			CSSSelector:     selector,
		}
		m.triggerByID[t.TriggerID] = trig
	}

	for _, t := range export.ContainerVersion.Tag {
		eventName := eventNameOf(t)
		if eventName == "" {
			slog.Warn("skipping tag with no event name", "tagId", t.TagID, "tagName", t.Name)
			continue
		}

		tag := Tag{ID: t.TagID, Name: t.Name, EventName: eventName, FiringTriggerIDs: t.FiringTriggerID, Parameters: t.Parameter}
		m.tags = append(m.tags, tag)

		for _, triggerID := range t.FiringTriggerID {
			if _, ok := m.triggerByID[triggerID]; !ok {
				m.danglingTriggerRefs = append(m.danglingTriggerRefs,
					fmt.Sprintf("tag %s (%s) references missing trigger %s", t.TagID, t.Name, triggerID))
				continue
			}
			m.eventToTriggers[eventName] = append(m.eventToTriggers[eventName], triggerID)
		}
	}

	return m, nil
}

// FromLiveVersion builds a Model directly from a live GTM API response
// (gtm.Client.GetContainerVersionExport / GetLiveContainerVersion),
// without a JSON round trip.
func FromLiveVersion(v *tagmanager.ContainerVersion) (*Model, error) {
	var export Export
	for _, t := range v.Tag {
		export.ContainerVersion.Tag = append(export.ContainerVersion.Tag, ExportTag{
			TagID:           t.TagId,
			Name:            t.Name,
			Type:            t.Type,
			FiringTriggerID: t.FiringTriggerId,
			Parameter:       fromAPIParameters(t.Parameter),
		})
	}
	for _, t := range v.Trigger {
		export.ContainerVersion.Trigger = append(export.ContainerVersion.Trigger, ExportTrigger{
			TriggerID:         t.TriggerId,
			Name:              t.Name,
			Type:              t.Type,
			Filter:            fromAPIConditions(t.Filter),
			AutoEventFilter:   fromAPIConditions(t.AutoEventFilter),
			CustomEventFilter: fromAPIConditions(t.CustomEventFilter),
			Parameter:         fromAPIParameters(t.Parameter),
		})
	}
	for _, v := range v.Variable {
		export.ContainerVersion.Variable = append(export.ContainerVersion.Variable, ExportVariable{
			VariableID: v.VariableId,
			Name:       v.Name,
			Type:       v.Type,
			Parameter:  fromAPIParameters(v.Parameter),
		})
	}
	return fromExport(export)
}

func fromAPIParameters(ps []*tagmanager.Parameter) []gtm.Parameter {
	result := make([]gtm.Parameter, 0, len(ps))
	for _, p := range ps {
		result = append(result, gtm.Parameter{
			Type:  p.Type,
			Key:   p.Key,
			Value: p.Value,
		})
	}
	return result
}

func fromAPIConditions(cs []*tagmanager.Condition) []gtm.Condition {
	result := make([]gtm.Condition, 0, len(cs))
	for _, c := range cs {
		result = append(result, gtm.Condition{
			Type:      c.Type,
			Parameter: fromAPIParameters(c.Parameter),
		})
	}
	return result
}

// Tags returns all parsed tags, in export order.
func (m *Model) Tags() []Tag {
	out := make([]Tag, len(m.tags))
	copy(out, m.tags)
	return out
}

// Trigger looks up a trigger by ID.
func (m *Model) Trigger(id string) (Trigger, bool) {
	t, ok := m.triggerByID[id]
	return t, ok
}

// EventNames returns every distinct event name defined by a tag in the
// container, excluding GTM-internal pseudo-events ("{{...}}").
func (m *Model) EventNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range m.tags {
		if gtmInternalVariable.MatchString(t.EventName) {
			continue
		}
		if !seen[t.EventName] {
			seen[t.EventName] = true
			names = append(names, t.EventName)
		}
	}
	return names
}

// TagsOf returns the tags bound to an event name, in export order.
func (m *Model) TagsOf(eventName string) []Tag {
	var out []Tag
	for _, t := range m.tags {
		if t.EventName == eventName {
			out = append(out, t)
		}
	}
	return out
}

// TriggersOf returns the triggers bound to an event's tags.
func (m *Model) TriggersOf(eventName string) []Trigger {
	ids := m.eventToTriggers[eventName]
	triggers := make([]Trigger, 0, len(ids))
	for _, id := range ids {
		if t, ok := m.triggerByID[id]; ok {
			triggers = append(triggers, t)
		}
	}
	return triggers
}

// HasCustomEventTrigger reports whether any of an event's triggers are
// of type CUSTOM_EVENT. The gating engine uses this to bypass DOM
// selector verification — those events are dispatched by dataLayer
// pushes regardless of what is on screen.
func (m *Model) HasCustomEventTrigger(eventName string) bool {
	for _, t := range m.TriggersOf(eventName) {
		if t.Type == TriggerCustomEvent {
			return true
		}
	}
	return false
}

// ExtractCSSSelector returns the selector argument of a CLICK/LINK_CLICK
// trigger. CUSTOM_EVENT triggers never carry a gating selector — their
// selector, if any, describes internal site wiring, not a GTM gate.
func ExtractCSSSelector(t Trigger) (string, bool) {
	if t.Type == TriggerCustomEvent {
		return "", false
	}
	return t.CSSSelector, t.CSSSelector != ""
}

// DanglingTriggerRefs reports firingTriggerId entries that did not
// resolve to any trigger in the container. Parsing does not abort for
// these; a caller (e.g. the audit_container prompt) surfaces them.
func (m *Model) DanglingTriggerRefs() []string {
	out := make([]string, len(m.danglingTriggerRefs))
	copy(out, m.danglingTriggerRefs)
	return out
}
