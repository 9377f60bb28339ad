// Package specstore provides declarative knowledge about events and
// parameters independent of the GTM container: a parsed development
// guide, an ecommerce fallback table, a parameter mapping table, and
// per-site configuration. It is the engine's specification store (C2).
package specstore

// ParameterCategory classifies a GA4 parameter by its scope.
type ParameterCategory string

const (
	CategoryCommon ParameterCategory = "common"
	CategoryEvent  ParameterCategory = "event"
	CategoryUser   ParameterCategory = "user"
	CategoryItem   ParameterCategory = "item"
)

// ValueType is the parameter's expected GA4 wire type.
type ValueType string

const (
	ValueString  ValueType = "string"
	ValueNumber  ValueType = "number"
	ValueBoolean ValueType = "boolean"
)

// ParameterDefinition describes one GA4 parameter as documented by the
// parameter mapping table.
type ParameterDefinition struct {
	GA4Key            string
	DevGuideVar       string
	Category          ParameterCategory
	IsCustomDimension bool
	Description       string
	ValueType         ValueType
	ExtractionHint    string
}

// EventParameterConfig is the full parameter schema for one event.
type EventParameterConfig struct {
	EventName  string
	Parameters []ParameterDefinition
	HasItems   bool
	Summary    struct {
		Total    int
		Standard int
		Custom   int
	}
}

// ParsedEventDefinition is one event's entry from the written
// development guide: its required/optional status, firing condition
// text, allowed page types, and user-action classification.
type ParsedEventDefinition struct {
	EventName       string
	Required        bool
	FiringCondition string
	// AllowedPageTypes is nil/empty with AllPages=true when the guide
	// does not restrict the event to specific page types.
	AllowedPageTypes []string
	AllPages         bool
	RequiredUI       string
	UserActionType   string
	// AutoFire events bypass Stage 8 vision UI verification entirely.
	AutoFire bool
	// RequiresUserAction events degrade to noUI (not canFire) on a
	// vision service failure, per Stage 8's failure table.
	RequiresUserAction bool
}

// SiteConfig bundles the per-site rule overrides the guide/container
// don't carry themselves: event-name aliases, DOM attribute prefixes,
// the edge-case registry, linked-event rules, forced auto-inclusion
// list, and GTM-inference-unreliable events. Loaded as one YAML
// bundle so a new site onboards without code changes.
type SiteConfig struct {
	Host                       string
	SiteName                   string
	EventAliases               map[string]string
	DomAttributePrefix         string
	GTMInferenceUnreliable     []string
	ForcedAutoInclude          []string
	EdgeCases                  map[string]EdgeCase
	LinkedEventRules           []LinkedEventRule
	BrandEventSwap             *BrandEventSwap
}

// EdgeCase is one entry of the static per-event conditional registry
// consulted at Stage 2 of the gating pipeline.
type EdgeCase struct {
	EventName          string
	Condition          string
	Description        string
	RequiredElement    string   // CSS selector, optional
	AllowedPageTypes   []string // empty non-nil slice => disabled everywhere
	Disabled           bool
	AllowedURLPatterns []string // regex, optional
}

// LinkedEventRule promotes a "linked" event back from noUI when its
// "primary" event was confirmed to have UI (Stage 9).
type LinkedEventRule struct {
	Primary string
	Linked  string
	Reason  string
}

// BrandEventSwap is the Stage 5 site-specific rule: on a brand page,
// remove BlockedEvent from the admit set and inject ReplacementEvent.
type BrandEventSwap struct {
	BlockedEvent     string
	ReplacementEvent string
	PageTypeTrigger  string
	URLPatternTrigger string
}
