package container

import (
	"testing"

	"ga4oracle/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `{
  "containerVersion": {
    "tag": [
      {"tagId": "1", "name": "GA4 - page_view", "type": "gaawe",
       "firingTriggerId": ["10"],
       "parameter": [{"type":"template","key":"eventName","value":"page_view"}]},
      {"tagId": "2", "name": "GA4 - view_item", "type": "gaawe",
       "firingTriggerId": ["11"],
       "parameter": [{"type":"template","key":"eventName","value":"view_item"}]},
      {"tagId": "3", "name": "GA4 - {{Event}}", "type": "gaawe",
       "firingTriggerId": ["12"],
       "parameter": [{"type":"template","key":"eventName","value":"{{Event}}"}]},
      {"tagId": "4", "name": "GA4 - dangling", "type": "gaawe",
       "firingTriggerId": ["999"],
       "parameter": [{"type":"template","key":"eventName","value":"dangling_event"}]}
    ],
    "trigger": [
      {"triggerId": "10", "name": "All Pages", "type": "PAGEVIEW"},
      {"triggerId": "11", "name": "Click Buy Button", "type": "CLICK",
       "parameter": [{"type":"template","key":"selectorId","value":".buy-button"}],
       "filter": [{"type":"equals","parameter":[
         {"type":"template","key":"arg0","value":"{{Page Type}}"},
         {"type":"template","key":"arg1","value":"PRODUCT_DETAIL"}
       ]}]},
      {"triggerId": "12", "name": "Custom Event", "type": "CUSTOM_EVENT",
       "customEventFilter": [{"type":"equals","parameter":[
         {"type":"template","key":"arg0","value":"{{_event}}"},
         {"type":"template","key":"arg1","value":"internal_event"}
       ]}]}
    ],
    "variable": [
      {"variableId": "1", "name": "Page Type", "type": "v"}
    ]
  }
}`

func TestParse_IndexesTagsTriggersAndEvents(t *testing.T) {
	m, err := Parse([]byte(sampleExport))
	require.NoError(t, err)

	names := m.EventNames()
	assert.Contains(t, names, "page_view")
	assert.Contains(t, names, "view_item")
	assert.Contains(t, names, "dangling_event")
	assert.NotContains(t, names, "{{Event}}", "GTM-internal pseudo-events must not be indexed")
}

func TestParse_DanglingTriggerReferenceIsReportedNotFatal(t *testing.T) {
	m, err := Parse([]byte(sampleExport))
	require.NoError(t, err)

	refs := m.DanglingTriggerRefs()
	require.Len(t, refs, 1)
	assert.Contains(t, refs[0], "999")
}

func TestParse_CorruptContainerIsConfigError(t *testing.T) {
	_, err := Parse([]byte("not json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConfig)
}

func TestHasCustomEventTrigger(t *testing.T) {
	m, err := Parse([]byte(sampleExport))
	require.NoError(t, err)

	assert.False(t, m.HasCustomEventTrigger("page_view"))
	assert.False(t, m.HasCustomEventTrigger("view_item"))
}

func TestExtractCSSSelector_SkipsCustomEventTriggers(t *testing.T) {
	m, err := Parse([]byte(sampleExport))
	require.NoError(t, err)

	triggers := m.TriggersOf("view_item")
	require.Len(t, triggers, 1)
	selector, ok := ExtractCSSSelector(triggers[0])
	assert.True(t, ok)
	assert.Equal(t, ".buy-button", selector)

	custom, ok := m.Trigger("12")
	require.True(t, ok)
	_, ok = ExtractCSSSelector(custom)
	assert.False(t, ok, "custom event triggers never carry a gating selector")
}

func TestEventPageMappings_EqualityOnPageTypeVariableScoresHighest(t *testing.T) {
	m, err := Parse([]byte(sampleExport))
	require.NoError(t, err)

	mappings := m.EventPageMappings(nil)
	mapping := mappings["view_item"]
	assert.Equal(t, 90, mapping.Confidence)
	assert.Contains(t, mapping.AllowedPageTypes, "PRODUCT_DETAIL")
}

func TestEventPageMappings_NoConstraintMeansAllPagesAtLowConfidence(t *testing.T) {
	m, err := Parse([]byte(sampleExport))
	require.NoError(t, err)

	mappings := m.EventPageMappings(nil)
	mapping := mappings["page_view"]
	assert.Equal(t, 30, mapping.Confidence)
	assert.True(t, mapping.AllPages)
}

func TestWorking_InjectSyntheticTriggerAddsEventAndBypassesSelector(t *testing.T) {
	m, err := Parse([]byte(sampleExport))
	require.NoError(t, err)

	w := NewWorking(m)
	assert.False(t, w.HasCustomEventTrigger("brand_product_click"))

	w.InjectSyntheticTrigger("brand_product_click", "synthetic-1", "brand page swap")

	assert.True(t, w.HasCustomEventTrigger("brand_product_click"))
	assert.Contains(t, w.EventNames(), "brand_product_click")
}

func TestWorking_RemoveEventExcludesFromEventNames(t *testing.T) {
	m, err := Parse([]byte(sampleExport))
	require.NoError(t, err)

	w := NewWorking(m)
	w.RemoveEvent("view_item")

	assert.NotContains(t, w.EventNames(), "view_item")
	assert.Contains(t, m.EventNames(), "view_item", "removal must not mutate the shared frozen model")
}
