package specstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSiteConfigYAML = `
host: www.example-brand.com
site_name: Example Brand
event_aliases:
  purchase: order_complete
dom_attribute_prefix: data-ga4
gtm_inference_unreliable:
  - view_item_list
forced_auto_include:
  - page_view
edge_cases:
  video_start:
    condition: product page embeds a demo video
    description: only fires when the hero video player is present
    required_element: ".hero-video"
    allowed_page_types:
      - PRODUCT_DETAIL
linked_event_rules:
  - primary: add_to_cart
    linked: select_item
    reason: select_item precedes add_to_cart in the same interaction
brand_event_swap:
  blocked_event: select_item
  replacement_event: brand_product_click
  page_type_trigger: BRAND_LANDING
`

func TestParseSiteConfig_DecodesAllSections(t *testing.T) {
	cfg, err := ParseSiteConfig(strings.NewReader(sampleSiteConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "www.example-brand.com", cfg.Host)
	assert.Equal(t, "order_complete", cfg.EventAliases["purchase"])
	assert.Contains(t, cfg.GTMInferenceUnreliable, "view_item_list")
	assert.Contains(t, cfg.ForcedAutoInclude, "page_view")

	edge, ok := cfg.EdgeCases["video_start"]
	require.True(t, ok)
	assert.Equal(t, ".hero-video", edge.RequiredElement)
	assert.Contains(t, edge.AllowedPageTypes, "PRODUCT_DETAIL")

	require.Len(t, cfg.LinkedEventRules, 1)
	assert.Equal(t, "add_to_cart", cfg.LinkedEventRules[0].Primary)

	require.NotNil(t, cfg.BrandEventSwap)
	assert.Equal(t, "select_item", cfg.BrandEventSwap.BlockedEvent)
	assert.Equal(t, "brand_product_click", cfg.BrandEventSwap.ReplacementEvent)
}

func TestParseSiteConfig_RequiresHost(t *testing.T) {
	_, err := ParseSiteConfig(strings.NewReader("site_name: No Host Here\n"))
	assert.Error(t, err)
}

func TestParseSiteConfig_RejectsUnknownFields(t *testing.T) {
	_, err := ParseSiteConfig(strings.NewReader("host: x.com\nnot_a_real_field: true\n"))
	assert.Error(t, err)
}
