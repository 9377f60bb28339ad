package gating

import (
	"context"
	"testing"

	"ga4oracle/browserpage"
	"ga4oracle/container"
	"ga4oracle/pagecontext"
	"ga4oracle/specstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `{
  "containerVersion": {
    "tag": [
      {"tagId": "1", "name": "GA4 - page_view", "type": "gaawe",
       "firingTriggerId": ["10"],
       "parameter": [{"type":"template","key":"eventName","value":"page_view"}]},
      {"tagId": "2", "name": "GA4 - add_to_cart", "type": "gaawe",
       "firingTriggerId": ["11"],
       "parameter": [{"type":"template","key":"eventName","value":"add_to_cart"}]},
      {"tagId": "3", "name": "GA4 - gtm.js", "type": "gaawe",
       "firingTriggerId": ["12"],
       "parameter": [{"type":"template","key":"eventName","value":"gtm.js"}]},
      {"tagId": "4", "name": "GA4 - select_item", "type": "gaawe",
       "firingTriggerId": ["13"],
       "parameter": [{"type":"template","key":"eventName","value":"select_item"}]}
    ],
    "trigger": [
      {"triggerId": "10", "name": "All Pages", "type": "PAGEVIEW"},
      {"triggerId": "11", "name": "Click Add To Cart", "type": "CLICK",
       "parameter": [{"type":"template","key":"selectorId","value":".add-to-cart-button"}],
       "filter": [{"type":"equals","parameter":[
         {"type":"template","key":"arg0","value":"{{Page Type}}"},
         {"type":"template","key":"arg1","value":"PRODUCT_DETAIL"}
       ]}]},
      {"triggerId": "12", "name": "Init", "type": "DOM_READY"},
      {"triggerId": "13", "name": "Click Related Item", "type": "CLICK",
       "parameter": [{"type":"template","key":"selectorId","value":".related-item"}]}
    ],
    "variable": []
  }
}`

func newTestEngine(t *testing.T) (*Engine, *container.Working) {
	t.Helper()
	model, err := container.Parse([]byte(sampleExport))
	require.NoError(t, err)
	store, err := specstore.Load("", "", "")
	require.NoError(t, err)
	return NewEngine(store), container.NewWorking(model)
}

func TestDecide_GTMInternalEventIsBlockedAtSyntax(t *testing.T) {
	engine, working := newTestEngine(t)
	result, err := engine.Decide(context.Background(), working, specstore.SiteConfig{},
		pagecontext.PageContext{PageType: pagecontext.PageProductDetail}, nil, nil)
	require.NoError(t, err)

	r := result.Events["gtm.js"]
	require.NotNil(t, r)
	assert.Equal(t, VerdictBlocked, r.Verdict)
	assert.Equal(t, "syntax", r.Stage)
}

func TestDecide_WrongPageTypeBlocksEvent(t *testing.T) {
	engine, working := newTestEngine(t)
	result, err := engine.Decide(context.Background(), working, specstore.SiteConfig{},
		pagecontext.PageContext{PageType: pagecontext.PageMain}, nil, nil)
	require.NoError(t, err)

	r := result.Events["add_to_cart"]
	require.NotNil(t, r)
	assert.Equal(t, VerdictBlocked, r.Verdict)
	assert.Equal(t, "page_compatibility", r.Stage)
}

func TestDecide_SelectorPresentOnPageConfirmsCanFire(t *testing.T) {
	engine, working := newTestEngine(t)
	page := browserpage.NewFake()
	page.SelectorCounts[".add-to-cart-button"] = 1

	result, err := engine.Decide(context.Background(), working, specstore.SiteConfig{},
		pagecontext.PageContext{PageType: pagecontext.PageProductDetail}, page, nil)
	require.NoError(t, err)

	r := result.Events["add_to_cart"]
	require.NotNil(t, r)
	assert.Equal(t, VerdictCanFire, r.Verdict)
	assert.Equal(t, "dom_verification", r.Stage)
}

func TestDecide_SelectorAbsentDegradesToNoUI(t *testing.T) {
	engine, working := newTestEngine(t)
	page := browserpage.NewFake() // selector count defaults to 0

	result, err := engine.Decide(context.Background(), working, specstore.SiteConfig{},
		pagecontext.PageContext{PageType: pagecontext.PageProductDetail}, page, nil)
	require.NoError(t, err)

	r := result.Events["add_to_cart"]
	require.NotNil(t, r)
	assert.Equal(t, VerdictNoUI, r.Verdict)
}

func TestDecide_ForcedAutoIncludeBypassesUICheck(t *testing.T) {
	engine, working := newTestEngine(t)
	site := specstore.SiteConfig{ForcedAutoInclude: []string{"add_to_cart"}}

	result, err := engine.Decide(context.Background(), working, site,
		pagecontext.PageContext{PageType: pagecontext.PageProductDetail}, nil, nil)
	require.NoError(t, err)

	r := result.Events["add_to_cart"]
	require.NotNil(t, r)
	assert.Equal(t, VerdictCanFire, r.Verdict)
	assert.Equal(t, "forced_auto_include", r.Stage)
}

func TestDecide_EdgeCaseDisabledBlocksEvent(t *testing.T) {
	engine, working := newTestEngine(t)
	site := specstore.SiteConfig{
		EdgeCases: map[string]specstore.EdgeCase{
			"add_to_cart": {EventName: "add_to_cart", Disabled: true, Description: "temporarily disabled during A/B test"},
		},
	}

	result, err := engine.Decide(context.Background(), working, site,
		pagecontext.PageContext{PageType: pagecontext.PageProductDetail}, nil, nil)
	require.NoError(t, err)

	r := result.Events["add_to_cart"]
	require.NotNil(t, r)
	assert.Equal(t, VerdictBlocked, r.Verdict)
	assert.Equal(t, "edge_case", r.Stage)
}

func TestDecide_BrandSwapRemovesBlockedAndInjectsReplacement(t *testing.T) {
	engine, working := newTestEngine(t)
	site := specstore.SiteConfig{
		BrandEventSwap: &specstore.BrandEventSwap{
			BlockedEvent:     "add_to_cart",
			ReplacementEvent: "brand_add_to_cart",
			PageTypeTrigger:  "PRODUCT_DETAIL",
		},
	}

	result, err := engine.Decide(context.Background(), working, site,
		pagecontext.PageContext{PageType: pagecontext.PageProductDetail}, nil, nil)
	require.NoError(t, err)

	_, stillPresent := result.Events["add_to_cart"]
	assert.False(t, stillPresent, "brand-swapped event must not appear in the result at all")

	replacement := result.Events["brand_add_to_cart"]
	require.NotNil(t, replacement)
	assert.Equal(t, VerdictCanFire, replacement.Verdict, "synthetic custom-event trigger bypasses UI verification")
}

func TestDecide_YouTubeIframeAutoIncludesVideoEvents(t *testing.T) {
	engine, working := newTestEngine(t)
	page := browserpage.NewFake()
	page.SelectorCounts[youtubeIframeSelector] = 1

	result, err := engine.Decide(context.Background(), working, specstore.SiteConfig{},
		pagecontext.PageContext{PageType: pagecontext.PageMain}, page, nil)
	require.NoError(t, err)

	for _, name := range []string{"video_start", "video_progress"} {
		r := result.Events[name]
		require.NotNil(t, r, "%s must be admitted once a YouTube iframe is detected", name)
		assert.Equal(t, VerdictCanFire, r.Verdict)
		assert.Equal(t, "custom_event_bypass", r.Stage)
	}
}

func TestDecide_NoYouTubeIframeLeavesVideoEventsUnadmitted(t *testing.T) {
	engine, working := newTestEngine(t)
	page := browserpage.NewFake() // no iframe fixture

	result, err := engine.Decide(context.Background(), working, specstore.SiteConfig{},
		pagecontext.PageContext{PageType: pagecontext.PageMain}, page, nil)
	require.NoError(t, err)

	_, present := result.Events["video_start"]
	assert.False(t, present, "video_start must not appear without a YouTube iframe signal")
}

func TestDecide_ForcedAutoIncludeAddsEventAbsentFromContainerAndGuide(t *testing.T) {
	engine, working := newTestEngine(t)
	site := specstore.SiteConfig{ForcedAutoInclude: []string{"qualified_visit"}}

	result, err := engine.Decide(context.Background(), working, site,
		pagecontext.PageContext{PageType: pagecontext.PageMain}, nil, nil)
	require.NoError(t, err)

	r := result.Events["qualified_visit"]
	require.NotNil(t, r, "a forced-include name with no container tag or guide entry must still be emitted")
	assert.Equal(t, VerdictCanFire, r.Verdict)
	assert.Equal(t, "forced_auto_include", r.Stage)
}

func TestDecide_ContextualVisionPromotesAddToCartOnProductDetail(t *testing.T) {
	engine, working := newTestEngine(t)
	// begin_checkout has no trigger of its own in sampleExport, so
	// force it admitted the way Stage 10 would for a site that treats
	// it as always-on; add_to_cart's selector is absent, leaving it
	// at NO_UI from Stage 7's degradation.
	site := specstore.SiteConfig{ForcedAutoInclude: []string{"begin_checkout"}}
	page := browserpage.NewFake() // .add-to-cart-button absent

	result, err := engine.Decide(context.Background(), working, site,
		pagecontext.PageContext{PageType: pagecontext.PageProductDetail}, page, nil)
	require.NoError(t, err)

	addToCart := result.Events["add_to_cart"]
	require.NotNil(t, addToCart)
	assert.Equal(t, VerdictCanFire, addToCart.Verdict)
	assert.Equal(t, "contextual_vision_inference", addToCart.Stage)
}

func TestDecide_ContextualVisionDoesNotPromoteOffProductDetail(t *testing.T) {
	engine, working := newTestEngine(t)
	site := specstore.SiteConfig{ForcedAutoInclude: []string{"begin_checkout"}}
	page := browserpage.NewFake()

	result, err := engine.Decide(context.Background(), working, site,
		pagecontext.PageContext{PageType: pagecontext.PageMain}, page, nil)
	require.NoError(t, err)

	addToCart := result.Events["add_to_cart"]
	require.NotNil(t, addToCart)
	assert.NotEqual(t, VerdictCanFire, addToCart.Verdict, "promotion is scoped to PRODUCT_DETAIL only")
}

func TestDecide_LinkedEventPromotedWhenPrimaryConfirmed(t *testing.T) {
	engine, working := newTestEngine(t)
	page := browserpage.NewFake()
	page.SelectorCounts[".add-to-cart-button"] = 1
	// .related-item deliberately left absent so select_item alone
	// would degrade to NO_UI without the linked-event promotion.

	site := specstore.SiteConfig{
		LinkedEventRules: []specstore.LinkedEventRule{
			{Primary: "add_to_cart", Linked: "select_item", Reason: "same interaction"},
		},
	}

	result, err := engine.Decide(context.Background(), working, site,
		pagecontext.PageContext{PageType: pagecontext.PageProductDetail}, page, nil)
	require.NoError(t, err)

	linked := result.Events["select_item"]
	require.NotNil(t, linked)
	assert.Equal(t, VerdictCanFire, linked.Verdict)
	assert.Equal(t, "linked_event_promotion", linked.Stage)
}
