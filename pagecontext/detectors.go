package pagecontext

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// DetectFromGlobalVariable inspects a runtime global variable object
// (e.g. window.dataLayer's page object, or a site-specific
// window.pageType global read via browserpage.Page.Evaluate) for an
// explicit page-type field. This is the strongest available signal: a
// site author set it specifically to be machine-readable.
func DetectFromGlobalVariable(vars map[string]any) (Signal, bool) {
	for _, key := range []string{"pageType", "page_type", "contentGroup"} {
		raw, ok := vars[key]
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok || s == "" {
			continue
		}
		return Signal{
			Source:     SourceGlobalVariable,
			PageType:   PageType(strings.ToUpper(s)),
			Confidence: SourceGlobalVariable.baseConfidence(),
			Detail:     key,
		}, true
	}
	return Signal{}, false
}

var pageViewEventName = regexp.MustCompile(`(?i)^[a-z0-9_]*page_view$`)

// DetectFromDataLayer scans a dataLayer event list for a
// "*_page_view"-shaped event (e.g. "product_page_view",
// "checkout_page_view") and derives the page type from the event name
// prefix.
func DetectFromDataLayer(events []map[string]any) (Signal, bool) {
	for i := len(events) - 1; i >= 0; i-- {
		event, ok := events[i]["event"].(string)
		if !ok || !pageViewEventName.MatchString(event) {
			continue
		}
		if pt, ok := events[i]["pageType"].(string); ok && pt != "" {
			return Signal{
				Source:     SourceDataLayer,
				PageType:   PageType(strings.ToUpper(pt)),
				Confidence: SourceDataLayer.baseConfidence(),
				Detail:     event,
			}, true
		}
		prefix := strings.TrimSuffix(event, "_page_view")
		if pt, ok := dataLayerPrefixToPageType[prefix]; ok {
			return Signal{
				Source:     SourceDataLayer,
				PageType:   pt,
				Confidence: SourceDataLayer.baseConfidence(),
				Detail:     event,
			}, true
		}
	}
	return Signal{}, false
}

var dataLayerPrefixToPageType = map[string]PageType{
	"":         PageMain,
	"home":     PageMain,
	"product":  PageProductDetail,
	"category": PageProductList,
	"search":   PageSearchResult,
	"cart":     PageCart,
	"checkout": PageOrder,
	"order":    PageOrderComplete,
	"account":  PageMy,
	"my":       PageMy,
	"history":  PageHistory,
	"brand":    PageBrandMain,
	"event":    PageEventDetail,
	"events":   PageEventList,
	"live":     PageLiveDetail,
}

// DetectFromQueryParams inspects query parameters for conventional
// page-type hints (a search term parameter implies search results, a
// product id parameter implies product detail).
func DetectFromQueryParams(values url.Values) (Signal, bool) {
	for _, key := range []string{"q", "query", "search", "keyword"} {
		if values.Get(key) != "" {
			return Signal{
				Source:     SourceQueryParam,
				PageType:   PageSearchResult,
				Confidence: SourceQueryParam.baseConfidence(),
				Detail:     key,
			}, true
		}
	}
	for _, key := range []string{"productId", "product_id", "itemId", "sku"} {
		if values.Get(key) != "" {
			return Signal{
				Source:     SourceQueryParam,
				PageType:   PageProductDetail,
				Confidence: SourceQueryParam.baseConfidence(),
				Detail:     key,
			}, true
		}
	}
	return Signal{}, false
}

var breadcrumbPageTypeHint = []struct {
	re       *regexp.Regexp
	pageType PageType
}{
	{regexp.MustCompile(`(?i)cart|bag`), PageCart},
	{regexp.MustCompile(`(?i)order.*histor|purchase histor`), PageHistory},
	{regexp.MustCompile(`(?i)checkout|order`), PageOrder},
	{regexp.MustCompile(`(?i)confirmation|thank.?you`), PageOrderComplete},
	{regexp.MustCompile(`(?i)account|my page|mypage`), PageMy},
	{regexp.MustCompile(`(?i)search|results? for`), PageSearchResult},
	{regexp.MustCompile(`(?i)live`), PageLiveDetail},
	{regexp.MustCompile(`(?i)event`), PageEventDetail},
	{regexp.MustCompile(`(?i)brand`), PageBrandMain},
}

// DetectFromDOMBreadcrumbs is the weakest signal: it looks for
// conventional wording in a breadcrumb trail's text nodes. Useful only
// when nothing stronger resolved (a site with no dataLayer, no global
// variable, and a URL scheme that doesn't encode page type). Hints are
// matched against the trail's last (most specific) crumb; the root
// "Home" crumb present on almost every trail is not itself evidence of
// being on the home page.
func DetectFromDOMBreadcrumbs(crumbs []string) (Signal, bool) {
	if len(crumbs) == 0 {
		return Signal{}, false
	}
	if len(crumbs) == 1 && strings.EqualFold(strings.TrimSpace(crumbs[0]), "home") {
		return Signal{
			Source:     SourceDOM,
			PageType:   PageMain,
			Confidence: SourceDOM.baseConfidence(),
			Detail:     "single home breadcrumb",
		}, true
	}
	last := crumbs[len(crumbs)-1]
	for _, hint := range breadcrumbPageTypeHint {
		if hint.re.MatchString(last) {
			return Signal{
				Source:     SourceDOM,
				PageType:   hint.pageType,
				Confidence: SourceDOM.baseConfidence(),
				Detail:     fmt.Sprintf("breadcrumb match: %q", last),
			}, true
		}
	}
	// A populated but otherwise unmatched breadcrumb trail beyond the
	// first level reads as a product listing more often than not.
	if len(crumbs) >= 2 {
		return Signal{
			Source:     SourceDOM,
			PageType:   PageProductList,
			Confidence: SourceDOM.baseConfidence(),
			Detail:     fmt.Sprintf("unclassified breadcrumb depth %d", len(crumbs)),
		}, true
	}
	return Signal{}, false
}
