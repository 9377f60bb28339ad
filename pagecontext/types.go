// Package pagecontext detects the page type and locale of the page
// being analyzed from independent signals — a runtime global
// variable, the dataLayer, query parameters, the URL path, and DOM
// breadcrumbs — and fuses them into one PageContext (C3).
package pagecontext

// PageType is one of the site's canonical page classifications. The
// set mirrors the page-type vocabulary the GTM container's own
// trigger filters use (container.EventPageMapping.AllowedPageTypes),
// so detector output can be compared against it directly. It is a
// closed set: a detector that can't place a page in one of these
// returns PageOthers rather than inventing a new label.
type PageType string

const (
	PageMain             PageType = "MAIN"
	PageProductDetail    PageType = "PRODUCT_DETAIL"
	PageProductList      PageType = "PRODUCT_LIST"
	PageSearchResult     PageType = "SEARCH_RESULT"
	PageCart             PageType = "CART"
	PageOrder            PageType = "ORDER"
	PageOrderComplete    PageType = "ORDER_COMPLETE"
	PageEventDetail      PageType = "EVENT_DETAIL"
	PageEventList        PageType = "EVENT_LIST"
	PageBrandMain        PageType = "BRAND_MAIN"
	PageBrandProductList PageType = "BRAND_PRODUCT_LIST"
	PageBrandEventList   PageType = "BRAND_EVENT_LIST"
	PageBrandCustomEtc   PageType = "BRAND_CUSTOM_ETC"
	PageLiveDetail       PageType = "LIVE_DETAIL"
	PageLiveList         PageType = "LIVE_LIST"
	PageMy               PageType = "MY"
	PageHistory          PageType = "HISTORY"
	PageOthers           PageType = "OTHERS"
)

// PageContext is the fused result of page-type and locale detection
// for one analyzed page.
type PageContext struct {
	PageType   PageType
	Confidence int
	Conflict   bool
	Signals    []Signal

	URL string

	// Locale/environment fields resolved from the URL via the host
	// pattern table (SPEC_FULL.md §6).
	SiteCountry string
	SiteLanguage string
	SiteEnv     string

	// Page-specific extracted identifiers, present only when the
	// current page type makes them meaningful.
	ProductID     string
	SearchTerm    string
	ViewEventCode string
}
