package pagecontext

import (
	"net/url"
	"regexp"
)

var (
	productIDInPath     = regexp.MustCompile(`(?i)/(?:product|p|item)s?/([a-zA-Z0-9_-]+)`)
	viewEventCodeParam  = []string{"vec", "view_event_code", "evt"}
	searchTermParam     = []string{"q", "query", "search", "keyword"}
	productIDParam      = []string{"productId", "product_id", "itemId", "sku"}
)

// ExtractURLFields derives the page-specific identifiers (product id,
// search term, view event code) and the site locale/environment
// triplet from a page's URL. locales may be nil, in which case the
// locale fields are left empty.
func ExtractURLFields(rawURL string, locales HostLocaleTable) (ctx PageContext) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return PageContext{URL: rawURL}
	}
	ctx.URL = rawURL

	if locales != nil {
		ctx.SiteCountry, ctx.SiteLanguage, ctx.SiteEnv = locales.resolve(u.Host)
	}

	q := u.Query()
	for _, key := range productIDParam {
		if v := q.Get(key); v != "" {
			ctx.ProductID = v
			break
		}
	}
	if ctx.ProductID == "" {
		if m := productIDInPath.FindStringSubmatch(u.Path); m != nil {
			ctx.ProductID = m[1]
		}
	}
	for _, key := range searchTermParam {
		if v := q.Get(key); v != "" {
			ctx.SearchTerm = v
			break
		}
	}
	for _, key := range viewEventCodeParam {
		if v := q.Get(key); v != "" {
			ctx.ViewEventCode = v
			break
		}
	}

	return ctx
}
