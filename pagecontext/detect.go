package pagecontext

import "net/url"

// Input bundles everything a page-context detection pass might have
// available. Any field may be nil/zero when that signal source isn't
// reachable for a given page (e.g. no dataLayer on a legacy page).
type Input struct {
	URL           string
	GlobalVars    map[string]any
	DataLayer     []map[string]any
	Breadcrumbs   []string
	HostLocales   HostLocaleTable
}

// Detect runs every available detector over Input and fuses the
// resulting signals into one PageContext, then layers in the
// URL-derived fields (locale, product id, search term, view event
// code) which are independent of page-type detection.
func Detect(in Input) PageContext {
	var signals []Signal

	if len(in.GlobalVars) > 0 {
		if s, ok := DetectFromGlobalVariable(in.GlobalVars); ok {
			signals = append(signals, s)
		}
	}
	if len(in.DataLayer) > 0 {
		if s, ok := DetectFromDataLayer(in.DataLayer); ok {
			signals = append(signals, s)
		}
	}
	if in.URL != "" {
		if u, err := url.Parse(in.URL); err == nil {
			if s, ok := DetectFromQueryParams(u.Query()); ok {
				signals = append(signals, s)
			}
			if s, ok := DetectFromURLPath(u.Path); ok {
				signals = append(signals, s)
			}
		}
	}
	if len(in.Breadcrumbs) > 0 {
		if s, ok := DetectFromDOMBreadcrumbs(in.Breadcrumbs); ok {
			signals = append(signals, s)
		}
	}

	ctx := Fuse(signals)

	urlFields := ExtractURLFields(in.URL, in.HostLocales)
	ctx.URL = urlFields.URL
	ctx.SiteCountry = urlFields.SiteCountry
	ctx.SiteLanguage = urlFields.SiteLanguage
	ctx.SiteEnv = urlFields.SiteEnv
	ctx.ProductID = urlFields.ProductID
	ctx.SearchTerm = urlFields.SearchTerm
	ctx.ViewEventCode = urlFields.ViewEventCode

	return ctx
}
