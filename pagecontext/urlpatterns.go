package pagecontext

import "regexp"

// pathPattern associates a URL path regex with the page type it
// implies. Order matters: patterns are tried in order and the first
// match wins, so more specific paths (checkout/cart) must precede the
// catch-all category pattern.
type pathPattern struct {
	pattern  *regexp.Regexp
	pageType PageType
}

var defaultPathPatterns = []pathPattern{
	{regexp.MustCompile(`(?i)^/?$`), PageMain},
	{regexp.MustCompile(`(?i)/cart/?$`), PageCart},
	{regexp.MustCompile(`(?i)/order[-_]?(confirmation|complete|success)`), PageOrderComplete},
	{regexp.MustCompile(`(?i)/(checkout|order)(/|$)`), PageOrder},
	{regexp.MustCompile(`(?i)/(history|orders?[-_]?history)`), PageHistory},
	{regexp.MustCompile(`(?i)/(my[-_]?account|account|mypage|my)(/|$)`), PageMy},
	{regexp.MustCompile(`(?i)/search`), PageSearchResult},
	{regexp.MustCompile(`(?i)/brand/[^/]+/(product|p|item)s?/[^/]+`), PageBrandProductList},
	{regexp.MustCompile(`(?i)/brand/[^/]+/(event|events)/[^/]+`), PageBrandEventList},
	{regexp.MustCompile(`(?i)/brand/[^/]+/(event|events)/?$`), PageBrandEventList},
	{regexp.MustCompile(`(?i)/brand/[^/]+/[^/]+`), PageBrandCustomEtc},
	{regexp.MustCompile(`(?i)/brand/[^/]+/?$`), PageBrandMain},
	{regexp.MustCompile(`(?i)/live/[^/]+`), PageLiveDetail},
	{regexp.MustCompile(`(?i)/live(/|$)`), PageLiveList},
	{regexp.MustCompile(`(?i)/event/[^/]+`), PageEventDetail},
	{regexp.MustCompile(`(?i)/events?(/|$)`), PageEventList},
	{regexp.MustCompile(`(?i)/(product|p|item)s?/[^/]+`), PageProductDetail},
	{regexp.MustCompile(`(?i)/(category|categories|shop|c)/[^/]+`), PageProductList},
}

// DetectFromURLPath classifies a URL path against the default page
// pattern table.
func DetectFromURLPath(path string) (Signal, bool) {
	for _, p := range defaultPathPatterns {
		if p.pattern.MatchString(path) {
			return Signal{
				Source:     SourceURLPattern,
				PageType:   p.pageType,
				Confidence: SourceURLPattern.baseConfidence(),
				Detail:     p.pattern.String(),
			}, true
		}
	}
	return Signal{}, false
}

// hostLocale is one entry of the per-host locale/environment table.
type hostLocale struct {
	hostPattern *regexp.Regexp
	country     string
	language    string
	env         string
}

// HostLocaleTable maps a site's host naming convention to its
// country/language/environment triplet — e.g. "www.example.com" is
// production in the default locale, while "staging.example.co.jp" is
// a staging environment in Japan. Sites register their own table
// entries; an empty table makes ExtractURLFields a no-op for locale.
type HostLocaleTable []hostLocale

// NewHostLocaleTable builds a table from (hostPattern, country,
// language, env) rows.
func NewHostLocaleTable(rows [][4]string) HostLocaleTable {
	table := make(HostLocaleTable, 0, len(rows))
	for _, r := range rows {
		table = append(table, hostLocale{
			hostPattern: regexp.MustCompile(r[0]),
			country:     r[1],
			language:    r[2],
			env:         r[3],
		})
	}
	return table
}

func (t HostLocaleTable) resolve(host string) (country, language, env string) {
	for _, row := range t {
		if row.hostPattern.MatchString(host) {
			return row.country, row.language, row.env
		}
	}
	return "", "", ""
}
