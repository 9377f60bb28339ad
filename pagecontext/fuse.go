package pagecontext

import "sort"

// agreementBonus is added to a page type's score for each additional
// independent signal source that agrees with the leading one, beyond
// the first. Two cheap signals agreeing can out-rank one strong signal
// standing alone, which is the point: independent corroboration is
// evidence in its own right.
const agreementBonus = 10

// conflictMargin is the score gap below which the top two page-type
// groups are considered to be in genuine conflict rather than one
// clearly leading.
const conflictMargin = 5

// Fuse combines signals from independent detectors into one page-type
// decision. Signals are grouped by page type; each group's score is
// its strongest single signal's confidence plus agreementBonus per
// additional signal in the group. The highest-scoring group wins; if
// the top two groups are within conflictMargin points, Conflict is set
// and the tiebreak falls to source priority (SignalSource declaration
// order).
func Fuse(signals []Signal) PageContext {
	if len(signals) == 0 {
		return PageContext{PageType: PageOthers, Confidence: 30, Signals: signals}
	}

	type group struct {
		pageType PageType
		score    int
		best     Signal
		count    int
	}
	groups := map[PageType]*group{}
	for _, s := range signals {
		g, ok := groups[s.PageType]
		if !ok {
			g = &group{pageType: s.PageType}
			groups[s.PageType] = g
		}
		g.count++
		if s.Confidence > g.best.Confidence || g.count == 1 {
			g.best = s
		}
	}
	for _, g := range groups {
		g.score = g.best.Confidence + agreementBonus*(g.count-1)
		if g.score > 100 {
			g.score = 100
		}
	}

	ranked := make([]*group, 0, len(groups))
	for _, g := range groups {
		ranked = append(ranked, g)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].best.Source.priority() < ranked[j].best.Source.priority()
	})

	top := ranked[0]
	conflict := len(ranked) > 1 && (top.score-ranked[1].score) < conflictMargin
	if conflict && ranked[1].best.Source.priority() < top.best.Source.priority() {
		top = ranked[1]
	}

	return PageContext{
		PageType:   top.pageType,
		Confidence: top.score,
		Conflict:   conflict,
		Signals:    signals,
	}
}
