package browserpage

import (
	"context"
	"fmt"
)

// Fake is a fixture-driven Page for tests — no real browser, no
// network. Selector counts, evaluate results, and a canned screenshot
// are all set up by the test before the page is handed to the gating
// engine.
type Fake struct {
	PageURL        string
	SelectorCounts map[string]int
	EvalResults    map[string]any
	ScreenshotData []byte
	CookieJar      map[string]string
	Viewport       ViewportSize
}

// NewFake returns an empty Fake with zero-valued maps ready to
// populate.
func NewFake() *Fake {
	return &Fake{
		SelectorCounts: map[string]int{},
		EvalResults:    map[string]any{},
		CookieJar:      map[string]string{},
		Viewport:       ViewportSize{Width: 1280, Height: 800},
	}
}

func (f *Fake) URL(ctx context.Context) (string, error) {
	return f.PageURL, nil
}

func (f *Fake) QuerySelectorAll(ctx context.Context, selector string) (int, error) {
	return f.SelectorCounts[selector], nil
}

func (f *Fake) Evaluate(ctx context.Context, expression string) (any, error) {
	v, ok := f.EvalResults[expression]
	if !ok {
		return nil, fmt.Errorf("browserpage: fake has no result fixture for expression %q", expression)
	}
	return v, nil
}

func (f *Fake) Screenshot(ctx context.Context) ([]byte, error) {
	return f.ScreenshotData, nil
}

func (f *Fake) Cookies(ctx context.Context) (map[string]string, error) {
	return f.CookieJar, nil
}

func (f *Fake) ViewportSize(ctx context.Context) (ViewportSize, error) {
	return f.Viewport, nil
}
