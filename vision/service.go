// Package vision wraps the multimodal model call Stage 8 of the
// gating pipeline uses to decide whether a screenshot shows the UI a
// gated event needs to be present (a dialog, an expanded accordion, a
// hover state no CSS selector can reliably find).
package vision

import "context"

// Service analyzes a screenshot against a natural-language prompt and
// returns the model's raw text response. Callers extract structured
// data from the response with ExtractJSON.
type Service interface {
	Analyze(ctx context.Context, image []byte, prompt string) (string, error)
}
