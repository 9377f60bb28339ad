package oracle

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "ga4oracle/oracle"

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// startAnalysisSpan opens the root span for one page analysis.
func startAnalysisSpan(ctx context.Context, eventCount int, pageURL string) (context.Context, trace.Span) {
	return tracer().Start(ctx, "oracle.analyze",
		trace.WithAttributes(
			attribute.String("ga4oracle.page_url", pageURL),
			attribute.Int("ga4oracle.event_count", eventCount),
		),
	)
}

// startStageSpan opens a child span for one gating stage, so a trace
// viewer can see where the wall-clock time in an analysis went —
// typically vision inference, when it runs at all.
func startStageSpan(ctx context.Context, stage string) (context.Context, trace.Span) {
	return tracer().Start(ctx, "oracle.stage."+stage)
}
