// Package oracle wires the specification store, the gating engine,
// and the parameter predictor into the single Analyze operation the
// MCP tool surface exposes, with worker pools bounding browser and
// vision concurrency and OpenTelemetry/Prometheus instrumentation
// around each analysis.
package oracle

import (
	"context"
	"fmt"
	"log/slog"

	"ga4oracle/browserpage"
	"ga4oracle/config"
	"ga4oracle/container"
	"ga4oracle/errs"
	"ga4oracle/feedback"
	"ga4oracle/gating"
	"ga4oracle/oracle/pool"
	"ga4oracle/pagecontext"
	"ga4oracle/predictor"
	"ga4oracle/specstore"
	"ga4oracle/vision"

	"github.com/prometheus/client_golang/prometheus"
)

// Oracle is the engine's top-level orchestrator, built once at
// startup and shared across all analyses.
type Oracle struct {
	Store      *specstore.Store
	Gating     *gating.Engine
	Vision     vision.Service
	Cache      feedback.Cache
	Metrics    *Metrics
	Containers *ContainerRegistry

	// JWTSecret signs the session tokens analyze_page issues to
	// correlate repeated calls from the same caller.
	JWTSecret string

	browserPool *pool.Pool
	visionPool  *pool.Pool
}

// New builds an Oracle from configuration: loads the specification
// store, constructs the configured vision backend and feedback
// backend, and sizes the worker pools.
func New(cfg *config.Config, reg prometheus.Registerer) (*Oracle, error) {
	store, err := specstore.Load(cfg.SpecDevGuidePath, cfg.SpecParamTablePath, cfg.SpecSiteConfigPath)
	if err != nil {
		return nil, fmt.Errorf("oracle: %w", err)
	}

	var visionService vision.Service
	switch cfg.VisionProvider {
	case "anthropic":
		if cfg.VisionAPIKey == "" {
			return nil, fmt.Errorf("oracle: %w: vision provider anthropic requires VISION_API_KEY", errs.ErrConfig)
		}
		visionService = vision.NewAnthropicService(cfg.VisionAPIKey, cfg.VisionModel)
	case "mock", "":
		visionService = vision.NewMockService(`{"uiPresent": true, "reason": "mock service always confirms UI presence"}`)
	default:
		return nil, fmt.Errorf("oracle: %w: unknown vision provider %q", errs.ErrConfig, cfg.VisionProvider)
	}

	var cache feedback.Cache
	switch cfg.FeedbackBackend {
	case "redis":
		redisCache, err := feedback.NewRedisCache(cfg.FeedbackRedisURL)
		if err != nil {
			return nil, fmt.Errorf("oracle: %w", err)
		}
		cache = redisCache
	case "memory", "":
		cache = feedback.NewMemoryCache()
	default:
		return nil, fmt.Errorf("oracle: %w: unknown feedback backend %q", errs.ErrConfig, cfg.FeedbackBackend)
	}

	metrics := NewMetrics(reg)

	return &Oracle{
		Store:       store,
		Gating:      gating.NewEngine(store),
		Vision:      visionService,
		Cache:       cache,
		Metrics:     metrics,
		Containers:  NewContainerRegistry(),
		JWTSecret:   cfg.JWTSecret,
		browserPool: pool.New(cfg.BrowserPoolSize),
		visionPool:  pool.New(cfg.VisionPoolSize),
	}, nil
}

// AnalysisInput bundles everything one page analysis needs.
type AnalysisInput struct {
	Model   *container.Model
	Site    specstore.SiteConfig
	PageCtx pagecontext.PageContext
	Page    browserpage.Page
}

// AnalysisOutput is the full result of one page analysis: the gating
// verdicts, the predicted parameter values for every CAN_FIRE event,
// and any cross-event funnel consistency warnings.
type AnalysisOutput struct {
	Gating               gating.Result
	PredictedEvents       []predictor.PredictedEvent
	ConsistencyWarnings   []errs.ConsistencyWarning
}

// Analyze runs the full C1-C5 pipeline for one page: gates every
// documented event, then predicts parameter values for every event
// that can fire, then checks funnel consistency across them.
func (o *Oracle) Analyze(ctx context.Context, in AnalysisInput) (AnalysisOutput, error) {
	ctx, span := startAnalysisSpan(ctx, len(in.Model.EventNames()), in.PageCtx.URL)
	defer span.End()

	pooledPage := newPooledPage(in.Page, o.browserPool)
	pooledVision := newPooledVisionService(o.Vision, o.visionPool, o.Metrics)

	working := container.NewWorking(in.Model)

	gatingResult, err := o.Gating.Decide(ctx, working, in.Site, in.PageCtx, pooledPage, pooledVision)
	if err != nil {
		return AnalysisOutput{}, fmt.Errorf("oracle: gating: %w", err)
	}
	o.Metrics.AnalysesTotal.Inc()
	for _, r := range gatingResult.Events {
		o.Metrics.VerdictsTotal.WithLabelValues(string(r.Verdict), r.Stage).Inc()
	}

	predicted := o.predictParameters(ctx, in.Model, gatingResult, in.PageCtx)
	warnings := predictor.CheckFunnelConsistency(predicted)

	for _, pe := range predicted {
		for key, value := range pe.Values {
			if err := o.Cache.Record(ctx, feedback.Observation{
				EventName: pe.EventName, Parameter: key, Value: value, PageURL: in.PageCtx.URL,
			}); err != nil {
				slog.Warn("oracle: failed to record feedback observation", "event", pe.EventName, "parameter", key, "error", err)
			}
		}
	}

	return AnalysisOutput{
		Gating:              gatingResult,
		PredictedEvents:     predicted,
		ConsistencyWarnings: warnings,
	}, nil
}

func (o *Oracle) predictParameters(ctx context.Context, model *container.Model, result gating.Result, pageCtx pagecontext.PageContext) []predictor.PredictedEvent {
	var out []predictor.PredictedEvent
	for eventName, r := range result.Events {
		if r.Verdict != gating.VerdictCanFire {
			continue
		}
		schema := o.Store.ParametersOf(eventName)
		eventFixed := predictor.DeriveEventFixedFromTag(model.TagsOf(eventName))
		values := make(map[string]string, len(schema.Parameters))
		for _, def := range schema.Parameters {
			pv := predictor.Derive(ctx, def, predictor.Context{
				EventName: eventName,
				PageCtx:   pageCtx,
				Variables: eventFixed,
				Cache:     o.Cache,
			})
			if pv.Resolved {
				values[def.GA4Key] = pv.Value
			}
		}
		out = append(out, predictor.PredictedEvent{EventName: eventName, Values: values})
	}
	return out
}
