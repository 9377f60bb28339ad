package oracle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"ga4oracle/auth"
	"ga4oracle/pagecontext"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const sessionTokenTTL = 24 * time.Hour

type AnalyzePageInput struct {
	ContainerHandle string `json:"containerHandle" jsonschema:"description:Handle returned by load_container"`
	URL             string `json:"url" jsonschema:"description:The page URL being analyzed"`
	SiteHost        string `json:"siteHost,omitempty" jsonschema:"description:Host key to resolve site-specific configuration (defaults to the URL's own host)"`

	GlobalVars  map[string]any   `json:"globalVars,omitempty" jsonschema:"description:Runtime global variables read from the page (e.g. window.pageType)"`
	DataLayer   []map[string]any `json:"dataLayer,omitempty" jsonschema:"description:The page's dataLayer event array"`
	Breadcrumbs []string         `json:"breadcrumbs,omitempty" jsonschema:"description:Breadcrumb trail text nodes, outermost first"`

	// SessionToken, when echoed back from a prior analyze_page call,
	// lets repeated analyses from the same caller share one
	// correlation id in logs/traces instead of minting a fresh one
	// every call.
	SessionToken string `json:"sessionToken,omitempty" jsonschema:"description:Session token returned by a prior analyze_page call, for log/trace correlation"`
}

type EventVerdict struct {
	EventName  string   `json:"eventName"`
	Verdict    string   `json:"verdict"`
	Stage      string   `json:"stage"`
	Confidence int      `json:"confidence"`
	Reasons    []string `json:"reasons,omitempty"`
}

type PredictedEventOutput struct {
	EventName string            `json:"eventName"`
	Values    map[string]string `json:"values"`
}

type ConsistencyWarningOutput struct {
	Severity string `json:"severity"`
	Subject  string `json:"subject"`
	Detail   string `json:"detail"`
}

type AnalyzePageOutput struct {
	SessionToken        string                     `json:"sessionToken"`
	PageType            string                     `json:"pageType"`
	PageTypeConfidence  int                        `json:"pageTypeConfidence"`
	PageTypeConflict    bool                       `json:"pageTypeConflict"`
	Events              []EventVerdict             `json:"events"`
	PredictedEvents     []PredictedEventOutput     `json:"predictedEvents"`
	ConsistencyWarnings []ConsistencyWarningOutput `json:"consistencyWarnings,omitempty"`
	DanglingTriggerRefs []string                   `json:"danglingTriggerRefs,omitempty"`
}

// registerAnalyzePage runs the full gating + prediction pipeline for
// one page against a previously-loaded container.
func registerAnalyzePage(server *mcp.Server, o *Oracle) {
	handler := func(ctx context.Context, req *mcp.CallToolRequest, input AnalyzePageInput) (*mcp.CallToolResult, AnalyzePageOutput, error) {
		model, err := o.Containers.Get(input.ContainerHandle)
		if err != nil {
			return nil, AnalyzePageOutput{}, err
		}

		sessionToken, correlationID := o.resolveSession(ctx, input.SessionToken)
		slog.Info("oracle: analyzing page", "correlation_id", correlationID, "url", input.URL)

		host := input.SiteHost
		site := o.Store.SiteOf(host)

		pageCtx := pagecontext.Detect(pagecontext.Input{
			URL:         input.URL,
			GlobalVars:  input.GlobalVars,
			DataLayer:   input.DataLayer,
			Breadcrumbs: input.Breadcrumbs,
		})

		out, err := o.Analyze(ctx, AnalysisInput{
			Model:   model,
			Site:    site,
			PageCtx: pageCtx,
			Page:    nil, // no live browser binding over MCP; DOM/vision stages degrade to NO_UI
		})
		if err != nil {
			return nil, AnalyzePageOutput{}, err
		}

		result := AnalyzePageOutput{
			SessionToken:        sessionToken,
			PageType:            string(out.Gating.PageContext.PageType),
			PageTypeConfidence:  out.Gating.PageContext.Confidence,
			PageTypeConflict:    out.Gating.PageContext.Conflict,
			DanglingTriggerRefs: out.Gating.DanglingTriggerRefs,
		}
		for _, r := range out.Gating.Events {
			result.Events = append(result.Events, EventVerdict{
				EventName:  r.EventName,
				Verdict:    string(r.Verdict),
				Stage:      r.Stage,
				Confidence: r.Confidence,
				Reasons:    r.Reasons,
			})
		}
		for _, pe := range out.PredictedEvents {
			result.PredictedEvents = append(result.PredictedEvents, PredictedEventOutput{
				EventName: pe.EventName,
				Values:    pe.Values,
			})
		}
		for _, w := range out.ConsistencyWarnings {
			result.ConsistencyWarnings = append(result.ConsistencyWarnings, ConsistencyWarningOutput{
				Severity: w.Stage,
				Subject:  w.Subject,
				Detail:   w.Detail,
			})
		}

		return nil, result, nil
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_page",
		Description: "Gate and predict GA4 events for a page against a previously loaded container",
	}, handler)
}

// resolveSession validates an echoed session token or mints a fresh
// one, and returns the subject to use as the log/trace correlation
// id. Minting silently falls back to an unsigned anonymous subject
// when JWTSecret isn't configured, so the oracle still runs without
// OAuth set up.
func (o *Oracle) resolveSession(ctx context.Context, echoed string) (token, correlationID string) {
	if o.JWTSecret == "" {
		return "", "anonymous"
	}

	if echoed != "" {
		if claims, err := auth.ParseSessionToken(o.JWTSecret, echoed); err == nil {
			return echoed, claims.Subject
		}
	}

	subject := "anonymous"
	if tokenInfo := auth.GetTokenInfo(ctx); tokenInfo != nil && tokenInfo.AccessToken != "" {
		sum := sha256.Sum256([]byte(tokenInfo.AccessToken))
		subject = hex.EncodeToString(sum[:8])
	}

	token, err := auth.IssueSessionToken(o.JWTSecret, subject, sessionTokenTTL)
	if err != nil {
		slog.Warn("oracle: failed to mint session token", "error", err)
		return "", subject
	}
	return token, subject
}
