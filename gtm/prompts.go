package gtm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterPrompts adds all GTM prompts to the MCP server.
func RegisterPrompts(server *mcp.Server) {
	// Audit container prompt - analyzes workspace for issues that would confuse
	// the event-gating engine (dangling triggers, ambiguous page-type filters).
	server.AddPrompt(&mcp.Prompt{
		Name:        "audit_container",
		Description: "Analyze a GTM workspace for dangling trigger references, orphaned items, and ambiguous page-type filters before it is fed to the prediction engine",
		Arguments: []*mcp.PromptArgument{
			{Name: "accountId", Description: "The GTM account ID", Required: true},
			{Name: "containerId", Description: "The GTM container ID", Required: true},
			{Name: "workspaceId", Description: "The GTM workspace ID", Required: true},
		},
	}, handleAuditContainerPrompt)

	// Explain prediction prompt - turns a raw analysis output into a readable review.
	server.AddPrompt(&mcp.Prompt{
		Name:        "explain_prediction",
		Description: "Explain, in plain language, why each event in an analyze_page result was admitted, blocked, or marked no-UI",
		Arguments: []*mcp.PromptArgument{
			{Name: "analysisJson", Description: "The JSON output of the analyze_page tool", Required: true},
		},
	}, handleExplainPredictionPrompt)
}

func handleAuditContainerPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	accountID := req.Params.Arguments["accountId"]
	containerID := req.Params.Arguments["containerId"]
	workspaceID := req.Params.Arguments["workspaceId"]

	if accountID == "" || containerID == "" || workspaceID == "" {
		return nil, fmt.Errorf("accountId, containerId, and workspaceId are required")
	}

	client, err := getClient(ctx)
	if err != nil {
		return nil, err
	}

	tags, err := client.ListTags(ctx, accountID, containerID, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	triggers, err := client.ListTriggers(ctx, accountID, containerID, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list triggers: %w", err)
	}

	variables, err := client.ListVariables(ctx, accountID, containerID, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variables: %w", err)
	}

	workspaceData := map[string]any{
		"tags":      tags,
		"triggers":  triggers,
		"variables": variables,
		"summary": map[string]int{
			"totalTags":      len(tags),
			"totalTriggers":  len(triggers),
			"totalVariables": len(variables),
		},
	}

	dataJSON, err := json.MarshalIndent(workspaceData, "", "  ")
	if err != nil {
		return nil, err
	}

	return &mcp.GetPromptResult{
		Description: "Container audit analysis request",
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: fmt.Sprintf(`Please audit this GTM workspace for issues that would mislead an event-prediction engine built on top of it. Here is the current configuration:

%s

Please analyze and report on:

1. **Dangling trigger references**
   - Does any tag list a firingTriggerId that does not exist in the trigger list?

2. **Orphaned triggers**
   - Are there triggers not referenced by any tag's firingTriggerId?

3. **Page-type ambiguity**
   - Do any two tags bound to the same event name carry contradictory page-type filters?
   - Are there events whose triggers carry no page-type constraint at all (they will fall through to the ecommerce fallback table or the written specification)?

4. **Custom-event vs. click triggers**
   - Flag any event that mixes a CUSTOM_EVENT trigger with a CLICK/LINK_CLICK trigger — the prediction engine treats custom-event triggers as bypassing DOM selector verification, so a mix is worth a human's attention.

5. **Naming**
   - Are event names consistent with lowercase_snake_case? Any {{variable}}-looking event name should be flagged as GTM-internal, not a real event.

Please provide specific, line-referenced recommendations.`, string(dataJSON)),
				},
			},
		},
	}, nil
}

func handleExplainPredictionPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	analysisJSON := req.Params.Arguments["analysisJson"]
	if analysisJSON == "" {
		return nil, fmt.Errorf("analysisJson is required")
	}

	return &mcp.GetPromptResult{
		Description: "Explain an analyze_page prediction",
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: fmt.Sprintf(`Here is the JSON output of the analyze_page tool:

%s

For a QA engineer who will compare this prediction against a captured dataLayer trace, explain:

1. For each entry in events with verdict CAN_FIRE: which stage admitted it (GTM page mapping, written guide, ecommerce fallback, an edge case, or a forced auto-inclusion) and at what confidence.
2. For each entry in events with verdict BLOCKED: the exact reason it was blocked and whether that reason came from GTM, the guide, or a selector/UI check.
3. For each entry in events with verdict NO_UI: whether it failed because no UI element was found, or because the vision check degraded due to a service failure.
4. Any consistencyWarnings — funnel parameters whose predicted values disagree across events — since these are the ones the QA engineer should pay closest attention to.

Keep the explanation concise and organized by event name.`, analysisJSON),
				},
			},
		},
	}, nil
}
