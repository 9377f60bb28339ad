package oracle

import (
	"context"
	"fmt"

	"ga4oracle/container"
	"ga4oracle/gtm"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type LoadContainerInput struct {
	// RawExport is a GTM container version export JSON document
	// (as returned by the gtm package's version export tools). When
	// set, the engine mines it directly without touching the Google
	// API.
	RawExport string `json:"rawExport,omitempty" jsonschema:"description:A GTM container version export JSON document to mine directly"`

	AccountID   string `json:"accountId,omitempty" jsonschema:"description:The GTM account ID, when fetching a live container instead of passing rawExport"`
	ContainerID string `json:"containerId,omitempty" jsonschema:"description:The GTM container ID"`
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"description:The GTM workspace ID"`
}

type LoadContainerOutput struct {
	ContainerHandle     string   `json:"containerHandle"`
	EventCount          int      `json:"eventCount"`
	DanglingTriggerRefs []string `json:"danglingTriggerRefs,omitempty"`
}

// registerLoadContainer mines a GTM container (from a raw export or a
// live fetch) into the in-memory container model the gating engine
// operates on, and returns an opaque handle for later analyze_page
// calls.
func registerLoadContainer(server *mcp.Server, o *Oracle) {
	handler := func(ctx context.Context, req *mcp.CallToolRequest, input LoadContainerInput) (*mcp.CallToolResult, LoadContainerOutput, error) {
		var model *container.Model
		var err error

		switch {
		case input.RawExport != "":
			model, err = container.Parse([]byte(input.RawExport))
		case input.AccountID != "" && input.ContainerID != "" && input.WorkspaceID != "":
			model, err = loadLiveContainer(ctx, input.AccountID, input.ContainerID, input.WorkspaceID)
		default:
			return nil, LoadContainerOutput{}, fmt.Errorf("oracle: either rawExport or accountId/containerId/workspaceId is required")
		}
		if err != nil {
			return nil, LoadContainerOutput{}, err
		}

		handle := o.Containers.Store(model)
		return nil, LoadContainerOutput{
			ContainerHandle:     handle,
			EventCount:          len(model.EventNames()),
			DanglingTriggerRefs: model.DanglingTriggerRefs(),
		}, nil
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "load_container",
		Description: "Mine a GTM container version (by raw export JSON or live account/container/workspace IDs) into the oracle engine",
	}, handler)
}

// loadLiveContainer fetches the container's live (published) version —
// workspaceID is not used for the fetch — and converts it into the engine's container model, reusing the gtm
// package's own authenticated client and retry/error-mapping.
func loadLiveContainer(ctx context.Context, accountID, containerID, workspaceID string) (*container.Model, error) {
	client, err := gtm.ClientFromContext(ctx)
	if err != nil {
		return nil, err
	}
	version, err := client.GetLiveContainerVersion(ctx, accountID, containerID)
	if err != nil {
		return nil, err
	}
	return container.FromLiveVersion(version)
}
