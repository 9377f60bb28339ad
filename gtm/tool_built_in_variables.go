package gtm

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// -- List Built-In Variables --

type ListBuiltInVariablesInput struct {
	AccountID   string `json:"accountId" jsonschema:"description:The GTM account ID"`
	ContainerID string `json:"containerId" jsonschema:"description:The GTM container ID"`
	WorkspaceID string `json:"workspaceId" jsonschema:"description:The GTM workspace ID"`
}

type ListBuiltInVariablesOutput struct {
	BuiltInVariables []BuiltInVariable `json:"builtInVariables"`
}

func registerListBuiltInVariables(server *mcp.Server) {
	handler := func(ctx context.Context, req *mcp.CallToolRequest, input ListBuiltInVariablesInput) (*mcp.CallToolResult, ListBuiltInVariablesOutput, error) {
		wc, err := resolveWorkspace(ctx, input.AccountID, input.ContainerID, input.WorkspaceID)
		if err != nil {
			return nil, ListBuiltInVariablesOutput{}, err
		}

		vars, err := wc.Client.ListBuiltInVariables(ctx, wc.AccountID, wc.ContainerID, wc.WorkspaceID)
		if err != nil {
			return nil, ListBuiltInVariablesOutput{}, err
		}

		return nil, ListBuiltInVariablesOutput{BuiltInVariables: vars}, nil
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_built_in_variables",
		Description: "List all enabled built-in variables in a GTM workspace",
	}, handler)
}
