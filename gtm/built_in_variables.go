package gtm

import (
	"context"
	"fmt"

	tagmanager "google.golang.org/api/tagmanager/v2"
)

// ListBuiltInVariables returns all enabled built-in variables in a workspace.
func (c *Client) ListBuiltInVariables(ctx context.Context, accountID, containerID, workspaceID string) ([]BuiltInVariable, error) {
	parent := fmt.Sprintf("accounts/%s/containers/%s/workspaces/%s", accountID, containerID, workspaceID)

	resp, err := retryWithBackoff(ctx, 3, func() (*tagmanager.ListEnabledBuiltInVariablesResponse, error) {
		return c.Service.Accounts.Containers.Workspaces.BuiltInVariables.List(parent).Context(ctx).Do()
	})
	if err != nil {
		return nil, mapGoogleError(err)
	}
	if resp == nil {
		return []BuiltInVariable{}, nil
	}

	return toBuiltInVariables(resp.BuiltInVariable), nil
}

func toBuiltInVariables(vars []*tagmanager.BuiltInVariable) []BuiltInVariable {
	result := make([]BuiltInVariable, 0, len(vars))
	for _, v := range vars {
		result = append(result, BuiltInVariable{
			Name: v.Name,
			Type: v.Type,
			Path: v.Path,
		})
	}
	return result
}
