package gtm

import (
	"context"
	"fmt"

	tagmanager "google.golang.org/api/tagmanager/v2"
)

// GetContainerVersionExport fetches the full container version document — tags,
// triggers, and variables inline — the same shape the container package parses
// from a downloaded export file. Passing "0" for versionID fetches the live version.
func (c *Client) GetContainerVersionExport(ctx context.Context, accountID, containerID, versionID string) (*tagmanager.ContainerVersion, error) {
	path := fmt.Sprintf("accounts/%s/containers/%s/versions/%s", accountID, containerID, versionID)

	version, err := retryWithBackoff(ctx, 3, func() (*tagmanager.ContainerVersion, error) {
		return c.Service.Accounts.Containers.Versions.Get(path).Context(ctx).Do()
	})
	if err != nil {
		return nil, mapGoogleError(err)
	}

	return version, nil
}

// GetLiveContainerVersion fetches the currently published container version.
func (c *Client) GetLiveContainerVersion(ctx context.Context, accountID, containerID string) (*tagmanager.ContainerVersion, error) {
	parent := fmt.Sprintf("accounts/%s/containers/%s", accountID, containerID)

	version, err := retryWithBackoff(ctx, 3, func() (*tagmanager.ContainerVersion, error) {
		return c.Service.Accounts.Containers.Versions.Live(parent).Context(ctx).Do()
	})
	if err != nil {
		return nil, mapGoogleError(err)
	}

	return version, nil
}

// GetWorkspaceStatus checks if a workspace has changes to publish.
func (c *Client) GetWorkspaceStatus(ctx context.Context, accountID, containerID, workspaceID string) (*WorkspaceStatus, error) {
	path := BuildWorkspacePath(accountID, containerID, workspaceID)

	status, err := c.Service.Accounts.Containers.Workspaces.GetStatus(path).Context(ctx).Do()
	if err != nil {
		return nil, mapGoogleError(err)
	}

	return &WorkspaceStatus{
		HasChanges:    len(status.WorkspaceChange) > 0,
		HasConflicts:  len(status.MergeConflict) > 0,
		ChangeCount:   len(status.WorkspaceChange),
		ConflictCount: len(status.MergeConflict),
	}, nil
}

// WorkspaceStatus represents the status of a workspace.
type WorkspaceStatus struct {
	HasChanges    bool `json:"hasChanges"`
	HasConflicts  bool `json:"hasConflicts"`
	ChangeCount   int  `json:"changeCount"`
	ConflictCount int  `json:"conflictCount"`
}
