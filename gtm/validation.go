package gtm

import (
	"fmt"
	"strings"
)

// ValidateWorkspacePath validates workspace path components.
func ValidateWorkspacePath(accountID, containerID, workspaceID string) error {
	if strings.TrimSpace(accountID) == "" {
		return fmt.Errorf("account ID is required")
	}
	if strings.TrimSpace(containerID) == "" {
		return fmt.Errorf("container ID is required")
	}
	if strings.TrimSpace(workspaceID) == "" {
		return fmt.Errorf("workspace ID is required")
	}
	return nil
}

// ValidateContainerPath validates container path components.
func ValidateContainerPath(accountID, containerID string) error {
	if strings.TrimSpace(accountID) == "" {
		return fmt.Errorf("account ID is required")
	}
	if strings.TrimSpace(containerID) == "" {
		return fmt.Errorf("container ID is required")
	}
	return nil
}

// BuildWorkspacePath constructs a workspace path from IDs.
func BuildWorkspacePath(accountID, containerID, workspaceID string) string {
	return fmt.Sprintf("accounts/%s/containers/%s/workspaces/%s",
		accountID, containerID, workspaceID)
}

// BuildContainerPath constructs a container path from IDs.
func BuildContainerPath(accountID, containerID string) string {
	return fmt.Sprintf("accounts/%s/containers/%s", accountID, containerID)
}
