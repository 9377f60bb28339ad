package gtm

import (
	"context"
	"fmt"

	"ga4oracle/auth"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools adds all GTM tools to the MCP server.
func RegisterTools(server *mcp.Server) {
	// Read operations — the engine only ever mines a container, never writes to it.
	registerListAccounts(server)
	registerListContainers(server)
	registerListWorkspaces(server)
	registerListTags(server)
	registerGetTag(server)
	registerListTriggers(server)
	registerGetTrigger(server)
	registerListVariables(server)
	registerGetVariable(server)
	registerListFolders(server)
	registerGetFolderEntities(server)
	registerListVersions(server)

	// Workspace status
	registerGetWorkspaceStatus(server)

	// Built-in variables
	registerListBuiltInVariables(server)

	// Resources (URI-based read access)
	RegisterResources(server)

	// Prompts (template workflows)
	RegisterPrompts(server)
}

// ClientFromContext creates a GTM client from the request context with
// auto-refreshing tokens, for callers outside this package (the
// oracle engine's load_container tool fetches live containers this
// same way).
func ClientFromContext(ctx context.Context) (*Client, error) {
	return getClient(ctx)
}

// getClient creates a GTM client from the request context with auto-refreshing tokens.
func getClient(ctx context.Context) (*Client, error) {
	tokenInfo := auth.GetTokenInfo(ctx)
	if tokenInfo == nil || tokenInfo.GoogleToken == nil {
		return nil, fmt.Errorf("not authenticated - please authenticate with Google first")
	}

	store := auth.GetTokenStore(ctx)
	google := auth.GetGoogleProvider(ctx)

	// Create auto-refreshing token source
	var tokenSource = auth.NewAutoRefreshTokenSource(
		store,
		tokenInfo.AccessToken,
		google.Config(),
		tokenInfo.GoogleToken,
	)

	return NewClient(ctx, tokenSource)
}
