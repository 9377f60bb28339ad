package oracle

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/yosida95/uritemplate/v3"
)

const (
	uriDevelopmentGuide = "oracle://development-guide"
	uriContainerEvents  = "oracle://containers/{handle}/events"
)

var tmplContainerEvents = uritemplate.MustNew(uriContainerEvents)

// RegisterResources adds the oracle's own MCP resources to the
// server, mirroring the gtm package's resource/resource-template
// registration pattern: a static resource for the rendered
// development guide, and a templated resource exposing the event list
// mined into a loaded container handle.
func RegisterResources(server *mcp.Server, o *Oracle) {
	server.AddResource(&mcp.Resource{
		Name:        "GA4 Development Guide",
		Description: "The loaded GA4 event-instrumentation development guide, rendered to HTML",
		MIMEType:    "text/html",
		URI:         uriDevelopmentGuide,
	}, o.handleDevelopmentGuideResource)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "Container Event Names",
		Description: "Event names mined from a container previously registered via load_container",
		MIMEType:    "application/json",
		URITemplate: uriContainerEvents,
	}, o.handleContainerEventsResource)
}

func (o *Oracle) handleDevelopmentGuideResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	html, err := o.Store.Render()
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: req.Params.URI, MIMEType: "text/html", Text: html},
		},
	}, nil
}

func (o *Oracle) handleContainerEventsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	match := tmplContainerEvents.Regexp().FindStringSubmatch(req.Params.URI)
	if len(match) < 2 {
		return nil, fmt.Errorf("oracle: invalid resource URI: could not extract container handle")
	}
	handle := match[1]

	model, err := o.Containers.Get(handle)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(map[string]any{"events": model.EventNames()}, "", "  ")
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
		},
	}, nil
}
