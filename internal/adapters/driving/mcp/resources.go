package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Hilite resources.
	uriScheme = "hilite://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "keywords",
		Name:        "keywords",
		Description: "The highlight keyword list in application order",
		MIMEType:    "application/json",
	}, s.handleKeywordsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "colors",
		Name:        "colors",
		Description: "Built-in highlight colour presets",
		MIMEType:    "application/json",
	}, s.handleColorsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "keywords/{keyword}",
		Name:        "keyword",
		Description: "A single keyword by ID or text",
		MIMEType:    "application/json",
	}, s.handleKeywordResource)
}

// handleKeywordsResource returns the keyword list.
func (s *Server) handleKeywordsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	keywords, err := s.ports.Keyword.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing keywords: %w", err)
	}

	outputs := make([]KeywordOutput, len(keywords))
	for i := range keywords {
		outputs[i] = toOutput(keywords[i])
	}
	return jsonResource(req.Params.URI, outputs)
}

// handleColorsResource returns the colour presets.
func (s *Server) handleColorsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type colorInfo struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}

	presets := domain.ColorPresets()
	infos := make([]colorInfo, len(presets))
	for i, p := range presets {
		infos[i] = colorInfo{Name: p.Name, Value: p.Value}
	}
	return jsonResource(req.Params.URI, infos)
}

// handleKeywordResource returns one keyword.
func (s *Server) handleKeywordResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	ref := extractKeywordRef(req.Params.URI)
	if ref == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	kw, err := s.ports.Keyword.Get(ctx, ref)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, toOutput(*kw))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractKeywordRef extracts the keyword from a URI like hilite://keywords/{keyword}.
func extractKeywordRef(uri string) string {
	const prefix = uriScheme + "keywords/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	ref, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return ref
}
