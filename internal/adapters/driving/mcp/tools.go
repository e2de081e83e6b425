package mcp

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

// KeywordOutput is the tool representation of a keyword.
type KeywordOutput struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Color     string `json:"color"`
	ColorName string `json:"color_name"`
	Enabled   bool   `json:"enabled"`
}

// ListKeywordsInput is the input schema for the list_keywords tool.
type ListKeywordsInput struct{}

// ListKeywordsOutput is the output schema for the list_keywords tool.
type ListKeywordsOutput struct {
	Keywords []KeywordOutput `json:"keywords"`
	Count    int             `json:"count"`
}

// AddKeywordInput is the input schema for the add_keyword tool.
type AddKeywordInput struct {
	Text  string `json:"text" jsonschema:"the exact, case-sensitive text to highlight"`
	Color string `json:"color,omitempty" jsonschema:"hex colour (#RRGGBB) or preset name; defaults to the configured colour"`
}

// KeywordRefInput identifies a keyword by ID or text.
type KeywordRefInput struct {
	Keyword string `json:"keyword" jsonschema:"keyword ID or text"`
}

// SetEnabledInput is the input schema for the set_keyword_enabled tool.
type SetEnabledInput struct {
	Keyword string `json:"keyword" jsonschema:"keyword ID or text"`
	Enabled bool   `json:"enabled" jsonschema:"whether the keyword is applied"`
}

// RemoveKeywordOutput is the output schema for the remove_keyword tool.
type RemoveKeywordOutput struct {
	Removed string `json:"removed"`
}

// HighlightInput is the input schema for the highlight_html tool.
type HighlightInput struct {
	HTML     string `json:"html" jsonschema:"HTML document or fragment to highlight"`
	Selector string `json:"selector,omitempty" jsonschema:"CSS selector limiting highlighting to matching elements"`
	Only     string `json:"only,omitempty" jsonschema:"apply only this keyword (ID, text, or ad-hoc text) without clearing"`
	Color    string `json:"color,omitempty" jsonschema:"colour override used with only"`
}

// ClearInput is the input schema for the clear_html tool.
type ClearInput struct {
	HTML string `json:"html" jsonschema:"previously highlighted HTML"`
}

// DocumentOutput is the output schema for the document tools.
type DocumentOutput struct {
	HTML    string   `json:"html"`
	Markers int      `json:"markers"`
	Cleared int      `json:"cleared"`
	Failed  []string `json:"failed,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_keywords",
		Description: "List highlight keywords in application order",
	}, s.handleListKeywords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_keyword",
		Description: "Add an enabled highlight keyword",
	}, s.handleAddKeyword)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_keyword",
		Description: "Remove a highlight keyword",
	}, s.handleRemoveKeyword)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_keyword_enabled",
		Description: "Enable or disable a highlight keyword",
	}, s.handleSetEnabled)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "highlight_html",
		Description: "Highlight every enabled keyword in an HTML document",
	}, s.handleHighlight)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_html",
		Description: "Remove all highlight markers from an HTML document",
	}, s.handleClear)
}

func (s *Server) handleListKeywords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListKeywordsInput,
) (*mcp.CallToolResult, ListKeywordsOutput, error) {
	keywords, err := s.ports.Keyword.List(ctx)
	if err != nil {
		return nil, ListKeywordsOutput{}, err
	}

	output := ListKeywordsOutput{
		Keywords: make([]KeywordOutput, len(keywords)),
		Count:    len(keywords),
	}
	for i := range keywords {
		output.Keywords[i] = toOutput(keywords[i])
	}
	return nil, output, nil
}

func (s *Server) handleAddKeyword(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddKeywordInput,
) (*mcp.CallToolResult, KeywordOutput, error) {
	kw, err := s.ports.Keyword.Add(ctx, input.Text, input.Color)
	if err != nil {
		return nil, KeywordOutput{}, err
	}
	return nil, toOutput(*kw), nil
}

func (s *Server) handleRemoveKeyword(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input KeywordRefInput,
) (*mcp.CallToolResult, RemoveKeywordOutput, error) {
	if err := s.ports.Keyword.Delete(ctx, input.Keyword); err != nil {
		return nil, RemoveKeywordOutput{}, err
	}
	return nil, RemoveKeywordOutput{Removed: input.Keyword}, nil
}

func (s *Server) handleSetEnabled(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetEnabledInput,
) (*mcp.CallToolResult, KeywordOutput, error) {
	kw, err := s.ports.Keyword.Update(ctx, input.Keyword, domain.KeywordUpdate{Enabled: &input.Enabled})
	if err != nil {
		return nil, KeywordOutput{}, err
	}
	return nil, toOutput(*kw), nil
}

func (s *Server) handleHighlight(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HighlightInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	return s.process(ctx, input.HTML, domain.DocumentRequest{
		Selector: input.Selector,
		Only:     input.Only,
		Color:    input.Color,
	})
}

func (s *Server) handleClear(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClearInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	return s.process(ctx, input.HTML, domain.DocumentRequest{Clear: true})
}

// process runs one document request over the given HTML.
func (s *Server) process(
	ctx context.Context,
	html string,
	req domain.DocumentRequest,
) (*mcp.CallToolResult, DocumentOutput, error) {
	var out bytes.Buffer
	res, err := s.ports.Document.Process(ctx, s.ports.Parser, s.ports.Renderer,
		strings.NewReader(html), &out, req)
	if err != nil {
		return nil, DocumentOutput{}, err
	}

	output := DocumentOutput{
		HTML:    out.String(),
		Markers: res.Total,
		Cleared: res.Cleared,
	}
	for _, p := range res.Failed() {
		output.Failed = append(output.Failed, fmt.Sprintf("%s: %v", p.Text, p.Err))
	}
	return nil, output, nil
}

func toOutput(kw domain.Keyword) KeywordOutput {
	return KeywordOutput{
		ID:        kw.ID,
		Text:      kw.Text,
		Color:     kw.Color,
		ColorName: domain.ColorName(kw.Color),
		Enabled:   kw.Enabled,
	}
}
