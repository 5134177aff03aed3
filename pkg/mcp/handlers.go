package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
	"github.com/ormasoftchile/paradigmas/pkg/diagram"
)

// Handlers serves the tools that read the loaded catalogue.
type Handlers struct {
	Catalogue *catalogue.Catalogue
}

// documentSummary is one entry of the paradigmas/list result.
type documentSummary struct {
	Key       string `json:"key"`
	Paradigm  string `json:"paradigm"`
	File      string `json:"file,omitempty"`
	Title     string `json:"title"`
	Steps     int    `json:"steps"`
	HasOutput bool   `json:"hasOutput"`
}

// HandleList implements the paradigmas/list MCP tool.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	where, _ := args["where"].(string)

	docs, err := h.Catalogue.Filter(where)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	out := make([]documentSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentSummary{
			Key:       d.Key().String(),
			Paradigm:  d.Paradigm,
			File:      d.File,
			Title:     d.Title,
			Steps:     len(d.Steps),
			HasOutput: d.HasOutput(),
		})
	}
	return jsonResult(out)
}

// HandleShow implements the paradigmas/show MCP tool.
func (h *Handlers) HandleShow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	paradigm, _ := args["paradigm"].(string)
	if paradigm == "" {
		return errorResult("paradigm argument is required"), nil
	}
	file, _ := args["file"].(string)

	doc, ok := h.Catalogue.Resolve(file, paradigm)
	if !ok {
		key := catalogue.Key{File: file, Paradigm: paradigm}
		return errorResult(fmt.Sprintf("no walkthrough for %s", key)), nil
	}
	return jsonResult(doc)
}

// HandleMap implements the paradigmas/map MCP tool.
func (h *Handlers) HandleMap(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	format, _ := args["format"].(string)
	if format == "" {
		format = string(diagram.FormatASCII)
	}
	out, err := diagram.Generate(h.Catalogue, diagram.Format(format))
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(out), nil
}

// HandleValidate implements the paradigmas/validate MCP tool.
func HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return errorResult("path argument is required"), nil
	}

	c, errs := catalogue.ValidateFile(path)
	if catalogue.HasErrors(errs) {
		return errorResult(formatErrors(errs, "error")), nil
	}
	msg := fmt.Sprintf("✓ %s is valid (%d paradigms, %d files, %d documents)",
		path, len(c.Paradigms), len(c.Files), len(c.Documents))
	if len(errs) > 0 {
		msg += "\nwarnings: " + formatErrors(errs, "warning")
	}
	return textResult(msg), nil
}

// HandleSchema implements the paradigmas/schema MCP tool.
func HandleSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := catalogue.GenerateJSONSchema()
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(string(data)), nil
}

func formatErrors(errs []*catalogue.ValidationError, severity string) string {
	var msgs []string
	for _, e := range errs {
		if e.Severity == severity {
			msgs = append(msgs, e.Error())
		}
	}
	return strings.Join(msgs, "; ")
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(string(data)), nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(msg),
		},
		IsError: true,
	}
}
