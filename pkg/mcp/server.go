// Package mcp exposes a catalogue to AI agents over the Model Context
// Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
)

// NewServer creates a new MCP server with the paradigmas tools registered
// against cat.
func NewServer(version string, cat *catalogue.Catalogue) *server.MCPServer {
	s := server.NewMCPServer(
		"paradigmas",
		version,
		server.WithToolCapabilities(true),
	)
	h := &Handlers{Catalogue: cat}

	// Register tools
	s.AddTool(
		mcp.NewTool("paradigmas/list",
			mcp.WithDescription("List the walkthrough documents of the catalogue"),
			mcp.WithString("where", mcp.Description(`Optional filter expression, e.g. paradigm == "funcional" && steps > 1`)),
		),
		h.HandleList,
	)

	s.AddTool(
		mcp.NewTool("paradigmas/show",
			mcp.WithDescription("Show the steps of a walkthrough; falls back to the paradigm-level document when the file has none"),
			mcp.WithString("paradigm", mcp.Required(), mcp.Description("Paradigm id")),
			mcp.WithString("file", mcp.Description("File id (optional)")),
		),
		h.HandleShow,
	)

	s.AddTool(
		mcp.NewTool("paradigmas/validate",
			mcp.WithDescription("Validate a catalogue YAML file"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the catalogue YAML file")),
		),
		HandleValidate,
	)

	s.AddTool(
		mcp.NewTool("paradigmas/schema",
			mcp.WithDescription("Export the catalogue JSON Schema"),
		),
		HandleSchema,
	)

	s.AddTool(
		mcp.NewTool("paradigmas/map",
			mcp.WithDescription("Render the architecture map of the file registry"),
			mcp.WithString("format", mcp.Description("Diagram format: 'ascii' (default) or 'mermaid'")),
		),
		h.HandleMap,
	)

	return s
}
