package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all laast MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	if h == nil {
		h = NewHandlerSet(nil)
	}

	// Tool 1: compare_corpus - pairwise edit distance over a directory
	s.AddTool(mcp.NewTool("compare_corpus",
		mcp.WithDescription("Parse every source file directly inside a directory into a language-agnostic AST and report the minimum, maximum and average tree edit distance over all pairs"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Corpus directory")),
		mcp.WithBoolean("show_details",
			mcp.Description("Include per-file summaries and every pair distance (default: false)")),
	), h.HandleCompareCorpus)

	// Tool 2: parse_file - single LAAST
	s.AddTool(mcp.NewTool("parse_file",
		mcp.WithDescription("Parse one source file and return its language-agnostic AST"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Source file to parse")),
		mcp.WithString("format",
			mcp.Enum("json", "yaml", "text", "bracket", "dot"),
			mcp.Description("Output format (default: json)")),
		mcp.WithString("language",
			mcp.Description("Source language; inferred from the extension when omitted")),
	), h.HandleParseFile)
}
