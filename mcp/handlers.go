package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ludo-technologies/laast/app"
	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/service"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "", nil)
	}
	return &HandlerSet{deps: deps}
}

// HandleCompareCorpus handles the compare_corpus tool. An insufficient
// corpus still returns the JSON report, flagged as an error result.
func (h *HandlerSet) HandleCompareCorpus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}
	if err == nil && !info.IsDir() {
		return mcp.NewToolResultError(fmt.Sprintf("path is not a directory: %s", path)), nil
	}

	explicit := map[string]bool{"format": true}
	showDetails, hasDetails := args["show_details"].(bool)
	if hasDetails {
		explicit["details"] = true
	}

	useCase, err := h.deps.BuildCompareUseCase(explicit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create comparison: %v", err)), nil
	}

	var buf bytes.Buffer
	_, err = useCase.Execute(ctx, domain.CompareRequest{
		Path:         path,
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: &buf,
		ShowDetails:  showDetails,
		ConfigPath:   h.deps.ConfigPath(),
	})
	switch {
	case errors.Is(err, domain.ErrInsufficientInput):
		result := mcp.NewToolResultText(buf.String())
		result.IsError = true
		return result, nil
	case err != nil:
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	return mcp.NewToolResultText(buf.String()), nil
}

// HandleParseFile handles the parse_file tool
func (h *HandlerSet) HandleParseFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	format := domain.OutputFormatJSON
	if raw, ok := args["format"].(string); ok && raw != "" {
		parsed, err := domain.ParseOutputFormat(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid format: %v", err)), nil
		}
		format = parsed
	}

	lang, _ := args["language"].(string)

	cfg, err := h.deps.LoadConfig(filepath.Dir(path))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load configuration: %v", err)), nil
	}
	req, err := service.ConfigToCompareRequest(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load configuration: %v", err)), nil
	}

	var buf bytes.Buffer
	if err := app.NewTreeUseCase().Execute(ctx, app.TreeRequest{
		Path:         path,
		Language:     lang,
		Builder:      service.BuilderConfigFromRequest(req),
		OutputFormat: format,
		OutputWriter: &buf,
	}); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse failed: %v", err)), nil
	}

	return mcp.NewToolResultText(buf.String()), nil
}
