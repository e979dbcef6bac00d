package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/zwogen/internal/config"
	"github.com/hpungsan/zwogen/internal/errors"
	"github.com/hpungsan/zwogen/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// Request types for each tool

// ConvertRequest represents the arguments for activity_convert.
type ConvertRequest struct {
	SourcePath  string `json:"source_path"`
	OutputPath  string `json:"output_path,omitempty"`
	Profile     string `json:"profile,omitempty"`
	FTPWatts    int    `json:"ftp_watts,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// InspectRequest represents the arguments for activity_inspect.
type InspectRequest struct {
	SourcePath string `json:"source_path"`
	Profile    string `json:"profile,omitempty"`
	FTPWatts   int    `json:"ftp_watts,omitempty"`
	Name       string `json:"name,omitempty"`
}

// PreviewRequest represents the arguments for activity_preview.
type PreviewRequest struct {
	SourcePath string `json:"source_path"`
	OutputPath string `json:"output_path,omitempty"`
	Profile    string `json:"profile,omitempty"`
	FTPWatts   int    `json:"ftp_watts,omitempty"`
	Name       string `json:"name,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// ProfileSetRequest represents the arguments for profile_set.
type ProfileSetRequest struct {
	Name     string `json:"name"`
	FTPWatts int    `json:"ftp_watts"`
}

// ProfileGetRequest represents the arguments for profile_get.
type ProfileGetRequest struct {
	Name string `json:"name"`
}

// ProfileDeleteRequest represents the arguments for profile_delete.
type ProfileDeleteRequest struct {
	Name string `json:"name"`
}

// HistoryRequest represents the arguments for history_list.
type HistoryRequest struct {
	Limit int `json:"limit,omitempty"`
}

// Handler implementations

// HandleConvert handles the activity_convert tool call.
func (h *Handlers) HandleConvert(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ConvertRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Convert(ctx, h.db, h.cfg, ops.ConvertInput{
		SourcePath:  input.SourcePath,
		OutputPath:  input.OutputPath,
		Profile:     input.Profile,
		FTPWatts:    input.FTPWatts,
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleInspect handles the activity_inspect tool call.
func (h *Handlers) HandleInspect(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[InspectRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Inspect(ctx, h.db, h.cfg, ops.InspectInput{
		SourcePath: input.SourcePath,
		Profile:    input.Profile,
		FTPWatts:   input.FTPWatts,
		Name:       input.Name,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePreview handles the activity_preview tool call.
func (h *Handlers) HandlePreview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PreviewRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Preview(ctx, h.db, h.cfg, ops.PreviewInput{
		SourcePath: input.SourcePath,
		OutputPath: input.OutputPath,
		Profile:    input.Profile,
		FTPWatts:   input.FTPWatts,
		Name:       input.Name,
		Notes:      input.Notes,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleProfileSet handles the profile_set tool call.
func (h *Handlers) HandleProfileSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ProfileSetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ProfileSet(h.db, ops.ProfileSetInput{
		Name:     input.Name,
		FTPWatts: input.FTPWatts,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleProfileGet handles the profile_get tool call.
func (h *Handlers) HandleProfileGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ProfileGetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ProfileGet(h.db, input.Name)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleProfileList handles the profile_list tool call.
func (h *Handlers) HandleProfileList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ProfileList(h.db)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleProfileDelete handles the profile_delete tool call.
func (h *Handlers) HandleProfileDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ProfileDeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ProfileDelete(h.db, input.Name)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleHistory handles the history_list tool call.
func (h *Handlers) HandleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.History(h.db, ops.HistoryInput{Limit: input.Limit})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if convErr, ok := err.(*errors.ConvertError); ok {
		errorObj := map[string]any{
			"code":    convErr.Code,
			"message": convErr.Message,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if convErr.Code != errors.ErrInternal && convErr.Details != nil {
			errorObj["details"] = convErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
