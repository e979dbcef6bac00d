package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/zwogen/internal/config"
	"github.com/hpungsan/zwogen/internal/db"
)

// testSetup creates a temporary database and config for testing.
func testSetup(t *testing.T) (*sql.DB, *config.Config) {
	t.Helper()

	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database, config.DefaultConfig()
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// resultText extracts the text payload from a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", result.Content[0])
	}
	return text.Text
}

// writeRideJSON writes a short two-step ride fixture.
func writeRideJSON(t *testing.T, dir string) string {
	t.Helper()

	times := make([]int, 120)
	watts := make([]int, 120)
	for i := range times {
		times[i] = i
		if i < 60 {
			watts[i] = 150
		} else {
			watts[i] = 240
		}
	}
	data, err := json.Marshal(map[string]any{"time": times, "watts": watts})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	path := filepath.Join(dir, "ride.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestToolRegistry(t *testing.T) {
	names := AllToolNames()
	if len(names) != len(toolRegistry) {
		t.Errorf("AllToolNames len = %d, want %d", len(names), len(toolRegistry))
	}
	for name, entry := range toolRegistry {
		if entry.def.Name != name {
			t.Errorf("tool %s has def name %s", name, entry.def.Name)
		}
		if entry.handler == nil {
			t.Errorf("tool %s has nil handler", name)
		}
	}
}

func TestHandleProfileSetAndGet(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)
	ctx := context.Background()

	setResult, err := h.HandleProfileSet(ctx, makeRequest(map[string]any{
		"name":      "Alex",
		"ftp_watts": 280,
	}))
	if err != nil {
		t.Fatalf("HandleProfileSet returned error: %v", err)
	}
	if setResult.IsError {
		t.Fatalf("HandleProfileSet failed: %s", resultText(t, setResult))
	}

	getResult, err := h.HandleProfileGet(ctx, makeRequest(map[string]any{"name": "alex"}))
	if err != nil {
		t.Fatalf("HandleProfileGet returned error: %v", err)
	}
	if getResult.IsError {
		t.Fatalf("HandleProfileGet failed: %s", resultText(t, getResult))
	}

	var payload struct {
		Profile struct {
			NameNorm string `json:"name"`
			FTPWatts int    `json:"ftp_watts"`
		} `json:"profile"`
	}
	if err := json.Unmarshal([]byte(resultText(t, getResult)), &payload); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if payload.Profile.FTPWatts != 280 {
		t.Errorf("ftp_watts = %d, want 280", payload.Profile.FTPWatts)
	}
}

func TestHandleProfileSet_InvalidFTP(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)

	result, err := h.HandleProfileSet(context.Background(), makeRequest(map[string]any{
		"name":      "Alex",
		"ftp_watts": -10,
	}))
	if err != nil {
		t.Fatalf("HandleProfileSet returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(resultText(t, result), "INVALID_PROFILE") {
		t.Errorf("error payload missing code: %s", resultText(t, result))
	}
}

func TestHandleConvert(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)
	dir := t.TempDir()
	source := writeRideJSON(t, dir)
	output := filepath.Join(dir, "ride.zwo")

	result, err := h.HandleConvert(context.Background(), makeRequest(map[string]any{
		"source_path": source,
		"output_path": output,
		"ftp_watts":   300,
	}))
	if err != nil {
		t.Fatalf("HandleConvert returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("HandleConvert failed: %s", resultText(t, result))
	}

	if _, err := os.Stat(output); err != nil {
		t.Errorf("output file missing: %v", err)
	}

	historyResult, err := h.HandleHistory(context.Background(), makeRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("HandleHistory returned error: %v", err)
	}
	var history struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(resultText(t, historyResult)), &history); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if history.Count != 1 {
		t.Errorf("history count = %d, want 1", history.Count)
	}
}

func TestHandleInspect_MissingSource(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)

	result, err := h.HandleInspect(context.Background(), makeRequest(map[string]any{
		"ftp_watts": 300,
	}))
	if err != nil {
		t.Fatalf("HandleInspect returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(resultText(t, result), "INVALID_REQUEST") {
		t.Errorf("error payload missing code: %s", resultText(t, result))
	}
}

func TestNewServer(t *testing.T) {
	database, cfg := testSetup(t)

	s := NewServer(database, cfg, "test")
	if s == nil {
		t.Fatal("NewServer returned nil")
	}
}
