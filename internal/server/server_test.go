package server

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cyclopcam/logs"

	"github.com/ironsheep/dimension-tools-mcp/internal/config"
	"github.com/ironsheep/dimension-tools-mcp/internal/imaging"
	"github.com/ironsheep/dimension-tools-mcp/internal/logging"
	"github.com/ironsheep/dimension-tools-mcp/internal/measure"
)

// newTestServer returns a native-backend server writing outputs to a
// temporary directory.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		OutputDir:  t.TempDir(),
		Backend:    measure.BackendNative,
		Thresholds: measure.DefaultThresholds(),
		Style:      imaging.DefaultStyle(),
	}
	s, err := New(cfg, logs.NewTestingLog(t))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func TestNew(t *testing.T) {
	s := newTestServer(t)
	if s.cache == nil {
		t.Fatal("New() did not initialize cache")
	}
	if s.measurer == nil {
		t.Fatal("New() did not initialize measurer")
	}
}

func TestNew_UnavailableBackend(t *testing.T) {
	cfg := &config.Config{Backend: measure.Backend("hough")}
	if _, err := New(cfg, logs.NewTestingLog(t)); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{
			"string id",
			`{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`,
			"test-1",
			"tools/list",
		},
		{
			"number id",
			`{"jsonrpc":"2.0","id":42,"method":"ping"}`,
			float64(42), // JSON numbers decode as float64
			"ping",
		},
		{
			"null id",
			`{"jsonrpc":"2.0","id":null,"method":"initialize"}`,
			nil,
			"initialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}
			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: "init-1", Method: "initialize"})

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}

	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("serverInfo should be a map")
	}
	if serverInfo["name"] != "dimension-tools-mcp" {
		t.Errorf("serverInfo.name: got %v", serverInfo["name"])
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: "ping-1", Method: "ping"})

	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected ping response: %+v", resp)
	}
	if resp.ID != "ping-1" {
		t.Errorf("ID: got %v, want ping-1", resp.ID)
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})

	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected tools/list response: %+v", resp)
	}
	result := resp.Result.(map[string]interface{})
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(tools) != len(GetToolDefinitions()) {
		t.Errorf("got %d tools, want %d", len(tools), len(GetToolDefinitions()))
	}
}

func TestHandleRequest_NotificationsInitialized(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"})
	if resp != nil {
		t.Error("notifications/initialized should return nil response")
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "nonexistent/method"})

	if resp == nil || resp.Error == nil {
		t.Fatal("Expected error for unknown method")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("Error code: got %d, want -32601", resp.Error.Code)
	}
}

func TestServe(t *testing.T) {
	s := newTestServer(t)
	in := strings.NewReader(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"ping"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
	}, "\n"))

	var out bytes.Buffer
	if err := s.Serve(in, &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 responses, got %d: %q", len(lines), out.String())
	}

	var first MCPResponse
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if first.ID != float64(1) {
		t.Errorf("first response ID: got %v, want 1", first.ID)
	}
}

func TestNew_MeasurerLogsWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{
		OutputDir:  t.TempDir(),
		Backend:    measure.BackendNative,
		Thresholds: measure.DefaultThresholds(),
		Style:      imaging.DefaultStyle(),
	}
	s, err := New(cfg, logging.New(logging.LevelInfo, &buf))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	callTool(t, s, "image_measure_dimensions", map[string]interface{}{
		"path": createTestImageFile(t, 120, 120, 40, 0),
	})

	if !strings.Contains(buf.String(), "Warning [measure] No reference dimension") {
		t.Errorf("expected prefixed measurer warning, got %q", buf.String())
	}
}
