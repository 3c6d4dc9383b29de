package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceSchEdit/internal/config"
	"github.com/OpenTraceLab/OpenTraceSchEdit/internal/slogutil"
)

const testSchematic = `(kicad_sch
	(version 20250114)
	(generator "eeschema")
	(uuid "f2a5a2bc-1c4e-4f59-8b3e-3e3f9e6f2a10")
	(paper "A4")
	(lib_symbols)
	(symbol
		(lib_id "Device:R")
		(at 100 50 0)
		(unit 1)
		(uuid "4f3e2d1c-0b9a-4817-a6c5-d4e3f2a1b0c9")
		(property "Reference" "R1"
			(at 100 45 0)
		)
		(property "Value" "10k"
			(at 100 55 0)
		)
	)
)
`

// runServer feeds newline-delimited requests through the server and returns
// the decoded responses.
func runServer(t *testing.T, cfg *config.ToolConfig, requests ...string) []Message {
	t.Helper()
	server := NewServer("test", cfg, slogutil.NewDiscardLogger())
	server.SetStdin(strings.NewReader(strings.Join(requests, "\n") + "\n"))
	var out bytes.Buffer
	server.SetStdout(&out)

	if err := server.Start(); err != nil {
		t.Fatalf("Server failed: %v", err)
	}

	var responses []Message
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var msg Message
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			t.Fatalf("Bad response line %q: %v", line, err)
		}
		responses = append(responses, msg)
	}
	return responses
}

func TestInitialize(t *testing.T) {
	responses := runServer(t, config.Default(),
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	if len(responses) != 1 {
		t.Fatalf("Got %d responses, want 1", len(responses))
	}
	raw, _ := json.Marshal(responses[0].Result)
	var result InitializeResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("Bad initialize result: %v", err)
	}
	if result.ServerInfo.Name != "otse" {
		t.Errorf("Server name = %q", result.ServerInfo.Name)
	}
	if result.ProtocolVersion == "" {
		t.Error("Missing protocol version")
	}
}

func TestToolsListHonorsConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Enabled["update_component"] = false

	responses := runServer(t, cfg,
		`{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`)
	if len(responses) != 1 {
		t.Fatalf("Got %d responses, want 1", len(responses))
	}
	raw, _ := json.Marshal(responses[0].Result)
	var result struct {
		Tools []Tool `json:"tools"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("Bad tools/list result: %v", err)
	}
	if len(result.Tools) != len(config.KnownTools)-1 {
		t.Errorf("Listed %d tools, want %d", len(result.Tools), len(config.KnownTools)-1)
	}
	for _, tool := range result.Tools {
		if tool.Name == "update_component" {
			t.Error("Disabled tool still listed")
		}
	}
}

func TestCallListComponents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.kicad_sch")
	if err := os.WriteFile(path, []byte(testSchematic), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	call := fmt.Sprintf(
		`{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"list_components","arguments":{"schematic_path":%q}}}`,
		path)
	responses := runServer(t, config.Default(), call)
	if len(responses) != 1 {
		t.Fatalf("Got %d responses, want 1", len(responses))
	}
	raw, _ := json.Marshal(responses[0].Result)
	if !bytes.Contains(raw, []byte("R1")) || !bytes.Contains(raw, []byte("10k")) {
		t.Errorf("Result missing component data: %s", raw)
	}
}

func TestCallUpdateComponentCommits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.kicad_sch")
	if err := os.WriteFile(path, []byte(testSchematic), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	call := fmt.Sprintf(
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"update_component","arguments":{"schematic_path":%q,"reference":"R1","properties":{"Value":"4k7"}}}}`,
		path)
	responses := runServer(t, config.Default(), call)
	if len(responses) != 1 {
		t.Fatalf("Got %d responses, want 1", len(responses))
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read back: %v", err)
	}
	if !bytes.Contains(got, []byte(`"4k7"`)) {
		t.Error("Edit not committed to disk")
	}
	if bytes.Contains(got, []byte(`"10k"`)) {
		t.Error("Old value still on disk")
	}
}

func TestCallDisabledToolFails(t *testing.T) {
	cfg := config.Default()
	cfg.Enabled["rename_net"] = false

	responses := runServer(t, cfg,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"rename_net","arguments":{}}}`)
	if len(responses) != 1 {
		t.Fatalf("Got %d responses, want 1", len(responses))
	}
	if responses[0].Error == nil {
		t.Error("Expected JSON-RPC error for disabled tool")
	}
}

func TestUnknownMethod(t *testing.T) {
	responses := runServer(t, config.Default(),
		`{"jsonrpc":"2.0","id":9,"method":"bogus/method","params":{}}`)
	if len(responses) != 1 || responses[0].Error == nil {
		t.Fatal("Expected error response for unknown method")
	}
	if responses[0].Error.Code != CodeMethodNotFound {
		t.Errorf("Error code = %d", responses[0].Error.Code)
	}
}

func TestNotificationGetsNoResponse(t *testing.T) {
	responses := runServer(t, config.Default(),
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	if len(responses) != 0 {
		t.Errorf("Notification produced %d responses", len(responses))
	}
}
