// Package mcp implements the MCP stdio façade over the schematic and
// project adapters: JSON-RPC 2.0 messages, one per line, stdin to stdout.
// Each tool call opens the named file, applies the operation, and commits;
// no document state is held between calls.
package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSchEdit/internal/config"
)

// Server is the MCP stdio server.
type Server struct {
	stdin     io.Reader
	stdout    io.Writer
	scanner   *bufio.Scanner
	logger    *slog.Logger
	version   string
	sessionID string
	cfg       *config.ToolConfig
	handlers  map[string]ToolHandler
}

// NewServer creates a server exposing the tools enabled in cfg.
func NewServer(version string, cfg *config.ToolConfig, logger *slog.Logger) *Server {
	s := &Server{
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		logger:    logger,
		version:   version,
		sessionID: uuid.NewString(),
		cfg:       cfg,
		handlers:  make(map[string]ToolHandler),
	}
	s.registerTools()
	return s
}

// SetStdin sets the input stream (for testing).
func (s *Server) SetStdin(r io.Reader) {
	s.stdin = r
	s.scanner = nil
}

// SetStdout sets the output stream (for testing).
func (s *Server) SetStdout(w io.Writer) {
	s.stdout = w
}

// Start runs the message loop until stdin closes.
func (s *Server) Start() error {
	s.logger.Info("MCP server starting",
		"version", s.version,
		"session", s.sessionID,
		"tools", len(s.handlers),
	)
	for _, w := range s.cfg.Warnings {
		s.logger.Warn(w)
	}

	for {
		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				s.logger.Info("MCP server shutting down (EOF)")
				return nil
			}
			s.logger.Error("Error reading message", "error", err.Error())
			continue
		}

		response := s.handleMessage(msg)
		if response != nil {
			if err := s.writeMessage(response); err != nil {
				s.logger.Error("Error writing response", "error", err.Error())
			}
		}
	}
}

// handleMessage dispatches one message; notifications yield no response.
func (s *Server) handleMessage(msg *Message) *Message {
	if msg.IsRequest() {
		return s.handleRequest(msg)
	}
	if msg.IsNotification() {
		s.logger.Debug("Notification", "method", msg.Method)
		return nil
	}
	return NewErrorMessage(msg.Id, CodeInvalidRequest, "not a request or notification")
}

func (s *Server) handleRequest(msg *Message) *Message {
	s.logger.Debug("Handling request", "method", msg.Method, "id", msg.Id)

	switch msg.Method {
	case "initialize":
		return NewResultMessage(msg.Id, &InitializeResult{
			ProtocolVersion: "2024-11-05",
			Capabilities: ServerCapabilities{
				Tools: &ToolsCapability{ListChanged: false},
			},
			ServerInfo: ServerInfo{Name: "otse", Version: s.version},
		})

	case "tools/list":
		return NewResultMessage(msg.Id, map[string]interface{}{
			"tools": s.toolDefinitions(),
		})

	case "tools/call":
		return s.handleCallTool(msg)

	default:
		return NewErrorMessage(msg.Id, CodeMethodNotFound,
			fmt.Sprintf("Method not found: %s", msg.Method))
	}
}

func (s *Server) handleCallTool(msg *Message) *Message {
	var params struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	raw, err := json.Marshal(msg.Params)
	if err != nil {
		return NewErrorMessage(msg.Id, CodeInvalidParams, "unreadable params")
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return NewErrorMessage(msg.Id, CodeInvalidParams, "invalid tools/call params")
	}

	handler, ok := s.handlers[params.Name]
	if !ok {
		return NewErrorMessage(msg.Id, CodeMethodNotFound,
			fmt.Sprintf("Unknown tool: %s", params.Name))
	}

	result, err := handler(params.Arguments)
	if err != nil {
		s.logger.Warn("Tool failed", "tool", params.Name, "error", err.Error())
		return NewResultMessage(msg.Id, toolError(err))
	}
	return NewResultMessage(msg.Id, toolResult(result))
}

// toolResult wraps a handler result in MCP tool-call content.
func toolResult(v interface{}) map[string]interface{} {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err)
	}
	return map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": string(text)},
		},
	}
}

// toolError reports a tool failure as MCP error content.
func toolError(err error) map[string]interface{} {
	return map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": fmt.Sprintf("Error: %v", err)},
		},
		"isError": true,
	}
}
