package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/crema"
	"github.com/aretw0/crema/pkg/domain"
	"github.com/aretw0/crema/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TranslateArgs are the arguments of the translate_profile tool.
type TranslateArgs struct {
	Profile string `json:"profile"`
	Mode    string `json:"mode,omitempty"`
}

// ModesResponse lists the accepted transition modes.
type ModesResponse struct {
	Modes   []string `json:"modes" jsonschema_description:"Accepted transition modes"`
	Default string   `json:"default" jsonschema_description:"Mode used when none is given"`
}

// Server exposes a crema translator as an MCP server.
type Server struct {
	translator ports.Translator
	logger     *slog.Logger
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP Server instance. A nil logger discards output.
func NewServer(translator ports.Translator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		translator: translator,
		logger:     logger,
		mcpServer:  server.NewMCPServer("crema-mcp", strings.TrimSpace(crema.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func modeNames() []string {
	names := make([]string, len(domain.TransitionModes))
	for i, m := range domain.TransitionModes {
		names[i] = string(m)
	}
	return names
}

func (s *Server) registerTools() {
	// TOOL: translate_profile
	translateTool := mcp.NewTool("translate_profile",
		mcp.WithDescription("Translate a Meticulous espresso profile (JSON) into a Gaggimate profile."),
		mcp.WithString("profile", mcp.Required(), mcp.Description("The source profile as a JSON document")),
		mcp.WithString("mode", mcp.Description("Transition mode (default smart)"), mcp.Enum(modeNames()...)),
		mcp.WithOutputSchema[domain.Translation](),
	)
	s.mcpServer.AddTool(translateTool, mcp.NewStructuredToolHandler(s.handleTranslate))

	// TOOL: list_transition_modes
	modesTool := mcp.NewTool("list_transition_modes",
		mcp.WithDescription("List the transition modes accepted by translate_profile."),
		mcp.WithOutputSchema[ModesResponse](),
	)
	s.mcpServer.AddTool(modesTool, mcp.NewStructuredToolHandler(s.handleListModes))
}

func (s *Server) handleTranslate(ctx context.Context, request mcp.CallToolRequest, args TranslateArgs) (domain.Translation, error) {
	if strings.TrimSpace(args.Profile) == "" {
		return domain.Translation{}, fmt.Errorf("profile is required")
	}
	// An empty mode leaves the translator's configured mode in place.
	var mode domain.TransitionMode
	if strings.TrimSpace(args.Mode) != "" {
		m, err := domain.ParseTransitionMode(args.Mode)
		if err != nil {
			return domain.Translation{}, err
		}
		mode = m
	}

	res, err := s.translator.Translate(ctx, ports.TranslateRequest{
		Source: []byte(args.Profile),
		Mode:   mode,
	})
	if err != nil {
		s.logger.Warn("MCP translate failed", "kind", domain.ErrorKind(err), "error", err)
		return domain.Translation{}, fmt.Errorf("translate failed (%s): %w", domain.ErrorKind(err), err)
	}
	return *res, nil
}

func (s *Server) handleListModes(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ModesResponse, error) {
	return ModesResponse{
		Modes:   modeNames(),
		Default: string(ports.ConfiguredMode(s.translator)),
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: crema://modes
	s.mcpServer.AddResource(mcp.NewResource("crema://modes", "Transition Modes",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		resp, _ := s.handleListModes(ctx, mcp.CallToolRequest{}, nil)
		jsonBytes, err := json.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to encode modes: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "crema://modes",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
