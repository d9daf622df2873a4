// Package mcp exposes planning and provisioning as Model Context Protocol tools.
package mcp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/groundwork"
	"github.com/aretw0/groundwork/internal/logging"
	"github.com/aretw0/groundwork/internal/presentation/graph"
	"github.com/aretw0/groundwork/pkg/blueprint"
	"github.com/aretw0/groundwork/pkg/config"
	"github.com/aretw0/groundwork/pkg/domain"
)

// BlueprintURI is the resource holding the blueprint served by default.
const BlueprintURI = "groundwork://blueprint"

// ResourceSummary describes one page, space or list handled by a run.
type ResourceSummary struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	ID     string `json:"id,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// StepSummary is the outcome of one provisioner.
type StepSummary struct {
	Outcome   string            `json:"outcome" jsonschema_description:"skipped, failed or completed"`
	Reason    string            `json:"reason,omitempty"`
	Error     string            `json:"error,omitempty"`
	Resources []ResourceSummary `json:"resources"`
}

// ProvisionResponse is the structured result of the provision tool.
type ProvisionResponse struct {
	Gate      string      `json:"gate" jsonschema_description:"completed, or aborted when no credential is configured"`
	Documents StepSummary `json:"documents"`
	Tasks     StepSummary `json:"tasks"`
	Log       []string    `json:"log" jsonschema_description:"Provisioning log lines, in order"`
}

// Server wraps provisioning runs and exposes them as an MCP server.
type Server struct {
	cfg       config.Config
	blueprint domain.Blueprint
	opts      []groundwork.Option
	mcpServer *server.MCPServer

	// one run at a time per server
	mu sync.Mutex
}

// NewServer creates a new MCP server. opts are passed to every engine it builds.
func NewServer(cfg config.Config, bp domain.Blueprint, opts ...groundwork.Option) *Server {
	s := &Server{
		cfg:       cfg,
		blueprint: bp,
		opts:      opts,
		mcpServer: server.NewMCPServer("groundwork-mcp", strings.TrimSpace(groundwork.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	planTool := mcp.NewTool("plan",
		mcp.WithDescription("Describe the pages, space and lists a provisioning run would create, as markdown."),
		mcp.WithString("blueprint_yaml", mcp.Description("Blueprint YAML to plan instead of the configured one (optional)")),
		mcp.WithString("format", mcp.Description("markdown (default) or mermaid"), mcp.Enum("markdown", "mermaid")),
	)
	s.mcpServer.AddTool(planTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		bp, err := s.resolveBlueprint(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if format, _ := args["format"].(string); format == "mermaid" {
			return mcp.NewToolResultText(graph.GenerateMermaid(bp, nil)), nil
		}
		return mcp.NewToolResultText(blueprint.Markdown(bp)), nil
	})

	provisionTool := mcp.NewTool("provision",
		mcp.WithDescription("Create the page tree in Notion and the space and lists in ClickUp. Lists are created again on every call."),
		mcp.WithString("blueprint_yaml", mcp.Description("Blueprint YAML to provision instead of the configured one (optional)")),
		mcp.WithOutputSchema[ProvisionResponse](),
	)
	s.mcpServer.AddTool(provisionTool, mcp.NewStructuredToolHandler(s.handleProvision))
}

func (s *Server) resolveBlueprint(args map[string]interface{}) (domain.Blueprint, error) {
	raw, _ := args["blueprint_yaml"].(string)
	if strings.TrimSpace(raw) == "" {
		return s.blueprint, nil
	}
	return blueprint.Parse([]byte(raw))
}

func (s *Server) handleProvision(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ProvisionResponse, error) {
	bp, err := s.resolveBlueprint(args)
	if err != nil {
		return ProvisionResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var logs bytes.Buffer
	logger := logging.NewWithWriter(&logs, slog.LevelInfo)

	opts := append([]groundwork.Option{}, s.opts...)
	opts = append(opts, groundwork.WithBlueprint(bp), groundwork.WithLogger(logger))
	eng, err := groundwork.New(s.cfg, opts...)
	if err != nil {
		return ProvisionResponse{}, err
	}

	report, err := eng.Run(ctx)
	if err != nil {
		return ProvisionResponse{}, fmt.Errorf("provision failed: %w", err)
	}

	return ProvisionResponse{
		Gate:      string(report.Gate),
		Documents: summarize(report.Documents),
		Tasks:     summarize(report.Tasks),
		Log:       splitLines(logs.String()),
	}, nil
}

func summarize(step domain.StepReport) StepSummary {
	out := StepSummary{
		Outcome:   string(step.Outcome),
		Reason:    step.Reason,
		Resources: make([]ResourceSummary, 0, len(step.Results)),
	}
	if step.Err != nil {
		out.Error = step.Err.Error()
	}
	for _, r := range step.Results {
		rs := ResourceSummary{Kind: string(r.Kind), Name: r.Name, ID: r.ID, Status: string(r.Status)}
		if r.Err != nil {
			rs.Error = r.Err.Error()
		}
		out.Resources = append(out.Resources, rs)
	}
	return out
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(BlueprintURI, "Configured blueprint",
		mcp.WithMIMEType("application/yaml"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := yaml.Marshal(s.blueprint)
		if err != nil {
			return nil, fmt.Errorf("failed to encode blueprint: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      BlueprintURI,
				MIMEType: "application/yaml",
				Text:     string(data),
			},
		}, nil
	})
}
