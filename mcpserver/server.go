// Package mcpserver exposes registry search, simulation and the demo pipeline
// as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/internal/mylog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ServerName = "agenteval"

	ToolSearchAgents    = "search_agents"
	ToolSimulateAgent   = "simulate_agent"
	ToolRunDemoPipeline = "run_demo_pipeline"
)

type Backend interface {
	Search(ctx context.Context, product entity.ProductDescription, opportunities []entity.Opportunity) []entity.AgentDescriptor
	SimulateByName(ctx context.Context, name, useCaseName string) (entity.EvalResult, error)
	RunDemoPipeline(ctx context.Context, product entity.ProductDescription) (*entity.NotificationReport, error)
}

type Tools struct {
	backend Backend
	logger  *mylog.Logger
}

func NewTools(backend Backend, logger *mylog.Logger) *Tools {
	if logger == nil {
		logger = mylog.Discard()
	}
	return &Tools{
		backend: backend,
		logger:  logger,
	}
}

// NewServer registers every tool on a fresh MCP server.
func NewServer(backend Backend, logger *mylog.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer(ServerName, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	NewTools(backend, logger).Register(s)
	return s
}

// ServeStdio blocks serving MCP over stdin and stdout.
func ServeStdio(backend Backend, logger *mylog.Logger, version string) error {
	return server.ServeStdio(NewServer(backend, logger, version))
}

func productParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("name", mcp.Required(), mcp.Description("Product name")),
		mcp.WithString("domain", mcp.Required(), mcp.Description("Product domain, e.g. B2B SaaS")),
		mcp.WithString("one_liner", mcp.Required(), mcp.Description("One sentence describing the product")),
	}
}

func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool(ToolSearchAgents, append([]mcp.ToolOption{
		mcp.WithDescription("Rank the agent framework registry against a product"),
	}, productParams()...)...), t.SearchAgents)

	s.AddTool(mcp.NewTool(ToolSimulateAgent,
		mcp.WithDescription("Score one registry framework for a use case from its published metrics"),
		mcp.WithString("framework_name", mcp.Required(), mcp.Description("Registry entry name, case-insensitive")),
		mcp.WithString("use_case_name", mcp.Description("Use case the framework is scored for")),
	), t.SimulateAgent)

	s.AddTool(mcp.NewTool(ToolRunDemoPipeline, append([]mcp.ToolOption{
		mcp.WithDescription("Produce an evaluation report for a product without calling any model"),
	}, productParams()...)...), t.RunDemoPipeline)
}

func productFrom(request mcp.CallToolRequest) (entity.ProductDescription, error) {
	var (
		product entity.ProductDescription
		err     error
	)
	if product.Name, err = request.RequireString("name"); err != nil {
		return product, err
	}
	if product.Domain, err = request.RequireString("domain"); err != nil {
		return product, err
	}
	if product.OneLiner, err = request.RequireString("one_liner"); err != nil {
		return product, err
	}
	return product, product.Validate()
}

func (t *Tools) SearchAgents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	product, err := productFrom(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return t.jsonResult(ToolSearchAgents, t.backend.Search(ctx, product, nil))
}

func (t *Tools) SimulateAgent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("framework_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := t.backend.SimulateByName(ctx, name, request.GetString("use_case_name", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return t.jsonResult(ToolSimulateAgent, result)
}

func (t *Tools) RunDemoPipeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	product, err := productFrom(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := t.backend.RunDemoPipeline(ctx, product)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return t.jsonResult(ToolRunDemoPipeline, report)
}

func (t *Tools) jsonResult(tool string, v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.logger.Error("failed to encode tool result", slog.String("tool", tool), mylog.Err(err))
		return nil, err
	}
	t.logger.Debug("tool call served", slog.String("tool", tool))
	return mcp.NewToolResultText(string(data)), nil
}
