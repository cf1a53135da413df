package mcpserver_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/habiliai/agenteval"
	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/internal/mylog"
	"github.com/habiliai/agenteval/mcpserver"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTools(t *testing.T) (*mcpserver.Tools, *agenteval.Evaluator) {
	t.Helper()

	e, err := agenteval.NewEvaluator(context.Background(),
		agenteval.WithLogger(mylog.Discard()),
		agenteval.WithOpenAIAPIKey(""),
		agenteval.WithAnthropicAPIKey(""),
	)
	require.NoError(t, err)
	t.Cleanup(e.Close)

	return mcpserver.NewTools(e, nil), e
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	content, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return content.Text
}

func TestSearchAgents(t *testing.T) {
	tools, e := newTools(t)
	ctx := context.Background()

	res, err := tools.SearchAgents(ctx, call(mcpserver.ToolSearchAgents, map[string]any{
		"name":      "Acme",
		"domain":    "B2B SaaS",
		"one_liner": "ESG compliance reporting",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got []entity.AgentDescriptor
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))

	want := e.Search(ctx, entity.ProductDescription{Name: "Acme", Domain: "B2B SaaS", OneLiner: "ESG compliance reporting"}, nil)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Name, got[i].Name)
	}
}

func TestProductArgumentsAreRequired(t *testing.T) {
	tools, _ := newTools(t)
	full := map[string]any{"name": "Acme", "domain": "B2B SaaS", "one_liner": "ESG compliance reporting"}

	for missing := range full {
		t.Run(missing, func(t *testing.T) {
			args := map[string]any{}
			for k, v := range full {
				if k != missing {
					args[k] = v
				}
			}

			res, err := tools.SearchAgents(context.Background(), call(mcpserver.ToolSearchAgents, args))
			require.NoError(t, err)
			assert.True(t, res.IsError)

			res, err = tools.RunDemoPipeline(context.Background(), call(mcpserver.ToolRunDemoPipeline, args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
		})
	}
}

func TestSimulateAgent(t *testing.T) {
	tools, e := newTools(t)
	ctx := context.Background()

	res, err := tools.SimulateAgent(ctx, call(mcpserver.ToolSimulateAgent, map[string]any{
		"framework_name": "langgraph",
		"use_case_name":  "Support triage",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got entity.EvalResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	want, err := e.SimulateByName(ctx, "LangGraph", "Support triage")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	res, err = tools.SimulateAgent(ctx, call(mcpserver.ToolSimulateAgent, map[string]any{
		"framework_name": "Nobody",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestRunDemoPipeline(t *testing.T) {
	tools, e := newTools(t)
	ctx := context.Background()
	product := entity.ProductDescription{Name: "Acme", Domain: "B2B SaaS", OneLiner: "ESG compliance reporting"}

	res, err := tools.RunDemoPipeline(ctx, call(mcpserver.ToolRunDemoPipeline, map[string]any{
		"name":      product.Name,
		"domain":    product.Domain,
		"one_liner": product.OneLiner,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got entity.NotificationReport
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	want, err := e.RunDemoPipeline(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, *want, got)
}

func TestNewServerListsTools(t *testing.T) {
	_, e := newTools(t)
	s := mcpserver.NewServer(e, nil, "test")

	resp := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	for _, name := range []string{mcpserver.ToolSearchAgents, mcpserver.ToolSimulateAgent, mcpserver.ToolRunDemoPipeline} {
		assert.Contains(t, string(data), `"name":"`+name+`"`)
	}
}
