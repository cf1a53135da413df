package anthropic

import (
	"context"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlugin_Init(t *testing.T) {
	t.Run("with API key", func(t *testing.T) {
		g, err := genkit.Init(context.Background(), genkit.WithPlugins(&Plugin{APIKey: "test-key"}))
		require.NoError(t, err)
		assert.NotNil(t, Model(g, "claude-3.5-haiku"))
		assert.Nil(t, Model(g, "claude-unknown"))
	})

	t.Run("no API key", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")
		_, err := genkit.Init(context.Background(), genkit.WithPlugins(&Plugin{}))
		assert.Error(t, err)
	})
}

func TestBuildMessageParams(t *testing.T) {
	params, err := buildMessageParams(&ai.ModelRequest{
		Messages: []*ai.Message{
			ai.NewSystemTextMessage("You are an adoption advisor."),
			ai.NewUserTextMessage("Framework: CrewAI."),
		},
	}, "claude-3-5-haiku-latest", 1024)
	require.NoError(t, err)

	assert.Equal(t, anthropic.Model("claude-3-5-haiku-latest"), params.Model)
	assert.Equal(t, int64(1024), params.MaxTokens)
	assert.Equal(t, 0.0, params.Temperature.Value)
	require.Len(t, params.System, 1)
	assert.Equal(t, "You are an adoption advisor.", params.System[0].Text)
	require.Len(t, params.Messages, 1)
	assert.Equal(t, anthropic.MessageParamRoleUser, params.Messages[0].Role)
}

func TestBuildMessageParamsUsesRequestMaxTokens(t *testing.T) {
	params, err := buildMessageParams(&ai.ModelRequest{
		Messages: []*ai.Message{ai.NewUserTextMessage("hi")},
		Config:   &ai.GenerationCommonConfig{MaxOutputTokens: 64, Temperature: 0.3},
	}, "claude-sonnet-4-20250514", 1024)
	require.NoError(t, err)
	assert.Equal(t, int64(64), params.MaxTokens)
	assert.Equal(t, 0.3, params.Temperature.Value)
}
