package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	goopenai "github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
)

func convertRequest(model string, input *ai.ModelRequest) (goopenai.ChatCompletionNewParams, error) {
	messages, err := convertMessages(input.Messages)
	if err != nil {
		return goopenai.ChatCompletionNewParams{}, err
	}

	config, err := commonConfig(input.Config)
	if err != nil {
		return goopenai.ChatCompletionNewParams{}, err
	}

	req := goopenai.ChatCompletionNewParams{
		Model:    goopenai.ChatModel(model),
		Messages: messages,
		// temperature is always sent; zero is a meaningful value here
		Temperature: goopenai.Float(config.Temperature),
	}
	if config.MaxOutputTokens > 0 {
		req.MaxTokens = goopenai.Int(int64(config.MaxOutputTokens))
	}
	if config.TopP > 0 {
		req.TopP = goopenai.Float(config.TopP)
	}
	if isJSONOutput(input) {
		req.ResponseFormat = goopenai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	return req, nil
}

func commonConfig(raw any) (ai.GenerationCommonConfig, error) {
	var c ai.GenerationCommonConfig
	switch v := raw.(type) {
	case nil:
		return c, nil
	case *ai.GenerationCommonConfig:
		if v != nil {
			c = *v
		}
		return c, nil
	case ai.GenerationCommonConfig:
		return v, nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("unsupported generation config: %w", err)
	}
	return c, nil
}

func isJSONOutput(input *ai.ModelRequest) bool {
	return input.Output != nil && input.Output.Format == ai.OutputFormatJSON
}

func messageText(m *ai.Message) string {
	var sb strings.Builder
	for _, p := range m.Content {
		if p.IsText() || p.IsData() {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

func convertMessages(messages []*ai.Message) ([]goopenai.ChatCompletionMessageParamUnion, error) {
	msgs := make([]goopenai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		text := messageText(m)
		switch m.Role {
		case ai.RoleSystem:
			msgs = append(msgs, goopenai.SystemMessage(text))
		case ai.RoleUser:
			msgs = append(msgs, goopenai.UserMessage(text))
		case ai.RoleModel:
			msgs = append(msgs, goopenai.AssistantMessage(text))
		default:
			return nil, fmt.Errorf("unsupported OpenAI role %s", m.Role)
		}
	}
	return msgs, nil
}

func translateResponse(resp *goopenai.ChatCompletion, jsonMode bool) (*ai.ModelResponse, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}
	choice := resp.Choices[0]

	r := &ai.ModelResponse{}
	switch choice.FinishReason {
	case "stop", "tool_calls":
		r.FinishReason = ai.FinishReasonStop
	case "length":
		r.FinishReason = ai.FinishReasonLength
	case "content_filter":
		r.FinishReason = ai.FinishReasonBlocked
	default:
		r.FinishReason = ai.FinishReasonUnknown
	}

	m := &ai.Message{Role: ai.RoleModel}
	if jsonMode {
		m.Content = append(m.Content, ai.NewDataPart(choice.Message.Content))
	} else {
		m.Content = append(m.Content, ai.NewTextPart(choice.Message.Content))
	}
	r.Message = m

	r.Usage = &ai.GenerationUsage{
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:  int(resp.Usage.TotalTokens),
	}
	return r, nil
}
