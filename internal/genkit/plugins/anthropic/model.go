package anthropic

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/firebase/genkit/go/ai"
)

func buildMessageParams(req *ai.ModelRequest, apiModelName string, maxTokens int) (anthropic.MessageNewParams, error) {
	messages, systems, err := convertMessages(req.Messages)
	if err != nil {
		return anthropic.MessageNewParams{}, err
	}

	config := ai.GenerationCommonConfig{}
	if req.Config != nil {
		data, err := json.Marshal(req.Config)
		if err != nil {
			return anthropic.MessageNewParams{}, err
		}
		if err := json.Unmarshal(data, &config); err != nil {
			return anthropic.MessageNewParams{}, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}
	if config.MaxOutputTokens <= 0 {
		config.MaxOutputTokens = maxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(apiModelName),
		Messages:    messages,
		MaxTokens:   int64(config.MaxOutputTokens),
		Temperature: anthropic.Float(config.Temperature),
	}
	for _, system := range systems {
		if strings.TrimSpace(system) == "" {
			continue
		}
		params.System = append(params.System, anthropic.TextBlockParam{
			Text: system,
		})
	}
	if config.TopP > 0 {
		params.TopP = anthropic.Float(config.TopP)
	}
	if len(config.StopSequences) > 0 {
		params.StopSequences = config.StopSequences
	}

	return params, nil
}

func convertMessages(messages []*ai.Message) ([]anthropic.MessageParam, []string, error) {
	var (
		systems []string
		res     []anthropic.MessageParam
	)

	for _, msg := range messages {
		var text strings.Builder
		for _, p := range msg.Content {
			if p.IsText() || p.IsData() {
				text.WriteString(p.Text)
			}
		}

		switch msg.Role {
		case ai.RoleSystem:
			systems = append(systems, text.String())
		case ai.RoleUser:
			res = append(res, anthropic.NewUserMessage(anthropic.NewTextBlock(text.String())))
		case ai.RoleModel:
			res = append(res, anthropic.NewAssistantMessage(anthropic.NewTextBlock(text.String())))
		default:
			return nil, nil, fmt.Errorf("unsupported message role: %s", msg.Role)
		}
	}

	return res, systems, nil
}

func translateResponse(resp *anthropic.Message) *ai.ModelResponse {
	r := &ai.ModelResponse{}

	m := &ai.Message{
		Role: ai.RoleModel,
	}
	for _, content := range resp.Content {
		if block, ok := content.AsAny().(anthropic.TextBlock); ok {
			m.Content = append(m.Content, ai.NewTextPart(block.Text))
		}
	}
	r.Message = m

	switch resp.StopReason {
	case anthropic.StopReasonEndTurn, anthropic.StopReasonStopSequence:
		r.FinishReason = ai.FinishReasonStop
	case anthropic.StopReasonMaxTokens:
		r.FinishReason = ai.FinishReasonLength
	default:
		if resp.StopReason != "" {
			r.FinishReason = ai.FinishReasonOther
		}
	}

	r.Usage = &ai.GenerationUsage{
		InputTokens:  int(resp.Usage.InputTokens),
		OutputTokens: int(resp.Usage.OutputTokens),
		TotalTokens:  int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
	}

	return r
}
