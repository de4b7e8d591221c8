// Package judge sends rubric prompts to the scoring model.
package judge

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/WildSphee/copilot-testing/config"
)

// Client wraps a chat-completion backend with a fixed model and a low,
// near-deterministic sampling temperature.
type Client struct {
	oc          openai.Client
	model       string
	temperature float64
}

// New creates a judge client from the runtime configuration.
func New(cfg *config.Config) *Client {
	var opts []option.RequestOption
	if cfg.OpenAIAPIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.OpenAIAPIKey))
	}
	return &Client{
		oc:          openai.NewClient(opts...),
		model:       cfg.JudgeModel,
		temperature: cfg.JudgeTemperature,
	}
}

// Complete sends one user-role message and returns the raw completion
// text. Unlike the chat backend boundary, errors propagate to the caller;
// retry policy lives upstream.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	completion, err := c.oc.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(c.temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai api call failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return completion.Choices[0].Message.Content, nil
}
