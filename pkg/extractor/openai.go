package extractor

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/sashabaranov/go-openai"
)

// OpenAI adapts the OpenAI chat-completion API to the CompletionClient
// contract: one prompt in, raw completion text out, no streaming.
type OpenAI struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

func NewOpenAI(
	apiKey string,
	model string,
	maxTokens int,
	temperature float32,
) *OpenAI {
	return &OpenAI{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

func (o *OpenAI) Complete(
	ctx context.Context,
	prompt string,
) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to create chat completion")
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
