package gpt

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/seracht/gpterm/log"
)

// Client wraps the OpenAI SDK for streaming chat completions.
type Client struct {
	api   openai.Client
	model string
}

// NewClient builds a client for the given key and model.
func NewClient(apiKey, model string) *Client {
	return &Client{
		api:   openai.NewClient(option.WithAPIKey(apiKey)),
		model: model,
	}
}

// Model returns the model requests are made with.
func (c *Client) Model() string {
	return c.model
}

func toParams(history []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// StreamCompletion sends the history to the model and streams the reply.
// onPartial is called with the accumulated reply text after every delta; the
// complete assistant message is returned once the stream ends.
func (c *Client) StreamCompletion(ctx context.Context, history []Message, onPartial func(content string)) (Message, error) {
	stream := c.api.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: toParams(history),
	})
	defer stream.Close()

	acc := openai.ChatCompletionAccumulator{}
	var partial string
	for stream.Next() {
		chunk := stream.Current()
		acc.AddChunk(chunk)
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			partial += chunk.Choices[0].Delta.Content
			if onPartial != nil {
				onPartial(partial)
			}
		}
	}
	if err := stream.Err(); err != nil {
		log.ErrorLog.Printf("completion stream failed: %v", err)
		return Message{}, fmt.Errorf("completion stream failed: %w", err)
	}
	if len(acc.Choices) == 0 {
		return Message{}, fmt.Errorf("completion returned no choices")
	}

	return AssistantMessage(acc.Choices[0].Message.Content), nil
}
