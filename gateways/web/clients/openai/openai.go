package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/meetlens/backend/pkg/llm"
	goopenai "github.com/sashabaranov/go-openai"
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

type Client struct {
	api chatCompleter
	log *slog.Logger
}

func New(apiKey string, log *slog.Logger) *Client {
	log.Debug("creating openai client", slog.Bool("api_key_set", apiKey != ""))
	return &Client{
		api: goopenai.NewClient(apiKey),
		log: log,
	}
}

func (c *Client) Generate(ctx context.Context, req *llm.Request) (string, error) {
	chat := goopenai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   int(req.MaxOutputTokens),
	}
	if req.JSON {
		chat.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	c.log.Debug("calling CreateChatCompletion",
		slog.String("model", req.Model),
		slog.Int("prompt_length", len(req.Prompt)),
		slog.Bool("json", req.JSON))

	resp, err := c.api.CreateChatCompletion(ctx, chat)
	if err != nil {
		c.log.Error("CreateChatCompletion failed",
			slog.String("model", req.Model),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", llm.ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", llm.ErrEmptyResponse
	}

	return text, nil
}
