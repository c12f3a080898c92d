package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/meetlens/backend/pkg/llm"
	"google.golang.org/genai"
)

const jsonMIMEType = "application/json"

type Config struct {
	ProjectID string
	Region    string
}

type Client struct {
	models *genai.Models
	log    *slog.Logger
}

func New(ctx context.Context, cfg Config, log *slog.Logger) (*Client, error) {
	log.Debug("creating gemini client",
		slog.String("project", cfg.ProjectID),
		slog.String("region", cfg.Region))

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  cfg.ProjectID,
		Location: cfg.Region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		log.Error("failed to create gemini client", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	log.Info("gemini client created")
	return &Client{
		models: client.Models,
		log:    log,
	}, nil
}

func (c *Client) Generate(ctx context.Context, req *llm.Request) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = req.MaxOutputTokens
	}
	if req.JSON {
		cfg.ResponseMIMEType = jsonMIMEType
	}

	c.log.Debug("calling GenerateContent",
		slog.String("model", req.Model),
		slog.Int("prompt_length", len(req.Prompt)),
		slog.Bool("json", req.JSON))

	resp, err := c.models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		c.log.Error("GenerateContent failed",
			slog.String("model", req.Model),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("gemini: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		c.log.Warn("gemini returned no text", slog.String("model", req.Model))
		return "", llm.ErrEmptyResponse
	}

	c.log.Debug("GenerateContent finished", slog.Int("response_length", len(text)))
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}

	return strings.TrimSpace(sb.String())
}
