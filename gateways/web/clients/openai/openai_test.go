package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/meetlens/backend/pkg/llm"
	"github.com/meetlens/backend/pkg/logger"
	goopenai "github.com/sashabaranov/go-openai"
)

type fakeCompleter struct {
	resp goopenai.ChatCompletionResponse
	err  error
	req  goopenai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
	f.req = req
	return f.resp, f.err
}

func answer(text string) goopenai.ChatCompletionResponse {
	return goopenai.ChatCompletionResponse{
		Choices: []goopenai.ChatCompletionChoice{{Message: goopenai.ChatCompletionMessage{Content: text}}},
	}
}

func TestGenerate(t *testing.T) {
	api := &fakeCompleter{resp: answer(" {\"tone\":\"calm\"} ")}
	c := &Client{api: api, log: logger.Discard()}

	got, err := c.Generate(context.Background(), &llm.Request{
		Model:           "gpt-4o-mini",
		Prompt:          "analyze",
		Temperature:     0.2,
		MaxOutputTokens: 300,
		JSON:            true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"tone":"calm"}` {
		t.Errorf("Generate = %q", got)
	}

	req := api.req
	if req.Model != "gpt-4o-mini" || req.Temperature != 0.2 || req.MaxTokens != 300 {
		t.Errorf("request = %+v", req)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != goopenai.ChatMessageRoleUser || req.Messages[0].Content != "analyze" {
		t.Errorf("messages = %+v", req.Messages)
	}
	if req.ResponseFormat == nil || req.ResponseFormat.Type != goopenai.ChatCompletionResponseFormatTypeJSONObject {
		t.Errorf("response format = %+v", req.ResponseFormat)
	}
}

func TestGenerateFreeText(t *testing.T) {
	api := &fakeCompleter{resp: answer("Fixed text.")}
	c := &Client{api: api, log: logger.Discard()}

	if _, err := c.Generate(context.Background(), &llm.Request{Model: "gpt-4o-mini", Prompt: "fix"}); err != nil {
		t.Fatal(err)
	}
	if api.req.ResponseFormat != nil {
		t.Errorf("response format = %+v", api.req.ResponseFormat)
	}
}

func TestGenerateFailures(t *testing.T) {
	boom := errors.New("rate limited")

	cases := map[string]struct {
		api  *fakeCompleter
		want error
	}{
		"api error":  {api: &fakeCompleter{err: boom}, want: boom},
		"no choices": {api: &fakeCompleter{}, want: llm.ErrEmptyResponse},
		"blank":      {api: &fakeCompleter{resp: answer("  ")}, want: llm.ErrEmptyResponse},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := &Client{api: tc.api, log: logger.Discard()}
			if _, err := c.Generate(context.Background(), &llm.Request{Prompt: "x"}); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}
