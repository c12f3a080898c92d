package polisher

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/meetlens/backend/pkg/llm"
	"github.com/meetlens/backend/pkg/logger"
)

type fakeGenerator struct {
	text  string
	err   error
	calls []*llm.Request
}

func (f *fakeGenerator) Generate(ctx context.Context, req *llm.Request) (string, error) {
	f.calls = append(f.calls, req)
	return f.text, f.err
}

func TestPolishShortInputSkipsBackend(t *testing.T) {
	gen := &fakeGenerator{text: "should not be used"}
	p := New(gen, "m", logger.Discard())

	for _, raw := range []string{"", "a", "ok.", "four"} {
		if got := p.Polish(context.Background(), raw); got != raw {
			t.Errorf("Polish(%q) = %q", raw, got)
		}
	}
	if len(gen.calls) != 0 {
		t.Errorf("backend called %d times", len(gen.calls))
	}
}

func TestPolishShortNonASCIIInputSkipsBackend(t *testing.T) {
	calls := 0
	gen := llm.GeneratorFunc(func(ctx context.Context, req *llm.Request) (string, error) {
		calls++
		return "POLISHED", nil
	})

	raw := "नमस"
	if got := New(gen, "m", logger.Discard()).Polish(context.Background(), raw); got != raw {
		t.Errorf("Polish(%q) = %q", raw, got)
	}
	if calls != 0 {
		t.Errorf("backend called %d times for %d bytes", calls, len(raw))
	}
}

func TestPolishRequest(t *testing.T) {
	gen := &fakeGenerator{text: "  Hello, world.\n"}
	p := New(gen, "gemini-1.5-flash-001", logger.Discard())

	got := p.Polish(context.Background(), "hello world")
	if got != "Hello, world." {
		t.Errorf("Polish = %q", got)
	}

	if len(gen.calls) != 1 {
		t.Fatalf("backend called %d times", len(gen.calls))
	}
	req := gen.calls[0]
	if req.Model != "gemini-1.5-flash-001" {
		t.Errorf("model = %q", req.Model)
	}
	if req.Temperature != 0.1 {
		t.Errorf("temperature = %v", req.Temperature)
	}
	want := `Task: Fix punctuation and grammar. Do not summarize. Keep exact meaning. Text: "hello world"`
	if req.Prompt != want {
		t.Errorf("prompt = %q, want %q", req.Prompt, want)
	}
}

func TestPolishFallsBackToRaw(t *testing.T) {
	cases := map[string]*fakeGenerator{
		"backend error": {err: errors.New("quota exceeded")},
		"empty answer":  {err: llm.ErrEmptyResponse},
		"blank answer":  {text: " \n "},
	}

	for name, gen := range cases {
		t.Run(name, func(t *testing.T) {
			raw := "so um we should ship it friday"
			if got := New(gen, "m", logger.Discard()).Polish(context.Background(), raw); got != raw {
				t.Errorf("Polish = %q, want raw", got)
			}
		})
	}
}

func TestPolishAtThreshold(t *testing.T) {
	gen := &fakeGenerator{text: "Hello."}
	raw := strings.Repeat("x", 5)
	if got := New(gen, "m", logger.Discard()).Polish(context.Background(), raw); got != "Hello." {
		t.Errorf("Polish = %q", got)
	}
}
