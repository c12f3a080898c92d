package polisher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/meetlens/backend/pkg/llm"
	"github.com/meetlens/backend/services/transcription/consts"
)

const (
	promptTemplate = `Task: Fix punctuation and grammar. Do not summarize. Keep exact meaning. Text: "%s"`
	temperature    = 0.1
)

type Polisher interface {
	Polish(ctx context.Context, raw string) string
}

type polisher struct {
	gen   llm.Generator
	model string
	log   *slog.Logger
}

func New(gen llm.Generator, model string, log *slog.Logger) Polisher {
	return &polisher{
		gen:   gen,
		model: model,
		log:   log,
	}
}

// Polish returns raw with grammar and punctuation corrected. It never fails:
// short inputs are passed through and any backend problem yields raw.
func (p *polisher) Polish(ctx context.Context, raw string) string {
	if utf8.RuneCountInString(raw) < consts.MinPolishLength {
		return raw
	}

	p.log.Info("polishing transcript", slog.Int("raw_length", len(raw)))

	text, err := p.gen.Generate(ctx, &llm.Request{
		Model:       p.model,
		Prompt:      fmt.Sprintf(promptTemplate, raw),
		Temperature: temperature,
	})
	if err != nil {
		p.log.Error("polishing failed, keeping raw transcript", slog.String("error", err.Error()))
		return raw
	}

	text = strings.TrimSpace(text)
	if text == "" {
		p.log.Warn("polisher returned empty text, keeping raw transcript")
		return raw
	}

	p.log.Debug("transcript polished", slog.Int("length", len(text)))
	return text
}
