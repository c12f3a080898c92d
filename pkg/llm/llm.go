// Package llm defines the text generation contract shared by the transcript
// polisher and the meeting analysis service.
package llm

import (
	"context"
	"errors"
)

var ErrEmptyResponse = errors.New("empty response from model")

type Request struct {
	Model           string
	Prompt          string
	Temperature     float32
	MaxOutputTokens int32
	// JSON asks the model for a JSON document instead of free text.
	JSON bool
}

type Generator interface {
	Generate(ctx context.Context, req *Request) (string, error)
}

type GeneratorFunc func(ctx context.Context, req *Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req *Request) (string, error) {
	return f(ctx, req)
}
