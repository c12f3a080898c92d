package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/meetlens/backend/pkg/llm"
	"github.com/meetlens/backend/pkg/logger"
	"github.com/meetlens/backend/services/analysis/entity"
)

const (
	minSummaryLength    = 10
	minHighlightsLength = 10
	minToneLength       = 20

	defaultSummaryMeeting = "meeting"
	defaultToneMeeting    = "general meeting"
	noSummaryText         = "No summary generated"
)

const (
	errHighlightsFailed = "Failed to extract highlights"
	errToneFailed       = "Model failed to analyze tone"
)

type Usecase interface {
	Summarize(ctx context.Context, req *entity.AnalyzeRequest) (*entity.SummaryResponse, error)
	Highlights(ctx context.Context, req *entity.AnalyzeRequest) (*entity.HighlightsResponse, error)
	Tone(ctx context.Context, req *entity.AnalyzeRequest) (*entity.Tone, error)
}

type usecase struct {
	gen   llm.Generator
	model string
}

func New(gen llm.Generator, model string) Usecase {
	return &usecase{
		gen:   gen,
		model: model,
	}
}

func (u *usecase) Summarize(ctx context.Context, req *entity.AnalyzeRequest) (*entity.SummaryResponse, error) {
	if utf8.RuneCountInString(req.Transcript) < minSummaryLength {
		return nil, &entity.ValidationError{Message: "Transcript too short"}
	}

	meeting := req.MeetingType
	if meeting == "" {
		meeting = defaultSummaryMeeting
	}

	text, err := u.gen.Generate(ctx, &llm.Request{
		Model:           u.model,
		Prompt:          fmt.Sprintf(summaryPrompt, meeting, req.Transcript),
		Temperature:     0.1,
		MaxOutputTokens: 1024,
	})
	if err != nil && !errors.Is(err, llm.ErrEmptyResponse) {
		logger.ErrorErr(ctx, "summary generation failed", err)
		return nil, fmt.Errorf("failed to generate summary: %w", err)
	}

	summary := strings.TrimSpace(text)
	if summary == "" {
		summary = noSummaryText
	}

	return &entity.SummaryResponse{Summary: summary}, nil
}

func (u *usecase) Highlights(ctx context.Context, req *entity.AnalyzeRequest) (*entity.HighlightsResponse, error) {
	if utf8.RuneCountInString(req.Transcript) < minHighlightsLength {
		return nil, &entity.ValidationError{Message: "Transcript is required to extract highlights"}
	}

	meeting := "General meeting"
	if req.MeetingType != "" {
		meeting = "Meeting type: " + strings.Replace(req.MeetingType, "_", " ", 1)
	}

	prompt := strings.TrimSpace(fmt.Sprintf(highlightsPrompt, meeting, req.Transcript))
	logger.Debug(ctx, "highlights prompt built", "prompt_length", len(prompt))

	text, err := u.gen.Generate(ctx, &llm.Request{
		Model:           u.model,
		Prompt:          prompt,
		Temperature:     0.3,
		MaxOutputTokens: 300,
	})
	if err != nil {
		logger.ErrorErr(ctx, "highlights generation failed", err)
		return nil, &entity.AnalysisError{Message: errHighlightsFailed, Err: err}
	}

	highlights := strings.TrimSpace(text)
	if highlights == "" {
		return nil, &entity.AnalysisError{Message: errHighlightsFailed, Err: llm.ErrEmptyResponse}
	}

	return &entity.HighlightsResponse{Highlights: highlights}, nil
}

func (u *usecase) Tone(ctx context.Context, req *entity.AnalyzeRequest) (*entity.Tone, error) {
	if utf8.RuneCountInString(strings.TrimSpace(req.Transcript)) < minToneLength {
		return nil, &entity.ValidationError{Message: "Transcript is too short"}
	}

	meeting := req.MeetingType
	if meeting == "" {
		meeting = defaultToneMeeting
	}

	text, err := u.gen.Generate(ctx, &llm.Request{
		Model:       u.model,
		Prompt:      fmt.Sprintf(tonePrompt, meeting, req.Transcript),
		Temperature: 0.2,
		JSON:        true,
	})
	if errors.Is(err, llm.ErrEmptyResponse) || (err == nil && strings.TrimSpace(text) == "") {
		return nil, entity.ErrEmptyResponse
	}
	if err != nil {
		logger.ErrorErr(ctx, "tone analysis failed", err)
		return nil, &entity.AnalysisError{Message: errToneFailed, Err: err}
	}

	tone, err := parseTone(text)
	if err != nil {
		logger.ErrorErr(ctx, "tone response is not valid JSON", err, "response", text)
		return nil, err
	}

	logger.Info(ctx, "tone analyzed", "sentiment", tone.Sentiment, "risk_signals", len(tone.RiskSignals))
	return tone, nil
}

// parseTone accepts a bare JSON object, optionally wrapped in a markdown code fence.
func parseTone(text string) (*entity.Tone, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	tone := &entity.Tone{}
	if err := json.Unmarshal([]byte(text), tone); err != nil {
		return nil, fmt.Errorf("failed to parse tone response: %w", err)
	}
	if tone.Emotions == nil {
		tone.Emotions = []string{}
	}
	if tone.RiskSignals == nil {
		tone.RiskSignals = []string{}
	}

	return tone, nil
}
