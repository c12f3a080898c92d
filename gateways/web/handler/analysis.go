package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/meetlens/backend/pkg/json"
	"github.com/meetlens/backend/pkg/logger"
	"github.com/meetlens/backend/services/analysis/entity"
)

type analyzeRequest struct {
	Transcript  string `json:"transcript"`
	MeetingType string `json:"meetingType"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

type highlightsResponse struct {
	Highlights string `json:"highlights"`
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseAnalyzeRequest(w, r)
	if !ok {
		return
	}

	res, err := h.analysis.Summarize(r.Context(), req)
	if err != nil {
		h.writeAnalysisError(w, r, err)
		return
	}

	json.WriteJSON(w, http.StatusOK, &summaryResponse{Summary: res.Summary})
}

func (h *Handler) Highlights(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseAnalyzeRequest(w, r)
	if !ok {
		return
	}

	res, err := h.analysis.Highlights(r.Context(), req)
	if err != nil {
		h.writeAnalysisError(w, r, err)
		return
	}

	json.WriteJSON(w, http.StatusOK, &highlightsResponse{Highlights: res.Highlights})
}

func (h *Handler) Tone(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseAnalyzeRequest(w, r)
	if !ok {
		return
	}

	res, err := h.analysis.Tone(r.Context(), req)
	if err != nil {
		h.writeAnalysisError(w, r, err)
		return
	}

	json.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) parseAnalyzeRequest(w http.ResponseWriter, r *http.Request) (*entity.AnalyzeRequest, bool) {
	body := &analyzeRequest{}
	if err := json.ParseJSON(r, body); err != nil {
		logger.Warn(r.Context(), "invalid analysis request", slog.String("error", err.Error()))
		json.WriteError(w, http.StatusBadRequest, err)
		return nil, false
	}

	logger.Info(r.Context(), "analysis request received",
		slog.Int("transcript_length", len(body.Transcript)),
		slog.String("meeting_type", body.MeetingType))

	return &entity.AnalyzeRequest{
		Transcript:  body.Transcript,
		MeetingType: body.MeetingType,
	}, true
}

func (h *Handler) writeAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *entity.ValidationError
	if errors.As(err, &invalid) {
		logger.Warn(r.Context(), "analysis request rejected", slog.String("error", err.Error()))
		json.WriteError(w, http.StatusBadRequest, err)
		return
	}

	logger.ErrorErr(r.Context(), "analysis failed", err)
	json.WriteError(w, http.StatusInternalServerError, err)
}
