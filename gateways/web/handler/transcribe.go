package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/meetlens/backend/pkg/json"
	"github.com/meetlens/backend/pkg/logger"
	"github.com/meetlens/backend/services/transcription/consts"
	"github.com/meetlens/backend/services/transcription/entity"
)

type submitResponse struct {
	OperationID string `json:"operationId"`
	GCSName     string `json:"gcsName"`
}

// pollResponse leaves text fields out while the job is running. A finished
// job always carries both, even when rawText is empty.
type pollResponse struct {
	Completed bool    `json:"completed"`
	Text      *string `json:"text,omitempty"`
	RawText   *string `json:"rawText,omitempty"`
}

func (h *Handler) SubmitTranscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile(consts.AudioFormField)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			log.Warn("upload exceeds limit", slog.Int64("limit", tooLarge.Limit))
			json.WriteMessage(w, http.StatusRequestEntityTooLarge, "Audio file too large")
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			log.Warn("request without audio", slog.String("error", err.Error()))
			json.WriteError(w, http.StatusBadRequest, entity.ErrMissingAudio)
		default:
			log.Error("failed to read upload", slog.String("error", err.Error()))
			json.WriteError(w, http.StatusInternalServerError, err)
		}
		return
	}
	defer file.Close()

	log.Info("transcription upload received",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	res, err := h.transcription.Submit(ctx, &entity.SubmitRequest{
		Audio: &entity.AudioAsset{
			Content:     file,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		},
	})
	if err != nil {
		h.writeTranscriptionError(w, r, err)
		return
	}

	json.WriteJSON(w, http.StatusOK, &submitResponse{
		OperationID: res.OperationID,
		GCSName:     res.ObjectKey,
	})
}

func (h *Handler) PollTranscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	res, err := h.transcription.Poll(ctx, &entity.PollRequest{
		OperationID: q.Get("id"),
		ObjectKey:   q.Get("gcsName"),
	})
	if err != nil {
		h.writeTranscriptionError(w, r, err)
		return
	}

	if !res.Completed {
		json.WriteJSON(w, http.StatusOK, &pollResponse{Completed: false})
		return
	}

	json.WriteJSON(w, http.StatusOK, &pollResponse{
		Completed: true,
		Text:      &res.Text,
		RawText:   &res.RawText,
	})
}

func (h *Handler) writeTranscriptionError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	if errors.Is(err, entity.ErrMissingAudio) || errors.Is(err, entity.ErrMissingID) {
		log.Warn("invalid transcription request", slog.String("error", err.Error()))
		json.WriteError(w, http.StatusBadRequest, err)
		return
	}

	log.Error("transcription request failed", slog.String("error", err.Error()))
	json.WriteError(w, http.StatusInternalServerError, err)
}
