package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meetlens/backend/pkg/json"
	analysis "github.com/meetlens/backend/services/analysis/usecase"
	transcription "github.com/meetlens/backend/services/transcription/usecase"
)

type Handler struct {
	transcription  transcription.Usecase
	analysis       analysis.Usecase
	maxUploadBytes int64
	log            *slog.Logger
}

func New(tr transcription.Usecase, an analysis.Usecase, maxUploadBytes int64, log *slog.Logger) *Handler {
	log.Debug("creating new handler", slog.Int64("max_upload_bytes", maxUploadBytes))
	return &Handler{
		transcription:  tr,
		analysis:       an,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// RegisterRoutes mounts the API under /api. guards wrap every route except
// the health check.
func (h *Handler) RegisterRoutes(r chi.Router, guards ...func(http.Handler) http.Handler) {
	h.log.Debug("registering HTTP routes", slog.Int("guards", len(guards)))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", h.HealthCheck)

		api.Group(func(g chi.Router) {
			g.Use(guards...)

			g.Post("/transcribe", h.SubmitTranscription)
			g.Get("/transcribe", h.PollTranscription)

			g.Post("/summary", h.Summary)
			g.Post("/highlights", h.Highlights)
			g.Post("/tone", h.Tone)
		})
	})

	h.log.Info("all routes registered successfully")
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	json.WriteJSON(w, http.StatusOK, map[string]bool{"status": true})
}
