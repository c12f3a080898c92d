package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	speech "cloud.google.com/go/speech/apiv2"
	gcs "cloud.google.com/go/storage"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	config "github.com/meetlens/backend/config/web"
	"github.com/meetlens/backend/gateways/web/clients/gemini"
	"github.com/meetlens/backend/gateways/web/clients/openai"
	"github.com/meetlens/backend/gateways/web/handler"
	"github.com/meetlens/backend/gateways/web/middleware"
	"github.com/meetlens/backend/pkg/gen"
	"github.com/meetlens/backend/pkg/llm"
	analysis "github.com/meetlens/backend/services/analysis/usecase"
	"github.com/meetlens/backend/services/transcription/consts"
	"github.com/meetlens/backend/services/transcription/polisher"
	"github.com/meetlens/backend/services/transcription/recognizer"
	"github.com/meetlens/backend/services/transcription/storage"
	"github.com/meetlens/backend/services/transcription/transcoder"
	transcription "github.com/meetlens/backend/services/transcription/usecase"
	"google.golang.org/api/option"
)

const (
	readHeaderTimeout = 15 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type Server struct {
	cfg          *config.Config
	log          *slog.Logger
	speechClient *speech.Client
	gcsClient    *gcs.Client
	handler      *handler.Handler
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Server, error) {
	log.Info("creating new web server")
	log.Debug("server config",
		slog.Int("port", cfg.Port),
		slog.String("project", cfg.GCP.ProjectID),
		slog.String("region", cfg.GCP.Region),
		slog.String("bucket", cfg.Storage.Bucket),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.Bool("auth_required", cfg.AuthRequired))

	var opts []option.ClientOption
	if cfg.GCP.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCP.CredentialsFile))
	}

	log.Debug("creating storage client")
	gcsClient, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		log.Error("failed to create storage client", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	log.Info("storage client created successfully")

	log.Debug("creating speech client", slog.String("endpoint", cfg.SpeechEndpoint()))
	speechClient, err := speech.NewClient(ctx, append(opts, option.WithEndpoint(cfg.SpeechEndpoint()))...)
	if err != nil {
		gcsClient.Close()
		log.Error("failed to create speech client", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	log.Info("speech client created successfully")

	generator, err := newGenerator(ctx, cfg, log)
	if err != nil {
		speechClient.Close()
		gcsClient.Close()
		return nil, err
	}

	polishModel, analysisModel := cfg.LLM.Models()

	tr := transcription.New(
		transcoder.NewFFmpeg(cfg.FFmpegPath, log),
		storage.New(gcsClient, cfg.Storage.Bucket, log),
		recognizer.New(recognizer.NewClient(speechClient), recognizer.Config{
			ProjectID:     cfg.GCP.ProjectID,
			Region:        cfg.GCP.Region,
			Model:         cfg.Speech.Model,
			LanguageCodes: cfg.Speech.LanguageCodes,
		}, log),
		polisher.New(generator, polishModel, log),
		newKeyGenerator(cfg),
		transcription.Options{
			TempDir:        cfg.TempDir,
			CleanupTimeout: cfg.CleanupTimeout,
		},
	)
	an := analysis.New(generator, analysisModel)

	h := handler.New(tr, an, cfg.MaxUploadBytes, log)

	log.Info("web server instance created successfully")
	return &Server{
		cfg:          cfg,
		log:          log,
		speechClient: speechClient,
		gcsClient:    gcsClient,
		handler:      h,
	}, nil
}

func newGenerator(ctx context.Context, cfg *config.Config, log *slog.Logger) (llm.Generator, error) {
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		return openai.New(cfg.LLM.OpenAIAPIKey, log), nil
	default:
		return gemini.New(ctx, gemini.Config{
			ProjectID: cfg.GCP.ProjectID,
			Region:    cfg.GCP.Region,
		}, log)
	}
}

func newKeyGenerator(cfg *config.Config) *gen.KeyGenerator {
	return gen.NewKeyGenerator(cfg.Storage.Prefix, consts.WAVExtension)
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(s.log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var guards []func(http.Handler) http.Handler
	if s.cfg.AuthRequired {
		guards = append(guards, middleware.RequireSession(s.cfg.JWTSecret))
	}
	s.handler.RegisterRoutes(r, guards...)

	return r
}

func (s *Server) Start(ctx context.Context) error {
	s.log.Info("starting web server")
	defer s.close()

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.log.Debug("creating HTTP server",
		slog.String("addr", addr),
		slog.Duration("write_timeout", s.cfg.WriteTimeout),
		slog.Duration("idle_timeout", idleTimeout))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       idleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.log.Info("web gateway started", slog.String("address", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.log.Error("server error received", slog.String("error", err.Error()))
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.log.Info("start shutdown", slog.String("cause", context.Cause(ctx).Error()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			s.log.Error("graceful shutdown failed", slog.String("error", err.Error()))
			s.log.Warn("forcing server close")
			srv.Close()
			return fmt.Errorf("failed to gracefully shutdown server: %w", err)
		}
	}

	s.log.Info("server stopped cleanly")
	return nil
}

func (s *Server) close() {
	if err := s.speechClient.Close(); err != nil {
		s.log.Warn("failed to close speech client", slog.String("error", err.Error()))
	}
	if err := s.gcsClient.Close(); err != nil {
		s.log.Warn("failed to close storage client", slog.String("error", err.Error()))
	}
}
