package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/meetlens/backend/pkg/gen"
	"github.com/meetlens/backend/pkg/logger"
	"github.com/meetlens/backend/services/transcription/consts"
	"github.com/meetlens/backend/services/transcription/decoder"
	"github.com/meetlens/backend/services/transcription/entity"
	"github.com/meetlens/backend/services/transcription/polisher"
	"github.com/meetlens/backend/services/transcription/recognizer"
	"github.com/meetlens/backend/services/transcription/storage"
	"github.com/meetlens/backend/services/transcription/transcoder"
)

const defaultCleanupTimeout = 10 * time.Second

type Usecase interface {
	Submit(ctx context.Context, req *entity.SubmitRequest) (*entity.SubmitResponse, error)
	Poll(ctx context.Context, req *entity.PollRequest) (*entity.PollResponse, error)
}

type Options struct {
	TempDir        string
	CleanupTimeout time.Duration
}

type usecase struct {
	transcoder transcoder.Transcoder
	storage    storage.Storage
	recognizer recognizer.Recognizer
	polisher   polisher.Polisher
	keys       *gen.KeyGenerator
	opts       Options
}

func New(
	tc transcoder.Transcoder,
	stg storage.Storage,
	rec recognizer.Recognizer,
	pol polisher.Polisher,
	keys *gen.KeyGenerator,
	opts Options,
) Usecase {
	if opts.CleanupTimeout <= 0 {
		opts.CleanupTimeout = defaultCleanupTimeout
	}
	return &usecase{
		transcoder: tc,
		storage:    stg,
		recognizer: rec,
		polisher:   pol,
		keys:       keys,
		opts:       opts,
	}
}

// Submit transcodes the upload, stores it and starts a batch job. Local temp
// files never outlive the call.
func (u *usecase) Submit(ctx context.Context, req *entity.SubmitRequest) (*entity.SubmitResponse, error) {
	log := logger.FromContext(ctx)

	if req == nil || req.Audio == nil || req.Audio.Content == nil {
		return nil, entity.ErrMissingAudio
	}

	inPath, err := u.spool(req.Audio.Content)
	if inPath != "" {
		defer removeTemp(log, inPath)
	}
	if err != nil {
		return nil, err
	}
	log.Debug("upload spooled", slog.String("path", inPath), slog.String("content_type", req.Audio.ContentType))

	outPath, err := u.reserve()
	if outPath != "" {
		defer removeTemp(log, outPath)
	}
	if err != nil {
		return nil, err
	}

	if err := u.transcoder.Transcode(ctx, inPath, outPath); err != nil {
		return nil, fmt.Errorf("failed to transcode audio: %w", err)
	}
	log.Info("audio transcoded", slog.String("filename", req.Audio.Filename))

	ref, err := u.storage.Upload(ctx, outPath, u.keys.Next())
	if err != nil {
		return nil, err
	}

	handle, err := u.recognizer.Submit(ctx, ref)
	if err != nil {
		return nil, err
	}

	log.Info("transcription submitted",
		slog.String("operation", string(handle)),
		slog.String("object_key", ref.Key))

	return &entity.SubmitResponse{
		OperationID: string(handle),
		ObjectKey:   ref.Key,
	}, nil
}

// spool writes the upload to a temp file. The returned path is non-empty
// whenever a file was created, even on error.
func (u *usecase) spool(r io.Reader) (string, error) {
	f, err := os.CreateTemp(u.opts.TempDir, "raw-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return path, fmt.Errorf("failed to read audio: %w", err)
	}
	if err := f.Close(); err != nil {
		return path, fmt.Errorf("failed to write temp file: %w", err)
	}

	return path, nil
}

func (u *usecase) reserve() (string, error) {
	f, err := os.CreateTemp(u.opts.TempDir, "clean-*"+consts.WAVExtension)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		return path, fmt.Errorf("failed to create temp file: %w", err)
	}
	return path, nil
}

func removeTemp(log *slog.Logger, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("failed to remove temp file", slog.String("path", path), slog.String("error", err.Error()))
	}
}

func (u *usecase) Poll(ctx context.Context, req *entity.PollRequest) (*entity.PollResponse, error) {
	if req == nil || req.OperationID == "" {
		return nil, entity.ErrMissingID
	}

	log := logger.With(ctx, slog.String("operation", req.OperationID))

	st, err := u.recognizer.Check(ctx, entity.JobHandle(req.OperationID))
	if err != nil {
		return nil, err
	}
	if !st.Done {
		return &entity.PollResponse{Completed: false}, nil
	}
	if st.Err != nil {
		return nil, st.Err
	}

	resp, err := decoder.Decode(st.Payload)
	if err != nil {
		return nil, err
	}

	raw, err := decoder.ExtractText(resp)
	if err != nil {
		return nil, err
	}
	log.Info("transcription finished", slog.Int("raw_length", len(raw)))

	if raw == "" {
		u.cleanup(ctx, log, req.ObjectKey)
		return &entity.PollResponse{
			Completed: true,
			Text:      consts.NoSpeechText,
			RawText:   "",
		}, nil
	}

	text := u.polisher.Polish(ctx, raw)

	u.cleanup(ctx, log, req.ObjectKey)

	return &entity.PollResponse{
		Completed: true,
		Text:      text,
		RawText:   raw,
	}, nil
}

// cleanup deletes the uploaded audio. Failures are logged and dropped; the
// transcript has already been produced.
func (u *usecase) cleanup(ctx context.Context, log *slog.Logger, key string) {
	if key == "" {
		return
	}
	if !u.keys.Owns(key) {
		log.Warn("refusing to delete object outside upload prefix", slog.String("object_key", key))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.opts.CleanupTimeout)
	defer cancel()

	if err := u.storage.Delete(ctx, key); err != nil {
		log.Warn("failed to delete uploaded audio", slog.String("object_key", key), slog.String("error", err.Error()))
		return
	}
	log.Debug("uploaded audio deleted", slog.String("object_key", key))
}
