package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	gcs "cloud.google.com/go/storage"
	"github.com/meetlens/backend/services/transcription/consts"
	"github.com/meetlens/backend/services/transcription/entity"
)

type Storage interface {
	Upload(ctx context.Context, localPath, key string) (*entity.ObjectRef, error)
	Delete(ctx context.Context, key string) error
}

type storage struct {
	*gcs.Client
	bucket string
	log    *slog.Logger
}

func New(client *gcs.Client, bucket string, log *slog.Logger) Storage {
	return &storage{
		Client: client,
		bucket: bucket,
		log:    log,
	}
}

func (s *storage) Upload(ctx context.Context, localPath, key string) (*entity.ObjectRef, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	w := s.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = consts.WAVMIMEType

	n, err := io.Copy(w, f)
	if err != nil {
		w.Close()
		s.log.Error("failed to upload object", slog.String("key", key), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}
	// The object only exists once Close returns nil.
	if err := w.Close(); err != nil {
		s.log.Error("failed to finalize object", slog.String("key", key), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	ref := &entity.ObjectRef{Bucket: s.bucket, Key: key}
	s.log.Info("object uploaded", slog.String("uri", ref.URI()), slog.Int64("bytes", n))

	return ref, nil
}

func (s *storage) Delete(ctx context.Context, key string) error {
	err := s.Bucket(s.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	s.log.Debug("object deleted", slog.String("key", key))
	return nil
}
