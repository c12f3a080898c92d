package recognizer

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/speech/apiv2/speechpb"
	"github.com/meetlens/backend/services/transcription/entity"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Recognizer interface {
	Submit(ctx context.Context, ref *entity.ObjectRef) (entity.JobHandle, error)
	Check(ctx context.Context, handle entity.JobHandle) (*entity.JobStatus, error)
}

type Config struct {
	ProjectID     string
	Region        string
	Model         string
	LanguageCodes []string
}

type recognizer struct {
	client Client
	cfg    Config
	log    *slog.Logger
}

func New(client Client, cfg Config, log *slog.Logger) Recognizer {
	return &recognizer{
		client: client,
		cfg:    cfg,
		log:    log,
	}
}

// BackendError is a failed call to the speech API, reduced to its gRPC status.
type BackendError struct {
	Code    codes.Code
	Message string
	Err     error
}

func (e *BackendError) Error() string { return e.Message }
func (e *BackendError) Unwrap() error { return e.Err }

func backendError(err error) error {
	s, ok := status.FromError(err)
	if !ok {
		return err
	}
	return &BackendError{Code: s.Code(), Message: s.Message(), Err: err}
}

func (r *recognizer) recognizerName() string {
	return fmt.Sprintf("projects/%s/locations/%s/recognizers/_", r.cfg.ProjectID, r.cfg.Region)
}

func (r *recognizer) request(ref *entity.ObjectRef) *speechpb.BatchRecognizeRequest {
	return &speechpb.BatchRecognizeRequest{
		Recognizer: r.recognizerName(),
		Config: &speechpb.RecognitionConfig{
			DecodingConfig: &speechpb.RecognitionConfig_AutoDecodingConfig{
				AutoDecodingConfig: &speechpb.AutoDetectDecodingConfig{},
			},
			Model:         r.cfg.Model,
			LanguageCodes: r.cfg.LanguageCodes,
			Features: &speechpb.RecognitionFeatures{
				EnableAutomaticPunctuation: true,
			},
		},
		Files: []*speechpb.BatchRecognizeFileMetadata{
			{AudioSource: &speechpb.BatchRecognizeFileMetadata_Uri{Uri: ref.URI()}},
		},
		RecognitionOutputConfig: &speechpb.RecognitionOutputConfig{
			Output: &speechpb.RecognitionOutputConfig_InlineResponseConfig{
				InlineResponseConfig: &speechpb.InlineOutputConfig{},
			},
		},
	}
}

func (r *recognizer) Submit(ctx context.Context, ref *entity.ObjectRef) (entity.JobHandle, error) {
	r.log.Info("submitting batch recognition job",
		slog.String("uri", ref.URI()),
		slog.String("model", r.cfg.Model))

	name, err := r.client.BatchRecognize(ctx, r.request(ref))
	if err != nil {
		r.log.Error("batch recognize failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to start transcription job: %w", backendError(err))
	}
	if name == "" {
		return "", fmt.Errorf("failed to start transcription job: empty operation name")
	}

	r.log.Info("batch recognition job started", slog.String("operation", name))
	return entity.JobHandle(name), nil
}

// Check reads the operation once. The response is left encoded; callers
// decode it.
func (r *recognizer) Check(ctx context.Context, handle entity.JobHandle) (*entity.JobStatus, error) {
	op, err := r.client.GetOperation(ctx, string(handle))
	if err != nil {
		r.log.Error("failed to get operation",
			slog.String("operation", string(handle)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check transcription job: %w", backendError(err))
	}

	if !op.GetDone() {
		r.log.Debug("job still running", slog.String("operation", string(handle)))
		return &entity.JobStatus{Done: false}, nil
	}

	if e := op.GetError(); e != nil {
		msg := status.FromProto(e).Message()
		r.log.Error("transcription job failed",
			slog.String("operation", string(handle)),
			slog.String("error", msg))
		return &entity.JobStatus{Done: true, Err: &entity.JobError{Message: msg}}, nil
	}

	st := &entity.JobStatus{Done: true}
	if resp := op.GetResponse(); resp != nil {
		st.Payload = entity.EncodedPayload{
			TypeURL: resp.GetTypeUrl(),
			Value:   resp.GetValue(),
		}
	}

	return st, nil
}
