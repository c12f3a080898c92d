package entity

import (
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/speech/apiv2/speechpb"
)

var (
	ErrMissingAudio = errors.New("No audio")
	ErrMissingID    = errors.New("Missing ID")
	ErrNoResults    = errors.New("Transcription complete but resultsMap is null.")
)

type (
	// AudioAsset is the upload as received. Content is only readable for the
	// lifetime of the request.
	AudioAsset struct {
		Content     io.Reader
		Filename    string
		ContentType string
	}

	ObjectRef struct {
		Bucket string
		Key    string
	}

	JobHandle string

	SubmitRequest struct {
		Audio *AudioAsset
	}

	SubmitResponse struct {
		OperationID string
		ObjectKey   string
	}

	PollRequest struct {
		OperationID string
		ObjectKey   string
	}

	PollResponse struct {
		Completed bool
		Text      string
		RawText   string
	}

	// JobStatus is one observation of a batch job. Payload is set only when
	// the job is done without an error.
	JobStatus struct {
		Done    bool
		Err     error
		Payload Payload
	}
)

func (r ObjectRef) URI() string {
	return fmt.Sprintf("gs://%s/%s", r.Bucket, r.Key)
}

// Payload is the result of a finished job as handed back by the backend:
// either already decoded or still in its wire encoding.
type Payload interface {
	isPayload()
}

type StructuredPayload struct {
	Response *speechpb.BatchRecognizeResponse
}

type EncodedPayload struct {
	TypeURL string
	Value   []byte
}

func (StructuredPayload) isPayload() {}
func (EncodedPayload) isPayload()    {}

// JobError is a failure reported by the backend for the job itself.
type JobError struct {
	Message string
}

func (e *JobError) Error() string {
	return e.Message
}
