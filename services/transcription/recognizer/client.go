package recognizer

import (
	"context"

	"cloud.google.com/go/longrunning/autogen/longrunningpb"
	speech "cloud.google.com/go/speech/apiv2"
	"cloud.google.com/go/speech/apiv2/speechpb"
)

// Client is the subset of the speech v2 API the recognizer needs.
type Client interface {
	// BatchRecognize starts a batch job and returns its operation name.
	BatchRecognize(ctx context.Context, req *speechpb.BatchRecognizeRequest) (string, error)
	GetOperation(ctx context.Context, name string) (*longrunningpb.Operation, error)
}

type speechClient struct {
	*speech.Client
}

func NewClient(c *speech.Client) Client {
	return &speechClient{Client: c}
}

func (c *speechClient) BatchRecognize(ctx context.Context, req *speechpb.BatchRecognizeRequest) (string, error) {
	op, err := c.Client.BatchRecognize(ctx, req)
	if err != nil {
		return "", err
	}
	return op.Name(), nil
}

func (c *speechClient) GetOperation(ctx context.Context, name string) (*longrunningpb.Operation, error) {
	return c.Client.GetOperation(ctx, &longrunningpb.GetOperationRequest{Name: name})
}
