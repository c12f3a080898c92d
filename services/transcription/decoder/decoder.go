package decoder

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/speech/apiv2/speechpb"
	"github.com/meetlens/backend/services/transcription/entity"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

var (
	ErrUnknownPayload = errors.New("unknown result payload")
	ErrUnexpectedType = errors.New("unexpected result type")
)

var batchRecognizeResponseName = (&speechpb.BatchRecognizeResponse{}).ProtoReflect().Descriptor().FullName()

// Decode resolves payload into a BatchRecognizeResponse. Encoded payloads are
// unmarshalled with the speech v2 schema; an empty type URL is accepted.
func Decode(payload entity.Payload) (*speechpb.BatchRecognizeResponse, error) {
	switch p := payload.(type) {
	// The recognizer always reports an EncodedPayload; structured payloads come
	// from callers that already hold a decoded response.
	case entity.StructuredPayload:
		return p.Response, nil
	case *entity.StructuredPayload:
		if p == nil {
			return nil, nil
		}
		return p.Response, nil
	case entity.EncodedPayload:
		return decodeEncoded(p)
	case *entity.EncodedPayload:
		if p == nil {
			return nil, nil
		}
		return decodeEncoded(*p)
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownPayload, payload)
	}
}

func decodeEncoded(p entity.EncodedPayload) (*speechpb.BatchRecognizeResponse, error) {
	if p.TypeURL != "" {
		name := p.TypeURL
		if i := strings.LastIndexByte(name, '/'); i >= 0 {
			name = name[i+1:]
		}
		if protoreflect.FullName(name) != batchRecognizeResponseName {
			return nil, fmt.Errorf("%w: %s", ErrUnexpectedType, p.TypeURL)
		}
	}

	resp := &speechpb.BatchRecognizeResponse{}
	if err := proto.Unmarshal(p.Value, resp); err != nil {
		return nil, fmt.Errorf("failed to decode batch recognize response: %w", err)
	}

	return resp, nil
}

// ExtractText joins the transcript of every file in resp. Files are visited in
// ascending key order; within a file, the first alternative of each non-empty
// segment is joined with single spaces. Only the ends of the result are
// trimmed.
func ExtractText(resp *speechpb.BatchRecognizeResponse) (string, error) {
	results := resp.GetResults()
	if results == nil {
		return "", entity.ErrNoResults
	}

	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(fileText(results[k]))
		b.WriteByte(' ')
	}

	return strings.TrimSpace(b.String()), nil
}

func fileText(res *speechpb.BatchRecognizeFileResult) string {
	transcript := res.GetInlineResult().GetTranscript()
	if transcript == nil {
		transcript = res.GetTranscript()
	}

	parts := make([]string, 0, len(transcript.GetResults()))
	for _, r := range transcript.GetResults() {
		alts := r.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if text := alts[0].GetTranscript(); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " ")
}
