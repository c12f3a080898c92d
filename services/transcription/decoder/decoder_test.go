package decoder

import (
	"errors"
	"testing"

	"cloud.google.com/go/speech/apiv2/speechpb"
	"github.com/google/go-cmp/cmp"
	"github.com/meetlens/backend/services/transcription/entity"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/anypb"
)

func inlineFile(segments ...string) *speechpb.BatchRecognizeFileResult {
	results := make([]*speechpb.SpeechRecognitionResult, 0, len(segments))
	for _, s := range segments {
		results = append(results, &speechpb.SpeechRecognitionResult{
			Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: s}},
		})
	}
	return &speechpb.BatchRecognizeFileResult{
		Result: &speechpb.BatchRecognizeFileResult_InlineResult{
			InlineResult: &speechpb.InlineResult{
				Transcript: &speechpb.BatchRecognizeResults{Results: results},
			},
		},
	}
}

func TestExtractText(t *testing.T) {
	cases := map[string]struct {
		results map[string]*speechpb.BatchRecognizeFileResult
		want    string
	}{
		"single segment": {
			results: map[string]*speechpb.BatchRecognizeFileResult{
				"gs://b/k": inlineFile("Hello world."),
			},
			want: "Hello world.",
		},
		"segments joined with single spaces": {
			results: map[string]*speechpb.BatchRecognizeFileResult{
				"gs://b/k": inlineFile("Hello", "", "there", "friend"),
			},
			want: "Hello there friend",
		},
		"inner spacing kept across files": {
			results: map[string]*speechpb.BatchRecognizeFileResult{
				"a": inlineFile("hello "),
				"b": inlineFile("world"),
			},
			want: "hello  world",
		},
		"files visited in key order": {
			results: map[string]*speechpb.BatchRecognizeFileResult{
				"z": inlineFile("last"),
				"a": inlineFile("first"),
				"m": inlineFile("middle"),
			},
			want: "first middle last",
		},
		"no speech": {
			results: map[string]*speechpb.BatchRecognizeFileResult{
				"gs://b/k": inlineFile("", ""),
			},
			want: "",
		},
		"empty map": {
			results: map[string]*speechpb.BatchRecognizeFileResult{},
			want:    "",
		},
		"result without alternatives": {
			results: map[string]*speechpb.BatchRecognizeFileResult{
				"gs://b/k": {
					Result: &speechpb.BatchRecognizeFileResult_InlineResult{
						InlineResult: &speechpb.InlineResult{
							Transcript: &speechpb.BatchRecognizeResults{
								Results: []*speechpb.SpeechRecognitionResult{{}},
							},
						},
					},
				},
			},
			want: "",
		},
		"legacy transcript field": {
			results: map[string]*speechpb.BatchRecognizeFileResult{
				"gs://b/k": {
					Transcript: &speechpb.BatchRecognizeResults{
						Results: []*speechpb.SpeechRecognitionResult{
							{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "old style"}}},
						},
					},
				},
			},
			want: "old style",
		},
		"only first alternative used": {
			results: map[string]*speechpb.BatchRecognizeFileResult{
				"gs://b/k": {
					Result: &speechpb.BatchRecognizeFileResult_InlineResult{
						InlineResult: &speechpb.InlineResult{
							Transcript: &speechpb.BatchRecognizeResults{
								Results: []*speechpb.SpeechRecognitionResult{{
									Alternatives: []*speechpb.SpeechRecognitionAlternative{
										{Transcript: "best"},
										{Transcript: "worse"},
									},
								}},
							},
						},
					},
				},
			},
			want: "best",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ExtractText(&speechpb.BatchRecognizeResponse{Results: tc.results})
			if err != nil {
				t.Fatalf("ExtractText: %v", err)
			}
			if got != tc.want {
				t.Errorf("ExtractText = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractTextNilResults(t *testing.T) {
	for name, resp := range map[string]*speechpb.BatchRecognizeResponse{
		"nil response":   nil,
		"nil result map": {},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractText(resp)
			if !errors.Is(err, entity.ErrNoResults) {
				t.Fatalf("err = %v, want %v", err, entity.ErrNoResults)
			}
			if err.Error() != "Transcription complete but resultsMap is null." {
				t.Errorf("message = %q", err.Error())
			}
		})
	}
}

func sampleResponse() *speechpb.BatchRecognizeResponse {
	return &speechpb.BatchRecognizeResponse{
		Results: map[string]*speechpb.BatchRecognizeFileResult{
			"gs://meetlens-audio/transcription/1-a.wav": inlineFile("Good morning", "everyone."),
		},
	}
}

func TestDecodeStructured(t *testing.T) {
	want := sampleResponse()

	for name, payload := range map[string]entity.Payload{
		"value":   entity.StructuredPayload{Response: want},
		"pointer": &entity.StructuredPayload{Response: want},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := Decode(payload)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != want {
				t.Errorf("Decode returned a different message")
			}
		})
	}
}

func TestDecodeEncoded(t *testing.T) {
	want := sampleResponse()

	packed, err := anypb.New(want)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := proto.Marshal(want)
	if err != nil {
		t.Fatal(err)
	}

	for name, payload := range map[string]entity.Payload{
		"any":            entity.EncodedPayload{TypeURL: packed.GetTypeUrl(), Value: packed.GetValue()},
		"pointer":        &entity.EncodedPayload{TypeURL: packed.GetTypeUrl(), Value: packed.GetValue()},
		"without type":   entity.EncodedPayload{Value: raw},
		"bare type name": entity.EncodedPayload{TypeURL: "google.cloud.speech.v2.BatchRecognizeResponse", Value: raw},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := Decode(payload)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(want, got, protocmp.Transform()); diff != "" {
				t.Errorf("Decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeBothShapesAgree(t *testing.T) {
	resp := sampleResponse()
	packed, err := anypb.New(resp)
	if err != nil {
		t.Fatal(err)
	}

	structured, err := Decode(entity.StructuredPayload{Response: resp})
	if err != nil {
		t.Fatal(err)
	}
	encoded, err := Decode(entity.EncodedPayload{TypeURL: packed.GetTypeUrl(), Value: packed.GetValue()})
	if err != nil {
		t.Fatal(err)
	}

	a, err := ExtractText(structured)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ExtractText(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if a != b || a != "Good morning everyone." {
		t.Errorf("structured %q, encoded %q", a, b)
	}
}

func TestDecodeErrors(t *testing.T) {
	other, err := anypb.New(&speechpb.BatchRecognizeRequest{Recognizer: "x"})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("wrong type", func(t *testing.T) {
		_, err := Decode(entity.EncodedPayload{TypeURL: other.GetTypeUrl(), Value: other.GetValue()})
		if !errors.Is(err, ErrUnexpectedType) {
			t.Errorf("err = %v, want %v", err, ErrUnexpectedType)
		}
	})

	t.Run("corrupt bytes", func(t *testing.T) {
		_, err := Decode(entity.EncodedPayload{Value: []byte{0xff, 0xff, 0xff}})
		if err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("missing payload", func(t *testing.T) {
		resp, err := Decode(nil)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if _, err := ExtractText(resp); !errors.Is(err, entity.ErrNoResults) {
			t.Errorf("err = %v, want %v", err, entity.ErrNoResults)
		}
	})
}
