package entity

import "errors"

var ErrEmptyResponse = errors.New("Empty response from AI")

type (
	AnalyzeRequest struct {
		Transcript  string
		MeetingType string
	}

	SummaryResponse struct {
		Summary string
	}

	HighlightsResponse struct {
		Highlights string
	}

	Tone struct {
		Tone            string   `json:"tone"`
		Sentiment       string   `json:"sentiment"`
		Emotions        []string `json:"emotions"`
		ConfidenceLevel string   `json:"confidenceLevel"`
		RiskSignals     []string `json:"riskSignals"`
		Summary         string   `json:"summary"`
	}
)

// ValidationError rejects a request before any model call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AnalysisError hides the backend failure behind a fixed message while
// keeping it available to errors.Is/As and the logs.
type AnalysisError struct {
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}
