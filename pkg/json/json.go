package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var ErrMissingBody = errors.New("missing request body")

func ParseJSON(r *http.Request, model any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrMissingBody
	}

	if err := json.NewDecoder(r.Body).Decode(model); err != nil {
		return fmt.Errorf("failed to parse request body: %w", err)
	}

	return nil
}

func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, err error) {
	WriteMessage(w, status, err.Error())
}

func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}
