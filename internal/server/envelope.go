package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/desertthunder/airwave/internal/shared"
	"github.com/desertthunder/airwave/internal/storage"
)

// Response is the JSON envelope consumed by the browser UI. Write endpoints
// carry Message, read endpoints carry Data, failures carry Error.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// decimal marshals with exactly one fractional digit so a lone 5-star vote
// reads 5.0 on the wire rather than 5.
type decimal float64

func (d decimal) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(d), 'f', 1, 64)), nil
}

// writeJSON serializes the envelope with the given status code.
func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// writeData writes a successful read response.
func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

// writeMessage writes a successful write response.
func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message})
}

// writeError converts a propagated error to the failure envelope. This is the
// single boundary where lower-layer errors become HTTP responses: validation
// failures map to 400, everything else (constraint violations, unreachable
// storage) to 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, storage.ErrUnavailable), errors.Is(err, storage.ErrConstraint):
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, Response{Success: false, Error: err.Error()})
}
