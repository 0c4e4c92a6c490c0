package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/preston-bernstein/nba-explorer/internal/http/requestutil"
	"github.com/preston-bernstein/nba-explorer/internal/logging"
	"github.com/preston-bernstein/nba-explorer/internal/processing"
)

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// tableErrorBody is a rejected selection rendered with an empty table.
type tableErrorBody struct {
	errorBody
	Rows []processing.Row `json:"rows"`
}

// validationBody reports the first rejected record alongside an empty table.
type validationBody struct {
	errorBody
	Kind     string           `json:"kind"`
	Field    string           `json:"field,omitempty"`
	Index    int              `json:"index"`
	RecordID string           `json:"recordId,omitempty"`
	Rows     []processing.Row `json:"rows"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, newErrorBody(r, message), logger)
}

func writeTableError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, tableErrorBody{errorBody: newErrorBody(r, message), Rows: []processing.Row{}}, logger)
}

func newErrorBody(r *http.Request, message string) errorBody {
	return errorBody{Error: message, RequestID: requestutil.RequestID(r)}
}

// writeCSV buffers the export so a failed render can still become a JSON error.
func writeCSV(w http.ResponseWriter, r *http.Request, filename string, render func(*bytes.Buffer) error, logger *slog.Logger) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		logging.Error(logger, "failed to render csv", err, "file", filename)
		writeError(w, r, http.StatusInternalServerError, "export failed", logger)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Error(logger, "failed to write csv", err, "file", filename)
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
