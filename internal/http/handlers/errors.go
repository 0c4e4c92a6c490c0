package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/preston-bernstein/nba-explorer/internal/logging"
	"github.com/preston-bernstein/nba-explorer/internal/processing"
	"github.com/preston-bernstein/nba-explorer/internal/providers"
)

// writeServiceError maps an explorer error to a status code and JSON body.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := loggerFromContext(r, h.logger)

	if vErr, ok := processing.AsValidationError(err); ok {
		logging.Warn(logger, "upstream record rejected",
			logging.FieldKind, string(vErr.Kind),
			logging.FieldField, vErr.Field,
			"index", vErr.Index,
		)
		writeJSON(w, http.StatusUnprocessableEntity, validationBody{
			errorBody: newErrorBody(r, vErr.Error()),
			Kind:      string(vErr.Kind),
			Field:     vErr.Field,
			Index:     vErr.Index,
			RecordID:  vErr.RecordID,
			Rows:      []processing.Row{},
		}, h.logger)
		return
	}

	switch {
	case errors.Is(err, processing.ErrInvalidRange), errors.Is(err, processing.ErrUnknownPolicy):
		writeTableError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	case errors.Is(err, context.DeadlineExceeded):
		logging.Warn(logger, "upstream timed out", "error", err)
		writeError(w, r, http.StatusGatewayTimeout, "upstream timed out", h.logger)
		return
	case errors.Is(err, context.Canceled):
		writeError(w, r, http.StatusServiceUnavailable, "request canceled", h.logger)
		return
	}

	if rlErr, ok := providers.AsRateLimitError(err); ok {
		if rlErr.RetryAfter > 0 {
			secs := int(math.Ceil(rlErr.RetryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(secs))
		}
		logging.Warn(logger, "upstream rate limited", logging.FieldProvider, rlErr.Provider, "retry_after", rlErr.RetryAfter)
		writeError(w, r, http.StatusServiceUnavailable, "upstream rate limited", h.logger)
		return
	}

	logging.Error(logger, "upstream request failed", err)
	writeError(w, r, http.StatusBadGateway, "upstream unavailable", h.logger)
}
