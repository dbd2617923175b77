package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload.
// The payload is encoded before the header is written so encoding failures
// still produce a 500.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		logger.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and writes the mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(action, "error", err, "status", status)
	} else {
		log.Warn(action, "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes.
// Domain messages are safe to show; anything else becomes a generic message.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidStake),
		errors.Is(err, domain.ErrUnknownDifficulty),
		errors.Is(err, domain.ErrMissingIdentity),
		errors.Is(err, domain.ErrInvalidNickname),
		errors.Is(err, domain.ErrInvalidPage):
		return http.StatusBadRequest, rootMessage(err)
	case errors.Is(err, domain.ErrNotConfigured):
		return http.StatusServiceUnavailable, domain.ErrMsgNotConfigured
	case errors.Is(err, domain.ErrNoActiveRound),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.ErrMsgNoActiveRound
	case errors.Is(err, domain.ErrRoundInProgress),
		errors.Is(err, domain.ErrRollInProgress),
		errors.Is(err, domain.ErrRollLimitReached),
		errors.Is(err, domain.ErrCashoutNoRolls),
		errors.Is(err, domain.ErrSettlementInProgress),
		errors.Is(err, domain.ErrRoundLost),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, rootMessage(err)
	case errors.Is(err, domain.ErrUserDeclined):
		return http.StatusConflict, ErrMsgSettlementDeclined
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// rootMessage returns the message of the domain sentinel wrapped in err
func rootMessage(err error) string {
	for _, sentinel := range userFacingErrors {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

var userFacingErrors = []error{
	domain.ErrInvalidStake,
	domain.ErrUnknownDifficulty,
	domain.ErrMissingIdentity,
	domain.ErrInvalidNickname,
	domain.ErrInvalidPage,
	domain.ErrRoundInProgress,
	domain.ErrRollInProgress,
	domain.ErrRollLimitReached,
	domain.ErrCashoutNoRolls,
	domain.ErrSettlementInProgress,
	domain.ErrRoundLost,
	domain.ErrInvalidTransition,
}
