package commons

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "tienda/internal/errors"
)

type ErrorResponse struct {
	TraceID string `json:"traceId"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger *zap.Logger) {
	WriteJSON(w, status, ErrorResponse{
		TraceID: TraceIDFromContext(r.Context()),
		Error:   code,
		Message: message,
	}, logger)
}

type ValidationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func WriteValidationError(w http.ResponseWriter, r *http.Request, message string, details []apperrors.ValidationDetail, logger *zap.Logger) {
	WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		TraceID: TraceIDFromContext(r.Context()),
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	}, logger)
}

// DecodeJSON reads the request body into dst. A malformed body becomes a
// ValidationError on the "body" field.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
	}
	return nil
}
