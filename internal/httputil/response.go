package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"thewall/internal/model"
)

// Error codes returned in the error envelope
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error code and message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse wraps every successful payload
type SuccessResponse struct {
	Status bool        `json:"status"`
	Result interface{} `json:"result"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent; an encoding failure cannot be reported.
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteSuccess writes {"status": true, "result": result}
func WriteSuccess(w http.ResponseWriter, status int, result interface{}) {
	WriteJSON(w, status, SuccessResponse{Status: true, Result: result})
}

// WriteError writes an error response in the envelope format:
// {"error": {"code": "ERROR_CODE", "message": "Human readable message"}}
func WriteError(w http.ResponseWriter, status int, code string, message string) {
	response := ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
	WriteJSON(w, status, response)
}

// Common error response helpers

// WriteBadRequest writes a 400 Bad Request error
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// WriteUnauthorized writes a 401 Unauthorized error
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// WriteUnauthorizedWithCode writes a 401 Unauthorized error with a custom code
func WriteUnauthorizedWithCode(w http.ResponseWriter, code string, message string) {
	WriteError(w, http.StatusUnauthorized, code, message)
}

// WriteForbidden writes a 403 Forbidden error
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, ErrCodeForbidden, message)
}

// WriteNotFound writes a 404 Not Found error
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// WriteConflict writes a 409 Conflict error
func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, ErrCodeConflict, message)
}

// WriteInternalError writes a 500 Internal Server Error
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// WriteServiceError maps a service error to its HTTP status. Store and
// unexpected failures are logged with full detail and answered with an
// opaque 500.
func WriteServiceError(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case model.IsValidation(err):
		WriteBadRequest(w, err.Error())
	case model.IsNotFound(err):
		WriteNotFound(w, err.Error())
	case model.IsForbidden(err):
		WriteForbidden(w, err.Error())
	case model.IsConflict(err):
		WriteConflict(w, err.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		WriteUnauthorized(w, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		WriteInternalError(w, "Internal server error")
	}
}
