package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chessladder/chessladder/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodePlayerNotFound  = "PLAYER_NOT_FOUND"
	CodeDuplicatePlayer = "DUPLICATE_PLAYER"
	CodeInvalidName     = "INVALID_NAME"
	CodeSamePlayer      = "SAME_PLAYER"
	CodeInvalidResult   = "INVALID_RESULT"
	CodeInvalidDate     = "INVALID_DATE"
	CodeStorageFailure  = "STORAGE_FAILURE"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrDuplicatePlayer):
		return &httpError{http.StatusConflict, APIError{CodeDuplicatePlayer, "Player already exists"}}
	case errors.Is(err, model.ErrInvalidName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidName, "Player name must not be empty"}}
	case errors.Is(err, model.ErrSamePlayer):
		return &httpError{http.StatusBadRequest, APIError{CodeSamePlayer, "Players must be distinct"}}
	case errors.Is(err, model.ErrInvalidResult):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidResult, "Result must be 1-0, 0-1, or 1/2-1/2"}}
	case errors.Is(err, model.ErrInvalidDate):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDate, "Date must be YYYY-MM-DD"}}

	default:
		// Persistence failures and anything unexpected
		return &httpError{http.StatusInternalServerError, APIError{CodeStorageFailure, "Storage failure"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeStorageFailure, "Internal server error"}}
}
