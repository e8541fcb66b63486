package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"carbonfront/internal/domain"
	"carbonfront/internal/middleware"
	"carbonfront/internal/session"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var sizeErr *domain.SizeLimitError
	var upErr *domain.UpstreamError

	switch {
	// validation
	case errors.As(err, &sizeErr):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", sizeErr.Error()
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", domain.ErrFileTooLarge.Error()
	case errors.Is(err, domain.ErrNoFileSelected):
		return http.StatusBadRequest, "NO_FILE_SELECTED", "please select a file"
	case errors.Is(err, domain.ErrInvalidPDF):
		return http.StatusBadRequest, "INVALID_PDF", domain.ErrInvalidPDF.Error()
	case errors.Is(err, domain.ErrInvalidZIP):
		return http.StatusBadRequest, "INVALID_ZIP", domain.ErrInvalidZIP.Error()
	case errors.Is(err, domain.ErrInvalidMethodology):
		return http.StatusBadRequest, "INVALID_METHODOLOGY", domain.ErrInvalidMethodology.Error()

	// upstream
	case errors.As(err, &upErr):
		return http.StatusBadGateway, "UPSTREAM_ERROR", upErr.Message
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "an unexpected error occurred while contacting the processing service"

	// response shape
	case errors.Is(err, domain.ErrNoEmissionCalculations):
		return http.StatusUnprocessableEntity, "NO_EMISSION_CALCULATIONS", domain.ErrNoEmissionCalculations.Error()
	case errors.Is(err, domain.ErrTextInsteadOfJSON):
		return http.StatusUnprocessableEntity, "TEXT_INSTEAD_OF_JSON", domain.ErrTextInsteadOfJSON.Error()
	case errors.Is(err, domain.ErrInvalidResponseFormat):
		return http.StatusUnprocessableEntity, "INVALID_RESPONSE_FORMAT", domain.ErrInvalidResponseFormat.Error()
	case errors.Is(err, domain.ErrNoDataReturned):
		return http.StatusUnprocessableEntity, "NO_DATA_RETURNED", domain.ErrNoDataReturned.Error()
	case errors.Is(err, domain.ErrNoColumnsFound):
		return http.StatusUnprocessableEntity, "NO_COLUMNS_FOUND", domain.ErrNoColumnsFound.Error()

	// curation and export
	case errors.Is(err, domain.ErrNoColumnsSelected):
		return http.StatusBadRequest, "NO_COLUMNS_SELECTED", domain.ErrNoColumnsSelected.Error()
	case errors.Is(err, domain.ErrNoData):
		return http.StatusBadRequest, "NO_DATA", domain.ErrNoData.Error()
	case errors.Is(err, domain.ErrUnknownColumn):
		return http.StatusNotFound, "UNKNOWN_COLUMN", err.Error()
	case errors.Is(err, domain.ErrUnsupportedExportFormat):
		return http.StatusBadRequest, "UNSUPPORTED_EXPORT_FORMAT", domain.ErrUnsupportedExportFormat.Error()

	// concurrency
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return http.StatusConflict, "SUBMISSION_IN_FLIGHT", domain.ErrSubmissionInFlight.Error()
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusBadRequest, "SESSION_NOT_FOUND", "session not found, reload the page"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// ErrorMessage returns the user-facing text for err.
func ErrorMessage(err error) string {
	_, _, msg := MapDomainError(err)
	return msg
}

// HandleError maps a domain error and sends the appropriate error response.
// Server-side failures are attached to the context for the request logger.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		_ = c.Error(err)
	}
	RespondError(c, status, code, msg)
}

// requireSession extracts the page session. Returns false if it is missing
// (error response already written).
func requireSession(c *gin.Context) (*session.Session, bool) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		HandleError(c, fmt.Errorf("%w: %v", domain.ErrSessionNotFound, err))
		return nil, false
	}
	return sess, true
}
