// internal/api/responses/responses.go
package responses

import (
	"errors"
	"net/http"

	"layout-service/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var logger *zap.Logger

// APIResponse defines the standard envelope for API responses.
type APIResponse struct {
	Status  string      `json:"status"` // "success" or "error"
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// InitLogger initializes the structured logger for API responses.
func InitLogger() {
	logger, _ = zap.NewProduction()
}

// Logger exposes the shared logger for the service layer.
func Logger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// Success sends a successful response with the provided data and message.
func Success(c *gin.Context, data interface{}, message string) {
	resp := APIResponse{Status: "success", Data: data, Message: message}
	c.JSON(http.StatusOK, resp)
	logger.Info("API success", zap.String("path", c.Request.URL.Path), zap.Int("status", http.StatusOK))
}

// Error sends an error response with the provided code, message, and optional errors.
func Error(c *gin.Context, code int, message string, errs ...string) {
	resp := APIResponse{Status: "error", Message: message, Errors: errs}
	c.JSON(code, resp)
	logger.Error("API error", zap.String("path", c.Request.URL.Path), zap.Int("status", code), zap.Strings("errors", errs))
}

// DomainError maps a typed domain error onto the HTTP status it
// deserves and sends it through Error.
func DomainError(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	Error(c, statusFor(de.Code), de.Message, de.Details...)
}

func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeFileUnreadable, domain.CodeInvalidSelection, domain.CodeInvalidFormat:
		return http.StatusBadRequest
	case domain.CodeSheetNotFound, domain.CodeHeaderNotFound, domain.CodeNoBlocksFound,
		domain.CodeNoValidBlocks, domain.CodeEmptyAfterFilter, domain.CodeAccountNotFound:
		return http.StatusUnprocessableEntity
	case domain.CodeOutputWriteFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
