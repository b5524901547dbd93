package utils

import (
	"errors"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceFrom(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceFrom(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceFrom(c),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	traceID := traceFrom(c)

	switch {
	case errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			TraceID: traceID,
		})
	case errors.Is(err, ErrUnknownSession):
		c.JSON(http.StatusNotFound, APIResponse{
			Status:  "error",
			Code:    http.StatusNotFound,
			Message: "Session not found. Complete the questionnaire to start a new one.",
			TraceID: traceID,
		})
	case errors.Is(err, ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, APIResponse{
			Status:  "error",
			Code:    http.StatusNotFound,
			Message: "Vehicle not found",
			TraceID: traceID,
		})
	case errors.Is(err, ErrAIUnavailable):
		log.Printf("AI service error: %v", err)
		c.JSON(http.StatusServiceUnavailable, APIResponse{
			Status:  "error",
			Code:    http.StatusServiceUnavailable,
			Message: "The AI assistant is unavailable right now. Please try again.",
			TraceID: traceID,
		})
	case errors.Is(err, ErrEmptyCatalog), errors.Is(err, ErrQuestionCatalog):
		log.Printf("Catalog error: %v", err)
		c.JSON(http.StatusInternalServerError, APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Catalog is not loaded",
			TraceID: traceID,
		})
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
			TraceID: traceID,
		})
	default:
		log.Printf("Unknown error: %v", err)
		c.JSON(http.StatusInternalServerError, APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
			TraceID: traceID,
		})
	}
}
