// Package response defines consistent HTTP response structures.
// All API responses should use these types for consistency.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hattournament/src/core/domain"
)

// Success represents a successful response with data.
type Success struct {
	Data any `json:"data"`
}

// Error represents an error response.
type Error struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Field is the field that caused the error (for validation errors)
	Field string `json:"field,omitempty"`

	// RequestID is the request ID for debugging
	RequestID string `json:"request_id,omitempty"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Success{Data: data})
}

// Created sends a 201 response with the created resource.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Success{Data: data})
}

// NoContent sends a 204 response with no body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response.
func BadRequest(c *gin.Context, message string, requestID string) {
	c.JSON(http.StatusBadRequest, Error{
		Error: ErrorDetail{
			Code:      "BAD_REQUEST",
			Message:   message,
			RequestID: requestID,
		},
	})
}

// ValidationError sends a 400 response for validation failures.
func ValidationError(c *gin.Context, field, message, requestID string) {
	c.JSON(http.StatusBadRequest, Error{
		Error: ErrorDetail{
			Code:      "VALIDATION_ERROR",
			Message:   message,
			Field:     field,
			RequestID: requestID,
		},
	})
}

// Unauthorized sends a 401 response.
func Unauthorized(c *gin.Context, message, requestID string) {
	c.JSON(http.StatusUnauthorized, Error{
		Error: ErrorDetail{
			Code:      "UNAUTHORIZED",
			Message:   message,
			RequestID: requestID,
		},
	})
}

// InternalError sends a 500 response.
func InternalError(c *gin.Context, requestID string) {
	c.JSON(http.StatusInternalServerError, Error{
		Error: ErrorDetail{
			Code:      "INTERNAL_ERROR",
			Message:   "An unexpected error occurred",
			RequestID: requestID,
		},
	})
}

// statusByKind maps domain error kinds to HTTP status codes.
var statusByKind = map[string]int{
	domain.KindNotFound:            http.StatusNotFound,
	domain.KindAlreadyExists:       http.StatusConflict,
	domain.KindConflict:            http.StatusConflict,
	domain.KindInvalidGameSize:     http.StatusUnprocessableEntity,
	domain.KindParticipantMismatch: http.StatusUnprocessableEntity,
	domain.KindInsufficientWords:   http.StatusUnprocessableEntity,
	domain.KindValidation:          http.StatusBadRequest,
	domain.KindUnauthorized:        http.StatusUnauthorized,
	domain.KindForbidden:           http.StatusForbidden,
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	if status, ok := statusByKind[domain.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FromDomainError converts a domain error to an appropriate HTTP response.
// Internal errors never leak their message.
func FromDomainError(c *gin.Context, err error, requestID string) {
	kind := domain.KindOf(err)
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		InternalError(c, requestID)
		return
	}

	detail := ErrorDetail{Code: kind, Message: err.Error(), RequestID: requestID}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) && domainErr.Field != "" {
		detail.Field = domainErr.Field
		detail.Message = domainErr.Message
	}
	c.JSON(status, Error{Error: detail})
}
