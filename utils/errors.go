package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorKind classifies why an operation was rejected
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindCapacity   ErrorKind = "capacity"
	KindConflict   ErrorKind = "conflict"
	KindInternal   ErrorKind = "internal"
)

// ErrRecordNotFound is returned by repositories when a row does not exist
var ErrRecordNotFound = errors.New("record not found")

// ErrAlreadyAssigned is returned when a booking already occupies a room
var ErrAlreadyAssigned = errors.New("booking already assigned to a room")

// AppError represents a custom application error
type AppError struct {
	Kind       ErrorKind `json:"kind"`
	Code       int       `json:"code"`
	Message    string    `json:"message"`
	ResourceID string    `json:"resource_id,omitempty"`
	Limit      int       `json:"limit,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common error constructors
func NewValidationError(message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

func NewNotFoundError(resource, id string) *AppError {
	return &AppError{
		Kind:       KindNotFound,
		Code:       http.StatusNotFound,
		Message:    fmt.Sprintf("%s %s not found", resource, id),
		ResourceID: id,
	}
}

// NewCapacityError reports that a room of the given category cannot hold more than limit occupants
func NewCapacityError(category string, limit int) *AppError {
	return &AppError{
		Kind:       KindCapacity,
		Code:       http.StatusUnprocessableEntity,
		Message:    fmt.Sprintf("%s room holds at most %d occupants", category, limit),
		ResourceID: category,
		Limit:      limit,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Code:    http.StatusConflict,
		Message: message,
	}
}

func NewInternalError(message string) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// HandleError sends an appropriate HTTP response for an error
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		body := gin.H{"error": appErr.Message, "kind": appErr.Kind}
		if appErr.ResourceID != "" {
			body["resource_id"] = appErr.ResourceID
		}
		if appErr.Limit > 0 {
			body["limit"] = appErr.Limit
		}
		c.JSON(appErr.Code, body)
		return
	}

	Logger.WithFields(logrus.Fields{
		"error":  err.Error(),
		"method": c.Request.Method,
		"path":   c.FullPath(),
	}).Error("Unhandled error")

	// Default to internal server error
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "kind": KindInternal})
}

// HandleSuccess sends a success response
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// HandleCreated sends a 201 response
func HandleCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}
