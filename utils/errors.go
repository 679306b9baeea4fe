package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApiError is an error carrying an HTTP status and machine-readable code.
type ApiError struct {
	StatusCode int
	Message    string
	ErrorCode  string
}

// Error implements the error interface.
func (e *ApiError) Error() string {
	return e.Message
}

// NewApiError creates an ApiError.
func NewApiError(message string, statusCode int, errorCode string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  errorCode,
	}
}

// CreateNotFoundError creates a resource-not-found error.
func CreateNotFoundError(resource string) *ApiError {
	return NewApiError(resource+" not found", http.StatusNotFound, "RESOURCE_NOT_FOUND")
}

// CreateUnauthorizedError creates an unauthorized error.
func CreateUnauthorizedError() *ApiError {
	return NewApiError("unauthorized", http.StatusUnauthorized, "UNAUTHORIZED")
}

// CreateForbiddenError creates an insufficient-permission error.
func CreateForbiddenError() *ApiError {
	return NewApiError("insufficient permission", http.StatusForbidden, "FORBIDDEN")
}

// CreateBadRequestError creates a bad-request error.
func CreateBadRequestError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, "BAD_REQUEST")
}

// HandleError logs err and writes the matching error response.
func HandleError(c *gin.Context, err error) {
	if c == nil {
		return
	}
	errorMessage := err.Error()

	LogError(err, map[string]interface{}{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	}, errorMessage)

	if apiErr, ok := err.(*ApiError); ok {
		response := gin.H{"error": apiErr.Message}
		if apiErr.ErrorCode != "" {
			response["code"] = apiErr.ErrorCode
		}
		c.JSON(apiErr.StatusCode, response)
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.StatusCode, gin.H{
			"success": false,
			"error":   appErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   errorMessage,
		"success": false,
	})
}

// SuccessResponse writes the standard success envelope.
func SuccessResponse(c *gin.Context, data interface{}, message string, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := gin.H{"success": true}
	if data != nil {
		response["data"] = data
	}
	if message != "" {
		response["message"] = message
	}

	c.JSON(code, response)
}

// ErrorResponse writes the standard error envelope.
func ErrorResponse(c *gin.Context, message string, statusCode int) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}

// AppError wraps a lower-level error with a user-facing message.
type AppError struct {
	Message    string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(message string, statusCode int, err error) *AppError {
	return &AppError{
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}
