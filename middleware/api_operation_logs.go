package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Auguzcht/NextGen-sub001/models"
	"github.com/Auguzcht/NextGen-sub001/repository"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/gin-gonic/gin"
)

// Mutating methods are audited.
var loggedMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// High-volume or unauthenticated paths excluded from the audit log.
var excludedPaths = map[string]bool{
	"/api/health":            true,
	"/api/db-status":         true,
	"/api/auth/login":        true,
	"/api/webhooks/bookings": true,
}

var sensitiveFields = []string{"password", "token", "secret", "fileData"}

// OperationLoggerMiddleware persists an audit record for mutating calls.
func OperationLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !shouldLogOperation(c) {
			c.Next()
			return
		}

		startTime := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		blw := &bodyLogWriter{
			body:           bytes.NewBufferString(""),
			ResponseWriter: c.Writer,
		}
		c.Writer = blw

		var requestBody interface{}
		if c.Request.Body != nil {
			requestBodyBytes, err := io.ReadAll(c.Request.Body)
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBodyBytes))
				if strings.Contains(c.Request.Header.Get("Content-Type"), "application/json") {
					if err := json.Unmarshal(requestBodyBytes, &requestBody); err != nil {
						requestBody = string(requestBodyBytes)
					}
				} else {
					requestBody = string(requestBodyBytes)
				}
			}
		}

		c.Next()

		responseTime := time.Since(startTime).Milliseconds()

		var responseData interface{}
		if strings.Contains(c.Writer.Header().Get("Content-Type"), "application/json") {
			if err := json.Unmarshal(blw.body.Bytes(), &responseData); err != nil {
				responseData = blw.body.String()
			}
		} else {
			responseData = blw.body.String()
		}

		var errorMessage string
		if len(c.Errors) > 0 {
			errorMessage = c.Errors.String()
		}

		operatorID, operatorName, operatorRole := extractOperator(c)
		statusCode := c.Writer.Status()

		logEntry := models.OperationLog{
			Method:        method,
			Path:          path,
			OperatorID:    operatorID,
			OperatorName:  operatorName,
			OperatorRole:  operatorRole,
			RequestBody:   sanitizeData(requestBody),
			ResponseData:  sanitizeData(responseData),
			StatusCode:    statusCode,
			Success:       statusCode < 400,
			ErrorMessage:  errorMessage,
			OperationTime: startTime,
			ResponseTime:  responseTime,
			IPAddress:     c.ClientIP(),
			UserAgent:     c.Request.UserAgent(),
		}

		// Audit writes must never fail the request.
		go func() {
			coll := repository.Collection(repository.OperationLogsCollection)
			if _, err := coll.InsertOne(repository.GetContext(), logEntry); err != nil {
				utils.Logger.Error().Err(err).Msg("operation log write failed")
			}
		}()
	}
}

// shouldLogOperation filters which requests get audit records.
func shouldLogOperation(c *gin.Context) bool {
	if !loggedMethods[c.Request.Method] {
		return false
	}
	return !excludedPaths[c.Request.URL.Path]
}

// extractOperator reads the authenticated user, tolerating missing auth.
func extractOperator(c *gin.Context) (id, name, role string) {
	user, err := utils.GetUser(c)
	if err != nil {
		return "", "anonymous", ""
	}
	return user.ID, user.Username, user.Role
}

// sanitizeData blanks sensitive fields in logged payloads.
func sanitizeData(data interface{}) interface{} {
	m, ok := data.(map[string]interface{})
	if !ok {
		return data
	}

	cleaned := make(map[string]interface{}, len(m))
	for k, v := range m {
		if isSensitiveField(k) {
			cleaned[k] = "******"
			continue
		}
		if nested, ok := v.(map[string]interface{}); ok {
			cleaned[k] = sanitizeData(nested)
			continue
		}
		cleaned[k] = v
	}
	return cleaned
}

func isSensitiveField(name string) bool {
	lower := strings.ToLower(name)
	for _, f := range sensitiveFields {
		if strings.Contains(lower, strings.ToLower(f)) {
			return true
		}
	}
	return false
}
