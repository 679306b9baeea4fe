package utils

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// LoginUser is the authenticated user extracted from the request context.
type LoginUser struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Username string `json:"name"`
}

// GetUser reads the authenticated user from the gin context.
func GetUser(c *gin.Context) (*LoginUser, error) {
	currentUser, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("not authenticated")
	}

	var claims map[string]interface{}
	switch v := currentUser.(type) {
	case jwt.MapClaims:
		claims = make(map[string]interface{})
		for key, val := range v {
			claims[key] = val
		}
	case map[string]interface{}:
		claims = v
	case string:
		if err := json.Unmarshal([]byte(v), &claims); err != nil {
			return nil, fmt.Errorf("parse user claims: %v", err)
		}
	default:
		data, err := json.Marshal(currentUser)
		if err != nil {
			return nil, fmt.Errorf("marshal user claims: %v", err)
		}
		if err := json.Unmarshal(data, &claims); err != nil {
			return nil, fmt.Errorf("unmarshal user claims: %v", err)
		}
	}

	id, ok := claims["id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid user id")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid user role")
	}

	username, ok := claims["username"].(string)
	if !ok {
		if name, ok := claims["name"].(string); ok {
			username = name
		} else {
			return nil, fmt.Errorf("invalid username")
		}
	}

	return &LoginUser{
		ID:       id,
		Role:     role,
		Username: username,
	}, nil
}

// PaginatedResponse writes a paginated list envelope.
func PaginatedResponse(c *gin.Context, data interface{}, total int64, page int64, limit int64) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
			"pages": (total + limit - 1) / limit,
		},
	})
}

const randomChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns n random alphanumeric characters.
func RandomString(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// Fall back to a time-derived suffix; only used for display ids.
		fallback := fmt.Sprintf("%d", time.Now().UnixNano())
		for len(fallback) < n {
			fallback += fallback
		}
		return fallback[:n]
	}
	for i, b := range buf {
		buf[i] = randomChars[int(b)%len(randomChars)]
	}
	return string(buf)
}

// ParseDateParam parses a YYYY-MM-DD query value, defaulting to fallback on
// empty or malformed input.
func ParseDateParam(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return fallback
	}
	return t
}
