package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/Auguzcht/NextGen-sub001/config"
	"github.com/Auguzcht/NextGen-sub001/models"

	"github.com/dgrijalva/jwt-go"
)

var jwtSecret = []byte(config.LoadConfig().JWTKey)

// HashPassword hashes a password with sha256.
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// SimpleHash is the salted sha256 form (sha256$salt$hex).
func SimpleHash(password string, salt string) string {
	if salt == "" {
		salt = "69dc6ee0"
	}
	hash := sha256.Sum256([]byte(password + salt))
	return fmt.Sprintf("sha256$%s$%s", salt, hex.EncodeToString(hash[:]))
}

// VerifyPassword checks a password against the stored hash, accepting both
// the plain sha256 form and the salted sha256$salt$hex form.
func VerifyPassword(password string, hashedPassword string) bool {
	if HashPassword(password) == hashedPassword {
		return true
	}

	parts := strings.Split(hashedPassword, "$")
	if len(parts) == 3 && parts[0] == "sha256" {
		salt := parts[1]
		hashParts := strings.Split(SimpleHash(password, salt), "$")
		if len(hashParts) == 3 && hashParts[2] == parts[2] {
			return true
		}
	}

	return false
}

// GenerateToken issues a signed JWT for a user.
func GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":       user.ID.Hex(),
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(time.Hour * 24 * 30).Unix(), // 30 days
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		Logger.Error().Err(err).Msg("token signing failed")
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates a JWT and returns its claims.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// rolePermissions maps role -> resource -> allowed actions.
var rolePermissions = map[models.UserRole]map[string][]string{
	models.UserRoleSUPER_ADMIN: {
		"children":    {"read", "create", "update", "delete"},
		"guardians":   {"read", "create", "update", "delete"},
		"attendance":  {"read", "create", "update"},
		"staff":       {"read", "create", "update", "delete"},
		"services":    {"read", "update"},
		"assignments": {"read", "create", "delete", "sync"},
		"dashboard":   {"read"},
		"files":       {"read", "create"},
		"users":       {"read", "approve", "delete"},
	},
	models.UserRoleCOORDINATOR: {
		"children":    {"read", "create", "update"},
		"guardians":   {"read", "create", "update"},
		"attendance":  {"read", "create", "update"},
		"staff":       {"read", "create", "update"},
		"services":    {"read"},
		"assignments": {"read", "create", "delete"},
		"dashboard":   {"read"},
		"files":       {"read", "create"},
	},
	models.UserRoleSTAFF: {
		"children":    {"read"},
		"guardians":   {"read"},
		"attendance":  {"read", "create"},
		"services":    {"read"},
		"assignments": {"read"},
		"dashboard":   {"read"},
	},
}

// HasPermission reports whether a role may perform action on resource.
func HasPermission(role models.UserRole, resource string, action string) bool {
	resources, ok := rolePermissions[role]
	if !ok {
		return false
	}
	actions, ok := resources[resource]
	if !ok {
		return false
	}
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
