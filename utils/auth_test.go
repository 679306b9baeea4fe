package utils

import (
	"os"
	"testing"

	"github.com/Auguzcht/NextGen-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	InitLogger()
	os.Exit(m.Run())
}

func TestVerifyPassword(t *testing.T) {
	t.Run("plain sha256 form", func(t *testing.T) {
		hashed := HashPassword("admin123")
		assert.True(t, VerifyPassword("admin123", hashed))
		assert.False(t, VerifyPassword("wrong", hashed))
	})

	t.Run("salted form", func(t *testing.T) {
		hashed := SimpleHash("admin123", "abcd1234")
		assert.True(t, VerifyPassword("admin123", hashed))
		assert.False(t, VerifyPassword("wrong", hashed))
	})

	t.Run("garbage hash", func(t *testing.T) {
		assert.False(t, VerifyPassword("admin123", "not-a-hash"))
	})
}

func TestGenerateAndParseToken(t *testing.T) {
	user := models.User{
		Username: "coordinator1",
		Role:     models.UserRoleCOORDINATOR,
	}

	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "coordinator1", claims["username"])
	assert.Equal(t, string(models.UserRoleCOORDINATOR), claims["role"])
}

func TestParseTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken(models.User{Username: "u", Role: models.UserRoleSTAFF})
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(models.UserRoleSUPER_ADMIN, "users", "approve"))
	assert.True(t, HasPermission(models.UserRoleSUPER_ADMIN, "assignments", "sync"))
	assert.True(t, HasPermission(models.UserRoleCOORDINATOR, "assignments", "create"))
	assert.False(t, HasPermission(models.UserRoleCOORDINATOR, "assignments", "sync"))
	assert.False(t, HasPermission(models.UserRoleSTAFF, "children", "delete"))
	assert.False(t, HasPermission(models.UserRole("UNKNOWN"), "children", "read"))
	assert.False(t, HasPermission(models.UserRoleSTAFF, "nonexistent", "read"))
}
