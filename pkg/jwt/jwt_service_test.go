package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService()

	token := svc.GenerateTokenUser("user-123", "user")
	require.NotEmpty(t, token)

	userID, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.Equal(t, "user", role)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := NewJWTService()

	_, _, err := svc.GetUserIDByToken("not.a.token")
	assert.Error(t, err)
}
