package jwt

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()
	version := uuid.NewString()

	token, err := GenerateToken(userID, "seller1", "Seller One", "seller",
		[]string{"manage_sales"}, version)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "seller1", claims.Username)
	assert.Equal(t, "seller", claims.Role)
	assert.Equal(t, version, claims.TokenVersion)
	assert.Equal(t, []string{"manage_sales"}, claims.Permissions)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateToken("")
	assert.Error(t, err)
}

func TestValidateTokenRejectsTamperedSignature(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "u", "U", "seller", nil, "v1")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ValidateToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
