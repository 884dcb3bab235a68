package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestTokenService creates a token service backed by a symmetric key.
func createTestTokenService(t *testing.T) TokenService {
	svc, err := NewTokenService(
		15*time.Minute,
		7*24*time.Hour,
		"tariff-vision-test",
		"tariff-vision-admins",
		false,
		"",
		"",
		"test-secret-key-for-jwt-signing-32-chars",
	)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name        string
		useRSAKeys  bool
		privateKey  string
		publicKey   string
		secretKey   string
		expectError bool
	}{
		{
			name:        "valid symmetric key configuration",
			useRSAKeys:  false,
			secretKey:   "test-secret-key-for-jwt-signing-32-chars",
			expectError: false,
		},
		{
			name:        "missing secret key",
			useRSAKeys:  false,
			secretKey:   "",
			expectError: true,
		},
		{
			name:        "rsa mode without key material",
			useRSAKeys:  true,
			privateKey:  "",
			publicKey:   "",
			expectError: true,
		},
		{
			name:        "rsa mode with malformed pem",
			useRSAKeys:  true,
			privateKey:  "not-a-pem-block",
			publicKey:   "not-a-pem-block",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewTokenService(
				15*time.Minute,
				7*24*time.Hour,
				"tariff-vision-test",
				"tariff-vision-admins",
				tt.useRSAKeys,
				tt.privateKey,
				tt.publicKey,
				tt.secretKey,
			)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestGenerateAdminTokens(t *testing.T) {
	svc := createTestTokenService(t)

	accessToken, refreshToken, err := svc.GenerateAdminTokens(42)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	accessClaims, err := svc.ValidateAdminToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), accessClaims.AdminID)
	assert.Equal(t, "access", accessClaims.TokenType)
	assert.NotEmpty(t, accessClaims.TokenID)
	assert.True(t, accessClaims.ExpiresAt.After(accessClaims.IssuedAt))

	refreshClaims, err := svc.ValidateAdminToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), refreshClaims.AdminID)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
	assert.NotEqual(t, accessClaims.TokenID, refreshClaims.TokenID)

	// Refresh tokens outlive access tokens.
	assert.True(t, refreshClaims.ExpiresAt.After(accessClaims.ExpiresAt))
}

func TestValidateAdminTokenRejectsGarbage(t *testing.T) {
	svc := createTestTokenService(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"not a jwt", "definitely-not-a-jwt"},
		{"truncated jwt", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateAdminToken(tt.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
			assert.Nil(t, claims)
		})
	}
}

func TestValidateAdminTokenWrongKey(t *testing.T) {
	svc := createTestTokenService(t)

	other, err := NewTokenService(
		15*time.Minute,
		7*24*time.Hour,
		"tariff-vision-test",
		"tariff-vision-admins",
		false,
		"",
		"",
		"a-completely-different-signing-key-here",
	)
	require.NoError(t, err)

	accessToken, _, err := other.GenerateAdminTokens(7)
	require.NoError(t, err)

	claims, err := svc.ValidateAdminToken(accessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.Nil(t, claims)
}

func TestValidateAdminTokenExpired(t *testing.T) {
	svc, err := NewTokenService(
		-1*time.Minute,
		-1*time.Minute,
		"tariff-vision-test",
		"tariff-vision-admins",
		false,
		"",
		"",
		"test-secret-key-for-jwt-signing-32-chars",
	)
	require.NoError(t, err)

	accessToken, _, err := svc.GenerateAdminTokens(3)
	require.NoError(t, err)

	claims, err := svc.ValidateAdminToken(accessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Nil(t, claims)
}

func TestRefreshAdminToken(t *testing.T) {
	svc := createTestTokenService(t)

	_, refreshToken, err := svc.GenerateAdminTokens(9)
	require.NoError(t, err)

	newAccess, newRefresh, err := svc.RefreshAdminToken(refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)

	claims, err := svc.ValidateAdminToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.AdminID)
	assert.Equal(t, "access", claims.TokenType)
}

func TestRefreshAdminTokenRejectsAccessToken(t *testing.T) {
	svc := createTestTokenService(t)

	accessToken, _, err := svc.GenerateAdminTokens(9)
	require.NoError(t, err)

	_, _, err = svc.RefreshAdminToken(accessToken)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a refresh token")
}
