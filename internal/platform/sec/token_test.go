// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plinth-app/plinth/internal/platform/sec"
)

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService("test-secret-please-rotate", "plinth.app")
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RequiresSecret verifies construction fails without a secret.
*/
func TestTokenService_RequiresSecret(t *testing.T) {
	_, err := sec.NewTokenService("", "plinth.app")
	assert.Error(t, err)
}

/*
TestTokenService_GenerateAndVerify verifies the full issue/verify cycle
for both token types.
*/
func TestTokenService_GenerateAndVerify(t *testing.T) {
	service := newTestTokenService(t)

	testCases := []struct {
		name      string
		tokenType sec.TokenType
	}{
		{name: "access token", tokenType: sec.TokenTypeAccess},
		{name: "refresh token", tokenType: sec.TokenTypeRefresh},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			token, err := service.GenerateToken("user-123", testCase.tokenType, time.Hour)
			require.NoError(t, err)

			claims, err := service.VerifyToken(token, testCase.tokenType)
			require.NoError(t, err)

			assert.Equal(t, "user-123", claims.UserID)
			assert.Equal(t, "user-123", claims.Subject)
			assert.Equal(t, testCase.tokenType, claims.TokenType)
			assert.Equal(t, "plinth.app", claims.Issuer)
		})
	}
}

/*
TestTokenService_TypeDiscrimination verifies that a structurally valid
token of the wrong type is rejected — signature alone is not enough.
*/
func TestTokenService_TypeDiscrimination(t *testing.T) {
	service := newTestTokenService(t)

	refreshToken, err := service.GenerateToken("user-123", sec.TokenTypeRefresh, time.Hour)
	require.NoError(t, err)

	// 1. Refresh token is never accepted as an access token.
	_, err = service.VerifyToken(refreshToken, sec.TokenTypeAccess)
	assert.Error(t, err)
	_, err = service.VerifyAccessToken(refreshToken)
	assert.Error(t, err)

	// 2. Access token is never accepted as a refresh token.
	accessToken, err := service.GenerateToken("user-123", sec.TokenTypeAccess, time.Hour)
	require.NoError(t, err)
	_, err = service.VerifyToken(accessToken, sec.TokenTypeRefresh)
	assert.Error(t, err)
}

/*
TestTokenService_Expiry verifies tokens are rejected after their TTL.
*/
func TestTokenService_Expiry(t *testing.T) {
	service := newTestTokenService(t)

	// Issue a token that expired one second ago.
	expired, err := service.GenerateToken("user-123", sec.TokenTypeAccess, -time.Second)
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(expired)
	assert.Error(t, err)

	// A token with remaining lifetime still verifies.
	valid, err := service.GenerateToken("user-123", sec.TokenTypeAccess, time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(valid)
	assert.NoError(t, err)
}

/*
TestTokenService_WrongSecret verifies tokens signed with another secret
are rejected.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	service := newTestTokenService(t)
	other, err := sec.NewTokenService("completely-different-secret", "plinth.app")
	require.NoError(t, err)

	token, err := other.GenerateToken("user-123", sec.TokenTypeAccess, time.Hour)
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_Garbage verifies malformed strings are rejected.
*/
func TestTokenService_Garbage(t *testing.T) {
	service := newTestTokenService(t)

	for _, garbage := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := service.VerifyAccessToken(garbage)
		assert.Error(t, err)
	}
}
