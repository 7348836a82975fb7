// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the auth service's TokenProvider interface.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType discriminates access tokens from refresh tokens.
//
// # Why a claim?
//
// Both token kinds are signed with the same secret. Without an explicit
// type claim a long-lived refresh token could be replayed as an access
// token (and vice versa); verification always checks the expected type.
type TokenType string

const (
	// TokenTypeAccess identifies short-lived bearer tokens.
	TokenTypeAccess TokenType = "access"

	// TokenTypeRefresh identifies long-lived refresh tokens.
	TokenTypeRefresh TokenType = "refresh"
)

// AuthClaims represents the payload embedded inside a Plinth JWT.
//
// # Why custom claims?
//
// By embedding the UserID directly inside the JWT, the authentication
// middleware can reconstruct the active user context WITHOUT querying the
// database on every single API request.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID    string    `json:"uid"`
	TokenType TokenType `json:"typ"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService signing with the given secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: token signing secret must not be empty")
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// GenerateToken creates a new signed JWT of the given type for a user.
func (service *TokenService) GenerateToken(userID string, tokenType TokenType, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:    userID,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature, expiry, and type of a JWT string.
//
// A structurally valid token of the wrong [TokenType] is rejected: a
// refresh token is never accepted where an access token is expected.
func (service *TokenService) VerifyToken(tokenString string, expectedType TokenType) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("sec: token type mismatch: expected %q", expectedType)
	}

	return claims, nil
}

// VerifyAccessToken is the convenience form used by the authentication middleware.
func (service *TokenService) VerifyAccessToken(tokenString string) (*AuthClaims, error) {
	return service.VerifyToken(tokenString, TokenTypeAccess)
}
