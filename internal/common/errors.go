// Package common defines shared constants and sentinel errors used across
// TaskVault components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Account errors.
	ErrorEmailTaken         = errors.New("email already taken")
	ErrorValidation         = errors.New("validation error")
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Session errors (missing, forged, expired, or revoked token).
	ErrorUnauthenticated = errors.New("unauthenticated")

	// Token codec errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
