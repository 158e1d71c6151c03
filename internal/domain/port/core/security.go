package core

import "time"

// PasswordHasher hashes and verifies account passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenClaims is what a verified access token asserts
type TokenClaims struct {
	Subject   string // account mobile
	Role      string
	ExpiresAt time.Time
}

// TokenService issues and verifies access tokens
type TokenService interface {
	Issue(subject, role string) (token string, expiresAt time.Time, err error)
	Verify(token string) (*TokenClaims, error)
}
