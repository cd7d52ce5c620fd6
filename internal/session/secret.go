package session

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrNoSecret = errors.New("session: no admin secret configured")

// Secret is the single shared admin password.
type Secret struct {
	plain []byte
	hash  []byte
}

// NewSecret prefers a bcrypt hash when one is given.
func NewSecret(password, hash string) (*Secret, error) {
	switch {
	case hash != "":
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, err
		}
		return &Secret{hash: []byte(hash)}, nil
	case password != "":
		return &Secret{plain: []byte(password)}, nil
	}
	return nil, ErrNoSecret
}

// Matches reports whether candidate equals the secret.
func (s *Secret) Matches(candidate string) bool {
	if s == nil {
		return false
	}
	if s.hash != nil {
		return bcrypt.CompareHashAndPassword(s.hash, []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare(s.plain, []byte(candidate)) == 1
}
