package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes plain with bcrypt at the given cost. The cost comes
// from configuration so tests can run with a cheap one.
func HashPassword(plain string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	return string(hash), err
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
