package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes the plaintext with bcrypt using a per-call random
// salt. A cost of zero or less selects the library default.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
// A malformed stored hash counts as a mismatch rather than an error, and
// the comparison does not leak the mismatch position.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
