package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plain text password. bcrypt embeds a fresh random
// salt, so two hashes of the same input differ.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword compares a stored hash with a plain text candidate.
func CheckPassword(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}
