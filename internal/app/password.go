package app

import "golang.org/x/crypto/bcrypt"

// HashPassword computes a salted one-way hash of the password. The salt comes
// from bcrypt's internal crypto/rand source; the cost factor is the library
// default.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash. The
// comparison is constant-time. A malformed or foreign-format hash yields
// false, never an error.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
