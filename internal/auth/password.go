package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted bcrypt digest; the plaintext is never
// stored anywhere.
func HashPassword(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	return string(b), err
}

func VerifyPassword(plain, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
