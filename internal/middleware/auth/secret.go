package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashSecret creates a bcrypt hash of a refresh-token secret so tokens are
// never stored in plaintext.
func HashSecret(secret string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifySecret checks a presented secret against its stored bcrypt hash.
func VerifySecret(hashedSecret, providedSecret string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedSecret), []byte(providedSecret))
}
