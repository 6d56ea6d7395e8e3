package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"math/big"

	"golang.org/x/crypto/argon2"
)

const saltLen = 16

// HashPassword derives an argon2id hash from the password and salt.
func HashPassword(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
}

// NewSalt returns a fresh random salt for password hashing.
func NewSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// VerifyPassword reports whether the password matches the stored hash,
// comparing in constant time.
func VerifyPassword(password string, salt, hash []byte) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}

// NewResetCode generates a short numeric code for password recovery. Only a
// hash of the code is ever stored.
func NewResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// HashResetCode returns the storage form of a reset code.
func HashResetCode(code string) []byte {
	sum := sha256.Sum256([]byte(code))
	return sum[:]
}
