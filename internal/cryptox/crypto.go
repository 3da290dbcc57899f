// Package cryptox holds the password hashing used by the auth server.
//
// Passwords are stretched with Argon2id and a per-user random salt; only the
// salt and the derived key are stored.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/peerwallet/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 16
	KeySize  = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// DeriveKey stretches password with salt using Argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeySize)
}

// HashPassword generates a fresh salt and returns it together with the
// derived key.
func HashPassword(password []byte) (salt []byte, hash []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	return salt, DeriveKey(password, salt)
}

// VerifyPassword reports whether password matches hash under salt. The
// comparison runs in constant time.
func VerifyPassword(password []byte, salt []byte, hash []byte) bool {
	candidate := DeriveKey(password, salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}
