// Package hash implements salted password hashing for stored credentials.
//
// The stored format is base64(salt) + ":" + base64(HMAC-SHA-512(password)),
// where the salt doubles as the HMAC key. Verification is constant-time.
package hash

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
)

const saltSize = 64

// Password hashes plain with a fresh random salt. Two calls with the same
// input produce different stored strings.
func Password(plain string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("hash: salt: %w", err)
	}

	mac := digest(salt, plain)
	return base64.StdEncoding.EncodeToString(salt) + ":" + base64.StdEncoding.EncodeToString(mac), nil
}

// Verify reports whether plain matches the stored salt:digest string.
// Malformed stored values verify as false rather than erroring.
func Verify(plain, stored string) bool {
	saltPart, macPart, ok := strings.Cut(stored, ":")
	if !ok {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(saltPart)
	if err != nil {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(macPart)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(digest(salt, plain), want) == 1
}

func digest(salt []byte, plain string) []byte {
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(plain))
	return mac.Sum(nil)
}
