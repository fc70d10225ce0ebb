package adapters

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone keeps digits only and drops leading zeros.
func NormalizePhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	return strings.TrimLeft(digits, "0")
}

// Hash returns the lowercase hex SHA-256 of value after normalization.
// Values that already look like a SHA-256 digest are returned unchanged.
func Hash(value string, normalize func(string) string) string {
	if isSHA256(value) {
		return value
	}
	sum := sha256.Sum256([]byte(normalize(value)))
	return hex.EncodeToString(sum[:])
}

// HashAll hashes every value, preserving order. Nil stays nil.
func HashAll(values []string, normalize func(string) string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Hash(v, normalize)
	}
	return out
}

func isSHA256(value string) bool {
	if len(value) != sha256.Size*2 {
		return false
	}
	for _, r := range value {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}
