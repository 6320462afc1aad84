package auth

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// sha512HexLength is the length of a hex-encoded SHA-512 digest.
const sha512HexLength = sha512.Size * 2

// hashSHA512 returns the unsalted, upper-case hex SHA-512 digest of password.
// This is the format of accounts created by earlier releases.
func hashSHA512(password string) string {
	sum := sha512.Sum512([]byte(password))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// isSHA512Hex reports whether encoded looks like a hex SHA-512 digest.
func isSHA512Hex(encoded string) bool {
	if len(encoded) != sha512HexLength {
		return false
	}
	_, err := hex.DecodeString(encoded)
	return err == nil
}

// verifySHA512 compares digests case-insensitively.
func verifySHA512(encoded, password string) bool {
	want := strings.ToUpper(encoded)
	got := hashSHA512(password)
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}
