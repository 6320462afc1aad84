package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2idRoundTrip(t *testing.T) {
	h, err := NewHasher("")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmArgon2id, h.Algorithm())

	encoded, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	assert.True(t, h.Verify(encoded, "correct horse"))
	assert.False(t, h.Verify(encoded, "wrong horse"))
	assert.False(t, h.NeedsRehash(encoded))

	again, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, encoded, again, "salts must differ")
}

func TestSHA512Compatibility(t *testing.T) {
	// SHA-512("abc"), as written by earlier releases.
	const legacy = "DDAF35A193617ABACC417349AE20413112E6FA4E89A97EA20A9EEEE64B55D39A" +
		"2192992A274FC1A836BA3C23A3FEEBBD454D4423643CE80E2A9AC94FA54CA49F"

	h, err := NewHasher("argon2id")
	require.NoError(t, err)

	assert.True(t, h.Verify(legacy, "abc"))
	assert.True(t, h.Verify(strings.ToLower(legacy), "abc"))
	assert.False(t, h.Verify(legacy, "abd"))
	assert.True(t, h.NeedsRehash(legacy))

	sha, err := NewHasher("SHA512")
	require.NoError(t, err)
	encoded, err := sha.Hash("abc")
	require.NoError(t, err)
	assert.Equal(t, legacy, encoded)
	assert.False(t, sha.NeedsRehash(encoded))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	h, err := NewHasher("argon2id")
	require.NoError(t, err)

	for _, encoded := range []string{"", "plain", "$argon2id$v=19$broken", "$argon2id$v=19$m=1,t=1,p=1$!!$!!"} {
		assert.False(t, h.Verify(encoded, "pw"), encoded)
	}
}

func TestHashRejectsBadPasswords(t *testing.T) {
	h, err := NewHasher("argon2id")
	require.NoError(t, err)

	_, err = h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = h.Hash(strings.Repeat("x", maxPasswordLength+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestNewHasherUnknownAlgorithm(t *testing.T) {
	_, err := NewHasher("md5")
	assert.Error(t, err)
}
