// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("correct horse battery", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordTimingSafe(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	ok, rehash, err := VerifyPasswordTimingSafe("password123", &hash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, rehash)

	ok, _, err = VerifyPasswordTimingSafe("password123", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordTimingSafe_Rehash(t *testing.T) {
	weak := defaultArgon
	weak.memory = 8 * 1024

	saved := defaultArgon
	defaultArgon = weak
	hash, err := HashPassword("password123")
	defaultArgon = saved
	require.NoError(t, err)

	ok, rehash, err := VerifyPasswordTimingSafe("password123", &hash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, rehash)
	assert.False(t, needsRehash(rehash))
}

func TestDecodeHash_Invalid(t *testing.T) {
	_, err := VerifyPassword("x", "not-a-hash")
	assert.Error(t, err)

	_, err = VerifyPassword("x", "$bcrypt$v=19$m=1,t=1,p=1$AA$AA")
	assert.Error(t, err)
}
