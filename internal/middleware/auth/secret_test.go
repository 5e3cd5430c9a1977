package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifySecret(t *testing.T) {
	hash, err := HashSecret("my-refresh-secret")
	require.NoError(t, err)
	assert.NotEqual(t, "my-refresh-secret", hash)

	assert.NoError(t, VerifySecret(hash, "my-refresh-secret"))
	assert.Error(t, VerifySecret(hash, "wrong-secret"))
}

func TestHashSecret_UniquePerCall(t *testing.T) {
	h1, err := HashSecret("same-secret")
	require.NoError(t, err)
	h2, err := HashSecret("same-secret")
	require.NoError(t, err)

	// bcrypt salts every hash
	assert.NotEqual(t, h1, h2)
}
