package secrets

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretServiceIssue(t *testing.T) {
	service := NewSecretService()
	sixDigits := regexp.MustCompile(`^\d{6}$`)

	for i := 0; i < 50; i++ {
		secret, err := service.Issue()
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, secret, "secret should always be exactly six digits")
	}
}

func TestSecretServiceHashAndVerify(t *testing.T) {
	service := NewSecretService()

	secret, err := service.Issue()
	require.NoError(t, err)

	hash, err := service.Hash(secret)
	require.NoError(t, err)
	assert.NotEqual(t, secret, hash, "hash must not contain the plaintext secret")

	t.Run("correct secret verifies", func(t *testing.T) {
		assert.True(t, service.Verify(secret, hash))
	})

	t.Run("wrong secret fails", func(t *testing.T) {
		assert.False(t, service.Verify("000000", hash))
	})

	t.Run("hashes are salted", func(t *testing.T) {
		otherHash, err := service.Hash(secret)
		require.NoError(t, err)
		assert.NotEqual(t, hash, otherHash)
		assert.True(t, service.Verify(secret, otherHash))
	})
}
