package encryption

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	svc, err := NewService(strings.Repeat("k", 32))
	require.NoError(t, err)

	ciphertext, err := svc.Encrypt("shpat_super_secret_token")
	require.NoError(t, err)
	assert.NotEqual(t, "shpat_super_secret_token", ciphertext)

	plaintext, err := svc.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "shpat_super_secret_token", plaintext)
}

func TestHexKeyIsAccepted(t *testing.T) {
	svc, err := NewService(strings.Repeat("ab", 32))
	require.NoError(t, err)

	ciphertext, err := svc.Encrypt("secret")
	require.NoError(t, err)
	plaintext, err := svc.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "secret", plaintext)
}

func TestShortKeyIsRejected(t *testing.T) {
	_, err := NewService("too-short")
	assert.Error(t, err)
}

func TestEmptyStringsPassThrough(t *testing.T) {
	svc, err := NewService(strings.Repeat("k", 32))
	require.NoError(t, err)

	ciphertext, err := svc.Encrypt("")
	require.NoError(t, err)
	assert.Empty(t, ciphertext)

	plaintext, err := svc.Decrypt("")
	require.NoError(t, err)
	assert.Empty(t, plaintext)
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	svc, err := NewService(strings.Repeat("k", 32))
	require.NoError(t, err)

	_, err = svc.Decrypt("bm90LWEtcmVhbC1jaXBoZXJ0ZXh0")
	assert.Error(t, err)
}

func TestEncryptionIsNotDeterministic(t *testing.T) {
	svc, err := NewService(strings.Repeat("k", 32))
	require.NoError(t, err)

	a, err := svc.Encrypt("secret")
	require.NoError(t, err)
	b, err := svc.Encrypt("secret")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
