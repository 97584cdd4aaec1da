package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessToken_ProducesDistinctOpaqueStrings(t *testing.T) {
	secret := []byte("k")

	a, err := newAccessToken("u1", secret, time.Hour)
	require.NoError(t, err)
	b, err := newAccessToken("u2", secret, time.Hour)
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestNewRefreshToken_UniquePerCall(t *testing.T) {
	a, err := newRefreshToken()
	require.NoError(t, err)
	b, err := newRefreshToken()
	require.NoError(t, err)

	assert.Len(t, a, 64) // 32 random bytes, hex encoded
	assert.NotEqual(t, a, b)
}
