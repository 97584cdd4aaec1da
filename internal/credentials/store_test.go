package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akazarov/authgate/internal/kvstore"
)

func newStore() *Store {
	return NewStore(kvstore.NewMemoryStore(), BcryptHasher{Cost: bcrypt.MinCost})
}

func TestVerify_SeededAccounts(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	ok, err := s.Verify(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Verify(ctx, "user@example.com", "user123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_WrongPassword(t *testing.T) {
	s := newStore()

	ok, err := s.Verify(context.Background(), "admin@example.com", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_UnknownEmailIsFalseNotError(t *testing.T) {
	s := newStore()

	ok, err := s.Verify(context.Background(), "nobody@example.com", "whatever")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetThenVerify(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "new@example.com", "s3cret"))

	ok, err := s.Verify(ctx, "new@example.com", "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Verify(ctx, "new@example.com", "not-it")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSet_OverwritesRecord(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "e@example.com", "first"))
	require.NoError(t, s.Set(ctx, "e@example.com", "second"))

	ok, err := s.Verify(ctx, "e@example.com", "first")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Verify(ctx, "e@example.com", "second")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHasher_HashesAreOneWay(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)
	assert.True(t, h.Compare(hash, "password"))
	assert.False(t, h.Compare(hash, "Password"))
}
