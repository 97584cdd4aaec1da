package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akazarov/authgate/internal/common"
	"github.com/akazarov/authgate/internal/config"
	"github.com/akazarov/authgate/internal/credentials"
	"github.com/akazarov/authgate/internal/directory"
	"github.com/akazarov/authgate/internal/kvstore"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := kvstore.NewMemoryStore()
	dir := directory.NewKVDirectory(store)
	creds := credentials.NewStore(store, credentials.BcryptHasher{Cost: bcrypt.MinCost})
	cfg := &config.Config{
		SecretKey:           "k",
		AccessTokenValidity: time.Hour,
		// Zero latency keeps the suite fast; the window itself is
		// exercised in TestLogin_SimulatedLatency.
	}
	return NewService(dir, creds, cfg)
}

func TestLogin_Success(t *testing.T) {
	s := newTestService(t)

	sess, err := s.Login(context.Background(), "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", sess.User.Email)
	assert.Equal(t, directory.RoleAdmin, sess.User.Role)
	assert.NotEmpty(t, sess.AccessToken)
	assert.NotEmpty(t, sess.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestService(t)

	_, err := s.Login(context.Background(), "admin@example.com", "wrong")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	s := newTestService(t)

	_, err := s.Login(context.Background(), "ghost@example.com", "admin123")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_TokensUniquePerCall(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	first, err := s.Login(ctx, "user@example.com", "user123")
	require.NoError(t, err)
	second, err := s.Login(ctx, "user@example.com", "user123")
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	// Same user both times: the session embeds a snapshot of the record.
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestRegister_Success(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	sess, err := s.Register(ctx, "New User", "new@example.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, directory.RoleUser, sess.User.Role)
	assert.NotEmpty(t, sess.AccessToken)
	assert.NotEmpty(t, sess.RefreshToken)

	// The new credential works for a subsequent login, and the returned
	// user id is stable across calls.
	again, err := s.Login(ctx, "new@example.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, again.User.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "Impostor", "admin@example.com", "whatever")
	require.ErrorIs(t, err, common.ErrDuplicateEmail)

	_, err = s.Register(ctx, "First", "taken@example.com", "pw")
	require.NoError(t, err)
	_, err = s.Register(ctx, "Second", "taken@example.com", "pw")
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestListUsers_InsertionOrder(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "Third", "third@example.com", "pw")
	require.NoError(t, err)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "admin@example.com", users[0].Email)
	assert.Equal(t, "user@example.com", users[1].Email)
	assert.Equal(t, "third@example.com", users[2].Email)
}

func TestHealthCheck(t *testing.T) {
	s := newTestService(t)

	h, err := s.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.True(t, h.OK)
	assert.NotEmpty(t, h.Message)
}

func TestLogin_SimulatedLatency(t *testing.T) {
	s := newTestService(t)
	s.latency = 50 * time.Millisecond

	start := time.Now()
	_, err := s.Login(context.Background(), "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestLogin_LatencyHonorsContext(t *testing.T) {
	s := newTestService(t)
	s.latency = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.Login(ctx, "admin@example.com", "admin123")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
