// Package auth implements the stateless verification and account-creation
// logic: it composes the user directory with the credential store and issues
// opaque session tokens. It holds no mutable state of its own.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akazarov/authgate/internal/common"
	"github.com/akazarov/authgate/internal/config"
	"github.com/akazarov/authgate/internal/credentials"
	"github.com/akazarov/authgate/internal/directory"
)

// Session is the proof of a successful login or registration: the user
// record as of issuance time (a snapshot, not a live reference) plus the
// freshly minted token pair.
type Session struct {
	User         directory.User
	AccessToken  string
	RefreshToken string
}

// Health is the result of a liveness probe.
type Health struct {
	OK      bool
	Message string
}

// Service exposes the logical RPC surface: login, register, listUsers,
// healthCheck. Calls are bound in-process; the latency window simulates the
// I/O a real transport would add.
//
// Concurrent Login/Register calls are not serialized against each other.
// Two registrations racing on the same email are resolved last-write-wins
// by the duplicate check; this is a documented weakness, not a contract.
type Service struct {
	dir   directory.Directory
	creds *credentials.Store

	secretKey           []byte
	accessTokenValidity time.Duration
	latency             time.Duration
	healthLatency       time.Duration
}

func NewService(dir directory.Directory, creds *credentials.Store, cfg *config.Config) *Service {
	return &Service{
		dir:                 dir,
		creds:               creds,
		secretKey:           []byte(cfg.SecretKey),
		accessTokenValidity: cfg.AccessTokenValidity,
		latency:             cfg.SimulatedLatency,
		healthLatency:       cfg.HealthCheckLatency,
	}
}

// wait blocks for the simulated latency window, or until ctx is done.
func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) issueSession(user *directory.User) (*Session, error) {
	accessToken, err := newAccessToken(user.ID, s.secretKey, s.accessTokenValidity)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	refreshToken, err := newRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("error generating refresh token: %w", err)
	}

	return &Session{User: *user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Login verifies the credential and returns a fresh Session. A missing user
// and a wrong password are indistinguishable to the caller: both are
// common.ErrInvalidCredentials. No side effect on the stores.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if err := s.wait(ctx, s.latency); err != nil {
		return nil, err
	}

	user, err := s.dir.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	ok, err := s.creds.Verify(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("error verifying credentials: %w", err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// Register creates the user (always role "user"), stores the hashed
// credential, and issues a Session exactly as Login would. Fails with
// common.ErrDuplicateEmail when the email is already registered.
func (s *Service) Register(ctx context.Context, name, email, password string) (*Session, error) {
	if err := s.wait(ctx, s.latency); err != nil {
		return nil, err
	}

	user, err := s.dir.Create(ctx, name, email)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	if err := s.creds.Set(ctx, email, password); err != nil {
		return nil, fmt.Errorf("error storing credentials: %w", err)
	}

	return s.issueSession(user)
}

// ListUsers returns every registered user in insertion order. Access control
// lives with the caller: the admin-only gating of this operation is a route
// decision, not a service one.
func (s *Service) ListUsers(ctx context.Context) ([]directory.User, error) {
	if err := s.wait(ctx, s.latency); err != nil {
		return nil, err
	}
	return s.dir.List(ctx)
}

// HealthCheck reports liveness of the service.
func (s *Service) HealthCheck(ctx context.Context) (*Health, error) {
	if err := s.wait(ctx, s.healthLatency); err != nil {
		return nil, err
	}
	return &Health{OK: true, Message: "API works"}, nil
}
