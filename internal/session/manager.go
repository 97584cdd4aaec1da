// Package session owns the single current-session state machine: it is the
// only component holding mutable process-wide auth state. The session is
// persisted to the kvstore so it survives restarts, and every transition is
// broadcast to subscribers.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/akazarov/authgate/internal/auth"
	"github.com/akazarov/authgate/internal/common"
	"github.com/akazarov/authgate/internal/directory"
	"github.com/akazarov/authgate/internal/kvstore"
	"github.com/akazarov/authgate/internal/logging"
)

// Persisted snapshot keys. SessionManager is their only writer.
const (
	authUserKey     = "auth_user"
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// Status is the coarse position in the session state machine.
type Status int

const (
	StatusInitializing Status = iota
	StatusAnonymous
	StatusAuthenticated
)

// State is the observable triple broadcast to subscribers on every
// transition. User is nil unless IsAuthenticated; IsLoading is true only
// while initializing and while a login/register call is in flight.
type State struct {
	User            *directory.User
	IsAuthenticated bool
	IsLoading       bool
}

// Authenticator is the slice of the auth service the manager needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*auth.Session, error)
	Register(ctx context.Context, name, email, password string) (*auth.Session, error)
}

// Manager drives the Initializing → {Anonymous, Authenticated} machine.
//
// Login/Register delegate to the Authenticator without holding the lock, so
// overlapping calls are tolerated but not arbitrated: whichever finishes
// last owns the persisted snapshot.
type Manager struct {
	auth   Authenticator
	store  kvstore.Store
	logger logging.Logger

	mu       sync.Mutex
	status   Status
	user     *directory.User
	inflight int

	subs    map[int]func(State)
	nextSub int
}

func NewManager(a Authenticator, store kvstore.Store, logger logging.Logger) *Manager {
	return &Manager{
		auth:   a,
		store:  store,
		logger: logger,
		status: StatusInitializing,
		subs:   make(map[int]func(State)),
	}
}

// Current returns a snapshot of the observable state.
func (m *Manager) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

func (m *Manager) stateLocked() State {
	return State{
		User:            m.user,
		IsAuthenticated: m.status == StatusAuthenticated,
		IsLoading:       m.status == StatusInitializing || m.inflight > 0,
	}
}

// Subscribe registers fn to be called on every state transition and returns
// the function that removes the subscription. fn is invoked outside the
// manager's lock and must not block for long.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// notifyLocked snapshots the state and subscriber list; the caller must hold
// the lock and invoke the returned closure after releasing it.
func (m *Manager) notifyLocked() func() {
	state := m.stateLocked()
	fns := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	return func() {
		for _, fn := range fns {
			fn(state)
		}
	}
}

// Init attempts to restore the persisted session and settles the machine
// into Authenticated or Anonymous. Restoration requires both a stored user
// record and a stored access token; the token itself is not re-validated.
// Every failure is swallowed: it is logged and treated as "no session".
func (m *Manager) Init(ctx context.Context) {
	user := m.restore(ctx)

	m.mu.Lock()
	m.user = user
	if user != nil {
		m.status = StatusAuthenticated
	} else {
		m.status = StatusAnonymous
	}
	notify := m.notifyLocked()
	m.mu.Unlock()
	notify()
}

func (m *Manager) restore(ctx context.Context) *directory.User {
	rawUser, err := m.store.Get(ctx, authUserKey)
	if err != nil {
		m.logger.Warn(ctx, common.ErrSessionRestore.Error(), "error", err)
		return nil
	}
	token, err := m.store.Get(ctx, accessTokenKey)
	if err != nil {
		m.logger.Warn(ctx, common.ErrSessionRestore.Error(), "error", err)
		return nil
	}
	if len(rawUser) == 0 || len(token) == 0 {
		return nil
	}

	var user directory.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		m.logger.Warn(ctx, common.ErrSessionRestore.Error(), "error", err)
		return nil
	}
	return &user
}

// Login authenticates and transitions to Authenticated on success. On
// failure the machine stays Anonymous and the auth error is returned
// verbatim for the caller to display.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.beginCall()
	sess, err := m.auth.Login(ctx, email, password)
	if err != nil {
		m.endCall()
		return err
	}
	return m.completeAuth(ctx, sess)
}

// Register creates the account and transitions to Authenticated on success,
// with the same failure behavior as Login.
func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	m.beginCall()
	sess, err := m.auth.Register(ctx, name, email, password)
	if err != nil {
		m.endCall()
		return err
	}
	return m.completeAuth(ctx, sess)
}

// Logout clears the persisted snapshot and transitions to Anonymous. It
// cannot fail: storage errors during cleanup are logged and ignored.
func (m *Manager) Logout(ctx context.Context) {
	for _, key := range []string{authUserKey, accessTokenKey, refreshTokenKey} {
		if err := m.store.Delete(ctx, key); err != nil {
			m.logger.Error(ctx, "failed to clear session snapshot", "key", key, "error", err)
		}
	}

	m.mu.Lock()
	m.user = nil
	m.status = StatusAnonymous
	notify := m.notifyLocked()
	m.mu.Unlock()
	notify()
}

func (m *Manager) beginCall() {
	m.mu.Lock()
	m.inflight++
	notify := m.notifyLocked()
	m.mu.Unlock()
	notify()
}

func (m *Manager) endCall() {
	m.mu.Lock()
	m.inflight--
	notify := m.notifyLocked()
	m.mu.Unlock()
	notify()
}

// completeAuth persists the session snapshot and transitions to
// Authenticated. If persisting fails the machine stays where it was and the
// error propagates; the snapshot writes are individual last-write-wins
// records, so a partial write is possible and accepted.
func (m *Manager) completeAuth(ctx context.Context, sess *auth.Session) error {
	if err := m.persist(ctx, sess); err != nil {
		m.logger.Error(ctx, "failed to persist session", "error", err)
		m.endCall()
		return err
	}

	user := sess.User

	m.mu.Lock()
	m.inflight--
	m.user = &user
	m.status = StatusAuthenticated
	notify := m.notifyLocked()
	m.mu.Unlock()
	notify()
	return nil
}

func (m *Manager) persist(ctx context.Context, sess *auth.Session) error {
	rawUser, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, authUserKey, rawUser); err != nil {
		return err
	}
	if err := m.store.Set(ctx, accessTokenKey, []byte(sess.AccessToken)); err != nil {
		return err
	}
	return m.store.Set(ctx, refreshTokenKey, []byte(sess.RefreshToken))
}
