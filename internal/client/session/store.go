// Package session owns the administrator session of the gallery client:
// login, logout, and restoring a persisted credential at startup.
//
// The client keeps no notion of expiry; a restored credential is trusted
// only after the backend confirms it.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gallerykeeper/internal/client/gateway"
	"github.com/dmitrijs2005/gallerykeeper/internal/client/models"
	"github.com/dmitrijs2005/gallerykeeper/internal/client/notify"
	"github.com/dmitrijs2005/gallerykeeper/internal/logging"
)

// State is a position in the session state machine:
//
//	uninitialized -> restoring -> anonymous | authenticated
//	anonymous -> authenticating -> authenticated | anonymous
//	authenticated -> anonymous (logout)
type State string

const (
	StateUninitialized  State = "uninitialized"
	StateRestoring      State = "restoring"
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

var (
	ErrEmptyCredentials = errors.New("username and password are required")
	ErrLoginRejected    = errors.New("login rejected")
)

const (
	msgEmptyCredentials = "Please enter username and password"
	msgLoginOK          = "Signed in successfully"
	msgLoginFailed      = "Sign in failed"
	msgLogout           = "Signed out"
)

// Snapshot is a read-only view of the session.
type Snapshot struct {
	State State
	Token string
	User  *models.AuthUser
}

// Store holds at most one administrator session.
type Store struct {
	gw       gateway.Gateway
	creds    CredentialStore
	notifier notify.Notifier
	log      logging.Logger

	// pubMu orders transitions with their notifications; subscribers see
	// snapshots in the order the transitions happened.
	pubMu sync.Mutex
	mu    sync.RWMutex
	state State
	token string
	user  *models.AuthUser

	changes notify.Broadcaster[Snapshot]
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier sets where login and logout outcomes are reported.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithLogger sets the store's logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore builds a store in StateUninitialized. Call Restore once at startup.
func NewStore(gw gateway.Gateway, creds CredentialStore, opts ...Option) *Store {
	s := &Store{
		gw:       gw,
		creds:    creds,
		notifier: notify.Discard{},
		log:      logging.Nop(),
		state:    StateUninitialized,
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("component", "session")
	return s
}

// Restore loads the persisted credential and asks the backend whether it is
// still valid. Every failure path, including storage errors, ends in
// StateAnonymous with the persisted credential erased. The resulting state
// is returned.
func (s *Store) Restore(ctx context.Context) State {
	s.set(StateRestoring, "", nil)

	token, err := s.creds.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "cannot read persisted credential", "error", err)
		s.forget(ctx)
		return s.set(StateAnonymous, "", nil)
	}
	if token == "" {
		return s.set(StateAnonymous, "", nil)
	}

	var resp verifyResponse
	err = s.gw.Invoke(ctx, gateway.ProcAdminAuth, verifyRequest{Action: actionVerifySession, SessionToken: token}, &resp)
	if err != nil {
		s.log.Error(ctx, "session verification failed", "error", err)
		s.forget(ctx)
		return s.set(StateAnonymous, "", nil)
	}
	if !resp.Valid || resp.User == nil {
		s.log.Info(ctx, "persisted session is no longer valid")
		s.forget(ctx)
		return s.set(StateAnonymous, "", nil)
	}

	s.log.Info(ctx, "session restored", "user", resp.User.Username)
	return s.set(StateAuthenticated, token, resp.User)
}

// Login exchanges username and password for a session credential.
// Empty input is rejected without a network call. On any failure the store
// ends in StateAnonymous, the user is notified and the error is returned.
// Concurrent logins are not serialized; the last response applied wins.
func (s *Store) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		s.notifier.Error(msgEmptyCredentials)
		return ErrEmptyCredentials
	}

	s.set(StateAuthenticating, "", nil)

	var resp loginResponse
	err := s.gw.Invoke(ctx, gateway.ProcAdminAuth, loginRequest{
		Action:   actionLogin,
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		s.log.Error(ctx, "login failed", "user", username, "error", err)
		s.set(StateAnonymous, "", nil)
		s.notifier.Error(gateway.Message(err, msgLoginFailed))
		return fmt.Errorf("login: %w", err)
	}

	if !resp.Success || resp.SessionToken == "" || resp.User == nil {
		msg := resp.Message
		if msg == "" {
			msg = msgLoginFailed
		}
		s.log.Warn(ctx, "login rejected", "user", username, "message", resp.Message)
		s.set(StateAnonymous, "", nil)
		s.notifier.Error(msg)
		return fmt.Errorf("%w: %s", ErrLoginRejected, msg)
	}

	if err := s.creds.Save(ctx, resp.SessionToken); err != nil {
		// The session is usable; it just won't survive a restart.
		s.log.Warn(ctx, "cannot persist credential", "error", err)
	}

	s.set(StateAuthenticated, resp.SessionToken, resp.User)
	s.log.Info(ctx, "logged in", "user", resp.User.Username)

	msg := resp.Message
	if msg == "" {
		msg = msgLoginOK
	}
	s.notifier.Success(msg)
	return nil
}

// Logout drops the session and erases the persisted credential. It never
// fails; storage errors are only logged.
func (s *Store) Logout(ctx context.Context) {
	s.set(StateAnonymous, "", nil)
	s.forget(ctx)
	s.notifier.Success(msgLogout)
}

// forget erases the persisted credential. It runs even when ctx is already
// cancelled, since a credential that failed verification must not survive.
func (s *Store) forget(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	if err := s.creds.Clear(ctx); err != nil {
		s.log.Warn(ctx, "cannot erase persisted credential", "error", err)
	}
}

// set replaces the whole session value, notifies subscribers and returns
// the new state. Subscribers must not call back into the store's mutating
// methods.
func (s *Store) set(state State, token string, user *models.AuthUser) State {
	if user != nil {
		u := *user
		user = &u
	}

	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	s.state = state
	s.token = token
	s.user = user
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changes.Publish(snap)
	return state
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{State: s.state, Token: s.token}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// State returns the current position in the state machine.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token returns the current credential, empty when not authenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether the store holds a verified session.
func (s *Store) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// Subscribe registers fn to receive a snapshot after every transition.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}
