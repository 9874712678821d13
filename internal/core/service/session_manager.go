package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestionmed/admin-gateway/internal/core/domain"
	"github.com/gestionmed/admin-gateway/internal/core/ports"
)

// Manager owns the client-side session lifecycle. It is the single
// authoritative copy of the current user and drives the three-state machine
//
//	unknown → unauthenticated ⇄ authenticated
//
// over an injectable auth service and session store, so tests can build
// isolated instances instead of sharing ambient globals.
type Manager struct {
	store    ports.SessionStore
	auth     ports.AuthService
	notifier ports.SessionNotifier
	log      zerolog.Logger

	mu           sync.RWMutex
	state        domain.SessionState
	user         *domain.User
	bootstrapped bool
}

// ManagerOptions groups the Manager dependencies. Notifier may be nil.
type ManagerOptions struct {
	Store    ports.SessionStore
	Auth     ports.AuthService
	Notifier ports.SessionNotifier
	Log      zerolog.Logger
}

// NewManager builds a Manager in the unknown state. Call Bootstrap before
// serving protected routes.
func NewManager(opts ManagerOptions) *Manager {
	return &Manager{
		store:    opts.Store,
		auth:     opts.Auth,
		notifier: opts.Notifier,
		log:      opts.Log,
		state:    domain.StateUnknown,
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() domain.SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// CurrentUser returns a copy of the authenticated user, or nil.
func (m *Manager) CurrentUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Clone()
}

// IsAuthenticated reports whether a valid session is held right now.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == domain.StateAuthenticated
}

// Bootstrap settles the startup check: it reads the store and either enters
// authenticated optimistically (stored identity shown while a profile fetch
// revalidates the token) or drops straight to unauthenticated. Idempotent —
// only the first call does anything, so racing it with the first protected
// request is safe.
func (m *Manager) Bootstrap(ctx context.Context) {
	m.mu.Lock()
	if m.bootstrapped {
		m.mu.Unlock()
		return
	}
	m.bootstrapped = true
	m.mu.Unlock()

	_, hasToken := m.store.Token()
	stored, hasUser := m.store.User()
	if !hasToken || !hasUser {
		// Half a session is no session. Clearing both keeps the invariant
		// that a token never outlives its user record.
		m.store.ClearAll()
		m.setState(domain.StateUnauthenticated, nil)
		return
	}
	if !stored.Activo {
		m.store.ClearAll()
		m.setState(domain.StateUnauthenticated, nil)
		return
	}

	// Optimistic entry: the stored identity is visible for exactly the
	// revalidation round-trip.
	m.setState(domain.StateAuthenticated, stored)

	fresh, err := m.auth.GetProfile(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("session revalidation failed, clearing stored session")
		m.store.ClearAll()
		m.setState(domain.StateUnauthenticated, nil)
		return
	}
	if !fresh.Activo {
		m.log.Warn().Str("email", fresh.Email).Msg("stored session belongs to an inactive user")
		m.store.ClearAll()
		m.setState(domain.StateUnauthenticated, nil)
		return
	}

	m.store.SetUser(fresh)
	m.setState(domain.StateAuthenticated, fresh)
}

// Login runs the full login flow: credentials → token, token persisted, then
// profile fetched and persisted. The token must be in the store before
// GetProfile is issued — the HTTP client gate reads it from there. On failure
// at either step nothing partial survives and the state stays (or becomes)
// unauthenticated; the error is returned for the UI to display.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.User, error) {
	token, _, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	m.store.SetToken(token)

	user, err := m.auth.GetProfile(ctx)
	if err != nil {
		m.store.ClearAll()
		m.setState(domain.StateUnauthenticated, nil)
		return nil, err
	}
	if !user.Activo {
		m.store.ClearAll()
		m.setState(domain.StateUnauthenticated, nil)
		return nil, domain.ErrInactiveUser
	}

	m.store.SetUser(user)
	m.setState(domain.StateAuthenticated, user)
	m.notify(ports.SessionEvent{Kind: ports.EventLogin, Email: user.Email, Token: token})
	return user.Clone(), nil
}

// Logout tears the session down unconditionally. It is client-local: the
// backend is informed fire-and-forget via the notifier and can never block
// or fail the local transition.
func (m *Manager) Logout() {
	token, _ := m.store.Token()
	var email string
	if u := m.CurrentUser(); u != nil {
		email = u.Email
	}

	m.store.ClearAll()
	m.setState(domain.StateUnauthenticated, nil)
	m.notify(ports.SessionEvent{Kind: ports.EventLogout, Email: email, Token: token, Reason: "user initiated"})
}

// Invalidate converges the in-memory state after a forced invalidation. The
// HTTP client gate has already cleared the store by the time this runs, so
// the store is deliberately not re-read here.
func (m *Manager) Invalidate(reason string) {
	m.mu.Lock()
	wasAuthenticated := m.state == domain.StateAuthenticated
	var email string
	if m.user != nil {
		email = m.user.Email
	}
	m.state = domain.StateUnauthenticated
	m.user = nil
	m.mu.Unlock()

	if wasAuthenticated {
		m.log.Info().Str("reason", reason).Msg("session invalidated")
		m.notify(ports.SessionEvent{Kind: ports.EventInvalidated, Email: email, Reason: reason})
	}
}

func (m *Manager) setState(state domain.SessionState, user *domain.User) {
	m.mu.Lock()
	m.state = state
	m.user = user.Clone()
	m.mu.Unlock()
}

func (m *Manager) notify(event ports.SessionEvent) {
	if m.notifier == nil {
		return
	}
	event.At = time.Now().UTC()
	m.notifier.Notify(event)
}
