// Package session owns the authentication lifecycle of the Momento client:
// bootstrap against the remote identity endpoint, login, signup, and logout,
// exposed as a tri-state status consumed by the presentation layer.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/momento-app/momento/internal/client/api"
	"github.com/momento-app/momento/internal/client/mirror"
	"github.com/momento-app/momento/internal/client/models"
	"github.com/momento-app/momento/internal/logging"
)

// Status is the client's belief about the current identity. Exactly one
// status holds at any observation point.
type Status string

const (
	// StatusLoading holds only during the initial bootstrap probe and while
	// a login/signup call is in flight.
	StatusLoading Status = "loading"

	// StatusAuthenticated means the remote confirmed an identity.
	StatusAuthenticated Status = "authenticated"

	// StatusUnauthenticated is the guest state. Expected, not an error.
	StatusUnauthenticated Status = "unauthenticated"
)

// Manager is the session state machine. Callers serialize Bootstrap, Login,
// Signup, and Logout (overlapping calls are undefined behavior per the
// concurrency contract); the mutex keeps concurrent reads safe regardless.
//
// Every remote failure is reduced to a state transition plus a returned
// error value; nothing panics past the component boundary.
type Manager struct {
	mu     sync.Mutex
	api    api.Client
	mirror mirror.Repository
	log    logging.Logger

	status Status
	user   *models.User

	// lastErr records the transport failure behind a fail-safe guest
	// transition, keeping it distinguishable from the explicit 401 signal.
	lastErr error
}

// NewManager returns a Manager in the Loading state, ready for Bootstrap.
func NewManager(client api.Client, mir mirror.Repository, log logging.Logger) *Manager {
	return &Manager{
		api:    client,
		mirror: mir,
		log:    log,
		status: StatusLoading,
	}
}

// Status returns the current session status.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// User returns the authenticated identity, when there is one.
func (m *Manager) User() (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

// LastError reports the transport failure, if any, that forced the latest
// guest transition. Nil after an explicit 401 or a successful probe.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Manager) setLoading() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = StatusLoading
	m.user = nil
}

func (m *Manager) setAuthenticated(ctx context.Context, u models.User) {
	m.mu.Lock()
	m.status = StatusAuthenticated
	m.user = &u
	m.lastErr = nil
	m.mu.Unlock()

	// The mirror is advisory; a failed write never fails the transition.
	if err := m.mirror.SaveUser(ctx, u); err != nil {
		m.log.Warn(ctx, "failed to mirror session", "error", err)
	}
}

func (m *Manager) setGuest(ctx context.Context, cause error) {
	m.mu.Lock()
	m.status = StatusUnauthenticated
	m.user = nil
	m.lastErr = cause
	m.mu.Unlock()

	if err := m.mirror.DeleteUser(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear mirrored session", "error", err)
	}
}

// Bootstrap resolves the initial Loading state by probing the remote "who am
// I" endpoint with the ambient cookie. A 401 resolves to guest; any other
// failure also resolves to guest (the UI must never stay stuck on Loading)
// but is recorded and logged so the two signals stay distinguishable.
//
// A context cancelled while the probe is in flight discards the result: the
// caller is gone and no transition is applied.
func (m *Manager) Bootstrap(ctx context.Context) {
	u, err := m.api.CurrentUser(ctx)
	if ctx.Err() != nil {
		return
	}

	switch {
	case err == nil:
		m.log.Info(ctx, "session restored", "email", u.Email)
		m.setAuthenticated(ctx, *u)
	case errors.Is(err, api.ErrUnauthorized):
		m.log.Info(ctx, "no ambient session, starting as guest")
		m.setGuest(ctx, nil)
	default:
		m.log.Warn(ctx, "session bootstrap degraded to guest", "error", err)
		m.setGuest(ctx, err)
	}
}

// Login submits credentials, re-probes the identity on success, and
// transitions to Authenticated. On failure the session resolves to guest and
// the error is returned: *api.AuthError when the remote rejected the
// credentials, api.ErrUnavailable when the request could not complete.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.setLoading()

	if err := m.api.Login(ctx, email, password); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		m.setGuest(ctx, nil)
		return err
	}

	u, err := m.api.CurrentUser(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		m.setGuest(ctx, nil)
		return err
	}

	m.log.Info(ctx, "login succeeded", "email", u.Email)
	m.setAuthenticated(ctx, *u)
	return nil
}

// Signup registers a new account and, on success, establishes the session
// cookie and transitions to Authenticated using the registered identity.
// Validation is the collaborator's concern; nothing is checked locally.
// Failures behave exactly like Login failures.
func (m *Manager) Signup(ctx context.Context, email, password string) error {
	m.setLoading()

	u, err := m.api.Register(ctx, email, password)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		m.setGuest(ctx, nil)
		return err
	}

	// Registration does not set the cookie; log in with the same credentials
	// to obtain it, then trust the registered identity.
	if err := m.api.Login(ctx, email, password); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		m.setGuest(ctx, nil)
		return err
	}

	m.log.Info(ctx, "signup succeeded", "email", u.Email)
	m.setAuthenticated(ctx, *u)
	return nil
}

// Logout invalidates the server-side credential and transitions to guest
// unconditionally: local state reflects the user's intent even when the
// remote call fails. The remote error, if any, is returned for logging.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.api.Logout(ctx)
	if err != nil {
		m.log.Warn(ctx, "remote logout failed, clearing local session anyway", "error", err)
	}
	m.setGuest(ctx, nil)
	return err
}
