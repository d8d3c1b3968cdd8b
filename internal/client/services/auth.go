// Package services contains the client workflows. This file holds the auth
// flow: login and register populate the session store, logout empties it.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/nexuspost/internal/client/client"
	"github.com/dmitrijs2005/nexuspost/internal/client/models"
	"github.com/dmitrijs2005/nexuspost/internal/logging"
)

// SessionStore is the persisted credential state the workflows depend on.
// session.Store implements it.
type SessionStore interface {
	Get(ctx context.Context) (models.Session, error)
	Set(ctx context.Context, s models.Session) error
	SetProviderKeys(ctx context.Context, keys models.ProviderKeys) error
	Clear(ctx context.Context) error
	Token(ctx context.Context) (string, error)
}

type AuthState string

const (
	AuthIdle       AuthState = "idle"
	AuthSubmitting AuthState = "submitting"
	AuthSuccess    AuthState = "success"
	AuthFailed     AuthState = "failed"
)

var errNoTokenInResponse = errors.New("server response carried no token")

// LoginOutcome is what a successful login or register leaves behind.
type LoginOutcome struct {
	User *models.User
	// KeysRestored is true when the backend returned stored provider keys.
	KeysRestored bool
	// Warning is the backend's optional advisory text.
	Warning string
}

// AuthService runs the Idle → Submitting → {Success, Failed} flow. A failed
// attempt returns the flow to Idle. Fields are not validated locally; the
// backend rejects empty input.
type AuthService struct {
	api   client.Client
	store SessionStore
	log   logging.Logger

	mu    sync.Mutex
	state AuthState
}

func NewAuthService(api client.Client, store SessionStore, log logging.Logger) *AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &AuthService{api: api, store: store, log: log.With("component", "auth"), state: AuthIdle}
}

// State returns the current flow state.
func (a *AuthService) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *AuthService) transition(ctx context.Context, to AuthState) {
	a.mu.Lock()
	from := a.state
	a.state = to
	a.mu.Unlock()
	a.log.Debug(ctx, "auth state", "from", from, "to", to)
}

// Login authenticates and persists the token, the user and any provider keys
// the backend returned.
func (a *AuthService) Login(ctx context.Context, email, password string) (*LoginOutcome, error) {
	a.transition(ctx, AuthSubmitting)

	resp, err := a.api.Login(ctx, email, password)
	if err != nil {
		return nil, a.fail(ctx, "login", err)
	}

	sess := models.Session{Token: resp.Token, User: resp.User, ProviderKeys: resp.APIKeys}
	if err := a.persist(ctx, sess); err != nil {
		return nil, a.fail(ctx, "login", err)
	}

	out := &LoginOutcome{User: resp.User, KeysRestored: resp.APIKeys != nil && resp.APIKeys.Complete(), Warning: resp.Warning}
	if out.Warning != "" {
		a.log.Warn(ctx, "login warning", "warning", out.Warning)
	}
	a.transition(ctx, AuthSuccess)
	a.log.Info(ctx, "logged in", "keys_restored", out.KeysRestored)
	return out, nil
}

// Register creates an account and logs the user in with the returned token.
func (a *AuthService) Register(ctx context.Context, name, email, password string) (*LoginOutcome, error) {
	a.transition(ctx, AuthSubmitting)

	resp, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		return nil, a.fail(ctx, "register", err)
	}

	if err := a.persist(ctx, models.Session{Token: resp.Token, User: resp.User}); err != nil {
		return nil, a.fail(ctx, "register", err)
	}

	a.transition(ctx, AuthSuccess)
	a.log.Info(ctx, "registered")
	return &LoginOutcome{User: resp.User}, nil
}

// persist replaces whatever session was cached with sess. On a write error
// the store is cleared so no half-written session survives.
func (a *AuthService) persist(ctx context.Context, sess models.Session) error {
	if sess.Token == "" {
		return errNoTokenInResponse
	}
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	if err := a.store.Set(ctx, sess); err != nil {
		_ = a.store.Clear(ctx)
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (a *AuthService) fail(ctx context.Context, op string, err error) error {
	a.transition(ctx, AuthFailed)
	a.log.Warn(ctx, op+" failed", "error", err)
	a.transition(ctx, AuthIdle)
	return err
}

// Logout clears the token, the user and both provider keys.
func (a *AuthService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.transition(ctx, AuthIdle)
	a.log.Info(ctx, "logged out")
	return nil
}

// Session returns the cached session snapshot.
func (a *AuthService) Session(ctx context.Context) (models.Session, error) {
	return a.store.Get(ctx)
}
