// Package services contains the wallet client's application services. The
// auth service owns the session lifecycle: restoring a stored token at start,
// login, registration, refreshing the profile and logout.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/peerwallet/internal/client/client"
	"github.com/dmitrijs2005/peerwallet/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/peerwallet/internal/client/session"
	"github.com/dmitrijs2005/peerwallet/internal/logging"
)

var ErrNotSignedIn = errors.New("not signed in")

// ErrStaleResult is returned when a reply arrived for a session that has since
// been replaced or closed; the reply was dropped.
var ErrStaleResult = errors.New("session changed while request was in flight")

type AuthService interface {
	// Bootstrap validates the stored token, if any. Any failure leaves the
	// session unauthenticated; the stored token is dropped unless the server
	// could not be reached.
	Bootstrap(ctx context.Context) error
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, r client.Registration) error
	// Refresh reloads the profile for the current token. A rejected token
	// ends the session.
	Refresh(ctx context.Context) error
	// Logout always ends the local session, even if the server call fails.
	Logout(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client  client.Client
	db      *sql.DB
	session *session.Session
	log     logging.Logger
}

func NewAuthService(c client.Client, db *sql.DB, s *session.Session, log logging.Logger) AuthService {
	return &authService{client: c, db: db, session: s, log: log}
}

func (a *authService) tokens() *session.TokenStore {
	return session.NewTokenStore(metadata.NewSQLiteRepository(a.db))
}

func (a *authService) Bootstrap(ctx context.Context) error {
	token, err := a.tokens().Load(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	epoch := a.session.BeginLoading(token)

	profile, err := a.client.Me(ctx, token)
	if errors.Is(err, client.ErrUnavailable) {
		// server unreachable or failing: start signed out, keep the token for next time
		a.log.Warn(ctx, "could not validate stored session", "error", err)
		a.session.Reject(epoch)
		return err
	}
	if err != nil {
		a.log.Warn(ctx, "stored session rejected", "error", err)
		if a.session.Reject(epoch) {
			if cerr := a.tokens().Clear(ctx); cerr != nil {
				return errors.Join(err, cerr)
			}
		}
		return err
	}

	if !a.session.Authenticate(epoch, token, profile) {
		a.log.Debug(ctx, "dropping stale bootstrap result")
		return ErrStaleResult
	}
	a.log.Info(ctx, "session restored", "user", profile.User.Username)
	return nil
}

func (a *authService) start(ctx context.Context, token string, action client.Action) error {
	if err := a.tokens().Save(ctx, token); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	token, user, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.start(ctx, token, client.ActionLogin); err != nil {
		return err
	}
	a.session.SignIn(token, user)
	a.log.Info(ctx, "signed in", "user", user.Username)
	return nil
}

func (a *authService) Register(ctx context.Context, r client.Registration) error {
	token, user, err := a.client.Register(ctx, r)
	if err != nil {
		return err
	}
	if err := a.start(ctx, token, client.ActionRegister); err != nil {
		return err
	}
	a.session.SignIn(token, user)
	a.log.Info(ctx, "registered", "user", user.Username)
	return nil
}

func (a *authService) Refresh(ctx context.Context) error {
	epoch := a.session.Epoch()
	token := a.session.Token()
	if token == "" {
		return ErrNotSignedIn
	}

	profile, err := a.client.Me(ctx, token)
	if errors.Is(err, client.ErrUnauthorized) {
		a.log.Warn(ctx, "session rejected on refresh")
		if a.session.Reject(epoch) {
			if cerr := a.tokens().Clear(ctx); cerr != nil {
				return errors.Join(err, cerr)
			}
		}
		return err
	}
	if err != nil {
		return err
	}

	if !a.session.Authenticate(epoch, token, profile) {
		return ErrStaleResult
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	if token := a.session.Token(); token != "" {
		if err := a.client.Logout(ctx, token); err != nil {
			a.log.Warn(ctx, "remote logout failed", "error", err)
		}
	}

	a.session.SignOut()
	return a.tokens().Clear(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.db.Close()
}
