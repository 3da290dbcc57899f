// Package services contains server-side business logic: account
// registration, login, profile lookup and logout.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/peerwallet/internal/common"
	"github.com/dmitrijs2005/peerwallet/internal/cryptox"
	"github.com/dmitrijs2005/peerwallet/internal/dbx"
	"github.com/dmitrijs2005/peerwallet/internal/logging"
	"github.com/dmitrijs2005/peerwallet/internal/server/auth"
	"github.com/dmitrijs2005/peerwallet/internal/server/config"
	"github.com/dmitrijs2005/peerwallet/internal/server/models"
	"github.com/dmitrijs2005/peerwallet/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	MinPasswordLength = 6
	HistoryLimit      = 20
)

type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *models.User
}

type Profile struct {
	User         *models.User
	Wallets      []models.Wallet
	Transactions []models.Transaction
}

type AuthService struct {
	repos      repomanager.RepositoryManager
	secret     []byte
	sessionTTL time.Duration
	log        logging.Logger
	now        func() time.Time
}

func NewAuthService(m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *AuthService {
	return &AuthService{
		repos:      m,
		secret:     []byte(cfg.SecretKey),
		sessionTTL: cfg.SessionTTL,
		log:        log,
		now:        time.Now,
	}
}

// Avatar returns the initials of the first two words of name, or its first
// two letters for a single word, upper-cased.
func Avatar(name string) string {
	parts := strings.Fields(name)
	if len(parts) >= 2 {
		a, _ := utf8.DecodeRuneInString(parts[0])
		b, _ := utf8.DecodeRuneInString(parts[1])
		return strings.ToUpper(string([]rune{a, b}))
	}
	r := []rune(strings.TrimSpace(name))
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}

func normalizeRegistration(in RegisterInput) (RegisterInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Username = strings.TrimLeft(strings.ToLower(strings.TrimSpace(in.Username)), "@")
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Name == "" || in.Username == "" || in.Email == "" || in.Password == "" {
		return in, invalid(MsgFillAllFields)
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return in, invalid(MsgPasswordTooShort)
	}
	return in, nil
}

// Register creates the account, opens a zero wallet per currency and starts
// a session, all in one unit of work. A taken email or username yields
// common.ErrorAlreadyExists.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in, err := normalizeRegistration(in)
	if err != nil {
		return nil, err
	}

	salt, hash := cryptox.HashPassword([]byte(in.Password))
	user := &models.User{
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Salt:         salt,
		Avatar:       Avatar(in.Name),
	}

	var token string
	err = s.repos.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		exists, err := s.repos.Users(tx).Exists(ctx, user.Email, user.Username)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrorAlreadyExists
		}

		if user, err = s.repos.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		if err := s.repos.Wallets(tx).Open(ctx, user.ID, models.Currencies); err != nil {
			return err
		}
		token, err = s.startSession(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return &AuthResult{Token: token, User: user}, nil
}

// Login checks the credentials and starts a new session. Unknown email and
// wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repos.Users(s.repos.DB()).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !cryptox.VerifyPassword([]byte(password), user.Salt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.startSession(ctx, s.repos.DB(), user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID)
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) startSession(ctx context.Context, db dbx.DBTX, userID int64) (string, error) {
	sess := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.repos.Sessions(db).Create(ctx, sess); err != nil {
		return "", err
	}
	return auth.GenerateToken(sess.ID, userID, s.secret, sess.ExpiresAt)
}

// activeSession resolves token to a live session. Any failure to do so is
// common.ErrorUnauthorized unless storage itself failed.
func (s *AuthService) activeSession(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	claims, err := auth.ParseToken(token, s.secret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	sess, err := s.repos.Sessions(s.repos.DB()).Find(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	if sess.UserID != userID || !sess.Active(s.now()) {
		return nil, common.ErrorUnauthorized
	}
	return sess, nil
}

// Me returns the profile behind token: the user, every wallet and the most
// recent transactions, newest first.
func (s *AuthService) Me(ctx context.Context, token string) (*Profile, error) {
	sess, err := s.activeSession(ctx, token)
	if err != nil {
		return nil, err
	}

	db := s.repos.DB()
	user, err := s.repos.Users(db).GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("me: %w", err)
	}

	wallets, err := s.repos.Wallets(db).List(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}

	txs, err := s.repos.Transactions(db).ListForUser(ctx, user.ID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}

	return &Profile{User: user, Wallets: wallets, Transactions: txs}, nil
}

// Logout revokes the session behind token. Missing, malformed and already
// revoked tokens are not errors.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sess, err := s.activeSession(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil
		}
		return fmt.Errorf("logout: %w", err)
	}

	if err := s.repos.Sessions(s.repos.DB()).Expire(ctx, sess.ID, s.now()); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info(ctx, "session revoked", "user_id", sess.UserID)
	return nil
}
