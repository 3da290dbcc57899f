package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/peerwallet/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/peerwallet/internal/common"
)

// TokenStore is the single durable slot holding the session token.
type TokenStore struct {
	repo metadata.Repository
}

func NewTokenStore(repo metadata.Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// Load returns the stored token, or "" when none is stored.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	token, err := s.repo.Get(ctx, common.SessionTokenKey)
	if errors.Is(err, common.ErrorNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	if err := s.repo.Set(ctx, common.SessionTokenKey, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.SessionTokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
