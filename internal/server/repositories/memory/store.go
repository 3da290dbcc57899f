// Package memory keeps every repository in process memory. It backs the
// server when no database DSN is configured and the end-to-end tests.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/peerwallet/internal/common"
	"github.com/dmitrijs2005/peerwallet/internal/dbx"
	"github.com/dmitrijs2005/peerwallet/internal/server/models"
	"github.com/dmitrijs2005/peerwallet/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/peerwallet/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/peerwallet/internal/server/repositories/users"
	"github.com/dmitrijs2005/peerwallet/internal/server/repositories/wallets"
	"github.com/shopspring/decimal"
)

type state struct {
	nextUserID int64
	nextTxID   int64
	users      map[int64]models.User
	sessions   map[string]models.Session
	wallets    map[int64]map[string]decimal.Decimal
	txs        []models.Transaction
}

func (st *state) clone() state {
	c := state{
		nextUserID: st.nextUserID,
		nextTxID:   st.nextTxID,
		users:      maps.Clone(st.users),
		sessions:   maps.Clone(st.sessions),
		wallets:    make(map[int64]map[string]decimal.Decimal, len(st.wallets)),
		txs:        append([]models.Transaction(nil), st.txs...),
	}
	for id, w := range st.wallets {
		c.wallets[id] = maps.Clone(w)
	}
	return c
}

// Manager is the in-memory repository manager. The DBTX arguments of the
// factory methods are ignored.
type Manager struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	st   state
	now  func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		st: state{
			users:    map[int64]models.User{},
			sessions: map[string]models.Session{},
			wallets:  map[int64]map[string]decimal.Decimal{},
		},
		now: time.Now,
	}
}

func (m *Manager) RunMigrations(ctx context.Context) error { return nil }
func (m *Manager) DB() dbx.DBTX                          { return nil }
func (m *Manager) Close() error                          { return nil }

func (m *Manager) Users(dbx.DBTX) users.Repository               { return (*userRepo)(m) }
func (m *Manager) Sessions(dbx.DBTX) sessions.Repository         { return (*sessionRepo)(m) }
func (m *Manager) Wallets(dbx.DBTX) wallets.Repository           { return (*walletRepo)(m) }
func (m *Manager) Transactions(dbx.DBTX) transactions.Repository { return (*txRepo)(m) }

// WithTx serializes units of work and restores the state taken before fn
// when fn fails.
func (m *Manager) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.RLock()
	saved := m.st.clone()
	m.mu.RUnlock()

	if err := fn(ctx, nil); err != nil {
		m.mu.Lock()
		m.st = saved
		m.mu.Unlock()
		return err
	}
	return nil
}

type userRepo Manager

func (r *userRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m := (*Manager)(r)
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.st.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return nil, common.ErrorAlreadyExists
		}
	}

	m.st.nextUserID++
	u.ID = m.st.nextUserID
	u.CreatedAt = m.now()
	m.st.users[u.ID] = *u
	return u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	m := (*Manager)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.st.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m := (*Manager)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.st.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) Exists(ctx context.Context, email, username string) (bool, error) {
	m := (*Manager)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.st.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type sessionRepo Manager

func (r *sessionRepo) Create(ctx context.Context, s *models.Session) error {
	m := (*Manager)(r)
	m.mu.Lock()
	defer m.mu.Unlock()

	s.CreatedAt = m.now()
	m.st.sessions[s.ID] = *s
	return nil
}

func (r *sessionRepo) Find(ctx context.Context, id string) (*models.Session, error) {
	m := (*Manager)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.st.sessions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (r *sessionRepo) Expire(ctx context.Context, id string, at time.Time) error {
	m := (*Manager)(r)
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.st.sessions[id]; ok && s.ExpiresAt.After(at) {
		s.ExpiresAt = at
		m.st.sessions[id] = s
	}
	return nil
}

type walletRepo Manager

func (r *walletRepo) Open(ctx context.Context, userID int64, currencies []string) error {
	m := (*Manager)(r)
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.st.wallets[userID]
	if w == nil {
		w = make(map[string]decimal.Decimal, len(currencies))
		m.st.wallets[userID] = w
	}
	for _, c := range currencies {
		if _, ok := w[c]; ok {
			return common.ErrorAlreadyExists
		}
		w[c] = decimal.Zero
	}
	return nil
}

func (r *walletRepo) List(ctx context.Context, userID int64) ([]models.Wallet, error) {
	m := (*Manager)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Wallet, 0, len(m.st.wallets[userID]))
	for c, b := range m.st.wallets[userID] {
		out = append(out, models.Wallet{UserID: userID, Currency: c, Balance: b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, nil
}

type txRepo Manager

func (r *txRepo) Create(ctx context.Context, tx *models.Transaction) error {
	m := (*Manager)(r)
	m.mu.Lock()
	defer m.mu.Unlock()

	m.st.nextTxID++
	tx.ID = m.st.nextTxID
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = m.now()
	}
	m.st.txs = append(m.st.txs, *tx)
	return nil
}

func (r *txRepo) ListForUser(ctx context.Context, userID int64, limit int) ([]models.Transaction, error) {
	m := (*Manager)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Transaction
	for _, t := range m.st.txs {
		if !involves(t.FromUserID, userID) && !involves(t.ToUserID, userID) {
			continue
		}
		t.FromName = m.nameOf(t.FromUserID)
		t.ToName = m.nameOf(t.ToUserID)
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []models.Transaction{}
	}
	return out, nil
}

func involves(id *int64, userID int64) bool {
	return id != nil && *id == userID
}

func (m *Manager) nameOf(id *int64) string {
	if id == nil {
		return ""
	}
	return m.st.users[*id].Name
}
