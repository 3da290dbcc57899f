package session

import (
	"sync"

	"github.com/dmitrijs2005/peerwallet/internal/client/models"
)

type State int

const (
	StateUnauthenticated State = iota
	StateLoading
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unauthenticated"
}

// Session is the in-memory session. The zero value is not usable; use New.
type Session struct {
	mu sync.Mutex

	state        State
	epoch        uint64
	token        string
	user         *models.User
	balances     models.Balances
	transactions []models.Transaction
}

func New() *Session {
	return &Session{balances: models.ZeroBalances()}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the current user; ok is false unless authenticated.
func (s *Session) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Balances returns a copy of the wallet balances.
func (s *Session) Balances() models.Balances {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances.Clone()
}

// Transactions returns a copy of the transaction list, newest first.
func (s *Session) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// BeginLoading enters the loading state for a stored token and returns the
// new epoch.
func (s *Session) BeginLoading(token string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.state = StateLoading
	s.token = token
	return s.epoch
}

// Authenticate applies a validated profile. It is a no-op returning false when
// epoch or token no longer match the current session.
func (s *Session) Authenticate(epoch uint64, token string, p models.Profile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || token != s.token || s.state == StateUnauthenticated {
		return false
	}

	u := p.User
	s.user = &u
	s.state = StateAuthenticated
	s.balances = models.ZeroBalances()
	for c, v := range p.Balances {
		s.balances[c] = v
	}
	s.transactions = append([]models.Transaction{}, p.Transactions...)
	return true
}

// Reject ends the session when the token was refused. Stale epochs are
// ignored.
func (s *Session) Reject(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.reset()
	return true
}

// SignIn starts a fresh authenticated session after login or register:
// wallets start at zero and there is no history yet.
func (s *Session) SignIn(token string, u models.User) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.state = StateAuthenticated
	s.token = token
	s.user = &u
	return s.epoch
}

func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// reset clears everything and bumps the epoch. Callers hold mu.
func (s *Session) reset() {
	s.epoch++
	s.state = StateUnauthenticated
	s.token = ""
	s.user = nil
	s.balances = models.ZeroBalances()
	s.transactions = []models.Transaction{}
}
