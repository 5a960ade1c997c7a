package ledger

import (
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bots-empire/referron-bot/internal/model"
)

func init() {
	model.AdminSettings = &model.Settings{
		AdminID: map[int64]*model.AdminUser{},
		Params: &model.Params{
			ReferralReward: 10,
			RedeemCost:     50,
			TopListSize:    10,
		},
	}
}

// stubAccounts mimics the sql store in memory, including the conditional
// update semantics: a guard that does not hold reports false with a nil
// error, never a typed failure.
type stubAccounts struct {
	mu       sync.Mutex
	accounts map[int64]*model.Account

	codeConflicts int
	raceInsert    *model.Account
	lastTopLimit  int
}

func newStubAccounts(accs ...*model.Account) *stubAccounts {
	s := &stubAccounts{accounts: map[int64]*model.Account{}}
	for _, acc := range accs {
		cp := *acc
		s.accounts[acc.ID] = &cp
	}
	return s
}

func (s *stubAccounts) GetAccountByID(id int64) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	cp := *acc
	return &cp, nil
}

func (s *stubAccounts) GetAccountByReferralCode(code string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acc := range s.accounts {
		if acc.ReferralCode == code {
			cp := *acc
			return &cp, nil
		}
	}
	return nil, model.ErrAccountNotFound
}

func (s *stubAccounts) InsertAccount(acc *model.Account) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.codeConflicts > 0 {
		s.codeConflicts--
		return false, model.ErrReferralCodeTaken
	}

	if s.raceInsert != nil {
		cp := *s.raceInsert
		s.accounts[cp.ID] = &cp
		s.raceInsert = nil
	}

	if _, ok := s.accounts[acc.ID]; ok {
		return false, nil
	}

	cp := *acc
	s.accounts[acc.ID] = &cp
	return true, nil
}

func (s *stubAccounts) CreditReferral(referrerID int64, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[referrerID]
	if !ok {
		return model.ErrAccountNotFound
	}
	acc.Referrals++
	acc.Points += points
	return nil
}

func (s *stubAccounts) RedeemPoints(id int64, cost int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok || acc.Points < cost {
		return false, nil
	}
	acc.Points -= cost
	return true, nil
}

func (s *stubAccounts) CreditBalance(id int64, amount int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return false, nil
	}
	acc.Balance += amount
	return true, nil
}

func (s *stubAccounts) DebitBalance(id int64, amount int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok || acc.Balance < amount {
		return false, nil
	}
	acc.Balance -= amount
	return true, nil
}

func (s *stubAccounts) TopAccountsByReferrals(limit int) ([]*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastTopLimit = limit

	var out []*model.Account
	for _, acc := range s.accounts {
		if acc.Status == model.StatusDeleted {
			continue
		}
		cp := *acc
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Referrals != out[j].Referrals {
			return out[i].Referrals > out[j].Referrals
		}
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].ID < out[j].ID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubAccounts) get(id int64) *model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[id]
}

func (s *stubAccounts) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

func TestGetOrCreateNewAccount(t *testing.T) {
	store := newStubAccounts()
	srv := NewLedgerService(store)

	acc, created, err := srv.GetOrCreate(100, "alice", "")
	require.NoError(t, err)
	require.True(t, created)

	require.Equal(t, int64(100), acc.ID)
	require.Equal(t, "alice", acc.Name)
	require.Len(t, acc.ReferralCode, 8)
	require.Equal(t, model.StatusActive, acc.Status)
	require.Zero(t, acc.Referrals)
	require.Zero(t, acc.Points)
	require.Zero(t, acc.Balance)
	require.Zero(t, acc.Opportunities)
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	store := newStubAccounts(&model.Account{ID: 1, Name: "ref", ReferralCode: "abcd1234", Status: model.StatusActive})
	srv := NewLedgerService(store)

	first, created, err := srv.GetOrCreate(2, "bob", "abcd1234")
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := srv.GetOrCreate(2, "bob", "abcd1234")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.ReferralCode, second.ReferralCode)

	// the referrer was rewarded exactly once
	referrer := store.get(1)
	require.Equal(t, 1, referrer.Referrals)
	require.Equal(t, 10, referrer.Points)
}

func TestGetOrCreateReferralAttribution(t *testing.T) {
	store := newStubAccounts(&model.Account{ID: 1, Name: "ref", ReferralCode: "abcd1234", Status: model.StatusActive})
	srv := NewLedgerService(store)

	acc, created, err := srv.GetOrCreate(2, "bob", "abcd1234")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "abcd1234", acc.ReferredBy)

	referrer := store.get(1)
	require.Equal(t, 1, referrer.Referrals)
	require.Equal(t, 10, referrer.Points)
}

func TestGetOrCreateUnknownReferralCode(t *testing.T) {
	store := newStubAccounts()
	srv := NewLedgerService(store)

	_, _, err := srv.GetOrCreate(2, "bob", "nosuch00")
	require.ErrorIs(t, err, model.ErrInvalidReferralCode)

	// the failed registration left nothing behind
	require.Zero(t, store.count())
}

func TestGetOrCreateLosesInsertRace(t *testing.T) {
	store := newStubAccounts(&model.Account{ID: 1, Name: "ref", ReferralCode: "abcd1234", Status: model.StatusActive})
	store.raceInsert = &model.Account{ID: 2, Name: "bob", ReferralCode: "zzzz9999", Status: model.StatusActive}
	srv := NewLedgerService(store)

	acc, created, err := srv.GetOrCreate(2, "bob", "abcd1234")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, "zzzz9999", acc.ReferralCode)

	// the loser must not reward the referrer a second time
	referrer := store.get(1)
	require.Zero(t, referrer.Referrals)
	require.Zero(t, referrer.Points)
}

func TestGetOrCreateRetriesTakenCodes(t *testing.T) {
	store := newStubAccounts()
	store.codeConflicts = 2
	srv := NewLedgerService(store)

	_, created, err := srv.GetOrCreate(5, "carol", "")
	require.NoError(t, err)
	require.True(t, created)
}

func TestGetOrCreateGivesUpAfterTooManyCollisions(t *testing.T) {
	store := newStubAccounts()
	store.codeConflicts = codeGenAttempts
	srv := NewLedgerService(store)

	_, _, err := srv.GetOrCreate(5, "carol", "")
	require.ErrorIs(t, err, model.ErrReferralCodeTaken)
	require.Zero(t, store.count())
}

func TestRedeemPoints(t *testing.T) {
	store := newStubAccounts(&model.Account{ID: 1, Points: 50, Status: model.StatusActive})
	srv := NewLedgerService(store)

	require.NoError(t, srv.RedeemPoints(1))
	require.Zero(t, store.get(1).Points)
}

func TestRedeemPointsOneShort(t *testing.T) {
	store := newStubAccounts(&model.Account{ID: 1, Points: 49, Status: model.StatusActive})
	srv := NewLedgerService(store)

	err := srv.RedeemPoints(1)
	require.ErrorIs(t, err, model.ErrInsufficientPoints)
	require.Equal(t, 49, store.get(1).Points)
}

func TestRedeemPointsUnknownAccount(t *testing.T) {
	srv := NewLedgerService(newStubAccounts())

	err := srv.RedeemPoints(404)
	require.ErrorIs(t, err, model.ErrAccountNotFound)
}

func TestTopUpBalance(t *testing.T) {
	store := newStubAccounts(&model.Account{ID: 1, Status: model.StatusActive})
	srv := NewLedgerService(store)

	require.NoError(t, srv.TopUpBalance(1, 300))
	require.Equal(t, int64(300), store.get(1).Balance)

	require.ErrorIs(t, srv.TopUpBalance(1, 0), model.ErrInvalidAmount)
	require.ErrorIs(t, srv.TopUpBalance(1, -5), model.ErrInvalidAmount)
	require.ErrorIs(t, srv.TopUpBalance(404, 10), model.ErrAccountNotFound)
}

func TestDebitBalance(t *testing.T) {
	store := newStubAccounts(&model.Account{ID: 1, Balance: 30, Status: model.StatusActive})
	srv := NewLedgerService(store)

	require.NoError(t, srv.DebitBalance(1, 30))
	require.Zero(t, store.get(1).Balance)

	err := srv.DebitBalance(1, 1)
	require.ErrorIs(t, err, model.ErrInsufficientBalance)

	require.ErrorIs(t, srv.DebitBalance(1, 0), model.ErrInvalidAmount)
	require.ErrorIs(t, srv.DebitBalance(404, 10), model.ErrAccountNotFound)
}

func TestLeaderboardOrdering(t *testing.T) {
	store := newStubAccounts(
		&model.Account{ID: 3, Name: "c", Referrals: 2, Points: 20, Status: model.StatusActive},
		&model.Account{ID: 1, Name: "a", Referrals: 5, Points: 0, Status: model.StatusActive},
		&model.Account{ID: 2, Name: "b", Referrals: 2, Points: 40, Status: model.StatusActive},
		&model.Account{ID: 4, Name: "d", Referrals: 9, Points: 90, Status: model.StatusDeleted},
	)
	srv := NewLedgerService(store)

	top, err := srv.Leaderboard(10)
	require.NoError(t, err)

	ids := make([]int64, 0, len(top))
	for _, acc := range top {
		ids = append(ids, acc.ID)
	}
	require.Equal(t, []int64{1, 2, 3}, ids)
}

func TestLeaderboardDefaultLimit(t *testing.T) {
	store := newStubAccounts()
	srv := NewLedgerService(store)

	_, err := srv.Leaderboard(0)
	require.NoError(t, err)
	require.Equal(t, 10, store.lastTopLimit)
}

func TestGenerateReferralCode(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 100; i++ {
		code := GenerateReferralCode()
		require.Len(t, code, 8)

		for _, r := range code {
			require.True(t, strings.ContainsRune(referralAlphabet, r),
				"unexpected symbol %q in code %s", r, code)
		}
		seen[code] = true
	}

	// 100 draws from a 62^8 space never repeat in practice
	require.Len(t, seen, 100)
}
