package distributor

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/bots-empire/referron-bot/internal/log"
	"github.com/bots-empire/referron-bot/internal/model"
)

func init() {
	model.AdminSettings = &model.Settings{
		AdminID: map[int64]*model.AdminUser{},
		Params: &model.Params{
			AudiencePoolLimit: 50,
		},
	}
}

type stubAudience struct {
	accounts []*model.Account

	lastExclude int64
	lastLimit   int
	calls       int
}

func (s *stubAudience) ListOtherAccounts(excludeID int64, limit int) ([]*model.Account, error) {
	s.calls++
	s.lastExclude = excludeID
	s.lastLimit = limit

	var out []*model.Account
	for _, acc := range s.accounts {
		if acc.ID == excludeID {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, acc)
	}
	return out, nil
}

type stubDeliverer struct {
	mu      sync.Mutex
	sent    []int64
	failIDs map[int64]bool
}

func (s *stubDeliverer) SendSimpleMsg(userID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failIDs[userID] {
		return errors.New("blocked by the user")
	}
	s.sent = append(s.sent, userID)
	return nil
}

func audienceOf(ids ...int64) []*model.Account {
	accs := make([]*model.Account, 0, len(ids))
	for _, id := range ids {
		accs = append(accs, &model.Account{ID: id, Status: model.StatusActive})
	}
	return accs
}

func TestSelectAudienceExcludesSender(t *testing.T) {
	store := &stubAudience{accounts: audienceOf(1, 2, 3, 4)}
	d := NewDistributor(store, &stubDeliverer{}, log.NewDefaultLogger().Prefix("test"))

	audience, err := d.SelectAudience(2, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), store.lastExclude)

	for _, acc := range audience {
		require.NotEqual(t, int64(2), acc.ID)
	}
}

func TestSelectAudienceTrimsToSize(t *testing.T) {
	store := &stubAudience{accounts: audienceOf(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)}
	d := NewDistributor(store, &stubDeliverer{}, log.NewDefaultLogger().Prefix("test"))

	audience, err := d.SelectAudience(99, 3)
	require.NoError(t, err)
	require.Len(t, audience, 3)
}

func TestSelectAudienceSmallerPool(t *testing.T) {
	store := &stubAudience{accounts: audienceOf(1, 2)}
	d := NewDistributor(store, &stubDeliverer{}, log.NewDefaultLogger().Prefix("test"))

	audience, err := d.SelectAudience(99, 30)
	require.NoError(t, err)
	require.Len(t, audience, 2)
}

func TestSelectAudiencePoolCoversLargeFanout(t *testing.T) {
	store := &stubAudience{accounts: audienceOf(1, 2, 3)}
	d := NewDistributor(store, &stubDeliverer{}, log.NewDefaultLogger().Prefix("test"))

	// a paid fanout above the configured pool limit widens the pool query
	_, err := d.SelectAudience(99, 75)
	require.NoError(t, err)
	require.Equal(t, 75, store.lastLimit)
}

func TestSelectAudienceZeroSize(t *testing.T) {
	store := &stubAudience{accounts: audienceOf(1, 2, 3)}
	d := NewDistributor(store, &stubDeliverer{}, log.NewDefaultLogger().Prefix("test"))

	audience, err := d.SelectAudience(99, 0)
	require.NoError(t, err)
	require.Empty(t, audience)
	require.Zero(t, store.calls)
}

func TestDistributeNoAudience(t *testing.T) {
	store := &stubAudience{}
	d := NewDistributor(store, &stubDeliverer{}, log.NewDefaultLogger().Prefix("test"))

	_, err := d.Distribute(1, "https://example.com", 3)
	require.ErrorIs(t, err, model.ErrNoAudience)
}

func TestDistributeDeliversToEveryone(t *testing.T) {
	store := &stubAudience{accounts: audienceOf(2, 3, 4)}
	sender := &stubDeliverer{}
	d := NewDistributor(store, sender, log.NewDefaultLogger().Prefix("test"))

	report, err := d.Distribute(1, "https://example.com", 3)
	require.NoError(t, err)
	require.Equal(t, 3, report.Selected)
	require.Equal(t, 3, report.Delivered)
	require.Zero(t, report.Failed)
	require.Len(t, sender.sent, 3)
}

func TestDistributeSkipsFailedRecipients(t *testing.T) {
	store := &stubAudience{accounts: audienceOf(2, 3, 4)}
	sender := &stubDeliverer{failIDs: map[int64]bool{3: true}}
	d := NewDistributor(store, sender, log.NewDefaultLogger().Prefix("test"))

	report, err := d.Distribute(1, "https://example.com", 3)
	require.NoError(t, err)
	require.Equal(t, 3, report.Selected)
	require.Equal(t, 2, report.Delivered)
	require.Equal(t, 1, report.Failed)

	// the failure did not cut the batch short
	require.Len(t, sender.sent, 2)
	require.NotContains(t, sender.sent, int64(3))
}
