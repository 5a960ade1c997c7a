package quota

import (
	"time"

	"github.com/bots-empire/referron-bot/internal/model"
	"github.com/bots-empire/referron-bot/internal/utils"
)

type QuotaStore interface {
	GetAccountByID(id int64) (*model.Account, error)
	CountLinkEventsSince(accountID int64, since time.Time) (int, error)
	InsertLinkEvent(event *model.LinkEvent) error
	ConsumeOpportunity(id int64) (bool, error)
}

// Engine decides whether a link send passes on the free tier, burns a paid
// opportunity, or gets rejected. One decision at a time per account.
type Engine struct {
	store QuotaStore
	locks *utils.AccountLock

	now func() time.Time
}

func NewQuotaEngine(store QuotaStore) *Engine {
	return &Engine{
		store: store,
		locks: utils.NewAccountLock(),
		now:   time.Now,
	}
}
