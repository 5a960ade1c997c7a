package ledger

import "github.com/bots-empire/referron-bot/internal/model"

// AccountStore is the slice of the sql store the ledger needs. Tests swap in
// an in-memory map.
type AccountStore interface {
	GetAccountByID(id int64) (*model.Account, error)
	GetAccountByReferralCode(code string) (*model.Account, error)
	InsertAccount(acc *model.Account) (bool, error)
	CreditReferral(referrerID int64, points int) error
	RedeemPoints(id int64, cost int) (bool, error)
	CreditBalance(id int64, amount int64) (bool, error)
	DebitBalance(id int64, amount int64) (bool, error)
	TopAccountsByReferrals(limit int) ([]*model.Account, error)
}

type Ledger struct {
	store AccountStore
}

func NewLedgerService(store AccountStore) *Ledger {
	return &Ledger{
		store: store,
	}
}
