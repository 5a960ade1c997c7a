package distributor

import (
	"github.com/bots-empire/referron-bot/internal/log"
	"github.com/bots-empire/referron-bot/internal/model"
)

type AudienceStore interface {
	ListOtherAccounts(excludeID int64, limit int) ([]*model.Account, error)
}

// Deliverer pushes one text to one account. *msgs.Service implements it.
type Deliverer interface {
	SendSimpleMsg(userID int64, text string) error
}

type Distributor struct {
	store  AudienceStore
	sender Deliverer
	logger log.Logger
}

func NewDistributor(store AudienceStore, sender Deliverer, logger log.Logger) *Distributor {
	return &Distributor{
		store:  store,
		sender: sender,
		logger: logger,
	}
}
