package administrator

import (
	"github.com/bots-empire/referron-bot/internal/model"
	"github.com/bots-empire/referron-bot/internal/msgs"
	"github.com/bots-empire/referron-bot/internal/services/payment"
)

// StatsStore feeds the /stats report.
type StatsStore interface {
	CountAccounts() (int, error)
	SumReferrals() (int, error)
	CountBlockedAccounts() (int, error)
	CountLinkEvents() (int, error)
}

type Admin struct {
	bot *model.Bot

	store   StatsStore
	payment *payment.Service
	msgs    *msgs.Service
}

func NewAdminService(bot *model.Bot, store StatsStore, payment *payment.Service, msgs *msgs.Service) *Admin {
	return &Admin{
		bot:     bot,
		store:   store,
		payment: payment,
		msgs:    msgs,
	}
}
