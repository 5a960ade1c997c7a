package services

import (
	"github.com/bots-empire/referron-bot/internal/model"
	"github.com/bots-empire/referron-bot/internal/msgs"
	"github.com/bots-empire/referron-bot/internal/services/administrator"
	"github.com/bots-empire/referron-bot/internal/services/distributor"
	"github.com/bots-empire/referron-bot/internal/services/ledger"
	"github.com/bots-empire/referron-bot/internal/services/payment"
	"github.com/bots-empire/referron-bot/internal/services/quota"
)

type Users struct {
	bot *model.Bot

	ledger      *ledger.Ledger
	quota       *quota.Engine
	distributor *distributor.Distributor
	payment     *payment.Service
	admin       *administrator.Admin
	Msgs        *msgs.Service
}

func NewUsersService(
	bot *model.Bot,
	ledgerSrv *ledger.Ledger,
	quotaSrv *quota.Engine,
	distributorSrv *distributor.Distributor,
	paymentSrv *payment.Service,
	admin *administrator.Admin,
	msgsSrv *msgs.Service,
) *Users {
	return &Users{
		bot:         bot,
		ledger:      ledgerSrv,
		quota:       quotaSrv,
		distributor: distributorSrv,
		payment:     paymentSrv,
		admin:       admin,
		Msgs:        msgsSrv,
	}
}

func (u *Users) Bot() *model.Bot {
	return u.bot
}
