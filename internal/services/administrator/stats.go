package administrator

import (
	"fmt"
	"strconv"

	"github.com/bots-empire/referron-bot/internal/model"
)

const statsTemplate = "📊 *Bot statistics*\n\n" +
	"Accounts: %d\n" +
	"Referral signups: %s\n" +
	"Blocked users: %d\n" +
	"Links shared: %d"

func (a *Admin) StatsCommand(s *model.Situation) error {
	accounts, err := a.store.CountAccounts()
	if err != nil {
		return err
	}

	referrals, err := a.store.SumReferrals()
	if err != nil {
		return err
	}

	blocked, err := a.store.CountBlockedAccounts()
	if err != nil {
		return err
	}

	links, err := a.store.CountLinkEvents()
	if err != nil {
		return err
	}

	text := fmt.Sprintf(statsTemplate,
		accounts,
		referralsText(referrals, accounts),
		blocked,
		links)

	return a.msgs.NewParseMessage(s.Message.From.ID, text)
}

func referralsText(referrals, accounts int) string {
	if accounts == 0 {
		return "0"
	}

	return strconv.Itoa(referrals) + " (" + strconv.Itoa(referrals*100/accounts) + "%)"
}
