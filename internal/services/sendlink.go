package services

import (
	"github.com/pkg/errors"

	"github.com/bots-empire/referron-bot/internal/db"
	model2 "github.com/bots-empire/referron-bot/internal/model"
)

// SendLinkCommand runs the whole distribution pipeline: quota decision,
// audience selection, best-effort fan-out. The send counts as done once the
// quota engine accepted it, delivery failures only shrink the report.
func (u *Users) SendLinkCommand(s *model2.Situation) error {
	if !u.requireUser(s) {
		return nil
	}

	payload := commandArgs(s.Message)
	if payload == "" {
		return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.Text("sendlink_usage"))
	}

	db.RdbSetUser(u.bot.Rdb, s.User.ID, "main")

	grant, err := u.quota.CheckAndConsume(s.User.ID, payload)
	if errors.Is(err, model2.ErrQuotaExhausted) {
		model2.QuotaDenials.Inc()
		return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.Text("quota_exhausted"))
	}
	if err != nil {
		return err
	}

	tier := "paid"
	if grant.UsedFree {
		tier = "free"
	}
	model2.LinkSends.WithLabelValues(tier).Inc()

	report, err := u.distributor.Distribute(s.User.ID, payload, grant.FanoutSize)
	if errors.Is(err, model2.ErrNoAudience) {
		return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.Text("no_audience"))
	}
	if err != nil {
		return err
	}

	if grant.UsedFree {
		return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.Text("link_shared", report.Delivered))
	}

	acc, err := u.ledger.GetAccount(s.User.ID)
	if err != nil {
		return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.Text("link_shared", report.Delivered))
	}

	return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.Text("link_shared_p", report.Delivered, acc.Opportunities))
}
