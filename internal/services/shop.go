package services

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/bots-empire/referron-bot/internal/db"
	model2 "github.com/bots-empire/referron-bot/internal/model"
	"github.com/bots-empire/referron-bot/internal/msgs"
	"github.com/bots-empire/referron-bot/internal/services/payment"
)

func (u *Users) RedeemCommand(s *model2.Situation) error {
	if !u.requireUser(s) {
		return nil
	}

	cost := model2.AdminSettings.GetParams().RedeemCost

	err := u.ledger.RedeemPoints(s.User.ID)
	if errors.Is(err, model2.ErrInsufficientPoints) {
		return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.Text("redeem_insufficient", cost))
	}
	if err != nil {
		return err
	}

	model2.RedeemedRewards.Inc()

	return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.Text("redeem_success", cost))
}

func (u *Users) BuyImpressionsCommand(s *model2.Situation) error {
	if !u.requireUser(s) {
		return nil
	}

	db.RdbSetUser(u.bot.Rdb, s.User.ID, "/buy_amount")

	params := model2.AdminSettings.GetParams()

	return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.Text("buy_prompt", params.ImpressionPrice, params.Currency))
}

// BuyAmountCommand is the level handler behind /buy. The typed number turns
// into an inline confirm/cancel pair, money moves only in the callback.
func (u *Users) BuyAmountCommand(s *model2.Situation) error {
	if !u.requireUser(s) {
		return nil
	}

	count, err := strconv.Atoi(strings.TrimSpace(s.Message.Text))
	if err != nil || count <= 0 {
		return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.Text("invalid_number"))
	}

	price := payment.PriceFor(count)
	params := model2.AdminSettings.GetParams()

	markUp := msgs.NewIlMarkUp(
		msgs.NewIlRow(msgs.NewIlDataButton(u.bot.Text("confirm_button"), "/confirm_buy?"+strconv.Itoa(count))),
		msgs.NewIlRow(msgs.NewIlDataButton(u.bot.Text("cancel_button"), "/cancel_buy")),
	)

	text := u.bot.Text("buy_confirm", count, price, params.Currency)

	return u.Msgs.NewParseMarkUpMessage(s.User.ID, &markUp, text)
}

func (u *Users) TopUpCommand(s *model2.Situation) error {
	if !u.requireUser(s) {
		return nil
	}

	pending, err := u.payment.RequestTopUp(s.User.ID)
	if err != nil {
		return err
	}

	return u.Msgs.NewParseMessage(s.User.ID, u.bot.Text("topup_text", pending.Wallet))
}

func (u *Users) CancelCommand(s *model2.Situation) error {
	db.ResetUser(u.bot.Rdb, s.Message.From.ID)

	return u.Msgs.SendSimpleMsg(s.Message.Chat.ID, u.bot.Text("buy_cancelled"))
}
