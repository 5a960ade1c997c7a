package administrator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/bots-empire/referron-bot/internal/model"
)

const confirmPaymentUsage = "Usage: /confirm_payment <wallet> <amount>"

// ConfirmPaymentCommand settles a transfer the operator verified by hand.
// The user who requested the deposit address gets credited and notified.
func (a *Admin) ConfirmPaymentCommand(s *model.Situation) error {
	args := strings.Fields(s.Message.Text)
	if len(args) != 3 {
		return a.msgs.SendSimpleMsg(s.Message.From.ID, confirmPaymentUsage)
	}

	amount, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil || amount <= 0 {
		return a.msgs.SendSimpleMsg(s.Message.From.ID, confirmPaymentUsage)
	}

	wallet := args[1]

	accountID, err := a.payment.ConfirmPendingPayment(wallet, amount)
	if errors.Is(err, model.ErrPaymentNotFound) {
		return a.msgs.SendSimpleMsg(s.Message.From.ID, "No pending payment for wallet "+wallet)
	}
	if err != nil {
		return err
	}

	model.ConfirmedPayments.Inc()

	currency := model.AdminSettings.GetParams().Currency
	_ = a.msgs.SendSimpleMsg(accountID, a.bot.Text("payment_confirmed", amount, currency))

	confirmation := fmt.Sprintf("Confirmed: %d %s credited to account %d", amount, currency, accountID)
	return a.msgs.SendSimpleMsg(s.Message.From.ID, confirmation)
}
