package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/bots-empire/referron-bot/internal/db"
	"github.com/bots-empire/referron-bot/internal/log"
	model2 "github.com/bots-empire/referron-bot/internal/model"
	"github.com/bots-empire/referron-bot/internal/utils"
)

type CallBackHandlers struct {
	Handlers map[string]model2.Handler
}

func (h *CallBackHandlers) GetHandler(command string) model2.Handler {
	return h.Handlers[command]
}

func (h *CallBackHandlers) Init(userSrv *Users) {
	//Shop command
	h.OnCommand("/confirm_buy", userSrv.ConfirmBuyCommand)
	h.OnCommand("/cancel_buy", userSrv.CancelBuyCommand)
}

func (h *CallBackHandlers) OnCommand(command string, handler model2.Handler) {
	h.Handlers[command] = handler
}

func (u *Users) checkCallbackQuery(s *model2.Situation, logger log.Logger, sortCentre *utils.Spreader) {
	handler := u.bot.CallbackHandler.GetHandler(s.Command)

	if handler != nil {
		sortCentre.ServeHandler(handler, s, func(err error) {
			text := fmt.Sprintf("%s // error with serve user callback command: %s\ncommand = '%s'",
				u.bot.BotLink,
				err.Error(),
				s.Command,
			)
			u.Msgs.SendNotificationToDeveloper(text, false)

			logger.Warn(text)
			u.smthWentWrong(s.CallbackQuery.From.ID)
		})
		return
	}

	text := fmt.Sprintf("%s // get callback command not in list: %s",
		u.bot.BotLink,
		s.Command,
	)
	u.Msgs.SendNotificationToDeveloper(text, false)
	logger.Warn(text)
}

func (u *Users) ConfirmBuyCommand(s *model2.Situation) error {
	if s.User == nil {
		return u.Msgs.SendAnswerCallback(s.CallbackQuery, u.bot.Text("not_registered"))
	}

	data := strings.Split(s.CallbackQuery.Data, "?")
	if len(data) != 2 {
		return u.Msgs.SendAnswerCallback(s.CallbackQuery, u.bot.Text("something_wrong"))
	}

	count, err := strconv.Atoi(data[1])
	if err != nil || count <= 0 {
		return u.Msgs.SendAnswerCallback(s.CallbackQuery, u.bot.Text("invalid_number"))
	}

	_, err = u.payment.BuyImpressions(s.User.ID, count)
	if errors.Is(err, model2.ErrInsufficientBalance) {
		_ = u.Msgs.SendAnswerCallback(s.CallbackQuery, "")
		return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.Text("buy_insufficient"))
	}
	if err != nil {
		return err
	}

	model2.ImpressionPurchases.Inc()
	db.ResetUser(u.bot.Rdb, s.User.ID)

	_ = u.Msgs.SendAnswerCallback(s.CallbackQuery, "")

	return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.Text("buy_success", count))
}

func (u *Users) CancelBuyCommand(s *model2.Situation) error {
	db.ResetUser(u.bot.Rdb, s.CallbackQuery.From.ID)

	_ = u.Msgs.SendAnswerCallback(s.CallbackQuery, "")

	return u.Msgs.SendSimpleMsg(s.CallbackQuery.From.ID, u.bot.Text("buy_cancelled"))
}
