package services

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/bots-empire/referron-bot/internal/db"
	"github.com/bots-empire/referron-bot/internal/log"
	model2 "github.com/bots-empire/referron-bot/internal/model"
	"github.com/bots-empire/referron-bot/internal/services/administrator"
	"github.com/bots-empire/referron-bot/internal/utils"
)

const (
	updateCounterHeader = "Today Update's counter: %d"
	updatePrintHeader   = "update number: %d    // referron-bot-update:  %s"

	defaultTimeInServiceMod = time.Hour * 24
)

type MessagesHandlers struct {
	Handlers map[string]model2.Handler
}

func (h *MessagesHandlers) GetHandler(command string) model2.Handler {
	return h.Handlers[command]
}

func (h *MessagesHandlers) Init(userSrv *Users, adminSrv *administrator.Admin) {
	//Start command
	h.OnCommand("/start", userSrv.StartCommand)
	h.OnCommand("/help", userSrv.HelpCommand)

	//Account command
	h.OnCommand("/profile", userSrv.ProfileCommand)
	h.OnCommand("/leaderboard", userSrv.LeaderboardCommand)
	h.OnCommand("/redeem", userSrv.RedeemCommand)

	//Distribution command
	h.OnCommand("/sendlink", userSrv.SendLinkCommand)

	//Shop command
	h.OnCommand("/buy", userSrv.BuyImpressionsCommand)
	h.OnCommand("/buy_amount", userSrv.BuyAmountCommand)
	h.OnCommand("/topup", userSrv.TopUpCommand)
	h.OnCommand("/cancel", userSrv.CancelCommand)

	//Tech command
	h.OnCommand("/mmon", userSrv.MaintenanceModeOnCommand)
	h.OnCommand("/mmoff", userSrv.MaintenanceModeOffCommand)
}

func (h *MessagesHandlers) OnCommand(command string, handler model2.Handler) {
	h.Handlers[command] = handler
}

func (u *Users) ActionsWithUpdates(logger log.Logger, sortCentre *utils.Spreader) {
	for update := range u.bot.Chanel {
		localUpdate := update

		go u.checkUpdate(&localUpdate, logger, sortCentre)
	}
}

func (u *Users) checkUpdate(update *tgbotapi.Update, logger log.Logger, sortCentre *utils.Spreader) {
	defer u.panicCather(update)

	if update.Message == nil && update.CallbackQuery == nil {
		return
	}

	if update.Message != nil && update.Message.PinnedMessage != nil {
		return
	}

	u.printNewUpdate(update, logger)

	if update.Message != nil {
		user, err := u.resolveUser(update.Message.From.ID)
		if err != nil {
			u.smthWentWrong(update.Message.Chat.ID)
			logger.Warn("err with check user: %s", err.Error())
			return
		}

		situation := u.createSituationFromMsg(update.Message, user)

		u.checkMessage(&situation, logger, sortCentre)
		return
	}

	if update.CallbackQuery != nil {
		situation, err := u.createSituationFromCallback(update.CallbackQuery)
		if err != nil {
			u.smthWentWrong(update.CallbackQuery.From.ID)
			logger.Warn("err with create situation from callback: %s", err.Error())
			return
		}

		u.checkCallbackQuery(situation, logger, sortCentre)
		return
	}
}

// resolveUser loads the account behind an update. An unknown user is not an
// error here, handlers that need a registered account guard themselves.
func (u *Users) resolveUser(userID int64) (*model2.Account, error) {
	user, err := u.ledger.GetAccount(userID)
	if errors.Is(err, model2.ErrAccountNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (u *Users) printNewUpdate(update *tgbotapi.Update, logger log.Logger) {
	model2.UpdateStatistic.Mu.Lock()
	defer model2.UpdateStatistic.Mu.Unlock()

	if (time.Now().Unix())/86400 > int64(model2.UpdateStatistic.Day) {
		u.sendTodayUpdateMsg()
	}

	model2.UpdateStatistic.Counter++
	model2.SaveUpdateStatistic(u.bot.Rdb)

	model2.HandleUpdates.WithLabelValues(
		u.bot.BotLink,
	).Inc()

	if update.Message != nil {
		if update.Message.Text != "" {
			logger.Info(updatePrintHeader, model2.UpdateStatistic.Counter, update.Message.Text)
			return
		}
	}

	if update.CallbackQuery != nil {
		logger.Info(updatePrintHeader, model2.UpdateStatistic.Counter, update.CallbackQuery.Data)
		return
	}
}

func (u *Users) sendTodayUpdateMsg() {
	text := fmt.Sprintf(updateCounterHeader, model2.UpdateStatistic.Counter)
	u.Msgs.SendNotificationToDeveloper(text, true)

	model2.UpdateStatistic.Counter = 0
	model2.UpdateStatistic.Day = int(time.Now().Unix()) / 86400
}

func (u *Users) createSituationFromMsg(message *tgbotapi.Message, user *model2.Account) model2.Situation {
	return model2.Situation{
		Message:   message,
		User:      user,
		StartTime: time.Now(),
		Params: &model2.Parameters{
			Level: db.GetLevel(u.bot.Rdb, message.From.ID),
		},
	}
}

func (u *Users) createSituationFromCallback(callbackQuery *tgbotapi.CallbackQuery) (*model2.Situation, error) {
	user, err := u.resolveUser(callbackQuery.From.ID)
	if err != nil {
		return &model2.Situation{}, err
	}

	return &model2.Situation{
		CallbackQuery: callbackQuery,
		User:          user,
		Command:       strings.Split(callbackQuery.Data, "?")[0],
		StartTime:     time.Now(),
		Params: &model2.Parameters{
			Level: db.GetLevel(u.bot.Rdb, callbackQuery.From.ID),
		},
	}, nil
}

func (u *Users) checkMessage(situation *model2.Situation, logger log.Logger, sortCentre *utils.Spreader) {
	maintenanceMode := model2.AdminSettings.UnderMaintenance()

	if situation.Command == "" {
		situation.Command, situation.Err = u.bot.GetCommandFromText(situation.Message)
	}

	if situation.Err == nil && (!maintenanceMode || isTechCommand(situation.Command)) {
		handler := u.bot.MessageHandler.GetHandler(situation.Command)

		if handler != nil {
			sortCentre.ServeHandler(handler, situation, func(err error) {
				text := fmt.Sprintf("%s // error with serve user msg command: %s\ncommand = '%s'",
					u.bot.BotLink,
					err.Error(),
					situation.Command,
				)
				u.Msgs.SendNotificationToDeveloper(text, false)

				logger.Warn(text)
				u.smthWentWrong(situation.Message.Chat.ID)
			})
			return
		}
	}

	situation.Command = strings.Split(situation.Params.Level, "?")[0]

	if !maintenanceMode {
		handler := u.bot.MessageHandler.GetHandler(situation.Command)

		if handler != nil {
			sortCentre.ServeHandler(handler, situation, func(err error) {
				text := fmt.Sprintf("%s // error with serve user level command: %s\ncommand = '%s'",
					u.bot.BotLink,
					err.Error(),
					situation.Command,
				)
				u.Msgs.SendNotificationToDeveloper(text, false)

				logger.Warn(text)
				u.smthWentWrong(situation.Message.Chat.ID)
			})
			return
		}
	}

	if err := u.admin.CheckAdminMessage(situation); err != nil {
		if err != model2.ErrCommandNotConverted {
			text := fmt.Sprintf("%s // error with serve admin command: %s\ncommand = '%s'",
				u.bot.BotLink,
				err,
				situation.Command,
			)
			u.Msgs.SendNotificationToDeveloper(text, false)

			return
		}
	} else {
		return
	}

	if maintenanceMode {
		model2.LossUserMessages.WithLabelValues(u.bot.BotLink).Inc()
		_ = u.Msgs.SendSimpleMsg(situation.Message.Chat.ID, u.bot.Text("under_maintenance"))
		return
	}

	u.emptyLevel(situation.Message)
	if situation.Err != nil {
		logger.Info(situation.Err.Error())
	}
}

var (
	techCommands = []string{"/mmoff", "/mmon"}
)

func isTechCommand(command string) bool {
	for _, techCommand := range techCommands {
		if command == techCommand {
			return true
		}
	}

	return false
}

func (u *Users) SendTodayUpdateMsg() {
	model2.UpdateStatistic.Mu.Lock()
	defer model2.UpdateStatistic.Mu.Unlock()

	text := fmt.Sprintf(updateCounterHeader, model2.UpdateStatistic.Counter)
	u.Msgs.SendNotificationToDeveloper(text, true)

	model2.UpdateStatistic.Counter = 0
}

func (u *Users) smthWentWrong(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, u.bot.Text("something_wrong"))
	_ = u.Msgs.SendMsgToUser(msg, chatID)
}

func (u *Users) emptyLevel(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID, u.bot.Text("level_not_found"))
	_ = u.Msgs.SendMsgToUser(msg, message.Chat.ID)
}

// requireUser replies with the registration hint when the update came from
// an id the ledger does not know yet.
func (u *Users) requireUser(s *model2.Situation) bool {
	if s.User != nil {
		return true
	}

	_ = u.Msgs.SendSimpleMsg(situationChatID(s), u.bot.Text("not_registered"))

	return false
}

func situationChatID(s *model2.Situation) int64 {
	if s.Message != nil {
		return s.Message.Chat.ID
	}
	if s.CallbackQuery != nil {
		return s.CallbackQuery.From.ID
	}

	return 0
}

func commandArgs(message *tgbotapi.Message) string {
	fields := strings.Fields(message.Text)
	if len(fields) < 2 {
		return ""
	}

	return strings.Join(fields[1:], " ")
}

func (u *Users) StartCommand(s *model2.Situation) error {
	name := displayName(s.Message.From)
	refCode := commandArgs(s.Message)

	acc, created, err := u.ledger.GetOrCreate(s.Message.From.ID, name, refCode)
	if errors.Is(err, model2.ErrInvalidReferralCode) {
		return u.Msgs.SendSimpleMsg(s.Message.Chat.ID, u.bot.Text("invalid_ref_code"))
	}
	if err != nil {
		return err
	}

	db.RdbSetUser(u.bot.Rdb, acc.ID, "main")

	if !created {
		return u.Msgs.SendSimpleMsg(acc.ID, u.bot.Text("welcome_back", acc.ReferralCode))
	}

	model2.NewAccounts.Inc()

	if acc.ReferredBy != "" {
		model2.ReferralSignups.Inc()
		u.notifyReferrer(acc)
	}

	return u.Msgs.SendSimpleMsg(acc.ID, u.bot.Text("welcome_new_user", acc.ReferralCode))
}

func (u *Users) notifyReferrer(acc *model2.Account) {
	referrer, err := u.ledger.GetAccountByCode(acc.ReferredBy)
	if err != nil {
		return
	}

	_ = u.Msgs.SendSimpleMsg(referrer.ID,
		u.bot.Text("referral_joined", acc.Name, model2.AdminSettings.GetParams().ReferralReward))
}

func (u *Users) HelpCommand(s *model2.Situation) error {
	return u.Msgs.SendSimpleMsg(s.Message.Chat.ID, u.bot.Text("help_text"))
}

func (u *Users) ProfileCommand(s *model2.Situation) error {
	if !u.requireUser(s) {
		return nil
	}

	db.RdbSetUser(u.bot.Rdb, s.User.ID, "main")

	acc, err := u.ledger.GetAccount(s.User.ID)
	if err != nil {
		return err
	}

	params := model2.AdminSettings.GetParams()
	text := u.bot.Text("profile_text",
		acc.Name,
		acc.ReferralCode,
		u.bot.ReferralLink(acc.ReferralCode),
		acc.Referrals,
		acc.Points,
		acc.Balance,
		params.Currency,
		acc.Opportunities)

	return u.Msgs.NewParseMessage(s.User.ID, text)
}

func (u *Users) MaintenanceModeOnCommand(s *model2.Situation) error {
	if !model2.AdminSettings.CheckAdmin(s.Message.From.ID) {
		return model2.ErrNotAdminUser
	}

	model2.AdminSettings.MaintenanceMode = true

	msg := tgbotapi.NewMessage(s.Message.From.ID, "Maintenance mode enabled")
	go func() {
		time.Sleep(defaultTimeInServiceMod)
		_ = u.MaintenanceModeOffCommand(s)
	}()
	return u.Msgs.SendMsgToUser(msg, s.Message.From.ID)
}

func (u *Users) MaintenanceModeOffCommand(s *model2.Situation) error {
	if !model2.AdminSettings.CheckAdmin(s.Message.From.ID) {
		return model2.ErrNotAdminUser
	}

	model2.AdminSettings.MaintenanceMode = false

	msg := tgbotapi.NewMessage(s.Message.From.ID, "Maintenance mode disabled")
	return u.Msgs.SendMsgToUser(msg, s.Message.From.ID)
}

func displayName(from *tgbotapi.User) string {
	if from.UserName != "" {
		return from.UserName
	}

	return strings.TrimSpace(from.FirstName + " " + from.LastName)
}
