package msgs

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/bots-empire/referron-bot/internal/model"
)

// Service owns every outgoing telegram call. Blocked recipients are flipped
// to the deleted status right here so that the next audience query skips
// them.
type Service struct {
	bot *model.Bot

	devChatIDs []int64
}

func NewService(bot *model.Bot, devChatIDs []int64) *Service {
	return &Service{
		bot:        bot,
		devChatIDs: devChatIDs,
	}
}

func (m *Service) SendMsgToUser(msg tgbotapi.Chattable, userID int64) error {
	if _, err := m.bot.Bot.Send(msg); err != nil {
		if isBlockedByUser(err) {
			m.markUserBlocked(userID)
		}
		return errors.Wrap(err, "failed to send message")
	}

	return nil
}

func (m *Service) SendSimpleMsg(userID int64, text string) error {
	msg := tgbotapi.NewMessage(userID, text)

	return m.SendMsgToUser(msg, userID)
}

func (m *Service) NewParseMessage(userID int64, text string) error {
	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	return m.SendMsgToUser(msg, userID)
}

func (m *Service) NewParseMarkUpMessage(userID int64, markUp *tgbotapi.InlineKeyboardMarkup, text string) error {
	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = markUp

	return m.SendMsgToUser(msg, userID)
}

func (m *Service) SendAnswerCallback(callbackQuery *tgbotapi.CallbackQuery, text string) error {
	answerCallback := tgbotapi.NewCallback(callbackQuery.ID, text)

	if _, err := m.bot.Bot.Request(answerCallback); err != nil {
		return errors.Wrap(err, "failed to send answer callback")
	}

	return nil
}

// SendNotificationToDeveloper pushes an operational message to every dev
// chat. Failures are swallowed, the bot never depends on the dev chat being
// reachable.
func (m *Service) SendNotificationToDeveloper(text string, disableNotification bool) {
	for _, chatID := range m.devChatIDs {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.DisableNotification = disableNotification

		_, _ = m.bot.Bot.Send(msg)
	}
}

func (m *Service) markUserBlocked(userID int64) {
	if err := m.bot.BlockUser(userID); err != nil {
		return
	}

	model.BlockUser.Inc()
}

func isBlockedByUser(err error) bool {
	if err == nil {
		return false
	}

	text := err.Error()

	return strings.Contains(text, "blocked by the user") ||
		strings.Contains(text, "user is deactivated") ||
		strings.Contains(text, "chat not found")
}
