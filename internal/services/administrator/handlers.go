package administrator

import (
	"github.com/bots-empire/referron-bot/internal/model"
)

type AdminMessagesHandlers struct {
	Handlers map[string]model.Handler
}

func (h *AdminMessagesHandlers) GetHandler(command string) model.Handler {
	return h.Handlers[command]
}

func (h *AdminMessagesHandlers) Init(adminSrv *Admin) {
	//Payment command
	h.OnCommand("/confirm_payment", adminSrv.ConfirmPaymentCommand)

	//Statistic command
	h.OnCommand("/stats", adminSrv.StatsCommand)
}

func (h *AdminMessagesHandlers) OnCommand(command string, handler model.Handler) {
	h.Handlers[command] = handler
}

// CheckAdminMessage is the fallback the user pipeline calls when no user
// handler matched. Non-admins and unknown commands report
// ErrCommandNotConverted so the caller can keep going.
func (a *Admin) CheckAdminMessage(s *model.Situation) error {
	if s.Message == nil {
		return model.ErrCommandNotConverted
	}

	if !model.AdminSettings.CheckAdmin(s.Message.From.ID) {
		return model.ErrCommandNotConverted
	}

	command, err := a.bot.GetCommandFromText(s.Message)
	if err != nil {
		return model.ErrCommandNotConverted
	}

	handler := a.bot.AdminMessageHandler.GetHandler(command)
	if handler == nil {
		return model.ErrCommandNotConverted
	}

	s.Command = command

	return handler(s)
}
