package model

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Situation struct {
	Message       *tgbotapi.Message
	CallbackQuery *tgbotapi.CallbackQuery
	User          *Account
	Command       string
	Params        *Parameters
	Err           error
	StartTime     time.Time
}

type Parameters struct {
	Level string
}
