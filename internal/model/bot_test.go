package model

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
)

func TestGetCommandFromText(t *testing.T) {
	bot := &Bot{}

	command, err := bot.GetCommandFromText(&tgbotapi.Message{Text: "/start abcd1234"})
	require.NoError(t, err)
	require.Equal(t, "/start", command)

	command, err = bot.GetCommandFromText(&tgbotapi.Message{Text: "/sendlink@ReferronBot https://example.com"})
	require.NoError(t, err)
	require.Equal(t, "/sendlink", command)

	command, err = bot.GetCommandFromText(&tgbotapi.Message{Text: "/profile"})
	require.NoError(t, err)
	require.Equal(t, "/profile", command)
}

func TestGetCommandFromTextPlainMessage(t *testing.T) {
	bot := &Bot{}

	_, err := bot.GetCommandFromText(&tgbotapi.Message{Text: "hello there"})
	require.ErrorIs(t, err, ErrCommandNotConverted)

	_, err = bot.GetCommandFromText(nil)
	require.ErrorIs(t, err, ErrCommandNotConverted)
}

func TestText(t *testing.T) {
	bot := &Bot{Texts: map[string]string{
		"greeting": "hello %s",
	}}

	require.Equal(t, "hello bob", bot.Text("greeting", "bob"))

	// a missing key falls back to the key itself instead of an empty reply
	require.Equal(t, "no_such_key", bot.Text("no_such_key"))
}

func TestReferralLink(t *testing.T) {
	bot := &Bot{BotLink: "t.me/ReferronBot"}

	require.Equal(t, "https://t.me/ReferronBot?start=abcd1234", bot.ReferralLink("abcd1234"))
}

func TestWrapStore(t *testing.T) {
	require.NoError(t, WrapStore(nil, "get account"))

	err := WrapStore(ErrScanSqlRow, "get account")
	require.ErrorIs(t, err, ErrStoreUnavailable)
	require.Contains(t, err.Error(), "get account")
}
