package services

import (
	model2 "github.com/bots-empire/referron-bot/internal/model"
)

// LeaderboardCommand works for unregistered users too, the list is public.
func (u *Users) LeaderboardCommand(s *model2.Situation) error {
	top, err := u.ledger.Leaderboard(0)
	if err != nil {
		return err
	}

	if len(top) == 0 {
		return u.Msgs.SendSimpleMsg(s.Message.Chat.ID, u.bot.Text("leaderboard_empty"))
	}

	text := u.bot.Text("leaderboard_header")
	for i, acc := range top {
		text += u.bot.Text("leaderboard_row", i+1, acc.Name, acc.Referrals, acc.Points)
	}

	return u.Msgs.SendSimpleMsg(s.Message.Chat.ID, text)
}
